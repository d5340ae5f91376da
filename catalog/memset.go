package catalog

import (
	"sync"

	"github.com/2x3systems/kpdg/kpdg"
)

// memSet is a plain in-process CanonicalSet: a map from graph hash to the
// bucket of distinct isomorphism classes seen under that hash. It avoids
// the LSM-tree overhead of lsmSet for short runs, at the cost of living
// entirely in process memory.
type memSet struct {
	mu      sync.Mutex
	buckets map[uint32][]*kpdg.Graph
}

// NewMapSet returns an in-process CanonicalSet backed by a Go map rather
// than badger, for short runs where opening an LSM tree is unwarranted
// overhead (SPEC_FULL.md §4.6).
func NewMapSet() CanonicalSet {
	return &memSet{buckets: make(map[uint32][]*kpdg.Graph)}
}

func (set *memSet) TryAdd(X *kpdg.Graph, counters *kpdg.Counters) bool {
	h := X.GraphHash()

	set.mu.Lock()
	defer set.mu.Unlock()

	bucket := set.buckets[h]
	for _, candidate := range bucket {
		if X.IsIsomorphic(candidate, counters) {
			return false
		}
	}
	set.buckets[h] = append(bucket, X)
	return true
}

func (set *memSet) Close() {
	set.buckets = nil
}

package search

import (
	"sync"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/2x3systems/kpdg/kpdg"
)

// frontier is the ordered set of canonical base graphs for one level,
// keyed by the Graph total order of SPEC_FULL.md §6 rather than a plain
// slice, so the set enumerates in a reproducible, sorted order (useful for
// a checkpoint dump) and so multiple workers can insert concurrently
// without racing the underlying tree. Modeled on lib2x3/factor.go's
// redblacktree.Tree usage for FactorSet ordering.
type frontier struct {
	mu   sync.Mutex
	tree *redblacktree.Tree
}

func newFrontier() *frontier {
	return &frontier{
		tree: redblacktree.NewWith(graphComparator),
	}
}

func graphComparator(a, b interface{}) int {
	ga, gb := a.(*kpdg.Graph), b.(*kpdg.Graph)
	switch {
	case ga.Less(gb):
		return -1
	case gb.Less(ga):
		return 1
	default:
		return 0
	}
}

// Put inserts X, keyed by its canonical total order. X must already be
// canonical and must not be mutated afterward.
func (f *frontier) Put(X *kpdg.Graph, value interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tree.Put(X, value)
}

// Graphs returns every base graph currently held, in ascending total order.
func (f *frontier) Graphs() []*kpdg.Graph {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := f.tree.Keys()
	out := make([]*kpdg.Graph, len(keys))
	for i, k := range keys {
		out[i] = k.(*kpdg.Graph)
	}
	return out
}

// Size reports the number of distinct canonical graphs held.
func (f *frontier) Size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tree.Size()
}

// Package catalog provides the deduplicating set of canonical k-PDGs used by
// the search driver to avoid re-exploring an isomorphism class it has
// already seen at the current level. Two CanonicalSet implementations ship:
// an embedded-KV-backed one for runs that want an on-disk checkpoint, and a
// plain in-process map for short runs where opening an LSM tree is
// unwarranted overhead. Both bucket by graph hash and admit a candidate only
// if it is not isomorphic to anything already in its bucket -- canonical
// encodings are not unique per isomorphism class (in-group vertex order is
// left free by Graph.Canonicalize), so a dedup set keyed on raw bytes would
// silently let duplicates back into the search tree.
package catalog

import (
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"

	"github.com/2x3systems/kpdg/kpdg"
)

// CanonicalSet deduplicates canonical graphs by isomorphism class.
// Implementations must be safe for concurrent use, since the search
// driver's worker pool shares one instance per level.
type CanonicalSet interface {
	// TryAdd adds X if it is not isomorphic to anything already present.
	// X must be canonical. Returns true iff X was newly added. counters may
	// be nil; when non-nil it is passed through to every IsIsomorphic probe
	// against the bucket, so a caller can observe how much isomorphism-search
	// work a level's dedup is actually doing.
	TryAdd(X *kpdg.Graph, counters *kpdg.Counters) bool

	// Close releases any resources held by the set. A closed set must not
	// be used again.
	Close()
}

// lsmSet is the shared badger plumbing behind both OpenCatalog (on disk) and
// NewInMemorySet (WithInMemory), modeled directly on lib2x3/sets.go's
// lsmSet/tryAdd pair. Keys are the 4-byte graph hash followed by a 4-byte
// per-hash sequence number, so every graph sharing a hash lives under one
// scannable key prefix; values are EncodeEdges' byte encoding, letting a
// reopened catalog reconstruct candidates for an IsIsomorphic probe instead
// of trusting a byte-equality match.
type lsmSet struct {
	mu sync.Mutex
	db *badger.DB
}

// OpenCatalog opens (or creates) a badger-backed CanonicalSet rooted at
// dbPathName, so a killed and restarted run resumes canonicalization dedup
// for the in-progress level instead of re-discovering already-seen
// canonical forms (SPEC_FULL.md §4.8). An empty dbPathName opens an
// in-memory instance instead, equivalent to NewInMemorySet.
func OpenCatalog(dbPathName string) (CanonicalSet, error) {
	opts := badger.DefaultOptions(dbPathName)
	if dbPathName == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "opening canonical-set catalog")
	}
	return &lsmSet{db: db}, nil
}

// NewInMemorySet returns a badger-backed CanonicalSet that never touches
// disk, for a run that wants the LSM tree's concurrency-safe TryAdd without
// a checkpoint directory.
func NewInMemorySet() CanonicalSet {
	set, err := OpenCatalog("")
	if err != nil {
		// WithInMemory(true) never fails to open in practice; a failure here
		// would indicate badger itself is broken, a contract violation of
		// this package's environment rather than a recoverable input fault.
		panic(err)
	}
	return set
}

func (set *lsmSet) TryAdd(X *kpdg.Graph, counters *kpdg.Counters) bool {
	hash := X.GraphHash()
	prefix := hashPrefix(hash)

	set.mu.Lock()
	defer set.mu.Unlock()

	txn := set.db.NewTransaction(true)
	defer txn.Discard()

	it := txn.NewIterator(badger.DefaultIteratorOptions)

	var seq uint32
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var isomorphic bool
		err := it.Item().Value(func(val []byte) error {
			candidate := kpdg.DecodeCanonicalGraph(hash, val)
			isomorphic = X.IsIsomorphic(candidate, counters)
			return nil
		})
		if err != nil {
			it.Close()
			panic(err)
		}
		if isomorphic {
			it.Close()
			return false
		}
		seq++
	}
	it.Close()

	key := append(append([]byte{}, prefix...), seqBytes(seq)...)
	value := X.EncodeEdges(make([]byte, 0, 2*X.EdgeCount()))
	if err := txn.Set(key, value); err != nil {
		panic(err)
	}
	if err := txn.Commit(); err != nil {
		panic(err)
	}
	return true
}

func (set *lsmSet) Close() {
	if set.db != nil {
		set.db.Close()
		set.db = nil
	}
}

func hashPrefix(hash uint32) []byte {
	return []byte{byte(hash >> 24), byte(hash >> 16), byte(hash >> 8), byte(hash)}
}

func seqBytes(seq uint32) []byte {
	return []byte{byte(seq >> 24), byte(seq >> 16), byte(seq >> 8), byte(seq)}
}

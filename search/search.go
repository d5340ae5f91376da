// Package search implements the top-level driver that walks the k-PDG
// search tree level by level: for each level it expands every canonical
// base graph from the previous level with an EdgeGenerator, canonicalizes
// and dedups the results, and at the final level updates the running
// minimum theta. The driver, its per-level CanonicalSet, and its worker
// pool are the "external collaborator" layer SPEC_FULL.md §1 places
// outside the core kpdg package.
package search

import (
	"context"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/pkg/errors"

	"github.com/2x3systems/kpdg/catalog"
	"github.com/2x3systems/kpdg/kpdg"
)

// Options configures a Driver run.
type Options struct {
	// K and N are the edge size and vertex cap, 2 <= K <= N <= kpdg.MaxN.
	K, N int

	// Workers bounds the size of the per-level worker pool. Zero or
	// negative means runtime.GOMAXPROCS(0).
	Workers int

	// CheckpointDir, when non-empty, is the parent directory under which
	// each level's CanonicalSet opens an on-disk badger instance named
	// level-<n>, so a killed and restarted run resumes that level's dedup
	// state (SPEC_FULL.md §4.8). Empty means every level's CanonicalSet is
	// purely in-memory.
	CheckpointDir string

	// Counters, if non-nil, is used instead of allocating a fresh one --
	// letting a caller (e.g. the CLI) hold a reference to print progress
	// from another goroutine while Run is in flight.
	Counters *kpdg.Counters
}

// Result is what Run returns: the minimum theta found over every
// T_k-free k-PDG on up to N vertices, and the edge set that witnesses it.
type Result struct {
	MinTheta kpdg.Fraction
	Witness  []kpdg.Edge
}

// Driver owns one (k, n) run: the current level's frontier of canonical
// base graphs, a CanonicalSet per level, and the shared Counters.
type Driver struct {
	opts     Options
	counters *kpdg.Counters
}

// NewDriver prepares a Driver for opts. It does not call
// kpdg.SetGlobalGraphInfo or open anything -- that happens in Run, so that
// constructing a Driver has no side effects beyond this call.
func NewDriver(opts Options) *Driver {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	counters := opts.Counters
	if counters == nil {
		counters = kpdg.NewCounters()
	}
	return &Driver{opts: opts, counters: counters}
}

// Counters returns the Driver's shared Counters, readable concurrently with
// an in-flight Run (e.g. from a periodic PrintIfDue ticker).
func (d *Driver) Counters() *kpdg.Counters { return d.counters }

// Run configures the global k-PDG parameters and walks the search tree from
// level K up to N. It honors ctx between levels and between base graphs at
// a level (never inside a single EdgeGenerator drain, so a level's dedup
// state stays consistent); on cancellation it returns the best result found
// so far along with ctx.Err().
func (d *Driver) Run(ctx context.Context) (Result, error) {
	kpdg.SetGlobalGraphInfo(d.opts.K, d.opts.N)

	frontier := newFrontier()
	empty := kpdg.NewGraph()
	empty.Canonicalize()
	frontier.Put(empty, struct{}{})

	for n := d.opts.K; n <= d.opts.N; n++ {
		if err := ctx.Err(); err != nil {
			return d.result(), err
		}

		level, err := d.openLevel(n)
		if err != nil {
			return d.result(), errors.Wrapf(err, "opening level %d catalog", n)
		}

		next := newFrontier()
		if err := d.expandLevel(ctx, n, frontier, next, level); err != nil {
			level.Close()
			return d.result(), err
		}
		level.Close()
		frontier = next
	}

	return d.result(), nil
}

func (d *Driver) result() Result {
	theta, witness := d.counters.Best()
	return Result{MinTheta: theta, Witness: witness}
}

func (d *Driver) openLevel(n int) (catalog.CanonicalSet, error) {
	if d.opts.CheckpointDir == "" {
		return catalog.NewInMemorySet(), nil
	}
	return catalog.OpenCatalog(filepath.Join(d.opts.CheckpointDir, levelDirName(n)))
}

func levelDirName(n int) string {
	digits := [2]byte{'0', byte('0' + n)}
	if n >= 10 {
		digits[0] = byte('0' + n/10)
		digits[1] = byte('0' + n%10)
		return "level-" + string(digits[:])
	}
	return "level-" + string(digits[1:])
}

// expandLevel drains every base graph's EdgeGenerator through a bounded
// worker pool (SPEC_FULL.md §5): each worker pulls a base graph, expands it
// fully, and only touches shared state (the level's CanonicalSet, next, and
// d.counters) through their own synchronization.
func (d *Driver) expandLevel(ctx context.Context, n int, frontier, next *frontier, level catalog.CanonicalSet) error {
	bases := frontier.Graphs()

	jobs := make(chan *kpdg.Graph)
	go func() {
		defer close(jobs)
		for _, base := range bases {
			select {
			case jobs <- base:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	var firstErr error
	var errMu sync.Mutex

	useThetaOpt := n == kpdg.N()

	for w := 0; w < d.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for base := range jobs {
				if err := ctx.Err(); err != nil {
					errMu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					errMu.Unlock()
					return
				}
				d.expandBase(n, base, useThetaOpt, level, next)
			}
		}()
	}
	wg.Wait()

	if firstErr == nil {
		firstErr = ctx.Err()
	}
	return firstErr
}

// expandBase drains one base graph's EdgeGenerator to completion, admitting
// each T_k-free canonical extension into level and, at intermediate levels,
// into next; at the final level it instead folds the extension's theta into
// the shared running minimum.
func (d *Driver) expandBase(n int, base *kpdg.Graph, useThetaOpt bool, level catalog.CanonicalSet, next *frontier) {
	gen := kpdg.NewEdgeGenerator(n, base)
	baseEdges := base.EdgeCount()
	baseDirected := baseEdges - base.UndirectedEdgeCount()

	var scratch kpdg.Graph
	for {
		minTheta, _ := d.counters.Best()
		if !gen.Next(&scratch, useThetaOpt, baseEdges, baseDirected, minTheta) {
			return
		}
		d.counters.NoteEvent(kpdg.CounterGraphAllocations)

		if scratch.ContainsTk(n - 1) {
			d.counters.NoteEvent(kpdg.CounterContainsTkTests)
			gen.NotifyContainTkSkip()
			continue
		}
		d.counters.NoteEvent(kpdg.CounterContainsTkTests)

		var canon kpdg.Graph
		scratch.CopyEdges(&canon)
		d.counters.NoteEvent(kpdg.CounterGraphCopies)
		canon.Canonicalize()
		d.counters.NoteEvent(kpdg.CounterCanonicalizeOps)

		if useThetaOpt && canon.GetTheta().GreaterEqual(minTheta) {
			// The generator's own check is a necessary, not sufficient,
			// condition; the driver alone knows the running minimum at
			// emission time and performs the final admission check.
			continue
		}

		if !level.TryAdd(&canon, d.counters) {
			continue
		}
		d.counters.NoteAccumulatedCanonical()

		if useThetaOpt {
			theta := canon.GetTheta()
			d.counters.TryUpdateBest(theta, canon.Edges())
		} else {
			next.Put(&canon, struct{}{})
		}
	}
}

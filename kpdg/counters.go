package kpdg

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// CounterKind names one of the events Counters tallies. Values mirror the
// reference implementation's per-field counters one for one (see the
// counters.go row of DESIGN.md).
type CounterKind int

const (
	CounterGraphAllocations CounterKind = iota
	CounterGraphInits
	CounterGraphCopies
	CounterCanonicalizeOps
	CounterPermuteOps
	CounterPermuteCanonicalOps
	CounterIsomorphicTests
	CounterIsomorphicExpensive
	CounterIsomorphicHashNo
	CounterIdenticalTests
	CounterContainsTkTests
	counterKindCount
)

var counterNames = [counterKindCount]string{
	CounterGraphAllocations:    "Graph allocs",
	CounterGraphInits:          "Graph inits",
	CounterGraphCopies:         "Graph copies",
	CounterCanonicalizeOps:     "Graph canonicalize ops",
	CounterPermuteOps:          "Graph permute ops",
	CounterPermuteCanonicalOps: "Graph permute canonical",
	CounterIsomorphicTests:     "Graph isomorphic tests",
	CounterIsomorphicExpensive: "    Expensive tests",
	CounterIsomorphicHashNo:    "    False w/ hash match",
	CounterIdenticalTests:      "Graph identical tests",
	CounterContainsTkTests:     "Graph contains T_k",
}

// Counters is the process-wide (or, under the search driver's worker pool,
// shared-and-mutex-protected) record of run statistics and the running
// minimum theta. Zero value is not ready for use; call NewCounters.
type Counters struct {
	mu   sync.Mutex
	tall [counterKindCount]uint64

	minTheta    Fraction
	minWitness  []Edge
	accumulated uint64
	startTime   time.Time
	lastPrint   time.Time
	printPeriod time.Duration
}

// NewCounters returns a Counters with the running minimum initialized to
// InfiniteTheta, matching Counters::initialize in the reference.
func NewCounters() *Counters {
	now := time.Now()
	return &Counters{
		minTheta:    InfiniteTheta,
		startTime:   now,
		lastPrint:   now,
		printPeriod: 100 * time.Second,
	}
}

// SetPrintPeriod overrides the default 100-second gate used by PrintIfDue,
// so tests can drive it deterministically (SPEC_FULL.md §11).
func (c *Counters) SetPrintPeriod(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.printPeriod = d
}

// NoteEvent increments the tally for kind. Safe for concurrent use.
func (c *Counters) NoteEvent(kind CounterKind) {
	c.mu.Lock()
	c.tall[kind]++
	c.mu.Unlock()
}

// NoteAccumulatedCanonical increments the count of canonical graphs admitted
// into a level's CanonicalSet, mirroring graph_accumulated_canonicals.
func (c *Counters) NoteAccumulatedCanonical() {
	c.mu.Lock()
	c.accumulated++
	c.mu.Unlock()
}

// TryUpdateBest replaces the running minimum theta and its witness edge set
// iff theta is strictly less than the current minimum. Returns whether the
// update happened. Safe for concurrent use, so a worker-pool search driver
// can call it directly from any worker.
func (c *Counters) TryUpdateBest(theta Fraction, witness []Edge) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !theta.Less(c.minTheta) {
		return false
	}
	c.minTheta = theta
	c.minWitness = append(c.minWitness[:0], witness...)
	return true
}

// Best returns the current running minimum theta and a copy of its witness.
func (c *Counters) Best() (Fraction, []Edge) {
	c.mu.Lock()
	defer c.mu.Unlock()
	witness := make([]Edge, len(c.minWitness))
	copy(witness, c.minWitness)
	return c.minTheta, witness
}

// PrintIfDue writes a counters snapshot to out iff at least the configured
// print period has elapsed since the last print (or since construction),
// mirroring Counters::print_at_time_interval. Returns whether it printed.
func (c *Counters) PrintIfDue(out io.Writer) bool {
	c.mu.Lock()
	now := time.Now()
	due := now.Sub(c.lastPrint) >= c.printPeriod
	if due {
		c.lastPrint = now
	}
	c.mu.Unlock()
	if due {
		c.Print(out)
	}
	return due
}

// Print unconditionally writes a counters snapshot to out.
func (c *Counters) Print(out io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	theta, witness := c.minTheta, c.minWitness
	elapsed := time.Since(c.startTime)

	fmt.Fprintf(out, "\n---------- k=%d, n=%d -------------------------------\n", K(), N())
	fmt.Fprintf(out, "Accumulated canonicals\t= %d\n", c.accumulated)
	fmt.Fprintf(out, "Minimum theta = %d / %d\nProduced by graph: %s\n", theta.Num, theta.Den, printEdges(witness))
	fmt.Fprintf(out, "Wall clock time:  %dms\n", elapsed.Milliseconds())
	for k := CounterKind(0); k < counterKindCount; k++ {
		fmt.Fprintf(out, "%s\t= %d\n", counterNames[k], c.tall[k])
	}
	fmt.Fprint(out, "--------------------------------------------------\n")
}

func printEdges(edges []Edge) string {
	g := &Graph{}
	for _, e := range edges {
		g.edges[g.edgeCount] = e
		g.edgeCount++
		if e.IsUndirected() {
			g.undirectedEdgeCount++
		}
	}
	return g.String()
}

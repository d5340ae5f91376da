package kpdg_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/2x3systems/kpdg/kpdg"
)

func TestCountersTryUpdateBest(t *testing.T) {
	c := kpdg.NewCounters()

	theta, witness := c.Best()
	if !theta.Equal(kpdg.InfiniteTheta) {
		t.Fatalf("fresh Counters should start at InfiniteTheta, got %s", theta)
	}
	if len(witness) != 0 {
		t.Fatal("fresh Counters should have an empty witness")
	}

	w1 := []kpdg.Edge{kpdg.NewEdge(0b011, kpdg.UndirectedHead)}
	if !c.TryUpdateBest(kpdg.NewFraction(5, 1), w1) {
		t.Fatal("5/1 should beat infinity")
	}

	if c.TryUpdateBest(kpdg.NewFraction(5, 1), w1) {
		t.Fatal("an equal theta should not replace the witness (strict-less comparison)")
	}

	w2 := []kpdg.Edge{kpdg.NewEdge(0b101, kpdg.UndirectedHead)}
	if !c.TryUpdateBest(kpdg.NewFraction(3, 1), w2) {
		t.Fatal("3/1 should beat 5/1")
	}

	theta, witness = c.Best()
	if want := kpdg.NewFraction(3, 1); !theta.Equal(want) {
		t.Fatalf("Best() theta = %s, want %s", theta, want)
	}
	if len(witness) != 1 || witness[0] != w2[0] {
		t.Fatal("Best() witness should reflect the most recent strict improvement")
	}
}

func TestCountersPrintIfDueIsTimeGated(t *testing.T) {
	kpdg.SetGlobalGraphInfo(2, 4)
	c := kpdg.NewCounters()
	c.SetPrintPeriod(time.Hour)

	var buf bytes.Buffer
	if c.PrintIfDue(&buf) {
		t.Fatal("should not print immediately after construction with a 1-hour period")
	}
	if buf.Len() != 0 {
		t.Fatal("no output should have been written")
	}

	c.SetPrintPeriod(0)
	if !c.PrintIfDue(&buf) {
		t.Fatal("a zero period should always be due")
	}
	if buf.Len() == 0 {
		t.Fatal("expected a counters snapshot to be written")
	}
}

func TestCountersNoteEvent(t *testing.T) {
	c := kpdg.NewCounters()
	for i := 0; i < 5; i++ {
		c.NoteEvent(kpdg.CounterCanonicalizeOps)
	}
	kpdg.SetGlobalGraphInfo(2, 4)
	var buf bytes.Buffer
	c.Print(&buf)
	if !bytes.Contains(buf.Bytes(), []byte("Graph canonicalize ops\t= 5")) {
		t.Fatalf("expected the canonicalize op tally to appear in the printed snapshot:\n%s", buf.String())
	}
}

// TestIsIsomorphicNotesCounters drives Graph.IsIsomorphic through its
// expensive, permutation-searching path (the two operands are isomorphic but
// not identical) and checks that it tallies isomorphic tests, identical
// tests, the expensive-search count, and at least one permute-canonical op
// -- the counters the isomorphism machinery exists to drive once something
// other than a test actually calls it (see catalog.CanonicalSet.TryAdd).
func TestIsIsomorphicNotesCounters(t *testing.T) {
	kpdg.SetGlobalGraphInfo(3, 5)
	a, err := kpdg.ParseGraph("{013>3, 023, 123, 014, 024>4, 124}")
	if err != nil {
		t.Fatal(err)
	}
	b, err := kpdg.ParseGraph("{013, 023>3, 123, 014>4, 024, 124}")
	if err != nil {
		t.Fatal(err)
	}
	a.Canonicalize()
	b.Canonicalize()

	c := kpdg.NewCounters()
	if !a.IsIsomorphic(b, c) {
		t.Fatal("expected a and b to be isomorphic")
	}

	var buf bytes.Buffer
	c.Print(&buf)
	for _, want := range []string{
		"Graph isomorphic tests",
		"Graph identical tests",
		"    Expensive tests",
		"Graph permute canonical",
	} {
		idx := bytes.Index(buf.Bytes(), []byte(want))
		if idx < 0 {
			t.Fatalf("expected %q to appear in the printed snapshot:\n%s", want, buf.String())
		}
		line := buf.Bytes()[idx:]
		if eol := bytes.IndexByte(line, '\n'); eol >= 0 {
			line = line[:eol]
		}
		if bytes.HasSuffix(line, []byte("= 0")) {
			t.Fatalf("expected %q to have a nonzero tally, got line %q", want, line)
		}
	}
}

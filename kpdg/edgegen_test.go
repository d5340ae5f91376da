package kpdg_test

import (
	"testing"

	"github.com/2x3systems/kpdg/kpdg"
)

// TestEdgeGeneratorCompleteness checks that, with pruning disabled, Next
// enumerates exactly (K+2)^CandidateCount - 1 states (every non-identity
// digit assignment once) before reporting exhaustion, and that every
// emitted graph actually grew by at least one edge incident to the new
// vertex (SPEC_FULL.md §8 property 6).
func TestEdgeGeneratorCompleteness(t *testing.T) {
	kpdg.SetGlobalGraphInfo(3, 5)

	base := emptyBase(t)
	gen := kpdg.NewEdgeGenerator(4, base)

	want := 1
	for i := 0; i < gen.CandidateCount(); i++ {
		want *= 5 // K+2 = 5 for K=3
	}
	want--

	var out kpdg.Graph
	got := 0
	newVertexBit := uint8(1) << 3
	for gen.Next(&out, false, 0, 0, kpdg.InfiniteTheta) {
		got++
		if out.EdgeCount() <= base.EdgeCount() {
			t.Fatalf("state %d did not grow the edge set", got)
		}
		sawNewVertex := false
		for _, e := range out.Edges() {
			if e.VertexSet&newVertexBit != 0 {
				sawNewVertex = true
				break
			}
		}
		if !sawNewVertex {
			t.Fatalf("state %d has no edge incident to the new vertex", got)
		}
	}

	if got != want {
		t.Fatalf("enumerated %d states, want %d", got, want)
	}
}

// TestEdgeGeneratorTkSupersetSkip checks that when every T_k hit is reported
// through NotifyContainTkSkip, the generator never emits the same state twice
// and still emits at least one state.
func TestEdgeGeneratorTkSupersetSkip(t *testing.T) {
	kpdg.SetGlobalGraphInfo(3, 5)

	base := emptyBase(t)
	gen := kpdg.NewEdgeGenerator(4, base)

	seen := map[string]bool{}
	var out kpdg.Graph
	for gen.Next(&out, false, 0, 0, kpdg.InfiniteTheta) {
		key := out.String()
		if seen[key] {
			t.Fatalf("state %s emitted more than once", key)
		}
		seen[key] = true

		if out.ContainsTk(3) {
			gen.NotifyContainTkSkip()
		}
	}

	if len(seen) == 0 {
		t.Fatal("expected at least one emitted state")
	}
}

// TestEdgeGeneratorThetaPruningSoundness checks the no-false-negative
// direction of SPEC_FULL.md §8 property 7: every state that would beat the
// running minimum theta is still reachable with pruning enabled, even
// though pruning may also admit some states that don't (the generator's
// check is necessary, not sufficient -- the driver applies the final
// admission test itself).
func TestEdgeGeneratorThetaPruningSoundness(t *testing.T) {
	kpdg.SetGlobalGraphInfo(2, 4)
	knownMin := kpdg.NewFraction(3, 1)

	winners := map[string]bool{}
	{
		base := emptyBase(t)
		gen := kpdg.NewEdgeGenerator(4, base)
		var out kpdg.Graph
		for gen.Next(&out, false, 0, 0, kpdg.InfiniteTheta) {
			if out.GetTheta().Less(knownMin) {
				var canon kpdg.Graph
				out.CopyEdges(&canon)
				canon.Canonicalize()
				winners[canon.String()] = true
			}
		}
	}
	if len(winners) == 0 {
		t.Fatal("expected at least one state beating the bound in the unpruned enumeration")
	}

	reachable := map[string]bool{}
	{
		base := emptyBase(t)
		gen := kpdg.NewEdgeGenerator(4, base)
		var out kpdg.Graph
		for gen.Next(&out, true, 0, 0, knownMin) {
			var canon kpdg.Graph
			out.CopyEdges(&canon)
			canon.Canonicalize()
			reachable[canon.String()] = true
		}
	}

	for w := range winners {
		if !reachable[w] {
			t.Fatalf("pruning dropped a state that beats the bound: %s", w)
		}
	}
}

func emptyBase(t *testing.T) *kpdg.Graph {
	t.Helper()
	X := kpdg.NewGraph()
	X.Canonicalize()
	return X
}

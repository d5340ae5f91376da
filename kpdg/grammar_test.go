package kpdg_test

import (
	"testing"

	"github.com/2x3systems/kpdg/kpdg"
)

func TestParseGraphRoundTrip(t *testing.T) {
	kpdg.SetGlobalGraphInfo(3, 5)
	lit := "{013>3, 023>3, 014, 034}"
	X, err := kpdg.ParseGraph(lit)
	if err != nil {
		t.Fatal(err)
	}
	if got := X.String(); got != lit {
		t.Fatalf("round trip mismatch: got %s, want %s", got, lit)
	}
}

func TestParseGraphEmpty(t *testing.T) {
	kpdg.SetGlobalGraphInfo(3, 5)
	X, err := kpdg.ParseGraph("{}")
	if err != nil {
		t.Fatal(err)
	}
	if X.EdgeCount() != 0 {
		t.Fatalf("expected an empty graph, got %d edges", X.EdgeCount())
	}
}

func TestParseGraphRejectsWrongEdgeSize(t *testing.T) {
	kpdg.SetGlobalGraphInfo(3, 5)
	if _, err := kpdg.ParseGraph("{01}"); err == nil {
		t.Fatal("expected an error for an edge with too few vertices")
	}
	if _, err := kpdg.ParseGraph("{0123}"); err == nil {
		t.Fatal("expected an error for an edge with too many vertices")
	}
}

func TestParseGraphRejectsOutOfRangeVertex(t *testing.T) {
	kpdg.SetGlobalGraphInfo(3, 5)
	if _, err := kpdg.ParseGraph("{059}"); err == nil {
		t.Fatal("expected an error for a vertex ID beyond N")
	}
}

func TestParseGraphRejectsMalformedLiteral(t *testing.T) {
	kpdg.SetGlobalGraphInfo(3, 5)
	if _, err := kpdg.ParseGraph("013, 023"); err == nil {
		t.Fatal("expected an error for a literal missing its braces")
	}
}

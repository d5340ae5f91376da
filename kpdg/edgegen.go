package kpdg

// EdgeGenerator enumerates every distinct extension of a canonical base
// graph on n-1 vertices by a set of new K-edges that each include the new
// vertex n-1. Its state is a mixed-radix odometer: one base-K+2 digit per
// candidate vertex set, where digit 0 means "absent", 1 means "undirected",
// and 2..K+1 select one of the K members as the directed head.
type EdgeGenerator struct {
	base *Graph
	n    int

	// candidates[i] is the i-th candidate edge's full vertex set (a base mask
	// over {0..n-2} of popcount K-1, OR'd with the new vertex's bit),
	// ascending by base mask.
	candidates []uint8

	// candidateHeads[i] is the length K+2 vidx table for candidates[i]:
	// index 0 unused (notInSet), 1 is UndirectedHead, 2 is the new vertex,
	// 3..K+1 are the base mask's members in ascending bit order.
	candidateHeads [][]uint8

	enumState               []uint8
	highIdxNonZeroEnumState int

	StatsTkSkip                 int
	StatsTkSkipBits             int
	StatsThetaEdgesSkip         int
	StatsThetaDirectedEdgesSkip int
	StatsEdgeSets               int
}

// NewEdgeGenerator builds a generator that extends base (on n-1 vertices) up
// to n vertices.
func NewEdgeGenerator(n int, base *Graph) *EdgeGenerator {
	k := K()
	newVertexBit := uint8(1) << uint(n-1)
	limit := uint16(1) << uint(n-1)

	g := &EdgeGenerator{base: base, n: n}
	for _, baseMask := range VertexMasks(k - 1) {
		if uint16(baseMask) >= limit {
			continue
		}
		cand := baseMask | newVertexBit

		vidx := make([]uint8, k+2)
		vidx[0] = notInSet
		vidx[1] = UndirectedHead
		vidx[2] = uint8(n - 1)
		idx := 3
		for i := 0; i < n-1; i++ {
			if baseMask&(1<<uint(i)) != 0 {
				vidx[idx] = uint8(i)
				idx++
			}
		}

		g.candidates = append(g.candidates, cand)
		g.candidateHeads = append(g.candidateHeads, vidx)
	}
	g.enumState = make([]uint8, len(g.candidates))
	return g
}

// CandidateCount returns the number of candidate vertex sets, C(n-1, K-1).
func (g *EdgeGenerator) CandidateCount() int { return len(g.candidates) }

type optResult int

const (
	optContinueSearch optResult = iota
	optFoundCandidate
	optDone
)

// Next increments the odometer to the next state and, when use_min_theta_opt
// is set, applies the theta-lower-bound pruning of SPEC_FULL.md §4.4(b)
// before accepting it. On acceptance it writes the extended graph to out and
// returns true; it returns false once every state has been enumerated.
func (g *EdgeGenerator) Next(out *Graph, useMinThetaOpt bool, baseEdgeCount, baseDirectedEdgeCount int, knownMinTheta Fraction) bool {
	if useMinThetaOpt {
		if g.n != N() {
			panic("kpdg: theta pruning is only valid at the final enumeration level")
		}
		if knownMinTheta.Less(NewFraction(1, 1)) {
			panic("kpdg: theta pruning requires knownMinTheta >= 1")
		}
	}

	k := uint8(K())
	count := len(g.candidates)

search:
	for {
		hasValidCandidate := false
		for i := 0; i < count; i++ {
			g.enumState[i]++
			if i > g.highIdxNonZeroEnumState {
				g.highIdxNonZeroEnumState = i
			}
			if g.enumState[i] != k+2 {
				hasValidCandidate = true
				break
			}
			g.enumState[i] = 0
		}
		if !hasValidCandidate {
			return false
		}

		if !useMinThetaOpt {
			break search
		}

		switch g.performMinThetaOptimization(baseEdgeCount, baseDirectedEdgeCount, knownMinTheta) {
		case optFoundCandidate:
			break search
		case optDone:
			return false
		case optContinueSearch:
			continue search
		}
	}

	g.generateGraph(out, 0)
	g.StatsEdgeSets++
	return true
}

// generateGraph copies base's edges into out, then adds one edge per
// non-zero digit from skipFront up to the populated prefix.
func (g *EdgeGenerator) generateGraph(out *Graph, skipFront int) {
	g.base.CopyEdges(out)
	for j := skipFront; j <= g.highIdxNonZeroEnumState; j++ {
		if g.enumState[j] != 0 {
			head := g.candidateHeads[j][g.enumState[j]]
			out.AddEdge(NewEdge(g.candidates[j], head))
		}
	}
}

// performMinThetaOptimization implements SPEC_FULL.md §4.4(b) exactly,
// including its integer-arithmetic, round-down thresholds: substituting
// floating point or rounded rationals here would silently change which
// states get pruned.
func (g *EdgeGenerator) performMinThetaOptimization(baseEdgeCount, baseDirectedEdgeCount int, knownMinTheta Fraction) optResult {
	newEdgeThreshold := int(int64(TotalEdges()-baseEdgeCount)*knownMinTheta.Den/knownMinTheta.Num) - baseDirectedEdgeCount

	newEdges, newDirectedEdges, lowNonEdgeIdx, lowNonDirectedIdx := g.countEdges()

	if newEdges <= newEdgeThreshold {
		g.StatsThetaEdgesSkip++
		if lowNonEdgeIdx >= len(g.candidates) {
			return optDone
		}
		for i := 1; i <= lowNonEdgeIdx; i++ {
			g.enumState[i] = 1
		}
		if lowNonEdgeIdx > g.highIdxNonZeroEnumState {
			g.highIdxNonZeroEnumState = lowNonEdgeIdx
		}
		g.enumState[0] = 0
		return optContinueSearch
	}

	totalDirected := newDirectedEdges + baseDirectedEdgeCount
	totalUndirected := newEdges - newDirectedEdges + baseEdgeCount - baseDirectedEdgeCount
	if totalDirected == 0 || knownMinTheta.LessEqual(NewFraction(int64(TotalEdges()-totalUndirected), int64(totalDirected))) {
		g.StatsThetaDirectedEdgesSkip++
		if lowNonDirectedIdx >= len(g.candidates) {
			return optDone
		}
		for i := 1; i <= lowNonDirectedIdx; i++ {
			g.enumState[i] = 2
		}
		if lowNonDirectedIdx > g.highIdxNonZeroEnumState {
			g.highIdxNonZeroEnumState = lowNonDirectedIdx
		}
		g.enumState[0] = 1
		return optContinueSearch
	}

	return optFoundCandidate
}

// EdgeCounts summarizes the generator's current digit state, letting a
// caller log per-level progress without re-deriving it from an emitted
// graph (SPEC_FULL.md §11).
type EdgeCounts struct {
	NewEdges              int
	NewDirectedEdges      int
	FirstNonEdgeIndex     int
	FirstNonDirectedIndex int
}

// CountEdges reports the edge and directed-edge count implied by the
// current state, plus the lowest candidate index not yet present (resp. not
// yet directed).
func (g *EdgeGenerator) CountEdges() EdgeCounts {
	edges, directed, firstNonEdge, firstNonDirected := g.countEdges()
	return EdgeCounts{
		NewEdges:              edges,
		NewDirectedEdges:      directed,
		FirstNonEdgeIndex:     firstNonEdge,
		FirstNonDirectedIndex: firstNonDirected,
	}
}

func (g *EdgeGenerator) countEdges() (edges, directed, firstNonEdge, firstNonDirectedEdge int) {
	count := len(g.candidates)
	firstNonEdge = count
	firstNonDirectedEdge = count
	for i := 0; i < count; i++ {
		if g.enumState[i] != 0 {
			edges++
			if g.enumState[i] != 1 {
				directed++
			}
		} else if firstNonEdge == count {
			firstNonEdge = i
		}
		if firstNonDirectedEdge == count && (g.enumState[i] == 0 || g.enumState[i] == 1) {
			firstNonDirectedEdge = i
		}
	}
	return
}

// NotifyContainTkSkip tells the generator that the most recently emitted
// graph contains T_k, so every state reachable by only varying lower digits
// (a superset of the current edge set) also contains T_k and can be
// skipped. When digit 0 is zero, that lower-digit push is all it does. When
// digit 0 is non-zero and this is the final level, it instead re-emits the
// graph with increasing skip_front prefixes, disabling any prefix whose
// re-emission still contains T_k at the new vertex (SPEC_FULL.md §4.4(a),
// Open Question (c): the exact set of prunes depends on this iteration
// order).
func (g *EdgeGenerator) NotifyContainTkSkip() {
	g.StatsTkSkip++
	k := uint8(K())
	count := len(g.candidates)

	if g.enumState[0] == 0 {
		for i := 0; i < count; i++ {
			if g.enumState[i] != 0 {
				return
			}
			g.enumState[i] = k + 1
			g.StatsTkSkipBits++
		}
		return
	}

	if g.n != N() {
		return
	}

	var reemit Graph
	for skipFront := 1; skipFront < count; skipFront++ {
		g.generateGraph(&reemit, skipFront)
		if reemit.EdgeCount() == g.base.EdgeCount() {
			return
		}
		if reemit.ContainsTk(N() - 1) {
			g.enumState[skipFront-1] = k + 1
			g.StatsTkSkipBits++
		}
	}
}

package kpdg

// Edge is a single K-edge of a k-PDG: an N-bit vertex_set of popcount K, and
// either the UndirectedHead sentinel or a head vertex that is a member of
// vertex_set. Two bytes, matching the reference representation exactly --
// up to MaxEdges of these are held inline per Graph, millions of Graphs are
// built per run, and there is no room for a pointer or a slice header.
type Edge struct {
	VertexSet uint8
	Head      uint8
}

// NewEdge builds an Edge, panicking if head is neither UndirectedHead nor a
// member of vertexSet (I1). Constructing a bad Edge is a programmer fault.
func NewEdge(vertexSet, head uint8) Edge {
	if head != UndirectedHead && vertexSet&(1<<head) == 0 {
		panic("kpdg: edge head is not a member of its vertex set")
	}
	return Edge{VertexSet: vertexSet, Head: head}
}

// IsUndirected reports whether e carries no head vertex.
func (e Edge) IsUndirected() bool {
	return e.Head == UndirectedHead
}

// HasVertex reports whether v is a member of e's vertex set.
func (e Edge) HasVertex(v uint8) bool {
	return e.VertexSet&(1<<v) != 0
}

// edgeLess implements the Graph total order's per-edge comparison: vertex_set
// ascending, ties broken by head_vertex compared as a signed byte so that
// UndirectedHead (0xFF, i.e. -1) sorts below any real head.
func edgeLess(a, b Edge) bool {
	if a.VertexSet != b.VertexSet {
		return a.VertexSet < b.VertexSet
	}
	return int8(a.Head) < int8(b.Head)
}

// String renders e in the text format used throughout this package: the
// ascending digits of vertex_set, followed by ">h" for directed edges.
// Example: vertex_set {0,1,3}, head 3 -> "013>3".
func (e Edge) String() string {
	var buf [2*MaxN + 1]byte
	i := 0
	n := N()
	for v := 0; v < n; v++ {
		if e.VertexSet&(1<<uint(v)) != 0 {
			buf[i] = byte('0' + v)
			i++
		}
	}
	if !e.IsUndirected() {
		buf[i] = '>'
		i++
		buf[i] = byte('0' + e.Head)
		i++
	}
	return string(buf[:i])
}

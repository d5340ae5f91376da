package kpdg

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// graphLiteral is the participle grammar for the brace-enclosed edge-literal
// text format of SPEC_FULL.md §6, e.g. "{013>3, 023>3, 014, 034}". Unlike
// the reference grammar's default lexer, this one needs a custom Digits
// token: a run of vertex digits like "013" must reach the builder intact, a
// plain participle Int capture would collapse it into the number 13.
type graphLiteral struct {
	Edges []*edgeLiteral `"{" (@@ ("," @@)*)? "}"`
}

type edgeLiteral struct {
	Vertices string  `@Digits`
	Head     *string `(">" @Digits)?`
}

var edgeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\n\r]+`},
	{Name: "Punct", Pattern: `[{},>]`},
	{Name: "Digits", Pattern: `[0-9]+`},
})

var parseGraphLiteral = participle.MustBuild[graphLiteral](
	participle.Lexer(edgeLexer),
	participle.Elide("Whitespace"),
)

// ParseGraph parses the edge-literal text format into a fresh, non-canonical
// graph. SetGlobalGraphInfo must already have been called.
func ParseGraph(text string) (*Graph, error) {
	lit, err := parseGraphLiteral.ParseString("", text)
	if err != nil {
		return nil, errors.Wrap(ErrBadEdgeLiteral, err.Error())
	}

	k := K()
	n := N()
	X := NewGraph()

	for _, el := range lit.Edges {
		var vertexSet uint8
		for _, r := range el.Vertices {
			v := int(r - '0')
			if v < 0 || v >= n {
				return nil, errors.Wrapf(ErrBadVertexID, "vertex %d", v)
			}
			bit := uint8(1) << uint(v)
			if vertexSet&bit != 0 {
				return nil, errors.Wrapf(ErrBadEdgeLiteral, "vertex %d repeated", v)
			}
			vertexSet |= bit
		}

		switch {
		case popcount(vertexSet) < k:
			return nil, ErrEdgeTooSmall
		case popcount(vertexSet) > k:
			return nil, ErrEdgeTooBig
		}

		head := UndirectedHead
		if el.Head != nil {
			if len(*el.Head) != 1 {
				return nil, errors.Wrapf(ErrBadVertexID, "head %q", *el.Head)
			}
			h := int((*el.Head)[0] - '0')
			if h < 0 || h >= n {
				return nil, errors.Wrapf(ErrBadVertexID, "head %d", h)
			}
			if vertexSet&(1<<uint(h)) == 0 {
				return nil, errors.Wrapf(ErrBadVertexID, "head %d not in edge", h)
			}
			head = uint8(h)
		}
		if !X.EdgeAllowed(vertexSet) {
			return nil, errors.Wrapf(ErrBadEdgeLiteral, "duplicate edge %s", el.Vertices)
		}

		X.AddEdge(NewEdge(vertexSet, head))
	}

	return X, nil
}

package kpdg

// Fraction is an exact non-negative rational Num/Den with Den > 0, compared
// by cross-multiplication so no precision is ever lost to floating point.
// This matters because the theta-pruning thresholds in EdgeGenerator depend
// on exact integer arithmetic (see DESIGN.md, Open Question (b)).
type Fraction struct {
	Num int64
	Den int64
}

// infinityNum/infinityDen mirror the reference implementation's sentinel for
// "no directed edges": 1e8/1, comfortably larger than any real theta this
// package ever computes (TotalEdges is at most 35).
const (
	infinityNum = 100000000
	infinityDen = 1
)

// InfiniteTheta is returned by Graph.GetTheta for graphs with no directed
// edges.
var InfiniteTheta = Fraction{Num: infinityNum, Den: infinityDen}

// NewFraction constructs a Fraction, panicking if den <= 0 -- a caller
// building a Fraction from anything but a graph's own edge counts has
// violated a precondition of this package.
func NewFraction(num, den int64) Fraction {
	if den <= 0 {
		panic("kpdg: Fraction denominator must be positive")
	}
	return Fraction{Num: num, Den: den}
}

// Equal reports whether f and g represent the same rational value.
func (f Fraction) Equal(g Fraction) bool {
	return f.Num*g.Den == g.Num*f.Den
}

// Less reports whether f < g.
func (f Fraction) Less(g Fraction) bool {
	return f.Num*g.Den < g.Num*f.Den
}

// LessEqual reports whether f <= g.
func (f Fraction) LessEqual(g Fraction) bool {
	return f.Num*g.Den <= g.Num*f.Den
}

// Greater reports whether f > g.
func (f Fraction) Greater(g Fraction) bool {
	return g.Less(f)
}

// GreaterEqual reports whether f >= g.
func (f Fraction) GreaterEqual(g Fraction) bool {
	return g.LessEqual(f)
}

func (f Fraction) String() string {
	return itoa64(f.Num) + "/" + itoa64(f.Den)
}

func itoa64(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [24]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

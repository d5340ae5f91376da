package kpdg

import "errors"

// Errors returned by the edge-literal parser and other recoverable input
// faults. Programmer faults (violated preconditions) panic instead -- see
// DESIGN.md.
var (
	ErrBadEdgeLiteral = errors.New("kpdg: malformed edge literal")
	ErrBadVertexID    = errors.New("kpdg: vertex id out of range")
	ErrEdgeTooBig     = errors.New("kpdg: edge exceeds K vertices")
	ErrEdgeTooSmall   = errors.New("kpdg: edge has fewer than K vertices")
)

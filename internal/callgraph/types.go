// Package callgraph builds the randomized multi-component function graph
// described in SPEC_FULL.md 4.4, grounded on
// original_source/lib/callgraph/callgraph.cc.
package callgraph

import "github.com/Latimeriidae/coelacanth/internal/typegraph"

// FuncID addresses a vertex in a CallGraph's dense vertex table.
type FuncID int

// CallType tags an edge per SPEC_FULL.md 4.4.
type CallType int

const (
	Conditional CallType = iota
	Direct
	Indirect
)

func (k CallType) String() string {
	switch k {
	case Direct:
		return "Direct"
	case Indirect:
		return "Indirect"
	default:
		return "Conditional"
	}
}

// VoidType is the sentinel return-type id meaning "void".
const VoidType typegraph.NodeID = -1

// Meta is a function's metastructure: the four independent booleans
// gating which type-graph categories its signature may use.
type Meta struct {
	UseSigned   bool
	UseFloat    bool
	UseComplex  bool
	UsePointers bool
}

// Mask is a bit-set over {Direct, Conditional, Indirect} used to filter
// callee/caller iteration (SPEC_FULL.md 4.4's "Public queries").
type Mask int

const (
	MaskDirect      Mask = 1 << Direct
	MaskConditional Mask = 1 << Conditional
	MaskIndirect    Mask = 1 << Indirect
	MaskAll         Mask = MaskDirect | MaskConditional | MaskIndirect
)

func (m Mask) allows(k CallType) bool { return m&(1<<k) != 0 }

// Package typegraph builds the type DAG described in SPEC_FULL.md 4.3:
// a scalar catalog grown by repeated constrained splits into structs and
// arrays, then DAG-ified by subscalar unification and pointer
// retargeting. Grounded on original_source/include/typegraph/typegraph.h,
// typecats.h and lib/typegraph/typegraph.cc.
package typegraph

// ScalarDesc describes one entry of the fixed scalar catalog. Catalog
// length must equal the arity of the TG::TYPEPROB probability vector —
// Build validates this.
type ScalarDesc struct {
	Name     string
	Bits     int
	IsFloat  bool
	IsSigned bool
}

// Category is the tag of a type-graph vertex's payload, mirroring
// typecats.h's category_t for the type graph (a disjoint enum from the
// control graph's category_t in internal/controlgraph).
type Category int

const (
	CatScalar Category = iota
	CatStruct
	CatArray
	CatPointer
)

func (c Category) String() string {
	switch c {
	case CatScalar:
		return "scalar"
	case CatStruct:
		return "struct"
	case CatArray:
		return "array"
	case CatPointer:
		return "pointer"
	default:
		return "illegal"
	}
}

// Bitfield pairs a struct's scalar child with a bit width, per SPEC_FULL.md
// 4.3 step 6. Order follows the struct's field order.
type Bitfield struct {
	Child NodeID
	Width int
}

// NodeID addresses a vertex in a TypeGraph's dense vertex table.
type NodeID int

// Reachability classifies an ordered pair of vertices per the
// reachability-analysis supplement in SPEC_FULL.md 4.3.
type Reachability int

const (
	None Reachability = iota
	Direct
	Indirect
)

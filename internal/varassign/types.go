// Package varassign derives per-function variables (globals, locals,
// arguments, free indexes, permutators, pointees) from an immutable
// TypeGraph + CallGraph pair, per SPEC_FULL.md 4.5. The original's own
// function-variable loops (original_source/lib/varassign/varassign.cc)
// are empty stubs beyond get_name, so this model is built fresh in the
// style of the type graph's and call graph's support-set bookkeeping.
package varassign

import "github.com/Latimeriidae/coelacanth/internal/typegraph"

// VarID addresses a variable in a VarAssign's flat table — the id space
// is shared by globals and every function's locals, so a VarID alone
// disambiguates a variable regardless of which function sees it.
type VarID int

// Role classifies how get_name renders a variable, per SPEC_FULL.md 4.5:
// "g<id>" if global else "p<id>"/"i<id>"/"v<id>" depending on the
// function-local role.
type Role int

const (
	RoleGlobal Role = iota
	RoleIndex
	RolePointee
	RoleGeneric // locals, arguments, permutators
)

func (r Role) prefix() string {
	switch r {
	case RoleGlobal:
		return "g"
	case RoleIndex:
		return "i"
	case RolePointee:
		return "p"
	default:
		return "v"
	}
}

type varInfo struct {
	typ  typegraph.NodeID
	role Role
}

// funcState is the per-function grouping described in SPEC_FULL.md
// section 3's Data Model: an ordered locally-visible list plus the
// arguments/free-indexes/permutators sets and the pointee/access-index
// maps.
type funcState struct {
	locals      []VarID
	args        map[VarID]struct{}
	indexes     map[VarID]struct{}
	permutators map[VarID]struct{}

	// pointees[v][subtype] is the pointee variable created for the
	// pointer-typed descendant `subtype` reached from variable v (v's
	// own type if v is itself a pointer).
	pointees map[VarID]map[typegraph.NodeID]VarID
	// accidxs[v] is the list of access-index variables created for every
	// array descendant of v's type.
	accidxs map[VarID][]VarID
	// permsOf[v] is the list of permutator variables attached to array
	// variable v.
	permsOf map[VarID][]VarID
}

func newFuncState() *funcState {
	return &funcState{
		args:        map[VarID]struct{}{},
		indexes:     map[VarID]struct{}{},
		permutators: map[VarID]struct{}{},
		pointees:    map[VarID]map[typegraph.NodeID]VarID{},
		accidxs:     map[VarID][]VarID{},
		permsOf:     map[VarID][]VarID{},
	}
}

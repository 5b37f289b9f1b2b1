package varassign

import (
	"fmt"

	"github.com/Latimeriidae/coelacanth/internal/callgraph"
	"github.com/Latimeriidae/coelacanth/internal/typegraph"
)

// NVars returns the total number of variables created: globals, every
// function's locals and arguments, and the pointee, permutator and
// access-index variables.
func (va *VarAssign) NVars() int { return len(va.info) }

// Type returns v's type-graph vertex.
func (va *VarAssign) Type(v VarID) typegraph.NodeID { return va.info[v].typ }

// GlobalVars returns the ordered global variable ids.
func (va *VarAssign) GlobalVars() []VarID { return append([]VarID{}, va.globals...) }

// LocalVars returns f's full locally-visible list (free indexes, folded
// globals, generic locals, arguments), in creation order.
func (va *VarAssign) LocalVars(f callgraph.FuncID) []VarID {
	return append([]VarID{}, va.funcs[f].locals...)
}

// IsArg reports whether v is one of f's declared argument variables.
func (va *VarAssign) IsArg(f callgraph.FuncID, v VarID) bool {
	_, ok := va.funcs[f].args[v]
	return ok
}

// IsIndex reports whether v is a free index variable of f.
func (va *VarAssign) IsIndex(f callgraph.FuncID, v VarID) bool {
	_, ok := va.funcs[f].indexes[v]
	return ok
}

// IsPermutator reports whether v is a permutator variable of f.
func (va *VarAssign) IsPermutator(f callgraph.FuncID, v VarID) bool {
	_, ok := va.funcs[f].permutators[v]
	return ok
}

// HavePointee reports whether f has created a pointee for v reached
// through the pointer-typed vertex subtype (v's own type when v is
// itself a pointer).
func (va *VarAssign) HavePointee(f callgraph.FuncID, v VarID, subtype typegraph.NodeID) bool {
	m, ok := va.funcs[f].pointees[v]
	if !ok {
		return false
	}
	_, ok = m[subtype]
	return ok
}

// Pointee returns the pointee variable created for v/subtype. Callers
// must check HavePointee first.
func (va *VarAssign) Pointee(f callgraph.FuncID, v VarID, subtype typegraph.NodeID) VarID {
	return va.funcs[f].pointees[v][subtype]
}

// HaveAccs reports whether v has any access-index variables.
func (va *VarAssign) HaveAccs(f callgraph.FuncID, v VarID) bool {
	return len(va.funcs[f].accidxs[v]) > 0
}

// AccsBegin and AccsEnd bound v's access-index slice (mirroring the
// original's begin/end iterator-pair accessors).
func (va *VarAssign) AccsBegin(f callgraph.FuncID, v VarID) []VarID {
	return append([]VarID{}, va.funcs[f].accidxs[v]...)
}
func (va *VarAssign) AccsEnd(f callgraph.FuncID, v VarID) int {
	return len(va.funcs[f].accidxs[v])
}

// PermsOf returns the permutator variables attached to array variable v.
func (va *VarAssign) PermsOf(f callgraph.FuncID, v VarID) []VarID {
	return append([]VarID{}, va.funcs[f].permsOf[v]...)
}

// GetName renders v's identifier per the get_name naming convention:
// "g<id>" for globals, "i<id>" for free indexes, "p<id>" for pointees,
// "v<id>" for everything else (locals/args/permutators).
func (va *VarAssign) GetName(v VarID) string {
	return fmt.Sprintf("%s%d", va.info[v].role.prefix(), int(v))
}

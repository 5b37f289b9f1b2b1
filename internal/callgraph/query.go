package callgraph

import (
	"github.com/Latimeriidae/coelacanth/internal/config"
	"github.com/Latimeriidae/coelacanth/internal/typegraph"
)

// NFuncs returns the vertex count.
func (cg *CallGraph) NFuncs() int { return len(cg.vertices) }

// MainRoot returns the distinguished entry vertex (component 0, head 0).
func (cg *CallGraph) MainRoot() FuncID { return cg.mainRoot }

// Component reports a vertex's weakly-connected component number.
func (cg *CallGraph) Component(v FuncID) int { return cg.vertices[v].component }

// IsIndirect reports whether v belongs to the indirect-call-eligible set.
func (cg *CallGraph) IsIndirect(v FuncID) bool { return cg.vertices[v].indirect }

// RetType returns the vertex's return type, or VoidType.
func (cg *CallGraph) RetType(v FuncID) typegraph.NodeID { return cg.vertices[v].ret }

// ArgTypes returns the vertex's ordered argument types.
func (cg *CallGraph) ArgTypes(v FuncID) []typegraph.NodeID {
	return append([]typegraph.NodeID{}, cg.vertices[v].args...)
}

// Meta returns the vertex's metastructure.
func (cg *CallGraph) Meta(v FuncID) Meta { return cg.vertices[v].meta }

// AcceptType mirrors accept_type(func, type) == check_type(meta, type).
func (cg *CallGraph) AcceptType(tg *typegraph.TypeGraph, f FuncID, t typegraph.NodeID) bool {
	return checkType(cg.vertices[f].meta, tg, t)
}

// AllFuncs returns every vertex id in ascending order.
func (cg *CallGraph) AllFuncs() []FuncID {
	ids := make([]FuncID, len(cg.vertices))
	for i := range ids {
		ids[i] = FuncID(i)
	}
	return ids
}

// Callees returns f's successors filtered by mask, in edge-insertion
// order (call-order, as 4.6's initial-seed construction needs). The
// Indirect bit is independent of an edge's own Direct/Conditional kind —
// it matches callees carrying the indirect-eligible vertex flag (4.4
// step 7 only flags vertices, it never reclassifies edges) — so a callee
// can satisfy both MaskDirect and MaskIndirect at once.
func (cg *CallGraph) Callees(f FuncID, mask Mask) []FuncID {
	var out []FuncID
	for _, e := range cg.out[f] {
		if mask.allows(e.kind) || (mask&MaskIndirect != 0 && cg.vertices[e.to].indirect) {
			out = append(out, e.to)
		}
	}
	return out
}

// Callers returns f's predecessors filtered by mask (MaskIndirect has no
// effect here: indirect eligibility is a property of the callee, not the
// caller).
func (cg *CallGraph) Callers(f FuncID, mask Mask) []FuncID {
	var out []FuncID
	for _, e := range cg.in[f] {
		if mask.allows(e.kind) {
			out = append(out, e.to)
		}
	}
	return out
}

// RandomCallee uniformly draws one callee of f filtered by mask, or -1
// if none are available — used by the control graph's CondCall/IndCall
// specials (SPEC_FULL.md 4.6).
func (cg *CallGraph) RandomCallee(cfg *config.Config, f FuncID, mask Mask) (FuncID, error) {
	callees := cg.Callees(f, mask)
	if len(callees) == 0 {
		return -1, nil
	}
	idx, err := cfg.UniformIndex(len(callees))
	if err != nil {
		return -1, err
	}
	return callees[idx], nil
}

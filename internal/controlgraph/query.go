package controlgraph

import (
	"github.com/Latimeriidae/coelacanth/internal/callgraph"
	"github.com/Latimeriidae/coelacanth/internal/semitree"
	"github.com/Latimeriidae/coelacanth/internal/varassign"
)

// Root returns the pseudo-root node id (PSEUDO_VERTEX in the original).
func (st *SplitTree) Root() semitree.NodeID { return st.root }

// Func returns the function this tree belongs to.
func (st *SplitTree) Func() callgraph.FuncID { return st.f }

// Category reports a node's category.
func (st *SplitTree) Category(id semitree.NodeID) Category { return st.tree.Payload(id).p.cat }

// Children returns a node's ordered children.
func (st *SplitTree) Children(id semitree.NodeID) []semitree.NodeID { return st.tree.Children(id) }

// Parent returns a node's parent, or semitree.None for the root.
func (st *SplitTree) Parent(id semitree.NodeID) semitree.NodeID { return st.tree.Parent(id) }

// Defs and Uses return a node's variable reference lists.
func (st *SplitTree) Defs(id semitree.NodeID) []varassign.VarID {
	return append([]varassign.VarID{}, st.tree.Payload(id).defs...)
}
func (st *SplitTree) Uses(id semitree.NodeID) []varassign.VarID {
	return append([]varassign.VarID{}, st.tree.Payload(id).uses...)
}

// CallPayload returns a Call node's call kind and callee. Callers must
// check Category(id) == Call first.
func (st *SplitTree) CallPayload(id semitree.NodeID) (callgraph.CallType, callgraph.FuncID) {
	p := st.tree.Payload(id).p
	return p.callType, p.callee
}

// LoopPayload returns a Loop node's start/stop/step. Callers must check
// Category(id) == Loop first.
func (st *SplitTree) LoopPayload(id semitree.NodeID) (start, stop, step int) {
	p := st.tree.Payload(id).p
	return p.start, p.stop, p.step
}

// BreakPayload returns a Break node's kind. Callers must check
// Category(id) == Break first.
func (st *SplitTree) BreakPayload(id semitree.NodeID) BreakKind {
	return st.tree.Payload(id).p.breakKind
}

// HaveParentOfCategory mirrors have_parent: does id have an ancestor
// (strictly above it, not itself) of category pcat?
func (st *SplitTree) HaveParentOfCategory(id semitree.NodeID, pcat Category) bool {
	cur := st.tree.Parent(id)
	for cur != st.root && cur != semitree.None {
		if st.Category(cur) == pcat {
			return true
		}
		cur = st.tree.Parent(cur)
	}
	return false
}

// NNodes returns the total node count, including the pseudo-root.
func (st *SplitTree) NNodes() int {
	return st.nodeCount
}

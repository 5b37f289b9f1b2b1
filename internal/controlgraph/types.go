// Package controlgraph builds the per-function split tree described in
// SPEC_FULL.md 4.6, grounded on
// original_source/include/controlgraph/controltypes.h,
// original_source/lib/controlgraph/splittree.cc and controlgraph.cc, atop
// the generic internal/semitree arena.
package controlgraph

import (
	"github.com/Latimeriidae/coelacanth/internal/callgraph"
	"github.com/Latimeriidae/coelacanth/internal/semitree"
	"github.com/Latimeriidae/coelacanth/internal/varassign"
)

// Category classifies a split-tree node, mirroring controltypes.h's
// category_t.
type Category int

const (
	Block Category = iota
	Call
	Loop
	If
	Switch
	Region
	Branching
	Access
	Break
)

func (c Category) String() string {
	switch c {
	case Block:
		return "BLOCK"
	case Call:
		return "CALL"
	case Loop:
		return "LOOP"
	case If:
		return "IF"
	case Switch:
		return "SWITCH"
	case Region:
		return "REGION"
	case Branching:
		return "BRANCHING"
	case Access:
		return "ACCESS"
	case Break:
		return "BREAK"
	default:
		return "ILLEGAL"
	}
}

// AllowDefs/AllowUses/IsBranching mirror vertexprop_t's predicates.
func (c Category) AllowDefs() bool { return c == Block || c == Call }
func (c Category) AllowUses() bool { return c != If && c != Switch && c != Region }
func (c Category) IsBranching() bool { return c == If || c == Switch || c == Region }

// Splittable reports whether c is a node the splitting loop may pick —
// only plain Block nodes.
func (c Category) Splittable() bool { return c == Block }

// BreakKind tags a Break node's payload.
type BreakKind int

const (
	BreakBreak BreakKind = iota
	BreakContinue
	BreakReturn
)

func (k BreakKind) String() string {
	switch k {
	case BreakBreak:
		return "break"
	case BreakContinue:
		return "continue"
	default:
		return "return"
	}
}

// payload is the category-specific data carried by a node, mirroring
// controltypes.h's common_t variant. Only the fields relevant to a
// node's category are meaningful.
type payload struct {
	cat Category

	// Call
	callType callgraph.CallType
	callee   callgraph.FuncID

	// Loop
	start, stop, step int

	// Break
	breakKind BreakKind
}

// node is the per-vertex bookkeeping stored as the semitree payload.
type node struct {
	p    payload
	defs []varassign.VarID
	uses []varassign.VarID
}

// SplitTree is one function's constructed split tree: the semitree arena
// plus the set of currently-splittable block ids.
type SplitTree struct {
	tree *semitree.Tree[node]
	root semitree.NodeID

	f callgraph.FuncID

	// blocks is the live set of splittable Block node ids, mirroring
	// splittree.cc's bbs_ std::set<vertex_t>.
	blocks map[semitree.NodeID]struct{}

	nodeCount int
}

package controlgraph

import (
	"github.com/Latimeriidae/coelacanth/internal/callgraph"
	"github.com/Latimeriidae/coelacanth/internal/config"
	"github.com/Latimeriidae/coelacanth/internal/semitree"
	"github.com/Latimeriidae/coelacanth/internal/varassign"
)

// Build constructs one function's split tree: initial seeds, the
// MS::SPLITS-iteration splitting loop, variable assignment, then the
// access-block pass (SPEC_FULL.md 4.6).
func Build(cfg *config.Config, cg *callgraph.CallGraph, va *varassign.VarAssign, f callgraph.FuncID) (*SplitTree, error) {
	st := &SplitTree{
		tree:   semitree.New[node](),
		f:      f,
		blocks: map[semitree.NodeID]struct{}{},
	}

	// The root is a pseudo-vertex (PSEUDO_VERTEX in the original): never
	// itself a Block, never splittable, never dumped.
	st.root = st.tree.NewBranch(node{p: payload{cat: Region}})
	st.nodeCount++

	st.seedInitial(cg, f)

	nsplits, err := cfg.Get(config.MSSplits)
	if err != nil {
		return nil, err
	}
	for i := 0; i < nsplits; i++ {
		if len(st.blocks) == 0 {
			break
		}
		target, err := st.pickSplittable(cfg)
		if err != nil {
			return nil, err
		}
		if err := st.doSplit(cfg, cg, f, target); err != nil {
			return nil, err
		}
	}

	for id := 1; id < st.nodeCount; id++ {
		st.assignVarsTo(cfg, va, f, semitree.NodeID(id))
	}

	if err := st.addAccessBlocks(va, f); err != nil {
		return nil, err
	}

	return st, nil
}

// seedInitial is the "initial seeds" step: a Block, then for every
// Direct callee of f in call-order, Call(Direct, callee) followed by a
// Block.
func (st *SplitTree) seedInitial(cg *callgraph.CallGraph, f callgraph.FuncID) {
	st.appendBlock(st.root)
	for _, callee := range cg.Callees(f, callgraph.MaskDirect) {
		st.appendNode(st.root, node{p: payload{cat: Call, callType: callgraph.Direct, callee: callee}})
		st.appendBlock(st.root)
	}
}

func (st *SplitTree) appendBlock(parent semitree.NodeID) semitree.NodeID {
	return st.appendNode(parent, node{p: payload{cat: Block}})
}

func (st *SplitTree) appendNode(parent semitree.NodeID, n node) semitree.NodeID {
	id := st.tree.NewBranch(n)
	st.tree.AppendChild(parent, id)
	st.nodeCount++
	if n.p.cat.Splittable() {
		st.blocks[id] = struct{}{}
	}
	return id
}

func (st *SplitTree) insertNodeAfter(parent semitree.NodeID, afterIdx int, n node) (semitree.NodeID, int) {
	id := st.tree.NewBranch(n)
	pos := st.tree.InsertChildAfter(parent, afterIdx, id)
	st.nodeCount++
	if n.p.cat.Splittable() {
		st.blocks[id] = struct{}{}
	}
	return id, pos
}

func (st *SplitTree) turnInto(id semitree.NodeID, p payload) {
	n := st.tree.Payload(id)
	delete(st.blocks, id)
	n.p = p
	st.tree.SetPayload(id, n)
}

// pickSplittable draws a uniform random element of the current
// splittable-block set, in ascending id order (the set itself has no
// natural order, so this fixes one for determinism).
func (st *SplitTree) pickSplittable(cfg *config.Config) (semitree.NodeID, error) {
	ids := make([]semitree.NodeID, 0, len(st.blocks))
	for id := range st.blocks {
		ids = append(ids, id)
	}
	sortNodeIDs(ids)
	idx, err := cfg.UniformIndex(len(ids))
	if err != nil {
		return 0, err
	}
	return ids[idx], nil
}

func sortNodeIDs(ids []semitree.NodeID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}

// doSplit is do_split: add CN::ADDBLOCKS sibling blocks after the
// target, reassign the split to a uniform random one of the new
// siblings, then turn it into a container or a special node.
func (st *SplitTree) doSplit(cfg *config.Config, cg *callgraph.CallGraph, f callgraph.FuncID, target semitree.NodeID) error {
	parent := st.tree.Parent(target)
	addBlocks, err := cfg.Get(config.CNAddBlocks)
	if err != nil {
		return err
	}

	if addBlocks > 0 {
		afterIdx := st.tree.IndexInParent(target)
		newIDs := make([]semitree.NodeID, addBlocks)
		for i := 0; i < addBlocks; i++ {
			var id semitree.NodeID
			id, afterIdx = st.insertNodeAfter(parent, afterIdx, node{p: payload{cat: Block}})
			newIDs[i] = id
		}
		pick, err := cfg.UniformIndex(addBlocks)
		if err != nil {
			return err
		}
		target = newIDs[pick]
	}

	expand, err := cfg.GetBool(config.CNExpandCont)
	if err != nil {
		return err
	}
	if expand {
		return st.addContainer(cfg, target)
	}
	return st.addSpecial(cfg, cg, f, target)
}

// addContainer is add_container: turn target into If/For/Switch/Region
// and create its children.
func (st *SplitTree) addContainer(cfg *config.Config, target semitree.NodeID) error {
	contType, err := cfg.Get(config.CNContProb)
	if err != nil {
		return err
	}

	switch contType {
	case config.ContProbIf:
		return st.addBranchingContainer(cfg, target, If, config.CNNBranchesIf)
	case config.ContProbSwitch:
		return st.addBranchingContainer(cfg, target, Switch, config.CNNBranchesSwitch)
	case config.ContProbRegion:
		return st.addBranchingContainer(cfg, target, Region, config.CNNBranchesRgn)
	case config.ContProbFor:
		start, err := cfg.Get(config.CNForStart)
		if err != nil {
			return err
		}
		size, err := cfg.Get(config.CNForSize)
		if err != nil {
			return err
		}
		step, err := cfg.Get(config.CNForStep)
		if err != nil {
			return err
		}
		st.turnInto(target, payload{cat: Loop, start: start, stop: start + size, step: step})
		st.appendBlock(target)
		return nil
	default:
		return nil
	}
}

func (st *SplitTree) addBranchingContainer(cfg *config.Config, target semitree.NodeID, cat Category, nbranchesID config.ID) error {
	st.turnInto(target, payload{cat: cat})
	nbranches, err := cfg.Get(nbranchesID)
	if err != nil {
		return err
	}
	for i := 0; i < nbranches; i++ {
		branch := st.appendNode(target, node{p: payload{cat: Branching}})
		st.appendBlock(branch)
	}
	return nil
}

// addSpecial is add_special: draw Break/CondCall/IndCall.
func (st *SplitTree) addSpecial(cfg *config.Config, cg *callgraph.CallGraph, f callgraph.FuncID, target semitree.NodeID) error {
	blockType, err := cfg.Get(config.CNBlockProb)
	if err != nil {
		return err
	}
	switch blockType {
	case config.BlockProbBreak:
		kind := BreakReturn
		if st.HaveParentOfCategory(target, Loop) {
			draw, err := cfg.Get(config.CNBreakType)
			if err != nil {
				return err
			}
			switch draw {
			case config.BreakTypeBreak:
				kind = BreakBreak
			case config.BreakTypeContinue:
				kind = BreakContinue
			default:
				kind = BreakReturn
			}
		}
		st.turnInto(target, payload{cat: Break, breakKind: kind})
		return nil
	case config.BlockProbCCall, config.BlockProbICall:
		callType := callgraph.Indirect
		mask := callgraph.MaskIndirect
		if blockType == config.BlockProbCCall {
			callType = callgraph.Conditional
			mask = callgraph.MaskConditional
		}
		callee, err := cg.RandomCallee(cfg, f, mask)
		if err != nil {
			return err
		}
		if callee == -1 {
			return nil
		}
		st.turnInto(target, payload{cat: Call, callType: callType, callee: callee})
		return nil
	default:
		return nil
	}
}

// assignVarsTo is assign_vars_to: for every non-Loop node, populate defs
// (if allowed) from the function's locally-visible variable list,
// CN::DEFS of them, and uses (if allowed), CN::USES of them.
func (st *SplitTree) assignVarsTo(cfg *config.Config, va *varassign.VarAssign, f callgraph.FuncID, id semitree.NodeID) {
	cat := st.Category(id)
	if cat == Loop {
		return
	}
	vars := va.LocalVars(f)
	if len(vars) == 0 {
		return
	}
	n := st.tree.Payload(id)
	if cat.AllowDefs() {
		n.defs = append(n.defs, st.drawVars(cfg, vars, config.CNDefs)...)
	}
	if cat.AllowUses() {
		n.uses = append(n.uses, st.drawVars(cfg, vars, config.CNUses)...)
	}
	st.tree.SetPayload(id, n)
}

func (st *SplitTree) drawVars(cfg *config.Config, vars []varassign.VarID, countID config.ID) []varassign.VarID {
	count, err := cfg.Get(countID)
	if err != nil || count <= 0 {
		return nil
	}
	out := make([]varassign.VarID, 0, count)
	for i := 0; i < count; i++ {
		idx, err := cfg.UniformIndex(len(vars))
		if err != nil {
			break
		}
		out = append(out, vars[idx])
	}
	return out
}

// addAccessBlocks is the resolved access-block pass (SPEC_FULL.md
// 4.6): every splittable Block node that has a def/use variable with a
// registered array/pointer descendant gets a synthesized Access node as
// its only child, holding the Block's former children and carrying those
// access-index/pointee variables as uses.
func (st *SplitTree) addAccessBlocks(va *varassign.VarAssign, f callgraph.FuncID) error {
	targets := make([]semitree.NodeID, 0, len(st.blocks))
	for id := range st.blocks {
		targets = append(targets, id)
	}
	sortNodeIDs(targets)

	for _, id := range targets {
		n := st.tree.Payload(id)
		accessUses := collectAccessUses(va, f, n.defs, n.uses)
		if len(accessUses) == 0 {
			continue
		}
		access := st.tree.NewBranch(node{p: payload{cat: Access}, uses: accessUses})
		st.nodeCount++

		children := append([]semitree.NodeID{}, st.tree.Children(id)...)
		for _, c := range children {
			st.tree.AppendChild(access, c)
		}
		st.tree.ReplaceChildren(id, []semitree.NodeID{access})
	}
	return nil
}

func collectAccessUses(va *varassign.VarAssign, f callgraph.FuncID, defs, uses []varassign.VarID) []varassign.VarID {
	seen := map[varassign.VarID]struct{}{}
	var out []varassign.VarID
	consider := func(v varassign.VarID) {
		if va.HaveAccs(f, v) {
			for _, idx := range va.AccsBegin(f, v) {
				if _, ok := seen[idx]; !ok {
					seen[idx] = struct{}{}
					out = append(out, idx)
				}
			}
		}
		for _, p := range accessPointees(va, f, v) {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				out = append(out, p)
			}
		}
	}
	for _, v := range defs {
		consider(v)
	}
	for _, v := range uses {
		consider(v)
	}
	return out
}

func accessPointees(va *varassign.VarAssign, f callgraph.FuncID, v varassign.VarID) []varassign.VarID {
	t := va.Type(v)
	if va.HavePointee(f, v, t) {
		return []varassign.VarID{va.Pointee(f, v, t)}
	}
	return nil
}

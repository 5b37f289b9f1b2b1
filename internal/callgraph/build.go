package callgraph

import (
	"errors"
	"sort"

	"github.com/Latimeriidae/coelacanth/internal/coelerr"
	"github.com/Latimeriidae/coelacanth/internal/config"
	"github.com/Latimeriidae/coelacanth/internal/typegraph"
)

// Build runs the full 4.4 constructor sequence against an immutable
// TypeGraph: random digraph, no-source repair, leaf partition, component
// repair, self-loops, Direct-edge marking, indirect set, metastructure,
// signature assignment.
func Build(cfg *config.Config, tg *typegraph.TypeGraph) (*CallGraph, error) {
	cg := newGraph()

	if err := cg.randomDigraph(cfg); err != nil {
		return nil, err
	}
	if err := cg.repairNoSource(cfg); err != nil {
		return nil, err
	}
	if err := cg.partitionLeaves(cfg); err != nil {
		return nil, err
	}
	cg.repairComponents()
	if err := cg.addSelfLoops(cfg); err != nil {
		return nil, err
	}
	cg.markDirectEdges()
	indirectSet, err := cg.chooseIndirectSet(cfg)
	if err != nil {
		return nil, err
	}
	if err := cg.assignMetastructure(cfg, indirectSet); err != nil {
		return nil, err
	}
	if err := cg.assignSignatures(cfg, tg, indirectSet); err != nil {
		return nil, err
	}
	return cg, nil
}

// randomDigraph is 4.4 step 1.
func (cg *CallGraph) randomDigraph(cfg *config.Config) error {
	n, err := cfg.Get(config.CGVertices)
	if err != nil {
		return err
	}
	pct, err := cfg.Get(config.CGEdgeSet)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		cg.addVertex()
	}
	for u := FuncID(0); int(u) < n; u++ {
		for v := FuncID(0); int(v) < n; v++ {
			if u == v {
				continue
			}
			draw, err := cfg.UniformIndex(100)
			if err != nil {
				return err
			}
			if draw < pct {
				cg.addEdge(u, v, Conditional)
			}
		}
	}
	return nil
}

// repairNoSource is 4.4 step 2.
func (cg *CallGraph) repairNoSource(cfg *config.Config) error {
	hasSource := false
	for v := range cg.vertices {
		if cg.inDegree(FuncID(v)) == 0 {
			hasSource = true
			break
		}
	}
	if hasSource {
		return nil
	}
	conns, err := cfg.Get(config.CGArtificialConns)
	if err != nil {
		return err
	}
	n := len(cg.vertices)
	newV := cg.addVertex()
	for i := 0; i < conns && n > 0; i++ {
		idx, err := cfg.UniformIndex(n)
		if err != nil {
			return err
		}
		cg.addEdge(newV, FuncID(idx), Conditional)
	}
	return nil
}

// partitionLeaves is 4.4 step 3.
func (cg *CallGraph) partitionLeaves(cfg *config.Config) error {
	var nonLeafs []FuncID
	for v := range cg.vertices {
		if cg.outDegree(FuncID(v)) > 0 {
			nonLeafs = append(nonLeafs, FuncID(v))
		}
	}
	if len(nonLeafs) == 0 {
		return coelerr.New(coelerr.GraphBuildErrorKind, "callgraph: no non-leaf vertex to attach leaves to")
	}
	addLeafs, err := cfg.Get(config.CGAddLeafs)
	if err != nil {
		return err
	}
	for i := 0; i < addLeafs; i++ {
		idx, err := cfg.UniformIndex(len(nonLeafs))
		if err != nil {
			return err
		}
		leaf := cg.addVertex()
		cg.addEdge(nonLeafs[idx], leaf, Conditional)
	}
	return nil
}

// repairComponents is 4.4 step 4.
func (cg *CallGraph) repairComponents() {
	n := len(cg.vertices)
	uf := newUnionFind(n)
	for u := 0; u < n; u++ {
		for _, e := range cg.out[u] {
			uf.union(u, int(e.to))
		}
	}

	membership := map[int][]FuncID{}
	for v := 0; v < n; v++ {
		root := uf.find(v)
		membership[root] = append(membership[root], FuncID(v))
	}

	type comp struct {
		members []FuncID
		heads   []FuncID
	}
	var comps []comp
	for _, members := range membership {
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
		var heads []FuncID
		for _, v := range members {
			if cg.inDegree(v) == 0 {
				heads = append(heads, v)
			}
		}
		if len(heads) == 0 {
			heads = []FuncID{members[0]}
		}
		comps = append(comps, comp{members: members, heads: heads})
	}

	// members is sorted ascending above, so members[0] is each component's
	// smallest vertex id: a fully deterministic tiebreaker independent of
	// map-iteration order.
	sort.Slice(comps, func(i, j int) bool {
		if len(comps[i].heads) != len(comps[j].heads) {
			return len(comps[i].heads) > len(comps[j].heads)
		}
		return comps[i].members[0] < comps[j].members[0]
	})

	for ci, c := range comps {
		root := c.heads[0]
		for _, h := range c.heads[1:] {
			if !cg.hasEdge(root, h) {
				cg.addEdge(root, h, Conditional)
			}
		}
		for _, v := range c.members {
			cg.vertices[v].component = ci
		}
	}

	cg.mainRoot = comps[0].heads[0]
	for _, c := range comps[1:] {
		other := c.heads[0]
		if !cg.hasEdge(cg.mainRoot, other) {
			cg.addEdge(cg.mainRoot, other, Conditional)
		}
	}

	cg.components = make([][]FuncID, len(comps))
	for i, c := range comps {
		cg.components[i] = c.members
	}
}

// addSelfLoops is 4.4 step 5.
func (cg *CallGraph) addSelfLoops(cfg *config.Config) error {
	for v := range cg.vertices {
		add, err := cfg.GetBool(config.CGSelfLoop)
		if err != nil {
			return err
		}
		if add {
			cg.addEdge(FuncID(v), FuncID(v), Conditional)
		}
	}
	return nil
}

// markDirectEdges is 4.4 step 6: BFS tree edges from mainRoot become
// Direct; every other edge keeps its default Conditional kind.
func (cg *CallGraph) markDirectEdges() {
	visited := make([]bool, len(cg.vertices))
	visited[cg.mainRoot] = true
	queue := []FuncID{cg.mainRoot}
	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		for _, e := range cg.out[cur] {
			if e.to == cur {
				continue // self-loops are never tree edges
			}
			if !visited[e.to] {
				visited[e.to] = true
				cg.setEdgeKind(cur, e.to, Direct)
				queue = append(queue, e.to)
			}
		}
	}
}

// chooseIndirectSet is 4.4 step 7: drain non-root vertices of non-main
// components deterministically in order first, then uniform-sample only
// the remaining shortfall from the main component, excluding its root.
func (cg *CallGraph) chooseIndirectSet(cfg *config.Config) ([]FuncID, error) {
	n, err := cfg.Get(config.CGIndSetCnt)
	if err != nil {
		return nil, err
	}
	mainComponent := cg.vertices[cg.mainRoot].component
	var nonMain, mainPool []FuncID
	for _, comp := range cg.components {
		for _, v := range comp {
			if v == cg.mainRoot {
				continue
			}
			if cg.vertices[v].component != mainComponent {
				if cg.hasEdge(cg.mainRoot, v) {
					continue // the component's root, linked from the main root
				}
				nonMain = append(nonMain, v)
			} else {
				mainPool = append(mainPool, v)
			}
		}
	}

	var chosen []FuncID
	if n <= len(nonMain) {
		chosen = append(chosen, nonMain[:n]...)
	} else {
		chosen = append(chosen, nonMain...)
		shortfall := n - len(nonMain)
		if shortfall > len(mainPool) {
			shortfall = len(mainPool)
		}
		remaining := append([]FuncID{}, mainPool...)
		for i := 0; i < shortfall; i++ {
			idx, err := cfg.UniformIndex(len(remaining))
			if err != nil {
				return nil, err
			}
			chosen = append(chosen, remaining[idx])
			remaining = append(remaining[:idx], remaining[idx+1:]...)
		}
	}

	for _, v := range chosen {
		cg.vertices[v].indirect = true
	}
	return chosen, nil
}

// assignMetastructure is 4.4 step 8: one shared draw for the whole
// indirect set, an independent draw for every other vertex.
func (cg *CallGraph) assignMetastructure(cfg *config.Config, indirectSet []FuncID) error {
	drawMeta := func() (Meta, error) {
		signed, err := cfg.GetBool(config.MSUseSigned)
		if err != nil {
			return Meta{}, err
		}
		float, err := cfg.GetBool(config.MSUseFloat)
		if err != nil {
			return Meta{}, err
		}
		complex_, err := cfg.GetBool(config.MSUseComplex)
		if err != nil {
			return Meta{}, err
		}
		pointers, err := cfg.GetBool(config.MSUsePointers)
		if err != nil {
			return Meta{}, err
		}
		return Meta{UseSigned: signed, UseFloat: float, UseComplex: complex_, UsePointers: pointers}, nil
	}

	indirectMeta, err := drawMeta()
	if err != nil {
		return err
	}
	isIndirect := make(map[FuncID]bool, len(indirectSet))
	for _, v := range indirectSet {
		isIndirect[v] = true
		cg.vertices[v].meta = indirectMeta
	}
	for v := range cg.vertices {
		if isIndirect[FuncID(v)] {
			continue
		}
		m, err := drawMeta()
		if err != nil {
			return err
		}
		cg.vertices[v].meta = m
	}
	return nil
}

// checkType implements 4.4's check_type rule.
func checkType(meta Meta, tg *typegraph.TypeGraph, t typegraph.NodeID) bool {
	switch tg.Category(t) {
	case typegraph.CatScalar:
		s := tg.Scalar(t)
		if s.IsFloat && !meta.UseFloat {
			return false
		}
		if s.IsSigned && !meta.UseSigned {
			return false
		}
		return true
	case typegraph.CatStruct, typegraph.CatArray:
		return meta.UseComplex
	case typegraph.CatPointer:
		return meta.UsePointers
	default:
		return false
	}
}

// pickType runs the TYPEATTEMPTS-then-linear-scan policy of 4.4 step 9,
// rejecting arrays (neither return nor argument types may be an array).
func pickType(cfg *config.Config, tg *typegraph.TypeGraph, meta Meta) (typegraph.NodeID, error) {
	attempts, err := cfg.Get(config.CGTypeAttempts)
	if err != nil {
		return 0, err
	}
	for i := 0; i < attempts; i++ {
		cand, err := tg.GetRandomType(cfg)
		if err != nil {
			return 0, err
		}
		if tg.Category(cand) == typegraph.CatArray {
			continue
		}
		if checkType(meta, tg, cand) {
			return cand, nil
		}
	}
	for _, cand := range tg.AllVertices() {
		if tg.Category(cand) == typegraph.CatArray {
			continue
		}
		if checkType(meta, tg, cand) {
			return cand, nil
		}
	}
	return 0, coelerr.New(coelerr.GraphBuildErrorKind, "callgraph: no type satisfies metastructure for signature")
}

// pickSignature draws a (return, args) pair for one function under meta.
// The return type follows pick_typeid's allow_void policy: it tries a
// real type through pickType's retry-then-linear-scan search and only
// degrades to void when that search finds nothing conforming.
func pickSignature(cfg *config.Config, tg *typegraph.TypeGraph, meta Meta) (typegraph.NodeID, []typegraph.NodeID, error) {
	ret, err := pickType(cfg, tg, meta)
	if err != nil {
		if !errors.Is(err, coelerr.GraphBuildError) {
			return 0, nil, err
		}
		ret = VoidType
	}
	nargs, err := cfg.Get(config.CGNArgs)
	if err != nil {
		return 0, nil, err
	}
	args := make([]typegraph.NodeID, 0, nargs)
	for i := 0; i < nargs; i++ {
		a, err := pickType(cfg, tg, meta)
		if err != nil {
			return 0, nil, err
		}
		args = append(args, a)
	}
	return ret, args, nil
}

// assignSignatures is 4.4 step 9.
func (cg *CallGraph) assignSignatures(cfg *config.Config, tg *typegraph.TypeGraph, indirectSet []FuncID) error {
	isIndirect := make(map[FuncID]bool, len(indirectSet))
	for _, v := range indirectSet {
		isIndirect[v] = true
	}
	if len(indirectSet) > 0 {
		ret, args, err := pickSignature(cfg, tg, cg.vertices[indirectSet[0]].meta)
		if err != nil {
			return err
		}
		for _, v := range indirectSet {
			cg.vertices[v].ret = ret
			cg.vertices[v].args = args
		}
	}
	for v := range cg.vertices {
		if isIndirect[FuncID(v)] {
			continue
		}
		ret, args, err := pickSignature(cfg, tg, cg.vertices[v].meta)
		if err != nil {
			return err
		}
		cg.vertices[v].ret = ret
		cg.vertices[v].args = args
	}
	return nil
}

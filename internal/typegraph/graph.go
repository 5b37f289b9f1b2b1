package typegraph

import "sort"

// vertex is one row of the dense vertex table. Only the fields relevant
// to its Category are meaningful, matching the original's tagged-union
// vertex bundle (typecats.h) — Go has no variant-payload member, so the
// fields that don't apply to a given Category are simply left zero.
type vertex struct {
	cat       Category
	scalarIdx int        // meaningful iff cat == CatScalar
	nitems    int        // meaningful iff cat == CatArray
	bitfields []Bitfield // meaningful iff cat == CatStruct
	children  []NodeID   // ordered out-edges
}

// TypeGraph is the constructed, read-only type DAG. Per SPEC_FULL.md's
// Design Notes (section 9), storage is a contiguous vertex table indexed
// by dense id plus a per-vertex out-edge slice; a parallel reverse index
// (parents) supports the ancestor walks needed during construction.
type TypeGraph struct {
	scalars  []ScalarDesc
	vertices []vertex
	parents  map[NodeID][]NodeID

	structVs, arrayVs, pointerVs, leafVs map[NodeID]struct{}
	idxVs                                []NodeID
	permVs                                map[int][]NodeID

	reach map[NodeID]map[NodeID]Reachability
}

func newGraph(scalars []ScalarDesc) *TypeGraph {
	return &TypeGraph{
		scalars:  scalars,
		parents:  make(map[NodeID][]NodeID),
		structVs: make(map[NodeID]struct{}),
		arrayVs:  make(map[NodeID]struct{}),
		pointerVs: make(map[NodeID]struct{}),
		leafVs:   make(map[NodeID]struct{}),
		permVs:   make(map[int][]NodeID),
	}
}

func (tg *TypeGraph) addVertex(cat Category) NodeID {
	id := NodeID(len(tg.vertices))
	tg.vertices = append(tg.vertices, vertex{cat: cat})
	return id
}

func (tg *TypeGraph) addEdge(from, to NodeID) {
	tg.vertices[from].children = append(tg.vertices[from].children, to)
	tg.parents[to] = append(tg.parents[to], from)
}

// replaceChildEdge rewrites a single (parent, oldChild) edge to
// (parent, newChild) in place, preserving oldChild's position in
// parent's children slice (struct field order matters).
func (tg *TypeGraph) replaceChildEdge(parent, oldChild, newChild NodeID) {
	children := tg.vertices[parent].children
	for i, c := range children {
		if c == oldChild {
			children[i] = newChild
			break
		}
	}
	tg.removeParentEntry(oldChild, parent)
	tg.parents[newChild] = append(tg.parents[newChild], parent)
}

func (tg *TypeGraph) removeParentEntry(child, parent NodeID) {
	ps := tg.parents[child]
	for i, p := range ps {
		if p == parent {
			tg.parents[child] = append(ps[:i], ps[i+1:]...)
			return
		}
	}
}

// ancestorCounts walks every ancestor of v transitively (via parents,
// which form a forest before unification and a DAG after) and counts how
// many are arrays vs. structs — feeds the split watchdogs in 4.3 step 3c.
func (tg *TypeGraph) ancestorCounts(v NodeID) (narr, nstr int) {
	visited := map[NodeID]bool{v: true}
	queue := append([]NodeID{}, tg.parents[v]...)
	for _, p := range queue {
		visited[p] = true
	}
	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		switch tg.vertices[cur].cat {
		case CatArray:
			narr++
		case CatStruct:
			nstr++
		}
		for _, p := range tg.parents[cur] {
			if !visited[p] {
				visited[p] = true
				queue = append(queue, p)
			}
		}
	}
	return narr, nstr
}

// pointerCandidates implements the 4.3 step-5 walk: every vertex reached
// from v by traversing parent and child edges through non-Array,
// non-Pointer nodes only; Array/Pointer nodes block further traversal and
// are not themselves candidates.
func (tg *TypeGraph) pointerCandidates(v NodeID) []NodeID {
	visited := map[NodeID]bool{v: true}
	queue := []NodeID{v}
	var candidates []NodeID
	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		neighbors := make([]NodeID, 0, len(tg.parents[cur])+len(tg.vertices[cur].children))
		neighbors = append(neighbors, tg.parents[cur]...)
		neighbors = append(neighbors, tg.vertices[cur].children...)
		for _, n := range neighbors {
			if visited[n] {
				continue
			}
			visited[n] = true
			switch tg.vertices[n].cat {
			case CatArray, CatPointer:
				continue // blocker: reached, but not a candidate, not expanded
			}
			candidates = append(candidates, n)
			queue = append(queue, n)
		}
	}
	return candidates
}

func sortedIDs(set map[NodeID]struct{}) []NodeID {
	ids := make([]NodeID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (tg *TypeGraph) isBitfieldChild(parent, child NodeID) bool {
	if tg.vertices[parent].cat != CatStruct {
		return false
	}
	for _, bf := range tg.vertices[parent].bitfields {
		if bf.Child == child {
			return true
		}
	}
	return false
}

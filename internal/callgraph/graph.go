package callgraph

import "github.com/Latimeriidae/coelacanth/internal/typegraph"

type edge struct {
	to   FuncID
	kind CallType
}

type vertex struct {
	component int
	indirect  bool
	ret       typegraph.NodeID
	args      []typegraph.NodeID
	meta      Meta
}

// CallGraph is the constructed, read-only function graph.
type CallGraph struct {
	vertices []vertex
	out      [][]edge
	in       [][]edge

	mainRoot   FuncID
	components [][]FuncID
}

func newGraph() *CallGraph {
	return &CallGraph{}
}

func (cg *CallGraph) addVertex() FuncID {
	id := FuncID(len(cg.vertices))
	cg.vertices = append(cg.vertices, vertex{ret: VoidType})
	cg.out = append(cg.out, nil)
	cg.in = append(cg.in, nil)
	return id
}

func (cg *CallGraph) addEdge(from, to FuncID, kind CallType) {
	cg.out[from] = append(cg.out[from], edge{to: to, kind: kind})
	cg.in[to] = append(cg.in[to], edge{to: from, kind: kind})
}

func (cg *CallGraph) hasEdge(from, to FuncID) bool {
	for _, e := range cg.out[from] {
		if e.to == to {
			return true
		}
	}
	return false
}

func (cg *CallGraph) outDegree(v FuncID) int { return len(cg.out[v]) }
func (cg *CallGraph) inDegree(v FuncID) int  { return len(cg.in[v]) }

func (cg *CallGraph) setEdgeKind(from, to FuncID, kind CallType) {
	for i := range cg.out[from] {
		if cg.out[from][i].to == to {
			cg.out[from][i].kind = kind
		}
	}
	for i := range cg.in[to] {
		if cg.in[to][i].to == from {
			cg.in[to][i].kind = kind
		}
	}
}

// unionFind is the disjoint-set structure used by component repair
// (4.4 step 4), grounded on the same union-find idiom named in
// callgraph.cc's connect_components.
type unionFind struct{ parent []int }

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra != rb {
		uf.parent[ra] = rb
	}
}

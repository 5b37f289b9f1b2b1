package typegraph

import (
	"sort"

	"github.com/Latimeriidae/coelacanth/internal/config"
)

// NTypes returns the total vertex count.
func (tg *TypeGraph) NTypes() int { return len(tg.vertices) }

// Category reports the category of a vertex.
func (tg *TypeGraph) Category(id NodeID) Category { return tg.vertices[id].cat }

// Scalar reports the scalar descriptor of a CatScalar vertex.
func (tg *TypeGraph) Scalar(id NodeID) ScalarDesc { return tg.scalars[tg.vertices[id].scalarIdx] }

// NItems reports the element count of a CatArray vertex.
func (tg *TypeGraph) NItems(id NodeID) int { return tg.vertices[id].nitems }

// Bitfields reports the (child, width) pairs of a CatStruct vertex, in
// field order.
func (tg *TypeGraph) Bitfields(id NodeID) []Bitfield { return tg.vertices[id].bitfields }

// Children returns the ordered out-edges of a vertex.
func (tg *TypeGraph) Children(id NodeID) []NodeID { return tg.vertices[id].children }

// Pointee returns the unique target of a CatPointer vertex's one
// outgoing edge.
func (tg *TypeGraph) Pointee(id NodeID) NodeID { return tg.vertices[id].children[0] }

// AllVertices returns every vertex id in ascending order.
func (tg *TypeGraph) AllVertices() []NodeID {
	ids := make([]NodeID, len(tg.vertices))
	for i := range ids {
		ids[i] = NodeID(i)
	}
	return ids
}

// StructVs, ArrayVs, PointerVs, LeafVs, IdxVs and PermVs expose the
// support sets maintained during construction, for callers (varassign,
// the DOT dumper) that need the classification directly.
func (tg *TypeGraph) StructVs() []NodeID  { return sortedIDs(tg.structVs) }
func (tg *TypeGraph) ArrayVs() []NodeID   { return sortedIDs(tg.arrayVs) }
func (tg *TypeGraph) PointerVs() []NodeID { return sortedIDs(tg.pointerVs) }
func (tg *TypeGraph) LeafVs() []NodeID    { return sortedIDs(tg.leafVs) }
func (tg *TypeGraph) IdxVs() []NodeID     { return append([]NodeID{}, tg.idxVs...) }

// PermVs returns the arrays of non-float scalar element type and length
// k, or nil if none exist for that length.
func (tg *TypeGraph) PermVs(k int) []NodeID { return append([]NodeID{}, tg.permVs[k]...) }

// GetRandomType draws uniformly over every vertex.
func (tg *TypeGraph) GetRandomType(cfg *config.Config) (NodeID, error) {
	idx, err := cfg.UniformIndex(len(tg.vertices))
	if err != nil {
		return 0, err
	}
	return NodeID(idx), nil
}

// GetRandomIndexType draws uniformly over idx_vs.
func (tg *TypeGraph) GetRandomIndexType(cfg *config.Config) (NodeID, error) {
	idx, err := cfg.UniformIndex(len(tg.idxVs))
	if err != nil {
		return 0, err
	}
	return tg.idxVs[idx], nil
}

// GetRandomPermType draws uniformly over perm_vs[k].
func (tg *TypeGraph) GetRandomPermType(cfg *config.Config, k int) (NodeID, bool, error) {
	set := tg.permVs[k]
	if len(set) == 0 {
		return 0, false, nil
	}
	idx, err := cfg.UniformIndex(len(set))
	if err != nil {
		return 0, false, err
	}
	return set[idx], true, nil
}

// Reachable classifies the ordered pair (a, b) per the reachability
// supplement in SPEC_FULL.md 4.3.
func (tg *TypeGraph) Reachable(a, b NodeID) Reachability {
	if a == b {
		return None
	}
	if row, ok := tg.reach[a]; ok {
		if r, ok := row[b]; ok {
			return r
		}
	}
	return None
}

// Descendants returns every vertex reachable from v (Direct or
// Indirect), in ascending id order — used by varassign's BFS walk (4.5).
func (tg *TypeGraph) Descendants(v NodeID) []NodeID {
	row := tg.reach[v]
	if len(row) == 0 {
		return nil
	}
	out := make([]NodeID, 0, len(row))
	for id := range row {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

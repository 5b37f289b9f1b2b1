package typegraph

import (
	"fmt"

	"github.com/Latimeriidae/coelacanth/internal/coelerr"
	"github.com/Latimeriidae/coelacanth/internal/coelog"
	"github.com/Latimeriidae/coelacanth/internal/config"
)

// maxSplitAttempts bounds retries of a single split iteration before it
// gives up with a watchdog warning (SPEC_FULL.md 4.3 step 3c).
const maxSplitAttempts = 10

// catalog builds the fixed scalar list per SPEC_FULL.md section 3, gated
// by TG::LONGT / TG::FPT. Order is significant: it must match the arity
// and ordering assumed by TG::TYPEPROB's cumulative vector.
func catalog(longT, fpt bool) []ScalarDesc {
	s := []ScalarDesc{
		{Name: "unsigned char", Bits: 8, IsSigned: false},
		{Name: "signed char", Bits: 8, IsSigned: true},
		{Name: "unsigned short", Bits: 16, IsSigned: false},
		{Name: "short", Bits: 16, IsSigned: true},
		{Name: "unsigned int", Bits: 32, IsSigned: false},
		{Name: "int", Bits: 32, IsSigned: true},
		{Name: "unsigned long long", Bits: 64, IsSigned: false},
		{Name: "long long", Bits: 64, IsSigned: true},
	}
	if longT {
		s = append(s,
			ScalarDesc{Name: "unsigned long", Bits: 64, IsSigned: false},
			ScalarDesc{Name: "long", Bits: 64, IsSigned: true},
		)
	}
	if fpt {
		s = append(s,
			ScalarDesc{Name: "float", Bits: 32, IsFloat: true, IsSigned: true},
			ScalarDesc{Name: "double", Bits: 64, IsFloat: true, IsSigned: true},
		)
	}
	return s
}

// Build runs the full 4.3 constructor sequence: scalar catalog, seed
// vertices, constrained splits, subscalar unification, pointer
// retargeting, bitfields, index/permutation selection, then reachability
// analysis over the finished graph.
func Build(cfg *config.Config) (*TypeGraph, error) {
	longT, err := cfg.GetBool(config.TGLongT)
	if err != nil {
		return nil, err
	}
	fpt, err := cfg.GetBool(config.TGFPT)
	if err != nil {
		return nil, err
	}
	scalars := catalog(longT, fpt)

	arity, err := cfg.ProbSize(config.TGTypeProb)
	if err != nil {
		return nil, err
	}
	if arity != len(scalars) {
		return nil, coelerr.New(coelerr.ConfigErrorKind,
			fmt.Sprintf("tg-typeprob has %d entries, scalar catalog has %d", arity, len(scalars)))
	}

	tg := newGraph(scalars)

	if err := tg.seedVertices(cfg); err != nil {
		return nil, err
	}
	if err := tg.runSplits(cfg); err != nil {
		return nil, err
	}
	tg.unifySubscalars()
	if err := tg.retargetPointers(cfg); err != nil {
		return nil, err
	}
	if err := tg.assignBitfields(cfg); err != nil {
		return nil, err
	}
	if err := tg.selectIndexesAndPerms(cfg); err != nil {
		return nil, err
	}
	tg.computeReachability()
	return tg, nil
}

func (tg *TypeGraph) newScalar(cfg *config.Config) (NodeID, error) {
	idx, err := cfg.Get(config.TGTypeProb)
	if err != nil {
		return 0, err
	}
	id := tg.addVertex(CatScalar)
	tg.vertices[id].scalarIdx = idx
	return id, nil
}

func (tg *TypeGraph) seedVertices(cfg *config.Config) error {
	n, err := cfg.Get(config.TGSeeds)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		isPointer, err := cfg.GetBool(config.TGScalType)
		if err != nil {
			return err
		}
		if isPointer {
			id := tg.addVertex(CatPointer)
			tg.pointerVs[id] = struct{}{}
			continue
		}
		id, err := tg.newScalar(cfg)
		if err != nil {
			return err
		}
		tg.leafVs[id] = struct{}{}
	}
	return nil
}

// runSplits implements 4.3 step 3: TG::SPLITS iterations, each up to
// maxSplitAttempts tries of picking a leaf and a container kind subject
// to the ancestor-depth watchdogs.
func (tg *TypeGraph) runSplits(cfg *config.Config) error {
	n, err := cfg.Get(config.TGSplits)
	if err != nil {
		return err
	}
	maxArr, err := cfg.Get(config.TGMaxArrPreds)
	if err != nil {
		return err
	}
	maxStr, err := cfg.Get(config.TGMaxStructPreds)
	if err != nil {
		return err
	}
	maxPreds, err := cfg.Get(config.TGMaxPreds)
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		ok := false
		for attempt := 0; attempt < maxSplitAttempts && !ok; attempt++ {
			leaves := sortedIDs(tg.leafVs)
			if len(leaves) == 0 {
				break
			}
			idx, err := tg.randIndex(cfg, len(leaves))
			if err != nil {
				return err
			}
			v := leaves[idx]

			contKind, err := cfg.Get(config.TGContType)
			if err != nil {
				return err
			}
			narr, nstr := tg.ancestorCounts(v)
			if narr >= maxArr || nstr >= maxStr || narr+nstr >= maxPreds {
				continue
			}
			if err := tg.convertSplit(cfg, v, contKind); err != nil {
				return err
			}
			ok = true
		}
		if !ok {
			coelog.Watchdog("typegraph: split watchdog exceeded, skipping iteration", "iteration", i)
		}
	}
	return nil
}

// randIndex draws a uniform index in [0,n) via Config.UniformIndex; for
// n <= 1 it returns 0 without a draw.
func (tg *TypeGraph) randIndex(cfg *config.Config, n int) (int, error) {
	if n <= 1 {
		return 0, nil
	}
	return cfg.UniformIndex(n)
}

// convertSplit turns leaf vertex v in place into a Struct or Array
// container per 4.3 step 3d, removing it from leafVs and registering it
// in the matching support set; new scalar children are themselves added
// to leafVs so later splits can grow nested depth (resolves the spec's
// otherwise-unreachable ancestor-depth watchdogs).
func (tg *TypeGraph) convertSplit(cfg *config.Config, v NodeID, contKind int) error {
	delete(tg.leafVs, v)

	switch contKind {
	case config.ContTypeStruct:
		tg.vertices[v].cat = CatStruct
		nfields, err := cfg.Get(config.TGNFields)
		if err != nil {
			return err
		}
		for i := 0; i < nfields; i++ {
			child, err := tg.newScalar(cfg)
			if err != nil {
				return err
			}
			tg.addEdge(v, child)
			tg.leafVs[child] = struct{}{}
		}
		tg.structVs[v] = struct{}{}
	case config.ContTypeArray:
		tg.vertices[v].cat = CatArray
		nitems, err := cfg.Get(config.TGArrSize)
		if err != nil {
			return err
		}
		tg.vertices[v].nitems = nitems
		child, err := tg.newScalar(cfg)
		if err != nil {
			return err
		}
		tg.addEdge(v, child)
		tg.leafVs[child] = struct{}{}
		tg.arrayVs[v] = struct{}{}
	default:
		return coelerr.New(coelerr.ConfigErrorKind, "tg-conttype: unexpected bucket")
	}

	more, err := cfg.GetBool(config.TGMoreScalars)
	if err != nil {
		return err
	}
	if more {
		id, err := tg.newScalar(cfg)
		if err != nil {
			return err
		}
		tg.leafVs[id] = struct{}{}
	}
	return nil
}

type unifyRow struct {
	parent, child NodeID
}

// unifySubscalars is 4.3 step 4: within struct parents, then within
// array parents, every scalar-catalog column with ≥2 distinct child
// vertices is collapsed onto one representative, introducing sharing.
func (tg *TypeGraph) unifySubscalars() {
	for _, catSet := range []map[NodeID]struct{}{tg.structVs, tg.arrayVs} {
		cols := map[int][]unifyRow{}
		for _, parent := range sortedIDs(catSet) {
			for _, child := range tg.vertices[parent].children {
				if tg.vertices[child].cat != CatScalar {
					continue
				}
				idx := tg.vertices[child].scalarIdx
				cols[idx] = append(cols[idx], unifyRow{parent, child})
			}
		}
		for idx := 0; idx < len(tg.scalars); idx++ {
			rows := cols[idx]
			if len(rows) < 2 {
				continue
			}
			rep := rows[0].child
			for _, r := range rows[1:] {
				if r.child == rep {
					continue
				}
				tg.replaceChildEdge(r.parent, r.child, rep)
				delete(tg.leafVs, r.child)
			}
		}
	}
}

// retargetPointers is 4.3 step 5.
func (tg *TypeGraph) retargetPointers(cfg *config.Config) error {
	for _, v := range sortedIDs(tg.pointerVs) {
		candidates := tg.pointerCandidates(v)
		if len(candidates) == 0 {
			candidates = append(sortedIDs(tg.leafVs), sortedIDs(tg.structVs)...)
		}
		if len(candidates) == 0 {
			return coelerr.New(coelerr.GraphBuildErrorKind, "typegraph: no pointer target candidates available")
		}
		idx, err := tg.randIndex(cfg, len(candidates))
		if err != nil {
			return err
		}
		tg.addEdge(v, candidates[idx])
	}
	return nil
}

// assignBitfields is 4.3 step 6.
func (tg *TypeGraph) assignBitfields(cfg *config.Config) error {
	for _, s := range sortedIDs(tg.structVs) {
		for _, child := range tg.vertices[s].children {
			if tg.vertices[child].cat != CatScalar {
				continue
			}
			take, err := cfg.GetBool(config.TGBFProb)
			if err != nil {
				return err
			}
			if !take {
				continue
			}
			width, err := cfg.Get(config.TGBFSize)
			if err != nil {
				return err
			}
			tg.vertices[s].bitfields = append(tg.vertices[s].bitfields, Bitfield{Child: child, Width: width})
		}
	}
	return nil
}

// selectIndexesAndPerms is 4.3 step 7.
func (tg *TypeGraph) selectIndexesAndPerms(cfg *config.Config) error {
	for _, id := range sortedIDs(tg.leafVs) {
		if !tg.scalars[tg.vertices[id].scalarIdx].IsFloat {
			tg.idxVs = append(tg.idxVs, id)
		}
	}
	if len(tg.idxVs) == 0 {
		intIdx := -1
		for i, s := range tg.scalars {
			if s.Name == "int" {
				intIdx = i
				break
			}
		}
		if intIdx < 0 {
			return coelerr.New(coelerr.ConfigErrorKind, "typegraph: no index variables and no int in scalar catalog")
		}
		id := tg.addVertex(CatScalar)
		tg.vertices[id].scalarIdx = intIdx
		tg.leafVs[id] = struct{}{}
		tg.idxVs = append(tg.idxVs, id)
	}

	for _, a := range sortedIDs(tg.arrayVs) {
		elem := tg.vertices[a].children[0]
		if tg.vertices[elem].cat == CatScalar && !tg.scalars[tg.vertices[elem].scalarIdx].IsFloat {
			k := tg.vertices[a].nitems
			tg.permVs[k] = append(tg.permVs[k], a)
		}
	}

	lo, hi, err := cfg.MinMax(config.TGArrSize)
	if err != nil {
		return err
	}
	for k := lo; k < hi; k++ {
		if len(tg.permVs[k]) > 0 {
			continue
		}
		id := tg.addVertex(CatArray)
		tg.vertices[id].nitems = k
		tg.addEdge(id, tg.idxVs[0])
		tg.arrayVs[id] = struct{}{}
		tg.permVs[k] = append(tg.permVs[k], id)
	}
	return nil
}

// computeReachability is the reachability-analysis supplement described
// in SPEC_FULL.md 4.3: a per-source BFS over children edges, stopping
// propagation (but still recording the direct hop) through bitfield
// children.
func (tg *TypeGraph) computeReachability() {
	tg.reach = make(map[NodeID]map[NodeID]Reachability, len(tg.vertices))
	for a := 0; a < len(tg.vertices); a++ {
		src := NodeID(a)
		row := make(map[NodeID]Reachability)
		visited := map[NodeID]bool{src: true}
		type frame struct {
			id   NodeID
			dist int
		}
		queue := []frame{{src, 0}}
		for i := 0; i < len(queue); i++ {
			cur := queue[i]
			for _, child := range tg.vertices[cur.id].children {
				if visited[child] {
					continue
				}
				visited[child] = true
				if cur.dist == 0 {
					row[child] = Direct
				} else {
					row[child] = Indirect
				}
				if tg.isBitfieldChild(cur.id, child) {
					continue
				}
				queue = append(queue, frame{child, cur.dist + 1})
			}
		}
		if len(row) > 0 {
			tg.reach[src] = row
		}
	}
}

package varassign

import (
	"github.com/Latimeriidae/coelacanth/internal/callgraph"
	"github.com/Latimeriidae/coelacanth/internal/config"
	"github.com/Latimeriidae/coelacanth/internal/typegraph"
)

// VarAssign is the constructed, read-only per-function variable table.
type VarAssign struct {
	tg   *typegraph.TypeGraph
	cg   *callgraph.CallGraph
	info []varInfo // indexed by VarID
	globals []VarID
	funcs   []*funcState // indexed by callgraph.FuncID
}

func (va *VarAssign) newVar(typ typegraph.NodeID, role Role) VarID {
	id := VarID(len(va.info))
	va.info = append(va.info, varInfo{typ: typ, role: role})
	return id
}

// Build runs the 4.5 constructor sequence: globals, then per function
// indexes + folded globals + locals-until-quota + arguments, then for
// every variable added to that function, pointees/permutators/access
// indexes derived from a BFS walk of its type's descendants.
func Build(cfg *config.Config, tg *typegraph.TypeGraph, cg *callgraph.CallGraph) (*VarAssign, error) {
	va := &VarAssign{tg: tg, cg: cg}

	nglobals, err := cfg.Get(config.VANGlobals)
	if err != nil {
		return nil, err
	}
	for i := 0; i < nglobals; i++ {
		t, err := tg.GetRandomType(cfg)
		if err != nil {
			return nil, err
		}
		id := va.newVar(t, RoleGlobal)
		va.globals = append(va.globals, id)
	}

	for _, f := range cg.AllFuncs() {
		fs, err := va.buildFunc(cfg, tg, cg, f)
		if err != nil {
			return nil, err
		}
		va.funcs = append(va.funcs, fs)
	}
	return va, nil
}

func (va *VarAssign) buildFunc(cfg *config.Config, tg *typegraph.TypeGraph, cg *callgraph.CallGraph, f callgraph.FuncID) (*funcState, error) {
	fs := newFuncState()

	nidx, err := cfg.Get(config.VANIdx)
	if err != nil {
		return nil, err
	}
	for i := 0; i < nidx; i++ {
		t, err := tg.GetRandomIndexType(cfg)
		if err != nil {
			return nil, err
		}
		id := va.newVar(t, RoleIndex)
		fs.indexes[id] = struct{}{}
		fs.locals = append(fs.locals, id)
	}

	for _, g := range va.globals {
		if cg.AcceptType(tg, f, va.info[g].typ) {
			fs.locals = append(fs.locals, g)
		}
	}

	target, err := cfg.Get(config.MSNVars)
	if err != nil {
		return nil, err
	}
	maxAttempts, err := cfg.Get(config.VANVAtts)
	if err != nil {
		return nil, err
	}
	accepted := 0
	for attempts := 0; attempts < maxAttempts && accepted < target; attempts++ {
		t, err := tg.GetRandomType(cfg)
		if err != nil {
			return nil, err
		}
		if !cg.AcceptType(tg, f, t) {
			continue
		}
		id := va.newVar(t, RoleGeneric)
		fs.locals = append(fs.locals, id)
		accepted++
	}

	for _, argType := range cg.ArgTypes(f) {
		id := va.newVar(argType, RoleGeneric)
		fs.args[id] = struct{}{}
		fs.locals = append(fs.locals, id)
	}

	// Snapshot: descendant processing below creates new variables
	// (pointees, permutators, access indexes) that must not themselves
	// be walked for descendants — that would recurse without bound
	// through the type graph's allowed pointer cycles.
	created := append([]VarID{}, fs.locals...)
	for _, v := range created {
		if err := va.attachDescendants(cfg, tg, fs, v); err != nil {
			return nil, err
		}
	}
	return fs, nil
}

// attachDescendants is 4.5's per-variable pointee/permutator/access-index
// derivation: direct pointer/array handling on v's own type, plus a BFS
// walk of the type DAG from v's type classifying every array descendant
// (-> access index) and pointer descendant (-> pointee).
func (va *VarAssign) attachDescendants(cfg *config.Config, tg *typegraph.TypeGraph, fs *funcState, v VarID) error {
	t := va.info[v].typ

	if tg.Category(t) == typegraph.CatPointer {
		if err := va.makePointee(cfg, tg, fs, v, t); err != nil {
			return err
		}
	}
	if tg.Category(t) == typegraph.CatArray {
		if err := va.attachPermutators(cfg, tg, fs, v, t); err != nil {
			return err
		}
	}

	for _, d := range tg.Descendants(t) {
		switch tg.Category(d) {
		case typegraph.CatArray:
			idxType, err := tg.GetRandomIndexType(cfg)
			if err != nil {
				return err
			}
			idx := va.newVar(idxType, RoleIndex)
			fs.accidxs[v] = append(fs.accidxs[v], idx)
		case typegraph.CatPointer:
			if err := va.makePointee(cfg, tg, fs, v, d); err != nil {
				return err
			}
		}
	}
	return nil
}

func (va *VarAssign) makePointee(cfg *config.Config, tg *typegraph.TypeGraph, fs *funcState, v VarID, pointerType typegraph.NodeID) error {
	if fs.pointees[v] == nil {
		fs.pointees[v] = map[typegraph.NodeID]VarID{}
	}
	if _, exists := fs.pointees[v][pointerType]; exists {
		return nil
	}
	pointeeType := tg.Pointee(pointerType)
	id := va.newVar(pointeeType, RolePointee)
	fs.pointees[v][pointerType] = id
	return nil
}

func (va *VarAssign) attachPermutators(cfg *config.Config, tg *typegraph.TypeGraph, fs *funcState, v VarID, arrType typegraph.NodeID) error {
	maxPerm, err := cfg.Get(config.VAMaxPerm)
	if err != nil {
		return err
	}
	for len(fs.permsOf[v]) < maxPerm {
		take, err := cfg.GetBool(config.VAUsePerm)
		if err != nil {
			return err
		}
		if !take {
			break
		}
		k := tg.NItems(arrType)
		permType, ok, err := tg.GetRandomPermType(cfg, k)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		id := va.newVar(permType, RoleGeneric)
		fs.permutators[id] = struct{}{}
		fs.permsOf[v] = append(fs.permsOf[v], id)
	}
	return nil
}

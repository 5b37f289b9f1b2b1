package varassign

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Latimeriidae/coelacanth/internal/callgraph"
	"github.com/Latimeriidae/coelacanth/internal/config"
	"github.com/Latimeriidae/coelacanth/internal/typegraph"
)

func defaultsWith(seed uint64, overrides map[config.ID]config.Variant) *config.Config {
	values := make(map[config.ID]config.Variant, len(config.Registry))
	for _, d := range config.Registry {
		values[d.ID] = d.Default
	}
	for id, v := range overrides {
		values[id] = v
	}
	return config.New(seed, false, false, values)
}

func buildAll(t *testing.T, seed uint64, overrides map[config.ID]config.Variant) (*typegraph.TypeGraph, *callgraph.CallGraph, *VarAssign) {
	tg, err := typegraph.Build(defaultsWith(seed, overrides))
	require.NoError(t, err)
	cg, err := callgraph.Build(defaultsWith(seed+1, overrides), tg)
	require.NoError(t, err)
	va, err := Build(defaultsWith(seed+2, overrides), tg, cg)
	require.NoError(t, err)
	return tg, cg, va
}

func TestGlobalsCreated(t *testing.T) {
	_, _, va := buildAll(t, 1, map[config.ID]config.Variant{
		config.VANGlobals: config.Single{Val: 5},
	})
	require.Len(t, va.GlobalVars(), 5)
	for _, g := range va.GlobalVars() {
		require.Equal(t, RoleGlobal, va.info[g].role)
		require.Equal(t, fmt.Sprintf("g%d", int(g)), va.GetName(g))
	}
}

func TestEveryFunctionHasLocalsAndArgs(t *testing.T) {
	tg, cg, va := buildAll(t, 10, nil)
	for _, f := range cg.AllFuncs() {
		locals := va.LocalVars(f)
		for _, argType := range cg.ArgTypes(f) {
			found := false
			for _, v := range locals {
				if va.IsArg(f, v) && va.Type(v) == argType {
					found = true
					break
				}
			}
			require.True(t, found, "function %d missing arg variable of type %d", f, argType)
		}
		for _, v := range locals {
			if va.IsIndex(f, v) {
				continue // free indexes are drawn from idx_vs without the acceptance check
			}
			require.True(t, cg.AcceptType(tg, f, va.Type(v)), "function %d has local %s of an unacceptable type", f, va.GetName(v))
		}
	}
}

func TestPointerVariablesHavePointee(t *testing.T) {
	tg, cg, va := buildAll(t, 20, nil)
	for _, f := range cg.AllFuncs() {
		for _, v := range va.LocalVars(f) {
			if tg.Category(va.Type(v)) != typegraph.CatPointer {
				continue
			}
			require.True(t, va.HavePointee(f, v, va.Type(v)))
			pointee := va.Pointee(f, v, va.Type(v))
			require.Equal(t, tg.Pointee(va.Type(v)), va.Type(pointee))
			require.Equal(t, RolePointee, va.info[pointee].role)
		}
	}
}

func TestArrayVariablesRespectMaxPerm(t *testing.T) {
	tg, cg, va := buildAll(t, 30, map[config.ID]config.Variant{
		config.VAMaxPerm: config.Single{Val: 2},
		config.VAUsePerm: config.Pflag{Prob: 101, Total: 100}, // deterministically true: draw is in [0,Total)
	})
	for _, f := range cg.AllFuncs() {
		for _, v := range va.LocalVars(f) {
			if tg.Category(va.Type(v)) != typegraph.CatArray {
				continue
			}
			perms := va.PermsOf(f, v)
			require.LessOrEqual(t, len(perms), 2)
			for _, p := range perms {
				require.Equal(t, tg.NItems(va.Type(v)), tg.NItems(va.Type(p)))
			}
		}
	}
}

func TestAccessIndexesMatchArrayDescendants(t *testing.T) {
	tg, cg, va := buildAll(t, 40, nil)
	for _, f := range cg.AllFuncs() {
		for _, v := range va.LocalVars(f) {
			wantArrays := 0
			for _, d := range tg.Descendants(va.Type(v)) {
				if tg.Category(d) == typegraph.CatArray {
					wantArrays++
				}
			}
			require.Equal(t, wantArrays, va.AccsEnd(f, v))
			if wantArrays > 0 {
				require.True(t, va.HaveAccs(f, v))
			}
		}
	}
}

func TestDeterministic(t *testing.T) {
	_, _, va1 := buildAll(t, 50, nil)
	_, _, va2 := buildAll(t, 50, nil)
	require.Equal(t, va1.NVars(), va2.NVars())
	for i := 0; i < va1.NVars(); i++ {
		require.Equal(t, va1.info[VarID(i)], va2.info[VarID(i)])
	}
}

func TestGetNamePrefixes(t *testing.T) {
	_, cg, va := buildAll(t, 60, nil)
	for _, g := range va.GlobalVars() {
		require.Equal(t, byte('g'), va.GetName(g)[0])
	}
	f := cg.AllFuncs()[0]
	for _, v := range va.LocalVars(f) {
		if va.IsIndex(f, v) {
			require.Equal(t, byte('i'), va.GetName(v)[0])
		}
	}
}

package typegraph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Latimeriidae/coelacanth/internal/config"
)

func defaultsWith(overrides map[config.ID]config.Variant) *config.Config {
	values := make(map[config.ID]config.Variant, len(config.Registry))
	for _, d := range config.Registry {
		values[d.ID] = d.Default
	}
	for id, v := range overrides {
		values[id] = v
	}
	return config.New(1, false, false, values)
}

// S1: seed=1, TG::SEEDS=3, TG::SPLITS=0, all else default -> exactly 3
// scalar vertices, ntypes()==3.
func TestScenarioS1(t *testing.T) {
	cfg := defaultsWith(map[config.ID]config.Variant{
		config.TGSeeds:      config.Single{Val: 3},
		config.TGSplits:     config.Single{Val: 0},
		config.TGScalType:   config.Pflag{Prob: 0, Total: 100}, // never a pointer seed
	})
	tg, err := Build(cfg)
	require.NoError(t, err)
	require.Equal(t, 3, tg.NTypes())
	for _, id := range tg.AllVertices() {
		require.Equal(t, CatScalar, tg.Category(id))
	}
}

// S2: seed=1, TG::SEEDS=1, TG::SPLITS=1, CONTTYPE always struct,
// NFIELDS=[2,2] -> one struct with 2 scalar children (possibly shared),
// bitfields empty when BFPROB=0.
func TestScenarioS2(t *testing.T) {
	cfg := defaultsWith(map[config.ID]config.Variant{
		config.TGSeeds:    config.Single{Val: 1},
		config.TGSplits:   config.Single{Val: 1},
		config.TGScalType: config.Pflag{Prob: 0, Total: 100},
		config.TGContType: config.Probf{Cum: []int{0, 1}}, // always struct
		config.TGNFields:  config.Range{From: 2, To: 2},
		config.TGBFProb:   config.Pflag{Prob: 0, Total: 100},
		config.TGMoreScalars: config.Pflag{Prob: 0, Total: 100},
	})
	tg, err := Build(cfg)
	require.NoError(t, err)
	require.Len(t, tg.StructVs(), 1)
	s := tg.StructVs()[0]
	require.Equal(t, CatStruct, tg.Category(s))
	require.LessOrEqual(t, len(tg.Children(s)), 2)
	require.GreaterOrEqual(t, len(tg.Children(s)), 1)
	require.Empty(t, tg.Bitfields(s))
}

func TestWellFormedness(t *testing.T) {
	cfg := defaultsWith(nil)
	tg, err := Build(cfg)
	require.NoError(t, err)

	for _, id := range tg.ArrayVs() {
		require.Len(t, tg.Children(id), 1, "array %d must have exactly one outgoing edge", id)
	}
	for _, id := range tg.StructVs() {
		require.GreaterOrEqual(t, len(tg.Children(id)), 1, "struct %d must have >=1 outgoing edges", id)
		childSet := map[NodeID]bool{}
		for _, c := range tg.Children(id) {
			childSet[c] = true
		}
		for _, bf := range tg.Bitfields(id) {
			require.True(t, childSet[bf.Child], "bitfield child must be a scalar child of the same struct")
			require.Equal(t, CatScalar, tg.Category(bf.Child))
		}
	}
	for _, id := range tg.PointerVs() {
		require.Len(t, tg.Children(id), 1, "pointer %d must have exactly one outgoing edge", id)
	}
}

func TestDeterministic(t *testing.T) {
	cfg1 := defaultsWith(nil)
	cfg2 := defaultsWith(nil)
	tg1, err1 := Build(cfg1)
	tg2, err2 := Build(cfg2)
	require.NoError(t, err1)
	require.NoError(t, err2)
	require.Equal(t, tg1.NTypes(), tg2.NTypes())
	for _, id := range tg1.AllVertices() {
		require.Equal(t, tg1.Category(id), tg2.Category(id))
		require.Equal(t, tg1.Children(id), tg2.Children(id))
	}
}

func TestReachabilityDirectVsIndirect(t *testing.T) {
	cfg := defaultsWith(map[config.ID]config.Variant{
		config.TGSeeds:    config.Single{Val: 1},
		config.TGSplits:   config.Single{Val: 2},
		config.TGScalType: config.Pflag{Prob: 0, Total: 100},
		config.TGContType: config.Probf{Cum: []int{0, 100}}, // always struct
		config.TGNFields:  config.Range{From: 2, To: 2},
		config.TGMoreScalars: config.Pflag{Prob: 0, Total: 100},
	})
	tg, err := Build(cfg)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(tg.StructVs()), 1)
	root := tg.StructVs()[0]
	for _, c := range tg.Children(root) {
		require.Equal(t, Direct, tg.Reachable(root, c))
	}
}

func TestIdxVsNeverFloat(t *testing.T) {
	cfg := defaultsWith(nil)
	tg, err := Build(cfg)
	require.NoError(t, err)
	require.NotEmpty(t, tg.IdxVs())
	for _, id := range tg.IdxVs() {
		require.False(t, tg.Scalar(id).IsFloat)
	}
}

func TestIntSynthesizedWhenNoIndexCandidates(t *testing.T) {
	cfg := defaultsWith(map[config.ID]config.Variant{
		config.TGSeeds:    config.Single{Val: 1},
		config.TGSplits:   config.Single{Val: 0},
		config.TGScalType: config.Pflag{Prob: 0, Total: 100},
		// force the single seed scalar to be a float: with LONGT off and
		// FPT on the catalog has 10 entries, the last being "double".
		config.TGTypeProb: config.Probf{Cum: []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 100}},
		config.TGLongT:    config.SingleBool{Val: false},
		config.TGFPT:      config.SingleBool{Val: true},
	})
	// With FPT on, "float"/"double" exist, TYPEPROB always selects the
	// last bucket -> the seed scalar is "double" (float), so idx_vs would
	// be empty and int (present in the base 8) must be synthesized.
	tg, err := Build(cfg)
	require.NoError(t, err)
	require.NotEmpty(t, tg.IdxVs())
}

func TestPermVsCoversArrSizeRange(t *testing.T) {
	cfg := defaultsWith(nil)
	tg, err := Build(cfg)
	require.NoError(t, err)
	lo, hi, err := cfg.MinMax(config.TGArrSize)
	require.NoError(t, err)
	for k := lo; k < hi; k++ {
		require.NotEmpty(t, tg.PermVs(k), "perm_vs[%d] must be populated", k)
	}
}

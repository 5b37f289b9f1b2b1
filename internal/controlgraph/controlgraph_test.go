package controlgraph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Latimeriidae/coelacanth/internal/callgraph"
	"github.com/Latimeriidae/coelacanth/internal/config"
	"github.com/Latimeriidae/coelacanth/internal/semitree"
	"github.com/Latimeriidae/coelacanth/internal/typegraph"
	"github.com/Latimeriidae/coelacanth/internal/varassign"
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

func buildPipeline(t *testing.T, seed uint64, overrides map[config.ID]config.Variant) (*callgraph.CallGraph, *varassign.VarAssign) {
	tg, err := typegraph.Build(defaultsWith(seed, overrides))
	require.NoError(t, err)
	cg, err := callgraph.Build(defaultsWith(seed+1, overrides), tg)
	require.NoError(t, err)
	va, err := varassign.Build(defaultsWith(seed+2, overrides), tg, cg)
	require.NoError(t, err)
	return cg, va
}

func everyNode(st *SplitTree, id semitree.NodeID, visit func(semitree.NodeID)) {
	visit(id)
	for _, c := range st.Children(id) {
		everyNode(st, c, visit)
	}
}

func TestSplittableSetEqualsBlocks(t *testing.T) {
	cg, va := buildPipeline(t, 1, nil)
	f := cg.AllFuncs()[0]
	st, err := Build(defaultsWith(100, nil), cg, va, f)
	require.NoError(t, err)

	everyNode(st, st.Root(), func(id semitree.NodeID) {
		if id == st.Root() {
			return
		}
		_, inSet := st.blocks[id]
		require.Equal(t, st.Category(id) == Block, inSet)
	})
}

func TestBranchingOnlyUnderContainers(t *testing.T) {
	cg, va := buildPipeline(t, 2, nil)
	f := cg.AllFuncs()[0]
	st, err := Build(defaultsWith(200, nil), cg, va, f)
	require.NoError(t, err)

	everyNode(st, st.Root(), func(id semitree.NodeID) {
		if st.Category(id) != Branching {
			return
		}
		parent := st.Parent(id)
		pcat := st.Category(parent)
		require.True(t, pcat == If || pcat == Switch || pcat == Region)
	})
}

func TestBreakUnderLoopAllowsBreakOrContinue(t *testing.T) {
	cg, va := buildPipeline(t, 3, nil)
	f := cg.AllFuncs()[0]
	st, err := Build(defaultsWith(300, map[config.ID]config.Variant{
		config.CNBlockProb: config.Probf{Cum: []int{100, 100, 100}},
	}), cg, va, f)
	require.NoError(t, err)

	everyNode(st, st.Root(), func(id semitree.NodeID) {
		if st.Category(id) != Break {
			return
		}
		if st.BreakPayload(id) == BreakBreak || st.BreakPayload(id) == BreakContinue {
			require.True(t, st.HaveParentOfCategory(id, Loop))
		}
	})
}

// S5: one split with CONTPROB always For and EXPANDCONT always true turns
// a Block into a Loop; the tree must then contain a Loop node.
func TestScenarioS5(t *testing.T) {
	cg, va := buildPipeline(t, 4, nil)
	f := cg.AllFuncs()[0]
	cfg := defaultsWith(400, map[config.ID]config.Variant{
		config.MSSplits:     config.Single{Val: 1},
		config.CGVertices:   config.Single{Val: 3},
		config.CNContProb:   config.Probf{Cum: []int{0, 100, 100, 100}}, // always For
		config.CNExpandCont: config.Pflag{Prob: 101, Total: 100}, // deterministically true: draw is in [0,Total)
	})
	st, err := Build(cfg, cg, va, f)
	require.NoError(t, err)

	foundLoop := false
	everyNode(st, st.Root(), func(id semitree.NodeID) {
		if st.Category(id) == Loop {
			foundLoop = true
		}
	})
	require.True(t, foundLoop)
}

func TestAccessBlockWrapsOnlyVariablesWithAccessors(t *testing.T) {
	cg, va := buildPipeline(t, 5, nil)
	f := cg.AllFuncs()[0]
	st, err := Build(defaultsWith(500, nil), cg, va, f)
	require.NoError(t, err)

	everyNode(st, st.Root(), func(id semitree.NodeID) {
		if st.Category(id) != Access {
			return
		}
		require.NotEmpty(t, st.Uses(id))
		parent := st.Parent(id)
		require.Len(t, st.Children(parent), 1)
		require.Equal(t, id, st.Children(parent)[0])
	})
}

func TestDeterministic(t *testing.T) {
	cg, va := buildPipeline(t, 6, nil)
	f := cg.AllFuncs()[0]
	st1, err1 := Build(defaultsWith(600, nil), cg, va, f)
	st2, err2 := Build(defaultsWith(600, nil), cg, va, f)
	require.NoError(t, err1)
	require.NoError(t, err2)
	require.Equal(t, st1.NNodes(), st2.NNodes())

	var catSeq1, catSeq2 []Category
	everyNode(st1, st1.Root(), func(id semitree.NodeID) { catSeq1 = append(catSeq1, st1.Category(id)) })
	everyNode(st2, st2.Root(), func(id semitree.NodeID) { catSeq2 = append(catSeq2, st2.Category(id)) })
	require.Equal(t, catSeq1, catSeq2)
}

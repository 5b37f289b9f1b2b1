package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults(1, true, false)
	require.NoError(t, cfg.Validate())
}

func TestSingleRoundtrip(t *testing.T) {
	cfg := Defaults(1, true, false)
	v, err := cfg.Get(TGSeeds)
	require.NoError(t, err)
	require.Equal(t, 8, v)
}

func TestRangeWithinBounds(t *testing.T) {
	cfg := Defaults(1, true, false)
	lo, hi, err := cfg.MinMax(TGArrSize)
	require.NoError(t, err)
	for i := 0; i < 500; i++ {
		v, err := cfg.Get(TGArrSize)
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, lo)
		require.LessOrEqual(t, v, hi)
	}
}

func TestMinMaxRejectsNonRange(t *testing.T) {
	cfg := Defaults(1, true, false)
	_, _, err := cfg.MinMax(TGSeeds)
	require.Error(t, err)
}

func TestOutOfRange(t *testing.T) {
	cfg := Defaults(1, true, false)
	_, err := cfg.Get(ID(99999))
	require.Error(t, err)
}

func TestProbfLaw(t *testing.T) {
	cfg := Defaults(1, true, false)
	buckets := map[int]int{}
	const n = 20000
	for i := 0; i < n; i++ {
		v, err := cfg.Get(CNBlockProb)
		require.NoError(t, err)
		buckets[v]++
	}
	// CNBlockProb = {30,70,100} -> bucket 0 ~30%, bucket1 ~40%, bucket2 ~30%
	require.InDelta(t, 0.30, float64(buckets[0])/n, 0.03)
	require.InDelta(t, 0.40, float64(buckets[1])/n, 0.03)
	require.InDelta(t, 0.30, float64(buckets[2])/n, 0.03)
}

func TestPflagLaw(t *testing.T) {
	cfg := Defaults(1, true, false)
	hits := 0
	const n = 20000
	for i := 0; i < n; i++ {
		v, err := cfg.Get(CGSelfLoop)
		require.NoError(t, err)
		hits += v
	}
	require.InDelta(t, 0.05, float64(hits)/n, 0.02)
}

func TestCloneIndependentRNG(t *testing.T) {
	parent := Defaults(1, true, false)
	childSeed := uint64(parent.RandPositive())
	a := parent.Clone(childSeed)
	b := parent.Clone(childSeed)
	for i := 0; i < 100; i++ {
		va, err := a.Get(TGArrSize)
		require.NoError(t, err)
		vb, err := b.Get(TGArrSize)
		require.NoError(t, err)
		require.Equal(t, va, vb)
	}
}

func TestValidateRejectsBadArity(t *testing.T) {
	values := map[ID]Variant{}
	for _, d := range Registry {
		values[d.ID] = d.Default
	}
	values[CNBlockProb] = Probf{Cum: []int{1, 2}}
	cfg := New(1, true, false, values)
	err := cfg.Validate()
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "cn-blockprob") || strings.Contains(err.Error(), "ConfigError"))
}

func TestNameOfNormalization(t *testing.T) {
	require.Equal(t, "tg-splits", nameOf("TG::SPLITS"))
	require.Equal(t, "ms-use-signed", nameOf("MS::USE_SIGNED"))
}

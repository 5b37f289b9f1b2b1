package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Latimeriidae/coelacanth/internal/config"
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

func TestRunProducesAllStages(t *testing.T) {
	cfg := defaultsWith(1, map[config.ID]config.Variant{
		config.PGVar:    config.Single{Val: 2},
		config.PGSplits: config.Single{Val: 2},
	})
	res, err := Run(context.Background(), cfg, Options{})
	require.NoError(t, err)
	require.NotNil(t, res.TypeGraph)
	require.NotNil(t, res.CallGraph)
	require.Len(t, res.VarAssigns, 2)
	require.Len(t, res.ControlGraphs, 2)
	for _, byVar := range res.ControlGraphs {
		require.Len(t, byVar, 2)
		for _, trees := range byVar {
			require.Len(t, trees, res.CallGraph.NFuncs())
		}
	}
}

func TestStopOnTG(t *testing.T) {
	cfg := defaultsWith(2, map[config.ID]config.Variant{
		config.PGCStopOnTG: config.SingleBool{Val: true},
	})
	res, err := Run(context.Background(), cfg, Options{})
	require.NoError(t, err)
	require.NotNil(t, res.TypeGraph)
	require.Nil(t, res.CallGraph)
}

func TestStopOnCG(t *testing.T) {
	cfg := defaultsWith(3, map[config.ID]config.Variant{
		config.PGCStopOnCG: config.SingleBool{Val: true},
	})
	res, err := Run(context.Background(), cfg, Options{})
	require.NoError(t, err)
	require.NotNil(t, res.CallGraph)
	require.Nil(t, res.VarAssigns)
}

func TestDumpsWritesArtefacts(t *testing.T) {
	dir := t.TempDir()
	values := make(map[config.ID]config.Variant, len(config.Registry))
	for _, d := range config.Registry {
		values[d.ID] = d.Default
	}
	values[config.PGVar] = config.Single{Val: 1}
	values[config.PGSplits] = config.Single{Val: 1}
	cfg := config.New(4, false, true, values)

	_, err := Run(context.Background(), cfg, Options{DumpsDir: dir})
	require.NoError(t, err)

	for _, name := range []string{"initial.cfg", "initial.cfg.yaml", "initial.types", "initial.calls", "varassign.0", "controlgraph.0.0"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, "missing artefact %s", name)
	}
}

func TestDeterministicAcrossConsumerCounts(t *testing.T) {
	cfg1 := defaultsWith(5, map[config.ID]config.Variant{config.PGConsumers: config.Single{Val: 1}})
	cfg2 := defaultsWith(5, map[config.ID]config.Variant{config.PGConsumers: config.Single{Val: 8}})

	dir1, dir2 := t.TempDir(), t.TempDir()
	cfg1v := mergeDumps(cfg1, true)
	cfg2v := mergeDumps(cfg2, true)

	_, err := Run(context.Background(), cfg1v, Options{DumpsDir: dir1})
	require.NoError(t, err)
	_, err = Run(context.Background(), cfg2v, Options{DumpsDir: dir2})
	require.NoError(t, err)

	for _, name := range []string{"initial.types", "initial.calls"} {
		a, err := os.ReadFile(filepath.Join(dir1, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dir2, name))
		require.NoError(t, err)
		require.Equal(t, string(a), string(b), "artefact %s diverged across consumer counts", name)
	}
}

func mergeDumps(cfg *config.Config, dumps bool) *config.Config {
	values := make(map[config.ID]config.Variant, len(cfg.Values()))
	for k, v := range cfg.Values() {
		values[k] = v
	}
	return config.New(cfg.Seed(), cfg.Quiet(), dumps, values)
}

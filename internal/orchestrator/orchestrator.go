// Package orchestrator drives the derivation pipeline end to end, per
// SPEC_FULL.md 4.2/5: a single-threaded producer that builds the type
// graph and call graph directly, then fans out variable-assignment draws
// (PG::VAR of them) and, per draw, control-graph draws (PG::SPLITS of
// them) across a bounded taskpool.Pool, blocking on futures at each stage
// boundary. Every spawned task's seed is drawn from the parent Config
// before the task is constructed, never pulled concurrently from a
// shared PRNG (SPEC_FULL.md 9).
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Latimeriidae/coelacanth/internal/callgraph"
	"github.com/Latimeriidae/coelacanth/internal/config"
	"github.com/Latimeriidae/coelacanth/internal/coelog"
	"github.com/Latimeriidae/coelacanth/internal/controlgraph"
	"github.com/Latimeriidae/coelacanth/internal/exprir"
	"github.com/Latimeriidae/coelacanth/internal/locir"
	"github.com/Latimeriidae/coelacanth/internal/taskpool"
	"github.com/Latimeriidae/coelacanth/internal/typegraph"
	"github.com/Latimeriidae/coelacanth/internal/varassign"
)

// Options controls the ambient "where do dumps go" concern — not part of
// the spec's option registry, since section 6 only gates artefacts on
// "--dumps", never naming a directory flag.
type Options struct {
	DumpsDir string
}

// Result collects every stage's output, addressable by randomization axis
// for tests and for a future locIR/exprIR stage to consume.
type Result struct {
	TypeGraph     *typegraph.TypeGraph
	CallGraph     *callgraph.CallGraph
	VarAssigns    []*varassign.VarAssign                         // index: r_var
	ControlGraphs [][]map[callgraph.FuncID]*controlgraph.SplitTree // index: [r_var][r_split]
}

// Run executes the full pipeline against cfg, honoring PGC::STOP_ON_*
// early-exit flags and writing dump artefacts when cfg.Dumps() is set.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	res := &Result{}

	tgSeed := cfg.RandPositive()
	tg, err := typegraph.Build(cfg.Clone(uint64(tgSeed)))
	if err != nil {
		return nil, err
	}
	res.TypeGraph = tg
	coelog.Info("type graph built", "vertices", tgVertexCount(tg))

	if cfg.Dumps() {
		if err := dumpConfig(cfg, opts.DumpsDir); err != nil {
			return nil, err
		}
		if err := dumpToFile(opts.DumpsDir, "initial.types", tg.Dump); err != nil {
			return nil, err
		}
	}
	if stop, err := cfg.GetBool(config.PGCStopOnTG); err != nil {
		return nil, err
	} else if stop {
		return res, nil
	}

	cgSeed := cfg.RandPositive()
	cg, err := callgraph.Build(cfg.Clone(uint64(cgSeed)), tg)
	if err != nil {
		return nil, err
	}
	res.CallGraph = cg
	coelog.Info("call graph built", "functions", cg.NFuncs())

	if cfg.Dumps() {
		if err := dumpToFile(opts.DumpsDir, "initial.calls", func(w io.Writer) error { return cg.Dump(w, tg) }); err != nil {
			return nil, err
		}
	}
	if stop, err := cfg.GetBool(config.PGCStopOnCG); err != nil {
		return nil, err
	} else if stop {
		return res, nil
	}

	consumers, err := cfg.Get(config.PGConsumers)
	if err != nil {
		return nil, err
	}
	nVar, err := cfg.Get(config.PGVar)
	if err != nil {
		return nil, err
	}
	nSplit, err := cfg.Get(config.PGSplits)
	if err != nil {
		return nil, err
	}

	pool := taskpool.New(ctx, consumers)
	vaFutures := make([]*taskpool.Future[*varassign.VarAssign], nVar)
	for r := 0; r < nVar; r++ {
		seed := cfg.RandPositive()
		vaFutures[r] = taskpool.Spawn(pool, func(ctx context.Context) (*varassign.VarAssign, error) {
			return varassign.Build(cfg.Clone(uint64(seed)), tg, cg)
		})
	}
	if err := pool.Wait(); err != nil {
		return nil, err
	}
	res.VarAssigns = make([]*varassign.VarAssign, nVar)
	for r, f := range vaFutures {
		va, err := f.Get()
		if err != nil {
			return nil, err
		}
		res.VarAssigns[r] = va
		if cfg.Dumps() {
			name := fmt.Sprintf("varassign.%d", r)
			if err := dumpToFile(opts.DumpsDir, name, va.Dump); err != nil {
				return nil, err
			}
		}
	}
	coelog.Info("variable assignment complete", "draws", nVar)

	if stop, err := cfg.GetBool(config.PGCStopOnVA); err != nil {
		return nil, err
	} else if stop {
		return res, nil
	}

	pool = taskpool.New(ctx, consumers)
	type cnKey struct{ rVar, rSplit int }
	cnFutures := make(map[cnKey]*taskpool.Future[map[callgraph.FuncID]*controlgraph.SplitTree])
	for r := 0; r < nVar; r++ {
		va := res.VarAssigns[r]
		for s := 0; s < nSplit; s++ {
			seed := cfg.RandPositive()
			key := cnKey{r, s}
			cnFutures[key] = taskpool.Spawn(pool, func(ctx context.Context) (map[callgraph.FuncID]*controlgraph.SplitTree, error) {
				taskCfg := cfg.Clone(uint64(seed))
				trees := make(map[callgraph.FuncID]*controlgraph.SplitTree, cg.NFuncs())
				for _, f := range cg.AllFuncs() {
					st, err := controlgraph.Build(taskCfg, cg, va, f)
					if err != nil {
						return nil, err
					}
					trees[f] = st
				}
				return trees, nil
			})
		}
	}
	if err := pool.Wait(); err != nil {
		return nil, err
	}

	res.ControlGraphs = make([][]map[callgraph.FuncID]*controlgraph.SplitTree, nVar)
	for r := 0; r < nVar; r++ {
		res.ControlGraphs[r] = make([]map[callgraph.FuncID]*controlgraph.SplitTree, nSplit)
		for s := 0; s < nSplit; s++ {
			trees, err := cnFutures[cnKey{r, s}].Get()
			if err != nil {
				return nil, err
			}
			res.ControlGraphs[r][s] = trees
			if cfg.Dumps() {
				name := fmt.Sprintf("controlgraph.%d.%d", r, s)
				if err := dumpToFile(opts.DumpsDir, name, func(w io.Writer) error {
					return dumpSplitTrees(w, cg, res.VarAssigns[r], trees)
				}); err != nil {
					return nil, err
				}
			}
		}
	}
	coelog.Info("control graph complete", "var_draws", nVar, "split_draws", nSplit)

	stopCN, err := cfg.GetBool(config.PGCStopOnCN)
	if err != nil {
		return nil, err
	}
	if !stopCN {
		for _, byVar := range res.ControlGraphs {
			for _, trees := range byVar {
				for _, st := range trees {
					if err := locir.Run(st); err != nil {
						return nil, err
					}
					if err := exprir.Run(st); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	return res, nil
}

func dumpSplitTrees(w io.Writer, cg *callgraph.CallGraph, va *varassign.VarAssign, trees map[callgraph.FuncID]*controlgraph.SplitTree) error {
	for _, f := range cg.AllFuncs() {
		if _, err := fmt.Fprintf(w, "func %d:\n", int(f)); err != nil {
			return err
		}
		if err := trees[f].Dump(w, va); err != nil {
			return err
		}
	}
	return nil
}

func dumpToFile(dir, name string, write func(io.Writer) error) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}

func dumpConfig(cfg *config.Config, dir string) error {
	if err := dumpToFile(dir, "initial.cfg", func(w io.Writer) error { return cfg.Dump(w) }); err != nil {
		return err
	}
	return dumpToFile(dir, "initial.cfg.yaml", func(w io.Writer) error {
		return encodeConfigYAML(w, cfg)
	})
}

func encodeConfigYAML(w io.Writer, cfg *config.Config) error {
	doc := struct {
		Seed    uint64                 `yaml:"seed"`
		Quiet   bool                   `yaml:"quiet"`
		Dumps   bool                   `yaml:"dumps"`
		Options map[string]interface{} `yaml:"options"`
	}{
		Seed:    cfg.Seed(),
		Quiet:   cfg.Quiet(),
		Dumps:   cfg.Dumps(),
		Options: make(map[string]interface{}, len(config.Registry)),
	}
	values := cfg.Values()
	for _, d := range config.Registry {
		doc.Options[d.Name] = values[d.ID]
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(doc)
}

func tgVertexCount(tg *typegraph.TypeGraph) int {
	return len(tg.AllVertices())
}

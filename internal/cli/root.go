// Package cli builds coelacanth's command line, grounded on the
// teacher's root.go: same negatable-boolean-pair idiom
// (negBoolBinding/addBoolPair), same PreRun flag-changed detection for
// --seed, same cobra.Command shape — but driving internal/config's
// registry instead of a hardcoded Options struct, per SPEC_FULL.md 4.1's
// CLI-registration rule.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Latimeriidae/coelacanth/internal/config"
	"github.com/Latimeriidae/coelacanth/internal/coelog"
	"github.com/Latimeriidae/coelacanth/internal/orchestrator"
)

const appName = "coelacanth"

// negBoolBinding pairs a boolean option's `--<name>` flag with its
// `--no-<name>` complement, exactly as the teacher's root.go does for
// Csmith's feature switches.
type negBoolBinding struct {
	id     config.ID
	target *bool
	neg    *bool
}

// bindings holds every flag variable the registry produced, keyed by
// option id so RunE can re-assemble a values map after cobra parses argv.
type bindings struct {
	single       map[config.ID]*int
	singleString map[config.ID]*string
	rangeMin     map[config.ID]*int
	rangeMax     map[config.ID]*int
	pflag        map[config.ID]*[]int
	probf        map[config.ID]*[]int
	boolPairs    []negBoolBinding
}

func newBindings() *bindings {
	return &bindings{
		single:       make(map[config.ID]*int),
		singleString: make(map[config.ID]*string),
		rangeMin:     make(map[config.ID]*int),
		rangeMax:     make(map[config.ID]*int),
		pflag:        make(map[config.ID]*[]int),
		probf:        make(map[config.ID]*[]int),
	}
}

// registerOptions exposes every Registry entry as a flag family per
// SPEC_FULL.md 4.1: Single/SingleString get a bare `--name`, SingleBool
// additionally gets `--no-name`, Range gets `--name-min`/`--name-max`,
// Pflag/Probf get a multi-valued `--name` (prob,total / cumulative list).
func registerOptions(cmd *cobra.Command) *bindings {
	b := newBindings()
	for _, d := range config.Registry {
		switch def := d.Default.(type) {
		case config.Single:
			v := def.Val
			cmd.Flags().IntVar(&v, d.Name, v, d.Description)
			b.single[d.ID] = &v
		case config.SingleBool:
			target := def.Val
			neg := new(bool)
			cmd.Flags().BoolVar(&target, d.Name, target, d.Description)
			cmd.Flags().BoolVar(neg, "no-"+d.Name, false, "disable "+d.Description)
			b.boolPairs = append(b.boolPairs, negBoolBinding{id: d.ID, target: &target, neg: neg})
		case config.SingleString:
			v := def.Val
			cmd.Flags().StringVar(&v, d.Name, v, d.Description)
			b.singleString[d.ID] = &v
		case config.Range:
			lo, hi := def.From, def.To
			cmd.Flags().IntVar(&lo, d.Name+"-min", lo, d.Description+" (minimum)")
			cmd.Flags().IntVar(&hi, d.Name+"-max", hi, d.Description+" (maximum)")
			b.rangeMin[d.ID] = &lo
			b.rangeMax[d.ID] = &hi
		case config.Pflag:
			v := []int{def.Prob, def.Total}
			cmd.Flags().IntSliceVar(&v, d.Name, v, d.Description+" (prob,total)")
			b.pflag[d.ID] = &v
		case config.Probf:
			v := append([]int{}, def.Cum...)
			cmd.Flags().IntSliceVar(&v, d.Name, v, d.Description+" (cumulative list)")
			b.probf[d.ID] = &v
		}
	}
	return b
}

// values re-derives the registry's value map from parsed flags.
func (b *bindings) values() map[config.ID]config.Variant {
	values := make(map[config.ID]config.Variant, len(config.Registry))
	for _, d := range config.Registry {
		values[d.ID] = d.Default
	}
	for id, v := range b.single {
		values[id] = config.Single{Val: *v}
	}
	for id, v := range b.singleString {
		values[id] = config.SingleString{Val: *v}
	}
	for id, lo := range b.rangeMin {
		values[id] = config.Range{From: *lo, To: *b.rangeMax[id]}
	}
	for id, v := range b.pflag {
		p := *v
		prob, total := 0, 100
		if len(p) > 0 {
			prob = p[0]
		}
		if len(p) > 1 {
			total = p[1]
		}
		values[id] = config.Pflag{Prob: prob, Total: total}
	}
	for id, v := range b.probf {
		values[id] = config.Probf{Cum: append([]int{}, (*v)...)}
	}
	for _, pair := range b.boolPairs {
		values[pair.id] = config.SingleBool{Val: *pair.target}
	}
	return values
}

func (b *bindings) applyNegations() {
	for _, pair := range b.boolPairs {
		if *pair.neg {
			*pair.target = false
		}
	}
}

// NewRootCmd builds the `coelacanth` command: registry-driven flags plus
// the always-registered family (help is cobra's default, seed/quiet/
// dumps/dumps-dir/showval below).
func NewRootCmd() *cobra.Command {
	var seed uint64
	var quiet, dumps bool
	var dumpsDir string
	var showval string
	seedSet := false

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Seeded random type/call/control-graph test-program generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	b := registerOptions(cmd)

	cmd.Flags().Uint64Var(&seed, "seed", 0, "PRNG seed (0 picks a fresh seed from the clock)")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress informational log output")
	cmd.Flags().BoolVar(&dumps, "dumps", false, "write initial.cfg/initial.types/initial.calls/varassign.*/controlgraph.* artefacts")
	cmd.Flags().StringVar(&dumpsDir, "dumps-dir", ".", "directory dump artefacts are written to")
	cmd.Flags().StringVar(&showval, "showval", "", "print the resolved value of a registered option and exit")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		seedSet = cmd.Flags().Changed("seed")
		b.applyNegations()
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return fmt.Errorf("unexpected arguments: %v", args)
		}
		if !seedSet || seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}

		values := b.values()
		cfg := config.New(seed, quiet, dumps, values)
		if err := cfg.Validate(); err != nil {
			return err
		}

		coelog.Configure(cmd.ErrOrStderr(), quiet)

		if showval != "" {
			return printShowval(cmd, cfg, showval)
		}

		_, err := orchestrator.Run(context.Background(), cfg, orchestrator.Options{DumpsDir: dumpsDir})
		return err
	}

	return cmd
}

func printShowval(cmd *cobra.Command, cfg *config.Config, name string) error {
	for _, d := range config.Registry {
		if d.Name != name {
			continue
		}
		if _, ok := d.Default.(config.SingleString); ok {
			s, err := cfg.GetString(d.ID)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
			return err
		}
		v, err := cfg.Get(d.ID)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
		return err
	}
	return fmt.Errorf("unknown option %q", name)
}

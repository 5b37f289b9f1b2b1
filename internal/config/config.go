// Package config implements the typed option registry and seeded RNG
// facade shared by every derivation stage, grounded on
// original_source/lib/config/configs.cc and the teacher's
// pkg/csmith/options.go constructor-of-defaults idiom.
package config

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/Latimeriidae/coelacanth/internal/coelerr"
	"github.com/Latimeriidae/coelacanth/internal/mtrand"
)

// Config is a seeded, mutex-guarded option store. Downstream stages never
// share a Config's PRNG concurrently — a fresh seed is drawn from the
// parent via RandPositive before each task is spawned, and the task builds
// its own Config from it via Clone (see internal/orchestrator).
type Config struct {
	seed  uint64
	quiet bool
	dumps bool

	mu     sync.Mutex
	rng    *mtrand.Source
	values map[ID]Variant
}

// Defaults builds a Config from the registry's default variants.
func Defaults(seed uint64, quiet, dumps bool) *Config {
	values := make(map[ID]Variant, len(Registry))
	for _, d := range Registry {
		values[d.ID] = d.Default
	}
	return New(seed, quiet, dumps, values)
}

// New builds a Config from an explicit value map. It performs no checks;
// Validate checks Probf arity and shape and Range ordering.
func New(seed uint64, quiet, dumps bool, values map[ID]Variant) *Config {
	return &Config{
		seed:   seed,
		quiet:  quiet,
		dumps:  dumps,
		rng:    mtrand.New(seed),
		values: values,
	}
}

func (c *Config) Validate() error {
	for id, v := range c.values {
		if r, ok := v.(Range); ok && r.From > r.To {
			return coelerr.New(coelerr.ConfigErrorKind,
				fmt.Sprintf("option %s: range min %d exceeds max %d", ByID[id].Name, r.From, r.To))
		}
		pf, ok := v.(Probf)
		if !ok {
			continue
		}
		desc, known := ByID[id]
		if !known {
			continue
		}
		if desc.ProbfArity != 0 && len(pf.Cum) != desc.ProbfArity {
			return coelerr.New(coelerr.ConfigErrorKind,
				fmt.Sprintf("option %s: probf has %d entries, want %d", desc.Name, len(pf.Cum), desc.ProbfArity))
		}
		if len(pf.Cum) == 0 {
			return coelerr.New(coelerr.ConfigErrorKind, fmt.Sprintf("option %s: probf must be non-empty", desc.Name))
		}
		prev := 0
		for _, c := range pf.Cum {
			if c < prev {
				return coelerr.New(coelerr.ConfigErrorKind, fmt.Sprintf("option %s: probf must be non-decreasing", desc.Name))
			}
			prev = c
		}
		if pf.Cum[len(pf.Cum)-1] == 0 {
			return coelerr.New(coelerr.ConfigErrorKind, fmt.Sprintf("option %s: probf must be normalizable", desc.Name))
		}
	}
	return nil
}

// Seed reports the seed the Config was constructed with (diagnostic/dump
// use only — never re-derive randomness from it; draw fresh via
// RandPositive instead).
func (c *Config) Seed() uint64 { return c.seed }

func (c *Config) Quiet() bool { return c.quiet }
func (c *Config) Dumps() bool { return c.dumps }

// RandPositive draws a value in [0, math.MaxInt32], matching the
// original's rand_positive() contract used for per-task child seeds.
func (c *Config) RandPositive() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int(c.rng.Uint64() >> 33) // keep strictly within int32 positive range
}

// randFrom draws uniformly in [lo, hi] inclusive under the lock.
func (c *Config) randFrom(lo, hi int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.IntRange(lo, hi)
}

// UniformIndex draws a uniform index in [0, n). Every derivation stage
// needs "pick one of these n candidates" (a leaf vertex, a callee, a
// candidate pointer target); this is the single shared primitive for it,
// rather than each stage reimplementing rejection sampling over the
// Config's PRNG directly.
func (c *Config) UniformIndex(n int) (int, error) {
	if n <= 0 {
		return 0, coelerr.New(coelerr.OutOfRangeKind, "uniform_index: n must be positive")
	}
	if n == 1 {
		return 0, nil
	}
	return c.randFrom(0, n-1), nil
}

// Get resolves an option to an int per its variant kind.
func (c *Config) Get(id ID) (int, error) {
	v, ok := c.values[id]
	if !ok {
		return 0, coelerr.New(coelerr.OutOfRangeKind, fmt.Sprintf("unknown option id %d", id))
	}
	switch t := v.(type) {
	case Single:
		return t.Val, nil
	case SingleBool:
		if t.Val {
			return 1, nil
		}
		return 0, nil
	case SingleString:
		var n int
		if _, err := fmt.Sscanf(t.Val, "%d", &n); err != nil {
			return 0, coelerr.Wrap(coelerr.ConfigErrorKind, "single_string not numeric", err)
		}
		return n, nil
	case Range:
		return c.randFrom(t.From, t.To), nil
	case Pflag:
		return c.fromPflag(t), nil
	case Probf:
		return c.fromProbf(t.Cum), nil
	default:
		return 0, coelerr.New(coelerr.ConfigErrorKind, "non-exhaustive variant")
	}
}

// MustGet panics on error; reserved for call sites operating on
// registry-default ids that cannot plausibly be unknown.
func (c *Config) MustGet(id ID) int {
	v, err := c.Get(id)
	if err != nil {
		panic(err)
	}
	return v
}

// GetBool is a convenience wrapper for SingleBool/Pflag-shaped options
// consumed as booleans (e.g. EXPANDCONT's "turn container?" decision).
func (c *Config) GetBool(id ID) (bool, error) {
	v, err := c.Get(id)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// GetString mirrors gets(): decimal of Get() except SingleString, which
// returns its stored string verbatim.
func (c *Config) GetString(id ID) (string, error) {
	v, ok := c.values[id]
	if !ok {
		return "", coelerr.New(coelerr.OutOfRangeKind, fmt.Sprintf("unknown option id %d", id))
	}
	if ss, ok := v.(SingleString); ok {
		return ss.Val, nil
	}
	n, err := c.Get(id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n), nil
}

// MinMax requires a Range option.
func (c *Config) MinMax(id ID) (int, int, error) {
	v, ok := c.values[id]
	if !ok {
		return 0, 0, coelerr.New(coelerr.OutOfRangeKind, fmt.Sprintf("unknown option id %d", id))
	}
	r, ok := v.(Range)
	if !ok {
		return 0, 0, coelerr.New(coelerr.InvalidKindKind, "minmax requires a Range option")
	}
	return r.From, r.To, nil
}

// ProbSize requires a Probf option; returns its cumulative vector length.
func (c *Config) ProbSize(id ID) (int, error) {
	v, ok := c.values[id]
	if !ok {
		return 0, coelerr.New(coelerr.OutOfRangeKind, fmt.Sprintf("unknown option id %d", id))
	}
	p, ok := v.(Probf)
	if !ok {
		return 0, coelerr.New(coelerr.InvalidKindKind, "prob_size requires a Probf option")
	}
	return len(p.Cum), nil
}

func (c *Config) fromPflag(p Pflag) int {
	if c.randFrom(0, p.Total-1) < p.Prob {
		return 1
	}
	return 0
}

// fromProbf draws v uniform in [0, cum.last) and returns the smallest i
// with cum[i] > v, matching the original's linear scan exactly (order of
// evaluation matters for anyone replaying a recorded trace of draws).
func (c *Config) fromProbf(cum []int) int {
	if len(cum) == 0 {
		return 0
	}
	sum := cum[len(cum)-1]
	if sum == 0 {
		return 0
	}
	val := c.randFrom(0, sum-1)
	cur := 0
	for _, bound := range cum {
		if bound > val {
			break
		}
		cur++
	}
	return cur
}

// Clone builds a fresh Config sharing this Config's option values but
// with an independent PRNG seeded from seed. Per SPEC_FULL.md 4.2/9, the
// caller must have drawn seed from the parent's RandPositive() before
// calling Clone — Clone itself performs no draw, so concurrent clones of
// the same parent never race on its PRNG.
func (c *Config) Clone(seed uint64) *Config {
	values := make(map[ID]Variant, len(c.values))
	for k, v := range c.values {
		values[k] = v
	}
	return New(seed, c.quiet, c.dumps, values)
}

// Dump writes a human-readable rendering of the resolved configuration,
// one option per line, in registry order — the initial.cfg artefact.
func (c *Config) Dump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Coelacanth config (seed=%d quiet=%v dumps=%v)\n", c.seed, c.quiet, c.dumps); err != nil {
		return err
	}
	ids := make([]ID, 0, len(c.values))
	for id := range c.values {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		desc, ok := ByID[id]
		name := desc.Name
		if !ok {
			name = fmt.Sprintf("id-%d", id)
		}
		v := c.values[id]
		if _, err := fmt.Fprintf(w, "  %-24s = %v\n", name, v); err != nil {
			return err
		}
	}
	return nil
}

// Values exposes the raw option map for dump formats that need to walk
// every registered value (e.g. the YAML sidecar dump in internal/orchestrator).
func (c *Config) Values() map[ID]Variant {
	return c.values
}

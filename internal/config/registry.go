package config

import "strings"

// Descriptor is a registered option: its stable ID, CLI-facing name, a
// short help string, the default variant, and (for Probf options) the
// expected cumulative-vector arity used to validate `--<name>` input.
type Descriptor struct {
	ID          ID
	Name        string
	Description string
	Default     Variant
	ProbfArity  int
}

// nameOf lower-cases and hyphenates a namespaced option name the way
// register_option in the original's configs.cc does ("::" and "_" both
// become "-"): "TG::SPLITS" -> "tg-splits".
func nameOf(raw string) string {
	s := strings.ToLower(raw)
	s = strings.ReplaceAll(s, "::", "-")
	s = strings.ReplaceAll(s, "_", "-")
	return s
}

// Registry is the full option catalog in declaration order. Order is
// significant only for deterministic CLI help/flag iteration, never for
// generation semantics.
var Registry = buildRegistry()

func buildRegistry() []Descriptor {
	d := func(id ID, raw, desc string, def Variant) Descriptor {
		arity := 0
		if pf, ok := def.(Probf); ok {
			arity = len(pf.Cum)
		}
		return Descriptor{ID: id, Name: nameOf(raw), Description: desc, Default: def, ProbfArity: arity}
	}

	return []Descriptor{
		d(TGSeeds, "TG::SEEDS", "initial isolated scalar/pointer vertices", Single{Val: 8}),
		d(TGSplits, "TG::SPLITS", "number of constrained splits to grow the type graph", Single{Val: 24}),
		d(TGScalType, "TG::SCALTYPE", "pointer vs scalar seed selection", Pflag{Prob: 20, Total: 100}),
		d(TGTypeProb, "TG::TYPEPROB", "distribution over the scalar catalog (12 entries: 8 base + long/ulong + float/double)", Probf{Cum: []int{8, 16, 26, 34, 44, 52, 62, 70, 80, 86, 90, 94}}),
		d(TGContType, "TG::CONTTYPE", "struct vs array container choice on split", Probf{Cum: []int{40, 100}}),
		d(TGArrSize, "TG::ARRSIZE", "array element count on split", Range{From: 2, To: 8}),
		d(TGNFields, "TG::NFIELDS", "struct field count on split", Range{From: 2, To: 5}),
		d(TGMaxArrPreds, "TG::MAXARRPREDS", "max array ancestors before a split attempt aborts", Single{Val: 3}),
		d(TGMaxStructPreds, "TG::MAXSTRUCTPREDS", "max struct ancestors before a split attempt aborts", Single{Val: 3}),
		d(TGMaxPreds, "TG::MAXPREDS", "max combined struct+array ancestors", Single{Val: 5}),
		d(TGMoreScalars, "TG::MORESCALARS", "add a fresh top-level scalar after each split", Pflag{Prob: 40, Total: 100}),
		d(TGBFProb, "TG::BFPROB", "probability a struct scalar child becomes a bitfield", Pflag{Prob: 15, Total: 100}),
		d(TGBFSize, "TG::BFSIZE", "bitfield width in bits", Range{From: 1, To: 8}),
		d(TGLongT, "TG::LONGT", "include `long`/`unsigned long` in the scalar catalog", SingleBool{Val: true}),
		d(TGFPT, "TG::FPT", "include `float`/`double` in the scalar catalog", SingleBool{Val: true}),

		d(CGVertices, "CG::VERTICES", "function count", Single{Val: 12}),
		d(CGEdgeSet, "CG::EDGESET", "independent per-pair edge probability (percent)", Single{Val: 18}),
		d(CGArtificialConns, "CG::ARTIFICIAL_CONNS", "connections added for an artificial source repair", Single{Val: 2}),
		d(CGAddLeafs, "CG::ADDLEAFS", "extra leaf functions attached to random non-leaves", Single{Val: 3}),
		d(CGSelfLoop, "CG::SELFLOOP", "self-loop probability per vertex (percent)", Pflag{Prob: 5, Total: 100}),
		d(CGIndSetCnt, "CG::INDSETCNT", "indirect-call-eligible function count", Single{Val: 2}),
		d(CGTypeAttempts, "CG::TYPEATTEMPTS", "retries of get_random_type before linear-scan fallback", Single{Val: 16}),
		d(CGNArgs, "CG::NARGS", "argument count per function signature", Range{From: 0, To: 4}),
		d(MSUseSigned, "MS::USESIGNED", "metastructure: accept signed scalars", Pflag{Prob: 70, Total: 100}),
		d(MSUseFloat, "MS::USEFLOAT", "metastructure: accept float scalars", Pflag{Prob: 40, Total: 100}),
		d(MSUseComplex, "MS::USECOMPLEX", "metastructure: accept struct/array types", Pflag{Prob: 50, Total: 100}),
		d(MSUsePointers, "MS::USEPOINTERS", "metastructure: accept pointer types", Pflag{Prob: 50, Total: 100}),

		d(VANGlobals, "VA::NGLOBALS", "global variable count", Single{Val: 6}),
		d(VANIdx, "VA::NIDX", "free index variables per function", Single{Val: 3}),
		d(VANVAtts, "VA::NVATTS", "max attempts while filling local variables", Single{Val: 64}),
		d(MSNVars, "MS::NVARS", "target accepted local variable count per function", Single{Val: 8}),
		d(VAUsePerm, "VA::USEPERM", "probability of adding another permutator to an array var", Pflag{Prob: 30, Total: 100}),
		d(VAMaxPerm, "VA::MAXPERM", "max permutators per array variable", Single{Val: 2}),

		d(MSSplits, "MS::SPLITS", "split-tree refinement iterations per function", Single{Val: 20}),
		d(CNAddBlocks, "CN::ADDBLOCKS", "sibling blocks added per split", Single{Val: 2}),
		d(CNExpandCont, "CN::EXPANDCONT", "probability a split turns a container vs. a special (percent)", Pflag{Prob: 55, Total: 100}),
		d(CNContProb, "CN::CONTPROB", "container-kind distribution: If/For/Switch/Region", Probf{Cum: []int{40, 65, 85, 100}}),
		d(CNNBranchesIf, "CN::NBRANCHES_IF", "branch count for If", Range{From: 2, To: 3}),
		d(CNNBranchesSwitch, "CN::NBRANCHES_SWITCH", "branch count for Switch", Range{From: 2, To: 5}),
		d(CNNBranchesRgn, "CN::NBRANCHES_RGN", "branch count for Region", Range{From: 2, To: 4}),
		d(CNForStart, "CN::FOR_START", "loop start value", Range{From: 0, To: 4}),
		d(CNForSize, "CN::FOR_SIZE", "loop iteration count", Range{From: 1, To: 16}),
		d(CNForStep, "CN::FOR_STEP", "loop step", Range{From: 1, To: 2}),
		d(CNBlockProb, "CN::BLOCKPROB", "special-kind distribution: Break/CondCall/IndCall", Probf{Cum: []int{30, 70, 100}}),
		d(CNBreakType, "CN::BREAKTYPE", "break-kind distribution: Break/Continue/Return", Probf{Cum: []int{40, 70, 100}}),
		d(CNDefs, "CN::DEFS", "def references added per Block/Call node", Single{Val: 1}),
		d(CNUses, "CN::USES", "use references added per node allowing uses", Single{Val: 2}),

		d(PGConsumers, "PG::CONSUMERS", "worker pool size", Single{Val: 4}),
		d(PGVar, "PG::VAR", "number of varassign draws (r_var)", Single{Val: 1}),
		d(PGSplits, "PG::SPLITS", "number of controlgraph draws per varassign (r_split)", Single{Val: 1}),
		d(PGCStopOnTG, "PGC::STOP_ON_TG", "stop the pipeline after the type graph", SingleBool{Val: false}),
		d(PGCStopOnCG, "PGC::STOP_ON_CG", "stop the pipeline after the call graph", SingleBool{Val: false}),
		d(PGCStopOnVA, "PGC::STOP_ON_VA", "stop the pipeline after variable assignment", SingleBool{Val: false}),
		d(PGCStopOnCN, "PGC::STOP_ON_CN", "stop the pipeline after the control graph", SingleBool{Val: false}),
	}
}

// ByID indexes Registry for O(1) descriptor lookup.
var ByID = func() map[ID]Descriptor {
	m := make(map[ID]Descriptor, len(Registry))
	for _, desc := range Registry {
		m[desc.ID] = desc
	}
	return m
}()

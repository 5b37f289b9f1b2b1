package config

// ID names an option in the global registry. Names below mirror the
// original source's namespaced option enums (TG::, CG::, VA::, MS::,
// CN::, PG::, PGC::) — kept as a flat Go const block since Go has no
// nested-namespace enums, with the prefix preserved in each Descriptor's
// Name field for CLI flag derivation (see registry.go's nameOf).
type ID int

const (
	// TG -- type graph
	TGSeeds ID = iota
	TGSplits
	TGScalType
	TGTypeProb
	TGContType
	TGArrSize
	TGNFields
	TGMaxArrPreds
	TGMaxStructPreds
	TGMaxPreds
	TGMoreScalars
	TGBFProb
	TGBFSize
	TGLongT
	TGFPT

	// CG -- call graph
	CGVertices
	CGEdgeSet
	CGArtificialConns
	CGAddLeafs
	CGSelfLoop
	CGIndSetCnt
	CGTypeAttempts
	CGNArgs
	MSUseSigned
	MSUseFloat
	MSUseComplex
	MSUsePointers

	// VA -- variable assignment
	VANGlobals
	VANIdx
	VANVAtts
	MSNVars
	VAUsePerm
	VAMaxPerm

	// CN -- control graph
	MSSplits
	CNAddBlocks
	CNExpandCont
	CNContProb
	CNNBranchesIf
	CNNBranchesSwitch
	CNNBranchesRgn
	CNForStart
	CNForSize
	CNForStep
	CNBlockProb
	CNBreakType
	CNDefs
	CNUses

	// PG -- pipeline / orchestration
	PGConsumers
	PGVar
	PGSplits
	PGCStopOnTG
	PGCStopOnCG
	PGCStopOnVA
	PGCStopOnCN

	idCount
)

// Probf bucket indices, named for readability at call sites.
const (
	ContTypeArray  = 0
	ContTypeStruct = 1

	ScalTypeScalar  = 0
	ScalTypePointer = 1

	ContProbIf     = 0
	ContProbFor    = 1
	ContProbSwitch = 2
	ContProbRegion = 3

	BlockProbBreak   = 0
	BlockProbCCall   = 1
	BlockProbICall   = 2

	BreakTypeBreak    = 0
	BreakTypeContinue = 1
	BreakTypeReturn   = 2
)

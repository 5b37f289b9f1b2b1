// Package locir is the location-IR continuation point named in
// SPEC_FULL.md's Non-goals: lowering a split tree to a concrete
// location-addressable intermediate representation is explicitly out of
// scope, so this package declares the stage's call site without
// implementing it.
package locir

import "github.com/Latimeriidae/coelacanth/internal/controlgraph"

// Run is the stage's entry point. It intentionally emits nothing; it
// exists so internal/orchestrator has a typed call site to invoke once a
// future location-IR stage is implemented, per SPEC_FULL.md 1/9.
func Run(st *controlgraph.SplitTree) error {
	_ = st
	return nil
}

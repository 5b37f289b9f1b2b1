// Package exprir is the expression-IR continuation point named in
// SPEC_FULL.md's Non-goals: synthesizing concrete expressions for each
// split-tree access/use site is explicitly out of scope, so this package
// declares the stage's call site without implementing it.
package exprir

import "github.com/Latimeriidae/coelacanth/internal/controlgraph"

// Run is the stage's entry point. It intentionally emits nothing; it
// exists so internal/orchestrator has a typed call site to invoke once a
// future expression-IR stage is implemented, per SPEC_FULL.md 1/9.
func Run(st *controlgraph.SplitTree) error {
	_ = st
	return nil
}

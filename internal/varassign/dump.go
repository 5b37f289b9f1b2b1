package varassign

import (
	"fmt"
	"io"
	"sort"

	"github.com/Latimeriidae/coelacanth/internal/callgraph"
	"github.com/Latimeriidae/coelacanth/internal/typegraph"
)

// Dump writes the textual per-function variable assignment — the
// `varassign.<r>` artefact (SPEC_FULL.md section 6).
func (va *VarAssign) Dump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "globals: %d\n", len(va.globals)); err != nil {
		return err
	}
	for _, g := range va.globals {
		if _, err := fmt.Fprintf(w, "  %s : type %d\n", va.GetName(g), int(va.info[g].typ)); err != nil {
			return err
		}
	}

	for i, fs := range va.funcs {
		f := callgraph.FuncID(i)
		if _, err := fmt.Fprintf(w, "func %d:\n", int(f)); err != nil {
			return err
		}
		for _, v := range fs.locals {
			role := ""
			switch {
			case va.IsArg(f, v):
				role = " arg"
			case va.IsIndex(f, v):
				role = " index"
			case va.IsPermutator(f, v):
				role = " perm"
			}
			if _, err := fmt.Fprintf(w, "  %s : type %d%s\n", va.GetName(v), int(va.info[v].typ), role); err != nil {
				return err
			}
			subtypes := make([]typegraph.NodeID, 0, len(fs.pointees[v]))
			for subtype := range fs.pointees[v] {
				subtypes = append(subtypes, subtype)
			}
			sort.Slice(subtypes, func(i, j int) bool { return subtypes[i] < subtypes[j] })
			for _, subtype := range subtypes {
				if _, err := fmt.Fprintf(w, "    pointee[%d] = %s\n", int(subtype), va.GetName(fs.pointees[v][subtype])); err != nil {
					return err
				}
			}
			for _, idx := range fs.accidxs[v] {
				if _, err := fmt.Fprintf(w, "    accidx = %s\n", va.GetName(idx)); err != nil {
					return err
				}
			}
			for _, p := range fs.permsOf[v] {
				if _, err := fmt.Fprintf(w, "    perm = %s\n", va.GetName(p)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

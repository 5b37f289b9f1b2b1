package callgraph

import (
	"fmt"
	"io"
	"strings"

	"github.com/Latimeriidae/coelacanth/internal/typegraph"
)

func typeName(tg *typegraph.TypeGraph, t typegraph.NodeID) string {
	if t == VoidType {
		return "void"
	}
	if tg.Category(t) == typegraph.CatScalar {
		return tg.Scalar(t).Name
	}
	return fmt.Sprintf("T%d", t)
}

// Dump writes the call graph as a GraphViz DOT digraph — the
// initial.calls artefact. Vertex label is "<ret> foo<id>(<args>)", blue
// iff indirect; edges solid, red for Direct else black, per SPEC_FULL.md
// section 6.
func (cg *CallGraph) Dump(w io.Writer, tg *typegraph.TypeGraph) error {
	if _, err := fmt.Fprintln(w, "digraph callgraph {"); err != nil {
		return err
	}
	for v := range cg.vertices {
		args := make([]string, len(cg.vertices[v].args))
		for i, a := range cg.vertices[v].args {
			args[i] = typeName(tg, a)
		}
		label := fmt.Sprintf("%s foo%d(%s)", typeName(tg, cg.vertices[v].ret), v, strings.Join(args, ", "))
		color := "black"
		if cg.vertices[v].indirect {
			color = "blue"
		}
		if _, err := fmt.Fprintf(w, "  f%d [label=%q, color=%s];\n", v, label, color); err != nil {
			return err
		}
	}
	for from := range cg.out {
		for _, e := range cg.out[from] {
			color := "black"
			if e.kind == Direct {
				color = "red"
			}
			if _, err := fmt.Fprintf(w, "  f%d -> f%d [style=solid, color=%s];\n", from, e.to, color); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

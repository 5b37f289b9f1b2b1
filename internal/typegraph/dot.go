package typegraph

import (
	"fmt"
	"io"
)

// label renders a vertex the way SPEC_FULL.md section 6 specifies for
// initial.types: "T<id> = <scalar>" / "S<id>" / "A<id>[n]" / "P<id>".
func (tg *TypeGraph) label(id NodeID) string {
	v := &tg.vertices[id]
	switch v.cat {
	case CatScalar:
		return fmt.Sprintf("T%d = %s", id, tg.scalars[v.scalarIdx].Name)
	case CatStruct:
		return fmt.Sprintf("S%d", id)
	case CatArray:
		return fmt.Sprintf("A%d[%d]", id, v.nitems)
	case CatPointer:
		return fmt.Sprintf("P%d", id)
	default:
		return fmt.Sprintf("?%d", id)
	}
}

// Dump writes the type graph as a GraphViz DOT digraph — the
// initial.types artefact. Exact text is not a stable API (SPEC_FULL.md
// section 6's compatibility note); only node labels are.
func (tg *TypeGraph) Dump(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "digraph typegraph {"); err != nil {
		return err
	}
	for id := range tg.vertices {
		if _, err := fmt.Fprintf(w, "  n%d [label=%q];\n", id, tg.label(NodeID(id))); err != nil {
			return err
		}
	}
	for id := range tg.vertices {
		for _, child := range tg.vertices[id].children {
			style := "solid"
			if tg.vertices[id].cat == CatPointer {
				style = "dashed"
			}
			if _, err := fmt.Fprintf(w, "  n%d -> n%d [style=%s];\n", id, child, style); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

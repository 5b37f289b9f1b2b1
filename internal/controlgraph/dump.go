package controlgraph

import (
	"fmt"
	"io"
	"strings"

	"github.com/Latimeriidae/coelacanth/internal/semitree"
	"github.com/Latimeriidae/coelacanth/internal/varassign"
)

// Dump writes the indented textual split-tree dump — the
// `controlgraph.<r_var>.<r_split>` artefact (SPEC_FULL.md section 6).
// Node format: "<CATEGORY> [payload] [DEFS:<names>] [USES:<names>]".
func (st *SplitTree) Dump(w io.Writer, va *varassign.VarAssign) error {
	for _, c := range st.tree.Children(st.root) {
		if err := st.dumpNode(w, va, c, 0); err != nil {
			return err
		}
	}
	return nil
}

func (st *SplitTree) dumpNode(w io.Writer, va *varassign.VarAssign, id semitree.NodeID, depth int) error {
	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), st.renderLine(va, id)); err != nil {
		return err
	}
	for _, c := range st.tree.Children(id) {
		if err := st.dumpNode(w, va, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (st *SplitTree) renderLine(va *varassign.VarAssign, id semitree.NodeID) string {
	n := st.tree.Payload(id)
	var b strings.Builder
	b.WriteString(n.p.cat.String())

	switch n.p.cat {
	case Call:
		fmt.Fprintf(&b, " [%s func%d]", n.p.callType, int(n.p.callee))
	case Loop:
		fmt.Fprintf(&b, " [%d:%d:%d]", n.p.start, n.p.stop, n.p.step)
	case Break:
		fmt.Fprintf(&b, " [%s]", n.p.breakKind)
	}

	if len(n.defs) > 0 {
		b.WriteString(" DEFS:")
		b.WriteString(names(va, n.defs))
	}
	if len(n.uses) > 0 {
		b.WriteString(" USES:")
		b.WriteString(names(va, n.uses))
	}
	return b.String()
}

func names(va *varassign.VarAssign, vars []varassign.VarID) string {
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = va.GetName(v)
	}
	return strings.Join(parts, ",")
}

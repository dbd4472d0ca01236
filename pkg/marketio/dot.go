package marketio

import (
	"bytes"
	"fmt"
)

// ToDOT converts a result into Graphviz DOT as a left-to-right bipartite
// graph: agents on one rank, objects on the other, one edge per committed
// pairing. The DOT string renders with pkg/render.
func (rd *ResultDocument) ToDOT() string {
	objects := len(rd.Relation)
	agents := 0
	if objects > 0 {
		agents = len(rd.Relation[0])
	}

	var buf bytes.Buffer
	buf.WriteString("digraph matching {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	buf.WriteString("  { rank=same;\n")
	for a := 1; a <= agents; a++ {
		fmt.Fprintf(&buf, "    \"a%d\" [label=\"agent %d\", fillcolor=lightblue];\n", a, a)
	}
	buf.WriteString("  }\n")
	buf.WriteString("  { rank=same;\n")
	for o := 1; o <= objects; o++ {
		fmt.Fprintf(&buf, "    \"o%d\" [label=\"object %d\", fillcolor=lightyellow];\n", o, o)
	}
	buf.WriteString("  }\n")
	buf.WriteString("\n")

	for _, p := range rd.Pairs {
		fmt.Fprintf(&buf, "  \"a%d\" -> \"o%d\" [dir=none];\n", p.Agent, p.Object)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Package render turns a state graph into diagram text (DOT, mermaid) and
// optionally into rendered markup via a pluggable Renderer. Rendering is pure
// decoration: it never affects generated code.
package render

import (
	"fmt"
	"strings"

	"github.com/entrygen-xyz/go-entrygen/graph"
)

// DotText returns the graph in DOT notation. Edges come first in their
// canonical order, followed by nodes that appear in no edge.
func DotText(g *graph.Graph, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", name)
	for _, key := range g.EdgeKeys() {
		fmt.Fprintf(&b, "  %s -> %s;\n", key.From, key.To)
	}
	for _, id := range isolated(g) {
		fmt.Fprintf(&b, "  %s;\n", id)
	}
	b.WriteString("}\n")
	return b.String()
}

// MermaidText returns the graph as a mermaid flowchart.
func MermaidText(g *graph.Graph) string {
	var b strings.Builder
	b.WriteString("graph LR\n")
	for _, key := range g.EdgeKeys() {
		fmt.Fprintf(&b, "  %s --> %s;\n", key.From, key.To)
	}
	for _, id := range isolated(g) {
		fmt.Fprintf(&b, "  %s;\n", id)
	}
	return b.String()
}

// isolated returns the nodes that no edge touches, in canonical order.
func isolated(g *graph.Graph) []graph.NodeID {
	touched := make(map[graph.NodeID]bool)
	for _, key := range g.EdgeKeys() {
		touched[key.From] = true
		touched[key.To] = true
	}
	var out []graph.NodeID
	for _, id := range g.NodeIDs() {
		if !touched[id] {
			out = append(out, id)
		}
	}
	return out
}

package graph

import (
	"fmt"
	"strings"
)

// Text-rendering export helpers. Pure presentation: nothing here reads back
// into the engine, and no on-disk format is implied.

// ToDOT renders the graph in Graphviz DOT form. Nodes and edges appear in
// sorted order so the output is stable.
func (g *Graph) ToDOT() string {
	var b strings.Builder
	arrow := " -> "
	if g.graphType == Undirected {
		b.WriteString("graph G {\n")
		arrow = " -- "
	} else {
		b.WriteString("digraph G {\n")
	}

	for _, id := range g.NodeIDs() {
		n := g.nodes[id]
		label := id
		if n.Value != nil {
			label = fmt.Sprintf("%s\\n%s", id, canonicalString(n.Value))
		}
		fmt.Fprintf(&b, "  %q [label=%q];\n", id, label)
	}

	for _, e := range g.Edges() {
		attrs := []string{fmt.Sprintf("label=%q", e.Info.Type)}
		if w, ok := e.Info.WeightValue(); ok {
			attrs = append(attrs, fmt.Sprintf("weight=%g", w))
		}
		fmt.Fprintf(&b, "  %q%s%q [%s];\n", e.From, arrow, e.To, strings.Join(attrs, ", "))
	}

	b.WriteString("}\n")
	return b.String()
}

// ToASCII renders the graph as an indented tree walked from its roots
// (arbitrarily from the smallest node ID when no root exists). Revisited
// nodes are marked instead of expanded, so cyclic graphs render finitely.
func (g *Graph) ToASCII() string {
	if len(g.nodes) == 0 {
		return "(empty graph)\n"
	}

	var roots []string
	for _, id := range g.NodeIDs() {
		if len(g.nodes[id].predecessors) == 0 {
			roots = append(roots, id)
		}
	}
	if len(roots) == 0 {
		roots = g.NodeIDs()[:1]
	}

	var b strings.Builder
	expanded := make(map[string]bool)
	var render func(id, prefix string, last bool, top bool)
	render = func(id, prefix string, last, top bool) {
		connector := ""
		childPrefix := prefix
		if !top {
			if last {
				connector = prefix + "`-- "
				childPrefix = prefix + "    "
			} else {
				connector = prefix + "|-- "
				childPrefix = prefix + "|   "
			}
		}
		line := id
		if v := g.nodes[id].Value; v != nil {
			line = fmt.Sprintf("%s (%s)", id, canonicalString(v))
		}
		if expanded[id] {
			fmt.Fprintf(&b, "%s%s (...)\n", connector, id)
			return
		}
		fmt.Fprintf(&b, "%s%s\n", connector, line)
		expanded[id] = true
		children := g.nodes[id].Neighbors()
		for i, child := range children {
			render(child, childPrefix, i == len(children)-1, false)
		}
	}

	for _, root := range roots {
		render(root, "", true, true)
	}
	return b.String()
}

package graph

// Stats summarizes a graph for introspection.
type Stats struct {
	GraphType GraphType `json:"graph_type"`
	Nodes     int       `json:"nodes"`
	Edges     int       `json:"edges"`
	Roots     int       `json:"roots"`
	Leaves    int       `json:"leaves"`
	Orphans   int       `json:"orphans"`
	Density   float64   `json:"density"`
	Frozen    bool      `json:"frozen"`
	Rulesets  []string  `json:"rulesets,omitempty"`
	Rules     []string  `json:"rules,omitempty"`
}

// Stats computes a summary of the current graph state. Density is edges over
// the maximum possible for the node count and graph type; zero for graphs
// with fewer than two nodes.
func (g *Graph) Stats() Stats {
	s := Stats{
		GraphType: g.graphType,
		Nodes:     g.NodeCount(),
		Edges:     g.EdgeCount(),
		Frozen:    g.frozen,
		Rulesets:  g.Rulesets(),
	}
	for _, inst := range g.activeRules() {
		s.Rules = append(s.Rules, inst.Spec.Name())
	}
	for _, n := range g.nodes {
		if len(n.predecessors) == 0 {
			s.Roots++
		}
		if len(n.neighbors) == 0 {
			s.Leaves++
		}
		if n.isOrphan() {
			s.Orphans++
		}
	}
	if s.Nodes > 1 {
		max := float64(s.Nodes) * float64(s.Nodes-1)
		if g.graphType == Undirected {
			max /= 2
		}
		s.Density = float64(s.Edges) / max
	}
	return s
}

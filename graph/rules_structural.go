package graph

// shouldRunOn gates which operations each structural rule inspects.
//
//   - no_cycles: edge insertion (plus whole-graph validation at attach time)
//   - single_root: edge insertion and both removals, never add_node, so a
//     child node may be created before its parent edge
//   - connected: removals only
//   - max_degree / binary_tree: edge insertion
//   - no_duplicates: node insertion
//   - weighted_edges / unweighted_edges: edge insertion
func shouldRunOn(spec RuleSpec, op Operation) bool {
	if op.Kind == opValidateGraph {
		return true
	}
	switch spec.Kind {
	case RuleNoCycles:
		return op.Kind == OpAddEdge
	case RuleSingleRoot:
		return op.Kind == OpAddEdge || op.Kind == OpRemoveNode || op.Kind == OpRemoveEdge
	case RuleConnected:
		return op.Kind == OpRemoveNode || op.Kind == OpRemoveEdge
	case RuleMaxDegree, RuleBinaryTree:
		return op.Kind == OpAddEdge
	case RuleNoDuplicates:
		return op.Kind == OpAddNode
	case RuleWeightedEdges, RuleUnweightedEdges:
		return op.Kind == OpAddEdge
	default:
		return false
	}
}

// validateRule dispatches one structural spec against one operation.
func validateRule(g *Graph, spec RuleSpec, op Operation) error {
	switch spec.Kind {
	case RuleNoCycles:
		return validateNoCycles(g, op)
	case RuleSingleRoot:
		return validateSingleRoot(g, op)
	case RuleConnected:
		return validateConnected(g, op)
	case RuleMaxDegree:
		return validateMaxDegree(g, op, spec.Degree, spec.Name())
	case RuleBinaryTree:
		return validateMaxDegree(g, op, 2, spec.Name())
	case RuleNoDuplicates:
		return validateNoDuplicates(g, op)
	case RuleWeightedEdges:
		return validateWeightedEdges(g, op)
	case RuleUnweightedEdges:
		return validateUnweightedEdges(g, op)
	default:
		return nil
	}
}

// validateNoCycles rejects an edge insertion that closes a cycle. For
// add_edge it searches for an existing path from the new target back to the
// new source; for whole-graph validation it runs a full DFS with a
// recursion-stack set. Both searches use an explicit stack so recursion depth
// never tracks graph size.
func validateNoCycles(g *Graph, op Operation) error {
	if op.Kind == OpAddEdge {
		if op.From == op.To {
			return violation("no_cycles", "self-edge %s->%s would create a cycle", op.From, op.To)
		}
		if g.hasPathTo(op.To, op.From) {
			return violation("no_cycles", "adding edge %s->%s would create a cycle", op.From, op.To)
		}
		return nil
	}

	const (
		white = 0 // unvisited
		gray  = 1 // on the traversal stack
		black = 2 // fully explored
	)
	color := make(map[string]int, len(g.nodes))

	type frame struct {
		id   string
		next []string
	}
	for _, start := range g.NodeIDs() {
		if color[start] != white {
			continue
		}
		stack := []frame{{id: start, next: g.nodes[start].Neighbors()}}
		color[start] = gray
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if len(top.next) == 0 {
				color[top.id] = black
				stack = stack[:len(stack)-1]
				continue
			}
			nb := top.next[0]
			top.next = top.next[1:]
			switch color[nb] {
			case gray:
				return violation("no_cycles", "graph contains a cycle through %q", nb)
			case white:
				color[nb] = gray
				stack = append(stack, frame{id: nb, next: g.nodes[nb].Neighbors()})
			}
		}
	}
	return nil
}

// hasPathTo reports whether a directed path from src to dst exists, using an
// explicit-stack DFS over the neighbor maps.
func (g *Graph) hasPathTo(src, dst string) bool {
	if src == dst {
		return true
	}
	if !g.HasNode(src) || !g.HasNode(dst) {
		return false
	}
	visited := map[string]bool{src: true}
	stack := []string{src}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for nb := range g.nodes[cur].neighbors {
			if nb == dst {
				return true
			}
			if !visited[nb] {
				visited[nb] = true
				stack = append(stack, nb)
			}
		}
	}
	return false
}

// validateSingleRoot requires the post-operation state to contain exactly one
// node with zero incoming edges (or no nodes at all). The proposed operation
// is simulated, never applied.
func validateSingleRoot(g *Graph, op Operation) error {
	remaining := 0
	roots := 0
	for id, n := range g.nodes {
		if op.Kind == OpRemoveNode && id == op.NodeID {
			continue
		}
		remaining++
		in := 0
		for from := range n.predecessors {
			if op.Kind == OpRemoveNode && from == op.NodeID {
				continue
			}
			if op.Kind == OpRemoveEdge && from == op.From && id == op.To {
				continue
			}
			in++
		}
		if op.Kind == OpAddEdge && id == op.To {
			in++
		}
		if in == 0 {
			roots++
		}
	}
	if remaining == 0 || roots == 1 {
		return nil
	}
	return violation("single_root", "%s would leave %d root nodes; exactly one is required", op.Kind, roots)
}

// validateConnected requires every remaining node to stay reachable from
// every other when edges are treated as undirected. The proposed removal is
// simulated, never applied.
func validateConnected(g *Graph, op Operation) error {
	skipNode := ""
	if op.Kind == OpRemoveNode {
		skipNode = op.NodeID
	}

	skipEdge := func(a, b string) bool {
		if op.Kind != OpRemoveEdge {
			return false
		}
		return (a == op.From && b == op.To) || (a == op.To && b == op.From)
	}

	var start string
	remaining := 0
	for id := range g.nodes {
		if id == skipNode {
			continue
		}
		remaining++
		if start == "" || id < start {
			start = id
		}
	}
	if remaining <= 1 {
		return nil
	}

	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		n := g.nodes[cur]
		for nb := range n.neighbors {
			if nb == skipNode || visited[nb] || skipEdge(cur, nb) {
				continue
			}
			visited[nb] = true
			queue = append(queue, nb)
		}
		// Predecessors widen reachability for directed graphs; for
		// undirected graphs they mirror the neighbor map.
		for pred := range n.predecessors {
			if pred == skipNode || visited[pred] || skipEdge(pred, cur) {
				continue
			}
			visited[pred] = true
			queue = append(queue, pred)
		}
	}
	if len(visited) != remaining {
		return violation("connected", "%s would disconnect the graph (%d of %d nodes reachable)",
			op.Kind, len(visited), remaining)
	}
	return nil
}

// validateMaxDegree bounds outgoing edges per node. The rule name is passed
// in so binary_tree reports violations under its own name.
func validateMaxDegree(g *Graph, op Operation, limit int, rule string) error {
	if op.Kind == OpAddEdge {
		n := g.nodes[op.From]
		if n != nil && len(n.neighbors) >= limit {
			return violation(rule, "node %q already has %d outgoing edges; maximum is %d",
				op.From, len(n.neighbors), limit)
		}
		return nil
	}
	for _, id := range g.NodeIDs() {
		if d := len(g.nodes[id].neighbors); d > limit {
			return violation(rule, "node %q has %d outgoing edges; maximum is %d", id, d, limit)
		}
	}
	return nil
}

// validateNoDuplicates rejects a node whose value equals an existing value.
func validateNoDuplicates(g *Graph, op Operation) error {
	if op.Kind == OpAddNode {
		key := canonicalString(op.Value)
		for _, id := range g.NodeIDs() {
			if canonicalString(g.nodes[id].Value) == key {
				return violation("no_duplicates", "value of node %q duplicates node %q", op.NodeID, id)
			}
		}
		return nil
	}
	seen := make(map[string]string, len(g.nodes))
	for _, id := range g.NodeIDs() {
		key := canonicalString(g.nodes[id].Value)
		if first, ok := seen[key]; ok {
			return violation("no_duplicates", "node %q duplicates the value of node %q", id, first)
		}
		seen[key] = id
	}
	return nil
}

// validateWeightedEdges requires explicit weights on every edge.
func validateWeightedEdges(g *Graph, op Operation) error {
	if op.Kind == OpAddEdge {
		if !op.Edge.HasWeight() {
			return violation("weighted_edges", "edge %s->%s must carry a weight", op.From, op.To)
		}
		return nil
	}
	for _, e := range g.Edges() {
		if !e.Info.HasWeight() {
			return violation("weighted_edges", "edge %s->%s has no weight", e.From, e.To)
		}
	}
	return nil
}

// validateUnweightedEdges rejects weights on any edge.
func validateUnweightedEdges(g *Graph, op Operation) error {
	if op.Kind == OpAddEdge {
		if op.Edge.HasWeight() {
			return violation("unweighted_edges", "edge %s->%s must not carry a weight", op.From, op.To)
		}
		return nil
	}
	for _, e := range g.Edges() {
		if e.Info.HasWeight() {
			return violation("unweighted_edges", "edge %s->%s carries a weight", e.From, e.To)
		}
	}
	return nil
}

// supportsClean reports whether a spec can auto-fix existing violations at
// attach time. Structural rules with a clean operation: no_duplicates (drop
// later duplicates), weighted_edges (drop unweighted edges), unweighted_edges
// (strip weights). Transformation rules clean by re-transforming stored
// values; ordering has no stored footprint and cleans trivially.
func supportsClean(spec RuleSpec) bool {
	switch spec.Kind {
	case RuleNoDuplicates, RuleWeightedEdges, RuleUnweightedEdges:
		return true
	}
	return spec.IsTransformation()
}

// cleanRule auto-fixes existing violations of one spec through the internal
// non-revalidating mutation paths.
func (g *Graph) cleanRule(spec RuleSpec) error {
	switch spec.Kind {
	case RuleNoDuplicates:
		// Keep the first occurrence by iteration order (sorted node IDs),
		// drop later duplicates.
		seen := make(map[string]bool, len(g.nodes))
		var drop []string
		for _, id := range g.NodeIDs() {
			key := canonicalString(g.nodes[id].Value)
			if seen[key] {
				drop = append(drop, id)
				continue
			}
			seen[key] = true
		}
		for _, id := range drop {
			g.deleteNode(id)
		}
		g.cache.invalidateAll()
		return nil

	case RuleWeightedEdges:
		for _, e := range g.Edges() {
			if !e.Info.HasWeight() {
				g.unlink(e.From, e.To)
				if g.graphType == Undirected && e.From != e.To {
					g.unlink(e.To, e.From)
				}
			}
		}
		g.cache.invalidateAll()
		return nil

	case RuleUnweightedEdges:
		for _, e := range g.Edges() {
			e.Info.ClearWeight()
		}
		return nil

	case RuleOrdering:
		// Position-only rule; nothing stored to rewrite.
		return nil
	}

	if spec.IsTransformation() {
		// Re-transform every stored value through this one rule. Sorted ID
		// order keeps a partial failure deterministic.
		for _, id := range g.NodeIDs() {
			nv, err := applyTransform(spec, g.nodes[id].Value)
			if err != nil {
				return err
			}
			g.nodes[id].Value = nv
		}
		return nil
	}
	return nil
}

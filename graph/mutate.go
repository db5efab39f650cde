package graph

import "fmt"

// AddNode inserts a node with the given unique ID and value. The operation
// is validated against the active rules first; a rejection returns a typed
// error with the graph unchanged.
func (g *Graph) AddNode(id string, value any) error {
	return g.AddNodeTyped(id, value, "", nil)
}

// AddNodeTyped inserts a node carrying a type label and initial properties.
func (g *Graph) AddNodeTyped(id string, value any, nodeType string, props map[string]any) error {
	if g.frozen {
		return fmt.Errorf("add node %q: %w", id, ErrFrozen)
	}
	if id == "" {
		return fmt.Errorf("add node: empty node ID")
	}
	if g.HasNode(id) {
		return fmt.Errorf("add node %q: %w", id, ErrNodeExists)
	}
	if err := g.validate(addNodeOp(id, value)); err != nil {
		return err
	}
	n := newNode(id, value)
	n.Type = nodeType
	for k, v := range props {
		n.Properties[k] = v
	}
	g.nodes[id] = n
	g.cache.invalidateAll()
	countMutation("add_node")
	return nil
}

// AddEdge inserts an unweighted edge of the given type between two existing
// nodes. For undirected graphs the symmetric pair is mirrored automatically.
func (g *Graph) AddEdge(from, to, edgeType string) error {
	return g.AddEdgeInfo(from, to, NewEdge(edgeType))
}

// AddWeightedEdge inserts an edge carrying an explicit weight.
func (g *Graph) AddWeightedEdge(from, to, edgeType string, weight float64) error {
	return g.AddEdgeInfo(from, to, NewEdge(edgeType).WithWeight(weight))
}

// AddEdgeInfo inserts an edge described by info. The same EdgeInfo backs
// every mirrored adjacency entry, so later weight or property updates are
// visible from both endpoints.
func (g *Graph) AddEdgeInfo(from, to string, info *EdgeInfo) error {
	if g.frozen {
		return fmt.Errorf("add edge %s->%s: %w", from, to, ErrFrozen)
	}
	if info == nil {
		return fmt.Errorf("add edge %s->%s: nil edge info", from, to)
	}
	if !g.HasNode(from) {
		return fmt.Errorf("add edge %s->%s: source %q: %w", from, to, from, ErrNodeNotFound)
	}
	if !g.HasNode(to) {
		return fmt.Errorf("add edge %s->%s: target %q: %w", from, to, to, ErrNodeNotFound)
	}
	if g.HasEdge(from, to) {
		return fmt.Errorf("add edge %s->%s: %w", from, to, ErrEdgeExists)
	}
	if err := g.validate(addEdgeOp(from, to, info)); err != nil {
		return err
	}
	g.link(from, to, info)
	if g.graphType == Undirected && from != to {
		g.link(to, from, info)
	}
	g.cache.invalidateAll()
	countMutation("add_edge")
	return nil
}

// RemoveEdge removes the edge between two nodes (and its mirrored pair for
// undirected graphs).
func (g *Graph) RemoveEdge(from, to string) error {
	if g.frozen {
		return fmt.Errorf("remove edge %s->%s: %w", from, to, ErrFrozen)
	}
	if !g.HasNode(from) || !g.HasNode(to) {
		return fmt.Errorf("remove edge %s->%s: %w", from, to, ErrNodeNotFound)
	}
	if !g.HasEdge(from, to) {
		return fmt.Errorf("remove edge %s->%s: %w", from, to, ErrEdgeNotFound)
	}
	if err := g.validate(removeEdgeOp(from, to)); err != nil {
		return err
	}
	g.unlink(from, to)
	if g.graphType == Undirected && from != to {
		g.unlink(to, from)
	}
	g.cache.invalidateAll()
	countMutation("remove_edge")
	return nil
}

// RemoveNode removes a node and purges every other node's reference to it,
// then applies the configured orphan policy. Under OrphanReject the would-be
// orphans are computed first and the call fails before any mutation; under
// OrphanReconnect, reconnectability is checked up front the same way.
func (g *Graph) RemoveNode(id string) error {
	return g.removeNode(id, nil)
}

// RemoveNodeWithPolicy removes a node under a one-shot orphan policy
// override. The graph configuration must permit overrides.
func (g *Graph) RemoveNodeWithPolicy(id string, override OrphanPolicy) error {
	if !g.config.AllowOverrides {
		return fmt.Errorf("remove node %q: %w", id, ErrOverrideNotAllowed)
	}
	if !override.IsValid() {
		return fmt.Errorf("remove node %q: invalid orphan policy %d", id, override)
	}
	return g.removeNode(id, &override)
}

func (g *Graph) removeNode(id string, override *OrphanPolicy) error {
	if g.frozen {
		return fmt.Errorf("remove node %q: %w", id, ErrFrozen)
	}
	if !g.HasNode(id) {
		return fmt.Errorf("remove node %q: %w", id, ErrNodeNotFound)
	}

	policy := g.config.OrphanPolicy
	if override != nil {
		policy = *override
	}

	if policy == OrphanReject {
		if would := g.FindWouldBeOrphans(id); len(would) > 0 {
			return fmt.Errorf("remove node %q would orphan %v: %w", id, would, ErrWouldOrphan)
		}
	}

	// Reconnection failures (unimplemented strategy, no usable root) must
	// surface before anything mutates, so the check runs against the
	// simulated post-removal state.
	if policy == OrphanReconnect {
		if err := g.reconnectPrecheck(id, g.config.ReconnectStrategy); err != nil {
			return fmt.Errorf("remove node %q: %w", id, err)
		}
	}

	if err := g.validate(removeNodeOp(id)); err != nil {
		return err
	}

	g.deleteNode(id)

	switch policy {
	case OrphanDelete:
		g.deleteOrphans()
	case OrphanReconnect:
		if err := g.reconnectOrphans(g.config.ReconnectStrategy); err != nil {
			return fmt.Errorf("remove node %q: %w", id, err)
		}
	}

	g.cache.invalidateAll()
	countMutation("remove_node")
	return nil
}

// link inserts the forward and backward adjacency entries for one edge
// direction. It is one of the two primitives every structural change goes
// through; no call site maintains the mirrored maps by hand.
func (g *Graph) link(from, to string, info *EdgeInfo) {
	g.nodes[from].neighbors[to] = info
	g.nodes[to].predecessors[from] = info
}

// unlink removes the forward and backward adjacency entries for one edge
// direction.
func (g *Graph) unlink(from, to string) {
	delete(g.nodes[from].neighbors, to)
	delete(g.nodes[to].predecessors, from)
}

// deleteNode removes a node and all edges touching it without re-running
// rule validation. Orphan cleanup and rule clean() paths use it to avoid
// recursing back into the validated entry points. The side cache is
// invalidated here, so every caller (including ones that bail out with an
// error afterwards) leaves no index entries for the removed node behind.
func (g *Graph) deleteNode(id string) {
	n := g.nodes[id]
	for to := range n.neighbors {
		g.unlink(id, to)
		if g.graphType == Undirected && to != id {
			g.unlink(to, id)
		}
	}
	for from := range n.predecessors {
		g.unlink(from, id)
		if g.graphType == Undirected && from != id {
			g.unlink(id, from)
		}
	}
	delete(g.nodes, id)
	g.cache.invalidateAll()
}

package graph

import "fmt"

// FindOrphans returns the IDs of nodes with no edges in either direction,
// sorted.
func (g *Graph) FindOrphans() []string {
	var orphans []string
	for _, id := range g.NodeIDs() {
		if g.nodes[id].isOrphan() {
			orphans = append(orphans, id)
		}
	}
	return orphans
}

// FindWouldBeOrphans predicts, without mutating, which nodes would be left
// with no edges if the given node were removed. Only the node's neighbors and
// predecessors can be affected, so only they are inspected.
func (g *Graph) FindWouldBeOrphans(id string) []string {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	candidates := make(map[string]bool)
	for nb := range n.neighbors {
		candidates[nb] = true
	}
	for pred := range n.predecessors {
		candidates[pred] = true
	}
	delete(candidates, id)

	var would []string
	for _, cand := range sortedKeys(candidates) {
		c := g.nodes[cand]
		remaining := 0
		for nb := range c.neighbors {
			if nb != id {
				remaining++
			}
		}
		for pred := range c.predecessors {
			if pred != id {
				remaining++
			}
		}
		if remaining == 0 {
			would = append(would, cand)
		}
	}
	return would
}

// DeleteOrphans removes every current orphan through the internal
// non-revalidating path and returns the removed IDs. Removing an orphan
// cannot create new orphans, but the loop runs to a fixpoint anyway so the
// post-condition is unconditional.
func (g *Graph) DeleteOrphans() ([]string, error) {
	if g.frozen {
		return nil, fmt.Errorf("delete orphans: %w", ErrFrozen)
	}
	removed := g.deleteOrphans()
	return removed, nil
}

func (g *Graph) deleteOrphans() []string {
	var removed []string
	for {
		orphans := g.FindOrphans()
		if len(orphans) == 0 {
			return removed
		}
		for _, id := range orphans {
			g.deleteNode(id)
			removed = append(removed, id)
		}
	}
}

// ReconnectOrphans reattaches every orphan using the given strategy.
// ReconnectToRoot links each orphan under the unique root (the only node
// with zero predecessors and at least one neighbor); it fails with ErrNoRoot
// when no such node exists. ReconnectToParentSiblings is declared but not
// implemented and always fails with ErrStrategyUnimplemented.
func (g *Graph) ReconnectOrphans(strategy ReconnectStrategy) error {
	if g.frozen {
		return fmt.Errorf("reconnect orphans: %w", ErrFrozen)
	}
	return g.reconnectOrphans(strategy)
}

func (g *Graph) reconnectOrphans(strategy ReconnectStrategy) error {
	switch strategy {
	case ReconnectToRoot:
		root, err := g.reconnectRoot()
		if err != nil {
			return err
		}
		for _, orphan := range g.FindOrphans() {
			if orphan == root {
				continue
			}
			info := NewEdge("reconnected")
			g.link(root, orphan, info)
			if g.graphType == Undirected {
				g.link(orphan, root, info)
			}
		}
		g.cache.invalidateAll()
		return nil
	case ReconnectToParentSiblings:
		return fmt.Errorf("strategy %q: %w", strategy, ErrStrategyUnimplemented)
	default:
		return fmt.Errorf("invalid reconnect strategy %d", strategy)
	}
}

// reconnectPrecheck reports whether reconnection with the given strategy
// could succeed after removing id, without mutating anything. Removing a node
// can change which node qualifies as root, so the root search simulates the
// post-removal adjacency by excluding id.
func (g *Graph) reconnectPrecheck(id string, strategy ReconnectStrategy) error {
	switch strategy {
	case ReconnectToRoot:
		_, err := g.reconnectRootExcluding(id)
		return err
	case ReconnectToParentSiblings:
		return fmt.Errorf("strategy %q: %w", strategy, ErrStrategyUnimplemented)
	default:
		return fmt.Errorf("invalid reconnect strategy %d", strategy)
	}
}

// reconnectRoot finds the unique node with zero predecessors and at least one
// neighbor.
func (g *Graph) reconnectRoot() (string, error) {
	return g.reconnectRootExcluding("")
}

// reconnectRootExcluding runs the root search as if the node named skip (and
// every edge touching it) were already gone. An empty skip searches the graph
// as-is.
func (g *Graph) reconnectRootExcluding(skip string) (string, error) {
	root := ""
	for _, id := range g.NodeIDs() {
		if id == skip {
			continue
		}
		n := g.nodes[id]
		preds, nbs := 0, 0
		for pred := range n.predecessors {
			if pred != skip {
				preds++
			}
		}
		for nb := range n.neighbors {
			if nb != skip {
				nbs++
			}
		}
		if preds == 0 && nbs > 0 {
			if root != "" {
				return "", fmt.Errorf("multiple root candidates (%q, %q): %w", root, id, ErrNoRoot)
			}
			root = id
		}
	}
	if root == "" {
		return "", fmt.Errorf("reconnect to root: %w", ErrNoRoot)
	}
	return root, nil
}

package graph

import (
	"container/heap"
	"fmt"
	"sort"
)

// PathOptions constrain a shortest-path search.
type PathOptions struct {
	// EdgeType restricts traversal to edges with this type label. Empty
	// means any type.
	EdgeType string

	// Weighted selects Dijkstra over explicitly weighted edges. Unweighted
	// edges are simply untraversable in weighted mode, not an error.
	Weighted bool
}

// ShortestPath returns the node IDs along a shortest path, inclusive of both
// endpoints. The algorithm is chosen from the options and the active rules:
//
//   - Weighted: Dijkstra restricted to edges carrying an explicit weight
//   - unweighted with an edge-type filter: filtered BFS
//   - unweighted, unfiltered, with no_cycles active: topological
//     dynamic-programming pass, falling back to BFS if the topological pass
//     unexpectedly finds a cycle
//   - otherwise: plain BFS
//
// Returns ErrNoPath when the target is unreachable under the constraints.
func (g *Graph) ShortestPath(from, to string, opts PathOptions) ([]string, error) {
	if !g.HasNode(from) {
		return nil, fmt.Errorf("shortest path from %q: %w", from, ErrNodeNotFound)
	}
	if !g.HasNode(to) {
		return nil, fmt.Errorf("shortest path to %q: %w", to, ErrNodeNotFound)
	}

	var path []string
	switch {
	case opts.Weighted:
		path = g.dijkstra(from, to, opts.EdgeType)
	case opts.EdgeType != "":
		path = g.bfsPath(from, to, opts.EdgeType)
	case g.HasRule("no_cycles"):
		if p, ok := g.topoShortestPath(from, to); ok {
			path = p
		} else {
			path = g.bfsPath(from, to, "")
		}
	default:
		path = g.bfsPath(from, to, "")
	}
	if path == nil {
		return nil, fmt.Errorf("shortest path %s->%s: %w", from, to, ErrNoPath)
	}
	return path, nil
}

// Distance returns the number of hops on a shortest unweighted path.
func (g *Graph) Distance(from, to string) (int, error) {
	path, err := g.ShortestPath(from, to, PathOptions{})
	if err != nil {
		return 0, err
	}
	return len(path) - 1, nil
}

// HasPath reports whether any path connects the two nodes.
func (g *Graph) HasPath(from, to string) bool {
	if !g.HasNode(from) || !g.HasNode(to) {
		return false
	}
	return g.bfsPath(from, to, "") != nil
}

// bfsPath runs a breadth-first search over outgoing edges, optionally
// filtered by edge type. Neighbors expand in sorted order so results are
// deterministic. Returns nil when no path exists.
func (g *Graph) bfsPath(from, to string, edgeType string) []string {
	if from == to {
		return []string{from}
	}
	prev := map[string]string{from: ""}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		n := g.nodes[cur]
		for _, nb := range n.Neighbors() {
			if edgeType != "" && n.neighbors[nb].Type != edgeType {
				continue
			}
			if _, seen := prev[nb]; seen {
				continue
			}
			prev[nb] = cur
			if nb == to {
				return rebuildPath(prev, from, to)
			}
			queue = append(queue, nb)
		}
	}
	return nil
}

// dijkstra finds the minimum-total-weight path using only edges that carry an
// explicit weight, optionally filtered by edge type.
func (g *Graph) dijkstra(from, to string, edgeType string) []string {
	dist := map[string]float64{from: 0}
	prev := map[string]string{from: ""}
	done := make(map[string]bool)

	pq := &pathQueue{{id: from, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pathItem)
		if done[item.id] {
			continue
		}
		done[item.id] = true
		if item.id == to {
			return rebuildPath(prev, from, to)
		}
		n := g.nodes[item.id]
		for _, nb := range n.Neighbors() {
			info := n.neighbors[nb]
			w, ok := info.WeightValue()
			if !ok {
				continue
			}
			if edgeType != "" && info.Type != edgeType {
				continue
			}
			alt := dist[item.id] + w
			if cur, seen := dist[nb]; !seen || alt < cur {
				dist[nb] = alt
				prev[nb] = item.id
				heap.Push(pq, pathItem{id: nb, dist: alt})
			}
		}
	}
	return nil
}

// topoShortestPath computes shortest hop counts with one dynamic-programming
// pass over a topological order. The second return is false when the
// topological pass finds a cycle, in which case the caller falls back to BFS.
func (g *Graph) topoShortestPath(from, to string) ([]string, bool) {
	order, ok := g.TopologicalOrder()
	if !ok {
		return nil, false
	}

	const unreached = int(^uint(0) >> 1)
	dist := make(map[string]int, len(order))
	prev := make(map[string]string, len(order))
	for _, id := range order {
		dist[id] = unreached
	}
	dist[from] = 0
	prev[from] = ""

	for _, id := range order {
		if dist[id] == unreached {
			continue
		}
		n := g.nodes[id]
		for _, nb := range n.Neighbors() {
			if dist[id]+1 < dist[nb] {
				dist[nb] = dist[id] + 1
				prev[nb] = id
			}
		}
	}
	if dist[to] == unreached {
		return nil, true
	}
	return rebuildPath(prev, from, to), true
}

// TopologicalSort returns the node IDs in a topological order via Kahn's
// algorithm, or an empty slice when the graph contains a cycle. An empty
// result is therefore ambiguous for an empty graph; use TopologicalOrder to
// distinguish the two.
func (g *Graph) TopologicalSort() []string {
	order, ok := g.TopologicalOrder()
	if !ok {
		return []string{}
	}
	return order
}

// TopologicalOrder returns a topological order and true, or nil and false
// when the graph contains a cycle. An empty acyclic graph yields an empty
// order and true.
func (g *Graph) TopologicalOrder() ([]string, bool) {
	indeg := make(map[string]int, len(g.nodes))
	for id, n := range g.nodes {
		indeg[id] = len(n.predecessors)
	}

	var queue []string
	for id, d := range indeg {
		if d == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	order := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)
		var freed []string
		for _, nb := range g.nodes[cur].Neighbors() {
			indeg[nb]--
			if indeg[nb] == 0 {
				freed = append(freed, nb)
			}
		}
		sort.Strings(freed)
		queue = append(queue, freed...)
	}
	if len(order) != len(g.nodes) {
		return nil, false
	}
	return order, true
}

// AllPaths enumerates every simple path between two nodes with at most
// maxLen hops, via exhaustive depth-first search with backtracking. Paths are
// returned in lexicographic expansion order.
func (g *Graph) AllPaths(from, to string, maxLen int) ([][]string, error) {
	if !g.HasNode(from) {
		return nil, fmt.Errorf("all paths from %q: %w", from, ErrNodeNotFound)
	}
	if !g.HasNode(to) {
		return nil, fmt.Errorf("all paths to %q: %w", to, ErrNodeNotFound)
	}
	if maxLen < 0 {
		return nil, fmt.Errorf("all paths: negative max length %d", maxLen)
	}

	var paths [][]string
	onPath := map[string]bool{from: true}
	path := []string{from}

	var walk func(cur string)
	walk = func(cur string) {
		if cur == to {
			paths = append(paths, append([]string(nil), path...))
			return
		}
		if len(path)-1 >= maxLen {
			return
		}
		for _, nb := range g.nodes[cur].Neighbors() {
			if onPath[nb] {
				continue
			}
			onPath[nb] = true
			path = append(path, nb)
			walk(nb)
			path = path[:len(path)-1]
			delete(onPath, nb)
		}
	}
	walk(from)
	return paths, nil
}

func rebuildPath(prev map[string]string, from, to string) []string {
	var path []string
	for cur := to; cur != ""; cur = prev[cur] {
		path = append(path, cur)
		if cur == from {
			break
		}
	}
	// Reverse in place.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type pathItem struct {
	id   string
	dist float64
}

// pathQueue is a min-heap of pathItem keyed by distance, with ID as the
// deterministic tiebreak.
type pathQueue []pathItem

func (q pathQueue) Len() int { return len(q) }
func (q pathQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].id < q[j].id
}
func (q pathQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *pathQueue) Push(x any)        { *q = append(*q, x.(pathItem)) }
func (q *pathQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDiamond(t *testing.T) *Graph {
	t.Helper()
	g := New(Directed)
	buildNodes(t, g, "a", "b", "c", "d")
	require.NoError(t, g.AddEdge("a", "b", "next"))
	require.NoError(t, g.AddEdge("a", "c", "next"))
	require.NoError(t, g.AddEdge("b", "d", "next"))
	require.NoError(t, g.AddEdge("c", "d", "next"))
	return g
}

func TestShortestPath_BFS(t *testing.T) {
	g := buildDiamond(t)

	path, err := g.ShortestPath("a", "d", PathOptions{})
	require.NoError(t, err)
	// Both a->b->d and a->c->d have two hops; sorted expansion picks b.
	assert.Equal(t, []string{"a", "b", "d"}, path)

	path, err = g.ShortestPath("a", "a", PathOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, path)
}

func TestShortestPath_NoPath(t *testing.T) {
	g := buildDiamond(t)

	_, err := g.ShortestPath("d", "a", PathOptions{})
	assert.ErrorIs(t, err, ErrNoPath)

	_, err = g.ShortestPath("a", "ghost", PathOptions{})
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestShortestPath_EdgeTypeFilter(t *testing.T) {
	g := New(Directed)
	buildNodes(t, g, "a", "b", "c")
	require.NoError(t, g.AddEdge("a", "b", "road"))
	require.NoError(t, g.AddEdge("b", "c", "road"))
	require.NoError(t, g.AddEdge("a", "c", "rail"))

	// Unfiltered takes the one-hop rail shortcut.
	path, err := g.ShortestPath("a", "c", PathOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, path)

	// Restricted to roads the rail edge is invisible.
	path, err = g.ShortestPath("a", "c", PathOptions{EdgeType: "road"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, path)

	_, err = g.ShortestPath("a", "c", PathOptions{EdgeType: "river"})
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestShortestPath_Dijkstra(t *testing.T) {
	g := New(Directed)
	buildNodes(t, g, "a", "b", "c")
	require.NoError(t, g.AddWeightedEdge("a", "c", "next", 10))
	require.NoError(t, g.AddWeightedEdge("a", "b", "next", 1))
	require.NoError(t, g.AddWeightedEdge("b", "c", "next", 2))

	// Fewer hops loses to lower total weight.
	path, err := g.ShortestPath("a", "c", PathOptions{Weighted: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, path)
}

func TestShortestPath_Dijkstra_UnweightedEdgesInvisible(t *testing.T) {
	g := New(Directed)
	buildNodes(t, g, "a", "b")
	require.NoError(t, g.AddEdge("a", "b", "next"))

	// The only edge carries no weight, so weighted search cannot use it.
	_, err := g.ShortestPath("a", "b", PathOptions{Weighted: true})
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestShortestPath_TopologicalWhenAcyclic(t *testing.T) {
	g := New(Directed, WithRuleset(RulesetDAG))
	buildNodes(t, g, "a", "b", "c", "d")
	require.NoError(t, g.AddEdge("a", "b", "next"))
	require.NoError(t, g.AddEdge("b", "d", "next"))
	require.NoError(t, g.AddEdge("a", "d", "next"))
	require.NoError(t, g.AddEdge("a", "c", "next"))

	// no_cycles is active, so the topological DP pass answers; the result
	// must agree with BFS.
	path, err := g.ShortestPath("a", "d", PathOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "d"}, path)
	assert.Equal(t, path, g.bfsPath("a", "d", ""))

	_, err = g.ShortestPath("c", "d", PathOptions{})
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestDistance(t *testing.T) {
	g := buildDiamond(t)

	d, err := g.Distance("a", "d")
	require.NoError(t, err)
	assert.Equal(t, 2, d)

	d, err = g.Distance("a", "a")
	require.NoError(t, err)
	assert.Equal(t, 0, d)

	_, err = g.Distance("d", "a")
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestHasPath(t *testing.T) {
	g := buildDiamond(t)

	assert.True(t, g.HasPath("a", "d"))
	assert.False(t, g.HasPath("d", "a"))
	assert.False(t, g.HasPath("a", "ghost"))
}

func TestTopologicalOrder(t *testing.T) {
	g := New(Directed)
	buildNodes(t, g, "c", "a", "b")
	require.NoError(t, g.AddEdge("c", "a", "next"))
	require.NoError(t, g.AddEdge("a", "b", "next"))

	order, ok := g.TopologicalOrder()
	require.True(t, ok)
	assert.Equal(t, []string{"c", "a", "b"}, order)
}

func TestTopologicalOrder_Cycle(t *testing.T) {
	g := New(Directed)
	buildChain(t, g, "a", "b")
	require.NoError(t, g.AddEdge("b", "a", "back"))

	order, ok := g.TopologicalOrder()
	assert.False(t, ok)
	assert.Nil(t, order)

	// The sort form collapses both the cyclic and the empty case to an
	// empty slice.
	assert.Empty(t, g.TopologicalSort())
	assert.Empty(t, New(Directed).TopologicalSort())
}

func TestAllPaths(t *testing.T) {
	g := buildDiamond(t)

	paths, err := g.AllPaths("a", "d", 5)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"a", "b", "d"},
		{"a", "c", "d"},
	}, paths)

	// A one-hop cap excludes both two-hop paths.
	paths, err = g.AllPaths("a", "d", 1)
	require.NoError(t, err)
	assert.Empty(t, paths)

	_, err = g.AllPaths("a", "d", -1)
	assert.Error(t, err)
}

func TestAllPaths_SimplePathsOnly(t *testing.T) {
	g := New(Directed)
	buildChain(t, g, "a", "b", "c")
	require.NoError(t, g.AddEdge("c", "a", "back"))

	// The cycle never revisits a node already on the path.
	paths, err := g.AllPaths("a", "c", 10)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b", "c"}}, paths)
}

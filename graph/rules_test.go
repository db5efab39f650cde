package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireViolation(t *testing.T, err error, rule string) *RuleViolationError {
	t.Helper()
	var rv *RuleViolationError
	require.True(t, errors.As(err, &rv), "expected a RuleViolationError, got %v", err)
	require.Equal(t, rule, rv.Rule)
	return rv
}

func buildChain(t *testing.T, g *Graph, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, g.AddNode(id, nil))
	}
	for i := 0; i+1 < len(ids); i++ {
		require.NoError(t, g.AddEdge(ids[i], ids[i+1], "next"))
	}
}

func TestNoCycles_RejectsBackEdge(t *testing.T) {
	g := New(Directed)
	require.NoError(t, g.AddRule(NoCycles()))
	buildChain(t, g, "a", "b", "c")

	rv := requireViolation(t, g.AddEdge("c", "a", "next"), "no_cycles")
	assert.Contains(t, rv.Message, "cycle")

	// A forward shortcut is fine.
	assert.NoError(t, g.AddEdge("a", "c", "skip"))
}

func TestNoCycles_RejectsSelfEdge(t *testing.T) {
	g := New(Directed, WithRuleset(RulesetDAG))
	require.NoError(t, g.AddNode("a", nil))

	requireViolation(t, g.AddEdge("a", "a", "loop"), "no_cycles")
}

func TestNoCycles_AttachRejectsCyclicGraph(t *testing.T) {
	g := New(Directed)
	buildChain(t, g, "a", "b")
	require.NoError(t, g.AddEdge("b", "a", "back"))

	err := g.AddRule(NoCycles())
	requireViolation(t, err, "no_cycles")
	assert.False(t, g.HasRule("no_cycles"))
}

func TestSingleRoot_ToleratesChildBeforeParentEdge(t *testing.T) {
	g := New(Directed, WithRuleset(RulesetTree))

	// Children may exist before their parent edge: add_node is never
	// checked by single_root.
	require.NoError(t, g.AddNode("root", nil))
	require.NoError(t, g.AddNode("child", nil))
	require.NoError(t, g.AddEdge("root", "child", "child"))
	require.NoError(t, g.AddNode("leaf", nil))
	require.NoError(t, g.AddEdge("child", "leaf", "child"))
}

func TestSingleRoot_RejectsSecondRootOnRemoveEdge(t *testing.T) {
	g := New(Directed)
	buildChain(t, g, "a", "b", "c")
	require.NoError(t, g.AddRule(SingleRoot()))

	// Removing a->b would leave both a and b rootless-parents (two roots).
	rv := requireViolation(t, g.RemoveEdge("a", "b"), "single_root")
	assert.Contains(t, rv.Message, "root")
}

func TestConnected_RejectsDisconnectingRemoval(t *testing.T) {
	g := New(Directed)
	buildChain(t, g, "a", "b", "c")
	require.NoError(t, g.AddRule(Connected()))

	requireViolation(t, g.RemoveEdge("b", "c"), "connected")
	requireViolation(t, g.RemoveNode("b"), "connected")

	// Removing a leaf keeps the rest connected.
	assert.NoError(t, g.RemoveNode("c"))
}

func TestMaxDegree_MessageNamesTheBound(t *testing.T) {
	g := New(Directed)
	require.NoError(t, g.AddRule(MaxDegree(1)))
	buildChain(t, g, "a", "b")
	require.NoError(t, g.AddNode("c", nil))

	rv := requireViolation(t, g.AddEdge("a", "c", "next"), "max_degree")
	assert.Contains(t, rv.Message, "maximum is 1")
}

func TestBinaryTree_RejectsThirdChild(t *testing.T) {
	g := New(Directed, WithRuleset(RulesetBinaryTree))
	require.NoError(t, g.AddNode("root", nil))
	for _, id := range []string{"l", "r", "x"} {
		require.NoError(t, g.AddNode(id, nil))
		if id == "x" {
			break
		}
		require.NoError(t, g.AddEdge("root", id, "child"))
	}

	requireViolation(t, g.AddEdge("root", "x", "child"), "binary_tree")
}

func TestNoDuplicates_RejectsAndCleans(t *testing.T) {
	g := New(Directed)
	require.NoError(t, g.AddRule(NoDuplicates()))
	require.NoError(t, g.AddNode("a", "dup"))

	requireViolation(t, g.AddNode("b", "dup"), "no_duplicates")
	assert.NoError(t, g.AddNode("b", "other"))

	// Attaching to a graph with duplicates cleans them, keeping the first
	// occurrence by iteration order.
	g2 := New(Directed)
	require.NoError(t, g2.AddNode("n1", "x"))
	require.NoError(t, g2.AddNode("n2", "x"))
	require.NoError(t, g2.AddNode("n3", "y"))

	require.NoError(t, g2.AddRule(NoDuplicates()))
	assert.True(t, g2.HasRule("no_duplicates"))
	assert.True(t, g2.HasNode("n1"))
	assert.False(t, g2.HasNode("n2"))
	assert.True(t, g2.HasNode("n3"))
}

func TestWeightedEdges_RejectsAndCleans(t *testing.T) {
	g := New(Directed)
	require.NoError(t, g.AddRule(WeightedEdges()))
	buildNodes(t, g, "a", "b")

	requireViolation(t, g.AddEdge("a", "b", "next"), "weighted_edges")
	assert.NoError(t, g.AddWeightedEdge("a", "b", "next", 1))

	// Attach-time clean drops unweighted edges.
	g2 := New(Directed)
	buildNodes(t, g2, "a", "b", "c")
	require.NoError(t, g2.AddWeightedEdge("a", "b", "next", 1))
	require.NoError(t, g2.AddEdge("b", "c", "next"))

	require.NoError(t, g2.AddRule(WeightedEdges()))
	assert.True(t, g2.HasEdge("a", "b"))
	assert.False(t, g2.HasEdge("b", "c"))
}

func TestUnweightedEdges_RejectsAndStripsWeights(t *testing.T) {
	g := New(Directed)
	buildNodes(t, g, "a", "b", "c")
	require.NoError(t, g.AddWeightedEdge("a", "b", "next", 3))

	// Attach-time clean strips weights in place instead of dropping edges.
	require.NoError(t, g.AddRule(UnweightedEdges()))
	info, err := g.Edge("a", "b")
	require.NoError(t, err)
	assert.False(t, info.HasWeight())

	requireViolation(t, g.AddWeightedEdge("b", "c", "next", 1), "unweighted_edges")
	assert.NoError(t, g.AddEdge("b", "c", "next"))
}

func TestRulesets_ExpansionAndManagement(t *testing.T) {
	g := New(Directed)
	require.NoError(t, g.AttachRuleset(RulesetTree))

	assert.True(t, g.HasRuleset(RulesetTree))
	for _, rule := range []string{"no_cycles", "single_root", "connected"} {
		assert.True(t, g.HasRule(rule), "tree should activate %s", rule)
	}
	assert.False(t, g.HasRule("binary_tree"))

	// Re-attach is a no-op; unknown ruleset errors.
	require.NoError(t, g.AttachRuleset(RulesetTree))
	assert.Len(t, g.Rulesets(), 1)
	assert.ErrorIs(t, g.AttachRuleset("nonsense"), ErrUnknownRuleset)

	g.DetachRuleset(RulesetTree)
	assert.False(t, g.HasRule("no_cycles"))
}

func TestRules_DeduplicationFirstWins(t *testing.T) {
	g := New(Directed)
	require.NoError(t, g.AttachRuleset(RulesetDAG))

	// The ad hoc no_cycles with Silent severity collides with the ruleset
	// expansion; ruleset expansion precedes ad hoc rules, so the first
	// insertion wins.
	require.NoError(t, g.AddRuleInstance(RuleInstance{Spec: NoCycles(), Severity: SeveritySilent}, RetroClean))

	rules := g.Rules()
	count := 0
	for _, inst := range rules {
		if inst.Spec.Name() == "no_cycles" {
			count++
			assert.Equal(t, SeverityError, inst.Severity)
		}
	}
	assert.Equal(t, 1, count)
}

func TestAddRule_DuplicateIsNoOp(t *testing.T) {
	g := New(Directed)
	require.NoError(t, g.AddRule(MaxDegree(2)))
	require.NoError(t, g.AddRule(MaxDegree(5)))

	// First insertion wins even for differing parameters under one name.
	buildNodes(t, g, "a", "b", "c", "d")
	require.NoError(t, g.AddEdge("a", "b", "next"))
	require.NoError(t, g.AddEdge("a", "c", "next"))
	requireViolation(t, g.AddEdge("a", "d", "next"), "max_degree")
}

func TestRemoveRule(t *testing.T) {
	g := New(Directed)
	require.NoError(t, g.AddRule(NoCycles()))
	require.NoError(t, g.RemoveRule("no_cycles"))
	assert.False(t, g.HasRule("no_cycles"))
	assert.ErrorIs(t, g.RemoveRule("no_cycles"), ErrRuleNotFound)
}

func TestAddRule_RetroactivePolicies(t *testing.T) {
	newCyclic := func(t *testing.T) *Graph {
		g := New(Directed)
		buildChain(t, g, "a", "b")
		require.NoError(t, g.AddEdge("b", "a", "back"))
		return g
	}

	t.Run("enforce rejects live violations", func(t *testing.T) {
		g := newCyclic(t)
		err := g.AddRuleWithPolicy(NoCycles(), RetroEnforce)
		requireViolation(t, err, "no_cycles")
		assert.False(t, g.HasRule("no_cycles"))
	})

	t.Run("warn attaches over live violations", func(t *testing.T) {
		g := newCyclic(t)
		require.NoError(t, g.AddRuleWithPolicy(NoCycles(), RetroWarn))
		assert.True(t, g.HasRule("no_cycles"))
	})

	t.Run("ignore attaches blindly", func(t *testing.T) {
		g := newCyclic(t)
		require.NoError(t, g.AddRuleInstance(Rule(NoCycles()), RetroIgnore))
		assert.True(t, g.HasRule("no_cycles"))
	})

	t.Run("clean without a cleaner requires a valid graph", func(t *testing.T) {
		g := newCyclic(t)
		err := g.AddRuleInstance(Rule(NoCycles()), RetroClean)
		requireViolation(t, err, "no_cycles")
		assert.False(t, g.HasRule("no_cycles"))
	})
}

func TestSeverity_NeverPermitsViolations(t *testing.T) {
	for _, sev := range []Severity{SeveritySilent, SeverityWarning, SeverityError} {
		t.Run(sev.String(), func(t *testing.T) {
			g := New(Directed)
			require.NoError(t, g.AddRuleInstance(RuleInstance{Spec: NoCycles(), Severity: sev}, RetroClean))
			buildChain(t, g, "a", "b")

			requireViolation(t, g.AddEdge("b", "a", "back"), "no_cycles")
			assert.False(t, g.HasEdge("b", "a"))
		})
	}
}

func buildNodes(t *testing.T, g *Graph, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, g.AddNode(id, nil))
	}
}

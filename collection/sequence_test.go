package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomscript/graphcore/graph"
)

func TestSequence_AppendAndGet(t *testing.T) {
	s := NewSequence()
	assert.Equal(t, 0, s.Len())

	require.NoError(t, s.Append("a"))
	require.NoError(t, s.Append("b"))
	require.NoError(t, s.Append("c"))

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []any{"a", "b", "c"}, s.Values())

	v, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	_, err = s.Get(3)
	assert.Error(t, err)
	_, err = s.Get(-1)
	assert.Error(t, err)
}

func TestSequence_Insert(t *testing.T) {
	s := NewSequence()
	require.NoError(t, s.Append("a"))
	require.NoError(t, s.Append("c"))

	require.NoError(t, s.Insert(1, "b"))
	assert.Equal(t, []any{"a", "b", "c"}, s.Values())

	require.NoError(t, s.Insert(0, "start"))
	require.NoError(t, s.Insert(4, "end"))
	assert.Equal(t, []any{"start", "a", "b", "c", "end"}, s.Values())

	assert.Error(t, s.Insert(99, "x"))
}

func TestSequence_Remove(t *testing.T) {
	s := NewSequence()
	for _, v := range []any{1, 2, 3, 4} {
		require.NoError(t, s.Append(v))
	}

	require.NoError(t, s.Remove(1))
	assert.Equal(t, []any{1, 3, 4}, s.Values())

	require.NoError(t, s.Remove(0))
	assert.Equal(t, []any{3, 4}, s.Values())

	require.NoError(t, s.Remove(1))
	assert.Equal(t, []any{3}, s.Values())

	assert.Error(t, s.Remove(5))
}

func TestSequence_TransformOnInsert(t *testing.T) {
	s := NewSequence(graph.WithRule(graph.Uppercase()))

	require.NoError(t, s.Append("loud"))
	require.NoError(t, s.Insert(0, "first"))
	assert.Equal(t, []any{"FIRST", "LOUD"}, s.Values())

	// The pipeline error propagates and nothing is stored.
	assert.Error(t, s.Append(42))
	assert.Equal(t, 2, s.Len())
}

func TestSequence_OrderedInsertion(t *testing.T) {
	s := NewSequence(graph.WithRule(graph.Ordering(nil)))

	for _, v := range []any{5, 1, 3, 2, 4} {
		require.NoError(t, s.Append(v))
	}
	assert.Equal(t, []any{1, 2, 3, 4, 5}, s.Values())
}

func TestSequence_AttachTransformRetroactively(t *testing.T) {
	s := NewSequence()
	require.NoError(t, s.Append("ada"))
	require.NoError(t, s.Append("grace"))

	err := s.AttachRule(graph.Rule(graph.Uppercase()), graph.RetroClean)
	require.NoError(t, err)
	assert.Equal(t, []any{"ADA", "GRACE"}, s.Values())

	// The rule stays live for later insertions.
	require.NoError(t, s.Append("lin"))
	assert.Equal(t, []any{"ADA", "GRACE", "LIN"}, s.Values())
}

func TestSequence_AttachTransformCleanFailureLeavesValues(t *testing.T) {
	s := NewSequence()
	require.NoError(t, s.Append(7))
	require.NoError(t, s.Append("text"))

	// The int cannot be uppercased: the attach is silently abandoned and the
	// stored values stay as they were.
	require.NoError(t, s.AttachRule(graph.Rule(graph.Uppercase()), graph.RetroClean))
	assert.False(t, s.Graph().HasRule("uppercase"))
	assert.Equal(t, []any{7, "text"}, s.Values())
}

func TestSequence_GraphExposesChain(t *testing.T) {
	s := NewSequence()
	require.NoError(t, s.Append("x"))

	g := s.Graph()
	assert.Equal(t, 2, g.NodeCount(), "head marker plus one element")
	assert.Equal(t, 1, g.EdgeCount())
}

package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomscript/graphcore/graph"
)

func TestKeyedMap_SetGetDelete(t *testing.T) {
	m := NewKeyedMap()
	assert.Equal(t, 0, m.Len())

	require.NoError(t, m.Set("name", "ada"))
	require.NoError(t, m.Set("year", 1842))

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"name", "year"}, m.Keys())

	v, ok := m.Get("name")
	require.True(t, ok)
	assert.Equal(t, "ada", v)

	_, ok = m.Get("missing")
	assert.False(t, ok)

	require.NoError(t, m.Delete("name"))
	assert.Equal(t, 1, m.Len())
	_, ok = m.Get("name")
	assert.False(t, ok)

	err := m.Delete("name")
	assert.ErrorIs(t, err, graph.ErrNodeNotFound)
}

func TestKeyedMap_SetOverwrites(t *testing.T) {
	m := NewKeyedMap()
	require.NoError(t, m.Set("k", 1))
	require.NoError(t, m.Set("k", 2))

	assert.Equal(t, 1, m.Len())
	v, ok := m.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestKeyedMap_KeysAreCaseSensitive(t *testing.T) {
	m := NewKeyedMap()
	require.NoError(t, m.Set("A", 1))
	require.NoError(t, m.Set("a", 2))

	assert.Equal(t, 2, m.Len())
	upper, _ := m.Get("A")
	lower, _ := m.Get("a")
	assert.Equal(t, 1, upper)
	assert.Equal(t, 2, lower)
}

func TestKeyedMap_DeterministicEntryIDs(t *testing.T) {
	a := NewKeyedMap()
	b := NewKeyedMap()
	require.NoError(t, a.Set("k", 1))
	require.NoError(t, b.Set("k", 2))

	// Entry node IDs derive from the key alone, so both maps address the
	// same entry node for "k".
	assert.Equal(t, a.Graph().NodeIDs(), b.Graph().NodeIDs())
}

func TestKeyedMap_TransformOnSet(t *testing.T) {
	m := NewKeyedMap(graph.WithRule(graph.NoneToZero()))

	require.NoError(t, m.Set("missing", nil))
	v, ok := m.Get("missing")
	require.True(t, ok)
	assert.Equal(t, 0, v)
}

func TestKeyedMap_AttachTransformRetroactively(t *testing.T) {
	m := NewKeyedMap()
	require.NoError(t, m.Set("a", "lower"))
	require.NoError(t, m.Set("b", "case"))

	require.NoError(t, m.AttachRule(graph.Rule(graph.Uppercase()), graph.RetroClean))

	for key, want := range map[string]string{"a": "LOWER", "b": "CASE"} {
		v, ok := m.Get(key)
		require.True(t, ok)
		assert.Equal(t, want, v)
	}

	require.NoError(t, m.Set("c", "new"))
	v, _ := m.Get("c")
	assert.Equal(t, "NEW", v)
}

func TestKeyedMap_GraphExposesEntries(t *testing.T) {
	m := NewKeyedMap()
	require.NoError(t, m.Set("k", "v"))

	g := m.Graph()
	assert.Equal(t, 2, g.NodeCount(), "root plus one entry")

	// The entry edge carries the key as a property for pattern filtering.
	set, err := g.MatchPattern(graph.NewPattern().Node("root").Out("entry").Node("e"))
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
}

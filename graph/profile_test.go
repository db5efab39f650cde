package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProfile = `
graph_type: directed
orphans:
  policy: reject
  allow_overrides: true
rulesets: [dag]
rules:
  - name: max_degree
    degree: 2
    severity: warning
  - name: none_to_zero
index_threshold: 5
`

func TestLoadProfile(t *testing.T) {
	p, err := LoadProfile(strings.NewReader(sampleProfile))
	require.NoError(t, err)

	assert.Equal(t, "directed", p.GraphType)
	assert.Equal(t, "reject", p.Orphans.Policy)
	assert.True(t, p.Orphans.AllowOverrides)
	assert.Equal(t, []string{"dag"}, p.Rulesets)
	require.Len(t, p.Rules, 2)
	assert.Equal(t, 5, p.IndexThreshold)
}

func TestLoadProfile_UnknownField(t *testing.T) {
	_, err := LoadProfile(strings.NewReader("graph_type: directed\nbogus: 1\n"))
	assert.ErrorContains(t, err, "decode profile")
}

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad graph type", "graph_type: sideways"},
		{"bad orphan policy", "orphans:\n  policy: shrug"},
		{"unknown ruleset", "rulesets: [pentagram]"},
		{"unknown rule", "rules:\n  - name: no_such_rule"},
		{"max_degree without degree", "rules:\n  - name: max_degree"},
		{"inverted range", "rules:\n  - name: validate_range\n    min: 9\n    max: 1"},
		{"custom_function without cel", "rules:\n  - name: custom_function"},
		{"conditional without then", "rules:\n  - name: conditional\n    cel: 'true'"},
		{"bad severity", "rules:\n  - name: no_cycles\n    severity: catastrophic"},
		{"negative threshold", "index_threshold: -1"},
		{"reconnect needs strategy", "orphans:\n  policy: reconnect\n  strategy: teleport"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadProfile(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestNewFromProfile(t *testing.T) {
	p, err := LoadProfile(strings.NewReader(sampleProfile))
	require.NoError(t, err)

	g, err := NewFromProfile(p)
	require.NoError(t, err)

	assert.Equal(t, Directed, g.Type())
	assert.Equal(t, OrphanReject, g.Config().OrphanPolicy)
	assert.True(t, g.Config().AllowOverrides)
	assert.True(t, g.HasRuleset(RulesetDAG))
	assert.True(t, g.HasRule("max_degree"))
	assert.True(t, g.HasRule("none_to_zero"))

	// The declared rules are live, not just recorded.
	buildNodes(t, g, "a", "b", "c", "d")
	require.NoError(t, g.AddEdge("a", "b", "next"))
	require.NoError(t, g.AddEdge("a", "c", "next"))
	requireViolation(t, g.AddEdge("a", "d", "next"), "max_degree")

	v, err := g.TransformValue(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestProfile_ConditionalWithCEL(t *testing.T) {
	const src = `
rules:
  - name: conditional
    cel: "type(value) == string"
    then:
      name: uppercase
    else:
      name: none_to_zero
`
	p, err := LoadProfile(strings.NewReader(src))
	require.NoError(t, err)

	g, err := NewFromProfile(p)
	require.NoError(t, err)

	v, err := g.TransformValue("quiet")
	require.NoError(t, err)
	assert.Equal(t, "QUIET", v)

	v, err = g.TransformValue(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestProfile_Apply_SetsIndexThreshold(t *testing.T) {
	p, err := LoadProfile(strings.NewReader("index_threshold: 2"))
	require.NoError(t, err)

	g := New(Directed)
	require.NoError(t, p.Apply(g))
	require.NoError(t, g.AddNodeTyped("a", nil, "", map[string]any{"k": "v"}))

	g.FindByProperty("k", "v")
	assert.Empty(t, g.IndexedProperties())
	g.FindByProperty("k", "v")
	assert.Equal(t, []string{"k"}, g.IndexedProperties())
}

package graph

import (
	"fmt"
	"sort"
)

// Predefined ruleset names.
const (
	RulesetTree       = "tree"
	RulesetBinaryTree = "binary_tree"
	RulesetDAG        = "dag"
)

// builtinRulesets maps ruleset names to their rule expansion, in expansion
// order. binary_tree is tree plus the binary_tree degree bound.
var builtinRulesets = map[string][]RuleSpec{
	RulesetTree:       {NoCycles(), SingleRoot(), Connected()},
	RulesetBinaryTree: {NoCycles(), SingleRoot(), Connected(), BinaryTree()},
	RulesetDAG:        {NoCycles()},
}

// RulesetNames returns the predefined ruleset names, sorted.
func RulesetNames() []string {
	names := make([]string, 0, len(builtinRulesets))
	for name := range builtinRulesets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RulesetRules returns the expansion of a predefined ruleset.
func RulesetRules(name string) ([]RuleSpec, error) {
	specs, ok := builtinRulesets[name]
	if !ok {
		return nil, fmt.Errorf("ruleset %q: %w", name, ErrUnknownRuleset)
	}
	out := make([]RuleSpec, len(specs))
	for i, s := range specs {
		out[i] = s.Clone()
	}
	return out, nil
}

// AttachRuleset attaches a predefined ruleset. Attaching an already-attached
// ruleset is a no-op. The graph's current contents are validated against
// every rule the ruleset introduces; any live violation aborts the attach
// with the graph's rule list unchanged.
func (g *Graph) AttachRuleset(name string) error {
	specs, ok := builtinRulesets[name]
	if !ok {
		return fmt.Errorf("attach ruleset %q: %w", name, ErrUnknownRuleset)
	}
	if g.HasRuleset(name) {
		return nil
	}
	active := g.activeNames()
	for _, spec := range specs {
		if active[spec.Name()] {
			continue
		}
		if err := validateRule(g, spec, validateGraphOp()); err != nil {
			return fmt.Errorf("attach ruleset %q: %w", name, err)
		}
	}
	g.rulesets = append(g.rulesets, name)
	return nil
}

// DetachRuleset removes an attached ruleset. Detaching a ruleset that is not
// attached is a no-op.
func (g *Graph) DetachRuleset(name string) {
	for i, n := range g.rulesets {
		if n == name {
			g.rulesets = append(g.rulesets[:i], g.rulesets[i+1:]...)
			return
		}
	}
}

// HasRuleset reports whether the named ruleset is attached.
func (g *Graph) HasRuleset(name string) bool {
	for _, n := range g.rulesets {
		if n == name {
			return true
		}
	}
	return false
}

// Rulesets returns the attached ruleset names in attachment order.
func (g *Graph) Rulesets() []string {
	return append([]string(nil), g.rulesets...)
}

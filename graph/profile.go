package graph

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Profile is the declarative YAML form of a graph configuration: type,
// orphan handling, rulesets, ad hoc rules, and the index threshold.
//
// Example:
//
//	graph_type: directed
//	orphans:
//	  policy: reconnect
//	  strategy: to_root
//	  allow_overrides: true
//	rulesets: [dag]
//	rules:
//	  - name: max_degree
//	    degree: 4
//	    severity: warning
//	  - name: custom_function
//	    cel: "value * 2"
//	index_threshold: 25
//
// Only declaratively expressible rule kinds may appear; custom_function
// takes a CEL expression over the variable "value", and conditional takes a
// CEL predicate plus a nested transform rule.
type Profile struct {
	GraphType      string         `yaml:"graph_type"`
	Orphans        OrphanProfile  `yaml:"orphans"`
	Rulesets       []string       `yaml:"rulesets"`
	Rules          []RuleProfile  `yaml:"rules"`
	IndexThreshold int            `yaml:"index_threshold"`
}

// OrphanProfile is the YAML form of Config.
type OrphanProfile struct {
	Policy         string `yaml:"policy"`
	Strategy       string `yaml:"strategy"`
	AllowOverrides bool   `yaml:"allow_overrides"`
}

// RuleProfile is the YAML form of one ad hoc rule.
type RuleProfile struct {
	Name     string         `yaml:"name"`
	Severity string         `yaml:"severity"`
	Degree   int            `yaml:"degree"`
	Min      float64        `yaml:"min"`
	Max      float64        `yaml:"max"`
	Table    map[string]any `yaml:"table"`
	Default  any            `yaml:"default"`
	CEL      string         `yaml:"cel"`
	Then     *RuleProfile   `yaml:"then"`
	Else     *RuleProfile   `yaml:"else"`
}

// LoadProfile decodes and validates a YAML profile. Unknown fields are
// rejected.
func LoadProfile(r io.Reader) (*Profile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var p Profile
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks every declared name, policy, and rule parameter without
// touching a graph.
func (p *Profile) Validate() error {
	if p.GraphType != "" {
		if _, err := ParseGraphType(p.GraphType); err != nil {
			return fmt.Errorf("profile: %w", err)
		}
	}
	if _, err := p.config(); err != nil {
		return err
	}
	for _, name := range p.Rulesets {
		if _, ok := builtinRulesets[name]; !ok {
			return fmt.Errorf("profile ruleset %q: %w", name, ErrUnknownRuleset)
		}
	}
	for _, rp := range p.Rules {
		if _, err := rp.instance(); err != nil {
			return err
		}
	}
	if p.IndexThreshold < 0 {
		return fmt.Errorf("profile: negative index threshold %d", p.IndexThreshold)
	}
	return nil
}

func (p *Profile) config() (Config, error) {
	c := DefaultConfig()
	if p.Orphans.Policy != "" {
		policy, err := ParseOrphanPolicy(p.Orphans.Policy)
		if err != nil {
			return c, fmt.Errorf("profile: %w", err)
		}
		c.OrphanPolicy = policy
	}
	if p.Orphans.Strategy != "" {
		strategy, err := ParseReconnectStrategy(p.Orphans.Strategy)
		if err != nil {
			return c, fmt.Errorf("profile: %w", err)
		}
		c.ReconnectStrategy = strategy
	}
	c.AllowOverrides = p.Orphans.AllowOverrides
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("profile: %w", err)
	}
	return c, nil
}

// instance converts one rule profile to an attachable instance.
func (rp RuleProfile) instance() (RuleInstance, error) {
	spec, err := rp.spec()
	if err != nil {
		return RuleInstance{}, err
	}
	inst := Rule(spec)
	if rp.Severity != "" {
		sev, err := ParseSeverity(rp.Severity)
		if err != nil {
			return RuleInstance{}, fmt.Errorf("profile rule %q: %w", rp.Name, err)
		}
		inst.Severity = sev
	}
	return inst, nil
}

func (rp RuleProfile) spec() (RuleSpec, error) {
	switch rp.Name {
	case "no_cycles":
		return NoCycles(), nil
	case "single_root":
		return SingleRoot(), nil
	case "connected":
		return Connected(), nil
	case "max_degree":
		if rp.Degree < 1 {
			return RuleSpec{}, fmt.Errorf("profile rule max_degree: degree %d out of range", rp.Degree)
		}
		return MaxDegree(rp.Degree), nil
	case "binary_tree":
		return BinaryTree(), nil
	case "no_duplicates":
		return NoDuplicates(), nil
	case "weighted_edges":
		return WeightedEdges(), nil
	case "unweighted_edges":
		return UnweightedEdges(), nil
	case "none_to_zero":
		return NoneToZero(), nil
	case "none_to_empty":
		return NoneToEmpty(), nil
	case "positive":
		return Positive(), nil
	case "round_to_int":
		return RoundToInt(), nil
	case "uppercase":
		return Uppercase(), nil
	case "lowercase":
		return Lowercase(), nil
	case "validate_range":
		if rp.Max < rp.Min {
			return RuleSpec{}, fmt.Errorf("profile rule validate_range: range [%g,%g] inverted", rp.Min, rp.Max)
		}
		return ValidateRange(rp.Min, rp.Max), nil
	case "mapping":
		return Mapping(rp.Table, rp.Default), nil
	case "custom_function":
		if rp.CEL == "" {
			return RuleSpec{}, fmt.Errorf("profile rule custom_function: missing cel expression")
		}
		return CustomCEL(rp.CEL)
	case "conditional":
		if rp.CEL == "" || rp.Then == nil {
			return RuleSpec{}, fmt.Errorf("profile rule conditional: requires cel predicate and then rule")
		}
		cond, err := CompilePredicate(rp.CEL)
		if err != nil {
			return RuleSpec{}, err
		}
		then, err := rp.Then.spec()
		if err != nil {
			return RuleSpec{}, err
		}
		var fallback *RuleSpec
		if rp.Else != nil {
			els, err := rp.Else.spec()
			if err != nil {
				return RuleSpec{}, err
			}
			fallback = &els
		}
		return Conditional(cond, then, fallback), nil
	case "ordering":
		return Ordering(nil), nil
	default:
		return RuleSpec{}, fmt.Errorf("profile rule %q: unknown rule name", rp.Name)
	}
}

// Apply attaches the profile's configuration, rulesets, and rules to an
// existing graph. Rulesets attach before ad hoc rules, matching the merge
// order of the rule engine.
func (p *Profile) Apply(g *Graph) error {
	cfg, err := p.config()
	if err != nil {
		return err
	}
	g.config = cfg
	if p.IndexThreshold >= 1 {
		g.indexThreshold = p.IndexThreshold
	}
	for _, name := range p.Rulesets {
		if err := g.AttachRuleset(name); err != nil {
			return err
		}
	}
	for _, rp := range p.Rules {
		inst, err := rp.instance()
		if err != nil {
			return err
		}
		if err := g.AddRuleInstance(inst, RetroClean); err != nil {
			return err
		}
	}
	return nil
}

// NewFromProfile builds a graph from a profile.
func NewFromProfile(p *Profile) (*Graph, error) {
	t := Directed
	if p.GraphType != "" {
		parsed, err := ParseGraphType(p.GraphType)
		if err != nil {
			return nil, fmt.Errorf("profile: %w", err)
		}
		t = parsed
	}
	g := New(t)
	if err := p.Apply(g); err != nil {
		return nil, err
	}
	return g, nil
}

package graph

import (
	"errors"
	"fmt"
)

// activeRules returns the merged rule list: every attached ruleset expanded
// in attachment order, then the ad hoc instances, de-duplicated by rule name
// with the first occurrence winning. Ruleset-expanded rules carry the default
// severity.
func (g *Graph) activeRules() []RuleInstance {
	var out []RuleInstance
	seen := make(map[string]bool)
	for _, name := range g.rulesets {
		for _, spec := range builtinRulesets[name] {
			if seen[spec.Name()] {
				continue
			}
			seen[spec.Name()] = true
			out = append(out, Rule(spec))
		}
	}
	for _, inst := range g.adhoc {
		if seen[inst.Spec.Name()] {
			continue
		}
		seen[inst.Spec.Name()] = true
		out = append(out, inst)
	}
	return out
}

// activeNames returns the set of active rule names.
func (g *Graph) activeNames() map[string]bool {
	seen := make(map[string]bool)
	for _, inst := range g.activeRules() {
		seen[inst.Spec.Name()] = true
	}
	return seen
}

// Rules returns the active rule instances after ruleset expansion and
// de-duplication.
func (g *Graph) Rules() []RuleInstance {
	return g.activeRules()
}

// HasRule reports whether a rule with the given canonical name is active,
// whether it came from a ruleset or was attached ad hoc.
func (g *Graph) HasRule(name string) bool {
	return g.activeNames()[name]
}

// validate runs every active structural rule whose shouldRunOn gate accepts
// the operation. The first failure short-circuits and is always a rejection;
// severity controls only the diagnostic logged before the error returns.
func (g *Graph) validate(op Operation) error {
	for _, inst := range g.activeRules() {
		if !inst.Spec.IsStructural() {
			continue
		}
		if !shouldRunOn(inst.Spec, op) {
			continue
		}
		if err := validateRule(g, inst.Spec, op); err != nil {
			g.logRejection(inst, op, err)
			countRejection(inst.Spec.Name())
			return err
		}
	}
	return nil
}

// logRejection emits the diagnostic a rejection carries. SeveritySilent emits
// nothing; the rejection itself is unconditional either way.
func (g *Graph) logRejection(inst RuleInstance, op Operation, err error) {
	switch inst.Severity {
	case SeverityWarning:
		g.logger.Warn("mutation rejected", "rule", inst.Spec.Name(), "operation", op.Kind.String(), "error", err)
	case SeverityError:
		g.logger.Error("mutation rejected", "rule", inst.Spec.Name(), "operation", op.Kind.String(), "error", err)
	}
}

// AddRule attaches an ad hoc rule with the default severity under
// RetroClean, the default retroactive policy.
func (g *Graph) AddRule(spec RuleSpec) error {
	return g.AddRuleInstance(Rule(spec), RetroClean)
}

// AddRuleWithPolicy attaches an ad hoc rule with the default severity under
// an explicit retroactive policy.
func (g *Graph) AddRuleWithPolicy(spec RuleSpec, policy RetroactivePolicy) error {
	return g.AddRuleInstance(Rule(spec), policy)
}

// AddRuleInstance attaches an ad hoc rule instance under the given
// retroactive policy. Attaching a rule whose name is already active is a
// no-op.
//
// RetroClean attempts to auto-fix existing violations via the rule's clean
// operation. When cleaning fails, the rule is not attached: with live
// violations remaining this is a rule-violation error, but when no live
// violations are found the attach fails silently without an error. The
// silent branch is intentionally lenient and preserved as-is.
func (g *Graph) AddRuleInstance(inst RuleInstance, policy RetroactivePolicy) error {
	if g.activeNames()[inst.Spec.Name()] {
		return nil
	}

	switch policy {
	case RetroIgnore:
		// Attach blindly.

	case RetroWarn:
		if err := g.validateExisting(inst.Spec); err != nil {
			g.logger.Warn("rule attached over existing violations",
				"rule", inst.Spec.Name(), "error", err)
		}

	case RetroEnforce:
		if err := g.validateExisting(inst.Spec); err != nil {
			return fmt.Errorf("attach rule %q: %w", inst.Spec.Name(), err)
		}

	case RetroClean:
		if err := g.cleanForAttach(inst.Spec); err != nil {
			if errors.Is(err, errSilentNoAttach) {
				return nil
			}
			return err
		}

	default:
		return fmt.Errorf("attach rule %q: invalid retroactive policy %d", inst.Spec.Name(), policy)
	}

	g.adhoc = append(g.adhoc, inst)
	return nil
}

// errSilentNoAttach marks the lenient clean-failed-but-no-violations branch:
// the rule is not attached and no error surfaces to the caller.
var errSilentNoAttach = errors.New("clean failed without live violations")

// cleanForAttach implements the RetroClean attach path for one spec.
func (g *Graph) cleanForAttach(spec RuleSpec) error {
	if !supportsClean(spec) {
		// Nothing to auto-fix. Attach only when the existing data already
		// satisfies the rule.
		if err := g.validateExisting(spec); err != nil {
			return fmt.Errorf("attach rule %q: %w", spec.Name(), err)
		}
		return nil
	}
	if err := g.cleanRule(spec); err != nil {
		if verr := g.validateExisting(spec); verr != nil {
			return fmt.Errorf("attach rule %q: clean failed: %v: %w", spec.Name(), err, verr)
		}
		return errSilentNoAttach
	}
	return nil
}

// validateExisting checks the current graph contents against one spec.
// Transformation specs validate trivially: they rewrite future values and
// have no structural footprint.
func (g *Graph) validateExisting(spec RuleSpec) error {
	if !spec.IsStructural() {
		return nil
	}
	return validateRule(g, spec, validateGraphOp())
}

// RemoveRule detaches the ad hoc rule with the given canonical name.
func (g *Graph) RemoveRule(name string) error {
	for i, inst := range g.adhoc {
		if inst.Spec.Name() == name {
			g.adhoc = append(g.adhoc[:i], g.adhoc[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove rule %q: %w", name, ErrRuleNotFound)
}

package graph

import (
	"fmt"
	"math"
	"strings"
)

// TransformValue threads a value through every active transformation rule in
// attachment order. Collection wrappers call it before a value ever reaches
// AddNode. A transform error aborts the pipeline and propagates to the
// caller; the value is not partially applied.
func (g *Graph) TransformValue(value any) (any, error) {
	for _, inst := range g.activeRules() {
		if !inst.Spec.IsTransformation() {
			continue
		}
		nv, err := applyTransform(inst.Spec, value)
		if err != nil {
			return nil, fmt.Errorf("transform rule %q: %w", inst.Spec.Name(), err)
		}
		value = nv
	}
	return value, nil
}

// OrderingRule returns the active ordering comparator, if any. Wrappers use
// it to adjust insertion position; it never rewrites values.
func (g *Graph) OrderingRule() (CompareFunc, bool) {
	for _, inst := range g.activeRules() {
		if inst.Spec.Kind == RuleOrdering {
			cmp := inst.Spec.Compare
			if cmp == nil {
				cmp = CompareValues
			}
			return cmp, true
		}
	}
	return nil, false
}

// ApplyTransform applies one transformation spec to one value, outside any
// graph context. Collection wrappers use it for retroactive cleaning of
// stored elements.
func ApplyTransform(spec RuleSpec, value any) (any, error) {
	return applyTransform(spec, value)
}

// applyTransform applies one transformation spec to one value.
func applyTransform(spec RuleSpec, value any) (any, error) {
	switch spec.Kind {
	case RuleNoneToZero:
		if value == nil {
			return 0, nil
		}
		return value, nil

	case RuleNoneToEmpty:
		if value == nil {
			return "", nil
		}
		return value, nil

	case RulePositive:
		f, ok := toFloat(value)
		if !ok {
			return nil, fmt.Errorf("positive requires a numeric value, got %T", value)
		}
		if isIntegral(value) {
			return int64(math.Abs(f)), nil
		}
		return math.Abs(f), nil

	case RuleRoundToInt:
		f, ok := toFloat(value)
		if !ok {
			return nil, fmt.Errorf("round_to_int requires a numeric value, got %T", value)
		}
		return int64(math.Round(f)), nil

	case RuleUppercase:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("uppercase requires a string value, got %T", value)
		}
		return strings.ToUpper(s), nil

	case RuleLowercase:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("lowercase requires a string value, got %T", value)
		}
		return strings.ToLower(s), nil

	case RuleValidateRange:
		f, ok := toFloat(value)
		if !ok {
			return nil, fmt.Errorf("validate_range requires a numeric value, got %T", value)
		}
		clamped := math.Min(math.Max(f, spec.Min), spec.Max)
		// Truncating an integral value clamped to a fractional bound would
		// land outside the range again, so a fractional result stays a float.
		if isIntegral(value) && clamped == math.Trunc(clamped) {
			return int64(clamped), nil
		}
		return clamped, nil

	case RuleMapping:
		if mapped, ok := spec.Table[canonicalString(value)]; ok {
			return mapped, nil
		}
		return spec.Default, nil

	case RuleCustomFunction:
		if spec.Fn == nil {
			return nil, fmt.Errorf("custom_function has no callback")
		}
		return spec.Fn(value)

	case RuleConditional:
		if spec.Cond == nil || spec.Then == nil {
			return nil, fmt.Errorf("conditional is missing its predicate or transform")
		}
		ok, err := spec.Cond(value)
		if err != nil {
			return nil, err
		}
		if ok {
			return applyTransform(*spec.Then, value)
		}
		if spec.Else != nil {
			return applyTransform(*spec.Else, value)
		}
		return value, nil

	case RuleOrdering:
		// Position-only; the value is untouched.
		return value, nil
	}
	return value, nil
}

// isIntegral reports whether v is one of Go's integer types.
func isIntegral(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

package graph

import "fmt"

// TransformFunc rewrites one incoming value. Returning an error aborts the
// operation that carried the value.
type TransformFunc func(value any) (any, error)

// PredicateFunc gates a conditional transformation.
type PredicateFunc func(value any) (bool, error)

// CompareFunc orders two values for the ordering rule: negative when a sorts
// before b, zero when equal, positive when after.
type CompareFunc func(a, b any) int

// RuleKind enumerates the closed set of built-in rule kinds. Structural kinds
// validate proposed mutations; transformation kinds rewrite incoming values.
type RuleKind int

const (
	RuleNoCycles RuleKind = iota
	RuleSingleRoot
	RuleConnected
	RuleMaxDegree
	RuleBinaryTree
	RuleNoDuplicates
	RuleWeightedEdges
	RuleUnweightedEdges

	RuleNoneToZero
	RuleNoneToEmpty
	RulePositive
	RuleRoundToInt
	RuleUppercase
	RuleLowercase
	RuleValidateRange
	RuleMapping
	RuleCustomFunction
	RuleConditional
	RuleOrdering
)

// String returns the canonical rule name for the kind. The name is the
// de-duplication key when rulesets and ad hoc rules merge, and the Rule field
// of every RuleViolationError.
func (k RuleKind) String() string {
	switch k {
	case RuleNoCycles:
		return "no_cycles"
	case RuleSingleRoot:
		return "single_root"
	case RuleConnected:
		return "connected"
	case RuleMaxDegree:
		return "max_degree"
	case RuleBinaryTree:
		return "binary_tree"
	case RuleNoDuplicates:
		return "no_duplicates"
	case RuleWeightedEdges:
		return "weighted_edges"
	case RuleUnweightedEdges:
		return "unweighted_edges"
	case RuleNoneToZero:
		return "none_to_zero"
	case RuleNoneToEmpty:
		return "none_to_empty"
	case RulePositive:
		return "positive"
	case RuleRoundToInt:
		return "round_to_int"
	case RuleUppercase:
		return "uppercase"
	case RuleLowercase:
		return "lowercase"
	case RuleValidateRange:
		return "validate_range"
	case RuleMapping:
		return "mapping"
	case RuleCustomFunction:
		return "custom_function"
	case RuleConditional:
		return "conditional"
	case RuleOrdering:
		return "ordering"
	default:
		return fmt.Sprintf("RuleKind(%d)", k)
	}
}

// RuleSpec is the closed tagged union describing one rule. The Kind selects
// the variant; only the parameter fields relevant to that kind are set.
// Specs are cheap values: construct them with the package-level constructors
// (NoCycles, MaxDegree, ValidateRange, ...) and copy them freely.
type RuleSpec struct {
	Kind RuleKind

	// Degree is the bound for max_degree.
	Degree int

	// Min and Max bound validate_range.
	Min, Max float64

	// Table and Default parameterize mapping. Table keys are canonical
	// string forms of the matched values.
	Table   map[string]any
	Default any

	// Fn is the callback for custom_function.
	Fn TransformFunc

	// Cond, Then, and Else parameterize conditional. Else may be nil, in
	// which case a false predicate passes the value through unchanged.
	Cond PredicateFunc
	Then *RuleSpec
	Else *RuleSpec

	// Compare orders insertions for ordering. Nil selects the natural order
	// (CompareValues).
	Compare CompareFunc
}

// Name returns the canonical rule name used for de-duplication and error
// reporting.
func (s RuleSpec) Name() string { return s.Kind.String() }

// IsStructural reports whether the spec validates structural mutations.
func (s RuleSpec) IsStructural() bool {
	return s.Kind >= RuleNoCycles && s.Kind <= RuleUnweightedEdges
}

// IsTransformation reports whether the spec rewrites incoming values.
func (s RuleSpec) IsTransformation() bool {
	return s.Kind >= RuleNoneToZero && s.Kind <= RuleOrdering
}

// Clone returns a deep copy of the spec. Callback fields are shared, the
// mapping table is copied.
func (s RuleSpec) Clone() RuleSpec {
	c := s
	if s.Table != nil {
		c.Table = make(map[string]any, len(s.Table))
		for k, v := range s.Table {
			c.Table[k] = v
		}
	}
	if s.Then != nil {
		then := s.Then.Clone()
		c.Then = &then
	}
	if s.Else != nil {
		els := s.Else.Clone()
		c.Else = &els
	}
	return c
}

// NoCycles rejects any edge that would close a directed cycle.
func NoCycles() RuleSpec { return RuleSpec{Kind: RuleNoCycles} }

// SingleRoot requires exactly one node with zero incoming edges. It is never
// evaluated on add_node, so children may be created before their parent edge.
func SingleRoot() RuleSpec { return RuleSpec{Kind: RuleSingleRoot} }

// Connected requires the graph to stay connected (edges treated as
// undirected for reachability). Evaluated only on removals.
func Connected() RuleSpec { return RuleSpec{Kind: RuleConnected} }

// MaxDegree bounds the number of outgoing edges per node.
func MaxDegree(n int) RuleSpec { return RuleSpec{Kind: RuleMaxDegree, Degree: n} }

// BinaryTree bounds every node to two children. Equivalent to MaxDegree(2)
// under its own rule name.
func BinaryTree() RuleSpec { return RuleSpec{Kind: RuleBinaryTree, Degree: 2} }

// NoDuplicates rejects a node whose value equals an existing node's value.
func NoDuplicates() RuleSpec { return RuleSpec{Kind: RuleNoDuplicates} }

// WeightedEdges requires every new edge to carry an explicit weight.
func WeightedEdges() RuleSpec { return RuleSpec{Kind: RuleWeightedEdges} }

// UnweightedEdges rejects any new edge carrying a weight.
func UnweightedEdges() RuleSpec { return RuleSpec{Kind: RuleUnweightedEdges} }

// NoneToZero substitutes 0 for nil values.
func NoneToZero() RuleSpec { return RuleSpec{Kind: RuleNoneToZero} }

// NoneToEmpty substitutes "" for nil values.
func NoneToEmpty() RuleSpec { return RuleSpec{Kind: RuleNoneToEmpty} }

// Positive replaces numeric values with their absolute value.
func Positive() RuleSpec { return RuleSpec{Kind: RulePositive} }

// RoundToInt rounds floating-point values to the nearest integer.
func RoundToInt() RuleSpec { return RuleSpec{Kind: RuleRoundToInt} }

// Uppercase upper-cases string values; non-strings are an error.
func Uppercase() RuleSpec { return RuleSpec{Kind: RuleUppercase} }

// Lowercase lower-cases string values; non-strings are an error.
func Lowercase() RuleSpec { return RuleSpec{Kind: RuleLowercase} }

// ValidateRange clamps numeric values into [min, max].
func ValidateRange(min, max float64) RuleSpec {
	return RuleSpec{Kind: RuleValidateRange, Min: min, Max: max}
}

// Mapping replaces values by canonical-key lookup in table, falling back to
// def when the value is not present.
func Mapping(table map[string]any, def any) RuleSpec {
	return RuleSpec{Kind: RuleMapping, Table: table, Default: def}
}

// CustomFunction wraps a user callback as a transformation rule.
func CustomFunction(fn TransformFunc) RuleSpec {
	return RuleSpec{Kind: RuleCustomFunction, Fn: fn}
}

// Conditional applies transform when cond holds, and fallback (when non-nil)
// otherwise.
func Conditional(cond PredicateFunc, transform RuleSpec, fallback *RuleSpec) RuleSpec {
	t := transform.Clone()
	spec := RuleSpec{Kind: RuleConditional, Cond: cond, Then: &t}
	if fallback != nil {
		f := fallback.Clone()
		spec.Else = &f
	}
	return spec
}

// Ordering adjusts insertion position in ordered collections via cmp, or the
// natural order when cmp is nil. It never rewrites values.
func Ordering(cmp CompareFunc) RuleSpec {
	return RuleSpec{Kind: RuleOrdering, Compare: cmp}
}

// Severity controls only how a rule rejection is logged. A violating
// operation is always rejected regardless of severity.
type Severity int

const (
	// SeveritySilent rejects without logging.
	SeveritySilent Severity = iota

	// SeverityWarning logs the rejection at warn level.
	SeverityWarning

	// SeverityError logs the rejection at error level. The default.
	SeverityError
)

// String returns the string representation of the Severity.
func (s Severity) String() string {
	switch s {
	case SeveritySilent:
		return "silent"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", s)
	}
}

// IsValid returns true if the severity is a valid value.
func (s Severity) IsValid() bool {
	return s >= SeveritySilent && s <= SeverityError
}

// ParseSeverity parses a string into a Severity value.
func ParseSeverity(str string) (Severity, error) {
	switch str {
	case "silent":
		return SeveritySilent, nil
	case "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	default:
		return 0, fmt.Errorf("invalid severity: %s", str)
	}
}

// RuleInstance pairs a spec with its diagnostic severity.
type RuleInstance struct {
	Spec     RuleSpec
	Severity Severity
}

// Rule wraps a spec in an instance with the default severity.
func Rule(spec RuleSpec) RuleInstance {
	return RuleInstance{Spec: spec, Severity: SeverityError}
}

// RetroactivePolicy governs how a newly attached rule treats data already in
// the graph at attach time.
type RetroactivePolicy int

const (
	// RetroClean auto-fixes existing violations when the rule attaches. The
	// default. When cleaning is unsupported or fails and live violations
	// exist, the rule is not attached.
	RetroClean RetroactivePolicy = iota

	// RetroWarn logs existing violations and attaches anyway.
	RetroWarn

	// RetroEnforce refuses to attach while existing violations remain.
	RetroEnforce

	// RetroIgnore attaches without inspecting existing data.
	RetroIgnore
)

// String returns the string representation of the RetroactivePolicy.
func (p RetroactivePolicy) String() string {
	switch p {
	case RetroClean:
		return "clean"
	case RetroWarn:
		return "warn"
	case RetroEnforce:
		return "enforce"
	case RetroIgnore:
		return "ignore"
	default:
		return fmt.Sprintf("RetroactivePolicy(%d)", p)
	}
}

// ParseRetroactivePolicy parses a string into a RetroactivePolicy value.
func ParseRetroactivePolicy(s string) (RetroactivePolicy, error) {
	switch s {
	case "clean":
		return RetroClean, nil
	case "warn":
		return RetroWarn, nil
	case "enforce":
		return RetroEnforce, nil
	case "ignore":
		return RetroIgnore, nil
	default:
		return 0, fmt.Errorf("invalid retroactive policy: %s", s)
	}
}

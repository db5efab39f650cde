package graph

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// CEL support for user-supplied rule expressions. Profiles and hosts that
// cannot pass Go callbacks describe custom transformations and predicates as
// CEL expressions over a single variable named "value".

// newCELEnv builds the evaluation environment shared by all compiled rule
// expressions.
func newCELEnv() (*cel.Env, error) {
	return cel.NewEnv(cel.Variable("value", cel.DynType))
}

// CompileTransform compiles a CEL expression into a TransformFunc. The
// expression sees the incoming value as the variable "value" and its result
// replaces the value.
//
// Example:
//
//	fn, err := graph.CompileTransform("value * 2")
//	g.AddRule(graph.CustomFunction(fn))
func CompileTransform(expr string) (TransformFunc, error) {
	prg, err := compileCEL(expr)
	if err != nil {
		return nil, err
	}
	return func(value any) (any, error) {
		out, _, err := prg.Eval(map[string]any{"value": value})
		if err != nil {
			return nil, fmt.Errorf("cel transform %q: %w", expr, err)
		}
		return out.Value(), nil
	}, nil
}

// CompilePredicate compiles a CEL expression into a PredicateFunc. The
// expression must evaluate to a boolean.
//
// Example:
//
//	cond, err := graph.CompilePredicate("type(value) == int && value < 0")
//	g.AddRule(graph.Conditional(cond, graph.Positive(), nil))
func CompilePredicate(expr string) (PredicateFunc, error) {
	prg, err := compileCEL(expr)
	if err != nil {
		return nil, err
	}
	return func(value any) (bool, error) {
		out, _, err := prg.Eval(map[string]any{"value": value})
		if err != nil {
			return false, fmt.Errorf("cel predicate %q: %w", expr, err)
		}
		b, ok := out.Value().(bool)
		if !ok {
			return false, fmt.Errorf("cel predicate %q: result is %T, want bool", expr, out.Value())
		}
		return b, nil
	}, nil
}

// CustomCEL builds a custom_function rule spec from a CEL expression.
func CustomCEL(expr string) (RuleSpec, error) {
	fn, err := CompileTransform(expr)
	if err != nil {
		return RuleSpec{}, err
	}
	return CustomFunction(fn), nil
}

func compileCEL(expr string) (cel.Program, error) {
	env, err := newCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile cel expression %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build cel program %q: %w", expr, err)
	}
	return prg, nil
}

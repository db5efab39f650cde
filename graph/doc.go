// Package graph provides the polymorphic graph substrate underlying every
// Loom collection type. Lists, maps, and trees are all graphs with different
// access conventions layered on top of this package.
//
// The package combines node/edge storage with mirrored forward and backward
// adjacency, a pluggable rule-validation engine, a value-transformation
// ("behavior") pipeline, orphan-node lifecycle management, rule-aware
// traversal algorithms, declarative pattern matching with backtracking, and
// an adaptive property index.
//
// # Core Types
//
//   - Graph: the aggregate root owning nodes, configuration, and rules
//   - Node: an identified container for one value plus optional type label
//     and properties
//   - EdgeInfo: a typed relation with an optional weight and properties
//   - RuleSpec: a closed tagged union describing one structural or
//     transformation rule
//   - RuleInstance: a RuleSpec paired with a diagnostic severity
//   - Pattern: a declarative node/edge/path pattern for subgraph matching
//
// # Mutation and Validation
//
// Every structural mutation is packaged as an Operation and validated against
// the active rules before it is committed:
//
//	g := graph.New(graph.Directed, graph.WithRuleset("dag"))
//	_ = g.AddNode("a", 1)
//	_ = g.AddNode("b", 2)
//	_ = g.AddEdge("a", "b", "next")
//
//	err := g.AddEdge("b", "a", "next") // rejected: would create a cycle
//	var rv *graph.RuleViolationError
//	if errors.As(err, &rv) {
//	    log.Printf("rejected by %s: %s", rv.Rule, rv.Message)
//	}
//
// A rejected mutation leaves the graph unchanged. Rule severity controls only
// whether a diagnostic is logged before the error returns; a violation is
// always a rejection.
//
// # Behavior Pipeline
//
// Transformation rules rewrite values rather than rejecting operations.
// Collection wrappers thread every incoming value through TransformValue
// before it reaches AddNode:
//
//	g.AddRule(graph.Uppercase())
//	v, _ := g.TransformValue("hello") // "HELLO"
//
// # Concurrency
//
// A Graph is single-threaded and performs no internal locking. Callers that
// share a graph across goroutines must serialize access externally.
package graph

package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph operations.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrNodeNotFound indicates that the requested node does not exist in the
	// graph. Returned by edge creation, node removal, traversal, and lookups
	// that name a missing node ID.
	ErrNodeNotFound = errors.New("node not found")

	// ErrNodeExists indicates that a node with the given ID is already
	// present. Node IDs are unique keys; re-adding is always an error.
	ErrNodeExists = errors.New("node already exists")

	// ErrEdgeNotFound indicates that no edge exists between the named nodes.
	ErrEdgeNotFound = errors.New("edge not found")

	// ErrEdgeExists indicates that an edge between the named nodes is already
	// present. Edges are updated in place via EdgeInfo, never re-created.
	ErrEdgeExists = errors.New("edge already exists")

	// ErrFrozen indicates that a mutation was attempted on a frozen graph.
	// Unfreeze the graph or operate on a Clone, which is always unfrozen.
	ErrFrozen = errors.New("graph is frozen")

	// ErrWouldOrphan indicates that a removal was blocked under
	// OrphanReject because it would leave one or more nodes with no edges.
	// The check runs before any mutation, so the graph is unchanged.
	ErrWouldOrphan = errors.New("removal would orphan nodes")

	// ErrNoRoot indicates that orphan reconnection required a unique root
	// node (zero predecessors, at least one neighbor) and none exists.
	ErrNoRoot = errors.New("no unique root node")

	// ErrStrategyUnimplemented indicates that the requested reconnect
	// strategy is declared but not implemented. It is surfaced as a hard
	// error rather than a silent no-op.
	ErrStrategyUnimplemented = errors.New("reconnect strategy not implemented")

	// ErrRuleNotFound indicates that no ad hoc rule with the given name is
	// attached to the graph.
	ErrRuleNotFound = errors.New("rule not found")

	// ErrUnknownRuleset indicates that the named ruleset is not one of the
	// predefined bundles (tree, binary_tree, dag).
	ErrUnknownRuleset = errors.New("unknown ruleset")

	// ErrNoPath indicates that no path exists between the requested nodes
	// under the requested traversal constraints.
	ErrNoPath = errors.New("no path between nodes")

	// ErrOverrideNotAllowed indicates that a per-call orphan policy override
	// was supplied but the graph configuration does not permit overrides.
	ErrOverrideNotAllowed = errors.New("orphan policy override not allowed")

	// ErrInvalidPattern indicates that a pattern is structurally malformed:
	// wrong node/link alternation or a nonsensical hop range.
	ErrInvalidPattern = errors.New("invalid pattern")
)

// RuleViolationError is returned for every mutation rejected by a rule.
// Rule is the canonical rule name (e.g. "no_cycles", "max_degree") and
// Message describes the specific violation.
//
// RuleViolationError supports errors.As:
//
//	var rv *graph.RuleViolationError
//	if errors.As(err, &rv) {
//	    fmt.Println(rv.Rule, rv.Message)
//	}
type RuleViolationError struct {
	Rule    string
	Message string
}

// Error implements the error interface.
func (e *RuleViolationError) Error() string {
	return fmt.Sprintf("rule violation (%s): %s", e.Rule, e.Message)
}

// violation builds a RuleViolationError with a formatted message.
func violation(rule, format string, args ...any) *RuleViolationError {
	return &RuleViolationError{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

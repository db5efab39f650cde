package graph

import "fmt"

// OpKind identifies the kind of a proposed mutation.
type OpKind int

const (
	// OpAddNode proposes inserting a new node.
	OpAddNode OpKind = iota

	// OpAddEdge proposes inserting a new edge.
	OpAddEdge

	// OpRemoveNode proposes removing a node and every edge touching it.
	OpRemoveNode

	// OpRemoveEdge proposes removing one edge.
	OpRemoveEdge

	// opValidateGraph validates the whole current graph, with no proposed
	// change. Used when rules and rulesets attach.
	opValidateGraph
)

// String returns the string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case OpAddNode:
		return "add_node"
	case OpAddEdge:
		return "add_edge"
	case OpRemoveNode:
		return "remove_node"
	case OpRemoveEdge:
		return "remove_edge"
	case opValidateGraph:
		return "validate_graph"
	default:
		return fmt.Sprintf("OpKind(%d)", k)
	}
}

// Operation packages one proposed mutation for rule validation. Validators
// inspect the operation together with the current (pre-mutation) graph state;
// post-state checks simulate the operation without applying it.
type Operation struct {
	Kind OpKind

	// NodeID and Value describe add_node / remove_node operations.
	NodeID string
	Value  any

	// From, To, and Edge describe add_edge / remove_edge operations.
	From string
	To   string
	Edge *EdgeInfo
}

func addNodeOp(id string, value any) Operation {
	return Operation{Kind: OpAddNode, NodeID: id, Value: value}
}

func addEdgeOp(from, to string, edge *EdgeInfo) Operation {
	return Operation{Kind: OpAddEdge, From: from, To: to, Edge: edge}
}

func removeNodeOp(id string) Operation {
	return Operation{Kind: OpRemoveNode, NodeID: id}
}

func removeEdgeOp(from, to string) Operation {
	return Operation{Kind: OpRemoveEdge, From: from, To: to}
}

func validateGraphOp() Operation {
	return Operation{Kind: opValidateGraph}
}

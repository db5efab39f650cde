package graph

import "sort"

// Node is an identified container for one value plus an optional type label
// and a property map. Adjacency is mirrored: a directed edge A→B exists iff
// A's neighbor map and B's predecessor map both reference the same EdgeInfo.
//
// Nodes are created only through validated graph entry points (AddNode,
// AddNodeTyped); the adjacency maps are maintained exclusively by the graph's
// internal link/unlink primitives.
type Node struct {
	// ID is the unique node identifier within its graph.
	ID string

	// Value is the opaque value the node carries.
	Value any

	// Type is an optional type label used by pattern matching.
	Type string

	// Properties contains arbitrary key-value properties for the node.
	// Mutate through Graph.SetNodeProperty so the property index stays
	// consistent.
	Properties map[string]any

	neighbors    map[string]*EdgeInfo
	predecessors map[string]*EdgeInfo
}

func newNode(id string, value any) *Node {
	return &Node{
		ID:           id,
		Value:        value,
		Properties:   make(map[string]any),
		neighbors:    make(map[string]*EdgeInfo),
		predecessors: make(map[string]*EdgeInfo),
	}
}

// Neighbors returns the IDs of nodes reachable by an outgoing edge, sorted.
func (n *Node) Neighbors() []string {
	return sortedKeys(n.neighbors)
}

// Predecessors returns the IDs of nodes with an edge into this node, sorted.
func (n *Node) Predecessors() []string {
	return sortedKeys(n.predecessors)
}

// Degree returns the number of outgoing edges.
func (n *Node) Degree() int { return len(n.neighbors) }

// InDegree returns the number of incoming edges.
func (n *Node) InDegree() int { return len(n.predecessors) }

// HasNeighbor reports whether an outgoing edge to id exists.
func (n *Node) HasNeighbor(id string) bool {
	_, ok := n.neighbors[id]
	return ok
}

// EdgeTo returns the EdgeInfo for the outgoing edge to id, or nil.
func (n *Node) EdgeTo(id string) *EdgeInfo { return n.neighbors[id] }

// EdgeFrom returns the EdgeInfo for the incoming edge from id, or nil.
func (n *Node) EdgeFrom(id string) *EdgeInfo { return n.predecessors[id] }

// isOrphan reports whether the node has no edges in either direction.
func (n *Node) isOrphan() bool {
	return len(n.neighbors) == 0 && len(n.predecessors) == 0
}

func (n *Node) clone() *Node {
	c := newNode(n.ID, n.Value)
	c.Type = n.Type
	for k, v := range n.Properties {
		c.Properties[k] = v
	}
	return c
}

// EdgeInfo describes one logical edge: a type label, an optional weight, and
// a property map. All mirrored adjacency entries for the same logical edge
// share one EdgeInfo, so weight and property updates are visible from both
// endpoints without recreating the edge.
type EdgeInfo struct {
	// Type is the edge type label (e.g. "next", "entry", "FRIEND").
	Type string

	// Weight is the optional edge weight. Presence and absence are
	// independently meaningful; use HasWeight, WeightValue, SetWeight, and
	// ClearWeight rather than touching the pointer.
	Weight *float64

	// Properties contains optional edge metadata.
	Properties map[string]any
}

// NewEdge creates an unweighted EdgeInfo with the given type label.
func NewEdge(edgeType string) *EdgeInfo {
	return &EdgeInfo{
		Type:       edgeType,
		Properties: make(map[string]any),
	}
}

// WithWeight sets the edge weight and returns the edge for method chaining.
func (e *EdgeInfo) WithWeight(w float64) *EdgeInfo {
	e.Weight = &w
	return e
}

// WithProperty sets a single property and returns the edge for method chaining.
func (e *EdgeInfo) WithProperty(key string, value any) *EdgeInfo {
	if e.Properties == nil {
		e.Properties = make(map[string]any)
	}
	e.Properties[key] = value
	return e
}

// HasWeight reports whether the edge carries an explicit weight.
func (e *EdgeInfo) HasWeight() bool { return e.Weight != nil }

// WeightValue returns the weight and whether one is present.
func (e *EdgeInfo) WeightValue() (float64, bool) {
	if e.Weight == nil {
		return 0, false
	}
	return *e.Weight, true
}

// SetWeight sets the weight without recreating the edge.
func (e *EdgeInfo) SetWeight(w float64) { e.Weight = &w }

// ClearWeight removes the weight without recreating the edge.
func (e *EdgeInfo) ClearWeight() { e.Weight = nil }

func (e *EdgeInfo) clone() *EdgeInfo {
	c := NewEdge(e.Type)
	if e.Weight != nil {
		w := *e.Weight
		c.Weight = &w
	}
	for k, v := range e.Properties {
		c.Properties[k] = v
	}
	return c
}

func (e *EdgeInfo) equal(other *EdgeInfo) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Type != other.Type {
		return false
	}
	if (e.Weight == nil) != (other.Weight == nil) {
		return false
	}
	if e.Weight != nil && *e.Weight != *other.Weight {
		return false
	}
	if len(e.Properties) != len(other.Properties) {
		return false
	}
	for k, v := range e.Properties {
		ov, ok := other.Properties[k]
		if !ok || !valuesEqual(v, ov) {
			return false
		}
	}
	return true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package collection

import (
	"fmt"
	"sort"

	"github.com/loomscript/graphcore/graph"
	"github.com/loomscript/graphcore/graph/id"
)

const (
	mapRootID     = "map:root"
	mapEdgeType   = "entry"
	mapKeyProp    = "key"
	mapEntryLabel = "entry"
)

// KeyedMap is a keyed map stored as a root node with one "entry" edge per
// key. Entry node IDs are content-addressed from the key, so lookups resolve
// without scanning edges.
type KeyedMap struct {
	g *graph.Graph
}

// NewKeyedMap creates an empty keyed map.
func NewKeyedMap(opts ...graph.Option) *KeyedMap {
	g := graph.New(graph.Directed, opts...)
	if err := g.AddNode(mapRootID, nil); err != nil {
		panic(fmt.Sprintf("collection: map root: %v", err))
	}
	return &KeyedMap{g: g}
}

// Graph exposes the underlying graph for traversal, pattern matching, and
// export. Mutating it directly can break the entry convention.
func (m *KeyedMap) Graph() *graph.Graph { return m.g }

// Len returns the number of entries.
func (m *KeyedMap) Len() int {
	root, _ := m.g.Node(mapRootID)
	return root.Degree()
}

// Keys returns all keys, sorted. Entry IDs are hashes, so the neighbor order
// is meaningless and the keys are sorted explicitly.
func (m *KeyedMap) Keys() []string {
	root, _ := m.g.Node(mapRootID)
	var keys []string
	for _, entryID := range root.Neighbors() {
		if key, ok := m.g.NodeProperty(entryID, mapKeyProp); ok {
			keys = append(keys, fmt.Sprintf("%v", key))
		}
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value stored under key and whether it is present.
func (m *KeyedMap) Get(key string) (any, bool) {
	n, ok := m.g.Node(entryID(key))
	if !ok {
		return nil, false
	}
	return n.Value, true
}

// Set stores a value under key, creating or updating the entry. The value
// passes through the behavior pipeline first.
func (m *KeyedMap) Set(key string, value any) error {
	v, err := m.g.TransformValue(value)
	if err != nil {
		return err
	}
	eid := entryID(key)
	if m.g.HasNode(eid) {
		return m.g.SetNodeValue(eid, v)
	}
	props := map[string]any{mapKeyProp: key}
	if err := m.g.AddNodeTyped(eid, v, mapEntryLabel, props); err != nil {
		return err
	}
	info := graph.NewEdge(mapEdgeType).WithProperty(mapKeyProp, key)
	return m.g.AddEdgeInfo(mapRootID, eid, info)
}

// Delete removes the entry stored under key.
func (m *KeyedMap) Delete(key string) error {
	eid := entryID(key)
	if !m.g.HasNode(eid) {
		return fmt.Errorf("delete %q: %w", key, graph.ErrNodeNotFound)
	}
	return m.g.RemoveNode(eid)
}

// AttachRule attaches a rule to the map. Transformation rules under
// RetroClean re-transform every stored entry immediately; the attach is
// abandoned without error if the re-transformation cannot complete, matching
// the engine's lenient clean-on-attach behavior.
func (m *KeyedMap) AttachRule(inst graph.RuleInstance, policy graph.RetroactivePolicy) error {
	if inst.Spec.IsTransformation() && policy == graph.RetroClean {
		root, _ := m.g.Node(mapRootID)
		for _, eid := range root.Neighbors() {
			n, _ := m.g.Node(eid)
			nv, err := graph.ApplyTransform(inst.Spec, n.Value)
			if err != nil {
				return nil
			}
			if err := m.g.SetNodeValue(eid, nv); err != nil {
				return err
			}
		}
		return m.g.AddRuleInstance(inst, graph.RetroIgnore)
	}
	return m.g.AddRuleInstance(inst, policy)
}

// entryID derives the content-addressed node ID for a key.
func entryID(key string) string {
	return id.Deterministic("entry", map[string]any{mapKeyProp: key})
}

package collection

import (
	"fmt"

	"github.com/loomscript/graphcore/graph"
	"github.com/loomscript/graphcore/graph/id"
)

const (
	seqHeadID   = "seq:head"
	seqEdgeType = "next"
)

// Sequence is an ordered list stored as a chain graph: a head marker node
// followed by element nodes linked with "next" edges. Element IDs are
// random; position is carried entirely by the chain.
type Sequence struct {
	g *graph.Graph
}

// NewSequence creates an empty sequence.
func NewSequence(opts ...graph.Option) *Sequence {
	g := graph.New(graph.Directed, opts...)
	// The head marker always exists; an empty sequence is just the head.
	if err := g.AddNode(seqHeadID, nil); err != nil {
		panic(fmt.Sprintf("collection: sequence head: %v", err))
	}
	return &Sequence{g: g}
}

// Graph exposes the underlying graph for traversal, pattern matching, and
// export. Mutating it directly can break the chain convention.
func (s *Sequence) Graph() *graph.Graph { return s.g }

// Len returns the number of elements.
func (s *Sequence) Len() int { return len(s.elements()) }

// Values returns the element values in order.
func (s *Sequence) Values() []any {
	ids := s.elements()
	values := make([]any, len(ids))
	for i, nodeID := range ids {
		n, _ := s.g.Node(nodeID)
		values[i] = n.Value
	}
	return values
}

// Get returns the value at index i.
func (s *Sequence) Get(i int) (any, error) {
	ids := s.elements()
	if i < 0 || i >= len(ids) {
		return nil, fmt.Errorf("sequence index %d out of range [0,%d)", i, len(ids))
	}
	n, _ := s.g.Node(ids[i])
	return n.Value, nil
}

// Append adds a value at the end of the sequence, or at its sorted position
// when an ordering rule is active. The value passes through the behavior
// pipeline first.
func (s *Sequence) Append(value any) error {
	v, err := s.g.TransformValue(value)
	if err != nil {
		return err
	}
	if cmp, ok := s.g.OrderingRule(); ok {
		return s.insertTransformed(s.orderedPosition(v, cmp), v)
	}
	return s.insertTransformed(s.Len(), v)
}

// Insert places a value at index i, shifting later elements. The value
// passes through the behavior pipeline first. The chain relink is a compound
// operation and is not atomic across its constituent mutations.
func (s *Sequence) Insert(i int, value any) error {
	v, err := s.g.TransformValue(value)
	if err != nil {
		return err
	}
	return s.insertTransformed(i, v)
}

func (s *Sequence) insertTransformed(i int, v any) error {
	ids := s.elements()
	if i < 0 || i > len(ids) {
		return fmt.Errorf("sequence index %d out of range [0,%d]", i, len(ids))
	}

	prev := seqHeadID
	if i > 0 {
		prev = ids[i-1]
	}
	next := ""
	if i < len(ids) {
		next = ids[i]
	}

	elemID := id.Random("el")
	if err := s.g.AddNode(elemID, v); err != nil {
		return err
	}
	if next != "" {
		if err := s.g.RemoveEdge(prev, next); err != nil {
			return err
		}
	}
	if err := s.g.AddEdge(prev, elemID, seqEdgeType); err != nil {
		return err
	}
	if next != "" {
		if err := s.g.AddEdge(elemID, next, seqEdgeType); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes the element at index i and closes the chain around it.
// Compound and not atomic across its constituent mutations.
func (s *Sequence) Remove(i int) error {
	ids := s.elements()
	if i < 0 || i >= len(ids) {
		return fmt.Errorf("sequence index %d out of range [0,%d)", i, len(ids))
	}

	prev := seqHeadID
	if i > 0 {
		prev = ids[i-1]
	}
	next := ""
	if i < len(ids)-1 {
		next = ids[i+1]
	}

	if err := s.g.RemoveNode(ids[i]); err != nil {
		return err
	}
	if next != "" {
		if err := s.g.AddEdge(prev, next, seqEdgeType); err != nil {
			return err
		}
	}
	return nil
}

// AttachRule attaches a rule to the sequence. Transformation rules under
// RetroClean re-transform every stored element immediately; the attach is
// abandoned without error if the re-transformation cannot complete, matching
// the engine's lenient clean-on-attach behavior.
func (s *Sequence) AttachRule(inst graph.RuleInstance, policy graph.RetroactivePolicy) error {
	if inst.Spec.IsTransformation() && policy == graph.RetroClean {
		for _, nodeID := range s.elements() {
			n, _ := s.g.Node(nodeID)
			nv, err := graph.ApplyTransform(inst.Spec, n.Value)
			if err != nil {
				return nil
			}
			if err := s.g.SetNodeValue(nodeID, nv); err != nil {
				return err
			}
		}
		// The stored elements are clean; skip the engine's own value pass,
		// which would also rewrite the head marker.
		return s.g.AddRuleInstance(inst, graph.RetroIgnore)
	}
	return s.g.AddRuleInstance(inst, policy)
}

// orderedPosition finds the insertion index that keeps the sequence sorted
// under cmp.
func (s *Sequence) orderedPosition(v any, cmp graph.CompareFunc) int {
	ids := s.elements()
	for i, nodeID := range ids {
		n, _ := s.g.Node(nodeID)
		if cmp(v, n.Value) < 0 {
			return i
		}
	}
	return len(ids)
}

// elements walks the chain from the head and returns element IDs in order.
func (s *Sequence) elements() []string {
	var ids []string
	cur, _ := s.g.Node(seqHeadID)
	for cur != nil {
		next := ""
		for _, nb := range cur.Neighbors() {
			if cur.EdgeTo(nb).Type == seqEdgeType {
				next = nb
				break
			}
		}
		if next == "" {
			return ids
		}
		ids = append(ids, next)
		cur, _ = s.g.Node(next)
	}
	return ids
}

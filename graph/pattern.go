package graph

import "fmt"

// Direction selects which adjacency a pattern edge or path follows.
type Direction int

const (
	// DirectionOut follows outgoing edges.
	DirectionOut Direction = iota

	// DirectionIn follows incoming edges.
	DirectionIn

	// DirectionBoth follows edges in either direction.
	DirectionBoth
)

// String returns the string representation of the Direction.
func (d Direction) String() string {
	switch d {
	case DirectionOut:
		return "outgoing"
	case DirectionIn:
		return "incoming"
	case DirectionBoth:
		return "both"
	default:
		return fmt.Sprintf("Direction(%d)", d)
	}
}

// NodeSpec matches one pattern node. Var, when non-empty, binds the matched
// node ID under that variable name; the same variable appearing more than
// once must resolve to the same node. Type, when non-empty, constrains the
// node's type label.
type NodeSpec struct {
	Var  string
	Type string
}

// EdgeSpec matches one fixed edge between adjacent pattern nodes. Type, when
// non-empty, constrains the edge type label.
type EdgeSpec struct {
	Type      string
	Direction Direction
}

// PathSpec matches a variable-length segment of MinHops to MaxHops edges,
// all of the given type (empty for any). A MinHops of zero admits the
// zero-hop "same node" path.
type PathSpec struct {
	Type      string
	MinHops   int
	MaxHops   int
	Direction Direction
}

// patternLink connects two adjacent pattern nodes through either a fixed
// edge or a variable-length path, never both.
type patternLink struct {
	edge *EdgeSpec
	path *PathSpec
}

// Pattern is a declarative alternating sequence of node and edge/path specs,
// built fluently:
//
//	p := graph.NewPattern().
//	    Node("x").
//	    Out("FRIEND").
//	    Node("y")
//
//	matches, err := g.MatchPattern(p)
type Pattern struct {
	nodes []NodeSpec
	links []patternLink
}

// NewPattern creates an empty pattern.
func NewPattern() *Pattern { return &Pattern{} }

// Node appends an untyped pattern node bound to the given variable. An empty
// variable matches without binding.
func (p *Pattern) Node(varName string) *Pattern {
	return p.NodeSpec(NodeSpec{Var: varName})
}

// TypedNode appends a pattern node with a type constraint.
func (p *Pattern) TypedNode(varName, nodeType string) *Pattern {
	return p.NodeSpec(NodeSpec{Var: varName, Type: nodeType})
}

// NodeSpec appends an explicit node spec.
func (p *Pattern) NodeSpec(spec NodeSpec) *Pattern {
	p.nodes = append(p.nodes, spec)
	return p
}

// Out appends an outgoing edge spec with the given type (empty for any).
func (p *Pattern) Out(edgeType string) *Pattern {
	return p.Edge(EdgeSpec{Type: edgeType, Direction: DirectionOut})
}

// In appends an incoming edge spec with the given type (empty for any).
func (p *Pattern) In(edgeType string) *Pattern {
	return p.Edge(EdgeSpec{Type: edgeType, Direction: DirectionIn})
}

// Any appends an either-direction edge spec with the given type.
func (p *Pattern) Any(edgeType string) *Pattern {
	return p.Edge(EdgeSpec{Type: edgeType, Direction: DirectionBoth})
}

// Edge appends an explicit fixed-edge spec.
func (p *Pattern) Edge(spec EdgeSpec) *Pattern {
	p.links = append(p.links, patternLink{edge: &spec})
	return p
}

// Path appends a variable-length path spec.
func (p *Pattern) Path(spec PathSpec) *Pattern {
	p.links = append(p.links, patternLink{path: &spec})
	return p
}

// Validate checks the alternation and hop ranges.
func (p *Pattern) Validate() error {
	if len(p.nodes) == 0 {
		return fmt.Errorf("%w: no node specs", ErrInvalidPattern)
	}
	if len(p.links) != len(p.nodes)-1 {
		return fmt.Errorf("%w: %d node specs require %d connecting specs, have %d",
			ErrInvalidPattern, len(p.nodes), len(p.nodes)-1, len(p.links))
	}
	for i, link := range p.links {
		if link.path == nil {
			continue
		}
		if link.path.MinHops < 0 || link.path.MaxHops < link.path.MinHops {
			return fmt.Errorf("%w: segment %d has hop range [%d,%d]",
				ErrInvalidPattern, i, link.path.MinHops, link.path.MaxHops)
		}
	}
	return nil
}

// Match is one complete binding of pattern variables to node IDs.
type Match map[string]string

// MatchSet holds the matches of one pattern search and supports post-hoc
// filtering without re-running the structural search.
type MatchSet struct {
	g       *Graph
	matches []Match
}

// Matches returns the bindings.
func (s *MatchSet) Matches() []Match { return s.matches }

// Len returns the number of matches.
func (s *MatchSet) Len() int { return len(s.matches) }

// FilterValue keeps matches where the node bound to varName has a value
// accepted by pred. Matches that do not bind varName are dropped.
func (s *MatchSet) FilterValue(varName string, pred func(any) bool) *MatchSet {
	return s.filter(func(m Match) bool {
		id, ok := m[varName]
		if !ok {
			return false
		}
		n, ok := s.g.Node(id)
		return ok && pred(n.Value)
	})
}

// FilterProperty keeps matches where the named property of the node bound to
// varName is accepted by pred. Missing bindings or properties drop the match.
func (s *MatchSet) FilterProperty(varName, property string, pred func(any) bool) *MatchSet {
	return s.filter(func(m Match) bool {
		id, ok := m[varName]
		if !ok {
			return false
		}
		v, ok := s.g.NodeProperty(id, property)
		return ok && pred(v)
	})
}

// FilterPair keeps matches where the values bound to two variables satisfy a
// pairwise predicate.
func (s *MatchSet) FilterPair(varA, varB string, pred func(a, b any) bool) *MatchSet {
	return s.filter(func(m Match) bool {
		ida, oka := m[varA]
		idb, okb := m[varB]
		if !oka || !okb {
			return false
		}
		na, oka := s.g.Node(ida)
		nb, okb := s.g.Node(idb)
		return oka && okb && pred(na.Value, nb.Value)
	})
}

func (s *MatchSet) filter(keep func(Match) bool) *MatchSet {
	out := &MatchSet{g: s.g}
	for _, m := range s.matches {
		if keep(m) {
			out.matches = append(out.matches, m)
		}
	}
	return out
}

// MatchPattern runs the backtracking subgraph search. One binding per graph
// node matching the first pattern node seeds the search; fixed-edge and
// variable-length segments extend it, and backtracking removes only the
// bindings it introduced. Recursion depth is bounded by the pattern length,
// not by graph size.
func (g *Graph) MatchPattern(p *Pattern) (*MatchSet, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	set := &MatchSet{g: g}
	m := &matcher{g: g, p: p, set: set}
	first := p.nodes[0]
	for _, id := range g.NodeIDs() {
		if !m.nodeAdmissible(first, id, map[string]string{}) {
			continue
		}
		binding := map[string]string{}
		if first.Var != "" {
			binding[first.Var] = id
		}
		m.extend(0, id, binding)
	}
	return set, nil
}

type matcher struct {
	g   *Graph
	p   *Pattern
	set *MatchSet
}

// extend advances the search from pattern node i, currently anchored at
// graph node cur, with the bindings accumulated so far.
func (m *matcher) extend(i int, cur string, binding map[string]string) {
	if i == len(m.p.links) {
		match := make(Match, len(binding))
		for k, v := range binding {
			match[k] = v
		}
		m.set.matches = append(m.set.matches, match)
		return
	}

	next := m.p.nodes[i+1]
	link := m.p.links[i]

	var candidates []string
	if link.edge != nil {
		candidates = m.edgeCandidates(cur, *link.edge)
	} else {
		candidates = m.pathTerminals(cur, *link.path)
	}

	for _, cand := range candidates {
		if !m.nodeAdmissible(next, cand, binding) {
			continue
		}
		introduced := false
		if next.Var != "" {
			if _, bound := binding[next.Var]; !bound {
				binding[next.Var] = cand
				introduced = true
			}
		}
		m.extend(i+1, cand, binding)
		if introduced {
			delete(binding, next.Var)
		}
	}
}

// nodeAdmissible checks the type constraint and binding consistency: a
// variable already bound must resolve to the same node.
func (m *matcher) nodeAdmissible(spec NodeSpec, id string, binding map[string]string) bool {
	n, ok := m.g.Node(id)
	if !ok {
		return false
	}
	if spec.Type != "" && n.Type != spec.Type {
		return false
	}
	if spec.Var != "" {
		if bound, ok := binding[spec.Var]; ok && bound != id {
			return false
		}
	}
	return true
}

// edgeCandidates enumerates the direction- and type-filtered edges from cur,
// in sorted order.
func (m *matcher) edgeCandidates(cur string, spec EdgeSpec) []string {
	n, ok := m.g.Node(cur)
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	if spec.Direction == DirectionOut || spec.Direction == DirectionBoth {
		for nb, info := range n.neighbors {
			if spec.Type == "" || info.Type == spec.Type {
				seen[nb] = true
			}
		}
	}
	if spec.Direction == DirectionIn || spec.Direction == DirectionBoth {
		for pred, info := range n.predecessors {
			if spec.Type == "" || info.Type == spec.Type {
				seen[pred] = true
			}
		}
	}
	return sortedKeys(seen)
}

// pathTerminals enumerates nodes reachable from cur over admissible-length
// paths via BFS with hop accumulation. The zero-hop "same node" path is
// included when the range admits it. Exploration de-duplicates by
// (node, hop count), never by node alone: a node first reached below MinHops
// must still be reachable as a terminal through a longer admissible path.
// Terminals themselves are de-duplicated: the binding records only the
// endpoint, so one match per terminal suffices.
func (m *matcher) pathTerminals(cur string, spec PathSpec) []string {
	terminals := make(map[string]bool)
	if spec.MinHops == 0 {
		terminals[cur] = true
	}

	type hop struct {
		id   string
		dist int
	}
	seen := map[string]map[int]bool{cur: {0: true}}
	queue := []hop{{id: cur, dist: 0}}
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		if h.dist == spec.MaxHops {
			continue
		}
		for _, nb := range m.edgeCandidates(h.id, EdgeSpec{Type: spec.Type, Direction: spec.Direction}) {
			d := h.dist + 1
			if seen[nb][d] {
				continue
			}
			if seen[nb] == nil {
				seen[nb] = make(map[int]bool)
			}
			seen[nb][d] = true
			if d >= spec.MinHops {
				terminals[nb] = true
			}
			queue = append(queue, hop{id: nb, dist: d})
		}
	}
	return sortedKeys(terminals)
}

package graph

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
)

// defaultIndexThreshold is the number of lookups on one property before an
// index is built for it.
const defaultIndexThreshold = 10

// Graph is the aggregate root: node storage with mirrored adjacency, the
// active rule configuration, and the orphan policy. All structural mutation
// flows through validated entry points; see the package documentation.
type Graph struct {
	graphType GraphType
	config    Config
	nodes     map[string]*Node

	// rulesets holds attached ruleset names in attachment order; adhoc holds
	// independently attached rule instances in attachment order. The active
	// rule list expands rulesets first, then ad hoc rules, de-duplicated by
	// rule name with the first occurrence winning.
	rulesets []string
	adhoc    []RuleInstance

	frozen bool
	logger *slog.Logger

	// cache holds per-property access counters and auto-built indices. It is
	// performance metadata, excluded from Equal and not carried by Clone.
	cache          *sideCache
	indexThreshold int
}

// Option configures a Graph at construction time.
type Option func(*Graph)

// WithConfig sets the orphan-handling configuration.
func WithConfig(c Config) Option {
	return func(g *Graph) { g.config = c }
}

// WithLogger sets a custom logger for rule diagnostics. If not provided, a
// default text logger writing to stderr is created.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) { g.logger = logger }
}

// WithIndexThreshold overrides the lookup count at which a property index is
// built. Values below 1 are ignored.
func WithIndexThreshold(n int) Option {
	return func(g *Graph) {
		if n >= 1 {
			g.indexThreshold = n
		}
	}
}

// WithRuleset attaches a predefined ruleset at construction time. Unknown
// ruleset names panic: construction-time wiring is programmer error, unlike
// runtime attachment via AttachRuleset.
func WithRuleset(name string) Option {
	return func(g *Graph) {
		if err := g.AttachRuleset(name); err != nil {
			panic(fmt.Sprintf("graph: WithRuleset(%q): %v", name, err))
		}
	}
}

// WithRule attaches an ad hoc rule at construction time with the default
// severity and no retroactive inspection (the graph is still empty).
func WithRule(spec RuleSpec) Option {
	return func(g *Graph) {
		g.adhoc = append(g.adhoc, Rule(spec))
	}
}

// New creates an empty graph of the given type.
func New(t GraphType, opts ...Option) *Graph {
	g := &Graph{
		graphType:      t,
		config:         DefaultConfig(),
		nodes:          make(map[string]*Node),
		cache:          newSideCache(),
		indexThreshold: defaultIndexThreshold,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return g
}

// Type returns the graph type.
func (g *Graph) Type() GraphType { return g.graphType }

// Config returns the orphan-handling configuration.
func (g *Graph) Config() Config { return g.config }

// Logger returns the graph's diagnostic logger.
func (g *Graph) Logger() *slog.Logger { return g.logger }

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Value returns the value carried by the node with the given ID.
func (g *Graph) Value(id string) (any, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("value of %q: %w", id, ErrNodeNotFound)
	}
	return n.Value, nil
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// HasEdge reports whether an edge from one node to another exists.
func (g *Graph) HasEdge(from, to string) bool {
	n, ok := g.nodes[from]
	return ok && n.HasNeighbor(to)
}

// Edge returns the EdgeInfo for the edge between two nodes.
func (g *Graph) Edge(from, to string) (*EdgeInfo, error) {
	n, ok := g.nodes[from]
	if !ok {
		return nil, fmt.Errorf("edge %s->%s: %w", from, to, ErrNodeNotFound)
	}
	info := n.EdgeTo(to)
	if info == nil {
		return nil, fmt.Errorf("edge %s->%s: %w", from, to, ErrEdgeNotFound)
	}
	return info, nil
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of logical edges. For undirected graphs each
// mirrored pair counts once.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, n := range g.nodes {
		total += len(n.neighbors)
	}
	if g.graphType == Undirected {
		return total / 2
	}
	return total
}

// NodeIDs returns all node IDs, sorted.
func (g *Graph) NodeIDs() []string {
	return sortedKeys(g.nodes)
}

// GraphEdge names one logical edge in an edge listing.
type GraphEdge struct {
	From string
	To   string
	Info *EdgeInfo
}

// Edges returns every logical edge, sorted by (From, To). For undirected
// graphs each mirrored pair is reported once with From <= To.
func (g *Graph) Edges() []GraphEdge {
	var edges []GraphEdge
	for _, id := range g.NodeIDs() {
		n := g.nodes[id]
		for _, to := range n.Neighbors() {
			if g.graphType == Undirected && to < id {
				continue
			}
			edges = append(edges, GraphEdge{From: id, To: to, Info: n.neighbors[to]})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

// SetNodeProperty sets one property on a node, keeping the property index
// consistent. Fails on frozen graphs and missing nodes.
func (g *Graph) SetNodeProperty(id, key string, value any) error {
	if g.frozen {
		return fmt.Errorf("set property on %q: %w", id, ErrFrozen)
	}
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("set property on %q: %w", id, ErrNodeNotFound)
	}
	n.Properties[key] = value
	g.cache.invalidateProperty(key)
	return nil
}

// SetNodeValue replaces the value carried by a node. Values are semantic
// state, so the write fails on frozen graphs and invalidates the index
// cache.
func (g *Graph) SetNodeValue(id string, value any) error {
	if g.frozen {
		return fmt.Errorf("set value of %q: %w", id, ErrFrozen)
	}
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("set value of %q: %w", id, ErrNodeNotFound)
	}
	n.Value = value
	g.cache.invalidateAll()
	return nil
}

// NodeProperty returns one property of a node and whether it is present.
func (g *Graph) NodeProperty(id, key string) (any, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, false
	}
	v, ok := n.Properties[key]
	return v, ok
}

// Freeze marks the graph read-only. Every subsequent mutation fails with
// ErrFrozen until Unfreeze is called.
func (g *Graph) Freeze() { g.frozen = true }

// Unfreeze re-enables mutation.
func (g *Graph) Unfreeze() { g.frozen = false }

// Frozen reports whether the graph is frozen.
func (g *Graph) Frozen() bool { return g.frozen }

// Clone returns a deep copy of the graph's semantic state. The clone is
// always unfrozen and starts with an empty index cache.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		graphType:      g.graphType,
		config:         g.config,
		nodes:          make(map[string]*Node, len(g.nodes)),
		rulesets:       append([]string(nil), g.rulesets...),
		adhoc:          make([]RuleInstance, len(g.adhoc)),
		logger:         g.logger,
		cache:          newSideCache(),
		indexThreshold: g.indexThreshold,
	}
	for i, inst := range g.adhoc {
		c.adhoc[i] = RuleInstance{Spec: inst.Spec.Clone(), Severity: inst.Severity}
	}
	for id, n := range g.nodes {
		c.nodes[id] = n.clone()
	}
	// Edges are relinked through the shared-EdgeInfo primitives so the
	// mirror invariant holds in the clone.
	for _, e := range g.Edges() {
		info := e.Info.clone()
		c.link(e.From, e.To, info)
		if c.graphType == Undirected && e.From != e.To {
			c.link(e.To, e.From, info)
		}
	}
	return c
}

// Equal compares semantic state: graph type, configuration, frozen flag,
// attached rules, nodes, and edges. The index cache and access counters are
// performance metadata and never participate.
func (g *Graph) Equal(other *Graph) bool {
	if other == nil {
		return false
	}
	if g.graphType != other.graphType || g.config != other.config || g.frozen != other.frozen {
		return false
	}
	if !equalStrings(g.rulesets, other.rulesets) {
		return false
	}
	if len(g.adhoc) != len(other.adhoc) {
		return false
	}
	for i := range g.adhoc {
		if g.adhoc[i].Spec.Name() != other.adhoc[i].Spec.Name() ||
			g.adhoc[i].Severity != other.adhoc[i].Severity {
			return false
		}
	}
	if len(g.nodes) != len(other.nodes) {
		return false
	}
	for id, n := range g.nodes {
		on, ok := other.nodes[id]
		if !ok {
			return false
		}
		if n.Type != on.Type || !valuesEqual(n.Value, on.Value) {
			return false
		}
		if len(n.Properties) != len(on.Properties) {
			return false
		}
		for k, v := range n.Properties {
			ov, ok := on.Properties[k]
			if !ok || !valuesEqual(v, ov) {
				return false
			}
		}
		if len(n.neighbors) != len(on.neighbors) || len(n.predecessors) != len(on.predecessors) {
			return false
		}
		for to, info := range n.neighbors {
			if !info.equal(on.neighbors[to]) {
				return false
			}
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

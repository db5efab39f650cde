package graph

import "fmt"

// GraphType selects directed or undirected edge semantics.
type GraphType int

const (
	// Directed graphs store one adjacency entry per edge direction.
	Directed GraphType = iota

	// Undirected graphs mirror every edge symmetrically on both endpoints.
	Undirected
)

// String returns the string representation of the GraphType.
func (t GraphType) String() string {
	switch t {
	case Directed:
		return "directed"
	case Undirected:
		return "undirected"
	default:
		return fmt.Sprintf("GraphType(%d)", t)
	}
}

// IsValid returns true if the graph type is a valid value.
func (t GraphType) IsValid() bool {
	return t == Directed || t == Undirected
}

// ParseGraphType parses a string into a GraphType value.
func ParseGraphType(s string) (GraphType, error) {
	switch s {
	case "directed":
		return Directed, nil
	case "undirected":
		return Undirected, nil
	default:
		return 0, fmt.Errorf("invalid graph type: %s", s)
	}
}

// OrphanPolicy governs what happens to nodes left with no edges after a
// removal.
type OrphanPolicy int

const (
	// OrphanAllow leaves orphans in place. The default.
	OrphanAllow OrphanPolicy = iota

	// OrphanReject blocks a removal that would create orphans, before any
	// mutation happens.
	OrphanReject

	// OrphanDelete removes all current orphans after the removal, through an
	// internal non-revalidating path.
	OrphanDelete

	// OrphanReconnect reattaches orphans using the configured strategy.
	OrphanReconnect
)

// String returns the string representation of the OrphanPolicy.
func (p OrphanPolicy) String() string {
	switch p {
	case OrphanAllow:
		return "allow"
	case OrphanReject:
		return "reject"
	case OrphanDelete:
		return "delete"
	case OrphanReconnect:
		return "reconnect"
	default:
		return fmt.Sprintf("OrphanPolicy(%d)", p)
	}
}

// IsValid returns true if the policy is a valid value.
func (p OrphanPolicy) IsValid() bool {
	return p >= OrphanAllow && p <= OrphanReconnect
}

// ParseOrphanPolicy parses a string into an OrphanPolicy value.
func ParseOrphanPolicy(s string) (OrphanPolicy, error) {
	switch s {
	case "allow":
		return OrphanAllow, nil
	case "reject":
		return OrphanReject, nil
	case "delete":
		return OrphanDelete, nil
	case "reconnect":
		return OrphanReconnect, nil
	default:
		return 0, fmt.Errorf("invalid orphan policy: %s", s)
	}
}

// AllOrphanPolicies returns all valid orphan policy values.
func AllOrphanPolicies() []OrphanPolicy {
	return []OrphanPolicy{OrphanAllow, OrphanReject, OrphanDelete, OrphanReconnect}
}

// ReconnectStrategy selects how reconnection attaches orphans.
type ReconnectStrategy int

const (
	// ReconnectToRoot attaches every orphan to the unique root node.
	ReconnectToRoot ReconnectStrategy = iota

	// ReconnectToParentSiblings is declared but not implemented; using it is
	// a hard error, never a silent no-op.
	ReconnectToParentSiblings
)

// String returns the string representation of the ReconnectStrategy.
func (s ReconnectStrategy) String() string {
	switch s {
	case ReconnectToRoot:
		return "to_root"
	case ReconnectToParentSiblings:
		return "to_parent_siblings"
	default:
		return fmt.Sprintf("ReconnectStrategy(%d)", s)
	}
}

// IsValid returns true if the strategy is a valid value.
func (s ReconnectStrategy) IsValid() bool {
	return s == ReconnectToRoot || s == ReconnectToParentSiblings
}

// ParseReconnectStrategy parses a string into a ReconnectStrategy value.
func ParseReconnectStrategy(str string) (ReconnectStrategy, error) {
	switch str {
	case "to_root":
		return ReconnectToRoot, nil
	case "to_parent_siblings":
		return ReconnectToParentSiblings, nil
	default:
		return 0, fmt.Errorf("invalid reconnect strategy: %s", str)
	}
}

// Config holds the orphan-handling configuration of a graph.
type Config struct {
	// OrphanPolicy is applied after every node removal.
	OrphanPolicy OrphanPolicy

	// ReconnectStrategy is consulted only when OrphanPolicy is
	// OrphanReconnect.
	ReconnectStrategy ReconnectStrategy

	// AllowOverrides permits a call site to override the orphan policy for a
	// single removal via RemoveNodeWithPolicy.
	AllowOverrides bool
}

// DefaultConfig returns the default configuration: orphans allowed, no
// per-call overrides.
func DefaultConfig() Config {
	return Config{OrphanPolicy: OrphanAllow}
}

// Validate returns an error if the configuration is inconsistent.
func (c Config) Validate() error {
	if !c.OrphanPolicy.IsValid() {
		return fmt.Errorf("invalid orphan policy value: %d", c.OrphanPolicy)
	}
	if c.OrphanPolicy == OrphanReconnect && !c.ReconnectStrategy.IsValid() {
		return fmt.Errorf("orphan policy %q requires a valid reconnect strategy", c.OrphanPolicy)
	}
	return nil
}

package dataset

import "strings"

// Category is a free-form semantic group for a node. It carries no behavior;
// renderers use it for grouping and labels only.
type Category string

// Categories used by the built-in conservation dataset.
const (
	CategoryActivity     Category = "activity"
	CategoryReproduction Category = "reproduction"
	CategoryHabitat      Category = "habitat"
	CategoryTrend        Category = "trend"
	CategoryOutcome      Category = "outcome"
)

// Node is a single box in the flow diagram.
type Node struct {
	ID        int      `json:"id" toml:"id" yaml:"id"`
	Name      string   `json:"name" toml:"name" yaml:"name"`
	Layer     int      `json:"layer" toml:"layer" yaml:"layer"`
	Category  Category `json:"category,omitempty" toml:"category" yaml:"category,omitempty"`
	RiskScore float64  `json:"risk_score" toml:"risk_score" yaml:"risk_score"`
	IsOutcome bool     `json:"is_outcome,omitempty" toml:"is_outcome" yaml:"is_outcome,omitempty"`
	Count     *int     `json:"count,omitempty" toml:"count,omitempty" yaml:"count,omitempty"`
}

// Lines splits the display name into one line per word.
func (n Node) Lines() []string { return strings.Fields(n.Name) }

// HasCount reports whether the node carries a population count.
func (n Node) HasCount() bool { return n.Count != nil }

// detached returns n with its own copy of Count.
func (n Node) detached() Node {
	if n.Count != nil {
		n.Count = IntPtr(*n.Count)
	}
	return n
}

// Link is a weighted directed flow from Source to Target.
type Link struct {
	Source int     `json:"source" toml:"source" yaml:"source"`
	Target int     `json:"target" toml:"target" yaml:"target"`
	Value  float64 `json:"value" toml:"value" yaml:"value"`
}

// IntPtr returns a pointer to v. It is a convenience for building nodes with
// a Count in literals.
func IntPtr(v int) *int { return &v }

package bifparser

import "strings"

// Position tracks a source location for error messages.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset into source
}

// DefaultName is substituted when the source carries no network header.
const DefaultName = "Unnamed network"

// DistKind discriminates the Distribution tagged union.
type DistKind string

const (
	// DistNone means no probability declaration mentioned the variable.
	DistNone DistKind = ""
	// DistTable is an unconditional distribution: a single vector over the
	// variable's domain.
	DistTable DistKind = "table"
	// DistConditional is a CPT: one vector per parent assignment.
	DistConditional DistKind = "conditional"
)

// Distribution holds a variable's probabilities. Kind determines which field
// is populated; exactly one form ever is.
type Distribution struct {
	Kind  DistKind
	Table []float64            // populated when Kind == DistTable
	Rows  map[string][]float64 // populated when Kind == DistConditional, keyed by assignmentKey
}

// assignmentKey canonicalizes an assignment tuple for row lookup. The values
// come from splitting comma-separated lists, so none of them can contain a
// comma and the join is unambiguous.
func assignmentKey(values []string) string {
	return strings.Join(values, ",")
}

// Variable is one discrete random variable of a Network.
type Variable struct {
	Name         string
	Domain       []string // ordered category labels; positions align with probability vectors
	DeclaredSize int      // the bracketed integer from the declaration; carried, not enforced
	Parents      []string // parent names in declaration order, empty for root variables
	Dist         Distribution
}

// Probability returns the probability vector for the given assignment, one
// value per parent in Parents order. For a variable without parents the
// assignment must be empty and the flat table is returned. Returns a
// *LookupError identifying the assignment when no matching row exists.
func (v *Variable) Probability(assignment []string) ([]float64, error) {
	switch v.Dist.Kind {
	case DistTable:
		if len(assignment) == 0 {
			return v.Dist.Table, nil
		}
	case DistConditional:
		// The arity check must come first: row keys are comma-joined, so a
		// caller-supplied value containing a comma could otherwise collide
		// with the key of a longer tuple.
		if len(assignment) != len(v.Parents) {
			break
		}
		if probs, ok := v.Dist.Rows[assignmentKey(assignment)]; ok {
			return probs, nil
		}
	}
	return nil, &LookupError{Variable: v.Name, Assignment: assignment}
}

// Network is the complete parsed representation of a BIF file.
type Network struct {
	Name      string
	Variables []*Variable // all variables in declaration order
}

// VariableByName returns the variable with the given name, or nil if not found.
func (n *Network) VariableByName(name string) *Variable {
	for _, v := range n.Variables {
		if v.Name == name {
			return v
		}
	}
	return nil
}

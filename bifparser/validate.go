package bifparser

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Severity represents the severity level of a validation diagnostic.
type Severity int

const (
	// Error means the network is internally inconsistent.
	Error Severity = iota
	// Warning means the network is usable but under- or over-specified.
	Warning
	// Info is an informational note.
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	case Info:
		return "INFO"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is a single validation finding.
type Diagnostic struct {
	Rule       string   // rule identifier (e.g., "row_sum")
	Severity   Severity // ERROR, WARNING, or INFO
	Message    string   // human-readable description
	Variable   string   // related variable name (optional)
	Assignment []string // related CPT row key (optional)
	Fix        string   // suggested fix (optional)
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", d.Severity, d.Rule, d.Message)
	if d.Variable != "" {
		fmt.Fprintf(&b, " (variable: %s)", d.Variable)
	}
	if len(d.Assignment) > 0 {
		fmt.Fprintf(&b, " (row: %s)", strings.Join(d.Assignment, ", "))
	}
	if d.Fix != "" {
		fmt.Fprintf(&b, " -- fix: %s", d.Fix)
	}
	return b.String()
}

// LintRule is the interface for a single validation rule.
type LintRule interface {
	Name() string
	Apply(n *Network) []Diagnostic
}

// ValidationError is returned by ValidateOrError when error-severity
// diagnostics exist.
type ValidationError struct {
	Diagnostics []Diagnostic
}

func (e *ValidationError) Error() string {
	var msgs []string
	for _, d := range e.Diagnostics {
		msgs = append(msgs, d.String())
	}
	return fmt.Sprintf("validation failed with %d error(s):\n  %s", len(e.Diagnostics), strings.Join(msgs, "\n  "))
}

// Validate runs all built-in rules (and any extra rules) against the
// network. Returns all diagnostics regardless of severity. Parsing never
// runs these checks implicitly; the format does not mandate them.
func Validate(n *Network, extraRules ...LintRule) []Diagnostic {
	rules := builtInRules()
	rules = append(rules, extraRules...)

	var diagnostics []Diagnostic
	for _, rule := range rules {
		diagnostics = append(diagnostics, rule.Apply(n)...)
	}
	return diagnostics
}

// ValidateOrError runs Validate and returns an error if any error-severity
// diagnostics are found. Non-error diagnostics are still returned.
func ValidateOrError(n *Network, extraRules ...LintRule) ([]Diagnostic, error) {
	diagnostics := Validate(n, extraRules...)

	var errors []Diagnostic
	for _, d := range diagnostics {
		if d.Severity == Error {
			errors = append(errors, d)
		}
	}
	if len(errors) > 0 {
		return diagnostics, &ValidationError{Diagnostics: errors}
	}
	return diagnostics, nil
}

// builtInRules returns the standard set of lint rules.
func builtInRules() []LintRule {
	return []LintRule{
		rowSumRule{},
		cptCoverageRule{},
		declaredSizeRule{},
		hasDistributionRule{},
	}
}

// rowSumTolerance is the allowed deviation of a probability vector's sum
// from 1.
const rowSumTolerance = 1e-6

// vectors returns every probability vector of the variable with the row key
// it belongs to (nil for a flat table).
func vectors(v *Variable) map[string][]float64 {
	switch v.Dist.Kind {
	case DistTable:
		return map[string][]float64{"": v.Dist.Table}
	case DistConditional:
		return v.Dist.Rows
	default:
		return nil
	}
}

// row_sum: every probability vector should sum to approximately 1.
type rowSumRule struct{}

func (rowSumRule) Name() string { return "row_sum" }

func (rowSumRule) Apply(n *Network) []Diagnostic {
	var diags []Diagnostic
	for _, v := range n.Variables {
		for key, probs := range vectors(v) {
			sum := 0.0
			for _, p := range probs {
				sum += p
			}
			if math.Abs(sum-1) <= rowSumTolerance {
				continue
			}
			d := Diagnostic{
				Rule:     "row_sum",
				Severity: Warning,
				Message:  fmt.Sprintf("probability vector of %q sums to %g, expected 1", v.Name, sum),
				Variable: v.Name,
				Fix:      "make the probabilities of the vector sum to 1",
			}
			if key != "" {
				d.Assignment = strings.Split(key, ",")
			}
			diags = append(diags, d)
		}
	}
	return diags
}

// cpt_coverage: a CPT should hold exactly one row per combination of parent
// domain values, and no row may use a value outside its parent's domain.
type cptCoverageRule struct{}

func (cptCoverageRule) Name() string { return "cpt_coverage" }

func (cptCoverageRule) Apply(n *Network) []Diagnostic {
	var diags []Diagnostic
	for _, v := range n.Variables {
		if v.Dist.Kind != DistConditional {
			continue
		}

		domains := make([][]string, len(v.Parents))
		resolvable := true
		for i, name := range v.Parents {
			parent := n.VariableByName(name)
			if parent == nil {
				// Cannot happen for a built Network; skip rather than panic
				// on hand-constructed ones.
				resolvable = false
				break
			}
			domains[i] = parent.Domain
		}
		if !resolvable {
			continue
		}

		combos := crossProduct(domains)
		expected := make(map[string]bool, len(combos))
		for _, combo := range combos {
			expected[assignmentKey(combo)] = true
		}

		// Sort foreign rows and walk the cross product for missing ones so
		// diagnostic order is stable run to run.
		var foreign []string
		for key := range v.Dist.Rows {
			if !expected[key] {
				foreign = append(foreign, key)
			}
		}
		sort.Strings(foreign)
		for _, key := range foreign {
			diags = append(diags, Diagnostic{
				Rule:       "cpt_coverage",
				Severity:   Error,
				Message:    fmt.Sprintf("row of %q uses values outside its parents' domains", v.Name),
				Variable:   v.Name,
				Assignment: strings.Split(key, ","),
				Fix:        "use only values from each parent's declared domain, in parent order",
			})
		}
		for _, combo := range combos {
			if _, ok := v.Dist.Rows[assignmentKey(combo)]; ok {
				continue
			}
			diags = append(diags, Diagnostic{
				Rule:       "cpt_coverage",
				Severity:   Warning,
				Message:    fmt.Sprintf("CPT of %q has no row for a parent assignment", v.Name),
				Variable:   v.Name,
				Assignment: combo,
				Fix:        "add a row for the missing assignment",
			})
		}
	}
	return diags
}

// crossProduct enumerates the cartesian product of the given domains, in
// row-major order.
func crossProduct(domains [][]string) [][]string {
	combos := [][]string{nil}
	for _, domain := range domains {
		var next [][]string
		for _, combo := range combos {
			for _, value := range domain {
				extended := make([]string, len(combo), len(combo)+1)
				copy(extended, combo)
				next = append(next, append(extended, value))
			}
		}
		combos = next
	}
	return combos
}

// declared_size: the bracketed integer of a variable declaration should
// match the actual number of domain labels. The grammar carries it but the
// parser does not enforce it.
type declaredSizeRule struct{}

func (declaredSizeRule) Name() string { return "declared_size" }

func (declaredSizeRule) Apply(n *Network) []Diagnostic {
	var diags []Diagnostic
	for _, v := range n.Variables {
		if v.DeclaredSize == len(v.Domain) {
			continue
		}
		diags = append(diags, Diagnostic{
			Rule:     "declared_size",
			Severity: Warning,
			Message:  fmt.Sprintf("variable %q declares size %d but lists %d domain values", v.Name, v.DeclaredSize, len(v.Domain)),
			Variable: v.Name,
			Fix:      "make the bracketed size match the domain list",
		})
	}
	return diags
}

// has_distribution: every variable should receive a table or a CPT from
// some probability declaration.
type hasDistributionRule struct{}

func (hasDistributionRule) Name() string { return "has_distribution" }

func (hasDistributionRule) Apply(n *Network) []Diagnostic {
	var diags []Diagnostic
	for _, v := range n.Variables {
		if v.Dist.Kind != DistNone {
			continue
		}
		diags = append(diags, Diagnostic{
			Rule:     "has_distribution",
			Severity: Warning,
			Message:  fmt.Sprintf("variable %q has no probability declaration", v.Name),
			Variable: v.Name,
			Fix:      "add a probability block for the variable",
		})
	}
	return diags
}

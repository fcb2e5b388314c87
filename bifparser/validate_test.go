package bifparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Network {
	t.Helper()
	net, err := Parse([]byte(src))
	require.NoError(t, err)
	return net
}

func diagnosticsForRule(diags []Diagnostic, rule string) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Rule == rule {
			out = append(out, d)
		}
	}
	return out
}

func TestValidateCleanNetwork(t *testing.T) {
	net := mustParse(t, earthquakeBIF)
	assert.Empty(t, Validate(net))

	diags, err := ValidateOrError(net)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestValidateRowSum(t *testing.T) {
	net := mustParse(t, `network N {}
variable A {
  type discrete [ 2 ] { yes, no };
}
probability ( A ) {
  table 0.5, 0.4;
}
`)
	diags := diagnosticsForRule(Validate(net), "row_sum")
	require.Len(t, diags, 1)
	assert.Equal(t, Warning, diags[0].Severity)
	assert.Equal(t, "A", diags[0].Variable)
	assert.Contains(t, diags[0].Message, "sums to 0.9")
}

func TestValidateCoverageMissingRow(t *testing.T) {
	net := mustParse(t, `network N {}
variable A {
  type discrete [ 2 ] { yes, no };
}
variable B {
  type discrete [ 2 ] { on, off };
}
probability ( B | A ) {
  ( yes ) 0.3, 0.7;
}
`)
	diags := diagnosticsForRule(Validate(net), "cpt_coverage")
	require.Len(t, diags, 1)
	assert.Equal(t, Warning, diags[0].Severity)
	assert.Equal(t, "B", diags[0].Variable)
	assert.Equal(t, []string{"no"}, diags[0].Assignment)
}

func TestValidateCoverageForeignValue(t *testing.T) {
	net := mustParse(t, `network N {}
variable A {
  type discrete [ 2 ] { yes, no };
}
variable B {
  type discrete [ 2 ] { on, off };
}
probability ( B | A ) {
  ( yes ) 0.3, 0.7;
  ( no ) 0.6, 0.4;
  ( maybe ) 0.5, 0.5;
}
`)
	diags := diagnosticsForRule(Validate(net), "cpt_coverage")
	require.Len(t, diags, 1)
	assert.Equal(t, Error, diags[0].Severity)
	assert.Equal(t, []string{"maybe"}, diags[0].Assignment)

	_, err := ValidateOrError(net)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Len(t, valErr.Diagnostics, 1)
	assert.Contains(t, err.Error(), "cpt_coverage")
}

func TestValidateCoverageOrderDeterministic(t *testing.T) {
	net := mustParse(t, `network N {}
variable A {
  type discrete [ 2 ] { yes, no };
}
variable B {
  type discrete [ 2 ] { on, off };
}
probability ( B | A ) {
  ( zzz ) 0.5, 0.5;
  ( maybe ) 0.5, 0.5;
}
`)
	// Foreign rows come first in sorted order, then missing assignments in
	// cross-product order.
	want := [][]string{{"maybe"}, {"zzz"}, {"yes"}, {"no"}}
	for i := 0; i < 5; i++ {
		diags := diagnosticsForRule(Validate(net), "cpt_coverage")
		require.Len(t, diags, 4)
		var got [][]string
		for _, d := range diags {
			got = append(got, d.Assignment)
		}
		assert.Equal(t, want, got)
	}
}

func TestValidateDeclaredSize(t *testing.T) {
	net := mustParse(t, `network N {}
variable A {
  type discrete [ 3 ] { yes, no };
}
`)
	diags := diagnosticsForRule(Validate(net), "declared_size")
	require.Len(t, diags, 1)
	assert.Equal(t, Warning, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "declares size 3 but lists 2")
}

func TestValidateHasDistribution(t *testing.T) {
	net := mustParse(t, `network N {}
variable A {
  type discrete [ 2 ] { yes, no };
}
`)
	diags := diagnosticsForRule(Validate(net), "has_distribution")
	require.Len(t, diags, 1)
	assert.Equal(t, Warning, diags[0].Severity)
	assert.Equal(t, "A", diags[0].Variable)
}

func TestValidateOrErrorPassesOnWarnings(t *testing.T) {
	net := mustParse(t, `network N {}
variable A {
  type discrete [ 2 ] { yes, no };
}
probability ( A ) {
  table 0.5, 0.4;
}
`)
	diags, err := ValidateOrError(net)
	require.NoError(t, err)
	assert.NotEmpty(t, diags)
}

func TestValidateExtraRule(t *testing.T) {
	net := mustParse(t, earthquakeBIF)
	diags := Validate(net, namedNetworkRule{})
	require.Len(t, diags, 0)

	net.Name = DefaultName
	diags = diagnosticsForRule(Validate(net, namedNetworkRule{}), "named_network")
	require.Len(t, diags, 1)
	assert.Equal(t, Info, diags[0].Severity)
}

// namedNetworkRule is a sample custom rule used by the extension test.
type namedNetworkRule struct{}

func (namedNetworkRule) Name() string { return "named_network" }

func (namedNetworkRule) Apply(n *Network) []Diagnostic {
	if n.Name != DefaultName {
		return nil
	}
	return []Diagnostic{{
		Rule:     "named_network",
		Severity: Info,
		Message:  "network has no name in the source",
		Fix:      "add a network header",
	}}
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "ERROR", Error.String())
	assert.Equal(t, "WARNING", Warning.String())
	assert.Equal(t, "INFO", Info.String())
	assert.Equal(t, "Severity(9)", Severity(9).String())
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Rule:       "cpt_coverage",
		Severity:   Warning,
		Message:    "CPT of \"B\" has no row for a parent assignment",
		Variable:   "B",
		Assignment: []string{"no"},
		Fix:        "add a row for the missing assignment",
	}
	s := d.String()
	assert.Contains(t, s, "[WARNING] cpt_coverage:")
	assert.Contains(t, s, "(variable: B)")
	assert.Contains(t, s, "(row: no)")
	assert.Contains(t, s, "fix: add a row")
}

func TestCrossProduct(t *testing.T) {
	combos := crossProduct([][]string{{"a", "b"}, {"x", "y"}})
	assert.Equal(t, [][]string{{"a", "x"}, {"a", "y"}, {"b", "x"}, {"b", "y"}}, combos)

	assert.Equal(t, [][]string{nil}, crossProduct(nil))
}

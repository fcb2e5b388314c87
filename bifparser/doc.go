// Package bifparser implements a reader for the discrete subset of the
// Bayesian-network Interchange Format (BIF).
//
// The reader accepts loosely formatted BIF text: arbitrary blank lines and
// horizontal whitespace between tokens, and case-sensitive keywords
// (network, variable, type, discrete, probability, table). It is structured
// in three layers:
//
//   - Pattern set: a fixed collection of compiled expressions recognizing
//     the four syntactic shapes of the format (header, variable declaration,
//     probability declaration, table/row bodies).
//   - Section extractors: apply the patterns to the full source and pull out
//     textual captures (names, domain lists, raw table bodies).
//   - Builder: converts captures into a Network in three sequential passes
//     (network name, variables, probability tables), resolving parent
//     references by name once every variable exists.
//
// Usage:
//
//	net, err := bifparser.Parse(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v := net.VariableByName("Burglary")
//	probs, err := v.Probability(nil)
//
// Parsing is fail-fast: any structural, reference, or numeric error aborts
// the whole parse and no partial Network is returned. Optional sanity checks
// that the format itself does not mandate (row sums, CPT coverage) live in
// Validate and are never applied implicitly.
package bifparser

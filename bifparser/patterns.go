package bifparser

import "regexp"

// The recognition rules for the four syntactic shapes of the format.
// Compiled once at package init and shared by every parse; all of them are
// read-only, so concurrent parses need no coordination.
var (
	// network <name> { }  — the name may span several tokens, the body must
	// be empty.
	networkPattern = regexp.MustCompile(`(?m)^[ \t]*network\s+([^{]+?)\s*\{\s*\}`)

	// variable <name> { type discrete [ <n> ] { <label>, ... }; }
	// The "discrete" token is optional and the bracketed size is carried but
	// not enforced against the label list.
	variablePattern = regexp.MustCompile(`(?ms)^[ \t]*variable\s+([^\s{]+)\s*\{\s*type\s+(?:discrete\s+)?\[\s*(\d+)\s*\]\s*\{\s*([^{}]+?)\s*\}\s*;\s*\}`)

	// probability ( <var> [| <parent>, ...] ) { <body> }
	probabilityPattern = regexp.MustCompile(`(?ms)^[ \t]*probability\s*\(\s*([^\s|)]+)\s*(?:\|\s*([^)]+?)\s*)?\)\s*\{([^{}]*)\}`)

	// table <p>, ...;  — the whole body of an unconditional block.
	tablePattern = regexp.MustCompile(`\Atable\s+([^;]+?)\s*;\s*\z`)

	// ( <value>, ... ) <p>, ...;  — one CPT row inside a conditional block.
	rowPattern = regexp.MustCompile(`\(\s*([^)]+?)\s*\)\s*([^;()]+?)\s*;`)
)

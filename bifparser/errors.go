package bifparser

import (
	"fmt"
	"strings"
)

// ParseError is the base error type for all bifparser errors.
type ParseError struct {
	Message string
	Pos     Position
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Cause }

// SyntaxError represents a structural error: text that matches none of the
// recognized shapes where one was required (a probability body that is
// neither a table statement nor assignment rows, an empty domain label, a
// row of the wrong arity).
type SyntaxError struct{ ParseError }

// ReferenceError represents an unresolved name: a probability declaration
// targeting an undeclared variable, or a parent list naming one.
type ReferenceError struct {
	ParseError
	Name string
}

// NumberError represents a probability token that is not a valid
// floating-point literal.
type NumberError struct {
	ParseError
	Literal string
}

// LookupError is returned by Variable.Probability when the given assignment
// has no row in the table. It identifies the offending tuple and is a normal
// negative result for callers, not a parse failure.
type LookupError struct {
	Variable   string
	Assignment []string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("key (%s) is not an assignment for variable %q",
		strings.Join(e.Assignment, ", "), e.Variable)
}

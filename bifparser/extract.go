package bifparser

import (
	"fmt"
	"strings"
)

// Section extractors: apply the pattern set to the full source and produce
// textual captures. No numeric or relational interpretation happens here;
// that is the builder's job.

type headerCapture struct {
	name string
	pos  Position
}

type variableCapture struct {
	name   string
	size   string // the bracketed integer, still as text
	domain string // raw comma-separated label list
	pos    Position
}

type probabilityCapture struct {
	variable   string
	parents    string // raw pipe-side parent list, "" when unconditional
	body       string // raw brace interior
	pos        Position
	bodyOffset int // byte offset of body within the source
}

type rowCapture struct {
	assignment string // raw comma-separated parent values
	values     string // raw comma-separated probabilities
	pos        Position
}

// positionAt converts a byte offset into a line/column Position.
func positionAt(src string, offset int) Position {
	line := 1
	col := 1
	for i := 0; i < offset && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Position{Line: line, Column: col, Offset: offset}
}

// extractHeader finds the network header. A missing header is not an error;
// the builder substitutes DefaultName.
func extractHeader(src string) (headerCapture, bool) {
	m := networkPattern.FindStringSubmatchIndex(src)
	if m == nil {
		return headerCapture{}, false
	}
	return headerCapture{
		name: strings.TrimSpace(src[m[2]:m[3]]),
		pos:  positionAt(src, m[0]),
	}, true
}

// extractVariables finds every variable declaration in source order,
// independently of where probability declarations sit.
func extractVariables(src string) []variableCapture {
	var captures []variableCapture
	for _, m := range variablePattern.FindAllStringSubmatchIndex(src, -1) {
		captures = append(captures, variableCapture{
			name:   src[m[2]:m[3]],
			size:   src[m[4]:m[5]],
			domain: src[m[6]:m[7]],
			pos:    positionAt(src, m[0]),
		})
	}
	return captures
}

// extractProbabilities finds every probability declaration in source order.
func extractProbabilities(src string) []probabilityCapture {
	var captures []probabilityCapture
	for _, m := range probabilityPattern.FindAllStringSubmatchIndex(src, -1) {
		c := probabilityCapture{
			variable:   src[m[2]:m[3]],
			body:       src[m[6]:m[7]],
			pos:        positionAt(src, m[0]),
			bodyOffset: m[6],
		}
		if m[4] >= 0 {
			c.parents = src[m[4]:m[5]]
		}
		captures = append(captures, c)
	}
	return captures
}

// extractTable matches the flat-table body form and returns the raw numeric
// list. Reports false when the body is not a single table statement.
func extractTable(body string) (string, bool) {
	m := tablePattern.FindStringSubmatch(strings.TrimSpace(body))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// extractRows matches the per-row body form. Every byte of the body must
// belong to a row or be whitespace: a body with no rows, or with stray text
// between rows, matches neither recognized form and fails loudly.
func extractRows(src, body string, bodyOffset int) ([]rowCapture, error) {
	matches := rowPattern.FindAllStringSubmatchIndex(body, -1)
	if len(matches) == 0 {
		return nil, &SyntaxError{ParseError{
			Message: "probability body matches neither a table statement nor assignment rows",
			Pos:     positionAt(src, bodyOffset),
		}}
	}

	var rows []rowCapture
	prev := 0
	for _, m := range matches {
		if leftover := strings.TrimSpace(body[prev:m[0]]); leftover != "" {
			return nil, &SyntaxError{ParseError{
				Message: fmt.Sprintf("unrecognized text %q in probability body", leftover),
				Pos:     positionAt(src, bodyOffset+prev),
			}}
		}
		rows = append(rows, rowCapture{
			assignment: body[m[2]:m[3]],
			values:     body[m[4]:m[5]],
			pos:        positionAt(src, bodyOffset+m[0]),
		})
		prev = m[1]
	}
	if leftover := strings.TrimSpace(body[prev:]); leftover != "" {
		return nil, &SyntaxError{ParseError{
			Message: fmt.Sprintf("unrecognized text %q in probability body", leftover),
			Pos:     positionAt(src, bodyOffset+prev),
		}}
	}
	return rows, nil
}

// splitList splits a comma-separated capture and trims each element.
// Elements may come back empty; callers decide whether that is an error.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

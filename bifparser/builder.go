package bifparser

import (
	"fmt"
	"math"
	"os"
	"strconv"
)

// Parse parses BIF source text and returns a Network.
// Returns a *SyntaxError, *ReferenceError, or *NumberError on failure; no
// partially-built Network is ever returned.
func Parse(src []byte) (*Network, error) {
	b := &builder{
		src:  string(src),
		net:  &Network{Name: DefaultName},
		vars: make(map[string]*Variable),
	}
	return b.build()
}

// ParseFile reads path and parses its contents.
func ParseFile(path string) (*Network, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(src)
}

type builder struct {
	src  string
	net  *Network
	vars map[string]*Variable // dedup and lookup by name
}

// build runs the three sequential passes. Variables are all declared before
// any probability is resolved, so parent references work regardless of where
// the declarations sit in the text.
func (b *builder) build() (*Network, error) {
	b.buildName()
	if err := b.buildVariables(); err != nil {
		return nil, err
	}
	if err := b.buildProbabilities(); err != nil {
		return nil, err
	}
	return b.net, nil
}

func (b *builder) buildName() {
	if h, ok := extractHeader(b.src); ok {
		b.net.Name = h.name
	}
}

func (b *builder) buildVariables() error {
	for _, c := range extractVariables(b.src) {
		if _, exists := b.vars[c.name]; exists {
			return &SyntaxError{ParseError{
				Message: fmt.Sprintf("duplicate variable declaration %q", c.name),
				Pos:     c.pos,
			}}
		}

		domain := splitList(c.domain)
		for _, label := range domain {
			if label == "" {
				return &SyntaxError{ParseError{
					Message: fmt.Sprintf("variable %q has an empty domain label", c.name),
					Pos:     c.pos,
				}}
			}
		}

		size, err := strconv.Atoi(c.size)
		if err != nil {
			return &NumberError{
				ParseError: ParseError{
					Message: fmt.Sprintf("invalid domain size %q for variable %q: %v", c.size, c.name, err),
					Pos:     c.pos,
					Cause:   err,
				},
				Literal: c.size,
			}
		}

		v := &Variable{Name: c.name, Domain: domain, DeclaredSize: size}
		b.vars[c.name] = v
		b.net.Variables = append(b.net.Variables, v)
	}
	return nil
}

func (b *builder) buildProbabilities() error {
	for _, c := range extractProbabilities(b.src) {
		v, ok := b.vars[c.variable]
		if !ok {
			return &ReferenceError{
				ParseError: ParseError{
					Message: fmt.Sprintf("probability declaration references undeclared variable %q", c.variable),
					Pos:     c.pos,
				},
				Name: c.variable,
			}
		}
		if v.Dist.Kind != DistNone {
			return &SyntaxError{ParseError{
				Message: fmt.Sprintf("duplicate probability declaration for variable %q", c.variable),
				Pos:     c.pos,
			}}
		}

		if c.parents != "" {
			if err := b.buildConditional(v, c); err != nil {
				return err
			}
		} else {
			if err := b.buildTable(v, c); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildTable parses the flat-table form into an unconditional distribution.
func (b *builder) buildTable(v *Variable, c probabilityCapture) error {
	list, ok := extractTable(c.body)
	if !ok {
		return &SyntaxError{ParseError{
			Message: fmt.Sprintf("probability body for %q matches neither a table statement nor assignment rows", v.Name),
			Pos:     c.pos,
		}}
	}
	probs, err := parseProbabilities(list, c.pos)
	if err != nil {
		return err
	}
	if len(probs) != len(v.Domain) {
		return &SyntaxError{ParseError{
			Message: fmt.Sprintf("table for %q has %d probabilities, domain has %d values", v.Name, len(probs), len(v.Domain)),
			Pos:     c.pos,
		}}
	}
	v.Dist = Distribution{Kind: DistTable, Table: probs}
	return nil
}

// buildConditional parses the per-row form into a CPT keyed by parent
// assignment.
func (b *builder) buildConditional(v *Variable, c probabilityCapture) error {
	parents := splitList(c.parents)
	for _, name := range parents {
		if name == "" {
			return &SyntaxError{ParseError{
				Message: fmt.Sprintf("probability declaration for %q has an empty parent name", v.Name),
				Pos:     c.pos,
			}}
		}
		if _, ok := b.vars[name]; !ok {
			return &ReferenceError{
				ParseError: ParseError{
					Message: fmt.Sprintf("probability declaration for %q references undeclared parent %q", v.Name, name),
					Pos:     c.pos,
				},
				Name: name,
			}
		}
	}

	rows, err := extractRows(b.src, c.body, c.bodyOffset)
	if err != nil {
		return err
	}

	cpt := make(map[string][]float64, len(rows))
	for _, row := range rows {
		key := splitList(row.assignment)
		if len(key) != len(parents) {
			return &SyntaxError{ParseError{
				Message: fmt.Sprintf("row (%s) for %q has %d values, %d parents declared", row.assignment, v.Name, len(key), len(parents)),
				Pos:     row.pos,
			}}
		}
		probs, err := parseProbabilities(row.values, row.pos)
		if err != nil {
			return err
		}
		if len(probs) != len(v.Domain) {
			return &SyntaxError{ParseError{
				Message: fmt.Sprintf("row (%s) for %q has %d probabilities, domain has %d values", row.assignment, v.Name, len(probs), len(v.Domain)),
				Pos:     row.pos,
			}}
		}
		k := assignmentKey(key)
		if _, dup := cpt[k]; dup {
			return &SyntaxError{ParseError{
				Message: fmt.Sprintf("duplicate row (%s) for variable %q", row.assignment, v.Name),
				Pos:     row.pos,
			}}
		}
		cpt[k] = probs
	}

	v.Parents = parents
	v.Dist = Distribution{Kind: DistConditional, Rows: cpt}
	return nil
}

// parseProbabilities converts a comma-separated numeric list into a vector.
// Each token must be a finite non-negative float literal.
func parseProbabilities(list string, pos Position) ([]float64, error) {
	tokens := splitList(list)
	probs := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, &NumberError{
				ParseError: ParseError{
					Message: fmt.Sprintf("invalid probability %q: %v", tok, err),
					Pos:     pos,
					Cause:   err,
				},
				Literal: tok,
			}
		}
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return nil, &NumberError{
				ParseError: ParseError{
					Message: fmt.Sprintf("probability %q is not a finite non-negative number", tok),
					Pos:     pos,
				},
				Literal: tok,
			}
		}
		probs = append(probs, f)
	}
	return probs, nil
}

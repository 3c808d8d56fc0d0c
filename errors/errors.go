// Package errors defines the diagnostics produced while scanning, parsing
// and running Lox source.
package errors

import (
	"fmt"
	"strings"
)

// Kind classifies a diagnostic by the phase that produced it.
type Kind int

const (
	// Lexical errors come from the scanner: unterminated strings and
	// unexpected characters.
	Lexical Kind = iota
	// Syntax errors come from the parser.
	Syntax
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Syntax:
		return "syntax"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Diagnostic represents a single lexical or syntax error.
type Diagnostic struct {
	Kind    Kind
	Line    int
	Where   string // " at 'x'", " at end" or empty when no token is involved
	Message string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// Diagnostics is a slice of Diagnostic that implements the error interface.
// This allows returning every error found in a source at once.
type Diagnostics []Diagnostic

func (d Diagnostics) Error() string {
	if len(d) == 0 {
		return ""
	}
	if len(d) == 1 {
		return d[0].Error()
	}
	var b strings.Builder
	for i, diag := range d {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(diag.Error())
	}
	return b.String()
}

// Has reports whether any diagnostic of kind k is present.
func (d Diagnostics) Has(k Kind) bool {
	for _, diag := range d {
		if diag.Kind == k {
			return true
		}
	}
	return false
}

// RuntimeError is raised while evaluating a program. It carries the line and
// lexeme of the token the failing operation was applied at.
type RuntimeError struct {
	Line    int
	Lexeme  string
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Line)
}

// Package environment holds variable bindings.
package environment

import (
	"maps"
	"slices"

	"github.com/KimNorgaard/go-lox/errors"
	"github.com/KimNorgaard/go-lox/internal/token"
	"github.com/KimNorgaard/go-lox/internal/value"
)

// Environment maps variable names to their values.
type Environment struct {
	values map[string]value.Value
}

// New creates an empty environment.
func New() *Environment {
	return &Environment{values: make(map[string]value.Value)}
}

// Define binds name to v. Redefining an existing name overwrites it.
func (e *Environment) Define(name string, v value.Value) {
	e.values[name] = v
}

// Get looks up the variable named by tok. It fails with a runtime error
// pointing at tok when the variable is not defined.
func (e *Environment) Get(tok token.Token) (value.Value, error) {
	if v, ok := e.values[tok.Lexeme]; ok {
		return v, nil
	}
	return nil, &errors.RuntimeError{
		Line:    tok.Line,
		Lexeme:  tok.Lexeme,
		Message: "Undefined variable '" + tok.Lexeme + "'.",
	}
}

// Lookup returns the value bound to name, if any.
func (e *Environment) Lookup(name string) (value.Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Names returns the defined names in sorted order.
func (e *Environment) Names() []string {
	return slices.Sorted(maps.Keys(e.values))
}

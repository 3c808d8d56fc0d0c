// Package interpreter evaluates a parsed program by walking its syntax tree.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/KimNorgaard/go-lox/errors"
	"github.com/KimNorgaard/go-lox/internal/ast"
	"github.com/KimNorgaard/go-lox/internal/environment"
	"github.com/KimNorgaard/go-lox/internal/token"
	"github.com/KimNorgaard/go-lox/internal/value"
)

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput directs the output of print statements to w.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.out = w
	}
}

// WithEnvironment makes the interpreter use env for its global variables.
func WithEnvironment(env *environment.Environment) Option {
	return func(i *Interpreter) {
		i.env = env
	}
}

// Interpreter executes statements against a single global environment.
// The environment outlives each call to Interpret, so successive programs
// see the variables defined by earlier ones.
type Interpreter struct {
	env *environment.Environment
	out io.Writer
}

// New returns an interpreter that prints to standard output.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		env: environment.New(),
		out: os.Stdout,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Environment returns the global environment.
func (i *Interpreter) Environment() *environment.Environment {
	return i.env
}

// Interpret executes statements in order. It stops at the first runtime
// error, which is returned as *errors.RuntimeError; the statements after it
// do not run.
func (i *Interpreter) Interpret(statements []ast.Statement) error {
	for _, stmt := range statements {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execute(stmt ast.Statement) error {
	switch stmt := stmt.(type) {
	case *ast.ExpressionStatement:
		_, err := i.Evaluate(stmt.Expression)
		return err

	case *ast.PrintStatement:
		v, err := i.Evaluate(stmt.Expression)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(i.out, v.String()); err != nil {
			return fmt.Errorf("interpreter: writing output: %w", err)
		}
		return nil

	case *ast.VarStatement:
		var v value.Value = value.Nil{}
		if stmt.Initializer != nil {
			var err error
			if v, err = i.Evaluate(stmt.Initializer); err != nil {
				return err
			}
		}
		i.env.Define(stmt.Name.Lexeme, v)
		return nil
	}
	return fmt.Errorf("interpreter: unsupported statement %T", stmt)
}

// Evaluate computes the value of expr.
func (i *Interpreter) Evaluate(expr ast.Expression) (value.Value, error) {
	switch expr := expr.(type) {
	case *ast.Literal:
		if expr.Value == nil {
			return value.Nil{}, nil
		}
		return expr.Value, nil

	case *ast.Grouping:
		return i.Evaluate(expr.Expression)

	case *ast.Variable:
		return i.env.Get(expr.Name)

	case *ast.Unary:
		return i.evaluateUnary(expr)

	case *ast.Binary:
		return i.evaluateBinary(expr)
	}
	return nil, fmt.Errorf("interpreter: unsupported expression %T", expr)
}

func (i *Interpreter) evaluateUnary(expr *ast.Unary) (value.Value, error) {
	right, err := i.Evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case token.BANG:
		return value.Bool(!value.Truthy(right)), nil
	case token.MINUS:
		n, ok := right.(value.Number)
		if !ok {
			return nil, runtimeError(expr.Operator, "Operand must be a number.")
		}
		return -n, nil
	}
	return nil, fmt.Errorf("interpreter: unsupported unary operator %q", expr.Operator.Lexeme)
}

func (i *Interpreter) evaluateBinary(expr *ast.Binary) (value.Value, error) { //nolint:gocyclo
	left, err := i.Evaluate(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.Evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	op := expr.Operator
	switch op.Type {
	case token.EQUAL_EQUAL:
		return value.Bool(value.Equal(left, right)), nil
	case token.BANG_EQUAL:
		return value.Bool(!value.Equal(left, right)), nil
	case token.PLUS:
		return add(op, left, right)
	}

	l, r, err := numberOperands(op, left, right)
	if err != nil {
		return nil, err
	}

	switch op.Type {
	case token.MINUS:
		return l - r, nil
	case token.STAR:
		return l * r, nil
	case token.SLASH:
		return l / r, nil
	case token.GREATER:
		return value.Bool(l > r), nil
	case token.GREATER_EQUAL:
		return value.Bool(l >= r), nil
	case token.LESS:
		return value.Bool(l < r), nil
	case token.LESS_EQUAL:
		return value.Bool(l <= r), nil
	}
	return nil, fmt.Errorf("interpreter: unsupported binary operator %q", op.Lexeme)
}

// add implements '+': numeric sum or string concatenation. Mixed operands
// are an error, never coerced.
func add(op token.Token, left, right value.Value) (value.Value, error) {
	switch l := left.(type) {
	case value.Number:
		if r, ok := right.(value.Number); ok {
			return l + r, nil
		}
	case value.String:
		if r, ok := right.(value.String); ok {
			return l + r, nil
		}
	}
	return nil, runtimeError(op, "Operands must be two numbers or two strings.")
}

func numberOperands(op token.Token, left, right value.Value) (value.Number, value.Number, error) {
	l, lok := left.(value.Number)
	r, rok := right.(value.Number)
	if !lok || !rok {
		return 0, 0, runtimeError(op, "Operands must be numbers.")
	}
	return l, r, nil
}

func runtimeError(tok token.Token, msg string) *errors.RuntimeError {
	return &errors.RuntimeError{Line: tok.Line, Lexeme: tok.Lexeme, Message: msg}
}

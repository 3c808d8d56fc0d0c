package lox

import (
	"fmt"
	"io"
)

const defaultMaxDepth = 1000

type options struct {
	out         io.Writer
	reporter    Reporter
	traceOut    io.Writer
	traceTokens bool
	printAST    bool
	maxDepth    int
}

// Option configures a Runner.
type Option func(*options) error

// WithOutput returns an Option that directs the output of print
// statements to w. The default is standard output.
func WithOutput(w io.Writer) Option {
	return func(o *options) error {
		if w == nil {
			return fmt.Errorf("lox: output writer must not be nil")
		}
		o.out = w
		return nil
	}
}

// WithReporter returns an Option that sends diagnostics to r instead of
// standard error.
func WithReporter(r Reporter) Option {
	return func(o *options) error {
		if r == nil {
			return fmt.Errorf("lox: reporter must not be nil")
		}
		o.reporter = r
		return nil
	}
}

// WithTraceOutput returns an Option that sets where token traces and AST
// dumps are written. The default is standard output.
func WithTraceOutput(w io.Writer) Option {
	return func(o *options) error {
		if w == nil {
			return fmt.Errorf("lox: trace writer must not be nil")
		}
		o.traceOut = w
		return nil
	}
}

// TraceTokens returns an Option that writes every scanned token, one per
// line, as "TYPE lexeme literal".
func TraceTokens() Option {
	return func(o *options) error {
		o.traceTokens = true
		return nil
	}
}

// PrintAST returns an Option that writes the parsed program in
// parenthesized form before it is run.
func PrintAST() Option {
	return func(o *options) error {
		o.printAST = true
		return nil
	}
}

// MaxDepth returns an Option that limits how deeply expressions may nest.
// Deeper expressions are reported as syntax errors.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("lox: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

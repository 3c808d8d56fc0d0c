package lox

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/KimNorgaard/go-lox/errors"
	"github.com/KimNorgaard/go-lox/internal/interpreter"
	"github.com/KimNorgaard/go-lox/internal/lexer"
	"github.com/KimNorgaard/go-lox/internal/parser"
	"github.com/KimNorgaard/go-lox/internal/printer"
	"github.com/KimNorgaard/go-lox/internal/value"
)

// Runner runs Lox source. Global variables persist across calls to Run,
// which is what an interactive session needs.
type Runner struct {
	opts   options
	interp *interpreter.Interpreter
}

// New returns a Runner configured by opts.
func New(opts ...Option) (*Runner, error) {
	o := options{
		out:      os.Stdout,
		traceOut: os.Stdout,
		maxDepth: defaultMaxDepth,
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	if o.reporter == nil {
		o.reporter = NewStreamReporter(os.Stderr, false)
	}

	return &Runner{
		opts:   o,
		interp: interpreter.New(interpreter.WithOutput(o.out)),
	}, nil
}

// Run scans, parses and executes src.
//
// Every lexical and syntax error is reported and returned together as
// errors.Diagnostics; the program is then not executed. Otherwise the
// statements run in order until the first runtime error, which is reported
// and returned as *errors.RuntimeError.
func (r *Runner) Run(src string) error {
	tokens, diags := lexer.New(src).ScanTokens()

	if r.opts.traceTokens {
		for _, tok := range tokens {
			if _, err := fmt.Fprintln(r.opts.traceOut, tok); err != nil {
				return fmt.Errorf("lox: writing token trace: %w", err)
			}
		}
	}

	p := parser.New(tokens, parser.WithMaxDepth(r.opts.maxDepth))
	program := p.Parse()
	diags = append(diags, p.Errors()...)

	if len(diags) > 0 {
		for _, d := range diags {
			r.opts.reporter.Report(d.Line, d.Where, d.Message)
		}
		return diags
	}

	if r.opts.printAST {
		zero := 0
		if err := printer.New(r.opts.traceOut, &zero).Print(program); err != nil {
			return fmt.Errorf("lox: printing AST: %w", err)
		}
		if len(program.Statements) > 0 {
			if _, err := fmt.Fprintln(r.opts.traceOut); err != nil {
				return fmt.Errorf("lox: printing AST: %w", err)
			}
		}
	}

	err := r.interp.Interpret(program.Statements)
	var rerr *errors.RuntimeError
	if stderrors.As(err, &rerr) {
		r.opts.reporter.ReportRuntime(rerr.Line, rerr.Message)
	}
	return err
}

// Globals returns the global variables defined so far as Go values:
// float64, string, bool or nil.
func (r *Runner) Globals() map[string]any {
	env := r.interp.Environment()
	globals := make(map[string]any)
	for _, name := range env.Names() {
		v, _ := env.Lookup(name)
		globals[name] = value.ToGo(v)
	}
	return globals
}

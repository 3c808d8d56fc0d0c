package printer_test

import (
	"bytes"
	"testing"

	"github.com/KimNorgaard/go-lox/internal/ast"
	"github.com/KimNorgaard/go-lox/internal/lexer"
	"github.com/KimNorgaard/go-lox/internal/parser"
	"github.com/KimNorgaard/go-lox/internal/printer"
	"github.com/stretchr/testify/require"
)

// Centralized test cases to be used across different indent settings.
var testCases = []struct {
	name             string
	input            string
	expectedCompact  string
	expectedIndented string // 2 spaces
}{
	{
		name:             "Literal",
		input:            "print 45.67;",
		expectedCompact:  "(print 45.67)",
		expectedIndented: "(print 45.67)",
	},
	{
		name:             "String",
		input:            `"hi";`,
		expectedCompact:  `(; "hi")`,
		expectedIndented: `(; "hi")`,
	},
	{
		name:             "Nested operations",
		input:            "-123 * (45.67);",
		expectedCompact:  "(; (* (- 123) (group 45.67)))",
		expectedIndented: "(;\n  (*\n    (- 123)\n    (group 45.67)))",
	},
	{
		name:             "Mixed operands",
		input:            "print 1 + 2 * x;",
		expectedCompact:  "(print (+ 1 (* 2 x)))",
		expectedIndented: "(print\n  (+ 1\n    (* 2 x)))",
	},
	{
		name:             "Declarations",
		input:            "var a; var b = nil; var c = !true;",
		expectedCompact:  "(var a)\n(var b = nil)\n(var c = (! true))",
		expectedIndented: "(var a)\n(var b = nil)\n(var c =\n  (! true))",
	},
}

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	tokens, lexErrs := lexer.New(input).ScanTokens()
	require.Empty(t, lexErrs)
	p := parser.New(tokens)
	program := p.Parse()
	require.Empty(t, p.Errors())
	return program
}

func TestPrintCompact(t *testing.T) {
	zero := 0
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := printer.New(&buf, &zero).Print(parse(t, tc.input))
			require.NoError(t, err)
			require.Equal(t, tc.expectedCompact, buf.String())
		})
	}
}

func TestPrintIndented(t *testing.T) {
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := printer.New(&buf, nil).Print(parse(t, tc.input))
			require.NoError(t, err)
			require.Equal(t, tc.expectedIndented, buf.String())
		})
	}
}

func TestCompactMatchesString(t *testing.T) {
	zero := 0
	for _, tc := range testCases {
		program := parse(t, tc.input)
		var buf bytes.Buffer
		require.NoError(t, printer.New(&buf, &zero).Print(program))
		require.Equal(t, program.String(), buf.String())
	}
}

func TestUnsupportedNode(t *testing.T) {
	var buf bytes.Buffer
	err := printer.New(&buf, nil).Print(nil)
	require.Error(t, err)
}

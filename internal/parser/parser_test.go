package parser_test

import (
	"strings"
	"testing"

	"github.com/KimNorgaard/go-lox/errors"
	"github.com/KimNorgaard/go-lox/internal/ast"
	"github.com/KimNorgaard/go-lox/internal/lexer"
	"github.com/KimNorgaard/go-lox/internal/parser"
	"github.com/KimNorgaard/go-lox/internal/token"
	"github.com/KimNorgaard/go-lox/internal/value"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string, opts ...parser.Option) (*ast.Program, errors.Diagnostics) {
	t.Helper()
	tokens, lexErrs := lexer.New(input).ScanTokens()
	require.Empty(t, lexErrs, "lexer has errors")
	p := parser.New(tokens, opts...)
	return p.Parse(), p.Errors()
}

func parseExpression(t *testing.T, input string) ast.Expression {
	t.Helper()
	program, errs := parse(t, input+";")
	require.Empty(t, errs, "parser has errors")
	require.Len(t, program.Statements, 1, "program.Statements does not contain 1 statement")

	stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
	require.True(t, ok, "program.Statements[0] is not *ast.ExpressionStatement, got=%T", program.Statements[0])
	return stmt.Expression
}

func TestLiteralExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected value.Value
	}{
		{"5", value.Number(5)},
		{"1.23", value.Number(1.23)},
		{"true", value.Bool(true)},
		{"false", value.Bool(false)},
		{"nil", value.Nil{}},
		{`"hello world"`, value.String("hello world")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			exp := parseExpression(t, tt.input)
			lit, ok := exp.(*ast.Literal)
			require.True(t, ok, "exp not *ast.Literal, got=%T", exp)
			require.Equal(t, tt.expected, lit.Value)
		})
	}
}

func TestVariableExpression(t *testing.T) {
	exp := parseExpression(t, "foobar")
	v, ok := exp.(*ast.Variable)
	require.True(t, ok, "exp not *ast.Variable, got=%T", exp)
	require.Equal(t, "foobar", v.Name.Lexeme)
	require.Equal(t, token.IDENTIFIER, v.Name.Type)
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"(1 + 2) * 3", "(* (group (+ 1 2)) 3)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"8 / 4 / 2", "(/ (/ 8 4) 2)"},
		{"-1 * 2", "(* (- 1) 2)"},
		{"!!true", "(! (! true))"},
		{"- -x", "(- (- x))"},
		{"1 < 2 == 3 >= 4", "(== (< 1 2) (>= 3 4))"},
		{"a != b == c", "(== (!= a b) c)"},
		{"1 + 2 > 3 - 4", "(> (+ 1 2) (- 3 4))"},
		{"-123 * (45.67)", "(* (- 123) (group 45.67))"},
		{`"a" + "b"`, `(+ "a" "b")`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, parseExpression(t, tt.input).String())
		})
	}
}

func TestBinaryStructure(t *testing.T) {
	exp := parseExpression(t, "1 + 2 * 3")

	sum, ok := exp.(*ast.Binary)
	require.True(t, ok, "exp not *ast.Binary, got=%T", exp)
	require.Equal(t, token.PLUS, sum.Operator.Type)

	product, ok := sum.Right.(*ast.Binary)
	require.True(t, ok, "sum.Right not *ast.Binary, got=%T", sum.Right)
	require.Equal(t, token.STAR, product.Operator.Type)
}

func TestStatements(t *testing.T) {
	input := `var a = 1;
var b;
print a + b;
a;`

	program, errs := parse(t, input)
	require.Empty(t, errs)
	require.Len(t, program.Statements, 4)

	decl, ok := program.Statements[0].(*ast.VarStatement)
	require.True(t, ok, "statement 0 not *ast.VarStatement, got=%T", program.Statements[0])
	require.Equal(t, "a", decl.Name.Lexeme)
	require.NotNil(t, decl.Initializer)

	decl, ok = program.Statements[1].(*ast.VarStatement)
	require.True(t, ok, "statement 1 not *ast.VarStatement, got=%T", program.Statements[1])
	require.Equal(t, "b", decl.Name.Lexeme)
	require.Nil(t, decl.Initializer, "omitted initializer must stay nil")

	printStmt, ok := program.Statements[2].(*ast.PrintStatement)
	require.True(t, ok, "statement 2 not *ast.PrintStatement, got=%T", program.Statements[2])
	require.Equal(t, "(+ a b)", printStmt.Expression.String())

	expr, ok := program.Statements[3].(*ast.ExpressionStatement)
	require.True(t, ok, "statement 3 not *ast.ExpressionStatement, got=%T", program.Statements[3])
	require.Equal(t, "a", expr.Token.Lexeme)

	require.Equal(t, "(var a = 1)\n(var b)\n(print (+ a b))\n(; a)", program.String())
}

func TestEmptyProgram(t *testing.T) {
	program, errs := parse(t, "  // nothing here\n")
	require.Empty(t, errs)
	require.Empty(t, program.Statements)
}

func TestMissingEOFIsSupplied(t *testing.T) {
	p := parser.New([]token.Token{
		{Type: token.PRINT, Lexeme: "print", Line: 1},
		{Type: token.NUMBER, Lexeme: "1", Literal: value.Number(1), Line: 1},
		{Type: token.SEMICOLON, Lexeme: ";", Line: 1},
	})
	program := p.Parse()
	require.Empty(t, p.Errors())
	require.Len(t, program.Statements, 1)

	p = parser.New(nil)
	require.Empty(t, p.Parse().Statements)
	require.Empty(t, p.Errors())
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected errors.Diagnostics
	}{
		{
			"print ;",
			errors.Diagnostics{{Kind: errors.Syntax, Line: 1, Where: " at ';'", Message: "Expected expression"}},
		},
		{
			"(1 + 2;",
			errors.Diagnostics{{Kind: errors.Syntax, Line: 1, Where: " at ';'", Message: "Expected a ')' after expression"}},
		},
		{
			"print 1",
			errors.Diagnostics{{Kind: errors.Syntax, Line: 1, Where: " at end", Message: "Expected ';' after value"}},
		},
		{
			"1 + 2",
			errors.Diagnostics{{Kind: errors.Syntax, Line: 1, Where: " at end", Message: "Expected ';' after expression"}},
		},
		{
			"var = 3;",
			errors.Diagnostics{{Kind: errors.Syntax, Line: 1, Where: " at '='", Message: "Expected variable name"}},
		},
		{
			"var x = 3",
			errors.Diagnostics{{Kind: errors.Syntax, Line: 1, Where: " at end", Message: "Expected ';' after variable declaration"}},
		},
		{
			"1 +;",
			errors.Diagnostics{{Kind: errors.Syntax, Line: 1, Where: " at ';'", Message: "Expected expression"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, errs := parse(t, tt.input)
			require.Equal(t, tt.expected, errs)
		})
	}
}

func TestSynchronizeReportsIndependentErrors(t *testing.T) {
	input := `print ;
var ok = 1;
var = 2;
print ok
var after = 3;
print )`

	program, errs := parse(t, input)

	require.Equal(t, errors.Diagnostics{
		{Kind: errors.Syntax, Line: 1, Where: " at ';'", Message: "Expected expression"},
		{Kind: errors.Syntax, Line: 3, Where: " at '='", Message: "Expected variable name"},
		{Kind: errors.Syntax, Line: 5, Where: " at 'var'", Message: "Expected ';' after value"},
		{Kind: errors.Syntax, Line: 6, Where: " at ')'", Message: "Expected expression"},
	}, errs)

	// Recovery skips past the token that caused the error, so the
	// declaration following the unterminated print is dropped as well.
	require.Equal(t, "(var ok = 1)", program.String())
}

func TestMaxDepth(t *testing.T) {
	input := strings.Repeat("(", 20) + "1" + strings.Repeat(")", 20) + ";"

	_, errs := parse(t, input, parser.WithMaxDepth(10))
	require.Len(t, errs, 1)
	require.Equal(t, "Expression nesting too deep", errs[0].Message)

	_, errs = parse(t, input, parser.WithMaxDepth(50))
	require.Empty(t, errs)

	_, errs = parse(t, strings.Repeat("-", 20)+"1;", parser.WithMaxDepth(10))
	require.Len(t, errs, 1)
}

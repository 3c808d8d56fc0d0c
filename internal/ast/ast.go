package ast

import (
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-lox/internal/token"
	"github.com/KimNorgaard/go-lox/internal/value"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// TokenLexeme returns the lexeme of the token associated with the node.
	TokenLexeme() string
	// String returns the parenthesized prefix form of the node.
	String() string
}

// Statement is a node that represents a statement. The implementations in
// this package are the only statements.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that represents an expression. The implementations
// in this package are the only expressions.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node: statements in execution order.
type Program struct {
	Statements []Statement
}

// TokenLexeme returns the lexeme of the token associated with the node.
func (p *Program) TokenLexeme() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLexeme()
	}
	return ""
}

// String returns one line per statement.
func (p *Program) String() string {
	lines := make([]string, 0, len(p.Statements))
	for _, s := range p.Statements {
		lines = append(lines, s.String())
	}
	return strings.Join(lines, "\n")
}

// ExpressionStatement evaluates an expression and discards the result.
type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()      {}
func (es *ExpressionStatement) TokenLexeme() string { return es.Token.Lexeme }
func (es *ExpressionStatement) String() string      { return parenthesize(";", es.Expression) }

// PrintStatement evaluates an expression and prints its value.
type PrintStatement struct {
	Token      token.Token // the 'print' token
	Expression Expression
}

func (ps *PrintStatement) statementNode()      {}
func (ps *PrintStatement) TokenLexeme() string { return ps.Token.Lexeme }
func (ps *PrintStatement) String() string      { return parenthesize("print", ps.Expression) }

// VarStatement declares a global variable. Initializer is nil when the
// declaration has none, in which case the variable starts out as nil.
type VarStatement struct {
	Token       token.Token // the 'var' token
	Name        token.Token
	Initializer Expression
}

func (vs *VarStatement) statementNode()      {}
func (vs *VarStatement) TokenLexeme() string { return vs.Token.Lexeme }
func (vs *VarStatement) String() string {
	if vs.Initializer == nil {
		return "(var " + vs.Name.Lexeme + ")"
	}
	return "(var " + vs.Name.Lexeme + " = " + vs.Initializer.String() + ")"
}

// Literal is a constant: number, string, boolean or nil.
type Literal struct {
	Token token.Token
	Value value.Value
}

func (l *Literal) expressionNode()     {}
func (l *Literal) TokenLexeme() string { return l.Token.Lexeme }
func (l *Literal) String() string {
	switch v := l.Value.(type) {
	case value.String:
		return strconv.Quote(string(v))
	case nil:
		return "nil"
	default:
		return v.String()
	}
}

// Grouping is a parenthesized expression.
type Grouping struct {
	Token      token.Token // the '(' token
	Expression Expression
}

func (g *Grouping) expressionNode()     {}
func (g *Grouping) TokenLexeme() string { return g.Token.Lexeme }
func (g *Grouping) String() string      { return parenthesize("group", g.Expression) }

// Unary is a prefix operator applied to one operand.
type Unary struct {
	Operator token.Token // '!' or '-'
	Right    Expression
}

func (u *Unary) expressionNode()     {}
func (u *Unary) TokenLexeme() string { return u.Operator.Lexeme }
func (u *Unary) String() string      { return parenthesize(u.Operator.Lexeme, u.Right) }

// Binary is an infix operator applied to two operands.
type Binary struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (b *Binary) expressionNode()     {}
func (b *Binary) TokenLexeme() string { return b.Operator.Lexeme }
func (b *Binary) String() string      { return parenthesize(b.Operator.Lexeme, b.Left, b.Right) }

// Variable is a reference to a declared variable.
type Variable struct {
	Name token.Token
}

func (v *Variable) expressionNode()     {}
func (v *Variable) TokenLexeme() string { return v.Name.Lexeme }
func (v *Variable) String() string      { return v.Name.Lexeme }

func parenthesize(name string, exprs ...Expression) string {
	var out strings.Builder
	out.WriteString("(")
	out.WriteString(name)
	for _, e := range exprs {
		out.WriteString(" ")
		out.WriteString(e.String())
	}
	out.WriteString(")")
	return out.String()
}

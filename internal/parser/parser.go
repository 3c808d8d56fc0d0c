package parser

import (
	"slices"

	"github.com/KimNorgaard/go-lox/errors"
	"github.com/KimNorgaard/go-lox/internal/ast"
	"github.com/KimNorgaard/go-lox/internal/token"
	"github.com/KimNorgaard/go-lox/internal/value"
)

const defaultMaxDepth = 1000

type prefixParseFn func() (ast.Expression, error)

// parseError is a syntax error at a specific token.
type parseError struct {
	tok token.Token
	msg string
}

func (e *parseError) Error() string { return e.msg }

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth limits how deeply expressions may nest. Deeper input is
// reported as a syntax error instead of exhausting the stack.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// Parser holds the state of the parser.
type Parser struct {
	tokens  []token.Token
	current int
	errors  errors.Diagnostics

	depth    int
	maxDepth int

	prefixParseFns map[token.Type]prefixParseFn
}

// New creates a new parser over tokens as produced by the lexer. A missing
// trailing EOF token is supplied.
func New(tokens []token.Token, opts ...Option) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(slices.Clip(tokens), token.Token{Type: token.EOF, Line: line})
	}

	p := &Parser{
		tokens:   tokens,
		maxDepth: defaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.prefixParseFns = make(map[token.Type]prefixParseFn)
	p.registerPrefix(token.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(token.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(token.NIL, p.parseNilLiteral)
	p.registerPrefix(token.NUMBER, p.parseLiteral)
	p.registerPrefix(token.STRING, p.parseLiteral)
	p.registerPrefix(token.IDENTIFIER, p.parseVariable)
	p.registerPrefix(token.LEFT_PAREN, p.parseGrouping)

	return p
}

// Errors returns the syntax errors encountered during parsing.
func (p *Parser) Errors() errors.Diagnostics {
	return p.errors
}

// Parse parses the whole token sequence into a program. A statement with a
// syntax error is dropped; parsing resumes at the next statement boundary
// so that independent errors are all reported.
func (p *Parser) Parse() *ast.Program {
	program := &ast.Program{Statements: []ast.Statement{}}

	for !p.atEnd() {
		stmt, err := p.parseDeclaration()
		if err != nil {
			p.recordError(err)
			p.synchronize()
			continue
		}
		program.Statements = append(program.Statements, stmt)
	}

	return program
}

func (p *Parser) parseDeclaration() (ast.Statement, error) {
	if p.match(token.VAR) {
		return p.parseVarDeclaration()
	}
	return p.parseStatement()
}

func (p *Parser) parseVarDeclaration() (ast.Statement, error) {
	stmt := &ast.VarStatement{Token: p.previous()}

	name, err := p.consume(token.IDENTIFIER, "Expected variable name")
	if err != nil {
		return nil, err
	}
	stmt.Name = name

	if p.match(token.EQUAL) {
		if stmt.Initializer, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.SEMICOLON, "Expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	if p.match(token.PRINT) {
		return p.parsePrintStatement()
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parsePrintStatement() (ast.Statement, error) {
	stmt := &ast.PrintStatement{Token: p.previous()}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Expression = expr

	if _, err := p.consume(token.SEMICOLON, "Expected ';' after value"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	stmt := &ast.ExpressionStatement{Token: p.peek()}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Expression = expr

	if _, err := p.consume(token.SEMICOLON, "Expected ';' after expression"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// The binary levels below bind progressively tighter:
// equality, comparison, term, factor. Each is left-associative.

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseEquality()
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	return p.parseBinary(p.parseComparison, token.BANG_EQUAL, token.EQUAL_EQUAL)
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	return p.parseBinary(p.parseTerm, token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL)
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	return p.parseBinary(p.parseFactor, token.MINUS, token.PLUS)
}

func (p *Parser) parseFactor() (ast.Expression, error) {
	return p.parseBinary(p.parseUnary, token.SLASH, token.STAR)
}

func (p *Parser) parseBinary(operand func() (ast.Expression, error), operators ...token.Type) (ast.Expression, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}

	for p.match(operators...) {
		op := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if !p.match(token.BANG, token.MINUS) {
		return p.parsePrimary()
	}

	op := p.previous()
	if err := p.enter(op); err != nil {
		return nil, err
	}
	defer p.leave()

	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Operator: op, Right: right}, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	prefix := p.prefixParseFns[p.peek().Type]
	if prefix == nil {
		return nil, p.errorAt(p.peek(), "Expected expression")
	}
	return prefix()
}

// The contract for all prefix parse functions is that they are entered with
// p.peek() being the first token of the construct, and they must return with
// p.peek() pointing to the token *after* the construct.

func (p *Parser) parseBooleanLiteral() (ast.Expression, error) {
	tok := p.advance()
	return &ast.Literal{Token: tok, Value: value.Bool(tok.Type == token.TRUE)}, nil
}

func (p *Parser) parseNilLiteral() (ast.Expression, error) {
	return &ast.Literal{Token: p.advance(), Value: value.Nil{}}, nil
}

func (p *Parser) parseLiteral() (ast.Expression, error) {
	tok := p.advance()
	return &ast.Literal{Token: tok, Value: tok.Literal}, nil
}

func (p *Parser) parseVariable() (ast.Expression, error) {
	return &ast.Variable{Name: p.advance()}, nil
}

func (p *Parser) parseGrouping() (ast.Expression, error) {
	tok := p.advance() // Consume '('
	if err := p.enter(tok); err != nil {
		return nil, err
	}
	defer p.leave()

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RIGHT_PAREN, "Expected a ')' after expression"); err != nil {
		return nil, err
	}
	return &ast.Grouping{Token: tok, Expression: expr}, nil
}

func (p *Parser) enter(tok token.Token) error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.errorAt(tok, "Expression nesting too deep")
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// synchronize discards tokens until it reaches a statement boundary: just
// past a ';' or at a keyword that starts a statement.
func (p *Parser) synchronize() {
	p.depth = 0
	p.advance()

	for !p.atEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}
		if token.IsStatementStart(p.peek().Type) {
			return
		}
		p.advance()
	}
}

func (p *Parser) recordError(err error) {
	perr, ok := err.(*parseError)
	if !ok {
		p.errors = append(p.errors, errors.Diagnostic{Kind: errors.Syntax, Line: p.peek().Line, Message: err.Error()})
		return
	}

	where := " at '" + perr.tok.Lexeme + "'"
	if perr.tok.Type == token.EOF {
		where = " at end"
	}
	p.errors = append(p.errors, errors.Diagnostic{
		Kind:    errors.Syntax,
		Line:    perr.tok.Line,
		Where:   where,
		Message: perr.msg,
	})
}

func (p *Parser) errorAt(tok token.Token, msg string) error {
	return &parseError{tok: tok, msg: msg}
}

func (p *Parser) consume(t token.Type, msg string) (token.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorAt(p.peek(), msg)
}

func (p *Parser) match(types ...token.Type) bool {
	if slices.ContainsFunc(types, p.check) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) check(t token.Type) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) atEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

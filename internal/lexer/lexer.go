package lexer

import (
	"strconv"
	"unicode/utf8"

	"github.com/KimNorgaard/go-lox/errors"
	"github.com/KimNorgaard/go-lox/internal/token"
	"github.com/KimNorgaard/go-lox/internal/value"
)

// Lexer holds the state for tokenizing Lox source.
type Lexer struct {
	input   string
	start   int // offset of the first byte of the lexeme being scanned
	current int // offset of the next unread byte
	line    int
	errors  errors.Diagnostics
}

// New creates and returns a new Lexer.
func New(input string) *Lexer {
	return &Lexer{input: input, line: 1}
}

// Errors returns the lexical errors encountered so far.
func (l *Lexer) Errors() errors.Diagnostics {
	return l.errors
}

// ScanTokens scans the whole input and returns its tokens, always terminated
// by a single EOF token, together with every lexical error found.
func (l *Lexer) ScanTokens() ([]token.Token, errors.Diagnostics) {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, l.errors
		}
	}
}

// NextToken scans the input and returns the next token. Characters that do
// not start a token are recorded as errors and skipped, so scanning always
// continues. Once the input is exhausted every call returns EOF.
func (l *Lexer) NextToken() token.Token { //nolint:gocognit
	for {
		l.start = l.current
		if l.atEnd() {
			return token.Token{Type: token.EOF, Lexeme: "", Line: l.line}
		}

		ch := l.advance()
		switch ch {
		case '(':
			return l.makeToken(token.LEFT_PAREN)
		case ')':
			return l.makeToken(token.RIGHT_PAREN)
		case '{':
			return l.makeToken(token.LEFT_BRACE)
		case '}':
			return l.makeToken(token.RIGHT_BRACE)
		case ',':
			return l.makeToken(token.COMMA)
		case '.':
			return l.makeToken(token.DOT)
		case '-':
			return l.makeToken(token.MINUS)
		case '+':
			return l.makeToken(token.PLUS)
		case ';':
			return l.makeToken(token.SEMICOLON)
		case '*':
			return l.makeToken(token.STAR)
		case '!':
			return l.makeToken(l.either('=', token.BANG_EQUAL, token.BANG))
		case '=':
			return l.makeToken(l.either('=', token.EQUAL_EQUAL, token.EQUAL))
		case '<':
			return l.makeToken(l.either('=', token.LESS_EQUAL, token.LESS))
		case '>':
			return l.makeToken(l.either('=', token.GREATER_EQUAL, token.GREATER))
		case '/':
			if l.match('/') {
				l.skipComment()
				continue
			}
			return l.makeToken(token.SLASH)
		case ' ', '\t', '\r', '\n':
			continue
		case '"':
			if tok, ok := l.readString(); ok {
				return tok
			}
			continue
		default:
			if isDigit(ch) {
				return l.readNumber()
			}
			if isAlpha(ch) {
				return l.readIdentifier()
			}
			l.error("Unexpected character.")
		}
	}
}

func (l *Lexer) atEnd() bool {
	return l.current >= len(l.input)
}

// advance consumes the next rune and returns it. Invalid UTF-8 is consumed
// one byte at a time as utf8.RuneError.
func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.input[l.current:])
	l.current += size
	if r == '\n' {
		l.line++
	}
	return r
}

func (l *Lexer) match(expected rune) bool {
	if l.peekRune() != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) either(next rune, combined, single token.Type) token.Type {
	if l.match(next) {
		return combined
	}
	return single
}

func (l *Lexer) peekRune() rune {
	if l.atEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.current:])
	return r
}

func (l *Lexer) peekNextRune() rune {
	if l.atEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.input[l.current:])
	if l.current+size >= len(l.input) { // Not enough bytes for a second rune.
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.current+size:])
	return r
}

func (l *Lexer) makeToken(typ token.Type) token.Token {
	return token.Token{Type: typ, Lexeme: l.input[l.start:l.current], Line: l.line}
}

func (l *Lexer) makeLiteral(typ token.Type, lit value.Value) token.Token {
	tok := l.makeToken(typ)
	tok.Literal = lit
	return tok
}

func (l *Lexer) error(msg string) {
	l.errors = append(l.errors, errors.Diagnostic{Kind: errors.Lexical, Line: l.line, Message: msg})
}

func (l *Lexer) skipComment() {
	for !l.atEnd() && l.peekRune() != '\n' {
		l.advance()
	}
}

// readString scans a string literal whose opening quote has been consumed.
// Strings may span lines. An unterminated string is reported and produces
// no token.
func (l *Lexer) readString() (token.Token, bool) {
	for !l.atEnd() && l.peekRune() != '"' {
		l.advance()
	}
	if l.atEnd() {
		l.error("Unterminated string.")
		return token.Token{}, false
	}
	l.advance() // consume closing quote

	// The literal excludes the surrounding quotes.
	lit := l.input[l.start+1 : l.current-1]
	return l.makeLiteral(token.STRING, value.String(lit)), true
}

// readNumber scans digits with an optional fractional part. A '.' is only
// part of the number when a digit follows it.
func (l *Lexer) readNumber() token.Token {
	for isDigit(l.peekRune()) {
		l.advance()
	}
	if l.peekRune() == '.' && isDigit(l.peekNextRune()) {
		l.advance() // consume '.'
		for isDigit(l.peekRune()) {
			l.advance()
		}
	}

	// Literals beyond the float64 range parse to +Inf.
	n, _ := strconv.ParseFloat(l.input[l.start:l.current], 64)
	return l.makeLiteral(token.NUMBER, value.Number(n))
}

func (l *Lexer) readIdentifier() token.Token {
	for isIdentifierChar(l.peekRune()) {
		l.advance()
	}
	return l.makeToken(token.LookupIdent(l.input[l.start:l.current]))
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isAlpha(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isIdentifierChar(ch rune) bool {
	return isAlpha(ch) || isDigit(ch)
}

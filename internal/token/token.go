package token

import (
	"fmt"

	"github.com/KimNorgaard/go-lox/internal/value"
)

// Type is the type of a token.
type Type string

// Token represents a lexical token.
type Token struct {
	Type    Type
	Lexeme  string      // the exact source text the token was scanned from
	Literal value.Value // set for NUMBER and STRING tokens only
	Line    int
}

const (
	EOF Type = "EOF" // End of file

	// Single-character punctuation
	LEFT_PAREN  Type = "LEFT_PAREN"
	RIGHT_PAREN Type = "RIGHT_PAREN"
	LEFT_BRACE  Type = "LEFT_BRACE"
	RIGHT_BRACE Type = "RIGHT_BRACE"
	COMMA       Type = "COMMA"
	DOT         Type = "DOT"
	MINUS       Type = "MINUS"
	PLUS        Type = "PLUS"
	SEMICOLON   Type = "SEMICOLON"
	SLASH       Type = "SLASH"
	STAR        Type = "STAR"

	// One or two character operators
	BANG          Type = "BANG"
	BANG_EQUAL    Type = "BANG_EQUAL"
	EQUAL         Type = "EQUAL"
	EQUAL_EQUAL   Type = "EQUAL_EQUAL"
	GREATER       Type = "GREATER"
	GREATER_EQUAL Type = "GREATER_EQUAL"
	LESS          Type = "LESS"
	LESS_EQUAL    Type = "LESS_EQUAL"

	// Literals
	IDENTIFIER Type = "IDENTIFIER" // a, name, _tmp
	STRING     Type = "STRING"     // "hello world"
	NUMBER     Type = "NUMBER"     // 123, 45.67

	// Keywords
	AND    Type = "AND"
	CLASS  Type = "CLASS"
	ELSE   Type = "ELSE"
	FALSE  Type = "FALSE"
	FOR    Type = "FOR"
	FUN    Type = "FUN"
	IF     Type = "IF"
	NIL    Type = "NIL"
	OR     Type = "OR"
	PRINT  Type = "PRINT"
	RETURN Type = "RETURN"
	SUPER  Type = "SUPER"
	THIS   Type = "THIS"
	TRUE   Type = "TRUE"
	VAR    Type = "VAR"
	WHILE  Type = "WHILE"
)

var keywords = map[string]Type{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"for":    FOR,
	"fun":    FUN,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

// LookupIdent checks the keywords table for an identifier.
// If the identifier is a keyword, it returns the keyword's token type.
// Otherwise, it returns IDENTIFIER.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENTIFIER
}

// IsStatementStart reports whether t introduces a statement. The parser
// resynchronizes on these after a syntax error.
func IsStatementStart(t Type) bool {
	switch t {
	case CLASS, FUN, VAR, FOR, IF, WHILE, PRINT, RETURN:
		return true
	}
	return false
}

// String renders the token the way the token trace prints it: type, lexeme
// and literal separated by spaces.
func (t Token) String() string {
	if t.Literal == nil {
		return fmt.Sprintf("%s %s", t.Type, t.Lexeme)
	}
	return fmt.Sprintf("%s %s %v", t.Type, t.Lexeme, t.Literal)
}

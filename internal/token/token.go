// Package token defines the token types produced by the lexer.
package token

import (
	"fmt"
	"spark-lang/internal/span"
)

// Kind represents the type of a token.
type Kind int

const (
	// Special tokens
	ERROR Kind = iota
	EOF

	// Punctuation
	DOT        // .
	COLON      // :
	COMMA      // ,
	SEMICOLON  // ;
	CARET      // ^
	ASSIGN     // =
	UNDERSCORE // _

	// Arithmetic operators
	PLUS  // +
	MINUS // -
	STAR  // *
	SLASH // /

	// Logical operators
	AND  // &&
	OR   // ||
	BANG // !

	// Relational operators
	LT  // <
	GT  // >
	EQ  // ==
	NEQ // != or <>
	LTE // <=
	GTE // >=

	// Brackets
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	LBRACE   // {
	RBRACE   // }

	// Literals
	STRING // "hello"
	INT    // 123
	FLOAT  // 3.14, .5, 1e10
	IDENT  // x, foo, my_var

	// Keywords
	KW_LET
	KW_IF
	KW_ELSE
	KW_FN
	KW_STRUCT
)

// kindDisplay is the text used verbatim inside diagnostic messages.
var kindDisplay = map[Kind]string{
	ERROR: "an invalid token",
	EOF:   "<EOF>",

	DOT:        ".",
	COLON:      ":",
	COMMA:      ",",
	SEMICOLON:  ";",
	CARET:      "^",
	ASSIGN:     "=",
	UNDERSCORE: "_",

	PLUS:  "+",
	MINUS: "-",
	STAR:  "*",
	SLASH: "/",

	AND:  "&&",
	OR:   "||",
	BANG: "!",

	LT:  "<",
	GT:  ">",
	EQ:  "==",
	NEQ: "!=",
	LTE: "<=",
	GTE: ">=",

	LPAREN:   "(",
	RPAREN:   ")",
	LBRACKET: "[",
	RBRACKET: "]",
	LBRACE:   "{",
	RBRACE:   "}",

	STRING: "a string literal",
	INT:    "an integer",
	FLOAT:  "a floating point literal",
	IDENT:  "an identifier",

	KW_LET:    "let",
	KW_IF:     "if",
	KW_ELSE:   "else",
	KW_FN:     "fn",
	KW_STRUCT: "struct",
}

// kindNames are stable machine-readable names, used by token dumps.
var kindNames = map[Kind]string{
	ERROR:      "ERROR",
	EOF:        "EOF",
	DOT:        "DOT",
	COLON:      "COLON",
	COMMA:      "COMMA",
	SEMICOLON:  "SEMICOLON",
	CARET:      "CARET",
	ASSIGN:     "ASSIGN",
	UNDERSCORE: "UNDERSCORE",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	STAR:       "STAR",
	SLASH:      "SLASH",
	AND:        "AND",
	OR:         "OR",
	BANG:       "BANG",
	LT:         "LT",
	GT:         "GT",
	EQ:         "EQ",
	NEQ:        "NEQ",
	LTE:        "LTE",
	GTE:        "GTE",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	LBRACKET:   "LBRACKET",
	RBRACKET:   "RBRACKET",
	LBRACE:     "LBRACE",
	RBRACE:     "RBRACE",
	STRING:     "STRING",
	INT:        "INT",
	FLOAT:      "FLOAT",
	IDENT:      "IDENT",
	KW_LET:     "KW_LET",
	KW_IF:      "KW_IF",
	KW_ELSE:    "KW_ELSE",
	KW_FN:      "KW_FN",
	KW_STRUCT:  "KW_STRUCT",
}

// String returns the display text for a token kind, as used in error messages.
func (k Kind) String() string {
	if text, ok := kindDisplay[k]; ok {
		return text
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Name returns the upper-case identifier of the kind, e.g. "IDENT".
func (k Kind) Name() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword returns true if the kind is a keyword.
func (k Kind) IsKeyword() bool {
	return k >= KW_LET && k <= KW_STRUCT
}

// IsLiteral returns true if the kind is a string, integer or float literal.
func (k Kind) IsLiteral() bool {
	return k >= STRING && k <= FLOAT
}

var keywords = map[string]Kind{
	"let":    KW_LET,
	"if":     KW_IF,
	"else":   KW_ELSE,
	"fn":     KW_FN,
	"struct": KW_STRUCT,
}

// LookupIdent returns the keyword Kind for ident, or IDENT if it is not a keyword.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return IDENT
}

// Token is a classified lexical unit. The text is recovered from the source via Span.
type Token struct {
	Kind Kind      `json:"kind"`
	Span span.Span `json:"span"`
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s %s", t.Kind.Name(), t.Span)
}

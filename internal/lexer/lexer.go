// Package lexer implements the lexical analysis (tokenization) for spark-lang.
//
// Lexical errors are data: input that matches no rule becomes an ERROR token and
// scanning continues. Whitespace and line comments are skipped and never emitted.
package lexer

import (
	"spark-lang/internal/span"
	"spark-lang/internal/token"
	"unicode/utf8"
)

// Lexer tokenizes source code lazily, one token per call to Next.
type Lexer struct {
	source string
	pos    int // current read position in source
}

// New creates a new Lexer for the given source text.
func New(source string) *Lexer {
	return &Lexer{source: source}
}

// Tokenize scans the entire source and returns all tokens, ending with EOF.
func (l *Lexer) Tokenize() []token.Token {
	var tokens []token.Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

// Next returns the next token. Once the input is exhausted every call returns
// an EOF token with an empty span at the end of the source.
func (l *Lexer) Next() token.Token {
	l.skipTrivia()

	if l.pos >= len(l.source) {
		end := len(l.source)
		return token.Token{Kind: token.EOF, Span: span.New(end, end)}
	}

	start := l.pos
	ch := l.source[l.pos]

	switch {
	case ch == '"':
		return l.readString(start)
	case isDigit(ch), ch == '.' && isDigit(l.peekNext()):
		return l.readNumber(start)
	case isLetter(ch):
		return l.readIdentifier(start)
	}
	return l.readOperator(start)
}

// ---- internal helpers ----

// peek returns the current character without advancing, or 0 if at end.
func (l *Lexer) peek() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	return l.source[l.pos]
}

// peekNext returns the character after current, or 0 if at end.
func (l *Lexer) peekNext() byte {
	if l.pos+1 >= len(l.source) {
		return 0
	}
	return l.source[l.pos+1]
}

func (l *Lexer) emit(kind token.Kind, start int) token.Token {
	return token.Token{Kind: kind, Span: span.New(start, l.pos)}
}

// skipTrivia skips whitespace and // line comments.
func (l *Lexer) skipTrivia() {
	for l.pos < len(l.source) {
		switch ch := l.source[l.pos]; {
		case ch == ' ', ch == '\t', ch == '\n', ch == '\r', ch == '\f':
			l.pos++
		case ch == '/' && l.peekNext() == '/':
			for l.pos < len(l.source) && l.source[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

// ---- token reading ----

// readString reads a double-quoted string literal. Only \" and \\ are valid
// escapes; the token span includes both quotes.
func (l *Lexer) readString(start int) token.Token {
	l.pos++ // opening "

	for l.pos < len(l.source) {
		switch l.source[l.pos] {
		case '"':
			l.pos++
			return l.emit(token.STRING, start)
		case '\\':
			next := l.peekNext()
			if next != '"' && next != '\\' {
				l.pos++ // the offending backslash
				return l.emit(token.ERROR, start)
			}
			l.pos += 2
		default:
			l.pos++
		}
	}

	// unterminated
	return l.emit(token.ERROR, start)
}

// readNumber reads an integer or float literal. An all-digit run is always INT.
func (l *Lexer) readNumber(start int) token.Token {
	isFloat := false

	for isDigit(l.peek()) {
		l.pos++
	}

	// fraction: digits must follow the dot
	if l.peek() == '.' && isDigit(l.peekNext()) {
		isFloat = true
		l.pos++ // '.'
		for isDigit(l.peek()) {
			l.pos++
		}
	}

	// exponent: e, optional sign, at least one digit
	if ch := l.peek(); ch == 'e' || ch == 'E' {
		n := 1
		if sign := l.at(l.pos + 1); sign == '+' || sign == '-' {
			n = 2
		}
		if isDigit(l.at(l.pos + n)) {
			isFloat = true
			l.pos += n
			for isDigit(l.peek()) {
				l.pos++
			}
		}
	}

	if isFloat {
		return l.emit(token.FLOAT, start)
	}
	return l.emit(token.INT, start)
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier(start int) token.Token {
	for isIdentPart(l.peek()) {
		l.pos++
	}
	return l.emit(token.LookupIdent(l.source[start:l.pos]), start)
}

// readOperator reads an operator or delimiter token.
func (l *Lexer) readOperator(start int) token.Token {
	ch := l.source[l.pos]
	l.pos++

	switch ch {
	case '(':
		return l.emit(token.LPAREN, start)
	case ')':
		return l.emit(token.RPAREN, start)
	case '{':
		return l.emit(token.LBRACE, start)
	case '}':
		return l.emit(token.RBRACE, start)
	case '[':
		return l.emit(token.LBRACKET, start)
	case ']':
		return l.emit(token.RBRACKET, start)
	case ',':
		return l.emit(token.COMMA, start)
	case '.':
		return l.emit(token.DOT, start)
	case ';':
		return l.emit(token.SEMICOLON, start)
	case ':':
		return l.emit(token.COLON, start)
	case '^':
		return l.emit(token.CARET, start)
	case '_':
		return l.emit(token.UNDERSCORE, start)
	case '+':
		return l.emit(token.PLUS, start)
	case '-':
		return l.emit(token.MINUS, start)
	case '*':
		return l.emit(token.STAR, start)
	case '/':
		return l.emit(token.SLASH, start)
	case '!':
		if l.peek() == '=' {
			l.pos++
			return l.emit(token.NEQ, start)
		}
		return l.emit(token.BANG, start)
	case '=':
		if l.peek() == '=' {
			l.pos++
			return l.emit(token.EQ, start)
		}
		return l.emit(token.ASSIGN, start)
	case '<':
		switch l.peek() {
		case '=':
			l.pos++
			return l.emit(token.LTE, start)
		case '>':
			l.pos++
			return l.emit(token.NEQ, start)
		}
		return l.emit(token.LT, start)
	case '>':
		if l.peek() == '=' {
			l.pos++
			return l.emit(token.GTE, start)
		}
		return l.emit(token.GT, start)
	case '&':
		if l.peek() == '&' {
			l.pos++
			return l.emit(token.AND, start)
		}
	case '|':
		if l.peek() == '|' {
			l.pos++
			return l.emit(token.OR, start)
		}
	default:
		// one ERROR token per rune, not per byte
		if ch >= utf8.RuneSelf {
			_, size := utf8.DecodeRuneInString(l.source[start:])
			l.pos = start + size
		}
	}
	return l.emit(token.ERROR, start)
}

// at returns the byte at offset i, or 0 past the end.
func (l *Lexer) at(i int) byte {
	if i >= len(l.source) {
		return 0
	}
	return l.source[i]
}

// ---- character classification ----

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}

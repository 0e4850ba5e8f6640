// Package parser implements the syntax analysis for spark-lang.
// It uses Pratt parsing (precedence climbing) for expressions and recursive
// descent for items, statements and types.
//
// The parser never aborts: problems are recorded as diagnostics, and
// constructs that cannot be recovered in place are replaced by ErrorItem or
// ErrorStmt nodes carrying the same diagnostic.
package parser

import (
	"errors"
	"sort"
	"spark-lang/internal/ast"
	"spark-lang/internal/diag"
	"spark-lang/internal/lexer"
	"spark-lang/internal/span"
	"spark-lang/internal/token"
)

// ============================================================
// Parser
// ============================================================

// Parser performs syntax analysis over a lazily tokenized source text.
// A Parser is single-use and not safe for concurrent use.
type Parser struct {
	source string
	lex    *lexer.Lexer

	cur     token.Token // most recently consumed token
	next    token.Token // lookahead, valid when hasNext
	hasNext bool

	diags []diag.Diagnostic
}

// New creates a new parser over source.
func New(source string) *Parser {
	return &Parser{source: source, lex: lexer.New(source)}
}

// Parse parses a whole source file and returns its items together with every
// diagnostic recorded along the way, in source order.
func Parse(source string) ([]ast.Item, []diag.Diagnostic) {
	p := New(source)
	items := p.ParseFile()
	return items, p.Diagnostics()
}

// ParseFile parses items until end of input. Malformed items appear in the
// result as *ast.ErrorItem; they never discard their neighbours.
func (p *Parser) ParseFile() []ast.Item {
	var items []ast.Item
	for !p.at(token.EOF) {
		items = append(items, p.parseItem())
	}
	return items
}

// ParseItem parses a single top-level item.
func (p *Parser) ParseItem() ast.Item {
	return p.parseItem()
}

// ParseStatement parses a single statement.
func (p *Parser) ParseStatement() ast.Stmt {
	return p.parseStmt()
}

// ParseExpression parses a full expression at binding power zero. The
// returned error is a diag.Diagnostic that has already been recorded.
func (p *Parser) ParseExpression() (ast.Expr, error) {
	return p.parseExpr(bpNone)
}

// ParseType parses a type reference.
func (p *Parser) ParseType() ast.Type {
	return p.parseType()
}

// AtEOF reports whether all input has been consumed.
func (p *Parser) AtEOF() bool {
	return p.at(token.EOF)
}

// ExpectEOF records an E001 diagnostic when input remains and reports
// whether the parser was at the end.
func (p *Parser) ExpectEOF() bool {
	if p.at(token.EOF) {
		return true
	}
	p.unexpected("the end of input")
	return false
}

// Diagnostics returns the recorded diagnostics in source order.
func (p *Parser) Diagnostics() []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(p.diags))
	copy(out, p.diags)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Span.Start < out[j].Span.Start
	})
	return out
}

// ============================================================
// Error reporting and recovery
// ============================================================

// errorf records a diagnostic and returns it.
func (p *Parser) errorf(code string, s span.Span, format string, args ...interface{}) diag.Diagnostic {
	d := diag.Errorf(code, s, format, args...)
	p.diags = append(p.diags, d)
	return d
}

// unexpected records an E001 diagnostic at the lookahead token without consuming it.
func (p *Parser) unexpected(expected string) diag.Diagnostic {
	found := p.peekToken()
	return p.errorf(diag.CodeUnexpectedToken, found.Span, "expected %s, found %s", expected, found.Kind)
}

// synchronize skips tokens until a likely statement boundary: just past a ';',
// or before a token that opens or closes a statement or item.
func (p *Parser) synchronize() {
	for {
		switch p.peek() {
		case token.EOF, token.RBRACE, token.LBRACE,
			token.KW_LET, token.KW_IF, token.KW_FN, token.KW_STRUCT:
			return
		case token.SEMICOLON:
			p.advance()
			return
		}
		p.advance()
	}
}

// skipToItem skips tokens until the next item keyword or end of input.
func (p *Parser) skipToItem() {
	for !p.at(token.KW_FN) && !p.at(token.KW_STRUCT) && !p.at(token.EOF) {
		p.advance()
	}
}

// errorStmt turns a structural failure into an ErrorStmt and resynchronizes.
func (p *Parser) errorStmt(err error) *ast.ErrorStmt {
	p.synchronize()
	var d diag.Diagnostic
	if !errors.As(err, &d) {
		d = p.errorf(diag.CodeUnexpectedToken, p.span(), "%v", err)
	}
	return &ast.ErrorStmt{Err: d}
}

package parser

import (
	"spark-lang/internal/diag"
	"spark-lang/internal/span"
	"spark-lang/internal/token"
	"strings"
)

// ---- navigation helpers ----

// peekToken returns the lookahead token without consuming it.
func (p *Parser) peekToken() token.Token {
	if !p.hasNext {
		p.next = p.lex.Next()
		p.hasNext = true
	}
	return p.next
}

// peek returns the kind of the lookahead token. It is pure and repeatable.
func (p *Parser) peek() token.Kind {
	return p.peekToken().Kind
}

// advance consumes the lookahead token and returns its kind. At end of input
// it keeps returning EOF.
func (p *Parser) advance() token.Kind {
	p.cur = p.peekToken()
	p.hasNext = false
	return p.cur.Kind
}

func (p *Parser) at(kind token.Kind) bool {
	return p.peek() == kind
}

// text returns a copy of the source text of the most recently consumed token,
// so the tree never aliases the source buffer.
func (p *Parser) text() string {
	return strings.Clone(p.cur.Span.Text(p.source))
}

// peekText returns the source text of the lookahead token.
func (p *Parser) peekText() string {
	return p.peekToken().Span.Text(p.source)
}

// span returns the span of the most recently consumed token.
func (p *Parser) span() span.Span {
	return p.cur.Span
}

// expect consumes one token. If it is not of the given kind an E001
// diagnostic naming both kinds is recorded and returned with ok == false;
// the caller decides whether that is fatal for the construct.
func (p *Parser) expect(kind token.Kind) (diag.Diagnostic, bool) {
	found := p.advance()
	if found == kind {
		return diag.Diagnostic{}, true
	}
	return p.errorf(diag.CodeUnexpectedToken, p.span(), "expected %s, found %s", kind, found), false
}

// atItemStart reports whether the lookahead token can only begin an item.
func (p *Parser) atItemStart() bool {
	return p.at(token.KW_FN) || p.at(token.KW_STRUCT)
}

// expectInItem is expect for punctuation inside an item. An item keyword is
// never consumed: the missing token is reported and the keyword is left for
// the next item.
func (p *Parser) expectInItem(kind token.Kind) (diag.Diagnostic, bool) {
	if p.atItemStart() {
		return p.unexpected(kind.String()), false
	}
	return p.expect(kind)
}

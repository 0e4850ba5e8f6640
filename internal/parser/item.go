package parser

import (
	"spark-lang/internal/ast"
	"spark-lang/internal/diag"
	"spark-lang/internal/token"
)

// ============================================================
// Top-level (item) parsing
// ============================================================

func (p *Parser) parseItem() ast.Item {
	switch kind := p.peek(); kind {
	case token.KW_FN:
		return p.parseFunction()
	case token.KW_STRUCT:
		return p.parseStruct()
	case token.EOF:
		d := p.errorf(diag.CodeUnexpectedEOF, p.peekToken().Span, "expected an item, found %s", kind)
		return &ast.ErrorItem{Err: d}
	default:
		p.advance()
		d := p.errorf(diag.CodeUnknownItem, p.span(), "unknown start of item: %s", kind)
		p.skipToItem()
		return &ast.ErrorItem{Err: d}
	}
}

// parseFunction parses: fn IDENT ( params ) block
//
// Without a name there is no usable header, so the whole item is replaced by
// an ErrorItem and parsing resumes at the next item.
func (p *Parser) parseFunction() ast.Item {
	p.advance() // consume 'fn'

	if !p.at(token.IDENT) {
		d := p.unexpected(token.IDENT.String() + " as function name")
		p.skipToItem()
		return &ast.ErrorItem{Err: d}
	}
	p.advance()
	fn := &ast.Function{Name: p.text()}

	p.expectInItem(token.LPAREN)
	fn.Params = p.parseFields(token.RPAREN)
	p.expectInItem(token.RPAREN)

	fn.Body = p.parseBlock().Stmts
	return fn
}

// parseStruct parses: struct Type { members }
func (p *Parser) parseStruct() ast.Item {
	p.advance() // consume 'struct'
	st := &ast.Struct{Name: p.parseType()}

	p.expectInItem(token.LBRACE)
	st.Members = p.parseFields(token.RBRACE)
	p.expectInItem(token.RBRACE)

	return st
}

// parseFields parses a comma-separated list of IDENT : Type pairs up to (not
// including) closing. A trailing comma is accepted.
func (p *Parser) parseFields(closing token.Kind) []ast.Field {
	var fields []ast.Field

	for !p.at(closing) && !p.at(token.EOF) && !p.atItemStart() {
		p.expect(token.IDENT)
		name := p.text()
		p.expect(token.COLON)
		fields = append(fields, ast.Field{Name: name, Type: p.parseType()})

		if !p.at(token.COMMA) {
			break
		}
		p.advance() // consume ','
	}

	return fields
}

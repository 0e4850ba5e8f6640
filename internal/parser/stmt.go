package parser

import (
	"spark-lang/internal/ast"
	"spark-lang/internal/diag"
	"spark-lang/internal/token"
)

// ============================================================
// Statement parsing
// ============================================================

// parseStmt dispatches on the lookahead token. It always returns a statement;
// failures come back as *ast.ErrorStmt.
func (p *Parser) parseStmt() ast.Stmt {
	switch kind := p.peek(); kind {
	case token.KW_LET:
		return p.parseLet()
	case token.IDENT:
		return p.parseAssign()
	case token.KW_IF:
		return p.parseIf()
	case token.LBRACE:
		return p.parseBlock()
	case token.EOF:
		d := p.errorf(diag.CodeUnexpectedEOF, p.peekToken().Span, "expected a statement, found %s", kind)
		return &ast.ErrorStmt{Err: d}
	default:
		p.advance()
		d := p.errorf(diag.CodeUnknownStmt, p.span(), "unknown start of statement: %s", kind)
		p.synchronize()
		return &ast.ErrorStmt{Err: d}
	}
}

// parseLet parses: let IDENT = expr ;
func (p *Parser) parseLet() ast.Stmt {
	p.advance() // consume 'let'

	// a wrong token still serves as the name
	p.expect(token.IDENT)
	name := p.text()

	p.expect(token.ASSIGN)
	value, err := p.parseExpr(bpNone)
	if err != nil {
		return p.errorStmt(err)
	}
	p.expect(token.SEMICOLON)

	return &ast.Let{Name: name, Value: value}
}

// parseAssign parses: IDENT = expr ;
func (p *Parser) parseAssign() ast.Stmt {
	p.advance() // consume IDENT
	name := p.text()

	p.expect(token.ASSIGN)
	value, err := p.parseExpr(bpNone)
	if err != nil {
		return p.errorStmt(err)
	}
	p.expect(token.SEMICOLON)

	return &ast.Assign{Name: name, Value: value}
}

// parseIf parses: if ( expr ) block [ else ( if ... | block ) ]
func (p *Parser) parseIf() ast.Stmt {
	p.advance() // consume 'if'

	p.expect(token.LPAREN)
	cond, err := p.parseExpr(bpNone)
	if err != nil {
		return p.errorStmt(err)
	}
	p.expect(token.RPAREN)

	if !p.at(token.LBRACE) {
		d := p.unexpected("a block after the if condition")
		p.synchronize()
		return &ast.ErrorStmt{Err: d}
	}
	stmt := &ast.If{Cond: cond, Body: p.parseBlock().Stmts}

	if p.at(token.KW_ELSE) {
		p.advance() // consume 'else'
		if p.at(token.KW_IF) || p.at(token.LBRACE) {
			stmt.Else = p.parseStmt()
		} else {
			d := p.unexpected("if or a block after else")
			p.synchronize()
			stmt.Else = &ast.ErrorStmt{Err: d}
		}
	}

	return stmt
}

// parseBlock parses: { stmts }. Inner failures stay inside the block as
// ErrorStmt entries. No statement starts with fn or struct, so reaching one
// ends the block and leaves the keyword for the next item.
func (p *Parser) parseBlock() *ast.Block {
	p.expectInItem(token.LBRACE)
	block := &ast.Block{}

	for !p.at(token.RBRACE) && !p.at(token.EOF) && !p.atItemStart() {
		block.Stmts = append(block.Stmts, p.parseStmt())
	}

	p.expectInItem(token.RBRACE)
	return block
}

package parser

import (
	"spark-lang/internal/ast"
	"spark-lang/internal/token"
)

// parseType parses: IDENT [ < type, type, ... > ]
//
// A missing name is recorded but parsing continues with whatever text was
// consumed, so sibling parameters and members are unaffected.
func (p *Parser) parseType() ast.Type {
	p.expect(token.IDENT)
	t := ast.Type{Name: p.text()}

	switch {
	case p.at(token.LT):
		p.advance() // consume '<'
		for !p.at(token.GT) && !p.at(token.EOF) {
			t.Generics = append(t.Generics, p.parseType())
			if !p.at(token.COMMA) {
				break
			}
			p.advance() // consume ','
		}
		p.expect(token.GT)

	case p.at(token.NEQ) && p.peekText() == "<>":
		// Name<> lexes as IDENT NEQ; it is an empty generic list.
		p.advance()
	}

	return t
}

package parser

import (
	"spark-lang/internal/ast"
	"spark-lang/internal/diag"
	"spark-lang/internal/token"
	"strconv"
	"strings"
)

// ============================================================
// Expression parsing (Pratt / precedence climbing)
// ============================================================

// parseExpr parses an expression whose operators bind at least as tightly as
// minBP. A non-nil error is a structural failure already recorded as a
// diagnostic; the enclosing statement turns it into an ErrorStmt.
func (p *Parser) parseExpr(minBP int) (ast.Expr, error) {
	lhs, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	for {
		op := p.peek()
		if terminatesExpr(op) {
			break
		}

		if lbp, ok := postfixBP(op); ok {
			if lbp < minBP {
				break // belongs to an outer context
			}
			p.advance()
			// no recursion: the operand is already parsed
			lhs = &ast.Postfix{Op: op, Operand: lhs}
			continue
		}

		if lbp, rbp, ok := infixBP(op); ok {
			if lbp < minBP {
				break
			}
			p.advance()
			rhs, err := p.parseExpr(rbp)
			if err != nil {
				return nil, err
			}
			lhs = &ast.Infix{Op: op, LHS: lhs, RHS: rhs}
			continue
		}

		found := p.peekToken()
		return nil, p.errorf(diag.CodeUnknownOperator, found.Span,
			"expected an operator or the end of the expression, found %s", found.Kind)
	}

	return lhs, nil
}

// parseOperand parses a literal, identifier, call, parenthesized group or
// prefix operation.
func (p *Parser) parseOperand() (ast.Expr, error) {
	kind := p.peek()

	switch kind {
	case token.INT, token.FLOAT, token.STRING:
		p.advance()
		return &ast.Literal{Value: p.literal(kind)}, nil

	case token.IDENT:
		p.advance()
		name := p.text()
		if !p.at(token.LPAREN) {
			return &ast.Ident{Name: name}, nil
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return &ast.Call{Name: name, Args: args}, nil

	case token.LPAREN:
		// Grouped expression: ( expr ). The group itself leaves no node.
		p.advance()
		expr, err := p.parseExpr(bpNone)
		if err != nil {
			return nil, err
		}
		p.expect(token.RPAREN)
		return expr, nil

	case token.PLUS, token.MINUS, token.BANG:
		p.advance()
		rbp, _ := prefixBP(kind)
		operand, err := p.parseExpr(rbp)
		if err != nil {
			return nil, err
		}
		return &ast.Prefix{Op: kind, Operand: operand}, nil

	case token.EOF:
		return nil, p.errorf(diag.CodeUnexpectedEOF, p.peekToken().Span, "expected an expression, found %s", kind)

	default:
		return nil, p.errorf(diag.CodeUnknownExpr, p.peekToken().Span, "expected an expression, found %s", kind)
	}
}

// parseArgs parses: ( expr, expr, ... ). A trailing comma is accepted.
func (p *Parser) parseArgs() ([]ast.Expr, error) {
	p.advance() // consume '('
	var args []ast.Expr

	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		arg, err := p.parseExpr(bpNone)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.at(token.COMMA) {
			break
		}
		p.advance() // consume ','
	}

	p.expect(token.RPAREN)
	return args, nil
}

// literal converts the text of the literal token just consumed. Out-of-range
// numbers are recorded as E007 and read as zero.
func (p *Parser) literal(kind token.Kind) ast.Lit {
	text := p.text()

	switch kind {
	case token.INT:
		val, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			p.errorf(diag.CodeInvalidLiteral, p.span(), "integer literal %s does not fit in 64 bits", text)
			return ast.IntLit(0)
		}
		return ast.IntLit(val)

	case token.FLOAT:
		val, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.errorf(diag.CodeInvalidLiteral, p.span(), "floating point literal %s is out of range", text)
			return ast.FloatLit(0)
		}
		return ast.FloatLit(val)

	default:
		return ast.StrLit(unquote(text))
	}
}

// unquote strips the surrounding quotes of a string literal and resolves the
// \" and \\ escapes. The lexer guarantees no other escapes reach here.
func unquote(text string) string {
	if len(text) < 2 {
		return ""
	}
	body := text[1 : len(text)-1]
	if !strings.Contains(body, `\`) {
		return body
	}

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			i++
		}
		b.WriteByte(body[i])
	}
	return b.String()
}

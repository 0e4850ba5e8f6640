package parser

import "spark-lang/internal/token"

// ============================================================
// Binding power (precedence) tables
// ============================================================
//
// Higher binds tighter. For infix operators, left < right makes the operator
// left-associative and left > right makes it right-associative.

const (
	bpNone   = 0
	bpPrefix = 51
)

// prefixBP returns the right binding power of a prefix operator.
func prefixBP(kind token.Kind) (int, bool) {
	switch kind {
	case token.PLUS, token.MINUS, token.BANG:
		return bpPrefix, true
	default:
		return 0, false
	}
}

// infixBP returns the left and right binding power of an infix operator.
func infixBP(kind token.Kind) (int, int, bool) {
	switch kind {
	case token.OR:
		return 1, 2, true
	case token.AND:
		return 3, 4, true
	case token.EQ, token.NEQ:
		return 5, 6, true
	case token.LT, token.GT, token.LTE, token.GTE:
		return 7, 8, true
	case token.PLUS, token.MINUS:
		return 9, 10, true
	case token.STAR, token.SLASH:
		return 11, 12, true
	case token.CARET:
		return 22, 21, true // binds tighter to the left: right-associative
	default:
		return 0, 0, false
	}
}

// postfixBP returns the left binding power of a postfix operator.
func postfixBP(kind token.Kind) (int, bool) {
	switch kind {
	case token.BANG:
		return 101, true
	default:
		return 0, false
	}
}

// terminatesExpr reports whether kind legitimately ends an expression.
func terminatesExpr(kind token.Kind) bool {
	switch kind {
	case token.RPAREN, token.RBRACE, token.COMMA, token.SEMICOLON, token.EOF:
		return true
	default:
		return false
	}
}

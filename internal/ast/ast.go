// Package ast defines the abstract syntax tree for spark-lang.
//
// Every node kind is a closed tagged union: an interface with an unexported
// marker method, implemented only by the pointer types in this package.
// Parse failures are nodes too (ErrorItem, ErrorStmt), so the tree records
// where recovery happened.
package ast

import (
	"spark-lang/internal/diag"
	"spark-lang/internal/token"
)

// ============================================================
// Node interfaces
// ============================================================

// Node is the interface implemented by all AST nodes.
type Node interface {
	node()
}

// Item is a top-level declaration.
type Item interface {
	Node
	itemNode()
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Lit is a literal value: IntLit, FloatLit or StrLit.
type Lit interface {
	litValue()
}

// ============================================================
// Types
// ============================================================

// Type is a possibly generic type reference, e.g. List<Int>.
type Type struct {
	Name     string
	Generics []Type
}

// Field is a name: Type pair, used for parameters and struct members.
type Field struct {
	Name string
	Type Type
}

// ============================================================
// Items
// ============================================================

// Struct represents: struct Name<T> { member: Type, ... }.
type Struct struct {
	Name    Type
	Members []Field
}

// Function represents: fn name(param: Type, ...) { body }.
type Function struct {
	Name   string
	Params []Field
	Body   []Stmt
}

// ErrorItem replaces a top-level construct that could not be parsed.
type ErrorItem struct {
	Err diag.Diagnostic
}

func (*Struct) node()        {}
func (*Function) node()      {}
func (*ErrorItem) node()     {}
func (*Struct) itemNode()    {}
func (*Function) itemNode()  {}
func (*ErrorItem) itemNode() {}

// ============================================================
// Statements
// ============================================================

// Let represents: let name = value;
type Let struct {
	Name  string
	Value Expr
}

// Assign represents: name = value;
type Assign struct {
	Name  string
	Value Expr
}

// If represents: if (cond) { body } [else stmt]. Else is nil, an *If, a *Block
// or an *ErrorStmt.
type If struct {
	Cond Expr
	Body []Stmt
	Else Stmt
}

// Block represents: { stmts }
type Block struct {
	Stmts []Stmt
}

// ErrorStmt replaces a statement that could not be parsed.
type ErrorStmt struct {
	Err diag.Diagnostic
}

func (*Let) node()           {}
func (*Assign) node()        {}
func (*If) node()            {}
func (*Block) node()         {}
func (*ErrorStmt) node()     {}
func (*Let) stmtNode()       {}
func (*Assign) stmtNode()    {}
func (*If) stmtNode()        {}
func (*Block) stmtNode()     {}
func (*ErrorStmt) stmtNode() {}

// ============================================================
// Expressions
// ============================================================

// Literal represents an integer, float or string literal.
type Literal struct {
	Value Lit
}

// Ident represents an identifier reference.
type Ident struct {
	Name string
}

// Call represents a function call: f(a, b).
type Call struct {
	Name string
	Args []Expr
}

// Prefix represents a prefix operation: -x, +x, !x.
type Prefix struct {
	Op      token.Kind
	Operand Expr
}

// Infix represents a binary operation: a + b, x == y.
type Infix struct {
	Op  token.Kind
	LHS Expr
	RHS Expr
}

// Postfix represents a postfix operation: n!.
type Postfix struct {
	Op      token.Kind
	Operand Expr
}

func (*Literal) node()     {}
func (*Ident) node()       {}
func (*Call) node()        {}
func (*Prefix) node()      {}
func (*Infix) node()       {}
func (*Postfix) node()     {}
func (*Literal) exprNode() {}
func (*Ident) exprNode()   {}
func (*Call) exprNode()    {}
func (*Prefix) exprNode()  {}
func (*Infix) exprNode()   {}
func (*Postfix) exprNode() {}

// ============================================================
// Literal values
// ============================================================

// IntLit is an unsigned integer literal.
type IntLit uint64

// FloatLit is a 64-bit floating-point literal.
type FloatLit float64

// StrLit is a string literal with quotes stripped and escapes resolved.
type StrLit string

func (IntLit) litValue()   {}
func (FloatLit) litValue() {}
func (StrLit) litValue()   {}

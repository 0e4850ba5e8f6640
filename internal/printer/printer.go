// Package printer renders syntax trees back to canonical source text.
//
// Binary and unary sub-expressions are always parenthesized, so printing a
// tree and parsing the result yields the same tree. Error nodes are printed as
// line comments, which the lexer skips.
package printer

import (
	"fmt"
	"math"
	"spark-lang/internal/ast"
	"strconv"
	"strings"
)

// Options controls indentation of printed source.
type Options struct {
	// IndentSize is the number of spaces per indentation level.
	IndentSize int
	// PreferTabs indents with tabs instead of spaces.
	PreferTabs bool
}

// DefaultOptions returns four-space indentation.
func DefaultOptions() Options {
	return Options{IndentSize: 4}
}

// Printer accumulates canonical source text.
type Printer struct {
	options Options
	indent  int
	buffer  strings.Builder
}

// New creates a printer with the given options.
func New(options Options) *Printer {
	return &Printer{options: options}
}

// File prints items with default options, separated by blank lines.
func File(items []ast.Item) string {
	return New(DefaultOptions()).File(items)
}

// Stmt prints one statement with default options.
func Stmt(s ast.Stmt) string {
	return New(DefaultOptions()).Stmt(s)
}

// Expr prints an expression with default options.
func Expr(e ast.Expr) string {
	return New(DefaultOptions()).Expr(e)
}

// Type prints a type reference.
func Type(t ast.Type) string {
	p := New(DefaultOptions())
	p.typ(t)
	return p.buffer.String()
}

// File prints items separated by blank lines, with a trailing newline.
func (p *Printer) File(items []ast.Item) string {
	p.buffer.Reset()
	p.indent = 0
	for i, item := range items {
		if i > 0 {
			p.writeNewline()
		}
		p.item(item)
		p.writeNewline()
	}
	return p.buffer.String()
}

// Stmt prints one statement at the outermost indentation level.
func (p *Printer) Stmt(s ast.Stmt) string {
	p.buffer.Reset()
	p.indent = 0
	p.stmt(s)
	return p.buffer.String()
}

// Expr prints an expression without outer parentheses.
func (p *Printer) Expr(e ast.Expr) string {
	p.buffer.Reset()
	p.expr(e)
	return p.buffer.String()
}

// ---- items ----

func (p *Printer) item(item ast.Item) {
	switch n := item.(type) {
	case *ast.Function:
		p.writeString("fn " + n.Name + "(")
		for i, param := range n.Params {
			if i > 0 {
				p.writeString(", ")
			}
			p.field(param)
		}
		p.writeString(") ")
		p.block(n.Body)

	case *ast.Struct:
		p.writeString("struct ")
		p.typ(n.Name)
		if len(n.Members) == 0 {
			p.writeString(" {}")
			return
		}
		p.writeString(" {")
		p.indent++
		for _, member := range n.Members {
			p.writeNewline()
			p.writeIndent()
			p.field(member)
			p.writeString(",")
		}
		p.indent--
		p.writeNewline()
		p.writeIndent()
		p.writeString("}")

	case *ast.ErrorItem:
		p.errorComment(n.Err.Code, n.Err.Message)
	}
}

func (p *Printer) field(f ast.Field) {
	p.writeString(f.Name + ": ")
	p.typ(f.Type)
}

func (p *Printer) typ(t ast.Type) {
	p.writeString(t.Name)
	if len(t.Generics) == 0 {
		return
	}
	p.writeString("<")
	for i, g := range t.Generics {
		if i > 0 {
			p.writeString(", ")
		}
		p.typ(g)
	}
	p.writeString(">")
}

// ---- statements ----

func (p *Printer) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Let:
		p.writeString("let " + n.Name + " = ")
		p.expr(n.Value)
		p.writeString(";")

	case *ast.Assign:
		p.writeString(n.Name + " = ")
		p.expr(n.Value)
		p.writeString(";")

	case *ast.If:
		p.writeString("if (")
		p.expr(n.Cond)
		p.writeString(") ")
		p.block(n.Body)
		switch els := n.Else.(type) {
		case nil:
		case *ast.ErrorStmt:
			// keep the comment on its own line inside an empty else block
			p.writeString(" else ")
			p.block([]ast.Stmt{els})
		default:
			p.writeString(" else ")
			p.stmt(els)
		}

	case *ast.Block:
		p.block(n.Stmts)

	case *ast.ErrorStmt:
		p.errorComment(n.Err.Code, n.Err.Message)
	}
}

func (p *Printer) block(stmts []ast.Stmt) {
	if len(stmts) == 0 {
		p.writeString("{}")
		return
	}
	p.writeString("{")
	p.indent++
	for _, s := range stmts {
		p.writeNewline()
		p.writeIndent()
		p.stmt(s)
	}
	p.indent--
	p.writeNewline()
	p.writeIndent()
	p.writeString("}")
}

func (p *Printer) errorComment(code, message string) {
	// a message never spans lines, but keep the comment on one line regardless
	message = strings.ReplaceAll(message, "\n", " ")
	p.writeString(fmt.Sprintf("// error[%s]: %s", code, message))
}

// ---- expressions ----

// expr prints e without outer parentheses.
func (p *Printer) expr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Literal:
		p.writeString(literal(n.Value))
	case *ast.Ident:
		p.writeString(n.Name)
	case *ast.Call:
		p.writeString(n.Name + "(")
		for i, arg := range n.Args {
			if i > 0 {
				p.writeString(", ")
			}
			p.expr(arg)
		}
		p.writeString(")")
	case *ast.Prefix:
		p.writeString(n.Op.String())
		p.operand(n.Operand)
	case *ast.Postfix:
		p.operand(n.Operand)
		p.writeString(n.Op.String())
	case *ast.Infix:
		p.operand(n.LHS)
		p.writeString(" " + n.Op.String() + " ")
		p.operand(n.RHS)
	}
}

// operand prints e, parenthesized when it is an operator expression.
func (p *Printer) operand(e ast.Expr) {
	switch e.(type) {
	case *ast.Prefix, *ast.Postfix, *ast.Infix:
		p.writeString("(")
		p.expr(e)
		p.writeString(")")
	default:
		p.expr(e)
	}
}

func literal(lit ast.Lit) string {
	switch v := lit.(type) {
	case ast.IntLit:
		return strconv.FormatUint(uint64(v), 10)
	case ast.FloatLit:
		f := float64(v)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return "0.0"
		}
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0" // keep it a float token
		}
		return s
	case ast.StrLit:
		r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
		return `"` + r.Replace(string(v)) + `"`
	default:
		return ""
	}
}

// ---- writing helpers ----

func (p *Printer) writeString(s string) {
	p.buffer.WriteString(s)
}

func (p *Printer) writeNewline() {
	p.buffer.WriteString("\n")
}

func (p *Printer) writeIndent() {
	if p.options.PreferTabs {
		p.buffer.WriteString(strings.Repeat("\t", p.indent))
	} else {
		p.buffer.WriteString(strings.Repeat(" ", p.indent*p.options.IndentSize))
	}
}

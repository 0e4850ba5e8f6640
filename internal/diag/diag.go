// Package diag provides the diagnostic (parse error) type for the compiler.
package diag

import (
	"fmt"
	"spark-lang/internal/span"
	"strings"
)

// Stable diagnostic codes. Codes are never renumbered once published.
const (
	CodeUnexpectedToken = "E001" // expected one token kind, found another
	CodeUnknownStmt     = "E002" // token cannot start a statement
	CodeUnknownItem     = "E003" // token cannot start an item
	CodeUnknownOperator = "E004" // token in operator position is not an operator
	CodeUnexpectedEOF   = "E005" // input ended before a required construct
	CodeUnknownExpr     = "E006" // token cannot start an expression
	CodeInvalidLiteral  = "E007" // numeric literal out of range
)

// Diagnostic is a parse error: a stable code, a message and the offending span.
type Diagnostic struct {
	Code    string    `json:"code" yaml:"code"`       // stable error code, e.g. "E001"
	Message string    `json:"message" yaml:"message"` // human-readable description
	Span    span.Span `json:"span" yaml:"span"`       // source location
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("[%s] %s at %s", d.Code, d.Message, d.Span)
}

// Errorf creates a diagnostic at the given span.
func Errorf(code string, s span.Span, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Span:    s,
	}
}

// Render formats a diagnostic against its source:
//
//	main.spk:3:9: [E001] expected ;, found }
//	   3 | let x = 1 }
//	     |           ^
func Render(idx *span.Index, d Diagnostic) string {
	var b strings.Builder
	pos := idx.Position(d.Span.Start)
	fmt.Fprintf(&b, "%s: [%s] %s\n", idx.Location(d.Span), d.Code, d.Message)

	line := idx.Line(pos.Line)
	fmt.Fprintf(&b, "%4d | %s\n", pos.Line, line)

	width := d.Span.Len()
	if rest := len(line) - (pos.Column - 1); width > rest {
		width = rest
	}
	if width < 1 {
		width = 1
	}
	fmt.Fprintf(&b, "     | %s%s", strings.Repeat(" ", pos.Column-1), strings.Repeat("^", width))
	return b.String()
}

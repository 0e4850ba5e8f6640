// Package span provides source position and span types used across the compiler.
package span

import (
	"fmt"
	"sort"
	"strings"
)

// Span is a half-open byte range [Start, End) into the source text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// New returns the span [start, end).
func New(start, end int) Span {
	return Span{Start: start, End: end}
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Len returns the byte length of the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Text returns the slice of source covered by the span, clamped to the source bounds.
func (s Span) Text(source string) string {
	start, end := s.Start, s.End
	if start < 0 {
		start = 0
	}
	if end > len(source) {
		end = len(source)
	}
	if start >= end {
		return ""
	}
	return source[start:end]
}

// Position represents a resolved position in source code.
type Position struct {
	Offset int `json:"offset"` // byte offset from beginning of source
	Line   int `json:"line"`   // 1-based line number
	Column int `json:"column"` // 1-based column number
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Index maps byte offsets of one source text to lines and columns.
type Index struct {
	filename   string
	source     string
	lineStarts []int
}

// NewIndex builds a line index for source.
func NewIndex(filename, source string) *Index {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Index{filename: filename, source: source, lineStarts: starts}
}

// Filename returns the name the index was built with.
func (x *Index) Filename() string { return x.filename }

// Position resolves a byte offset. Offsets past the end resolve to the end of the source.
func (x *Index) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(x.source) {
		offset = len(x.source)
	}
	line := sort.Search(len(x.lineStarts), func(i int) bool {
		return x.lineStarts[i] > offset
	}) - 1
	return Position{Offset: offset, Line: line + 1, Column: offset - x.lineStarts[line] + 1}
}

// Line returns the text of the 1-based line n without its terminator.
func (x *Index) Line(n int) string {
	if n < 1 || n > len(x.lineStarts) {
		return ""
	}
	start := x.lineStarts[n-1]
	end := len(x.source)
	if n < len(x.lineStarts) {
		end = x.lineStarts[n] - 1
	}
	return strings.TrimRight(x.source[start:end], "\r")
}

// Location formats a span start as file:line:col.
func (x *Index) Location(s Span) string {
	pos := x.Position(s.Start)
	if x.filename == "" {
		return pos.String()
	}
	return fmt.Sprintf("%s:%s", x.filename, pos)
}

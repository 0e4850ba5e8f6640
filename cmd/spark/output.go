package main

import (
	"encoding/json"
	"fmt"
	"io"
	"spark-lang/internal/diag"
	"spark-lang/internal/span"
	"spark-lang/internal/token"
	"strings"

	"gopkg.in/yaml.v3"
)

// ---- output helpers ----

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}

func printYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("YAML encoding failed: %w", err)
	}
	return enc.Close()
}

// printDiags renders each diagnostic with its source line and caret underline.
func (a *app) printDiags(w io.Writer, idx *span.Index, diags []diag.Diagnostic) {
	for _, d := range diags {
		lines := strings.SplitN(diag.Render(idx, d), "\n", 3)
		if len(lines) == 3 {
			lines[0] = fmt.Sprintf("%s: %s %s", a.styles.render(a.styles.location, idx.Location(d.Span)),
				a.styles.render(a.styles.errorCode, "["+d.Code+"]"), d.Message)
			gutter, carets, _ := strings.Cut(lines[2], "^")
			lines[2] = gutter + a.styles.render(a.styles.caret, "^"+carets)
		}
		fmt.Fprintln(w, strings.Join(lines, "\n"))
	}
}

func diagsToSlice(idx *span.Index, diags []diag.Diagnostic) []map[string]interface{} {
	result := make([]map[string]interface{}, len(diags))
	for i, d := range diags {
		pos := idx.Position(d.Span.Start)
		result[i] = map[string]interface{}{
			"code":    d.Code,
			"message": d.Message,
			"start":   d.Span.Start,
			"end":     d.Span.End,
			"line":    pos.Line,
			"column":  pos.Column,
		}
	}
	return result
}

// ---- token output helpers ----

func printTokensText(w io.Writer, idx *span.Index, source string, tokens []token.Token) {
	for _, tok := range tokens {
		pos := idx.Position(tok.Span.Start)
		fmt.Fprintf(w, "%-12s %-20q %d:%d\n", tok.Kind.Name(), tok.Span.Text(source), pos.Line, pos.Column)
	}
}

func printTokensJSON(w io.Writer, idx *span.Index, source string, tokens []token.Token) error {
	type tokenJSON struct {
		Kind   string `json:"kind"`
		Text   string `json:"text"`
		Start  int    `json:"start"`
		End    int    `json:"end"`
		Line   int    `json:"line"`
		Column int    `json:"column"`
	}

	toks := make([]tokenJSON, 0, len(tokens))
	for _, tok := range tokens {
		pos := idx.Position(tok.Span.Start)
		toks = append(toks, tokenJSON{
			Kind:   tok.Kind.Name(),
			Text:   tok.Span.Text(source),
			Start:  tok.Span.Start,
			End:    tok.Span.End,
			Line:   pos.Line,
			Column: pos.Column,
		})
	}

	return printJSON(w, map[string]interface{}{"tokens": toks})
}

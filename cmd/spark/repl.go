package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"spark-lang/internal/lexer"
	"spark-lang/internal/parser"
	"spark-lang/internal/span"
	"spark-lang/internal/token"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

// ---- repl command ----

func (a *app) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive shell that prints the canonical form of each entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.repl()
		},
	}
}

func (a *app) repl() error {
	// Determine history file path (~/.spark_history)
	historyFile := a.cfg.REPL.HistoryFile
	if historyFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			historyFile = filepath.Join(home, ".spark_history")
		}
	}

	prompt := a.styles.render(a.styles.prompt, a.cfg.REPL.Prompt)
	continuation := a.styles.render(a.styles.muted, strings.Repeat(".", len(strings.TrimRight(a.cfg.REPL.Prompt, " ")))+" ")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("readline init failed: %w", err)
	}
	defer rl.Close()

	// Welcome banner
	fmt.Fprintf(rl.Stdout(), "%s %s\n\n", a.styles.render(a.styles.banner, "spark-lang REPL"),
		a.styles.render(a.styles.muted, "(type 'exit' or Ctrl+D to quit)"))

	var accumulated strings.Builder
	braceDepth := 0

	for {
		// Update prompt based on multi-line state
		if braceDepth > 0 {
			rl.SetPrompt(continuation)
		} else {
			rl.SetPrompt(prompt)
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if braceDepth > 0 {
					// Cancel multi-line input
					accumulated.Reset()
					braceDepth = 0
					continue
				}
				fmt.Fprintf(rl.Stdout(), "%s\n", a.styles.render(a.styles.muted, "(use 'exit' or Ctrl+D to quit)"))
				continue
			}
			// EOF (Ctrl+D) or other error → exit
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(rl.Stdout())
			}
			return nil
		}

		if braceDepth == 0 && strings.TrimSpace(line) == "exit" {
			return nil
		}

		// Count braces for multi-line input
		braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
		accumulated.WriteString(line)
		accumulated.WriteString("\n")
		if braceDepth > 0 {
			continue
		}
		braceDepth = 0

		source := accumulated.String()
		accumulated.Reset()
		if strings.TrimSpace(source) == "" {
			continue
		}

		a.evalEntry(rl.Stdout(), rl.Stderr(), source)
	}
}

// entryKind says how a REPL entry is parsed.
type entryKind int

const (
	entryItems entryKind = iota
	entryStatements
	entryExpression
)

// classifyEntry picks the parse mode from the leading tokens: fn and struct
// start items, let, if, { and "name =" start statements, and anything else is
// an expression.
func classifyEntry(source string) entryKind {
	lex := lexer.New(source)
	first := lex.Next()
	switch first.Kind {
	case token.KW_FN, token.KW_STRUCT:
		return entryItems
	case token.KW_LET, token.KW_IF, token.LBRACE:
		return entryStatements
	case token.IDENT:
		if lex.Next().Kind == token.ASSIGN {
			return entryStatements
		}
	}
	return entryExpression
}

// evalEntry parses one REPL entry and prints its canonical form, or its
// diagnostics when there are any.
func (a *app) evalEntry(stdout, stderr io.Writer, source string) {
	var out strings.Builder
	pr := a.printer()
	p := parser.New(source)

	switch classifyEntry(source) {
	case entryItems:
		out.WriteString(pr.File(p.ParseFile()))
	case entryStatements:
		for !p.AtEOF() {
			out.WriteString(pr.Stmt(p.ParseStatement()))
			out.WriteString("\n")
		}
	case entryExpression:
		e, err := p.ParseExpression()
		if err == nil && p.ExpectEOF() {
			out.WriteString(pr.Expr(e))
			out.WriteString("\n")
		}
	}
	diags := p.Diagnostics()

	if len(diags) > 0 {
		a.printDiags(stderr, span.NewIndex("<repl>", source), diags)
		return
	}
	fmt.Fprint(stdout, out.String())
}

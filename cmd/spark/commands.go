package main

import (
	"fmt"
	"os"
	"spark-lang/internal/ast"
	"spark-lang/internal/diag"
	"spark-lang/internal/lexer"
	"spark-lang/internal/parser"
	"spark-lang/internal/printer"
	"spark-lang/internal/span"
	"spark-lang/internal/token"

	"github.com/spf13/cobra"
)

// ---- tokens command ----

func (a *app) tokensCmd() *cobra.Command {
	var jsonMode bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Tokenize a file and print its tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := a.readSource(args[0])
			if err != nil {
				return err
			}
			idx := span.NewIndex(args[0], source)
			tokens := lexer.New(source).Tokenize()

			if jsonMode {
				if err := printTokensJSON(a.stdout, idx, source, tokens); err != nil {
					return err
				}
			} else {
				printTokensText(a.stdout, idx, source, tokens)
			}

			invalid := 0
			for _, tok := range tokens {
				if tok.Kind == token.ERROR {
					invalid++
				}
			}
			if invalid > 0 {
				a.logger.Debug("invalid tokens", "file", args[0], "count", invalid)
				return errDiagnostics
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonMode, "json", false, "Print tokens as JSON")
	return cmd
}

// ---- parse command ----

func (a *app) parseCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Output.Format
			}
			source, err := a.readSource(args[0])
			if err != nil {
				return err
			}
			idx := span.NewIndex(args[0], source)
			items, diags := parser.Parse(source)
			a.logger.Debug("parsed", "file", args[0], "items", len(items), "diagnostics", len(diags))

			output := map[string]interface{}{
				"ast":         ast.ItemsToMap(items),
				"diagnostics": diagsToSlice(idx, diags),
			}

			switch format {
			case "json":
				err = printJSON(a.stdout, output)
			case "yaml":
				err = printYAML(a.stdout, output)
			case "source":
				fmt.Fprint(a.stdout, a.printer().File(items))
				a.printDiags(a.stderr, idx, diags)
			default:
				return fmt.Errorf("unknown format %q (want json, yaml or source)", format)
			}
			if err != nil {
				return err
			}

			if len(diags) > 0 {
				return errDiagnostics
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format: json, yaml or source (default from config)")
	return cmd
}

// ---- check command ----

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Report the diagnostics of one or more files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, path := range args {
				ok, err := a.check(path)
				if err != nil {
					return err
				}
				if !ok {
					failed = true
				}
			}
			if failed {
				return errDiagnostics
			}
			return nil
		},
	}
}

// check parses path and prints its diagnostics. It reports whether the file
// was clean.
func (a *app) check(path string) (bool, error) {
	source, err := a.readSource(path)
	if err != nil {
		return false, err
	}
	idx := span.NewIndex(path, source)
	_, diags := parser.Parse(source)

	if len(diags) == 0 {
		fmt.Fprintf(a.stdout, "%s %s\n", a.styles.render(a.styles.success, "ok"), path)
		return true, nil
	}

	a.printDiags(a.stdout, idx, diags)
	fmt.Fprintf(a.stdout, "%s %s: %d %s\n", a.styles.render(a.styles.errorCode, "FAIL"), path,
		len(diags), plural(len(diags), "diagnostic", "diagnostics"))
	return false, nil
}

// ---- fmt command ----

func (a *app) fmtCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Print a file in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			source, err := a.readSource(path)
			if err != nil {
				return err
			}
			formatted, diags := a.format(source)
			if len(diags) > 0 {
				// the printed form of error nodes would lose source text
				a.printDiags(a.stderr, span.NewIndex(path, source), diags)
				return errDiagnostics
			}

			if !write {
				fmt.Fprint(a.stdout, formatted)
				return nil
			}
			if formatted == source {
				a.logger.Debug("already formatted", "file", path)
				return nil
			}
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
				return fmt.Errorf("cannot write file %s: %w", path, err)
			}
			a.logger.Info("formatted", "file", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the file")
	return cmd
}

func (a *app) format(source string) (string, []diag.Diagnostic) {
	items, diags := parser.Parse(source)
	if len(diags) > 0 {
		return "", diags
	}
	return a.printer().File(items), nil
}

func (a *app) printer() *printer.Printer {
	return printer.New(printer.Options{
		IndentSize: a.cfg.Fmt.IndentSize,
		PreferTabs: a.cfg.Fmt.UseTabs,
	})
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Command spark is the CLI entry point for the spark-lang front end.
//
// Usage:
//
//	spark tokens <file> [--json]                 Print tokens
//	spark parse  <file> [--format json|yaml|source]
//	spark check  <file>...                       Report diagnostics
//	spark fmt    <file> [-w]                     Print canonical source
//	spark watch  <file>                          Re-check on every change
//	spark repl                                   Start interactive REPL
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"spark-lang/internal/config"

	"github.com/spf13/cobra"
)

// errDiagnostics signals that a command ran but the source had problems. It is
// already reported, so main only sets the exit status.
var errDiagnostics = errors.New("source has diagnostics")

// app carries the state shared by all subcommands.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	styles styles

	stdout io.Writer
	stderr io.Writer

	configPath string
	debug      bool
	noColor    bool
}

func main() {
	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	if err := a.rootCmd().Execute(); err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "spark",
		Short:         "Tokenize, parse and format spark-lang sources",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to spark.toml (default: $SPARK_CONFIG or ./spark.toml)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		a.tokensCmd(),
		a.parseCmd(),
		a.checkCmd(),
		a.fmtCmd(),
		a.watchCmd(),
		a.replCmd(),
	)
	return root
}

// setup loads configuration and builds the logger and styles.
func (a *app) setup() error {
	cfg, err := config.Resolve(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if a.debug {
		level = slog.LevelDebug
	}
	a.logger = newLogger(a.stderr, level)
	a.styles = newStyles(a.stdout, colorMode(cfg.Output.Color, a.noColor))

	a.logger.Debug("configuration loaded", "path", a.configPath, "format", cfg.Output.Format, "color", cfg.Output.Color)
	return nil
}

// newLogger returns a text logger without time and level attributes.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			if a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func (a *app) readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read file %s: %w", path, err)
	}
	a.logger.Debug("read source", "file", path, "bytes", len(data))
	return string(data), nil
}

// Package config loads the optional spark.toml used by the command line tool.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the name looked up in the working directory.
const FileName = "spark.toml"

// EnvVar names the environment variable that points at a config file.
const EnvVar = "SPARK_CONFIG"

// Config holds the complete tool configuration
type Config struct {
	Output OutputConfig `toml:"output"`
	Fmt    FmtConfig    `toml:"fmt"`
	REPL   REPLConfig   `toml:"repl"`
	Log    LogConfig    `toml:"log"`
	Watch  WatchConfig  `toml:"watch"`
}

// OutputConfig controls how trees and diagnostics are printed
type OutputConfig struct {
	Format string `toml:"format"` // json, yaml or source
	Color  string `toml:"color"`  // auto, always or never
}

// FmtConfig controls the canonical printer
type FmtConfig struct {
	IndentSize int  `toml:"indent_size"`
	UseTabs    bool `toml:"use_tabs"`
}

// REPLConfig holds interactive shell settings
type REPLConfig struct {
	Prompt      string `toml:"prompt"`
	HistoryFile string `toml:"history_file"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level"`
}

// WatchConfig holds file watcher settings
type WatchConfig struct {
	Debounce Duration `toml:"debounce"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file. Keys the tool does not know are
// rejected so that typos do not pass silently.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	// only a missing indent_size gets the default; an explicit zero is invalid
	if md.IsDefined("fmt", "indent_size") && cfg.Fmt.IndentSize == 0 {
		return nil, fmt.Errorf("invalid config %s: fmt.indent_size must be between 1 and 16, got 0", path)
	}

	cfg.applyDefaults()
	cfg.REPL.HistoryFile = os.ExpandEnv(cfg.REPL.HistoryFile)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Find returns the config file to use: $SPARK_CONFIG, then ./spark.toml, then
// the user config directory. It reports false when none exists.
func Find() (string, bool) {
	if path := os.Getenv(EnvVar); path != "" {
		return path, true
	}

	candidates := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "spark", FileName))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// Resolve loads path when it is set, otherwise the file reported by Find, and
// falls back to Default when there is none.
func Resolve(path string) (*Config, error) {
	if path == "" {
		found, ok := Find()
		if !ok {
			return Default(), nil
		}
		path = found
	}
	return Load(path)
}

// applyDefaults sets default values for missing configuration. Zero values
// count as missing.
func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = "json"
	}
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}

	if c.Fmt.IndentSize == 0 {
		c.Fmt.IndentSize = 4
	}

	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "spark> "
	}

	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}

	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 100 * time.Millisecond
	}
}

// Validate checks enumerated and numeric settings.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "json", "yaml", "source":
	default:
		return fmt.Errorf("output.format must be json, yaml or source, got %q", c.Output.Format)
	}

	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color must be auto, always or never, got %q", c.Output.Color)
	}

	if c.Fmt.IndentSize < 1 || c.Fmt.IndentSize > 16 {
		return fmt.Errorf("fmt.indent_size must be between 1 and 16, got %d", c.Fmt.IndentSize)
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	if c.Watch.Debounce.Duration < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	return nil
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const plainConfig = "[output]\ncolor = \"never\"\n"

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes the CLI with a private config file so the tests never pick up
// a spark.toml from the environment.
func run(t *testing.T, configText string, args ...string) result {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "spark.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configText), 0o644))

	var stdout, stderr bytes.Buffer
	a := &app{stdout: &stdout, stderr: &stderr}
	root := a.rootCmd()
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeSource(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.spk")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func TestTokens(t *testing.T) {
	path := writeSource(t, "let x = 1;")

	res := run(t, plainConfig, "tokens", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "KW_LET")
	assert.Contains(t, res.stdout, `"x"`)
	assert.Contains(t, res.stdout, "SEMICOLON")
	assert.Contains(t, res.stdout, "EOF")
}

func TestTokensJSON(t *testing.T) {
	path := writeSource(t, "a <> b")

	res := run(t, plainConfig, "tokens", "--json", path)
	require.NoError(t, res.err)

	var out struct {
		Tokens []struct {
			Kind  string `json:"kind"`
			Text  string `json:"text"`
			Start int    `json:"start"`
			End   int    `json:"end"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	require.Len(t, out.Tokens, 4)
	assert.Equal(t, "NEQ", out.Tokens[1].Kind)
	assert.Equal(t, "<>", out.Tokens[1].Text)
	assert.Equal(t, "EOF", out.Tokens[3].Kind)
	assert.Equal(t, 6, out.Tokens[3].Start)
}

func TestTokensInvalid(t *testing.T) {
	res := run(t, plainConfig, "tokens", writeSource(t, "a & b"))
	assert.ErrorIs(t, res.err, errDiagnostics)
	assert.Contains(t, res.stdout, "ERROR")
}

func TestParseJSON(t *testing.T) {
	path := writeSource(t, "fn main() { let x = 1 + 2; }")

	res := run(t, plainConfig, "parse", path)
	require.NoError(t, res.err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	tree := out["ast"].(map[string]interface{})
	assert.Equal(t, "File", tree["kind"])
	items := tree["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Function", items[0].(map[string]interface{})["kind"])
	assert.Empty(t, out["diagnostics"])
}

func TestParseYAMLFromConfig(t *testing.T) {
	path := writeSource(t, "struct S { a: Int }")

	res := run(t, plainConfig+"format = \"yaml\"\n", "parse", path)
	require.NoError(t, res.err)

	var out map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &out))
	tree := out["ast"].(map[string]interface{})
	items := tree["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Struct", items[0].(map[string]interface{})["kind"])
}

func TestParseSourceWithDiagnostics(t *testing.T) {
	path := writeSource(t, "fn f() { * ; x = 1; }")

	res := run(t, plainConfig, "parse", "--format", "source", path)
	assert.ErrorIs(t, res.err, errDiagnostics)
	assert.Equal(t, "fn f() {\n    // error[E002]: unknown start of statement: *\n    x = 1;\n}\n", res.stdout)
	assert.Contains(t, res.stderr, "[E002]")
}

func TestParseUnknownFormat(t *testing.T) {
	res := run(t, plainConfig, "parse", "--format", "xml", writeSource(t, ""))
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "unknown format")
}

func TestCheck(t *testing.T) {
	good := writeSource(t, "fn f() {}")
	bad := writeSource(t, "fn f() { * ; }\n")

	res := run(t, plainConfig, "check", good)
	require.NoError(t, res.err)
	assert.Equal(t, "ok "+good+"\n", res.stdout)

	res = run(t, plainConfig, "check", good, bad)
	assert.ErrorIs(t, res.err, errDiagnostics)
	want := fmt.Sprintf("ok %s\n%s:1:10: [E002] unknown start of statement: *\n"+
		"   1 | fn f() { * ; }\n"+
		"     |          ^\n"+
		"FAIL %s: 1 diagnostic\n", good, bad, bad)
	assert.Equal(t, want, res.stdout)
}

func TestCheckMissingFile(t *testing.T) {
	res := run(t, plainConfig, "check", filepath.Join(t.TempDir(), "nope.spk"))
	require.Error(t, res.err)
	assert.NotErrorIs(t, res.err, errDiagnostics)
	assert.Contains(t, res.err.Error(), "cannot read file")
}

func TestFmt(t *testing.T) {
	path := writeSource(t, "fn main(){let x=1+2*3;}")

	res := run(t, plainConfig, "fmt", path)
	require.NoError(t, res.err)
	assert.Equal(t, "fn main() {\n    let x = 1 + (2 * 3);\n}\n", res.stdout)

	res = run(t, plainConfig+"[fmt]\nuse_tabs = true\n", "fmt", "-w", path)
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fn main() {\n\tlet x = 1 + (2 * 3);\n}\n", string(data))
}

func TestFmtRefusesBrokenSource(t *testing.T) {
	src := "fn main() { let x = ; }"
	path := writeSource(t, src)

	res := run(t, plainConfig, "fmt", "-w", path)
	assert.ErrorIs(t, res.err, errDiagnostics)
	assert.Contains(t, res.stderr, "[E006]")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, src, string(data))
}

func TestBadConfig(t *testing.T) {
	res := run(t, "[output]\nformat = \"xml\"\n", "check", writeSource(t, ""))
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "output.format")
}

func testApp(t *testing.T) (*app, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "spark.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(plainConfig), 0o644))

	var stdout, stderr bytes.Buffer
	a := &app{stdout: &stdout, stderr: &stderr, configPath: cfgPath}
	require.NoError(t, a.setup())
	return a, &stdout, &stderr
}

func TestWatchStopsOnCancel(t *testing.T) {
	a, stdout, _ := testApp(t)
	path := writeSource(t, "fn f() {}")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, a.watch(ctx, path))
	assert.Equal(t, "ok "+path+"\n", stdout.String())
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Two writes inside the debounce window produce one check of the final
// contents, never of the intermediate state.
func TestWatchChecksSettledContents(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "spark.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(plainConfig+"[watch]\ndebounce = \"300ms\"\n"), 0o644))

	var stdout, stderr syncBuffer
	a := &app{stdout: &stdout, stderr: &stderr, configPath: cfgPath}
	require.NoError(t, a.setup())

	path := writeSource(t, "fn f() {}")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.watch(ctx, path) }()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	require.Eventually(t, func() bool {
		return strings.Count(stdout.String(), "ok "+path) == 1
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("fn f() {"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("fn g() {}"), 0o644))

	require.Eventually(t, func() bool {
		return strings.Count(stdout.String(), "ok "+path) == 2
	}, 5*time.Second, 10*time.Millisecond)
	assert.NotContains(t, stdout.String(), "FAIL")
}

func TestClassifyEntry(t *testing.T) {
	tests := []struct {
		source string
		want   entryKind
	}{
		{"fn f() {}", entryItems},
		{"struct S {}", entryItems},
		{"let x = 1;", entryStatements},
		{"x = 2;", entryStatements},
		{"if (a) {}", entryStatements},
		{"{ x = 1; }", entryStatements},
		{"x == 2", entryExpression},
		{"f(1)", entryExpression},
		{"-1", entryExpression},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyEntry(tt.source))
		})
	}
}

func TestEvalEntry(t *testing.T) {
	tests := []struct {
		source  string
		stdout  string
		inError string
	}{
		{source: "1+2*3", stdout: "1 + (2 * 3)\n"},
		{source: "let x = 1; x = x ^ 2;", stdout: "let x = 1;\nx = x ^ 2;\n"},
		{source: "fn f(a: Int) {}\n", stdout: "fn f(a: Int) {}\n"},
		{source: "a)", inError: "expected the end of input, found )"},
		{source: "a b", inError: "[E004]"},
		{source: "let = 1;", inError: "[E001]"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			a, _, _ := testApp(t)
			var stdout, stderr bytes.Buffer
			a.evalEntry(&stdout, &stderr, tt.source)

			assert.Equal(t, tt.stdout, stdout.String())
			if tt.inError == "" {
				assert.Empty(t, stderr.String())
			} else {
				assert.Contains(t, stderr.String(), tt.inError)
			}
		})
	}
}

func TestColorMode(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.Equal(t, colorNever, colorMode("always", true))
	assert.Equal(t, colorAlways, colorMode("always", false))
	assert.Equal(t, colorNever, colorMode("never", false))
	assert.Equal(t, colorAuto, colorMode("auto", false))

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, colorNever, colorMode("auto", false))
	assert.Equal(t, colorAlways, colorMode("always", false))
}

func TestStyles(t *testing.T) {
	var buf bytes.Buffer

	plain := newStyles(&buf, colorNever)
	assert.Equal(t, "[E001]", plain.render(plain.errorCode, "[E001]"))

	// a buffer is not a terminal
	auto := newStyles(&buf, colorAuto)
	assert.Equal(t, "[E001]", auto.render(auto.errorCode, "[E001]"))

	colored := newStyles(&buf, colorAlways)
	got := colored.render(colored.errorCode, "[E001]")
	assert.NotEqual(t, "[E001]", got)
	assert.Contains(t, got, "[E001]")
}

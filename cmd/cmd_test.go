package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyuz43/jsast-go/internal/ast"
	"github.com/soyuz43/jsast-go/internal/session"
	"github.com/soyuz43/jsast-go/test"
)

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExampleCommand(t *testing.T) {
	out, _, err := run(t, "example")
	require.NoError(t, err)
	assert.Equal(t, session.ExampleSource, out)
}

func TestParseCommandJSON(t *testing.T) {
	src := test.WriteTempFile(t, "answer.js", "const answer = 42;\n")
	saved := filepath.Join(t.TempDir(), "answer")

	out, errOut, err := run(t, "parse", "--backend", "goja", "--format", "json", "--out", saved, src)
	require.NoError(t, err)

	tree, err := ast.Unmarshal([]byte(out))
	require.NoError(t, err)
	typ, _ := tree.(*ast.Object).Type()
	assert.Equal(t, "Program", typ)
	assert.Contains(t, errOut, "AST saved")
	assert.Equal(t, out, test.ReadFile(t, saved+".json"))
	parseOut = ""
}

func TestParseCommandTree(t *testing.T) {
	src := test.WriteTempFile(t, "sum.js", "1 + 2;\n")

	out, _, err := run(t, "parse", "--backend", "goja", "--format", "tree", "--ascii", "--max-depth", "0", src)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "Program (Program)", lines[0])
	assert.Contains(t, out, "`-- ")
	parseASCII = false
}

func TestParseCommandEmptyInput(t *testing.T) {
	src := test.WriteTempFile(t, "empty.js", "  \n\n")

	out, errOut, err := run(t, "parse", "--backend", "goja", "--format", "tree", src)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "please enter JavaScript code")
}

func TestParseCommandSyntaxError(t *testing.T) {
	src := test.WriteTempFile(t, "broken.js", "function (")

	out, _, err := run(t, "parse", "--backend", "goja", "--format", "tree", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JavaScript parse error")
	assert.Empty(t, out)
}

func TestParseCommandWithoutParser(t *testing.T) {
	src := test.WriteTempFile(t, "ok.js", "1;")

	_, _, err := run(t, "parse", "--backend", "none", "--format", "tree", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no JavaScript parser library available")
	assert.Contains(t, err.Error(), "goja")
}

func TestParseCommandRejectsBadFormat(t *testing.T) {
	_, _, err := run(t, "parse", "--format", "yaml", os.DevNull)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --format")
	parseFormat = formatTree
}

func TestConfigShow(t *testing.T) {
	out, _, err := run(t, "config", "show", "--backend", "goja")
	require.NoError(t, err)
	assert.Contains(t, out, "backend: goja")
	assert.Contains(t, out, "level: info")
}

func TestBackendsCommand(t *testing.T) {
	out, _, err := run(t, "backends", "--backend", "goja")
	require.NoError(t, err)
	assert.Contains(t, out, "tree-sitter")
	assert.Contains(t, out, "Selected: goja")
}

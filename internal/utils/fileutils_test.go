package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.js")
	require.NoError(t, os.WriteFile(good, []byte("let ü = 1;"), 0644))

	src, err := ReadSource(good)
	require.NoError(t, err)
	assert.Equal(t, "let ü = 1;", src)

	bad := filepath.Join(dir, "bad.js")
	require.NoError(t, os.WriteFile(bad, []byte{'a', 0xff, 'b'}, 0644))
	_, err = ReadSource(bad)
	assert.True(t, errors.Is(err, ErrInvalidUTF8))

	_, err = ReadSource(filepath.Join(dir, "missing.js"))
	assert.Error(t, err)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ast.json")

	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))
	require.NoError(t, WriteFileAtomic(path, []byte("new"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "nope", "ast.json"), []byte("x"), 0644)
	assert.Error(t, err)
}

func TestEnsureExtension(t *testing.T) {
	tests := []struct{ in, want string }{
		{"ast", "ast.json"},
		{"ast.json", "ast.json"},
		{"ast.txt", "ast.txt"},
		{"dir.d/ast", "dir.d/ast.json"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EnsureExtension(tt.in, ".json"), tt.in)
	}
}

func TestPortFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	require.NoError(t, WritePortFile(dir, 4317))

	port, err := ReadPortFile(dir)
	require.NoError(t, err)
	assert.Equal(t, 4317, port)

	require.NoError(t, DeletePortFile(dir))
	require.NoError(t, DeletePortFile(dir))
	_, err = ReadPortFile(dir)
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "hel…", Truncate("hello", 4))
	assert.Equal(t, "…", Truncate("hello", 1))
	assert.Equal(t, "", Truncate("hello", 0))
}

func TestNewLogger(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "jsast.log")
	logger, closer, err := NewLogger("debug", logFile, nil)
	require.NoError(t, err)
	Component(logger, "test").Debug("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "component=test")
	assert.Contains(t, string(data), "hello")

	_, _, err = NewLogger("loud", "", nil)
	assert.Error(t, err)
}

package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "app.js")
	require.NoError(t, os.WriteFile(target, []byte("1;"), 0644))

	logger, _ := logtest.NewNullLogger()
	w, err := New(target, 20*time.Millisecond, logrus.NewEntry(logger))
	require.NoError(t, err)

	changes := make(chan string, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(path string) { changes <- path })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.js"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(target, []byte("2;"), 0644))

	select {
	case got := <-changes:
		assert.Equal(t, w.Path(), got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewDefaults(t *testing.T) {
	w, err := New("relative.js", 0, nil)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(w.Path()))
	assert.Equal(t, DefaultDebounce, w.debounce)
}

func TestRunMissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "gone", "app.js"), 0, nil)
	require.NoError(t, err)
	assert.Error(t, w.Run(context.Background(), func(string) {}))
}

// internal/watcher/watcher.go

package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce coalesces the burst of events most editors emit per save.
const DefaultDebounce = 150 * time.Millisecond

// FileWatcher reports changes to a single file. It watches the parent
// directory so that editors which save through rename are still seen.
type FileWatcher struct {
	path     string
	debounce time.Duration
	log      *logrus.Entry
}

// New creates a watcher for path. A zero debounce uses DefaultDebounce.
func New(path string, debounce time.Duration, log *logrus.Entry) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &FileWatcher{path: abs, debounce: debounce, log: log.WithField("file", abs)}, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Run blocks until ctx is done, calling onChange after every write, create or
// rename of the file. Calls never overlap.
func (w *FileWatcher) Run(ctx context.Context, onChange func(path string)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return errors.Wrapf(err, "failed to watch %s", filepath.Dir(w.path))
	}
	w.log.Debug("Watching for changes")

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.log.WithField("op", event.Op.String()).Debug("Detected change")
			timer.Reset(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("Watcher error")
		case <-timer.C:
			onChange(w.path)
		}
	}
}

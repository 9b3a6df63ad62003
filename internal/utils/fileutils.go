// internal/utils/fileutils.go

package utils

import (
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ErrInvalidUTF8 is returned when a source file is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("file is not valid UTF-8")

// ReadSource reads a whole file as UTF-8 text. The path "-" reads from stdin.
func ReadSource(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", path)
	}
	if !utf8.Valid(data) {
		return "", errors.Wrapf(ErrInvalidUTF8, "failed to decode %s", path)
	}
	return string(data), nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place, so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary file")
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return errors.Wrap(err, "failed to write temporary file")
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return errors.Wrap(err, "failed to flush temporary file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "failed to close temporary file")
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "failed to set file permissions")
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "failed to move file into place at %s", path)
	}
	return nil
}

// EnsureExtension appends ext when path has no extension at all.
func EnsureExtension(path, ext string) string {
	if path == "" || filepath.Ext(path) != "" {
		return path
	}
	return path + ext
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

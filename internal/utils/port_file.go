// internal/utils/port_file.go

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const portFileName = "serve.port"

// WritePortFile records the port of a running server in dir, so editor
// integrations can find it.
func WritePortFile(dir string, port int) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return errors.Wrap(err, "failed to create port file directory")
	}
	data := []byte(fmt.Sprintf("%d", port))
	if err := WriteFileAtomic(filepath.Join(dir, portFileName), data, 0640); err != nil {
		return errors.Wrap(err, "failed to write port file")
	}
	return nil
}

// ReadPortFile reads the port written by WritePortFile.
func ReadPortFile(dir string) (int, error) {
	data, err := os.ReadFile(filepath.Join(dir, portFileName))
	if err != nil {
		return 0, errors.Wrap(err, "failed to read port file")
	}

	var port int
	if _, err := fmt.Sscanf(strings.TrimSpace(string(data)), "%d", &port); err != nil {
		return 0, errors.Wrap(err, "failed to parse port number")
	}
	return port, nil
}

// DeletePortFile removes the port file. A missing file is not an error.
func DeletePortFile(dir string) error {
	if err := os.Remove(filepath.Join(dir, portFileName)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to delete port file")
	}
	return nil
}

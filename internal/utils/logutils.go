// internal/utils/logutils.go

package utils

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// NewLogger builds a logrus logger at the given level. Output goes to the log
// file when one is set, otherwise to fallback. A nil fallback discards output.
// The returned closer releases the log file, if any.
func NewLogger(level, file string, fallback io.Writer) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "invalid log level %q", level)
	}
	logger.SetLevel(lvl)

	if file == "" {
		if fallback == nil {
			fallback = io.Discard
		}
		logger.SetOutput(fallback)
		return logger, nopCloser{}, nil
	}

	file = ExpandHome(file)
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return nil, nil, errors.Wrap(err, "failed to create logs directory")
	}
	f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open log file")
	}
	logger.SetOutput(f)
	return logger, f, nil
}

// Component returns an entry tagged with the component name.
func Component(logger *logrus.Logger, name string) *logrus.Entry {
	return logger.WithField("component", name)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

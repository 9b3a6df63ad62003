package jsparser

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Entry {
	logger, _ := test.NewNullLogger()
	return logrus.NewEntry(logger)
}

func TestProbeReportsEveryBackend(t *testing.T) {
	results := Probe(Options{})
	require.Len(t, results, len(Backends()))
	for _, r := range results {
		assert.True(t, r.Available(), "%s: %v", r.Name, r.Err)
		assert.NotEmpty(t, r.Description)
	}
}

func TestSelectAutoPrefersTreeSitter(t *testing.T) {
	p, err := Select("", Options{}, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, TreeSitterBackend, p.Name())

	p, err = Select("AUTO", Options{}, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, TreeSitterBackend, p.Name())
}

func TestSelectNamedBackend(t *testing.T) {
	p, err := Select("goja", Options{}, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, GojaBackend, p.Name())
}

func TestSelectNone(t *testing.T) {
	p, err := Select("none", Options{}, quietLogger())
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrMissingParser)
}

func TestSelectUnknown(t *testing.T) {
	_, err := Select("esprima", Options{}, quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parser backend")
	assert.NotErrorIs(t, err, ErrMissingParser)
}

func TestBackendNames(t *testing.T) {
	assert.Equal(t, []string{AutoBackend, TreeSitterBackend, GojaBackend, NoBackend}, BackendNames())
}

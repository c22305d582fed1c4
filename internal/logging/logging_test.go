package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesLogfmt(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Info("collected", "widgets", 3)
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "msg=collected")
	assert.Contains(t, out, "widgets=3")
	assert.Contains(t, out, "prefix=rtop")
	assert.NotContains(t, out, "hidden")
}

func TestNewDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Debug("tick")
	assert.Contains(t, buf.String(), "msg=tick")
}

func TestOpenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rtop.log")

	for _, msg := range []string{"first", "second"} {
		logger, closer, err := Open(path, false)
		require.NoError(t, err)
		logger.Info(msg)
		require.NoError(t, closer.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=first")
	assert.Contains(t, string(data), "msg=second")
}

func TestOpenFailsOnMissingDirectory(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "missing", "rtop.log"), false)
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	require.NotNil(t, logger)
	logger.Error("nothing to see")
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "rtop.log", filepath.Base(DefaultPath()))
}

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLoggerWritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rpncalc.log")

	logger, err := NewLogger(WithPaths(path), WithVerbose(true))
	require.NoError(t, err)

	logger.Debugw("converted", "postfix", "3 4 +")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "converted")
	assert.Contains(t, string(data), "rpncalc")
	assert.Contains(t, string(data), "3 4 +")
}

func TestNewLoggerDefaultLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rpncalc.log")

	logger, err := NewLogger(WithPaths(path), WithVerbose(false))
	require.NoError(t, err)

	logger.Debugf("hidden")
	logger.Infof("shown")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNewLoggerLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rpncalc.log")

	logger, err := NewLogger(WithPaths(path), WithLevel(zap.NewAtomicLevelAt(zap.WarnLevel)), WithEncoding("json"))
	require.NoError(t, err)

	logger.Infof("hidden")
	logger.Warnw("shown", "pos", 3)
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), `"pos":3`)
}

func TestNewLoggerBadEncoding(t *testing.T) {
	_, err := NewLogger(WithEncoding("bogus"))
	assert.Error(t, err)
}

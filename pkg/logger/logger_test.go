package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(file, "info")
	require.NoError(t, err)

	log.Info("slot %s reopened", "2024-06-10_1000")
	log.Debug("should be filtered")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "slot 2024-06-10_1000 reopened")
	assert.NotContains(t, string(data), "should be filtered")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}

package logx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAppendsTimestampedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apply.log")

	logger, err := Open(path, false)
	require.NoError(t, err)
	logger.Printf("hello %s", "world")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello world")
}

func TestOpenEmptyPathDiscardsWrites(t *testing.T) {
	logger, err := Open("", false)
	require.NoError(t, err)
	logger.Printf("should not panic")
	assert.NoError(t, logger.Close())
}

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenOutputStdout(t *testing.T) {
	w, closeFn, err := openOutput("")
	require.NoError(t, err)
	defer closeFn()

	assert.Equal(t, os.Stdout, w)
}

func TestOpenOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")

	w, closeFn, err := openOutput(path)
	require.NoError(t, err)

	_, err = w.Write([]byte("=== Traffic captured on eth0 ===\n"))
	require.NoError(t, err)
	closeFn()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Traffic captured on eth0")
}

func TestOpenOutputBadPath(t *testing.T) {
	_, _, err := openOutput(filepath.Join(t.TempDir(), "missing", "report.txt"))
	assert.Error(t, err)
}

package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteMachineFile writes a machine definition into a fresh temporary
// directory and returns the absolute path of the file. The directory is
// removed when the test ends. It fails the test immediately on error.
func WriteMachineFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write machine file")

	return path
}

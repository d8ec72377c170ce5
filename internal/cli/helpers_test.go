package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const (
	studioScene  = "testdata/scenes/studio.txt"
	badSurface   = "testdata/scenes/bad_surface.txt"
	brokenScene  = "testdata/scenes/broken.txt"
	hallsPackage = "testdata/halls"
)

// execute runs cmd with args and returns stdout and the command error.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeScene writes content to a file named name in a temp dir.
func writeScene(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "scenes.db")
}

package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// newBundle generates Acme\BlogBundle below a temporary src directory and
// returns the bundle directory.
func newBundle(t *testing.T) string {
	t.Helper()
	src := t.TempDir()
	_, err := execute(t, "generate", "bundle", "--namespace", "Acme/BlogBundle", "--dir", src)
	require.NoError(t, err)
	return filepath.Join(src, "Acme", "BlogBundle")
}

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bundlegen/cli/internal/testutil"
)

func TestNewConfigInitCmd(t *testing.T) {
	cmd := NewConfigInitCmd()

	assert.Equal(t, "init", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotNil(t, cmd.Flags().Lookup("force"))
}

func TestConfigInit(t *testing.T) {
	home := testutil.IsolateEnv(t)
	path := filepath.Join(home, ".bundlegen", "config.yaml")

	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "format: yml")
	assert.Contains(t, string(content), "office: default")

	dirInfo, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())

	fileInfo, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fileInfo.Mode().Perm())

	t.Run("refuses to overwrite", func(t *testing.T) {
		_, err := execute(t, "config", "init")
		require.Error(t, err)
		assert.Equal(t, ExitTargetConflict, ExitCodeFromError(err))
	})

	t.Run("force overwrites", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("format: xml\n"), 0o600))

		_, err := execute(t, "config", "init", "--force")
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "format: yml")
	})

	t.Run("generated file passes vet", func(t *testing.T) {
		out, err := execute(t, "config", "vet")
		require.NoError(t, err)
		assert.Contains(t, out, "Configuration is valid")
	})
}

func TestConfigInitCustomPath(t *testing.T) {
	testutil.IsolateEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "bundlegen.yaml")

	_, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestConfigVet(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode int
	}{
		{
			name: "valid",
			content: `format: php
office: Backend
modules:
  AcmeBlogBundle:
    namespace: Acme\BlogBundle
    dir: src/Acme/BlogBundle
`,
			wantCode: ExitSuccess,
		},
		{
			name:     "unknown format",
			content:  "format: toml\n",
			wantCode: ExitValidationError,
		},
		{
			name:     "unknown office",
			content:  "office: api\n",
			wantCode: ExitValidationError,
		},
		{
			name: "module namespace without Bundle",
			content: `modules:
  AcmeBlogBundle:
    namespace: Acme\Blog
    dir: src
`,
			wantCode: ExitValidationError,
		},
		{
			name:     "malformed yaml",
			content:  "format: [yml\n",
			wantCode: ExitValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.IsolateEnv(t)
			path := testutil.WriteFile(t, t.TempDir(), "config.yaml", tt.content)

			_, err := execute(t, "config", "vet", "--config", path)
			assert.Equal(t, tt.wantCode, ExitCodeFromError(err))
		})
	}
}

func TestConfigVetMissingFile(t *testing.T) {
	testutil.IsolateEnv(t)

	_, err := execute(t, "config", "vet")
	require.Error(t, err)
	assert.Equal(t, ExitNotFound, ExitCodeFromError(err))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		content := `
format: xml
office: backend
routePrefix: /admin
templatesDir: /opt/templates
log:
  timestamps: false
modules:
  AcmeBlogBundle:
    namespace: Acme\BlogBundle
    dir: src/Acme/BlogBundle
`
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

		cfg, err := NewLoader().Load(configFile)
		require.NoError(t, err)

		assert.Equal(t, "xml", cfg.Format)
		assert.Equal(t, "backend", cfg.Office)
		assert.Equal(t, "/admin", cfg.RoutePrefix)
		assert.Equal(t, "/opt/templates", cfg.TemplatesDir)
		require.NotNil(t, cfg.Log.Timestamps)
		assert.False(t, *cfg.Log.Timestamps)

		m, ok := cfg.Module("AcmeBlogBundle")
		require.True(t, ok)
		assert.Equal(t, `Acme\BlogBundle`, m.Namespace)
		assert.Equal(t, "src/Acme/BlogBundle", m.Dir)
	})

	t.Run("returns empty config for missing file", func(t *testing.T) {
		cfg, err := NewLoader().Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))

		require.NoError(t, err)
		assert.Empty(t, cfg.Format)
		assert.Empty(t, cfg.Modules)
	})

	t.Run("loads from environment variables", func(t *testing.T) {
		t.Setenv(EnvFormat, "php")
		t.Setenv(EnvOffice, "frontend")
		t.Setenv(EnvRoutePrefix, "/shop")

		cfg, err := NewLoader().Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "php", cfg.Format)
		assert.Equal(t, "frontend", cfg.Office)
		assert.Equal(t, "/shop", cfg.RoutePrefix)
	})

	t.Run("env overrides file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("format: xml\n"), 0o644))
		t.Setenv(EnvFormat, "annotation")

		cfg, err := NewLoader().Load(configFile)
		require.NoError(t, err)
		assert.Equal(t, "annotation", cfg.Format)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("format: [unterminated\n"), 0o644))

		_, err := NewLoader().Load(configFile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config file")
	})
}

func TestLoaderFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/bundlegen.yaml", []byte("office: backend\n"), 0o644))

	cfg, err := NewLoaderFs(fs).LoadWithDefaults("/etc/bundlegen.yaml")
	require.NoError(t, err)
	assert.Equal(t, "backend", cfg.Office)
	assert.Equal(t, "yml", cfg.Format)
}

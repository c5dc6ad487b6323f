package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/bundlegen/cli/internal/errors"
)

func boolPtr(b bool) *bool { return &b }

func TestValidatorValidate(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name      string
		cfg       *Config
		wantField string
	}{
		{name: "empty", cfg: &Config{}},
		{name: "defaults", cfg: DefaultConfig()},
		{
			name: "full",
			cfg: &Config{
				Format:       "annotation",
				Office:       "Backend",
				RoutePrefix:  "/admin",
				TemplatesDir: "/opt/templates",
				Log:          LogConfig{Timestamps: boolPtr(true)},
				Modules: map[string]ModuleConfig{
					"acmeblogbundle": {Namespace: `Acme\BlogBundle`, Dir: "src/Acme/BlogBundle"},
					"AcmeShopBundle": {Namespace: "Acme/ShopBundle", Dir: "src/Acme/ShopBundle"},
				},
			},
		},
		{name: "unknown format", cfg: &Config{Format: "toml"}, wantField: "format"},
		{name: "unknown office", cfg: &Config{Office: "api"}, wantField: "office"},
		{
			name: "namespace without bundle suffix",
			cfg: &Config{Modules: map[string]ModuleConfig{
				"acmeblogbundle": {Namespace: `Acme\Blog`, Dir: "src"},
			}},
			wantField: "modules.acmeblogbundle.namespace",
		},
		{
			name: "module name without bundle suffix",
			cfg: &Config{Modules: map[string]ModuleConfig{
				"blog": {Namespace: `Acme\BlogBundle`, Dir: "src"},
			}},
			wantField: "modules.blog",
		},
		{
			name: "module without dir",
			cfg: &Config{Modules: map[string]ModuleConfig{
				"acmeblogbundle": {Namespace: `Acme\BlogBundle`},
			}},
			wantField: "modules.acmeblogbundle.dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.cfg)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, oerrors.ErrConfiguration)

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.NotEmpty(t, verrs)

			var fields []string
			for _, e := range verrs {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestValidatorValidateFile(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("format: yml\noffice: sideways\n"), 0o644))

	err = v.ValidateFile(configFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "office")
}

func TestValidationErrorsError(t *testing.T) {
	assert.Equal(t, "no validation errors", ValidationErrors{}.Error())

	errs := ValidationErrors{{Field: "office", Message: "invalid value"}}
	assert.Contains(t, errs.Error(), "config validation failed:")
	assert.Contains(t, errs.Error(), "office: invalid value")
}

// Package config provides configuration loading and management.
package config

import (
	"strings"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
}

// ModuleConfig locates a bundle that crud and form generation target.
type ModuleConfig struct {
	// Namespace is the bundle namespace, e.g. `Acme\BlogBundle`.
	Namespace string `mapstructure:"namespace" json:"namespace" yaml:"namespace"`

	// Dir is the bundle root directory.
	Dir string `mapstructure:"dir" json:"dir" yaml:"dir"`
}

// Config represents the bundlegen configuration.
// Loaded from ~/.bundlegen/config.yaml, validated against the embedded CUE schema.
type Config struct {
	// Format is the default routing and service configuration format.
	// Env: BUNDLEGEN_FORMAT, Default: "yml"
	Format string `mapstructure:"format" json:"format,omitempty" yaml:"format"`

	// Office is the default office for crud generation.
	// Env: BUNDLEGEN_OFFICE, Default: "default"
	Office string `mapstructure:"office" json:"office,omitempty" yaml:"office"`

	// RoutePrefix is the default route prefix for crud generation.
	// Env: BUNDLEGEN_ROUTE_PREFIX
	RoutePrefix string `mapstructure:"routePrefix" json:"routePrefix,omitempty" yaml:"routePrefix,omitempty"`

	// TemplatesDir is layered over the embedded templates, file by file.
	// Env: BUNDLEGEN_TEMPLATES_DIR
	TemplatesDir string `mapstructure:"templatesDir" json:"templatesDir,omitempty" yaml:"templatesDir,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" json:"log,omitempty" yaml:"log,omitempty"`

	// Modules maps bundle names to their location.
	Modules map[string]ModuleConfig `mapstructure:"modules" json:"modules,omitempty" yaml:"modules,omitempty"`
}

// Default values.
const (
	DefaultFormat = "yml"
	DefaultOffice = "default"
)

// DefaultConfig returns a Config with all default values populated.
// Used by `bundlegen config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Format: DefaultFormat,
		Office: DefaultOffice,
	}
}

// WithDefaults returns a copy of c with empty values replaced by defaults.
func (c *Config) WithDefaults() *Config {
	out := *c
	if out.Format == "" {
		out.Format = DefaultFormat
	}
	if out.Office == "" {
		out.Office = DefaultOffice
	}
	return &out
}

// Module looks up a registered bundle by name, ignoring case.
func (c *Config) Module(name string) (ModuleConfig, bool) {
	if m, ok := c.Modules[name]; ok {
		return m, true
	}
	for key, m := range c.Modules {
		if strings.EqualFold(key, name) {
			return m, true
		}
	}
	return ModuleConfig{}, false
}

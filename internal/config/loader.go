package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Environment variables read by the loader.
const (
	envPrefix = "BUNDLEGEN"

	EnvConfig       = "BUNDLEGEN_CONFIG"
	EnvFormat       = "BUNDLEGEN_FORMAT"
	EnvOffice       = "BUNDLEGEN_OFFICE"
	EnvRoutePrefix  = "BUNDLEGEN_ROUTE_PREFIX"
	EnvTemplatesDir = "BUNDLEGEN_TEMPLATES_DIR"
)

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader reading from the OS filesystem.
func NewLoader() *Loader {
	return NewLoaderFs(afero.NewOsFs())
}

// NewLoaderFs creates a configuration loader reading files through fs.
func NewLoaderFs(fs afero.Fs) *Loader {
	v := viper.New()
	v.SetFs(fs)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("format", EnvFormat)
	_ = v.BindEnv("office", EnvOffice)
	_ = v.BindEnv("routePrefix", EnvRoutePrefix)
	_ = v.BindEnv("templatesDir", EnvTemplatesDir)

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// Environment variables take precedence over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	// a missing file means defaults + env vars
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration and applies defaults.
func (l *Loader) LoadWithDefaults(configFile string) (*Config, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}

	return cfg.WithDefaults(), nil
}

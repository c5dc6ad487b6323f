// Package cmd provides CLI command implementations.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bundlegen/cli/internal/config"
	oerrors "github.com/bundlegen/cli/internal/errors"
	"github.com/bundlegen/cli/internal/output"
)

var (
	// Global flags
	configFlag       string
	templatesDirFlag string
	verboseFlag      bool
	timestampsFlag   bool

	// Loaded during PersistentPreRunE. A broken config file is only fatal
	// for commands that need configuration.
	loadedConfig *config.Config
	configErr    error
	configPath   config.ResolvedValue
)

// NewRootCmd creates the root command for the bundlegen CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bundlegen",
		Short: "Bundle, CRUD and form scaffolding",
		Long: `bundlegen generates bundle skeletons, CRUD controllers with views and
routing, and form types from entity descriptions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: BUNDLEGEN_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")
	rootCmd.PersistentFlags().StringVar(&templatesDirFlag, "templates-dir", "", "Directory layered over the built-in templates (env: BUNDLEGEN_TEMPLATES_DIR)")

	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewTemplatesCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command) error {
	loadedConfig, configErr = nil, nil

	resolved, err := config.ResolveConfigPath(configFlag)
	if err != nil {
		configErr = fmt.Errorf("resolving config path: %w", err)
	} else {
		configPath = resolved
		loadedConfig, configErr = loadConfig(resolved.Value)
	}

	logCfg := output.LogConfig{
		Verbose: verboseFlag,
	}

	// flag (if explicitly set) > config > default (nil = true)
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if loadedConfig != nil && loadedConfig.Log.Timestamps != nil {
		logCfg.Timestamps = loadedConfig.Log.Timestamps
	}

	output.SetupLogging(logCfg)
	output.DisableColorUnlessTTY(os.Stdout)

	if configErr != nil {
		output.Debug("config load error", "error", configErr)
	}
	if verboseFlag {
		config.LogResolvedValues(configPath)
	}

	return nil
}

// loadConfig reads and validates the config file at path. A missing file
// yields the defaults.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.NewLoader().Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w: %w", path, oerrors.ErrConfiguration, err)
	}

	validator, err := config.NewValidator()
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg.WithDefaults(), nil
}

// requireConfig returns the loaded configuration or the error that
// prevented loading it.
func requireConfig() (*config.Config, error) {
	if configErr != nil {
		return nil, configErr
	}
	if loadedConfig == nil {
		return config.DefaultConfig(), nil
	}
	return loadedConfig, nil
}

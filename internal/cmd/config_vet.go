package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bundlegen/cli/internal/config"
	oerrors "github.com/bundlegen/cli/internal/errors"
	"github.com/bundlegen/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the bundlegen configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML
  3. Values satisfy the configuration schema (formats, offices, modules)

The config path is resolved using precedence:
  --config flag > BUNDLEGEN_CONFIG env > ~/.bundlegen/config.yaml

Examples:
  # Validate default configuration
  bundlegen config vet

  # Validate custom config path
  bundlegen config vet --config /path/to/config.yaml`,
		Args: cobra.NoArgs,
		RunE: runConfigVet,
	}

	return cmd
}

func runConfigVet(cmd *cobra.Command, args []string) error {
	resolved, err := config.ResolveConfigPath(configFlag)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
	}
	path, err := config.ExpandPath(resolved.Value)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	output.Debug("validating config",
		"path", path,
		"source", resolved.Source,
	)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return oerrors.NewNotFoundError(
			"configuration file not found",
			path,
			"Run 'bundlegen config init' to create default configuration",
		)
	}

	validator, err := config.NewValidator()
	if err != nil {
		return err
	}
	if err := validator.ValidateFile(path); err != nil {
		if !errors.Is(err, oerrors.ErrConfiguration) {
			err = fmt.Errorf("%w: %w", oerrors.ErrConfiguration, err)
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Configuration is valid: "+output.StyleNoun.Render(path)))
	return nil
}

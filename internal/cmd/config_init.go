package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bundlegen/cli/internal/config"
	oerrors "github.com/bundlegen/cli/internal/errors"
	"github.com/bundlegen/cli/internal/output"
)

var configInitForce bool

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Write a configuration file holding the default values.

The file is written to the resolved config path:
  --config flag > BUNDLEGEN_CONFIG env > ~/.bundlegen/config.yaml

Examples:
  # Initialize configuration
  bundlegen config init

  # Overwrite existing configuration
  bundlegen config init --force`,
		Args: cobra.NoArgs,
		RunE: runConfigInit,
	}

	cmd.Flags().BoolVarP(&configInitForce, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	resolved, err := config.ResolveConfigPath(configFlag)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}
	path, err := config.ExpandPath(resolved.Value)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return oerrors.NewConflictError(
			"configuration already exists",
			path,
			"Use --force to overwrite existing configuration.",
		)
	}

	data, err := config.Marshal(config.DefaultConfig())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return oerrors.NewPermissionError("could not create the configuration directory", filepath.Dir(path), "")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return oerrors.NewPermissionError("could not write the configuration file", path, "")
	}

	output.Debug("wrote config", "path", path, "source", resolved.Source)

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, output.FormatCheckmark("Configuration initialized at "+output.StyleNoun.Render(path)))
	fmt.Fprintln(w, "Validate with: bundlegen config vet")

	return nil
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bundlegen/cli/internal/config"
	"github.com/bundlegen/cli/internal/output"
	"github.com/bundlegen/cli/internal/templates"
)

var templatesFilter string

// NewTemplatesCmd creates the templates command.
func NewTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the templates used by the generators",
		Long: `List every template identifier and where it is read from.

A file at the same relative path in the templates directory replaces the
built-in template. Copy a built-in template there to customise it.

Examples:
  bundlegen templates
  bundlegen templates --filter crud/views
  bundlegen templates --templates-dir ./skeleton`,
		Args: cobra.NoArgs,
		RunE: runTemplates,
	}

	cmd.Flags().StringVar(&templatesFilter, "filter", "", "Only list identifiers with this prefix")

	return cmd
}

func runTemplates(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	resolved := config.Resolve(config.ResolveOptions{
		Key:         "templatesDir",
		FlagValue:   templatesDirFlag,
		EnvVar:      config.EnvTemplatesDir,
		ConfigValue: cfg.TemplatesDir,
	})
	dir := resolved.Value
	if dir != "" {
		if dir, err = config.ExpandPath(dir); err != nil {
			return fmt.Errorf("expanding templates directory: %w", err)
		}
	}
	// surfaces a missing or invalid override directory
	if _, err := newEngine(cfg); err != nil {
		return err
	}

	ids, err := templates.IDs()
	if err != nil {
		return err
	}

	rows := make([]output.TemplateRow, 0, len(ids))
	for _, id := range ids {
		if !strings.HasPrefix(id, templatesFilter) {
			continue
		}
		rows = append(rows, output.TemplateRow{ID: id, Source: templateSource(dir, id)})
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.RenderTemplateTable(rows))
	return nil
}

// templateSource reports whether id is read from the override directory.
func templateSource(dir, id string) string {
	if dir == "" {
		return output.SourceBuiltin
	}
	path := filepath.Join(dir, filepath.FromSlash(id))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return output.SourceOverride
	}
	return output.SourceBuiltin
}

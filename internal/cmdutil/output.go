package cmdutil

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/bundlegen/cli/internal/output"
	"github.com/bundlegen/cli/internal/scaffold"
)

// TargetFs returns the filesystem generators write through. A dry run
// layers an in-memory filesystem over a read-only view of base.
func TargetFs(base afero.Fs, dryRun bool) afero.Fs {
	if dryRun {
		return afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(base), afero.NewMemMapFs())
	}
	return base
}

// Plan is the YAML form of a generation result.
type Plan struct {
	DryRun          bool   `yaml:"dryRun"`
	Root            string `yaml:"root"`
	FormClass       string `yaml:"formClass,omitempty"`
	scaffold.Result `yaml:",inline"`
}

// PrintResult writes plan in the requested format. Text output is a file
// tree below plan.Root followed by a summary line.
func PrintResult(w io.Writer, format output.OutputFormat, plan Plan) error {
	if format == output.FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(plan); err != nil {
			return fmt.Errorf("encoding plan: %w", err)
		}
		return enc.Close()
	}

	files := make(map[string]string, len(plan.Targets)+len(plan.Touched))
	for _, t := range plan.Targets {
		files[relativeTo(plan.Root, t.Path)] = targetStatus(t, plan.DryRun)
	}
	for _, p := range plan.Touched {
		status := output.StatusTouched
		if plan.DryRun {
			status = output.StatusPlanned
		}
		files[relativeTo(plan.Root, p)] = status
	}

	if len(files) == 0 {
		return nil
	}

	fmt.Fprint(w, output.RenderFileTree(plan.Root, files))

	summary := fmt.Sprintf("%d files generated", len(files))
	if plan.DryRun {
		summary = fmt.Sprintf("%d files planned (dry run)", len(files))
	}
	fmt.Fprintln(w, output.FormatCheckmark(summary))
	return nil
}

func targetStatus(t scaffold.Target, dryRun bool) string {
	switch {
	case dryRun:
		return output.StatusPlanned
	case t.Overwritten:
		return output.StatusOverwritten
	default:
		return output.StatusCreated
	}
}

func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

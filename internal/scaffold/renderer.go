package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	oerrors "github.com/bundlegen/cli/internal/errors"
	"github.com/bundlegen/cli/internal/output"
)

// Engine turns a template identifier and its parameters into file content.
type Engine interface {
	Render(templateID string, params map[string]any) (string, error)
}

// renderer is the file-emitting helper each generator owns.
type renderer struct {
	engine Engine
	fs     afero.Fs
}

func newRenderer(engine Engine, fs afero.Fs) renderer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return renderer{engine: engine, fs: fs}
}

func (r renderer) exists(path string) bool {
	ok, err := afero.Exists(r.fs, path)
	return err == nil && ok
}

// isWritable checks the owner write bit of path.
func (r renderer) isWritable(path string) (bool, error) {
	info, err := r.fs.Stat(path)
	if err != nil {
		return false, err
	}
	return info.Mode().Perm()&0o200 != 0, nil
}

// renderFile renders templateID into target, refusing to replace an existing file.
func (r renderer) renderFile(res *Result, templateID, target string, params map[string]any) error {
	if r.exists(target) {
		return oerrors.NewConflictError(
			fmt.Sprintf("Unable to generate %s as it already exists.", filepath.Base(target)),
			target,
			"Remove the file or choose another target.",
		)
	}
	return r.writeFile(res, templateID, target, params)
}

// writeFile renders templateID into target, replacing any existing file.
func (r renderer) writeFile(res *Result, templateID, target string, params map[string]any) error {
	content, err := r.engine.Render(templateID, params)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", templateID, err)
	}

	existed := r.exists(target)
	if err := r.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", target, err)
	}
	if err := afero.WriteFile(r.fs, target, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}

	output.Debug("rendered file", "template", templateID, "path", target)
	res.Targets = append(res.Targets, Target{TemplateID: templateID, Path: target, Params: params, Overwritten: existed})
	return nil
}

// mkdir creates dir and its parents. Existing directories are not an error.
func (r renderer) mkdir(res *Result, dir string) error {
	if err := r.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	output.Debug("created directory", "path", dir)
	res.Dirs = append(res.Dirs, dir)
	return nil
}

// touch creates an empty file or refreshes the timestamps of an existing one.
func (r renderer) touch(res *Result, path string) error {
	if r.exists(path) {
		now := time.Now()
		if err := r.fs.Chtimes(path, now, now); err != nil {
			return fmt.Errorf("touching %s: %w", path, err)
		}
	} else {
		if err := r.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", path, err)
		}
		f, err := r.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("touching %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("touching %s: %w", path, err)
		}
	}
	output.Debug("touched file", "path", path)
	res.Touched = append(res.Touched, path)
	return nil
}

// copyParams returns a shallow copy of params with extra merged on top.
func copyParams(params map[string]any, extra map[string]any) map[string]any {
	out := make(map[string]any, len(params)+len(extra))
	for k, v := range params {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Package templates provides the embedded template set and the engine that
// renders it.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
)

//go:embed all:files
var builtinFS embed.FS

// root is the directory inside builtinFS that holds template identifiers.
const root = "files"

// Builtin returns the embedded template tree rooted at the identifier namespace.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtinFS, root)
	if err != nil {
		// root is a compile-time constant matching the embed directive
		panic(err)
	}
	return sub
}

// layeredFS resolves each file in the override tree first, then in base.
type layeredFS struct {
	override fs.FS
	base     fs.FS
}

// Open implements fs.FS.
func (l layeredFS) Open(name string) (fs.File, error) {
	if l.override != nil {
		f, err := l.override.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return l.base.Open(name)
}

// Source returns the template tree used by an Engine. A non-empty
// overrideDir is consulted first, file by file.
func Source(overrideDir string) (fs.FS, error) {
	if overrideDir == "" {
		return Builtin(), nil
	}
	info, err := os.Stat(overrideDir)
	if err != nil {
		return nil, fmt.Errorf("reading templates directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("templates directory %s is not a directory", overrideDir)
	}
	override := afero.NewIOFS(afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), overrideDir)))
	return layeredFS{override: override, base: Builtin()}, nil
}

// IDs returns every template identifier in the embedded set, sorted.
func IDs() ([]string, error) {
	var ids []string
	err := fs.WalkDir(Builtin(), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ids = append(ids, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return ids, nil
}

// Exists reports whether id names an embedded template.
func Exists(id string) bool {
	_, err := fs.Stat(Builtin(), cleanID(id))
	return err == nil
}

func cleanID(id string) string {
	return strings.TrimPrefix(path.Clean("/"+id), "/")
}

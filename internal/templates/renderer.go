package templates

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"
	"text/template"

	oerrors "github.com/bundlegen/cli/internal/errors"
	"github.com/bundlegen/cli/internal/naming"
)

// Delimiters differ from the Go defaults so that Twig's {{ }} and {% %}
// pass through to the generated files untouched.
const (
	leftDelim  = "[["
	rightDelim = "]]"
)

// Engine renders template identifiers against a template tree.
type Engine struct {
	fsys  fs.FS
	cache map[string]*template.Template
}

// NewEngine creates an Engine over fsys. A nil fsys uses the embedded set.
func NewEngine(fsys fs.FS) *Engine {
	if fsys == nil {
		fsys = Builtin()
	}
	return &Engine{fsys: fsys, cache: make(map[string]*template.Template)}
}

// Render renders the template id with params.
func (e *Engine) Render(id string, params map[string]any) (string, error) {
	tmpl, err := e.load(id)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return "", fmt.Errorf("executing template %s: %w", id, err)
	}
	return buf.String(), nil
}

func (e *Engine) load(id string) (*template.Template, error) {
	name := cleanID(id)
	if tmpl, ok := e.cache[name]; ok {
		return tmpl, nil
	}

	content, err := fs.ReadFile(e.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, oerrors.NewNotFoundError(fmt.Sprintf("unknown template %q", id), id, "")
		}
		return nil, fmt.Errorf("reading template %s: %w", id, err)
	}

	tmpl, err := template.New(name).Delims(leftDelim, rightDelim).Funcs(FuncMap()).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", id, err)
	}
	e.cache[name] = tmpl
	return tmpl, nil
}

// FuncMap returns the helper functions available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"lower":      strings.ToLower,
		"upper":      strings.ToUpper,
		"capitalize": naming.Capitalize,
		"underscore": naming.Underscore,
		"replace":    strings.ReplaceAll,
		"join":       join,
		"has":        has,
		"actionPath": actionPath,
	}
}

// has reports whether list (any slice) holds an element printing as item.
func has(list any, item string) bool {
	v := reflect.ValueOf(list)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return false
	}
	for i := 0; i < v.Len(); i++ {
		if fmt.Sprint(v.Index(i).Interface()) == item {
			return true
		}
	}
	return false
}

// join joins the printed elements of any slice with sep.
func join(list any, sep string) string {
	v := reflect.ValueOf(list)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return fmt.Sprint(list)
	}
	parts := make([]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		parts = append(parts, fmt.Sprint(v.Index(i).Interface()))
	}
	return strings.Join(parts, sep)
}

// actionPath returns the URL path of a CRUD action under prefix.
func actionPath(prefix string, action any) string {
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix == "/" {
		prefix = ""
	}
	switch fmt.Sprint(action) {
	case "index":
		return prefix + "/"
	case "new":
		return prefix + "/new"
	default:
		return prefix + "/{id}/" + fmt.Sprint(action)
	}
}

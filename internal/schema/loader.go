// Package schema loads entity metadata descriptions from YAML, JSON or CUE
// files into scaffold.Entity values.
package schema

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"

	oerrors "github.com/bundlegen/cli/internal/errors"
	"github.com/bundlegen/cli/internal/naming"
	"github.com/bundlegen/cli/internal/output"
	"github.com/bundlegen/cli/internal/scaffold"
)

//go:embed entity.cue
var entitySchema []byte

// defaultFieldType is assigned to fields declared without a type.
const defaultFieldType = "string"

// SupportedExtensions lists the file extensions Load understands.
var SupportedExtensions = []string{".yaml", ".yml", ".json", ".cue"}

// Loader reads entity descriptions through a filesystem.
type Loader struct {
	fs     afero.Fs
	ctx    *cue.Context
	entity cue.Value
}

// NewLoader creates a Loader reading from fs. A nil fs uses the OS filesystem.
func NewLoader(fs afero.Fs) (*Loader, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	ctx := cuecontext.New()
	schema := ctx.CompileBytes(entitySchema, cue.Filename("entity.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling entity schema: %w", schema.Err())
	}

	return &Loader{
		fs:     fs,
		ctx:    ctx,
		entity: schema.LookupPath(cue.ParsePath("#Entity")),
	}, nil
}

// Load reads the entity description at path for the entity named requested.
// A file without a name takes requested. A file naming another entity is
// rejected. An empty requested accepts whatever the file names.
func (l *Loader) Load(path, requested string) (scaffold.Entity, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(SupportedExtensions, ext) {
		return scaffold.Entity{}, oerrors.NewValidationError(
			fmt.Sprintf("unsupported entity schema file %q", path),
			"schema",
			fmt.Sprintf("Use one of: %s", strings.Join(SupportedExtensions, ", ")),
		)
	}

	exists, err := afero.Exists(l.fs, path)
	if err != nil {
		return scaffold.Entity{}, fmt.Errorf("checking entity schema file: %w", err)
	}
	if !exists {
		return scaffold.Entity{}, oerrors.NewNotFoundError(
			"entity schema file not found",
			path,
			"Pass --schema with the path to a .yaml, .json or .cue entity description.",
		)
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return scaffold.Entity{}, fmt.Errorf("reading entity schema file: %w", err)
	}

	var entity scaffold.Entity
	if ext == ".cue" {
		entity, err = l.parseCUE(path, data)
	} else {
		entity, err = parseYAML(path, data)
	}
	if err != nil {
		return scaffold.Entity{}, err
	}

	if err := matchName(&entity, path, requested); err != nil {
		return scaffold.Entity{}, err
	}
	if err := Validate(&entity); err != nil {
		return scaffold.Entity{}, err
	}

	output.Debug("loaded entity schema",
		"path", path,
		"entity", entity.Path(),
		"fields", len(entity.Fields),
		"associations", len(entity.Associations))
	return entity, nil
}

// matchName reconciles the name declared in the file with the requested one.
func matchName(entity *scaffold.Entity, path, requested string) error {
	switch {
	case requested == "":
		return nil
	case entity.Name == "":
		entity.Name = requested
		return nil
	case naming.SlashPath(entity.Name) != naming.SlashPath(requested):
		return oerrors.NewValidationError(
			fmt.Sprintf("%s describes entity %q, not %q", path, naming.SlashPath(entity.Name), naming.SlashPath(requested)),
			"name",
			"Pass the entity named in the schema file, or remove name from the file.",
		)
	}
	return nil
}

// parseYAML decodes YAML or JSON. Unknown keys are rejected.
func parseYAML(path string, data []byte) (scaffold.Entity, error) {
	var entity scaffold.Entity
	if err := yaml.UnmarshalStrict(data, &entity); err != nil {
		return scaffold.Entity{}, oerrors.NewValidationError(
			fmt.Sprintf("parsing %s: %v", path, err),
			"schema",
			"",
		)
	}
	return entity, nil
}

// parseCUE unifies the file with the #Entity definition before decoding.
func (l *Loader) parseCUE(path string, data []byte) (scaffold.Entity, error) {
	value := l.ctx.CompileBytes(data, cue.Filename(path))
	if value.Err() != nil {
		return scaffold.Entity{}, oerrors.NewValidationError(
			fmt.Sprintf("compiling %s:\n%s", path, cueDetails(value.Err())),
			"schema",
			"",
		)
	}

	unified := l.entity.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return scaffold.Entity{}, oerrors.NewValidationError(
			fmt.Sprintf("%s does not describe an entity:\n%s", path, cueDetails(err)),
			"schema",
			"",
		)
	}

	var entity scaffold.Entity
	if err := unified.Decode(&entity); err != nil {
		return scaffold.Entity{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return entity, nil
}

// cueDetails renders every CUE error with its path and positions, one per line.
func cueDetails(err error) string {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err.Error()
	}

	var b strings.Builder
	for i, e := range errs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("  ")
		if path := strings.Join(e.Path(), "."); path != "" {
			b.WriteString(path)
			b.WriteString(": ")
		}
		format, args := e.Msg()
		b.WriteString(fmt.Sprintf(format, args...))
		for _, p := range cueerrors.Positions(e) {
			b.WriteString("\n    → ")
			b.WriteString(p.String())
		}
	}
	return b.String()
}

// Validate checks the structural rules shared by every input format and fills
// in default field types.
func Validate(entity *scaffold.Entity) error {
	if strings.TrimSpace(entity.Name) == "" {
		return oerrors.NewValidationError("entity name is required", "name", "Set name in the schema file or pass Bundle:Entity.")
	}

	seen := make(map[string]bool, len(entity.Fields)+len(entity.Associations))
	for i := range entity.Fields {
		f := &entity.Fields[i]
		if f.Name == "" {
			return oerrors.NewValidationError(fmt.Sprintf("field #%d has no name", i+1), "fields", "")
		}
		if seen[f.Name] {
			return oerrors.NewValidationError(fmt.Sprintf("field %q is declared twice", f.Name), "fields", "")
		}
		seen[f.Name] = true
		if f.Type == "" {
			f.Type = defaultFieldType
		}
	}

	for _, id := range entity.Identifier {
		if !slices.Contains(entity.FieldNames(), id) {
			return oerrors.NewValidationError(
				fmt.Sprintf("identifier %q is not a declared field", id),
				"identifier",
				"",
			)
		}
	}

	for _, a := range entity.Associations {
		if a.Name == "" {
			return oerrors.NewValidationError("association has no name", "associations", "")
		}
		if seen[a.Name] {
			return oerrors.NewValidationError(fmt.Sprintf("association %q clashes with another field", a.Name), "associations", "")
		}
		seen[a.Name] = true
		switch a.Kind {
		case scaffold.OneToOne, scaffold.ManyToOne, scaffold.OneToMany, scaffold.ManyToMany:
		default:
			return oerrors.NewValidationError(
				fmt.Sprintf("association %q has unknown kind %q", a.Name, a.Kind),
				"associations",
				"Valid kinds: oneToOne, manyToOne, oneToMany, manyToMany",
			)
		}
	}

	return nil
}

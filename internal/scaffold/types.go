// Package scaffold plans and emits bundle, CRUD and form sources from
// module and entity descriptions.
//
// Every generator is synchronous and non-transactional: when a step fails the
// files written by earlier steps stay on disk.
package scaffold

import (
	"fmt"
	"strings"

	oerrors "github.com/bundlegen/cli/internal/errors"
	"github.com/bundlegen/cli/internal/naming"
)

// ModuleSuffix is the suffix every bundle name must carry.
const ModuleSuffix = "Bundle"

// Office is the front/back namespacing axis for CRUD and form artifacts.
type Office string

const (
	// OfficeDefault places artifacts directly under the entity path.
	OfficeDefault Office = "default"

	// OfficeBackend places artifacts under a Backend segment.
	OfficeBackend Office = "backend"

	// OfficeFrontend places artifacts under a Frontend segment.
	OfficeFrontend Office = "frontend"
)

// ValidOffices returns the accepted office names.
func ValidOffices() []string {
	return []string{string(OfficeBackend), string(OfficeFrontend), string(OfficeDefault)}
}

// ParseOffice lower-cases s and validates it. An empty value means default.
func ParseOffice(s string) (Office, error) {
	office := Office(strings.ToLower(strings.TrimSpace(s)))
	switch office {
	case "":
		return OfficeDefault, nil
	case OfficeBackend, OfficeFrontend, OfficeDefault:
		return office, nil
	default:
		return "", oerrors.NewConfigurationError(
			fmt.Sprintf("Office %q is not supported.", office),
			"office",
			fmt.Sprintf("Valid offices: %s", strings.Join(ValidOffices(), ", ")),
		)
	}
}

// Segment returns the capitalised path segment, empty for the default office.
func (o Office) Segment() string {
	if o == OfficeDefault || o == "" {
		return ""
	}
	return naming.Capitalize(string(o))
}

// hasViews reports whether HTML views are generated for the office.
// An "api" office is headless. ParseOffice never returns one, so inside
// Generate this is always true.
func (o Office) hasViews() bool {
	return !strings.EqualFold(string(o), "api")
}

// ConfigFormat selects the routing and service configuration flavour.
type ConfigFormat string

const (
	FormatYAML       ConfigFormat = "yml"
	FormatXML        ConfigFormat = "xml"
	FormatPHP        ConfigFormat = "php"
	FormatAnnotation ConfigFormat = "annotation"
)

// ValidFormats returns the accepted format names.
func ValidFormats() []string {
	return []string{string(FormatYAML), string(FormatXML), string(FormatPHP), string(FormatAnnotation)}
}

// IsValidFormat reports whether s names a known format ("yaml" is accepted for yml).
func IsValidFormat(s string) bool {
	switch strings.ToLower(s) {
	case "yml", "yaml", "xml", "php", "annotation":
		return true
	default:
		return false
	}
}

// ParseFormat parses s into a ConfigFormat.
// Unknown values fall back to yml without an error.
func ParseFormat(s string) ConfigFormat {
	switch strings.ToLower(s) {
	case "xml":
		return FormatXML
	case "php":
		return FormatPHP
	case "annotation":
		return FormatAnnotation
	default:
		return FormatYAML
	}
}

// hasRoutingFile reports whether the format is expressed as a standalone routing file.
func (f ConfigFormat) hasRoutingFile() bool {
	return f == FormatYAML || f == FormatXML || f == FormatPHP
}

// Module describes the bundle artifacts are generated into.
type Module struct {
	namespace string
	name      string
	dir       string
}

// NewModule creates a Module. The name must end in "Bundle".
func NewModule(namespace, name, dir string) (Module, error) {
	if !strings.HasSuffix(name, ModuleSuffix) || name == ModuleSuffix {
		return Module{}, oerrors.NewValidationError(
			fmt.Sprintf("The bundle name %q must end with %q.", name, ModuleSuffix),
			"bundle",
			"",
		)
	}
	return Module{
		namespace: naming.BackslashPath(namespace),
		name:      name,
		dir:       dir,
	}, nil
}

// Namespace returns the bundle namespace with backslash separators.
func (m Module) Namespace() string { return m.namespace }

// Name returns the bundle name, e.g. "AcmeBlogBundle".
func (m Module) Name() string { return m.name }

// Dir returns the bundle root directory.
func (m Module) Dir() string { return m.dir }

// BaseName returns the name without its suffix, e.g. "AcmeBlog".
func (m Module) BaseName() string {
	return strings.TrimSuffix(m.name, ModuleSuffix)
}

// ConfigAlias returns the snake_case alias of the base name.
func (m Module) ConfigAlias() string {
	return naming.Underscore(m.BaseName())
}

// AssociationKind is the cardinality of an association field.
type AssociationKind string

const (
	OneToOne   AssociationKind = "oneToOne"
	ManyToOne  AssociationKind = "manyToOne"
	OneToMany  AssociationKind = "oneToMany"
	ManyToMany AssociationKind = "manyToMany"
)

// Field is a mapped column of an entity.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Association is a relation field of an entity.
type Association struct {
	Name string          `json:"name"`
	Kind AssociationKind `json:"kind"`
}

// Entity is the read-only schema metadata of a persisted type.
type Entity struct {
	// Name is the entity path relative to the bundle's Entity namespace,
	// e.g. `Blog\Post`. Segments may be separated by `\`, `/` or `.`.
	Name string `json:"name"`

	// Identifier lists the primary key field names.
	Identifier []string `json:"identifier"`

	// Fields lists mapped columns in declaration order.
	Fields []Field `json:"fields"`

	// Associations lists relation fields in declaration order.
	Associations []Association `json:"associations,omitempty"`

	// IdentifierNatural is true when keys are assigned by the application
	// rather than generated by the store.
	IdentifierNatural bool `json:"identifierNatural,omitempty"`
}

// Path returns the entity name with slash separators.
func (e Entity) Path() string {
	return naming.SlashPath(e.Name)
}

// QualifiedName returns the entity name with backslash separators.
func (e Entity) QualifiedName() string {
	return naming.BackslashPath(e.Name)
}

// Class returns the last segment of the entity name.
func (e Entity) Class() string {
	parts := naming.SplitPath(e.Name)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// NamespaceParts returns the segments preceding the class name.
func (e Entity) NamespaceParts() []string {
	parts := naming.SplitPath(e.Name)
	if len(parts) == 0 {
		return nil
	}
	return parts[:len(parts)-1]
}

// FieldNames returns the mapped column names in order.
func (e Entity) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Name)
	}
	return names
}

// requireSingleIdentifier rejects entities without exactly one primary key.
func (e Entity) requireSingleIdentifier(generator string) error {
	if len(e.Identifier) != 1 {
		return oerrors.NewSchemaError(
			fmt.Sprintf("The %s generator does not support entity classes with multiple or no primary keys (found %d).",
				generator, len(e.Identifier)),
			e.Path(),
		)
	}
	return nil
}

// Target is one planned unit of output.
type Target struct {
	TemplateID string         `json:"template" yaml:"template"`
	Path       string         `json:"path" yaml:"path"`
	Params     map[string]any `json:"-" yaml:"-"`

	// Overwritten is true when the file existed before it was rendered.
	Overwritten bool `json:"overwritten,omitempty" yaml:"overwritten,omitempty"`
}

// Result lists what a generate call produced, in order.
type Result struct {
	Targets []Target `json:"targets" yaml:"targets"`
	Dirs    []string `json:"dirs,omitempty" yaml:"dirs,omitempty"`
	Touched []string `json:"touched,omitempty" yaml:"touched,omitempty"`
}

// Files returns the rendered and touched file paths.
func (r *Result) Files() []string {
	files := make([]string, 0, len(r.Targets)+len(r.Touched))
	for _, t := range r.Targets {
		files = append(files, t.Path)
	}
	return append(files, r.Touched...)
}

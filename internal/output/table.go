package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Template sources shown in the catalog.
const (
	SourceBuiltin  = "builtin"
	SourceOverride = "override"
)

// TemplateRow is one entry of the template catalog.
type TemplateRow struct {
	ID     string
	Source string
}

// Generator returns the generator owning the template, its first path segment.
func (r TemplateRow) Generator() string {
	generator, _, _ := strings.Cut(r.ID, "/")
	return generator
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue)
	tableBorderStyle = lipgloss.NewStyle().Foreground(ColorDimGray)
)

// sourceStyle highlights overridden templates and dims builtin ones.
func sourceStyle(source string) lipgloss.Style {
	if source == SourceOverride {
		return lipgloss.NewStyle().Foreground(ColorYellow)
	}
	return StyleDim
}

// RenderTemplateTable renders the catalog as GENERATOR, TEMPLATE and SOURCE
// columns. An empty catalog renders the headers only.
func RenderTemplateTable(rows []TemplateRow) string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers("GENERATOR", "TEMPLATE", "SOURCE").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case col == 1 && row >= 0 && row < len(rows):
				return StyleNoun
			case col == 2 && row >= 0 && row < len(rows):
				return sourceStyle(rows[row].Source)
			default:
				return lipgloss.NewStyle()
			}
		})

	for _, r := range rows {
		tbl.Row(r.Generator(), r.ID, r.Source)
	}
	return tbl.String()
}

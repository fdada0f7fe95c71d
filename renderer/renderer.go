// Package renderer renders the reports of the historical rates pipeline as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/histrates"
	"github.com/etnz/histrates/tabular"
)

//go:embed *.md
var templates embed.FS

// RenderReconciliation renders the year by year cross-check of two sources.
// When the sources share no year, the table is replaced by a single line saying so.
func RenderReconciliation(rec *histrates.Reconciliation) string {
	view := NewReconciliation(rec)
	partials := map[string]string{
		"reconciliation_title": "reconciliation_title.md",
		"reconciliation_body":  "reconciliation_table.md",
	}
	if view.NoOverlap {
		partials["reconciliation_body"] = "reconciliation_empty.md"
	}
	return renderTemplate("reconciliation", "reconciliation.md", partials, view)
}

// RenderAligned renders a summary of an aligned file.
func RenderAligned(al *histrates.Aligned, filename string) string {
	return renderTemplate("aligned", "aligned.md", nil, NewAligned(al, filename))
}

// RenderLevels renders the index levels extracted from a table, flagging the years that
// several rows claimed with different values.
func RenderLevels(levels *histrates.Series, conflicts map[int][]tabular.Row) string {
	return renderTemplate("levels", "levels.md", nil, NewLevels(levels, conflicts))
}

// RenderOutcomes renders which of offsetting or investing won, year by year.
func RenderOutcomes(outcomes []histrates.YearOutcome, balance string) string {
	return renderTemplate("outcomes", "outcomes.md", nil, NewOutcomes(outcomes, balance))
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

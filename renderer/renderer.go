// Package renderer renders reconciliation results to markdown, for display
// in a terminal. The machine-readable output stays CSV; these views are for
// humans auditing the numbers.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// Expenses renders the expense report to a markdown string.
func Expenses(r *ExpenseReport) string {
	return renderTemplate("expenses", "templates/expenses.md", r)
}

// Transactions renders the normalized transaction history, with its running
// position, to a markdown string.
func Transactions(r *TransactionLog) string {
	return renderTemplate("transactions", "templates/transactions.md", r)
}

// renderTemplate is a generic utility to render one of the embedded templates.
func renderTemplate(templateName, mainFile string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

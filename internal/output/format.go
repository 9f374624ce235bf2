// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasklist/internal/service"
	"tasklist/internal/tasklist"
)

// FormatRow formats one rendered row.
// Format: "{ID:>4}  [x] {TITLE}  ({CATEGORY})\n", followed by the description
// on its own line indented under the title when present. The placeholder
// row prints its text alone.
func FormatRow(w io.Writer, row tasklist.Row) {
	if row.IsPlaceholder() {
		fmt.Fprintln(w, row.Placeholder)
		return
	}

	mark := " "
	if row.Checked() {
		mark = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s  (%s)\n", row.TaskID, mark, normalizeTitle(row.Title), row.CategoryName)

	if desc := normalizeText(row.Description); desc != "" {
		fmt.Fprintf(w, "          %s\n", desc)
	}
}

// FormatRows formats every row in order.
func FormatRows(w io.Writer, rows []tasklist.Row) {
	for _, row := range rows {
		FormatRow(w, row)
	}
}

// FormatCategory formats a category line.
// Format: "{ID:>4}  {NAME}\n"
func FormatCategory(w io.Writer, c service.Category) {
	name := normalizeText(c.Name)
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "%4d  %s\n", c.ID, name)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = normalizeText(title)
	if title == "" {
		return "(untitled)"
	}
	return title
}

func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

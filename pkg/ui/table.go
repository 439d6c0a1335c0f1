package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableColumn represents a column in the table
type TableColumn struct {
	Header string
	Width  int
	Align  string // "left", "right", "center"
}

// Table represents a data table with an optional totals footer
type Table struct {
	Columns []TableColumn
	Rows    [][]string
	Footer  []string
}

// NewTable creates a new table with specified columns
func NewTable(columns []TableColumn) *Table {
	return &Table{
		Columns: columns,
		Rows:    [][]string{},
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells []string) {
	t.Rows = append(t.Rows, cells)
}

// SetFooter sets a summary row rendered below a second separator
func (t *Table) SetFooter(cells []string) {
	t.Footer = cells
}

// Render renders the table as a string
func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}

	var builder strings.Builder

	// Widths are measured in terminal cells, not bytes
	colWidths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		colWidths[i] = max(lipgloss.Width(col.Header), col.Width)
	}
	measure := func(row []string) {
		for i, cell := range row {
			if i < len(colWidths) {
				colWidths[i] = max(colWidths[i], lipgloss.Width(cell))
			}
		}
	}
	for _, row := range t.Rows {
		measure(row)
	}
	measure(t.Footer)

	headerParts := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headerParts[i] = padString(col.Header, colWidths[i], col.Align)
	}
	builder.WriteString(StyleTableHeader.Render(strings.Join(headerParts, "  ")))
	builder.WriteString("\n")

	separatorParts := make([]string, len(t.Columns))
	for i := range t.Columns {
		separatorParts[i] = strings.Repeat("─", colWidths[i])
	}
	separator := StyleTableBorder.Render(strings.Join(separatorParts, "  "))
	builder.WriteString(separator)
	builder.WriteString("\n")

	for idx, row := range t.Rows {
		// Alternate row styles
		rowStyle := StyleTableRow
		if idx%2 == 1 {
			rowStyle = StyleTableRowAlt
		}
		builder.WriteString(rowStyle.Render(t.joinCells(row, colWidths)))
		builder.WriteString("\n")
	}

	if len(t.Footer) > 0 {
		builder.WriteString(separator)
		builder.WriteString("\n")
		builder.WriteString(StyleBold.Render(t.joinCells(t.Footer, colWidths)))
		builder.WriteString("\n")
	}

	return builder.String()
}

func (t *Table) joinCells(row []string, colWidths []int) string {
	parts := make([]string, len(t.Columns))
	for i := range t.Columns {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		parts[i] = padString(cell, colWidths[i], t.Columns[i].Align)
	}
	return strings.Join(parts, "  ")
}

// padString pads a string to the specified display width with alignment
func padString(s string, width int, align string) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}

	padding := width - w

	switch align {
	case "right":
		return strings.Repeat(" ", padding) + s
	case "center":
		leftPad := padding / 2
		rightPad := padding - leftPad
		return strings.Repeat(" ", leftPad) + s + strings.Repeat(" ", rightPad)
	default: // "left"
		return s + strings.Repeat(" ", padding)
	}
}

// RenderSimpleList renders a simple bulleted list
func RenderSimpleList(items []string) string {
	var builder strings.Builder
	for _, item := range items {
		builder.WriteString(StyleInfo.Render("  • "))
		builder.WriteString(item)
		builder.WriteString("\n")
	}
	return builder.String()
}

// RenderKeyValue renders a key-value pair
func RenderKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s",
		StyleAccent.Render(key),
		value,
	)
}

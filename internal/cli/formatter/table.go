package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const tableGap = 2

// RenderTable renders headers, a rule and rows as aligned columns. Widths
// are measured with lipgloss so styled cells line up. Trailing padding is
// trimmed, so an empty last column leaves no whitespace behind.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	widths := columnWidths(headers, rows)

	styled := make([]string, len(headers))
	rule := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = StyleHeader.Render(h)
		rule[i] = StyleDim.Render(strings.Repeat("─", widths[i]))
	}

	var b strings.Builder
	writeTableRow(&b, widths, styled)
	writeTableRow(&b, widths, rule)
	for _, row := range rows {
		writeTableRow(&b, widths, row)
	}
	return b.String()
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	return widths
}

// writeTableRow pads each cell to its column width. Cells beyond the header
// count are ignored; missing cells render empty.
func writeTableRow(b *strings.Builder, widths []int, cells []string) {
	var line strings.Builder
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		line.WriteString(cell)
		if i < len(widths)-1 {
			line.WriteString(strings.Repeat(" ", max(w-lipgloss.Width(cell), 0)+tableGap))
		}
	}
	b.WriteString(strings.TrimRight(line.String(), " "))
	b.WriteString("\n")
}

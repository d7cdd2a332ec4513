package md2rich

import "strings"

// Alignment of one table column, inferred from the separator row.
type alignment int

const (
	alignLeft alignment = iota
	alignCenter
	alignRight
)

// isTableStart reports whether lines[i] is a pipe-containing header row
// followed by a separator row.
func isTableStart(lines []string, i int) bool {
	if !strings.Contains(lines[i], "|") {
		return false
	}
	return i+1 < len(lines) && tableSeparator.MatchString(lines[i+1]) &&
		strings.Contains(lines[i+1], "-")
}

// splitRow splits a pipe-delimited row into trimmed cells, stripping the
// optional edge pipes first.
func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	cells := strings.Split(line, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// parseAlignments derives per-column alignment from colon placement in the
// separator cells: `:-:` center, `-:` right, anything else left.
func parseAlignments(separator string) []alignment {
	cells := splitRow(separator)
	aligns := make([]alignment, len(cells))
	for i, c := range cells {
		left := strings.HasPrefix(c, ":")
		right := strings.HasSuffix(c, ":")
		switch {
		case left && right:
			aligns[i] = alignCenter
		case right:
			aligns[i] = alignRight
		default:
			aligns[i] = alignLeft
		}
	}
	return aligns
}

// alignAttr returns the style attribute for a cell, or "" for the left
// default. Columns beyond the separator's width degrade to left.
func alignAttr(aligns []alignment, col int) string {
	if col >= len(aligns) {
		return ""
	}
	switch aligns[col] {
	case alignCenter:
		return ` style="text-align:center"`
	case alignRight:
		return ` style="text-align:right"`
	default:
		return ""
	}
}

// parseTable consumes the header row, separator, and every contiguous
// pipe-delimited row below. Ragged body rows are rendered as-is; cells
// without a matching separator column fall back to left alignment.
func (p *parser) parseTable(lines []string, start int) (string, int) {
	header := splitRow(lines[start])
	aligns := parseAlignments(lines[start+1])

	var b strings.Builder
	b.WriteString("<table>\n<thead>\n<tr>")
	for col, cell := range header {
		b.WriteString("<th" + alignAttr(aligns, col) + ">" + FormatInline(cell, p.opts) + "</th>")
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")

	end := start + 1
	for j := start + 2; j < len(lines); j++ {
		if !strings.Contains(lines[j], "|") || strings.TrimSpace(lines[j]) == "" {
			break
		}
		b.WriteString("<tr>")
		for col, cell := range splitRow(lines[j]) {
			b.WriteString("<td" + alignAttr(aligns, col) + ">" + FormatInline(cell, p.opts) + "</td>")
		}
		b.WriteString("</tr>\n")
		end = j
	}

	b.WriteString("</tbody>\n</table>\n")
	return b.String(), end
}

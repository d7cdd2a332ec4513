package md2rich

import "strings"

// listItem is one collected item: its own text plus any continuation or
// nested lines (indented past the base) reparsed as block content.
type listItem struct {
	text     string
	sublines []string
}

// parseList consumes a list whose base indentation is captured from the
// first item line. Lines stay in the list while indented at least to the
// base; deeper-indented lines and blank-line continuations attach to the
// current item.
func (p *parser) parseList(lines []string, start int, ordered bool) (string, int) {
	itemPattern := unorderedItem
	if ordered {
		itemPattern = orderedItem
	}

	first := itemPattern.FindStringSubmatch(lines[start])
	base := len(first[1])

	var items []listItem
	end := start
	j := start
	for j < len(lines) {
		line := lines[j]

		if strings.TrimSpace(line) == "" {
			// Blank line: continuation only if a further-indented line follows.
			if j+1 < len(lines) && lineIndent(lines[j+1]) > base && len(items) > 0 {
				items[len(items)-1].sublines = append(items[len(items)-1].sublines, "")
				j++
				continue
			}
			break
		}

		indent := lineIndent(line)
		if indent < base {
			break
		}

		if m := itemPattern.FindStringSubmatch(line); m != nil && len(m[1]) == base {
			items = append(items, listItem{text: m[len(m)-1]})
			end = j
			j++
			continue
		}

		// Nested item or continuation line: attach to the current item,
		// de-indented past the base marker.
		if len(items) == 0 {
			break
		}
		sub := line
		if len(sub) > base {
			sub = sub[base:]
		}
		items[len(items)-1].sublines = append(items[len(items)-1].sublines, strings.TrimPrefix(sub, "  "))
		end = j
		j++
	}

	tag := "ul"
	if ordered {
		tag = "ol"
	}
	var b strings.Builder
	b.WriteString("<" + tag + ">\n")
	for _, it := range items {
		b.WriteString(p.renderListItem(it))
	}
	b.WriteString("</" + tag + ">\n")
	return b.String(), end
}

// renderListItem renders one item, recognizing task-list syntax even
// inside a generic unordered list.
func (p *parser) renderListItem(it listItem) string {
	var b strings.Builder

	if m := taskItemPattern.FindStringSubmatch(it.text); m != nil {
		checked := ""
		if m[1] != " " {
			checked = " checked"
		}
		b.WriteString(`<li class="task-list-item"><input type="checkbox" disabled` + checked + "> ")
		b.WriteString(FormatInline(m[2], p.opts))
	} else {
		b.WriteString("<li>")
		b.WriteString(FormatInline(it.text, p.opts))
	}

	if len(it.sublines) > 0 {
		b.WriteString("\n")
		b.WriteString(p.parseLines(it.sublines))
	}
	b.WriteString("</li>\n")
	return b.String()
}

// lineIndent counts leading spaces, tabs expanding to 4.
func lineIndent(line string) int {
	n := 0
	for _, r := range line {
		switch r {
		case ' ':
			n++
		case '\t':
			n += 4
		default:
			return n
		}
	}
	return n
}

package md2rich

import "strings"

// BuildTOC renders the heading index as a nested list of anchor links.
// maxDepth limits the deepest heading level included; 0 means all levels.
// Returns "" for an empty index.
func BuildTOC(headings []Heading, maxDepth int) string {
	if maxDepth <= 0 {
		maxDepth = 6
	}

	var filtered []Heading
	for _, h := range headings {
		if h.Level <= maxDepth {
			filtered = append(filtered, h)
		}
	}
	if len(filtered) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<nav class="toc">` + "\n")

	depth := 0
	for _, h := range filtered {
		for depth < h.Level {
			b.WriteString("<ul>\n")
			depth++
		}
		for depth > h.Level {
			b.WriteString("</ul>\n")
			depth--
		}
		b.WriteString(`<li><a href="#` + h.ID + `">` + escapeHTML(h.Text) + "</a></li>\n")
	}
	for depth > 0 {
		b.WriteString("</ul>\n")
		depth--
	}

	b.WriteString("</nav>\n")
	return b.String()
}

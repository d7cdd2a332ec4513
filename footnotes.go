package md2rich

import (
	"regexp"
	"strings"
)

// footnoteDefPattern matches a footnote definition line: [^id]: text
var footnoteDefPattern = regexp.MustCompile(`^\[\^([^\]\s]+)\]:\s*(.*)$`)

// extractFootnotes removes footnote-definition lines from the line stream
// and returns the remaining lines plus the definitions in insertion order.
// Later definitions with the same id overwrite earlier ones.
func extractFootnotes(lines []string) ([]string, []Footnote) {
	remaining := make([]string, 0, len(lines))
	var notes []Footnote
	index := make(map[string]int)

	for _, line := range lines {
		m := footnoteDefPattern.FindStringSubmatch(line)
		if m == nil {
			remaining = append(remaining, line)
			continue
		}
		id, text := m[1], m[2]
		if at, ok := index[id]; ok {
			notes[at].Text = text
			continue
		}
		index[id] = len(notes)
		notes = append(notes, Footnote{ID: id, Text: text})
	}
	return remaining, notes
}

// renderFootnotes emits the footnote section appended once at document end.
// Each item carries the id referenced by FormatInline's [^id] anchors and a
// back-reference link to the matching fnref-{id} anchor.
func renderFootnotes(notes []Footnote, opts Options) string {
	if len(notes) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<section class="footnotes"><hr><ol>` + "\n")
	for _, n := range notes {
		// Escaped to match the reference-side anchors, which are emitted
		// from already-escaped text.
		id := escapeHTML(n.ID)
		b.WriteString(`<li id="fn-` + id + `">`)
		b.WriteString(FormatInline(n.Text, opts))
		b.WriteString(` <a href="#fnref-` + id + `" class="footnote-backref">&#8617;</a></li>` + "\n")
	}
	b.WriteString("</ol></section>\n")
	return b.String()
}

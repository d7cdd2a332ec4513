package md2rich

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Detection score weights. A block classifies as ASCII art when the total
// reaches scoreThreshold.
const (
	scoreThreshold  = 4
	weightBoxChars  = 3
	weightArrows    = 2
	weightWidth     = 2
	weightRepeated  = 2
	weightAlignment = 2
	weightMultiLine = 1
	weightLiteral   = 1
)

var (
	boxCharPattern  = regexp.MustCompile(`[+\-|]|[\x{2500}-\x{257F}]`)
	arrowPattern    = regexp.MustCompile(`(?m)-->|<--|==>|->|<-|[\x{2190}-\x{2193}]|^\s*[vV^]\s*$`)
	repeatedPattern = regexp.MustCompile(`[-=]{3,}|[\x{2500}]{3,}|\+[-=]|[-=]\+`)

	mermaidKeywords = []string{
		"flowchart", "graph", "sequenceDiagram", "classDiagram",
		"stateDiagram", "erDiagram", "gantt", "pie", "journey",
		"gitGraph", "mindmap", "timeline",
	}
)

// IsMermaidDiagram reports whether text starts with a known mermaid
// diagram-type keyword.
func IsMermaidDiagram(text string) bool {
	head := strings.TrimSpace(text)
	for _, kw := range mermaidKeywords {
		if strings.HasPrefix(head, kw) {
			return true
		}
	}
	return false
}

// IsASCIIDiagram reports whether text looks like ASCII art.
func IsASCIIDiagram(text string) bool {
	return asciiScore(text) >= scoreThreshold
}

// asciiScore computes the weighted heuristic score over the block content.
func asciiScore(text string) int {
	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return 0
	}

	score := 0
	if len(lines) >= 3 {
		score += weightMultiLine
	}
	if consistentWidth(lines) {
		score += weightWidth
	}
	if boxCharPattern.MatchString(text) {
		score += weightBoxChars
	}
	if arrowPattern.MatchString(text) {
		score += weightArrows
	}
	if repeatedPattern.MatchString(text) {
		score += weightRepeated
	}
	if pipesAligned(lines) {
		score += weightAlignment
	}
	if strings.Contains(text, "+--") {
		score += weightLiteral
	}
	if strings.Contains(text, "-->") {
		score += weightLiteral
	}
	return score
}

// nonEmptyLines splits text into lines, dropping blank ones.
func nonEmptyLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimRight(l, " \t") != "" {
			out = append(out, strings.TrimRight(l, " \t"))
		}
	}
	return out
}

// consistentWidth reports low variance in line length: every line within
// 3 columns of the longest, over at least 2 lines.
func consistentWidth(lines []string) bool {
	if len(lines) < 2 {
		return false
	}
	maxLen, minLen := 0, int(^uint(0)>>1)
	for _, l := range lines {
		n := len([]rune(l))
		if n > maxLen {
			maxLen = n
		}
		if n < minLen {
			minLen = n
		}
	}
	return maxLen-minLen <= 3
}

// pipesAligned reports whether a pipe character occupies the same column
// on at least two lines.
func pipesAligned(lines []string) bool {
	cols := make(map[int]int)
	for _, l := range lines {
		for i, r := range []rune(l) {
			if r == '|' || r == '│' {
				cols[i]++
				if cols[i] >= 2 {
					return true
				}
			}
		}
	}
	return false
}

// Node-label delimiter pairs recognized by the flowchart converters.
var labelDelimiters = [][2]string{
	{"[", "]"},
	{"(", ")"},
	{"{", "}"},
	{"<", ">"},
}

// labelPatterns holds one compiled matcher per delimiter pair.
var labelPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(labelDelimiters))
	for i, pair := range labelDelimiters {
		out[i] = regexp.MustCompile(regexp.QuoteMeta(pair[0]) + `([^` + regexp.QuoteMeta(pair[1]) + `\n]+)` + regexp.QuoteMeta(pair[1]))
	}
	return out
}()

// extractLabels pulls delimited node labels out of text, deduplicated by
// label text, in first-appearance order. Matches from all delimiter pairs
// are merged and sorted by source offset so mixed-delimiter diagrams keep
// their document order.
func extractLabels(text string) []string {
	type match struct {
		pos   int
		label string
	}
	var found []match
	for _, re := range labelPatterns {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			found = append(found, match{pos: m[0], label: text[m[2]:m[3]]})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].pos < found[j].pos })

	var labels []string
	seen := make(map[string]bool)
	for _, m := range found {
		label := strings.TrimSpace(m.label)
		if label == "" || seen[label] {
			continue
		}
		// Skip pure structure like [----] or [ | ].
		if !strings.ContainsFunc(label, func(r rune) bool {
			return r != '-' && r != '=' && r != '|' && r != '+' && r != ' '
		}) {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	return labels
}

// edge is a directed connection between two node indices.
type edge struct {
	from, to int
}

// ASCIIToMermaid converts an ASCII flowchart into mermaid flowchart syntax.
// This is a best-effort structural guess, not a layout-preserving
// translation: it extracts delimited node labels, infers edges from arrow
// glyphs appearing between two labels in the source text, and falls back
// to a linear chain when nodes exist but no arrows were found.
// Returns "" when no nodes are found.
func ASCIIToMermaid(text string) string {
	labels := extractLabels(text)
	if len(labels) == 0 {
		return ""
	}

	edges := inferEdges(text, labels)
	if len(edges) == 0 && len(labels) >= 2 {
		// Linear chain fallback in document order.
		for i := 0; i < len(labels)-1; i++ {
			edges = append(edges, edge{from: i, to: i + 1})
		}
	}

	var b strings.Builder
	b.WriteString("flowchart TD\n")
	for i, label := range labels {
		fmt.Fprintf(&b, "    N%d[%s]\n", i, label)
	}
	for _, e := range edges {
		fmt.Fprintf(&b, "    N%d --> N%d\n", e.from, e.to)
	}
	return b.String()
}

// inferEdges finds arrow glyph sequences occurring between two node labels
// in either textual order.
func inferEdges(text string, labels []string) []edge {
	var edges []edge
	seen := make(map[edge]bool)

	addEdge := func(e edge) {
		if e.from != e.to && !seen[e] {
			seen[e] = true
			edges = append(edges, e)
		}
	}

	for i := range labels {
		for j := range labels {
			if i == j {
				continue
			}
			pi := strings.Index(text, labels[i])
			pj := strings.Index(text, labels[j])
			if pi < 0 || pj < 0 || pi >= pj {
				continue
			}
			between := text[pi+len(labels[i]) : pj]
			switch {
			case strings.Contains(between, "<--") || strings.Contains(between, "<-"):
				addEdge(edge{from: j, to: i})
			case arrowPattern.MatchString(between):
				addEdge(edge{from: i, to: j})
			}
		}
	}
	return edges
}

// mermaidNodePattern matches a node declaration like A[Label] or A(Label).
var mermaidNodePattern = regexp.MustCompile(`(\w+)\s*[\[({]([^\])}\n]+)[\])}]`)

// mermaidEdgePattern matches an edge like A --> B (with optional label).
var mermaidEdgePattern = regexp.MustCompile(`(\w+)\s*(?:[\[({][^\])}\n]*[\])}])?\s*-[->.]*>\s*(?:\|[^|]*\|\s*)?(\w+)`)

// asciiBoxWidth is the fixed interior width of rendered boxes.
const asciiBoxWidth = 16

// MermaidToASCII renders mermaid flowchart syntax as boxed ASCII art.
// Branching and non-linear topology collapse to a single visual chain:
// an arrow is drawn between consecutive boxes only when a matching edge
// exists. Returns "" when no mermaid diagram keywords match.
func MermaidToASCII(text string) string {
	if !IsMermaidDiagram(text) {
		return ""
	}

	var ids []string
	labels := make(map[string]string)
	for _, m := range mermaidNodePattern.FindAllStringSubmatch(text, -1) {
		id := m[1]
		if _, ok := labels[id]; !ok {
			ids = append(ids, id)
			labels[id] = strings.TrimSpace(m[2])
		}
	}

	connected := make(map[[2]string]bool)
	for _, m := range mermaidEdgePattern.FindAllStringSubmatch(text, -1) {
		connected[[2]string{m[1], m[2]}] = true
		for _, id := range []string{m[1], m[2]} {
			if _, ok := labels[id]; !ok {
				ids = append(ids, id)
				labels[id] = id
			}
		}
	}
	if len(ids) == 0 {
		return ""
	}

	var b strings.Builder
	for i, id := range ids {
		writeBox(&b, labels[id])
		if i+1 < len(ids) && connected[[2]string{id, ids[i+1]}] {
			center := strings.Repeat(" ", asciiBoxWidth/2+1)
			b.WriteString(center + "|\n" + center + "v\n")
		}
	}
	return b.String()
}

// writeBox draws one fixed-width box containing a centered, possibly
// truncated label.
func writeBox(b *strings.Builder, label string) {
	if len(label) > asciiBoxWidth-2 {
		label = label[:asciiBoxWidth-2]
	}
	pad := asciiBoxWidth - len(label)
	left := pad / 2
	right := pad - left

	border := "+" + strings.Repeat("-", asciiBoxWidth) + "+\n"
	b.WriteString(border)
	b.WriteString("|" + strings.Repeat(" ", left) + label + strings.Repeat(" ", right) + "|\n")
	b.WriteString(border)
}

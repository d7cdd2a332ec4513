package md2rich

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// RTF layout constants, in twips unless noted.
const (
	rtfTableWidth = 9000 // usable row width across all columns
	rtfListIndent = 400
	rtfDefaultFS  = 22 // half-points: 11pt body text
)

// Heading sizes in half-points, indexed by level-1.
var rtfHeadingSizes = [6]int{48, 40, 32, 28, 26, 24}

// htmlToRTF serializes an HTML fragment to RTF by walking the node tree.
// Recognized tags map to control words; unrecognized tags pass their
// children through unchanged.
func htmlToRTF(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	w := &rtfWriter{}
	w.b.WriteString(`{\rtf1\ansi\deff0{\fonttbl{\f0 Arial;}{\f1 Courier New;}}`)
	w.b.WriteString(`\fs` + strconv.Itoa(rtfDefaultFS) + "\n")
	w.walk(doc)
	w.b.WriteString("}\n")
	return w.b.String(), nil
}

// rtfWriter carries the tree-walk state: the output buffer and the
// numbering counter of the innermost ordered list.
type rtfWriter struct {
	b           strings.Builder
	listDepth   int
	orderedNums []int // counter stack; -1 marks an unordered level
}

// escapeRTF escapes backslash, braces, and newlines, and encodes
// non-ASCII runes as \uN with a '?' fallback for old readers.
func escapeRTF(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == '{':
			b.WriteString(`\{`)
		case r == '}':
			b.WriteString(`\}`)
		case r == '\n' || r == '\r':
			b.WriteString(" ")
		case r > 127:
			// RTF \u takes a signed 16-bit value.
			b.WriteString(`\u` + strconv.Itoa(int(int16(r))) + `?`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// walk dispatches one node. Text nodes are escaped and emitted in place.
func (w *rtfWriter) walk(n *html.Node) {
	if n.Type == html.TextNode {
		text := n.Data
		if strings.TrimSpace(text) == "" {
			return
		}
		w.b.WriteString(escapeRTF(text))
		return
	}
	if n.Type != html.ElementNode && n.Type != html.DocumentNode {
		return
	}

	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.Data[1] - '0')
		w.b.WriteString(`\pard{\b\fs` + strconv.Itoa(rtfHeadingSizes[level-1]) + " ")
		w.walkChildren(n)
		w.b.WriteString(`}\par` + "\n")
	case "p":
		w.b.WriteString(`\pard `)
		w.walkChildren(n)
		w.b.WriteString(`\par` + "\n")
	case "strong", "b":
		w.wrap(n, `\b`)
	case "em", "i":
		w.wrap(n, `\i`)
	case "u":
		w.wrap(n, `\ul`)
	case "del", "s":
		w.wrap(n, `\strike`)
	case "sup":
		w.wrap(n, `\super`)
	case "sub":
		w.wrap(n, `\sub`)
	case "mark":
		w.wrap(n, `\highlight7`)
	case "code":
		w.wrap(n, `\f1`)
	case "pre":
		w.b.WriteString(`\pard{\f1 `)
		w.writePreText(n)
		w.b.WriteString(`}\par` + "\n")
	case "a":
		w.writeHyperlink(n)
	case "ul":
		w.pushList(-1)
		w.walkChildren(n)
		w.popList()
	case "ol":
		w.pushList(0)
		w.walkChildren(n)
		w.popList()
	case "li":
		w.writeListItem(n)
	case "table":
		w.writeTable(n)
	case "blockquote":
		w.b.WriteString(`\pard\li` + strconv.Itoa(rtfListIndent) + ` `)
		w.walkChildren(n)
		w.b.WriteString(`\par` + "\n")
	case "br":
		w.b.WriteString(`\line `)
	case "hr":
		w.b.WriteString(`\pard\brdrb\brdrs\brdrw10\sa120 \par` + "\n")
	case "img", "script", "style", "head":
		// No RTF mapping; skipped entirely.
	default:
		w.walkChildren(n)
	}
}

func (w *rtfWriter) walkChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

// wrap emits children inside one grouped control word.
func (w *rtfWriter) wrap(n *html.Node, control string) {
	w.b.WriteString("{" + control + " ")
	w.walkChildren(n)
	w.b.WriteString("}")
}

// writePreText emits the raw text of a pre block, preserving line breaks.
func (w *rtfWriter) writePreText(n *html.Node) {
	text := collectText(n)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		if i > 0 {
			w.b.WriteString(`\line `)
		}
		w.b.WriteString(escapeRTF(line))
	}
}

// writeHyperlink maps an anchor to an RTF field construct.
func (w *rtfWriter) writeHyperlink(n *html.Node) {
	href := attrValue(n, "href")
	if href == "" || strings.HasPrefix(href, "#") {
		// Internal anchors carry no target in a standalone RTF file.
		w.walkChildren(n)
		return
	}
	w.b.WriteString(`{\field{\*\fldinst{HYPERLINK "` + escapeRTF(href) + `"}}{\fldrslt{\ul\cf1 `)
	w.walkChildren(n)
	w.b.WriteString(`}}}`)
}

func (w *rtfWriter) pushList(counter int) {
	w.listDepth++
	w.orderedNums = append(w.orderedNums, counter)
}

func (w *rtfWriter) popList() {
	w.listDepth--
	w.orderedNums = w.orderedNums[:len(w.orderedNums)-1]
}

// writeListItem emits one bulleted or numbered indented paragraph.
func (w *rtfWriter) writeListItem(n *html.Node) {
	indent := rtfListIndent * w.listDepth
	marker := `\bullet  `
	if len(w.orderedNums) > 0 && w.orderedNums[len(w.orderedNums)-1] >= 0 {
		w.orderedNums[len(w.orderedNums)-1]++
		marker = strconv.Itoa(w.orderedNums[len(w.orderedNums)-1]) + ". "
	}
	w.b.WriteString(`\pard\li` + strconv.Itoa(indent) + " " + marker)
	w.walkChildren(n)
	w.b.WriteString(`\par` + "\n")
}

// writeTable emits row/cell control words with equal column widths
// computed from the widest row.
func (w *rtfWriter) writeTable(n *html.Node) {
	rows := collectRows(n)
	if len(rows) == 0 {
		return
	}
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return
	}
	cellWidth := rtfTableWidth / cols

	for _, row := range rows {
		w.b.WriteString(`\trowd\trgaph100`)
		for i := 1; i <= cols; i++ {
			fmt.Fprintf(&w.b, `\cellx%d`, i*cellWidth)
		}
		w.b.WriteString("\n")
		for i := 0; i < cols; i++ {
			w.b.WriteString(`\intbl `)
			if i < len(row) {
				w.walkChildren(row[i])
			}
			w.b.WriteString(`\cell `)
		}
		w.b.WriteString(`\row` + "\n")
	}
	w.b.WriteString(`\pard` + "\n")
}

// collectRows gathers tr nodes with their th/td children, in order.
func collectRows(table *html.Node) [][]*html.Node {
	var rows [][]*html.Node
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []*html.Node
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					cells = append(cells, c)
				}
			}
			rows = append(rows, cells)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(table)
	return rows
}

// collectText concatenates all descendant text of n.
func collectText(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

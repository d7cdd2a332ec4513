package md2rich

import (
	stdhtml "html"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// blockTags are elements that contribute a line break in plain text.
var blockTags = map[string]bool{
	"p": true, "div": true, "section": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "ul": true, "ol": true, "dl": true, "dt": true, "dd": true,
	"tr": true, "table": true, "pre": true, "hr": true, "br": true,
}

var multiBlank = regexp.MustCompile(`\n{3,}`)

// ToPlainText derives the plain-text clipboard payload from html: tags
// stripped, block-level boundaries converted to line breaks, entities
// decoded. Malformed HTML never fails; the x/net parser always produces
// a tree.
func ToPlainText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		// Parse only errors on reader failure; a string reader cannot.
		// Fall back to a crude strip so the caller still gets text.
		return strings.TrimSpace(stdhtml.UnescapeString(anyTag.ReplaceAllString(htmlContent, "")))
	}

	var b strings.Builder
	walkText(doc, &b)
	text := multiBlank.ReplaceAllString(b.String(), "\n\n")
	return strings.TrimSpace(text)
}

// walkText appends n's text content to b, inserting breaks at block
// boundaries. Table cells in one row are separated by tabs.
func walkText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		// Formatting whitespace between block elements is not content.
		// Inline separator spaces carry no newline and are kept.
		if strings.ContainsRune(n.Data, '\n') && strings.TrimSpace(n.Data) == "" {
			return
		}
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style":
			return
		case "br":
			b.WriteString("\n")
			return
		case "hr":
			b.WriteString("\n")
			return
		case "td", "th":
			defer b.WriteString("\t")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkText(c, b)
	}

	if n.Type == html.ElementNode && blockTags[n.Data] {
		b.WriteString("\n")
	}
}

// decodeEntities decodes HTML entities into plain characters.
func decodeEntities(s string) string {
	return stdhtml.UnescapeString(s)
}

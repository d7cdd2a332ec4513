package md2rich

import (
	"regexp"
	"strconv"
	"strings"
)

// Block-start patterns, tested in precedence order by parseLines.
var (
	lineEndingPattern = regexp.MustCompile(`\r\n?`)
	headingPattern    = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	hrPattern         = regexp.MustCompile(`^\s{0,3}(-{3,}|\*{3,}|_{3,})\s*$`)
	fenceOpenPattern  = regexp.MustCompile("^```\\s*([A-Za-z0-9+_-]*)\\s*$")
	fenceClosePattern = regexp.MustCompile("^```\\s*$")
	blockquoteLine    = regexp.MustCompile(`^\s{0,3}>\s?(.*)$`)
	tableSeparator    = regexp.MustCompile(`^\s*\|?[-:\s]+\|[-:\s|]*\|?\s*$`)
	unorderedItem     = regexp.MustCompile(`^(\s*)[-*+]\s+(.*)$`)
	orderedItem       = regexp.MustCompile(`^(\s*)(\d+)\.\s+(.*)$`)
	taskItemPattern   = regexp.MustCompile(`^\[([ xX])\]\s+(.*)$`)
	definitionLine    = regexp.MustCompile(`^:\s+(.*)$`)
	rawHTMLOpen       = regexp.MustCompile(`^<([A-Za-z][A-Za-z0-9-]*)(\s|>|/>|$)`)
)

// ParseResult holds the outputs of a single parse pass. All fields are
// freshly allocated per call; the parser keeps no state between calls.
type ParseResult struct {
	HTML      string
	Headings  []Heading
	Footnotes []Footnote
}

// parser is the per-call parse context. Heading and footnote collection
// lives here, not on any long-lived object, so concurrent Parse calls
// cannot interfere.
type parser struct {
	opts      Options
	headings  []Heading
	footnotes []Footnote
	slugSeen  map[string]int
}

// Parse converts a full markdown document into an HTML body string plus
// the heading index and footnote table collected along the way.
// Malformed markdown never returns an error; the worst case is a visually
// wrong but deterministic rendering.
func Parse(markdown string, opts Options) *ParseResult {
	normalized := lineEndingPattern.ReplaceAllString(markdown, "\n")
	lines := strings.Split(normalized, "\n")

	p := &parser{opts: opts, slugSeen: make(map[string]int)}
	lines, p.footnotes = extractFootnotes(lines)

	html := p.parseLines(lines)
	html += renderFootnotes(p.footnotes, opts)

	return &ParseResult{
		HTML:      html,
		Headings:  p.headings,
		Footnotes: p.footnotes,
	}
}

// parseLines scans lines top to bottom with a cursor, testing block-start
// patterns in precedence order. Each handler returns its HTML plus the
// index of the last line it consumed.
func (p *parser) parseLines(lines []string) string {
	var b strings.Builder
	i := 0
	for i < len(lines) {
		line := lines[i]

		switch {
		case strings.TrimSpace(line) == "":
			i++
		case p.isDefinitionStart(lines, i):
			html, last := p.parseDefinitionList(lines, i)
			b.WriteString(html)
			i = last + 1
		case fenceOpenPattern.MatchString(line):
			html, last := p.parseFence(lines, i)
			b.WriteString(html)
			i = last + 1
		case isTableStart(lines, i):
			html, last := p.parseTable(lines, i)
			b.WriteString(html)
			i = last + 1
		case headingPattern.MatchString(line):
			b.WriteString(p.parseHeading(line))
			i++
		case hrPattern.MatchString(line):
			b.WriteString("<hr>\n")
			i++
		case blockquoteLine.MatchString(line):
			html, last := p.parseBlockquote(lines, i)
			b.WriteString(html)
			i = last + 1
		case unorderedItem.MatchString(line):
			html, last := p.parseList(lines, i, false)
			b.WriteString(html)
			i = last + 1
		case orderedItem.MatchString(line):
			html, last := p.parseList(lines, i, true)
			b.WriteString(html)
			i = last + 1
		case rawHTMLOpen.MatchString(strings.TrimSpace(line)):
			html, last := parseRawHTML(lines, i)
			b.WriteString(html)
			i = last + 1
		default:
			html, last := p.parseParagraph(lines, i)
			b.WriteString(html)
			i = last + 1
		}
	}
	return b.String()
}

// parseHeading renders one ATX heading and records it in the heading index.
// Duplicate slugs get -2, -3 suffixes so every anchor stays unique.
func (p *parser) parseHeading(line string) string {
	m := headingPattern.FindStringSubmatch(line)
	level := len(m[1])
	text := strings.TrimSpace(m[2])

	slug := Slugify(text)
	if slug == "" {
		slug = "section"
	}
	p.slugSeen[slug]++
	if n := p.slugSeen[slug]; n > 1 {
		slug = slug + "-" + strconv.Itoa(n)
	}
	p.headings = append(p.headings, Heading{
		Level: level,
		Text:  emphasisMarkers.Replace(text),
		ID:    slug,
	})

	tag := "h" + strconv.Itoa(level)
	return "<" + tag + ` id="` + slug + `">` + FormatInline(text, p.opts) + "</" + tag + ">\n"
}

// parseFence consumes a fenced code block. An unterminated fence consumes
// to end of document rather than failing.
func (p *parser) parseFence(lines []string, start int) (string, int) {
	lang := fenceOpenPattern.FindStringSubmatch(lines[start])[1]

	end := len(lines) - 1
	var body []string
	for j := start + 1; j < len(lines); j++ {
		if fenceClosePattern.MatchString(lines[j]) {
			end = j
			break
		}
		body = append(body, lines[j])
		end = j
	}
	return renderCodeBlock(strings.ToLower(lang), strings.Join(body, "\n"), p.opts), end
}

// parseBlockquote consumes a contiguous run of >-prefixed lines and
// reparses the stripped content as its own block stream. Headings and
// footnote references inside the quote share this parse's context.
func (p *parser) parseBlockquote(lines []string, start int) (string, int) {
	var inner []string
	end := start
	for j := start; j < len(lines); j++ {
		m := blockquoteLine.FindStringSubmatch(lines[j])
		if m == nil {
			break
		}
		inner = append(inner, m[1])
		end = j
	}
	return "<blockquote>\n" + p.parseLines(inner) + "</blockquote>\n", end
}

// isDefinitionStart reports whether lines[i] is a definition-list term:
// a plain text line whose next line starts with ": ".
func (p *parser) isDefinitionStart(lines []string, i int) bool {
	line := lines[i]
	if strings.TrimSpace(line) == "" || i+1 >= len(lines) {
		return false
	}
	if headingPattern.MatchString(line) || fenceOpenPattern.MatchString(line) ||
		blockquoteLine.MatchString(line) || unorderedItem.MatchString(line) ||
		orderedItem.MatchString(line) || hrPattern.MatchString(line) {
		return false
	}
	return definitionLine.MatchString(lines[i+1])
}

// parseDefinitionList consumes consecutive term/definition groups.
func (p *parser) parseDefinitionList(lines []string, start int) (string, int) {
	var b strings.Builder
	b.WriteString("<dl>\n")
	i := start
	end := start
	for i < len(lines) {
		if i+1 >= len(lines) || !p.isDefinitionStart(lines, i) {
			break
		}
		b.WriteString("<dt>" + FormatInline(strings.TrimSpace(lines[i]), p.opts) + "</dt>\n")
		j := i + 1
		for j < len(lines) {
			m := definitionLine.FindStringSubmatch(lines[j])
			if m == nil {
				break
			}
			b.WriteString("<dd>" + FormatInline(m[1], p.opts) + "</dd>\n")
			j++
		}
		end = j - 1
		i = j
		// A blank line between groups keeps the list going.
		if i < len(lines) && strings.TrimSpace(lines[i]) == "" &&
			i+1 < len(lines) && p.isDefinitionStart(lines, i+1) {
			i++
		}
	}
	b.WriteString("</dl>\n")
	return b.String(), end
}

// parseRawHTML passes a contiguous run of HTML-looking lines through
// unmodified. Sanitize runs later regardless.
func parseRawHTML(lines []string, start int) (string, int) {
	var b strings.Builder
	end := start
	for j := start; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == "" {
			break
		}
		b.WriteString(lines[j])
		b.WriteString("\n")
		end = j
	}
	return b.String(), end
}

// parseParagraph is the fallback: consume contiguous non-block-starting
// lines and join them with a space or <br> depending on the breaks option.
func (p *parser) parseParagraph(lines []string, start int) (string, int) {
	var parts []string
	end := start
	for j := start; j < len(lines); j++ {
		line := lines[j]
		if strings.TrimSpace(line) == "" || p.startsBlock(lines, j) {
			break
		}
		parts = append(parts, strings.TrimSpace(line))
		end = j
	}

	sep := " "
	if p.opts.Breaks {
		sep = "<br>"
	}
	joined := strings.Join(parts, "\x01")
	html := FormatInline(joined, p.opts)
	html = strings.ReplaceAll(html, "\x01", sep)
	return "<p>" + html + "</p>\n", end
}

// startsBlock reports whether lines[j] begins a non-paragraph block.
// Used to terminate paragraph runs; j > start of the paragraph.
func (p *parser) startsBlock(lines []string, j int) bool {
	line := lines[j]
	return headingPattern.MatchString(line) ||
		fenceOpenPattern.MatchString(line) ||
		hrPattern.MatchString(line) ||
		blockquoteLine.MatchString(line) ||
		unorderedItem.MatchString(line) ||
		orderedItem.MatchString(line) ||
		isTableStart(lines, j) ||
		p.isDefinitionStart(lines, j)
	// Raw HTML runs are intentionally absorbed into paragraphs here;
	// only a fragment at block position starts a raw block.
}

package md2rich

import (
	"regexp"
	"strconv"
	"strings"
)

// Precompiled inline patterns. Order of application matters; see FormatInline.
var (
	codeSpanPattern    = regexp.MustCompile("`([^`\n]+)`")
	imagePattern       = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	linkPattern        = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	bareURLPattern     = regexp.MustCompile(`https?://[^\s<\x00]+`)
	highlightInline    = regexp.MustCompile(`==([^=]+)==`)
	footnoteRefPattern = regexp.MustCompile(`\[\^([^\]\s]+)\]`)
	strikePattern      = regexp.MustCompile(`~~(.+?)~~`)
	subscriptPattern   = regexp.MustCompile(`~([^~\s]+)~`)
	superscriptPattern = regexp.MustCompile(`\^([^^\s]+)\^`)
	boldItalicStar     = regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)
	boldItalicUnder    = regexp.MustCompile(`___(.+?)___`)
	boldStar           = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldUnder          = regexp.MustCompile(`__(.+?)__`)
	italicStar         = regexp.MustCompile(`\*([^*\n]+)\*`)
	italicUnder        = regexp.MustCompile(`_([^_\n]+)_`)
	placeholderPattern = regexp.MustCompile("\x00(\\d+)\x00")
)

// htmlEscaper escapes the five HTML metacharacters.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// escapeHTML escapes the five HTML metacharacters in s.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// protected accumulates emitted HTML fragments that later rules must not
// re-match. Each fragment is swapped for a NUL-delimited placeholder and
// restored once all passes have run, guaranteeing every character is
// classified exactly once.
type protected struct {
	spans []string
}

// add stores html and returns its placeholder token.
func (p *protected) add(html string) string {
	p.spans = append(p.spans, html)
	return "\x00" + strconv.Itoa(len(p.spans)-1) + "\x00"
}

// restore expands all placeholders. Runs repeatedly because a restored
// fragment may itself contain placeholders (nested protection).
func (p *protected) restore(s string) string {
	for strings.ContainsRune(s, '\x00') {
		s = placeholderPattern.ReplaceAllStringFunc(s, func(tok string) string {
			n, err := strconv.Atoi(tok[1 : len(tok)-1])
			if err != nil || n < 0 || n >= len(p.spans) {
				return tok
			}
			return p.spans[n]
		})
	}
	return s
}

// FormatInline transforms one logical line run of raw markdown into styled
// inline HTML. Output is well-formed; no unescaped user content reaches it.
func FormatInline(text string, opts Options) string {
	p := &protected{}

	// Code spans are extracted from the raw text before anything else so
	// their content is never re-interpreted as markdown.
	text = codeSpanPattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := codeSpanPattern.FindStringSubmatch(m)
		return p.add("<code>" + escapeHTML(sub[1]) + "</code>")
	})

	text = escapeHTML(text)

	// Images, then links. The emitted tags are protected whole (images) or
	// as open/close pairs (links) so emphasis still applies to link text.
	text = imagePattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := imagePattern.FindStringSubmatch(m)
		return p.add(`<img src="` + strings.TrimSpace(sub[2]) + `" alt="` + sub[1] + `">`)
	})
	text = linkPattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := linkPattern.FindStringSubmatch(m)
		href := strings.TrimSpace(sub[2])
		open := p.add(`<a href="` + href + `">`)
		if bareURLPattern.MatchString(sub[1]) {
			// Link text is itself a URL; protect it so linkify cannot
			// wrap it a second time.
			return open + p.add(sub[1]) + p.add("</a>")
		}
		return open + sub[1] + p.add("</a>")
	})

	if opts.Linkify {
		text = autolink(text, p)
	}

	text = highlightInline.ReplaceAllString(text, "<mark>$1</mark>")

	text = footnoteRefPattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := footnoteRefPattern.FindStringSubmatch(m)
		id := sub[1]
		return p.add(`<sup class="footnote-ref"><a href="#fn-` + id + `" id="fnref-` + id + `">[` + id + `]</a></sup>`)
	})

	// Strikethrough consumes double tildes before the single-tilde
	// subscript rule runs, so subscript cannot match across a ~~ pair.
	text = strikePattern.ReplaceAllString(text, "<del>$1</del>")
	text = superscriptPattern.ReplaceAllString(text, "<sup>$1</sup>")
	text = subscriptPattern.ReplaceAllString(text, "<sub>$1</sub>")

	text = boldItalicStar.ReplaceAllString(text, "<strong><em>$1</em></strong>")
	text = boldItalicUnder.ReplaceAllString(text, "<strong><em>$1</em></strong>")
	text = boldStar.ReplaceAllString(text, "<strong>$1</strong>")
	text = boldUnder.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicStar.ReplaceAllString(text, "<em>$1</em>")
	text = italicUnder.ReplaceAllString(text, "<em>$1</em>")

	if opts.Typographer {
		text = applyTypography(text)
	}

	return p.restore(text)
}

// autolink wraps bare http(s) URLs in anchors. A match immediately after a
// placeholder boundary sits inside just-emitted markup (an href or a
// protected link text) and is skipped.
func autolink(text string, p *protected) string {
	matches := bareURLPattern.FindAllStringIndex(text, -1)
	if matches == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > 0 && text[start-1] == '\x00' {
			continue
		}
		url := strings.TrimRight(text[start:end], ".,;:!?)")
		end = start + len(url)
		b.WriteString(text[last:start])
		b.WriteString(p.add(`<a href="` + url + `">`))
		b.WriteString(p.add(url))
		b.WriteString(p.add("</a>"))
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

// applyTypography substitutes em/en dashes, ellipsis, and smart quotes.
// Operates on escaped text, so straight quotes appear as &quot; and &#39;
// entities. Emitted tags and placeholders are left untouched.
func applyTypography(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inTag := false
	inPlaceholder := false
	prevSpace := true // start of run behaves like after a space

	for i := 0; i < len(text); {
		c := text[i]

		switch {
		case inPlaceholder:
			b.WriteByte(c)
			if c == '\x00' {
				inPlaceholder = false
			}
			i++
			continue
		case c == '\x00':
			inPlaceholder = true
			b.WriteByte(c)
			i++
			continue
		case inTag:
			b.WriteByte(c)
			if c == '>' {
				inTag = false
			}
			i++
			continue
		case c == '<':
			inTag = true
			b.WriteByte(c)
			i++
			continue
		}

		rest := text[i:]
		switch {
		case strings.HasPrefix(rest, "---"):
			b.WriteString("—")
			i += 3
			prevSpace = false
		case strings.HasPrefix(rest, "--"):
			b.WriteString("–")
			i += 2
			prevSpace = false
		case strings.HasPrefix(rest, "..."):
			b.WriteString("…")
			i += 3
			prevSpace = false
		case strings.HasPrefix(rest, "&quot;"):
			if prevSpace {
				b.WriteString("“")
			} else {
				b.WriteString("”")
			}
			i += len("&quot;")
			prevSpace = false
		case strings.HasPrefix(rest, "&#39;"):
			if prevSpace {
				b.WriteString("‘")
			} else {
				b.WriteString("’")
			}
			i += len("&#39;")
			prevSpace = false
		default:
			b.WriteByte(c)
			prevSpace = c == ' ' || c == '\t' || c == '(' || c == '\n'
			i++
		}
	}

	return b.String()
}

package md2rich

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// diagramTags are fence language tags that mark a block as diagram input.
// These blocks are never syntax-highlighted; the diagram post-pass needs
// their content verbatim.
var diagramTags = map[string]bool{
	"ascii":   true,
	"diagram": true,
	"art":     true,
	"box":     true,
	"mermaid": true,
}

// highlightStyle is the chroma style used for inline-styled output.
// Chosen for readable colors on the white background every paste target uses.
const highlightStyle = "github"

// renderCodeBlock renders one fenced code block. With highlighting enabled
// and a known language the content is tokenized by chroma; unknown
// languages and diagram-tagged blocks fall back to an escaped plain block.
func renderCodeBlock(lang, code string, opts Options) string {
	if opts.HighlightCode && lang != "" && !diagramTags[lang] {
		if html, ok := highlightCode(lang, code, opts.IncludeStyles); ok {
			return html
		}
	}
	return plainCodeBlock(lang, code)
}

// plainCodeBlock emits an escaped, unhighlighted block. The language tag is
// preserved as a class so the diagram post-pass can identify tagged fences.
func plainCodeBlock(lang, code string) string {
	if lang == "" {
		return "<pre><code>" + escapeHTML(code) + "</code></pre>\n"
	}
	return `<pre><code class="language-` + lang + `">` + escapeHTML(code) + "</code></pre>\n"
}

// highlightCode runs chroma over the code. Returns ok=false when no lexer
// matches the language or tokenization fails, so the caller can degrade to
// the plain block.
func highlightCode(lang, code string, inlineStyles bool) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	formatter := chromahtml.New(
		chromahtml.WithClasses(!inlineStyles),
		chromahtml.TabWidth(4),
	)
	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", false
	}
	out := buf.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, true
}

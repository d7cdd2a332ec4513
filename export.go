package md2rich

import (
	"fmt"
	"regexp"
	"strings"
)

// MIME types and extensions per export format.
const (
	mimeHTML = "text/html"
	mimeWord = "application/msword"
	mimeRTF  = "application/rtf"
)

// fallbackFilename is used when the markdown has no top-level heading.
const fallbackFilename = "document"

// maxFilenameLen caps the slug-derived base filename.
const maxFilenameLen = 64

var firstHeadingPattern = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// documentCSS is the base stylesheet embedded into standalone exports.
const documentCSS = `body{font-family:Arial,Helvetica,sans-serif;font-size:14px;line-height:1.5;color:#24292e;max-width:800px;margin:0 auto;padding:32px}
h1,h2,h3,h4,h5,h6{margin-top:24px;margin-bottom:12px;font-weight:600}
code{font-family:Consolas,Monaco,monospace;background:#f6f8fa;padding:2px 4px;border-radius:3px}
pre{background:#f6f8fa;padding:12px;overflow:auto}
pre code{background:none;padding:0}
table{border-collapse:collapse;margin:12px 0}
th,td{border:1px solid #d0d7de;padding:6px 12px}
blockquote{border-left:3px solid #d0d7de;margin:0;padding-left:12px;color:#57606a}
mark{background:#fff8c5}`

// wordDocumentHeader carries the XML namespaces and settings block that
// word processors use to recognize HTML as a document import.
const wordDocumentHeader = `<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:w="urn:schemas-microsoft-com:office:word" xmlns="http://www.w3.org/TR/REC-html40">
<head>
<meta charset="utf-8">
<!--[if gte mso 9]><xml><w:WordDocument><w:View>Print</w:View><w:Zoom>100</w:Zoom></w:WordDocument></xml><![endif]-->
`

// ExportFilename derives the base filename from the first top-level
// heading, slugified and truncated, or falls back to a fixed name.
func ExportFilename(markdown string) string {
	m := firstHeadingPattern.FindStringSubmatch(markdown)
	if m == nil {
		return fallbackFilename
	}
	slug := Slugify(strings.TrimSpace(m[1]))
	if slug == "" {
		return fallbackFilename
	}
	if len(slug) > maxFilenameLen {
		slug = strings.Trim(slug[:maxFilenameLen], "-")
	}
	return slug
}

// exportArtifact builds the named artifact for one format from final HTML
// and the original markdown (used only for filename derivation).
func exportArtifact(htmlContent, markdown string, format Format, opts Options) (*Artifact, error) {
	base := ExportFilename(markdown)

	switch format {
	case FormatHTML:
		return &Artifact{
			Data:     []byte(standaloneHTML(htmlContent, base, opts)),
			Filename: base + ".html",
			MIME:     mimeHTML,
		}, nil
	case FormatWord:
		return &Artifact{
			Data:     []byte(wordHTML(htmlContent, opts)),
			Filename: base + ".doc",
			MIME:     mimeWord,
		}, nil
	case FormatRTF:
		rtf, err := htmlToRTF(htmlContent)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRTFGeneration, err)
		}
		return &Artifact{
			Data:     []byte(rtf),
			Filename: base + ".rtf",
			MIME:     mimeRTF,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// standaloneHTML wraps the body in a self-contained HTML5 page.
func standaloneHTML(body, title string, opts Options) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + escapeHTML(title) + "</title>\n")
	if opts.IncludeStyles {
		b.WriteString("<style>\n" + documentCSS + "\n</style>\n")
	}
	b.WriteString("</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}

// wordHTML wraps the body in the word-processor compatible markup.
func wordHTML(body string, opts Options) string {
	var b strings.Builder
	b.WriteString(wordDocumentHeader)
	if opts.IncludeStyles {
		b.WriteString("<style>\n" + documentCSS + "\n</style>\n")
	}
	b.WriteString("</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}

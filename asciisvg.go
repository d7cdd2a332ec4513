package md2rich

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// StyleOptions controls diagram image rendering.
type StyleOptions struct {
	FontSize   float64 // pt; 0 means DefaultDiagramStyle
	FontFamily string  // must be fixed-pitch for exact alignment
	Foreground string  // CSS color
	Background string  // CSS color
	Padding    float64 // px on every side
}

// DefaultDiagramStyle returns the rendering defaults.
func DefaultDiagramStyle() StyleOptions {
	return StyleOptions{
		FontSize:   14,
		FontFamily: "Courier New, monospace",
		Foreground: "#24292e",
		Background: "#ffffff",
		Padding:    8,
	}
}

// Monospace glyph metrics relative to font size. The width ratio matches
// common fixed-pitch fonts; line height leaves breathing room between rows.
const (
	charWidthRatio  = 0.6
	lineHeightRatio = 1.3
)

// normalizeStyle fills zero-value fields with defaults.
func normalizeStyle(style StyleOptions) StyleOptions {
	def := DefaultDiagramStyle()
	if style.FontSize <= 0 {
		style.FontSize = def.FontSize
	}
	if style.FontFamily == "" {
		style.FontFamily = def.FontFamily
	}
	if style.Foreground == "" {
		style.Foreground = def.Foreground
	}
	if style.Background == "" {
		style.Background = def.Background
	}
	if style.Padding <= 0 {
		style.Padding = def.Padding
	}
	return style
}

// ASCIIToSVG renders ASCII art as an SVG image, one monospace text row per
// source line. The image is sized from character width times the longest
// line and line height times the line count, and every space is preserved,
// so the visual layout is reproduced exactly. Proportional-font HTML
// rendering cannot guarantee that; rasterization to an image can.
func ASCIIToSVG(text string, style StyleOptions) string {
	style = normalizeStyle(style)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	maxLen := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > maxLen {
			maxLen = n
		}
	}

	charW := style.FontSize * charWidthRatio
	lineH := style.FontSize * lineHeightRatio
	width := float64(maxLen)*charW + 2*style.Padding
	height := float64(len(lines))*lineH + 2*style.Padding

	var b strings.Builder
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`,
		width, height, width, height)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`, style.Background)
	for i, line := range lines {
		y := style.Padding + float64(i)*lineH + style.FontSize
		fmt.Fprintf(&b,
			`<text x="%.1f" y="%.1f" font-family="%s" font-size="%.1f" fill="%s" xml:space="preserve">%s</text>`,
			style.Padding, y, style.FontFamily, style.FontSize, style.Foreground, escapeHTML(line))
	}
	b.WriteString("</svg>")
	return b.String()
}

// ASCIIToImageTag wraps the SVG rendering in an <img> with a data URI so
// it can be substituted into the document and survive a clipboard paste.
func ASCIIToImageTag(text string, style StyleOptions) string {
	svg := ASCIIToSVG(text, style)
	encoded := base64.StdEncoding.EncodeToString([]byte(svg))
	return `<img src="data:image/svg+xml;base64,` + encoded + `" alt="diagram">`
}

package md2rich

import (
	"strings"
	"testing"
)

func TestASCIIToSVG(t *testing.T) {
	t.Parallel()

	art := "+--+\n|ab|\n+--+"
	got := ASCIIToSVG(art, StyleOptions{})

	wants := []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`xml:space="preserve"`,
		"|ab|",
		"+--+",
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("SVG %q missing %q", got, want)
		}
	}

	// One text row per source line.
	if n := strings.Count(got, "<text"); n != 3 {
		t.Errorf("got %d text rows, want 3", n)
	}
}

func TestASCIIToSVGEscapesContent(t *testing.T) {
	t.Parallel()

	got := ASCIIToSVG("<evil> & friends", StyleOptions{})
	if strings.Contains(got, "<evil>") {
		t.Errorf("unescaped content in %q", got)
	}
	if !strings.Contains(got, "&lt;evil&gt; &amp; friends") {
		t.Errorf("escaped content missing in %q", got)
	}
}

func TestASCIIToSVGSizing(t *testing.T) {
	t.Parallel()

	// Wider input must produce a wider image; more lines a taller one.
	narrow := ASCIIToSVG("ab", StyleOptions{})
	wide := ASCIIToSVG(strings.Repeat("ab", 40), StyleOptions{})
	if len(narrow) >= len(wide) && narrow == wide {
		t.Fatal("sizing ignores content width")
	}

	short := ASCIIToSVG("a", StyleOptions{})
	tall := ASCIIToSVG("a\nb\nc\nd", StyleOptions{})
	if short == tall {
		t.Fatal("sizing ignores line count")
	}
}

func TestASCIIToImageTag(t *testing.T) {
	t.Parallel()

	got := ASCIIToImageTag("+--+", StyleOptions{})
	if !strings.HasPrefix(got, `<img src="data:image/svg+xml;base64,`) {
		t.Errorf("unexpected image markup: %q", got)
	}

	// The image data URL must survive sanitization.
	if sanitized := Sanitize(got); sanitized != got {
		t.Errorf("Sanitize altered image tag: %q -> %q", got, sanitized)
	}
}

func TestNormalizeStyleDefaults(t *testing.T) {
	t.Parallel()

	got := normalizeStyle(StyleOptions{})
	def := DefaultDiagramStyle()
	if got != def {
		t.Errorf("normalizeStyle(zero) = %+v, want %+v", got, def)
	}

	custom := normalizeStyle(StyleOptions{FontSize: 20})
	if custom.FontSize != 20 || custom.FontFamily != def.FontFamily {
		t.Errorf("partial style not preserved: %+v", custom)
	}
}

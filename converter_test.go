package md2rich

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// stubRenderer returns canned SVG without a browser.
type stubRenderer struct {
	svg    string
	err    error
	calls  int
	closed bool
}

func (s *stubRenderer) RenderMermaid(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.svg, s.err
}

func (s *stubRenderer) Close() error {
	s.closed = true
	return nil
}

func newTestConverter(opts ...Option) *Converter {
	base := []Option{WithDiagramRenderer(&stubRenderer{svg: "<svg>stub</svg>"})}
	return NewConverter(append(base, opts...)...)
}

func TestConvertEmptyMarkdown(t *testing.T) {
	t.Parallel()

	c := newTestConverter()
	_, err := c.Convert(context.Background(), Input{Markdown: ""})
	if !errors.Is(err, ErrEmptyMarkdown) {
		t.Errorf("Convert(empty) error = %v, want ErrEmptyMarkdown", err)
	}
	_, err = c.Export(context.Background(), Input{Markdown: ""}, FormatHTML)
	if !errors.Is(err, ErrEmptyMarkdown) {
		t.Errorf("Export(empty) error = %v, want ErrEmptyMarkdown", err)
	}
}

func TestConvertFullDocument(t *testing.T) {
	t.Parallel()

	markdown := `# Report

Some **bold** text with a [link](https://example.com).

## Details

| Col | Val |
|-----|-----|
| a   | 1   |

[^note]: extra context

Reference[^note] here.
`

	c := newTestConverter()
	result, err := c.Convert(context.Background(), Input{Markdown: markdown})
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}

	for _, want := range []string{
		`<h1 id="report">Report</h1>`,
		"<strong>bold</strong>",
		`href="https://example.com"`,
		"<table>",
		`class="footnotes"`,
	} {
		if !strings.Contains(result.HTML, want) {
			t.Errorf("HTML missing %q", want)
		}
	}

	if len(result.Headings) != 2 {
		t.Fatalf("Headings = %d, want 2", len(result.Headings))
	}
	if result.Headings[0].ID != "report" || result.Headings[1].ID != "details" {
		t.Errorf("heading IDs = %q, %q", result.Headings[0].ID, result.Headings[1].ID)
	}
	if len(result.Footnotes) != 1 || result.Footnotes[0].ID != "note" {
		t.Errorf("Footnotes = %+v, want one with ID note", result.Footnotes)
	}
	if !strings.Contains(result.Text, "Report") || strings.Contains(result.Text, "<") {
		t.Errorf("Text = %q, want plain text", result.Text)
	}
}

func TestConvertMermaidRendered(t *testing.T) {
	t.Parallel()

	stub := &stubRenderer{svg: `<svg id="rendered">x</svg>`}
	c := NewConverter(WithDiagramRenderer(stub))

	markdown := "```mermaid\nflowchart TD\nA-->B\n```\n"
	result, err := c.Convert(context.Background(), Input{Markdown: markdown})
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if !strings.Contains(result.HTML, `<svg id="rendered">`) {
		t.Errorf("HTML = %q, want rendered SVG", result.HTML)
	}
	if strings.Contains(result.HTML, "<pre>") {
		t.Error("mermaid fence should be replaced, not kept")
	}
	if stub.calls != 1 {
		t.Errorf("renderer calls = %d, want 1", stub.calls)
	}
}

func TestConvertMermaidPlaceholderOnError(t *testing.T) {
	t.Parallel()

	stub := &stubRenderer{err: errors.New("browser exploded")}
	c := NewConverter(WithDiagramRenderer(stub))

	result, err := c.Convert(context.Background(), Input{Markdown: "```mermaid\nflowchart TD\nA-->B\n```\n"})
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if !strings.Contains(result.HTML, "diagram rendering failed") {
		t.Errorf("HTML = %q, want inline placeholder", result.HTML)
	}
	if !strings.Contains(result.HTML, "flowchart TD") {
		t.Error("placeholder should carry a source excerpt")
	}
}

func TestConvertMermaidPlaceholderWithoutRenderer(t *testing.T) {
	t.Parallel()

	c := NewConverter(WithDiagramRenderer(nil))
	result, err := c.Convert(context.Background(), Input{Markdown: "```mermaid\nflowchart TD\nA-->B\n```\n"})
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if !strings.Contains(result.HTML, "diagram rendering failed") {
		t.Errorf("HTML = %q, want placeholder when no renderer is available", result.HTML)
	}
}

func TestConvertASCIIDiagramBecomesImage(t *testing.T) {
	t.Parallel()

	markdown := "```ascii\n+-------+\n| Start |\n+-------+\n```\n"
	c := newTestConverter()
	result, err := c.Convert(context.Background(), Input{Markdown: markdown})
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if !strings.Contains(result.HTML, "data:image/svg+xml;base64,") {
		t.Errorf("HTML = %q, want embedded SVG image", result.HTML)
	}
	if strings.Contains(result.HTML, "<pre>") {
		t.Error("diagram fence should be replaced, not kept")
	}
}

func TestConvertUntaggedFenceDetection(t *testing.T) {
	t.Parallel()

	c := newTestConverter()

	// An untagged fence that looks like a box diagram is converted.
	diagram := "```\n+-------+     +-----+\n| Write | --> | Run |\n+-------+     +-----+\n```\n"
	result, err := c.Convert(context.Background(), Input{Markdown: diagram})
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if !strings.Contains(result.HTML, "data:image/svg+xml;base64,") {
		t.Errorf("untagged diagram should become an image, got %q", result.HTML)
	}

	// An untagged fence of ordinary prose stays a code block.
	prose := "```\njust some words\nnothing structural\n```\n"
	result, err = c.Convert(context.Background(), Input{Markdown: prose})
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if !strings.Contains(result.HTML, "<pre><code>") {
		t.Errorf("plain fence should survive, got %q", result.HTML)
	}
}

func TestConvertHighlightedFenceNotTreatedAsDiagram(t *testing.T) {
	t.Parallel()

	stub := &stubRenderer{svg: "<svg>x</svg>"}
	c := NewConverter(WithDiagramRenderer(stub))

	markdown := "```go\nfunc main() {}\n```\n"
	result, err := c.Convert(context.Background(), Input{Markdown: markdown})
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if stub.calls != 0 {
		t.Errorf("renderer calls = %d, want 0 for a highlighted fence", stub.calls)
	}
	if strings.Contains(result.HTML, "data:image/svg+xml") {
		t.Error("highlighted code should not be converted to a diagram image")
	}
}

func TestConvertTargetSelection(t *testing.T) {
	t.Parallel()

	markdown := "# Title\n\ntext with `code` in it\n"

	// Converter-level target.
	c := newTestConverter(WithTarget(TargetSlack))
	result, err := c.Convert(context.Background(), Input{Markdown: markdown})
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if strings.ContainsAny(result.HTML, "<>") {
		t.Errorf("slack output should have no tags, got %q", result.HTML)
	}

	// Per-call target overrides the converter's.
	result, err = c.Convert(context.Background(), Input{Markdown: markdown, Target: TargetUniversal})
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if !strings.Contains(result.HTML, "<h1") {
		t.Errorf("universal target should keep HTML, got %q", result.HTML)
	}
}

func TestConvertPerCallOptions(t *testing.T) {
	t.Parallel()

	c := newTestConverter()
	breaks := DefaultOptions()
	breaks.Breaks = true

	result, err := c.Convert(context.Background(), Input{
		Markdown: "line one\nline two\n",
		Options:  &breaks,
	})
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if !strings.Contains(result.HTML, "<br>") {
		t.Errorf("Breaks option should insert <br>, got %q", result.HTML)
	}
}

func TestConvertCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestConverter()
	_, err := c.Convert(ctx, Input{Markdown: "# x"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert error = %v, want context.Canceled", err)
	}
}

func TestExportEndToEnd(t *testing.T) {
	t.Parallel()

	c := newTestConverter()
	art, err := c.Export(context.Background(), Input{Markdown: "# Weekly Update\n\ncontent"}, FormatWord)
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if art.Filename != "weekly-update.doc" {
		t.Errorf("Filename = %q, want weekly-update.doc", art.Filename)
	}
	if !strings.Contains(string(art.Data), "Weekly Update") {
		t.Error("artifact should contain the document content")
	}
}

func TestConverterClose(t *testing.T) {
	t.Parallel()

	stub := &stubRenderer{}
	c := NewConverter(WithDiagramRenderer(stub))
	if err := c.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if !stub.closed {
		t.Error("Close should propagate to the renderer")
	}

	c = NewConverter(WithDiagramRenderer(nil))
	if err := c.Close(); err != nil {
		t.Fatalf("Close without renderer error: %v", err)
	}
}

package md2rich

import (
	"context"
	"fmt"
	"regexp"
)

// Compile-time interface implementation checks.
var _ DiagramRenderer = (*rodRenderer)(nil)

// Converter orchestrates the markdown-to-rich-text pipeline.
// Create with NewConverter, use Convert or Export, and Close when done.
// A Converter holds no per-document state; concurrent calls are safe.
type Converter struct {
	cfg         converterConfig
	renderer    DiagramRenderer
	rendererSet bool
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTarget, WithOptions,
// WithDiagramRenderer, WithTimeout).
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg: converterConfig{
			target:  TargetUniversal,
			options: DefaultOptions(),
			timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	// Create the rod-backed renderer if none was injected. It launches
	// the browser lazily, so construction is free.
	if !c.rendererSet {
		c.renderer = newRodRenderer(c.cfg.timeout)
	}

	return c
}

// Convert runs the full pipeline: parse, diagram post-pass, sanitize,
// target optimization, plain-text derivation. The context bounds diagram
// rendering. Recovers from internal panics to prevent crashes from
// propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	opts := c.cfg.options
	if input.Options != nil {
		opts = *input.Options
	}

	parsed := Parse(input.Markdown, opts)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	htmlContent := c.processDiagrams(ctx, parsed.HTML)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	htmlContent = Sanitize(htmlContent)
	text := ToPlainText(htmlContent)

	target := c.cfg.target
	if input.Target != "" {
		target = input.Target
	}
	htmlContent = Optimize(htmlContent, target)

	return &ConvertResult{
		HTML:      htmlContent,
		Text:      text,
		Headings:  parsed.Headings,
		Footnotes: parsed.Footnotes,
	}, nil
}

// Export runs the pipeline without target optimization and serializes the
// result as a downloadable artifact in the requested format.
func (c *Converter) Export(ctx context.Context, input Input, format Format) (artifact *Artifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	opts := c.cfg.options
	if input.Options != nil {
		opts = *input.Options
	}

	parsed := Parse(input.Markdown, opts)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	htmlContent := Sanitize(c.processDiagrams(ctx, parsed.HTML))
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return exportArtifact(htmlContent, input.Markdown, format, opts)
}

// Close releases resources held by the diagram renderer.
func (c *Converter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}

// plainFencePattern matches the unhighlighted code blocks the parser emits.
// Highlighted blocks have a different shape and are never diagram input.
var plainFencePattern = regexp.MustCompile(`(?s)<pre><code(?: class="language-([A-Za-z0-9+_-]+)")?>(.*?)</code></pre>\n?`)

// processDiagrams is the post-pass over fenced blocks: mermaid-tagged
// blocks go to the rendering engine (degrading to an inline error
// placeholder), and blocks either diagram-tagged or passing the ASCII
// heuristic become embedded vector images.
func (c *Converter) processDiagrams(ctx context.Context, htmlContent string) string {
	return plainFencePattern.ReplaceAllStringFunc(htmlContent, func(block string) string {
		m := plainFencePattern.FindStringSubmatch(block)
		lang, escaped := m[1], m[2]
		source := decodeEntities(escaped)

		switch {
		case lang == "mermaid" || (lang == "" && IsMermaidDiagram(source)):
			return c.renderMermaidBlock(ctx, source)
		case diagramTags[lang] || (lang == "" && IsASCIIDiagram(source)):
			return ASCIIToImageTag(source, StyleOptions{}) + "\n"
		default:
			return block
		}
	})
}

// renderMermaidBlock substitutes one mermaid fence with rendered SVG, or
// with a visible placeholder when the engine is missing or fails.
func (c *Converter) renderMermaidBlock(ctx context.Context, source string) string {
	if c.renderer == nil {
		return diagramPlaceholder(ErrRendererUnavailable, source)
	}
	svg, err := c.renderer.RenderMermaid(ctx, source)
	if err != nil {
		return diagramPlaceholder(err, source)
	}
	return svg + "\n"
}

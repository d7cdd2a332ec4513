package md2rich

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DiagramRenderer abstracts the external diagram-language rendering engine.
// Implementations return the rendered SVG markup or a descriptive error;
// the pipeline translates failures into an inline placeholder, never a
// dropped block.
type DiagramRenderer interface {
	RenderMermaid(ctx context.Context, source string) (string, error)
	Close() error
}

// mermaidScriptURL is the rendering script loaded into the browser shell.
const mermaidScriptURL = "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"

// mermaidShell hosts one diagram for rendering. The source is injected as
// escaped text; mermaid reads it from the pre element on load.
const mermaidShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<script src="%s"></script>
</head>
<body>
<pre class="mermaid">%s</pre>
<script>mermaid.initialize({startOnLoad: true, securityLevel: "strict"});</script>
</body>
</html>`

// rodRenderer implements DiagramRenderer using headless Chrome via go-rod.
// The browser is launched lazily on first render; rod downloads a managed
// Chromium if none is installed.
type rodRenderer struct {
	browser *rod.Browser
	timeout time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RenderMermaid loads the diagram source into a browser shell page and
// extracts the SVG mermaid produces. Returns explicit errors instead of
// panicking when browser operations fail.
func (r *rodRenderer) RenderMermaid(ctx context.Context, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := r.ensureBrowser(); err != nil {
		return "", err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return "", context.DeadlineExceeded
		}
	}

	shell := fmt.Sprintf(mermaidShell, mermaidScriptURL, escapeHTML(source))
	if err := page.SetDocumentContent(shell); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDiagramRender, err)
	}

	// Element polls until mermaid replaces the pre content with an SVG.
	el, err := page.Timeout(timeout).Element("pre.mermaid svg")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDiagramRender, err)
	}

	svg, err := el.HTML()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDiagramRender, err)
	}
	return svg, nil
}

// placeholderExcerptLen caps the amount of source shown in error placeholders.
const placeholderExcerptLen = 200

// diagramPlaceholder renders the inline visible error block substituted
// for a diagram whose rendering failed or whose engine is unavailable.
func diagramPlaceholder(failure error, source string) string {
	excerpt := source
	if len(excerpt) > placeholderExcerptLen {
		excerpt = excerpt[:placeholderExcerptLen] + "…"
	}
	return `<pre class="diagram-error" style="border:1px solid #d73a49;padding:8px;color:#d73a49">` +
		"diagram rendering failed: " + escapeHTML(failure.Error()) + "\n\n" +
		escapeHTML(excerpt) + "</pre>\n"
}

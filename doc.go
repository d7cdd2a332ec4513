// Package md2rich converts Markdown documents to paste-ready rich text.
//
// # Quick Start
//
// Create a converter, convert markdown, and use the HTML and plain-text
// payloads for a clipboard write or a file export:
//
//	conv := md2rich.NewConverter()
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2rich.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	clipboard.Write(result.HTML, result.Text)
//
// The result contains the optimized HTML (result.HTML), a plain-text
// rendering of the same content (result.Text), and the heading index
// collected during parsing (result.Headings) for TOC generation.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Block parsing (hand-written parser: headings, lists, tables, fences,
//     blockquotes, definition lists, footnotes)
//  2. Inline formatting per span (emphasis, links, code, typography)
//  3. Diagram post-pass (ASCII-art fences to vector images, mermaid fences
//     to rendered SVG with an inline error placeholder on failure)
//  4. Platform optimization keyed by paste target (Google Docs, Word,
//     Gmail, Slack, or a universal profile)
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv := md2rich.NewConverter(
//	    md2rich.WithTarget(md2rich.TargetGoogleDocs),
//	    md2rich.WithOptions(md2rich.Options{Breaks: true, Linkify: true}),
//	)
//
// # Exports
//
// Export produces a named artifact in one of three formats:
//
//	artifact, err := conv.Export(ctx, input, md2rich.FormatRTF)
//	os.WriteFile(artifact.Filename, artifact.Data, 0644)
//
// # Diagram Rendering
//
// Mermaid rendering requires Chrome/Chromium; the go-rod library downloads
// a managed Chromium instance on first run. Without a browser the pipeline
// still completes: mermaid fences degrade to a visible error placeholder
// containing the failure message and a source excerpt.
package md2rich

package md2rich

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")

	// Diagram rendering errors.
	ErrRendererUnavailable = errors.New("diagram rendering engine unavailable")
	ErrBrowserConnect      = errors.New("failed to connect to browser")
	ErrPageCreate          = errors.New("failed to create browser page")
	ErrDiagramRender       = errors.New("diagram rendering failed")

	// Rasterization errors.
	ErrEmptyDiagram = errors.New("diagram content cannot be empty")
	ErrPNGEncode    = errors.New("PNG encoding failed")

	// Export errors.
	ErrUnknownFormat = errors.New("unknown export format")
	ErrRTFGeneration = errors.New("RTF generation failed")
)

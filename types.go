package md2rich

import "time"

// Target identifies a paste-target platform profile.
type Target string

// Known optimization targets. Unknown values fall back to TargetUniversal.
const (
	TargetUniversal  Target = "universal"
	TargetGoogleDocs Target = "gdocs"
	TargetWord       Target = "word"
	TargetGmail      Target = "gmail"
	TargetSlack      Target = "slack"
)

// Format identifies a document export format.
type Format string

// Known export formats.
const (
	FormatHTML Format = "html"
	FormatWord Format = "word"
	FormatRTF  Format = "rtf"
)

// Options toggles individual pipeline stages.
// Each flag is independent; the zero value disables everything.
type Options struct {
	Breaks        bool // Treat single newlines inside paragraphs as <br>
	Linkify       bool // Autolink bare http(s):// URLs
	Typographer   bool // Smart quotes, dashes, ellipsis
	IncludeStyles bool // Emit inline CSS on generated elements
	HighlightCode bool // Syntax-highlight fenced code blocks
}

// DefaultOptions returns the options used when none are supplied.
func DefaultOptions() Options {
	return Options{
		Breaks:        false,
		Linkify:       true,
		Typographer:   false,
		IncludeStyles: true,
		HighlightCode: true,
	}
}

// Input contains conversion parameters.
type Input struct {
	Markdown string   // Markdown content (required)
	Target   Target   // Paste target (optional, overrides converter default)
	Options  *Options // Pipeline options (optional, nil = converter defaults)
}

// Heading is one entry of the heading index collected during parsing.
type Heading struct {
	Level int    // 1..6
	Text  string // display text, markdown markers stripped
	ID    string // slug used as the anchor id
}

// Footnote is one rendered footnote definition.
type Footnote struct {
	ID   string // key from [^id]
	Text string // raw definition text as written in the source
}

// ConvertResult holds the outputs of one conversion.
type ConvertResult struct {
	HTML      string    // optimized HTML for the chosen target
	Text      string    // plain-text rendering of the same content
	Headings  []Heading // heading index in document order
	Footnotes []Footnote
}

// Artifact is a downloadable export payload.
type Artifact struct {
	Data     []byte
	Filename string // includes extension
	MIME     string
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	target  Target
	options Options
	timeout time.Duration
}

// defaultTimeout bounds diagram rendering when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTarget sets the default optimization target.
func WithTarget(t Target) Option {
	return func(c *Converter) {
		c.cfg.target = t
	}
}

// WithOptions sets the default pipeline options.
func WithOptions(o Options) Option {
	return func(c *Converter) {
		c.cfg.options = o
	}
}

// WithTimeout sets the diagram rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2rich: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithDiagramRenderer injects a custom mermaid rendering engine.
// Passing nil disables rendering; mermaid fences degrade to an inline
// error placeholder.
func WithDiagramRenderer(r DiagramRenderer) Option {
	return func(c *Converter) {
		c.renderer = r
		c.rendererSet = true
	}
}

package mdlayout

import (
	"io"
	"log/slog"
	"time"
)

// converterConfig holds the settings applied by options.
type converterConfig struct {
	backend     string
	page        PageSettings
	fontSizes   FontSizes
	lineSpacing float64
	highlight   HighlightSettings
	assetPath   string
	columns     int
	textOutput  io.Writer
	workers     int
	timeout     time.Duration
	logger      *slog.Logger

	// pdfConverter replaces the browser in tests.
	pdfConverter pdfConverter
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 2 * time.Minute

func defaultConfig() converterConfig {
	return converterConfig{
		backend:   BackendPDF,
		page:      DefaultPageSettings(),
		fontSizes: DefaultFontSizes(),
		highlight: DefaultHighlightSettings(),
		timeout:   defaultTimeout,
		logger:    slog.New(slog.DiscardHandler),
	}
}

// Option configures a Converter.
type Option func(*converterConfig)

// WithBackend selects "pdf", "chrome" or "text".
func WithBackend(name string) Option {
	return func(c *converterConfig) { c.backend = name }
}

// WithPage sets the page size, orientation and margins.
func WithPage(p PageSettings) Option {
	return func(c *converterConfig) { c.page = p }
}

// WithFontSizes sets the title, heading and body sizes.
func WithFontSizes(f FontSizes) Option {
	return func(c *converterConfig) { c.fontSizes = f }
}

// WithLineSpacing adds extra space, in points, between body text lines.
func WithLineSpacing(v float64) Option {
	return func(c *converterConfig) { c.lineSpacing = v }
}

// WithHighlight configures syntax highlighting.
func WithHighlight(h HighlightSettings) Option {
	return func(c *converterConfig) { c.highlight = h }
}

// WithoutHighlight renders every code block as plain text.
func WithoutHighlight() Option {
	return func(c *converterConfig) { c.highlight.Enabled = false }
}

// WithAssetPath overrides built-in themes, templates and scripts with the
// files found under dir.
func WithAssetPath(dir string) Option {
	return func(c *converterConfig) { c.assetPath = dir }
}

// WithColumns sets the width of the text backend.
func WithColumns(n int) Option {
	return func(c *converterConfig) { c.columns = n }
}

// WithTextOutput sets the terminal the text backend styles for. The
// colour profile is detected from w.
func WithTextOutput(w io.Writer) Option {
	return func(c *converterConfig) { c.textOutput = w }
}

// WithWorkers bounds the number of chapters converted concurrently.
// Zero or less uses ResolvePoolSize.
func WithWorkers(n int) Option {
	return func(c *converterConfig) { c.workers = n }
}

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdlayout: WithTimeout duration must be positive")
	}
	return func(c *converterConfig) { c.timeout = d }
}

// WithLogger sets the logger. Highlighter fallbacks are reported at warn
// level, conversion steps at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *converterConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

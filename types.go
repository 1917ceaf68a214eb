package mdlayout

import (
	"fmt"
	"strings"

	"github.com/alnah/go-mdlayout/internal/layout"
	"github.com/alnah/go-mdlayout/internal/paper"
)

// Backend names.
const (
	BackendPDF    = "pdf"
	BackendChrome = "chrome"
	BackendText   = "text"
)

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{BackendPDF, BackendChrome, BackendText}
}

// Page size names.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// Margin defaults and bounds in millimetres.
const (
	DefaultMarginX = 12.0
	DefaultMarginY = 20.0
	MaxMargin      = 100.0
)

// PageSettings configures page dimensions. Margins are in millimetres.
type PageSettings struct {
	Size      string
	Landscape bool
	MarginX   float64
	MarginY   float64
}

// DefaultPageSettings returns A4 portrait with the default margins.
func DefaultPageSettings() PageSettings {
	return PageSettings{Size: PageSizeA4, MarginX: DefaultMarginX, MarginY: DefaultMarginY}
}

// Validate checks the size name and margin bounds.
func (p PageSettings) Validate() error {
	if _, err := paper.Lookup(p.Size); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPageSize, err)
	}
	if p.MarginX < 0 || p.MarginX > MaxMargin || p.MarginY < 0 || p.MarginY > MaxMargin {
		return fmt.Errorf("%w: %vmm x %vmm (must be between 0 and %v)", ErrInvalidMargin, p.MarginX, p.MarginY, MaxMargin)
	}
	return nil
}

func (p PageSettings) geometry() (paper.Geometry, error) {
	geo, err := paper.New(p.Size, p.Landscape, p.MarginX, p.MarginY)
	if err != nil {
		return paper.Geometry{}, fmt.Errorf("%w: %v", ErrInvalidMargin, err)
	}
	return geo, nil
}

// FontSizes holds the title, heading and body sizes in points.
type FontSizes = layout.FontSizes

// DefaultFontSizes returns the built-in sizes.
func DefaultFontSizes() FontSizes {
	return layout.DefaultFontSizes()
}

// HighlightSettings configures syntax highlighting of code blocks.
type HighlightSettings struct {
	Enabled bool
	Backend string            // "chroma" (default) or "process"
	Style   string            // chroma style name
	Command string            // process backend executable
	Args    []string          // process backend arguments; empty runs the built-in script
	Theme   string            // asset theme for the process backend
	Colors  map[string]string // class path to "#rrggbb" overrides
}

// DefaultHighlightSettings enables the in-process highlighter.
func DefaultHighlightSettings() HighlightSettings {
	return HighlightSettings{Enabled: true, Backend: "chroma"}
}

// Chapter is one Markdown source. Depth nests it under the preceding
// shallower chapter in the contents list.
type Chapter struct {
	Name     string // empty uses the first heading, then "Chapter N"
	Markdown string
	Depth    int
}

// Input is a book to convert.
type Input struct {
	Title    string // empty uses the first heading of the first chapter
	Subtitle string
	Chapters []Chapter
}

// Validate requires at least one chapter and non-negative depths.
func (in Input) Validate() error {
	if len(in.Chapters) == 0 {
		return ErrNoChapters
	}
	for i, ch := range in.Chapters {
		if ch.Depth < 0 {
			return fmt.Errorf("%w: chapter %d (%q) has depth %d", ErrInvalidDepth, i+1, ch.Name, ch.Depth)
		}
	}
	return nil
}

// Result is the rendered document.
type Result struct {
	Output   []byte
	Backend  string
	Title    string
	Chapters int
}

// Extension is the file extension matching the backend output.
func (r *Result) Extension() string {
	if r.Backend == BackendText {
		return ".txt"
	}
	return ".pdf"
}

func normalizeBackend(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return BackendPDF
	}
	return name
}

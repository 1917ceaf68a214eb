package mdlayout

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/alnah/go-mdlayout/internal/assets"
	"github.com/alnah/go-mdlayout/internal/layout"
	"github.com/alnah/go-mdlayout/internal/pdfout"
	"github.com/alnah/go-mdlayout/internal/termout"
	"github.com/alnah/go-mdlayout/internal/textflow"
)

// backend measures text for the layout and renders the finished document.
// Measurement must be safe for concurrent use.
type backend interface {
	textflow.Measurer
	ContentWidth() float64
	Spacing() (listIndent, cellPadding float64)
	Render(ctx context.Context, doc *layout.Document) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ backend = (*pdfout.Renderer)(nil)
	_ backend = (*termout.Renderer)(nil)
)

// newBackend builds the configured backend.
func newBackend(cfg *converterConfig, loader assets.AssetLoader) (backend, error) {
	switch normalizeBackend(cfg.backend) {
	case BackendPDF:
		geo, err := cfg.page.geometry()
		if err != nil {
			return nil, err
		}
		r, err := pdfout.New(geo, cfg.fontSizes)
		if err != nil {
			return nil, err
		}
		return r, nil
	case BackendChrome:
		geo, err := cfg.page.geometry()
		if err != nil {
			return nil, err
		}
		tmpl, err := loader.LoadTemplate(assets.DefaultTemplateName)
		if err != nil {
			return nil, fmt.Errorf("loading page template: %w", err)
		}
		pdf := cfg.pdfConverter
		if pdf == nil {
			pdf = newRodConverter(cfg.timeout)
		}
		b, err := newChromeBackend(geo, cfg.fontSizes, tmpl, pdf)
		if err != nil {
			return nil, err
		}
		return b, nil
	case BackendText:
		var opts []termout.Option
		if cfg.textOutput != nil {
			opts = append(opts, termout.WithRenderer(lipgloss.NewRenderer(cfg.textOutput)))
		}
		return termout.New(cfg.columns, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q (available: pdf, chrome, text)", ErrUnknownBackend, cfg.backend)
	}
}

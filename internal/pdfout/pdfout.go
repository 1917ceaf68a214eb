// Package pdfout renders laid out documents to PDF with go-pdf/fpdf and
// the embedded Go fonts.
package pdfout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/alnah/go-mdlayout/internal/fonts"
	"github.com/alnah/go-mdlayout/internal/layout"
	"github.com/alnah/go-mdlayout/internal/paper"
	"github.com/alnah/go-mdlayout/internal/style"
)

// Sentinel errors.
var (
	ErrMeasure = errors.New("text measurement failed")
	ErrRender  = errors.New("PDF rendering failed")
)

// Spacing constants, in points.
const (
	leading      = 1.25
	paragraphGap = 4.0
	headingGap   = 6.0
	pageNumSize  = 8.0
	ListIndent   = 14.0
	CellPadding  = 3.0
	cellPadY     = 2.0
)

// Renderer implements the PDF backend. Measurement uses a private fpdf
// instance guarded by a mutex; each Render builds a fresh document.
type Renderer struct {
	geo   paper.Geometry
	sizes layout.FontSizes
	now   func() time.Time

	mu      sync.Mutex
	measure *fpdf.Fpdf
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock sets the time source for the document creation date.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// New creates a Renderer for the given page geometry.
func New(geo paper.Geometry, sizes layout.FontSizes, opts ...Option) (*Renderer, error) {
	r := &Renderer{geo: geo, sizes: sizes, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	r.measure = r.newPDF()
	if err := r.measure.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return r, nil
}

func (r *Renderer) newPDF() *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: r.geo.Width, Ht: r.geo.Height},
	})
	for _, f := range fonts.All() {
		pdf.AddUTF8FontFromBytes(f.Family(), f.StyleString(), f.TTF())
	}
	pdf.SetMargins(r.geo.MarginX, r.geo.MarginY, r.geo.MarginX)
	pdf.SetAutoPageBreak(false, r.geo.MarginY)
	pdf.SetFont(fonts.Face{}.Family(), "", r.sizes.Text)
	return pdf
}

// MeasureText implements textflow.Measurer.
func (r *Renderer) MeasureText(s style.Style, text string) (float64, error) {
	f := fonts.For(s)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.measure.SetFont(f.Family(), f.StyleString(), fonts.Size(s))
	w := r.measure.GetStringWidth(text)
	if err := r.measure.Error(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMeasure, err)
	}
	return w, nil
}

// MeasureSpace implements textflow.Measurer.
func (r *Renderer) MeasureSpace(s style.Style) (float64, error) {
	return r.MeasureText(s, " ")
}

// ContentWidth is the text column width in points.
func (r *Renderer) ContentWidth() float64 {
	return r.geo.ContentWidth()
}

// Spacing returns the list indent and cell padding the renderer draws with.
func (r *Renderer) Spacing() (listIndent, cellPadding float64) {
	return ListIndent, CellPadding
}

// Close is a no-op; fpdf holds no external resources.
func (r *Renderer) Close() error {
	return nil
}

// Render draws the title page, the contents page and every chapter on
// fresh pages. Page numbers appear from the second page on.
func (r *Renderer) Render(ctx context.Context, doc *layout.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pdf := r.newPDF()
	pdf.SetTitle(doc.Title, true)
	pdf.SetSubject(doc.Subtitle, true)
	pdf.SetCreator("go-mdlayout", true)
	pdf.SetCreationDate(r.now())
	pdf.SetHeaderFunc(func() {
		n := pdf.PageNo()
		if n < 2 {
			return
		}
		pdf.SetFont(fonts.Face{}.Family(), "", pageNumSize)
		pdf.SetTextColor(128, 128, 128)
		label := strconv.Itoa(n)
		pdf.Text(r.geo.Width-r.geo.MarginX-pdf.GetStringWidth(label), r.geo.MarginY/2+pageNumSize/2, label)
	})

	w := &writer{pdf: pdf, geo: r.geo, sizes: r.sizes}
	w.titlePage(doc.Title, doc.Subtitle)
	if doc.Contents != nil && len(doc.Contents.Items) > 0 {
		w.newPage()
		w.heading("Contents", r.sizes.Heading(1))
		w.block(doc.Contents, r.geo.MarginX, r.geo.ContentWidth())
	}
	for _, ch := range doc.Chapters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w.newPage()
		w.blocks(ch.Blocks, r.geo.MarginX, r.geo.ContentWidth())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

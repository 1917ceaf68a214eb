package pdfout

import (
	"strconv"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"github.com/alnah/go-mdlayout/internal/fonts"
	"github.com/alnah/go-mdlayout/internal/layout"
	"github.com/alnah/go-mdlayout/internal/paper"
	"github.com/alnah/go-mdlayout/internal/style"
	"github.com/alnah/go-mdlayout/internal/textflow"
)

// writer draws blocks top to bottom, starting new pages as needed.
type writer struct {
	pdf   *fpdf.Fpdf
	geo   paper.Geometry
	sizes layout.FontSizes
	y     float64
	// keep suppresses page breaks; table rows are drawn as a unit.
	keep bool
}

func (w *writer) newPage() {
	w.pdf.AddPage()
	w.y = w.geo.MarginY
}

// ensure starts a new page when h does not fit below the cursor.
func (w *writer) ensure(h float64) {
	if w.keep || w.y <= w.geo.MarginY {
		return
	}
	if w.y+h > w.geo.Height-w.geo.MarginY {
		w.newPage()
	}
}

func (w *writer) setFont(s style.Style) {
	f := fonts.For(s)
	w.pdf.SetFont(f.Family(), f.StyleString(), fonts.Size(s))
	c, ok := s.Color()
	if !ok {
		c = style.Gray(0)
	}
	w.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}

func (w *writer) textStyle() style.Style {
	return style.New().WithFontSize(w.sizes.Text)
}

func (w *writer) titlePage(title, subtitle string) {
	w.newPage()
	if title == "" {
		return
	}
	s := style.New().Bold().WithFontSize(w.sizes.Title)
	w.setFont(s)
	y := w.geo.Height / 3
	w.pdf.Text((w.geo.Width-w.pdf.GetStringWidth(title))/2, y, title)
	if subtitle == "" {
		return
	}
	s = style.New().Italic().WithFontSize(w.sizes.Text * 1.4)
	w.setFont(s)
	y += w.sizes.Title * leading * 1.5
	w.pdf.Text((w.geo.Width-w.pdf.GetStringWidth(subtitle))/2, y, subtitle)
}

// heading draws a one-line heading that is not part of a chapter.
func (w *writer) heading(text string, size float64) {
	s := style.New().Bold().WithFontSize(size)
	w.setFont(s)
	w.pdf.Text(w.geo.MarginX, w.y+size, text)
	w.y += size*leading + headingGap
}

func (w *writer) blocks(bs []layout.Block, x, width float64) {
	for _, b := range bs {
		w.block(b, x, width)
	}
}

func (w *writer) block(b layout.Block, x, width float64) {
	switch b := b.(type) {
	case *layout.Heading:
		if w.y > w.geo.MarginY {
			w.y += headingGap
		}
		w.lines(b.Lines, x, runsStyle(b.Runs, w.textStyle()))
		w.y += headingGap / 2
	case *layout.Paragraph:
		w.lines(b.Lines, x, runsStyle(b.Runs, w.textStyle()))
		w.y += paragraphGap
	case *layout.List:
		w.list(b, x, width)
	case *layout.CodeBlock:
		w.code(b, x, width)
		w.y += paragraphGap
	case *layout.Table:
		w.table(b, x, width)
		w.y += paragraphGap
	case *layout.Group:
		w.blocks(b.Blocks, x, width)
	}
}

func runsStyle(runs []style.Run, fallback style.Style) style.Style {
	if len(runs) > 0 {
		return runs[0].Style
	}
	return fallback
}

// lineMetrics returns the ascent and the advance of a wrapped line.
func lineMetrics(l textflow.Line, base style.Style) (ascent, height float64) {
	size, spacing := fonts.Size(base), base.LineSpacing(0)
	if len(l) > 0 {
		size, spacing = 0, 0
	}
	for _, word := range l {
		size = max(size, fonts.Size(word.Style))
		spacing = max(spacing, word.Style.LineSpacing(0))
	}
	return size, size*leading + spacing
}

func (w *writer) lines(lines []textflow.Line, x float64, base style.Style) {
	for _, l := range lines {
		ascent, h := lineMetrics(l, base)
		w.ensure(h)
		cx := x
		for _, word := range l {
			w.setFont(word.Style)
			w.pdf.Text(cx, w.y+ascent, word.Text)
			cx += word.Width + word.SpaceWidth
		}
		w.y += h
	}
}

// firstLineHeight is the advance of the first line drawn by b.
func (w *writer) firstLineHeight(b layout.Block) (ascent, height float64) {
	base := w.textStyle()
	switch b := b.(type) {
	case *layout.Paragraph:
		if len(b.Lines) > 0 {
			return lineMetrics(b.Lines[0], base)
		}
	case *layout.Heading:
		if len(b.Lines) > 0 {
			return lineMetrics(b.Lines[0], base)
		}
	case *layout.Group:
		if len(b.Blocks) > 0 {
			return w.firstLineHeight(b.Blocks[0])
		}
	}
	return lineMetrics(nil, base)
}

func (w *writer) list(l *layout.List, x, width float64) {
	indent := ListIndent
	base := w.textStyle()
	for i, item := range l.Items {
		ascent, h := w.firstLineHeight(item)
		w.ensure(h)
		w.setFont(base)
		marker := "•"
		if l.Ordered {
			marker = strconv.Itoa(l.Start+i) + "."
		}
		mx := x + indent - w.pdf.GetStringWidth(marker) - 3
		w.pdf.Text(mx, w.y+ascent, marker)

		start := w.y
		w.block(item, x+indent, width-indent)
		if p, ok := item.(*layout.Paragraph); ok && len(p.Lines) == 0 {
			w.y = start + h
		}
		if _, ok := item.(*layout.Paragraph); ok {
			w.y -= paragraphGap / 2
		}
	}
	w.y += paragraphGap / 2
}

func (w *writer) code(b *layout.CodeBlock, x, width float64) {
	base := style.New().WithFamily(style.FamilyMono).WithFontSize(w.sizes.Text)
	size := fonts.Size(base)
	h := size * leading
	for _, line := range b.Lines {
		w.ensure(h)
		w.pdf.SetFillColor(246, 248, 250)
		w.pdf.Rect(x-2, w.y, width+4, h, "F")
		cx := x
		for _, run := range line {
			text := strings.ReplaceAll(run.Text, "\t", "    ")
			w.setFont(run.Style)
			w.pdf.Text(cx, w.y+size, text)
			cx += w.pdf.GetStringWidth(text)
		}
		w.y += h
	}
}

// table draws rows as units with inner frame lines only.
func (w *writer) table(t *layout.Table, x, width float64) {
	total := 0
	for _, wt := range t.Weights {
		total += wt
	}
	if total == 0 {
		return
	}
	cols := make([]float64, len(t.Weights))
	for i, wt := range t.Weights {
		cols[i] = width * float64(wt) / float64(total)
	}

	w.pdf.SetDrawColor(160, 160, 160)
	w.pdf.SetLineWidth(0.5)
	for r, row := range t.Rows {
		_, h := w.firstLineHeight(row[0])
		w.ensure(h + 2*cellPadY)
		top := w.y
		bottom := top
		cx := x
		for c, cell := range row {
			sub := &writer{pdf: w.pdf, geo: w.geo, sizes: w.sizes, y: top + cellPadY, keep: true}
			sub.block(cell, cx+CellPadding, cols[c]-2*CellPadding)
			bottom = max(bottom, sub.y)
			cx += cols[c]
		}
		w.y = bottom + cellPadY
		if r > 0 {
			w.pdf.Line(x, top, x+width, top)
		}
		cx = x
		for c := range len(row) - 1 {
			cx += cols[c]
			w.pdf.Line(cx, top, cx, w.y)
		}
	}
}

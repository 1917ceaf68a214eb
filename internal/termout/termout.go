// Package termout renders laid out documents as styled terminal text.
// Measurement is in terminal cells.
package termout

import (
	"context"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/alnah/go-mdlayout/internal/layout"
	"github.com/alnah/go-mdlayout/internal/style"
	"github.com/alnah/go-mdlayout/internal/textflow"
)

// DefaultColumns is the text width used when none is configured.
const DefaultColumns = 80

// Spacing, in cells. CellPadding covers the blank and half the rule on
// each side of a column.
const (
	ListIndent  = 3
	CellPadding = 2
	tabWidth    = 4
)

// Renderer implements the text backend.
type Renderer struct {
	columns  int
	renderer *lipgloss.Renderer
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRenderer sets the lipgloss renderer, which decides the colour profile.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(t *Renderer) {
		if r != nil {
			t.renderer = r
		}
	}
}

// New creates a Renderer for the given width. A width below one uses
// DefaultColumns.
func New(columns int, opts ...Option) *Renderer {
	if columns < 1 {
		columns = DefaultColumns
	}
	t := &Renderer{columns: columns}
	for _, opt := range opts {
		opt(t)
	}
	if t.renderer == nil {
		t.renderer = lipgloss.NewRenderer(os.Stdout)
	}
	return t
}

// MeasureText implements textflow.Measurer.
func (t *Renderer) MeasureText(_ style.Style, text string) (float64, error) {
	return float64(runewidth.StringWidth(text)), nil
}

// MeasureSpace implements textflow.Measurer.
func (t *Renderer) MeasureSpace(style.Style) (float64, error) {
	return 1, nil
}

// ContentWidth is the number of columns.
func (t *Renderer) ContentWidth() float64 {
	return float64(t.columns)
}

// Spacing returns the list indent and cell padding in cells.
func (t *Renderer) Spacing() (listIndent, cellPadding float64) {
	return ListIndent, CellPadding
}

// Close is a no-op.
func (t *Renderer) Close() error {
	return nil
}

// Render writes the title, the contents and every chapter, separated by
// horizontal rules.
func (t *Renderer) Render(ctx context.Context, doc *layout.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []string
	if doc.Title != "" {
		out = append(out, t.center(doc.Title, t.renderer.NewStyle().Bold(true)))
		if doc.Subtitle != "" {
			out = append(out, t.center(doc.Subtitle, t.renderer.NewStyle().Italic(true)))
		}
		out = append(out, "")
	}
	if doc.Contents != nil && len(doc.Contents.Items) > 0 {
		out = append(out, t.rule(), t.renderer.NewStyle().Bold(true).Render("Contents"), "")
		out = append(out, t.block(doc.Contents, t.columns)...)
		out = append(out, "")
	}
	for _, ch := range doc.Chapters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, t.rule())
		for _, b := range ch.Blocks {
			out = append(out, t.block(b, t.columns)...)
			out = append(out, "")
		}
	}
	return []byte(strings.Join(out, "\n")), nil
}

func (t *Renderer) center(text string, s lipgloss.Style) string {
	pad := max(0, (t.columns-runewidth.StringWidth(text))/2)
	return strings.Repeat(" ", pad) + s.Render(text)
}

func (t *Renderer) rule() string {
	return t.renderer.NewStyle().Faint(true).Render(strings.Repeat("─", t.columns))
}

// lipStyle maps a style to lipgloss. Sizes and families have no terminal
// equivalent; headings rely on bold.
func (t *Renderer) lipStyle(s style.Style) lipgloss.Style {
	ls := t.renderer.NewStyle()
	if c, ok := s.Color(); ok {
		ls = ls.Foreground(lipgloss.Color(c.Hex()))
	}
	if s.IsBold() {
		ls = ls.Bold(true)
	}
	if s.IsItalic() {
		ls = ls.Italic(true)
	}
	return ls
}

func (t *Renderer) styled(s style.Style, text string) string {
	if _, ok := s.Color(); !ok && !s.IsBold() && !s.IsItalic() {
		return text
	}
	return t.lipStyle(s).Render(text)
}

// block returns the terminal lines of b for a column of the given width.
func (t *Renderer) block(b layout.Block, width int) []string {
	switch b := b.(type) {
	case *layout.Heading:
		return t.lines(b.Lines)
	case *layout.Paragraph:
		return t.lines(b.Lines)
	case *layout.List:
		return t.list(b, width)
	case *layout.CodeBlock:
		return t.code(b)
	case *layout.Table:
		return t.table(b, width)
	case *layout.Group:
		var out []string
		for _, child := range b.Blocks {
			out = append(out, t.block(child, width)...)
		}
		return out
	}
	return nil
}

func (t *Renderer) lines(lines []textflow.Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		var sb strings.Builder
		for i, w := range l {
			if i > 0 {
				sb.WriteString(strings.Repeat(" ", max(1, int(math.Round(l[i-1].SpaceWidth)))))
			}
			sb.WriteString(t.styled(w.Style, w.Text))
		}
		out = append(out, sb.String())
	}
	return out
}

func (t *Renderer) list(l *layout.List, width int) []string {
	var out []string
	indent := strings.Repeat(" ", ListIndent)
	for i, item := range l.Items {
		marker := "•"
		if l.Ordered {
			marker = strconv.Itoa(l.Start+i) + "."
		}
		marker += strings.Repeat(" ", max(1, ListIndent-runewidth.StringWidth(marker)))
		itemLines := t.block(item, width-ListIndent)
		if len(itemLines) == 0 {
			itemLines = []string{""}
		}
		for j, line := range itemLines {
			prefix := indent
			if j == 0 {
				prefix = marker
			}
			out = append(out, prefix+line)
		}
	}
	return out
}

func (t *Renderer) code(b *layout.CodeBlock) []string {
	out := make([]string, 0, len(b.Lines))
	for _, line := range b.Lines {
		var sb strings.Builder
		sb.WriteString("  ")
		for _, run := range line {
			sb.WriteString(t.styled(run.Style, strings.ReplaceAll(run.Text, "\t", strings.Repeat(" ", tabWidth))))
		}
		out = append(out, sb.String())
	}
	return out
}

// table draws inner frame lines only: │ between columns, ─ and ┼ between
// rows.
func (t *Renderer) table(tb *layout.Table, width int) []string {
	total := 0
	for _, w := range tb.Weights {
		total += w
	}
	if total == 0 {
		return nil
	}
	cols := make([]int, len(tb.Weights))
	for i, w := range tb.Weights {
		cols[i] = max(1, width*w/total-2*CellPadding)
	}

	border := t.renderer.NewStyle().Faint(true)
	sep := " " + border.Render("│") + " "
	var rowRule []string
	for _, c := range cols {
		rowRule = append(rowRule, strings.Repeat("─", c+2))
	}
	rule := border.Render(strings.Join(rowRule, "┼"))

	var out []string
	for r, row := range tb.Rows {
		if r > 0 {
			out = append(out, rule)
		}
		cells := make([][]string, len(row))
		height := 0
		for c, cell := range row {
			cells[c] = t.block(cell, cols[c])
			height = max(height, len(cells[c]))
		}
		for i := range max(height, 1) {
			parts := make([]string, len(row))
			for c := range row {
				text := ""
				if i < len(cells[c]) {
					text = cells[c][i]
				}
				parts[c] = text + strings.Repeat(" ", max(0, cols[c]-lipgloss.Width(text)))
			}
			out = append(out, strings.TrimRight(" "+strings.Join(parts, sep), " "))
		}
	}
	return out
}

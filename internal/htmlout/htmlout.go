// Package htmlout writes laid out documents as standalone HTML. Every line
// is emitted where the layout broke it, so a browser printing the page
// reproduces the computed layout.
package htmlout

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"html/template"
	"strconv"
	"strings"

	"github.com/alnah/go-mdlayout/internal/fonts"
	"github.com/alnah/go-mdlayout/internal/layout"
	"github.com/alnah/go-mdlayout/internal/paper"
	"github.com/alnah/go-mdlayout/internal/style"
	"github.com/alnah/go-mdlayout/internal/textflow"
)

// ErrTemplate indicates the page template could not be parsed or executed.
var ErrTemplate = errors.New("page template failed")

// Spacing, in points. These match the measurement the layout was built with.
const (
	ListIndent  = 14.0
	CellPadding = 3.0
	leading     = 1.25
)

// Font family names used in the generated CSS.
const (
	familySans = "Go"
	familyMono = "Go Mono"
)

type chapter struct {
	ID   string
	Body template.HTML
}

type page struct {
	Title    string
	Subtitle string
	CSS      template.CSS
	Contents template.HTML
	Chapters []chapter
}

// Writer renders documents through a page template.
type Writer struct {
	tmpl  *template.Template
	geo   paper.Geometry
	sizes layout.FontSizes
}

// New parses the page template. The template receives Title, Subtitle, CSS,
// Contents and Chapters (each with ID and Body).
func New(pageTemplate string, geo paper.Geometry, sizes layout.FontSizes) (*Writer, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return &Writer{tmpl: tmpl, geo: geo, sizes: sizes}, nil
}

// Render returns the HTML document.
func (w *Writer) Render(doc *layout.Document) (string, error) {
	p := page{
		Title:    doc.Title,
		Subtitle: doc.Subtitle,
		CSS:      template.CSS(w.css()),
	}
	if doc.Contents != nil && len(doc.Contents.Items) > 0 {
		var b strings.Builder
		writeBlock(&b, doc.Contents)
		p.Contents = template.HTML(b.String()) // #nosec G203 -- built from escaped text
	}
	for i, ch := range doc.Chapters {
		var b strings.Builder
		for _, blk := range ch.Blocks {
			writeBlock(&b, blk)
		}
		p.Chapters = append(p.Chapters, chapter{
			ID:   "chapter-" + strconv.Itoa(i+1),
			Body: template.HTML(b.String()), // #nosec G203 -- built from escaped text
		})
	}

	var buf bytes.Buffer
	if err := w.tmpl.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return buf.String(), nil
}

func (w *Writer) css() string {
	var b strings.Builder
	for _, f := range fonts.All() {
		family := familySans
		if f.Mono {
			family = familyMono
		}
		fmt.Fprintf(&b, "@font-face { font-family: %q; font-weight: %s; font-style: %s; src: url(data:font/ttf;base64,%s) format(\"truetype\"); }\n",
			family, f.CSSWeight(), f.CSSStyle(), base64.StdEncoding.EncodeToString(f.TTF()))
	}
	fmt.Fprintf(&b, "@page { size: %spt %spt; margin: %spt %spt; }\n",
		num(w.geo.Width), num(w.geo.Height), num(w.geo.MarginY), num(w.geo.MarginX))
	fmt.Fprintf(&b, "body { margin: 0; font-family: %q; font-size: %spt; color: #000; }\n", familySans, num(w.sizes.Text))
	b.WriteString(staticCSS)
	fmt.Fprintf(&b, ".title { font-size: %spt; }\n", num(w.sizes.Title))
	fmt.Fprintf(&b, ".contents > .heading { font-size: %spt; }\n", num(w.sizes.Heading(1)))
	fmt.Fprintf(&b, ".item { padding-left: %spt; }\n.marker { width: %spt; margin-left: -%spt; }\n",
		num(ListIndent), num(ListIndent-3), num(ListIndent))
	fmt.Fprintf(&b, "td { padding: 2pt %spt; }\n", num(CellPadding))
	return b.String()
}

const staticCSS = `.chapter { break-before: page; }
.title-page { padding-top: 30vh; text-align: center; }
.title { font-weight: bold; margin: 0; }
.subtitle { font-style: italic; margin-top: 1em; }
.line { white-space: pre; line-height: 1.25; min-height: 1.25em; }
.heading { margin: 6pt 0 3pt; font-weight: bold; }
.para { margin-bottom: 4pt; }
.item { position: relative; }
.marker { position: absolute; text-align: right; }
.code { background: #f6f8fa; font-family: "Go Mono"; margin: 0 0 4pt; padding: 0 2pt; line-height: 1.25; white-space: pre; }
table { border-collapse: collapse; table-layout: fixed; width: 100%; margin-bottom: 4pt; }
td { vertical-align: top; }
tr + tr > td { border-top: 0.5pt solid #a0a0a0; }
td + td { border-left: 0.5pt solid #a0a0a0; }
`

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeBlock(b *strings.Builder, blk layout.Block) {
	switch blk := blk.(type) {
	case *layout.Heading:
		b.WriteString(`<div class="heading">`)
		writeLines(b, blk.Lines)
		b.WriteString("</div>\n")
	case *layout.Paragraph:
		b.WriteString(`<div class="para">`)
		writeLines(b, blk.Lines)
		b.WriteString("</div>\n")
	case *layout.List:
		b.WriteString(`<div class="list">` + "\n")
		for i, item := range blk.Items {
			marker := "•"
			if blk.Ordered {
				marker = strconv.Itoa(blk.Start+i) + "."
			}
			fmt.Fprintf(b, `<div class="item"><span class="marker">%s</span>`, marker)
			writeBlock(b, item)
			b.WriteString("</div>\n")
		}
		b.WriteString("</div>\n")
	case *layout.CodeBlock:
		b.WriteString(`<pre class="code">`)
		for i, line := range blk.Lines {
			if i > 0 {
				b.WriteByte('\n')
			}
			for _, run := range line {
				writeSpan(b, run.Style, run.Text)
			}
		}
		b.WriteString("</pre>\n")
	case *layout.Table:
		total := 0
		for _, wt := range blk.Weights {
			total += wt
		}
		b.WriteString("<table><colgroup>")
		for _, wt := range blk.Weights {
			fmt.Fprintf(b, `<col style="width: %s%%">`, num(100*float64(wt)/float64(max(total, 1))))
		}
		b.WriteString("</colgroup>\n")
		for _, row := range blk.Rows {
			b.WriteString("<tr>")
			for _, cell := range row {
				b.WriteString("<td>")
				writeBlock(b, cell)
				b.WriteString("</td>")
			}
			b.WriteString("</tr>\n")
		}
		b.WriteString("</table>\n")
	case *layout.Group:
		b.WriteString("<div>")
		for _, child := range blk.Blocks {
			writeBlock(b, child)
		}
		b.WriteString("</div>\n")
	}
}

// writeLines emits one div per wrapped line. Adjacent words sharing a style
// are joined into one span.
func writeLines(b *strings.Builder, lines []textflow.Line) {
	for _, l := range lines {
		b.WriteString(`<div class="line">`)
		for i := 0; i < len(l); {
			j := i
			var text strings.Builder
			for j < len(l) && l[j].Style.Equal(l[i].Style) {
				if j > i {
					text.WriteByte(' ')
				}
				text.WriteString(l[j].Text)
				j++
			}
			if i > 0 {
				b.WriteByte(' ')
			}
			writeSpan(b, l[i].Style, text.String())
			i = j
		}
		b.WriteString("</div>")
	}
}

func writeSpan(b *strings.Builder, s style.Style, text string) {
	css := inlineCSS(s)
	if css == "" {
		b.WriteString(html.EscapeString(text))
		return
	}
	fmt.Fprintf(b, `<span style="%s">%s</span>`, css, html.EscapeString(text))
}

// inlineCSS converts the set fields of a style to declarations.
func inlineCSS(s style.Style) string {
	var decls []string
	if c, ok := s.Color(); ok {
		decls = append(decls, "color: "+c.Hex())
	}
	if s.IsBold() {
		decls = append(decls, "font-weight: bold")
	}
	if s.IsItalic() {
		decls = append(decls, "font-style: italic")
	}
	if s.FontFamily() == style.FamilyMono {
		decls = append(decls, `font-family: 'Go Mono'`)
	}
	if size := s.FontSize(0); size > 0 {
		decls = append(decls, "font-size: "+num(size)+"pt")
		if spacing := s.LineSpacing(0); spacing > 0 {
			decls = append(decls, "line-height: "+num(size*leading+spacing)+"pt")
		}
	}
	return strings.Join(decls, "; ")
}

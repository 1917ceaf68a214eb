package layout

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alnah/go-mdlayout/internal/markup"
	"github.com/alnah/go-mdlayout/internal/style"
	"github.com/alnah/go-mdlayout/internal/textflow"
)

// Highlighter turns source code into class-annotated markup.
type Highlighter interface {
	SupportsLanguage(name string) bool
	Highlight(ctx context.Context, language, source string) (string, error)
	SplitClasses(attr string) []string
}

// Default spacing, in measurer units.
const (
	DefaultListIndent  = 12.0
	DefaultCellPadding = 3.0
)

// Converter maps element trees to blocks. It is read-only after New and can
// be shared by concurrent Convert calls.
type Converter struct {
	measurer    textflow.Measurer
	width       float64
	sizes       FontSizes
	highlighter Highlighter
	theme       *style.Parent
	logger      *slog.Logger
	listIndent  float64
	cellPadding float64
	lineSpacing float64
}

// Option configures a Converter.
type Option func(*Converter)

// WithFontSizes sets the font sizes.
func WithFontSizes(f FontSizes) Option {
	return func(c *Converter) { c.sizes = f }
}

// WithHighlighter enables syntax highlighting. theme resolves the class
// names h emits; a nil theme leaves code uncoloured.
func WithHighlighter(h Highlighter, theme *style.Parent) Option {
	return func(c *Converter) {
		c.highlighter = h
		c.theme = theme
	}
}

// WithLogger sets the logger used for highlighter fallbacks.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithListIndent sets the horizontal indent of list items.
func WithListIndent(v float64) Option {
	return func(c *Converter) { c.listIndent = v }
}

// WithCellPadding sets the horizontal padding on each side of a table cell.
func WithCellPadding(v float64) Option {
	return func(c *Converter) { c.cellPadding = v }
}

// WithLineSpacing sets the extra spacing recorded on the text style.
func WithLineSpacing(v float64) Option {
	return func(c *Converter) { c.lineSpacing = v }
}

// New creates a Converter laying text out in a column of the given width.
func New(m textflow.Measurer, width float64, opts ...Option) *Converter {
	c := &Converter{
		measurer:    m,
		width:       width,
		sizes:       DefaultFontSizes(),
		logger:      slog.New(slog.DiscardHandler),
		listIndent:  DefaultListIndent,
		cellPadding: DefaultCellPadding,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Width returns the column width.
func (c *Converter) Width() float64 {
	return c.width
}

// TextStyle is the ambient style of body text.
func (c *Converter) TextStyle() style.Style {
	return style.New().WithFontSize(c.sizes.Text).WithLineSpacing(c.lineSpacing)
}

// CodeStyle is the ambient style of code blocks.
func (c *Converter) CodeStyle() style.Style {
	return c.TextStyle().WithFamily(style.FamilyMono).WithLineSpacing(0)
}

// Convert lays out a sequence of sibling nodes. The context is only
// consulted by the highlighter; measurement errors abort the conversion.
func (c *Converter) Convert(ctx context.Context, nodes []*Node) ([]Block, error) {
	return c.blocks(ctx, nodes, c.width, c.TextStyle())
}

// blocks dispatches block-level nodes. Consecutive inline nodes are
// collected into a single paragraph.
func (c *Converter) blocks(ctx context.Context, nodes []*Node, width float64, ambient style.Style) ([]Block, error) {
	var (
		out     []Block
		pending []*Node
	)
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		runs := c.inline(pending, ambient, nil)
		pending = pending[:0]
		if blankRuns(runs) {
			return nil
		}
		p, err := c.paragraph(runs, width)
		if err != nil {
			return err
		}
		out = append(out, p)
		return nil
	}

	for _, n := range nodes {
		if !isBlockTag(n.Tag) {
			pending = append(pending, n)
			continue
		}
		if err := flush(); err != nil {
			return nil, err
		}
		bs, err := c.block(ctx, n, width, ambient)
		if err != nil {
			return nil, err
		}
		out = append(out, bs...)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Converter) block(ctx context.Context, n *Node, width float64, ambient style.Style) ([]Block, error) {
	switch n.Tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.Tag[1] - '0')
		s := ambient.Bold().WithFontSize(c.sizes.Heading(level))
		runs := c.inline(n.Children, s, nil)
		lines, err := textflow.Layout(width, runs, c.measurer)
		if err != nil {
			return nil, err
		}
		return []Block{&Heading{Level: level, Runs: runs, Lines: lines}}, nil
	case "p":
		runs := c.inline(n.Children, ambient, nil)
		if blankRuns(runs) {
			return nil, nil
		}
		p, err := c.paragraph(runs, width)
		if err != nil {
			return nil, err
		}
		return []Block{p}, nil
	case "ul", "ol":
		l, err := c.list(ctx, n, width, ambient)
		if err != nil {
			return nil, err
		}
		return []Block{l}, nil
	case "pre":
		b, err := c.code(ctx, n)
		if err != nil {
			return nil, err
		}
		return []Block{b}, nil
	case "table":
		t, err := c.table(ctx, n, width, ambient)
		if err != nil {
			return nil, err
		}
		return []Block{t}, nil
	case "hr":
		return nil, nil
	default:
		// blockquote, div, li, section and the like only group content.
		return c.blocks(ctx, n.Children, width, ambient)
	}
}

func isBlockTag(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6", "p", "ul", "ol", "pre", "table", "hr",
		"blockquote", "div", "section", "li", "dl", "dd", "dt", "details", "figure":
		return true
	}
	return false
}

// inline collects styled runs from inline content. Emphasis nests
// positionally so strong inside em is bold and italic.
func (c *Converter) inline(nodes []*Node, s style.Style, runs []style.Run) []style.Run {
	for _, n := range nodes {
		if n.IsText() {
			if n.Text != "" {
				runs = append(runs, style.Run{Text: n.Text, Style: s})
			}
			continue
		}
		switch n.Tag {
		case "strong", "b":
			runs = c.inline(n.Children, s.Bold(), runs)
		case "em", "i":
			runs = c.inline(n.Children, s.Italic(), runs)
		case "code", "kbd", "samp":
			runs = c.inline(n.Children, s.WithFamily(style.FamilyMono), runs)
		case "br":
			runs = append(runs, style.Run{Text: textflow.HardBreak, Style: s})
		case "img":
			if alt := n.Attr("alt"); alt != "" {
				runs = append(runs, style.Run{Text: alt, Style: s.Italic()})
			}
		default:
			runs = c.inline(n.Children, s, runs)
		}
	}
	return runs
}

func blankRuns(runs []style.Run) bool {
	for _, r := range runs {
		if !blank(r.Text) {
			return false
		}
	}
	return true
}

func (c *Converter) paragraph(runs []style.Run, width float64) (*Paragraph, error) {
	lines, err := textflow.Layout(width, runs, c.measurer)
	if err != nil {
		return nil, err
	}
	return &Paragraph{Runs: runs, Lines: lines}, nil
}

// list uses one paragraph per item, unless any item spans several lines
// in the source; then every item becomes a group of blocks.
func (c *Converter) list(ctx context.Context, n *Node, width float64, ambient style.Style) (*List, error) {
	items := elements(n.Children)
	l := &List{Ordered: n.Tag == "ol", Start: 1, Items: make([]Block, 0, len(items))}
	if start, err := strconv.Atoi(n.Attr("start")); err == nil {
		l.Start = start
	}

	inner := width - c.listIndent
	if multiline(items) {
		for _, item := range items {
			bs, err := c.blocks(ctx, item.Children, inner, ambient)
			if err != nil {
				return nil, err
			}
			l.Items = append(l.Items, &Group{Blocks: bs})
		}
		return l, nil
	}
	for _, item := range items {
		p, err := c.paragraph(c.inline(item.Children, ambient, nil), inner)
		if err != nil {
			return nil, err
		}
		l.Items = append(l.Items, p)
	}
	return l, nil
}

// code highlights a pre element when the highlighter knows its language,
// and falls back to plain lines otherwise. Only cancellation is an error.
func (c *Converter) code(ctx context.Context, n *Node) (*CodeBlock, error) {
	src := n.TextContent()
	lang := ""
	for _, child := range elements(n.Children) {
		if child.Tag == "code" {
			lang = language(child.Classes)
			break
		}
	}

	block := &CodeBlock{Language: lang}
	if c.highlighter != nil && lang != "" && c.highlighter.SupportsLanguage(lang) {
		out, err := c.highlighter.Highlight(ctx, lang, src)
		if err == nil {
			tokens := markup.Parse(out, c.highlighter.SplitClasses)
			block.Lines = markup.Reflow(markup.Expand(tokens, c.CodeStyle(), c.theme))
			return block, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Warn("highlighting failed, using plain text",
			slog.String("language", lang), slog.Any("error", err))
	}
	block.Lines = markup.PlainLines(src, c.CodeStyle())
	return block, nil
}

// language extracts "go" from a "language-go" class.
func language(classes []string) string {
	for _, cl := range classes {
		if lang, ok := strings.CutPrefix(cl, "language-"); ok {
			return lang
		}
		if lang, ok := strings.CutPrefix(cl, "lang-"); ok {
			return lang
		}
	}
	return ""
}

// Contents builds a nested ordered list of chapter names. Depth 0 chapters
// are top-level items; deeper chapters nest below the preceding shallower one.
func (c *Converter) Contents(chapters []Chapter) (*List, error) {
	type frame struct {
		list  *List
		depth int
	}
	root := &List{Ordered: true, Start: 1}
	stack := []frame{{list: root, depth: 0}}
	for _, ch := range chapters {
		for len(stack) > 1 && ch.Depth < stack[len(stack)-1].depth {
			stack = stack[:len(stack)-1]
		}
		top := stack[len(stack)-1]
		if ch.Depth > top.depth && len(top.list.Items) > 0 {
			last := top.list.Items[len(top.list.Items)-1].(*Group)
			nested, ok := last.Blocks[len(last.Blocks)-1].(*List)
			if !ok {
				nested = &List{Ordered: true, Start: 1}
				last.Blocks = append(last.Blocks, nested)
			}
			stack = append(stack, frame{list: nested, depth: ch.Depth})
			top = stack[len(stack)-1]
		}
		indent := float64(len(stack)) * c.listIndent
		p, err := c.paragraph([]style.Run{{Text: ch.Name, Style: c.TextStyle()}}, c.width-indent)
		if err != nil {
			return nil, fmt.Errorf("contents: %w", err)
		}
		top.list.Items = append(top.list.Items, &Group{Blocks: []Block{p}})
	}
	return root, nil
}

// Validate checks the converter can lay out text.
func (c *Converter) Validate() error {
	if c.measurer == nil {
		return ErrNoMeasurer
	}
	if c.width <= 0 {
		return fmt.Errorf("%w: non-positive width %v", ErrInvalidWidth, c.width)
	}
	return c.sizes.Validate()
}

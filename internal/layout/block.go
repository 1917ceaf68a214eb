package layout

import (
	"fmt"

	"github.com/alnah/go-mdlayout/internal/style"
	"github.com/alnah/go-mdlayout/internal/textflow"
)

// Block is a block-level unit of a laid out document. The set of
// implementations is closed: *Heading, *Paragraph, *List, *CodeBlock,
// *Table and *Group.
type Block interface {
	block()
}

// Heading is a section title, Level 1 to 6.
type Heading struct {
	Level int
	Runs  []style.Run
	Lines []textflow.Line
}

// Paragraph is wrapped inline text.
type Paragraph struct {
	Runs  []style.Run
	Lines []textflow.Line
}

// List holds one block per item. Items are all *Paragraph or all *Group.
type List struct {
	Ordered bool
	Start   int
	Items   []Block
}

// CodeBlock holds source lines. Lines are not wrapped; an empty line is nil.
type CodeBlock struct {
	Language string
	Lines    [][]style.Run
}

// Table is a grid of cells. The first HeaderRows rows are header rows.
// Every row has len(Weights) cells.
type Table struct {
	Rows       [][]Block
	HeaderRows int
	Weights    []int
}

// Group stacks blocks vertically.
type Group struct {
	Blocks []Block
}

func (*Heading) block()   {}
func (*Paragraph) block() {}
func (*List) block()      {}
func (*CodeBlock) block() {}
func (*Table) block()     {}
func (*Group) block()     {}

// Walk calls fn for b and, while fn returns true, for every nested block in
// depth-first order.
func Walk(b Block, fn func(Block) bool) {
	if !fn(b) {
		return
	}
	switch b := b.(type) {
	case *Heading, *Paragraph, *CodeBlock:
	case *List:
		for _, item := range b.Items {
			Walk(item, fn)
		}
	case *Table:
		for _, row := range b.Rows {
			for _, cell := range row {
				Walk(cell, fn)
			}
		}
	case *Group:
		for _, child := range b.Blocks {
			Walk(child, fn)
		}
	default:
		panic(fmt.Sprintf("layout: unknown block type %T", b))
	}
}

// Chapter is one converted source document.
type Chapter struct {
	Name   string
	Depth  int
	Blocks []Block
}

// Document is a whole book ready for rendering.
type Document struct {
	Title    string
	Subtitle string
	Contents *List
	Chapters []Chapter
}

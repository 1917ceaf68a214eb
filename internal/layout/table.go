package layout

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdlayout/internal/style"
)

// weightScale is the weight given to the widest column.
const weightScale = 3

// ColumnWeights turns per-column mean content lengths into relative
// integer widths: weightScale*mean/max, floored at 1. A table with no
// content gets equal weights.
func ColumnWeights(means []int) []int {
	maxMean := 0
	for _, m := range means {
		maxMean = max(maxMean, m)
	}
	weights := make([]int, len(means))
	for i, m := range means {
		if maxMean == 0 {
			weights[i] = 1
			continue
		}
		weights[i] = max(1, weightScale*m/maxMean)
	}
	return weights
}

// ColumnMeans averages a length grid per column, using integer division.
// Rows must already be padded to the same length.
func ColumnMeans(lengths [][]int) []int {
	if len(lengths) == 0 {
		return nil
	}
	cols := len(lengths[0])
	means := make([]int, cols)
	for _, row := range lengths {
		if len(row) != cols {
			panic(fmt.Sprintf("layout: ragged length row: %d cells, want %d", len(row), cols))
		}
		for i, v := range row {
			means[i] += v
		}
	}
	for i := range means {
		means[i] /= len(lengths)
	}
	return means
}

type tableRow struct {
	cells  []*Node
	header bool
}

// tableRows flattens thead, tbody and tfoot. Rows inside thead, and rows
// made only of th cells, are header rows.
func tableRows(n *Node) []tableRow {
	var rows []tableRow
	var visit func(n *Node, header bool)
	visit = func(n *Node, header bool) {
		for _, child := range elements(n.Children) {
			switch child.Tag {
			case "thead":
				visit(child, true)
			case "tbody", "tfoot":
				visit(child, false)
			case "tr":
				cells := elements(child.Children)
				allTH := len(cells) > 0
				for _, cell := range cells {
					allTH = allTH && cell.Tag == "th"
				}
				rows = append(rows, tableRow{cells: cells, header: header || allTH})
			}
		}
	}
	visit(n, false)
	return rows
}

// table sizes the columns from the cell content, then lays out every cell
// at its column width. Short rows are padded with empty cells.
func (c *Converter) table(ctx context.Context, n *Node, width float64, ambient style.Style) (*Table, error) {
	rows := tableRows(n)

	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r.cells))
	}
	lengths := make([][]int, len(rows))
	for i, r := range rows {
		lengths[i] = make([]int, cols)
		for j, cell := range r.cells {
			lengths[i][j] = contentLength(cell.Children)
		}
	}

	t := &Table{Weights: ColumnWeights(ColumnMeans(lengths))}
	total := 0
	for _, w := range t.Weights {
		total += w
	}

	for _, r := range rows {
		s := ambient
		if r.header {
			s = s.Bold()
			if len(t.Rows) == t.HeaderRows {
				t.HeaderRows++
			}
		}
		row := make([]Block, 0, cols)
		for j, cell := range r.cells {
			cw := width*float64(t.Weights[j])/float64(total) - 2*c.cellPadding
			b, err := c.cell(ctx, cell, cw, s)
			if err != nil {
				return nil, err
			}
			row = append(row, b)
		}
		for len(row) < cols {
			row = append(row, &Paragraph{})
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// cell lays out a cell like a list item: a paragraph for single-line
// content, a group of blocks otherwise.
func (c *Converter) cell(ctx context.Context, n *Node, width float64, s style.Style) (Block, error) {
	if multiline(n.Children) {
		bs, err := c.blocks(ctx, n.Children, width, s)
		if err != nil {
			return nil, err
		}
		return &Group{Blocks: bs}, nil
	}
	return c.paragraph(c.inline(n.Children, s, nil), width)
}

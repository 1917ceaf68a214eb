// Package textflow measures words and packs them greedily into lines.
package textflow

import (
	"fmt"
	"strings"

	"github.com/alnah/go-mdlayout/internal/style"
)

// Measurer reports rendered widths. Backends implement it; the unit is the
// backend's own (points for PDF, cells for terminals).
type Measurer interface {
	MeasureText(s style.Style, text string) (float64, error)
	MeasureSpace(s style.Style) (float64, error)
}

// HardBreak is the text of a run that ends the current line. Layout
// honours it; Words treats it as whitespace.
const HardBreak = "\u2028"

// Word is one whitespace-delimited unit with its precomputed widths.
type Word struct {
	Text       string
	Width      float64
	Style      style.Style
	SpaceWidth float64
}

// Line is a sequence of words drawn left to right.
type Line []Word

// Width is the sum of word widths plus the spaces between them.
func (l Line) Width() float64 {
	var w float64
	for i, word := range l {
		w += word.Width
		if i < len(l)-1 {
			w += word.SpaceWidth
		}
	}
	return w
}

// String joins the words with single spaces.
func (l Line) String() string {
	parts := make([]string, len(l))
	for i, word := range l {
		parts[i] = word.Text
	}
	return strings.Join(parts, " ")
}

// Words splits runs on whitespace and measures every word. The first
// measurement error aborts.
func Words(runs []style.Run, m Measurer) ([]Word, error) {
	var words []Word
	for _, run := range runs {
		fields := strings.Fields(run.Text)
		if len(fields) == 0 {
			continue
		}
		space, err := m.MeasureSpace(run.Style)
		if err != nil {
			return nil, fmt.Errorf("measuring space: %w", err)
		}
		for _, f := range fields {
			w, err := m.MeasureText(run.Style, f)
			if err != nil {
				return nil, fmt.Errorf("measuring %q: %w", f, err)
			}
			words = append(words, Word{Text: f, Width: w, Style: run.Style, SpaceWidth: space})
		}
	}
	return words, nil
}

// Wrap packs words into lines no wider than width. A word that does not
// fit starts a new line; a word wider than width sits alone on its line.
// The accumulator restarts at the opening word's width plus its space so
// the next comparison counts that space, as it does for appended words.
func Wrap(width float64, words []Word) []Line {
	var (
		lines []Line
		line  Line
		acc   float64
	)
	for _, w := range words {
		if acc+w.Width > width && len(line) > 0 {
			lines = append(lines, line)
			line = Line{w}
			acc = w.Width + w.SpaceWidth
			continue
		}
		line = append(line, w)
		acc += w.Width + w.SpaceWidth
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}

// Layout is Words followed by Wrap, applied to each stretch of runs
// between HardBreak runs. An empty stretch between two breaks gives an
// empty line.
func Layout(width float64, runs []style.Run, m Measurer) ([]Line, error) {
	segments := splitBreaks(runs)
	var lines []Line
	for i, seg := range segments {
		words, err := Words(seg, m)
		if err != nil {
			return nil, err
		}
		wrapped := Wrap(width, words)
		if len(wrapped) == 0 && i > 0 && i < len(segments)-1 {
			wrapped = []Line{{}}
		}
		lines = append(lines, wrapped...)
	}
	return lines, nil
}

func splitBreaks(runs []style.Run) [][]style.Run {
	segments := [][]style.Run{nil}
	for _, r := range runs {
		if r.Text == HardBreak {
			segments = append(segments, nil)
			continue
		}
		last := len(segments) - 1
		segments[last] = append(segments[last], r)
	}
	return segments
}

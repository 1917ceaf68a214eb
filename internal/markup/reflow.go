package markup

import (
	"strings"

	"github.com/alnah/go-mdlayout/internal/style"
)

// Reflow splits runs into lines at every newline.
//
// A newline closes the current line, even an empty one, so blank lines in
// code survive. The last run is right-trimmed and a final empty line is
// never emitted.
func Reflow(runs []style.Run) [][]style.Run {
	var (
		lines   [][]style.Run
		current []style.Run
	)
	for i, run := range runs {
		text := run.Text
		if i == len(runs)-1 {
			text = strings.TrimRight(text, " \t\r\n")
		}
		for j, part := range strings.Split(text, "\n") {
			if j > 0 {
				lines = append(lines, current)
				current = nil
			}
			if part != "" {
				current = append(current, style.Run{Text: part, Style: run.Style})
			}
		}
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

// PlainLines splits unhighlighted source into single-run lines. A trailing
// newline does not produce an extra empty line.
func PlainLines(src string, s style.Style) [][]style.Run {
	src = strings.TrimSuffix(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	if src == "" {
		return nil
	}
	parts := strings.Split(src, "\n")
	lines := make([][]style.Run, len(parts))
	for i, part := range parts {
		if part != "" {
			lines[i] = []style.Run{{Text: part, Style: s}}
		}
	}
	return lines
}

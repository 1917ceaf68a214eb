package textflow

import (
	"errors"
	"math/rand/v2"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-mdlayout/internal/style"
)

// runeMeasurer measures one unit per rune and one unit per space.
type runeMeasurer struct {
	fail string
}

func (m runeMeasurer) MeasureText(_ style.Style, text string) (float64, error) {
	if m.fail != "" && text == m.fail {
		return 0, errors.New("glyph missing")
	}
	return float64(utf8.RuneCountInString(text)), nil
}

func (m runeMeasurer) MeasureSpace(style.Style) (float64, error) {
	return 1, nil
}

func word(text string) Word {
	return Word{Text: text, Width: float64(utf8.RuneCountInString(text)), SpaceWidth: 1}
}

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

// ---------------------------------------------------------------------------
// TestWrap - Greedy packing
// ---------------------------------------------------------------------------

func TestWrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		width float64
		words []string
		want  []string
	}{
		{
			name:  "fits on one line",
			width: 20,
			words: []string{"the", "quick", "fox"},
			want:  []string{"the quick fox"},
		},
		{
			name:  "exact fit",
			width: 9,
			words: []string{"the", "quick", "fox"},
			want:  []string{"the quick", "fox"},
		},
		{
			name:  "breaks before overflowing word",
			width: 8,
			words: []string{"the", "quick", "fox"},
			want:  []string{"the", "quick", "fox"},
		},
		{
			name:  "oversized word alone",
			width: 5,
			words: []string{"a", "extraordinary", "b"},
			want:  []string{"a", "extraordinary", "b"},
		},
		{
			name:  "oversized first word",
			width: 3,
			words: []string{"extraordinary", "b"},
			want:  []string{"extraordinary", "b"},
		},
		{
			name:  "space counted after a break",
			width: 6,
			words: []string{"abcdef", "abc", "abc"},
			want:  []string{"abcdef", "abc", "abc"},
		},
		{
			name:  "no words",
			width: 10,
			words: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var words []Word
			for _, w := range tt.words {
				words = append(words, word(w))
			}
			got := texts(Wrap(tt.width, words))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Wrap(%v) mismatch (-want +got):\n%s", tt.width, diff)
			}
		})
	}
}

func TestWrapProperties(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for iter := range 500 {
		n := r.IntN(40)
		words := make([]Word, n)
		for i := range words {
			words[i] = Word{
				Text:       string(rune('a' + i%26)),
				Width:      float64(r.IntN(30) + 1),
				SpaceWidth: float64(r.IntN(4)),
			}
		}
		width := float64(r.IntN(60) + 1)

		lines := Wrap(width, words)

		var flat []Word
		for _, line := range lines {
			if len(line) == 0 {
				t.Fatalf("iteration %d: empty line emitted", iter)
			}
			if line.Width() > width && len(line) > 1 {
				t.Fatalf("iteration %d: line width %v exceeds %v with %d words", iter, line.Width(), width, len(line))
			}
			flat = append(flat, line...)
		}
		if diff := cmp.Diff(words, flat); diff != "" && n > 0 {
			t.Fatalf("iteration %d: words not reproduced (-want +got):\n%s", iter, diff)
		}
	}
}

func TestLineWidth(t *testing.T) {
	t.Parallel()

	line := Line{word("ab"), word("cde"), word("f")}
	if got := line.Width(); got != 8 {
		t.Errorf("Width() = %v, want 8", got)
	}
	if got := (Line{}).Width(); got != 0 {
		t.Errorf("empty Width() = %v, want 0", got)
	}
}

// ---------------------------------------------------------------------------
// TestWords - Measurement
// ---------------------------------------------------------------------------

func TestWords(t *testing.T) {
	t.Parallel()

	bold := style.New().Bold()
	runs := []style.Run{
		{Text: "  hello  wide\tworld ", Style: style.New()},
		{Text: "   ", Style: bold},
		{Text: "bold!", Style: bold},
	}
	got, err := Words(runs, runeMeasurer{})
	if err != nil {
		t.Fatalf("Words() error: %v", err)
	}
	want := []Word{
		{Text: "hello", Width: 5, Style: style.New(), SpaceWidth: 1},
		{Text: "wide", Width: 4, Style: style.New(), SpaceWidth: 1},
		{Text: "world", Width: 5, Style: style.New(), SpaceWidth: 1},
		{Text: "bold!", Width: 5, Style: bold, SpaceWidth: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Words() mismatch (-want +got):\n%s", diff)
	}
}

func TestWordsMeasurementErrorAborts(t *testing.T) {
	t.Parallel()

	runs := []style.Run{{Text: "ok broken ok", Style: style.New()}}
	if _, err := Words(runs, runeMeasurer{fail: "broken"}); err == nil {
		t.Fatal("Words() expected error")
	}
	if _, err := Layout(80, runs, runeMeasurer{fail: "broken"}); err == nil {
		t.Fatal("Layout() expected error")
	}
}

func TestLayout(t *testing.T) {
	t.Parallel()

	runs := []style.Run{{Text: "one two three four", Style: style.New()}}
	lines, err := Layout(9, runs, runeMeasurer{})
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	want := []string{"one two", "three", "four"}
	if diff := cmp.Diff(want, texts(lines)); diff != "" {
		t.Errorf("Layout() mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutHardBreaks(t *testing.T) {
	t.Parallel()

	// Notes:
	// - Each stretch between breaks wraps on its own.
	// - Two breaks in a row leave an empty line; breaks at either end do not.
	text := func(s string) style.Run { return style.Run{Text: s, Style: style.New()} }
	br := text(HardBreak)

	tests := []struct {
		name  string
		width float64
		runs  []style.Run
		want  []string
	}{
		{
			name:  "break splits a line that fits",
			width: 100,
			runs:  []style.Run{text("first"), br, text("second")},
			want:  []string{"first", "second"},
		},
		{
			name:  "double break",
			width: 100,
			runs:  []style.Run{text("a"), br, br, text("b")},
			want:  []string{"a", "", "b"},
		},
		{
			name:  "edge breaks",
			width: 100,
			runs:  []style.Run{br, text("a"), br},
			want:  []string{"a"},
		},
		{
			name:  "segments wrap independently",
			width: 7,
			runs:  []style.Run{text("one two three"), br, text("four")},
			want:  []string{"one two", "three", "four"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lines, err := Layout(tt.width, tt.runs, runeMeasurer{})
			if err != nil {
				t.Fatalf("Layout() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, texts(lines)); diff != "" {
				t.Errorf("Layout() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

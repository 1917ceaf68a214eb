package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-mdlayout/internal/layout"
)

// ---------------------------------------------------------------------------
// TestNormalizeMarkdown - Line endings and whitespace
// ---------------------------------------------------------------------------

func TestNormalizeMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "crlf", in: "a\r\nb\r\n", want: "a\nb\n"},
		{name: "bare cr", in: "a\rb", want: "a\nb\n"},
		{name: "bom stripped", in: "\ufeff# T\n", want: "# T\n"},
		{name: "blank runs kept", in: "a\n\n\n\n\nb\n", want: "a\n\n\n\n\nb\n"},
		{name: "trailing whitespace trimmed", in: "a\n\n  \n\t\n", want: "a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NormalizeMarkdown(tt.in); got != tt.want {
				t.Errorf("NormalizeMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizerCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := "a\r\n"
	if got := (Normalizer{}).PreprocessMarkdown(ctx, in); got != in {
		t.Errorf("PreprocessMarkdown() on canceled context = %q, want input unchanged", got)
	}
}

// ---------------------------------------------------------------------------
// TestGoldmarkConverter - HTML fragment output
// ---------------------------------------------------------------------------

func TestGoldmarkConverterToHTML(t *testing.T) {
	t.Parallel()

	c := NewGoldmarkConverter()
	tests := []struct {
		name    string
		md      string
		want    []string
		wantNot []string
	}{
		{
			name: "fenced code stays plain",
			md:   "```go\nfunc main() {}\n```\n",
			want: []string{`<pre><code class="language-go">func main() {}`},
			wantNot: []string{
				`class="chroma"`,
				"<span",
			},
		},
		{
			name:    "soft breaks are not hard wraps",
			md:      "one\ntwo\n",
			want:    []string{"<p>one\ntwo</p>"},
			wantNot: []string{"<br"},
		},
		{
			name: "gfm table",
			md:   "| a | b |\n|---|---|\n| 1 | 2 |\n",
			want: []string{"<table>", "<thead>", "<th>a</th>", "<td>2</td>"},
		},
		{
			name:    "fragment only",
			md:      "# Title\n",
			want:    []string{`<h1 id="title">Title</h1>`},
			wantNot: []string{"<html", "<body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := c.ToHTML(context.Background(), tt.md)
			if err != nil {
				t.Fatalf("ToHTML() error: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("ToHTML() missing %q in:\n%s", w, got)
				}
			}
			for _, w := range tt.wantNot {
				if strings.Contains(got, w) {
					t.Errorf("ToHTML() unexpectedly contains %q in:\n%s", w, got)
				}
			}
		})
	}
}

func TestGoldmarkConverterCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewGoldmarkConverter().ToHTML(ctx, "# x"); err != context.Canceled {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestParseNodes - HTML to layout nodes
// ---------------------------------------------------------------------------

func TestParseNodes(t *testing.T) {
	t.Parallel()

	src := `<p>a &amp; <em>b</em><!-- c --></p>` + "\n" +
		`<ol start="3"><li>x</li></ol>` +
		`<pre><code class="language-go x">y</code></pre><script>bad()</script>`

	got, err := ParseNodes(src)
	if err != nil {
		t.Fatalf("ParseNodes() error: %v", err)
	}

	want := []*layout.Node{
		{Tag: "p", Children: []*layout.Node{
			{Text: "a & "},
			{Tag: "em", Children: []*layout.Node{{Text: "b"}}},
		}},
		{Text: "\n"},
		{Tag: "ol", Attrs: map[string]string{"start": "3"}, Children: []*layout.Node{
			{Tag: "li", Children: []*layout.Node{{Text: "x"}}},
		}},
		{Tag: "pre", Children: []*layout.Node{
			{Tag: "code", Classes: []string{"language-go", "x"}, Children: []*layout.Node{{Text: "y"}}},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseNodes() mismatch (-want +got):\n%s", diff)
	}
}

func TestParserParse(t *testing.T) {
	t.Parallel()

	md := "# Guide\r\n\r\nSome *text*.\r\n\r\n- a\r\n- b\r\n"
	nodes, err := NewParser().Parse(context.Background(), md)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := FirstHeading(nodes); got != "Guide" {
		t.Errorf("FirstHeading() = %q, want Guide", got)
	}

	var tags []string
	for _, n := range nodes {
		if !n.IsText() {
			tags = append(tags, n.Tag)
		}
	}
	if diff := cmp.Diff([]string{"h1", "p", "ul"}, tags); diff != "" {
		t.Errorf("top-level tags mismatch (-want +got):\n%s", diff)
	}
}

func TestParserParseCodeBlankLines(t *testing.T) {
	t.Parallel()

	// Notes:
	// - Two blank lines inside a fence are part of the code and reach the
	//   pre element unchanged; outside code they still make one break.
	md := "Intro.\n\n\n\n```python\ndef a():\n    pass\n\n\ndef b():\n    pass\n```\n"
	nodes, err := NewParser().Parse(context.Background(), md)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	var pre *layout.Node
	var paragraphs int
	for _, n := range nodes {
		switch n.Tag {
		case "pre":
			pre = n
		case "p":
			paragraphs++
		}
	}
	if paragraphs != 1 {
		t.Errorf("paragraphs = %d, want 1", paragraphs)
	}
	if pre == nil {
		t.Fatal("no pre element")
	}
	want := "def a():\n    pass\n\n\ndef b():\n    pass\n"
	if got := pre.TextContent(); got != want {
		t.Errorf("code text = %q, want %q", got, want)
	}
}

func TestFirstHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		nodes []*layout.Node
		want  string
	}{
		{
			name:  "no heading",
			nodes: []*layout.Node{layout.Element("p", layout.TextNode("x"))},
			want:  "",
		},
		{
			name: "second level first",
			nodes: []*layout.Node{
				layout.Element("p", layout.TextNode("x")),
				layout.Element("h2", layout.TextNode(" Setup ")),
				layout.Element("h1", layout.TextNode("Later")),
			},
			want: "Setup",
		},
		{
			name:  "sixth level",
			nodes: []*layout.Node{layout.Element("h6", layout.TextNode("Fine print"))},
			want:  "Fine print",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FirstHeading(tt.nodes); got != tt.want {
				t.Errorf("FirstHeading() = %q, want %q", got, tt.want)
			}
		})
	}
}

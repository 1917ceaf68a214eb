package markup

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/alnah/go-mdlayout/internal/style"
)

var (
	s1 = style.New().WithColor(style.RGB(255, 0, 0))
	s2 = style.New().WithColor(style.RGB(0, 0, 255))
)

// ---------------------------------------------------------------------------
// TestParse - Restricted tag grammar
// ---------------------------------------------------------------------------

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []Token
	}{
		{
			name: "plain text",
			src:  "let x = 1;",
			want: []Token{Text("let x = 1;")},
		},
		{
			name: "single span",
			src:  `<span class="k">fn</span> main`,
			want: []Token{
				&Element{Classes: []string{"k"}, Children: []Token{Text("fn")}},
				Text(" main"),
			},
		},
		{
			name: "nested spans keep their own classes",
			src:  `<span class="a"><span class="b c">x</span>y</span>`,
			want: []Token{
				&Element{Classes: []string{"a"}, Children: []Token{
					&Element{Classes: []string{"b", "c"}, Children: []Token{Text("x")}},
					Text("y"),
				}},
			},
		},
		{
			name: "tag without class",
			src:  `<span>x</span>`,
			want: []Token{&Element{Children: []Token{Text("x")}}},
		},
		{
			name: "entities decoded",
			src:  `a &lt; b &amp;&amp; c &gt; d &quot;e&quot; &#x27;f&#39;`,
			want: []Token{Text(`a < b && c > d "e" 'f'`)},
		},
		{
			name: "newlines kept verbatim",
			src:  "<span class=\"c\">// a\n</span>b\n",
			want: []Token{
				&Element{Classes: []string{"c"}, Children: []Token{Text("// a\n")}},
				Text("b\n"),
			},
		},
		{
			name: "unsupported attribute truncates",
			src:  `ok<span style="x">lost</span>also lost`,
			want: []Token{Text("ok")},
		},
		{
			name: "comment truncates",
			src:  `a<!-- c -->b`,
			want: []Token{Text("a")},
		},
		{
			name: "bare less-than truncates",
			src:  `x < y`,
			want: []Token{Text("x ")},
		},
		{
			name: "truncation inside element keeps collected children",
			src:  `<span class="k">a<br/>b</span>c`,
			want: []Token{&Element{Classes: []string{"k"}, Children: []Token{Text("a")}}},
		},
		{
			name: "unclosed element ends at input end",
			src:  `<span class="k">abc`,
			want: []Token{&Element{Classes: []string{"k"}, Children: []Token{Text("abc")}}},
		},
		{
			name: "stray close tag ends top level",
			src:  `a</span>b`,
			want: []Token{Text("a")},
		},
		{
			name: "empty input",
			src:  "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Parse(tt.src, nil)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestHLJS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{in: "hljs-keyword", want: []string{"keyword"}},
		{in: "hljs-title function_", want: []string{"title", "function"}},
		{in: "hljs-built_in", want: []string{"built_in"}},
		{in: "  ", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got := HLJS(tt.in)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("HLJS(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseWithSplitter(t *testing.T) {
	t.Parallel()

	got := Parse(`<span class="hljs-title class_">Foo</span>`, HLJS)
	want := []Token{&Element{Classes: []string{"title", "class"}, Children: []Token{Text("Foo")}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestExpand - Style resolution per element
// ---------------------------------------------------------------------------

func TestExpand(t *testing.T) {
	t.Parallel()

	tree := style.NewTree(style.New())
	tree.Insert([]string{"k"}, s1)
	tree.Insert([]string{"s"}, s2)

	ambient := style.New().WithFamily(style.FamilyMono)
	tokens := Parse(`<span class="k">fn</span> x<span class="zz"><span class="s">"a"</span>!</span>`, nil)

	want := []style.Run{
		{Text: "fn", Style: ambient.Merge(s1)},
		{Text: " x", Style: ambient},
		{Text: `"a"`, Style: ambient.Merge(s2)},
		{Text: "!", Style: ambient},
	}
	got := Expand(tokens, ambient, tree)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Expand() mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandNestedInheritsAmbient(t *testing.T) {
	t.Parallel()

	tree := style.NewTree(style.New())
	tree.Insert([]string{"bold"}, style.New().Bold())
	tree.Insert([]string{"red"}, s1)

	tokens := Parse(`<b class="bold"><b class="red">x</b></b>`, nil)
	got := Expand(tokens, style.New(), tree)
	want := []style.Run{{Text: "x", Style: style.New().Bold().Merge(s1)}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Expand() mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandKeepsNewlines(t *testing.T) {
	t.Parallel()

	got := Expand([]Token{Text("a\nb")}, s1, nil)
	want := []style.Run{{Text: "a\nb", Style: s1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Expand() mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestReflow - Newline driven line assembly
// ---------------------------------------------------------------------------

func TestReflow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		runs []style.Run
		want [][]style.Run
	}{
		{
			name: "newline inside one run",
			runs: []style.Run{{Text: "a\nb", Style: s1}},
			want: [][]style.Run{
				{{Text: "a", Style: s1}},
				{{Text: "b", Style: s1}},
			},
		},
		{
			name: "solitary newline run adds no content",
			runs: []style.Run{{Text: "a", Style: s1}, {Text: "\n", Style: s2}, {Text: "b", Style: s1}},
			want: [][]style.Run{
				{{Text: "a", Style: s1}},
				{{Text: "b", Style: s1}},
			},
		},
		{
			name: "final run right-trimmed",
			runs: []style.Run{{Text: "x ", Style: s2}, {Text: "foo   ", Style: s1}},
			want: [][]style.Run{
				{{Text: "x ", Style: s2}, {Text: "foo", Style: s1}},
			},
		},
		{
			name: "trailing newline produces no blank line",
			runs: []style.Run{{Text: "a\n", Style: s1}},
			want: [][]style.Run{{{Text: "a", Style: s1}}},
		},
		{
			name: "blank line in the middle kept",
			runs: []style.Run{{Text: "a\n\nb", Style: s1}},
			want: [][]style.Run{
				{{Text: "a", Style: s1}},
				nil,
				{{Text: "b", Style: s1}},
			},
		},
		{
			name: "runs on one line stay together",
			runs: []style.Run{{Text: "fn", Style: s1}, {Text: " main()", Style: s2}},
			want: [][]style.Run{{{Text: "fn", Style: s1}, {Text: " main()", Style: s2}}},
		},
		{
			name: "empty input",
			runs: nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Reflow(tt.runs)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Reflow() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReflowPreservesText(t *testing.T) {
	t.Parallel()

	src := "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}"
	tokens := Parse(`<span class="kn">package</span> main`+"\n\n"+`<span class="kd">func</span> main() {`+"\n\tprintln(\"hi\")\n}\n", nil)
	lines := Reflow(Expand(tokens, style.New(), style.NewTree(style.New())))

	var got string
	for i, line := range lines {
		if i > 0 {
			got += "\n"
		}
		for _, r := range line {
			got += r.Text
		}
	}
	if got != src {
		t.Errorf("reflowed text = %q, want %q", got, src)
	}
}

func TestPlainLines(t *testing.T) {
	t.Parallel()

	got := PlainLines("a\r\n\nb\n", s1)
	want := [][]style.Run{
		{{Text: "a", Style: s1}},
		nil,
		{{Text: "b", Style: s1}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PlainLines() mismatch (-want +got):\n%s", diff)
	}
	if got := PlainLines("", s1); got != nil {
		t.Errorf("PlainLines(\"\") = %v, want nil", got)
	}
}

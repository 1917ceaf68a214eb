// Package markup turns highlighter output into styled lines.
//
// The input grammar is deliberately small: character data plus flat
// <TAG> or <TAG class="a b"> elements closed by </TAG>. This is what
// class-emitting highlighters produce. Anything else ends parsing; the
// tokens collected so far are returned.
package markup

import "strings"

// Token is a node of the parsed markup tree: either Text or *Element.
type Token interface {
	token()
}

// Text is character data with entities already decoded.
type Text string

// Element is a tag with its own class list and children.
// Classes are never merged with those of enclosing elements.
type Element struct {
	Classes  []string
	Children []Token
}

func (Text) token()     {}
func (*Element) token() {}

// ClassSplitter turns a raw class attribute into the class path used for
// Style Tree lookups.
type ClassSplitter func(attr string) []string

// Fields splits the class attribute on whitespace.
func Fields(attr string) []string {
	return strings.Fields(attr)
}

// HLJS splits highlight.js class attributes: "hljs-title function_"
// becomes ["title", "function"].
func HLJS(attr string) []string {
	fields := strings.Fields(attr)
	out := fields[:0]
	for _, f := range fields {
		f = strings.TrimRight(strings.TrimPrefix(f, "hljs-"), "_")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

var entities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#x27;", "'",
	"&#39;", "'",
	"&#34;", `"`,
)

// DecodeEntities replaces the HTML entities highlighters emit.
func DecodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return entities.Replace(s)
}

// Parse tokenizes src. A nil split uses Fields.
func Parse(src string, split ClassSplitter) []Token {
	if split == nil {
		split = Fields
	}
	p := &parser{src: src, split: split}
	return p.scope()
}

type parser struct {
	src    string
	pos    int
	split  ClassSplitter
	halted bool
}

// scope collects tokens until the matching close tag, end of input, or an
// unsupported construct.
func (p *parser) scope() []Token {
	var out []Token
	for !p.halted && p.pos < len(p.src) {
		if p.src[p.pos] != '<' {
			out = append(out, p.text())
			continue
		}
		if strings.HasPrefix(p.src[p.pos:], "</") {
			end := strings.IndexByte(p.src[p.pos:], '>')
			if end < 0 {
				p.halted = true
				break
			}
			p.pos += end + 1
			return out
		}
		classes, ok := p.open()
		if !ok {
			p.halted = true
			break
		}
		out = append(out, &Element{Classes: classes, Children: p.scope()})
	}
	return out
}

func (p *parser) text() Text {
	end := strings.IndexByte(p.src[p.pos:], '<')
	if end < 0 {
		end = len(p.src) - p.pos
	}
	raw := p.src[p.pos : p.pos+end]
	p.pos += end
	return Text(DecodeEntities(raw))
}

// open consumes <name> or <name class="...">.
func (p *parser) open() ([]string, bool) {
	i := p.pos + 1
	start := i
	for i < len(p.src) && isNameByte(p.src[i]) {
		i++
	}
	if i == start {
		return nil, false
	}
	i = skipSpaces(p.src, i)
	if i < len(p.src) && p.src[i] == '>' {
		p.pos = i + 1
		return nil, true
	}
	const attr = `class="`
	if !strings.HasPrefix(p.src[i:], attr) {
		return nil, false
	}
	i += len(attr)
	end := strings.IndexByte(p.src[i:], '"')
	if end < 0 {
		return nil, false
	}
	value := p.src[i : i+end]
	i = skipSpaces(p.src, i+end+1)
	if i >= len(p.src) || p.src[i] != '>' {
		return nil, false
	}
	p.pos = i + 1
	return p.split(DecodeEntities(value)), true
}

func isNameByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '-'
}

func skipSpaces(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

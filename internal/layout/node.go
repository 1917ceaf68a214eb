// Package layout converts a parsed element tree into layout blocks.
//
// The element tree comes from an HTML rendering of the document. Blocks are
// a closed set of kinds (headings, paragraphs, lists, code, tables, groups)
// carrying styled runs and pre-wrapped lines for the rendering backend.
package layout

import (
	"strings"
	"unicode/utf8"
)

// Node is one element of the input tree. A text node has an empty Tag.
type Node struct {
	Tag      string
	Classes  []string
	Attrs    map[string]string
	Children []*Node
	Text     string
}

// Element builds an element node.
func Element(tag string, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children}
}

// TextNode builds a text node.
func TextNode(text string) *Node {
	return &Node{Text: text}
}

// IsText reports whether n is character data.
func (n *Node) IsText() bool {
	return n.Tag == ""
}

// Attr returns the named attribute or "".
func (n *Node) Attr(name string) string {
	return n.Attrs[name]
}

// TextContent concatenates all descendant text.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// multiline reports whether any text below nodes contains a newline.
func multiline(nodes []*Node) bool {
	for _, n := range nodes {
		if n.IsText() {
			if strings.Contains(n.Text, "\n") {
				return true
			}
			continue
		}
		if multiline(n.Children) {
			return true
		}
	}
	return false
}

// contentLength is the table sizing heuristic: characters of text below
// nodes, not rendered width.
func contentLength(nodes []*Node) int {
	total := 0
	for _, n := range nodes {
		if n.IsText() {
			total += utf8.RuneCountInString(n.Text)
			continue
		}
		total += contentLength(n.Children)
	}
	return total
}

func elements(nodes []*Node) []*Node {
	var out []*Node
	for _, n := range nodes {
		if !n.IsText() {
			out = append(out, n)
		}
	}
	return out
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

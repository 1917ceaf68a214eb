package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-mdlayout/internal/layout"
)

// ErrHTMLParse indicates the HTML fragment could not be parsed.
var ErrHTMLParse = errors.New("HTML parse failed")

// skipped elements never carry document content.
var skipped = map[string]bool{
	"script": true,
	"style":  true,
	"head":   true,
	"title":  true,
}

// ParseNodes parses an HTML fragment into layout nodes. Comments and
// doctype nodes are dropped; entities are decoded.
func ParseNodes(fragment string) ([]*layout.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLParse, err)
	}
	var out []*layout.Node
	for _, n := range nodes {
		if c := convertNode(n); c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func convertNode(n *html.Node) *layout.Node {
	switch n.Type {
	case html.TextNode:
		return layout.TextNode(n.Data)
	case html.ElementNode:
		if skipped[n.Data] {
			return nil
		}
		out := &layout.Node{Tag: n.Data}
		for _, a := range n.Attr {
			if a.Namespace != "" {
				continue
			}
			if a.Key == "class" {
				out.Classes = strings.Fields(a.Val)
				continue
			}
			if out.Attrs == nil {
				out.Attrs = make(map[string]string)
			}
			out.Attrs[a.Key] = a.Val
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convertNode(c); child != nil {
				out.Children = append(out.Children, child)
			}
		}
		return out
	default:
		return nil
	}
}

// Parser runs the whole pipeline on one Markdown document.
type Parser struct {
	pre  MarkdownPreprocessor
	html HTMLConverter
}

// NewParser creates a Parser with the default stages.
func NewParser() *Parser {
	return &Parser{pre: Normalizer{}, html: NewGoldmarkConverter()}
}

// Parse converts Markdown to layout nodes.
func (p *Parser) Parse(ctx context.Context, markdown string) ([]*layout.Node, error) {
	md := p.pre.PreprocessMarkdown(ctx, markdown)
	fragment, err := p.html.ToHTML(ctx, md)
	if err != nil {
		return nil, err
	}
	return ParseNodes(fragment)
}

// FirstHeading returns the text of the first h1 to h6, or "".
func FirstHeading(nodes []*layout.Node) string {
	for _, n := range nodes {
		switch n.Tag {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			return strings.TrimSpace(n.TextContent())
		}
	}
	return ""
}

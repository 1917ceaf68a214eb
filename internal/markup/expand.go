package markup

import "github.com/alnah/go-mdlayout/internal/style"

// Expand flattens a token tree into styled runs in reading order.
//
// An element's style is the ambient style overlaid with the tree match for
// the element's own classes; it becomes the ambient style of its children.
// Text is emitted verbatim, newlines included.
func Expand(tokens []Token, ambient style.Style, tree *style.Parent) []style.Run {
	var runs []style.Run
	expand(&runs, tokens, ambient, tree)
	return runs
}

func expand(runs *[]style.Run, tokens []Token, ambient style.Style, tree *style.Parent) {
	for _, tok := range tokens {
		switch tok := tok.(type) {
		case Text:
			if tok != "" {
				*runs = append(*runs, style.Run{Text: string(tok), Style: ambient})
			}
		case *Element:
			s := ambient
			if tree != nil {
				s = ambient.Merge(tree.Match(tok.Classes))
			}
			expand(runs, tok.Children, s, tree)
		}
	}
}

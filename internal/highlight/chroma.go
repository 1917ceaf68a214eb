package highlight

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-mdlayout/internal/markup"
	"github.com/alnah/go-mdlayout/internal/style"
)

// DefaultChromaStyle is used when no style name is given.
const DefaultChromaStyle = "github"

// Chroma highlights in process with chroma lexers. Its output uses
// chroma's short class names ("k", "nf", "s2").
type Chroma struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

var _ Highlighter = (*Chroma)(nil)

// NewChroma creates a Chroma highlighter. Unknown style names fall back
// to chroma's default style.
func NewChroma(styleName string) *Chroma {
	if styleName == "" {
		styleName = DefaultChromaStyle
	}
	return &Chroma{
		style: styles.Get(styleName),
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
	}
}

// Name implements Highlighter.
func (c *Chroma) Name() string { return BackendChroma }

// SupportsLanguage implements Highlighter.
func (c *Chroma) SupportsLanguage(name string) bool {
	return lexers.Get(name) != nil
}

// Highlight implements Highlighter. Chroma is not context-aware, so
// tokenizing runs in a goroutine and the context is checked around it.
func (c *Chroma) Highlight(ctx context.Context, language, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}
	lexer = chroma.Coalesce(lexer)

	type result struct {
		markup string
		err    error
	}
	done := make(chan result, 1)

	go func() {
		it, err := lexer.Tokenise(nil, source)
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHighlightFailed, err)}
			return
		}
		var b strings.Builder
		if err := c.formatter.Format(&b, c.style, it); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHighlightFailed, err)}
			return
		}
		done <- result{markup: b.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.markup, r.err
	}
}

// SplitClasses implements Highlighter.
func (c *Chroma) SplitClasses(attr string) []string {
	return markup.Fields(attr)
}

// Theme implements Highlighter.
func (c *Chroma) Theme(base style.Style) *style.Parent {
	return style.FromChroma(base, c.style)
}

// StyleName returns the resolved chroma style name.
func (c *Chroma) StyleName() string {
	return c.style.Name
}

// ChromaStyles lists the available chroma style names.
func ChromaStyles() []string {
	return styles.Names()
}

package pipeline

import (
	"context"
	"regexp"
	"strings"
)

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// Normalizer cleans up Markdown before conversion.
type Normalizer struct{}

var _ MarkdownPreprocessor = (*Normalizer)(nil)

// PreprocessMarkdown implements MarkdownPreprocessor.
func (Normalizer) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	return NormalizeMarkdown(content)
}

// NormalizeMarkdown converts line endings to \n, strips a leading byte
// order mark and trims trailing whitespace at the end of the document.
// Blank line runs are left alone: inside code they are content.
func NormalizeMarkdown(content string) string {
	content = strings.TrimPrefix(content, "\ufeff")
	content = crlfOrCR.ReplaceAllString(content, "\n")
	return strings.TrimRight(content, " \t\n") + "\n"
}

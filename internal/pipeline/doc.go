// Package pipeline turns Markdown source into the element tree consumed by
// the layout converter.
//
// The stages are:
//   - Markdown normalization (line endings, BOM, blank line runs)
//   - Markdown to HTML via goldmark, without hard wraps or highlighting
//   - HTML to layout nodes via golang.org/x/net/html
//
// Code highlighting is deliberately absent here: fenced blocks stay plain
// <pre><code class="language-x"> so that the layout converter can ask its
// highlighter per block and fall back to plain text.
package pipeline

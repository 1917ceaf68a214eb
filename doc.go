// Package mdlayout lays Markdown books out into paginated, styled documents.
//
// # Quick Start
//
// Create a converter, convert chapters, and close when done:
//
//	conv, err := mdlayout.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, mdlayout.Input{
//	    Chapters: []mdlayout.Chapter{{Name: "Intro", Markdown: "# Hello\n\nWorld"}},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("book"+result.Extension(), result.Output, 0644)
//
// # Conversion Pipeline
//
//  1. Markdown normalization and parsing into an element tree (goldmark)
//  2. Syntax highlighting of code blocks into class-annotated markup
//     (chroma, or highlight.js through an external command)
//  3. Markup tokenizing and style resolution against a theme tree
//  4. Word wrapping of styled runs at the backend's column width
//  5. Rendering of the title page, contents and chapters by a backend
//
// # Backends
//
// "pdf" writes the document directly with fpdf and embedded Go fonts.
// "chrome" renders an HTML page template with headless Chrome (go-rod),
// positioning lines exactly as laid out. "text" styles the document for a
// terminal with lipgloss.
//
//	conv, err := mdlayout.NewConverter(
//	    mdlayout.WithBackend(mdlayout.BackendText),
//	    mdlayout.WithColumns(100),
//	)
//
// # Parallel Processing
//
// Chapters of one Input are laid out concurrently, bounded by WithWorkers.
// To convert several books at once, share converters with a pool:
//
//	pool := mdlayout.NewConverterPool(4)
//	defer pool.Close()
//
//	conv, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Custom Assets
//
// WithAssetPath overrides the built-in highlight themes, page template
// and highlighter script. Missing files fall back to the embedded ones:
//
//	assets/
//	├── themes/
//	│   └── custom.yaml
//	├── templates/
//	│   └── page.html
//	└── scripts/
//	    └── highlight.js
package mdlayout

// Package highlight provides syntax highlighters that emit class-annotated
// markup: chroma in process, or an external command such as highlight.js
// under node.
package highlight

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/alnah/go-mdlayout/internal/style"
)

// Sentinel errors.
var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrHighlightFailed     = errors.New("highlighting failed")
	ErrUnknownBackend      = errors.New("unknown highlighter backend")
)

// Highlighter turns source code into markup made of class-annotated span
// elements and text.
type Highlighter interface {
	// Name identifies the implementation in logs.
	Name() string
	// SupportsLanguage reports whether Highlight can handle name.
	SupportsLanguage(name string) bool
	// Highlight returns markup for source, or ErrUnsupportedLanguage.
	Highlight(ctx context.Context, language, source string) (string, error)
	// SplitClasses turns a class attribute into a style tree path.
	SplitClasses(attr string) []string
	// Theme builds the style tree resolving this highlighter's classes.
	Theme(base style.Style) *style.Parent
}

// Backend names.
const (
	BackendChroma  = "chroma"
	BackendProcess = "process"
)

// Options selects and configures a highlighter.
type Options struct {
	Backend string
	// Style is a chroma style name. Ignored by the process backend.
	Style string
	// Command and Args start the external highlighter.
	Command string
	Args    []string
	// Colors overrides the theme per class path, as "#rrggbb".
	Colors map[string]string
}

// New builds the highlighter named by opts.Backend.
func New(opts Options) (Highlighter, error) {
	switch opts.Backend {
	case "", BackendChroma:
		return NewChroma(opts.Style), nil
	case BackendProcess:
		return NewProcess(opts.Command, opts.Args...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// Theme builds h's theme and overlays user colours keyed by dotted class
// path.
func Theme(h Highlighter, base style.Style, colors map[string]string) (*style.Parent, error) {
	tree := h.Theme(base)
	for _, key := range slices.Sorted(maps.Keys(colors)) {
		c, err := style.ParseHex(colors[key])
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", key, err)
		}
		path := strings.Split(key, ".")
		tree.Insert(path, tree.Lookup(path).WithColor(c))
	}
	return tree, nil
}

package style

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
)

// DefaultPalette is the highlight.js class palette used when no theme is
// configured. Keys are class paths with the "hljs-" prefix removed; nested
// scopes are joined with dots.
func DefaultPalette() map[string]Color {
	red := RGB(215, 0, 37)
	rust := RGB(178, 30, 0)
	green := RGB(0, 130, 0)
	blue := RGB(0, 48, 242)
	purple := RGB(157, 0, 236)
	return map[string]Color{
		"comment":           Gray(87),
		"quote":             Gray(87),
		"variable":          red,
		"template-variable": red,
		"tag":               red,
		"attribute":         red,
		"name":              red,
		"regexp":            red,
		"link":              red,
		"selector-id":       red,
		"selector-class":    red,
		"number":            rust,
		"meta":              rust,
		"built_in":          rust,
		"builtin-name":      rust,
		"literal":           rust,
		"type":              rust,
		"params":            rust,
		"string":            green,
		"symbol":            green,
		"bullet":            green,
		"title":             blue,
		"section":           blue,
		"keyword":           purple,
		"selector-tag":      purple,
		"addition":          RGB(34, 134, 58),
		"deletion":          RGB(179, 29, 40),
	}
}

// FromPalette builds a tree with root default base and one entry per
// palette key. Keys are inserted in sorted order so that a parent path is
// always present before its children.
func FromPalette(base Style, palette map[string]Color) *Parent {
	tree := NewTree(base)
	for _, key := range slices.Sorted(maps.Keys(palette)) {
		tree.Insert(strings.Split(key, "."), New().WithColor(palette[key]))
	}
	return tree
}

// FromHexPalette is FromPalette for user supplied "#rrggbb" values.
func FromHexPalette(base Style, palette map[string]string) (*Parent, error) {
	colors := make(map[string]Color, len(palette))
	for key, hex := range palette {
		c, err := ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", key, err)
		}
		colors[key] = c
	}
	return FromPalette(base, colors), nil
}

// FromChroma builds a tree keyed by the short CSS class names chroma's HTML
// formatter emits (e.g. "k", "nf", "s2").
func FromChroma(base Style, cs *chroma.Style) *Parent {
	tree := NewTree(base)
	if cs == nil {
		return tree
	}
	for tt, class := range chroma.StandardTypes {
		if class == "" {
			continue
		}
		entry := cs.Get(tt)
		s := New()
		if entry.Colour.IsSet() {
			s = s.WithColor(RGB(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue()))
		}
		if entry.Bold == chroma.Yes {
			s = s.Bold()
		}
		if entry.Italic == chroma.Yes {
			s = s.Italic()
		}
		if s.IsZero() {
			continue
		}
		tree.Insert([]string{class}, s)
	}
	return tree
}

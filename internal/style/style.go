// Package style defines the visual Style value, styled text runs, and the
// class-path keyed Style Tree used to colour highlighted code.
package style

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidColor indicates a colour string could not be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Family names a font family. Backends map families to concrete fonts.
type Family string

// Built-in font families.
const (
	FamilySans Family = "sans"
	FamilyMono Family = "mono"
)

// Color is an opaque RGB colour.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Gray builds a neutral Color with equal components.
func Gray(v uint8) Color {
	return Color{R: v, G: v, B: v}
}

// ParseHex parses "#rrggbb" or "#rgb" (leading # optional).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex formats the colour as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// field marks which Style fields were explicitly set.
type field uint8

const (
	fieldColor field = 1 << iota
	fieldBold
	fieldItalic
	fieldFamily
	fieldSize
	fieldSpacing
)

// Style is a small value type describing how a run of text is drawn.
// Only explicitly set fields take part in Merge, so a zero Style is a
// neutral overlay.
type Style struct {
	color   Color
	bold    bool
	italic  bool
	family  Family
	size    float64
	spacing float64
	set     field
}

// New returns an empty Style.
func New() Style {
	return Style{}
}

// WithColor returns a copy with the foreground colour set.
func (s Style) WithColor(c Color) Style {
	s.color = c
	s.set |= fieldColor
	return s
}

// Bold returns a copy with the bold flag set.
func (s Style) Bold() Style {
	s.bold = true
	s.set |= fieldBold
	return s
}

// Italic returns a copy with the italic flag set.
func (s Style) Italic() Style {
	s.italic = true
	s.set |= fieldItalic
	return s
}

// WithFamily returns a copy with the font family set.
func (s Style) WithFamily(f Family) Style {
	s.family = f
	s.set |= fieldFamily
	return s
}

// WithFontSize returns a copy with the font size (points) set.
func (s Style) WithFontSize(size float64) Style {
	s.size = size
	s.set |= fieldSize
	return s
}

// WithLineSpacing returns a copy with the extra line spacing (points) set.
func (s Style) WithLineSpacing(spacing float64) Style {
	s.spacing = spacing
	s.set |= fieldSpacing
	return s
}

// Color returns the foreground colour and whether one was set.
func (s Style) Color() (Color, bool) {
	return s.color, s.set&fieldColor != 0
}

// IsBold reports whether the bold flag is on.
func (s Style) IsBold() bool { return s.bold }

// IsItalic reports whether the italic flag is on.
func (s Style) IsItalic() bool { return s.italic }

// FontFamily returns the family, FamilySans when unset.
func (s Style) FontFamily() Family {
	if s.set&fieldFamily == 0 || s.family == "" {
		return FamilySans
	}
	return s.family
}

// FontSize returns the size in points, or fallback when unset.
func (s Style) FontSize(fallback float64) float64 {
	if s.set&fieldSize == 0 {
		return fallback
	}
	return s.size
}

// LineSpacing returns the extra line spacing, or fallback when unset.
func (s Style) LineSpacing(fallback float64) float64 {
	if s.set&fieldSpacing == 0 {
		return fallback
	}
	return s.spacing
}

// IsZero reports whether no field is set.
func (s Style) IsZero() bool {
	return s.set == 0
}

// Merge overlays o on s: every field explicitly set in o replaces the
// corresponding field of s.
func (s Style) Merge(o Style) Style {
	if o.set&fieldColor != 0 {
		s.color = o.color
	}
	if o.set&fieldBold != 0 {
		s.bold = o.bold
	}
	if o.set&fieldItalic != 0 {
		s.italic = o.italic
	}
	if o.set&fieldFamily != 0 {
		s.family = o.family
	}
	if o.set&fieldSize != 0 {
		s.size = o.size
	}
	if o.set&fieldSpacing != 0 {
		s.spacing = o.spacing
	}
	s.set |= o.set
	return s
}

// Equal reports whether both styles set the same fields to the same values.
func (s Style) Equal(o Style) bool {
	return s == o
}

// String renders the set fields, mostly for test failure messages.
func (s Style) String() string {
	var parts []string
	if c, ok := s.Color(); ok {
		parts = append(parts, "color="+c.Hex())
	}
	if s.set&fieldBold != 0 {
		parts = append(parts, "bold")
	}
	if s.set&fieldItalic != 0 {
		parts = append(parts, "italic")
	}
	if s.set&fieldFamily != 0 {
		parts = append(parts, "family="+string(s.family))
	}
	if s.set&fieldSize != 0 {
		parts = append(parts, "size="+strconv.FormatFloat(s.size, 'g', -1, 64))
	}
	if s.set&fieldSpacing != 0 {
		parts = append(parts, "spacing="+strconv.FormatFloat(s.spacing, 'g', -1, 64))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Run is a contiguous span of text drawn with one Style.
type Run struct {
	Text  string
	Style Style
}

// Package paper describes physical page geometry in PostScript points.
package paper

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Sentinel errors.
var (
	ErrUnknownSize   = errors.New("unknown page size")
	ErrInvalidMargin = errors.New("invalid margin")
)

// Size is a portrait page size in points.
type Size struct {
	Width, Height float64
}

// Named page sizes.
var sizes = map[string]Size{
	"a4":     {Width: 595.28, Height: 841.89},
	"letter": {Width: 612, Height: 792},
	"legal":  {Width: 612, Height: 1008},
}

// DefaultSize is used when no size is configured.
const DefaultSize = "a4"

// Lookup returns the named size, case-insensitively.
func Lookup(name string) (Size, error) {
	s, ok := sizes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Size{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownSize, name, strings.Join(Names(), ", "))
	}
	return s, nil
}

// Names lists the known sizes in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(sizes))
}

// MM converts millimetres to points.
func MM(v float64) float64 {
	return v * 72 / 25.4
}

// Geometry is a page with its margins, all in points.
type Geometry struct {
	Width   float64
	Height  float64
	MarginX float64
	MarginY float64
}

// New builds a geometry from a named size, orientation and margins in
// millimetres.
func New(name string, landscape bool, marginXMM, marginYMM float64) (Geometry, error) {
	s, err := Lookup(name)
	if err != nil {
		return Geometry{}, err
	}
	if landscape {
		s.Width, s.Height = s.Height, s.Width
	}
	g := Geometry{Width: s.Width, Height: s.Height, MarginX: MM(marginXMM), MarginY: MM(marginYMM)}
	if marginXMM < 0 || marginYMM < 0 || g.ContentWidth() <= 0 || g.ContentHeight() <= 0 {
		return Geometry{}, fmt.Errorf("%w: %vmm x %vmm leaves no room on %s", ErrInvalidMargin, marginXMM, marginYMM, name)
	}
	return g, nil
}

// ContentWidth is the width between the side margins.
func (g Geometry) ContentWidth() float64 {
	return g.Width - 2*g.MarginX
}

// ContentHeight is the height between the top and bottom margins.
func (g Geometry) ContentHeight() float64 {
	return g.Height - 2*g.MarginY
}

// Inches converts a point value to inches.
func Inches(pt float64) float64 {
	return pt / 72
}

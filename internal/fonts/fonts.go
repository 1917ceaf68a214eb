// Package fonts maps styles to the embedded Go font family.
package fonts

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/alnah/go-mdlayout/internal/style"
)

// DefaultSize is the font size, in points, of a style without one.
const DefaultSize = 10.0

// Face identifies one of the eight embedded faces.
type Face struct {
	Mono   bool
	Bold   bool
	Italic bool
}

// For returns the face a style is drawn with.
func For(s style.Style) Face {
	return Face{
		Mono:   s.FontFamily() == style.FamilyMono,
		Bold:   s.IsBold(),
		Italic: s.IsItalic(),
	}
}

// All lists every face in a stable order.
func All() []Face {
	var out []Face
	for _, mono := range []bool{false, true} {
		for _, bold := range []bool{false, true} {
			for _, italic := range []bool{false, true} {
				out = append(out, Face{Mono: mono, Bold: bold, Italic: italic})
			}
		}
	}
	return out
}

// Family is the family name used when registering the face.
func (f Face) Family() string {
	if f.Mono {
		return "gomono"
	}
	return "go"
}

// StyleString is the "", "B", "I" or "BI" suffix used by PDF libraries.
func (f Face) StyleString() string {
	s := ""
	if f.Bold {
		s += "B"
	}
	if f.Italic {
		s += "I"
	}
	return s
}

// CSSWeight returns "bold" or "normal".
func (f Face) CSSWeight() string {
	if f.Bold {
		return "bold"
	}
	return "normal"
}

// CSSStyle returns "italic" or "normal".
func (f Face) CSSStyle() string {
	if f.Italic {
		return "italic"
	}
	return "normal"
}

// TTF returns the TrueType data of the face.
func (f Face) TTF() []byte {
	switch f {
	case Face{}:
		return goregular.TTF
	case Face{Bold: true}:
		return gobold.TTF
	case Face{Italic: true}:
		return goitalic.TTF
	case Face{Bold: true, Italic: true}:
		return gobolditalic.TTF
	case Face{Mono: true}:
		return gomono.TTF
	case Face{Mono: true, Bold: true}:
		return gomonobold.TTF
	case Face{Mono: true, Italic: true}:
		return gomonoitalic.TTF
	default:
		return gomonobolditalic.TTF
	}
}

// Size returns the style's font size or DefaultSize.
func Size(s style.Style) float64 {
	return s.FontSize(DefaultSize)
}

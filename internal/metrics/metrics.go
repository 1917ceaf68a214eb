// Package metrics measures text with the embedded Go fonts through
// freetype, in points.
package metrics

import (
	"errors"
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/alnah/go-mdlayout/internal/fonts"
	"github.com/alnah/go-mdlayout/internal/style"
)

// ErrFontLoad indicates an embedded font could not be parsed.
var ErrFontLoad = errors.New("font load failed")

// dpi of 72 makes one pixel one point.
const dpi = 72

type faceKey struct {
	face fonts.Face
	size float64
}

// Measurer implements textflow.Measurer. It is safe for concurrent use.
type Measurer struct {
	fonts map[fonts.Face]*truetype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// New parses the embedded fonts.
func New() (*Measurer, error) {
	m := &Measurer{
		fonts: make(map[fonts.Face]*truetype.Font),
		faces: make(map[faceKey]font.Face),
	}
	for _, f := range fonts.All() {
		ft, err := truetype.Parse(f.TTF())
		if err != nil {
			return nil, fmt.Errorf("%w: %s %s: %v", ErrFontLoad, f.Family(), f.StyleString(), err)
		}
		m.fonts[f] = ft
	}
	return m, nil
}

// MeasureText returns the advance width of text in points.
func (m *Measurer) MeasureText(s style.Style, text string) (float64, error) {
	size := fonts.Size(s)
	if size <= 0 {
		return 0, fmt.Errorf("font size %v: not positive", size)
	}
	key := faceKey{face: fonts.For(s), size: size}

	// font.Face values keep glyph caches and are not goroutine-safe.
	m.mu.Lock()
	defer m.mu.Unlock()
	face, ok := m.faces[key]
	if !ok {
		face = truetype.NewFace(m.fonts[key.face], &truetype.Options{
			Size:    size,
			DPI:     dpi,
			Hinting: font.HintingNone,
		})
		m.faces[key] = face
	}
	return float64(font.MeasureString(face, text)) / 64, nil
}

// MeasureSpace returns the width of a single space.
func (m *Measurer) MeasureSpace(s style.Style) (float64, error) {
	return m.MeasureText(s, " ")
}

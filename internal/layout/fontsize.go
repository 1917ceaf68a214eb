package layout

import "fmt"

// FontSizes maps text roles to sizes in points.
type FontSizes struct {
	Title    float64
	Headings [6]float64
	Text     float64
}

// DefaultFontSizes returns the built-in sizes.
func DefaultFontSizes() FontSizes {
	return FontSizes{
		Title:    24,
		Headings: [6]float64{20, 17, 14, 12, 11, 10},
		Text:     10,
	}
}

// Heading returns the size for a heading level. Levels outside 1..6 are a
// caller bug and panic.
func (f FontSizes) Heading(level int) float64 {
	if level < 1 || level > len(f.Headings) {
		panic(fmt.Sprintf("layout: heading level %d out of range", level))
	}
	return f.Headings[level-1]
}

// Validate checks that every size is positive.
func (f FontSizes) Validate() error {
	if f.Title <= 0 {
		return fmt.Errorf("%w: title %v", ErrInvalidFontSize, f.Title)
	}
	if f.Text <= 0 {
		return fmt.Errorf("%w: text %v", ErrInvalidFontSize, f.Text)
	}
	for i, s := range f.Headings {
		if s <= 0 {
			return fmt.Errorf("%w: h%d %v", ErrInvalidFontSize, i+1, s)
		}
	}
	return nil
}

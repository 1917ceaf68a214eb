package assets

import (
	"fmt"

	"github.com/alnah/go-mdlayout/internal/style"
	"github.com/alnah/go-mdlayout/internal/yamlutil"
)

// Theme maps highlighter class paths ("keyword", "title.function") to
// "#rrggbb" colours.
type Theme struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Colors      map[string]string `yaml:"colors"`
}

// ParseTheme decodes a theme file and checks every colour.
func ParseTheme(data []byte) (*Theme, error) {
	var th Theme
	if err := yamlutil.UnmarshalStrict(data, &th); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	for class, hex := range th.Colors {
		if _, err := style.ParseHex(hex); err != nil {
			return nil, fmt.Errorf("%w: class %q: %v", ErrInvalidTheme, class, err)
		}
	}
	return &th, nil
}

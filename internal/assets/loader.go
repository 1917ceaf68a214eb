package assets

import (
	"fmt"
	"strings"
)

// Built-in asset names.
const (
	DefaultThemeName    = "hljs-light"
	DefaultTemplateName = "page"
	DefaultScriptName   = "highlight"
)

// AssetLoader loads themes, templates and scripts by name.
type AssetLoader interface {
	// LoadTheme loads a colour theme by name (without .yaml extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	LoadTheme(name string) (*Theme, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)

	// LoadScript loads a script by name (without .js extension).
	// Returns ErrScriptNotFound if the script doesn't exist.
	LoadScript(name string) (string, error)
}

// ValidateAssetName rejects empty names and names that contain path
// separators or dots.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

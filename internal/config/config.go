// Package config loads the YAML configuration of the mdlayout command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdlayout/internal/fileutil"
	"github.com/alnah/go-mdlayout/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength    = 200
	MaxSubtitleLength = 200
	MaxNameLength     = 50   // backend, page size, style and theme names
	MaxPathLength     = 4096 // asset directory, highlighter command
)

// Bounds on numeric fields.
const (
	MaxFontSize    = 200.0
	MaxMargin      = 100.0
	MaxLineSpacing = 50.0
	MaxWorkers     = 64
	MaxColumns     = 1000
)

// AppName names the user config directory.
const AppName = "go-mdlayout"

// Config holds everything the command can set from a file.
type Config struct {
	Title     string          `yaml:"title"`
	Subtitle  string          `yaml:"subtitle"`
	FontSize  FontSizeConfig  `yaml:"fontSize"`
	Page      PageConfig      `yaml:"page"`
	Highlight HighlightConfig `yaml:"highlight"`
	Backend   BackendConfig   `yaml:"backend"`
	Assets    AssetsConfig    `yaml:"assets"`
	Workers   int             `yaml:"workers"` // 0 = automatic
}

// FontSizeConfig holds sizes in points.
type FontSizeConfig struct {
	Title float64 `yaml:"title"`
	H1    float64 `yaml:"h1"`
	H2    float64 `yaml:"h2"`
	H3    float64 `yaml:"h3"`
	H4    float64 `yaml:"h4"`
	H5    float64 `yaml:"h5"`
	H6    float64 `yaml:"h6"`
	Text  float64 `yaml:"text"`
}

// Headings returns the h1..h6 sizes in order.
func (f FontSizeConfig) Headings() [6]float64 {
	return [6]float64{f.H1, f.H2, f.H3, f.H4, f.H5, f.H6}
}

// PageConfig defines page geometry. Margins are in millimetres.
type PageConfig struct {
	Size        string       `yaml:"size"` // "a4", "letter", "legal"
	Landscape   bool         `yaml:"landscape"`
	Margin      MarginConfig `yaml:"margin"`
	LineSpacing float64      `yaml:"lineSpacing"` // extra points between body lines
}

// MarginConfig holds horizontal and vertical margins.
type MarginConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// HighlightConfig defines syntax highlighting of code blocks.
type HighlightConfig struct {
	Enabled bool              `yaml:"enabled"`
	Backend string            `yaml:"backend"` // "chroma" or "process"
	Style   string            `yaml:"style"`   // chroma style name
	Command string            `yaml:"command"` // process backend executable
	Args    []string          `yaml:"args"`
	Theme   string            `yaml:"theme"`  // asset theme for the process backend
	Colors  map[string]string `yaml:"colors"` // class path -> "#rrggbb"
}

// BackendConfig selects the renderer.
type BackendConfig struct {
	Name    string        `yaml:"name"` // "pdf", "chrome", "text"
	Timeout time.Duration `yaml:"timeout"`
	Columns int           `yaml:"columns"` // text backend width
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		FontSize: FontSizeConfig{Title: 24, H1: 20, H2: 17, H3: 14, H4: 12, H5: 11, H6: 10, Text: 10},
		Page: PageConfig{
			Size:   "a4",
			Margin: MarginConfig{X: 12, Y: 20},
		},
		Highlight: HighlightConfig{Enabled: true, Backend: "chroma"},
		Backend:   BackendConfig{Name: "pdf", Timeout: 2 * time.Minute, Columns: 80},
	}
}

// Validate checks lengths and numeric bounds. Names such as the page size
// and backend are checked by the converter, which knows the valid sets.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"title", c.Title, MaxTitleLength},
		{"subtitle", c.Subtitle, MaxSubtitleLength},
		{"page.size", c.Page.Size, MaxNameLength},
		{"highlight.backend", c.Highlight.Backend, MaxNameLength},
		{"highlight.style", c.Highlight.Style, MaxNameLength},
		{"highlight.theme", c.Highlight.Theme, MaxNameLength},
		{"highlight.command", c.Highlight.Command, MaxPathLength},
		{"backend.name", c.Backend.Name, MaxNameLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	sizes := map[string]float64{
		"fontSize.title": c.FontSize.Title,
		"fontSize.text":  c.FontSize.Text,
	}
	for i, s := range c.FontSize.Headings() {
		sizes[fmt.Sprintf("fontSize.h%d", i+1)] = s
	}
	for field, v := range sizes {
		if err := validateRange(field, v, 0, MaxFontSize, false); err != nil {
			return err
		}
	}

	if err := validateRange("page.margin.x", c.Page.Margin.X, 0, MaxMargin, true); err != nil {
		return err
	}
	if err := validateRange("page.margin.y", c.Page.Margin.Y, 0, MaxMargin, true); err != nil {
		return err
	}
	if err := validateRange("page.lineSpacing", c.Page.LineSpacing, 0, MaxLineSpacing, true); err != nil {
		return err
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers %d (must be between 0 and %d)", ErrInvalidValue, c.Workers, MaxWorkers)
	}
	if c.Backend.Columns < 0 || c.Backend.Columns > MaxColumns {
		return fmt.Errorf("%w: backend.columns %d (must be between 0 and %d)", ErrInvalidValue, c.Backend.Columns, MaxColumns)
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("%w: backend.timeout %v is negative", ErrInvalidValue, c.Backend.Timeout)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateRange checks lo < v <= hi, or lo <= v <= hi when zeroOK.
func validateRange(field string, v, lo, hi float64, zeroOK bool) error {
	if v < lo || v > hi || (!zeroOK && v == lo) {
		return fmt.Errorf("%w: %s %v (must be between %v and %v)", ErrInvalidValue, field, v, lo, hi)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A value with a path separator or a .yaml/.yml extension is a file path.
// Otherwise, it's searched in the current directory, then in the user
// config directory. Fields missing from the file keep their defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsConfigPath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.LoadFile(configPath, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order.
// Tries extensions .yaml then .yml in the current directory, then in
// the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing search path.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

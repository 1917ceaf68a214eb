package assets

import "errors"

// AssetResolver tries a custom directory first and falls back to the
// embedded assets when an asset is not found there.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath
// uses only embedded assets.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

// LoadTheme loads a theme, custom first.
func (r *AssetResolver) LoadTheme(name string) (*Theme, error) {
	return withFallback(r, func(l AssetLoader) (*Theme, error) { return l.LoadTheme(name) })
}

// LoadTemplate loads a template, custom first.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return withFallback(r, func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

// LoadScript loads a script, custom first.
func (r *AssetResolver) LoadScript(name string) (string, error) {
	return withFallback(r, func(l AssetLoader) (string, error) { return l.LoadScript(name) })
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

func withFallback[T any](r *AssetResolver, load func(AssetLoader) (T, error)) (T, error) {
	if r.custom == nil {
		return load(r.embedded)
	}
	v, err := load(r.custom)
	if err == nil {
		return v, nil
	}
	// Validation and I/O errors are not masked by the embedded copy.
	if !isNotFoundError(err) {
		return v, err
	}
	return load(r.embedded)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrThemeNotFound) ||
		errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, ErrScriptNotFound)
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)

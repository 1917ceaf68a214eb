package mdlayout

import "errors"

// Sentinel errors for library operations.
var (
	ErrNoChapters      = errors.New("input has no chapters")
	ErrUnknownBackend  = errors.New("unknown backend")
	ErrLayout          = errors.New("layout failed")
	ErrRender          = errors.New("rendering failed")
	ErrHighlighter     = errors.New("highlighter setup failed")
	ErrPDFGeneration   = errors.New("PDF generation failed")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
	ErrInvalidAssetDir = errors.New("invalid asset path")
	ErrPoolClosed      = errors.New("converter pool closed")

	// Settings validation errors.
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidMargin   = errors.New("invalid margin")
	ErrInvalidFontSize = errors.New("invalid font size")
	ErrInvalidDepth    = errors.New("invalid chapter depth")
)

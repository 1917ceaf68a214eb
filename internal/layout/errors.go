package layout

import "errors"

// Sentinel errors.
var (
	ErrNoMeasurer      = errors.New("no measurer configured")
	ErrInvalidWidth    = errors.New("invalid width")
	ErrInvalidFontSize = errors.New("invalid font size")
)

package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	mdlayout "github.com/alnah/go-mdlayout"
	"github.com/alnah/go-mdlayout/internal/assets"
	"github.com/alnah/go-mdlayout/internal/config"
	"github.com/alnah/go-mdlayout/internal/dateutil"
)

// Exit codes for the mdlayout command.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBackend = 4 // Browser or highlighter errors
)

// exitCodeFor returns the exit code for an error.
// It uses errors.Is, so callers must wrap with fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, mdlayout.ErrBrowserConnect) ||
		errors.Is(err, mdlayout.ErrPageCreate) ||
		errors.Is(err, mdlayout.ErrPageLoad) ||
		errors.Is(err, mdlayout.ErrPDFGeneration) ||
		errors.Is(err, mdlayout.ErrHighlighter) {
		return ExitBackend
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoMarkdown) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	if errors.Is(err, flag.ErrHelp) ||
		errors.Is(err, errUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrSummary) ||
		errors.Is(err, mdlayout.ErrUnknownBackend) ||
		errors.Is(err, mdlayout.ErrInvalidPageSize) ||
		errors.Is(err, mdlayout.ErrInvalidMargin) ||
		errors.Is(err, mdlayout.ErrInvalidFontSize) ||
		errors.Is(err, mdlayout.ErrInvalidAssetDir) ||
		errors.Is(err, assets.ErrThemeNotFound) {
		return ExitUsage
	}

	return ExitGeneral
}

// Package fileutil holds the small file helpers shared by the converter
// and the CLI: scratch files for the browser and highlighter, and input
// classification.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidTempName is returned for scratch file names that are empty or
// not a bare file name.
var ErrInvalidTempName = errors.New("invalid temp file name")

// TempFile writes content to a new file in the system temp directory whose
// name ends with name, such as "page.html". The returned cleanup removes it.
func TempFile(name, content string) (path string, cleanup func(), err error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, "/\\\x00") {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidTempName, name)
	}

	f, err := os.CreateTemp("", "mdlayout-*-"+name)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path = f.Name()
	cleanup = func() { _ = os.Remove(path) }

	_, err = f.WriteString(content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	return path, cleanup, nil
}

// FileExists reports whether path is an existing non-directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsConfigPath reports whether a --config value names a file directly
// rather than a config to look up: it has a separator or a YAML extension.
func IsConfigPath(s string) bool {
	if strings.ContainsAny(s, "/\\") {
		return true
	}
	switch strings.ToLower(filepath.Ext(s)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// IsMarkdown reports whether path has a .md or .markdown extension.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

package mdlayout

import (
	"fmt"
	"maps"

	"github.com/alnah/go-mdlayout/internal/assets"
	"github.com/alnah/go-mdlayout/internal/fileutil"
	"github.com/alnah/go-mdlayout/internal/highlight"
	"github.com/alnah/go-mdlayout/internal/style"
)

// defaultHighlightCommand runs the embedded highlight.js script.
const defaultHighlightCommand = "node"

// highlighterSetup is the highlighter, its theme and the cleanup of any
// temporary files it needs.
type highlighterSetup struct {
	h       highlight.Highlighter
	theme   *style.Parent
	cleanup func()
}

func newHighlighter(settings HighlightSettings, loader assets.AssetLoader) (*highlighterSetup, error) {
	setup := &highlighterSetup{cleanup: func() {}}
	if !settings.Enabled {
		return setup, nil
	}

	opts := highlight.Options{
		Backend: settings.Backend,
		Style:   settings.Style,
		Command: settings.Command,
		Args:    settings.Args,
	}
	colors := map[string]string{}

	if settings.Backend == highlight.BackendProcess {
		if opts.Command == "" {
			opts.Command = defaultHighlightCommand
		}
		if len(opts.Args) == 0 {
			script, err := loader.LoadScript(assets.DefaultScriptName)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrHighlighter, err)
			}
			path, cleanup, err := fileutil.TempFile("highlight.js", script)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrHighlighter, err)
			}
			opts.Args = []string{path}
			setup.cleanup = cleanup
		}
		if settings.Theme != "" {
			th, err := loader.LoadTheme(settings.Theme)
			if err != nil {
				setup.cleanup()
				return nil, fmt.Errorf("%w: %w", ErrHighlighter, err)
			}
			maps.Copy(colors, th.Colors)
		}
	}
	maps.Copy(colors, settings.Colors)

	h, err := highlight.New(opts)
	if err != nil {
		setup.cleanup()
		return nil, fmt.Errorf("%w: %v", ErrHighlighter, err)
	}
	theme, err := highlight.Theme(h, style.New(), colors)
	if err != nil {
		setup.cleanup()
		return nil, fmt.Errorf("%w: %v", ErrHighlighter, err)
	}
	setup.h = h
	setup.theme = theme
	return setup, nil
}

package main

import (
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// pageFlags holds page layout flags.
type pageFlags struct {
	size      string
	landscape bool
	marginX   float64
	marginY   float64
}

// highlightFlags holds code highlighting flags.
type highlightFlags struct {
	disabled bool
	backend  string
	style    string
	command  string
	theme    string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	config    string
	output    string
	backend   string
	title     string
	subtitle  string
	columns   int
	workers   int
	timeout   time.Duration
	assetPath string
	split     bool
	quiet     bool
	verbose   bool
	page      pageFlags
	highlight highlightFlags

	// set records flags given on the command line, so that zero values can
	// override the config file.
	set map[string]bool
}

func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: a4, letter, legal")
	fs.BoolVar(&f.landscape, "landscape", false, "landscape orientation")
	fs.Float64Var(&f.marginX, "margin-x", 0, "left and right margin in mm")
	fs.Float64Var(&f.marginY, "margin-y", 0, "top and bottom margin in mm")
}

func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.BoolVar(&f.disabled, "no-highlight", false, "render code blocks without colours")
	fs.StringVar(&f.backend, "highlighter", "", "highlighter: chroma, process")
	fs.StringVar(&f.style, "style", "", "chroma style name")
	fs.StringVar(&f.command, "highlight-cmd", "", "external highlighter command")
	fs.StringVar(&f.theme, "theme", "", "highlight theme name (process highlighter)")
}

// parseConvertFlags parses args and returns the flags and positional
// arguments.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{set: map[string]bool{}}
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.output, "output", "o", "", "output file, directory with --split, or - for stdout")
	fs.StringVarP(&f.backend, "backend", "b", "", "backend: pdf, chrome, text")
	fs.StringVar(&f.title, "title", "", "book title (default: first heading)")
	fs.StringVar(&f.subtitle, "subtitle", "", "title page subtitle; {date} and {date:FORMAT} expand")
	fs.IntVar(&f.columns, "columns", 0, "text backend width in cells")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "conversion timeout, e.g. 30s or 2m")
	fs.StringVar(&f.assetPath, "assets", "", "directory overriding built-in themes, templates and scripts")
	fs.BoolVar(&f.split, "split", false, "convert each input to its own book")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log conversion steps")
	addPageFlags(fs, &f.page)
	addHighlightFlags(fs, &f.highlight)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, fs.Args(), nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	flag "github.com/spf13/pflag"

	mdlayout "github.com/alnah/go-mdlayout"
	"github.com/alnah/go-mdlayout/internal/assets"
	"github.com/alnah/go-mdlayout/internal/config"
	"github.com/alnah/go-mdlayout/internal/dateutil"
	"github.com/alnah/go-mdlayout/internal/fileutil"
	"github.com/alnah/go-mdlayout/internal/hints"
	"github.com/alnah/go-mdlayout/internal/paper"
)

// Sentinel errors for CLI operations.
var (
	ErrWriteOutput = errors.New("failed to write output")

	errUsage = errors.New("usage")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// stdoutPath selects standard output with -o.
const stdoutPath = "-"

// bookResult holds the outcome of one book conversion.
type bookResult struct {
	Input    string
	Output   string // empty when written to stdout
	Chapters int
	Err      error
	Duration time.Duration
}

// runConvert parses flags, resolves settings and converts the inputs.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, inputs, err := parseConvertFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printConvertUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if len(inputs) == 0 {
		return ErrNoInput
	}
	if flags.split && flags.output == stdoutPath {
		return fmt.Errorf("%w: --split writes files, -o must be a directory", errUsage)
	}

	envCfg := loadEnvConfig(env.Getenv)
	if !flags.quiet {
		warnUnknownEnvVars(env.Stderr, environ())
	}

	cfg, err := loadConfig(flags, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	now := env.Now()
	if cfg.Title, err = dateutil.Expand(cfg.Title, now); err != nil {
		return fmt.Errorf("title: %w", err)
	}
	if cfg.Subtitle, err = dateutil.Expand(cfg.Subtitle, now); err != nil {
		return fmt.Errorf("subtitle: %w", err)
	}

	logger := newLogger(env.Stderr, flags.quiet, flags.verbose)
	toStdout := !flags.split && (flags.output == stdoutPath ||
		(flags.output == "" && strings.EqualFold(cfg.Backend.Name, mdlayout.BackendText)))
	textOut := io.Discard
	if toStdout {
		textOut = env.Stdout
	}
	opts := converterOptions(cfg, logger, textOut)

	var results []bookResult
	if flags.split {
		results = convertSplit(ctx, inputs, flags.output, cfg, opts)
	} else {
		out := flags.output
		if toStdout {
			out = stdoutPath
		}
		results = []bookResult{convertBook(ctx, inputs, out, cfg, opts, env.Stdout)}
	}
	err = reportResults(results, flags.quiet, flags.verbose, env)
	if errors.Is(err, mdlayout.ErrHighlighter) && !errors.Is(err, assets.ErrThemeNotFound) {
		command := cfg.Highlight.Command
		if command == "" && strings.EqualFold(cfg.Highlight.Backend, "process") {
			command = "node"
		}
		return withHint(err, hints.ForHighlighter(command))
	}
	return err
}

// loadConfig loads the file named by --config or MDLAYOUT_CONFIG, or the
// defaults when neither is set.
func loadConfig(flags *convertFlags, envCfg *envConfig) (*config.Config, error) {
	name := flags.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if errors.Is(err, config.ErrConfigNotFound) {
		searched := []string{name}
		if !fileutil.IsConfigPath(name) {
			searched = config.SearchPaths(name)
		}
		return nil, withHint(fmt.Errorf("loading config: %w", err), hints.ForConfigNotFound(searched))
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags applies explicitly set flags over cfg.
func mergeFlags(f *convertFlags, cfg *config.Config) {
	if f.set["backend"] {
		cfg.Backend.Name = f.backend
	}
	if f.set["title"] {
		cfg.Title = f.title
	}
	if f.set["subtitle"] {
		cfg.Subtitle = f.subtitle
	}
	if f.set["columns"] {
		cfg.Backend.Columns = f.columns
	}
	if f.set["workers"] {
		cfg.Workers = f.workers
	}
	if f.set["timeout"] {
		cfg.Backend.Timeout = f.timeout
	}
	if f.set["assets"] {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.set["page-size"] {
		cfg.Page.Size = f.page.size
	}
	if f.set["landscape"] {
		cfg.Page.Landscape = f.page.landscape
	}
	if f.set["margin-x"] {
		cfg.Page.Margin.X = f.page.marginX
	}
	if f.set["margin-y"] {
		cfg.Page.Margin.Y = f.page.marginY
	}
	if f.set["no-highlight"] {
		cfg.Highlight.Enabled = !f.highlight.disabled
	}
	if f.set["highlighter"] {
		cfg.Highlight.Backend = f.highlight.backend
	}
	if f.set["style"] {
		cfg.Highlight.Style = f.highlight.style
	}
	if f.set["highlight-cmd"] {
		cfg.Highlight.Command = f.highlight.command
	}
	if f.set["theme"] {
		cfg.Highlight.Theme = f.highlight.theme
	}
}

// converterOptions maps the resolved config to library options.
func converterOptions(cfg *config.Config, logger *slog.Logger, textOut io.Writer) []mdlayout.Option {
	opts := []mdlayout.Option{
		mdlayout.WithBackend(cfg.Backend.Name),
		mdlayout.WithPage(mdlayout.PageSettings{
			Size:      cfg.Page.Size,
			Landscape: cfg.Page.Landscape,
			MarginX:   cfg.Page.Margin.X,
			MarginY:   cfg.Page.Margin.Y,
		}),
		mdlayout.WithFontSizes(mdlayout.FontSizes{
			Title:    cfg.FontSize.Title,
			Headings: cfg.FontSize.Headings(),
			Text:     cfg.FontSize.Text,
		}),
		mdlayout.WithLineSpacing(cfg.Page.LineSpacing),
		mdlayout.WithHighlight(mdlayout.HighlightSettings{
			Enabled: cfg.Highlight.Enabled,
			Backend: cfg.Highlight.Backend,
			Style:   cfg.Highlight.Style,
			Command: cfg.Highlight.Command,
			Args:    cfg.Highlight.Args,
			Theme:   cfg.Highlight.Theme,
			Colors:  cfg.Highlight.Colors,
		}),
		mdlayout.WithAssetPath(cfg.Assets.BasePath),
		mdlayout.WithColumns(cfg.Backend.Columns),
		mdlayout.WithWorkers(cfg.Workers),
		mdlayout.WithTextOutput(textOut),
		mdlayout.WithLogger(logger),
	}
	if cfg.Backend.Timeout > 0 {
		opts = append(opts, mdlayout.WithTimeout(cfg.Backend.Timeout))
	}
	return opts
}

// convertBook converts every input as chapters of one book. An output of
// "-" writes to stdout, an empty output derives the path from the first
// input.
func convertBook(ctx context.Context, inputs []string, output string, cfg *config.Config, opts []mdlayout.Option, stdout io.Writer) bookResult {
	start := time.Now()
	res := bookResult{Input: strings.Join(inputs, ", ")}

	var chapters []mdlayout.Chapter
	for _, in := range inputs {
		chs, err := discoverChapters(in)
		if err != nil {
			res.Err = err
			return res
		}
		chapters = append(chapters, chs...)
	}

	conv, err := mdlayout.NewConverter(opts...)
	if err != nil {
		res.Err = err
		return res
	}
	defer conv.Close()

	out, err := conv.Convert(ctx, mdlayout.Input{Title: cfg.Title, Subtitle: cfg.Subtitle, Chapters: chapters})
	if err != nil {
		res.Err = err
		return res
	}
	res.Chapters = out.Chapters

	switch output {
	case stdoutPath:
		if _, err := stdout.Write(out.Output); err != nil {
			res.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	case "":
		res.Output = defaultOutputPath(inputs[0], out.Extension())
		res.Err = writeOutput(res.Output, out.Output)
	default:
		res.Output = output
		res.Err = writeOutput(res.Output, out.Output)
	}
	res.Duration = time.Since(start)
	return res
}

// convertSplit converts each input to its own book, sharing converters
// through a pool. Outputs go to outDir, or next to each input.
func convertSplit(ctx context.Context, inputs []string, outDir string, cfg *config.Config, opts []mdlayout.Option) []bookResult {
	pool := mdlayout.NewConverterPool(mdlayout.ResolvePoolSize(cfg.Workers), opts...)
	defer pool.Close()

	results := make([]bookResult, len(inputs))
	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Go(func() {
			results[i] = convertOne(ctx, pool, in, outDir, cfg)
		})
	}
	wg.Wait()
	return results
}

func convertOne(ctx context.Context, pool *mdlayout.ConverterPool, input, outDir string, cfg *config.Config) bookResult {
	start := time.Now()
	res := bookResult{Input: input}

	chapters, err := discoverChapters(input)
	if err != nil {
		res.Err = err
		return res
	}

	conv, err := pool.Acquire(ctx)
	if err != nil {
		res.Err = err
		return res
	}
	defer pool.Release(conv)

	out, err := conv.Convert(ctx, mdlayout.Input{Title: cfg.Title, Subtitle: cfg.Subtitle, Chapters: chapters})
	if err != nil {
		res.Err = err
		return res
	}
	res.Chapters = out.Chapters
	res.Output = defaultOutputPath(input, out.Extension())
	if outDir != "" {
		res.Output = filepath.Join(outDir, filepath.Base(res.Output))
	}
	res.Err = writeOutput(res.Output, out.Output)
	res.Duration = time.Since(start)
	return res
}

// defaultOutputPath replaces a file's extension, or names the output after
// a directory.
func defaultOutputPath(input, ext string) string {
	clean := filepath.Clean(input)
	if fileutil.IsMarkdown(clean) {
		return strings.TrimSuffix(clean, filepath.Ext(clean)) + ext
	}
	base := filepath.Base(clean)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		abs, err := filepath.Abs(clean)
		if err != nil || filepath.Base(abs) == string(filepath.Separator) {
			return "book" + ext
		}
		return filepath.Base(abs) + ext
	}
	return clean + ext
}

// writeOutput creates parent directories and writes data.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil { // #nosec G306 -- output is meant to be shared
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// reportResults prints one line per book and returns the first failure.
// Failures are always printed; successes are silent with quiet.
func reportResults(results []bookResult, quiet, verbose bool, env *Environment) error {
	var firstErr error
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = r.Err
			}
			if len(results) > 1 {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Input, r.Err)
			}
			continue
		}
		if quiet || r.Output == "" {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d chapters, %v)\n", r.Input, r.Output, r.Chapters, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.Output)
		}
	}
	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}
	if len(results) > 1 && firstErr != nil {
		return fmt.Errorf("%d of %d books failed: %w", failed, len(results), firstErr)
	}
	return firstErr
}

// newLogger writes text records to w. Verbose enables debug records,
// quiet keeps only errors.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// hintedError carries a hint computed where the error was raised.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() }
func (e *hintedError) Unwrap() error { return e.err }

func withHint(err error, hint string) error {
	if hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var he *hintedError
	if errors.As(err, &he) {
		return he.hint
	}
	switch {
	case errors.Is(err, mdlayout.ErrBrowserConnect),
		errors.Is(err, mdlayout.ErrPageCreate),
		errors.Is(err, mdlayout.ErrPageLoad):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, mdlayout.ErrInvalidPageSize):
		return hints.ForPageSize(paper.Names())
	case errors.Is(err, assets.ErrThemeNotFound):
		return hints.ForThemeNotFound(assets.ThemeNames())
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

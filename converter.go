package mdlayout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-mdlayout/internal/assets"
	"github.com/alnah/go-mdlayout/internal/layout"
	"github.com/alnah/go-mdlayout/internal/pipeline"
)

// Converter turns a set of Markdown chapters into a laid out document.
// Create with NewConverter, call Convert, and Close when done. Convert may
// be called concurrently.
type Converter struct {
	cfg         converterConfig
	backend     backend
	parser      *pipeline.Parser
	layout      *layout.Converter
	highlighter *highlighterSetup
}

// NewConverter creates a Converter. Settings are validated here so that
// Convert only fails on input or rendering problems.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.page.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.fontSizes.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFontSize, err)
	}

	loader, err := assets.NewAssetResolver(cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetDir, err)
	}

	be, err := newBackend(&cfg, loader)
	if err != nil {
		return nil, err
	}
	hl, err := newHighlighter(cfg.highlight, loader)
	if err != nil {
		_ = be.Close()
		return nil, err
	}

	indent, padding := be.Spacing()
	layoutOpts := []layout.Option{
		layout.WithFontSizes(cfg.fontSizes),
		layout.WithLogger(cfg.logger),
		layout.WithListIndent(indent),
		layout.WithCellPadding(padding),
		layout.WithLineSpacing(cfg.lineSpacing),
	}
	if hl.h != nil {
		layoutOpts = append(layoutOpts, layout.WithHighlighter(hl.h, hl.theme))
	}

	c := &Converter{
		cfg:         cfg,
		backend:     be,
		parser:      pipeline.NewParser(),
		layout:      layout.New(be, be.ContentWidth(), layoutOpts...),
		highlighter: hl,
	}
	if err := c.layout.Validate(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%w: %v", ErrLayout, err)
	}
	cfg.logger.Debug("converter ready",
		slog.String("backend", normalizeBackend(cfg.backend)),
		slog.Float64("width", be.ContentWidth()),
		slog.Bool("custom_assets", loader.HasCustomLoader()),
		slog.Bool("highlight", hl.h != nil))
	return c, nil
}

// Convert parses and lays out every chapter, then renders the document.
// Chapters are processed concurrently; the output keeps their order.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	start := time.Now()
	chapters, title, err := c.chapters(ctx, input.Chapters)
	if err != nil {
		return nil, err
	}
	if input.Title != "" {
		title = input.Title
	}

	contents, err := c.layout.Contents(chapters)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayout, err)
	}
	doc := &layout.Document{
		Title:    title,
		Subtitle: input.Subtitle,
		Contents: contents,
		Chapters: chapters,
	}
	c.cfg.logger.Debug("layout complete",
		slog.Int("chapters", len(chapters)),
		slog.Duration("elapsed", time.Since(start)))

	out, err := c.backend.Render(ctx, doc)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	c.cfg.logger.Debug("render complete",
		slog.String("backend", normalizeBackend(c.cfg.backend)),
		slog.Int("bytes", len(out)),
		slog.Duration("elapsed", time.Since(start)))

	return &Result{
		Output:   out,
		Backend:  normalizeBackend(c.cfg.backend),
		Title:    title,
		Chapters: len(chapters),
	}, nil
}

// chapters converts every source concurrently. A chapter without a name
// takes its first heading. The returned title is the first heading of the
// first chapter.
func (c *Converter) chapters(ctx context.Context, sources []Chapter) ([]layout.Chapter, string, error) {
	out := make([]layout.Chapter, len(sources))
	titles := make([]string, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ResolvePoolSize(c.cfg.workers))
	for i, src := range sources {
		g.Go(func() error {
			nodes, err := c.parser.Parse(gctx, src.Markdown)
			if err != nil {
				return fmt.Errorf("chapter %q: %w", src.Name, err)
			}
			blocks, err := c.layout.Convert(gctx, nodes)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				return fmt.Errorf("%w: chapter %q: %v", ErrLayout, src.Name, err)
			}
			titles[i] = pipeline.FirstHeading(nodes)
			name := strings.TrimSpace(src.Name)
			if name == "" {
				name = titles[i]
			}
			if name == "" {
				name = fmt.Sprintf("Chapter %d", i+1)
			}
			out[i] = layout.Chapter{Name: name, Depth: src.Depth, Blocks: blocks}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, "", err
	}
	return out, titles[0], nil
}

// Close releases backend resources and temporary files.
func (c *Converter) Close() error {
	if c.highlighter != nil {
		c.highlighter.cleanup()
	}
	if c.backend != nil {
		return c.backend.Close()
	}
	return nil
}

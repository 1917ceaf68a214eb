package mdlayout

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mdlayout/internal/fileutil"
	"github.com/alnah/go-mdlayout/internal/htmlout"
	"github.com/alnah/go-mdlayout/internal/layout"
	"github.com/alnah/go-mdlayout/internal/metrics"
	"github.com/alnah/go-mdlayout/internal/paper"
	"github.com/alnah/go-mdlayout/internal/process"
	"github.com/alnah/go-mdlayout/internal/style"
)

// pdfConverter abstracts HTML to PDF printing to allow different browsers.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts printing an HTML file, to test without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
}

// Compile-time interface checks
var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
	_ backend      = (*chromeBackend)(nil)
)

// pdfOptions holds the page setup passed to the browser.
type pdfOptions struct {
	Geometry    paper.Geometry
	PageNumbers bool
}

// rodRenderer implements pdfRenderer using go-rod.
// Rod downloads Chromium on first run if none is found. One browser is
// shared by concurrent renders; mu guards its launch and shutdown.
type rodRenderer struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New()
	// Pre-installed browser (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	// The sandbox is unavailable in most CI and container setups.
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	return browser, nil
}

// kill removes the browser process tree left by the launcher. Callers
// hold mu.
func (r *rodRenderer) kill() {
	if r.launcher == nil {
		return
	}
	if pid := r.launcher.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	r.launcher.Kill()
	r.launcher = nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.kill()
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdfBuf, nil
}

// buildPDFOptions converts the page geometry to Chrome's print settings.
// The page template's @page rule uses the same values.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	geo := opts.Geometry
	pdfOpts := &proto.PagePrintToPDF{
		PaperWidth:        floatPtr(paper.Inches(geo.Width)),
		PaperHeight:       floatPtr(paper.Inches(geo.Height)),
		MarginTop:         floatPtr(paper.Inches(geo.MarginY)),
		MarginBottom:      floatPtr(paper.Inches(geo.MarginY)),
		MarginLeft:        floatPtr(paper.Inches(geo.MarginX)),
		MarginRight:       floatPtr(paper.Inches(geo.MarginX)),
		PrintBackground:   true,
		PreferCSSPageSize: true,
	}
	if opts.PageNumbers {
		pdfOpts.DisplayHeaderFooter = true
		pdfOpts.HeaderTemplate = "<span></span>"
		pdfOpts.FooterTemplate = buildFooterTemplate(geo)
	}
	return pdfOpts
}

// buildFooterTemplate puts the page number in the right margin area.
func buildFooterTemplate(geo paper.Geometry) string {
	return fmt.Sprintf(`<div style="font-size: 8px; color: #808080; width: 100%%; text-align: right; padding: 0 %.2fin;"><span class="pageNumber"></span></div>`,
		paper.Inches(geo.MarginX))
}

func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter prints HTML to PDF using headless Chrome via go-rod.
type rodConverter struct {
	renderer pdfRenderer
}

func newRodConverter(timeout time.Duration) *rodConverter {
	return &rodConverter{renderer: newRodRenderer(timeout)}
}

// ToPDF writes the HTML to a temporary file and prints it.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.TempFile("page.html", htmlContent)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if closer, ok := c.renderer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// chromeBackend measures with the embedded fonts and prints the HTML
// rendering of the layout.
type chromeBackend struct {
	measure *metrics.Measurer
	html    *htmlout.Writer
	pdf     pdfConverter
	geo     paper.Geometry
}

func newChromeBackend(geo paper.Geometry, sizes layout.FontSizes, pageTemplate string, pdf pdfConverter) (*chromeBackend, error) {
	m, err := metrics.New()
	if err != nil {
		return nil, err
	}
	w, err := htmlout.New(pageTemplate, geo, sizes)
	if err != nil {
		return nil, err
	}
	return &chromeBackend{measure: m, html: w, pdf: pdf, geo: geo}, nil
}

func (b *chromeBackend) MeasureText(s style.Style, text string) (float64, error) {
	return b.measure.MeasureText(s, text)
}

func (b *chromeBackend) MeasureSpace(s style.Style) (float64, error) {
	return b.measure.MeasureSpace(s)
}

func (b *chromeBackend) ContentWidth() float64 {
	return b.geo.ContentWidth()
}

func (b *chromeBackend) Spacing() (listIndent, cellPadding float64) {
	return htmlout.ListIndent, htmlout.CellPadding
}

func (b *chromeBackend) Render(ctx context.Context, doc *layout.Document) ([]byte, error) {
	html, err := b.html.Render(doc)
	if err != nil {
		return nil, err
	}
	return b.pdf.ToPDF(ctx, html, &pdfOptions{Geometry: b.geo, PageNumbers: true})
}

func (b *chromeBackend) Close() error {
	return b.pdf.Close()
}

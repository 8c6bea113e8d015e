package sheet2pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-sheet2pdf/internal/fileutil"
)

// Renderer turns built HTML into final output bytes. Backends decide the
// format; the orchestrator writes the bytes to the output path.
type Renderer interface {
	Render(ctx context.Context, htmlContent string) ([]byte, error)
	Close() error
}

// Compile-time interface checks.
var (
	_ Renderer = (*RodRenderer)(nil)
	_ Renderer = (*HTMLRenderer)(nil)
)

// A4 page dimensions in inches; margins are configured in points.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	pointsPerInch     = 72
)

// RodRenderer renders HTML to PDF with headless Chrome via go-rod.
// Rod downloads Chromium on first run if no browser is found.
type RodRenderer struct {
	browser *rod.Browser
	page    PageSettings
	timeout time.Duration
}

// NewRodRenderer creates a renderer; the browser connects lazily on the
// first render.
func NewRodRenderer(page PageSettings, timeout time.Duration) *RodRenderer {
	return &RodRenderer{page: page, timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *RodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use a pre-installed browser when specified (containerized environments).
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Render writes the HTML to a temp file, opens it in Chrome, and prints it
// to PDF with A4 paper and the configured margins.
func (r *RodRenderer) Render(ctx context.Context, htmlContent string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
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

	reader, err := page.PDF(r.buildPDFOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBytes, nil
}

// buildPDFOptions maps page settings onto Chrome's print options.
// printBackground is mandatory: scheme backgrounds are page backgrounds.
func (r *RodRenderer) buildPDFOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(float64(r.page.MarginTop) / pointsPerInch),
		MarginBottom:    floatPtr(float64(r.page.MarginBottom) / pointsPerInch),
		MarginLeft:      floatPtr(float64(r.page.MarginLeft) / pointsPerInch),
		MarginRight:     floatPtr(float64(r.page.MarginRight) / pointsPerInch),
		PrintBackground: true,
	}
}

// Close releases browser resources.
func (r *RodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// HTMLRenderer passes the built HTML through unchanged, for .html outputs
// and for debugging the layout without a browser.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render returns the HTML bytes as-is.
func (h *HTMLRenderer) Render(ctx context.Context, htmlContent string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(htmlContent), nil
}

// Close is a no-op.
func (h *HTMLRenderer) Close() error { return nil }

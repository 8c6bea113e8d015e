package sheet2pdf

import (
	"context"
	"errors"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestHTMLRenderer - Passthrough backend
// ---------------------------------------------------------------------------

func TestHTMLRenderer(t *testing.T) {
	t.Parallel()

	renderer := NewHTMLRenderer()

	t.Run("returns HTML unchanged", func(t *testing.T) {
		t.Parallel()

		html := "<html><body>Catálogo</body></html>"
		out, err := renderer.Render(context.Background(), html)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if string(out) != html {
			t.Errorf("Render() = %q, want input unchanged", out)
		}
	})

	t.Run("honors cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := renderer.Render(ctx, "<html></html>")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})

	t.Run("close is a no-op", func(t *testing.T) {
		t.Parallel()

		if err := renderer.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRodRenderer_PDFOptions - Margin conversion to inches
// ---------------------------------------------------------------------------

func TestRodRenderer_PDFOptions(t *testing.T) {
	t.Parallel()

	renderer := NewRodRenderer(PageSettings{
		MarginTop:    72,
		MarginBottom: 36,
		MarginLeft:   0,
		MarginRight:  144,
	}, time.Minute)

	opts := renderer.buildPDFOptions()

	if *opts.PaperWidth != paperWidthInches || *opts.PaperHeight != paperHeightInches {
		t.Errorf("paper = %vx%v, want A4 %vx%v",
			*opts.PaperWidth, *opts.PaperHeight, paperWidthInches, paperHeightInches)
	}
	if *opts.MarginTop != 1.0 {
		t.Errorf("MarginTop = %v inches, want 1.0", *opts.MarginTop)
	}
	if *opts.MarginBottom != 0.5 {
		t.Errorf("MarginBottom = %v inches, want 0.5", *opts.MarginBottom)
	}
	if *opts.MarginLeft != 0 {
		t.Errorf("MarginLeft = %v inches, want 0", *opts.MarginLeft)
	}
	if *opts.MarginRight != 2.0 {
		t.Errorf("MarginRight = %v inches, want 2.0", *opts.MarginRight)
	}
	if !opts.PrintBackground {
		t.Error("PrintBackground must be enabled for scheme backgrounds")
	}
}

// ---------------------------------------------------------------------------
// TestRodRenderer_Cancelled - Cancellation before any browser work
// ---------------------------------------------------------------------------

func TestRodRenderer_Cancelled(t *testing.T) {
	t.Parallel()

	renderer := NewRodRenderer(DefaultPageSettings(), time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := renderer.Render(ctx, "<html></html>")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestRodRenderer_CloseIdle - Close without a connected browser
// ---------------------------------------------------------------------------

func TestRodRenderer_CloseIdle(t *testing.T) {
	t.Parallel()

	renderer := NewRodRenderer(DefaultPageSettings(), time.Minute)
	if err := renderer.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

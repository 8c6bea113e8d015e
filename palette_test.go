package sheet2pdf_test

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	sheet2pdf "github.com/alnah/go-sheet2pdf"
)

// writeTestLogo renders a PNG where the top three quarters are one color and
// the bottom quarter another, so dominance ordering is unambiguous.
func writeTestLogo(t *testing.T, major, minor color.RGBA) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		c := major
		if y >= 48 {
			c = minor
		}
		for x := 0; x < 64; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating logo: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding logo: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestQuantizingExtractor_Dominant - Prominence-ordered palette
// ---------------------------------------------------------------------------

func TestQuantizingExtractor_Dominant(t *testing.T) {
	t.Parallel()

	extractor := sheet2pdf.NewQuantizingExtractor()

	t.Run("majority color comes first", func(t *testing.T) {
		t.Parallel()

		path := writeTestLogo(t,
			color.RGBA{R: 0xF2, G: 0x8E, B: 0x30, A: 255},
			color.RGBA{G: 0xA7, B: 0x9D, A: 255},
		)

		palette, err := extractor.Dominant(path, 6)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(palette) != 2 {
			t.Fatalf("len(palette) = %d, want 2", len(palette))
		}
		if palette[0] != (sheet2pdf.RGB{R: 0xF2, G: 0x8E, B: 0x30}) {
			t.Errorf("palette[0] = %v, want the majority color", palette[0])
		}
		if palette[1] != (sheet2pdf.RGB{G: 0xA7, B: 0x9D}) {
			t.Errorf("palette[1] = %v, want the minority color", palette[1])
		}
	})

	t.Run("maxColors truncates the palette", func(t *testing.T) {
		t.Parallel()

		path := writeTestLogo(t,
			color.RGBA{R: 255, A: 255},
			color.RGBA{B: 255, A: 255},
		)

		palette, err := extractor.Dominant(path, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(palette) != 1 {
			t.Fatalf("len(palette) = %d, want 1", len(palette))
		}
		if palette[0] != (sheet2pdf.RGB{R: 255}) {
			t.Errorf("palette[0] = %v, want red", palette[0])
		}
	})

	t.Run("zero maxColors returns nothing", func(t *testing.T) {
		t.Parallel()

		path := writeTestLogo(t,
			color.RGBA{R: 255, A: 255},
			color.RGBA{B: 255, A: 255},
		)

		palette, err := extractor.Dominant(path, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if palette != nil {
			t.Errorf("palette = %v, want nil", palette)
		}
	})

	t.Run("missing file fails soft", func(t *testing.T) {
		t.Parallel()

		_, err := extractor.Dominant("/nonexistent/logo.png", 6)
		if !errors.Is(err, sheet2pdf.ErrPaletteExtraction) {
			t.Errorf("error = %v, want ErrPaletteExtraction", err)
		}
	})

	t.Run("non-image file fails soft", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "logo.png")
		if err := os.WriteFile(path, []byte("not an image"), 0o600); err != nil {
			t.Fatalf("writing file: %v", err)
		}

		_, err := extractor.Dominant(path, 6)
		if !errors.Is(err, sheet2pdf.ErrPaletteExtraction) {
			t.Errorf("error = %v, want ErrPaletteExtraction", err)
		}
	})

	t.Run("fully transparent image fails soft", func(t *testing.T) {
		t.Parallel()

		img := image.NewRGBA(image.Rect(0, 0, 16, 16))
		path := filepath.Join(t.TempDir(), "transparent.png")
		f, err := os.Create(path)
		if err != nil {
			t.Fatalf("creating file: %v", err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatalf("encoding: %v", err)
		}
		f.Close()

		_, err = extractor.Dominant(path, 6)
		if !errors.Is(err, sheet2pdf.ErrPaletteExtraction) {
			t.Errorf("error = %v, want ErrPaletteExtraction", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestSchemeResolver_LogoPalette - Logo colors drive derived schemes
// ---------------------------------------------------------------------------

func TestSchemeResolver_LogoPalette(t *testing.T) {
	t.Parallel()

	path := writeTestLogo(t,
		color.RGBA{R: 0xF2, G: 0x8E, B: 0x30, A: 255},
		color.RGBA{G: 0xA7, B: 0x9D, A: 255},
	)

	resolver := sheet2pdf.NewSchemeResolver(sheet2pdf.NewQuantizingExtractor(), nil)
	schemes := resolver.Resolve(path)

	if len(schemes) != 4 {
		t.Fatalf("len(schemes) = %d, want 4 derived schemes", len(schemes))
	}
	if _, ok := schemes["gradient"]; !ok {
		t.Error("derived set must include the gradient scheme")
	}
}

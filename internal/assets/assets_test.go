package assets_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-sheet2pdf/internal/assets"
)

// ---------------------------------------------------------------------------
// TestValidateAssetName - Name validation
// ---------------------------------------------------------------------------

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		assetName string
		wantErr   bool
	}{
		{
			name:      "bare identifier",
			assetName: "catalog",
		},
		{
			name:      "hyphenated identifier",
			assetName: "dark-mode",
		},
		{
			name:      "empty name",
			assetName: "",
			wantErr:   true,
		},
		{
			name:      "path traversal",
			assetName: "../secrets",
			wantErr:   true,
		},
		{
			name:      "dotted name",
			assetName: "catalog.css",
			wantErr:   true,
		},
		{
			name:      "backslash",
			assetName: "a\\b",
			wantErr:   true,
		},
		{
			name:      "null byte",
			assetName: "catalog\x00",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := assets.ValidateAssetName(tt.assetName)
			if tt.wantErr && !errors.Is(err, assets.ErrInvalidAssetName) {
				t.Errorf("error = %v, want ErrInvalidAssetName", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEmbeddedLoader_LoadStyle - Embedded stylesheet
// ---------------------------------------------------------------------------

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := assets.NewEmbeddedLoader()

	t.Run("catalog style loads", func(t *testing.T) {
		t.Parallel()

		css, err := loader.LoadStyle(assets.DefaultStyleName)
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		// The literals the scheme substitutions target must be present.
		for _, want := range []string{
			"background-color: #fff;",
			"color: #e74c3c;",
			".produto",
			".filler",
			".highlight",
		} {
			if !strings.Contains(css, want) {
				t.Errorf("stylesheet missing %q", want)
			}
		}
	})

	t.Run("unknown style", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadStyle("nonexistent")
		if !errors.Is(err, assets.ErrStyleNotFound) {
			t.Errorf("error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadStyle("../catalog")
		if !errors.Is(err, assets.ErrInvalidAssetName) {
			t.Errorf("error = %v, want ErrInvalidAssetName", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestEmbeddedLoader_LoadTemplate - Embedded templates
// ---------------------------------------------------------------------------

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := assets.NewEmbeddedLoader()

	t.Run("grid template loads", func(t *testing.T) {
		t.Parallel()

		tmpl, err := loader.LoadTemplate(assets.GridTemplateName)
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		for _, want := range []string{"{{range .Pages}}", ".Filler", "</html>"} {
			if !strings.Contains(tmpl, want) {
				t.Errorf("grid template missing %q", want)
			}
		}
	})

	t.Run("simple template loads", func(t *testing.T) {
		t.Parallel()

		tmpl, err := loader.LoadTemplate(assets.SimpleTemplateName)
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		if !strings.Contains(tmpl, "{{range .Lines}}") {
			t.Error("simple template missing the lines range")
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplate("nonexistent")
		if !errors.Is(err, assets.ErrTemplateNotFound) {
			t.Errorf("error = %v, want ErrTemplateNotFound", err)
		}
	})
}

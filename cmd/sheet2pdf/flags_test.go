package main

// Notes:
// - parseFlags: we test short/long forms, boolean flags, value flags, and
//   the positional spreadsheet ID.
// - We don't test pflag.Parse() internals (library responsibility).

import (
	"testing"
)

// ---------------------------------------------------------------------------
// TestParseFlags - CLI flag parsing
// ---------------------------------------------------------------------------

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		args            []string
		wantOutput      string
		wantSheetName   string
		wantMode        string
		wantTimeout     string
		wantConfig      string
		wantScheme      string
		wantLogo        string
		wantIntro       string
		wantColumns     int
		wantRowsPerPage int
		wantMargin      int
		wantNoImages    bool
		wantListSchemes bool
		wantVersion     bool
		wantQuiet       bool
		wantVerbose     bool
		wantPositional  []string
		wantErr         bool
	}{
		{
			name:           "no args",
			args:           []string{},
			wantPositional: []string{},
		},
		{
			name:           "spreadsheet id only",
			args:           []string{"sheet-abc123"},
			wantPositional: []string{"sheet-abc123"},
		},
		{
			name:           "output flag short",
			args:           []string{"-o", "catalogo.html"},
			wantOutput:     "catalogo.html",
			wantPositional: []string{},
		},
		{
			name:           "output flag long",
			args:           []string{"--output", "out.pdf"},
			wantOutput:     "out.pdf",
			wantPositional: []string{},
		},
		{
			name:           "sheet name",
			args:           []string{"--sheet-name", "Produtos"},
			wantSheetName:  "Produtos",
			wantPositional: []string{},
		},
		{
			name:           "type flag short",
			args:           []string{"-T", "simple"},
			wantMode:       "simple",
			wantPositional: []string{},
		},
		{
			name:           "timeout flag",
			args:           []string{"-t", "45s"},
			wantTimeout:    "45s",
			wantPositional: []string{},
		},
		{
			name:           "config flag",
			args:           []string{"-c", "loja.yaml"},
			wantConfig:     "loja.yaml",
			wantPositional: []string{},
		},
		{
			name:           "scheme flag short",
			args:           []string{"-s", "dark_mode"},
			wantScheme:     "dark_mode",
			wantPositional: []string{},
		},
		{
			name:           "logo and intro",
			args:           []string{"--logo", "logo.png", "--intro", "intro.md"},
			wantLogo:       "logo.png",
			wantIntro:      "intro.md",
			wantPositional: []string{},
		},
		{
			name:            "layout flags",
			args:            []string{"--columns", "3", "--rows-per-page", "5", "--margin", "30"},
			wantColumns:     3,
			wantRowsPerPage: 5,
			wantMargin:      30,
			wantPositional:  []string{},
		},
		{
			name:           "no images",
			args:           []string{"--no-images"},
			wantNoImages:   true,
			wantPositional: []string{},
		},
		{
			name:            "list schemes",
			args:            []string{"--list-schemes"},
			wantListSchemes: true,
			wantPositional:  []string{},
		},
		{
			name:           "version",
			args:           []string{"--version"},
			wantVersion:    true,
			wantPositional: []string{},
		},
		{
			name:           "quiet and verbose",
			args:           []string{"-q", "-v"},
			wantQuiet:      true,
			wantVerbose:    true,
			wantPositional: []string{},
		},
		{
			name:           "flags with positional",
			args:           []string{"-o", "out.pdf", "-s", "minimal", "sheet-xyz"},
			wantOutput:     "out.pdf",
			wantScheme:     "minimal",
			wantPositional: []string{"sheet-xyz"},
		},
		{
			name:    "unknown flag",
			args:    []string{"--nope"},
			wantErr: true,
		},
		{
			name:    "missing flag value",
			args:    []string{"--output"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flags, positional, err := parseFlags(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFlags() error = %v", err)
			}

			if flags.output != tt.wantOutput {
				t.Errorf("output = %q, want %q", flags.output, tt.wantOutput)
			}
			if flags.sheetName != tt.wantSheetName {
				t.Errorf("sheetName = %q, want %q", flags.sheetName, tt.wantSheetName)
			}
			if flags.mode != tt.wantMode {
				t.Errorf("mode = %q, want %q", flags.mode, tt.wantMode)
			}
			if flags.timeout != tt.wantTimeout {
				t.Errorf("timeout = %q, want %q", flags.timeout, tt.wantTimeout)
			}
			if flags.common.config != tt.wantConfig {
				t.Errorf("config = %q, want %q", flags.common.config, tt.wantConfig)
			}
			if flags.style.scheme != tt.wantScheme {
				t.Errorf("scheme = %q, want %q", flags.style.scheme, tt.wantScheme)
			}
			if flags.style.logo != tt.wantLogo {
				t.Errorf("logo = %q, want %q", flags.style.logo, tt.wantLogo)
			}
			if flags.style.intro != tt.wantIntro {
				t.Errorf("intro = %q, want %q", flags.style.intro, tt.wantIntro)
			}
			if flags.layout.columns != tt.wantColumns {
				t.Errorf("columns = %d, want %d", flags.layout.columns, tt.wantColumns)
			}
			if flags.layout.rowsPerPage != tt.wantRowsPerPage {
				t.Errorf("rowsPerPage = %d, want %d", flags.layout.rowsPerPage, tt.wantRowsPerPage)
			}
			if flags.layout.margin != tt.wantMargin {
				t.Errorf("margin = %d, want %d", flags.layout.margin, tt.wantMargin)
			}
			if flags.noImages != tt.wantNoImages {
				t.Errorf("noImages = %v, want %v", flags.noImages, tt.wantNoImages)
			}
			if flags.listSchemes != tt.wantListSchemes {
				t.Errorf("listSchemes = %v, want %v", flags.listSchemes, tt.wantListSchemes)
			}
			if flags.version != tt.wantVersion {
				t.Errorf("version = %v, want %v", flags.version, tt.wantVersion)
			}
			if flags.common.quiet != tt.wantQuiet {
				t.Errorf("quiet = %v, want %v", flags.common.quiet, tt.wantQuiet)
			}
			if flags.common.verbose != tt.wantVerbose {
				t.Errorf("verbose = %v, want %v", flags.common.verbose, tt.wantVerbose)
			}
			if len(positional) != len(tt.wantPositional) {
				t.Fatalf("positional = %v, want %v", positional, tt.wantPositional)
			}
			for i := range positional {
				if positional[i] != tt.wantPositional[i] {
					t.Errorf("positional[%d] = %q, want %q", i, positional[i], tt.wantPositional[i])
				}
			}
		})
	}
}

package main

import (
	"errors"
	"os"

	sheet2pdf "github.com/alnah/go-sheet2pdf"
)

// Exit codes for the sheet2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Catalog generated
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitAuth    = 4 // Spreadsheet authentication/authorization failure
	ExitData    = 5 // No rows, no valid products, no images
	ExitBrowser = 6 // Browser/Chrome errors
)

// CLI-level sentinel errors.
var (
	ErrMissingSpreadsheet = errors.New("spreadsheet ID required")
	ErrMissingAPIKey      = errors.New(envAPIKey + " is not set")
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 6)
	if errors.Is(err, sheet2pdf.ErrBrowserConnect) ||
		errors.Is(err, sheet2pdf.ErrPageCreate) ||
		errors.Is(err, sheet2pdf.ErrPageLoad) ||
		errors.Is(err, sheet2pdf.ErrPDFGeneration) ||
		errors.Is(err, sheet2pdf.ErrRenderFailed) {
		return ExitBrowser
	}

	// Empty pipeline outcomes (exit 5)
	if errors.Is(err, sheet2pdf.ErrNoData) ||
		errors.Is(err, sheet2pdf.ErrNoValidProducts) ||
		errors.Is(err, sheet2pdf.ErrNoImagesAvailable) {
		return ExitData
	}

	// Authentication failures (exit 4)
	if errors.Is(err, sheet2pdf.ErrAuthFailed) ||
		errors.Is(err, ErrMissingAPIKey) {
		return ExitAuth
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrConfigNotFound) ||
		errors.Is(err, ErrConfigParse) ||
		errors.Is(err, ErrMissingSpreadsheet) ||
		errors.Is(err, sheet2pdf.ErrInvalidGrid) ||
		errors.Is(err, sheet2pdf.ErrInvalidMargin) ||
		errors.Is(err, sheet2pdf.ErrInvalidImageSize) ||
		errors.Is(err, sheet2pdf.ErrEmptyOutputPath) ||
		errors.Is(err, sheet2pdf.ErrEmptySpreadsheet) ||
		errors.Is(err, sheet2pdf.ErrUnknownScheme) {
		return ExitUsage
	}

	return ExitGeneral
}

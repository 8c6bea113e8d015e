package sheet2pdf

import "errors"

// Sentinel errors for library operations.
var (
	// Row-level rejection reasons. Wrapped with field detail by the
	// normalizer; match with errors.Is.
	ErrMissingField    = errors.New("required field missing or blank")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrInvalidImageURL = errors.New("invalid image URL")

	// Run-level failures.
	ErrAuthFailed        = errors.New("spreadsheet authentication failed")
	ErrNoData            = errors.New("spreadsheet returned no rows")
	ErrNoValidProducts   = errors.New("no valid products after validation")
	ErrNoImagesAvailable = errors.New("no product images could be downloaded")
	ErrRenderFailed      = errors.New("document rendering failed")

	// Per-item image failure, recovered locally by the orchestrator.
	ErrImageDownload = errors.New("image download failed")
	ErrImageTooLarge = errors.New("image exceeds size limit")
	ErrNotAnImage    = errors.New("downloaded file is not a valid image")

	// Color scheme errors. ErrUnknownScheme is soft: ApplyScheme keeps the
	// stylesheet unchanged and reports a warning.
	ErrUnknownScheme     = errors.New("unknown color scheme")
	ErrPaletteExtraction = errors.New("palette extraction failed")

	// Browser rendering errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Configuration validation errors.
	ErrInvalidGrid      = errors.New("invalid grid configuration")
	ErrInvalidMargin    = errors.New("invalid margin")
	ErrInvalidImageSize = errors.New("invalid image dimensions or quality")
	ErrEmptyOutputPath  = errors.New("output path cannot be empty")
	ErrEmptySpreadsheet = errors.New("spreadsheet ID cannot be empty")
)

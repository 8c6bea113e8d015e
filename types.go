package sheet2pdf

import (
	"fmt"
	"log/slog"
	"time"
)

// RawRow maps a column label to its raw cell value, as fetched from the
// spreadsheet. Column labels come from the header row.
type RawRow map[string]string

// Schema maps logical product fields to spreadsheet column labels.
// Resolved once at startup; validation never looks up free-form keys.
type Schema struct {
	Name        string
	Price       string
	Description string
	ImageURL    string
	Category    string
	Size        string
	Color       string
	Quantity    string
	Highlight   string
}

// DefaultSchema returns the column labels the catalog spreadsheet uses.
func DefaultSchema() Schema {
	return Schema{
		Name:        "Nome",
		Price:       "Preço",
		Description: "Descrição",
		ImageURL:    "URL da Imagem",
		Category:    "Categoria",
		Size:        "Tamanho",
		Color:       "Cor",
		Quantity:    "Quantidade",
		Highlight:   "Destaque",
	}
}

// Product is a validated, normalized catalog entry. Immutable once created,
// except LocalImagePath which the image stage fills in after download.
type Product struct {
	Name        string
	Price       float64
	Description string
	ImageURL    string
	Category    string
	Size        string
	Color       string
	Highlight   string // "DESTAQUE", "", or cleaned free-form text

	// LocalImagePath is set by the image acquisition stage.
	// Empty at validation time.
	LocalImagePath string
}

// Rejection records why a raw row was dropped during validation.
type Rejection struct {
	Row    int   // zero-based index into the input rows
	Reason error // wraps one of ErrMissingField, ErrInvalidPrice, ErrInvalidImageURL
}

// Grid bounds.
const (
	MinColumns     = 1
	MaxColumns     = 6
	MinRowsPerPage = 1
	MaxRowsPerPage = 10
)

// GridConfig controls the card grid layout. Dimensions are configuration
// inputs, never derived from the product set.
type GridConfig struct {
	Columns     int
	RowsPerPage int
	Spacing     int // points between rows
}

// DefaultGridConfig returns a two-column, four-row layout.
func DefaultGridConfig() GridConfig {
	return GridConfig{Columns: 2, RowsPerPage: 4, Spacing: 20}
}

// Validate checks grid dimensions against the allowed bounds.
func (g GridConfig) Validate() error {
	if g.Columns < MinColumns || g.Columns > MaxColumns {
		return fmt.Errorf("%w: columns %d (must be between %d and %d)", ErrInvalidGrid, g.Columns, MinColumns, MaxColumns)
	}
	if g.RowsPerPage < MinRowsPerPage || g.RowsPerPage > MaxRowsPerPage {
		return fmt.Errorf("%w: rows per page %d (must be between %d and %d)", ErrInvalidGrid, g.RowsPerPage, MinRowsPerPage, MaxRowsPerPage)
	}
	if g.Spacing < 0 {
		return fmt.Errorf("%w: spacing %d (must be non-negative)", ErrInvalidGrid, g.Spacing)
	}
	return nil
}

// Margin bounds in points.
const (
	MinMargin     = 0
	MaxMargin     = 150
	DefaultMargin = 50
)

// PageSettings configures the rendered page.
type PageSettings struct {
	MarginTop    int
	MarginBottom int
	MarginLeft   int
	MarginRight  int
}

// DefaultPageSettings returns uniform default margins.
func DefaultPageSettings() PageSettings {
	return PageSettings{
		MarginTop:    DefaultMargin,
		MarginBottom: DefaultMargin,
		MarginLeft:   DefaultMargin,
		MarginRight:  DefaultMargin,
	}
}

// Validate checks that every margin is within bounds.
func (p PageSettings) Validate() error {
	for _, m := range []int{p.MarginTop, p.MarginBottom, p.MarginLeft, p.MarginRight} {
		if m < MinMargin || m > MaxMargin {
			return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidMargin, m, MinMargin, MaxMargin)
		}
	}
	return nil
}

// ImageConfig bounds image acquisition and optimization.
type ImageConfig struct {
	MaxWidth        int           // card image width in pixels
	MaxHeight       int           // card image height in pixels
	Quality         int           // JPEG quality, 1-100
	MaxFileSize     int64         // download cap in bytes
	DownloadTimeout time.Duration // per-image HTTP timeout
}

// DefaultImageConfig returns card-sized image limits.
func DefaultImageConfig() ImageConfig {
	return ImageConfig{
		MaxWidth:        200,
		MaxHeight:       200,
		Quality:         85,
		MaxFileSize:     5 << 20,
		DownloadTimeout: 30 * time.Second,
	}
}

// Validate checks image dimensions and quality.
func (c ImageConfig) Validate() error {
	if c.MaxWidth <= 0 || c.MaxHeight <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidImageSize, c.MaxWidth, c.MaxHeight)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("%w: quality %d (must be between 1 and 100)", ErrInvalidImageSize, c.Quality)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("%w: max file size %d", ErrInvalidImageSize, c.MaxFileSize)
	}
	return nil
}

// Catalog layout modes.
const (
	ModeGrid   = "grid"
	ModeSimple = "simple"
)

// Input contains the parameters for a single catalog run.
type Input struct {
	SpreadsheetID  string
	SheetName      string // default "Sheet1"
	OutputPath     string // .pdf or .html decides the backend
	Mode           string // "grid" (default) or "simple"
	SchemeID       string // color scheme; empty = no scheme substitution
	LogoPath       string // optional; drives palette-derived schemes
	Intro          string // optional Markdown rendered into the header
	DownloadImages bool
}

// Option configures a Generator.
type Option func(*Generator)

// defaultTimeout bounds a single render when no timeout is configured.
const defaultTimeout = 60 * time.Second

// generatorConfig holds internal knobs for Generator.
type generatorConfig struct {
	schema  Schema
	grid    GridConfig
	page    PageSettings
	image   ImageConfig
	timeout time.Duration
	tempDir string
}

// WithSchema overrides the column-label mapping.
func WithSchema(s Schema) Option {
	return func(g *Generator) { g.cfg.schema = s }
}

// WithGrid overrides the grid layout.
func WithGrid(gc GridConfig) Option {
	return func(g *Generator) { g.cfg.grid = gc }
}

// WithPageSettings overrides page margins.
func WithPageSettings(p PageSettings) Option {
	return func(g *Generator) { g.cfg.page = p }
}

// WithImageConfig overrides image acquisition limits.
func WithImageConfig(c ImageConfig) Option {
	return func(g *Generator) { g.cfg.image = c }
}

// WithTimeout sets the rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("sheet2pdf: WithTimeout duration must be positive")
	}
	return func(g *Generator) { g.cfg.timeout = d }
}

// WithTempDir sets the directory for downloaded images.
func WithTempDir(dir string) Option {
	return func(g *Generator) { g.cfg.tempDir = dir }
}

// WithLogger injects the diagnostics sink.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// WithMetrics injects a metrics bundle.
func WithMetrics(m *Metrics) Option {
	return func(g *Generator) { g.metrics = m }
}

// WithRowSource injects the spreadsheet collaborator (e.g., for tests).
func WithRowSource(src RowSource) Option {
	return func(g *Generator) { g.rows = src }
}

// WithImageFetcher injects the image download collaborator.
func WithImageFetcher(f ImageFetcher) Option {
	return func(g *Generator) { g.fetcher = f }
}

// WithRenderer injects the rendering backend.
func WithRenderer(r Renderer) Option {
	return func(g *Generator) { g.renderer = r }
}

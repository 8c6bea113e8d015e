package sheet2pdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-sheet2pdf/internal/assets"
)

// State is a stage of the catalog pipeline.
type State string

// Pipeline states. Failed is reachable from any state; CleanedUp always
// runs on the way out.
const (
	StateIdle           State = "idle"
	StateAuthenticated  State = "authenticated"
	StateFetched        State = "fetched"
	StateValidated      State = "validated"
	StateImagesResolved State = "images_resolved"
	StateAssembled      State = "assembled"
	StateRendered       State = "rendered"
	StateCleanedUp      State = "cleaned_up"
	StateFailed         State = "failed"
)

// RunResult reports what a run produced.
type RunResult struct {
	OutputPath string
	Stats      Stats
	Rejections []Rejection
	Dropped    int // products dropped for failed image downloads
}

// Generator orchestrates the catalog pipeline: authenticate, fetch,
// validate, acquire images, assemble, render, clean up.
type Generator struct {
	cfg     generatorConfig
	log     *slog.Logger
	metrics *Metrics

	rows      RowSource
	fetcher   ImageFetcher
	optimizer ImageOptimizer
	builder   *HTMLBuilder
	schemes   *SchemeResolver
	loader    assets.AssetLoader
	renderer  Renderer

	state State
}

// New creates a Generator reading from the given row source. Use options to
// override the schema, layout, collaborators, or diagnostics sink.
func New(rows RowSource, opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg: generatorConfig{
			schema:  DefaultSchema(),
			grid:    DefaultGridConfig(),
			page:    DefaultPageSettings(),
			image:   DefaultImageConfig(),
			timeout: defaultTimeout,
		},
		rows:   rows,
		loader: assets.NewEmbeddedLoader(),
		state:  StateIdle,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.log == nil {
		g.log = slog.Default()
	}

	if err := g.cfg.grid.Validate(); err != nil {
		return nil, err
	}
	if err := g.cfg.page.Validate(); err != nil {
		return nil, err
	}
	if err := g.cfg.image.Validate(); err != nil {
		return nil, err
	}

	if g.cfg.tempDir == "" {
		g.cfg.tempDir = filepath.Join(os.TempDir(), "sheet2pdf-images")
	}

	if g.optimizer == nil {
		g.optimizer = NewScalingOptimizer(g.cfg.image)
	}

	if g.fetcher == nil {
		fetcher, err := NewHTTPImageFetcher(g.cfg.image, g.cfg.tempDir, g.log)
		if err != nil {
			return nil, err
		}
		g.fetcher = fetcher
	}

	builder, err := NewHTMLBuilder(g.loader, g.optimizer, g.log)
	if err != nil {
		return nil, err
	}
	g.builder = builder

	g.schemes = NewSchemeResolver(NewQuantizingExtractor(), g.log)

	return g, nil
}

// State returns the current pipeline state.
func (g *Generator) State() State {
	return g.state
}

// Close releases renderer resources (the headless browser, if one was used).
func (g *Generator) Close() error {
	if g.renderer != nil {
		return g.renderer.Close()
	}
	return nil
}

// Run executes the full pipeline. It either writes exactly one complete
// output file and returns a result, or writes nothing and returns the
// specific failure. Temp images are cleaned up on every exit path,
// including cancellation; cleanup failures are logged, never propagated.
func (g *Generator) Run(ctx context.Context, input Input) (result *RunResult, err error) {
	if err := g.validateInput(input); err != nil {
		return nil, err
	}

	defer func() {
		if cleanupErr := g.fetcher.Cleanup(); cleanupErr != nil {
			g.log.Warn("temp image cleanup failed", slog.Any("error", cleanupErr))
		}
		if err != nil {
			g.state = StateFailed
			g.metrics.IncRun("failure")
		} else {
			g.metrics.IncRun("success")
		}
		g.state = StateCleanedUp
	}()

	// Authenticate.
	if err := g.rows.Authenticate(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	g.state = StateAuthenticated
	g.log.Info("authenticated with spreadsheet source")

	// Fetch. An empty result set is a failure, not an empty success.
	rows, err := g.rows.FetchRows(ctx, input.SpreadsheetID, input.SheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, input.SpreadsheetID)
	}
	g.state = StateFetched
	g.log.Info("rows fetched", slog.Int("rows", len(rows)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Validate. Rejections are recovered locally: logged, counted, dropped.
	normalizer := NewNormalizer(g.cfg.schema)
	products, rejections := normalizer.ProcessAll(rows)
	g.metrics.AddRows(len(rows))
	for _, r := range rejections {
		g.metrics.IncRejected(rejectionLabel(r.Reason))
		g.log.Warn("row rejected", slog.Int("row", r.Row), slog.Any("reason", r.Reason))
	}
	if len(products) == 0 {
		return nil, ErrNoValidProducts
	}
	g.state = StateValidated
	g.metrics.ObserveProducts(len(products))

	stats := Aggregate(products)
	g.logStats(stats)

	// Acquire images. A failed download drops the product, never the run,
	// unless every product is dropped.
	dropped := 0
	if input.DownloadImages {
		products, dropped = g.resolveImages(ctx, products)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if len(products) == 0 {
			return nil, ErrNoImagesAvailable
		}
		g.state = StateImagesResolved
	}

	// Assemble.
	doc, err := g.assemble(products, input)
	if err != nil {
		return nil, err
	}
	g.state = StateAssembled

	// Style and render.
	stylesheet, err := g.resolveStylesheet(input)
	if err != nil {
		return nil, err
	}

	htmlContent, err := g.builder.BuildHTML(ctx, doc, stylesheet)
	if err != nil {
		return nil, err
	}

	output, err := g.render(ctx, input.OutputPath, htmlContent)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	g.state = StateRendered

	// Only a fully rendered document reaches the filesystem; a failed run
	// never leaves a partial file behind.
	if err := os.WriteFile(input.OutputPath, output, 0o600); err != nil {
		return nil, fmt.Errorf("%w: writing output: %v", ErrRenderFailed, err)
	}
	g.log.Info("catalog generated",
		slog.String("output", input.OutputPath), slog.Int("products", len(products)))

	return &RunResult{
		OutputPath: input.OutputPath,
		Stats:      stats,
		Rejections: rejections,
		Dropped:    dropped,
	}, nil
}

// validateInput checks the per-run parameters.
func (g *Generator) validateInput(input Input) error {
	if input.SpreadsheetID == "" {
		return ErrEmptySpreadsheet
	}
	if input.OutputPath == "" {
		return ErrEmptyOutputPath
	}
	if input.Mode != "" && input.Mode != ModeGrid && input.Mode != ModeSimple {
		return fmt.Errorf("invalid catalog mode %q (must be %q or %q)", input.Mode, ModeGrid, ModeSimple)
	}
	return nil
}

// resolveImages downloads each product's image, dropping products whose
// download fails. Order is preserved among survivors.
func (g *Generator) resolveImages(ctx context.Context, products []Product) ([]Product, int) {
	resolved := make([]Product, 0, len(products))
	dropped := 0

	for _, p := range products {
		if ctx.Err() != nil {
			break
		}
		path, err := g.fetcher.Fetch(ctx, p.ImageURL, p.Name)
		if err != nil {
			g.metrics.IncImageFailure()
			g.log.Warn("image download failed, dropping product",
				slog.String("product", p.Name), slog.Any("error", err))
			dropped++
			continue
		}
		g.metrics.IncImageFetched()
		p.LocalImagePath = path
		resolved = append(resolved, p)
	}

	return resolved, dropped
}

// assemble builds the document for the requested mode.
func (g *Generator) assemble(products []Product, input Input) (*CatalogDocument, error) {
	var doc *CatalogDocument
	var err error

	if input.Mode == ModeSimple {
		doc = AssembleSimple(products)
	} else {
		doc, err = Assemble(products, g.cfg.grid)
		if err != nil {
			return nil, err
		}
	}

	doc.Intro = input.Intro
	return doc, nil
}

// resolveStylesheet loads the base style and applies the requested color
// scheme. An unknown scheme keeps the base stylesheet and logs a warning.
func (g *Generator) resolveStylesheet(input Input) (string, error) {
	css, err := g.loader.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return "", fmt.Errorf("loading base stylesheet: %w", err)
	}

	if input.SchemeID == "" {
		return css, nil
	}

	schemes := g.schemes.Resolve(input.LogoPath)
	styled, err := schemes.Apply(css, input.SchemeID)
	if err != nil {
		g.log.Warn("keeping base stylesheet", slog.Any("reason", err))
	}
	return styled, nil
}

// render picks the backend from the output extension and renders the HTML.
func (g *Generator) render(ctx context.Context, outputPath, htmlContent string) ([]byte, error) {
	if g.renderer == nil {
		if strings.EqualFold(filepath.Ext(outputPath), ".html") {
			g.renderer = NewHTMLRenderer()
		} else {
			g.renderer = NewRodRenderer(g.cfg.page, g.cfg.timeout)
		}
	}

	start := time.Now()
	output, err := g.renderer.Render(ctx, htmlContent)
	if err != nil {
		return nil, err
	}
	g.metrics.ObserveRender(time.Since(start))
	return output, nil
}

// logStats reports the validated collection on a single log line.
func (g *Generator) logStats(s Stats) {
	g.log.Info("products validated",
		slog.Int("count", s.Count),
		slog.Float64("price_min", s.PriceMin),
		slog.Float64("price_max", s.PriceMax),
		slog.Float64("price_avg", s.PriceAvg),
		slog.Int("categories", len(s.Categories)),
		slog.Int("sizes", len(s.Sizes)),
		slog.Int("colors", len(s.Colors)))
}

// rejectionLabel maps a rejection reason to its metrics label.
func rejectionLabel(reason error) string {
	switch {
	case errors.Is(reason, ErrMissingField):
		return "missing_field"
	case errors.Is(reason, ErrInvalidPrice):
		return "invalid_price"
	case errors.Is(reason, ErrInvalidImageURL):
		return "invalid_image_url"
	}
	return "other"
}

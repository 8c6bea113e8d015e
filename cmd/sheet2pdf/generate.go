package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	sheet2pdf "github.com/alnah/go-sheet2pdf"
	"github.com/alnah/go-sheet2pdf/internal/fileutil"
)

// defaultOutput is used when neither the flag nor the config names a file.
const defaultOutput = "catalogo.pdf"

// sheetsHTTPTimeout bounds a single Sheets API request.
const sheetsHTTPTimeout = 30 * time.Second

// run executes the CLI with the given arguments and environment.
func run(args []string, env *Environment) error {
	flags, positional, err := parseFlags(args[1:])
	if err != nil {
		return err
	}

	if flags.version {
		fmt.Fprintf(env.Stdout, "sheet2pdf %s\n", Version)
		return nil
	}

	logger := newLogger(env, flags.common)

	if flags.listSchemes {
		return listSchemes(env, logger, flags.style.logo)
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}

	input, err := buildInput(flags, positional, cfg, env)
	if err != nil {
		return err
	}

	apiKey := env.Getenv(envAPIKey)
	if strings.TrimSpace(apiKey) == "" {
		return ErrMissingAPIKey
	}

	imageCfg, err := cfg.image()
	if err != nil {
		return err
	}

	opts := []sheet2pdf.Option{
		sheet2pdf.WithSchema(cfg.schema()),
		sheet2pdf.WithGrid(cfg.grid(flags.layout)),
		sheet2pdf.WithPageSettings(cfg.page(flags.layout)),
		sheet2pdf.WithImageConfig(imageCfg),
		sheet2pdf.WithLogger(logger),
	}
	if timeout, err := resolveTimeout(flags.timeout, cfg.Timeout); err != nil {
		return err
	} else if timeout > 0 {
		opts = append(opts, sheet2pdf.WithTimeout(timeout))
	}

	source := sheet2pdf.NewSheetsClient(apiKey, sheetsHTTPTimeout, logger)
	gen, err := sheet2pdf.New(source, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := gen.Close(); closeErr != nil {
			logger.Warn("closing renderer", slog.Any("error", closeErr))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := gen.Run(ctx, input)
	if err != nil {
		return err
	}

	if !flags.common.quiet {
		printSummary(env, result)
	}
	return nil
}

// newLogger builds the diagnostics sink. Verbose lowers the level to debug;
// quiet raises it to error.
func newLogger(env *Environment, common commonFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case common.quiet:
		level = slog.LevelError
	case common.verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{Level: level}))
}

// buildInput merges flags, config, and environment into the run parameters.
// Precedence: flag, then config, then default.
func buildInput(flags *generateFlags, positional []string, cfg *Config, env *Environment) (sheet2pdf.Input, error) {
	spreadsheetID := env.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	if len(positional) > 0 {
		spreadsheetID = positional[0]
	}
	if spreadsheetID == "" {
		return sheet2pdf.Input{}, ErrMissingSpreadsheet
	}

	logoPath := pick(flags.style.logo, cfg.Logo)
	if fileutil.IsURL(logoPath) {
		return sheet2pdf.Input{}, fmt.Errorf("logo must be a local file path, got URL %q", logoPath)
	}

	input := sheet2pdf.Input{
		SpreadsheetID:  spreadsheetID,
		SheetName:      pick(flags.sheetName, cfg.SheetName),
		OutputPath:     pick(flags.output, cfg.Output, defaultOutput),
		Mode:           pick(flags.mode, cfg.Type),
		SchemeID:       pick(flags.style.scheme, cfg.Scheme),
		LogoPath:       logoPath,
		DownloadImages: !flags.noImages && !cfg.NoImages,
	}

	if flags.style.intro != "" {
		intro, err := os.ReadFile(flags.style.intro) // #nosec G304 -- user-provided path
		if err != nil {
			return sheet2pdf.Input{}, fmt.Errorf("reading intro file: %w", err)
		}
		input.Intro = string(intro)
	}

	return input, nil
}

// resolveTimeout parses the flag value, falling back to the config value.
// Zero means "use the library default".
func resolveTimeout(flagValue, cfgValue string) (time.Duration, error) {
	value := pick(flagValue, cfgValue)
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q: must be positive", value)
	}
	return d, nil
}

// pick returns the first non-empty value.
func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// listSchemes prints the available scheme IDs, deriving them from the logo
// when one is given.
func listSchemes(env *Environment, logger *slog.Logger, logoPath string) error {
	resolver := sheet2pdf.NewSchemeResolver(sheet2pdf.NewQuantizingExtractor(), logger)
	schemes := resolver.Resolve(logoPath)

	fmt.Fprintln(env.Stdout, "Available color schemes:")
	for _, id := range schemes.IDs() {
		fmt.Fprintf(env.Stdout, "  %-12s %s\n", id, schemes[id].Name)
	}
	return nil
}

// printSummary reports the run outcome on stdout.
func printSummary(env *Environment, result *sheet2pdf.RunResult) {
	fmt.Fprintf(env.Stdout, "Catalog written to %s\n", result.OutputPath)
	fmt.Fprintf(env.Stdout, "  products:  %d\n", result.Stats.Count)
	if len(result.Rejections) > 0 {
		fmt.Fprintf(env.Stdout, "  rejected:  %d\n", len(result.Rejections))
	}
	if result.Dropped > 0 {
		fmt.Fprintf(env.Stdout, "  dropped:   %d (image download failures)\n", result.Dropped)
	}
	if result.Stats.Count > 0 && result.Stats.PriceMax > 0 {
		fmt.Fprintf(env.Stdout, "  prices:    %s - %s\n",
			sheet2pdf.FormatPrice(result.Stats.PriceMin),
			sheet2pdf.FormatPrice(result.Stats.PriceMax))
	}
}

// Package sheet2pdf turns a Google Sheets product spreadsheet into a styled
// catalog, rendered to PDF with headless Chrome.
//
// # Quick Start
//
// Create a generator around a row source and run it:
//
//	source := sheet2pdf.NewSheetsClient(apiKey, 30*time.Second, nil)
//	gen, err := sheet2pdf.New(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	result, err := gen.Run(ctx, sheet2pdf.Input{
//	    SpreadsheetID:  "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
//	    OutputPath:     "catalogo.pdf",
//	    DownloadImages: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("products:", result.Stats.Count)
//
// An OutputPath ending in .html skips the browser and writes the built HTML
// directly.
//
// # Generation Pipeline
//
// A run walks these stages:
//
//  1. Authenticate against the spreadsheet source
//  2. Fetch rows (header row becomes the column keys)
//  3. Validate and normalize rows into products (bad rows are dropped,
//     logged, and reported, never fatal unless nothing survives)
//  4. Download and scale product images (optional)
//  5. Assemble the grid or simple-list document
//  6. Apply a color scheme to the base stylesheet
//  7. Render via headless Chrome (go-rod) and write the output file
//
// Temp images are removed on every exit path, including failures and
// cancellation. The output file is written only after a successful render.
//
// # Configuration
//
// Use functional options to customize the generator:
//
//	gen, err := sheet2pdf.New(source,
//	    sheet2pdf.WithGrid(sheet2pdf.GridConfig{Columns: 3, RowsPerPage: 3, Spacing: 16}),
//	    sheet2pdf.WithTimeout(2*time.Minute),
//	    sheet2pdf.WithLogger(logger),
//	)
//
// Column labels default to Portuguese headers (Nome, Preço, Descrição, URL
// da Imagem); use WithSchema to read spreadsheets with different headers.
//
// # Color Schemes
//
// Three built-in schemes ship with the package: default, dark_mode, and
// minimal. Passing a logo path in Input derives schemes from the logo's
// dominant colors instead; extraction failures fall back to the built-ins.
//
// # Errors
//
// Failures are reported through sentinel errors (ErrAuthFailed, ErrNoData,
// ErrNoValidProducts, ErrNoImagesAvailable, ErrRenderFailed) detectable with
// errors.Is, so callers can map outcomes to exit codes or retries.
package sheet2pdf

package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sheet2pdf <spreadsheet-id> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a product catalog PDF from a Google Sheets spreadsheet.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  spreadsheet-id    Google Sheets document ID")
	fmt.Fprintln(w, "                    (optional if GOOGLE_SHEETS_SPREADSHEET_ID is set)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file: .pdf or .html (default catalogo.pdf)")
	fmt.Fprintln(w, "      --sheet-name <s>      Worksheet name (default Sheet1)")
	fmt.Fprintln(w, "  -c, --config <path>       Config file (default sheet2pdf.yaml if present)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Catalog:")
	fmt.Fprintln(w, "  -T, --type <s>            Catalog type: grid or simple (default grid)")
	fmt.Fprintln(w, "      --columns <n>         Grid columns (1-6, default 2)")
	fmt.Fprintln(w, "      --rows-per-page <n>   Grid rows per page (1-10, default 4)")
	fmt.Fprintln(w, "      --margin <n>          Page margin in points (0-150, default 50)")
	fmt.Fprintln(w, "      --no-images           Skip image downloads, render placeholders")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "  -s, --scheme <s>          Color scheme: default, dark_mode, minimal")
	fmt.Fprintln(w, "      --logo <path>         Logo image; derives schemes from its colors")
	fmt.Fprintln(w, "      --intro <path>        Markdown file rendered as the introduction")
	fmt.Fprintln(w, "      --list-schemes        List available color schemes and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -t, --timeout <d>         Render timeout (e.g. 30s, 2m)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed progress")
	fmt.Fprintln(w, "      --version             Print version and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  GOOGLE_SHEETS_API_KEY     API key for the Sheets API (required)")
	fmt.Fprintln(w, "                            A .env file in the working directory is loaded.")
}

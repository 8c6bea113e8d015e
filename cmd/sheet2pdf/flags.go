package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared by every invocation.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// layoutFlags holds grid and page layout flags. Zero values mean
// "not set on the command line"; the config file or defaults apply.
type layoutFlags struct {
	columns     int
	rowsPerPage int
	margin      int
}

// styleFlags holds color scheme and branding flags.
type styleFlags struct {
	scheme string
	logo   string
	intro  string
}

// generateFlags holds all flags for a catalog run.
type generateFlags struct {
	common      commonFlags
	sheetName   string
	output      string
	mode        string
	timeout     string
	noImages    bool
	listSchemes bool
	version     bool
	layout      layoutFlags
	style       styleFlags
}

// addCommonFlags adds shared flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file path (YAML)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// addLayoutFlags adds grid and page flags to a FlagSet.
func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.IntVar(&f.columns, "columns", 0, "grid columns (1-6, default 2)")
	fs.IntVar(&f.rowsPerPage, "rows-per-page", 0, "grid rows per page (1-10, default 4)")
	fs.IntVar(&f.margin, "margin", 0, "page margin in points (0-150, default 50)")
}

// addStyleFlags adds scheme and branding flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVarP(&f.scheme, "scheme", "s", "", "color scheme: default, dark_mode, minimal")
	fs.StringVar(&f.logo, "logo", "", "logo image path; derives schemes from its colors")
	fs.StringVar(&f.intro, "intro", "", "markdown file rendered as the catalog introduction")
}

// parseFlags parses the command line and returns positional arguments
// (the spreadsheet ID).
func parseFlags(args []string) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("sheet2pdf", flag.ContinueOnError)
	f := &generateFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file (.pdf or .html, default catalogo.pdf)")
	fs.StringVar(&f.sheetName, "sheet-name", "", "worksheet name (default Sheet1)")
	fs.StringVarP(&f.mode, "type", "T", "", "catalog type: grid or simple (default grid)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "render timeout (e.g. 30s, 2m)")
	fs.BoolVar(&f.noImages, "no-images", false, "skip image downloads, render placeholders")
	fs.BoolVar(&f.listSchemes, "list-schemes", false, "list available color schemes and exit")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	addCommonFlags(fs, &f.common)
	addLayoutFlags(fs, &f.layout)
	addStyleFlags(fs, &f.style)

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

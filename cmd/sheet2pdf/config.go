package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	sheet2pdf "github.com/alnah/go-sheet2pdf"
	"github.com/alnah/go-sheet2pdf/internal/yamlutil"
)

// defaultConfigFile is looked up in the working directory when --config is
// not given. Its absence is not an error.
const defaultConfigFile = "sheet2pdf.yaml"

// Config sentinel errors.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("config file parse error")
)

// columnsConfig maps logical product fields to spreadsheet header labels.
type columnsConfig struct {
	Name        string `yaml:"name"`
	Price       string `yaml:"price"`
	Description string `yaml:"description"`
	ImageURL    string `yaml:"image_url"`
	Category    string `yaml:"category"`
	Size        string `yaml:"size"`
	Color       string `yaml:"color"`
	Quantity    string `yaml:"quantity"`
	Highlight   string `yaml:"highlight"`
}

// gridConfig mirrors sheet2pdf.GridConfig in YAML.
type gridConfig struct {
	Columns     int `yaml:"columns"`
	RowsPerPage int `yaml:"rows_per_page"`
	Spacing     int `yaml:"spacing"`
}

// pageConfig holds page margins in points.
type pageConfig struct {
	MarginTop    int `yaml:"margin_top"`
	MarginBottom int `yaml:"margin_bottom"`
	MarginLeft   int `yaml:"margin_left"`
	MarginRight  int `yaml:"margin_right"`
}

// imageConfig bounds image downloads in YAML-friendly units.
type imageConfig struct {
	MaxWidth        int    `yaml:"max_width"`
	MaxHeight       int    `yaml:"max_height"`
	Quality         int    `yaml:"quality"`
	MaxFileSizeMB   int    `yaml:"max_file_size_mb"`
	DownloadTimeout string `yaml:"download_timeout"`
}

// Config is the YAML file schema. Every field is optional; flags override
// config values, and config values override defaults.
type Config struct {
	SheetName string         `yaml:"sheet_name"`
	Output    string         `yaml:"output"`
	Type      string         `yaml:"type"`
	Scheme    string         `yaml:"scheme"`
	Logo      string         `yaml:"logo"`
	NoImages  bool           `yaml:"no_images"`
	Timeout   string         `yaml:"timeout"`
	Columns   *columnsConfig `yaml:"columns"`
	Grid      *gridConfig    `yaml:"grid"`
	Page      *pageConfig    `yaml:"page"`
	Image     *imageConfig   `yaml:"image"`
}

// loadConfig reads the config file. An explicit path must exist; the default
// file may be absent, in which case an empty config is returned.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided on purpose
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return &cfg, nil
}

// schema builds the column mapping, starting from the defaults and applying
// any overrides from the config file.
func (c *Config) schema() sheet2pdf.Schema {
	s := sheet2pdf.DefaultSchema()
	if c.Columns == nil {
		return s
	}
	if c.Columns.Name != "" {
		s.Name = c.Columns.Name
	}
	if c.Columns.Price != "" {
		s.Price = c.Columns.Price
	}
	if c.Columns.Description != "" {
		s.Description = c.Columns.Description
	}
	if c.Columns.ImageURL != "" {
		s.ImageURL = c.Columns.ImageURL
	}
	if c.Columns.Category != "" {
		s.Category = c.Columns.Category
	}
	if c.Columns.Size != "" {
		s.Size = c.Columns.Size
	}
	if c.Columns.Color != "" {
		s.Color = c.Columns.Color
	}
	if c.Columns.Quantity != "" {
		s.Quantity = c.Columns.Quantity
	}
	if c.Columns.Highlight != "" {
		s.Highlight = c.Columns.Highlight
	}
	return s
}

// grid builds the grid layout from defaults, config, then flags.
func (c *Config) grid(flags layoutFlags) sheet2pdf.GridConfig {
	g := sheet2pdf.DefaultGridConfig()
	if c.Grid != nil {
		if c.Grid.Columns != 0 {
			g.Columns = c.Grid.Columns
		}
		if c.Grid.RowsPerPage != 0 {
			g.RowsPerPage = c.Grid.RowsPerPage
		}
		if c.Grid.Spacing != 0 {
			g.Spacing = c.Grid.Spacing
		}
	}
	if flags.columns != 0 {
		g.Columns = flags.columns
	}
	if flags.rowsPerPage != 0 {
		g.RowsPerPage = flags.rowsPerPage
	}
	return g
}

// page builds the page settings from defaults, config, then flags.
// The --margin flag sets all four margins uniformly.
func (c *Config) page(flags layoutFlags) sheet2pdf.PageSettings {
	p := sheet2pdf.DefaultPageSettings()
	if c.Page != nil {
		if c.Page.MarginTop != 0 {
			p.MarginTop = c.Page.MarginTop
		}
		if c.Page.MarginBottom != 0 {
			p.MarginBottom = c.Page.MarginBottom
		}
		if c.Page.MarginLeft != 0 {
			p.MarginLeft = c.Page.MarginLeft
		}
		if c.Page.MarginRight != 0 {
			p.MarginRight = c.Page.MarginRight
		}
	}
	if flags.margin != 0 {
		p.MarginTop = flags.margin
		p.MarginBottom = flags.margin
		p.MarginLeft = flags.margin
		p.MarginRight = flags.margin
	}
	return p
}

// image builds the image limits from defaults and config.
func (c *Config) image() (sheet2pdf.ImageConfig, error) {
	ic := sheet2pdf.DefaultImageConfig()
	if c.Image == nil {
		return ic, nil
	}
	if c.Image.MaxWidth != 0 {
		ic.MaxWidth = c.Image.MaxWidth
	}
	if c.Image.MaxHeight != 0 {
		ic.MaxHeight = c.Image.MaxHeight
	}
	if c.Image.Quality != 0 {
		ic.Quality = c.Image.Quality
	}
	if c.Image.MaxFileSizeMB != 0 {
		ic.MaxFileSize = int64(c.Image.MaxFileSizeMB) << 20
	}
	if c.Image.DownloadTimeout != "" {
		d, err := time.ParseDuration(c.Image.DownloadTimeout)
		if err != nil {
			return ic, fmt.Errorf("%w: download_timeout: %v", ErrConfigParse, err)
		}
		ic.DownloadTimeout = d
	}
	return ic, nil
}

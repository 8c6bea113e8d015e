package sheet2pdf

import (
	"fmt"
	"strings"
)

// Fixed document strings, kept in the catalog's original locale.
const (
	DocumentTitle    = "Catálogo de Produtos"
	PlaceholderImage = "Imagem não disponível"
	PriceFallback    = "Preço não informado"
)

// Card is a single product rendered into a grid slot. Content ordering in
// the output is fixed: image-or-placeholder, spacer, name, price,
// description (when present), then the details line.
type Card struct {
	Name        string
	PriceText   string
	Description string
	Details     string // "|"-joined non-empty category, size, color
	Highlight   string
	ImagePath   string // local image; empty means render the placeholder
}

// Slot is a cell in a grid row. A filler slot keeps the row rectangular
// when products run out; it is a blank cell, not a blank product.
type Slot struct {
	Filler bool
	Card   Card
}

// Row is an ordered sequence of exactly Columns slots.
type Row struct {
	Slots []Slot
}

// Page is an ordered sequence of rows.
type Page struct {
	Rows []Row
}

// SimpleLine is one entry of the list-mode document.
type SimpleLine struct {
	Index       int // 1-based, encounter order
	Text        string
	Description string
}

// CatalogDocument is the structured layout consumed by a rendering backend.
// Exactly one of Pages or Lines is populated, depending on Mode.
type CatalogDocument struct {
	Title string
	Intro string // optional Markdown, rendered by the HTML builder
	Mode  string // ModeGrid or ModeSimple
	Pages []Page
	Lines []SimpleLine
}

// FormatPrice renders a price with two decimals and a decimal comma,
// prefixed with the currency marker: 1234.5 -> "R$ 1234,50".
// No thousands separator.
func FormatPrice(price float64) string {
	return "R$ " + strings.Replace(fmt.Sprintf("%.2f", price), ".", ",", 1)
}

// detailsLine joins the non-empty category, size, and color, in that order.
func detailsLine(p Product) string {
	parts := make([]string, 0, 3)
	if p.Category != "" {
		parts = append(parts, "Categoria: "+p.Category)
	}
	if p.Size != "" {
		parts = append(parts, "Tamanho: "+p.Size)
	}
	if p.Color != "" {
		parts = append(parts, "Cor: "+p.Color)
	}
	return strings.Join(parts, " | ")
}

// newCard builds the card content for one product.
func newCard(p Product) Card {
	return Card{
		Name:        p.Name,
		PriceText:   FormatPrice(p.Price),
		Description: p.Description,
		Details:     detailsLine(p),
		Highlight:   p.Highlight,
		ImagePath:   p.LocalImagePath,
	}
}

// Assemble arranges products into a paginated grid document. Products are
// partitioned into rows of grid.Columns in input order; the last row is
// padded with filler slots so every row is rectangular. Rows are grouped
// into pages of grid.RowsPerPage.
func Assemble(products []Product, grid GridConfig) (*CatalogDocument, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	doc := &CatalogDocument{Title: DocumentTitle, Mode: ModeGrid}

	var rows []Row
	for start := 0; start < len(products); start += grid.Columns {
		end := start + grid.Columns
		if end > len(products) {
			end = len(products)
		}

		row := Row{Slots: make([]Slot, 0, grid.Columns)}
		for _, p := range products[start:end] {
			row.Slots = append(row.Slots, Slot{Card: newCard(p)})
		}
		for len(row.Slots) < grid.Columns {
			row.Slots = append(row.Slots, Slot{Filler: true})
		}
		rows = append(rows, row)
	}

	for start := 0; start < len(rows); start += grid.RowsPerPage {
		end := start + grid.RowsPerPage
		if end > len(rows) {
			end = len(rows)
		}
		doc.Pages = append(doc.Pages, Page{Rows: rows[start:end]})
	}

	return doc, nil
}

// AssembleSimple builds the list-mode document: one line per product,
// "{index}. {name} - {price}", with an indented description when present.
func AssembleSimple(products []Product) *CatalogDocument {
	doc := &CatalogDocument{Title: DocumentTitle, Mode: ModeSimple}

	for i, p := range products {
		priceText := PriceFallback
		if p.Price > 0 {
			priceText = FormatPrice(p.Price)
		}
		doc.Lines = append(doc.Lines, SimpleLine{
			Index:       i + 1,
			Text:        fmt.Sprintf("%d. %s - %s", i+1, p.Name, priceText),
			Description: p.Description,
		})
	}

	return doc
}

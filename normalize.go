package sheet2pdf

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// imageURLPattern accepts scheme://host[:port][/path] where the scheme is
// http or https and the host is a dotted DNS name, localhost, or a
// dotted-quad IPv4 address.
var imageURLPattern = regexp.MustCompile(`(?i)^https?://` +
	`(?:(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,6}\.?|` +
	`localhost|` +
	`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
	`(?::\d+)?` +
	`(?:/?|[/?]\S+)$`)

// whitespaceRun matches one or more whitespace characters, including newlines.
var whitespaceRun = regexp.MustCompile(`\s+`)

// priceKeep matches every character stripped before price parsing: anything
// that is not a digit, comma, dot, or minus sign. The minus survives so
// negative prices are detected instead of silently losing their sign.
var priceKeep = regexp.MustCompile(`[^\d,.\-]`)

// Normalizer turns raw spreadsheet rows into canonical Product records.
// It is pure: rejections are returned to the caller, never logged here.
type Normalizer struct {
	schema Schema
}

// NewNormalizer creates a Normalizer for the given column-label schema.
func NewNormalizer(schema Schema) *Normalizer {
	return &Normalizer{schema: schema}
}

// Normalize validates and coerces a single raw row into a Product.
// A Product is only constructed when name, price, and image URL all pass;
// any failure rejects the whole row. Presence is checked for all required
// fields before any format check, so a row with several blank fields always
// reports ErrMissingField.
func (n *Normalizer) Normalize(row RawRow) (Product, error) {
	name := CleanText(row[n.schema.Name])
	rawPrice := strings.TrimSpace(row[n.schema.Price])
	rawURL := strings.TrimSpace(row[n.schema.ImageURL])

	for _, field := range []struct {
		label string
		value string
	}{
		{n.schema.Name, name},
		{n.schema.Price, rawPrice},
		{n.schema.ImageURL, rawURL},
	} {
		if field.value == "" {
			return Product{}, fmt.Errorf("%w: %s", ErrMissingField, field.label)
		}
	}

	price, err := ParsePrice(rawPrice)
	if err != nil {
		return Product{}, err
	}

	if !ValidImageURL(rawURL) {
		return Product{}, fmt.Errorf("%w: %q", ErrInvalidImageURL, rawURL)
	}

	return Product{
		Name:        name,
		Price:       price,
		Description: CleanText(row[n.schema.Description]),
		ImageURL:    rawURL,
		Category:    CleanText(row[n.schema.Category]),
		Size:        CleanText(row[n.schema.Size]),
		Color:       CleanText(row[n.schema.Color]),
		Highlight:   DeriveHighlight(row[n.schema.Highlight]),
	}, nil
}

// ProcessAll normalizes a batch of rows, preserving input order among
// accepted products and recording a rejection per dropped row.
func (n *Normalizer) ProcessAll(rows []RawRow) ([]Product, []Rejection) {
	products := make([]Product, 0, len(rows))
	var rejections []Rejection

	for i, row := range rows {
		p, err := n.Normalize(row)
		if err != nil {
			rejections = append(rejections, Rejection{Row: i, Reason: err})
			continue
		}
		products = append(products, p)
	}

	return products, rejections
}

// CleanText collapses internal whitespace runs (including newlines) to a
// single space and trims both ends.
func CleanText(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// ParsePrice converts a locale-formatted price string to a non-negative
// decimal. Currency symbols and stray characters are stripped; the comma is
// the decimal separator ("R$ 1.234,56" -> 1234.56, "12,50" -> 12.5).
// Returns ErrInvalidPrice for non-numeric or negative values.
func ParsePrice(s string) (float64, error) {
	cleaned := priceKeep.ReplaceAllString(s, "")

	// Brazilian format: when a comma is present, dots are thousands
	// separators and the comma is the decimal point.
	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	if price < 0 {
		return 0, fmt.Errorf("%w: %q (negative)", ErrInvalidPrice, s)
	}
	return price, nil
}

// ValidImageURL reports whether the URL has the shape required for product
// images: http/https scheme and a resolvable-looking host.
func ValidImageURL(url string) bool {
	return url != "" && imageURLPattern.MatchString(url)
}

// DeriveHighlight maps the raw highlight flag to its display value:
// "TRUE" -> "DESTAQUE", "FALSE" -> "", any other non-empty value -> the
// cleaned text, empty -> "". Matching is case-insensitive.
func DeriveHighlight(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	switch strings.ToUpper(trimmed) {
	case "TRUE":
		return "DESTAQUE"
	case "FALSE":
		return ""
	}
	return CleanText(raw)
}

package sheet2pdf

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
)

// gradientMarker detects gradient expressions in scheme values.
const gradientMarker = "linear-gradient"

// RGB is a color in the sRGB space.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as a lowercase #rrggbb string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lighten shifts the HSL lightness of c up by f, clamped to [0, 1].
func Lighten(c RGB, f float64) RGB {
	h, s, l := rgbToHSL(c)
	return hslToRGB(h, s, clamp01(l+f))
}

// Darken shifts the HSL lightness of c down by f, clamped to [0, 1].
func Darken(c RGB, f float64) RGB {
	h, s, l := rgbToHSL(c)
	return hslToRGB(h, s, clamp01(l-f))
}

// Gradient returns a CSS linear-gradient expression between two colors.
func Gradient(from, to RGB) string {
	return fmt.Sprintf("linear-gradient(135deg, %s 0%%, %s 100%%)", from.Hex(), to.Hex())
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// rgbToHSL converts to hue [0,1), saturation [0,1], lightness [0,1].
func rgbToHSL(c RGB) (h, s, l float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l = (maxC + minC) / 2

	if maxC == minC {
		return 0, 0, l // achromatic
	}

	d := maxC - minC
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h / 6, s, l
}

func hslToRGB(h, s, l float64) RGB {
	if s == 0 {
		v := uint8(math.Round(l * 255))
		return RGB{v, v, v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	toByte := func(t float64) uint8 {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		var v float64
		switch {
		case t < 1.0/6:
			v = p + (q-p)*6*t
		case t < 1.0/2:
			v = q
		case t < 2.0/3:
			v = p + (q-p)*(2.0/3-t)*6
		default:
			v = p
		}
		return uint8(math.Round(v * 255))
	}

	return RGB{toByte(h + 1.0/3), toByte(h), toByte(h - 1.0/3)}
}

// Role identifies a semantic slot in a color scheme.
type Role string

// Scheme roles.
const (
	RoleBackground    Role = "background"
	RoleProductBG     Role = "product_bg"
	RoleHeaderBG      Role = "header_bg"
	RoleBorder        Role = "border"
	RoleAccent        Role = "accent"
	RoleTextPrimary   Role = "text_primary"
	RoleTextSecondary Role = "text_secondary"
	RolePrice         Role = "price"
	RoleHighlight     Role = "highlight"
)

// roleFallback is the single fallback graph used everywhere a role is read.
// Background, TextPrimary, and Accent are base roles with no fallback.
var roleFallback = map[Role]Role{
	RoleProductBG:     RoleBackground,
	RoleHeaderBG:      RoleBackground,
	RoleTextSecondary: RoleTextPrimary,
	RoleBorder:        RoleAccent,
	RolePrice:         RoleAccent,
	RoleHighlight:     RoleAccent,
}

// ColorScheme maps semantic roles to color values. A value is a hex string
// or a CSS gradient expression. Empty values resolve through the fallback
// graph via ResolveRole.
type ColorScheme struct {
	Name          string
	Background    string
	ProductBG     string
	HeaderBG      string
	Border        string
	Accent        string
	TextPrimary   string
	TextSecondary string
	Price         string
	Highlight     string
}

// value returns the raw value stored for a role, without fallback.
func (s ColorScheme) value(role Role) string {
	switch role {
	case RoleBackground:
		return s.Background
	case RoleProductBG:
		return s.ProductBG
	case RoleHeaderBG:
		return s.HeaderBG
	case RoleBorder:
		return s.Border
	case RoleAccent:
		return s.Accent
	case RoleTextPrimary:
		return s.TextPrimary
	case RoleTextSecondary:
		return s.TextSecondary
	case RolePrice:
		return s.Price
	case RoleHighlight:
		return s.Highlight
	}
	return ""
}

// ResolveRole returns the value for a role, walking the fallback graph until
// a non-empty value is found. Returns "" only when the whole chain is empty.
func ResolveRole(s ColorScheme, role Role) string {
	for {
		if v := s.value(role); v != "" {
			return v
		}
		next, ok := roleFallback[role]
		if !ok {
			return ""
		}
		role = next
	}
}

// SchemeSet is a collection of named color schemes.
type SchemeSet map[string]ColorScheme

// IDs returns the scheme identifiers in sorted order.
func (ss SchemeSet) IDs() []string {
	ids := make([]string, 0, len(ss))
	for id := range ss {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Apply substitutes the scheme's colors into the stylesheet. An unknown
// scheme ID is a soft failure: the stylesheet is returned unchanged along
// with ErrUnknownScheme for the caller's diagnostics.
func (ss SchemeSet) Apply(css, schemeID string) (string, error) {
	scheme, ok := ss[schemeID]
	if !ok {
		return css, fmt.Errorf("%w: %q", ErrUnknownScheme, schemeID)
	}
	return ApplyScheme(css, scheme), nil
}

// BuiltinSchemes returns the fixed named schemes used when no logo is
// available. Every role is fully specified.
func BuiltinSchemes() SchemeSet {
	return SchemeSet{
		"default": {
			Name:          "Padrão",
			Background:    "#F28E30",
			ProductBG:     "#F28E30",
			HeaderBG:      "#333333",
			Border:        "#00A79D",
			Accent:        "#6BC0C9",
			TextPrimary:   "#333333",
			TextSecondary: "#6BC0C9",
			Price:         "#7F4C9E",
			Highlight:     "#7AD0E0",
		},
		"dark_mode": {
			Name:          "Modo Escuro",
			Background:    "#1C1C1C",
			ProductBG:     "#2D2D2D",
			HeaderBG:      "#F28E30",
			Border:        "#00A79D",
			Accent:        "#7AD0E0",
			TextPrimary:   "#FFFFFF",
			TextSecondary: "#7AD0E0",
			Price:         "#7F4C9E",
			Highlight:     "#6BC0C9",
		},
		"minimal": {
			Name:          "Minimalista",
			Background:    "#F8F8F8",
			ProductBG:     "#FFFFFF",
			HeaderBG:      "#333333",
			Border:        "#DDDDDD",
			Accent:        "#00A79D",
			TextPrimary:   "#333333",
			TextSecondary: "#6BC0C9",
			Price:         "#F28E30",
			Highlight:     "#00A79D",
		},
	}
}

// SchemeResolver builds the available scheme set, optionally deriving
// schemes from a logo's dominant colors.
type SchemeResolver struct {
	palette PaletteExtractor
	log     *slog.Logger
}

// NewSchemeResolver creates a resolver. A nil extractor disables
// logo-derived schemes; a nil logger falls back to slog.Default().
func NewSchemeResolver(palette PaletteExtractor, log *slog.Logger) *SchemeResolver {
	if log == nil {
		log = slog.Default()
	}
	return &SchemeResolver{palette: palette, log: log}
}

// Resolve returns the scheme set for a run. Without a logo it returns the
// built-in set. With a logo it derives schemes from the dominant palette;
// any failure (missing file, decode error, empty palette) falls back to the
// built-ins with a warning. Never returns an error.
func (r *SchemeResolver) Resolve(logoPath string) SchemeSet {
	if logoPath == "" || r.palette == nil {
		return BuiltinSchemes()
	}

	palette, err := r.palette.Dominant(logoPath, maxPaletteColors)
	if err != nil || len(palette) == 0 {
		r.log.Warn("falling back to built-in color schemes",
			slog.String("logo", logoPath), slog.Any("error", err))
		return BuiltinSchemes()
	}

	return DeriveSchemes(palette)
}

// maxPaletteColors bounds the dominant palette size.
const maxPaletteColors = 6

// DeriveSchemes composes scheme variants from a dominant-color palette,
// ordered by prominence. The mapping is deterministic for a given palette:
// primary = palette[0], secondary = palette[1] (or primary), accent =
// palette[2] (or secondary), with lightened/darkened variants filling the
// remaining roles.
func DeriveSchemes(palette []RGB) SchemeSet {
	primary := palette[0]
	secondary := primary
	if len(palette) > 1 {
		secondary = palette[1]
	}
	accent := secondary
	if len(palette) > 2 {
		accent = palette[2]
	}

	primaryLight := Lighten(primary, 0.4)
	primaryDark := Darken(primary, 0.3)
	secondaryLight := Lighten(secondary, 0.5)
	accentLight := Lighten(accent, 0.6)

	return SchemeSet{
		"default": {
			Name:          "Padrão",
			Background:    primaryLight.Hex(),
			ProductBG:     "#F8F9FA",
			HeaderBG:      primary.Hex(),
			Border:        secondary.Hex(),
			Accent:        accent.Hex(),
			TextPrimary:   primaryDark.Hex(),
			TextSecondary: secondary.Hex(),
			Price:         accent.Hex(),
			Highlight:     accentLight.Hex(),
		},
		"dark_mode": {
			Name:          "Modo Escuro",
			Background:    primaryDark.Hex(),
			ProductBG:     Darken(primary, 0.2).Hex(),
			HeaderBG:      accent.Hex(),
			Border:        secondary.Hex(),
			Accent:        accentLight.Hex(),
			TextPrimary:   "#FFFFFF",
			TextSecondary: accentLight.Hex(),
			Price:         secondaryLight.Hex(),
			Highlight:     accent.Hex(),
		},
		"minimal": {
			Name:          "Minimalista",
			Background:    "#F8F8F8",
			ProductBG:     "#FFFFFF",
			HeaderBG:      primary.Hex(),
			Border:        "#DDDDDD",
			Accent:        accent.Hex(),
			TextPrimary:   "#333333",
			TextSecondary: secondary.Hex(),
			Price:         primary.Hex(),
			Highlight:     accent.Hex(),
		},
		"gradient": {
			Name:          "Gradiente",
			Background:    primaryLight.Hex(),
			ProductBG:     "#FFFFFF",
			HeaderBG:      Gradient(primary, secondary),
			Border:        secondary.Hex(),
			Accent:        accent.Hex(),
			TextPrimary:   primaryDark.Hex(),
			TextSecondary: secondaryLight.Hex(),
			Price:         accent.Hex(),
			Highlight:     accentLight.Hex(),
		},
	}
}

// ApplyScheme rewrites a base stylesheet with the scheme's colors.
// Three layers, in order:
//  1. literal token substitutions against the base stylesheet's colors;
//  2. a general override block appended after the substituted CSS, forcing
//     page, background, and container colors regardless of the base rules;
//  3. when the header role holds a gradient expression, a header-specific
//     override block appended after the general one so flat-color header
//     overrides do not clobber the gradient.
func ApplyScheme(css string, scheme ColorScheme) string {
	background := ResolveRole(scheme, RoleBackground)
	productBG := ResolveRole(scheme, RoleProductBG)
	headerBG := ResolveRole(scheme, RoleHeaderBG)
	border := ResolveRole(scheme, RoleBorder)
	accent := ResolveRole(scheme, RoleAccent)
	textPrimary := ResolveRole(scheme, RoleTextPrimary)
	textSecondary := ResolveRole(scheme, RoleTextSecondary)
	price := ResolveRole(scheme, RolePrice)
	highlight := ResolveRole(scheme, RoleHighlight)

	replacements := [][2]string{
		{"background-color: #fff;", "background-color: " + background + ";"},
		{"background: #fff;", "background: " + background + ";"},
		{"border-bottom: 2px solid #e74c3c;", "border-bottom: 2px solid " + border + ";"},
		{"color: #2c3e50;", "color: " + textPrimary + ";"},
		{"color: #7f8c8d;", "color: " + textSecondary + ";"},
		{"color: #e74c3c;", "color: " + price + ";"},
		{"border-left: 2px solid #3498db;", "border-left: 2px solid " + accent + ";"},
		{"background-color: #f8f9fa;", "background-color: " + productBG + ";"},
		{"color: #333;", "color: " + textPrimary + ";"},
		{"color: #666;", "color: " + textSecondary + ";"},
	}

	for _, r := range replacements {
		css = strings.ReplaceAll(css, r[0], r[1])
	}

	var buf strings.Builder
	buf.WriteString(css)
	buf.WriteString(fmt.Sprintf(`
/* Scheme override: page and container backgrounds are always forced */
@page {
  background: %[1]s;
}
html, body {
  background: %[1]s !important;
  min-height: 100vh;
  margin: 0;
  padding: 0;
}
.container {
  background: %[1]s;
  min-height: 100vh;
}
.header {
  background-color: %[2]s !important;
  color: %[3]s !important;
}
.header .title {
  color: %[3]s !important;
}
.header .subtitle {
  color: %[4]s !important;
}
.produto {
  background-color: %[5]s !important;
  border-color: %[6]s !important;
}
.produto .nome {
  color: %[3]s !important;
}
.produto .descricao {
  color: %[4]s !important;
}
.produto .preco {
  color: %[7]s !important;
}
.produto .detalhe {
  color: %[4]s !important;
}
.highlight {
  color: %[8]s !important;
}
.accent-border {
  border-color: %[9]s !important;
}
`, background, headerBG, textPrimary, textSecondary, productBG, border, price, highlight, accent))

	if strings.Contains(headerBG, gradientMarker) {
		buf.WriteString(fmt.Sprintf(`
/* Gradient headers need background, not background-color */
.header {
  background: %s !important;
  color: %s !important;
}
.header .title {
  color: %s !important;
}
.header .subtitle {
  color: %s !important;
}
`, headerBG, textPrimary, textPrimary, textSecondary))
	}

	return buf.String()
}

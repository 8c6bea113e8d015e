package sheet2pdf

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/alnah/go-sheet2pdf/internal/assets"
	"github.com/alnah/go-sheet2pdf/internal/fileutil"
)

// HTMLBuilder renders a CatalogDocument into a standalone HTML page.
// Optimized product images are inlined as data URIs so the output needs no
// sidecar files.
type HTMLBuilder struct {
	gridTmpl   *template.Template
	simpleTmpl *template.Template
	optimizer  ImageOptimizer
	markdown   goldmark.Markdown
	log        *slog.Logger
}

// NewHTMLBuilder loads the embedded templates and wires the optimizer used
// for card images. A nil logger falls back to slog.Default().
func NewHTMLBuilder(loader assets.AssetLoader, optimizer ImageOptimizer, log *slog.Logger) (*HTMLBuilder, error) {
	if log == nil {
		log = slog.Default()
	}

	gridSrc, err := loader.LoadTemplate(assets.GridTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading grid template: %w", err)
	}
	gridTmpl, err := template.New(assets.GridTemplateName).Parse(gridSrc)
	if err != nil {
		return nil, fmt.Errorf("parsing grid template: %w", err)
	}

	simpleSrc, err := loader.LoadTemplate(assets.SimpleTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading simple template: %w", err)
	}
	simpleTmpl, err := template.New(assets.SimpleTemplateName).Parse(simpleSrc)
	if err != nil {
		return nil, fmt.Errorf("parsing simple template: %w", err)
	}

	return &HTMLBuilder{
		gridTmpl:   gridTmpl,
		simpleTmpl: simpleTmpl,
		optimizer:  optimizer,
		markdown:   goldmark.New(),
		log:        log,
	}, nil
}

// Template view models. Cards carry the resolved image data URI or the
// placeholder text, never a filesystem path.
type docView struct {
	Title string
	Intro template.HTML
	Pages []pageView
	Lines []SimpleLine
}

type pageView struct {
	Rows []rowView
}

type rowView struct {
	Slots []slotView
}

type slotView struct {
	Filler bool
	Card   cardView
}

type cardView struct {
	Name        string
	PriceText   string
	Description string
	Details     string
	Highlight   string
	ImageData   template.URL
	Placeholder string
}

// BuildHTML renders the document and injects the stylesheet. The stylesheet
// is expected to already carry any color scheme substitutions.
func (b *HTMLBuilder) BuildHTML(ctx context.Context, doc *CatalogDocument, stylesheet string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	view := docView{
		Title: doc.Title,
		Intro: b.renderIntro(doc.Intro),
		Lines: doc.Lines,
	}

	tmpl := b.simpleTmpl
	if doc.Mode == ModeGrid {
		tmpl = b.gridTmpl
		view.Pages = b.buildPages(doc.Pages)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	return injectCSS(buf.String(), stylesheet), nil
}

// renderIntro converts the optional Markdown intro to HTML. Conversion
// failure degrades to the raw text, escaped.
func (b *HTMLBuilder) renderIntro(intro string) template.HTML {
	if intro == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := b.markdown.Convert([]byte(intro), &buf); err != nil {
		b.log.Warn("intro markdown conversion failed", slog.Any("error", err))
		return template.HTML(template.HTMLEscapeString(intro)) // #nosec G203 -- escaped above
	}
	return template.HTML(buf.String()) // #nosec G203 -- goldmark escapes raw HTML by default
}

// buildPages maps document pages to view pages, resolving each card image.
func (b *HTMLBuilder) buildPages(pages []Page) []pageView {
	out := make([]pageView, 0, len(pages))
	for _, page := range pages {
		pv := pageView{Rows: make([]rowView, 0, len(page.Rows))}
		for _, row := range page.Rows {
			rv := rowView{Slots: make([]slotView, 0, len(row.Slots))}
			for _, slot := range row.Slots {
				if slot.Filler {
					rv.Slots = append(rv.Slots, slotView{Filler: true})
					continue
				}
				rv.Slots = append(rv.Slots, slotView{Card: b.buildCard(slot.Card)})
			}
			pv.Rows = append(pv.Rows, rv)
		}
		out = append(out, pv)
	}
	return out
}

// buildCard resolves the card image to a data URI. A missing file or a
// failed optimization renders the placeholder instead of dropping the slot,
// so row heights stay uniform.
func (b *HTMLBuilder) buildCard(card Card) cardView {
	cv := cardView{
		Name:        card.Name,
		PriceText:   card.PriceText,
		Description: card.Description,
		Details:     card.Details,
		Highlight:   card.Highlight,
	}

	if card.ImagePath == "" || !fileutil.FileExists(card.ImagePath) {
		cv.Placeholder = PlaceholderImage
		return cv
	}

	encoded, err := b.optimizer.Optimize(card.ImagePath)
	if err != nil {
		b.log.Warn("image optimization failed",
			slog.String("product", card.Name), slog.Any("error", err))
		cv.Placeholder = PlaceholderImage
		return cv
	}

	uri := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(encoded)
	cv.ImageData = template.URL(uri) // #nosec G203 -- data URI built from re-encoded bytes
	return cv
}

// injectCSS inserts a <style> block into the HTML. Tries </head> first,
// then after <body>, then prepends.
func injectCSS(htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could close the <style> block early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

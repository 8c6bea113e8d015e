// Package assets provides embedded stylesheets and HTML templates for
// catalog rendering, behind a loader interface so alternative sources
// (filesystem, tests) can be swapped in.
package assets

// DefaultStyleName is the base catalog stylesheet.
const DefaultStyleName = "catalog"

// Template names for the two document modes.
const (
	GridTemplateName   = "catalog"
	SimpleTemplateName = "simple"
)

// AssetLoader defines the contract for loading CSS styles and HTML templates.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

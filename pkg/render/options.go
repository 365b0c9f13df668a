package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers use to pick a layout
// and style without touching the profile.
type RenderOptions struct {
	// Template is the catalog id of the selected template. Renderers expose it
	// as a data attribute so stylesheets can target individual templates.
	Template string
	// Layout names the layout family ("modern", "minimalist"). Unknown or
	// empty values fall back to the modern layout.
	Layout string
	// Theme carries resolved tokens and CSS variables for the template.
	Theme *theme.RendererConfig
}

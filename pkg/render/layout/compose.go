package layout

import (
	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/render/markup"
)

// Compose builds the view and the layout tree for p. Every renderer calls it,
// so HTML and component output always agree on sections and entries.
func Compose(p profile.Profile, opts render.RenderOptions) (render.View, *markup.Node) {
	view := render.BuildView(p)
	layoutOpts := Options{
		Template: opts.Template,
		Style:    render.InlineStyle(opts.Theme),
	}
	if opts.Theme != nil {
		layoutOpts.Variant = opts.Theme.Variant
	}
	return view, Get(opts.Layout).Build(view, layoutOpts)
}

package static

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-portfolio/pkg/render/layout"
)

//go:embed assets/*.css
var embeddedAssets embed.FS

// AssetsFS exposes the embedded stylesheets so callers can serve them over
// HTTP.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

// StylesheetName returns the asset file name for a layout family.
func StylesheetName(layoutName string) string {
	return layout.Get(layoutName).Name() + ".css"
}

// Stylesheet returns the stylesheet of a layout family. Unknown families use
// the modern stylesheet.
func Stylesheet(layoutName string) string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName(layoutName))
	if err != nil {
		return ""
	}
	return string(data)
}

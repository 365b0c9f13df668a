package portfolio

import (
	"io/fs"

	"github.com/goliatone/go-portfolio/pkg/export"
	"github.com/goliatone/go-portfolio/pkg/renderers/static"
)

// StylesheetsFS exposes the per-layout stylesheets so Go applications can
// serve them next to rendered previews.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(portfolio.StylesheetsFS()),
//	  ),
//	)
func StylesheetsFS() fs.FS {
	return static.AssetsFS()
}

// DocumentTemplates exposes the templates used to wrap exported documents so
// callers can copy or extend them.
func DocumentTemplates() fs.FS {
	return export.TemplatesFS()
}

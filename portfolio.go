// Package portfolio turns a structured profile into a self-contained HTML
// portfolio page. It re-exports the most common entry points so simple
// callers never need to import the sub-packages.
package portfolio

import (
	"context"

	"github.com/goliatone/go-portfolio/pkg/catalog"
	"github.com/goliatone/go-portfolio/pkg/export"
	"github.com/goliatone/go-portfolio/pkg/orchestrator"
	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/render"
)

// Profile aliases profile.Profile so callers can build documents from the
// root package.
type Profile = profile.Profile

// Artifact is a downloadable portfolio document.
type Artifact = export.Artifact

// RenderOptions carries the per-request template and theme configuration.
type RenderOptions = render.RenderOptions

// NewProfile returns a blank profile with one empty entry per list.
func NewProfile() Profile {
	return profile.New()
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// EmbeddedCatalog returns the built-in template catalog.
func EmbeddedCatalog() *catalog.Catalog {
	return catalog.Default()
}

// GenerateHTML renders the preview fragment of p with the given template.
// Unknown template ids fall back to the catalog default.
func GenerateHTML(ctx context.Context, p Profile, templateID string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Profile:  p,
		Template: templateID,
	})
}

// Export builds the standalone document for p. It fails with
// export.ErrMissingName when the profile has no name.
func Export(ctx context.Context, p Profile, templateID string, options ...orchestrator.Option) (Artifact, error) {
	exporter, err := export.New(export.WithOrchestrator(orchestrator.New(options...)))
	if err != nil {
		return Artifact{}, err
	}
	return exporter.Export(ctx, p, templateID)
}

// WithCatalog forwards a custom catalog to the orchestrator.
func WithCatalog(c *catalog.Catalog) orchestrator.Option {
	return orchestrator.WithCatalog(c)
}

package export

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-portfolio/pkg/orchestrator"
	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/render/template"
	"github.com/goliatone/go-portfolio/pkg/render/template/gotemplate"
	"github.com/goliatone/go-portfolio/pkg/renderers/static"
)

// ContentType is the media type of exported documents.
const ContentType = "text/html; charset=utf-8"

const (
	documentTemplate = "document"
	filenameSuffix   = "_Portfolio.html"
)

// Artifact is an exported document ready to be saved.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Outcome describes one export attempt.
type Outcome struct {
	Template string
	Variant  string
	Filename string
	Size     int
	Err      error
}

// Option customises an Exporter.
type Option func(*Exporter)

// WithOrchestrator injects the orchestrator used for the document body.
func WithOrchestrator(o *orchestrator.Orchestrator) Option {
	return func(e *Exporter) {
		e.orch = o
	}
}

// WithTemplateRenderer replaces the engine rendering the document shell. The
// renderer must provide a "document" template.
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(e *Exporter) {
		e.templates = renderer
	}
}

// WithObserver registers a callback invoked after every export attempt.
func WithObserver(fn func(Outcome)) Option {
	return func(e *Exporter) {
		if fn != nil {
			e.observers = append(e.observers, fn)
		}
	}
}

// Exporter builds standalone portfolio documents.
type Exporter struct {
	orch      *orchestrator.Orchestrator
	templates template.TemplateRenderer
	observers []func(Outcome)
}

// New constructs an Exporter applying any provided options.
func New(options ...Option) (*Exporter, error) {
	e := &Exporter{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.orch == nil {
		e.orch = orchestrator.New()
	}
	if e.templates == nil {
		engine, err := gotemplate.NewHooked(
			gotemplate.WithFS(TemplatesFS()),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithPostHook(tidyDocument),
		)
		if err != nil {
			return nil, fmt.Errorf("export: document engine: %w", err)
		}
		e.templates = engine
	}
	return e, nil
}

// Export renders p with the template templateID into a complete HTML
// document using the template's base tokens. Identical inputs produce
// byte-identical artifacts.
func (e *Exporter) Export(ctx context.Context, p profile.Profile, templateID string) (Artifact, error) {
	return e.ExportVariant(ctx, p, templateID, "")
}

// ExportVariant is Export with a theme variant such as "dark". Unknown
// variants use the base tokens, as in the preview.
func (e *Exporter) ExportVariant(ctx context.Context, p profile.Profile, templateID, variant string) (Artifact, error) {
	artifact, err := e.export(ctx, p, templateID, variant)
	e.notify(Outcome{
		Template: e.orch.Resolve(templateID).ID,
		Variant:  variant,
		Filename: artifact.Filename,
		Size:     len(artifact.Data),
		Err:      err,
	})
	return artifact, err
}

func (e *Exporter) export(ctx context.Context, p profile.Profile, templateID, variant string) (Artifact, error) {
	if ctx == nil {
		return Artifact{}, errors.New("export: context is required")
	}
	if !p.HasName() {
		return Artifact{}, ErrMissingName
	}

	opts, err := e.orch.Options(templateID, variant)
	if err != nil {
		return Artifact{}, fmt.Errorf("export: %w", err)
	}

	body, err := e.orch.Generate(ctx, orchestrator.Request{
		Profile:  p,
		Template: templateID,
		Variant:  variant,
		Renderer: static.Name,
	})
	if err != nil {
		return Artifact{}, fmt.Errorf("export: %w", err)
	}

	doc, err := e.templates.Render(documentTemplate, map[string]any{
		"name":       p.PersonalInfo.Name,
		"template":   opts.Template,
		"stylesheet": static.Stylesheet(opts.Layout),
		"root_style": render.RootStyle(opts.Theme),
		"body":       string(body),
	})
	if err != nil {
		return Artifact{}, fmt.Errorf("export: render document: %w", err)
	}

	return Artifact{
		Filename:    Filename(p.PersonalInfo.Name),
		ContentType: ContentType,
		Data:        []byte(doc),
	}, nil
}

// tidyDocument ends the document with exactly one newline, whatever the
// template file ends with.
func tidyDocument(ctx *gotemplatepkg.HookContext) (string, error) {
	return strings.TrimRight(ctx.Output, " \t\r\n") + "\n", nil
}

func (e *Exporter) notify(outcome Outcome) {
	for _, fn := range e.observers {
		fn(outcome)
	}
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	pathSeparator = strings.NewReplacer("/", "_", "\\", "_")
)

// Filename derives the download name from a profile name: whitespace runs
// become underscores and "_Portfolio.html" is appended. Path separators are
// replaced so the name never escapes the target directory.
func Filename(name string) string {
	base := whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "_")
	return pathSeparator.Replace(base) + filenameSuffix
}

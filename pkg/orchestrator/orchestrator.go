package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-portfolio/pkg/catalog"
	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/renderers/component"
	"github.com/goliatone/go-portfolio/pkg/renderers/static"
)

const defaultRendererName = static.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithCatalog injects the template catalog used to resolve template ids.
func WithCatalog(c *catalog.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = c
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector replaces the catalog as the source of theme selections.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.selector = selector
	}
}

// WithObserver registers a callback invoked after every render attempt.
func WithObserver(fn func(Event)) Option {
	return func(o *Orchestrator) {
		if fn != nil {
			o.observers = append(o.observers, fn)
		}
	}
}

// Event describes one render attempt.
type Event struct {
	Renderer string
	Template string
	Err      error
}

// Orchestrator resolves a template, selects its theme and hands the profile to
// a renderer. The zero configuration renders with the embedded catalog and
// registers the static and component renderers.
type Orchestrator struct {
	catalog         *catalog.Catalog
	registry        *render.Registry
	selector        theme.ThemeSelector
	defaultRenderer string
	observers       []func(Event)
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a portfolio.
type Request struct {
	Profile profile.Profile

	// Template is a catalog id. Empty or unknown ids fall back to the
	// catalog default.
	Template string

	// Variant selects a theme variant such as "dark". Unknown variants use the
	// base tokens.
	Variant string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string
}

// Generate renders req.Profile with the resolved template and renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts, err := o.Options(req.Template, req.Variant)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, req.Profile, opts)
	o.notify(Event{Renderer: renderer.Name(), Template: opts.Template, Err: err})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Resolve returns the catalog template used for id.
func (o *Orchestrator) Resolve(id string) catalog.Template {
	return o.catalog.Resolve(id)
}

// Catalog exposes the template catalog.
func (o *Orchestrator) Catalog() *catalog.Catalog {
	return o.catalog
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	return o.registry.List()
}

// Options resolves the render options for a template id and variant.
func (o *Orchestrator) Options(templateID, variant string) (render.RenderOptions, error) {
	tpl := o.catalog.Resolve(templateID)

	selection, err := o.selector.Select(tpl.ID, variant)
	if err != nil {
		return render.RenderOptions{}, fmt.Errorf("orchestrator: select theme %q: %w", tpl.ID, err)
	}

	return render.RenderOptions{
		Template: tpl.ID,
		Layout:   tpl.Layout,
		Theme:    rendererConfig(selection),
	}, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) notify(evt Event) {
	for _, fn := range o.observers {
		fn(evt)
	}
}

func (o *Orchestrator) applyDefaults() {
	if o.catalog == nil {
		o.catalog = catalog.Default()
	}
	if o.selector == nil {
		o.selector = o.catalog
	}
	if o.registry == nil {
		o.registry = render.NewRegistry(static.New(), component.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

// rendererConfig flattens a selection into the config renderers consume:
// variant tokens, templates and asset files override the base manifest.
func rendererConfig(selection *theme.Selection) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Partials: map[string]string{},
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}
	if selection == nil {
		cfg.AssetURL = func(string) string { return "" }
		return cfg
	}
	cfg.Theme = selection.Theme
	cfg.Variant = selection.Variant

	prefix := ""
	files := map[string]string{}
	if manifest := selection.Manifest; manifest != nil {
		mergeInto(cfg.Tokens, manifest.Tokens)
		mergeInto(cfg.Partials, manifest.Templates)
		prefix = manifest.Assets.Prefix
		mergeInto(files, manifest.Assets.Files)

		if variant, ok := manifest.Variants[selection.Variant]; ok && selection.Variant != "" {
			mergeInto(cfg.Tokens, variant.Tokens)
			mergeInto(cfg.Partials, variant.Templates)
			if variant.Assets.Prefix != "" {
				prefix = variant.Assets.Prefix
			}
			mergeInto(files, variant.Assets.Files)
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok {
			return ""
		}
		return joinAssetURL(prefix, file)
	}
	return cfg
}

func mergeInto(dst, src map[string]string) {
	for key, value := range src {
		dst[key] = value
	}
}

func joinAssetURL(prefix, file string) string {
	if prefix == "" {
		return file
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
}

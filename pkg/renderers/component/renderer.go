package component

import (
	"context"
	"encoding/json"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/render/layout"
	"github.com/goliatone/go-portfolio/pkg/render/markup"
)

// Name is the registry name of the component renderer.
const Name = "component"

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	indent   string
	withView bool
}

// WithIndent pretty-prints the payload.
func WithIndent(indent string) Option {
	return func(cfg *config) {
		cfg.indent = indent
	}
}

// WithView embeds the render.View next to the tree.
func WithView(enabled bool) Option {
	return func(cfg *config) {
		cfg.withView = enabled
	}
}

// Payload is the document written by Render.
type Payload struct {
	Template string           `json:"template,omitempty"`
	Layout   string           `json:"layout"`
	Theme    *ThemeContext    `json:"theme,omitempty"`
	Sections []render.Section `json:"sections"`
	View     *render.View     `json:"view,omitempty"`
	Tree     markup.Component `json:"tree"`
}

// ThemeContext is the client-facing projection of the resolved theme.
type ThemeContext struct {
	Name    string            `json:"name"`
	Variant string            `json:"variant,omitempty"`
	Tokens  map[string]string `json:"tokens,omitempty"`
	CSSVars map[string]string `json:"cssVars,omitempty"`
}

// Renderer turns a Profile into a component tree payload.
type Renderer struct {
	indent   string
	withView bool
}

// New constructs a component renderer applying any provided options.
func New(options ...Option) *Renderer {
	var cfg config
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Renderer{indent: cfg.indent, withView: cfg.withView}
}

// Name identifies the renderer inside the registry.
func (r *Renderer) Name() string {
	return Name
}

// ContentType returns the MIME type for generated payloads.
func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render produces the JSON payload for p.
func (r *Renderer) Render(ctx context.Context, p profile.Profile, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload := Build(p, opts)
	if !r.withView {
		payload.View = nil
	}

	var (
		data []byte
		err  error
	)
	if r.indent != "" {
		data, err = json.MarshalIndent(payload, "", r.indent)
	} else {
		data, err = json.Marshal(payload)
	}
	if err != nil {
		return nil, fmt.Errorf("component renderer: marshal payload: %w", err)
	}
	return data, nil
}

// Build assembles the payload without serialising it.
func Build(p profile.Profile, opts render.RenderOptions) Payload {
	view, root := layout.Compose(p, opts)
	sections := view.Sections()
	return Payload{
		Template: opts.Template,
		Layout:   layout.Get(opts.Layout).Name(),
		Theme:    buildThemeContext(opts.Theme),
		Sections: sections,
		View:     &view,
		Tree:     markup.ToComponent(root),
	}
}

func buildThemeContext(cfg *theme.RendererConfig) *ThemeContext {
	if cfg == nil {
		return nil
	}
	return &ThemeContext{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Tokens:  copyStringMap(cfg.Tokens),
		CSSVars: render.CSSVars(cfg),
	}
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

var _ render.Renderer = (*Renderer)(nil)

package static

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/render/layout"
	"github.com/goliatone/go-portfolio/pkg/render/markup"
)

// Name is the registry name of the static renderer.
const Name = "static"

type Option func(*config)

type config struct {
	name string
}

// WithName registers the renderer under a different name.
func WithName(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.name = name
		}
	}
}

type Renderer struct {
	name string
}

// New constructs the static renderer applying any provided options.
func New(options ...Option) *Renderer {
	cfg := config{name: Name}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Renderer{name: cfg.name}
}

func (r *Renderer) Name() string {
	return r.name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the portfolio fragment for p.
func (r *Renderer) Render(ctx context.Context, p profile.Profile, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, root := layout.Compose(p, opts)

	var buf bytes.Buffer
	if err := markup.RenderHTML(&buf, root); err != nil {
		return nil, fmt.Errorf("static renderer: %w", err)
	}
	return buf.Bytes(), nil
}

var _ render.Renderer = (*Renderer)(nil)

package render

import (
	"context"

	"github.com/goliatone/go-portfolio/pkg/profile"
)

// Renderer converts a Profile into a byte representation (HTML fragment,
// component tree JSON, etc.). Implementations must derive their output from
// BuildView so every surface shows the same sections and entries.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, p profile.Profile, options RenderOptions) ([]byte, error)
}

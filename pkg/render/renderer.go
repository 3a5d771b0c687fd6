package render

import (
	"context"

	"github.com/goliatone/go-fieldgroup/pkg/model"
)

// Renderer converts a field group into a byte representation (HTML, JSON
// collected from a terminal session, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, group model.Group, options RenderOptions) ([]byte, error)
}

package fieldgroup

import (
	"context"

	pkgopenapi "github.com/goliatone/go-fieldgroup/pkg/openapi"
	"github.com/goliatone/go-fieldgroup/pkg/orchestrator"
	"github.com/goliatone/go-fieldgroup/pkg/render"
)

// RenderOptions describes per-request values and runtime settings.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML loads the OpenAPI source, builds the group declared by schema
// and renders it with the vanilla renderer.
func GenerateHTML(ctx context.Context, source pkgopenapi.Source, schema string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:        source,
		Schema:        schema,
		Renderer:      "vanilla",
		RenderOptions: opts,
	})
}

// GenerateHTMLFromDocument renders a group using a pre-loaded document.
func GenerateHTMLFromDocument(ctx context.Context, doc pkgopenapi.Document, schema string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document:      &doc,
		Schema:        schema,
		Renderer:      "vanilla",
		RenderOptions: opts,
	})
}

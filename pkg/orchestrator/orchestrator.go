package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-fieldgroup/pkg/model"
	pkgopenapi "github.com/goliatone/go-fieldgroup/pkg/openapi"
	"github.com/goliatone/go-fieldgroup/pkg/render"
	"github.com/goliatone/go-fieldgroup/pkg/renderers/vanilla"
	"github.com/goliatone/go-fieldgroup/pkg/toggle"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader *pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
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

// WithTransformer registers a Transformer that mutates groups after they are
// built and before they are rendered. Transformers run in registration order.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.transformers = append(o.transformers, t)
		}
	}
}

// WithLogger sets the logger used for pipeline events and handed to the
// default vanilla renderer.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithObserver is handed to the default vanilla renderer.
func WithObserver(observer toggle.Observer) Option {
	return func(o *Orchestrator) {
		o.observer = observer
	}
}

// Orchestrator coordinates the pipeline from an OpenAPI document (or a
// ready-made group) to rendered output.
type Orchestrator struct {
	loader          *pkgopenapi.Loader
	registry        *render.Registry
	defaultRenderer string
	transformers    []Transformer
	logger          *zap.Logger
	observer        toggle.Observer
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies fall back to the built-in implementations.
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

// Request describes the inputs required to render a group.
type Request struct {
	// Group skips the loader entirely when set.
	Group *model.Group

	// Source identifies where the OpenAPI document lives. Optional when
	// Document or Group is supplied.
	Source pkgopenapi.Source

	// Document allows callers to bypass the loader when they already have the
	// payload.
	Document *pkgopenapi.Document

	// Schema names the component schema that declares the group.
	Schema string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request values and runtime settings.
	RenderOptions render.RenderOptions
}

// Generate resolves the group, runs the transformers and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	group, err := o.Group(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, group, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.Debug("fieldgroup: rendered group",
		zap.String("group", group.Name),
		zap.String("renderer", renderer.Name()),
		zap.Int("bytes", len(output)),
	)
	return output, nil
}

// Group resolves and transforms the group for req without rendering it.
func (o *Orchestrator) Group(ctx context.Context, req Request) (model.Group, error) {
	var group model.Group
	if req.Group != nil {
		group = req.Group.Clone()
	} else {
		if req.Schema == "" {
			return model.Group{}, errors.New("orchestrator: schema name is required")
		}
		doc, err := o.resolveDocument(ctx, req)
		if err != nil {
			return model.Group{}, err
		}
		group, err = pkgopenapi.LoadGroup(ctx, doc, req.Schema)
		if err != nil {
			return model.Group{}, fmt.Errorf("orchestrator: build group: %w", err)
		}
	}

	for _, t := range o.transformers {
		if err := t.Transform(ctx, &group); err != nil {
			return model.Group{}, fmt.Errorf("orchestrator: transform group: %w", err)
		}
	}
	return group, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.Document{}, errors.New("orchestrator: source, document or group is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
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
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.loader == nil {
		o.loader = pkgopenapi.NewLoader()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New(
			vanilla.WithLogger(o.logger),
			vanilla.WithObserver(o.observer),
		)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-fieldgroup/pkg/model"
	"github.com/goliatone/go-fieldgroup/pkg/render"
	rendertemplate "github.com/goliatone/go-fieldgroup/pkg/render/template"
	gotemplate "github.com/goliatone/go-fieldgroup/pkg/render/template/gotemplate"
	"github.com/goliatone/go-fieldgroup/pkg/runtime"
	"github.com/goliatone/go-fieldgroup/pkg/toggle"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	themeSelector    theme.ThemeSelector
	themeName        string
	themeVariant     string
	logger           *zap.Logger
	observers        []toggle.Observer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. It must
// contain templates/group.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme resolves the muted token from a go-theme selection. The
// "fieldgroup.muted" token wins over the group's own MutedClass.
func WithTheme(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.themeSelector = selector
		cfg.themeName = name
		cfg.themeVariant = variant
	}
}

// WithLogger forwards a logger to the toggler.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithObserver forwards a toggle observer, typically a metrics collector.
func WithObserver(observer toggle.Observer) Option {
	return func(cfg *config) {
		if observer != nil {
			cfg.observers = append(cfg.observers, observer)
		}
	}
}

// Renderer renders a group to HTML with the control and fields already in a
// consistent state, so the markup is correct before any script runs.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	cfg       config
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, cfg: cfg}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render merges submitted values, syncs the group and executes the group
// template.
func (r *Renderer) Render(ctx context.Context, group model.Group, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := group.Validate(); err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}

	group = opts.Apply(group)
	muted, err := r.mutedToken(group)
	if err != nil {
		return nil, err
	}
	group.MutedClass = muted
	group.Sync(r.toggler(group))

	result, err := r.templates.RenderTemplate(GroupTemplate, buildView(group, opts))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) toggler(group model.Group) *toggle.Toggler {
	opts := []toggle.Option{
		toggle.WithBinding(group.Binding()),
		toggle.WithLogger(r.cfg.logger),
	}
	for _, observer := range r.cfg.observers {
		opts = append(opts, toggle.WithObserver(observer))
	}
	return toggle.New(opts...)
}

func buildView(group model.Group, opts render.RenderOptions) map[string]any {
	binding := group.Binding()

	fields := make([]any, 0, len(group.Fields))
	for _, f := range group.Fields {
		fields = append(fields, map[string]any{
			"id":       fieldID(group.Name, f.Name),
			"name":     f.Name,
			"label":    f.Label,
			"type":     inputType(f.Type),
			"value":    f.Value,
			"help":     sanitizeHelp(f.Help),
			"disabled": f.Disabled,
			"classes":  append([]string(nil), f.Classes...),
		})
	}

	controlName := group.Control.Name
	if controlName == "" {
		controlName = group.Control.ID
	}

	runtimeView := map[string]any{}
	if opts.IncludeRuntime {
		if opts.RuntimeURL != "" {
			runtimeView["url"] = opts.RuntimeURL
		} else {
			runtimeView["inline"] = runtime.Script()
		}
	}

	return map[string]any{
		"group": map[string]any{
			"name":   group.Name,
			"legend": group.Legend,
		},
		"binding": map[string]any{
			"control": binding.ControlID,
			"fields":  binding.FieldClass,
			"muted":   binding.MutedClass,
		},
		"control": map[string]any{
			"id":      group.Control.ID,
			"name":    controlName,
			"label":   group.Control.Label,
			"checked": group.Control.Checked,
		},
		"fields":  fields,
		"runtime": runtimeView,
		"chrome": map[string]any{
			"group":   string(ClassGroup),
			"control": string(ClassControl),
			"field":   string(ClassField),
			"help":    string(ClassHelp),
		},
	}
}

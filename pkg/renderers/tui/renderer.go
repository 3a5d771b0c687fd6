package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-fieldgroup/pkg/model"
	"github.com/goliatone/go-fieldgroup/pkg/render"
	"github.com/goliatone/go-fieldgroup/pkg/toggle"
)

// Renderer implements render.Renderer for terminal sessions. It asks for the
// control first, syncs the group, then prompts only the fields left enabled.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	logger       *zap.Logger
	observers    []toggle.Observer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{outputFormat: OutputFormatJSON}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render runs the prompt session and serializes the collected values.
func (r *Renderer) Render(ctx context.Context, group model.Group, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	if err := group.Validate(); err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}

	group = opts.Apply(group)

	checked, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: controlLabel(group.Control),
		Default: group.Control.Checked,
	})
	if err != nil {
		return nil, err
	}
	group.Control.Checked = checked
	group.Sync(r.toggler(group))

	for i := range group.Fields {
		field := &group.Fields[i]
		if field.Disabled {
			if err := r.driver.Info(ctx, fmt.Sprintf("Skipping %s: %s is off", displayLabel(*field), controlLabel(group.Control))); err != nil {
				return nil, err
			}
			continue
		}
		value, err := r.promptField(ctx, *field)
		if err != nil {
			return nil, err
		}
		field.Value = value
	}

	return r.serialize(group.Values())
}

func (r *Renderer) promptField(ctx context.Context, field model.Field) (string, error) {
	if field.Type == model.FieldTypeTextarea {
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message: displayLabel(field),
			Default: field.Value,
			Help:    field.Help,
		})
	}
	return r.driver.Input(ctx, InputConfig{
		Message:   displayLabel(field),
		Default:   field.Value,
		Help:      field.Help,
		Validator: validatorFor(field),
	})
}

func (r *Renderer) toggler(group model.Group) *toggle.Toggler {
	opts := []toggle.Option{
		toggle.WithBinding(group.Binding()),
		toggle.WithLogger(r.logger),
	}
	for _, observer := range r.observers {
		opts = append(opts, toggle.WithObserver(observer))
	}
	return toggle.New(opts...)
}

func (r *Renderer) serialize(values map[string]string) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for k, v := range values {
			form.Set(k, v)
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		out, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode values: %w", err)
		}
		return out, nil
	}
}

func validatorFor(field model.Field) func(string) error {
	switch field.Type {
	case model.FieldTypeDate:
		return func(value string) error {
			if strings.TrimSpace(value) == "" {
				return nil
			}
			if _, err := time.Parse(time.DateOnly, strings.TrimSpace(value)); err != nil {
				return fmt.Errorf("%s must be a date (YYYY-MM-DD)", displayLabel(field))
			}
			return nil
		}
	default:
		return nil
	}
}

func controlLabel(c model.Control) string {
	if c.Label != "" {
		return c.Label
	}
	return c.ID
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func prettyPrint(values map[string]string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, values[k])
	}
	return b.String()
}

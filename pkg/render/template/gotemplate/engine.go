// Package gotemplate implements template.TemplateRenderer on pongo2.
package gotemplate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-fieldgroup/pkg/render/template"
)

const defaultExtension = ".tmpl"

// Option configures an Engine.
type Option func(*Engine)

// WithFS sets the template bundle. It is required.
func WithFS(files fs.FS) Option {
	return func(e *Engine) {
		e.files = files
	}
}

// WithExtension sets the suffix appended to names passed without one.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if ext[0] != '.' {
			ext = "." + ext
		}
		e.ext = ext
	}
}

// WithGlobalData seeds values visible to every template, such as a page title.
func WithGlobalData(data map[string]any) Option {
	return func(e *Engine) {
		for key, value := range data {
			e.globals[key] = value
		}
	}
}

// Engine renders named templates from an fs.FS. Compiled templates are cached
// by path.
type Engine struct {
	files   fs.FS
	ext     string
	globals map[string]any

	mu    sync.RWMutex
	set   *pongo2.TemplateSet
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine over the bundle given by WithFS.
func New(options ...Option) (*Engine, error) {
	e := &Engine{
		ext:     defaultExtension,
		globals: map[string]any{},
		cache:   map[string]*pongo2.Template{},
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.files == nil {
		return nil, errors.New("gotemplate: a template filesystem is required")
	}

	e.set = pongo2.NewSet("fieldgroup", pongo2.NewFSLoader(e.files))
	e.set.Globals = pongo2.Context{}
	if err := e.GlobalContext(e.globals); err != nil {
		return nil, err
	}
	return e, nil
}

// RenderTemplate executes the named template. ".tmpl" (or the configured
// extension) is appended when name lacks it.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, data, name, out)
}

// RenderString compiles and executes an inline template.
func (e *Engine) RenderString(source string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	tmpl, err := e.set.FromString(source)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return e.execute(tmpl, data, "inline template", out)
}

// GlobalContext merges data into the values visible to every template.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errors.New("gotemplate: engine is nil")
	}
	ctx, err := toContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: global data: %w", err)
	}
	e.mu.Lock()
	e.set.Globals.Update(ctx)
	e.mu.Unlock()
	return nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

func (e *Engine) execute(tmpl *pongo2.Template, data any, label string, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %s: %w", label, err)
	}
	e.mu.RLock()
	rendered, err := tmpl.Execute(ctx)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", fmt.Errorf("gotemplate: write %s: %w", label, err)
		}
	}
	return rendered, nil
}

// toContext turns view data into the plain maps and slices pongo2 walks.
// Structs are reshaped through their json tags, so templates use the same
// keys the JSON output does.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	plain, err := plainValue(data)
	if err != nil {
		return nil, err
	}
	m, ok := plain.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("view data must be an object, got %T", data)
	}
	return pongo2.Context(m), nil
}

func plainValue(v any) (any, error) {
	switch t := v.(type) {
	case nil, string, bool, int, int64, float64:
		return t, nil
	case pongo2.Context:
		return plainMap(t)
	case map[string]any:
		return plainMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			p, err := plainValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

func plainMap(in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(in))
	for key, value := range in {
		if key = strings.TrimSpace(key); key == "" {
			continue
		}
		p, err := plainValue(value)
		if err != nil {
			return nil, err
		}
		out[key] = p
	}
	return out, nil
}

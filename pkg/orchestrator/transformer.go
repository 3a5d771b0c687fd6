package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fieldgroup/pkg/model"
)

// Transformer mutates a Group before it is rendered.
type Transformer interface {
	Transform(ctx context.Context, group *model.Group) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, group *model.Group) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, group *model.Group) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, group)
}

// PresetTransformer applies declarative overrides loaded from a YAML or JSON
// document:
//
//	legend: Key account
//	control:
//	  label: Key account contact
//	muted: opacity-50
//	fields:
//	  status:
//	    label: Notes
//	    help: Visible to the account team only.
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Legend  string                 `yaml:"legend" json:"legend"`
	Muted   string                 `yaml:"muted" json:"muted"`
	Control presetControl          `yaml:"control" json:"control"`
	Fields  map[string]presetField `yaml:"fields" json:"fields"`
}

type presetControl struct {
	Label   string `yaml:"label" json:"label"`
	Checked *bool  `yaml:"checked" json:"checked"`
}

type presetField struct {
	Label  string `yaml:"label" json:"label"`
	Help   string `yaml:"help" json:"help"`
	Type   string `yaml:"type" json:"type"`
	Value  string `yaml:"value" json:"value"`
	Rename string `yaml:"rename" json:"rename"`
}

// NewPresetTransformer constructs a transformer from raw YAML or JSON bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied group.
func (t *PresetTransformer) Transform(ctx context.Context, group *model.Group) error {
	if group == nil {
		return errors.New("preset transformer: group is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := t.document
	if doc.Legend != "" {
		group.Legend = doc.Legend
	}
	if doc.Muted != "" {
		group.MutedClass = doc.Muted
	}
	if doc.Control.Label != "" {
		group.Control.Label = doc.Control.Label
	}
	if doc.Control.Checked != nil {
		group.Control.Checked = *doc.Control.Checked
	}

	for name, patch := range doc.Fields {
		field := findField(group.Fields, name)
		if field == nil {
			return fmt.Errorf("preset transformer: field %q not found", name)
		}
		applyFieldPatch(field, patch)
	}
	return nil
}

func applyFieldPatch(field *model.Field, patch presetField) {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Help != "" {
		field.Help = patch.Help
	}
	if patch.Type != "" {
		field.Type = patch.Type
	}
	if patch.Value != "" {
		field.Value = patch.Value
	}
	if rename := strings.TrimSpace(patch.Rename); rename != "" {
		field.Name = rename
	}
}

func findField(fields []model.Field, name string) *model.Field {
	for i := range fields {
		if fields[i].Name == name {
			return &fields[i]
		}
	}
	return nil
}

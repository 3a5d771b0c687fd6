package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-fieldgroup/pkg/toggle"
)

// Field types understood by the renderers.
const (
	FieldTypeText     = "text"
	FieldTypeDate     = "date"
	FieldTypeTextarea = "textarea"
	FieldTypeEmail    = "email"
	FieldTypeNumber   = "number"
)

// Control describes the checkbox governing a group.
type Control struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// controlState adapts Control to toggle.Control; Control.Checked is a field.
type controlState struct {
	checked bool
}

func (c controlState) Checked() bool { return c.checked }

// Toggle exposes the control as a toggle.Control.
func (c Control) Toggle() toggle.Control {
	return controlState{checked: c.Checked}
}

// Field describes a dependent input.
type Field struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Value    string   `json:"value,omitempty"`
	Help     string   `json:"help,omitempty"`
	Disabled bool     `json:"disabled"`
	Classes  []string `json:"classes,omitempty"`
}

var _ toggle.Field = (*Field)(nil)

// SetDisabled implements toggle.Field.
func (f *Field) SetDisabled(disabled bool) {
	f.Disabled = disabled
}

// AddClass implements toggle.Field. tokens may hold several space-separated
// classes.
func (f *Field) AddClass(tokens string) {
	for _, token := range strings.Fields(tokens) {
		if !f.HasClass(token) {
			f.Classes = append(f.Classes, token)
		}
	}
}

// RemoveClass implements toggle.Field.
func (f *Field) RemoveClass(tokens string) {
	drop := strings.Fields(tokens)
	if len(f.Classes) == 0 || len(drop) == 0 {
		return
	}
	out := make([]string, 0, len(f.Classes))
	for _, c := range f.Classes {
		if !slices.Contains(drop, c) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		out = nil
	}
	f.Classes = out
}

// HasClass reports whether token is present.
func (f Field) HasClass(token string) bool {
	for _, c := range f.Classes {
		if c == token {
			return true
		}
	}
	return false
}

// ClassList joins the classes for markup.
func (f Field) ClassList() string {
	return strings.Join(f.Classes, " ")
}

// Group is a control plus the fields it governs.
type Group struct {
	Name       string  `json:"name"`
	Legend     string  `json:"legend,omitempty"`
	Control    Control `json:"control"`
	FieldClass string  `json:"fieldClass"`
	MutedClass string  `json:"mutedClass,omitempty"`
	Fields     []Field `json:"fields"`
}

// Binding derives the toggle binding for the group.
func (g Group) Binding() toggle.Binding {
	return toggle.Binding{
		ControlID:  g.Control.ID,
		FieldClass: g.FieldClass,
		MutedClass: g.MutedClass,
	}.Normalize()
}

// ToggleFields returns pointers into g.Fields so a toggler mutates the group.
func (g *Group) ToggleFields() []toggle.Field {
	out := make([]toggle.Field, 0, len(g.Fields))
	for i := range g.Fields {
		out = append(out, &g.Fields[i])
	}
	return out
}

// Sync projects the control state onto the fields. A nil toggler uses the
// group's own binding.
func (g *Group) Sync(t *toggle.Toggler) toggle.Result {
	if t == nil {
		t = toggle.New(toggle.WithBinding(g.Binding()))
	}
	for i := range g.Fields {
		g.Fields[i].AddClass(g.Binding().FieldClass)
	}
	return t.Apply(g.Control.Toggle(), g.ToggleFields())
}

// WithValues returns a copy of the group with the control state and field
// values taken from a submission. Values for fields that end up disabled are
// ignored, matching what a browser would have posted.
func (g Group) WithValues(values map[string]string) Group {
	out := g.Clone()
	if len(values) == 0 {
		out.Control.Checked = false
		return out
	}
	out.Control.Checked = truthy(values[controlKey(out.Control)])
	if !out.Control.Checked {
		return out
	}
	for i := range out.Fields {
		if v, ok := values[out.Fields[i].Name]; ok {
			out.Fields[i].Value = v
		}
	}
	return out
}

// Values collects the submitted values: the control plus every enabled field.
func (g Group) Values() map[string]string {
	out := map[string]string{controlKey(g.Control): boolString(g.Control.Checked)}
	for _, f := range g.Fields {
		if f.Disabled {
			continue
		}
		out[f.Name] = f.Value
	}
	return out
}

// Clone deep-copies the group.
func (g Group) Clone() Group {
	out := g
	out.Fields = make([]Field, len(g.Fields))
	for i, f := range g.Fields {
		f.Classes = append([]string(nil), f.Classes...)
		out.Fields[i] = f
	}
	return out
}

var (
	// ErrMissingControlID is returned when the control has no id.
	ErrMissingControlID = errors.New("model: control id is required")
	// ErrMissingFieldClass is returned when the group marker is blank.
	ErrMissingFieldClass = errors.New("model: field class is required")
)

// Validate checks structural requirements.
func (g Group) Validate() error {
	if strings.TrimSpace(g.Control.ID) == "" {
		return ErrMissingControlID
	}
	if strings.TrimSpace(g.FieldClass) == "" {
		return ErrMissingFieldClass
	}
	if err := g.Binding().Validate(); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	seen := make(map[string]struct{}, len(g.Fields))
	for i, f := range g.Fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return fmt.Errorf("model: field %d has no name", i)
		}
		if name == controlKey(g.Control) {
			return fmt.Errorf("model: field %q collides with the control name", name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("model: duplicate field %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func controlKey(c Control) string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	return c.ID
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

func boolString(v bool) string {
	if v {
		return "on"
	}
	return ""
}

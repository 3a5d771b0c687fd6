package openapi

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-fieldgroup/pkg/model"
	"github.com/goliatone/go-fieldgroup/pkg/toggle"
)

// Vendor extensions read by LoadGroup.
const (
	ExtensionControl = "x-fieldgroup-control"
	ExtensionGroup   = "x-fieldgroup"
	ExtensionOrder   = "x-fieldgroup-order"
	ExtensionMuted   = "x-fieldgroup-muted"
)

// textareaThreshold is the maxLength above which strings render as textareas.
const textareaThreshold = 255

var (
	// ErrSchemaNotFound is returned when components.schemas lacks the name.
	ErrSchemaNotFound = errors.New("openapi: schema not found")
	// ErrNoControl is returned when no property carries x-fieldgroup-control.
	ErrNoControl = errors.New("openapi: schema has no fieldgroup control")
	// ErrControlNotBoolean is returned when the control property is not a boolean.
	ErrControlNotBoolean = errors.New("openapi: fieldgroup control must be a boolean")
	// ErrMultipleControls is returned when more than one property is a control.
	ErrMultipleControls = errors.New("openapi: schema has more than one fieldgroup control")
)

// LoadGroup builds a group from components.schemas[schemaName]. The control
// id is "<group>-checkbox" and the field marker "<group>-field".
func LoadGroup(ctx context.Context, doc Document, schemaName string) (model.Group, error) {
	if err := ctx.Err(); err != nil {
		return model.Group{}, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return model.Group{}, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	api, err := loader.LoadFromData(raw)
	if err != nil {
		return model.Group{}, fmt.Errorf("openapi: load %s: %w", doc.Location(), err)
	}

	var ref *openapi3.SchemaRef
	if api.Components != nil {
		ref = api.Components.Schemas[schemaName]
	}
	if ref == nil || ref.Value == nil {
		return model.Group{}, fmt.Errorf("%w: %q", ErrSchemaNotFound, schemaName)
	}
	schema := ref.Value

	controlName, groupName, err := findControl(schema)
	if err != nil {
		return model.Group{}, fmt.Errorf("openapi: schema %q: %w", schemaName, err)
	}
	controlSchema := schema.Properties[controlName].Value

	group := model.Group{
		Name:   groupName,
		Legend: schema.Title,
		Control: model.Control{
			ID:      groupName + "-checkbox",
			Name:    controlName,
			Label:   labelFor(controlName, controlSchema),
			Checked: defaultBool(controlSchema.Default),
		},
		FieldClass: groupName + "-field",
		MutedClass: stringExtension(controlSchema.Extensions, ExtensionMuted),
	}
	if group.MutedClass == "" {
		group.MutedClass = toggle.DefaultMutedClass
	}

	type candidate struct {
		order    float64
		hasOrder bool
		field    model.Field
	}
	var candidates []candidate
	for name, prop := range schema.Properties {
		if name == controlName || prop == nil || prop.Value == nil {
			continue
		}
		if stringExtension(prop.Value.Extensions, ExtensionGroup) != groupName {
			continue
		}
		order, hasOrder := numberExtension(prop.Value.Extensions, ExtensionOrder)
		candidates = append(candidates, candidate{
			order:    order,
			hasOrder: hasOrder,
			field:    fieldFromSchema(name, prop.Value),
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.hasOrder != b.hasOrder {
			return a.hasOrder
		}
		if a.order != b.order {
			return a.order < b.order
		}
		return a.field.Name < b.field.Name
	})
	for _, c := range candidates {
		group.Fields = append(group.Fields, c.field)
	}

	return group, nil
}

func findControl(schema *openapi3.Schema) (property, group string, err error) {
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop := schema.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		value, ok := prop.Value.Extensions[ExtensionControl]
		if !ok {
			continue
		}
		groupName, marked := controlGroup(name, value)
		if !marked {
			continue
		}
		if property != "" {
			return "", "", ErrMultipleControls
		}
		if !isBoolean(prop.Value) {
			return "", "", fmt.Errorf("%w: %q", ErrControlNotBoolean, name)
		}
		property, group = name, groupName
	}
	if property == "" {
		return "", "", ErrNoControl
	}
	return property, group, nil
}

// controlGroup reads the control extension: a string names the group, true
// uses the property name.
func controlGroup(property string, value any) (string, bool) {
	switch v := value.(type) {
	case string:
		if v = strings.TrimSpace(v); v != "" {
			return v, true
		}
	case bool:
		if v {
			return property, true
		}
	}
	return "", false
}

func fieldFromSchema(name string, schema *openapi3.Schema) model.Field {
	field := model.Field{
		Name:  name,
		Label: labelFor(name, schema),
		Type:  fieldType(schema),
		Help:  strings.TrimSpace(schema.Description),
	}
	if schema.Default != nil {
		field.Value = fmt.Sprint(schema.Default)
	}
	return field
}

func fieldType(schema *openapi3.Schema) string {
	switch {
	case schema.Format == "date":
		return model.FieldTypeDate
	case schema.Format == "email":
		return model.FieldTypeEmail
	case hasType(schema, openapi3.TypeInteger) || hasType(schema, openapi3.TypeNumber):
		return model.FieldTypeNumber
	case schema.MaxLength != nil && *schema.MaxLength > textareaThreshold:
		return model.FieldTypeTextarea
	default:
		return model.FieldTypeText
	}
}

func isBoolean(schema *openapi3.Schema) bool {
	return hasType(schema, openapi3.TypeBoolean)
}

func hasType(schema *openapi3.Schema, want string) bool {
	if schema.Type == nil {
		return false
	}
	for _, t := range schema.Type.Slice() {
		if t == want {
			return true
		}
	}
	return false
}

func labelFor(name string, schema *openapi3.Schema) string {
	if title := strings.TrimSpace(schema.Title); title != "" {
		return title
	}
	return name
}

func defaultBool(value any) bool {
	b, ok := value.(bool)
	return ok && b
}

func stringExtension(ext map[string]any, key string) string {
	if v, ok := ext[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func numberExtension(ext map[string]any, key string) (float64, bool) {
	switch v := ext[key].(type) {
	case float64:
		return v, !math.IsNaN(v)
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

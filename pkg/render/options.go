package render

import "github.com/goliatone/go-fieldgroup/pkg/model"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the group definition.
type RenderOptions struct {
	// Values pre-populates the control and fields by name, typically from a
	// form submission. The control is checked when its value is "on", "true",
	// "1" or "yes".
	Values map[string]string
	// IncludeRuntime asks HTML renderers to append the browser runtime that
	// re-syncs the group on load and whenever the control changes.
	IncludeRuntime bool
	// RuntimeURL points the runtime script tag at a served asset. When empty
	// the script is inlined.
	RuntimeURL string
}

// Apply returns a copy of group with Values merged in. Without values the
// group is cloned unchanged.
func (o RenderOptions) Apply(group model.Group) model.Group {
	if o.Values == nil {
		return group.Clone()
	}
	return group.WithValues(o.Values)
}

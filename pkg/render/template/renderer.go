package template

import (
	"io"
)

// TemplateRenderer is the engine contract HTML renderers depend on.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(source string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}

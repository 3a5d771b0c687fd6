package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// GroupTemplate is the entry template rendered for every group.
const GroupTemplate = "templates/group.tmpl"

// TemplatesFS exposes the embedded template bundle so callers can copy or
// override it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

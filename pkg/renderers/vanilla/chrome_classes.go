package vanilla

// ChromeClass is a typed identifier for the structural CSS classes emitted
// around a group.
type ChromeClass string

const (
	ClassGroup   ChromeClass = "fieldgroup"
	ClassControl ChromeClass = "fieldgroup-control"
	ClassField   ChromeClass = "fieldgroup-field"
	ClassHelp    ChromeClass = "fieldgroup-help"
)

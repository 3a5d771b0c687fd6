package vanilla

import "strings"

// fieldID derives a stable element id for a field inside a group.
func fieldID(group, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if group = strings.TrimSpace(group); group == "" {
		return "fg-" + name
	}
	return "fg-" + group + "-" + name
}

func inputType(fieldType string) string {
	switch strings.ToLower(strings.TrimSpace(fieldType)) {
	case "date", "email", "number", "textarea":
		return strings.ToLower(strings.TrimSpace(fieldType))
	default:
		return "text"
	}
}

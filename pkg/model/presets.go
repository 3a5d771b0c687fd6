package model

import "github.com/goliatone/go-fieldgroup/pkg/toggle"

// VIPGroup returns the contact form's VIP section: a checkbox and the
// follow-up fields that only apply to VIP contacts.
func VIPGroup() Group {
	return Group{
		Name:   "vip",
		Legend: "VIP details",
		Control: Control{
			ID:    toggle.DefaultControlID,
			Name:  "vip",
			Label: "VIP contact",
		},
		FieldClass: toggle.DefaultFieldClass,
		MutedClass: toggle.DefaultMutedClass,
		Fields: []Field{
			{Name: "last_met", Label: "Last met", Type: FieldTypeDate},
			{Name: "last_contacted", Label: "Last contacted", Type: FieldTypeDate},
			{Name: "last_update", Label: "Last update", Type: FieldTypeDate},
			{Name: "status", Label: "Status", Type: FieldTypeTextarea, Help: "Where things stand with this contact."},
		},
	}
}

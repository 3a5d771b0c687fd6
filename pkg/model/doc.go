// Package model defines the field group consumed by renderers: a checkbox
// Control plus the Fields it governs. Group.Sync runs the toggle projection
// over the group in place, so renderers only ever see a consistent state.
// Values submitted through a form are merged with WithValues, which drops
// values for fields the control leaves disabled.
package model

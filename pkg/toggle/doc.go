// Package toggle keeps a group of dependent fields in step with a single
// checkbox. After a pass every field is disabled exactly when the control is
// unchecked, and carries the muted background token exactly when disabled.
//
// The package never looks anything up on its own: callers hand it a Control
// and the Fields directly (Apply) or a Resolver that finds them by id and
// group marker (Sync). Hosts are expected to call it once when the form is
// first built and again whenever the control changes.
package toggle

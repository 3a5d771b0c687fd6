// Package fieldgroup keeps a checkbox and the fields it governs consistent:
// every dependent field is disabled and muted exactly when the checkbox is
// unchecked. See pkg/toggle for the core projection.
package fieldgroup

import (
	"fmt"
	"io"

	"github.com/goliatone/go-fieldgroup/pkg/dom"
	"github.com/goliatone/go-fieldgroup/pkg/toggle"
)

// SyncHTML parses a page, runs one toggle pass over it and writes the updated
// markup to w. A page without the control is written back unchanged.
func SyncHTML(r io.Reader, w io.Writer, opts ...toggle.Option) (toggle.Result, error) {
	doc, err := dom.Parse(r)
	if err != nil {
		return toggle.Result{}, fmt.Errorf("fieldgroup: %w", err)
	}
	result := toggle.New(opts...).Sync(doc)
	if err := doc.Render(w); err != nil {
		return result, fmt.Errorf("fieldgroup: write html: %w", err)
	}
	return result, nil
}

// Package dom implements a minimal server-side HTML document on top of
// golang.org/x/net/html so field groups can be synchronized before a page is
// sent to the browser.
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"

	"github.com/goliatone/go-fieldgroup/pkg/toggle"
)

// Document wraps a parsed HTML tree.
type Document struct {
	root *html.Node
}

// Ensure Document can drive a toggler directly.
var _ toggle.Resolver = (*Document)(nil)

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, errors.New("dom: reader is required")
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString parses markup held in memory.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// ElementByID returns the first element whose id attribute matches.
func (d *Document) ElementByID(id string) (*Element, bool) {
	if d == nil || d.root == nil || id == "" {
		return nil, false
	}
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if v, ok := attr(n, "id"); ok && v == id {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil, false
	}
	return &Element{node: found}, true
}

// ElementsByClass returns every element carrying class, in document order.
// class must be a single token; a value containing whitespace matches
// nothing.
func (d *Document) ElementsByClass(class string) []*Element {
	if d == nil || d.root == nil || class == "" || strings.ContainsFunc(class, unicode.IsSpace) {
		return nil
	}
	var out []*Element
	walk(d.root, func(n *html.Node) bool {
		el := &Element{node: n}
		if el.HasClass(class) {
			out = append(out, el)
		}
		return true
	})
	return out
}

// Control implements toggle.Resolver.
func (d *Document) Control(id string) (toggle.Control, bool) {
	el, ok := d.ElementByID(id)
	if !ok {
		return nil, false
	}
	return el, true
}

// Fields implements toggle.Resolver.
func (d *Document) Fields(marker string) []toggle.Field {
	elements := d.ElementsByClass(marker)
	if len(elements) == 0 {
		return nil
	}
	out := make([]toggle.Field, 0, len(elements))
	for _, el := range elements {
		out = append(out, el)
	}
	return out
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	if d == nil || d.root == nil {
		return errors.New("dom: document is empty")
	}
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("dom: render: %w", err)
	}
	return nil
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Format renders the document with indentation.
func (d *Document) Format() string {
	return gohtml.Format(d.String())
}

func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if n.Type == html.ElementNode && !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

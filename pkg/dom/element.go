package dom

import (
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-fieldgroup/pkg/toggle"
)

// Element is a handle to a node inside a Document. Mutations apply to the
// underlying tree.
type Element struct {
	node *html.Node
}

var (
	_ toggle.Control = (*Element)(nil)
	_ toggle.Field   = (*Element)(nil)
)

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// ID returns the id attribute.
func (e *Element) ID() string {
	v, _ := attr(e.node, "id")
	return v
}

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(key string) (string, bool) {
	return attr(e.node, key)
}

// SetAttr sets or replaces an attribute.
func (e *Element) SetAttr(key, value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttr deletes an attribute if present.
func (e *Element) RemoveAttr(key string) {
	out := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	e.node.Attr = out
}

// Checked reports the presence of the checked attribute.
func (e *Element) Checked() bool {
	_, ok := e.Attr("checked")
	return ok
}

// SetChecked toggles the checked attribute.
func (e *Element) SetChecked(checked bool) {
	e.setBool("checked", checked)
}

// Disabled reports the presence of the disabled attribute.
func (e *Element) Disabled() bool {
	_, ok := e.Attr("disabled")
	return ok
}

// SetDisabled toggles the disabled attribute.
func (e *Element) SetDisabled(disabled bool) {
	e.setBool("disabled", disabled)
}

// Classes returns the class tokens in attribute order.
func (e *Element) Classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

// HasClass reports whether token is part of the class list.
func (e *Element) HasClass(token string) bool {
	return slices.Contains(e.Classes(), token)
}

// AddClass appends each space-separated token that is not already present.
func (e *Element) AddClass(tokens string) {
	classes := e.Classes()
	changed := false
	for _, token := range strings.Fields(tokens) {
		if !slices.Contains(classes, token) {
			classes = append(classes, token)
			changed = true
		}
	}
	if changed {
		e.setClasses(classes)
	}
}

// RemoveClass drops every occurrence of each space-separated token.
func (e *Element) RemoveClass(tokens string) {
	drop := strings.Fields(tokens)
	if len(drop) == 0 {
		return
	}
	classes := e.Classes()
	out := slices.DeleteFunc(slices.Clone(classes), func(c string) bool {
		return slices.Contains(drop, c)
	})
	if len(out) == len(classes) {
		return
	}
	e.setClasses(out)
}

func (e *Element) setClasses(classes []string) {
	if len(classes) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.SetAttr("class", strings.Join(classes, " "))
}

// Boolean attributes render as presence-only.
func (e *Element) setBool(key string, on bool) {
	if !on {
		e.RemoveAttr(key)
		return
	}
	if _, ok := e.Attr(key); ok {
		e.SetAttr(key, "")
		return
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key})
}

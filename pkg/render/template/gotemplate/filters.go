package gotemplate

import (
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// pongo2 filters are process-wide, so they are registered once here.
func init() {
	mustRegisterFilter("trim", filterTrim)
	mustRegisterFilter("classlist", filterClassList)
}

func mustRegisterFilter(name string, fn pongo2.FilterFunction) {
	if err := registerFilter(name, fn); err != nil {
		panic(err)
	}
}

func registerFilter(name string, fn pongo2.FilterFunction) error {
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already registered", name)
	}
	if err := pongo2.RegisterFilter(name, fn); err != nil {
		return fmt.Errorf("gotemplate: register filter %q: %w", name, err)
	}
	return nil
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterClassList joins a list of class tokens, dropping blanks and
// duplicates: {{ field.classes|classlist }}.
func filterClassList(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var tokens []string
	if in.CanSlice() {
		for i := 0; i < in.Len(); i++ {
			tokens = append(tokens, strings.Fields(in.Index(i).String())...)
		}
	} else {
		tokens = strings.Fields(in.String())
	}

	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return pongo2.AsValue(strings.Join(out, " ")), nil
}

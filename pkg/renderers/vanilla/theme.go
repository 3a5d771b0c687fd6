package vanilla

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-fieldgroup/pkg/model"
)

// MutedToken is the theme token that names the muted background class.
const MutedToken = "fieldgroup.muted"

func (r *Renderer) mutedToken(group model.Group) (string, error) {
	fallback := group.Binding().MutedClass
	if r.cfg.themeSelector == nil {
		return fallback, nil
	}

	selection, err := r.cfg.themeSelector.Select(r.cfg.themeName, r.cfg.themeVariant)
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: select theme %q: %w", r.cfg.themeName, err)
	}
	if selection == nil || selection.Manifest == nil {
		return fallback, nil
	}

	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		if token := strings.TrimSpace(variant.Tokens[MutedToken]); token != "" {
			return token, nil
		}
	}
	if token := strings.TrimSpace(selection.Manifest.Tokens[MutedToken]); token != "" {
		return token, nil
	}
	return fallback, nil
}

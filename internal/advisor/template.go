package advisor

import (
	"github.com/campusdesk/email-advisor/internal/knowledge"
)

// Resolution describes how a template key was looked up.
type Resolution int

// Resolution values.
const (
	ResolvedExplicit Resolution = iota // caller-supplied or extracted metadata
	ResolvedDefault                    // fell back to a configured default
	ResolvedMissing                    // not found anywhere
)

// renderContext resolves {key} placeholders against defaults overridden by
// the working metadata, tracking which keys fell back to a default and
// which were missing entirely. Tracking sets are fresh per render.
type renderContext struct {
	defaults     map[string]string
	overrides    map[string]string
	usedDefaults map[string]struct{}
	missing      map[string]struct{}
}

func newRenderContext(defaults, overrides map[string]string) *renderContext {
	return &renderContext{
		defaults:     defaults,
		overrides:    overrides,
		usedDefaults: make(map[string]struct{}),
		missing:      make(map[string]struct{}),
	}
}

// lookup resolves one key. Caller values always win over defaults;
// presence decides, so an explicitly supplied empty string is explicit.
func (c *renderContext) lookup(key string) (string, Resolution) {
	if v, ok := c.overrides[key]; ok {
		return v, ResolvedExplicit
	}
	if v, ok := c.defaults[key]; ok {
		return v, ResolvedDefault
	}
	return "", ResolvedMissing
}

// render substitutes every placeholder in the template. Missing keys keep
// their literal {key} text so the gap stays visible for manual correction.
func (c *renderContext) render(tmpl string) string {
	return knowledge.PlaceholderPattern().ReplaceAllStringFunc(tmpl, func(placeholder string) string {
		key := placeholder[1 : len(placeholder)-1]
		value, res := c.lookup(key)
		switch res {
		case ResolvedExplicit:
			return value
		case ResolvedDefault:
			c.usedDefaults[key] = struct{}{}
			return value
		default:
			c.missing[key] = struct{}{}
			return placeholder
		}
	})
}

// values returns the fully merged lookup view, for handing to composers.
func (c *renderContext) values() map[string]string {
	merged := make(map[string]string, len(c.defaults)+len(c.overrides))
	for k, v := range c.defaults {
		merged[k] = v
	}
	for k, v := range c.overrides {
		merged[k] = v
	}
	return merged
}

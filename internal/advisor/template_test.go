package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderContext_ExplicitWinsOverDefault(t *testing.T) {
	ctx := newRenderContext(
		map[string]string{"student_name": "there"},
		map[string]string{"student_name": "Jordan"},
	)

	out := ctx.render("Hello {student_name}!")

	assert.Equal(t, "Hello Jordan!", out)
	assert.Empty(t, ctx.usedDefaults)
	assert.Empty(t, ctx.missing)
}

func TestRenderContext_DefaultFallbackIsTracked(t *testing.T) {
	ctx := newRenderContext(
		map[string]string{"term": "the upcoming term"},
		map[string]string{},
	)

	out := ctx.render("Registration for {term} is open.")

	assert.Equal(t, "Registration for the upcoming term is open.", out)
	assert.Contains(t, ctx.usedDefaults, "term")
}

func TestRenderContext_MissingKeepsLiteralPlaceholder(t *testing.T) {
	ctx := newRenderContext(map[string]string{}, map[string]string{})

	out := ctx.render("Contact {advisor_name} for details.")

	assert.Equal(t, "Contact {advisor_name} for details.", out)
	assert.Contains(t, ctx.missing, "advisor_name")
}

func TestRenderContext_EmptyOverrideIsExplicit(t *testing.T) {
	ctx := newRenderContext(
		map[string]string{"term": "the upcoming term"},
		map[string]string{"term": ""},
	)

	out := ctx.render("[{term}]")

	// Presence wins: the caller asked for an empty value, so the default
	// is not consulted and nothing is reported as defaulted.
	assert.Equal(t, "[]", out)
	assert.Empty(t, ctx.usedDefaults)
	assert.Empty(t, ctx.missing)
}

func TestRenderContext_RepeatedKeysResolveConsistently(t *testing.T) {
	ctx := newRenderContext(
		map[string]string{},
		map[string]string{"student_name": "Ana"},
	)

	out := ctx.render("{student_name}, {student_name}, and {other}")

	assert.Equal(t, "Ana, Ana, and {other}", out)
	assert.Len(t, ctx.missing, 1)
}

func TestRenderContext_Values(t *testing.T) {
	ctx := newRenderContext(
		map[string]string{"a": "1", "b": "2"},
		map[string]string{"b": "3", "c": "4", "d": ""},
	)

	values := ctx.values()

	assert.Equal(t, map[string]string{"a": "1", "b": "3", "c": "4", "d": ""}, values)
}

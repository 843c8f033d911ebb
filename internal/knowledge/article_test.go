package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validArticle(id string) Article {
	return Article{
		ID:         id,
		Subject:    "Dropping a class",
		Response:   "Hello {student_name}, here is how to drop.",
		Utterances: []string{"drop a class"},
	}
}

func TestNewBase_Valid(t *testing.T) {
	base, err := NewBase([]Article{validArticle("a"), validArticle("b")})
	require.NoError(t, err)

	assert.Equal(t, 2, base.Len())

	article, ok := base.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "b", article.ID)

	_, ok = base.Get("missing")
	assert.False(t, ok)
}

func TestNewBase_EmptyID(t *testing.T) {
	_, err := NewBase([]Article{validArticle("")})
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestNewBase_DuplicateID(t *testing.T) {
	_, err := NewBase([]Article{validArticle("a"), validArticle("a")})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestNewBase_NoUtterances(t *testing.T) {
	article := validArticle("a")
	article.Utterances = nil
	_, err := NewBase([]Article{article})
	assert.ErrorIs(t, err, ErrNoUtterances)
}

func TestNewBase_MalformedTemplate(t *testing.T) {
	article := validArticle("a")
	article.Response = "Hello {student_name, your deadline passed."
	_, err := NewBase([]Article{article})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed placeholder")

	article = validArticle("b")
	article.Subject = "Broken } subject"
	_, err = NewBase([]Article{article})
	assert.Error(t, err)
}

func TestNewBase_EmptyIsValid(t *testing.T) {
	base, err := NewBase(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, base.Len())
}

func TestTemplateKeys_FirstOccurrenceOrder(t *testing.T) {
	keys := TemplateKeys("Hi {student_name}, {term} ends {deadline}. Bye {student_name}.")
	assert.Equal(t, []string{"student_name", "term", "deadline"}, keys)

	assert.Empty(t, TemplateKeys("no placeholders here"))
}

func TestArticle_TemplateKeys_CoversSubjectAndResponse(t *testing.T) {
	article := Article{
		Subject:  "About {term} registration",
		Response: "Hello {student_name}, {term} registration closes {registration_deadline}.",
	}

	keys := article.TemplateKeys()
	assert.Equal(t, []string{"term", "student_name", "registration_deadline"}, keys)

	assert.Empty(t, Article{Subject: "Plain", Response: "No placeholders."}.TemplateKeys())
}

func TestDefaultBase_IsValidAndNonEmpty(t *testing.T) {
	base := DefaultBase()
	require.NotNil(t, base)
	assert.Greater(t, base.Len(), 0)

	// The built-in articles must themselves pass validation.
	_, err := NewBase(base.Articles())
	assert.NoError(t, err)
}

func TestDefaultReferences_NonEmpty(t *testing.T) {
	refs := DefaultReferences()
	assert.NotEmpty(t, refs)
	for _, ref := range refs {
		assert.NotEmpty(t, ref.Title)
		assert.NotEmpty(t, ref.Content)
	}
}

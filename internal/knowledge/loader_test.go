package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBaseYAML = `
articles:
  - id: drop-class
    subject: "Dropping a class"
    response: "Hello {student_name}, here is how to drop."
    utterances:
      - drop a class
      - how do i withdraw from a course
    categories:
      - registration
    metadata:
      withdrawal_deadline: "November 14"
    follow_up_questions:
      - Which class do you want to drop?
`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_Valid(t *testing.T) {
	path := writeTempFile(t, "kb.yaml", sampleBaseYAML)

	base, err := LoadFile(path)
	require.NoError(t, err)

	require.Equal(t, 1, base.Len())
	article, ok := base.Get("drop-class")
	require.True(t, ok)
	assert.Equal(t, "Dropping a class", article.Subject)
	assert.Len(t, article.Utterances, 2)
	assert.Equal(t, "November 14", article.Metadata["withdrawal_deadline"])
	assert.Equal(t, []string{"Which class do you want to drop?"}, article.FollowUpQuestions)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read knowledge base")
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	path := writeTempFile(t, "kb.yaml", "articles: [not: closed")
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse knowledge base")
}

func TestLoadFile_ValidationFailure(t *testing.T) {
	path := writeTempFile(t, "kb.yaml", `
articles:
  - id: broken
    subject: "No utterances"
    response: "Text"
`)
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoUtterances)
}

func TestLoadReferences_Valid(t *testing.T) {
	path := writeTempFile(t, "refs.yaml", `
references:
  - title: "Withdrawal policy"
    url: "https://example.edu/withdrawal"
    content: "How to drop or withdraw from a class."
    categories:
      - registration
`)

	refs, err := LoadReferences(path)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "Withdrawal policy", refs[0].Title)
	assert.Equal(t, []string{"registration"}, refs[0].Categories)
}

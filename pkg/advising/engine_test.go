package advising

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdesk/email-advisor/internal/advisor"
	"github.com/campusdesk/email-advisor/internal/knowledge"
)

func baseWith(t *testing.T, articles ...knowledge.Article) *knowledge.Base {
	t.Helper()
	base, err := knowledge.NewBase(articles)
	require.NoError(t, err)
	return base
}

func dropArticle() knowledge.Article {
	return knowledge.Article{
		ID:         "drop-class",
		Subject:    "Dropping a class",
		Response:   "Hello {student_name}, here is how to drop.",
		Utterances: []string{"drop a class"},
	}
}

func transcriptArticle() knowledge.Article {
	return knowledge.Article{
		ID:         "transcript",
		Subject:    "Requesting a transcript",
		Response:   "Hello {student_name}, order transcripts online.",
		Utterances: []string{"request a transcript"},
	}
}

func TestEngine_Process_DelegatesToAdvisor(t *testing.T) {
	e := New(baseWith(t, dropArticle()), advisor.DefaultConfidenceSettings())

	resp := e.Process("drop a class", nil)

	assert.Equal(t, advisor.DecisionAutoSend, resp.Decision)
	assert.Equal(t, "drop-class", resp.ArticleID)
}

func TestEngine_Reload_SwapsKnowledgeBase(t *testing.T) {
	e := New(baseWith(t, dropArticle()), advisor.DefaultConfidenceSettings())

	before := e.Process("request a transcript", nil)
	assert.Equal(t, advisor.DecisionNeedsReview, before.Decision)

	require.NoError(t, e.Reload(baseWith(t, dropArticle(), transcriptArticle())))

	after := e.Process("request a transcript", nil)
	assert.Equal(t, advisor.DecisionAutoSend, after.Decision)
	assert.Equal(t, "transcript", after.ArticleID)
}

func TestEngine_Reload_NilBaseRejected(t *testing.T) {
	e := New(baseWith(t, dropArticle()), advisor.DefaultConfidenceSettings())
	assert.Error(t, e.Reload(nil))
}

func TestEngine_Reload_EmptyBaseAllowed(t *testing.T) {
	e := New(baseWith(t, dropArticle()), advisor.DefaultConfidenceSettings())

	require.NoError(t, e.Reload(baseWith(t)))

	resp := e.Process("drop a class", nil)
	assert.Equal(t, advisor.DecisionNeedsReview, resp.Decision)
	assert.Empty(t, resp.RankedMatches)
}

func TestEngine_Reload_RetainsOptions(t *testing.T) {
	corpus := []knowledge.ReferenceDoc{{
		Title:   "Withdrawal policy",
		URL:     "https://example.edu/withdrawal",
		Content: "How to drop or withdraw from a class.",
	}}
	e := New(baseWith(t, dropArticle()), advisor.DefaultConfidenceSettings(),
		advisor.WithRetriever(advisor.NewCorpusRetriever(corpus)))

	require.NoError(t, e.Reload(baseWith(t, dropArticle())))

	resp := e.Process("drop a class", nil)
	assert.NotEmpty(t, resp.References)
}

func TestEngine_ConcurrentProcessAndReload(t *testing.T) {
	e := New(baseWith(t, dropArticle()), advisor.DefaultConfidenceSettings())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				resp := e.Process("drop a class", nil)
				assert.NotNil(t, resp)
			}
		}()
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, e.Reload(baseWith(t, dropArticle(), transcriptArticle())))
	}
	wg.Wait()
}

func TestEngine_Articles(t *testing.T) {
	e := New(baseWith(t, dropArticle(), transcriptArticle()), advisor.DefaultConfidenceSettings())

	articles := e.Articles()
	require.Len(t, articles, 2)
	assert.Equal(t, "drop-class", articles[0].ID)
}

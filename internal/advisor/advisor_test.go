package advisor

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdesk/email-advisor/internal/knowledge"
)

func testBase(t *testing.T, articles ...knowledge.Article) *knowledge.Base {
	t.Helper()
	base, err := knowledge.NewBase(articles)
	require.NoError(t, err)
	return base
}

func dropArticle() knowledge.Article {
	return knowledge.Article{
		ID:       "drop-class",
		Subject:  "Dropping a class",
		Response: "Hello {student_name},\n\nYou can drop a class before {withdrawal_deadline}.",
		Utterances: []string{
			"drop a class",
			"how do i withdraw from a course",
		},
		Categories:        []string{"registration"},
		FollowUpQuestions: []string{"Which class do you want to drop?"},
	}
}

func aidArticle() knowledge.Article {
	return knowledge.Article{
		ID:         "financial-aid",
		Subject:    "Financial aid questions",
		Response:   "Hello {student_name},\n\nCall {financial_aid_phone} for aid questions.",
		Utterances: []string{"question about financial aid"},
		Categories: []string{"financial aid"},
	}
}

func TestAdvisor_Process_ExactMatchAutoSends(t *testing.T) {
	a := New(testBase(t, dropArticle(), aidArticle()), DefaultConfidenceSettings())

	resp := a.Process("drop a class", map[string]string{"student_name": "Jordan"})

	assert.Equal(t, DecisionAutoSend, resp.Decision)
	assert.True(t, resp.AutoSend)
	assert.InDelta(t, 1.0, resp.Confidence, 1e-9)
	assert.Equal(t, "drop-class", resp.ArticleID)
	assert.Equal(t, "Dropping a class", resp.Subject)
	assert.Contains(t, resp.Body, "Hello Jordan,")
	assert.Equal(t, []string{"Which class do you want to drop?"}, resp.FollowUpQuestions)
	require.NotEmpty(t, resp.Reasons)
	assert.Equal(t, `Top match "Dropping a class" scored 1.00.`, resp.Reasons[0])
}

func TestAdvisor_Process_DefaultValuesAreReported(t *testing.T) {
	a := New(testBase(t, dropArticle()), DefaultConfidenceSettings())

	resp := a.Process("drop a class", nil)

	// No metadata given, so the greeting and deadline fall back to
	// defaults. Falling back never blocks auto-send on its own.
	assert.True(t, resp.AutoSend)
	assert.Contains(t, resp.Body, "Hello there,")
	found := false
	for _, reason := range resp.Reasons {
		if strings.HasPrefix(reason, "Default values used for: ") {
			assert.Contains(t, reason, "student_name")
			assert.Contains(t, reason, "withdrawal_deadline")
			found = true
		}
	}
	assert.True(t, found, "expected a default-values reason, got %v", resp.Reasons)
}

func TestAdvisor_Process_MissingPlaceholderForcesReview(t *testing.T) {
	article := dropArticle()
	article.Response = "Hello {student_name}, ask {advisor_name} about dropping."
	a := New(testBase(t, article), DefaultConfidenceSettings())

	resp := a.Process("drop a class", nil)

	assert.InDelta(t, 1.0, resp.Confidence, 1e-9)
	assert.False(t, resp.AutoSend)
	assert.Equal(t, DecisionNeedsReview, resp.Decision)
	assert.Contains(t, resp.Body, "{advisor_name}")
	found := false
	for _, reason := range resp.Reasons {
		if strings.Contains(reason, "Template placeholders missing values: advisor_name.") {
			found = true
		}
	}
	assert.True(t, found, "expected a missing-placeholder reason, got %v", resp.Reasons)
}

func TestAdvisor_Process_AmbiguousMatchesFallBack(t *testing.T) {
	first := dropArticle()
	second := dropArticle()
	second.ID = "drop-class-alt"
	second.Subject = "Withdrawing from a class"
	a := New(testBase(t, first, second), DefaultConfidenceSettings())

	// Both articles match the utterance exactly, so their scores tie and
	// the gap is below the ambiguity threshold.
	resp := a.Process("drop a class", nil)

	assert.Equal(t, DecisionNeedsReview, resp.Decision)
	assert.False(t, resp.AutoSend)
	assert.Equal(t, "Advising team follow-up required", resp.Subject)
	assert.Empty(t, resp.ArticleID)
	assert.Contains(t, resp.Reasons, "Multiple templates scored similarly high; routing to advisors for review.")
	require.GreaterOrEqual(t, len(resp.RankedMatches), 2)
	assert.InDelta(t, resp.RankedMatches[0].Confidence, resp.RankedMatches[1].Confidence, 1e-9)
}

func TestAdvisor_Process_LowConfidenceFallsBack(t *testing.T) {
	a := New(testBase(t, dropArticle(), aidArticle()), DefaultConfidenceSettings())

	resp := a.Process("the cafeteria espresso machine is broken again", nil)

	assert.Equal(t, DecisionNeedsReview, resp.Decision)
	assert.False(t, resp.AutoSend)
	assert.Equal(t, "Advising team follow-up required", resp.Subject)
	assert.Contains(t, resp.Reasons, "No article exceeded the review confidence threshold; escalating to advising team.")
	assert.Less(t, resp.Confidence, DefaultConfidenceSettings().ReviewThreshold)
}

func TestAdvisor_Process_EmptyKnowledgeBase(t *testing.T) {
	a := New(testBase(t), DefaultConfidenceSettings())

	resp := a.Process("drop a class", nil)

	assert.Equal(t, DecisionNeedsReview, resp.Decision)
	assert.False(t, resp.AutoSend)
	assert.InDelta(t, 0.0, resp.Confidence, 1e-9)
	assert.Equal(t, []string{"Unable to determine an appropriate template."}, resp.Reasons)
	assert.NotNil(t, resp.RankedMatches)
	assert.Empty(t, resp.RankedMatches)
}

func TestAdvisor_Process_ExtractedMetadataFillsTemplate(t *testing.T) {
	a := New(testBase(t, dropArticle()), DefaultConfidenceSettings())

	resp := a.Process("My name is Jordan Lee. Drop a class.", nil)

	assert.Contains(t, resp.Body, "Hello Jordan Lee,")
	require.NotEmpty(t, resp.Reasons)
	// Extraction notes always come after the decision reasons.
	assert.Equal(t, `Detected student name "Jordan Lee" in the message.`, resp.Reasons[len(resp.Reasons)-1])
}

func TestAdvisor_Process_CallerMetadataBeatsExtraction(t *testing.T) {
	a := New(testBase(t, dropArticle()), DefaultConfidenceSettings())

	resp := a.Process("My name is Jordan Lee. Drop a class.", map[string]string{"student_name": "Casey"})

	assert.Contains(t, resp.Body, "Hello Casey,")
	for _, reason := range resp.Reasons {
		assert.NotContains(t, reason, "Jordan Lee")
	}
}

func TestAdvisor_Process_Deterministic(t *testing.T) {
	a := New(testBase(t, dropArticle(), aidArticle()), DefaultConfidenceSettings())

	query := "I want to withdraw from my chemistry course. Also a question about financial aid."
	first := a.Process(query, map[string]string{"student_name": "Ana"})
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, a.Process(query, map[string]string{"student_name": "Ana"}))
	}
}

func TestAdvisor_Rank_SortedDescending(t *testing.T) {
	a := New(testBase(t, dropArticle(), aidArticle()), DefaultConfidenceSettings())

	matches := a.Rank("how do i withdraw from a course")

	require.Len(t, matches, 2)
	assert.Equal(t, "drop-class", matches[0].ArticleID)
	assert.GreaterOrEqual(t, matches[0].Confidence, matches[1].Confidence)
}

func TestAdvisor_Rank_EmptyQuery(t *testing.T) {
	a := New(testBase(t, dropArticle()), DefaultConfidenceSettings())

	matches := a.Rank("")

	require.Len(t, matches, 1)
	assert.InDelta(t, 0.05, matches[0].Confidence, 1e-9)
}

type failingRetriever struct{}

func (failingRetriever) Retrieve(string, *knowledge.Article, int) ([]Reference, error) {
	return nil, errors.New("corpus unavailable")
}

func TestAdvisor_Process_RetrieverFailureIsNonFatal(t *testing.T) {
	a := New(testBase(t, dropArticle()), DefaultConfidenceSettings(),
		WithRetriever(failingRetriever{}))

	resp := a.Process("drop a class", nil)

	assert.Equal(t, DecisionAutoSend, resp.Decision)
	assert.Empty(t, resp.References)
	assert.Contains(t, resp.Reasons, "Reference retrieval failed: corpus unavailable")
}

func TestAdvisor_Process_ReferencesAppendedToBody(t *testing.T) {
	corpus := []knowledge.ReferenceDoc{{
		Title:      "Withdrawal policy",
		URL:        "https://example.edu/withdrawal",
		Content:    "How to drop or withdraw from a class.",
		Categories: []string{"registration"},
	}}
	a := New(testBase(t, dropArticle()), DefaultConfidenceSettings(),
		WithRetriever(NewCorpusRetriever(corpus)), WithReferenceLimit(2))

	resp := a.Process("drop a class", nil)

	require.NotEmpty(t, resp.References)
	assert.Equal(t, "Withdrawal policy", resp.References[0].Title)
	assert.Contains(t, resp.Body, "Helpful resources:")
	assert.Contains(t, resp.Body, "https://example.edu/withdrawal")
}

// Package advisor implements the email advising engine: it matches a
// student query against the knowledge base, blends lexical and semantic
// similarity into a confidence score, renders a personalized reply, and
// decides whether the reply is safe to send without human review.
package advisor

// Decision classifies the outcome of a processed query.
type Decision string

// Decision values.
const (
	DecisionAutoSend    Decision = "auto_send"
	DecisionNeedsReview Decision = "needs_review"
)

// ConfidenceSettings holds the decision-policy thresholds. All values are
// expected in [0, 1]; the engine does not enforce
// ReviewThreshold <= AutoSendThreshold, that is the caller's
// responsibility.
type ConfidenceSettings struct {
	ReviewThreshold   float64
	AutoSendThreshold float64
	AmbiguityGap      float64
}

// DefaultConfidenceSettings returns the thresholds used in production.
func DefaultConfidenceSettings() ConfidenceSettings {
	return ConfidenceSettings{
		ReviewThreshold:   0.60,
		AutoSendThreshold: 0.90,
		AmbiguityGap:      0.05,
	}
}

// RankedMatch is one article's score for a query. The full ranked list is
// sorted descending by confidence; ties preserve knowledge-base order.
type RankedMatch struct {
	ArticleID  string  `json:"article_id"`
	Subject    string  `json:"subject"`
	Confidence float64 `json:"confidence"`
}

// Fact is a single piece of metadata inferred from the query text, with a
// human-readable justification.
type Fact struct {
	Key    string
	Value  string
	Reason string
}

// Reference is a supporting document attached to a reply.
type Reference struct {
	Title   string  `json:"title"`
	URL     string  `json:"url,omitempty"`
	Snippet string  `json:"snippet,omitempty"`
	Score   float64 `json:"score"`
}

// Response is the sole output of a processed query.
type Response struct {
	Subject           string        `json:"subject"`
	Body              string        `json:"body"`
	AutoSend          bool          `json:"auto_send"`
	Confidence        float64       `json:"confidence"`
	Decision          Decision      `json:"decision"`
	ArticleID         string        `json:"article_id,omitempty"`
	FollowUpQuestions []string      `json:"follow_up_questions"`
	Reasons           []string      `json:"reasons"`
	RankedMatches     []RankedMatch `json:"ranked_matches"`
	References        []Reference   `json:"references"`
}

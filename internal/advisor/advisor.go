package advisor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/campusdesk/email-advisor/internal/knowledge"
	"github.com/campusdesk/email-advisor/internal/observability"
)

const defaultReferenceLimit = 3

// fallback reply sent whenever no article can be answered confidently.
const (
	fallbackSubject = "Advising team follow-up required"
	fallbackBody    = "Hello {student_name},\n\n" +
		"Thanks for contacting the advising office. Your question has been routed to an advisor " +
		"for a personal response. We will review the details and get back to you within one business day." +
		"\n\nBest,\nAcademic Advising Team"
)

// Advisor is the advising engine. A constructed instance is immutable and
// side-effect-free per query, so concurrent callers need no locking.
// Rebuilding the knowledge base means constructing a new Advisor and
// swapping it in; indices are never mutated in place.
type Advisor struct {
	base      *knowledge.Base
	settings  ConfidenceSettings
	defaults  map[string]string
	knownKeys map[string]struct{}
	index     *corpusIndex

	retriever      ReferenceRetriever
	referenceLimit int
	composer       Composer
	extractor      Extractor
	logger         *observability.Logger
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithRetriever injects a reference retriever.
func WithRetriever(r ReferenceRetriever) Option {
	return func(a *Advisor) { a.retriever = r }
}

// WithReferenceLimit caps the number of attached references.
func WithReferenceLimit(n int) Option {
	return func(a *Advisor) { a.referenceLimit = max(n, 0) }
}

// WithComposer replaces the default composer.
func WithComposer(c Composer) Option {
	return func(a *Advisor) { a.composer = c }
}

// WithExtractor replaces the default metadata extractor. Pass nil to
// disable extraction.
func WithExtractor(e Extractor) Option {
	return func(a *Advisor) { a.extractor = e }
}

// WithMetadataDefaults merges additional knowledge-base-wide default
// values over the built-in ones.
func WithMetadataDefaults(defaults map[string]string) Option {
	return func(a *Advisor) {
		for k, v := range defaults {
			a.defaults[k] = v
		}
	}
}

// WithLogger attaches a logger for decision diagnostics.
func WithLogger(l *observability.Logger) Option {
	return func(a *Advisor) { a.logger = l }
}

// New builds an Advisor from a validated knowledge base. The corpus index
// and TF-IDF model are derived here, once, and are read-only afterwards.
func New(base *knowledge.Base, settings ConfidenceSettings, opts ...Option) *Advisor {
	a := &Advisor{
		base:     base,
		settings: settings,
		defaults: map[string]string{
			"student_name":          "there",
			"term":                  "the upcoming term",
			"registration_deadline": "the published registration deadline",
			"withdrawal_deadline":   "the posted withdrawal deadline",
			"financial_aid_phone":   "(555) 123-4567",
			"financial_aid_email":   "finaid@university.edu",
		},
		referenceLimit: defaultReferenceLimit,
		composer:       TemplateComposer{},
		extractor:      NewPatternExtractor(),
		logger:         observability.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.knownKeys = make(map[string]struct{}, len(a.defaults))
	for k := range a.defaults {
		a.knownKeys[k] = struct{}{}
	}
	for _, article := range base.Articles() {
		for k := range article.Metadata {
			a.knownKeys[k] = struct{}{}
		}
	}

	a.index = buildIndex(base)
	return a
}

// Settings returns the confidence settings the advisor was built with.
func (a *Advisor) Settings() ConfidenceSettings {
	return a.settings
}

// Articles returns the knowledge base articles in load order.
func (a *Advisor) Articles() []knowledge.Article {
	return a.base.Articles()
}

// Rank scores every knowledge base article against the query. The query is
// evaluated whole and sentence by sentence; each article's semantic score
// is the best TF-IDF similarity observed at either granularity, and its
// lexical signals are the maxima across all segment/utterance pairs. The
// returned list is sorted descending by confidence with ties preserving
// knowledge-base order.
func (a *Advisor) Rank(query string) []RankedMatch {
	articles := a.base.Articles()
	if len(articles) == 0 {
		return nil
	}

	segments := buildSegments(query)

	tfidf := make([]float64, len(articles))
	for _, seg := range segments {
		for i, score := range a.index.vectorizer.Similarities(seg.augTokens) {
			if score > tfidf[i] {
				tfidf[i] = score
			}
		}
	}

	ranked := make([]RankedMatch, len(articles))
	for i, article := range articles {
		sig := signals{
			TFIDF:          tfidf[i],
			lexicalSignals: lexicalScore(segments, a.index, i),
		}
		ranked[i] = RankedMatch{
			ArticleID:  article.ID,
			Subject:    article.Subject,
			Confidence: blendConfidence(sig),
		}
	}

	sort.SliceStable(ranked, func(x, y int) bool {
		return ranked[x].Confidence > ranked[y].Confidence
	})
	return ranked
}

// Process matches the query against the knowledge base, renders the best
// article's templates with the merged metadata, and applies the
// auto-send decision policy. Metadata extraction notes are appended last
// in every path so their position in the reasoning trail is stable.
func (a *Advisor) Process(query string, metadata map[string]string) *Response {
	working := make(map[string]string, len(metadata))
	for k, v := range metadata {
		working[k] = v
	}

	var metadataNotes []string
	if a.extractor != nil {
		for _, fact := range a.extractor.Extract(query) {
			if _, known := a.knownKeys[fact.Key]; !known {
				continue
			}
			if working[fact.Key] != "" {
				continue // caller values always win
			}
			working[fact.Key] = fact.Value
			metadataNotes = append(metadataNotes, fact.Reason)
		}
	}

	matches := a.Rank(query)
	var reasons []string
	if len(matches) == 0 {
		reasons = append(reasons, metadataNotes...)
		return a.fallback(query, working, reasons, nil)
	}

	best := matches[0]
	reasons = append(reasons, fmt.Sprintf("Top match %q scored %.2f.", best.Subject, best.Confidence))

	if len(matches) > 1 && matches[1].Confidence >= a.settings.ReviewThreshold {
		if best.Confidence-matches[1].Confidence < a.settings.AmbiguityGap {
			reasons = append(reasons, "Multiple templates scored similarly high; routing to advisors for review.")
			reasons = append(reasons, metadataNotes...)
			return a.fallback(query, working, reasons, matches)
		}
	}

	if best.Confidence < a.settings.ReviewThreshold {
		reasons = append(reasons, "No article exceeded the review confidence threshold; escalating to advising team.")
		reasons = append(reasons, metadataNotes...)
		return a.fallback(query, working, reasons, matches)
	}

	article, ok := a.base.Get(best.ArticleID)
	if !ok {
		// Defensive guard: the index is built from the same base it ranks
		// against, so this indicates data inconsistency.
		reasons = append(reasons, "Matched article could not be found in the knowledge base.")
		reasons = append(reasons, metadataNotes...)
		return a.fallback(query, working, reasons, matches)
	}

	ctx := newRenderContext(mergeDefaults(a.defaults, article.Metadata), working)
	subject := ctx.render(article.Subject)
	body := ctx.render(article.Response)

	references := a.retrieveReferences(query, &article, &reasons)
	subject, body = a.composer.Compose(&article, subject, body, query, ctx.values(), references)

	autoSend := best.Confidence >= a.settings.AutoSendThreshold && len(ctx.missing) == 0
	decision := DecisionNeedsReview
	if autoSend {
		decision = DecisionAutoSend
	} else {
		if best.Confidence < a.settings.AutoSendThreshold {
			reasons = append(reasons, "Confidence below the auto-send threshold; sending draft for review.")
		}
		if len(ctx.missing) > 0 {
			reasons = append(reasons, fmt.Sprintf(
				"Template placeholders missing values: %s. Advisor review required.",
				strings.Join(sortedKeys(ctx.missing), ", ")))
		}
	}
	if len(ctx.usedDefaults) > 0 {
		reasons = append(reasons, fmt.Sprintf(
			"Default values used for: %s. Update metadata if more specific details are available.",
			strings.Join(sortedKeys(ctx.usedDefaults), ", ")))
	}
	reasons = append(reasons, metadataNotes...)

	a.logger.Debug().
		Str("article_id", article.ID).
		Str("decision", string(decision)).
		Float64("confidence", best.Confidence).
		Msg("query matched")

	return &Response{
		Subject:           subject,
		Body:              body,
		AutoSend:          autoSend,
		Confidence:        best.Confidence,
		Decision:          decision,
		ArticleID:         article.ID,
		FollowUpQuestions: append([]string(nil), article.FollowUpQuestions...),
		Reasons:           reasons,
		RankedMatches:     matches,
		References:        references,
	}
}

// fallback produces the fixed advisor-follow-up reply. Confidence comes
// from the best available match, or zero when there is none.
func (a *Advisor) fallback(query string, metadata map[string]string, reasons []string, matches []RankedMatch) *Response {
	ctx := newRenderContext(a.defaults, metadata)
	body := ctx.render(fallbackBody)

	if len(reasons) == 0 {
		reasons = append(reasons, "Unable to determine an appropriate template.")
	}
	references := a.retrieveReferences(query, nil, &reasons)

	confidence := 0.0
	if len(matches) > 0 {
		confidence = matches[0].Confidence
	}
	if matches == nil {
		matches = []RankedMatch{}
	}

	a.logger.Debug().
		Float64("confidence", confidence).
		Msg("query routed to fallback")

	return &Response{
		Subject:           fallbackSubject,
		Body:              body,
		AutoSend:          false,
		Confidence:        confidence,
		Decision:          DecisionNeedsReview,
		FollowUpQuestions: []string{},
		Reasons:           reasons,
		RankedMatches:     matches,
		References:        references,
	}
}

// retrieveReferences calls the injected retriever, treating any error as
// non-fatal: the failure is reported as a reason and the reply goes out
// without references.
func (a *Advisor) retrieveReferences(query string, article *knowledge.Article, reasons *[]string) []Reference {
	if a.retriever == nil || a.referenceLimit <= 0 {
		return []Reference{}
	}
	refs, err := a.retriever.Retrieve(query, article, a.referenceLimit)
	if err != nil {
		*reasons = append(*reasons, fmt.Sprintf("Reference retrieval failed: %v", err))
		return []Reference{}
	}
	if refs == nil {
		refs = []Reference{}
	}
	return refs
}

func mergeDefaults(global, article map[string]string) map[string]string {
	merged := make(map[string]string, len(global)+len(article))
	for k, v := range global {
		merged[k] = v
	}
	for k, v := range article {
		merged[k] = v
	}
	return merged
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

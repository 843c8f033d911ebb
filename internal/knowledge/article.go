// Package knowledge defines the curated advising knowledge base: canned
// articles with reply templates, example utterances, and category labels.
package knowledge

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Common errors.
var (
	ErrEmptyID      = errors.New("article id must not be empty")
	ErrDuplicateID  = errors.New("duplicate article id")
	ErrNoUtterances = errors.New("article must declare at least one utterance")
)

var placeholderRE = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Article is a single canned-response entry. Articles are immutable once
// loaded into a Base.
type Article struct {
	ID                string            `yaml:"id"`
	Subject           string            `yaml:"subject"`
	Response          string            `yaml:"response"`
	Utterances        []string          `yaml:"utterances"`
	Categories        []string          `yaml:"categories"`
	Metadata          map[string]string `yaml:"metadata"`
	FollowUpQuestions []string          `yaml:"follow_up_questions"`
}

// TemplateKeys returns the placeholder keys referenced by the article's
// subject and response templates, in first-occurrence order.
func (a Article) TemplateKeys() []string {
	return TemplateKeys(a.Subject + " " + a.Response)
}

// Base is an ordered, read-only collection of articles with unique ids.
type Base struct {
	articles []Article
	byID     map[string]int
}

// NewBase validates the articles and builds a Base. Validation fails
// loudly at load time so index construction never sees a structurally
// invalid template.
func NewBase(articles []Article) (*Base, error) {
	byID := make(map[string]int, len(articles))
	for i, article := range articles {
		if article.ID == "" {
			return nil, fmt.Errorf("article %d: %w", i, ErrEmptyID)
		}
		if _, exists := byID[article.ID]; exists {
			return nil, fmt.Errorf("article %q: %w", article.ID, ErrDuplicateID)
		}
		if len(article.Utterances) == 0 {
			return nil, fmt.Errorf("article %q: %w", article.ID, ErrNoUtterances)
		}
		if err := validateTemplate(article.Subject); err != nil {
			return nil, fmt.Errorf("article %q subject: %w", article.ID, err)
		}
		if err := validateTemplate(article.Response); err != nil {
			return nil, fmt.Errorf("article %q response: %w", article.ID, err)
		}
		byID[article.ID] = i
	}
	return &Base{articles: articles, byID: byID}, nil
}

// Articles returns the articles in stable load order. Callers must not
// mutate the returned slice.
func (b *Base) Articles() []Article {
	return b.articles
}

// Get looks up an article by id.
func (b *Base) Get(id string) (Article, bool) {
	idx, ok := b.byID[id]
	if !ok {
		return Article{}, false
	}
	return b.articles[idx], true
}

// Len reports the number of articles.
func (b *Base) Len() int {
	return len(b.articles)
}

// validateTemplate checks that every brace in a template belongs to a
// well-formed {key} placeholder.
func validateTemplate(tmpl string) error {
	stripped := placeholderRE.ReplaceAllString(tmpl, "")
	if strings.ContainsAny(stripped, "{}") {
		return fmt.Errorf("malformed placeholder braces in %q", tmpl)
	}
	return nil
}

// TemplateKeys returns the placeholder keys referenced by a template, in
// first-occurrence order.
func TemplateKeys(tmpl string) []string {
	matches := placeholderRE.FindAllStringSubmatch(tmpl, -1)
	seen := make(map[string]struct{}, len(matches))
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; !ok {
			seen[m[1]] = struct{}{}
			keys = append(keys, m[1])
		}
	}
	return keys
}

// PlaceholderPattern exposes the placeholder syntax shared with the
// template renderer.
func PlaceholderPattern() *regexp.Regexp {
	return placeholderRE
}

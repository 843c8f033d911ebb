package advisor

import (
	"fmt"
	"regexp"
	"strings"
)

// Extractor infers metadata facts from raw query text. The orchestrator
// only accepts facts whose key is known to the knowledge base and not
// already supplied by the caller.
type Extractor interface {
	Extract(query string) []Fact
}

// PatternExtractor scans the query for known fact patterns with regular
// expressions. Patterns are evaluated in a fixed order and the first match
// per key wins, so extraction is deterministic.
type PatternExtractor struct {
	patterns []factPattern
}

type factPattern struct {
	key   string
	re    *regexp.Regexp
	value func(groups []string) string
}

// NewPatternExtractor returns the default extractor for advising emails:
// it recognizes academic terms ("fall 2026") and self-introductions
// ("my name is ...").
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{
		patterns: []factPattern{
			{
				key: "term",
				re:  regexp.MustCompile(`(?i)\b(fall|spring|summer|winter)\s+(20\d{2})\b`),
				value: func(groups []string) string {
					return titleCase(groups[1]) + " " + groups[2]
				},
			},
			{
				key: "student_name",
				re:  regexp.MustCompile(`(?i)\bmy name is ([A-Z][A-Za-z'-]+(?: [A-Z][A-Za-z'-]+)?)`),
				value: func(groups []string) string {
					return groups[1]
				},
			},
			{
				key: "student_name",
				re:  regexp.MustCompile(`(?i)\bthis is ([A-Z][A-Za-z'-]+(?: [A-Z][A-Za-z'-]+)?)\b[,.]`),
				value: func(groups []string) string {
					return groups[1]
				},
			},
		},
	}
}

// Extract returns at most one fact per metadata key, each with a reason
// explaining where the value came from.
func (e *PatternExtractor) Extract(query string) []Fact {
	seen := make(map[string]struct{}, len(e.patterns))
	var facts []Fact
	for _, p := range e.patterns {
		if _, done := seen[p.key]; done {
			continue
		}
		groups := p.re.FindStringSubmatch(query)
		if groups == nil {
			continue
		}
		value := p.value(groups)
		seen[p.key] = struct{}{}
		facts = append(facts, Fact{
			Key:    p.key,
			Value:  value,
			Reason: fmt.Sprintf("Detected %s %q in the message.", strings.ReplaceAll(p.key, "_", " "), value),
		})
	}
	return facts
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// Package textproc provides normalization, tokenization, and token
// augmentation for student email text.
package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWordRE    = regexp.MustCompile(`[^a-z0-9]+`)
	whitespaceRE = regexp.MustCompile(`\s+`)
	sentenceRE   = regexp.MustCompile(`[.!?]+`)
)

// accentFolder decomposes characters and drops combining marks, so
// "résumé" normalizes to "resume".
var accentFolder = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// stopwords are dropped during tokenization: articles, prepositions,
// common pronouns, and auxiliary verbs that carry no matching signal.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "from": {}, "how": {},
	"i": {}, "in": {}, "is": {}, "it": {}, "my": {}, "of": {},
	"on": {}, "or": {}, "so": {}, "that": {}, "the": {}, "to": {},
	"we": {}, "what": {}, "when": {}, "where": {}, "which": {},
	"who": {}, "will": {}, "with": {}, "you": {}, "your": {},
}

func stripAccents(s string) string {
	folded, _, err := transform.String(accentFolder, s)
	if err != nil {
		return s
	}
	return folded
}

// Normalize lower-cases text, strips diacritics, collapses every run of
// non-alphanumeric characters to a single space, and trims the result.
func Normalize(text string) string {
	lowered := stripAccents(strings.ToLower(text))
	collapsed := nonWordRE.ReplaceAllString(lowered, " ")
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(collapsed, " "))
}

// Tokenize splits normalized text into word tokens, dropping stopwords.
// Order and duplicates are preserved. Empty input yields no tokens.
func Tokenize(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	parts := strings.Split(normalized, " ")
	tokens := make([]string, 0, len(parts))
	for _, tok := range parts {
		if tok == "" {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// SplitSentences splits text on terminal punctuation. Fragments that are
// empty after trimming are dropped; the caller decides how to handle a
// query with no surviving sentences.
func SplitSentences(text string) []string {
	parts := sentenceRE.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

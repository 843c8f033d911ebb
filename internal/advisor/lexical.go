package advisor

import (
	"slices"

	"github.com/campusdesk/email-advisor/internal/textproc"
)

// segment is one evaluation unit of a query: the whole query or a single
// sentence, carrying both raw and augmented token views.
type segment struct {
	rawTokens []string
	rawSet    map[string]struct{}
	augTokens []string
	augSet    map[string]struct{}
}

// buildSegments returns the whole query followed by each sentence that
// still has tokens after normalization. When no sentence survives, the
// whole query stands alone, so multi-topic emails are scored clause by
// clause without losing the whole-message view.
func buildSegments(query string) []segment {
	segments := []segment{newSegment(textproc.Tokenize(query))}
	for _, sentence := range textproc.SplitSentences(query) {
		tokens := textproc.Tokenize(sentence)
		if len(tokens) == 0 {
			continue
		}
		segments = append(segments, newSegment(tokens))
	}
	return segments
}

func newSegment(rawTokens []string) segment {
	augTokens := textproc.Augment(rawTokens)
	return segment{
		rawTokens: rawTokens,
		rawSet:    toSet(rawTokens),
		augTokens: augTokens,
		augSet:    toSet(augTokens),
	}
}

// lexicalSignals aggregates the overlap statistics for one article across
// all (segment, utterance) pairs.
type lexicalSignals struct {
	BestUtteranceSimilarity float64
	BestQueryCoverage       float64
	BestUtteranceCoverage   float64
	ArticleOverlap          float64
	CategoryOverlap         float64
	ExactMatch              bool
}

// CoverageSignal averages query-side and utterance-side coverage.
func (s lexicalSignals) CoverageSignal() float64 {
	return (s.BestQueryCoverage + s.BestUtteranceCoverage) / 2
}

// lexicalScore computes the lexical signals for one article. Utterance
// similarity takes the better of the raw and augmented Jaccard per pair;
// coverage ratios use raw token sets. Exact match requires an
// order-sensitive token sequence equality between a segment and an
// utterance.
func lexicalScore(segments []segment, idx *corpusIndex, article int) lexicalSignals {
	var s lexicalSignals
	for _, seg := range segments {
		if len(seg.rawTokens) == 0 {
			continue
		}
		for j, utterance := range idx.utteranceTokens[article] {
			if len(utterance) == 0 {
				continue
			}
			if !s.ExactMatch && slices.Equal(seg.rawTokens, utterance) {
				s.ExactMatch = true
			}

			utteranceSet := idx.utteranceSets[article][j]
			inter := intersectionSize(seg.rawSet, utteranceSet)
			rawJaccard := jaccard(seg.rawSet, utteranceSet)
			augJaccard := jaccard(seg.augSet, idx.utteranceAugSets[article][j])

			s.BestUtteranceSimilarity = max(s.BestUtteranceSimilarity, rawJaccard, augJaccard)
			s.BestQueryCoverage = max(s.BestQueryCoverage, float64(inter)/float64(len(seg.rawSet)))
			s.BestUtteranceCoverage = max(s.BestUtteranceCoverage, float64(inter)/float64(len(utteranceSet)))
		}

		s.ArticleOverlap = max(s.ArticleOverlap, jaccard(seg.augSet, idx.articleTokenSets[article]))
		s.CategoryOverlap = max(s.CategoryOverlap, jaccard(seg.augSet, idx.categoryTokenSets[article]))
	}
	return s
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := intersectionSize(a, b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func intersectionSize(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			count++
		}
	}
	return count
}

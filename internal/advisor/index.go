package advisor

import (
	"strings"

	"github.com/campusdesk/email-advisor/internal/knowledge"
	"github.com/campusdesk/email-advisor/internal/textproc"
)

// corpusIndex holds the derived, immutable per-article caches built once
// from the knowledge base. It is owned by the Advisor instance together
// with the TF-IDF model and never recomputed per query.
type corpusIndex struct {
	vectorizer *Vectorizer

	// Per article, aligned with knowledge base order.
	articleTokenSets  []map[string]struct{}   // augmented article document tokens
	categoryTokenSets []map[string]struct{}   // augmented category tokens
	utteranceTokens   [][][]string            // raw token list per utterance
	utteranceSets     [][]map[string]struct{} // raw token set per utterance
	utteranceAugSets  [][]map[string]struct{} // augmented variant, for recall
}

// buildIndex derives the corpus index from the knowledge base. Each
// article's TF-IDF document is the augmented tokenization of its
// utterances, categories, and subject. Utterance token lists are kept raw;
// lexical matching uses them primarily, with the augmented variant built
// alongside.
func buildIndex(base *knowledge.Base) *corpusIndex {
	articles := base.Articles()
	idx := &corpusIndex{
		articleTokenSets:  make([]map[string]struct{}, len(articles)),
		categoryTokenSets: make([]map[string]struct{}, len(articles)),
		utteranceTokens:   make([][][]string, len(articles)),
		utteranceSets:     make([][]map[string]struct{}, len(articles)),
		utteranceAugSets:  make([][]map[string]struct{}, len(articles)),
	}

	documents := make([][]string, len(articles))
	for i, article := range articles {
		parts := make([]string, 0, len(article.Utterances)+len(article.Categories)+1)
		parts = append(parts, article.Utterances...)
		parts = append(parts, article.Categories...)
		parts = append(parts, article.Subject)
		document := textproc.Augment(textproc.Tokenize(strings.Join(parts, " ")))
		documents[i] = document
		idx.articleTokenSets[i] = toSet(document)

		categoryTokens := textproc.Augment(textproc.Tokenize(strings.Join(article.Categories, " ")))
		idx.categoryTokenSets[i] = toSet(categoryTokens)

		idx.utteranceTokens[i] = make([][]string, len(article.Utterances))
		idx.utteranceSets[i] = make([]map[string]struct{}, len(article.Utterances))
		idx.utteranceAugSets[i] = make([]map[string]struct{}, len(article.Utterances))
		for j, utterance := range article.Utterances {
			raw := textproc.Tokenize(utterance)
			idx.utteranceTokens[i][j] = raw
			idx.utteranceSets[i][j] = toSet(raw)
			idx.utteranceAugSets[i][j] = toSet(textproc.Augment(raw))
		}
	}

	idx.vectorizer = NewVectorizer(documents)
	return idx
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

package advisor

import (
	"sort"
	"strings"

	"github.com/campusdesk/email-advisor/internal/knowledge"
	"github.com/campusdesk/email-advisor/internal/textproc"
)

// ReferenceRetriever finds supporting documents for a reply. Any error is
// caught by the orchestrator and degrades to an empty reference list.
type ReferenceRetriever interface {
	Retrieve(query string, article *knowledge.Article, limit int) ([]Reference, error)
}

const (
	// Documents scoring below this are never attached.
	referenceScoreCutoff = 0.05

	snippetLength = 160
)

// CorpusRetriever ranks a static reference corpus with the same TF-IDF
// model the matcher uses. The matched article's categories bias the query
// toward topically related documents.
type CorpusRetriever struct {
	docs       []knowledge.ReferenceDoc
	vectorizer *Vectorizer
}

// NewCorpusRetriever indexes the reference corpus.
func NewCorpusRetriever(docs []knowledge.ReferenceDoc) *CorpusRetriever {
	documents := make([][]string, len(docs))
	for i, doc := range docs {
		parts := []string{doc.Title, doc.Content, strings.Join(doc.Categories, " ")}
		documents[i] = textproc.Augment(textproc.Tokenize(strings.Join(parts, " ")))
	}
	return &CorpusRetriever{docs: docs, vectorizer: NewVectorizer(documents)}
}

// Retrieve implements ReferenceRetriever.
func (r *CorpusRetriever) Retrieve(query string, article *knowledge.Article, limit int) ([]Reference, error) {
	if limit <= 0 || len(r.docs) == 0 {
		return nil, nil
	}

	tokens := textproc.Tokenize(query)
	if article != nil {
		tokens = append(tokens, textproc.Tokenize(strings.Join(article.Categories, " "))...)
	}
	scores := r.vectorizer.Similarities(textproc.Augment(tokens))

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	refs := make([]Reference, 0, limit)
	for _, i := range order {
		if scores[i] < referenceScoreCutoff {
			break
		}
		refs = append(refs, Reference{
			Title:   r.docs[i].Title,
			URL:     r.docs[i].URL,
			Snippet: snippet(r.docs[i].Content),
			Score:   scores[i],
		})
		if len(refs) == limit {
			break
		}
	}
	return refs, nil
}

func snippet(content string) string {
	if len(content) <= snippetLength {
		return content
	}
	cut := content[:snippetLength]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}

package advisor

import "math"

// Vectorizer is an l2-normalized TF-IDF model over token documents. It is
// built once and never mutated, so concurrent queries are safe.
type Vectorizer struct {
	vocab      map[string]int // term -> vocabulary index
	idf        []float64
	docVectors []map[int]float64 // normalized weight by vocabulary index
}

// NewVectorizer builds a TF-IDF model from tokenized documents. Terms use
// smoothed inverse document frequency (log((1+N)/(1+df)) + 1) and every
// document vector is l2-normalized, so similarity scores land in [0, 1].
func NewVectorizer(documents [][]string) *Vectorizer {
	v := &Vectorizer{vocab: make(map[string]int)}

	counts := make([]map[int]int, len(documents))
	docFreq := make(map[int]int)
	for i, doc := range documents {
		counts[i] = make(map[int]int, len(doc))
		for _, term := range doc {
			idx, ok := v.vocab[term]
			if !ok {
				idx = len(v.vocab)
				v.vocab[term] = idx
			}
			if counts[i][idx] == 0 {
				docFreq[idx]++
			}
			counts[i][idx]++
		}
	}

	total := float64(len(documents))
	v.idf = make([]float64, len(v.vocab))
	for idx := range v.idf {
		v.idf[idx] = math.Log((1+total)/float64(1+docFreq[idx])) + 1
	}

	v.docVectors = make([]map[int]float64, len(documents))
	for i, termCounts := range counts {
		vec := make(map[int]float64, len(termCounts))
		var norm float64
		for idx, count := range termCounts {
			w := float64(count) * v.idf[idx]
			vec[idx] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for idx := range vec {
				vec[idx] /= norm
			}
		}
		v.docVectors[i] = vec
	}
	return v
}

// Similarities returns the cosine similarity of the query tokens against
// every document, in document order. Unknown terms contribute nothing.
func (v *Vectorizer) Similarities(tokens []string) []float64 {
	// Query terms are collected in first-occurrence order so the floating
	// point accumulation below is reproducible across calls.
	indices := make([]int, 0, len(tokens))
	weights := make(map[int]float64, len(tokens))
	for _, term := range tokens {
		idx, ok := v.vocab[term]
		if !ok {
			continue
		}
		if _, seen := weights[idx]; !seen {
			indices = append(indices, idx)
		}
		weights[idx] += v.idf[idx]
	}

	scores := make([]float64, len(v.docVectors))
	if len(indices) == 0 {
		return scores
	}

	var norm float64
	for _, idx := range indices {
		norm += weights[idx] * weights[idx]
	}
	norm = math.Sqrt(norm)

	for doc, vec := range v.docVectors {
		var dot float64
		for _, idx := range indices {
			if w, ok := vec[idx]; ok {
				dot += weights[idx] * w
			}
		}
		if dot > 0 {
			scores[doc] = dot / norm
		}
	}
	return scores
}

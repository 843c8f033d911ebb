package advisor

// signals collects everything the confidence blender looks at for one
// article.
type signals struct {
	TFIDF float64
	lexicalSignals
}

// Blending weights and adjustment constants. The floor thresholds below
// are hand-tuned against the advising mailbox; treat them as data.
const (
	weightUtteranceSimilarity = 0.5
	weightCoverage            = 0.2
	weightTFIDF               = 0.2
	weightCategoryOverlap     = 0.1

	weakCoverageCutoff   = 0.15
	weakSimilarityCutoff = 0.2
	weakSignalPenalty    = 0.6

	confidenceFloor   = 0.05
	confidenceCeiling = 0.97
)

// floorRule raises a blended confidence to at least Floor when its
// predicate holds. Rules are independent; every matching rule applies and
// the maximum floor wins.
type floorRule struct {
	Name    string
	Floor   float64
	Applies func(s signals) bool
}

// floorRules in evaluation order.
var floorRules = []floorRule{
	{
		Name:  "strong_utterance_match",
		Floor: 0.92,
		Applies: func(s signals) bool {
			return s.BestUtteranceSimilarity >= 0.85
		},
	},
	{
		Name:  "good_utterance_match",
		Floor: 0.85,
		Applies: func(s signals) bool {
			return s.BestUtteranceSimilarity >= 0.70
		},
	},
	{
		Name:  "utterance_with_coverage",
		Floor: 0.78,
		Applies: func(s signals) bool {
			return s.BestUtteranceSimilarity >= 0.55 && s.CoverageSignal() >= 0.35
		},
	},
	{
		Name:  "covered_category_match",
		Floor: 0.85,
		Applies: func(s signals) bool {
			return s.CoverageSignal() >= 0.55 && s.CategoryOverlap >= 0.1 && s.BestUtteranceSimilarity >= 0.5
		},
	},
}

// blendConfidence fuses the semantic and lexical signals into one bounded
// confidence score. An exact utterance match is terminal at 1.0.
func blendConfidence(s signals) float64 {
	if s.ExactMatch {
		return 1.0
	}

	coverage := s.CoverageSignal()
	confidence := weightUtteranceSimilarity*s.BestUtteranceSimilarity +
		weightCoverage*coverage +
		weightTFIDF*s.TFIDF +
		weightCategoryOverlap*s.CategoryOverlap

	if coverage < weakCoverageCutoff && s.BestUtteranceSimilarity < weakSimilarityCutoff {
		confidence *= weakSignalPenalty
	}

	confidence = clamp(confidence, confidenceFloor, confidenceCeiling)

	for _, rule := range floorRules {
		if rule.Applies(s) && confidence < rule.Floor {
			confidence = rule.Floor
		}
	}
	return confidence
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

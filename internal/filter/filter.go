package filter

import "strings"

// DefaultMinScore is the score a candidate must reach to pass the filter.
// The comparison is inclusive: a score exactly at the threshold passes.
const DefaultMinScore = 0.25

// Weights holds the evidence weights used by the scored gate. The values
// are empirical; treat them as tunable rather than fixed.
type Weights struct {
	FileExtension float64 // URL ends in a document extension
	DocID         float64 // text contains a document identifier
	Date          float64 // text contains a date
	RecentYear    float64 // text mentions a recent year
	DocKeyword    float64 // per document-type keyword
	DocKeywordCap float64
	RegKeyword    float64 // per regulatory keyword
	RegKeywordCap float64
	URLIndicator  float64 // URL path suggests a document
	LengthBonus   float64 // per length threshold crossed (30, 60 chars)
}

// DefaultWeights returns the weights the filter ships with.
func DefaultWeights() Weights {
	return Weights{
		FileExtension: 0.3,
		DocID:         0.25,
		Date:          0.15,
		RecentYear:    0.1,
		DocKeyword:    0.1,
		DocKeywordCap: 0.2,
		RegKeyword:    0.05,
		RegKeywordCap: 0.15,
		URLIndicator:  0.1,
		LengthBonus:   0.05,
	}
}

// Filter combines the navigation-junk gate and the scored heuristic gate.
type Filter struct {
	weights  Weights
	minScore float64
	// extraKeywords supplement the regulatory keyword set per jurisdiction.
	extraKeywords []string
}

// Option configures a Filter.
type Option func(*Filter)

// WithWeights overrides the default evidence weights.
func WithWeights(w Weights) Option {
	return func(f *Filter) { f.weights = w }
}

// WithMinScore overrides the default pass threshold.
func WithMinScore(min float64) Option {
	return func(f *Filter) { f.minScore = min }
}

// WithExtraKeywords adds jurisdiction-specific regulatory keywords.
func WithExtraKeywords(keywords []string) Option {
	return func(f *Filter) { f.extraKeywords = keywords }
}

// New returns a Filter with default weights and threshold.
func New(opts ...Option) *Filter {
	f := &Filter{
		weights:  DefaultWeights(),
		minScore: DefaultMinScore,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Passes applies both gates to a link's text and URL. It returns whether the
// candidate survives and the heuristic score it earned. Navigation junk is
// rejected with a zero score regardless of what the scored gate would say.
func (f *Filter) Passes(text, url string) (bool, float64) {
	if IsNavigationJunk(text, url) {
		return false, 0.0
	}
	score := f.Score(text, url)
	return score >= f.minScore, score
}

// IsNavigationJunk reports whether a link is site chrome: too short, on the
// blocklist, or pointing at a known non-document URL.
func IsNavigationJunk(text, url string) bool {
	normalized := normalize(text)
	urlLower := strings.ToLower(url)

	if len(normalized) < 8 {
		return true
	}
	if _, blocked := navigationBlocklist[normalized]; blocked {
		return true
	}

	// Short labels that merely lead with or trail a blocked phrase are
	// still chrome ("Contact us today", "Go to top").
	if len(normalized) < 50 {
		for phrase := range navigationBlocklist {
			if strings.HasPrefix(normalized, phrase) || strings.HasSuffix(normalized, phrase) {
				return true
			}
		}
	}

	// Several blocked phrases packed into a short label is a nav menu row.
	if len(normalized) < 60 {
		hits := 0
		for phrase := range navigationBlocklist {
			if strings.Contains(normalized, phrase) {
				hits++
				if hits >= 2 {
					return true
				}
			}
		}
	}

	for _, fragment := range navURLFragments {
		if strings.Contains(urlLower, fragment) && !strings.Contains(urlLower, ".pdf") {
			return true
		}
	}
	return false
}

// Score accumulates weighted evidence that the link is a regulatory
// document. The result is clamped to [0,1]. Adding keyword matches never
// lowers the score.
func (f *Filter) Score(text, url string) float64 {
	w := f.weights
	textLower := strings.ToLower(text)
	urlLower := strings.ToLower(url)

	score := 0.0

	if IsDocumentFile(urlLower) {
		score += w.FileExtension
	}
	if ExtractDocID(text) != "" {
		score += w.DocID
	}
	if ExtractDate(text) != "" {
		score += w.Date
	}
	if recentYear.MatchString(text) {
		score += w.RecentYear
	}

	docHits := 0.0
	for _, kw := range documentKeywords {
		if strings.Contains(textLower, kw) {
			docHits += w.DocKeyword
		}
	}
	score += min(docHits, w.DocKeywordCap)

	regHits := 0.0
	for _, kw := range regulatoryKeywords {
		if strings.Contains(textLower, kw) {
			regHits += w.RegKeyword
		}
	}
	for _, kw := range f.extraKeywords {
		if kw != "" && strings.Contains(textLower, strings.ToLower(kw)) {
			regHits += w.RegKeyword
		}
	}
	score += min(regHits, w.RegKeywordCap)

	for _, fragment := range docURLFragments {
		if strings.Contains(urlLower, fragment) {
			score += w.URLIndicator
			break
		}
	}

	if len(text) > 30 {
		score += w.LengthBonus
	}
	if len(text) > 60 {
		score += w.LengthBonus
	}

	return min(score, 1.0)
}

// normalize lowercases and collapses internal whitespace.
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

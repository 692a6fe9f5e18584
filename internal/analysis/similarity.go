package analysis

import "strings"

const (
	// Payloads above this size skip the word-set comparison entirely.
	largeContentThreshold = 50000
	// The sampling path compares at most this many leading characters.
	sampleSize = 1000
	// Tag stripping never processes more than this much HTML.
	stripProcessingLimit = 100000
)

// SimilarityEstimator computes a bounded-cost lexical similarity between an
// HTML payload's extracted text and its plain-text sibling. It is a cheap
// proxy for "the HTML says the same thing", not semantic equivalence.
type SimilarityEstimator struct{}

// Estimate returns a similarity in [0,1]. Both inputs must already be
// lower-cased by the caller. Large payloads take a crude positional sampling
// path whose point is bounded cost, not accuracy.
func (e *SimilarityEstimator) Estimate(html, text string, budget *Budget) (float64, error) {
	if err := budget.CheckTimeout(); err != nil {
		return 0, err
	}

	if len(html) > largeContentThreshold || len(text) > largeContentThreshold {
		return e.estimateSampled(html, text, budget)
	}

	return e.estimateStandard(html, text, budget)
}

// estimateSampled compares the leading characters of both payloads position
// by position and reports the match rate.
func (e *SimilarityEstimator) estimateSampled(html, text string, budget *Budget) (float64, error) {
	if err := budget.CheckTimeout(); err != nil {
		return 0, err
	}

	n := min(sampleSize, len(html), len(text))
	htmlChars := []rune(html[:n])
	textChars := []rune(text[:n])

	compared := min(len(htmlChars), len(textChars))
	if compared == 0 {
		return 0, nil
	}

	matches := 0
	for i := 0; i < compared; i++ {
		if htmlChars[i] == textChars[i] {
			matches++
		}
		if i%100 == 0 {
			if err := budget.CheckTimeout(); err != nil {
				return 0, err
			}
		}
	}

	return float64(matches) / float64(compared), nil
}

// estimateStandard strips markup from the HTML, collapses whitespace on both
// sides and computes word-set Jaccard similarity.
func (e *SimilarityEstimator) estimateStandard(html, text string, budget *Budget) (float64, error) {
	if err := budget.CheckTimeout(); err != nil {
		return 0, err
	}

	htmlText, err := e.extractText(html, budget)
	if err != nil {
		return 0, err
	}
	textClean := strings.Join(strings.Fields(text), " ")

	if htmlText == "" || textClean == "" {
		return 0, nil
	}

	if err := budget.CheckTimeout(); err != nil {
		return 0, err
	}

	return e.jaccard(htmlText, textClean, budget)
}

// extractText removes tags and the contents of script/style elements. This is
// a linear scan with tag-name tracking, not a parser: nesting and quoted
// attributes are not handled, which is accepted behavior for this path.
func (e *SimilarityEstimator) extractText(html string, budget *Budget) (string, error) {
	if err := budget.CheckTimeout(); err != nil {
		return "", err
	}

	if len(html) > stripProcessingLimit {
		html = html[:stripProcessingLimit]
	}

	var result strings.Builder
	result.Grow(len(html) / 2)
	var tagName strings.Builder
	inTag := false
	inScriptOrStyle := false

	for i, ch := range html {
		if i%1000 == 0 {
			if err := budget.CheckTimeout(); err != nil {
				return "", err
			}
		}

		switch ch {
		case '<':
			inTag = true
			tagName.Reset()
		case '>':
			if inTag {
				inTag = false
				tag := strings.ToLower(tagName.String())
				if strings.HasPrefix(tag, "script") || strings.HasPrefix(tag, "style") {
					inScriptOrStyle = true
				} else if strings.HasPrefix(tag, "/script") || strings.HasPrefix(tag, "/style") {
					inScriptOrStyle = false
				}
			}
		default:
			if inTag {
				tagName.WriteRune(ch)
			} else if !inScriptOrStyle {
				result.WriteRune(ch)
			}
		}
	}

	return strings.Join(strings.Fields(result.String()), " "), nil
}

// jaccard computes |intersection| / |union| over whitespace-split tokens.
func (e *SimilarityEstimator) jaccard(text1, text2 string, budget *Budget) (float64, error) {
	if err := budget.CheckTimeout(); err != nil {
		return 0, err
	}

	words1 := make(map[string]struct{})
	for _, w := range strings.Fields(text1) {
		words1[w] = struct{}{}
	}
	words2 := make(map[string]struct{})
	for _, w := range strings.Fields(text2) {
		words2[w] = struct{}{}
	}

	if err := budget.CheckTimeout(); err != nil {
		return 0, err
	}

	intersection := 0
	for w := range words1 {
		if _, ok := words2[w]; ok {
			intersection++
		}
	}
	union := len(words1) + len(words2) - intersection

	if union == 0 {
		return 0, nil
	}
	return float64(intersection) / float64(union), nil
}

package analysis

import "strings"

// redundancyIndicator is one (pattern, weight) entry in the redundancy table.
// Indicators are additive; the total is clamped only at the end.
type redundancyIndicator struct {
	Pattern string
	Weight  float64
}

// Literal markers of boilerplate-heavy producers. Vendor markup markers and
// chat-assistant markers dominate the table because those producers wrap
// plain text in the most machinery.
var redundancyIndicators = []redundancyIndicator{
	{"mso-", 3.0},
	{"microsoft", 2.5},
	{"office", 2.5},
	{"xmlns:o=", 3.5},
	{"<!--[if", 3.5},
	{"apple-converted-space", 2.5},
	{"webkit-", 2.0},
	{"chatgpt", 3.0},
	{"conversation-turn", 4.0},
	{`data-testid="conversation`, 4.0},
}

// producerBias is the family adjustment applied inside RedundancyScore.
func producerBias(p Producer) float64 {
	switch p {
	case ProducerChatAssistant:
		return 2.0
	case ProducerOfficeSuite:
		return 1.5
	case ProducerNativeEditor:
		return 1.0
	default:
		return 0.5
	}
}

// producerFamilyBonus is the family adjustment the analyzer applies on top of
// RedundancyScore's own bias. The family therefore lands in the redundancy
// total twice; TestRedundancyScoreDoubleCountsProducer pins the resulting
// numbers so any future change to this is deliberate.
func producerFamilyBonus(p Producer) float64 {
	switch p {
	case ProducerChatAssistant:
		return 3.0
	case ProducerOfficeSuite:
		return 2.5
	case ProducerNativeEditor:
		return 1.5
	default:
		return 1.0
	}
}

// Scorer turns similarity, features and the detected producer into a value
// score and a redundancy score, each on a 0-10 scale. Both computations are
// deterministic for fixed inputs.
type Scorer struct{}

// ValueScore estimates how much unique presentation or structure the HTML
// carries beyond plain text.
func (s *Scorer) ValueScore(features Features, similarity float64) float64 {
	var score float64

	if features.RichContent {
		score += 4.0
	}
	if features.ComplexStructure {
		score += 3.0
	}
	if features.MultipleLinks {
		score += 2.0
	}
	if features.MeaningfulStyling {
		score += 2.0
	}
	// Low similarity implies the HTML says something the text does not.
	if similarity < 0.7 {
		score += 1.0
	}

	return score
}

// RedundancyScore estimates how much the HTML merely restates its plain-text
// sibling: weighted indicator hits plus a producer-family bias, clamped to 10.
func (s *Scorer) RedundancyScore(htmlLower string, detected *DetectedProducer, budget *Budget) (float64, error) {
	if err := budget.CheckTimeout(); err != nil {
		return 0, err
	}

	var score float64
	for _, ind := range redundancyIndicators {
		if strings.Contains(htmlLower, ind.Pattern) {
			score += ind.Weight
		}
		if err := budget.CheckTimeout(); err != nil {
			return 0, err
		}
	}

	if detected != nil {
		score += producerBias(detected.Producer)
	}

	return min(score, 10.0), nil
}

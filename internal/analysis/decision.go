package analysis

// Policy turns an analysis result into a binary HTML-vs-text verdict. Rules
// are evaluated in strict priority order and the first match decides:
// obviously-redundant and obviously-rich signals preempt the numeric
// tie-break at the bottom.
type Policy struct{}

// Decide reports whether the HTML payload should be persisted instead of its
// plain-text sibling. Stateless and deterministic.
func (p *Policy) Decide(res *Result) bool {
	// Near-perfect duplicate with redundancy markers. Typical of chat UIs
	// that wrap every message in the same scaffolding.
	if res.Similarity >= 0.98 && res.RedundancyScore > 2.0 {
		return false
	}

	if res.Producer != nil {
		switch res.Producer.Producer {
		case ProducerChatAssistant:
			if res.Producer.Confidence > 0.7 && res.Similarity > 0.8 {
				return false
			}
		case ProducerOfficeSuite:
			if preferText, decided := p.officeOverride(res); decided {
				return preferText
			}
		case ProducerNativeEditor:
			// Native-ecosystem HTML tends to be clean, so the bar to drop it
			// is the highest of the three families.
			if res.Producer.Confidence > 0.9 && res.Similarity > 0.95 && res.ValueScore < 2.0 {
				return false
			}
		}
	}

	// Generic chat-like signature caught without a producer match.
	if res.RedundancyScore > 4.5 && res.Similarity > 0.8 {
		return false
	}

	// Very high redundancy with nothing compensating for it.
	if res.RedundancyScore > 6.0 && res.ValueScore < 2.0 {
		return false
	}

	// Embedded media cannot survive a downgrade to text.
	if res.Features.RichContent {
		return true
	}

	if res.Features.ComplexStructure &&
		res.HTMLTextRatio < 3.0 &&
		res.RedundancyScore < 4.0 &&
		res.Similarity < 0.8 {
		return true
	}

	net := res.NetScore()

	if net > 3.0 {
		return true
	}
	if net < -2.0 {
		return false
	}

	// Boundary band: prefer text unless the HTML demonstrably diverges from
	// the text and carries some value of its own.
	if net > -1.0 && net <= 1.0 {
		if res.Similarity < 0.6 && res.ValueScore > 2.0 {
			return true
		}
		return false
	}

	return net > 0.0
}

// officeOverride applies the tiered office-suite rules. The second return
// value reports whether a rule fired; when none does, evaluation continues
// with the lower-priority rules.
func (p *Policy) officeOverride(res *Result) (preferText bool, decided bool) {
	if res.Office != nil {
		switch res.Office.Level {
		case OfficeRedundancyHigh:
			if res.Similarity > 0.85 {
				return true, true
			}
		case OfficeRedundancyMedium:
			if res.Similarity > 0.9 && res.ValueScore < 3.0 {
				return true, true
			}
		case OfficeRedundancyLow:
			if res.Similarity > 0.95 && res.ValueScore < 2.0 {
				return true, true
			}
		case OfficeRedundancyNone:
			// Office HTML without boilerplate usually carries real formatting.
		}
		return false, false
	}

	if res.Producer.Confidence > 0.8 && res.Similarity > 0.9 {
		return true, true
	}
	return false, false
}

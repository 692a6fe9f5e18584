package analysis

import "strings"

// Fixed tag and style sets the extractor scans for. These are literal
// substring checks against lower-cased HTML.
var (
	richMediaTags = []string{
		"<img", "<video", "<audio", "<iframe", "<embed", "<object", "<canvas", "<svg",
	}
	structureTags = []string{
		"<table", "<ul", "<ol", "<dl", "<nav", "<section", "<article",
	}
	meaningfulStyles = []string{
		"background-color:", "border:", "margin:", "padding:", "color:", "font-weight:",
	}
)

// producerSignature binds a producer family to the markup fingerprints that
// identify it. Detection walks these in order and the first family with any
// matching pattern wins.
type producerSignature struct {
	Producer Producer
	Patterns []string
}

var producerSignatures = []producerSignature{
	{ProducerChatAssistant, []string{`data-testid="conversation-turn`, "markdown prose w-full"}},
	{ProducerOfficeSuite, []string{"mso-", "xmlns:o=", "<!--[if"}},
	{ProducerNativeEditor, []string{"apple-converted-space", "webkit-"}},
}

// Confidence assigned to any signature match. The detection tables give a
// family verdict, not a calibrated probability.
const detectionConfidence = 0.8

// FeatureExtractor detects structural and stylistic signals in lower-cased
// HTML and fingerprints known chatty producer applications.
type FeatureExtractor struct{}

// Extract returns the feature flags for the HTML payload. The budget is
// polled between scan groups, never mid-substring-search.
func (x *FeatureExtractor) Extract(htmlLower string, budget *Budget) (Features, error) {
	if err := budget.CheckTimeout(); err != nil {
		return Features{}, err
	}

	richContent := containsAny(htmlLower, richMediaTags)

	if err := budget.CheckTimeout(); err != nil {
		return Features{}, err
	}

	complexStructure := containsAny(htmlLower, structureTags)

	if err := budget.CheckTimeout(); err != nil {
		return Features{}, err
	}

	linkCount := strings.Count(htmlLower, "<a ")

	return Features{
		RichContent:       richContent,
		ComplexStructure:  complexStructure,
		MultipleLinks:     linkCount > 2,
		MeaningfulStyling: containsAny(htmlLower, meaningfulStyles),
	}, nil
}

// DetectProducer scans for producer markup fingerprints and returns the first
// matching family, or nil when nothing matches.
func (x *FeatureExtractor) DetectProducer(htmlLower string, budget *Budget) (*DetectedProducer, error) {
	for _, sig := range producerSignatures {
		if err := budget.CheckTimeout(); err != nil {
			return nil, err
		}
		if containsAny(htmlLower, sig.Patterns) {
			return &DetectedProducer{Producer: sig.Producer, Confidence: detectionConfidence}, nil
		}
	}
	return nil, nil
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

package analysis

import "time"

// Producer identifies the application family inferred from markup
// fingerprints in clipboard HTML.
type Producer int

const (
	ProducerUnknown Producer = iota
	ProducerChatAssistant
	ProducerOfficeSuite
	ProducerNativeEditor
)

// String returns a human-readable producer name for logging.
func (p Producer) String() string {
	switch p {
	case ProducerChatAssistant:
		return "chat-assistant"
	case ProducerOfficeSuite:
		return "office-suite"
	case ProducerNativeEditor:
		return "native-editor"
	default:
		return "unknown"
	}
}

// DetectedProducer is a producer match with its confidence in [0,1]. It only
// biases redundancy scoring and decision overrides; it never rejects a
// format on its own.
type DetectedProducer struct {
	Producer   Producer
	Confidence float64
}

// Features are the structural and stylistic signals extracted from HTML.
type Features struct {
	RichContent       bool // embedded media: images, video, canvas, ...
	ComplexStructure  bool // tables, lists, nav, sections
	MultipleLinks     bool // more than two anchor openings
	MeaningfulStyling bool // inline CSS that affects presentation
}

// OfficeRedundancyLevel grades how much boilerplate an office-suite payload
// carries on top of its plain text.
type OfficeRedundancyLevel int

const (
	OfficeRedundancyNone OfficeRedundancyLevel = iota
	OfficeRedundancyLow
	OfficeRedundancyMedium
	OfficeRedundancyHigh
)

// OfficeDetection carries the tiered office-suite verdict when a dedicated
// office pass ran. The budgeted analyzer currently leaves this nil, so the
// decision policy's confidence/similarity branch governs instead.
type OfficeDetection struct {
	App        string
	Level      OfficeRedundancyLevel
	Confidence float64
}

// Result is the transient outcome of analyzing an HTML payload against its
// plain-text sibling. Only the final verdict and the chosen payload outlive
// the capture cycle.
type Result struct {
	Similarity      float64 // [0,1]
	TagDensity      float64
	HTMLTextRatio   float64
	ValueScore      float64 // [0,10]
	RedundancyScore float64 // [0,10]
	Features        Features
	Producer        *DetectedProducer
	Office          *OfficeDetection
}

// NetScore is the tie-break metric when no override rule fires.
func (r *Result) NetScore() float64 {
	return r.ValueScore - r.RedundancyScore
}

// Config is the immutable analysis configuration, constructed once and shared
// read-only across invocations.
type Config struct {
	// SimilarityThreshold is recorded for operators but not enforced directly;
	// the decision rules carry their own thresholds.
	SimilarityThreshold float64
	Timeout             time.Duration
	MaxContentSize      int
	ProducerDetection   bool
	RedundancyScoring   bool
	LogDetails          bool
}

// DefaultConfig returns the stock analysis configuration.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: 0.95,
		Timeout:             200 * time.Millisecond,
		MaxContentSize:      1024 * 1024,
		ProducerDetection:   true,
		RedundancyScoring:   true,
		LogDetails:          false,
	}
}

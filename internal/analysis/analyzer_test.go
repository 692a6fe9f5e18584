package analysis

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAnalyzer(cfg Config) *Analyzer {
	return NewAnalyzer(cfg, zap.NewNop())
}

func TestAnalyzeContentPlainWrapper(t *testing.T) {
	a := newTestAnalyzer(DefaultConfig())

	res, err := a.AnalyzeContent("<div>Hello world</div>", "Hello world")
	require.NoError(t, err)

	assert.InDelta(t, 1.0, res.Similarity, 1e-9)
	assert.InDelta(t, 0.0, res.ValueScore, 1e-9)
	// No indicator substrings, but near-identical content is itself a
	// redundancy signal: +2.0 above 0.8 plus +3.0 above 0.95.
	assert.InDelta(t, 5.0, res.RedundancyScore, 1e-9)
	assert.InDelta(t, 2.0, res.HTMLTextRatio, 1e-9)
	assert.Nil(t, res.Producer)

	assert.False(t, a.Decide(res), "a div wrapper around identical text should not be kept as HTML")
}

func TestAnalyzeContentRichMedia(t *testing.T) {
	a := newTestAnalyzer(DefaultConfig())

	res, err := a.AnalyzeContent(`<img src="cat.png"><p>a photo</p>`, "totally different words entirely")
	require.NoError(t, err)

	assert.True(t, res.Features.RichContent)
	assert.InDelta(t, 0.0, res.Similarity, 1e-9)
	assert.InDelta(t, 5.0, res.ValueScore, 1e-9) // rich content 4.0 plus low-similarity 1.0
	assert.True(t, a.Decide(res), "embedded media should keep the HTML")
	assert.True(t, a.ShouldPreferHTML(`<img src="cat.png"><p>a photo</p>`, "totally different words entirely"))
}

func TestAnalyzeContentChatAssistant(t *testing.T) {
	a := newTestAnalyzer(DefaultConfig())

	html := `<div data-testid="conversation-turn-3">alpha bravo</div>`
	res, err := a.AnalyzeContent(html, "alpha bravo")
	require.NoError(t, err)

	require.NotNil(t, res.Producer)
	assert.Equal(t, ProducerChatAssistant, res.Producer.Producer)
	assert.InDelta(t, 10.0, res.RedundancyScore, 1e-9)
	assert.False(t, a.Decide(res), "chat scaffolding around identical prose should fall back to text")
}

func TestAnalyzeContentLowercasesInput(t *testing.T) {
	a := newTestAnalyzer(DefaultConfig())

	res, err := a.AnalyzeContent(`<P STYLE="MSO-X">Alpha</P>`, "ALPHA")
	require.NoError(t, err)

	require.NotNil(t, res.Producer)
	assert.Equal(t, ProducerOfficeSuite, res.Producer.Producer)
	assert.InDelta(t, 1.0, res.Similarity, 1e-9)
}

func TestAnalyzeContentProducerDetectionDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ProducerDetection = false
	a := newTestAnalyzer(cfg)

	res, err := a.AnalyzeContent(`<p style="mso-x">alpha</p>`, "alpha")
	require.NoError(t, err)

	assert.Nil(t, res.Producer)
	// Indicator 3.0 plus similarity bonuses, with no bias and no family bonus.
	assert.InDelta(t, 8.0, res.RedundancyScore, 1e-9)
}

func TestAnalyzeContentRedundancyScoringDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RedundancyScoring = false
	a := newTestAnalyzer(cfg)

	res, err := a.AnalyzeContent(`<p style="mso-x">alpha</p>`, "alpha")
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.RedundancyScore)
}

func TestAnalyzeContentTooLarge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxContentSize = 64
	a := newTestAnalyzer(cfg)

	_, err := a.AnalyzeContent(strings.Repeat("a", 65), "a")
	require.Error(t, err)

	var sizeErr *ContentTooLargeError
	require.True(t, errors.As(err, &sizeErr))
	assert.Equal(t, 65, sizeErr.Size)
	assert.Equal(t, 64, sizeErr.Limit)
}

func TestAnalyzeContentExpiredBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = -time.Nanosecond
	a := newTestAnalyzer(cfg)

	_, err := a.AnalyzeContent("<p>alpha</p>", "alpha")
	require.Error(t, err)

	var timeoutErr *AnalysisTimeoutError
	assert.True(t, errors.As(err, &timeoutErr))
}

func TestShouldPreferHTMLTimeoutFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = -time.Nanosecond
	a := newTestAnalyzer(cfg)

	cases := []struct {
		name string
		html string
		text string
	}{
		{"office marker", `<p style="mso-x">alpha</p>`, "alpha"},
		{"embedded image", `<img src="x">`, "x"},
		{"plain html", "<p>hello</p>", "hello"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, FallbackDecision(tc.html, tc.text), a.ShouldPreferHTML(tc.html, tc.text))
		})
	}
}

func TestShouldPreferHTMLSizeCeilingFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	a := newTestAnalyzer(cfg)

	// 2 MiB payload against the default 1 MiB ceiling. The office marker makes
	// the fallback answer observable: text, even though the budgeted path
	// never ran.
	html := `<p style="mso-x">` + strings.Repeat("a", 2<<20) + "</p>"
	assert.False(t, a.ShouldPreferHTML(html, "a"))
	assert.Equal(t, FallbackDecision(html, "a"), a.ShouldPreferHTML(html, "a"))

	// The same ceiling with embedded media keeps the HTML.
	html = `<img src="x">` + strings.Repeat("a", 2<<20)
	assert.True(t, a.ShouldPreferHTML(html, "a"))
}

func TestAnalyzerStats(t *testing.T) {
	a := newTestAnalyzer(DefaultConfig())

	_, err := a.AnalyzeContent("<p>alpha</p>", "alpha")
	require.NoError(t, err)
	_, err = a.AnalyzeContent("<p>bravo</p>", "bravo")
	require.NoError(t, err)

	assert.Equal(t, uint64(2), a.Stats().AnalysisCount())
	assert.GreaterOrEqual(t, a.Stats().AverageTimeMs(), 0.0)
}

func TestAnalyzeContentDeterministic(t *testing.T) {
	a := newTestAnalyzer(DefaultConfig())

	html := `<table><tr><td style="color: red">alpha bravo</td></tr></table>`
	text := "alpha charlie"

	first, err := a.AnalyzeContent(html, text)
	require.NoError(t, err)
	second, err := a.AnalyzeContent(html, text)
	require.NoError(t, err)

	assert.Equal(t, first.Similarity, second.Similarity)
	assert.Equal(t, first.ValueScore, second.ValueScore)
	assert.Equal(t, first.RedundancyScore, second.RedundancyScore)
	assert.Equal(t, a.Decide(first), a.Decide(second))
}

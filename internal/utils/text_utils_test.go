package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestProcessor() *TextProcessor {
	return NewTextProcessor(zap.NewNop())
}

func TestGeneratePreviewShortContent(t *testing.T) {
	tp := newTestProcessor()
	assert.Equal(t, "hello", tp.GeneratePreview("hello", 100))
}

func TestGeneratePreviewTruncates(t *testing.T) {
	tp := newTestProcessor()
	assert.Equal(t, "hello worl...", tp.GeneratePreview("hello world and more", 10))
}

func TestGeneratePreviewCountsRunesNotBytes(t *testing.T) {
	tp := newTestProcessor()

	content := strings.Repeat("é", 20)
	preview := tp.GeneratePreview(content, 5)
	assert.Equal(t, strings.Repeat("é", 5)+"...", preview)
}

func TestGeneratePreviewNormalizesNFC(t *testing.T) {
	tp := newTestProcessor()

	// Decomposed e + combining acute becomes the single composed rune.
	assert.Equal(t, "é", tp.GeneratePreview("é", 10))
}

func TestSanitizeUTF8ValidUnchanged(t *testing.T) {
	tp := newTestProcessor()
	assert.Equal(t, "héllo wörld", tp.SanitizeUTF8("héllo wörld"))
}

func TestSanitizeUTF8DropsInvalidBytes(t *testing.T) {
	tp := newTestProcessor()
	assert.Equal(t, "ab", tp.SanitizeUTF8("a\xffb"))
}

func TestDecodeHTMLEntities(t *testing.T) {
	tp := newTestProcessor()

	assert.Equal(t, `<p> & "it's"`, tp.DecodeHTMLEntities("&lt;p&gt;&nbsp;&amp;&nbsp;&quot;it&#39;s&quot;"))
	assert.Equal(t, "a/b=`c`", tp.DecodeHTMLEntities("a&#x2F;b&#x3D;&#x60;c&#x60;"))
}

func TestStripHeadAndMeta(t *testing.T) {
	tp := newTestProcessor()

	html := `<html><head><title>t</title><style>p{}</style></head><body><p>kept</p></body></html>`
	assert.Equal(t, "<html><body><p>kept</p></body></html>", tp.StripHeadAndMeta(html))
}

func TestStripHeadAndMetaStrayMeta(t *testing.T) {
	tp := newTestProcessor()

	html := `<meta charset="utf-8"><p>kept</p><meta name="generator" content="x">`
	assert.Equal(t, "<p>kept</p>", tp.StripHeadAndMeta(html))
}

func TestStripHeadAndMetaCaseInsensitive(t *testing.T) {
	tp := newTestProcessor()

	html := `<HEAD><META charset="utf-8"></HEAD><p>kept</p>`
	assert.Equal(t, "<p>kept</p>", tp.StripHeadAndMeta(html))
}

func TestStripHeadAndMetaNoOp(t *testing.T) {
	tp := newTestProcessor()
	assert.Equal(t, "<p>plain</p>", tp.StripHeadAndMeta("<p>plain</p>"))
}

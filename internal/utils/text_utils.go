package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

var (
	headRe = regexp.MustCompile(`(?is)<head.*?>.*?</head>`)
	metaRe = regexp.MustCompile(`(?is)<meta.*?>`)

	htmlEntityReplacer = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&#x27;", "'",
		"&#x2F;", "/",
		"&#x60;", "`",
		"&#x3D;", "=",
	)
)

// TextProcessor provides utilities for processing clipboard text
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

// GeneratePreview returns a short human preview of the content: the first
// maxChars characters, NFC-normalized, with an ellipsis when truncated.
// Fingerprints are computed over the exact content, never the preview.
func (tp *TextProcessor) GeneratePreview(content string, maxChars int) string {
	normalized := norm.NFC.String(tp.SanitizeUTF8(content))

	runes := []rune(normalized)
	if len(runes) <= maxChars {
		return normalized
	}

	tp.logger.Debug("Preview truncated",
		zap.Int("content_chars", len(runes)),
		zap.Int("max_chars", maxChars))

	return string(runes[:maxChars]) + "..."
}

// SanitizeUTF8 ensures the string contains only valid UTF-8 characters
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	// Replace invalid UTF-8 sequences with the Unicode replacement character
	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(text[i:])
			if size == 1 {
				// Skip invalid UTF-8 sequences
				continue
			}
		}
		result = append(result, r)
	}

	return string(result)
}

// DecodeHTMLEntities resolves the common named and numeric entities that
// clipboard HTML producers emit, for display of stored text/html records.
func (tp *TextProcessor) DecodeHTMLEntities(text string) string {
	return htmlEntityReplacer.Replace(text)
}

// StripHeadAndMeta removes the <head> element and stray <meta> tags from a
// full HTML document, keeping only the content worth persisting.
func (tp *TextProcessor) StripHeadAndMeta(html string) string {
	return metaRe.ReplaceAllString(headRe.ReplaceAllString(html, ""), "")
}

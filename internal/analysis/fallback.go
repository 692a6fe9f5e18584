package analysis

import "strings"

// FallbackDecision is the near-constant-time substitute for the budgeted
// pipeline, used when analysis timed out, the payload exceeded the size
// ceiling, or an internal error occurred. It only looks at a handful of
// telltale substrings and a length ratio, so it stays cheap at any size.
func FallbackDecision(html, text string) bool {
	htmlLower := strings.ToLower(html)

	// Embedded media needs the HTML to survive.
	if strings.Contains(htmlLower, "<img") ||
		strings.Contains(htmlLower, "<video") ||
		strings.Contains(htmlLower, "<audio") {
		return true
	}

	// Chat-assistant scaffolding around plain prose.
	if strings.Contains(htmlLower, `data-testid="conversation`) ||
		strings.Contains(htmlLower, "chatgpt") {
		return false
	}

	// Office-suite vendor markup.
	if strings.Contains(htmlLower, "mso-") || strings.Contains(htmlLower, "xmlns:o=") {
		return false
	}

	// HTML several times longer than its text is presumed boilerplate.
	if len(html) > len(text)*3 {
		return false
	}

	return false
}

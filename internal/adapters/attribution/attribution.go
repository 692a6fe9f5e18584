// Package attribution resolves which application owned the clipboard when a
// change happened. Real resolution needs platform accessibility APIs; the
// portable build ships the unsupported resolver and records go unattributed.
package attribution

import "github.com/mikey/clipboard-historian/internal/core"

// Unsupported is an AttributionSource for platforms without frontmost-app
// lookup. The capture service treats the unavailable signal as "record
// without attribution".
type Unsupported struct{}

// NewUnsupported creates the no-op attribution resolver.
func NewUnsupported() *Unsupported {
	return &Unsupported{}
}

// FrontmostApp always reports that attribution is unavailable.
func (u *Unsupported) FrontmostApp() (core.Attribution, error) {
	return core.Attribution{}, core.ErrFormatUnavailable
}

// Package clipboard adapts the host clipboard to the capture pipeline's
// ClipboardSource port. The cross-platform backend exposes plain text only;
// richer formats report unavailable and richer platform adapters can slot in
// behind the same port.
package clipboard

import (
	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/mikey/clipboard-historian/internal/core"
)

// SystemSource reads the host clipboard through the portable text backend.
type SystemSource struct {
	logger *zap.Logger
}

// NewSystemSource creates a new system clipboard source.
func NewSystemSource(logger *zap.Logger) *SystemSource {
	return &SystemSource{logger: logger}
}

// AvailableFormats reports which representations the clipboard currently
// offers. Only text is observable through the portable backend.
func (s *SystemSource) AvailableFormats() (core.Formats, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		// Transient and frequent: clipboard empty or held by another app.
		s.logger.Debug("Failed to read clipboard", zap.Error(err))
		return core.Formats{}, nil
	}
	return core.Formats{Text: text != ""}, nil
}

// ReadText returns the current clipboard text.
func (s *SystemSource) ReadText() (string, error) {
	return clipboard.ReadAll()
}

// ReadHTML is unavailable through the portable backend.
func (s *SystemSource) ReadHTML() (string, error) {
	return "", core.ErrFormatUnavailable
}

// ReadRTF is unavailable through the portable backend.
func (s *SystemSource) ReadRTF() (string, error) {
	return "", core.ErrFormatUnavailable
}

// ReadImage is unavailable through the portable backend.
func (s *SystemSource) ReadImage() (string, error) {
	return "", core.ErrFormatUnavailable
}

// ReadFiles is unavailable through the portable backend.
func (s *SystemSource) ReadFiles() ([]string, error) {
	return nil, core.ErrFormatUnavailable
}

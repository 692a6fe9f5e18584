// Package notify surfaces newly captured records as desktop notifications.
package notify

import (
	"github.com/gen2brain/beeep"
	"go.uber.org/zap"
)

// DesktopNotifier sends native desktop notifications.
type DesktopNotifier struct {
	logger *zap.Logger
}

// NewDesktopNotifier creates a new desktop notifier.
func NewDesktopNotifier(logger *zap.Logger) *DesktopNotifier {
	return &DesktopNotifier{logger: logger}
}

// Notify shows a notification with the given title and message.
func (n *DesktopNotifier) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// NoopNotifier discards notifications; used when notifications are disabled.
type NoopNotifier struct{}

// Notify does nothing.
func (NoopNotifier) Notify(_, _ string) error {
	return nil
}

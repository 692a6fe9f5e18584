package ignorelist

import (
	"strings"

	"go.uber.org/zap"
)

// Checker decides whether clipboard content from a given application should
// be skipped entirely. Password managers and similar tools are the typical
// entries: their clipboard contents must never land in history.
type Checker struct {
	apps   []string
	logger *zap.Logger
}

// NewChecker creates a new ignore-list checker. Entries match either the
// application name or its bundle identifier, case-insensitively.
func NewChecker(apps []string, logger *zap.Logger) *Checker {
	normalized := make([]string, len(apps))
	for i, app := range apps {
		normalized[i] = strings.ToLower(strings.TrimSpace(app))
	}

	if len(normalized) > 0 && logger != nil {
		logger.Info("Initialized ignore-list checker", zap.Strings("apps", normalized))
	}

	return &Checker{
		apps:   normalized,
		logger: logger,
	}
}

// IsIgnored reports whether content from this application must not be captured.
func (c *Checker) IsIgnored(appName, bundleID string) bool {
	if len(c.apps) == 0 {
		return false
	}

	name := strings.ToLower(appName)
	bundle := strings.ToLower(bundleID)

	for _, app := range c.apps {
		if app == "" {
			continue
		}
		if app == name || app == bundle {
			if c.logger != nil {
				c.logger.Debug("Skipping clipboard change from ignored app",
					zap.String("app", appName),
					zap.String("bundle_id", bundleID))
			}
			return true
		}
	}

	return false
}

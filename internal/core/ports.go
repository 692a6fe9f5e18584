package core

import (
	"context"
	"errors"
)

var (
	// ErrDuplicateContent is returned by HistoryRepository.Insert when a
	// record with the same fingerprint already exists. Expected and
	// non-fatal: the capture cycle skips and continues.
	ErrDuplicateContent = errors.New("duplicate content")

	// ErrFormatUnavailable is returned by ClipboardSource reads for formats
	// the platform adapter cannot provide this cycle.
	ErrFormatUnavailable = errors.New("clipboard format unavailable")
)

// ClipboardSource provides access to the platform clipboard. Reads may fail
// independently per format; a failed read for a flagged-available format is
// treated as "format unavailable this cycle", not a hard error.
type ClipboardSource interface {
	// AvailableFormats reports which representations the current clipboard
	// change advertises.
	AvailableFormats() (Formats, error)

	ReadText() (string, error)
	ReadHTML() (string, error)
	ReadRTF() (string, error)

	// ReadImage returns the image content as an encoded blob.
	ReadImage() (string, error)

	// ReadFiles returns the copied file paths.
	ReadFiles() ([]string, error)
}

// HistoryRepository persists chosen clipboard payloads. Deduplication is
// pushed down to the store via a uniqueness constraint on the fingerprint;
// the capture core only supplies the key.
type HistoryRepository interface {
	// Insert stores a record and returns its id, or ErrDuplicateContent when
	// the fingerprint already exists.
	Insert(ctx context.Context, rec *ContentRecord) (int64, error)

	// List returns recent records, newest first. contentType filters when
	// non-empty.
	List(ctx context.Context, limit, offset int, contentType ContentType) ([]*ContentRecord, error)

	// Cleanup removes records older than the retention window.
	Cleanup(ctx context.Context) error
}

// AttributionSource resolves the application owning the clipboard. Optional;
// adapters that cannot resolve it return ErrFormatUnavailable.
type AttributionSource interface {
	FrontmostApp() (Attribution, error)
}

// FormatDecider resolves the HTML-vs-text choice when both representations
// are available in the same cycle.
type FormatDecider interface {
	ShouldPreferHTML(html, text string) bool
}

// Notifier announces newly captured records to the user. Optional.
type Notifier interface {
	Notify(title, message string) error
}

package core

import "time"

// ContentType tags the semantic representation chosen for a clipboard change.
type ContentType string

const (
	ContentFiles ContentType = "files"
	ContentImage ContentType = "image"
	ContentHTML  ContentType = "html"
	ContentText  ContentType = "text"
	ContentRTF   ContentType = "rtf"
)

// Formats is the set of representations a clipboard change advertises.
// A flag only means the format is claimed to be available; the read for it
// may still fail this cycle.
type Formats struct {
	Files bool
	Image bool
	HTML  bool
	Text  bool
	RTF   bool
}

// Attribution identifies the application that owned the clipboard when the
// change happened. Resolved by a collaborator, never by the capture core.
type Attribution struct {
	AppName  string
	BundleID string
}

// ContentRecord is one persisted history entry. The repository enforces
// fingerprint uniqueness: a second record with the same fingerprint is
// rejected, not overwritten. Records are never mutated after creation.
type ContentRecord struct {
	ID             int64
	ContentType    ContentType
	Content        string
	Fingerprint    string
	Preview        string
	Timestamp      time.Time
	SourceApp      string
	SourceBundleID string
}

package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mikey/clipboard-historian/internal/fingerprint"
	"github.com/mikey/clipboard-historian/internal/ignorelist"
	"github.com/mikey/clipboard-historian/internal/utils"
)

// CaptureService is the core capture pipeline: on every clipboard change it
// picks exactly one semantic representation, fingerprints it and hands it to
// the history repository. Cycles are processed one at a time; a new change is
// not classified while a previous one is mid-flight.
type CaptureService struct {
	source      ClipboardSource
	history     HistoryRepository
	decider     FormatDecider
	attribution AttributionSource
	notifier    Notifier
	ignored     *ignorelist.Checker
	processor   *utils.TextProcessor
	logger      *zap.Logger
	previewMax  int
}

// NewCaptureService creates a new capture service. attribution and notifier
// may be nil.
func NewCaptureService(
	source ClipboardSource,
	history HistoryRepository,
	decider FormatDecider,
	attribution AttributionSource,
	notifier Notifier,
	ignored *ignorelist.Checker,
	processor *utils.TextProcessor,
	logger *zap.Logger,
	previewMax int,
) *CaptureService {
	return &CaptureService{
		source:      source,
		history:     history,
		decider:     decider,
		attribution: attribution,
		notifier:    notifier,
		ignored:     ignored,
		processor:   processor,
		logger:      logger,
		previewMax:  previewMax,
	}
}

// HandleClipboardChange runs one capture cycle. It returns whether a new
// record was actually persisted, which is distinct from "a format was
// available": duplicates and empty payloads yield (false, nil). Only a
// non-duplicate storage failure is surfaced as an error, and it abandons
// just this cycle.
func (s *CaptureService) HandleClipboardChange(ctx context.Context) (bool, error) {
	cycleID := uuid.NewString()

	snap, err := NewSnapshot(s.source)
	if err != nil {
		return false, fmt.Errorf("failed to read clipboard formats: %w", err)
	}

	attr := s.resolveAttribution(cycleID)
	if s.ignored != nil && s.ignored.IsIgnored(attr.AppName, attr.BundleID) {
		return false, nil
	}

	now := time.Now()

	for _, contentType := range s.Prioritize(snap) {
		rec, ok := s.buildRecord(snap, contentType, now, attr)
		if !ok {
			// Read failure or empty payload: this format is out for the
			// cycle, try the next candidate.
			continue
		}

		id, err := s.history.Insert(ctx, rec)
		if errors.Is(err, ErrDuplicateContent) {
			s.logger.Debug("Duplicate content, skipping",
				zap.String("cycle_id", cycleID),
				zap.String("content_type", string(contentType)),
				zap.String("fingerprint", rec.Fingerprint))
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to persist %s record: %w", contentType, err)
		}

		s.logger.Info("Captured clipboard content",
			zap.String("cycle_id", cycleID),
			zap.String("content_type", string(contentType)),
			zap.Int64("record_id", id),
			zap.String("source_app", rec.SourceApp))

		s.notify(rec)
		return true, nil
	}

	s.logger.Debug("No clipboard content captured", zap.String("cycle_id", cycleID))
	return false, nil
}

// Prioritize orders the available formats for this cycle, highest priority
// first: files, then image, then the HTML-vs-text resolution, then rtf. The
// decider is consulted only when both HTML and text are available and both
// reads succeed; a one-sided read failure takes whichever side survived.
// Exactly one format is persisted per cycle, so this is an ordering of
// candidates, not a fan-out.
func (s *CaptureService) Prioritize(snap *Snapshot) []ContentType {
	formats := snap.Formats()
	var order []ContentType

	if formats.Files {
		order = append(order, ContentFiles)
	}
	if formats.Image {
		order = append(order, ContentImage)
	}

	switch {
	case formats.HTML && formats.Text:
		html, htmlErr := snap.HTML()
		text, textErr := snap.Text()
		switch {
		case htmlErr == nil && textErr == nil:
			if s.decider.ShouldPreferHTML(html, text) {
				order = append(order, ContentHTML)
			} else {
				order = append(order, ContentText)
			}
		case htmlErr == nil:
			order = append(order, ContentHTML)
		case textErr == nil:
			order = append(order, ContentText)
		default:
			order = append(order, ContentHTML)
		}
	case formats.HTML:
		order = append(order, ContentHTML)
	case formats.Text:
		order = append(order, ContentText)
	}

	if formats.RTF {
		order = append(order, ContentRTF)
	}

	return order
}

// buildRecord reads the payload for one candidate format and assembles the
// record to persist. ok is false when the read failed or the payload was empty.
func (s *CaptureService) buildRecord(snap *Snapshot, contentType ContentType, ts time.Time, attr Attribution) (*ContentRecord, bool) {
	var content, preview string

	switch contentType {
	case ContentFiles:
		paths, err := snap.Files()
		if err != nil || len(paths) == 0 {
			return nil, false
		}
		encoded, err := fingerprint.EncodeFileList(paths)
		if err != nil {
			s.logger.Warn("Failed to encode file list", zap.Error(err))
			return nil, false
		}
		content = encoded
		if len(paths) == 1 {
			preview = fmt.Sprintf("1 file: %s", paths[0])
		} else {
			preview = fmt.Sprintf("%d files", len(paths))
		}

	case ContentImage:
		blob, err := snap.Image()
		if err != nil || blob == "" {
			return nil, false
		}
		content = blob
		preview = "Image"

	case ContentHTML:
		html, err := snap.HTML()
		if err != nil || html == "" {
			return nil, false
		}
		content = s.processor.StripHeadAndMeta(html)
		preview = "HTML content"

	case ContentText:
		text, err := snap.Text()
		if err != nil || text == "" {
			return nil, false
		}
		content = text
		preview = s.processor.GeneratePreview(text, s.previewMax)

	case ContentRTF:
		rtf, err := snap.RTF()
		if err != nil || rtf == "" {
			return nil, false
		}
		content = rtf
		preview = "RTF text"

	default:
		return nil, false
	}

	return &ContentRecord{
		ContentType:    contentType,
		Content:        content,
		Fingerprint:    fingerprint.Sum(content),
		Preview:        preview,
		Timestamp:      ts,
		SourceApp:      attr.AppName,
		SourceBundleID: attr.BundleID,
	}, true
}

func (s *CaptureService) resolveAttribution(cycleID string) Attribution {
	if s.attribution == nil {
		return Attribution{}
	}
	attr, err := s.attribution.FrontmostApp()
	if err != nil {
		if !errors.Is(err, ErrFormatUnavailable) {
			s.logger.Debug("Failed to resolve frontmost app",
				zap.String("cycle_id", cycleID),
				zap.Error(err))
		}
		return Attribution{}
	}
	return attr
}

func (s *CaptureService) notify(rec *ContentRecord) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify("Clipboard captured", rec.Preview); err != nil {
		s.logger.Warn("Failed to send notification", zap.Error(err))
	}
}

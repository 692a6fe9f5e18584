package history

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/clipboard-historian/internal/core"
)

// MemoryRepository is an in-memory implementation of the HistoryRepository
// interface, used in tests and for throwaway sessions where history should
// not outlive the process.
type MemoryRepository struct {
	mu        sync.RWMutex
	records   []*core.ContentRecord
	byKey     map[string]struct{}
	nextID    int64
	logger    *zap.Logger
	retention time.Duration
}

// NewMemoryRepository creates a new in-memory history repository.
func NewMemoryRepository(logger *zap.Logger, retention time.Duration) *MemoryRepository {
	return &MemoryRepository{
		byKey:     make(map[string]struct{}),
		nextID:    1,
		logger:    logger,
		retention: retention,
	}
}

// Insert stores a record, rejecting fingerprints already present.
func (r *MemoryRepository) Insert(_ context.Context, rec *core.ContentRecord) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byKey[rec.Fingerprint]; exists {
		return 0, core.ErrDuplicateContent
	}

	stored := *rec
	stored.ID = r.nextID
	r.nextID++

	r.byKey[stored.Fingerprint] = struct{}{}
	r.records = append(r.records, &stored)

	return stored.ID, nil
}

// List returns recent records, newest first, optionally filtered by type.
func (r *MemoryRepository) List(_ context.Context, limit, offset int, contentType core.ContentType) ([]*core.ContentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*core.ContentRecord
	for i := len(r.records) - 1; i >= 0; i-- {
		rec := r.records[i]
		if contentType != "" && rec.ContentType != contentType {
			continue
		}
		matched = append(matched, rec)
	}

	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}

	out := make([]*core.ContentRecord, len(matched))
	for i, rec := range matched {
		copied := *rec
		out[i] = &copied
	}
	return out, nil
}

// Cleanup removes records older than the retention window.
func (r *MemoryRepository) Cleanup(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-r.retention)
	kept := r.records[:0]
	expired := 0
	for _, rec := range r.records {
		if rec.Timestamp.Before(cutoff) {
			delete(r.byKey, rec.Fingerprint)
			expired++
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept

	if expired > 0 && r.logger != nil {
		r.logger.Debug("Cleaned up expired history records", zap.Int("expired_count", expired))
	}

	return nil
}

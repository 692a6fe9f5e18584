package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/mikey/clipboard-historian/internal/core"
)

// SQLiteRepository is a SQLite implementation of the HistoryRepository
// interface. The UNIQUE index on the fingerprint column is the sole
// deduplication mechanism in the system.
type SQLiteRepository struct {
	db          *sql.DB
	logger      *zap.Logger
	retention   time.Duration
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewSQLiteRepository opens the history database, creating the schema if
// needed, and starts the background retention cleanup.
func NewSQLiteRepository(dbPath string, logger *zap.Logger, retention, cleanupFreq time.Duration) (*SQLiteRepository, error) {
	// WAL keeps reads (history listing) from blocking capture writes.
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS clipboard_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			content_type TEXT NOT NULL,
			content TEXT NOT NULL,
			fingerprint TEXT NOT NULL,
			preview TEXT,
			timestamp TIMESTAMP NOT NULL,
			source_app TEXT,
			source_bundle_id TEXT
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	// The uniqueness constraint that rejects duplicate content.
	_, err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_history_fingerprint ON clipboard_history(fingerprint)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create fingerprint index: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_history_timestamp ON clipboard_history(timestamp)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create timestamp index: %w", err)
	}

	repo := &SQLiteRepository{
		db:          db,
		logger:      logger,
		retention:   retention,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	// Start background cleanup
	go repo.startCleanupTask()

	return repo, nil
}

// Insert stores a record, translating the uniqueness violation into
// core.ErrDuplicateContent.
func (r *SQLiteRepository) Insert(ctx context.Context, rec *core.ContentRecord) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO clipboard_history (content_type, content, fingerprint, preview, timestamp, source_app, source_bundle_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, string(rec.ContentType), rec.Content, rec.Fingerprint, rec.Preview,
		rec.Timestamp.UTC().Format(time.RFC3339), rec.SourceApp, rec.SourceBundleID)

	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, core.ErrDuplicateContent
		}
		return 0, fmt.Errorf("failed to insert history record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted record id: %w", err)
	}

	return id, nil
}

// List returns recent records, newest first, optionally filtered by type.
func (r *SQLiteRepository) List(ctx context.Context, limit, offset int, contentType core.ContentType) ([]*core.ContentRecord, error) {
	var rows *sql.Rows
	var err error

	if contentType != "" {
		rows, err = r.db.QueryContext(ctx, `
			SELECT id, content_type, content, fingerprint, preview, timestamp, source_app, source_bundle_id
			FROM clipboard_history
			WHERE content_type = ?
			ORDER BY id DESC LIMIT ? OFFSET ?
		`, string(contentType), limit, offset)
	} else {
		rows, err = r.db.QueryContext(ctx, `
			SELECT id, content_type, content, fingerprint, preview, timestamp, source_app, source_bundle_id
			FROM clipboard_history
			ORDER BY id DESC LIMIT ? OFFSET ?
		`, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []*core.ContentRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}

	return records, nil
}

func scanRecord(rows *sql.Rows) (*core.ContentRecord, error) {
	var rec core.ContentRecord
	var contentType, timestamp string
	var preview, sourceApp, sourceBundleID sql.NullString

	err := rows.Scan(&rec.ID, &contentType, &rec.Content, &rec.Fingerprint,
		&preview, &timestamp, &sourceApp, &sourceBundleID)
	if err != nil {
		return nil, fmt.Errorf("failed to scan history row: %w", err)
	}

	rec.ContentType = core.ContentType(contentType)
	rec.Preview = preview.String
	rec.SourceApp = sourceApp.String
	rec.SourceBundleID = sourceBundleID.String

	ts, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse record timestamp: %w", err)
	}
	rec.Timestamp = ts

	return &rec, nil
}

// Cleanup removes records older than the retention window.
func (r *SQLiteRepository) Cleanup(ctx context.Context) error {
	cutoff := time.Now().Add(-r.retention).UTC().Format(time.RFC3339)

	result, err := r.db.ExecContext(ctx, `
		DELETE FROM clipboard_history WHERE timestamp < ?
	`, cutoff)
	if err != nil {
		return fmt.Errorf("failed to clean up expired history: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Warn("Failed to get rows affected during cleanup", zap.Error(err))
	} else if rowsAffected > 0 {
		r.logger.Debug("Cleaned up expired history records", zap.Int64("expired_count", rowsAffected))
	}

	return nil
}

// startCleanupTask starts a background task to enforce the retention window
func (r *SQLiteRepository) startCleanupTask() {
	ticker := time.NewTicker(r.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := r.Cleanup(context.Background()); err != nil {
				r.logger.Error("Failed to clean up history", zap.Error(err))
			}
		case <-r.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task and closes the database connection
func (r *SQLiteRepository) Stop() {
	close(r.stopCh)
	if err := r.db.Close(); err != nil {
		r.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}

package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/clipboard-historian/internal/adapters/history"
	"github.com/mikey/clipboard-historian/internal/config"
	"github.com/mikey/clipboard-historian/internal/core"
	"go.uber.org/zap"
)

// HistoryFactory creates history repositories based on configuration
type HistoryFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewHistoryFactory creates a new history factory
func NewHistoryFactory(cfg *config.Config, logger *zap.Logger) *HistoryFactory {
	return &HistoryFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateRepository creates a history repository based on the configuration
func (f *HistoryFactory) CreateRepository() (core.HistoryRepository, error) {
	backend := f.cfg.GetString("history.backend")
	retention, err := f.cfg.GetDuration("history.retention")
	if err != nil {
		return nil, fmt.Errorf("invalid history retention: %w", err)
	}
	cleanupFreq, err := f.cfg.GetDuration("history.cleanup_frequency")
	if err != nil {
		return nil, fmt.Errorf("invalid history cleanup frequency: %w", err)
	}

	switch backend {
	case "memory":
		return history.NewMemoryRepository(f.logger, retention), nil
	case "sqlite":
		sqlitePath := f.cfg.GetString("history.sqlite_path")
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return history.NewSQLiteRepository(sqlitePath, f.logger, retention, cleanupFreq)
	case "mysql":
		mysqlDSN := f.cfg.GetString("history.mysql_dsn")
		return history.NewMySQLRepository(mysqlDSN, f.logger, retention, cleanupFreq)
	default:
		return nil, fmt.Errorf("unsupported history backend: %s", backend)
	}
}

package factory

import (
	"fmt"

	"github.com/mikey/clipboard-historian/internal/adapters/clipboard"
	"github.com/mikey/clipboard-historian/internal/config"
	"github.com/mikey/clipboard-historian/internal/core"
	"github.com/mikey/clipboard-historian/internal/ports"
	"go.uber.org/zap"
)

// CaptureFactory creates the capture surface based on configuration
type CaptureFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	source  core.ClipboardSource
	service *core.CaptureService
}

// NewCaptureFactory creates a new capture factory
func NewCaptureFactory(cfg *config.Config, logger *zap.Logger, source core.ClipboardSource, service *core.CaptureService) *CaptureFactory {
	return &CaptureFactory{
		cfg:     cfg,
		logger:  logger,
		source:  source,
		service: service,
	}
}

// CreateCaptureRunner creates the polling clipboard monitor
func (f *CaptureFactory) CreateCaptureRunner() (ports.CaptureRunner, error) {
	interval, err := f.cfg.GetDuration("capture.poll_interval")
	if err != nil {
		return nil, fmt.Errorf("invalid capture poll interval: %w", err)
	}

	return clipboard.NewMonitor(f.source, f.service, f.logger, interval), nil
}

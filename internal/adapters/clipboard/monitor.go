package clipboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/clipboard-historian/internal/core"
	"github.com/mikey/clipboard-historian/internal/fingerprint"
)

// Monitor polls the clipboard for changes and feeds each change through the
// capture service, one cycle at a time. Polling is the only portable change
// detection: the platforms that expose change events do so through three
// different native APIs, while a poll interval behaves the same everywhere.
type Monitor struct {
	source   core.ClipboardSource
	service  *core.CaptureService
	logger   *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}

	lastFingerprint string
}

// NewMonitor creates a new polling clipboard monitor.
func NewMonitor(source core.ClipboardSource, service *core.CaptureService, logger *zap.Logger, interval time.Duration) *Monitor {
	return &Monitor{
		source:   source,
		service:  service,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins polling in a background goroutine.
func (m *Monitor) Start() error {
	m.logger.Info("Starting clipboard monitor", zap.Duration("poll_interval", m.interval))

	// Seed the change detector so the content already on the clipboard at
	// startup is not captured as a "change".
	if text, err := m.source.ReadText(); err == nil && text != "" {
		m.lastFingerprint = fingerprint.Sum(text)
	}

	go m.run()
	return nil
}

func (m *Monitor) run() {
	defer close(m.doneCh)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.poll()
		case <-m.stopCh:
			return
		}
	}
}

// poll performs hash-based change detection so megabytes of clipboard text
// are never held just for comparison, then runs one capture cycle.
func (m *Monitor) poll() {
	text, err := m.source.ReadText()
	if err != nil || text == "" {
		return
	}

	current := fingerprint.Sum(text)
	if current == m.lastFingerprint {
		return
	}
	m.lastFingerprint = current

	persisted, err := m.service.HandleClipboardChange(context.Background())
	if err != nil {
		// A failed cycle loses one clipboard change, never the process.
		m.logger.Error("Capture cycle failed", zap.Error(err))
		return
	}
	if !persisted {
		m.logger.Debug("Clipboard change produced no new record")
	}
}

// Stop stops polling and waits for the in-flight cycle to finish.
func (m *Monitor) Stop() error {
	close(m.stopCh)
	<-m.doneCh
	m.logger.Info("Clipboard monitor stopped")
	return nil
}

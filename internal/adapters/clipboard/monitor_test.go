package clipboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/clipboard-historian/internal/adapters/history"
	"github.com/mikey/clipboard-historian/internal/core"
	"github.com/mikey/clipboard-historian/internal/ignorelist"
	"github.com/mikey/clipboard-historian/internal/utils"
)

// scriptedSource serves mutable text, standing in for a platform clipboard
// the test can write to.
type scriptedSource struct {
	mu   sync.Mutex
	text string
}

func (s *scriptedSource) setText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
}

func (s *scriptedSource) AvailableFormats() (core.Formats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Formats{Text: s.text != ""}, nil
}

func (s *scriptedSource) ReadText() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text, nil
}

func (s *scriptedSource) ReadHTML() (string, error)    { return "", core.ErrFormatUnavailable }
func (s *scriptedSource) ReadRTF() (string, error)     { return "", core.ErrFormatUnavailable }
func (s *scriptedSource) ReadImage() (string, error)   { return "", core.ErrFormatUnavailable }
func (s *scriptedSource) ReadFiles() ([]string, error) { return nil, core.ErrFormatUnavailable }

type alwaysText struct{}

func (alwaysText) ShouldPreferHTML(string, string) bool { return false }

func TestMonitorCapturesChanges(t *testing.T) {
	source := &scriptedSource{text: "already on the clipboard"}
	repo := history.NewMemoryRepository(zap.NewNop(), 24*time.Hour)

	service := core.NewCaptureService(
		source,
		repo,
		alwaysText{},
		nil,
		nil,
		ignorelist.NewChecker(nil, zap.NewNop()),
		utils.NewTextProcessor(zap.NewNop()),
		zap.NewNop(),
		100,
	)

	m := NewMonitor(source, service, zap.NewNop(), 5*time.Millisecond)
	require.NoError(t, m.Start())
	defer m.Stop()

	source.setText("fresh content")

	assert.Eventually(t, func() bool {
		records, err := repo.List(context.Background(), 10, 0, "")
		return err == nil && len(records) == 1 && records[0].Content == "fresh content"
	}, 2*time.Second, 10*time.Millisecond)

	// The content present at startup seeds the change detector and is never
	// captured as a change of its own.
	records, err := repo.List(context.Background(), 10, 0, "")
	require.NoError(t, err)
	for _, rec := range records {
		assert.NotEqual(t, "already on the clipboard", rec.Content)
	}
}

func TestMonitorIgnoresUnchangedContent(t *testing.T) {
	source := &scriptedSource{}
	repo := history.NewMemoryRepository(zap.NewNop(), 24*time.Hour)

	service := core.NewCaptureService(
		source,
		repo,
		alwaysText{},
		nil,
		nil,
		ignorelist.NewChecker(nil, zap.NewNop()),
		utils.NewTextProcessor(zap.NewNop()),
		zap.NewNop(),
		100,
	)

	m := NewMonitor(source, service, zap.NewNop(), 5*time.Millisecond)
	require.NoError(t, m.Start())

	source.setText("stable content")

	assert.Eventually(t, func() bool {
		records, err := repo.List(context.Background(), 10, 0, "")
		return err == nil && len(records) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// Several more polls with the same content must not add records.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, m.Stop())

	records, err := repo.List(context.Background(), 10, 0, "")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestMonitorStopWaitsForShutdown(t *testing.T) {
	source := &scriptedSource{}
	repo := history.NewMemoryRepository(zap.NewNop(), 24*time.Hour)

	service := core.NewCaptureService(
		source, repo, alwaysText{}, nil, nil,
		ignorelist.NewChecker(nil, zap.NewNop()),
		utils.NewTextProcessor(zap.NewNop()),
		zap.NewNop(), 100,
	)

	m := NewMonitor(source, service, zap.NewNop(), time.Millisecond)
	require.NoError(t, m.Start())

	done := make(chan struct{})
	go func() {
		assert.NoError(t, m.Stop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}

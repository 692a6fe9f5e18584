package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	assert.Equal(t, 0.95, cfg.GetFloat64("analysis.similarity_threshold"))
	assert.Equal(t, 1024*1024, cfg.GetInt("analysis.max_content_size"))
	assert.True(t, cfg.GetBool("analysis.producer_detection"))
	assert.True(t, cfg.GetBool("analysis.redundancy_scoring"))
	assert.False(t, cfg.GetBool("analysis.log_details"))

	assert.Equal(t, "sqlite", cfg.GetString("history.backend"))
	assert.Equal(t, 100, cfg.GetInt("history.preview_max_chars"))
	assert.Empty(t, cfg.GetStringSlice("capture.ignored_apps"))
	assert.False(t, cfg.GetBool("notify.enabled"))
	assert.Equal(t, "info", cfg.GetString("logging.level"))
}

func TestDefaultDurations(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	timeout, err := cfg.GetDuration("analysis.timeout")
	require.NoError(t, err)
	assert.Equal(t, 200*time.Millisecond, timeout)

	retention, err := cfg.GetDuration("history.retention")
	require.NoError(t, err)
	assert.Equal(t, 720*time.Hour, retention)

	interval, err := cfg.GetDuration("capture.poll_interval")
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, interval)
}

func TestGetDurationInvalid(t *testing.T) {
	v := NewEmptyViper()
	v.Set("analysis.timeout", "not-a-duration")
	cfg := NewFromViper(v)

	_, err := cfg.GetDuration("analysis.timeout")
	assert.Error(t, err)
}

func TestOverridesViaViper(t *testing.T) {
	v := NewEmptyViper()
	v.Set("analysis.max_content_size", 2048)
	v.Set("capture.ignored_apps", []string{"1Password"})
	cfg := NewFromViper(v)

	assert.Equal(t, 2048, cfg.GetInt("analysis.max_content_size"))
	assert.Equal(t, []string{"1Password"}, cfg.GetStringSlice("capture.ignored_apps"))
}

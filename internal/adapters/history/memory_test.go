package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/clipboard-historian/internal/core"
)

func textRecord(content string, ts time.Time) *core.ContentRecord {
	return &core.ContentRecord{
		ContentType: core.ContentText,
		Content:     content,
		Fingerprint: fmt.Sprintf("fp-%s", content),
		Preview:     content,
		Timestamp:   ts,
	}
}

func TestMemoryInsertAndList(t *testing.T) {
	repo := NewMemoryRepository(zap.NewNop(), 24*time.Hour)
	ctx := context.Background()

	id, err := repo.Insert(ctx, textRecord("first", time.Now()))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	id, err = repo.Insert(ctx, textRecord("second", time.Now()))
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	records, err := repo.List(ctx, 10, 0, "")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "second", records[0].Content, "listing is newest first")
	assert.Equal(t, "first", records[1].Content)
}

func TestMemoryDuplicateFingerprint(t *testing.T) {
	repo := NewMemoryRepository(zap.NewNop(), 24*time.Hour)
	ctx := context.Background()

	_, err := repo.Insert(ctx, textRecord("same", time.Now()))
	require.NoError(t, err)

	_, err = repo.Insert(ctx, textRecord("same", time.Now()))
	assert.ErrorIs(t, err, core.ErrDuplicateContent)

	records, err := repo.List(ctx, 10, 0, "")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestMemoryListFilterAndPaging(t *testing.T) {
	repo := NewMemoryRepository(zap.NewNop(), 24*time.Hour)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.Insert(ctx, textRecord(fmt.Sprintf("text-%d", i), time.Now()))
		require.NoError(t, err)
	}
	_, err := repo.Insert(ctx, &core.ContentRecord{
		ContentType: core.ContentHTML,
		Content:     "<b>x</b>",
		Fingerprint: "fp-html",
	})
	require.NoError(t, err)

	htmlOnly, err := repo.List(ctx, 10, 0, core.ContentHTML)
	require.NoError(t, err)
	require.Len(t, htmlOnly, 1)
	assert.Equal(t, "<b>x</b>", htmlOnly[0].Content)

	page, err := repo.List(ctx, 2, 1, core.ContentText)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "text-3", page[0].Content)
	assert.Equal(t, "text-2", page[1].Content)

	empty, err := repo.List(ctx, 10, 100, "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryListReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository(zap.NewNop(), 24*time.Hour)
	ctx := context.Background()

	_, err := repo.Insert(ctx, textRecord("original", time.Now()))
	require.NoError(t, err)

	records, err := repo.List(ctx, 1, 0, "")
	require.NoError(t, err)
	records[0].Content = "mutated"

	again, err := repo.List(ctx, 1, 0, "")
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].Content)
}

func TestMemoryCleanupExpiresOldRecords(t *testing.T) {
	repo := NewMemoryRepository(zap.NewNop(), 24*time.Hour)
	ctx := context.Background()

	_, err := repo.Insert(ctx, textRecord("old", time.Now().Add(-48*time.Hour)))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, textRecord("fresh", time.Now()))
	require.NoError(t, err)

	require.NoError(t, repo.Cleanup(ctx))

	records, err := repo.List(ctx, 10, 0, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "fresh", records[0].Content)

	// The expired fingerprint is free for reuse after cleanup.
	_, err = repo.Insert(ctx, textRecord("old", time.Now()))
	assert.NoError(t, err)
}

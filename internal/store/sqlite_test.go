package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zavlong/etsy-task-tracker/internal/domain"
)

func openMemory(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(MemoryPath, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGet_UnseenWeekReturnsDefaults(t *testing.T) {
	s := openMemory(t)

	rec, found, err := s.Get(context.Background(), "2024-01-01")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, domain.DefaultWeekRecord(), rec)
}

func TestPutGet_RoundTrip(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	rec := domain.WeekRecord{
		Completions: domain.CompletionRecord{"orders-2": true, "seo-2": false},
		Stats:       domain.Stats{Listed: 5, Sales: 2, Revenue: 80},
	}
	require.NoError(t, s.Put(ctx, "2024-01-01", rec))

	got, found, err := s.Get(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, rec, got)
}

func TestPut_Upserts(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "2024-01-01", domain.WeekRecord{
		Completions: domain.CompletionRecord{"orders-2": true},
		Stats:       domain.Stats{Sales: 1},
	}))
	require.NoError(t, s.Put(ctx, "2024-01-01", domain.WeekRecord{
		Completions: domain.CompletionRecord{"photo-0": true},
		Stats:       domain.Stats{Sales: 3},
	}))

	got, _, err := s.Get(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, domain.CompletionRecord{"photo-0": true}, got.Completions)
	assert.Equal(t, 3, got.Stats.Sales)

	sum, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.WeeksTracked)
}

func TestPut_NilCompletions(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "2024-01-01", domain.WeekRecord{}))
	got, found, err := s.Get(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.True(t, found)
	assert.NotNil(t, got.Completions)
}

func TestSummary(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	empty, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Summary{}, empty)

	require.NoError(t, s.Put(ctx, "2024-01-01", domain.WeekRecord{Stats: domain.Stats{Listed: 4, Sales: 1, Revenue: 30}}))
	require.NoError(t, s.Put(ctx, "2024-01-08", domain.WeekRecord{Stats: domain.Stats{Listed: 6, Sales: 3, Revenue: 90}}))

	sum, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Summary{TotalListed: 10, TotalSales: 4, TotalRevenue: 120, WeeksTracked: 2}, sum)
}

func TestOpen_FileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tracker.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := Open(path, logger)
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), "2024-01-01", domain.DefaultWeekRecord()))
	require.NoError(t, s.Close())

	reopened, err := Open(path, logger)
	require.NoError(t, err)
	defer reopened.Close()

	_, found, err := reopened.Get(context.Background(), "2024-01-01")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestClosedStoreReturnsStoreError(t *testing.T) {
	s := openMemory(t)
	require.NoError(t, s.Close())

	_, _, err := s.Get(context.Background(), "2024-01-01")
	var se *domain.StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "get", se.Op)
}

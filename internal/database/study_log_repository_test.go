package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabkeep/internal/config"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Connect(&config.Config{DBType: "sqlite", DBPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreditDayDedupPerWord(t *testing.T) {
	ctx := context.Background()
	repo := NewStudyLogRepository(newTestDB(t))
	wordID := int64(42)

	applied, err := repo.CreditDay(ctx, "2026-08-23", &wordID)
	require.NoError(t, err)
	assert.True(t, applied)

	// Second credit for the same word on the same day is a no-op
	applied, err = repo.CreditDay(ctx, "2026-08-23", &wordID)
	require.NoError(t, err)
	assert.False(t, applied)

	count, err := repo.CountFor(ctx, "2026-08-23")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreditDaySameWordDifferentDays(t *testing.T) {
	ctx := context.Background()
	repo := NewStudyLogRepository(newTestDB(t))
	wordID := int64(42)

	for _, date := range []string{"2026-08-22", "2026-08-23"} {
		applied, err := repo.CreditDay(ctx, date, &wordID)
		require.NoError(t, err)
		assert.True(t, applied, "date %s", date)
	}
}

func TestCreditDayWithoutWordAlwaysIncrements(t *testing.T) {
	ctx := context.Background()
	repo := NewStudyLogRepository(newTestDB(t))

	for i := 0; i < 2; i++ {
		applied, err := repo.CreditDay(ctx, "2026-08-23", nil)
		require.NoError(t, err)
		assert.True(t, applied)
	}

	count, err := repo.CountFor(ctx, "2026-08-23")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCreditDayDifferentWords(t *testing.T) {
	ctx := context.Background()
	repo := NewStudyLogRepository(newTestDB(t))

	for _, id := range []int64{1, 2, 3} {
		wordID := id
		applied, err := repo.CreditDay(ctx, "2026-08-23", &wordID)
		require.NoError(t, err)
		assert.True(t, applied)
	}

	count, err := repo.CountFor(ctx, "2026-08-23")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	credits, err := repo.CreditsFor(ctx, "2026-08-23")
	require.NoError(t, err)
	require.Len(t, credits, 3)
	assert.Equal(t, int64(1), credits[0].WordID)
	assert.Equal(t, "2026-08-23", credits[0].ReviewDate)
}

func TestCountForMissingDay(t *testing.T) {
	ctx := context.Background()
	repo := NewStudyLogRepository(newTestDB(t))

	count, err := repo.CountFor(ctx, "1999-01-01")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestLedgerAllAndRange(t *testing.T) {
	ctx := context.Background()
	repo := NewStudyLogRepository(newTestDB(t))

	for _, date := range []string{"2026-08-21", "2026-08-22", "2026-08-23"} {
		_, err := repo.CreditDay(ctx, date, nil)
		require.NoError(t, err)
	}

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2026-08-21", all[0].Date)
	assert.Equal(t, "2026-08-23", all[2].Date)

	window, err := repo.Range(ctx, "2026-08-22", "2026-08-23")
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.Equal(t, "2026-08-22", window[0].Date)
	assert.Equal(t, 1, window[0].ReviewCount)
}

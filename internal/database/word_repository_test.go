package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabkeep/internal/srs"
	"github.com/example/vocabkeep/pkg/models"
)

func seedWord(t *testing.T, db *DB, repo *WordRepository, word, category string, reviewCount int, nextReview *time.Time, updatedAt time.Time) int64 {
	t.Helper()
	ctx := context.Background()

	w := &models.Word{Word: word, Translation: "t-" + word, Category: category, ReviewCount: reviewCount}
	require.NoError(t, repo.Create(ctx, w))

	_, err := db.Exec("UPDATE words SET next_review_date = ?, updated_at = ? WHERE id = ?",
		nextReview, updatedAt.UTC(), w.ID)
	require.NoError(t, err)
	return w.ID
}

func TestSelectDueWordOrdering(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewWordRepository(db)
	now := time.Now().UTC()

	overdue2h := now.Add(-2 * time.Hour)
	overdue1h := now.Add(-1 * time.Hour)
	future := now.Add(24 * time.Hour)

	mostOverdue := seedWord(t, db, repo, "alpha", "Nouns", 1, &overdue2h, now)
	lessOverdue := seedWord(t, db, repo, "beta", "Nouns", 1, &overdue1h, now)
	neverScheduled := seedWord(t, db, repo, "gamma", "Nouns", 1, nil, now)
	seedWord(t, db, repo, "delta", "Nouns", 0, &overdue2h, now) // deficit 0, never selected
	seedWord(t, db, repo, "epsilon", "Nouns", 1, &future, now)  // not yet due

	// Most overdue first
	word, err := repo.SelectDueWord(ctx, "", now)
	require.NoError(t, err)
	assert.Equal(t, mostOverdue, word.ID)

	// With the most overdue repaid, the next overdue follows
	_, err = db.Exec("UPDATE words SET review_count = 0 WHERE id = ?", mostOverdue)
	require.NoError(t, err)
	word, err = repo.SelectDueWord(ctx, "", now)
	require.NoError(t, err)
	assert.Equal(t, lessOverdue, word.ID)

	// Dated words come before never-scheduled ones
	_, err = db.Exec("UPDATE words SET review_count = 0 WHERE id = ?", lessOverdue)
	require.NoError(t, err)
	word, err = repo.SelectDueWord(ctx, "", now)
	require.NoError(t, err)
	assert.Equal(t, neverScheduled, word.ID)

	// Nothing due left
	_, err = db.Exec("UPDATE words SET review_count = 0 WHERE id = ?", neverScheduled)
	require.NoError(t, err)
	_, err = repo.SelectDueWord(ctx, "", now)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSelectDueWordTieBreakByUpdatedAt(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewWordRepository(db)
	now := time.Now().UTC()

	older := seedWord(t, db, repo, "alpha", "Nouns", 1, nil, now.Add(-2*time.Hour))
	seedWord(t, db, repo, "beta", "Nouns", 1, nil, now.Add(-1*time.Hour))

	word, err := repo.SelectDueWord(ctx, "", now)
	require.NoError(t, err)
	assert.Equal(t, older, word.ID)
}

func TestSelectDueWordCategoryFilter(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewWordRepository(db)
	now := time.Now().UTC()

	seedWord(t, db, repo, "alpha", "Nouns", 1, nil, now)
	verb := seedWord(t, db, repo, "beta", "Verbs", 1, nil, now)

	word, err := repo.SelectDueWord(ctx, "Verbs", now)
	require.NoError(t, err)
	assert.Equal(t, verb, word.ID)

	// "All" behaves the same as no filter
	word, err = repo.SelectDueWord(ctx, "All", now)
	require.NoError(t, err)
	assert.NotNil(t, word)

	_, err = repo.SelectDueWord(ctx, "Adjectives", now)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetSRSStateNotFound(t *testing.T) {
	repo := NewWordRepository(newTestDB(t))

	_, err := repo.GetSRSState(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSRSStateWritesAllFields(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewWordRepository(db)
	now := time.Now().UTC()

	id := seedWord(t, db, repo, "alpha", "Nouns", 3, nil, now)

	state := srs.ReviewState{ReviewCount: 2, Interval: 6, Repetitions: 2, EaseFactor: 2.35}
	nextReview := now.AddDate(0, 0, 6)
	require.NoError(t, repo.UpdateSRSState(ctx, id, state, nextReview))

	word, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, word.ReviewCount)
	assert.Equal(t, 6, word.SRSInterval)
	assert.Equal(t, 2, word.SRSRepetitions)
	assert.InDelta(t, 2.35, word.SRSEaseFactor, 1e-9)
	require.NotNil(t, word.NextReviewDate)
	assert.WithinDuration(t, nextReview, *word.NextReviewDate, time.Second)
	assert.NotNil(t, word.LastReviewed)

	// Round-trip through GetSRSState matches what was written
	got, err := repo.GetSRSState(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, state.ReviewCount, got.ReviewCount)
	assert.Equal(t, state.Interval, got.Interval)
	assert.Equal(t, state.Repetitions, got.Repetitions)
	assert.InDelta(t, state.EaseFactor, got.EaseFactor, 1e-9)
}

func TestUpdateSRSStateUnknownWord(t *testing.T) {
	repo := NewWordRepository(newTestDB(t))

	err := repo.UpdateSRSState(context.Background(), 999, srs.ReviewState{EaseFactor: 2.5}, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIncrementReviewCount(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewWordRepository(db)

	id := seedWord(t, db, repo, "alpha", "Nouns", 0, nil, time.Now().UTC())

	require.NoError(t, repo.IncrementReviewCount(ctx, id))
	require.NoError(t, repo.IncrementReviewCount(ctx, id))

	word, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, word.ReviewCount)
	assert.NotNil(t, word.LastReviewed)
}

func TestChangeCategoryAndDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewWordRepository(db)

	id := seedWord(t, db, repo, "alpha", "Nouns", 1, nil, time.Now().UTC())

	require.NoError(t, repo.ChangeCategory(ctx, id, "Verbs"))
	word, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Verbs", word.Category)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

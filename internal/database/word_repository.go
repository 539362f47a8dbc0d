package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/vocabkeep/internal/srs"
	"github.com/example/vocabkeep/pkg/models"
)

// WordRepository handles database operations for words
type WordRepository struct {
	db *DB
}

// NewWordRepository creates a new repository instance
func NewWordRepository(db *DB) *WordRepository {
	return &WordRepository{db: db}
}

// GetByID returns a word by ID
func (r *WordRepository) GetByID(ctx context.Context, id int64) (*models.Word, error) {
	var word models.Word
	err := r.db.GetContext(ctx, &word, r.db.Rebind("SELECT * FROM words WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("word %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word by ID: %v", err)
	}
	return &word, nil
}

// GetByCategory returns words in a category, alphabetically
func (r *WordRepository) GetByCategory(ctx context.Context, category string) ([]models.Word, error) {
	var words []models.Word
	err := r.db.SelectContext(ctx, &words,
		r.db.Rebind("SELECT * FROM words WHERE category = ? ORDER BY word"), category)
	if err != nil {
		return nil, fmt.Errorf("failed to get words by category: %v", err)
	}
	return words, nil
}

// Search finds words matching the pattern in the word or translation
func (r *WordRepository) Search(ctx context.Context, query string) ([]models.Word, error) {
	pattern := "%" + query + "%"
	var words []models.Word
	err := r.db.SelectContext(ctx, &words, r.db.Rebind(`
		SELECT * FROM words
		WHERE LOWER(word) LIKE LOWER(?) OR LOWER(translation) LIKE LOWER(?)
		ORDER BY word
	`), pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search words: %v", err)
	}
	return words, nil
}

// Create inserts a new word
func (r *WordRepository) Create(ctx context.Context, word *models.Word) error {
	if r.db.DriverName() == "postgres" {
		query := r.db.Rebind(`
			INSERT INTO words (word, translation, example_sentence, category, image_file, review_count)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING id, created_at, updated_at
		`)
		return r.db.QueryRowxContext(ctx, query,
			word.Word,
			word.Translation,
			word.ExampleSentence,
			word.Category,
			word.ImageFile,
			word.ReviewCount,
		).Scan(&word.ID, &word.CreatedAt, &word.UpdatedAt)
	}

	// SQLite path: no RETURNING, read the row back
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO words (word, translation, example_sentence, category, image_file, review_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		word.Word,
		word.Translation,
		word.ExampleSentence,
		word.Category,
		word.ImageFile,
		word.ReviewCount,
	)
	if err != nil {
		return fmt.Errorf("failed to create word: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	word.ID = id

	return r.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM words WHERE id = ?", word.ID,
	).Scan(&word.CreatedAt, &word.UpdatedAt)
}

// Update modifies a word's content fields. SRS fields are written only
// through UpdateSRSState.
func (r *WordRepository) Update(ctx context.Context, word *models.Word) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE words SET
			word = ?,
			translation = ?,
			example_sentence = ?,
			image_file = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`),
		word.Word,
		word.Translation,
		word.ExampleSentence,
		word.ImageFile,
		word.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update word: %v", err)
	}
	return r.requireRow(result, word.ID)
}

// ChangeCategory moves a word to a different category
func (r *WordRepository) ChangeCategory(ctx context.Context, id int64, category string) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE words SET category = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`), category, id)
	if err != nil {
		return fmt.Errorf("failed to change category: %v", err)
	}
	return r.requireRow(result, id)
}

// Delete removes a word
func (r *WordRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM words WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete word: %v", err)
	}
	return r.requireRow(result, id)
}

// GetSRSState reads the scheduling fields for one word
func (r *WordRepository) GetSRSState(ctx context.Context, id int64) (srs.ReviewState, error) {
	var row struct {
		ReviewCount int     `db:"review_count"`
		Interval    int     `db:"srs_interval"`
		Repetitions int     `db:"srs_repetitions"`
		EaseFactor  float64 `db:"srs_ease_factor"`
	}
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`
		SELECT review_count, srs_interval, srs_repetitions, srs_ease_factor
		FROM words WHERE id = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return srs.ReviewState{}, fmt.Errorf("word %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return srs.ReviewState{}, fmt.Errorf("failed to get SRS state: %v", err)
	}
	return srs.ReviewState{
		ReviewCount: row.ReviewCount,
		Interval:    row.Interval,
		Repetitions: row.Repetitions,
		EaseFactor:  row.EaseFactor,
	}, nil
}

// UpdateSRSState persists a computed review state. All five fields plus
// the next review date go out in a single statement so a failure can
// never leave them half-applied.
func (r *WordRepository) UpdateSRSState(ctx context.Context, id int64, state srs.ReviewState, nextReview time.Time) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE words SET
			review_count = ?,
			srs_interval = ?,
			srs_repetitions = ?,
			srs_ease_factor = ?,
			next_review_date = ?,
			last_reviewed = CURRENT_TIMESTAMP,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`),
		state.ReviewCount,
		state.Interval,
		state.Repetitions,
		state.EaseFactor,
		nextReview.UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update SRS state: %v", err)
	}
	return r.requireRow(result, id)
}

// IncrementReviewCount bumps the legacy deficit metric for edit, move and
// create events, and refreshes the review timestamps
func (r *WordRepository) IncrementReviewCount(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE words SET
			review_count = review_count + 1,
			last_reviewed = CURRENT_TIMESTAMP,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`), id)
	if err != nil {
		return fmt.Errorf("failed to increment review count: %v", err)
	}
	return r.requireRow(result, id)
}

// SelectDueWord returns the single highest-priority word for the quiz:
// owed at least one review (review_count >= 1) and due (next review date
// passed or never set). Most overdue first, never-scheduled words last,
// least recently updated as tie-break. The ordering is a strict policy,
// not a random draw. An empty or "All" category means no filter.
func (r *WordRepository) SelectDueWord(ctx context.Context, category string, now time.Time) (*models.Word, error) {
	query := `
		SELECT * FROM words
		WHERE review_count >= 1
		AND (next_review_date <= ? OR next_review_date IS NULL)
	`
	args := []interface{}{now.UTC()}

	if category != "" && category != "All" {
		query += " AND category = ?"
		args = append(args, category)
	}

	query += `
		ORDER BY
			CASE WHEN next_review_date IS NULL THEN 1 ELSE 0 END,
			next_review_date ASC,
			updated_at ASC
		LIMIT 1
	`

	var word models.Word
	err := r.db.GetContext(ctx, &word, r.db.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no due words: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select due word: %v", err)
	}
	return &word, nil
}

// CountDue returns how many words are currently due for review
func (r *WordRepository) CountDue(ctx context.Context, now time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, r.db.Rebind(`
		SELECT COUNT(*) FROM words
		WHERE review_count >= 1
		AND (next_review_date <= ? OR next_review_date IS NULL)
	`), now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to count due words: %v", err)
	}
	return count, nil
}

// requireRow converts a zero-row update into ErrNotFound
func (r *WordRepository) requireRow(result sql.Result, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return fmt.Errorf("word %d: %w", id, ErrNotFound)
	}
	return nil
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/vocabkeep/pkg/models"
)

// StudyLogRepository handles the daily activity ledger and its per-word
// dedup guard
type StudyLogRepository struct {
	db *DB
}

// NewStudyLogRepository creates a new repository instance
func NewStudyLogRepository(db *DB) *StudyLogRepository {
	return &StudyLogRepository{db: db}
}

// CreditDay credits one review event to the given day. With a word ID the
// credit is deduplicated: at most one increment per word per day, enforced
// by a single insert-or-noop on the guard table's primary key rather than
// a check followed by a write, so concurrent callers cannot double-credit.
// Without a word ID the counter always increments (bulk/administrative
// events). Returns whether the counter was incremented. A missing guard
// table is a hard error, never a silent fall-through.
func (r *StudyLogRepository) CreditDay(ctx context.Context, date string, wordID *int64) (bool, error) {
	if wordID != nil {
		result, err := r.db.ExecContext(ctx, r.db.Rebind(`
			INSERT INTO daily_word_reviews (word_id, review_date)
			VALUES (?, ?)
			ON CONFLICT (word_id, review_date) DO NOTHING
		`), *wordID, date)
		if err != nil {
			return false, fmt.Errorf("failed to mark word review: %v", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return false, fmt.Errorf("failed to get rows affected: %v", err)
		}
		if rows == 0 {
			// Word already credited today
			return false, nil
		}
	}

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO daily_study_log (date, review_count)
		VALUES (?, 1)
		ON CONFLICT (date) DO UPDATE SET review_count = daily_study_log.review_count + 1
	`), date)
	if err != nil {
		return false, fmt.Errorf("failed to increment daily counter: %v", err)
	}
	return true, nil
}

// All returns the full ledger, oldest day first
func (r *StudyLogRepository) All(ctx context.Context) ([]models.DailyStudyLog, error) {
	var logs []models.DailyStudyLog
	err := r.db.SelectContext(ctx, &logs,
		"SELECT date, review_count FROM daily_study_log ORDER BY date")
	if err != nil {
		return nil, fmt.Errorf("failed to get daily study log: %v", err)
	}
	return logs, nil
}

// Range returns ledger entries with from <= date <= to, oldest first
func (r *StudyLogRepository) Range(ctx context.Context, from, to string) ([]models.DailyStudyLog, error) {
	var logs []models.DailyStudyLog
	err := r.db.SelectContext(ctx, &logs, r.db.Rebind(`
		SELECT date, review_count FROM daily_study_log
		WHERE date >= ? AND date <= ?
		ORDER BY date
	`), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily study log range: %v", err)
	}
	return logs, nil
}

// CreditsFor returns the dedup guard rows for one day: which words have
// already contributed to that day's counter
func (r *StudyLogRepository) CreditsFor(ctx context.Context, date string) ([]models.DailyWordReview, error) {
	var reviews []models.DailyWordReview
	err := r.db.SelectContext(ctx, &reviews, r.db.Rebind(`
		SELECT word_id, review_date FROM daily_word_reviews
		WHERE review_date = ?
		ORDER BY word_id
	`), date)
	if err != nil {
		return nil, fmt.Errorf("failed to get word reviews: %v", err)
	}
	return reviews, nil
}

// CountFor returns the review count for one day, zero if the day has no
// entry yet
func (r *StudyLogRepository) CountFor(ctx context.Context, date string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		r.db.Rebind("SELECT review_count FROM daily_study_log WHERE date = ?"), date)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get daily count: %v", err)
	}
	return count, nil
}

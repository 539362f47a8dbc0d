package database

import (
	"context"
	"fmt"

	"github.com/example/vocabkeep/pkg/models"
)

// HistoryRepository handles the append-only word modification history
type HistoryRepository struct {
	db *DB
}

// NewHistoryRepository creates a new repository instance
func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record appends a snapshot of a word at modification time
func (r *HistoryRepository) Record(ctx context.Context, word *models.Word, modificationType string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO word_history (word_id, word, translation, example_sentence, category, modification_type)
		VALUES (?, ?, ?, ?, ?, ?)
	`),
		word.ID,
		word.Word,
		word.Translation,
		word.ExampleSentence,
		word.Category,
		modificationType,
	)
	if err != nil {
		return fmt.Errorf("failed to record word history: %v", err)
	}
	return nil
}

// ListByWord returns a word's history, newest first
func (r *HistoryRepository) ListByWord(ctx context.Context, wordID int64, limit int) ([]models.WordHistory, error) {
	var history []models.WordHistory
	err := r.db.SelectContext(ctx, &history, r.db.Rebind(`
		SELECT * FROM word_history
		WHERE word_id = ?
		ORDER BY modified_at DESC, id DESC
		LIMIT ?
	`), wordID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get word history: %v", err)
	}
	return history, nil
}

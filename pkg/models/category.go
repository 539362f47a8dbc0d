package models

import "time"

// Category groups vocabulary entries
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	WordCount int       `json:"word_count" db:"word_count"` // Cached count, refreshed as best-effort bookkeeping
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

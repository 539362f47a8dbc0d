package models

import "time"

// Word represents a vocabulary entry with its spaced-repetition state
type Word struct {
	ID              int64      `json:"id" db:"id"`
	Word            string     `json:"word" db:"word"`
	Translation     string     `json:"translation" db:"translation"`
	ExampleSentence string     `json:"example_sentence" db:"example_sentence"`
	Category        string     `json:"category" db:"category"`
	ImageFile       *string    `json:"image_file" db:"image_file"`
	ReviewCount     int        `json:"review_count" db:"review_count"`         // Legacy deficit metric: owed reviews for this word
	SRSInterval     int        `json:"srs_interval" db:"srs_interval"`         // Current interval in days, 0 = due immediately
	SRSRepetitions  int        `json:"srs_repetitions" db:"srs_repetitions"`   // Consecutive correct recalls
	SRSEaseFactor   float64    `json:"srs_ease_factor" db:"srs_ease_factor"`   // SM-2 ease factor, never below 1.3
	NextReviewDate  *time.Time `json:"next_review_date" db:"next_review_date"` // nil = never scheduled, treated as due
	LastReviewed    *time.Time `json:"last_reviewed" db:"last_reviewed"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

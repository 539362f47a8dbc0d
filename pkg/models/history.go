package models

import "time"

// Modification types recorded in word history
const (
	ModificationCreated = "created"
	ModificationUpdated = "updated"
	ModificationMoved   = "moved"
)

// WordHistory is an append-only snapshot of a word at modification time
type WordHistory struct {
	ID               int64     `json:"id" db:"id"`
	WordID           int64     `json:"word_id" db:"word_id"`
	Word             string    `json:"word" db:"word"`
	Translation      string    `json:"translation" db:"translation"`
	ExampleSentence  string    `json:"example_sentence" db:"example_sentence"`
	Category         string    `json:"category" db:"category"`
	ModificationType string    `json:"modification_type" db:"modification_type"`
	ModifiedAt       time.Time `json:"modified_at" db:"modified_at"`
}

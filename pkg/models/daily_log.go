package models

// DailyStudyLog is one row of the append-only activity ledger.
// The date key is a calendar day in AEST (UTC+10), formatted YYYY-MM-DD.
type DailyStudyLog struct {
	Date        string `json:"date" db:"date"`
	ReviewCount int    `json:"review_count" db:"review_count"`
}

// DailyWordReview marks that a word already contributed to a day's counter.
// Existence of the row is the whole point; it is never updated.
type DailyWordReview struct {
	WordID     int64  `json:"word_id" db:"word_id"`
	ReviewDate string `json:"review_date" db:"review_date"`
}

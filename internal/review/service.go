package review

import (
	"context"
	"log"
	"time"

	"github.com/example/vocabkeep/internal/database"
	"github.com/example/vocabkeep/internal/debt"
	"github.com/example/vocabkeep/internal/srs"
	"github.com/example/vocabkeep/pkg/models"
)

// Service ties the pure SRS and debt computations to the store. It owns
// the read-compute-persist cycle for review events; the computations
// themselves stay side-effect free, so a failed persist can always be
// retried by recomputing from freshly read state.
type Service struct {
	words      *database.WordRepository
	categories *database.CategoryRepository
	logs       *database.StudyLogRepository
	history    *database.HistoryRepository
	scheduler  *srs.Scheduler
	now        func() time.Time
}

// NewService creates a review service over the given database handle
func NewService(db *database.DB) *Service {
	return &Service{
		words:      database.NewWordRepository(db),
		categories: database.NewCategoryRepository(db),
		logs:       database.NewStudyLogRepository(db),
		history:    database.NewHistoryRepository(db),
		scheduler:  srs.New(),
		now:        time.Now,
	}
}

// QuizResult reports the outcome of a submitted quiz answer
type QuizResult struct {
	WordID        int64     `json:"word_id"`
	OldCount      int       `json:"old_count"`
	NewCount      int       `json:"new_count"`
	Interval      int       `json:"interval"`
	Repetitions   int       `json:"repetitions"`
	EaseFactor    float64   `json:"ease_factor"`
	NextReview    time.Time `json:"next_review"`
	CreditedToday bool      `json:"credited_today"`
}

// SubmitQuizResult applies a quiz outcome to a word: reads its SRS state,
// runs the scheduler, and persists the new state in one statement. The
// daily ledger credit and the history record are best-effort bookkeeping;
// their failure never fails the review.
func (s *Service) SubmitQuizResult(ctx context.Context, wordID int64, outcome srs.Outcome) (*QuizResult, error) {
	now := s.now()

	state, err := s.words.GetSRSState(ctx, wordID)
	if err != nil {
		return nil, err
	}

	result, err := s.scheduler.Apply(state, outcome, now)
	if err != nil {
		return nil, err
	}

	if err := s.words.UpdateSRSState(ctx, wordID, result.State, result.NextReview); err != nil {
		return nil, err
	}

	credited := s.creditToday(ctx, &wordID)
	s.recordHistory(ctx, wordID, models.ModificationUpdated)

	return &QuizResult{
		WordID:        wordID,
		OldCount:      state.ReviewCount,
		NewCount:      result.State.ReviewCount,
		Interval:      result.State.Interval,
		Repetitions:   result.State.Repetitions,
		EaseFactor:    result.State.EaseFactor,
		NextReview:    result.NextReview,
		CreditedToday: credited,
	}, nil
}

// NextQuizWord returns the highest-priority due word, optionally filtered
// by category ("" or "All" means any)
func (s *Service) NextQuizWord(ctx context.Context, category string) (*models.Word, error) {
	return s.words.SelectDueWord(ctx, category, s.now())
}

// AddWord creates a vocabulary entry. A new word starts owing one review,
// and its creation is credited to today's ledger.
func (s *Service) AddWord(ctx context.Context, word *models.Word) error {
	if word.Category == "" {
		word.Category = "Uncategorized"
	}
	if _, err := s.categories.GetOrCreate(ctx, word.Category); err != nil {
		return err
	}
	if word.ReviewCount == 0 {
		word.ReviewCount = 1
	}
	if err := s.words.Create(ctx, word); err != nil {
		return err
	}

	s.creditToday(ctx, &word.ID)
	s.recordHistory(ctx, word.ID, models.ModificationCreated)
	s.refreshCategory(ctx, word.Category)
	return nil
}

// EditWord updates a word's content and counts the edit as review
// activity (legacy metric up by one, today's ledger credited)
func (s *Service) EditWord(ctx context.Context, word *models.Word) error {
	if err := s.words.Update(ctx, word); err != nil {
		return err
	}
	if err := s.words.IncrementReviewCount(ctx, word.ID); err != nil {
		return err
	}

	s.creditToday(ctx, &word.ID)
	s.recordHistory(ctx, word.ID, models.ModificationUpdated)
	return nil
}

// MoveWord reassigns a word to another category, counting the move as
// review activity
func (s *Service) MoveWord(ctx context.Context, wordID int64, category string) (*models.Word, error) {
	word, err := s.words.GetByID(ctx, wordID)
	if err != nil {
		return nil, err
	}
	oldCategory := word.Category

	if _, err := s.categories.GetOrCreate(ctx, category); err != nil {
		return nil, err
	}
	if err := s.words.ChangeCategory(ctx, wordID, category); err != nil {
		return nil, err
	}
	if err := s.words.IncrementReviewCount(ctx, wordID); err != nil {
		return nil, err
	}

	s.creditToday(ctx, &wordID)
	s.recordHistory(ctx, wordID, models.ModificationMoved)
	s.refreshCategory(ctx, oldCategory)
	s.refreshCategory(ctx, category)

	return s.words.GetByID(ctx, wordID)
}

// DeleteWord removes a word. The deletion itself still counts as review
// activity for the day, and the ledger keeps the word's past credits.
func (s *Service) DeleteWord(ctx context.Context, wordID int64) error {
	word, err := s.words.GetByID(ctx, wordID)
	if err != nil {
		return err
	}

	s.creditToday(ctx, &wordID)

	if err := s.words.Delete(ctx, wordID); err != nil {
		return err
	}
	s.refreshCategory(ctx, word.Category)
	return nil
}

// DebtReport computes the cumulative review debt and the recent breakdown
// from the full ledger
func (s *Service) DebtReport(ctx context.Context) (debt.Report, error) {
	logs, err := s.logs.All(ctx)
	if err != nil {
		return debt.Report{}, err
	}

	ledger := make(debt.Ledger, len(logs))
	for _, entry := range logs {
		ledger[entry.Date] = entry.ReviewCount
	}
	return debt.Compute(ledger, s.now()), nil
}

// TodayCount returns today's credited review count (AEST day)
func (s *Service) TodayCount(ctx context.Context) (int, error) {
	return s.logs.CountFor(ctx, debt.DateKey(s.now()))
}

// DueCount returns how many words are currently due
func (s *Service) DueCount(ctx context.Context) (int, error) {
	return s.words.CountDue(ctx, s.now())
}

// WordHistory returns a word's modification history, newest first
func (s *Service) WordHistory(ctx context.Context, wordID int64, limit int) ([]models.WordHistory, error) {
	return s.history.ListByWord(ctx, wordID, limit)
}

// creditToday credits today's ledger for a word. Log-and-continue on
// failure: the SRS state is already durable and must not depend on the
// ledger write.
func (s *Service) creditToday(ctx context.Context, wordID *int64) bool {
	applied, err := s.logs.CreditDay(ctx, debt.DateKey(s.now()), wordID)
	if err != nil {
		log.Printf("review: daily credit failed: %v", err)
		return false
	}
	return applied
}

// recordHistory appends an audit snapshot, best-effort
func (s *Service) recordHistory(ctx context.Context, wordID int64, modificationType string) {
	word, err := s.words.GetByID(ctx, wordID)
	if err != nil {
		log.Printf("review: history snapshot failed: %v", err)
		return
	}
	if err := s.history.Record(ctx, word, modificationType); err != nil {
		log.Printf("review: history record failed: %v", err)
	}
}

// refreshCategory updates a category's cached word count, best-effort
func (s *Service) refreshCategory(ctx context.Context, name string) {
	if err := s.categories.RefreshCount(ctx, name); err != nil {
		log.Printf("review: category count refresh failed: %v", err)
	}
}

package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/vocabkeep/internal/debt"
	"github.com/example/vocabkeep/internal/review"
)

// Notifier receives the daily digest
type Notifier interface {
	SendDigest(report debt.Report, dueWords int) error
}

// Scheduler runs the daily debt digest job
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *review.Service
	notifier  Notifier
	hour      int
}

// New creates a scheduler that fires once per AEST day at the given hour
func New(service *review.Service, notifier Notifier, hour int) *Scheduler {
	s := gocron.NewScheduler(debt.Location())
	return &Scheduler{
		scheduler: s,
		service:   service,
		notifier:  notifier,
		hour:      hour,
	}
}

// Start begins running the digest job in the background
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Day().At(fmt.Sprintf("%02d:00", s.hour)).Do(s.sendDigest)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunNow forces an immediate digest
func (s *Scheduler) RunNow() error {
	return s.digest(context.Background())
}

// sendDigest is the scheduled entry point; digest failures are logged,
// never fatal
func (s *Scheduler) sendDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.digest(ctx); err != nil {
		log.Printf("scheduler: digest failed: %v", err)
	}
}

func (s *Scheduler) digest(ctx context.Context) error {
	report, err := s.service.DebtReport(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute debt report: %v", err)
	}

	due, err := s.service.DueCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count due words: %v", err)
	}

	return s.notifier.SendDigest(report, due)
}

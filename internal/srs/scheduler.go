package srs

import (
	"errors"
	"fmt"
	"time"
)

// Outcome is the binary result of a quiz answer
type Outcome string

const (
	// OutcomeRemember means the word was recalled correctly
	OutcomeRemember Outcome = "remember"
	// OutcomeNotRemember means recall failed
	OutcomeNotRemember Outcome = "not_remember"
)

// ErrInvalidOutcome is returned for any outcome value outside the two known ones
var ErrInvalidOutcome = errors.New("srs: invalid outcome")

// ParseOutcome validates a raw outcome string
func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(s) {
	case OutcomeRemember, OutcomeNotRemember:
		return Outcome(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOutcome, s)
}

// ReviewState holds the per-word spaced-repetition fields.
// The four SRS fields plus the legacy ReviewCount are always read and
// written together; Apply is the only place they change.
type ReviewState struct {
	// ReviewCount is the legacy deficit metric: decremented on correct
	// recall, incremented on failed recall and on edit/move/create events.
	// Never goes below zero.
	ReviewCount int
	// Interval in days; 0 means due immediately
	Interval int
	// Repetitions counts consecutive correct recalls, reset on failure
	Repetitions int
	// EaseFactor controls interval growth, bounded below at the
	// scheduler's minimum
	EaseFactor float64
}

// Result is the computed new state plus the scheduling decision
type Result struct {
	State ReviewState
	// NextReview is now when the interval is zero (immediately due),
	// otherwise now plus the interval in days
	NextReview time.Time
}

// Scheduler implements a simplified SM-2 variant with binary outcomes
type Scheduler struct {
	// Interval after the first correct recall, in days
	FirstInterval int
	// Interval after the second correct recall, in days
	SecondInterval int
	// Subtracted from the ease factor on each failed recall
	EasePenalty float64
	// Lower bound for the ease factor
	MinEaseFactor float64
	// Ease factor assumed for words that never had one
	DefaultEaseFactor float64
}

// New creates a scheduler with the default tuning
func New() *Scheduler {
	return &Scheduler{
		FirstInterval:     1,
		SecondInterval:    6,
		EasePenalty:       0.15,
		MinEaseFactor:     1.3,
		DefaultEaseFactor: 2.5,
	}
}

// Apply computes the next review state from the current one and a quiz
// outcome. It is pure: the caller reads the state, calls Apply, and
// persists all returned fields atomically. Absent inputs are defaulted
// (interval/repetitions 0, ease factor 2.5), so a freshly created word
// needs no special casing.
func (sc *Scheduler) Apply(state ReviewState, outcome Outcome, now time.Time) (Result, error) {
	if _, err := ParseOutcome(string(outcome)); err != nil {
		return Result{}, err
	}

	st := sc.normalize(state)

	switch outcome {
	case OutcomeRemember:
		switch st.Repetitions {
		case 0:
			st.Interval = sc.FirstInterval
		case 1:
			st.Interval = sc.SecondInterval
		default:
			st.Interval = int(float64(st.Interval) * st.EaseFactor)
		}
		st.Repetitions++
		if st.ReviewCount > 0 {
			st.ReviewCount--
		}
	case OutcomeNotRemember:
		st.Repetitions = 0
		st.Interval = 0
		st.EaseFactor -= sc.EasePenalty
		if st.EaseFactor < sc.MinEaseFactor {
			st.EaseFactor = sc.MinEaseFactor
		}
		st.ReviewCount++
	}

	next := now
	if st.Interval > 0 {
		next = now.AddDate(0, 0, st.Interval)
	}

	return Result{State: st, NextReview: next}, nil
}

// normalize fills in defaults for absent or out-of-range fields
func (sc *Scheduler) normalize(state ReviewState) ReviewState {
	if state.Interval < 0 {
		state.Interval = 0
	}
	if state.Repetitions < 0 {
		state.Repetitions = 0
	}
	if state.ReviewCount < 0 {
		state.ReviewCount = 0
	}
	if state.EaseFactor == 0 {
		state.EaseFactor = sc.DefaultEaseFactor
	}
	if state.EaseFactor < sc.MinEaseFactor {
		state.EaseFactor = sc.MinEaseFactor
	}
	return state
}

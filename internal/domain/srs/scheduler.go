package srs

import (
	"errors"
	"time"

	"github.com/mnemosyne-app/retain-api/internal/domain"
)

// Common errors
var (
	ErrNilRecord   = errors.New("progress record cannot be nil")
	ErrInvalidDays = errors.New("postpone days must be at least 1")
)

// Scheduler applies the scheduling algorithm to whole progress
// records. It exists so services depend on an interface rather than on
// the free function, which keeps them mockable in tests.
type Scheduler interface {
	// NextReview computes a new progress record from a review outcome.
	// The input record is never modified.
	NextReview(
		record *domain.ProgressRecord,
		grade domain.Grade,
		now time.Time,
	) (*domain.ProgressRecord, error)

	// Postpone pushes a record's due date forward by the given number
	// of days without recording a review.
	Postpone(
		record *domain.ProgressRecord,
		days int,
		now time.Time,
	) (*domain.ProgressRecord, error)
}

type defaultScheduler struct {
	params *Params
}

// NewScheduler creates a Scheduler with default parameters.
func NewScheduler() Scheduler {
	return &defaultScheduler{params: DefaultParams()}
}

// NewSchedulerWithParams creates a Scheduler with custom parameters.
func NewSchedulerWithParams(params *Params) Scheduler {
	return &defaultScheduler{params: params}
}

// NextReview implements Scheduler.
func (s *defaultScheduler) NextReview(
	record *domain.ProgressRecord,
	grade domain.Grade,
	now time.Time,
) (*domain.ProgressRecord, error) {
	if record == nil {
		return nil, ErrNilRecord
	}

	prior := &State{
		IntervalDays: record.IntervalDays,
		EaseFactor:   record.EaseFactor,
	}

	result, err := Schedule(grade, prior, now, s.params)
	if err != nil {
		return nil, err
	}

	next := record.Clone()
	next.LastGrade = grade
	next.IntervalDays = result.IntervalDays
	next.EaseFactor = result.EaseFactor
	next.DueAt = result.DueAt
	next.UpdatedAt = now

	return next, nil
}

// Postpone implements Scheduler.
func (s *defaultScheduler) Postpone(
	record *domain.ProgressRecord,
	days int,
	now time.Time,
) (*domain.ProgressRecord, error) {
	if record == nil {
		return nil, ErrNilRecord
	}

	if days < 1 {
		return nil, ErrInvalidDays
	}

	next := record.Clone()
	next.DueAt = record.DueAt.AddDate(0, 0, days)
	next.UpdatedAt = now

	return next, nil
}

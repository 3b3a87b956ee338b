package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Scheduling bounds shared by the domain and the srs package.
const (
	// DefaultEaseFactor is the ease factor assigned to a card the
	// first time a learner reviews it.
	DefaultEaseFactor = 2.5

	// MinEaseFactor is the floor the ease factor is clamped to after
	// every update, per the SM-2 family of algorithms.
	MinEaseFactor = 1.3
)

// Common validation errors for ProgressRecord
var (
	ErrEmptyProgressUserID = errors.New("progress record user ID cannot be empty")
	ErrEmptyProgressCardID = errors.New("progress record card ID cannot be empty")
	ErrInvalidInterval     = errors.New("interval must be greater than or equal to 0")
	ErrInvalidEaseFactor   = errors.New("ease factor must be at least 1.3")
)

// ProgressRecord tracks a single learner's spaced repetition state for
// a single card. It is keyed by (user, card) and created lazily on the
// first review, which is what lets many learners study one shared deck
// with independent schedules.
type ProgressRecord struct {
	UserID       uuid.UUID `json:"user_id"`
	CardID       uuid.UUID `json:"card_id"`
	LastGrade    Grade     `json:"last_grade"`    // Most recent 0-5 review grade
	IntervalDays int       `json:"interval_days"` // Days until the next scheduled review
	EaseFactor   float64   `json:"ease_factor"`   // Interval growth multiplier, >= 1.3
	DueAt        time.Time `json:"due_at"`        // When the card should be reviewed next
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewProgressRecord creates the initial progress state for a user and
// card. New records are due immediately so unseen cards enter the
// study queue right away.
func NewProgressRecord(userID, cardID uuid.UUID, now time.Time) (*ProgressRecord, error) {
	record := &ProgressRecord{
		UserID:       userID,
		CardID:       cardID,
		LastGrade:    GradeMin,
		IntervalDays: 0,
		EaseFactor:   DefaultEaseFactor,
		DueAt:        now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Validate checks if the ProgressRecord has valid data.
// Returns an error if any field fails validation.
func (r *ProgressRecord) Validate() error {
	if r.UserID == uuid.Nil {
		return ErrEmptyProgressUserID
	}

	if r.CardID == uuid.Nil {
		return ErrEmptyProgressCardID
	}

	if !r.LastGrade.Valid() {
		return ErrInvalidGrade
	}

	if r.IntervalDays < 0 {
		return ErrInvalidInterval
	}

	if r.EaseFactor < MinEaseFactor {
		return ErrInvalidEaseFactor
	}

	return nil
}

// Clone returns a copy of the record. Scheduling code follows
// immutability principles and returns new instances rather than
// modifying the ones read from the store.
func (r *ProgressRecord) Clone() *ProgressRecord {
	clone := *r
	return &clone
}

// Mastered reports whether the record's most recent grade meets the
// mastery threshold.
func (r *ProgressRecord) Mastered() bool {
	return r.LastGrade.IsMastery()
}

// AwaitingMastery reports whether the card has been attempted but its
// most recent grade is below the mastery threshold. This is the
// grade-based notion of "needs work", distinct from the time-based
// dueness of DueBy.
func (r *ProgressRecord) AwaitingMastery() bool {
	return r.LastGrade > GradeMin && !r.LastGrade.IsMastery()
}

// DueBy reports whether the record's next review is due at the given
// time.
func (r *ProgressRecord) DueBy(now time.Time) bool {
	return !r.DueAt.After(now)
}

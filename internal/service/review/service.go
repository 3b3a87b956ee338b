// Package review orchestrates a single card review: it validates the
// grade, checks the card exists, runs the scheduling algorithm against
// the learner's prior state, and persists the result through the
// progress store's atomic upsert.
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mnemosyne-app/retain-api/internal/domain"
)

// Service processes flashcard reviews using the spaced repetition
// algorithm.
type Service interface {
	// RecordReview records a grade for one (user, card) pair and
	// returns the updated progress record. The record is created
	// lazily on the learner's first review of the card.
	//
	// now is supplied by the caller rather than read from the clock so
	// the operation is deterministic and a retry with identical inputs
	// is exactly idempotent.
	//
	// Returns:
	//   - ErrInvalidGrade when grade is outside the 0-5 scale; the
	//     store is never touched in that case
	//   - ErrCardNotFound when cardID references no known card
	//   - ErrStoreUnavailable (wrapped) on transient persistence
	//     failure; safe to retry with the same now
	RecordReview(
		ctx context.Context,
		userID, cardID uuid.UUID,
		grade domain.Grade,
		now time.Time,
	) (*domain.ProgressRecord, error)
}

// Common error types for the review service
var (
	// ErrInvalidGrade indicates the submitted grade is outside 0-5.
	ErrInvalidGrade = domain.ErrInvalidGrade

	// ErrCardNotFound indicates that the card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrStoreUnavailable indicates a transient persistence failure.
	// The review had no partial effect and may be retried.
	ErrStoreUnavailable = errors.New("progress store unavailable")
)

// ServiceError wraps errors from the review service with additional
// context, so consumers can differentiate failure modes with errors.As
// instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "record_review")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewRecordReviewError returns a new ServiceError for the
// record_review operation.
func NewRecordReviewError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "record_review",
		Message:   message,
		Err:       err,
	}
}

package api

import (
	"errors"
	"net/http"

	"github.com/mnemosyne-app/retain-api/internal/domain"
	"github.com/mnemosyne-app/retain-api/internal/service/progress"
	"github.com/mnemosyne-app/retain-api/internal/service/review"
	"github.com/mnemosyne-app/retain-api/internal/service/study"
	"github.com/mnemosyne-app/retain-api/internal/store"
)

// MapErrorToStatusCode maps service errors onto HTTP status codes.
// Unknown errors map to 500 so nothing internal leaks by accident.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidGrade),
		errors.Is(err, study.ErrInvalidMode):
		return http.StatusBadRequest
	case errors.Is(err, review.ErrCardNotFound),
		errors.Is(err, study.ErrDeckNotFound),
		errors.Is(err, progress.ErrDeckNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, review.ErrStoreUnavailable),
		errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-presentable message for the
// error. Internal detail stays in the logs.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidGrade):
		return "Grade must be between 0 and 5"
	case errors.Is(err, study.ErrInvalidMode):
		return "Queue mode must be \"drill\" or \"free\""
	case errors.Is(err, review.ErrCardNotFound):
		return "Card not found"
	case errors.Is(err, study.ErrDeckNotFound), errors.Is(err, progress.ErrDeckNotFound):
		return "Deck not found"
	case errors.Is(err, review.ErrStoreUnavailable), errors.Is(err, store.ErrUnavailable):
		return "Service temporarily unavailable, please retry"
	default:
		return "An internal error occurred"
	}
}

package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mnemosyne-app/retain-api/internal/api"
	"github.com/mnemosyne-app/retain-api/internal/domain"
	"github.com/mnemosyne-app/retain-api/internal/service/progress"
	"github.com/mnemosyne-app/retain-api/internal/service/review"
	"github.com/mnemosyne-app/retain-api/internal/service/study"
	"github.com/mnemosyne-app/retain-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid grade", domain.ErrInvalidGrade, http.StatusBadRequest},
		{"invalid mode", study.ErrInvalidMode, http.StatusBadRequest},
		{"card not found", review.ErrCardNotFound, http.StatusNotFound},
		{"deck not found study", study.ErrDeckNotFound, http.StatusNotFound},
		{"deck not found progress", progress.ErrDeckNotFound, http.StatusNotFound},
		{"store not found", store.ErrProgressNotFound, http.StatusNotFound},
		{"store unavailable", review.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{
			"wrapped service error",
			review.NewRecordReviewError("failed to persist review",
				fmt.Errorf("%w: timeout", review.ErrStoreUnavailable)),
			http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, api.MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessageHidesInternals(t *testing.T) {
	t.Parallel()

	internal := errors.New("pq: relation user_card_progress does not exist")
	msg := api.GetSafeErrorMessage(internal)

	assert.Equal(t, "An internal error occurred", msg)
	assert.NotContains(t, msg, "user_card_progress")
}

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemosyne-app/retain-api/internal/api"
	"github.com/mnemosyne-app/retain-api/internal/api/shared"
	"github.com/mnemosyne-app/retain-api/internal/domain"
	"github.com/mnemosyne-app/retain-api/internal/domain/srs"
	"github.com/mnemosyne-app/retain-api/internal/mocks"
	"github.com/mnemosyne-app/retain-api/internal/platform/logger"
	"github.com/mnemosyne-app/retain-api/internal/service/review"
)

// withUser injects an authenticated user the way the identity
// middleware would.
func withUser(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type reviewHandlerFixture struct {
	router   chi.Router
	cards    *mocks.MockCardStore
	progress *mocks.MockProgressStore
	card     *domain.Card
	userID   uuid.UUID
}

func newReviewHandlerFixture(t *testing.T, authenticated bool) *reviewHandlerFixture {
	t.Helper()

	cards := mocks.NewMockCardStore()
	progress := mocks.NewMockProgressStore()

	card, err := domain.NewCard(uuid.New(), "Bonjour", "Hello")
	require.NoError(t, err)
	cards.Add(card)

	_, log, cleanup := logger.SetupTestLogger(t, nil)
	t.Cleanup(cleanup)

	svc := review.NewService(cards, progress, srs.NewScheduler(), log)
	handler := api.NewReviewHandler(svc, log)

	userID := uuid.New()
	router := chi.NewRouter()
	if authenticated {
		router.Use(withUser(userID))
	}
	router.Post("/cards/{id}/review", handler.RecordReview)

	return &reviewHandlerFixture{
		router:   router,
		cards:    cards,
		progress: progress,
		card:     card,
		userID:   userID,
	}
}

func (f *reviewHandlerFixture) postReview(t *testing.T, cardID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/cards/"+cardID+"/review",
		bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestRecordReviewEndpoint(t *testing.T) {
	t.Parallel()

	f := newReviewHandlerFixture(t, true)

	rec := f.postReview(t, f.card.ID.String(), `{"grade":5}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp api.ProgressRecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, f.userID.String(), resp.UserID)
	assert.Equal(t, f.card.ID.String(), resp.CardID)
	assert.Equal(t, 5, resp.LastGrade)
	assert.Equal(t, 1, resp.IntervalDays)
	assert.InDelta(t, 2.8, resp.EaseFactor, 1e-9)
}

func TestRecordReviewEndpointGradeZero(t *testing.T) {
	t.Parallel()

	f := newReviewHandlerFixture(t, true)

	// Grade 0 is a valid blackout, not a missing field.
	rec := f.postReview(t, f.card.ID.String(), `{"grade":0}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp api.ProgressRecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.LastGrade)
}

func TestRecordReviewEndpointRejectsBadRequests(t *testing.T) {
	t.Parallel()

	f := newReviewHandlerFixture(t, true)
	cardID := f.card.ID.String()

	tests := []struct {
		name     string
		cardID   string
		body     string
		wantCode int
	}{
		{"grade above scale", cardID, `{"grade":6}`, http.StatusBadRequest},
		{"negative grade", cardID, `{"grade":-1}`, http.StatusBadRequest},
		{"missing grade", cardID, `{}`, http.StatusBadRequest},
		{"unknown field", cardID, `{"grade":4,"mode":"drill"}`, http.StatusBadRequest},
		{"malformed json", cardID, `{"grade":`, http.StatusBadRequest},
		{"malformed card id", "not-a-uuid", `{"grade":4}`, http.StatusBadRequest},
		{"unknown card", uuid.New().String(), `{"grade":4}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rec := f.postReview(t, tt.cardID, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}

	assert.Zero(t, f.progress.UpsertCalls(), "rejected requests never reach the store")
}

func TestRecordReviewEndpointRequiresUser(t *testing.T) {
	t.Parallel()

	f := newReviewHandlerFixture(t, false)

	rec := f.postReview(t, f.card.ID.String(), `{"grade":4}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRecordReviewEndpointIsIdempotentPerRequest(t *testing.T) {
	t.Parallel()

	f := newReviewHandlerFixture(t, true)

	first := f.postReview(t, f.card.ID.String(), `{"grade":4}`)
	second := f.postReview(t, f.card.ID.String(), `{"grade":4}`)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)

	// Two reviews advance the schedule twice: 1 day then 6 days.
	var resp api.ProgressRecordResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.IntervalDays)
	assert.Equal(t, 2, f.progress.UpsertCalls())
}

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mnemosyne-app/retain-api/internal/api/shared"
	"github.com/mnemosyne-app/retain-api/internal/platform/logger"
	"github.com/mnemosyne-app/retain-api/internal/service/progress"
)

// ProgressHandler handles progress-report HTTP requests
type ProgressHandler struct {
	aggregator *progress.Aggregator
	logger     *slog.Logger
}

// NewProgressHandler creates a new ProgressHandler
func NewProgressHandler(aggregator *progress.Aggregator, log *slog.Logger) *ProgressHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProgressHandler")
	}

	return &ProgressHandler{
		aggregator: aggregator,
		logger:     log.With(slog.String("component", "progress_handler")),
	}
}

// GetDeckProgress handles GET /progress/decks/{deckID} requests.
func (h *ProgressHandler) GetDeckProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	deckID, err := uuid.Parse(chi.URLParam(r, "deckID"))
	if err != nil {
		log.Warn("invalid deck ID format", slog.String("deck_id", chi.URLParam(r, "deckID")))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid deck ID format")
		return
	}

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	stats, err := h.aggregator.DeckProgress(r.Context(), deckID, userID, time.Now().UTC())
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// GetAccountProgress handles GET /progress/account requests.
func (h *ProgressHandler) GetAccountProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	stats, err := h.aggregator.AccountProgress(r.Context(), userID, time.Now().UTC())
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

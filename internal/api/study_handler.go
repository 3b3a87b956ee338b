package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mnemosyne-app/retain-api/internal/api/shared"
	"github.com/mnemosyne-app/retain-api/internal/platform/logger"
	"github.com/mnemosyne-app/retain-api/internal/service/study"
)

// StudyHandler handles study-queue HTTP requests
type StudyHandler struct {
	selector *study.Selector
	logger   *slog.Logger
}

// NewStudyHandler creates a new StudyHandler
func NewStudyHandler(selector *study.Selector, log *slog.Logger) *StudyHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StudyHandler")
	}

	return &StudyHandler{
		selector: selector,
		logger:   log.With(slog.String("component", "study_handler")),
	}
}

// GetQueue handles GET /decks/{deckID}/queue requests.
// Query parameters: mode=drill|free (default drill), limit=n.
func (h *StudyHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
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

	opts := study.QueueOptions{Mode: study.ModeDrill}
	if mode := r.URL.Query().Get("mode"); mode != "" {
		opts.Mode = study.QueueMode(mode)
	}

	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil || limit < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Limit must be a non-negative integer")
			return
		}
		opts.Limit = limit
	}

	cards, err := h.selector.SelectDue(r.Context(), deckID, userID, time.Now().UTC(), opts)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	response := QueueResponse{
		Mode:  string(opts.Mode),
		Cards: make([]CardResponse, 0, len(cards)),
	}
	for _, card := range cards {
		response.Cards = append(response.Cards, cardToResponse(card))
	}

	log.Debug("study queue built",
		slog.String("deck_id", deckID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("queue_size", len(response.Cards)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

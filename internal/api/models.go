package api

import (
	"time"

	"github.com/mnemosyne-app/retain-api/internal/domain"
)

// Common request/response structures

// RecordReviewRequest defines the payload for the review endpoint.
// Grade is a pointer so that 0 (blackout) still satisfies "required".
type RecordReviewRequest struct {
	Grade *int `json:"grade" validate:"required,gte=0,lte=5"`
}

// ProgressRecordResponse represents the response data for a progress record.
type ProgressRecordResponse struct {
	UserID       string    `json:"user_id"`
	CardID       string    `json:"card_id"`
	LastGrade    int       `json:"last_grade"`
	IntervalDays int       `json:"interval_days"`
	EaseFactor   float64   `json:"ease_factor"`
	DueAt        time.Time `json:"due_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CardResponse represents the response data for a card in a study queue.
type CardResponse struct {
	ID        string    `json:"id"`
	DeckID    string    `json:"deck_id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	CreatedAt time.Time `json:"created_at"`
}

// QueueResponse represents a built study queue.
type QueueResponse struct {
	Mode  string         `json:"mode"`
	Cards []CardResponse `json:"cards"`
}

// progressRecordToResponse transforms a domain progress record into
// its response shape.
func progressRecordToResponse(record *domain.ProgressRecord) ProgressRecordResponse {
	return ProgressRecordResponse{
		UserID:       record.UserID.String(),
		CardID:       record.CardID.String(),
		LastGrade:    int(record.LastGrade),
		IntervalDays: record.IntervalDays,
		EaseFactor:   record.EaseFactor,
		DueAt:        record.DueAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

// cardToResponse transforms a domain card into its response shape.
func cardToResponse(card *domain.Card) CardResponse {
	return CardResponse{
		ID:        card.ID.String(),
		DeckID:    card.DeckID.String(),
		Front:     card.Front,
		Back:      card.Back,
		CreatedAt: card.CreatedAt,
	}
}

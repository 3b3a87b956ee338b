// Package progress computes deck-level and account-level mastery
// statistics. All stats are views recomputed from the card and
// progress stores on every read; nothing here is cached as
// authoritative state.
package progress

import (
	"time"

	"github.com/google/uuid"

	"github.com/mnemosyne-app/retain-api/internal/domain"
	"github.com/mnemosyne-app/retain-api/internal/service/study"
)

// DayActivity is one calendar day of study history, reconstructed from
// stored progress records so it survives process restarts.
type DayActivity struct {
	Date         string      `json:"date"` // YYYY-MM-DD, UTC
	CardsStudied int         `json:"cards_studied"`
	Performance  study.Tally `json:"performance"`
}

// CardProgress is the per-card slice of a deck progress report. Every
// card in the deck gets an entry; unseen cards carry the initial state
// a first review would start from, with Seen false so clients can
// render them as new material.
type CardProgress struct {
	CardID       uuid.UUID    `json:"card_id"`
	Seen         bool         `json:"seen"`
	LastGrade    domain.Grade `json:"last_grade"`
	IntervalDays int          `json:"interval_days"`
	EaseFactor   float64      `json:"ease_factor"`
	DueAt        time.Time    `json:"due_at"`
}

// DeckStats aggregates one user's progress over one deck.
//
// MasteredCards counts records whose most recent grade meets the
// mastery threshold. AwaitingMastery is the grade-based backlog:
// attempted cards still below the threshold. DueNow is the time-based
// count of records whose due date has passed; the two notions are
// distinct on purpose.
type DeckStats struct {
	DeckID          uuid.UUID      `json:"deck_id"`
	TotalCards      int            `json:"total_cards"`
	MasteredCards   int            `json:"mastered_cards"`
	AwaitingMastery int            `json:"awaiting_mastery"`
	DueNow          int            `json:"due_now"`
	MasteryPercent  float64        `json:"mastery_percent"`
	LastStudied     *time.Time     `json:"last_studied,omitempty"`
	StudyHistory    []DayActivity  `json:"study_history"`
	CardProgress    []CardProgress `json:"card_progress"`
}

// AccountStats aggregates one user's progress across every deck.
type AccountStats struct {
	TotalCards    int     `json:"total_cards"`
	MasteredCards int     `json:"mastered_cards"`
	CardsToReview int     `json:"cards_to_review"`
	AverageGrade  float64 `json:"average_grade"`
}

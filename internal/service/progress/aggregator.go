package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mnemosyne-app/retain-api/internal/domain"
	"github.com/mnemosyne-app/retain-api/internal/platform/logger"
	"github.com/mnemosyne-app/retain-api/internal/store"
)

// historyDays is how many calendar days of study history a deck report
// includes.
const historyDays = 30

// Common aggregator errors
var (
	// ErrDeckNotFound indicates that the deck does not exist.
	ErrDeckNotFound = errors.New("deck not found")
)

// Aggregator recomputes mastery statistics from the source stores.
type Aggregator struct {
	decks    store.DeckReader
	cards    store.CardReader
	progress store.ProgressStore
	logger   *slog.Logger
}

// NewAggregator creates a new Aggregator.
func NewAggregator(
	decks store.DeckReader,
	cards store.CardReader,
	progress store.ProgressStore,
	log *slog.Logger,
) *Aggregator {
	if decks == nil || cards == nil || progress == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("aggregator dependencies cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &Aggregator{
		decks:    decks,
		cards:    cards,
		progress: progress,
		logger:   log.With(slog.String("component", "progress_aggregator")),
	}
}

// DeckProgress computes one user's statistics over one deck. A deck
// with no cards or no reviews yields all-zero stats, never an error.
func (a *Aggregator) DeckProgress(
	ctx context.Context,
	deckID, userID uuid.UUID,
	now time.Time,
) (*DeckStats, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	exists, err := a.decks.Exists(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to check deck: %w", err)
	}
	if !exists {
		return nil, ErrDeckNotFound
	}

	cards, err := a.cards.ListByDeck(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deck cards: %w", err)
	}

	records, err := a.progress.ListByDeck(ctx, deckID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress records: %w", err)
	}

	stats := &DeckStats{
		DeckID:       deckID,
		TotalCards:   len(cards),
		StudyHistory: []DayActivity{},
		CardProgress: make([]CardProgress, 0, len(cards)),
	}

	recordsByCard := make(map[uuid.UUID]*domain.ProgressRecord, len(records))
	var lastStudied time.Time
	for _, record := range records {
		recordsByCard[record.CardID] = record

		if record.Mastered() {
			stats.MasteredCards++
		}
		if record.AwaitingMastery() {
			stats.AwaitingMastery++
		}
		if record.DueBy(now) {
			stats.DueNow++
		}
		if record.UpdatedAt.After(lastStudied) {
			lastStudied = record.UpdatedAt
		}
	}

	// Every deck card gets a row; unseen cards report the state a
	// first review would start from.
	for _, card := range cards {
		if record, seen := recordsByCard[card.ID]; seen {
			stats.CardProgress = append(stats.CardProgress, CardProgress{
				CardID:       record.CardID,
				Seen:         true,
				LastGrade:    record.LastGrade,
				IntervalDays: record.IntervalDays,
				EaseFactor:   record.EaseFactor,
				DueAt:        record.DueAt,
			})
		} else {
			stats.CardProgress = append(stats.CardProgress, CardProgress{
				CardID:     card.ID,
				EaseFactor: domain.DefaultEaseFactor,
				DueAt:      now,
			})
		}
	}

	if !lastStudied.IsZero() {
		stats.LastStudied = &lastStudied
	}

	// Guard the percentage: an empty deck is a valid all-zero result.
	if stats.TotalCards > 0 {
		stats.MasteryPercent = 100 * float64(stats.MasteredCards) / float64(stats.TotalCards)
	}

	stats.StudyHistory = buildHistory(records, now)

	log.Debug("computed deck progress",
		slog.String("deck_id", deckID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("total_cards", stats.TotalCards),
		slog.Int("mastered_cards", stats.MasteredCards))

	return stats, nil
}

// AccountProgress computes one user's statistics across every deck.
func (a *Aggregator) AccountProgress(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*AccountStats, error) {
	records, err := a.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress records: %w", err)
	}

	stats := &AccountStats{TotalCards: len(records)}

	var gradeSum int
	for _, record := range records {
		if record.Mastered() {
			stats.MasteredCards++
		}
		if record.DueBy(now) {
			stats.CardsToReview++
		}
		gradeSum += int(record.LastGrade)
	}

	// A user with no reviews has an average of zero, not a division
	// by zero.
	if len(records) > 0 {
		stats.AverageGrade = float64(gradeSum) / float64(len(records))
	}

	return stats, nil
}

// buildHistory buckets records by the UTC calendar day of their last
// review, keeping the trailing historyDays window, most recent day
// first. The per-day tally has the same shape as the live session
// tally, but is reconstructed from storage so it survives restarts.
func buildHistory(records []*domain.ProgressRecord, now time.Time) []DayActivity {
	// The window is counted in calendar days, so the cutoff sits on a
	// day boundary: a review from the morning of the oldest day stays
	// in even when "now" is an afternoon.
	oldest := now.UTC().AddDate(0, 0, -historyDays)
	cutoff := time.Date(oldest.Year(), oldest.Month(), oldest.Day(), 0, 0, 0, 0, time.UTC)

	byDay := make(map[string]*DayActivity)
	for _, record := range records {
		updated := record.UpdatedAt.UTC()
		if updated.Before(cutoff) {
			continue
		}

		day := updated.Format("2006-01-02")
		activity, ok := byDay[day]
		if !ok {
			activity = &DayActivity{Date: day}
			byDay[day] = activity
		}

		activity.CardsStudied++
		activity.Performance.Add(record.LastGrade)
	}

	history := make([]DayActivity, 0, len(byDay))
	for _, activity := range byDay {
		history = append(history, *activity)
	}

	sort.Slice(history, func(i, j int) bool {
		return history[i].Date > history[j].Date
	})

	return history
}

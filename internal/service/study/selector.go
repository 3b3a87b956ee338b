// Package study builds the working set for a study sitting: the
// due-card queue at session start, and the in-memory tracker that
// tallies grades and streaks while the session runs.
package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mnemosyne-app/retain-api/internal/domain"
	"github.com/mnemosyne-app/retain-api/internal/platform/logger"
	"github.com/mnemosyne-app/retain-api/internal/store"
)

// QueueMode selects how the study queue is built. The two modes differ
// deliberately and callers must pick one explicitly; there is no
// implicit fallback between them.
type QueueMode string

const (
	// ModeDrill returns only cards due for review, unseen cards first,
	// then by ascending due date.
	ModeDrill QueueMode = "drill"

	// ModeFreeStudy returns every card in the deck in shuffled order,
	// ignoring schedules.
	ModeFreeStudy QueueMode = "free"
)

// Valid reports whether the mode is one of the defined queue modes.
func (m QueueMode) Valid() bool {
	return m == ModeDrill || m == ModeFreeStudy
}

// Common selector errors
var (
	// ErrDeckNotFound indicates that the deck does not exist.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrInvalidMode indicates an unknown queue mode.
	ErrInvalidMode = errors.New("invalid queue mode")
)

// QueueOptions configures SelectDue.
type QueueOptions struct {
	Mode  QueueMode
	Limit int // 0 means no limit

	// Rand is the randomness source for free-study shuffling. Nil
	// means a time-seeded source; tests inject a fixed seed.
	Rand *rand.Rand
}

// Selector builds the ordered study queue for a (deck, user) pair.
type Selector struct {
	decks    store.DeckReader
	cards    store.CardReader
	progress store.ProgressStore
	logger   *slog.Logger
}

// NewSelector creates a new Selector.
func NewSelector(
	decks store.DeckReader,
	cards store.CardReader,
	progress store.ProgressStore,
	log *slog.Logger,
) *Selector {
	if decks == nil || cards == nil || progress == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("selector dependencies cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &Selector{
		decks:    decks,
		cards:    cards,
		progress: progress,
		logger:   log.With(slog.String("component", "due_card_selector")),
	}
}

// SelectDue returns the cards a user should study from a deck at the
// given time, ordered per the queue mode. Cards without a progress
// record count as due and sort before every recorded card, since they
// represent unseen material.
func (s *Selector) SelectDue(
	ctx context.Context,
	deckID, userID uuid.UUID,
	now time.Time,
	opts QueueOptions,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !opts.Mode.Valid() {
		return nil, ErrInvalidMode
	}

	exists, err := s.decks.Exists(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to check deck: %w", err)
	}
	if !exists {
		return nil, ErrDeckNotFound
	}

	cards, err := s.cards.ListByDeck(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deck cards: %w", err)
	}

	var queue []*domain.Card
	switch opts.Mode {
	case ModeFreeStudy:
		queue = shuffled(cards, opts.Rand)
	case ModeDrill:
		records, err := s.progress.ListByDeck(ctx, deckID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list progress records: %w", err)
		}
		queue = dueQueue(cards, records, now)
	}

	if opts.Limit > 0 && len(queue) > opts.Limit {
		queue = queue[:opts.Limit]
	}

	log.Debug("built study queue",
		slog.String("deck_id", deckID.String()),
		slog.String("user_id", userID.String()),
		slog.String("mode", string(opts.Mode)),
		slog.Int("queue_size", len(queue)))

	return queue, nil
}

// dueQueue filters the deck down to due cards and orders them: unseen
// cards first (their due date is effectively negative infinity), then
// ascending due date, with card ID as a deterministic tie-break.
func dueQueue(cards []*domain.Card, records []*domain.ProgressRecord, now time.Time) []*domain.Card {
	recordsByCard := make(map[uuid.UUID]*domain.ProgressRecord, len(records))
	for _, record := range records {
		recordsByCard[record.CardID] = record
	}

	var due []*domain.Card
	for _, card := range cards {
		record, seen := recordsByCard[card.ID]
		if !seen || record.DueBy(now) {
			due = append(due, card)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		ri, seenI := recordsByCard[due[i].ID]
		rj, seenJ := recordsByCard[due[j].ID]

		if seenI != seenJ {
			return !seenI // unseen before seen
		}
		if !seenI {
			return due[i].ID.String() < due[j].ID.String()
		}
		if !ri.DueAt.Equal(rj.DueAt) {
			return ri.DueAt.Before(rj.DueAt)
		}
		return due[i].ID.String() < due[j].ID.String()
	})

	return due
}

// shuffled returns a Fisher-Yates shuffled copy of the cards. The
// due-ness computation is untouched; reshuffling is a pure transform
// over the same finite set.
func shuffled(cards []*domain.Card, rng *rand.Rand) []*domain.Card {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	out := make([]*domain.Card, len(cards))
	copy(out, cards)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})

	return out
}

package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/mnemosyne-app/retain-api/internal/domain"
)

// UpsertFn computes the next progress record from the prior one. The
// prior is nil when the learner has never reviewed the card; the
// function must then build the initial record itself. Implementations
// of ProgressStore.Upsert call the function exactly once, inside
// whatever locking scope they use to serialize writers.
type UpsertFn func(prior *domain.ProgressRecord) (*domain.ProgressRecord, error)

// ProgressStore defines the persistence port for per-(user, card)
// progress records. There is exactly one record per pair; all writes
// go through Upsert so two concurrent reviews of the same pair can
// never both read stale state and clobber each other.
// Version: 1.0
type ProgressStore interface {
	// Get retrieves the progress record for the (user, card) pair.
	// Returns ErrProgressNotFound if the learner has never reviewed
	// the card.
	Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.ProgressRecord, error)

	// Upsert atomically reads the prior record for the pair (nil when
	// absent), applies fn to it, and persists the result. Concurrent
	// upserts for the same pair are serialized; upserts for different
	// pairs are independent. Returns the persisted record.
	//
	// If fn returns an error nothing is written and the error is
	// returned unwrapped, so callers can surface their own sentinels
	// through the store boundary.
	Upsert(ctx context.Context, userID, cardID uuid.UUID, fn UpsertFn) (*domain.ProgressRecord, error)

	// ListByDeck retrieves the user's progress records for cards that
	// are currently in the given deck.
	ListByDeck(ctx context.Context, deckID, userID uuid.UUID) ([]*domain.ProgressRecord, error)

	// ListByUser retrieves all of the user's progress records across
	// every deck.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ProgressRecord, error)
}

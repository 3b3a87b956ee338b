package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/mnemosyne-app/retain-api/internal/domain"
)

// CardReader defines the read-only view of cards the engine consumes.
// Card and deck lifecycle (creation, editing, deletion) belongs to the
// host application; the engine never mutates study content.
// Version: 1.0
type CardReader interface {
	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// Exists reports whether a card with the given ID exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ListByDeck retrieves all cards in the given deck. A deck with no
	// cards yields an empty slice, not an error.
	ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error)
}

// DeckReader defines the read-only view of decks the engine consumes.
// Version: 1.0
type DeckReader interface {
	// GetByID retrieves a deck by its unique ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// Exists reports whether a deck with the given ID exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

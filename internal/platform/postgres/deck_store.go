package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/mnemosyne-app/retain-api/internal/domain"
	"github.com/mnemosyne-app/retain-api/internal/store"
)

// PostgresDeckStore implements the store.DeckReader interface
// using a PostgreSQL database as the storage backend.
type PostgresDeckStore struct {
	db store.DBTX
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the
// DeckReader interface.
func NewPostgresDeckStore(db store.DBTX) *PostgresDeckStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	return &PostgresDeckStore{db: db}
}

// Ensure PostgresDeckStore implements store.DeckReader interface
var _ store.DeckReader = (*PostgresDeckStore)(nil)

// GetByID implements store.DeckReader.GetByID
func (s *PostgresDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	query := `
		SELECT id, owner_id, title, description, created_at
		FROM decks
		WHERE id = $1
	`

	var deck domain.Deck
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&deck.ID,
		&deck.OwnerID,
		&deck.Title,
		&deck.Description,
		&deck.CreatedAt,
	)
	if err != nil {
		return nil, mapError("deck", "get", err, store.ErrDeckNotFound)
	}

	return &deck, nil
}

// Exists implements store.DeckReader.Exists
func (s *PostgresDeckStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM decks WHERE id = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, mapError("deck", "exists", err, store.ErrDeckNotFound)
	}

	return exists, nil
}

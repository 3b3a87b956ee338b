package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mnemosyne-app/retain-api/internal/domain"
	"github.com/mnemosyne-app/retain-api/internal/platform/logger"
	"github.com/mnemosyne-app/retain-api/internal/store"
)

// PostgresCardStore implements the store.CardReader interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db store.DBTX
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardReader interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
func NewPostgresCardStore(db store.DBTX) *PostgresCardStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	return &PostgresCardStore{db: db}
}

// Ensure PostgresCardStore implements store.CardReader interface
var _ store.CardReader = (*PostgresCardStore)(nil)

// GetByID implements store.CardReader.GetByID
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	query := `
		SELECT id, deck_id, front, back, created_at
		FROM cards
		WHERE id = $1
	`

	var card domain.Card
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&card.ID,
		&card.DeckID,
		&card.Front,
		&card.Back,
		&card.CreatedAt,
	)
	if err != nil {
		return nil, mapError("card", "get", err, store.ErrCardNotFound)
	}

	return &card, nil
}

// Exists implements store.CardReader.Exists
func (s *PostgresCardStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM cards WHERE id = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, mapError("card", "exists", err, store.ErrCardNotFound)
	}

	return exists, nil
}

// ListByDeck implements store.CardReader.ListByDeck
func (s *PostgresCardStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id, deck_id, front, back, created_at
		FROM cards
		WHERE deck_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, deckID)
	if err != nil {
		log.Error("failed to query cards by deck",
			slog.String("deck_id", deckID.String()),
			slog.String("error", err.Error()))
		return nil, mapError("card", "list_by_deck", err, store.ErrCardNotFound)
	}
	defer func() { _ = rows.Close() }()

	var cards []*domain.Card
	for rows.Next() {
		var card domain.Card
		if err := rows.Scan(
			&card.ID,
			&card.DeckID,
			&card.Front,
			&card.Back,
			&card.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		cards = append(cards, &card)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError("card", "list_by_deck", err, store.ErrCardNotFound)
	}

	return cards, nil
}

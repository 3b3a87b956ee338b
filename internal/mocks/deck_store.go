package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/mnemosyne-app/retain-api/internal/domain"
	"github.com/mnemosyne-app/retain-api/internal/store"
)

// MockDeckStore implements store.DeckReader for testing
type MockDeckStore struct {
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Deck, error)
	ExistsFn  func(ctx context.Context, id uuid.UUID) (bool, error)

	Decks map[uuid.UUID]*domain.Deck
}

var _ store.DeckReader = (*MockDeckStore)(nil)

// NewMockDeckStore creates a new mock store with initialized defaults
func NewMockDeckStore() *MockDeckStore {
	return &MockDeckStore{
		Decks: make(map[uuid.UUID]*domain.Deck),
	}
}

// Add registers a deck in the backing map.
func (m *MockDeckStore) Add(deck *domain.Deck) {
	m.Decks[deck.ID] = deck
}

// GetByID implements the DeckReader interface
func (m *MockDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	deck, exists := m.Decks[id]
	if !exists {
		return nil, store.ErrDeckNotFound
	}
	return deck, nil
}

// Exists implements the DeckReader interface
func (m *MockDeckStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, id)
	}

	_, exists := m.Decks[id]
	return exists, nil
}

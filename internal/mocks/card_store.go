// Package mocks provides in-memory implementations of the store
// interfaces for testing. Each mock serves a map-backed default
// behavior that function fields can override per test.
package mocks

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/mnemosyne-app/retain-api/internal/domain"
	"github.com/mnemosyne-app/retain-api/internal/store"
)

// MockCardStore implements store.CardReader for testing
type MockCardStore struct {
	// Function fields for customizable behavior
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	ExistsFn     func(ctx context.Context, id uuid.UUID) (bool, error)
	ListByDeckFn func(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error)

	// Data for default implementation
	Cards map[uuid.UUID]*domain.Card
}

var _ store.CardReader = (*MockCardStore)(nil)

// NewMockCardStore creates a new mock store with initialized defaults
func NewMockCardStore() *MockCardStore {
	return &MockCardStore{
		Cards: make(map[uuid.UUID]*domain.Card),
	}
}

// Add registers a card in the backing map.
func (m *MockCardStore) Add(card *domain.Card) {
	m.Cards[card.ID] = card
}

// GetByID implements the CardReader interface
func (m *MockCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	card, exists := m.Cards[id]
	if !exists {
		return nil, store.ErrCardNotFound
	}
	return card, nil
}

// Exists implements the CardReader interface
func (m *MockCardStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, id)
	}

	_, exists := m.Cards[id]
	return exists, nil
}

// ListByDeck implements the CardReader interface. Results are sorted
// by card ID so tests see a stable order.
func (m *MockCardStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	if m.ListByDeckFn != nil {
		return m.ListByDeckFn(ctx, deckID)
	}

	cards := make([]*domain.Card, 0)
	for _, card := range m.Cards {
		if card.DeckID == deckID {
			cards = append(cards, card)
		}
	}
	sort.Slice(cards, func(i, j int) bool {
		return cards[i].ID.String() < cards[j].ID.String()
	})
	return cards, nil
}

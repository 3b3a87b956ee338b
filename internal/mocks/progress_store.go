package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mnemosyne-app/retain-api/internal/domain"
	"github.com/mnemosyne-app/retain-api/internal/store"
)

// progressKey identifies one (user, card) record.
type progressKey struct {
	userID uuid.UUID
	cardID uuid.UUID
}

// MockProgressStore implements store.ProgressStore for testing. The
// default implementation serializes Upsert calls with a mutex, which
// gives it the same read-modify-write atomicity the interface
// promises and makes it usable in concurrency tests.
type MockProgressStore struct {
	GetFn        func(ctx context.Context, userID, cardID uuid.UUID) (*domain.ProgressRecord, error)
	UpsertFn     func(ctx context.Context, userID, cardID uuid.UUID, fn store.UpsertFn) (*domain.ProgressRecord, error)
	ListByDeckFn func(ctx context.Context, deckID, userID uuid.UUID) ([]*domain.ProgressRecord, error)
	ListByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.ProgressRecord, error)

	// CardDecks maps card IDs to deck IDs so the default ListByDeck
	// can join records to decks the way the real store does.
	CardDecks map[uuid.UUID]uuid.UUID

	mu          sync.Mutex
	records     map[progressKey]*domain.ProgressRecord
	upsertCalls int
}

var _ store.ProgressStore = (*MockProgressStore)(nil)

// NewMockProgressStore creates a new mock store with initialized defaults
func NewMockProgressStore() *MockProgressStore {
	return &MockProgressStore{
		CardDecks: make(map[uuid.UUID]uuid.UUID),
		records:   make(map[progressKey]*domain.ProgressRecord),
	}
}

// Seed stores a record directly, bypassing Upsert.
func (m *MockProgressStore) Seed(record *domain.ProgressRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[progressKey{record.UserID, record.CardID}] = record.Clone()
}

// UpsertCalls reports how many times the default Upsert ran.
func (m *MockProgressStore) UpsertCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upsertCalls
}

// Get implements the ProgressStore interface
func (m *MockProgressStore) Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.ProgressRecord, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID, cardID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	record, exists := m.records[progressKey{userID, cardID}]
	if !exists {
		return nil, store.ErrProgressNotFound
	}
	return record.Clone(), nil
}

// Upsert implements the ProgressStore interface. The mutex is held
// across the read, fn, and write, matching the serialization the real
// store gets from row locks.
func (m *MockProgressStore) Upsert(
	ctx context.Context,
	userID, cardID uuid.UUID,
	fn store.UpsertFn,
) (*domain.ProgressRecord, error) {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, userID, cardID, fn)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertCalls++

	key := progressKey{userID, cardID}
	var prior *domain.ProgressRecord
	if existing, exists := m.records[key]; exists {
		prior = existing.Clone()
	}

	next, err := fn(prior)
	if err != nil {
		return nil, err
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}

	m.records[key] = next.Clone()
	return next, nil
}

// ListByDeck implements the ProgressStore interface
func (m *MockProgressStore) ListByDeck(ctx context.Context, deckID, userID uuid.UUID) ([]*domain.ProgressRecord, error) {
	if m.ListByDeckFn != nil {
		return m.ListByDeckFn(ctx, deckID, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]*domain.ProgressRecord, 0)
	for key, record := range m.records {
		if key.userID == userID && m.CardDecks[key.cardID] == deckID {
			records = append(records, record.Clone())
		}
	}
	return records, nil
}

// ListByUser implements the ProgressStore interface
func (m *MockProgressStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ProgressRecord, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]*domain.ProgressRecord, 0)
	for key, record := range m.records {
		if key.userID == userID {
			records = append(records, record.Clone())
		}
	}
	return records, nil
}

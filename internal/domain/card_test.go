package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	t.Parallel()

	deckID := uuid.New()

	card, err := NewCard(deckID, "Bonjour", "Hello")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, card.ID)
	assert.Equal(t, deckID, card.DeckID)
	assert.Equal(t, "Bonjour", card.Front)
	assert.Equal(t, "Hello", card.Back)
	assert.False(t, card.CreatedAt.IsZero())

	_, err = NewCard(uuid.Nil, "Bonjour", "Hello")
	assert.ErrorIs(t, err, ErrCardDeckIDEmpty)

	_, err = NewCard(deckID, "", "Hello")
	assert.ErrorIs(t, err, ErrCardFrontEmpty)

	_, err = NewCard(deckID, "Bonjour", "")
	assert.ErrorIs(t, err, ErrCardBackEmpty)
}

func TestDeckValidate(t *testing.T) {
	t.Parallel()

	deck := &Deck{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Title:   "French A1",
	}
	assert.NoError(t, deck.Validate())

	deck.Title = ""
	assert.ErrorIs(t, deck.Validate(), ErrDeckTitleEmpty)

	deck.ID = uuid.Nil
	assert.ErrorIs(t, deck.Validate(), ErrDeckIDEmpty)
}

package poker

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	deck := NewDeck(rng)

	// Check deck size
	if deck.Size() != DeckSize {
		t.Errorf("Expected deck size 52, got %d", deck.Size())
	}

	// Check that all cards are unique
	seen := make(map[Card]bool)
	for _, card := range deck.cards {
		if seen[card] {
			t.Errorf("Duplicate card found: %v", card)
		}
		seen[card] = true
	}

	suitCount := make(map[Suit]int)
	valueCount := make(map[Value]int)
	for _, card := range deck.cards {
		suitCount[card.suit]++
		valueCount[card.value]++
	}

	for suit, count := range suitCount {
		if count != 13 {
			t.Errorf("Expected 13 cards of suit %v, got %d", suit, count)
		}
	}

	for value, count := range valueCount {
		if count != 4 {
			t.Errorf("Expected 4 cards of value %v, got %d", value, count)
		}
	}
}

func TestFullDeckCodeOrder(t *testing.T) {
	for i, card := range FullDeck() {
		require.Equal(t, byte(i), card.Code(), "card %v", card)
		back, err := CardFromCode(card.Code())
		require.NoError(t, err)
		require.Equal(t, card, back)
	}

	_, err := CardFromCode(DeckSize)
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestDeckShuffle(t *testing.T) {
	// Create two decks with the same seed
	deck1 := NewDeck(rand.New(rand.NewSource(42)))
	deck2 := NewDeck(rand.New(rand.NewSource(42)))

	// Both decks should have the same order
	for i := 0; i < DeckSize; i++ {
		if deck1.cards[i] != deck2.cards[i] {
			t.Errorf("Decks with same seed should have same order at position %d", i)
		}
	}

	deck3 := NewDeck(rand.New(rand.NewSource(43)))

	sameOrder := true
	for i := 0; i < DeckSize; i++ {
		if deck1.cards[i] != deck3.cards[i] {
			sameOrder = false
			break
		}
	}
	if sameOrder {
		t.Error("Decks with different seeds should have different orders")
	}
}

func TestDeckDraw(t *testing.T) {
	deck := NewDeck(rand.New(rand.NewSource(1)))

	top := deck.cards[0]
	card, ok := deck.Draw()
	require.True(t, ok)
	assert.Equal(t, top, card)
	assert.Equal(t, DeckSize-1, deck.Size())

	hand, ok := deck.DrawN(HandSize)
	require.True(t, ok)
	assert.Len(t, hand, HandSize)
	assert.Equal(t, DeckSize-1-HandSize, deck.Size())

	_, ok = deck.DrawN(DeckSize)
	assert.False(t, ok)

	for deck.Size() > 0 {
		deck.Draw()
	}
	_, ok = deck.Draw()
	assert.False(t, ok)
}

func TestNewDeckFromCards(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cards := FullDeck()[:10]

	deck, err := NewDeckFromCards(cards, rng)
	require.NoError(t, err)
	assert.Equal(t, cards, deck.GetCards())

	_, err = NewDeckFromCards(append(cards, cards[0]), rng)
	assert.Error(t, err)
}

func TestCardJSON(t *testing.T) {
	card := NewCard(Ten, Hearts)
	data, err := json.Marshal(card)
	require.NoError(t, err)
	assert.JSONEq(t, `{"suit":"h","value":"T"}`, string(data))

	var decoded Card
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, card, decoded)

	require.NoError(t, json.Unmarshal([]byte(`{"suit":"♠","value":"10"}`), &decoded))
	assert.Equal(t, NewCard(Ten, Spades), decoded)

	err = json.Unmarshal([]byte(`{"suit":"x","value":"10"}`), &decoded)
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestParseCards(t *testing.T) {
	cards, err := ParseCards("Ah 10d, k♣ 2s")
	require.NoError(t, err)
	assert.Equal(t, []Card{
		NewCard(Ace, Hearts),
		NewCard(Ten, Diamonds),
		NewCard(King, Clubs),
		NewCard(Two, Spades),
	}, cards)
	assert.Equal(t, "Ah Td Kc 2s", FormatCards(cards))

	for _, bad := range []string{"A", "Ax", "1h", "AhK"} {
		_, err := ParseCards(bad)
		assert.ErrorIs(t, err, ErrInvalidCard, "input %q", bad)
	}
}

func TestValuePredecessor(t *testing.T) {
	_, ok := Two.Predecessor()
	assert.False(t, ok)

	for v := Three; v <= Ace; v++ {
		prev, ok := v.Predecessor()
		require.True(t, ok)
		assert.Equal(t, v-1, prev)
	}
}

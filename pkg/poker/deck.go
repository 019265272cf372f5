package poker

import (
	"fmt"
	"math/rand"
)

// DeckSize is the number of distinct cards in a deck.
const DeckSize = NumValues * NumSuits

// FullDeck returns all 52 cards ordered by Card.Code, so that a card's
// position equals its code.
func FullDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	for value := Two; value <= Ace; value++ {
		for suit := Spades; suit <= Hearts; suit++ {
			cards = append(cards, Card{suit: suit, value: value})
		}
	}
	return cards
}

// Deck represents a deck of cards
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a new shuffled deck of cards with the given random number
// generator.
func NewDeck(rng *rand.Rand) *Deck {
	deck := &Deck{
		cards: FullDeck(),
		rng:   rng,
	}

	deck.Shuffle()

	return deck
}

// NewDeckFromCards creates a deck from a specific set of cards.
func NewDeckFromCards(cards []Card, rng *rand.Rand) (*Deck, error) {
	seen := make(map[Card]bool, len(cards))
	for _, card := range cards {
		if !card.Valid() {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCard, card)
		}
		if seen[card] {
			return nil, fmt.Errorf("duplicate card in deck: %v", card)
		}
		seen[card] = true
	}

	deck := &Deck{
		cards: make([]Card, len(cards)),
		rng:   rng,
	}
	copy(deck.cards, cards)
	return deck, nil
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// DrawN removes and returns the top n cards. Nothing is drawn when fewer
// than n cards remain.
func (d *Deck) DrawN(n int) ([]Card, bool) {
	if n < 0 || n > len(d.cards) {
		return nil, false
	}
	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards, true
}

// Size returns the number of cards remaining in the deck
func (d *Deck) Size() int {
	return len(d.cards)
}

// GetCards returns the remaining cards in the deck
func (d *Deck) GetCards() []Card {
	return d.cards
}

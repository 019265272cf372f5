package poker

import (
	"errors"
	"fmt"
)

// HandSize is the number of cards a hand is made of.
const HandSize = 7

// ErrInvalidHand is returned for input that is not exactly seven distinct,
// valid cards.
var ErrInvalidHand = errors.New("invalid hand")

// Hand is an unordered set of seven distinct cards. The cards are kept
// sorted by descending value, ties broken by suit, so two hands built from
// the same cards compare equal with ==.
type Hand struct {
	cards [HandSize]Card
}

// NewHand validates cards and builds a Hand from them.
func NewHand(cards []Card) (Hand, error) {
	if len(cards) != HandSize {
		return Hand{}, fmt.Errorf("%w: got %d cards, want %d", ErrInvalidHand, len(cards), HandSize)
	}

	var (
		h    Hand
		seen uint64
	)
	for i, card := range cards {
		if !card.Valid() {
			return Hand{}, fmt.Errorf("%w: card %d out of range", ErrInvalidHand, i)
		}
		bit := uint64(1) << card.Code()
		if seen&bit != 0 {
			return Hand{}, fmt.Errorf("%w: duplicate card %v", ErrInvalidHand, card)
		}
		seen |= bit
		h.cards[i] = card
	}

	// Insertion sort: this runs once per combination during a table build.
	for i := 1; i < HandSize; i++ {
		for j := i; j > 0 && cardAbove(h.cards[j], h.cards[j-1]); j-- {
			h.cards[j], h.cards[j-1] = h.cards[j-1], h.cards[j]
		}
	}
	return h, nil
}

// cardAbove orders cards by descending value, then ascending suit.
func cardAbove(a, b Card) bool {
	if a.value != b.value {
		return a.value > b.value
	}
	return a.suit < b.suit
}

// MustParseHand parses a hand from its text form and panics on error. It is
// intended for fixtures.
func MustParseHand(s string) Hand {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	h, err := NewHand(cards)
	if err != nil {
		panic(err)
	}
	return h
}

// Cards returns the cards sorted by descending value.
func (h Hand) Cards() [HandSize]Card {
	return h.cards
}

// String returns the concatenated text form of the sorted cards.
func (h Hand) String() string {
	s := make([]byte, 0, HandSize*2)
	for _, card := range h.cards {
		s = append(s, card.String()...)
	}
	return string(s)
}

package lookup

import (
	"fmt"

	"github.com/vctt94/pokerlut/pkg/poker"
)

// Key is the canonical encoding of a seven-card set: the seven card codes
// sorted ascending and packed one byte each, the lowest code in the most
// significant of the 56 used bits. Every ordering of the same cards yields
// the same Key.
type Key uint64

// NewKey canonicalizes cards into a Key. The input must be seven distinct,
// valid cards.
func NewKey(cards []poker.Card) (Key, error) {
	if len(cards) != poker.HandSize {
		return 0, fmt.Errorf("%w: got %d cards, want %d", poker.ErrInvalidHand, len(cards), poker.HandSize)
	}

	var codes [poker.HandSize]byte
	for i, card := range cards {
		if !card.Valid() {
			return 0, fmt.Errorf("%w: card %d out of range", poker.ErrInvalidHand, i)
		}
		codes[i] = card.Code()
	}
	sortCodes(&codes)

	for i := 1; i < len(codes); i++ {
		if codes[i] == codes[i-1] {
			dup, _ := poker.CardFromCode(codes[i])
			return 0, fmt.Errorf("%w: duplicate card %v", poker.ErrInvalidHand, dup)
		}
	}
	return packCodes(&codes), nil
}

func sortCodes(codes *[poker.HandSize]byte) {
	for i := 1; i < len(codes); i++ {
		for j := i; j > 0 && codes[j] < codes[j-1]; j-- {
			codes[j], codes[j-1] = codes[j-1], codes[j]
		}
	}
}

func packCodes(codes *[poker.HandSize]byte) Key {
	var k Key
	for _, c := range codes {
		k = k<<8 | Key(c)
	}
	return k
}

// Codes unpacks the card codes, ascending.
func (k Key) Codes() [poker.HandSize]byte {
	var codes [poker.HandSize]byte
	for i := poker.HandSize - 1; i >= 0; i-- {
		codes[i] = byte(k)
		k >>= 8
	}
	return codes
}

// Cards decodes the key back into cards, ascending by code.
func (k Key) Cards() ([]poker.Card, error) {
	if k>>(8*poker.HandSize) != 0 {
		return nil, fmt.Errorf("%w: key %#x uses more than 56 bits", ErrKeyEncodingMismatch, uint64(k))
	}
	codes := k.Codes()
	cards := make([]poker.Card, len(codes))
	for i, c := range codes {
		card, err := poker.CardFromCode(c)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrKeyEncodingMismatch, err)
		}
		cards[i] = card
	}
	return cards, nil
}

// String renders the key as its cards.
func (k Key) String() string {
	cards, err := k.Cards()
	if err != nil {
		return fmt.Sprintf("Key(%#x)", uint64(k))
	}
	return poker.FormatCards(cards)
}

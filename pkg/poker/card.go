package poker

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidCard is returned when a card, value or suit cannot be decoded.
var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit. Suits only matter for equality.
type Suit uint8

const (
	Spades Suit = iota
	Diamonds
	Clubs
	Hearts
)

// NumSuits is the number of distinct suits.
const NumSuits = 4

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s < NumSuits
}

// String returns the single-letter form used by the text codec.
func (s Suit) String() string {
	switch s {
	case Spades:
		return "s"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	case Hearts:
		return "h"
	}
	return "?"
}

// Symbol returns the suit glyph used for display.
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Hearts:
		return "♥"
	}
	return "?"
}

// IsRed reports whether the suit is printed in red.
func (s Suit) IsRed() bool {
	return s == Diamonds || s == Hearts
}

// Value represents a card face value, totally ordered from Two to Ace.
type Value uint8

const (
	Two Value = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumValues is the number of distinct face values.
const NumValues = 13

// Valid reports whether v is one of the thirteen face values.
func (v Value) Valid() bool {
	return v < NumValues
}

// Predecessor returns the value immediately below v. There is nothing below
// Two, in which case ok is false; straight scans stop there.
func (v Value) Predecessor() (prev Value, ok bool) {
	if v == Two || !v.Valid() {
		return 0, false
	}
	return v - 1, true
}

var valueChars = [NumValues]string{"2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K", "A"}

var valueNames = [NumValues]string{
	"Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Jack", "Queen", "King", "Ace",
}

// String returns the single-character form used by the text codec.
func (v Value) String() string {
	if !v.Valid() {
		return "?"
	}
	return valueChars[v]
}

// Name returns the English name of the value, e.g. "Queen".
func (v Value) Name() string {
	if !v.Valid() {
		return "Unknown"
	}
	return valueNames[v]
}

// Plural returns the plural English name of the value, e.g. "Sixes".
func (v Value) Plural() string {
	if v == Six {
		return "Sixes"
	}
	return v.Name() + "s"
}

// Card represents a playing card
type Card struct {
	suit  Suit
	value Value
}

// NewCard creates a card from a value and a suit.
func NewCard(value Value, suit Suit) Card {
	return Card{suit: suit, value: value}
}

// NewCardFromSuitValue creates a new Card with the given suit and value
func NewCardFromSuitValue(suit Suit, value Value) Card {
	return Card{suit: suit, value: value}
}

// GetSuit returns the card's suit
func (c Card) GetSuit() Suit {
	return c.suit
}

// GetValue returns the card's value
func (c Card) GetValue() Value {
	return c.value
}

// Valid reports whether both the value and the suit are in range.
func (c Card) Valid() bool {
	return c.value.Valid() && c.suit.Valid()
}

// Code packs the card into a single byte: the value in bits 2..5 and the
// suit in bits 0..1. Codes of valid cards are dense in [0, DeckSize).
func (c Card) Code() byte {
	return byte(c.value)<<2 | byte(c.suit)
}

// CardFromCode is the inverse of Card.Code.
func CardFromCode(code byte) (Card, error) {
	c := Card{suit: Suit(code & 0x03), value: Value(code >> 2)}
	if code >= DeckSize || !c.Valid() {
		return Card{}, fmt.Errorf("%w: code %d", ErrInvalidCard, code)
	}
	return c, nil
}

// String returns a string representation of the card, e.g. "Ah".
func (c Card) String() string {
	return c.value.String() + c.suit.String()
}

// CardJSON represents a card for JSON serialization
type CardJSON struct {
	Suit  string `json:"suit"`
	Value string `json:"value"`
}

// MarshalJSON implements json.Marshaler interface for Card
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(CardJSON{
		Suit:  c.suit.String(),
		Value: c.value.String(),
	})
}

// UnmarshalJSON implements json.Unmarshaler interface for Card
func (c *Card) UnmarshalJSON(data []byte) error {
	var cardJSON CardJSON
	if err := json.Unmarshal(data, &cardJSON); err != nil {
		return err
	}

	suit, err := ParseSuit(cardJSON.Suit)
	if err != nil {
		return err
	}
	value, err := ParseValue(cardJSON.Value)
	if err != nil {
		return err
	}

	c.suit = suit
	c.value = value
	return nil
}

// ParseSuit decodes a suit from its letter, glyph or name.
func ParseSuit(s string) (Suit, error) {
	switch s {
	case "♠", "s", "S", "spades", "Spades":
		return Spades, nil
	case "♥", "h", "H", "hearts", "Hearts":
		return Hearts, nil
	case "♦", "d", "D", "diamonds", "Diamonds":
		return Diamonds, nil
	case "♣", "c", "C", "clubs", "Clubs":
		return Clubs, nil
	}
	return 0, fmt.Errorf("%w: suit %q", ErrInvalidCard, s)
}

// ParseValue decodes a face value from its character or name.
func ParseValue(s string) (Value, error) {
	switch s {
	case "A", "a", "ace", "Ace":
		return Ace, nil
	case "K", "k", "king", "King":
		return King, nil
	case "Q", "q", "queen", "Queen":
		return Queen, nil
	case "J", "j", "jack", "Jack":
		return Jack, nil
	case "10", "T", "t", "ten", "Ten":
		return Ten, nil
	case "9", "nine", "Nine":
		return Nine, nil
	case "8", "eight", "Eight":
		return Eight, nil
	case "7", "seven", "Seven":
		return Seven, nil
	case "6", "six", "Six":
		return Six, nil
	case "5", "five", "Five":
		return Five, nil
	case "4", "four", "Four":
		return Four, nil
	case "3", "three", "Three":
		return Three, nil
	case "2", "two", "Two":
		return Two, nil
	}
	return 0, fmt.Errorf("%w: value %q", ErrInvalidCard, s)
}

// ParseCard decodes the two-character form of a card, e.g. "Ah" or "Td".
// "10" is accepted for Ten and suit glyphs are accepted for suits.
func ParseCard(s string) (Card, error) {
	r := []rune(strings.TrimSpace(s))
	if len(r) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	value, err := ParseValue(string(r[:len(r)-1]))
	if err != nil {
		return Card{}, err
	}
	suit, err := ParseSuit(string(r[len(r)-1]))
	if err != nil {
		return Card{}, err
	}
	return NewCard(value, suit), nil
}

// ParseCards decodes a run of cards such as "AhKhQhJhTh2c3d". Whitespace and
// commas between cards are ignored.
func ParseCards(s string) ([]Card, error) {
	var r []rune
	for _, ch := range s {
		if unicode.IsSpace(ch) || ch == ',' {
			continue
		}
		r = append(r, ch)
	}

	cards := make([]Card, 0, len(r)/2)
	for i := 0; i < len(r); {
		n := 2
		if r[i] == '1' && i+1 < len(r) && r[i+1] == '0' {
			n = 3
		}
		if i+n > len(r) {
			return nil, fmt.Errorf("%w: trailing %q", ErrInvalidCard, string(r[i:]))
		}
		card, err := ParseCard(string(r[i : i+n]))
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
		i += n
	}
	return cards, nil
}

// FormatCards renders cards in their text form separated by spaces.
func FormatCards(cards []Card) string {
	if len(cards) == 0 {
		return "None"
	}

	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}

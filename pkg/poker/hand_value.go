package poker

import (
	"errors"
	"fmt"
)

// HandRank represents the category of a poker hand, weakest first.
type HandRank uint8

const (
	HighCard HandRank = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// NumHandRanks is the number of hand categories. A royal flush is the
// Ace-high straight flush, not a category of its own.
const NumHandRanks = 9

// ErrInvalidHandValue is returned when a packed or constructed HandValue
// does not describe a reachable hand.
var ErrInvalidHandValue = errors.New("invalid hand value")

var handRankNames = [NumHandRanks]string{
	"High Card", "Pair", "Two Pair", "Three of a Kind", "Straight",
	"Flush", "Full House", "Four of a Kind", "Straight Flush",
}

// String returns the category name, e.g. "Full House".
func (r HandRank) String() string {
	if r >= NumHandRanks {
		return fmt.Sprintf("HandRank(%d)", uint8(r))
	}
	return handRankNames[r]
}

// payloadLen is the number of tie-break values each category carries.
var payloadLen = [NumHandRanks]int{
	HighCard:      5,
	Pair:          4,
	TwoPair:       3,
	ThreeOfAKind:  3,
	Straight:      1,
	Flush:         5,
	FullHouse:     2,
	FourOfAKind:   2,
	StraightFlush: 1,
}

// HandValue represents a complete evaluation of a hand: its category and
// the values that break ties inside that category, in priority order.
// Unused value slots are always zero, so HandValue is comparable with ==.
type HandValue struct {
	Rank   HandRank
	values [5]Value
}

// NewStraightFlush returns a straight flush topped by high. An Ace-high
// straight flush is a royal flush.
func NewStraightFlush(high Value) HandValue {
	return HandValue{Rank: StraightFlush, values: [5]Value{high}}
}

// NewFourOfAKind returns four of a kind of quad with the given kicker.
func NewFourOfAKind(quad, kicker Value) HandValue {
	return HandValue{Rank: FourOfAKind, values: [5]Value{quad, kicker}}
}

// NewFullHouse returns trips full of pair. The trips value ranks first.
func NewFullHouse(trips, pair Value) HandValue {
	return HandValue{Rank: FullHouse, values: [5]Value{trips, pair}}
}

// NewFlush returns a flush of the given values, highest first.
func NewFlush(values [5]Value) HandValue {
	return HandValue{Rank: Flush, values: values}
}

// NewStraight returns a straight topped by high. The wheel is Five high.
func NewStraight(high Value) HandValue {
	return HandValue{Rank: Straight, values: [5]Value{high}}
}

// NewThreeOfAKind returns trips with two kickers, highest first.
func NewThreeOfAKind(trips Value, kickers [2]Value) HandValue {
	return HandValue{Rank: ThreeOfAKind, values: [5]Value{trips, kickers[0], kickers[1]}}
}

// NewTwoPair returns two pairs, highest first, with one kicker.
func NewTwoPair(pairs [2]Value, kicker Value) HandValue {
	return HandValue{Rank: TwoPair, values: [5]Value{pairs[0], pairs[1], kicker}}
}

// NewPair returns a pair with three kickers, highest first.
func NewPair(pair Value, kickers [3]Value) HandValue {
	return HandValue{Rank: Pair, values: [5]Value{pair, kickers[0], kickers[1], kickers[2]}}
}

// NewHighCard returns a high card hand of five values, highest first.
func NewHighCard(values [5]Value) HandValue {
	return HandValue{Rank: HighCard, values: values}
}

// Values returns the tie-break values in priority order.
func (v HandValue) Values() []Value {
	if v.Rank >= NumHandRanks {
		return nil
	}
	out := make([]Value, payloadLen[v.Rank])
	copy(out, v.values[:])
	return out
}

// High returns the first tie-break value: the top of a straight, the quad,
// trips or higher pair value, or the highest card.
func (v HandValue) High() Value {
	return v.values[0]
}

// IsRoyal reports whether v is an Ace-high straight flush.
func (v HandValue) IsRoyal() bool {
	return v.Rank == StraightFlush && v.values[0] == Ace
}

// Compare returns -1 if v is weaker than other, 0 if they tie and 1 if v is
// stronger.
func (v HandValue) Compare(other HandValue) int {
	a, b := v.Pack(), other.Pack()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Less reports whether v is weaker than other.
func (v HandValue) Less(other HandValue) bool {
	return v.Pack() < other.Pack()
}

// Pack encodes v into 24 bits: the category in bits 20..23 followed by the
// five tie-break values, four bits each. Integer order of packed values is
// hand strength order.
func (v HandValue) Pack() uint32 {
	p := uint32(v.Rank)
	for _, value := range v.values {
		p = p<<4 | uint32(value)
	}
	return p
}

// UnpackHandValue decodes and validates a value produced by Pack.
func UnpackHandValue(p uint32) (HandValue, error) {
	if p>>24 != 0 {
		return HandValue{}, fmt.Errorf("%w: packed value %#x out of range", ErrInvalidHandValue, p)
	}

	var v HandValue
	v.Rank = HandRank(p >> 20)
	for i := 4; i >= 0; i-- {
		v.values[i] = Value(p & 0x0F)
		p >>= 4
	}
	if err := v.Validate(); err != nil {
		return HandValue{}, err
	}
	return v, nil
}

// Validate checks that the tie-break values describe a reachable hand of
// the category.
func (v HandValue) Validate() error {
	if v.Rank >= NumHandRanks {
		return fmt.Errorf("%w: unknown category %d", ErrInvalidHandValue, v.Rank)
	}

	n := payloadLen[v.Rank]
	for i, value := range v.values {
		if i >= n && value != 0 {
			return fmt.Errorf("%w: %v has unused slot %d set", ErrInvalidHandValue, v.Rank, i)
		}
		if !value.Valid() {
			return fmt.Errorf("%w: value %d out of range", ErrInvalidHandValue, value)
		}
	}

	vals := v.values[:n]
	switch v.Rank {
	case StraightFlush, Straight:
		if vals[0] < Five {
			return fmt.Errorf("%w: straight cannot be %v high", ErrInvalidHandValue, vals[0])
		}
	case FourOfAKind, FullHouse:
		if vals[0] == vals[1] {
			return fmt.Errorf("%w: %v repeats %v", ErrInvalidHandValue, v.Rank, vals[0])
		}
	case Flush, HighCard:
		if !strictlyDescending(vals) {
			return fmt.Errorf("%w: %v values not strictly descending", ErrInvalidHandValue, v.Rank)
		}
	case ThreeOfAKind, Pair:
		if !strictlyDescending(vals[1:]) || contains(vals[1:], vals[0]) {
			return fmt.Errorf("%w: %v kickers invalid", ErrInvalidHandValue, v.Rank)
		}
	case TwoPair:
		if !strictlyDescending(vals[:2]) || contains(vals[:2], vals[2]) {
			return fmt.Errorf("%w: two pair values invalid", ErrInvalidHandValue)
		}
	}
	return nil
}

func strictlyDescending(vals []Value) bool {
	for i := 1; i < len(vals); i++ {
		if vals[i] >= vals[i-1] {
			return false
		}
	}
	return true
}

func contains(vals []Value, v Value) bool {
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}

// String returns a human-readable description of a hand
func (v HandValue) String() string {
	vals := v.values
	switch v.Rank {
	case StraightFlush:
		if v.IsRoyal() {
			return "Royal Flush"
		}
		return fmt.Sprintf("Straight Flush, %s high", vals[0].Name())
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", vals[0].Plural())
	case FullHouse:
		return fmt.Sprintf("Full House, %s full of %s", vals[0].Plural(), vals[1].Plural())
	case Flush:
		return fmt.Sprintf("Flush, %s high", vals[0].Name())
	case Straight:
		return fmt.Sprintf("Straight, %s high", vals[0].Name())
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", vals[0].Plural())
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", vals[0].Plural(), vals[1].Plural())
	case Pair:
		return fmt.Sprintf("Pair of %s", vals[0].Plural())
	case HighCard:
		return fmt.Sprintf("High Card, %s", vals[0].Name())
	}
	return v.Rank.String()
}

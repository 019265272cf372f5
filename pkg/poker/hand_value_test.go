package poker

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandValueTieBreaks(t *testing.T) {
	tests := []struct {
		name         string
		weak, strong HandValue
	}{
		{"four of a kind kicker", NewFourOfAKind(Jack, Two), NewFourOfAKind(Jack, Three)},
		{"four of a kind quad before kicker", NewFourOfAKind(Ten, Ace), NewFourOfAKind(Jack, Two)},
		{"straight flush high", NewStraightFlush(Ten), NewStraightFlush(Jack)},
		{"royal over king high", NewStraightFlush(King), NewStraightFlush(Ace)},
		{"full house pair", NewFullHouse(Jack, Two), NewFullHouse(Jack, Three)},
		{"full house trips first", NewFullHouse(Ten, Ace), NewFullHouse(Jack, Three)},
		{"flush second card", NewFlush([5]Value{Jack, Eight, Six, Five, Four}), NewFlush([5]Value{Jack, Nine, Six, Five, Four})},
		{"flush last card", NewFlush([5]Value{Ace, King, Queen, Jack, Two}), NewFlush([5]Value{Ace, King, Queen, Jack, Three})},
		{"wheel under six high", NewStraight(Five), NewStraight(Six)},
		{"three of a kind kicker", NewThreeOfAKind(Ace, [2]Value{King, Jack}), NewThreeOfAKind(Ace, [2]Value{King, Queen})},
		{"three of a kind trips first", NewThreeOfAKind(Two, [2]Value{King, Queen}), NewThreeOfAKind(Three, [2]Value{Five, Four})},
		{"two pair low pair", NewTwoPair([2]Value{Ten, Two}, Jack), NewTwoPair([2]Value{Ten, Nine}, Jack)},
		{"two pair kicker", NewTwoPair([2]Value{Ten, Two}, Eight), NewTwoPair([2]Value{Ten, Two}, Jack)},
		{"two pair high pair", NewTwoPair([2]Value{Ten, Two}, Eight), NewTwoPair([2]Value{Queen, Two}, Jack)},
		{"pair value", NewPair(Eight, [3]Value{King, Queen, Two}), NewPair(Ace, [3]Value{King, Jack, Two})},
		{"pair kicker", NewPair(Ace, [3]Value{King, Jack, Two}), NewPair(Ace, [3]Value{King, Queen, Two})},
		{"high card", NewHighCard([5]Value{Ace, King, Nine, Four, Two}), NewHighCard([5]Value{Ace, King, Nine, Five, Two})},
		{"category over payload", NewPair(Ace, [3]Value{King, Queen, Jack}), NewTwoPair([2]Value{Three, Two}, Four)},
		{"flush over straight", NewStraight(Ace), NewFlush([5]Value{Seven, Five, Four, Three, Two})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.weak.Validate())
			require.NoError(t, tt.strong.Validate())
			assert.Equal(t, -1, tt.weak.Compare(tt.strong))
			assert.Equal(t, 1, tt.strong.Compare(tt.weak))
			assert.True(t, tt.weak.Less(tt.strong))
			assert.False(t, tt.strong.Less(tt.weak))
			assert.Equal(t, 0, tt.weak.Compare(tt.weak))
		})
	}
}

func TestHandValuePackRoundTrip(t *testing.T) {
	values := []HandValue{
		NewStraightFlush(Ace),
		NewStraightFlush(Five),
		NewFourOfAKind(Two, Ace),
		NewFullHouse(Two, Three),
		NewFlush([5]Value{Seven, Five, Four, Three, Two}),
		NewStraight(Five),
		NewThreeOfAKind(King, [2]Value{Ace, Two}),
		NewTwoPair([2]Value{Three, Two}, Ace),
		NewPair(Two, [3]Value{Five, Four, Three}),
		NewHighCard([5]Value{Seven, Five, Four, Three, Two}),
	}

	for _, v := range values {
		got, err := UnpackHandValue(v.Pack())
		require.NoError(t, err, "%v", v)
		assert.Equal(t, v, got)
	}
}

func TestUnpackHandValueRejectsGarbage(t *testing.T) {
	tests := []struct {
		name   string
		packed uint32
	}{
		{"above 24 bits", 1 << 24},
		{"unknown category", uint32(NumHandRanks) << 20},
		{"straight below five", NewStraight(Four).Pack()},
		{"value out of range", uint32(HighCard)<<20 | 0xF0000},
		{"unused slot set", NewStraight(Nine).Pack() | 1},
		{"quads kicker equal", NewFourOfAKind(Nine, Nine).Pack()},
		{"flush not descending", NewFlush([5]Value{Two, Three, Four, Five, Seven}).Pack()},
		{"pair kicker repeats pair", NewPair(Nine, [3]Value{Nine, Four, Three}).Pack()},
		{"two pair kicker repeats pair", NewTwoPair([2]Value{Nine, Four}, Four).Pack()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnpackHandValue(tt.packed)
			assert.ErrorIs(t, err, ErrInvalidHandValue)
		})
	}
}

// TestHandValueTotalOrder sorts evaluated hands and checks that the order
// is consistent and transitive.
func TestHandValueTotalOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	vals := make([]HandValue, 0, 300)
	for i := 0; i < cap(vals); i++ {
		cards, _ := NewDeck(rng).DrawN(HandSize)
		v, err := Evaluate(cards)
		require.NoError(t, err)
		vals = append(vals, v)
	}

	sort.Slice(vals, func(i, j int) bool { return vals[i].Less(vals[j]) })
	for i := 1; i < len(vals); i++ {
		require.LessOrEqual(t, vals[i-1].Compare(vals[i]), 0)
		require.True(t, vals[i-1].Rank <= vals[i].Rank)
	}
	for i := 0; i+2 < len(vals); i++ {
		a, b, c := vals[i], vals[i+1], vals[i+2]
		if a.Less(b) && b.Less(c) {
			require.True(t, a.Less(c))
		}
	}
}

func TestHandValueString(t *testing.T) {
	tests := []struct {
		v    HandValue
		want string
	}{
		{NewStraightFlush(Ace), "Royal Flush"},
		{NewStraightFlush(Nine), "Straight Flush, Nine high"},
		{NewFourOfAKind(Jack, Two), "Four of a Kind, Jacks"},
		{NewFullHouse(Nine, Six), "Full House, Nines full of Sixes"},
		{NewFlush([5]Value{King, Ten, Nine, Eight, Two}), "Flush, King high"},
		{NewStraight(Five), "Straight, Five high"},
		{NewThreeOfAKind(Two, [2]Value{King, Eight}), "Three of a Kind, Twos"},
		{NewTwoPair([2]Value{Eight, Three}, King), "Two Pair, Eights and Threes"},
		{NewPair(Three, [3]Value{Ace, King, Eight}), "Pair of Threes"},
		{NewHighCard([5]Value{Queen, Ten, Eight, Seven, Five}), "High Card, Queen"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.String())
	}
	assert.Equal(t, []Value{Nine, Six}, NewFullHouse(Nine, Six).Values())
	assert.Equal(t, "Full House", FullHouse.String())
}

package poker

import (
	"fmt"

	"github.com/chehsunliu/poker"
)

// Reference is the result of evaluating a hand with the independent
// Cactus Kev evaluator from github.com/chehsunliu/poker. It exists to
// cross-check Evaluate and the lookup table.
type Reference struct {
	// Score is the Cactus Kev rank; lower is stronger, 1 is a royal flush.
	Score       int32
	Rank        HandRank
	Description string
	// BestHand holds the five cards that make the best hand.
	BestHand []Card
}

// Compare returns -1 if r is weaker than other, 0 on a tie and 1 if r is
// stronger, matching HandValue.Compare.
func (r Reference) Compare(other Reference) int {
	switch {
	case r.Score > other.Score:
		return -1
	case r.Score < other.Score:
		return 1
	}
	return 0
}

// convertCardToChehsunliu converts our Card type to the chehsunliu/poker Card type
func convertCardToChehsunliu(card Card) poker.Card {
	return poker.NewCard(card.value.String() + card.suit.String())
}

func convertCards(cards []Card) []poker.Card {
	out := make([]poker.Card, len(cards))
	for i, card := range cards {
		out[i] = convertCardToChehsunliu(card)
	}
	return out
}

// convertRankClassToHandRank converts chehsunliu rank class to our HandRank
func convertRankClassToHandRank(rankClass int32) HandRank {
	switch rankClass {
	case 1:
		return StraightFlush
	case 2:
		return FourOfAKind
	case 3:
		return FullHouse
	case 4:
		return Flush
	case 5:
		return Straight
	case 6:
		return ThreeOfAKind
	case 7:
		return TwoPair
	case 8:
		return Pair
	default:
		return HighCard
	}
}

// ReferenceEvaluate scores seven distinct cards by scoring each of the 21
// five-card subsets and keeping the strongest.
func ReferenceEvaluate(cards []Card) (Reference, error) {
	if _, err := NewHand(cards); err != nil {
		return Reference{}, err
	}

	var (
		best     Reference
		bestHand []Card
	)
	for _, combo := range generateCombinations(cards, straightLen) {
		score := poker.Evaluate(convertCards(combo))
		if bestHand == nil || score < best.Score {
			best.Score = score
			bestHand = combo
		}
	}
	if bestHand == nil {
		return Reference{}, fmt.Errorf("no five-card subset of %d cards", len(cards))
	}

	best.Rank = convertRankClassToHandRank(poker.RankClass(best.Score))
	best.Description = poker.RankString(best.Score)
	best.BestHand = bestHand
	return best, nil
}

// ReferenceScore scores the cards with the library's own best-of-n search.
func ReferenceScore(cards []Card) int32 {
	return poker.Evaluate(convertCards(cards))
}

// generateCombinations generates all possible k-combinations from a slice of cards
func generateCombinations(cards []Card, k int) [][]Card {
	var combinations [][]Card

	if k > len(cards) || k <= 0 {
		return combinations
	}

	var generate func(start int, current []Card)
	generate = func(start int, current []Card) {
		if len(current) == k {
			combination := make([]Card, k)
			copy(combination, current)
			combinations = append(combinations, combination)
			return
		}

		for i := start; i <= len(cards)-(k-len(current)); i++ {
			generate(i+1, append(current, cards[i]))
		}
	}

	generate(0, make([]Card, 0, k))
	return combinations
}

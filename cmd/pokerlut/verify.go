package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/davecgh/go-spew/spew"
	"github.com/decred/slog"

	"github.com/vctt94/pokerlut/pkg/lookup"
	"github.com/vctt94/pokerlut/pkg/poker"
)

// maxReported caps how many mismatches are dumped to the log.
const maxReported = 10

type verifyResult struct {
	Hands      int
	Mismatches int
}

// sample is one checked hand and everything it was scored as.
type sample struct {
	Hand      []poker.Card
	Value     poker.HandValue
	Table     *poker.HandValue
	Reference poker.Reference
}

// verifySample draws n random hands from the table's deck (or the full deck
// when table is nil) and checks that the evaluator, the table and the
// reference evaluator agree on each hand's category and that the evaluator
// and the reference order consecutive hands the same way.
func verifySample(ctx context.Context, table *lookup.Table, n int, seed int64, log slog.Logger) (verifyResult, error) {
	cards := poker.FullDeck()
	if table != nil {
		cards = table.Deck()
	}
	rng := rand.New(rand.NewSource(seed))

	var (
		res  verifyResult
		prev *sample
	)
	report := func(reason string, s *sample, other *sample) {
		res.Mismatches++
		if res.Mismatches > maxReported {
			return
		}
		if other != nil {
			log.Errorf("Mismatch: %s\n%s%s", reason, spew.Sdump(s), spew.Sdump(other))
		} else {
			log.Errorf("Mismatch: %s\n%s", reason, spew.Sdump(s))
		}
	}

	for i := 0; i < n; i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		deck, err := poker.NewDeckFromCards(cards, rng)
		if err != nil {
			return res, err
		}
		deck.Shuffle()
		hand, ok := deck.DrawN(poker.HandSize)
		if !ok {
			return res, fmt.Errorf("deck of %d cards cannot deal a hand", len(cards))
		}

		s := &sample{Hand: hand}
		if s.Value, err = poker.Evaluate(hand); err != nil {
			return res, err
		}
		if s.Reference, err = poker.ReferenceEvaluate(hand); err != nil {
			return res, err
		}
		res.Hands++

		if s.Value.Rank != s.Reference.Rank {
			report(fmt.Sprintf("category %v, reference %v", s.Value.Rank, s.Reference.Rank), s, nil)
		}
		if table != nil {
			got, err := table.Lookup(hand)
			switch {
			case err != nil:
				report(fmt.Sprintf("table lookup: %v", err), s, nil)
			case got != s.Value:
				s.Table = &got
				report(fmt.Sprintf("table has %v", got), s, nil)
			}
		}
		if prev != nil {
			want := prev.Reference.Compare(s.Reference)
			if got := prev.Value.Compare(s.Value); got != want {
				report(fmt.Sprintf("ordering %d, reference %d", got, want), prev, s)
			}
		}
		prev = s
	}

	if res.Mismatches > maxReported {
		log.Errorf("%d more mismatches not shown", res.Mismatches-maxReported)
	}
	return res, nil
}

package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vctt94/pokerlut/pkg/lookup"
	"github.com/vctt94/pokerlut/pkg/poker"
)

func TestFormatCard(t *testing.T) {
	assert.Equal(t, "10♥", FormatCard(poker.NewCard(poker.Ten, poker.Hearts)))
	assert.Equal(t, "A♠", FormatCard(poker.NewCard(poker.Ace, poker.Spades)))
}

func TestRenderCards(t *testing.T) {
	cards, err := poker.ParseCards("As Kh 2c")
	require.NoError(t, err)

	out := RenderCards(cards)
	for _, want := range []string{"A♠", "K♥", "2♣"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, RenderCards(nil), "No cards")
}

func TestRenderComparison(t *testing.T) {
	a, err := poker.ParseCards("AsKsQsJsTs2h3d")
	require.NoError(t, err)
	b, err := poker.ParseCards("AhAdAc9s9h2c3c")
	require.NoError(t, err)

	va, err := poker.Evaluate(a)
	require.NoError(t, err)
	vb, err := poker.Evaluate(b)
	require.NoError(t, err)

	out := RenderComparison(a, b, va, vb, va.Compare(vb))
	assert.Contains(t, out, "Royal Flush")
	assert.Contains(t, out, "First hand wins")

	out = RenderComparison(a, a, va, va, 0)
	assert.Contains(t, out, "Split pot")
}

func TestRenderBuildStats(t *testing.T) {
	var stats lookup.BuildStats
	stats.Entries = 36
	stats.Category[poker.Flush] = 12

	out := RenderBuildStats(stats)
	assert.Contains(t, out, "Entries")
	assert.Contains(t, out, "36")
	assert.Contains(t, out, poker.StraightFlush.String())
	assert.Contains(t, out, poker.HighCard.String())
}

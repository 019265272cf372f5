package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vctt94/pokerlut/pkg/lookup"
	"github.com/vctt94/pokerlut/pkg/poker"
)

func smallTable(t *testing.T) *lookup.Table {
	t.Helper()
	// Tens through Aces: C(20, 7) entries.
	var deck []poker.Card
	for _, card := range poker.FullDeck() {
		if card.GetValue() >= poker.Ten {
			deck = append(deck, card)
		}
	}
	table, err := lookup.Build(context.Background(), lookup.Config{Deck: deck, Workers: 2})
	require.NoError(t, err)
	return table
}

func openTemp(t *testing.T) Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "lut.sqlite"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	table := smallTable(t)

	require.NoError(t, s.SaveTable(ctx, table))

	loaded, err := s.LoadTable(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, table.Deck(), loaded.Deck())
	assert.Equal(t, table.Keys(), loaded.Keys())
	assert.Equal(t, table.Rankings(), loaded.Rankings())

	hand, err := poker.ParseCards("AsKsQsJsTsAhKh")
	require.NoError(t, err)
	v, err := loaded.Lookup(hand)
	require.NoError(t, err)
	assert.True(t, v.IsRoyal())
}

func TestSaveReplacesPreviousTable(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	first, err := lookup.Build(ctx, lookup.Config{Deck: poker.FullDeck()[:9]})
	require.NoError(t, err)
	require.NoError(t, s.SaveTable(ctx, first))

	second := smallTable(t)
	require.NoError(t, s.SaveTable(ctx, second))

	loaded, err := s.LoadTable(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, second.Len(), loaded.Len())
}

func TestLoadEmpty(t *testing.T) {
	_, err := openTemp(t).LoadTable(context.Background(), false)
	assert.ErrorIs(t, err, ErrNoTable)
}

func TestLoadDetectsCorruption(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		query  string
		verify bool
	}{
		{"entry count", `UPDATE lut_meta SET entries = 5`, false},
		{"chunk count", `UPDATE lut_meta SET chunks = chunks + 1`, false},
		{"bad deck", `UPDATE lut_meta SET deck = x'ff'`, false},
		{"truncated chunk", `UPDATE lut_chunks SET keys = substr(keys, 1, 16), rankings = substr(rankings, 1, 8)`, false},
		{"zeroed keys", `UPDATE lut_chunks SET keys = zeroblob(length(keys))`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTemp(t)
			require.NoError(t, s.SaveTable(ctx, smallTable(t)))

			_, err := s.(*sqliteStore).db.ExecContext(ctx, tt.query)
			require.NoError(t, err)

			_, err = s.LoadTable(ctx, tt.verify)
			assert.ErrorIs(t, err, ErrCorruptTable)
		})
	}
}

package lookup

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vctt94/pokerlut/pkg/poker"
)

var (
	// ErrKeyEncodingMismatch means a key does not address its own entry:
	// it is not canonical, or the table was built with a different scheme.
	ErrKeyEncodingMismatch = errors.New("key encoding mismatch")

	// ErrUnknownCard is returned when a hand uses a card outside the deck
	// the table was built over.
	ErrUnknownCard = errors.New("card not in table deck")

	// ErrEnumerationIncomplete aborts a build whose enumeration did not
	// produce exactly C(n, 7) combinations.
	ErrEnumerationIncomplete = errors.New("enumeration incomplete")

	// ErrInsufficientMemory aborts a build that would not fit in memory.
	ErrInsufficientMemory = errors.New("insufficient memory for table")
)

// entryBytes is the memory used per table entry: an 8-byte key and a
// 4-byte packed hand value.
const entryBytes = 8 + 4

// Table maps every seven-card subset of a deck to its precomputed hand
// value. Entries are stored at the lexicographic position of the subset, so
// a lookup is a canonicalization plus one array read. A Table is immutable
// once built and safe for concurrent readers.
type Table struct {
	deck  []poker.Card
	index [poker.DeckSize]int8 // card code -> position in deck, -1 if absent

	keys     []Key
	rankings []uint32
}

// newTable validates deck and prepares an empty table over it. The deck is
// copied and sorted by card code so that code order and position order
// agree.
func newTable(deck []poker.Card) (*Table, error) {
	if len(deck) < poker.HandSize || len(deck) > poker.DeckSize {
		return nil, fmt.Errorf("deck must hold %d to %d cards, got %d",
			poker.HandSize, poker.DeckSize, len(deck))
	}

	t := &Table{deck: make([]poker.Card, len(deck))}
	copy(t.deck, deck)
	sort.Slice(t.deck, func(i, j int) bool { return t.deck[i].Code() < t.deck[j].Code() })

	for i := range t.index {
		t.index[i] = -1
	}
	for i, card := range t.deck {
		if !card.Valid() {
			return nil, fmt.Errorf("%w: %v", poker.ErrInvalidCard, card)
		}
		if t.index[card.Code()] >= 0 {
			return nil, fmt.Errorf("duplicate card in deck: %v", card)
		}
		t.index[card.Code()] = int8(i)
	}
	return t, nil
}

// NewTableFromParts reassembles a table from its deck and entry arrays,
// e.g. after loading it from storage. The slices are retained.
func NewTableFromParts(deck []poker.Card, keys []Key, rankings []uint32) (*Table, error) {
	t, err := newTable(deck)
	if err != nil {
		return nil, err
	}
	want := Binomial(len(t.deck), poker.HandSize)
	if uint64(len(keys)) != want || uint64(len(rankings)) != want {
		return nil, fmt.Errorf("%w: have %d keys and %d rankings, want %d",
			ErrEnumerationIncomplete, len(keys), len(rankings), want)
	}
	t.keys = keys
	t.rankings = rankings
	return t, nil
}

// Size returns the number of entries a table over a deck of n cards holds.
func Size(n int) uint64 {
	return Binomial(n, poker.HandSize)
}

// MemoryFootprint returns the bytes needed for the entries of a table over
// a deck of n cards.
func MemoryFootprint(n int) uint64 {
	return Size(n) * entryBytes
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.keys)
}

// Deck returns a copy of the cards the table was built over, in code order.
func (t *Table) Deck() []poker.Card {
	out := make([]poker.Card, len(t.deck))
	copy(out, t.deck)
	return out
}

// Keys returns the key array. Callers must not modify it.
func (t *Table) Keys() []Key {
	return t.keys
}

// Rankings returns the packed hand values, aligned with Keys. Callers must
// not modify it.
func (t *Table) Rankings() []uint32 {
	return t.rankings
}

// Lookup returns the precomputed value of seven distinct cards given in any
// order.
func (t *Table) Lookup(cards []poker.Card) (poker.HandValue, error) {
	key, err := NewKey(cards)
	if err != nil {
		return poker.HandValue{}, err
	}
	return t.Get(key)
}

// Get returns the precomputed value for a canonical key.
func (t *Table) Get(key Key) (poker.HandValue, error) {
	addr, err := t.address(key)
	if err != nil {
		return poker.HandValue{}, err
	}
	if t.keys[addr] != key {
		return poker.HandValue{}, fmt.Errorf("%w: %v found at address %d holding %v",
			ErrKeyEncodingMismatch, key, addr, t.keys[addr])
	}
	v, err := poker.UnpackHandValue(t.rankings[addr])
	if err != nil {
		return poker.HandValue{}, fmt.Errorf("entry %d for %v: %w", addr, key, err)
	}
	return v, nil
}

// address computes the entry position of key without reading the table.
func (t *Table) address(key Key) (uint64, error) {
	if key>>(8*poker.HandSize) != 0 {
		return 0, fmt.Errorf("%w: key %#x uses more than 56 bits", ErrKeyEncodingMismatch, uint64(key))
	}

	codes := key.Codes()
	var idx [poker.HandSize]int
	for i, c := range codes {
		if c >= poker.DeckSize {
			return 0, fmt.Errorf("%w: code %d in key %#x", ErrKeyEncodingMismatch, c, uint64(key))
		}
		if i > 0 && c <= codes[i-1] {
			return 0, fmt.Errorf("%w: key %#x is not canonical", ErrKeyEncodingMismatch, uint64(key))
		}
		p := t.index[c]
		if p < 0 {
			card, _ := poker.CardFromCode(c)
			return 0, fmt.Errorf("%w: %v", ErrUnknownCard, card)
		}
		idx[i] = int(p)
	}

	addr := Rank(len(t.deck), idx[:])
	if addr >= uint64(len(t.keys)) {
		return 0, fmt.Errorf("%w: address %d beyond %d entries", ErrKeyEncodingMismatch, addr, len(t.keys))
	}
	return addr, nil
}

// Verify checks every entry: each key must be canonical and sit at its own
// address, and each packed value must decode.
func (t *Table) Verify() error {
	for i, key := range t.keys {
		addr, err := t.address(key)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if addr != uint64(i) {
			return fmt.Errorf("%w: entry %d holds %v which belongs at %d",
				ErrKeyEncodingMismatch, i, key, addr)
		}
		if _, err := poker.UnpackHandValue(t.rankings[i]); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

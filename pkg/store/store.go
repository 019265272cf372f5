// Package store persists lookup tables in a SQLite database so they can be
// reloaded instead of rebuilt on every start.
package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/decred/slog"
	_ "github.com/mattn/go-sqlite3"

	"github.com/vctt94/pokerlut/pkg/lookup"
	"github.com/vctt94/pokerlut/pkg/poker"
	"github.com/vctt94/pokerlut/pkg/store/internal/db"
)

// ChunkEntries is the number of table entries written per database row.
const ChunkEntries = 1 << 20

var (
	// ErrNoTable is returned by LoadTable when nothing has been saved.
	ErrNoTable = db.ErrNoTable

	// ErrCorruptTable is returned when stored data does not reassemble
	// into a valid table.
	ErrCorruptTable = errors.New("corrupt stored table")
)

// Store defines the interface for table persistence.
type Store interface {
	// SaveTable replaces any stored table with t.
	SaveTable(ctx context.Context, t *lookup.Table) error
	// LoadTable reads the stored table back. With verify set, every
	// entry is checked to sit at its own address.
	LoadTable(ctx context.Context, verify bool) (*lookup.Table, error)
	// Close closes the database connection
	Close() error
}

type sqliteStore struct {
	db  *db.DB
	log slog.Logger
}

// Open opens or creates the database at dbPath.
func Open(dbPath string, log slog.Logger) (Store, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %v", err)
	}

	d, err := db.NewDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}
	if log == nil {
		log = slog.Disabled
	}
	return &sqliteStore{db: d, log: log}, nil
}

func (s *sqliteStore) SaveTable(ctx context.Context, t *lookup.Table) error {
	deck := t.Deck()
	codes := make([]byte, len(deck))
	for i, card := range deck {
		codes[i] = card.Code()
	}

	keys, rankings := t.Keys(), t.Rankings()
	var seq int64
	next := func() (db.Chunk, bool, error) {
		lo := int(seq) * ChunkEntries
		if lo >= len(keys) {
			return db.Chunk{}, false, nil
		}
		hi := min(lo+ChunkEntries, len(keys))
		c := db.Chunk{
			Seq:      seq,
			Keys:     encodeKeys(keys[lo:hi]),
			Rankings: encodeRankings(rankings[lo:hi]),
		}
		seq++
		if seq%16 == 0 {
			s.log.Debugf("Wrote %d of %d entries", hi, len(keys))
		}
		return c, true, ctx.Err()
	}

	meta := db.TableMeta{Deck: codes, Entries: int64(len(keys))}
	if err := s.db.ReplaceTable(ctx, meta, next); err != nil {
		return fmt.Errorf("failed to save table: %w", err)
	}
	s.log.Infof("Saved table: %d entries in %d chunks", len(keys), seq)
	return nil
}

func (s *sqliteStore) LoadTable(ctx context.Context, verify bool) (*lookup.Table, error) {
	meta, err := s.db.LoadMeta(ctx)
	if err != nil {
		return nil, err
	}

	deck := make([]poker.Card, len(meta.Deck))
	for i, code := range meta.Deck {
		card, err := poker.CardFromCode(code)
		if err != nil {
			return nil, fmt.Errorf("%w: deck: %v", ErrCorruptTable, err)
		}
		deck[i] = card
	}

	want := lookup.Size(len(deck))
	if meta.Entries < 0 || uint64(meta.Entries) != want {
		return nil, fmt.Errorf("%w: %d entries recorded for a %d-card deck, want %d",
			ErrCorruptTable, meta.Entries, len(deck), want)
	}

	keys := make([]lookup.Key, 0, want)
	rankings := make([]uint32, 0, want)
	var nextSeq int64
	err = s.db.ForEachChunk(ctx, func(c db.Chunk) error {
		if c.Seq != nextSeq {
			return fmt.Errorf("%w: chunk %d out of sequence, want %d", ErrCorruptTable, c.Seq, nextSeq)
		}
		nextSeq++
		if len(c.Keys)%8 != 0 || len(c.Rankings)%4 != 0 || len(c.Keys)/8 != len(c.Rankings)/4 {
			return fmt.Errorf("%w: chunk %d has mismatched sizes", ErrCorruptTable, c.Seq)
		}
		if uint64(len(keys)+len(c.Keys)/8) > want {
			return fmt.Errorf("%w: more than %d entries stored", ErrCorruptTable, want)
		}
		keys = decodeKeys(keys, c.Keys)
		rankings = decodeRankings(rankings, c.Rankings)
		return ctx.Err()
	})
	if err != nil {
		return nil, err
	}
	if nextSeq != meta.Chunks {
		return nil, fmt.Errorf("%w: read %d chunks, meta records %d", ErrCorruptTable, nextSeq, meta.Chunks)
	}

	t, err := lookup.NewTableFromParts(deck, keys, rankings)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptTable, err)
	}
	if verify {
		if err := t.Verify(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptTable, err)
		}
	}
	s.log.Infof("Loaded table: %d entries saved %v", t.Len(), meta.CreatedAt)
	return t, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func encodeKeys(keys []lookup.Key) []byte {
	b := make([]byte, 0, len(keys)*8)
	for _, k := range keys {
		b = binary.LittleEndian.AppendUint64(b, uint64(k))
	}
	return b
}

func decodeKeys(dst []lookup.Key, b []byte) []lookup.Key {
	for i := 0; i+8 <= len(b); i += 8 {
		dst = append(dst, lookup.Key(binary.LittleEndian.Uint64(b[i:])))
	}
	return dst
}

func encodeRankings(rankings []uint32) []byte {
	b := make([]byte, 0, len(rankings)*4)
	for _, r := range rankings {
		b = binary.LittleEndian.AppendUint32(b, r)
	}
	return b
}

func decodeRankings(dst []uint32, b []byte) []uint32 {
	for i := 0; i+4 <= len(b); i += 4 {
		dst = append(dst, binary.LittleEndian.Uint32(b[i:]))
	}
	return dst
}

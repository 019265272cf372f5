package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNoTable is returned when no table has been saved.
var ErrNoTable = errors.New("no table stored")

// DB represents the database connection
type DB struct {
	*sql.DB
}

// TableMeta describes the stored table.
type TableMeta struct {
	Deck      []byte // card codes, ascending
	Entries   int64
	Chunks    int64
	CreatedAt time.Time
}

// Chunk is one run of consecutive entries, encoded by the caller.
type Chunk struct {
	Seq      int64
	Keys     []byte
	Rankings []byte
}

// NewDB creates a new database connection
func NewDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary database tables
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS lut_meta (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			deck BLOB NOT NULL,
			entries INTEGER NOT NULL,
			chunks INTEGER NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS lut_chunks (
			seq INTEGER PRIMARY KEY,
			keys BLOB NOT NULL,
			rankings BLOB NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	return nil
}

// ReplaceTable deletes any stored table and writes meta and every chunk
// produced by next in one transaction. next returns false when done.
func (db *DB) ReplaceTable(ctx context.Context, meta TableMeta, next func() (Chunk, bool, error)) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lut_chunks`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM lut_meta`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO lut_chunks (seq, keys, rankings) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	var chunks int64
	for {
		chunk, ok, err := next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if _, err := stmt.ExecContext(ctx, chunk.Seq, chunk.Keys, chunk.Rankings); err != nil {
			return fmt.Errorf("failed to insert chunk %d: %v", chunk.Seq, err)
		}
		chunks++
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO lut_meta (id, deck, entries, chunks)
		VALUES (1, ?, ?, ?)
	`, meta.Deck, meta.Entries, chunks)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadMeta returns the metadata of the stored table.
func (db *DB) LoadMeta(ctx context.Context) (*TableMeta, error) {
	var meta TableMeta
	err := db.QueryRowContext(ctx, `
		SELECT deck, entries, chunks, created_at FROM lut_meta WHERE id = 1
	`).Scan(&meta.Deck, &meta.Entries, &meta.Chunks, &meta.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNoTable
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load table meta: %v", err)
	}
	return &meta, nil
}

// ForEachChunk calls fn for every stored chunk in sequence order.
func (db *DB) ForEachChunk(ctx context.Context, fn func(Chunk) error) error {
	rows, err := db.QueryContext(ctx, `SELECT seq, keys, rankings FROM lut_chunks ORDER BY seq`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c Chunk
		if err := rows.Scan(&c.Seq, &c.Keys, &c.Rankings); err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

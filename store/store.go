// Package store provides SQLite-based persistence for named save slots.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrSlotNotFound is returned when a slot has never been written.
var ErrSlotNotFound = errors.New("save slot not found")

// DefaultSlot is used when the player does not name one.
const DefaultSlot = "quicksave"

// Meta describes a stored save without its payload.
type Meta struct {
	ID      string
	Slot    string
	Turn    int
	Room    string
	SavedAt time.Time
}

// Store wraps the SQLite connection holding save slots.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the save database at path. Use ":memory:" for a
// throwaway store.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating save directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening save database: %w", err)
	}
	// An in-memory database lives and dies with its connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("configuring save database: %w", err)
		}
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating save database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS saves (
		slot TEXT PRIMARY KEY COLLATE NOCASE,
		id TEXT NOT NULL,
		turn INTEGER NOT NULL DEFAULT 0,
		room TEXT NOT NULL DEFAULT '',
		data BLOB NOT NULL,
		saved_at INTEGER NOT NULL
	)`)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put writes data to a slot, replacing whatever was there. Each write gets
// a fresh save ID. The returned Meta is what List will report.
func (s *Store) Put(ctx context.Context, slot string, data []byte, meta Meta) (Meta, error) {
	if slot == "" {
		slot = DefaultSlot
	}
	meta.Slot = slot
	meta.ID = uuid.NewString()
	meta.SavedAt = s.now().UTC().Truncate(time.Millisecond)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saves (slot, id, turn, room, data, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			id = excluded.id,
			turn = excluded.turn,
			room = excluded.room,
			data = excluded.data,
			saved_at = excluded.saved_at`,
		meta.Slot, meta.ID, meta.Turn, meta.Room, data, meta.SavedAt.UnixMilli())
	if err != nil {
		return Meta{}, fmt.Errorf("writing slot %q: %w", slot, err)
	}
	return meta, nil
}

// Get returns the payload stored in a slot.
func (s *Store) Get(ctx context.Context, slot string) ([]byte, error) {
	if slot == "" {
		slot = DefaultSlot
	}
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM saves WHERE slot = ?`, slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %q: %w", slot, err)
	}
	return data, nil
}

// List returns every slot, most recently saved first.
func (s *Store) List(ctx context.Context) ([]Meta, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slot, id, turn, room, saved_at
		FROM saves
		ORDER BY saved_at DESC, slot`)
	if err != nil {
		return nil, fmt.Errorf("listing slots: %w", err)
	}
	defer rows.Close()

	var out []Meta
	for rows.Next() {
		var m Meta
		var savedAt int64
		if err := rows.Scan(&m.Slot, &m.ID, &m.Turn, &m.Room, &savedAt); err != nil {
			return nil, fmt.Errorf("scanning slot: %w", err)
		}
		m.SavedAt = time.UnixMilli(savedAt).UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}

// Delete removes a slot. Deleting a missing slot is ErrSlotNotFound.
func (s *Store) Delete(ctx context.Context, slot string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, slot)
	if err != nil {
		return fmt.Errorf("deleting slot %q: %w", slot, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrSlotNotFound, slot)
	}
	return nil
}

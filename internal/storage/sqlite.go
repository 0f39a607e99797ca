// Package storage provides SQLite-based persistence for save slots and
// finished runs. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// DefaultSlot is the slot used by the in-game save and load keys.
const DefaultSlot = 1

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SaveData is one save slot: the room, the player position and a reserved
// integer.
type SaveData struct {
	Slot    int
	RoomID  int
	Pos     core.Vec2
	Extra   int
	SavedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// SSH sessions share one store; a single connection serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			slot INTEGER PRIMARY KEY,
			room_id INTEGER NOT NULL,
			pos_x REAL NOT NULL,
			pos_y REAL NOT NULL,
			extra INTEGER NOT NULL DEFAULT 0,
			saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score INTEGER NOT NULL,
			room_id INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT 'normal',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame writes the default slot.
func (s *Store) SaveGame(roomID int, pos core.Vec2, extra int) error {
	return s.Save(SaveData{Slot: DefaultSlot, RoomID: roomID, Pos: pos, Extra: extra})
}

// LoadGame reads the default slot. ok is false when nothing was saved.
func (s *Store) LoadGame() (SaveData, bool, error) {
	return s.Load(DefaultSlot)
}

// Save inserts or replaces a slot. A zero slot means DefaultSlot.
func (s *Store) Save(d SaveData) error {
	if d.Slot == 0 {
		d.Slot = DefaultSlot
	}
	_, err := s.db.Exec(
		`INSERT INTO saves (slot, room_id, pos_x, pos_y, extra, saved_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
			room_id = excluded.room_id,
			pos_x = excluded.pos_x,
			pos_y = excluded.pos_y,
			extra = excluded.extra,
			saved_at = excluded.saved_at`,
		d.Slot, d.RoomID, d.Pos.X, d.Pos.Y, d.Extra,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save slot %d: %w", d.Slot, err)
	}
	return nil
}

// Load reads a slot. ok is false when the slot is empty.
func (s *Store) Load(slot int) (SaveData, bool, error) {
	d := SaveData{Slot: slot}
	var savedAt any
	err := s.db.QueryRow(
		"SELECT room_id, pos_x, pos_y, extra, saved_at FROM saves WHERE slot = ?",
		slot,
	).Scan(&d.RoomID, &d.Pos.X, &d.Pos.Y, &d.Extra, &savedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return SaveData{}, false, nil
	}
	if err != nil {
		return SaveData{}, false, fmt.Errorf("storage: cannot load slot %d: %w", slot, err)
	}
	d.SavedAt = parseTime(savedAt)
	return d, true, nil
}

// List returns every saved slot ordered by slot number.
func (s *Store) List() ([]SaveData, error) {
	rows, err := s.db.Query(
		"SELECT slot, room_id, pos_x, pos_y, extra, saved_at FROM saves ORDER BY slot",
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var saves []SaveData
	for rows.Next() {
		var d SaveData
		var savedAt any
		if err := rows.Scan(&d.Slot, &d.RoomID, &d.Pos.X, &d.Pos.Y, &d.Extra, &savedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		d.SavedAt = parseTime(savedAt)
		saves = append(saves, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return saves, nil
}

// Clear deletes every save slot.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM saves"); err != nil {
		return fmt.Errorf("storage: cannot clear saves: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

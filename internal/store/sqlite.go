// Package store persists visitor theme preferences in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"

	"github.com/AlainJulien/portfolio/internal/theme"
)

const schema = `
CREATE TABLE IF NOT EXISTS preferences (
	visitor_id TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (visitor_id, key)
)`

// SQLite is a preferences database shared by all visitors.
type SQLite struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. Use ":memory:" for
// a throwaway database.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open preferences database: %w", err)
	}
	// One connection keeps ":memory:" databases coherent and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create preferences table: %w", err)
	}
	log.Printf("Preferences database ready at %s", path)
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// ForVisitor returns the visitor's slice of the database as a theme.Store.
func (s *SQLite) ForVisitor(visitorID string) theme.Store {
	return &visitorStore{db: s.db, visitorID: visitorID}
}

type visitorStore struct {
	db        *sql.DB
	visitorID string
}

func (v *visitorStore) Load(key string) (string, error) {
	var value string
	err := v.db.QueryRow(
		`SELECT value FROM preferences WHERE visitor_id = ? AND key = ?`,
		v.visitorID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", theme.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load %s for visitor %s: %w", key, v.visitorID, err)
	}
	return value, nil
}

func (v *visitorStore) Save(key, value string) error {
	_, err := v.db.Exec(`
		INSERT INTO preferences (visitor_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (visitor_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, v.visitorID, key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save %s for visitor %s: %w", key, v.visitorID, err)
	}
	return nil
}

// Counts summarizes stored preferences.
type Counts struct {
	Visitors int64            `json:"visitors"`
	ByTheme  map[string]int64 `json:"by_theme"`
}

// PreferenceCounts tallies visitors by their stored theme preference.
func (s *SQLite) PreferenceCounts(ctx context.Context) (*Counts, error) {
	counts := &Counts{ByTheme: make(map[string]int64)}
	for _, p := range theme.Preferences {
		counts.ByTheme[p.String()] = 0
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT value, COUNT(*) FROM preferences
		WHERE key = ?
		GROUP BY value
	`, theme.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("count preferences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var value string
		var n int64
		if err := rows.Scan(&value, &n); err != nil {
			return nil, fmt.Errorf("scan preference count: %w", err)
		}
		counts.ByTheme[value] += n
		counts.Visitors += n
	}
	return counts, rows.Err()
}

// Prune removes preferences not updated within retention.
func (s *SQLite) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).Unix()
	result, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune preferences: %w", err)
	}
	removed, _ := result.RowsAffected()
	if removed > 0 {
		log.Printf("Removed %d preferences older than %s", removed, retention)
	}
	return removed, nil
}

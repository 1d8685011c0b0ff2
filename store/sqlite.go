package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/holdings"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL DEFAULT (strftime('%s','now'))
)`

// SQLite stores slots as rows of a key/value table.
type SQLite struct {
	db   *sql.DB
	slot string
	log  zerolog.Logger
}

var _ holdings.Store = (*SQLite)(nil)

// OpenSQLite opens (or creates) the database at path and prepares the key/value table.
func OpenSQLite(path, slot string, log zerolog.Logger) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	// a single writer is all the slot ever needs
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}
	return &SQLite{
		db:   db,
		slot: slot,
		log:  log.With().Str("component", "store").Str("store", "sqlite").Logger(),
	}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error { return s.db.Close() }

// Load reads the slot's row. A missing row is an empty portfolio.
func (s *SQLite) Load(ctx context.Context) (holdings.Portfolio, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", s.slot).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		s.log.Debug().Str("slot", s.slot).Msg("no snapshot yet")
		return holdings.Portfolio{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %q: %w", s.slot, err)
	}
	p, err := holdings.UnmarshalPortfolio([]byte(value))
	if err != nil {
		return nil, fmt.Errorf("slot %q: %w", s.slot, err)
	}
	return p, nil
}

// Save upserts the slot's row in a single statement.
func (s *SQLite) Save(ctx context.Context, p holdings.Portfolio) error {
	content, err := holdings.MarshalPortfolio(p)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, strftime('%s','now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.slot, string(content))
	if err != nil {
		return fmt.Errorf("failed to store slot %q: %w", s.slot, err)
	}
	s.log.Debug().Str("slot", s.slot).Int("holdings", len(p)).Msg("snapshot saved")
	return nil
}

package prefs

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLite keeps values in a single prefs table.
type SQLite struct {
	db   *sql.DB
	path string
}

var (
	sqliteCache   = make(map[string]*SQLite)
	sqliteCacheMu sync.Mutex
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS prefs (
	owner      TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now')),
	PRIMARY KEY (owner, key)
)`

// OpenSQLite opens (or returns a cached) prefs database at path, creating it and its
// parent directory if needed.
func OpenSQLite(path string) (*SQLite, error) {
	sqliteCacheMu.Lock()
	defer sqliteCacheMu.Unlock()

	if s, ok := sqliteCache[path]; ok {
		return s, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating prefs directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening prefs database: %w", err)
	}
	// One writer at a time; sqlite serializes anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating prefs table: %w", err)
	}

	s := &SQLite{db: db, path: path}
	sqliteCache[path] = s
	return s, nil
}

func (s *SQLite) Get(owner, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM prefs WHERE owner = ? AND key = ?`, owner, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLite) Put(owner, key, value string) error {
	_, err := s.db.Exec(`INSERT INTO prefs (owner, key, value, updated_at)
		VALUES (?, ?, ?, strftime('%s', 'now'))
		ON CONFLICT(owner, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		owner, key, value)
	return err
}

// Keys lists every key stored for owner, sorted.
func (s *SQLite) Keys(owner string) ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM prefs WHERE owner = ? ORDER BY key ASC`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *SQLite) Close() error {
	sqliteCacheMu.Lock()
	delete(sqliteCache, s.path)
	sqliteCacheMu.Unlock()
	return s.db.Close()
}

//go:build cgo

package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore is a Recorder backed by a SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens or creates the journal at path.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	sqlStmt := `CREATE TABLE IF NOT EXISTS runs(
		run_id TEXT,
		artist TEXT,
		album TEXT,
		song TEXT,
		status TEXT,
		reason TEXT,
		url TEXT,
		path TEXT,
		at INTEGER
	);
	CREATE INDEX IF NOT EXISTS runs_at ON runs(at);`
	if _, err := db.Exec(sqlStmt); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize journal %s: %w", path, err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record appends e.
func (s *SQLiteStore) Record(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (run_id, artist, album, song, status, reason, url, path, at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		e.RunID, e.Artist, e.Album, e.Song, e.Status, e.Reason, e.URL, e.Path, e.At.UnixNano())
	return err
}

// Recent returns up to limit entries, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT run_id, artist, album, song, status, reason, url, path, at FROM runs ORDER BY at DESC, rowid DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at int64
		if err := rows.Scan(&e.RunID, &e.Artist, &e.Album, &e.Song, &e.Status, &e.Reason, &e.URL, &e.Path, &at); err != nil {
			return nil, err
		}
		e.At = time.Unix(0, at).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

//go:build !cgo

package history

import "context"

// SQLiteStore is unavailable without cgo.
type SQLiteStore struct{}

// Open always fails with ErrUnavailable.
func Open(path string) (*SQLiteStore, error) {
	return nil, ErrUnavailable
}

func (s *SQLiteStore) Close() error { return nil }

func (s *SQLiteStore) Record(ctx context.Context, e Entry) error { return ErrUnavailable }

func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	return nil, ErrUnavailable
}

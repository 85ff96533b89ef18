//go:build cgo

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestSQLiteStore_RecordAndRecent(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, song := range []string{"first", "second", "third"} {
		e := Entry{RunID: "run", Artist: "A", Album: "B", Song: song, Status: "placed", At: base.Add(time.Duration(i) * time.Minute)}
		if err := store.Record(ctx, e); err != nil {
			t.Fatalf("Record() error: %v", err)
		}
	}

	entries, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Song != "third" || entries[1].Song != "second" {
		t.Errorf("got %q, %q; want newest first", entries[0].Song, entries[1].Song)
	}
	if !entries[0].At.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("At = %v", entries[0].At)
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Record(ctx, Entry{RunID: "r", Song: "kept", At: time.Now()}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer store.Close()

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Song != "kept" {
		t.Errorf("entries = %+v", entries)
	}
}

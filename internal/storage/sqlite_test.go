package storage_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/blink/internal/storage"
)

func TestSQLiteStorage_EmptyDatabase(t *testing.T) {
	s, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer s.Close()

	blinks, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("failed to list empty db: %v", err)
	}
	if blinks == nil || len(blinks) != 0 {
		t.Errorf("expected empty non-nil list, got %v", blinks)
	}

	version, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if version != 2 {
		t.Errorf("expected schema version 2, got %d", version)
	}
}

func TestSQLiteStorage_CreatesDirectory(t *testing.T) {
	s, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "nested", "dir", "blinks.db"))
	if err != nil {
		t.Fatalf("failed to create storage with nested dir: %v", err)
	}
	defer s.Close()
}

func TestSQLiteStorage_MigratesV1Database(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	_, err = db.Exec(`
		CREATE TABLE schema_version (version INTEGER PRIMARY KEY);
		CREATE TABLE blinks (
			id TEXT PRIMARY KEY NOT NULL,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			reminder_date TEXT,
			is_completed INTEGER NOT NULL DEFAULT 0,
			completed_at TEXT,
			created_on TEXT NOT NULL
		);
		INSERT INTO schema_version (version) VALUES (1);
		INSERT INTO blinks (id, type, title, created_on) VALUES ('b1', 'thought', 'Old', '2025-01-01T00:00:00Z');
	`)
	if err != nil {
		t.Fatalf("failed to seed v1 schema: %v", err)
	}
	db.Close()

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	defer s.Close()

	blinks, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(blinks) != 1 || blinks[0].Title != "Old" {
		t.Errorf("expected existing row to survive migration, got %+v", blinks)
	}

	if err := s.Set(context.Background(), "k", "v"); err != nil {
		t.Errorf("expected kv table after migration: %v", err)
	}
}

func TestSQLiteStorage_KV(t *testing.T) {
	ctx := context.Background()
	s, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer s.Close()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	for _, v := range []string{"first", "second"} {
		if err := s.Set(ctx, "last_cleanup_timestamp", v); err != nil {
			t.Fatalf("failed to set: %v", err)
		}
	}

	v, ok, err := s.Get(ctx, "last_cleanup_timestamp")
	if err != nil || !ok || v != "second" {
		t.Errorf("expected overwritten value, got %q ok=%v err=%v", v, ok, err)
	}
}

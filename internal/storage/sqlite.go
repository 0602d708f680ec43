package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/blink/internal/model"
)

// SQLiteStorage implements Storage and KV using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the version recorded in the database.
func (s *SQLiteStorage) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return fmt.Errorf("migrate v1: %w", err)
		}
	}

	if version < 2 {
		if err := s.migrateV2(); err != nil {
			return fmt.Errorf("migrate v2: %w", err)
		}
	}

	return nil
}

// migrateV1 creates the blinks table.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS blinks (
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

		CREATE INDEX IF NOT EXISTS idx_blinks_type ON blinks(type);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds the kv table for local state.
func (s *SQLiteStorage) migrateV2() error {
	migration := `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY NOT NULL,
			value TEXT NOT NULL
		);
		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

const blinkColumns = `id, type, title, description, source, author,
	reminder_date, is_completed, completed_at, created_on`

// List reads all Blinks, oldest first.
func (s *SQLiteStorage) List(ctx context.Context) ([]model.Blink, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+blinkColumns+` FROM blinks ORDER BY created_on`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blinks := []model.Blink{}
	for rows.Next() {
		b, err := scanBlink(rows)
		if err != nil {
			return nil, err
		}
		blinks = append(blinks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blinks, nil
}

func (s *SQLiteStorage) Create(ctx context.Context, b model.Blink) (model.Blink, error) {
	if b.ID == "" {
		b.ID = model.GenerateID()
	}
	if b.CreatedOn.IsZero() {
		b.CreatedOn = s.now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blinks (`+blinkColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.ID, string(b.Type), b.Title, b.Description, b.Source, b.Author,
		formatTime(b.ReminderDate), boolToInt(b.IsCompleted), formatTime(b.CompletedAt),
		b.CreatedOn.Format(time.RFC3339),
	)
	if err != nil {
		return model.Blink{}, err
	}
	return b, nil
}

func (s *SQLiteStorage) Update(ctx context.Context, b model.Blink) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE blinks SET
			type = ?, title = ?, description = ?, source = ?, author = ?,
			reminder_date = ?, is_completed = ?, completed_at = ?
		WHERE id = ?
	`,
		string(b.Type), b.Title, b.Description, b.Source, b.Author,
		formatTime(b.ReminderDate), boolToInt(b.IsCompleted), formatTime(b.CompletedAt),
		b.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, b.ID)
}

func (s *SQLiteStorage) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blinks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// ToggleCompletion flips completion inside a transaction.
func (s *SQLiteStorage) ToggleCompletion(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var completed int
	err = tx.QueryRowContext(ctx, `SELECT is_completed FROM blinks WHERE id = ?`, id).Scan(&completed)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return err
	}

	var completedAt *string
	if completed == 0 {
		v := s.now().Format(time.RFC3339)
		completedAt = &v
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE blinks SET is_completed = ?, completed_at = ? WHERE id = ?`,
		1-completed, completedAt, id,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// Get implements KV.
func (s *SQLiteStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set implements KV.
func (s *SQLiteStorage) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlink(row rowScanner) (model.Blink, error) {
	var (
		b            model.Blink
		typ          string
		reminderDate sql.NullString
		completed    int
		completedAt  sql.NullString
		createdOn    string
	)
	if err := row.Scan(
		&b.ID, &typ, &b.Title, &b.Description, &b.Source, &b.Author,
		&reminderDate, &completed, &completedAt, &createdOn,
	); err != nil {
		return model.Blink{}, err
	}

	b.Type = model.Type(typ)
	b.IsCompleted = completed == 1
	b.ReminderDate = parseTime(reminderDate)
	b.CompletedAt = parseTime(completedAt)
	b.CreatedOn, _ = time.Parse(time.RFC3339, createdOn)

	return b, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

func parseTime(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

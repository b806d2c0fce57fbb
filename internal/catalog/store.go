package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"baldr/internal/media"
	"baldr/internal/mediauri"
)

// SQLiteStore persists catalog records in SQLite. Refs and uuids are stored
// without their scheme prefix.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Entry is the summary row returned by List.
type Entry struct {
	ID        string    `json:"id"`
	Ref       string    `json:"ref"`
	UUID      string    `json:"uuid"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Path      string    `json:"path"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OpenStore opens or creates the catalog database at dbPath.
func OpenStore(dbPath string) (*SQLiteStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, errors.New("catalog db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &SQLiteStore{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

// Upsert inserts rec or replaces the record with the same ref. created reports
// whether a new row was written.
func (s *SQLiteStore) Upsert(ctx context.Context, rec *media.Record) (created bool, err error) {
	if err := ValidateRecord(rec); err != nil {
		return false, err
	}
	stored := *rec
	stored.Ref = mediauri.RemoveScheme(rec.Ref)
	stored.UUID = mediauri.RemoveScheme(rec.UUID)

	data, err := json.Marshal(&stored)
	if err != nil {
		return false, fmt.Errorf("marshal record: %w", err)
	}
	ext := stored.Extension
	if ext == "" {
		ext = media.ExtensionOf(firstNonEmpty(stored.Filename, stored.Path))
	}
	category := string(media.CategoryFromExtension(ext))
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin upsert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id string
	err = tx.QueryRowContext(ctx, `SELECT id FROM assets WHERE ref = ?`, stored.Ref).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		created = true
		_, err = tx.ExecContext(ctx,
			`INSERT INTO assets (id, ref, uuid, title, category, path, record_json, created_at, updated_at)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ulid.Make().String(), stored.Ref, stored.UUID, nullableString(stored.Title),
			category, nullableString(stored.Path), string(data), timestamp, timestamp,
		)
		if err != nil {
			return false, fmt.Errorf("insert asset %q: %w", stored.Ref, err)
		}
	case err != nil:
		return false, fmt.Errorf("lookup asset %q: %w", stored.Ref, err)
	default:
		_, err = tx.ExecContext(ctx,
			`UPDATE assets SET uuid = ?, title = ?, category = ?, path = ?, record_json = ?, updated_at = ?
             WHERE id = ?`,
			stored.UUID, nullableString(stored.Title), category, nullableString(stored.Path),
			string(data), timestamp, id,
		)
		if err != nil {
			return false, fmt.Errorf("update asset %q: %w", stored.Ref, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit upsert: %w", err)
	}
	return created, nil
}

// FetchAssetByAuthority implements Client.
func (s *SQLiteStore) FetchAssetByAuthority(ctx context.Context, uri mediauri.URI) (*media.Record, error) {
	column := "ref"
	if uri.Scheme == mediauri.SchemeUUID {
		column = "uuid"
	}
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT record_json FROM assets WHERE `+column+` = ?`, uri.Authority).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{URI: uri.WithoutFragment()}
	}
	if err != nil {
		return nil, fmt.Errorf("query asset %s: %w", uri.WithoutFragment(), err)
	}
	var rec media.Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("decode asset %s: %w", uri.WithoutFragment(), err)
	}
	return &rec, nil
}

// List returns all entries ordered by ref.
func (s *SQLiteStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ref, uuid, title, category, path, updated_at FROM assets ORDER BY ref`)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			title      sql.NullString
			path       sql.NullString
			updatedRaw string
		)
		if err := rows.Scan(&e.ID, &e.Ref, &e.UUID, &title, &e.Category, &path, &updatedRaw); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		e.Title = title.String
		e.Path = path.String
		if ts, err := time.Parse(time.RFC3339Nano, updatedRaw); err == nil {
			e.UpdatedAt = ts
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the record with the given ref. A missing ref is a
// *NotFoundError.
func (s *SQLiteStore) Delete(ctx context.Context, ref string) error {
	ref = mediauri.RemoveScheme(ref)
	res, err := s.db.ExecContext(ctx, `DELETE FROM assets WHERE ref = ?`, ref)
	if err != nil {
		return fmt.Errorf("delete asset %q: %w", ref, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete asset %q: %w", ref, err)
	}
	if n == 0 {
		return &NotFoundError{URI: mediauri.SchemeRef + ":" + ref}
	}
	return nil
}

// Count returns the number of stored records.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM assets`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count assets: %w", err)
	}
	return n, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

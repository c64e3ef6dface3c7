package spiderkit

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStorage persists objects to a SQLite database, one row per object
// with the attribute map stored as JSON. It gives small crawls durable
// output without an external service.
type SQLiteStorage struct {
	db      *sql.DB
	encoder Encoder
}

// OpenSQLiteStorage opens (or creates) the database at path and ensures the
// schema exists.
func OpenSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	// SQLite supports a single writer; the spider is single-threaded anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS objects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		attrs TEXT NOT NULL,
		stored_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_objects_kind ON objects(kind);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStorage{db: db, encoder: &JSONEncoder{}}, nil
}

// Put implements Storage.
func (s *SQLiteStorage) Put(o *Object) error {
	raw, err := s.encoder.Encode(o.Attrs())
	if err != nil {
		return fmt.Errorf("encode object: %w", err)
	}
	if _, err := s.db.Exec(
		"INSERT INTO objects (kind, attrs) VALUES (?, ?)",
		o.Kind(), string(raw),
	); err != nil {
		return fmt.Errorf("store object: %w", err)
	}
	return nil
}

// Objects loads the objects stored under kind, in insertion order.
func (s *SQLiteStorage) Objects(kind string) ([]*Object, error) {
	rows, err := s.db.Query(
		"SELECT attrs FROM objects WHERE kind = ? ORDER BY id", kind)
	if err != nil {
		return nil, fmt.Errorf("query objects: %w", err)
	}
	defer rows.Close()

	var out []*Object
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan object: %w", err)
		}
		attrs := make(map[string]any)
		if err := s.encoder.Decode([]byte(raw), &attrs); err != nil {
			return nil, fmt.Errorf("decode object: %w", err)
		}
		out = append(out, NewObject(kind, attrs))
	}
	return out, rows.Err()
}

// CountByKind returns the number of stored objects per kind.
func (s *SQLiteStorage) CountByKind() (map[string]int, error) {
	rows, err := s.db.Query("SELECT kind, COUNT(*) FROM objects GROUP BY kind")
	if err != nil {
		return nil, fmt.Errorf("count objects: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out[kind] = n
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Package store persists encoded statements in a local SQLite stash.
// Each statement is saved under a caller-chosen name together with its
// serialized document and a fingerprint of that document.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/leapstack-labs/quarry/pkg/ast"
)

// ErrNotFound is returned when no statement is stashed under a name.
var ErrNotFound = errors.New("statement not found")

// cacheEntries bounds the read-through record cache.
const cacheEntries = 128

// Record is one stashed statement row.
type Record struct {
	ID          string
	Name        string
	StmtType    string
	Fingerprint uint64
	Document    []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Decode rebuilds the statement from the stored document. The returned
// ParseResult owns the statement and any predicate expressions the
// document referenced by handle.
func (r *Record) Decode() (ast.Statement, *ast.ParseResult, error) {
	res := ast.NewParseResult()
	stmt, _, err := ast.DecodeStatement(r.Document, res)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode stashed statement %q: %w", r.Name, err)
	}
	res.AddStatement(stmt)
	return stmt, res, nil
}

// Store is a SQLite-backed stash of encoded statements.
type Store struct {
	db   *sql.DB
	path string

	mu    sync.Mutex
	cache *lru.Cache
}

// Open opens (or creates) the stash database at path.
// Use ":memory:" for an in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stash database: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection gets its own in-memory database, so the
		// stash must stay on a single connection.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping stash database: %w", err)
	}

	s := NewWithDB(db)
	s.path = path
	return s, nil
}

// NewWithDB wraps an existing connection. The caller keeps ownership of
// migrations unless it also calls Migrate.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db, cache: lru.New(cacheEntries)}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save encodes stmt and stashes it under name, replacing any statement
// already stored there.
func (s *Store) Save(name string, stmt ast.Statement) (*Record, error) {
	if name == "" {
		return nil, fmt.Errorf("statement name must not be empty")
	}
	doc, err := ast.EncodeStatement(stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to encode statement %q: %w", name, err)
	}

	now := time.Now().UTC()
	rec := &Record{
		ID:          uuid.New().String(),
		Name:        name,
		StmtType:    stmt.Type().String(),
		Fingerprint: ast.Fingerprint(doc),
		Document:    doc,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var existingID string
	var createdAt time.Time
	err = s.db.QueryRow(
		`SELECT id, created_at FROM statements WHERE name = ?`, name,
	).Scan(&existingID, &createdAt)
	switch {
	case err == nil:
		rec.ID = existingID
		rec.CreatedAt = createdAt
		_, err = s.db.Exec(
			`UPDATE statements SET stmt_type = ?, fingerprint = ?, document = ?, updated_at = ? WHERE id = ?`,
			rec.StmtType, int64(rec.Fingerprint), rec.Document, rec.UpdatedAt, rec.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update statement %q: %w", name, err)
		}
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.db.Exec(
			`INSERT INTO statements (id, name, stmt_type, fingerprint, document, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.Name, rec.StmtType, int64(rec.Fingerprint), rec.Document, rec.CreatedAt, rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to save statement %q: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("failed to look up statement %q: %w", name, err)
	}

	s.cachePut(rec)
	return rec, nil
}

// GetByName returns the statement stashed under name.
func (s *Store) GetByName(name string) (*Record, error) {
	if rec, ok := s.cacheGet(name); ok {
		return rec, nil
	}

	rec := &Record{}
	var fingerprint int64
	err := s.db.QueryRow(
		`SELECT id, name, stmt_type, fingerprint, document, created_at, updated_at FROM statements WHERE name = ?`,
		name,
	).Scan(&rec.ID, &rec.Name, &rec.StmtType, &fingerprint, &rec.Document, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load statement %q: %w", name, err)
	}
	rec.Fingerprint = uint64(fingerprint)

	s.cachePut(rec)
	return rec, nil
}

// NamesByFingerprint returns the names of every statement stashed with
// the given fingerprint, ordered by name.
func (s *Store) NamesByFingerprint(fingerprint uint64) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT name FROM statements WHERE fingerprint = ? ORDER BY name`,
		int64(fingerprint),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to look up fingerprint %016x: %w", fingerprint, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan statement name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to look up fingerprint %016x: %w", fingerprint, err)
	}
	return names, nil
}

// List returns every stashed statement ordered by name.
func (s *Store) List() ([]*Record, error) {
	rows, err := s.db.Query(
		`SELECT id, name, stmt_type, fingerprint, document, created_at, updated_at FROM statements ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list statements: %w", err)
	}
	defer rows.Close()

	var recs []*Record
	for rows.Next() {
		rec := &Record{}
		var fingerprint int64
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.StmtType, &fingerprint, &rec.Document, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan statement row: %w", err)
		}
		rec.Fingerprint = uint64(fingerprint)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list statements: %w", err)
	}
	return recs, nil
}

// DeleteByName removes the statement stashed under name.
func (s *Store) DeleteByName(name string) error {
	res, err := s.db.Exec(`DELETE FROM statements WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete statement %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete statement %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	s.cacheRemove(name)
	return nil
}

func (s *Store) cacheGet(name string) (*Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.cache.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Record), true
}

func (s *Store) cachePut(rec *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Add(rec.Name, rec)
}

func (s *Store) cacheRemove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Remove(name)
}

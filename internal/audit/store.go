// Package audit records every issuance decision in a local SQLite
// database. It stores outcomes only; credential values never touch the
// store.
package audit

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration
)

// ErrNotFound is returned when a decision doesn't exist.
var ErrNotFound = errors.New("decision not found")

// Decision is one authenticated-or-denied request and its result.
type Decision struct {
	ID      int64
	Time    time.Time
	Tenant  string // normalized when known, raw otherwise
	Outcome string // e.g. "issued", "invalid_password", "assume_role_failed"
	Status  int    // HTTP status returned to the caller
}

// Store persists decisions using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenStore opens or creates a decision store at the given path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS decisions (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			ts      TEXT NOT NULL,
			tenant  TEXT NOT NULL,
			outcome TEXT NOT NULL,
			status  INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_decisions_tenant ON decisions(tenant);
		CREATE INDEX IF NOT EXISTS idx_decisions_ts ON decisions(ts);
	`)
	return err
}

// Append records a decision. A zero Time is stamped with the current time.
func (s *Store) Append(d Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.Time.IsZero() {
		d.Time = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO decisions (ts, tenant, outcome, status)
		VALUES (?, ?, ?, ?)
	`, d.Time.Format(time.RFC3339Nano), d.Tenant, d.Outcome, d.Status)
	if err != nil {
		return fmt.Errorf("inserting decision: %w", err)
	}
	return nil
}

// Recent returns the latest n decisions, newest first.
func (s *Store) Recent(n int) ([]Decision, error) {
	rows, err := s.db.Query(`
		SELECT id, ts, tenant, outcome, status
		FROM decisions ORDER BY id DESC LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("querying decisions: %w", err)
	}
	defer rows.Close()

	var decisions []Decision
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}

// Get retrieves a decision by ID.
func (s *Store) Get(id int64) (Decision, error) {
	row := s.db.QueryRow(`
		SELECT id, ts, tenant, outcome, status
		FROM decisions WHERE id = ?
	`, id)

	var d Decision
	var tsStr string
	err := row.Scan(&d.ID, &tsStr, &d.Tenant, &d.Outcome, &d.Status)
	if err == sql.ErrNoRows {
		return Decision{}, ErrNotFound
	}
	if err != nil {
		return Decision{}, fmt.Errorf("scanning decision: %w", err)
	}
	d.Time, _ = time.Parse(time.RFC3339Nano, tsStr)
	return d, nil
}

// Count returns the total number of recorded decisions.
func (s *Store) Count() int64 {
	var count int64
	s.db.QueryRow(`SELECT COUNT(*) FROM decisions`).Scan(&count)
	return count
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanDecision(rows *sql.Rows) (Decision, error) {
	var d Decision
	var tsStr string
	if err := rows.Scan(&d.ID, &tsStr, &d.Tenant, &d.Outcome, &d.Status); err != nil {
		return Decision{}, fmt.Errorf("scanning decision: %w", err)
	}
	d.Time, _ = time.Parse(time.RFC3339Nano, tsStr)
	return d, nil
}

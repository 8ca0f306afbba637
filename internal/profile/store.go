// Package profile persists the per-identity profile documents. One row per
// uid, provisioned lazily on first sign-in; Provision is race-safe so a
// double sign-in never creates two documents.
package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"glampd/pkg/types"
)

// ErrNotFound indicates no profile document exists for the uid.
var ErrNotFound = errors.New("profile not found")

// Updates carries partial profile updates. Nil fields are left untouched.
type Updates struct {
	DisplayName *string
}

// Store is the profile document contract consumed by the session adapter.
type Store interface {
	Get(ctx context.Context, uid string) (types.UserProfile, error)
	// Provision inserts the document if absent. Reports whether a row was
	// created; an existing document is left untouched.
	Provision(ctx context.Context, p types.UserProfile) (created bool, err error)
	Update(ctx context.Context, uid string, u Updates) error
	TouchLastLogin(ctx context.Context, uid string, at time.Time) error
}

// SQLStore implements Store on sqlite.
type SQLStore struct {
	db *sql.DB
}

// Open opens (and migrates) the profile database at path. Use ":memory:"
// for tests.
func Open(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open profile db: %w", err)
	}
	// One connection: keeps writes serialized and makes ":memory:" share state.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS profiles (
    uid TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    display_name TEXT NOT NULL DEFAULT '',
    role TEXT NOT NULL CHECK(role IN ('admin', 'customer')),
    created_at TIMESTAMP NOT NULL,
    last_login TIMESTAMP NOT NULL
);`); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate profile db: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLStore) Close() error { return s.db.Close() }

// Get retrieves the profile document for a uid.
func (s *SQLStore) Get(ctx context.Context, uid string) (types.UserProfile, error) {
	var p types.UserProfile
	err := s.db.QueryRowContext(ctx,
		`SELECT uid, email, display_name, role, created_at, last_login FROM profiles WHERE uid = ?`, uid).
		Scan(&p.UID, &p.Email, &p.DisplayName, &p.Role, &p.CreatedAt, &p.LastLogin)
	if err == sql.ErrNoRows {
		return types.UserProfile{}, ErrNotFound
	}
	if err != nil {
		return types.UserProfile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// Provision inserts the document if absent. Timestamps are server-assigned
// here when the caller left them zero.
func (s *SQLStore) Provision(ctx context.Context, p types.UserProfile) (bool, error) {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.LastLogin.IsZero() {
		p.LastLogin = now
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (uid, email, display_name, role, created_at, last_login)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(uid) DO NOTHING`,
		p.UID, p.Email, p.DisplayName, p.Role, p.CreatedAt, p.LastLogin)
	if err != nil {
		return false, fmt.Errorf("provision profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("provision profile: %w", err)
	}
	return n == 1, nil
}

// Update writes partial updates to the document.
func (s *SQLStore) Update(ctx context.Context, uid string, u Updates) error {
	if u.DisplayName == nil {
		return nil
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE profiles SET display_name = ? WHERE uid = ?`, *u.DisplayName, uid)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchLastLogin refreshes the last_login timestamp.
func (s *SQLStore) TouchLastLogin(ctx context.Context, uid string, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE profiles SET last_login = ? WHERE uid = ?`, at.UTC(), uid)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Package local is the built-in identity provider: accounts in sqlite,
// bearer tokens in memory. It exists so the service runs with no external
// identity credentials; everything above it sees only identity.Provider.
package local

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"glampd/internal/identity"
)

// maxFailedAttempts locks an account until a successful sign-in resets it.
const maxFailedAttempts = 5

const minPasswordLen = 6

// token is one issued bearer credential.
type token struct {
	uid       string
	expiresAt time.Time
}

// Provider implements identity.Provider on a sqlite accounts table.
type Provider struct {
	db  *sql.DB
	ttl time.Duration
	log zerolog.Logger

	mu        sync.Mutex
	tokens    map[string]token
	current   *identity.AuthUser
	listeners map[int]identity.StateListener
	nextID    int
	order     []int
}

// Open creates the provider, opening (and migrating) the accounts database
// at path. Use ":memory:" for tests.
func Open(path string, ttl time.Duration, log zerolog.Logger) (*Provider, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open accounts db: %w", err)
	}
	// One connection: keeps writes serialized and makes ":memory:" share state.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS accounts (
    uid TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL DEFAULT '',
    password_salt TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL DEFAULT '',
    oauth_only INTEGER NOT NULL DEFAULT 0,
    failed_attempts INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate accounts db: %w", err)
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Provider{
		db:        db,
		ttl:       ttl,
		log:       log,
		tokens:    make(map[string]token),
		listeners: make(map[int]identity.StateListener),
	}, nil
}

// Close releases the database handle.
func (p *Provider) Close() error { return p.db.Close() }

// SignInEmail verifies credentials against the accounts table.
func (p *Provider) SignInEmail(ctx context.Context, email, password string) (identity.AuthUser, error) {
	email = normalizeEmail(email)
	if !validEmail(email) {
		return identity.AuthUser{}, identity.NewError(identity.CodeInvalidEmail, email)
	}
	var uid, name, salt, hash string
	var oauthOnly bool
	var failed int
	err := p.db.QueryRowContext(ctx,
		`SELECT uid, display_name, password_salt, password_hash, oauth_only, failed_attempts FROM accounts WHERE email = ?`, email).
		Scan(&uid, &name, &salt, &hash, &oauthOnly, &failed)
	if err == sql.ErrNoRows {
		return identity.AuthUser{}, identity.NewError(identity.CodeUserNotFound, email)
	}
	if err != nil {
		return identity.AuthUser{}, identity.NewError(identity.CodeNetworkError, err.Error())
	}
	if failed >= maxFailedAttempts {
		return identity.AuthUser{}, identity.NewError(identity.CodeTooManyAttempts, email)
	}
	if oauthOnly || !verifyPassword(salt, hash, password) {
		if _, uerr := p.db.ExecContext(ctx,
			`UPDATE accounts SET failed_attempts = failed_attempts + 1 WHERE uid = ?`, uid); uerr != nil {
			p.log.Warn().Err(uerr).Str("uid", uid).Msg("failed to bump attempt counter")
		}
		return identity.AuthUser{}, identity.NewError(identity.CodeInvalidCredentials, email)
	}
	if _, uerr := p.db.ExecContext(ctx, `UPDATE accounts SET failed_attempts = 0 WHERE uid = ?`, uid); uerr != nil {
		p.log.Warn().Err(uerr).Str("uid", uid).Msg("failed to reset attempt counter")
	}
	return p.establish(uid, email, name)
}

// SignUpEmail creates an account and signs it in.
func (p *Provider) SignUpEmail(ctx context.Context, email, password, displayName string) (identity.AuthUser, error) {
	email = normalizeEmail(email)
	if !validEmail(email) {
		return identity.AuthUser{}, identity.NewError(identity.CodeInvalidEmail, email)
	}
	if len(password) < minPasswordLen {
		return identity.AuthUser{}, identity.NewError(identity.CodeWeakPassword, "")
	}
	salt, hash, err := hashPassword(password)
	if err != nil {
		return identity.AuthUser{}, identity.NewError(identity.CodeNetworkError, err.Error())
	}
	uid := uuid.NewString()
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO accounts (uid, email, display_name, password_salt, password_hash) VALUES (?, ?, ?, ?, ?)`,
		uid, email, displayName, salt, hash)
	if err != nil {
		if isUniqueViolation(err) {
			return identity.AuthUser{}, identity.NewError(identity.CodeEmailInUse, email)
		}
		return identity.AuthUser{}, identity.NewError(identity.CodeNetworkError, err.Error())
	}
	return p.establish(uid, email, displayName)
}

// SignInOAuth trusts an externally verified email, creating the account on
// first use (oauth-only, no password).
func (p *Provider) SignInOAuth(ctx context.Context, email, displayName string) (identity.AuthUser, error) {
	email = normalizeEmail(email)
	if !validEmail(email) {
		return identity.AuthUser{}, identity.NewError(identity.CodeInvalidEmail, email)
	}
	var uid, name string
	err := p.db.QueryRowContext(ctx, `SELECT uid, display_name FROM accounts WHERE email = ?`, email).Scan(&uid, &name)
	switch {
	case err == sql.ErrNoRows:
		uid = uuid.NewString()
		name = displayName
		if _, ierr := p.db.ExecContext(ctx,
			`INSERT INTO accounts (uid, email, display_name, oauth_only) VALUES (?, ?, ?, 1)`,
			uid, email, displayName); ierr != nil {
			return identity.AuthUser{}, identity.NewError(identity.CodeNetworkError, ierr.Error())
		}
	case err != nil:
		return identity.AuthUser{}, identity.NewError(identity.CodeNetworkError, err.Error())
	}
	if name == "" {
		name = displayName
	}
	return p.establish(uid, email, name)
}

// SignOut revokes the current session and pushes the signed-out state.
func (p *Provider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	if p.current != nil {
		delete(p.tokens, p.current.Token)
	}
	p.current = nil
	listeners := p.snapshotListenersLocked()
	p.mu.Unlock()
	for _, fn := range listeners {
		fn(nil)
	}
	return nil
}

// UpdateDisplayName writes the identity's own display-name field.
func (p *Provider) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	res, err := p.db.ExecContext(ctx, `UPDATE accounts SET display_name = ? WHERE uid = ?`, displayName, uid)
	if err != nil {
		return identity.NewError(identity.CodeNetworkError, err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return identity.NewError(identity.CodeUserNotFound, uid)
	}
	p.mu.Lock()
	if p.current != nil && p.current.UID == uid {
		p.current.DisplayName = displayName
	}
	p.mu.Unlock()
	return nil
}

// Validate resolves a bearer token, expiring it lazily.
func (p *Provider) Validate(ctx context.Context, tok string) (identity.AuthUser, bool) {
	p.mu.Lock()
	entry, ok := p.tokens[tok]
	if ok && time.Now().After(entry.expiresAt) {
		delete(p.tokens, tok)
		ok = false
	}
	cur := p.current
	p.mu.Unlock()
	if !ok || cur == nil || cur.UID != entry.uid {
		return identity.AuthUser{}, false
	}
	return *cur, true
}

// Subscribe registers a listener and replays the current state immediately.
func (p *Provider) Subscribe(fn identity.StateListener) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.order = append(p.order, id)
	cur := p.current
	p.mu.Unlock()

	var replay *identity.AuthUser
	if cur != nil {
		u := *cur
		replay = &u
	}
	fn(replay)

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
		for i, v := range p.order {
			if v == id {
				p.order = append(p.order[:i], p.order[i+1:]...)
				break
			}
		}
	}
}

// establish issues a token, records the signed-in state, and notifies
// listeners in registration order.
func (p *Provider) establish(uid, email, displayName string) (identity.AuthUser, error) {
	tok, err := randomToken()
	if err != nil {
		return identity.AuthUser{}, identity.NewError(identity.CodeNetworkError, err.Error())
	}
	user := identity.AuthUser{UID: uid, Email: email, DisplayName: displayName, Token: tok}
	p.mu.Lock()
	p.tokens[tok] = token{uid: uid, expiresAt: time.Now().Add(p.ttl)}
	u := user
	p.current = &u
	listeners := p.snapshotListenersLocked()
	p.mu.Unlock()
	for _, fn := range listeners {
		v := user
		fn(&v)
	}
	return user, nil
}

// snapshotListenersLocked returns listeners in registration order. Caller
// holds mu.
func (p *Provider) snapshotListenersLocked() []identity.StateListener {
	out := make([]identity.StateListener, 0, len(p.order))
	for _, id := range p.order {
		if fn, ok := p.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashPassword(password string) (salt, hash string, err error) {
	raw := make([]byte, 16)
	if _, err = rand.Read(raw); err != nil {
		return "", "", err
	}
	salt = base64.RawStdEncoding.EncodeToString(raw)
	sum := sha256.Sum256([]byte(salt + password))
	return salt, base64.RawStdEncoding.EncodeToString(sum[:]), nil
}

func verifyPassword(salt, hash, password string) bool {
	if hash == "" {
		return false
	}
	sum := sha256.Sum256([]byte(salt + password))
	want, err := base64.RawStdEncoding.DecodeString(hash)
	if err != nil {
		return false
	}
	return hmac.Equal(sum[:], want)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}

// Package identity defines the seam to the external identity platform. The
// session adapter only ever talks to the Provider interface; the shipped
// implementation is the sqlite-backed local provider, but the contract is
// shaped after the managed service the site originally delegated to.
package identity

import "context"

// AuthUser is the provider-owned handle for a signed-in identity. Opaque to
// callers beyond the fields below.
type AuthUser struct {
	UID         string
	Email       string
	DisplayName string
	// Token authenticates subsequent requests for this session.
	Token string
}

// StateListener receives auth-state pushes. A nil user means signed out.
type StateListener func(user *AuthUser)

// Provider is the identity backend contract.
//
// Subscribe must replay the current state to a new listener immediately,
// then deliver future changes synchronously in registration order. The
// returned function unregisters the listener and must be called on teardown.
type Provider interface {
	SignInEmail(ctx context.Context, email, password string) (AuthUser, error)
	SignUpEmail(ctx context.Context, email, password, displayName string) (AuthUser, error)
	// SignInOAuth is the popup-style flow: the provider has already verified
	// the asserted email externally.
	SignInOAuth(ctx context.Context, email, displayName string) (AuthUser, error)
	SignOut(ctx context.Context) error
	UpdateDisplayName(ctx context.Context, uid, displayName string) error
	// Validate resolves a bearer token to its identity, if still valid.
	Validate(ctx context.Context, token string) (AuthUser, bool)
	Subscribe(fn StateListener) (unsubscribe func())
}

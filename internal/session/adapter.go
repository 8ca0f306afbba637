// Package session presents a single current-user/profile view over the
// identity provider and the profile store. It is the only writer of the
// process-wide session state; everything else observes it through Subscribe.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"glampd/internal/identity"
	"glampd/internal/profile"
	"glampd/pkg/types"
)

// DefaultStaleness is how old a profile's lastLogin may be before a load
// refreshes it. Gates write amplification on rapid reloads.
const DefaultStaleness = time.Hour

// State is the observable session snapshot.
type State struct {
	// User is the provider-owned handle, nil while signed out.
	User *identity.AuthUser
	// Profile is the document paired with User, nil until provisioned.
	Profile *types.UserProfile
	// Loading is true while an auth action or state resolution is in flight.
	Loading bool
	// LastError is the user-facing message of the last failed action.
	LastError string
}

// Listener receives state snapshots: the current one on registration, then
// every change, synchronously and in registration order.
type Listener func(State)

// Adapter wraps the provider and profile store behind ergonomic operations.
// Construct once at process start, Close once at shutdown.
type Adapter struct {
	provider  identity.Provider
	store     profile.Store
	admins    map[string]bool
	staleness time.Duration
	log       zerolog.Logger

	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	order     []int
	nextID    int
	unsub     func()
}

// Options tunes adapter behavior.
type Options struct {
	// AdminEmails provision as admin; everyone else as customer.
	AdminEmails []string
	// Staleness overrides DefaultStaleness when positive.
	Staleness time.Duration
	Log       zerolog.Logger
}

// New constructs the adapter and subscribes to the provider. The provider's
// replay delivers the initial state before New returns.
func New(p identity.Provider, store profile.Store, opts Options) *Adapter {
	staleness := opts.Staleness
	if staleness <= 0 {
		staleness = DefaultStaleness
	}
	admins := make(map[string]bool, len(opts.AdminEmails))
	for _, e := range opts.AdminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = true
	}
	a := &Adapter{
		provider:  p,
		store:     store,
		admins:    admins,
		staleness: staleness,
		log:       opts.Log,
		state:     State{Loading: true},
		listeners: make(map[int]Listener),
	}
	a.unsub = p.Subscribe(a.onAuthState)
	return a
}

// Close releases the provider subscription. The adapter must not be used
// afterwards.
func (a *Adapter) Close() {
	if a.unsub != nil {
		a.unsub()
		a.unsub = nil
	}
}

// Subscribe registers a listener and immediately replays the current state,
// so a listener registered after sign-in never misses it. The returned
// function unregisters.
func (a *Adapter) Subscribe(fn Listener) (unsubscribe func()) {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	a.order = append(a.order, id)
	snap := a.state
	a.mu.Unlock()

	fn(snap)

	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.listeners, id)
		for i, v := range a.order {
			if v == id {
				a.order = append(a.order[:i], a.order[i+1:]...)
				break
			}
		}
	}
}

// Current returns the state snapshot.
func (a *Adapter) Current() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// SignInWithEmail delegates to the provider. The signed-in state itself
// arrives through the provider's change notification.
func (a *Adapter) SignInWithEmail(ctx context.Context, email, password string) (identity.AuthUser, error) {
	a.beginOp()
	u, err := a.provider.SignInEmail(ctx, email, password)
	a.endOp(err)
	return u, err
}

// SignUpWithEmail creates the identity with its display name; the profile
// document is provisioned by the auth-state handler.
func (a *Adapter) SignUpWithEmail(ctx context.Context, email, password, displayName string) (identity.AuthUser, error) {
	a.beginOp()
	u, err := a.provider.SignUpEmail(ctx, email, password, displayName)
	a.endOp(err)
	return u, err
}

// SignInWithGoogle runs the popup-style OAuth flow with an externally
// asserted email and display name.
func (a *Adapter) SignInWithGoogle(ctx context.Context, email, displayName string) (identity.AuthUser, error) {
	a.beginOp()
	u, err := a.provider.SignInOAuth(ctx, email, displayName)
	a.endOp(err)
	return u, err
}

// SignOut terminates the provider session. Local state is cleared by the
// provider's own change notification, never set directly here.
func (a *Adapter) SignOut(ctx context.Context) error {
	a.beginOp()
	err := a.provider.SignOut(ctx)
	a.endOp(err)
	return err
}

// UpdateUserProfile writes partial updates to the profile document. A
// displayName update is also pushed to the provider. The local profile is
// updated optimistically once the write succeeds. Does not toggle Loading.
func (a *Adapter) UpdateUserProfile(ctx context.Context, uid string, u profile.Updates) error {
	a.mu.Lock()
	a.state.LastError = ""
	snap := a.state
	listeners := a.listenersLocked()
	a.mu.Unlock()
	notify(listeners, snap)

	if err := a.store.Update(ctx, uid, u); err != nil {
		a.fail(err)
		return err
	}
	if u.DisplayName != nil {
		if err := a.provider.UpdateDisplayName(ctx, uid, *u.DisplayName); err != nil {
			a.fail(err)
			return err
		}
	}

	a.mu.Lock()
	if a.state.Profile != nil && a.state.Profile.UID == uid {
		p := *a.state.Profile
		if u.DisplayName != nil {
			p.DisplayName = *u.DisplayName
		}
		a.state.Profile = &p
	}
	snap = a.state
	listeners = a.listenersLocked()
	a.mu.Unlock()
	notify(listeners, snap)
	return nil
}

// ClearError dismisses the last error message.
func (a *Adapter) ClearError() {
	a.mu.Lock()
	a.state.LastError = ""
	snap := a.state
	listeners := a.listenersLocked()
	a.mu.Unlock()
	notify(listeners, snap)
}

// onAuthState is the provider push handler: the adapter's only reaction to
// identity changes, and the only place Profile is loaded or provisioned.
func (a *Adapter) onAuthState(user *identity.AuthUser) {
	var prof *types.UserProfile
	if user != nil {
		p, err := a.loadOrProvision(context.Background(), *user)
		if err != nil {
			a.log.Error().Err(err).Str("uid", user.UID).Msg("profile resolution failed")
		} else {
			prof = &p
		}
	}
	a.mu.Lock()
	a.state.User = user
	a.state.Profile = prof
	a.state.Loading = false
	snap := a.state
	listeners := a.listenersLocked()
	a.mu.Unlock()
	notify(listeners, snap)
}

// loadOrProvision ensures exactly one profile document per identity and
// refreshes lastLogin only past the staleness window.
func (a *Adapter) loadOrProvision(ctx context.Context, user identity.AuthUser) (types.UserProfile, error) {
	p, err := a.store.Get(ctx, user.UID)
	if errors.Is(err, profile.ErrNotFound) {
		candidate := types.UserProfile{
			UID:         user.UID,
			Email:       user.Email,
			DisplayName: displayNameOr(user.DisplayName),
			Role:        a.roleFor(user.Email),
		}
		if _, err := a.store.Provision(ctx, candidate); err != nil {
			return types.UserProfile{}, err
		}
		// Re-read: under a racing sign-in the other provisioner may have won.
		return a.store.Get(ctx, user.UID)
	}
	if err != nil {
		return types.UserProfile{}, err
	}
	if time.Since(p.LastLogin) > a.staleness {
		now := time.Now().UTC()
		if err := a.store.TouchLastLogin(ctx, user.UID, now); err != nil {
			a.log.Warn().Err(err).Str("uid", user.UID).Msg("lastLogin refresh failed")
		} else {
			p.LastLogin = now
		}
	}
	return p, nil
}

func (a *Adapter) roleFor(email string) types.Role {
	if a.admins[strings.ToLower(strings.TrimSpace(email))] {
		return types.RoleAdmin
	}
	return types.RoleCustomer
}

// beginOp marks an action in flight and clears the previous error.
func (a *Adapter) beginOp() {
	a.mu.Lock()
	a.state.Loading = true
	a.state.LastError = ""
	snap := a.state
	listeners := a.listenersLocked()
	a.mu.Unlock()
	notify(listeners, snap)
}

// endOp finishes an action; on failure it records the normalized message.
func (a *Adapter) endOp(err error) {
	a.mu.Lock()
	a.state.Loading = false
	if err != nil {
		a.state.LastError = Message(err)
	}
	snap := a.state
	listeners := a.listenersLocked()
	a.mu.Unlock()
	notify(listeners, snap)
}

func (a *Adapter) fail(err error) {
	a.mu.Lock()
	a.state.LastError = Message(err)
	snap := a.state
	listeners := a.listenersLocked()
	a.mu.Unlock()
	notify(listeners, snap)
}

// listenersLocked returns listeners in registration order. Caller holds mu.
func (a *Adapter) listenersLocked() []Listener {
	out := make([]Listener, 0, len(a.order))
	for _, id := range a.order {
		if fn, ok := a.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(listeners []Listener, snap State) {
	for _, fn := range listeners {
		fn(snap)
	}
}

func displayNameOr(name string) string {
	if name == "" {
		return "Unknown User"
	}
	return name
}

// userMessages maps provider codes to the short strings shown to users. Raw
// codes never leave the adapter.
var userMessages = map[identity.Code]string{
	identity.CodeUserNotFound:       "No account found with this email address.",
	identity.CodeInvalidCredentials: "Incorrect password. Please try again.",
	identity.CodeEmailInUse:         "An account with this email already exists.",
	identity.CodeWeakPassword:       "Password should be at least 6 characters long.",
	identity.CodeInvalidEmail:       "Please enter a valid email address.",
	identity.CodeTooManyAttempts:    "Too many failed attempts. Please try again later.",
	identity.CodeNetworkError:       "Network error. Please check your connection.",
	identity.CodePopupClosed:        "Sign-in popup was closed. Please try again.",
}

// Message returns the user-facing message for a provider error.
func Message(err error) string {
	if msg, ok := userMessages[identity.CodeOf(err)]; ok {
		return msg
	}
	return "An unexpected error occurred."
}

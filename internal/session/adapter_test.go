package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"glampd/internal/identity"
	"glampd/internal/identity/local"
	"glampd/internal/profile"
	"glampd/pkg/types"
)

// countingStore wraps a Store to observe write traffic.
type countingStore struct {
	profile.Store
	provisions int32
	touches    int32
}

func (c *countingStore) Provision(ctx context.Context, p types.UserProfile) (bool, error) {
	created, err := c.Store.Provision(ctx, p)
	if created {
		atomic.AddInt32(&c.provisions, 1)
	}
	return created, err
}

func (c *countingStore) TouchLastLogin(ctx context.Context, uid string, at time.Time) error {
	atomic.AddInt32(&c.touches, 1)
	return c.Store.TouchLastLogin(ctx, uid, at)
}

func newFixture(t *testing.T, opts Options) (*Adapter, *countingStore) {
	t.Helper()
	prov, err := local.Open(":memory:", time.Hour, zerolog.Nop())
	if err != nil {
		t.Fatalf("provider: %v", err)
	}
	t.Cleanup(func() { prov.Close() })
	store, err := profile.Open(":memory:")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	cs := &countingStore{Store: store}
	a := New(prov, cs, opts)
	t.Cleanup(a.Close)
	return a, cs
}

func TestInitialStateResolvedOnConstruction(t *testing.T) {
	a, _ := newFixture(t, Options{})
	s := a.Current()
	if s.Loading {
		t.Fatal("replay should resolve the initial state")
	}
	if s.User != nil || s.Profile != nil {
		t.Fatalf("state=%+v", s)
	}
}

func TestSignUpProvisionsProfile(t *testing.T) {
	a, cs := newFixture(t, Options{AdminEmails: []string{"boss@example.com"}})
	ctx := context.Background()

	if _, err := a.SignUpWithEmail(ctx, "guest@example.com", "hunter22", "Avery"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	s := a.Current()
	if s.User == nil || s.Profile == nil {
		t.Fatalf("state=%+v", s)
	}
	if s.Profile.Role != types.RoleCustomer || s.Profile.DisplayName != "Avery" {
		t.Fatalf("profile=%+v", s.Profile)
	}
	if cs.provisions != 1 {
		t.Fatalf("provisions=%d", cs.provisions)
	}
}

func TestAdminAllowListAssignsRole(t *testing.T) {
	a, _ := newFixture(t, Options{AdminEmails: []string{" Boss@Example.com "}})
	if _, err := a.SignUpWithEmail(context.Background(), "boss@example.com", "hunter22", "Boss"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if s := a.Current(); s.Profile == nil || s.Profile.Role != types.RoleAdmin {
		t.Fatalf("state=%+v", s)
	}
}

func TestRepeatedSignInProvisionsOnce(t *testing.T) {
	a, cs := newFixture(t, Options{})
	ctx := context.Background()
	if _, err := a.SignUpWithEmail(ctx, "guest@example.com", "hunter22", "Avery"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := a.SignInWithEmail(ctx, "guest@example.com", "hunter22"); err != nil {
			t.Fatalf("sign in %d: %v", i, err)
		}
	}
	if cs.provisions != 1 {
		t.Fatalf("exactly one profile document expected, provisions=%d", cs.provisions)
	}
	// Fresh lastLogin: no refresh inside the staleness window.
	if cs.touches != 0 {
		t.Fatalf("touches=%d", cs.touches)
	}
}

func TestStaleLastLoginRefreshed(t *testing.T) {
	a, cs := newFixture(t, Options{Staleness: time.Nanosecond})
	ctx := context.Background()
	if _, err := a.SignUpWithEmail(ctx, "guest@example.com", "hunter22", "Avery"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if _, err := a.SignInWithEmail(ctx, "guest@example.com", "hunter22"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if cs.touches == 0 {
		t.Fatal("stale lastLogin should be refreshed")
	}
}

func TestReplayOnSubscribeAfterSignIn(t *testing.T) {
	a, _ := newFixture(t, Options{})
	ctx := context.Background()
	if _, err := a.SignUpWithEmail(ctx, "guest@example.com", "hunter22", "Avery"); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	var first *State
	unsub := a.Subscribe(func(s State) {
		if first == nil {
			cp := s
			first = &cp
		}
	})
	defer unsub()
	if first == nil {
		t.Fatal("no replay delivered")
	}
	if first.User == nil || first.User.Email != "guest@example.com" {
		t.Fatalf("replay state=%+v", first)
	}
}

func TestSignOutClearsStateViaProviderPush(t *testing.T) {
	a, _ := newFixture(t, Options{})
	ctx := context.Background()
	if _, err := a.SignUpWithEmail(ctx, "guest@example.com", "hunter22", "Avery"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if err := a.SignOut(ctx); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	s := a.Current()
	if s.User != nil || s.Profile != nil {
		t.Fatalf("state=%+v", s)
	}
}

func TestFailureSetsMappedErrorAndNextOpClearsIt(t *testing.T) {
	a, _ := newFixture(t, Options{})
	ctx := context.Background()

	if _, err := a.SignInWithEmail(ctx, "ghost@example.com", "pw"); err == nil {
		t.Fatal("expected sign-in failure")
	}
	if got := a.Current().LastError; got != "No account found with this email address." {
		t.Fatalf("lastError=%q", got)
	}

	sawCleared := false
	unsub := a.Subscribe(func(s State) {
		if s.Loading && s.LastError == "" {
			sawCleared = true
		}
	})
	defer unsub()

	if _, err := a.SignUpWithEmail(ctx, "guest@example.com", "hunter22", "Avery"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if !sawCleared {
		t.Fatal("starting an action must clear lastError while loading")
	}
	if got := a.Current().LastError; got != "" {
		t.Fatalf("lastError=%q", got)
	}
}

func TestClearError(t *testing.T) {
	a, _ := newFixture(t, Options{})
	if _, err := a.SignInWithEmail(context.Background(), "ghost@example.com", "pw"); err == nil {
		t.Fatal("expected failure")
	}
	a.ClearError()
	if got := a.Current().LastError; got != "" {
		t.Fatalf("lastError=%q", got)
	}
}

func TestUpdateUserProfileOptimisticAndPropagated(t *testing.T) {
	a, _ := newFixture(t, Options{})
	ctx := context.Background()
	u, err := a.SignUpWithEmail(ctx, "guest@example.com", "hunter22", "Avery")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	name := "Avery Renamed"
	if err := a.UpdateUserProfile(ctx, u.UID, profile.Updates{DisplayName: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if s := a.Current(); s.Profile == nil || s.Profile.DisplayName != name {
		t.Fatalf("state=%+v", s)
	}

	// The provider's own display-name field was updated too: the next
	// sign-in carries the new name.
	if err := a.SignOut(ctx); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	u2, err := a.SignInWithEmail(ctx, "guest@example.com", "hunter22")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if u2.DisplayName != name {
		t.Fatalf("provider displayName=%q", u2.DisplayName)
	}
}

func TestMessageMapping(t *testing.T) {
	cases := []struct {
		code identity.Code
		want string
	}{
		{identity.CodeUserNotFound, "No account found with this email address."},
		{identity.CodeInvalidCredentials, "Incorrect password. Please try again."},
		{identity.CodeEmailInUse, "An account with this email already exists."},
		{identity.CodeWeakPassword, "Password should be at least 6 characters long."},
		{identity.CodeInvalidEmail, "Please enter a valid email address."},
		{identity.CodeTooManyAttempts, "Too many failed attempts. Please try again later."},
		{identity.CodeNetworkError, "Network error. Please check your connection."},
		{identity.CodePopupClosed, "Sign-in popup was closed. Please try again."},
	}
	for _, tc := range cases {
		if got := Message(identity.NewError(tc.code, "")); got != tc.want {
			t.Fatalf("code %s: got %q", tc.code, got)
		}
	}
	if got := Message(context.Canceled); got != "An unexpected error occurred." {
		t.Fatalf("fallback message=%q", got)
	}
}

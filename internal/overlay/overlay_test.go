package overlay

import (
	"testing"

	"glampd/pkg/types"
)

type countingLocker struct {
	locks, unlocks int
}

func (c *countingLocker) Lock()   { c.locks++ }
func (c *countingLocker) Unlock() { c.unlocks++ }

func rec(id int, images ...string) *types.ListingRecord {
	return &types.ListingRecord{ID: id, Image: "https://example.com/primary.jpg", Images: images}
}

func TestShowOpensAndResetsCursor(t *testing.T) {
	o := New(nil)
	o.Show(rec(1, "a", "b", "c"))
	if o.State() != Open || o.ActiveImageIndex() != 0 {
		t.Fatalf("state=%s index=%d", o.State(), o.ActiveImageIndex())
	}
	o.Next()
	if o.ActiveImageIndex() != 1 {
		t.Fatalf("index=%d", o.ActiveImageIndex())
	}
	// Re-target without closing: cursor resets.
	o.Show(rec(2, "x", "y"))
	if o.State() != Open || o.ActiveImageIndex() != 0 || o.Record().ID != 2 {
		t.Fatalf("state=%s index=%d id=%d", o.State(), o.ActiveImageIndex(), o.Record().ID)
	}
}

func TestShowNilRecordPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil record")
		}
	}()
	New(nil).Show(nil)
}

func TestGalleryWrapsBothDirections(t *testing.T) {
	o := New(nil)
	o.Show(rec(1, "a", "b", "c"))
	for i := 0; i < 3; i++ {
		o.Next()
	}
	if o.ActiveImageIndex() != 0 {
		t.Fatalf("cyclic invariant broken: index=%d", o.ActiveImageIndex())
	}
	o.Previous()
	if o.ActiveImageIndex() != 2 {
		t.Fatalf("previous from 0 should wrap to 2, got %d", o.ActiveImageIndex())
	}
}

func TestSingleImageNavigationIsNoop(t *testing.T) {
	o := New(nil)
	o.Show(rec(1))
	o.Next()
	o.Previous()
	if o.ActiveImageIndex() != 0 {
		t.Fatalf("index=%d", o.ActiveImageIndex())
	}
	if o.ActiveImage() != "https://example.com/primary.jpg" {
		t.Fatalf("active=%q", o.ActiveImage())
	}
}

func TestEscapeLeavesFullscreenFirst(t *testing.T) {
	o := New(nil)
	o.Show(rec(1, "a", "b"))
	o.EnterFullscreen()
	if o.State() != OpenFullscreen {
		t.Fatalf("state=%s", o.State())
	}
	o.HandleKey(KeyEscape)
	if o.State() != Open {
		t.Fatalf("first Escape should only exit fullscreen, state=%s", o.State())
	}
	if o.Record() == nil || o.Record().ID != 1 {
		t.Fatal("record must survive the first Escape")
	}
	o.HandleKey(KeyEscape)
	if o.State() != Closed {
		t.Fatalf("second Escape should close, state=%s", o.State())
	}
}

func TestFullscreenToggleKey(t *testing.T) {
	o := New(nil)
	o.Show(rec(1, "a", "b"))
	o.HandleKey("f")
	if o.State() != OpenFullscreen {
		t.Fatalf("state=%s", o.State())
	}
	o.HandleKey("F")
	if o.State() != Open {
		t.Fatalf("state=%s", o.State())
	}
}

func TestArrowKeysNavigate(t *testing.T) {
	o := New(nil)
	o.Show(rec(1, "a", "b", "c"))
	o.HandleKey(KeyArrowRight)
	if o.ActiveImage() != "b" {
		t.Fatalf("active=%q", o.ActiveImage())
	}
	o.HandleKey(KeyArrowLeft)
	o.HandleKey(KeyArrowLeft)
	if o.ActiveImage() != "c" {
		t.Fatalf("active=%q", o.ActiveImage())
	}
}

func TestKeysInertWhileClosed(t *testing.T) {
	o := New(nil)
	o.HandleKey(KeyArrowRight)
	o.HandleKey("f")
	if o.State() != Closed {
		t.Fatalf("state=%s", o.State())
	}
}

func TestScrollLockBalancedOnEveryExitPath(t *testing.T) {
	cases := []struct {
		name string
		exit func(o *Overlay)
	}{
		{"close", func(o *Overlay) { o.Close() }},
		{"backdrop", func(o *Overlay) { o.BackdropClick() }},
		{"escape", func(o *Overlay) { o.HandleKey(KeyEscape) }},
		{"dispose", func(o *Overlay) { o.Dispose() }},
		{"escape-from-fullscreen-twice", func(o *Overlay) {
			o.EnterFullscreen()
			o.HandleKey(KeyEscape)
			o.HandleKey(KeyEscape)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lk := &countingLocker{}
			o := New(lk)
			o.Show(rec(1, "a", "b"))
			if lk.locks != 1 {
				t.Fatalf("locks=%d", lk.locks)
			}
			tc.exit(o)
			if o.State() != Closed {
				t.Fatalf("state=%s", o.State())
			}
			if lk.unlocks != 1 {
				t.Fatalf("unlocks=%d", lk.unlocks)
			}
			// Re-showing after close must lock again exactly once.
			o.Show(rec(2, "x"))
			if lk.locks != 2 {
				t.Fatalf("locks=%d", lk.locks)
			}
		})
	}
}

func TestRetargetWhileOpenDoesNotDoubleLock(t *testing.T) {
	lk := &countingLocker{}
	o := New(lk)
	o.Show(rec(1, "a"))
	o.Show(rec(2, "b"))
	if lk.locks != 1 {
		t.Fatalf("locks=%d", lk.locks)
	}
	o.Close()
	if lk.unlocks != 1 {
		t.Fatalf("unlocks=%d", lk.unlocks)
	}
}

func TestCloseIdempotent(t *testing.T) {
	lk := &countingLocker{}
	o := New(lk)
	o.Close()
	if lk.unlocks != 0 {
		t.Fatal("closing a closed overlay must not unlock")
	}
}

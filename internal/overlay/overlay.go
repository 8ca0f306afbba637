// Package overlay implements the accommodation detail view as an explicit
// state machine: Closed, Open, OpenFullscreen. It owns the gallery cursor
// and the keyboard bindings, and guarantees the host scroll lock is released
// on every exit path.
package overlay

import "glampd/pkg/types"

// State is the overlay lifecycle state.
type State string

const (
	Closed         State = "closed"
	Open           State = "open"
	OpenFullscreen State = "open_fullscreen"
)

// Key names for HandleKey, matching browser KeyboardEvent.key values.
const (
	KeyEscape     = "Escape"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// ScrollLocker disables and restores background scrolling on the host
// document while the overlay is visible.
type ScrollLocker interface {
	Lock()
	Unlock()
}

// NopLocker satisfies ScrollLocker without side effects.
type NopLocker struct{}

func (NopLocker) Lock()   {}
func (NopLocker) Unlock() {}

// Overlay is one detail overlay instance. Scoped to a single grid; not
// shared. Methods are not safe for concurrent use: the overlay lives on the
// UI event loop, which is single-threaded.
type Overlay struct {
	state   State
	record  *types.ListingRecord
	gallery []string
	index   int
	locker  ScrollLocker
}

// New returns a closed overlay using the given scroll locker.
func New(locker ScrollLocker) *Overlay {
	if locker == nil {
		locker = NopLocker{}
	}
	return &Overlay{state: Closed, locker: locker}
}

// Show opens the overlay on a record, resetting the gallery cursor. Opening
// with no record is a programming error. Showing a different record while
// already open re-targets without passing through Closed.
func (o *Overlay) Show(rec *types.ListingRecord) {
	if rec == nil {
		panic("overlay: Show called with nil record")
	}
	if o.state == Closed {
		o.locker.Lock()
		o.state = Open
	}
	o.record = rec
	o.gallery = rec.Gallery()
	o.index = 0
}

// Close dismisses the overlay from any state and restores scrolling.
func (o *Overlay) Close() {
	if o.state == Closed {
		return
	}
	o.state = Closed
	o.record = nil
	o.gallery = nil
	o.index = 0
	o.locker.Unlock()
}

// BackdropClick dismisses the overlay, same as Close.
func (o *Overlay) BackdropClick() { o.Close() }

// EnterFullscreen expands the primary image. Only meaningful while Open.
func (o *Overlay) EnterFullscreen() {
	if o.state == Open {
		o.state = OpenFullscreen
	}
}

// ExitFullscreen returns to the regular open view.
func (o *Overlay) ExitFullscreen() {
	if o.state == OpenFullscreen {
		o.state = Open
	}
}

// Next advances the gallery cursor, wrapping at the end. No-op for
// single-image galleries.
func (o *Overlay) Next() {
	if o.state == Closed || len(o.gallery) <= 1 {
		return
	}
	o.index = (o.index + 1) % len(o.gallery)
}

// Previous moves the gallery cursor back, wrapping at the start.
func (o *Overlay) Previous() {
	if o.state == Closed || len(o.gallery) <= 1 {
		return
	}
	o.index = (o.index - 1 + len(o.gallery)) % len(o.gallery)
}

// HandleKey dispatches a keyboard event. Bindings are active only while the
// overlay is visible. Escape leaves fullscreen first; a second press closes.
// f toggles fullscreen.
func (o *Overlay) HandleKey(key string) {
	if o.state == Closed {
		return
	}
	switch key {
	case KeyEscape:
		if o.state == OpenFullscreen {
			o.state = Open
			return
		}
		o.Close()
	case KeyArrowLeft:
		o.Previous()
	case KeyArrowRight:
		o.Next()
	case "f", "F":
		if o.state == OpenFullscreen {
			o.state = Open
		} else {
			o.state = OpenFullscreen
		}
	}
}

// Dispose tears the overlay down, releasing the scroll lock if held. Safe to
// call regardless of state; used when the owning view unmounts.
func (o *Overlay) Dispose() { o.Close() }

// State returns the current lifecycle state.
func (o *Overlay) State() State { return o.state }

// Record returns the selected record, or nil while closed.
func (o *Overlay) Record() *types.ListingRecord { return o.record }

// ActiveImageIndex returns the gallery cursor.
func (o *Overlay) ActiveImageIndex() int { return o.index }

// ActiveImage returns the gallery URL under the cursor, or "" while closed.
func (o *Overlay) ActiveImage() string {
	if o.state == Closed || len(o.gallery) == 0 {
		return ""
	}
	return o.gallery[o.index]
}

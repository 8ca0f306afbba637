// Package media tracks the lazy-load lifecycle of listing images: a
// one-shot viewport latch gates the fetch, and a failed fetch is swapped for
// a fallback asset without ever surfacing to the grid.
package media

import (
	"sync"

	"github.com/rs/zerolog"
)

// ViewportMarginPx is how close to the viewport an image must come before
// its fetch is triggered.
const ViewportMarginPx = 50

// FallbackURL is substituted when the real asset fails to load. A neutral
// inline placeholder, so the swap itself can never fail.
const FallbackURL = "data:image/svg+xml;base64,PHN2ZyB3aWR0aD0iNDAwIiBoZWlnaHQ9IjMwMCIgeG1sbnM9Imh0dHA6Ly93d3cudzMub3JnLzIwMDAvc3ZnIj48cmVjdCB3aWR0aD0iMTAwJSIgaGVpZ2h0PSIxMDAlIiBmaWxsPSIjZjNmNGY2Ii8+PC9zdmc+"

// Phase is the load outcome state of one image.
type Phase string

const (
	PhasePending Phase = "pending"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseErrored Phase = "errored"
)

// Loader is the per-image lazy-load unit. One per rendered image.
type Loader struct {
	mu         sync.Mutex
	url        string
	priority   bool
	inViewport bool
	observing  bool
	phase      Phase
	log        zerolog.Logger
}

// Attach binds a loader to a source URL. Priority images skip deferral
// entirely: the viewport latch is set immediately and no observation is
// registered.
func Attach(sourceURL string, priority bool, log zerolog.Logger) *Loader {
	l := &Loader{
		url:      sourceURL,
		priority: priority,
		phase:    PhasePending,
		log:      log,
	}
	if priority {
		l.inViewport = true
	} else {
		l.observing = true
	}
	return l
}

// MarkVisible sets the viewport latch. One-shot: the first call stops the
// observation, later calls are no-ops. The latch never reverts.
func (l *Loader) MarkVisible() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inViewport {
		return
	}
	l.inViewport = true
	l.observing = false
}

// Begin moves pending to loading once the image is in the viewport.
// Returns true when a fetch should be issued.
func (l *Loader) Begin() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.inViewport || l.phase != PhasePending {
		return false
	}
	l.phase = PhaseLoading
	return true
}

// OnResolved records a successful load. Terminal.
func (l *Loader) OnResolved() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.phase == PhaseLoading {
		l.phase = PhaseLoaded
	}
}

// OnFailed records a failed load. Terminal; the failure is logged and the
// fallback asset takes over, nothing propagates to the caller.
func (l *Loader) OnFailed() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.phase != PhaseLoading {
		return
	}
	l.phase = PhaseErrored
	l.log.Warn().Str("url", l.url).Msg("image load failed, using fallback")
}

// Phase returns the current load phase.
func (l *Loader) Phase() Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase
}

// InViewport reports whether the viewport latch has fired.
func (l *Loader) InViewport() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inViewport
}

// Observing reports whether an observation is still registered. Priority
// images never observe.
func (l *Loader) Observing() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.observing
}

// ShowSkeleton reports whether the consumer should render the animated
// placeholder instead of issuing any network request.
func (l *Loader) ShowSkeleton() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase == PhasePending || l.phase == PhaseLoading
}

// EffectiveURL is the asset the consumer should render: the fallback once
// errored, the real source otherwise.
func (l *Loader) EffectiveURL() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.phase == PhaseErrored {
		return FallbackURL
	}
	return l.url
}

// Dispose releases the observation, if any. Idempotent; called on teardown
// so no callback fires against a destroyed card.
func (l *Loader) Dispose() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observing = false
}

// Package grid owns the progressive reveal state of one accommodation grid:
// which prefix of a dataset is materialized into cards, growing as the
// trailing sentinel enters the viewport.
package grid

import (
	"fmt"
	"sync"

	"glampd/pkg/types"
)

const (
	// DefaultSeed is the number of cards revealed on first render.
	DefaultSeed = 3
	// DefaultStep is the number of cards revealed per sentinel hit.
	DefaultStep = 2
	// SentinelMarginPx is how far ahead of the viewport the sentinel fires.
	SentinelMarginPx = 100
)

// Controller tracks visibleCount for a single grid instance. One controller
// per rendered grid; not shared across grids.
type Controller struct {
	mu      sync.Mutex
	seed    int
	step    int
	records []types.ListingRecord
	visible int
}

// Snapshot is a read-only projection of the controller state.
type Snapshot struct {
	VisibleCount int
	TotalRecords int
	Skeletons    int
	Exhausted    bool
}

// New returns a controller with the given growth parameters. Non-positive
// values fall back to the defaults.
func New(seed, step int) *Controller {
	if seed <= 0 {
		seed = DefaultSeed
	}
	if step <= 0 {
		step = DefaultStep
	}
	return &Controller{seed: seed, step: step}
}

// Initialize installs a record set and resets visibleCount to the seed.
// Must be called again whenever the dataset identity changes (a segment
// switch); this is a full reset, not a diff.
func (c *Controller) Initialize(records []types.ListingRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = records
	c.visible = min(c.seed, len(records))
}

// OnSentinelVisible grows visibleCount by one step, clamped at the total.
// Safe under redundant or out-of-order sentinel callbacks: once every record
// is revealed this is a no-op.
func (c *Controller) OnSentinelVisible() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = min(c.visible+c.step, len(c.records))
	c.check()
}

// VisibleSlice returns the revealed prefix of the record set.
func (c *Controller) VisibleSlice() []types.ListingRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.check()
	out := make([]types.ListingRecord, c.visible)
	copy(out, c.records[:c.visible])
	return out
}

// Slots returns exactly one slot per record: revealed cards first, then
// skeleton placeholders for the remainder. An empty dataset yields a single
// "coming soon" slot.
func (c *Controller) Slots() []types.GridSlot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.check()
	if len(c.records) == 0 {
		return []types.GridSlot{{Kind: types.GridSlotEmpty}}
	}
	slots := make([]types.GridSlot, 0, len(c.records))
	for i := 0; i < c.visible; i++ {
		rec := c.records[i]
		slots = append(slots, types.GridSlot{Kind: types.GridSlotCard, Record: &rec})
	}
	for i := c.visible; i < len(c.records); i++ {
		slots = append(slots, types.GridSlot{Kind: types.GridSlotSkeleton})
	}
	return slots
}

// Snapshot returns the current counters.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.check()
	return Snapshot{
		VisibleCount: c.visible,
		TotalRecords: len(c.records),
		Skeletons:    len(c.records) - c.visible,
		Exhausted:    c.visible == len(c.records),
	}
}

// check enforces 0 <= visible <= total. A violation is a programming error,
// not a recoverable condition.
func (c *Controller) check() {
	if c.visible < 0 || c.visible > len(c.records) {
		panic(fmt.Sprintf("grid: visibleCount %d out of range [0,%d]", c.visible, len(c.records)))
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

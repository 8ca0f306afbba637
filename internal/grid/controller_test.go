package grid

import (
	"fmt"
	"testing"

	"glampd/pkg/types"
)

func records(n int) []types.ListingRecord {
	out := make([]types.ListingRecord, n)
	for i := range out {
		out[i] = types.ListingRecord{ID: i + 1, Title: fmt.Sprintf("rec-%d", i+1), Image: "https://example.com/i.jpg"}
	}
	return out
}

func TestInitializeSeedsVisiblePrefix(t *testing.T) {
	c := New(3, 2)
	c.Initialize(records(7))
	slice := c.VisibleSlice()
	if len(slice) != 3 {
		t.Fatalf("visible=%d want 3", len(slice))
	}
	for i, r := range slice {
		if r.ID != i+1 {
			t.Fatalf("slice[%d].ID=%d, not a prefix", i, r.ID)
		}
	}
}

func TestSeedClampedToSmallDataset(t *testing.T) {
	c := New(3, 2)
	c.Initialize(records(2))
	if got := c.Snapshot(); got.VisibleCount != 2 || got.Skeletons != 0 {
		t.Fatalf("snapshot=%+v", got)
	}
}

func TestSentinelGrowthMonotonicAndClamped(t *testing.T) {
	c := New(3, 2)
	c.Initialize(records(7))
	prev := c.Snapshot().VisibleCount
	for i := 0; i < 10; i++ {
		c.OnSentinelVisible()
		s := c.Snapshot()
		if s.VisibleCount < prev {
			t.Fatalf("visibleCount regressed: %d -> %d", prev, s.VisibleCount)
		}
		if s.VisibleCount > s.TotalRecords {
			t.Fatalf("visibleCount %d exceeds total %d", s.VisibleCount, s.TotalRecords)
		}
		prev = s.VisibleCount
	}
	if s := c.Snapshot(); !s.Exhausted || s.VisibleCount != 7 {
		t.Fatalf("snapshot=%+v", s)
	}
}

func TestExactStepCountReachesTotal(t *testing.T) {
	// ceil((7-3)/2) = 2 sentinel hits to reveal everything.
	c := New(3, 2)
	c.Initialize(records(7))
	c.OnSentinelVisible()
	if s := c.Snapshot(); s.VisibleCount != 5 || s.Skeletons != 2 {
		t.Fatalf("after 1 hit: %+v", s)
	}
	c.OnSentinelVisible()
	if s := c.Snapshot(); s.VisibleCount != 7 || s.Skeletons != 0 || !s.Exhausted {
		t.Fatalf("after 2 hits: %+v", s)
	}
}

func TestThreeRecordScenarioNeedsNoSentinel(t *testing.T) {
	c := New(3, 2)
	c.Initialize(records(3))
	if s := c.Snapshot(); s.VisibleCount != 3 || s.Skeletons != 0 || !s.Exhausted {
		t.Fatalf("initial snapshot=%+v", s)
	}
	c.OnSentinelVisible()
	if s := c.Snapshot(); s.VisibleCount != 3 {
		t.Fatalf("sentinel should be a no-op at total: %+v", s)
	}
}

func TestInitializeResetsAfterGrowth(t *testing.T) {
	c := New(3, 2)
	c.Initialize(records(7))
	c.OnSentinelVisible()
	c.OnSentinelVisible()
	if s := c.Snapshot(); s.VisibleCount != 7 {
		t.Fatalf("precondition: %+v", s)
	}
	// Segment switch: full reset regardless of prior value.
	c.Initialize(records(5))
	if s := c.Snapshot(); s.VisibleCount != 3 || s.TotalRecords != 5 {
		t.Fatalf("after switch: %+v", s)
	}
}

func TestSlotsAlwaysCoverTotal(t *testing.T) {
	c := New(3, 2)
	c.Initialize(records(7))
	slots := c.Slots()
	if len(slots) != 7 {
		t.Fatalf("slots=%d want 7", len(slots))
	}
	cards, skeletons := 0, 0
	for _, s := range slots {
		switch s.Kind {
		case types.GridSlotCard:
			cards++
			if s.Record == nil {
				t.Fatal("card slot without record")
			}
		case types.GridSlotSkeleton:
			skeletons++
			if s.Record != nil {
				t.Fatal("skeleton slot with record")
			}
		}
	}
	if cards != 3 || skeletons != 4 {
		t.Fatalf("cards=%d skeletons=%d", cards, skeletons)
	}
}

func TestEmptyDatasetRendersSingleEmptySlot(t *testing.T) {
	c := New(3, 2)
	c.Initialize(nil)
	slots := c.Slots()
	if len(slots) != 1 || slots[0].Kind != types.GridSlotEmpty {
		t.Fatalf("slots=%+v", slots)
	}
	c.OnSentinelVisible()
	if s := c.Snapshot(); s.VisibleCount != 0 || !s.Exhausted {
		t.Fatalf("snapshot=%+v", s)
	}
}

func TestDefaultsAppliedForNonPositiveParams(t *testing.T) {
	c := New(0, -1)
	c.Initialize(records(10))
	if s := c.Snapshot(); s.VisibleCount != DefaultSeed {
		t.Fatalf("visible=%d want %d", s.VisibleCount, DefaultSeed)
	}
	c.OnSentinelVisible()
	if s := c.Snapshot(); s.VisibleCount != DefaultSeed+DefaultStep {
		t.Fatalf("visible=%d", s.VisibleCount)
	}
}

// Package catalog serves the segment-keyed listing datasets behind the
// accommodation grids. Datasets are static: embedded defaults, optionally
// overridden by YAML files loaded at startup. Record lookups are pure and
// perform no I/O.
package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"glampd/pkg/types"
)

// ParseSegment parses the canonical "brand/market" form.
func ParseSegment(s string) (types.Segment, error) {
	brand, market, ok := strings.Cut(s, "/")
	if !ok {
		return types.Segment{}, fmt.Errorf("invalid segment %q: want brand/market", s)
	}
	seg := types.Segment{Brand: types.Brand(brand), Market: types.Market(market)}
	switch seg.Brand {
	case types.BrandGlamp, types.BrandLodge:
	default:
		return types.Segment{}, fmt.Errorf("unknown brand %q", brand)
	}
	switch seg.Market {
	case types.MarketCanada, types.MarketPakistan:
	default:
		return types.Segment{}, fmt.Errorf("unknown market %q", market)
	}
	return seg, nil
}

// Source holds the loaded datasets. Safe for concurrent readers; datasets
// are replaced wholesale, never mutated in place.
type Source struct {
	mu       sync.RWMutex
	datasets map[types.Segment][]types.ListingRecord
}

// NewSource returns a Source populated with the embedded default datasets.
func NewSource() *Source {
	s := &Source{datasets: make(map[types.Segment][]types.ListingRecord)}
	for seg, recs := range defaultDatasets() {
		s.Replace(seg, recs)
	}
	return s
}

// Records returns the dataset for a segment, or an empty slice for a segment
// with no data (rendered as the "coming soon" state). The returned slice is
// a copy; callers may not mutate stored records.
func (s *Source) Records(seg types.Segment) []types.ListingRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.datasets[seg]
	out := make([]types.ListingRecord, len(recs))
	copy(out, recs)
	return out
}

// Segments lists every segment with a dataset, in stable order.
func (s *Source) Segments() []types.Segment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Segment, 0, len(s.datasets))
	for seg := range s.datasets {
		out = append(out, seg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Replace installs a dataset for a segment after normalizing it. Records
// with a non-empty Images slice keep it; records without one are stored
// as-is and fall back to the primary image through Gallery().
func (s *Source) Replace(seg types.Segment, recs []types.ListingRecord) error {
	seen := make(map[int]bool, len(recs))
	for _, r := range recs {
		if r.Image == "" && len(r.Images) == 0 {
			return fmt.Errorf("segment %s record %d has no image", seg, r.ID)
		}
		if seen[r.ID] {
			return fmt.Errorf("segment %s has duplicate record id %d", seg, r.ID)
		}
		seen[r.ID] = true
	}
	normalized := make([]types.ListingRecord, len(recs))
	copy(normalized, recs)
	for i := range normalized {
		if normalized[i].Image == "" {
			normalized[i].Image = normalized[i].Images[0]
		}
	}
	s.mu.Lock()
	s.datasets[seg] = normalized
	s.mu.Unlock()
	return nil
}

// Find returns the record with the given id in a segment.
func (s *Source) Find(seg types.Segment, id int) (types.ListingRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.datasets[seg] {
		if r.ID == id {
			return r, true
		}
	}
	return types.ListingRecord{}, false
}

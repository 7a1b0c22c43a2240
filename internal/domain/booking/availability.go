package booking

import (
	"sort"
	"time"
)

// AvailabilityIndex is the set of calendar dates already claimed by existing
// bookings, keyed at day granularity. It is a pure derivation over a booking
// snapshot and is recomputed whenever the source collection changes.
type AvailabilityIndex map[string]struct{}

// BuildAvailabilityIndex derives the index from a booking snapshot.
// Duplicate dates collapse to a single entry.
func BuildAvailabilityIndex(snapshot []*Booking) AvailabilityIndex {
	idx := make(AvailabilityIndex, len(snapshot))
	for _, b := range snapshot {
		idx[b.DateKey()] = struct{}{}
	}
	return idx
}

// BuildAvailabilityIndexFromRaw derives the index from raw date strings.
// Empty or unparseable dates are skipped, not treated as errors.
func BuildAvailabilityIndexFromRaw(dates []string) AvailabilityIndex {
	idx := make(AvailabilityIndex, len(dates))
	for _, raw := range dates {
		if raw == "" {
			continue
		}
		t, err := ParseDate(raw)
		if err != nil {
			continue
		}
		idx[DateKey(t)] = struct{}{}
	}
	return idx
}

// ParseDate parses a raw event date in day-key or RFC3339 form.
func ParseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// IsBooked reports whether the given date is already claimed.
func (idx AvailabilityIndex) IsBooked(date time.Time) bool {
	_, ok := idx[DateKey(date)]
	return ok
}

// Dates returns the claimed date keys in ascending order.
func (idx AvailabilityIndex) Dates() []string {
	keys := make([]string, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

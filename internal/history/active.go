package history

import "time"

// IsActive reports whether a window [start, end] contains ref. A nil end
// means the window is still open.
func IsActive(start time.Time, end *time.Time, ref time.Time) bool {
	r := Day(ref)
	if Day(start).After(r) {
		return false
	}
	return end == nil || !Day(*end).Before(r)
}

// ResolveActive picks the item whose window contains ref. Business rules
// allow a single active item; if several qualify the one that started last
// wins, and among equal starts the first in input order is kept. It returns
// nil when nothing is active.
func ResolveActive[T any](items []T, startOf func(T) time.Time, endOf func(T) *time.Time, ref time.Time) *T {
	var best *T
	var bestStart time.Time
	for i := range items {
		start := startOf(items[i])
		if !IsActive(start, endOf(items[i]), ref) {
			continue
		}
		if best == nil || Day(start).After(Day(bestStart)) {
			best = &items[i]
			bestStart = start
		}
	}
	return best
}

package history

import (
	"testing"
	"time"
)

type window struct {
	id    string
	start time.Time
	end   *time.Time
}

func resolve(items []window, ref time.Time) *window {
	return ResolveActive(items,
		func(w window) time.Time { return w.start },
		func(w window) *time.Time { return w.end },
		ref)
}

func TestResolveActive(t *testing.T) {
	ref := date(2024, time.June, 15)

	if got := resolve(nil, ref); got != nil {
		t.Fatalf("empty input: %+v", got)
	}

	single := []window{
		{"past", date(2023, time.January, 1), datePtr(2023, time.December, 31)},
		{"now", date(2024, time.January, 1), datePtr(2024, time.December, 31)},
		{"future", date(2024, time.July, 1), nil},
	}
	if got := resolve(single, ref); got == nil || got.id != "now" {
		t.Fatalf("single active: %+v", got)
	}

	overlapping := []window{
		{"late", date(2024, time.June, 1), nil},
		{"early", date(2024, time.January, 1), nil},
	}
	if got := resolve(overlapping, ref); got == nil || got.id != "late" {
		t.Fatalf("overlap should pick the latest start: %+v", got)
	}

	tied := []window{
		{"first", date(2024, time.June, 1), nil},
		{"second", date(2024, time.June, 1), datePtr(2024, time.June, 30)},
	}
	if got := resolve(tied, ref); got == nil || got.id != "first" {
		t.Fatalf("equal starts should keep input order: %+v", got)
	}

	none := []window{{"ended", date(2024, time.January, 1), datePtr(2024, time.June, 14)}}
	if got := resolve(none, ref); got != nil {
		t.Fatalf("no active item: %+v", got)
	}
}

func TestIsActiveBoundaries(t *testing.T) {
	ref := date(2024, time.June, 15)
	if !IsActive(ref, datePtr(2024, time.June, 15), ref.Add(20*time.Hour)) {
		t.Fatal("window of one day should contain that day")
	}
	if IsActive(ref.AddDate(0, 0, 1), nil, ref) {
		t.Fatal("window starting tomorrow is not active")
	}
	if IsActive(date(2024, time.January, 1), datePtr(2024, time.June, 14), ref) {
		t.Fatal("window ended yesterday is not active")
	}
}

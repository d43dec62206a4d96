package history

import (
	"errors"
	"testing"
	"time"
)

type dated struct {
	name string
	on   time.Time
}

func TestFilterBoundaries(t *testing.T) {
	start, end := date(2024, time.June, 1), date(2024, time.June, 30)
	p, err := NewPeriod(start, end)
	if err != nil {
		t.Fatalf("NewPeriod: %v", err)
	}

	records := []dated{
		{"start-1", start.AddDate(0, 0, -1)},
		{"start", start},
		{"middle", date(2024, time.June, 15)},
		{"end late in the day", end.Add(23*time.Hour + 59*time.Minute)},
		{"end+1", end.AddDate(0, 0, 1)},
	}
	got, err := Filter(records, func(r dated) time.Time { return r.on }, p)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	want := []string{"start", "middle", "end late in the day"}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d: %+v", len(got), len(want), got)
	}
	for i, r := range got {
		if r.name != want[i] {
			t.Fatalf("record %d = %q, want %q", i, r.name, want[i])
		}
	}
}

func TestFilterEmptyInput(t *testing.T) {
	p, _ := NewPeriod(date(2024, time.January, 1), date(2024, time.January, 31))
	got, err := Filter([]dated{}, func(r dated) time.Time { return r.on }, p)
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("got %v, %v; want empty slice", got, err)
	}
}

func TestFilterRejectsReversedPeriod(t *testing.T) {
	p := Period{Start: date(2025, time.June, 1), End: date(2025, time.January, 1)}
	if _, err := Filter([]dated{}, func(r dated) time.Time { return r.on }, p); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("err = %v, want %s", err, KindInvalidPeriod)
	}
	if _, err := NewPeriod(p.Start, p.End); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("NewPeriod err = %v", err)
	}
}

func TestSingleDayPeriod(t *testing.T) {
	d := date(2024, time.February, 29)
	p, err := NewPeriod(d.Add(15*time.Hour), d)
	if err != nil {
		t.Fatalf("same-day period must be valid: %v", err)
	}
	if !p.Contains(d.Add(time.Hour)) || p.Contains(d.AddDate(0, 0, 1)) {
		t.Fatal("single-day period should hold exactly that day")
	}
}

func TestOverlaps(t *testing.T) {
	p, _ := NewPeriod(date(2024, time.June, 1), date(2024, time.June, 30))
	tests := []struct {
		name  string
		start time.Time
		end   *time.Time
		want  bool
	}{
		{"spans whole year", date(2024, time.January, 1), datePtr(2024, time.December, 31), true},
		{"ends on first day", date(2024, time.May, 1), datePtr(2024, time.June, 1), true},
		{"ends the day before", date(2024, time.May, 1), datePtr(2024, time.May, 31), false},
		{"starts on last day", date(2024, time.June, 30), nil, true},
		{"starts the day after", date(2024, time.July, 1), nil, false},
		{"open-ended from before", date(2023, time.March, 1), nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Overlaps(tt.start, tt.end); got != tt.want {
				t.Fatalf("Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDayNormalisesToUTC(t *testing.T) {
	sp := time.FixedZone("BRT", -3*60*60)
	local := time.Date(2024, time.June, 30, 22, 0, 0, 0, sp)
	if got := Day(local); !got.Equal(date(2024, time.July, 1)) {
		t.Fatalf("Day = %s", got)
	}
}

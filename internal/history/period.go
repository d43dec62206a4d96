package history

import "time"

const dateLayout = "2006-01-02"

// Day truncates t to its calendar day. All history dates are compared as UTC days.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Period is a closed range of calendar days [Start, End].
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewPeriod normalises both ends to days and rejects start after end.
func NewPeriod(start, end time.Time) (Period, error) {
	p := Period{Start: Day(start), End: Day(end)}
	if err := p.validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

func (p Period) validate() error {
	if Day(p.Start).After(Day(p.End)) {
		return invalidPeriod("start %s is after end %s", p.Start.Format(dateLayout), p.End.Format(dateLayout))
	}
	return nil
}

// Contains reports whether t falls on a day inside the period.
func (p Period) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(Day(p.Start)) && !d.After(Day(p.End))
}

// Overlaps reports whether the window [start, end] shares at least one day
// with the period. A nil end means the window is open-ended.
func (p Period) Overlaps(start time.Time, end *time.Time) bool {
	if Day(start).After(Day(p.End)) {
		return false
	}
	return end == nil || !Day(*end).Before(Day(p.Start))
}

func (p Period) String() string {
	return p.Start.Format(dateLayout) + ".." + p.End.Format(dateLayout)
}

// Filter returns, in their original order, the records whose date falls
// inside the period.
func Filter[T any](records []T, dateOf func(T) time.Time, p Period) ([]T, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if p.Contains(dateOf(r)) {
			out = append(out, r)
		}
	}
	return out, nil
}

// FilterOverlapping is Filter for records that span a window of days
// (enrollments, workout plans): a record is kept when its window overlaps
// the period.
func FilterOverlapping[T any](records []T, startOf func(T) time.Time, endOf func(T) *time.Time, p Period) ([]T, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if p.Overlaps(startOf(r), endOf(r)) {
			out = append(out, r)
		}
	}
	return out, nil
}

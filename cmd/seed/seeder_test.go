package main

import (
	"testing"
	"time"
)

func TestTrainingDays(t *testing.T) {
	// 2024-06-03 is a Monday.
	from := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	days := trainingDays(from, from.AddDate(0, 0, 13))
	if len(days) != 6 {
		t.Fatalf("len = %d, want 6", len(days))
	}
	for _, d := range days {
		switch d.Weekday() {
		case time.Monday, time.Wednesday, time.Friday:
		default:
			t.Fatalf("unexpected weekday %s", d.Weekday())
		}
	}
}

func TestMonthlyDueDates(t *testing.T) {
	from := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	dates := monthlyDueDates(from, time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC))
	if len(dates) != 4 {
		t.Fatalf("len = %d, want 4 (end date inclusive)", len(dates))
	}
	if !dates[3].Equal(time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("last due date = %s", dates[3])
	}
	if got := monthlyDueDates(from, from.AddDate(0, 0, -1)); len(got) != 0 {
		t.Fatalf("empty range returned %v", got)
	}
}

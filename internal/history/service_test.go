package history

import (
	"alcyxob/gym-app/internal/domain"
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestServiceShortcutRanges(t *testing.T) {
	fx := scenarioA()
	fx.store.attendance = append(fx.store.attendance, domain.AttendanceRecord{
		ID: primitive.NewObjectID(), MemberID: fx.member.ID, Date: date(2025, time.March, 1), Present: true,
	})
	svc := NewService(newTestAggregator(fx.store), false)
	ctx := context.Background()

	tests := []struct {
		name  string
		build func(context.Context, primitive.ObjectID, Options) (*Dossier, error)
		start time.Time
	}{
		{"last month", svc.BuildLastMonth, date(2025, time.February, 8)},
		{"last three months", svc.BuildLastThreeMonths, date(2024, time.December, 10)},
		{"current year", svc.BuildCurrentYear, date(2025, time.January, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.build(ctx, fx.member.ID, Options{})
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if d.Period == nil || !d.Period.Start.Equal(tt.start) || !d.Period.End.Equal(date(2025, time.March, 10)) {
				t.Fatalf("period = %+v, want %s..2025-03-10", d.Period, tt.start.Format(dateLayout))
			}
			if d.Statistics.PresentDays != 1 {
				t.Fatalf("present days = %d", d.Statistics.PresentDays)
			}
		})
	}
}

func TestServiceFullAndRange(t *testing.T) {
	fx := scenarioA()
	svc := NewService(newTestAggregator(fx.store), false)

	full, err := svc.BuildFullHistory(context.Background(), fx.member.ID, Options{})
	if err != nil {
		t.Fatalf("BuildFullHistory: %v", err)
	}
	if full.Period != nil {
		t.Fatalf("full history has no period, got %+v", full.Period)
	}
	// The 2024 enrollment is over by 2025-03-10.
	if full.CurrentEnrollment != nil || full.Statistics.HasActiveEnrollment {
		t.Fatalf("current enrollment = %+v", full.CurrentEnrollment)
	}

	ranged, err := svc.BuildHistoryInRange(context.Background(), fx.member.ID, date(2024, time.June, 1), date(2024, time.June, 30), Options{})
	if err != nil {
		t.Fatalf("BuildHistoryInRange: %v", err)
	}
	if ranged.CurrentEnrollment == nil {
		t.Fatal("enrollment is active at the end of the range")
	}
}

func TestServiceStrictDefault(t *testing.T) {
	fx := scenarioA()
	fx.store.errs["attendance"] = errors.New("boom")

	lenient := NewService(newTestAggregator(fx.store), false)
	if _, err := lenient.BuildFullHistory(context.Background(), fx.member.ID, Options{}); err != nil {
		t.Fatalf("lenient build: %v", err)
	}
	strict := NewService(newTestAggregator(fx.store), true)
	if _, err := strict.BuildFullHistory(context.Background(), fx.member.ID, Options{}); !errors.Is(err, ErrAggregation) {
		t.Fatalf("strict build err = %v", err)
	}
}

package history

import (
	"alcyxob/gym-app/internal/domain"
	"time"

	"github.com/shopspring/decimal"
)

// Age returns the whole years between birth and ref, or nil when the birth
// date is unknown or lies after ref.
func Age(birth *time.Time, ref time.Time) *int {
	if birth == nil || birth.IsZero() {
		return nil
	}
	b, r := Day(*birth), Day(ref)
	if b.After(r) {
		return nil
	}
	years := r.Year() - b.Year()
	if r.Month() < b.Month() || (r.Month() == b.Month() && r.Day() < b.Day()) {
		years--
	}
	return &years
}

// BMI is weight / height² rounded half-up to two decimals; nil when either
// input is missing or height is not positive.
func BMI(weight, height *float64) *float64 {
	return domain.BodyMassIndex(weight, height)
}

// AttendanceRate is present/total as a percentage with two decimals.
// It is 0 when there are no records.
func AttendanceRate(present, total int) float64 {
	if total <= 0 {
		return 0
	}
	return domain.QuoHalfUp2(decimal.NewFromInt(int64(present)*100), decimal.NewFromInt(int64(total)))
}

// TenureDays counts the whole days from the first enrollment start to ref.
// It is nil when the member never enrolled and 0 when the start is after ref.
func TenureDays(firstStart *time.Time, ref time.Time) *int {
	if firstStart == nil || firstStart.IsZero() {
		return nil
	}
	days := int(Day(ref).Sub(Day(*firstStart)).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}

// TotalPaid sums the payment amounts in decimal so the total does not pick
// up float noise.
func TotalPaid(payments []domain.Payment) float64 {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(decimal.NewFromFloat(p.Amount))
	}
	f, _ := total.Round(2).Float64()
	return f
}

// earliestStart returns the earliest enrollment start, or nil for none.
func earliestStart(enrollments []domain.Enrollment) *time.Time {
	var first *time.Time
	for i := range enrollments {
		s := enrollments[i].StartDate
		if s.IsZero() {
			continue
		}
		if first == nil || s.Before(*first) {
			first = &s
		}
	}
	return first
}

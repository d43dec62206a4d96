package history

import (
	"alcyxob/gym-app/internal/domain"
	"fmt"
)

// The check* functions return a description of why a record is corrupt, or
// "" when it is usable. Corrupt records are reported and left out of the
// dossier lists and statistics.

func checkEnrollment(e domain.Enrollment) string {
	switch {
	case e.StartDate.IsZero():
		return "enrollment has no start date"
	case e.EndDate != nil && Day(*e.EndDate).Before(Day(e.StartDate)):
		return "enrollment ends before it starts"
	case !e.Status.Valid():
		return fmt.Sprintf("unknown enrollment status %q", e.Status)
	}
	return ""
}

func checkWorkoutPlan(p domain.WorkoutPlan) string {
	switch {
	case p.StartDate.IsZero():
		return "workout plan has no start date"
	case p.DurationWeeks < 0:
		return fmt.Sprintf("negative plan duration %d", p.DurationWeeks)
	}
	for _, ex := range p.Exercises {
		if ex.Sets < 0 || ex.Reps < 0 || (ex.Load != nil && *ex.Load < 0) {
			return "exercise assignment with negative sets, reps or load"
		}
	}
	return ""
}

func checkAssessment(a domain.Assessment) string {
	switch {
	case a.AssessedOn.IsZero():
		return "assessment has no date"
	case a.Weight != nil && *a.Weight < 0:
		return fmt.Sprintf("negative weight %.2f", *a.Weight)
	case a.Height != nil && *a.Height < 0:
		return fmt.Sprintf("negative height %.2f", *a.Height)
	case a.BodyFatPercent != nil && (*a.BodyFatPercent < 0 || *a.BodyFatPercent > 100):
		return fmt.Sprintf("body fat %.2f%% out of range", *a.BodyFatPercent)
	}
	return ""
}

func checkAttendance(r domain.AttendanceRecord) string {
	if r.Date.IsZero() {
		return "attendance record has no date"
	}
	return ""
}

func checkPayment(p domain.Payment) string {
	switch {
	case p.PaidOn.IsZero():
		return "payment has no date"
	case p.Amount < 0:
		return fmt.Sprintf("negative amount %.2f", p.Amount)
	}
	return ""
}

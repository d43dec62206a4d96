package history

import (
	"alcyxob/gym-app/internal/domain"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tombstones shown in place of references that no longer resolve.
const (
	RemovedInstructor = "[Instructor removed]"
	RemovedExercise   = "[Exercise removed]"
	RemovedPlan       = "[Plan removed]"
)

func indexByID[T any](items []T, idOf func(T) primitive.ObjectID) map[primitive.ObjectID]T {
	out := make(map[primitive.ObjectID]T, len(items))
	for _, it := range items {
		out[idOf(it)] = it
	}
	return out
}

// collectIDs returns the distinct non-nil ids produced by each, in first-seen order.
func collectIDs(n int, idAt func(int) primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, n)
	ids := make([]primitive.ObjectID, 0, n)
	for i := 0; i < n; i++ {
		id := idAt(i)
		if id == primitive.NilObjectID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func missingRef(section Section, recordID primitive.ObjectID, what string, refID primitive.ObjectID) Issue {
	return Issue{
		Kind:     KindMissingData,
		Section:  section,
		RecordID: recordID.Hex(),
		Message:  fmt.Sprintf("%s %s not found", what, refID.Hex()),
	}
}

func mapEnrollment(e domain.Enrollment, plans map[primitive.ObjectID]domain.SubscriptionPlan, ref time.Time) (EnrollmentSummary, *Issue) {
	s := EnrollmentSummary{
		ID:        e.ID.Hex(),
		PlanID:    e.PlanID.Hex(),
		StartDate: Day(e.StartDate),
		EndDate:   dayPtr(e.EndDate),
		Status:    e.Status,
		Active:    IsActive(e.StartDate, e.EndDate, ref),
	}
	plan, ok := plans[e.PlanID]
	if !ok {
		s.PlanName = RemovedPlan
		issue := missingRef(SectionEnrollments, e.ID, "subscription plan", e.PlanID)
		return s, &issue
	}
	price := plan.Price
	s.PlanName = plan.Name
	s.PlanPrice = &price
	return s, nil
}

func mapWorkoutPlan(p domain.WorkoutPlan, instructors map[primitive.ObjectID]domain.User, exercises map[primitive.ObjectID]domain.Exercise, ref time.Time) (WorkoutPlanSummary, []Issue) {
	var issues []Issue
	s := WorkoutPlanSummary{
		ID:            p.ID.Hex(),
		InstructorID:  p.InstructorID.Hex(),
		Objective:     p.Objective,
		StartDate:     Day(p.StartDate),
		EndDate:       dayPtr(p.EndDate()),
		DurationWeeks: p.DurationWeeks,
		Exercises:     make([]ExerciseSummary, 0, len(p.Exercises)),
		Current:       IsActive(p.StartDate, p.EndDate(), ref),
	}
	if u, ok := instructors[p.InstructorID]; ok {
		s.InstructorName = u.Name
	} else {
		s.InstructorName = RemovedInstructor
		issues = append(issues, missingRef(SectionWorkoutPlans, p.ID, "instructor", p.InstructorID))
	}
	for _, a := range p.Exercises {
		es := ExerciseSummary{
			ExerciseID: a.ExerciseID.Hex(),
			Sets:       a.Sets,
			Reps:       a.Reps,
			Load:       a.Load,
			Notes:      a.Notes,
		}
		if ex, ok := exercises[a.ExerciseID]; ok {
			es.Name = ex.Name
			es.MuscleGroup = ex.MuscleGroup
		} else {
			es.Name = RemovedExercise
			issues = append(issues, missingRef(SectionWorkoutPlans, p.ID, "exercise", a.ExerciseID))
		}
		s.Exercises = append(s.Exercises, es)
	}
	return s, issues
}

func mapAssessment(a domain.Assessment, instructors map[primitive.ObjectID]domain.User) (AssessmentSummary, *Issue) {
	s := AssessmentSummary{
		ID:             a.ID.Hex(),
		AssessedOn:     Day(a.AssessedOn),
		InstructorID:   a.InstructorID.Hex(),
		Weight:         a.Weight,
		Height:         a.Height,
		BodyFatPercent: a.BodyFatPercent,
		BMI:            a.BMI(),
		Measurements:   a.Measurements,
	}
	if u, ok := instructors[a.InstructorID]; ok {
		s.InstructorName = u.Name
		return s, nil
	}
	s.InstructorName = RemovedInstructor
	issue := missingRef(SectionAssessments, a.ID, "instructor", a.InstructorID)
	return s, &issue
}

func mapPayment(p domain.Payment) PaymentSummary {
	return PaymentSummary{
		ID:           p.ID.Hex(),
		EnrollmentID: p.EnrollmentID.Hex(),
		PaidOn:       Day(p.PaidOn),
		Amount:       p.Amount,
		Method:       p.Method,
	}
}

// summarizeAttendance buckets records by month, oldest month first.
func summarizeAttendance(records []domain.AttendanceRecord) []MonthlyAttendance {
	byMonth := map[string]*MonthlyAttendance{}
	for _, r := range records {
		key := Day(r.Date).Format("2006-01")
		m, ok := byMonth[key]
		if !ok {
			m = &MonthlyAttendance{Month: key}
			byMonth[key] = m
		}
		m.Total++
		if r.Present {
			m.Present++
		} else {
			m.Absent++
		}
	}
	out := make([]MonthlyAttendance, 0, len(byMonth))
	for _, m := range byMonth {
		m.Rate = AttendanceRate(m.Present, m.Total)
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func dayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := Day(*t)
	return &d
}

package history

import (
	"alcyxob/gym-app/internal/domain"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSummarizeAttendance(t *testing.T) {
	var records []domain.AttendanceRecord
	// Deliberately out of order.
	for _, r := range []struct {
		on      time.Time
		present bool
	}{
		{date(2024, time.July, 2), true},
		{date(2024, time.June, 3), true},
		{date(2024, time.June, 4), false},
		{date(2024, time.July, 1), false},
		{date(2024, time.June, 5), true},
	} {
		records = append(records, domain.AttendanceRecord{Date: r.on, Present: r.present})
	}

	got := summarizeAttendance(records)
	if len(got) != 2 {
		t.Fatalf("buckets = %+v", got)
	}
	june, july := got[0], got[1]
	if june.Month != "2024-06" || june.Present != 2 || june.Absent != 1 || june.Total != 3 || june.Rate != 66.67 {
		t.Fatalf("june = %+v", june)
	}
	if july.Month != "2024-07" || july.Rate != 50 {
		t.Fatalf("july = %+v", july)
	}
	if empty := summarizeAttendance(nil); empty == nil || len(empty) != 0 {
		t.Fatalf("no records should give an empty list, got %v", empty)
	}
}

func TestMapWorkoutPlanCurrentFlag(t *testing.T) {
	instructor := domain.User{ID: primitive.NewObjectID(), Name: "Bia"}
	plan := domain.WorkoutPlan{
		ID:            primitive.NewObjectID(),
		InstructorID:  instructor.ID,
		StartDate:     date(2024, time.June, 1),
		DurationWeeks: 2,
	}
	instructors := map[primitive.ObjectID]domain.User{instructor.ID: instructor}

	s, issues := mapWorkoutPlan(plan, instructors, nil, date(2024, time.June, 14))
	if len(issues) != 0 {
		t.Fatalf("issues = %+v", issues)
	}
	if !s.Current || s.EndDate == nil || !s.EndDate.Equal(date(2024, time.June, 14)) {
		t.Fatalf("summary = %+v", s)
	}
	if s.Exercises == nil {
		t.Fatal("exercises should be an empty list, not null")
	}

	s, _ = mapWorkoutPlan(plan, instructors, nil, date(2024, time.June, 15))
	if s.Current {
		t.Fatal("plan is over on day 15")
	}
}

func TestMapAssessmentMissingInstructor(t *testing.T) {
	a := domain.Assessment{
		ID:           primitive.NewObjectID(),
		InstructorID: primitive.NewObjectID(),
		AssessedOn:   date(2024, time.June, 1),
		Weight:       f64(80.5),
		Height:       f64(1.75),
	}
	s, issue := mapAssessment(a, map[primitive.ObjectID]domain.User{})
	if s.InstructorName != RemovedInstructor {
		t.Fatalf("instructor = %q", s.InstructorName)
	}
	if issue == nil || issue.Kind != KindMissingData || issue.RecordID != a.ID.Hex() {
		t.Fatalf("issue = %+v", issue)
	}
	if s.BMI == nil || *s.BMI != 26.29 {
		t.Fatalf("bmi = %v", s.BMI)
	}
}

func TestCollectIDsDedupes(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	src := []primitive.ObjectID{a, primitive.NilObjectID, b, a}
	got := collectIDs(len(src), func(i int) primitive.ObjectID { return src[i] })
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("ids = %v", got)
	}
}

func TestCheckRecords(t *testing.T) {
	if msg := checkEnrollment(domain.Enrollment{StartDate: date(2024, time.June, 1), EndDate: datePtr(2024, time.May, 1), Status: domain.EnrollmentActive}); msg == "" {
		t.Fatal("end before start should be corrupt")
	}
	if msg := checkEnrollment(domain.Enrollment{StartDate: date(2024, time.June, 1), Status: "EXPIRED"}); msg == "" {
		t.Fatal("unknown status should be corrupt")
	}
	if msg := checkEnrollment(domain.Enrollment{StartDate: date(2024, time.June, 1), Status: domain.EnrollmentPending}); msg != "" {
		t.Fatalf("valid enrollment flagged: %s", msg)
	}
	if msg := checkAssessment(domain.Assessment{AssessedOn: date(2024, time.June, 1), BodyFatPercent: f64(101)}); msg == "" {
		t.Fatal("body fat over 100 should be corrupt")
	}
	if msg := checkWorkoutPlan(domain.WorkoutPlan{StartDate: date(2024, time.June, 1), Exercises: []domain.ExerciseAssignment{{Sets: -1}}}); msg == "" {
		t.Fatal("negative sets should be corrupt")
	}
	if msg := checkAttendance(domain.AttendanceRecord{}); msg == "" {
		t.Fatal("attendance without a date should be corrupt")
	}
}

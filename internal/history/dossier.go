package history

import (
	"alcyxob/gym-app/internal/domain"
	"time"
)

// Section names one of the five record sources merged into a dossier.
type Section string

const (
	SectionEnrollments  Section = "enrollments"
	SectionWorkoutPlans Section = "workoutPlans"
	SectionAssessments  Section = "assessments"
	SectionAttendance   Section = "attendance"
	SectionPayments     Section = "payments"
)

var allSections = []Section{
	SectionEnrollments,
	SectionWorkoutPlans,
	SectionAssessments,
	SectionAttendance,
	SectionPayments,
}

// SectionState is the outcome of fetching one section.
type SectionState string

const (
	SectionOK       SectionState = "ok"
	SectionEmpty    SectionState = "empty"
	SectionDegraded SectionState = "degraded"
)

type SectionStatus struct {
	State   SectionState `json:"state"`
	Records int          `json:"records"`
	Reason  string       `json:"reason,omitempty"`
}

// Issue is a data-quality finding that did not abort the build.
type Issue struct {
	Kind     Kind    `json:"kind"`
	Section  Section `json:"section"`
	RecordID string  `json:"recordId,omitempty"`
	Message  string  `json:"message"`
}

// Dossier is the consolidated history of one member. It is built per request
// and never stored.
type Dossier struct {
	ReportID      string    `json:"reportId"`
	GeneratedAt   time.Time `json:"generatedAt"`
	ReferenceDate time.Time `json:"referenceDate"`
	Period        *Period   `json:"period,omitempty"`

	Member     MemberInfo `json:"member"`
	Statistics Statistics `json:"statistics"`

	Enrollments        []EnrollmentSummary  `json:"enrollments"`
	CurrentEnrollment  *EnrollmentSummary   `json:"currentEnrollment,omitempty"`
	WorkoutPlans       []WorkoutPlanSummary `json:"workoutPlans"`
	CurrentWorkoutPlan *WorkoutPlanSummary  `json:"currentWorkoutPlan,omitempty"`
	Assessments        []AssessmentSummary  `json:"assessments"`
	Payments           []PaymentSummary     `json:"payments"`
	Attendance         []MonthlyAttendance  `json:"attendance"`

	Sections map[Section]SectionStatus `json:"sections"`
	Issues   []Issue                   `json:"issues"`
	// Partial is true when at least one section is degraded.
	Partial bool `json:"partial"`
}

type MemberInfo struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	NationalID string     `json:"nationalId"`
	JoinDate   time.Time  `json:"joinDate"`
	BirthDate  *time.Time `json:"birthDate,omitempty"`
	Age        *int       `json:"age"`
}

type Statistics struct {
	Age                  *int     `json:"age"`
	TenureDays           *int     `json:"tenureDays"`
	TotalPaid            float64  `json:"totalPaid"`
	AttendanceRate       float64  `json:"attendanceRate"`
	PresentDays          int      `json:"presentDays"`
	AbsentDays           int      `json:"absentDays"`
	EnrollmentCount      int      `json:"enrollmentCount"`
	WorkoutPlanCount     int      `json:"workoutPlanCount"`
	AssessmentCount      int      `json:"assessmentCount"`
	PaymentCount         int      `json:"paymentCount"`
	LatestBMI            *float64 `json:"latestBmi"`
	HasActiveEnrollment  bool     `json:"hasActiveEnrollment"`
	HasActiveWorkoutPlan bool     `json:"hasActiveWorkoutPlan"`
}

type EnrollmentSummary struct {
	ID        string                  `json:"id"`
	PlanID    string                  `json:"planId"`
	PlanName  string                  `json:"planName"`
	PlanPrice *float64                `json:"planPrice,omitempty"`
	StartDate time.Time               `json:"startDate"`
	EndDate   *time.Time              `json:"endDate,omitempty"`
	Status    domain.EnrollmentStatus `json:"status"`
	Active    bool                    `json:"active"`
}

type ExerciseSummary struct {
	ExerciseID  string   `json:"exerciseId"`
	Name        string   `json:"name"`
	MuscleGroup string   `json:"muscleGroup,omitempty"`
	Sets        int      `json:"sets"`
	Reps        int      `json:"reps"`
	Load        *float64 `json:"load,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

type WorkoutPlanSummary struct {
	ID             string            `json:"id"`
	InstructorID   string            `json:"instructorId"`
	InstructorName string            `json:"instructorName"`
	Objective      string            `json:"objective,omitempty"`
	StartDate      time.Time         `json:"startDate"`
	EndDate        *time.Time        `json:"endDate,omitempty"`
	DurationWeeks  int               `json:"durationWeeks"`
	Exercises      []ExerciseSummary `json:"exercises"`
	// Current is true when the plan's window contains the reference date.
	Current bool `json:"current"`
}

type AssessmentSummary struct {
	ID             string    `json:"id"`
	AssessedOn     time.Time `json:"assessedOn"`
	InstructorID   string    `json:"instructorId"`
	InstructorName string    `json:"instructorName"`
	Weight         *float64  `json:"weight,omitempty"`
	Height         *float64  `json:"height,omitempty"`
	BodyFatPercent *float64  `json:"bodyFatPercent,omitempty"`
	BMI            *float64  `json:"bmi"`
	Measurements   string    `json:"measurements,omitempty"`
}

type PaymentSummary struct {
	ID           string               `json:"id"`
	EnrollmentID string               `json:"enrollmentId"`
	PaidOn       time.Time            `json:"paidOn"`
	Amount       float64              `json:"amount"`
	Method       domain.PaymentMethod `json:"method"`
}

// MonthlyAttendance buckets attendance records by calendar month ("2024-06").
type MonthlyAttendance struct {
	Month   string  `json:"month"`
	Present int     `json:"present"`
	Absent  int     `json:"absent"`
	Total   int     `json:"total"`
	Rate    float64 `json:"rate"`
}

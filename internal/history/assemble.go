package history

import (
	"alcyxob/gym-app/internal/domain"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// assembler turns fetched records into a Dossier. Records that fail shape
// checks or belong to another member are dropped and reported as issues.
type assembler struct {
	memberID primitive.ObjectID
	issues   []Issue
}

func (as *assembler) report(kind Kind, section Section, recordID primitive.ObjectID, msg string) {
	as.issues = append(as.issues, Issue{Kind: kind, Section: section, RecordID: recordID.Hex(), Message: msg})
}

// keep applies the ownership and shape checks shared by every section.
func (as *assembler) keep(section Section, id, owner primitive.ObjectID, corrupt string) bool {
	if owner != as.memberID {
		as.report(KindDataIntegrity, section, id, fmt.Sprintf("record belongs to member %s", owner.Hex()))
		return false
	}
	if corrupt != "" {
		as.report(KindCorruptData, section, id, corrupt)
		return false
	}
	return true
}

func assemble(member *domain.Member, p *Period, ref, today time.Time, data fetched, failures map[Section]error) *Dossier {
	as := &assembler{memberID: member.ID}

	d := &Dossier{
		ReferenceDate: ref,
		Period:        p,
		Member: MemberInfo{
			ID:         member.ID.Hex(),
			Name:       member.Name,
			NationalID: member.NationalID,
			JoinDate:   Day(member.JoinDate),
			BirthDate:  dayPtr(member.BirthDate),
			Age:        Age(member.BirthDate, today),
		},
		Sections: make(map[Section]SectionStatus, len(allSections)),
	}

	// Enrollments. The unfiltered list feeds tenure and payment ownership.
	var allEnrollments []domain.Enrollment
	for _, e := range data.allEnrollments {
		if e.MemberID == member.ID && checkEnrollment(e) == "" {
			allEnrollments = append(allEnrollments, e)
		}
	}
	enrollments := make([]domain.Enrollment, 0, len(data.enrollments))
	for _, e := range data.enrollments {
		if as.keep(SectionEnrollments, e.ID, e.MemberID, checkEnrollment(e)) {
			enrollments = append(enrollments, e)
		}
	}
	sort.SliceStable(enrollments, func(i, j int) bool { return enrollments[i].StartDate.Before(enrollments[j].StartDate) })
	d.Enrollments = make([]EnrollmentSummary, 0, len(enrollments))
	for _, e := range enrollments {
		s, issue := mapEnrollment(e, data.plans, ref)
		if issue != nil {
			as.issues = append(as.issues, *issue)
		}
		d.Enrollments = append(d.Enrollments, s)
	}
	if cur := ResolveActive(d.Enrollments, summaryStart, summaryEnd, ref); cur != nil {
		c := *cur
		d.CurrentEnrollment = &c
	}

	// Workout plans
	plans := make([]domain.WorkoutPlan, 0, len(data.workoutPlans))
	for _, wp := range data.workoutPlans {
		if as.keep(SectionWorkoutPlans, wp.ID, wp.MemberID, checkWorkoutPlan(wp)) {
			plans = append(plans, wp)
		}
	}
	sort.SliceStable(plans, func(i, j int) bool { return plans[i].StartDate.Before(plans[j].StartDate) })
	d.WorkoutPlans = make([]WorkoutPlanSummary, 0, len(plans))
	for _, wp := range plans {
		s, issues := mapWorkoutPlan(wp, data.instructors, data.exercises, ref)
		as.issues = append(as.issues, issues...)
		d.WorkoutPlans = append(d.WorkoutPlans, s)
	}
	if cur := ResolveActive(d.WorkoutPlans, planSummaryStart, planSummaryEnd, ref); cur != nil {
		c := *cur
		d.CurrentWorkoutPlan = &c
	}

	// Assessments
	assessments := make([]domain.Assessment, 0, len(data.assessments))
	for _, a := range data.assessments {
		if as.keep(SectionAssessments, a.ID, a.MemberID, checkAssessment(a)) {
			assessments = append(assessments, a)
		}
	}
	sort.SliceStable(assessments, func(i, j int) bool { return assessments[i].AssessedOn.Before(assessments[j].AssessedOn) })
	d.Assessments = make([]AssessmentSummary, 0, len(assessments))
	for _, a := range assessments {
		s, issue := mapAssessment(a, data.instructors)
		if issue != nil {
			as.issues = append(as.issues, *issue)
		}
		d.Assessments = append(d.Assessments, s)
	}

	// Attendance
	attendance := make([]domain.AttendanceRecord, 0, len(data.attendance))
	for _, r := range data.attendance {
		if as.keep(SectionAttendance, r.ID, r.MemberID, checkAttendance(r)) {
			attendance = append(attendance, r)
		}
	}
	d.Attendance = summarizeAttendance(attendance)

	// Payments. Ownership through the enrollment can only be checked when
	// the enrollment list is known.
	_, enrollmentsFailed := failures[SectionEnrollments]
	owned := make(map[primitive.ObjectID]struct{}, len(allEnrollments))
	for _, e := range allEnrollments {
		owned[e.ID] = struct{}{}
	}
	payments := make([]domain.Payment, 0, len(data.payments))
	for _, pay := range data.payments {
		if !as.keep(SectionPayments, pay.ID, pay.MemberID, checkPayment(pay)) {
			continue
		}
		if !enrollmentsFailed {
			if _, ok := owned[pay.EnrollmentID]; !ok {
				as.report(KindDataIntegrity, SectionPayments, pay.ID,
					fmt.Sprintf("enrollment %s is not one of the member's enrollments", pay.EnrollmentID.Hex()))
				continue
			}
		}
		payments = append(payments, pay)
	}
	sort.SliceStable(payments, func(i, j int) bool { return payments[i].PaidOn.Before(payments[j].PaidOn) })
	d.Payments = make([]PaymentSummary, 0, len(payments))
	for _, pay := range payments {
		d.Payments = append(d.Payments, mapPayment(pay))
	}

	d.Statistics = computeStatistics(d, allEnrollments, attendance, payments)

	counts := map[Section]int{
		SectionEnrollments:  len(d.Enrollments),
		SectionWorkoutPlans: len(d.WorkoutPlans),
		SectionAssessments:  len(d.Assessments),
		SectionAttendance:   len(attendance),
		SectionPayments:     len(d.Payments),
	}
	for _, s := range allSections {
		if err, failed := failures[s]; failed {
			d.Sections[s] = SectionStatus{State: SectionDegraded, Reason: err.Error()}
			d.Partial = true
			continue
		}
		state := SectionOK
		if counts[s] == 0 {
			state = SectionEmpty
		}
		d.Sections[s] = SectionStatus{State: state, Records: counts[s]}
	}

	d.Issues = as.issues
	if d.Issues == nil {
		d.Issues = []Issue{}
	}
	return d
}

func computeStatistics(d *Dossier, allEnrollments []domain.Enrollment, attendance []domain.AttendanceRecord, payments []domain.Payment) Statistics {
	st := Statistics{
		Age:                  d.Member.Age,
		TenureDays:           TenureDays(earliestStart(allEnrollments), d.ReferenceDate),
		TotalPaid:            TotalPaid(payments),
		EnrollmentCount:      len(d.Enrollments),
		WorkoutPlanCount:     len(d.WorkoutPlans),
		AssessmentCount:      len(d.Assessments),
		PaymentCount:         len(d.Payments),
		HasActiveEnrollment:  d.CurrentEnrollment != nil,
		HasActiveWorkoutPlan: d.CurrentWorkoutPlan != nil,
	}
	for _, r := range attendance {
		if r.Present {
			st.PresentDays++
		} else {
			st.AbsentDays++
		}
	}
	st.AttendanceRate = AttendanceRate(st.PresentDays, st.PresentDays+st.AbsentDays)
	for i := len(d.Assessments) - 1; i >= 0; i-- {
		if bmi := d.Assessments[i].BMI; bmi != nil {
			v := *bmi
			st.LatestBMI = &v
			break
		}
	}
	return st
}

func summaryStart(s EnrollmentSummary) time.Time     { return s.StartDate }
func summaryEnd(s EnrollmentSummary) *time.Time      { return s.EndDate }
func planSummaryStart(s WorkoutPlanSummary) time.Time { return s.StartDate }
func planSummaryEnd(s WorkoutPlanSummary) *time.Time  { return s.EndDate }

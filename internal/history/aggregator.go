package history

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/logger"
	"alcyxob/gym-app/internal/repository"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// Options tune a single build.
type Options struct {
	// Strict turns any section failure into ErrAggregation instead of a
	// partial dossier.
	Strict bool
	// ToDate accepts an end date in the future and clamps it to today.
	ToDate bool
}

// Aggregator builds member dossiers from the record sources. It holds no
// per-request state and is safe for concurrent use.
type Aggregator struct {
	src          Sources
	log          *logger.Logger
	fetchTimeout time.Duration
	now          func() time.Time
	newID        func() string
}

// AggregatorOption customises an Aggregator.
type AggregatorOption func(*Aggregator)

// WithClock replaces time.Now, which decides "today".
func WithClock(now func() time.Time) AggregatorOption {
	return func(a *Aggregator) { a.now = now }
}

// WithFetchTimeout bounds the fetch stage when the caller context carries no
// deadline of its own. Zero disables the bound.
func WithFetchTimeout(d time.Duration) AggregatorOption {
	return func(a *Aggregator) { a.fetchTimeout = d }
}

// NewAggregator creates an Aggregator over the given sources.
func NewAggregator(src Sources, log *logger.Logger, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		src:   src,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Today is the current calendar day as seen by the aggregator.
func (a *Aggregator) Today() time.Time {
	return Day(a.now())
}

// Build assembles the dossier of memberID. A nil period means the whole
// history.
func (a *Aggregator) Build(ctx context.Context, memberID primitive.ObjectID, period *Period, opts Options) (*Dossier, error) {
	today := a.Today()
	log := a.log.With("member_id", memberID.Hex())

	// ValidatePeriod. Done before the member lookup so a malformed range is
	// reported the same way whether or not the member exists.
	var p *Period
	if period != nil {
		checked, err := a.validatePeriod(*period, today, opts)
		if err != nil {
			return nil, err
		}
		p = &checked
	}

	if _, ok := ctx.Deadline(); !ok && a.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.fetchTimeout)
		defer cancel()
	}

	// ResolveMember
	member, err := a.resolveMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	ref := today
	if p != nil && p.End.Before(today) {
		ref = p.End
	}

	// Fetch*
	data, failures := a.fetchAll(ctx, memberID, p)
	for _, section := range allSections {
		if ferr, ok := failures[section]; ok {
			log.Warn("history section unavailable", "section", section, "error", ferr)
		}
	}
	if opts.Strict && len(failures) > 0 {
		for _, section := range allSections {
			if ferr, ok := failures[section]; ok {
				return nil, &Error{Kind: KindAggregation, Op: "Fetch", Detail: fmt.Sprintf("section %s unavailable", section), Err: ferr}
			}
		}
	}

	// ComputeStatistics
	if p != nil && len(failures) == 0 && data.recordCount() == 0 {
		return nil, &Error{Kind: KindNoDataInPeriod, Op: "ComputeStatistics", Detail: fmt.Sprintf("no records between %s", p)}
	}

	// Assemble
	d := assemble(member, p, ref, today, data, failures)
	d.ReportID = a.newID()
	d.GeneratedAt = a.now().UTC()
	for _, issue := range d.Issues {
		log.Warn("history data issue", "kind", issue.Kind, "section", issue.Section, "record_id", issue.RecordID, "detail", issue.Message)
	}
	log.Debug("history built", "period", periodLabel(p), "partial", d.Partial, "issues", len(d.Issues))
	return d, nil
}

func (a *Aggregator) validatePeriod(p Period, today time.Time, opts Options) (Period, error) {
	checked, err := NewPeriod(p.Start, p.End)
	if err != nil {
		return Period{}, err
	}
	if checked.End.After(today) {
		if !opts.ToDate {
			return Period{}, invalidPeriod("end %s is in the future", checked.End.Format(dateLayout))
		}
		checked.End = today
		if checked.Start.After(checked.End) {
			return Period{}, invalidPeriod("start %s is in the future", checked.Start.Format(dateLayout))
		}
	}
	return checked, nil
}

func (a *Aggregator) resolveMember(ctx context.Context, memberID primitive.ObjectID) (*domain.Member, error) {
	if memberID == primitive.NilObjectID {
		return nil, &Error{Kind: KindHistoryNotFound, Op: "ResolveMember", Detail: "empty member id"}
	}
	member, err := a.src.Members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &Error{Kind: KindHistoryNotFound, Op: "ResolveMember", Detail: memberID.Hex()}
		}
		return nil, &Error{Kind: KindAggregation, Op: "ResolveMember", Err: err}
	}
	if member == nil {
		return nil, &Error{Kind: KindHistoryNotFound, Op: "ResolveMember", Detail: memberID.Hex()}
	}
	return member, nil
}

// fetched is what the section tasks brought back, already narrowed to the
// period. allEnrollments is the unfiltered membership history.
type fetched struct {
	enrollments    []domain.Enrollment
	allEnrollments []domain.Enrollment
	plans          map[primitive.ObjectID]domain.SubscriptionPlan
	workoutPlans   []domain.WorkoutPlan
	assessments    []domain.Assessment
	attendance     []domain.AttendanceRecord
	payments       []domain.Payment
	instructors    map[primitive.ObjectID]domain.User
	exercises      map[primitive.ObjectID]domain.Exercise
}

func (f *fetched) recordCount() int {
	return len(f.enrollments) + len(f.workoutPlans) + len(f.assessments) + len(f.attendance) + len(f.payments)
}

// sectionTask fetches one section. On success it returns a function that
// stores its result; the collector applies it under its lock.
type sectionTask struct {
	section Section
	fetch   func(ctx context.Context) (func(*fetched), error)
}

type collector struct {
	mu       sync.Mutex
	data     fetched
	done     map[Section]bool
	failures map[Section]error
}

func (c *collector) finish(section Section, apply func(*fetched), err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.failures[section] = err
	} else {
		apply(&c.data)
	}
	c.done[section] = true
}

// snapshot copies what has completed so far. Sections still running are
// reported as failed with reason.
func (c *collector) snapshot(reason error) (fetched, map[Section]error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	failures := make(map[Section]error, len(c.failures))
	for s, err := range c.failures {
		failures[s] = err
	}
	for _, s := range allSections {
		if !c.done[s] {
			failures[s] = reason
		}
	}
	data := c.data
	data.instructors = copyMap(c.data.instructors)
	data.exercises = copyMap(c.data.exercises)
	data.plans = copyMap(c.data.plans)
	return data, failures
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// fetchAll runs the five section fetches concurrently. A failing section
// never cancels its siblings. If ctx expires first, whatever finished is
// returned and the rest is reported as failed.
func (a *Aggregator) fetchAll(ctx context.Context, memberID primitive.ObjectID, p *Period) (fetched, map[Section]error) {
	c := &collector{
		data: fetched{
			plans:       map[primitive.ObjectID]domain.SubscriptionPlan{},
			instructors: map[primitive.ObjectID]domain.User{},
			exercises:   map[primitive.ObjectID]domain.Exercise{},
		},
		done:     map[Section]bool{},
		failures: map[Section]error{},
	}

	tasks := []sectionTask{
		{SectionEnrollments, func(ctx context.Context) (func(*fetched), error) { return a.fetchEnrollments(ctx, memberID, p) }},
		{SectionWorkoutPlans, func(ctx context.Context) (func(*fetched), error) { return a.fetchWorkoutPlans(ctx, memberID, p) }},
		{SectionAssessments, func(ctx context.Context) (func(*fetched), error) { return a.fetchAssessments(ctx, memberID, p) }},
		{SectionAttendance, func(ctx context.Context) (func(*fetched), error) { return a.fetchAttendance(ctx, memberID, p) }},
		{SectionPayments, func(ctx context.Context) (func(*fetched), error) { return a.fetchPayments(ctx, memberID, p) }},
	}

	var g errgroup.Group
	for _, t := range tasks {
		t := t
		g.Go(func() (err error) {
			var apply func(*fetched)
			defer func() {
				if r := recover(); r != nil {
					apply, err = nil, fmt.Errorf("panic: %v", r)
				}
				c.finish(t.section, apply, err)
				err = nil
			}()
			apply, err = t.fetch(ctx)
			return err
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case <-done:
		return c.snapshot(nil)
	case <-ctx.Done():
		return c.snapshot(fmt.Errorf("not completed before deadline: %w", ctx.Err()))
	}
}

func (a *Aggregator) fetchEnrollments(ctx context.Context, memberID primitive.ObjectID, p *Period) (func(*fetched), error) {
	all, err := a.src.Enrollments.GetByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	inPeriod := all
	if p != nil {
		inPeriod, err = FilterOverlapping(all, enrollmentStart, enrollmentEnd, *p)
		if err != nil {
			return nil, err
		}
	}
	ids := collectIDs(len(inPeriod), func(i int) primitive.ObjectID { return inPeriod[i].PlanID })
	plans, err := a.src.SubscriptionPlans.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve subscription plans: %w", err)
	}
	return func(f *fetched) {
		f.allEnrollments = all
		f.enrollments = inPeriod
		for id, plan := range indexByID(plans, func(sp domain.SubscriptionPlan) primitive.ObjectID { return sp.ID }) {
			f.plans[id] = plan
		}
	}, nil
}

func (a *Aggregator) fetchWorkoutPlans(ctx context.Context, memberID primitive.ObjectID, p *Period) (func(*fetched), error) {
	var plans []domain.WorkoutPlan
	var err error
	if p != nil {
		plans, err = a.src.WorkoutPlans.GetByMemberIDInRange(ctx, memberID, p.Start, p.End)
		if err == nil {
			plans, err = FilterOverlapping(plans, workoutPlanStart, workoutPlanEnd, *p)
		}
	} else {
		plans, err = a.src.WorkoutPlans.GetByMemberID(ctx, memberID)
	}
	if err != nil {
		return nil, err
	}

	instructorIDs := collectIDs(len(plans), func(i int) primitive.ObjectID { return plans[i].InstructorID })
	instructors, err := a.src.Instructors.GetByIDs(ctx, instructorIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve instructors: %w", err)
	}

	var assignments []domain.ExerciseAssignment
	for _, plan := range plans {
		assignments = append(assignments, plan.Exercises...)
	}
	exerciseIDs := collectIDs(len(assignments), func(i int) primitive.ObjectID { return assignments[i].ExerciseID })
	exercises, err := a.src.Exercises.GetByIDs(ctx, exerciseIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve exercises: %w", err)
	}

	return func(f *fetched) {
		f.workoutPlans = plans
		for _, u := range instructors {
			f.instructors[u.ID] = u
		}
		for _, ex := range exercises {
			f.exercises[ex.ID] = ex
		}
	}, nil
}

func (a *Aggregator) fetchAssessments(ctx context.Context, memberID primitive.ObjectID, p *Period) (func(*fetched), error) {
	var assessments []domain.Assessment
	var err error
	if p != nil {
		assessments, err = a.src.Assessments.GetByMemberIDInRange(ctx, memberID, p.Start, p.End)
		if err == nil {
			assessments, err = Filter(assessments, assessmentDate, *p)
		}
	} else {
		assessments, err = a.src.Assessments.GetByMemberID(ctx, memberID)
	}
	if err != nil {
		return nil, err
	}

	ids := collectIDs(len(assessments), func(i int) primitive.ObjectID { return assessments[i].InstructorID })
	instructors, err := a.src.Instructors.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve instructors: %w", err)
	}
	return func(f *fetched) {
		f.assessments = assessments
		for _, u := range instructors {
			f.instructors[u.ID] = u
		}
	}, nil
}

func (a *Aggregator) fetchAttendance(ctx context.Context, memberID primitive.ObjectID, p *Period) (func(*fetched), error) {
	var records []domain.AttendanceRecord
	var err error
	if p != nil {
		records, err = a.src.Attendance.GetByMemberIDInRange(ctx, memberID, p.Start, p.End)
		if err == nil {
			records, err = Filter(records, attendanceDate, *p)
		}
	} else {
		records, err = a.src.Attendance.GetByMemberID(ctx, memberID)
	}
	if err != nil {
		return nil, err
	}
	return func(f *fetched) { f.attendance = records }, nil
}

func (a *Aggregator) fetchPayments(ctx context.Context, memberID primitive.ObjectID, p *Period) (func(*fetched), error) {
	var payments []domain.Payment
	var err error
	if p != nil {
		payments, err = a.src.Payments.GetByMemberIDInRange(ctx, memberID, p.Start, p.End)
		if err == nil {
			payments, err = Filter(payments, paymentDate, *p)
		}
	} else {
		payments, err = a.src.Payments.GetByMemberID(ctx, memberID)
	}
	if err != nil {
		return nil, err
	}
	return func(f *fetched) { f.payments = payments }, nil
}

func enrollmentStart(e domain.Enrollment) time.Time      { return e.StartDate }
func enrollmentEnd(e domain.Enrollment) *time.Time       { return e.EndDate }
func workoutPlanStart(p domain.WorkoutPlan) time.Time    { return p.StartDate }
func workoutPlanEnd(p domain.WorkoutPlan) *time.Time     { return p.EndDate() }
func assessmentDate(a domain.Assessment) time.Time       { return a.AssessedOn }
func attendanceDate(r domain.AttendanceRecord) time.Time { return r.Date }
func paymentDate(p domain.Payment) time.Time             { return p.PaidOn }

func periodLabel(p *Period) string {
	if p == nil {
		return "full"
	}
	return p.String()
}

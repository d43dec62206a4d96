package history

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/logger"
	"alcyxob/gym-app/internal/repository"
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// store is an in-memory stand-in for every record source. Range lookups
// return everything so the engine's own filtering is what gets tested.
type store struct {
	mu sync.Mutex

	members      map[primitive.ObjectID]domain.Member
	enrollments  []domain.Enrollment
	plans        []domain.SubscriptionPlan
	workoutPlans []domain.WorkoutPlan
	exercises    []domain.Exercise
	instructors  []domain.User
	assessments  []domain.Assessment
	attendance   []domain.AttendanceRecord
	payments     []domain.Payment

	// Failure injection keyed by source name.
	errs   map[string]error
	block  map[string]bool
	panics map[string]bool
	calls  map[string]int
}

func newStore() *store {
	return &store{
		members: map[primitive.ObjectID]domain.Member{},
		errs:    map[string]error{},
		block:   map[string]bool{},
		panics:  map[string]bool{},
		calls:   map[string]int{},
	}
}

func (s *store) hook(ctx context.Context, name string) error {
	s.mu.Lock()
	s.calls[name]++
	err, block, panics := s.errs[name], s.block[name], s.panics[name]
	s.mu.Unlock()
	if panics {
		panic(name + " exploded")
	}
	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

func (s *store) callCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func (s *store) sources() Sources {
	return Sources{
		Members:           memberFake{s},
		Enrollments:       enrollmentFake{s},
		SubscriptionPlans: planFake{s},
		WorkoutPlans:      workoutPlanFake{s},
		Exercises:         exerciseFake{s},
		Instructors:       instructorFake{s},
		Assessments:       assessmentFake{s},
		Attendance:        attendanceFake{s},
		Payments:          paymentFake{s},
	}
}

func pick[T any](items []T, ids []primitive.ObjectID, idOf func(T) primitive.ObjectID) []T {
	want := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := []T{}
	for _, it := range items {
		if want[idOf(it)] {
			out = append(out, it)
		}
	}
	return out
}

type memberFake struct{ s *store }

func (f memberFake) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Member, error) {
	if err := f.s.hook(ctx, "members"); err != nil {
		return nil, err
	}
	m, ok := f.s.members[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

type enrollmentFake struct{ s *store }

func (f enrollmentFake) GetByMemberID(ctx context.Context, _ primitive.ObjectID) ([]domain.Enrollment, error) {
	if err := f.s.hook(ctx, "enrollments"); err != nil {
		return nil, err
	}
	return append([]domain.Enrollment{}, f.s.enrollments...), nil
}

type planFake struct{ s *store }

func (f planFake) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.SubscriptionPlan, error) {
	if err := f.s.hook(ctx, "plans"); err != nil {
		return nil, err
	}
	return pick(f.s.plans, ids, func(p domain.SubscriptionPlan) primitive.ObjectID { return p.ID }), nil
}

type workoutPlanFake struct{ s *store }

func (f workoutPlanFake) GetByMemberID(ctx context.Context, _ primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	if err := f.s.hook(ctx, "workoutPlans"); err != nil {
		return nil, err
	}
	return append([]domain.WorkoutPlan{}, f.s.workoutPlans...), nil
}

func (f workoutPlanFake) GetByMemberIDInRange(ctx context.Context, id primitive.ObjectID, _, _ time.Time) ([]domain.WorkoutPlan, error) {
	return f.GetByMemberID(ctx, id)
}

type exerciseFake struct{ s *store }

func (f exerciseFake) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	if err := f.s.hook(ctx, "exercises"); err != nil {
		return nil, err
	}
	return pick(f.s.exercises, ids, func(e domain.Exercise) primitive.ObjectID { return e.ID }), nil
}

type instructorFake struct{ s *store }

func (f instructorFake) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	if err := f.s.hook(ctx, "instructors"); err != nil {
		return nil, err
	}
	return pick(f.s.instructors, ids, func(u domain.User) primitive.ObjectID { return u.ID }), nil
}

type assessmentFake struct{ s *store }

func (f assessmentFake) GetByMemberID(ctx context.Context, _ primitive.ObjectID) ([]domain.Assessment, error) {
	if err := f.s.hook(ctx, "assessments"); err != nil {
		return nil, err
	}
	return append([]domain.Assessment{}, f.s.assessments...), nil
}

func (f assessmentFake) GetByMemberIDInRange(ctx context.Context, id primitive.ObjectID, _, _ time.Time) ([]domain.Assessment, error) {
	return f.GetByMemberID(ctx, id)
}

type attendanceFake struct{ s *store }

func (f attendanceFake) GetByMemberID(ctx context.Context, _ primitive.ObjectID) ([]domain.AttendanceRecord, error) {
	if err := f.s.hook(ctx, "attendance"); err != nil {
		return nil, err
	}
	return append([]domain.AttendanceRecord{}, f.s.attendance...), nil
}

func (f attendanceFake) GetByMemberIDInRange(ctx context.Context, id primitive.ObjectID, _, _ time.Time) ([]domain.AttendanceRecord, error) {
	return f.GetByMemberID(ctx, id)
}

type paymentFake struct{ s *store }

func (f paymentFake) GetByMemberID(ctx context.Context, _ primitive.ObjectID) ([]domain.Payment, error) {
	if err := f.s.hook(ctx, "payments"); err != nil {
		return nil, err
	}
	return append([]domain.Payment{}, f.s.payments...), nil
}

func (f paymentFake) GetByMemberIDInRange(ctx context.Context, id primitive.ObjectID, _, _ time.Time) ([]domain.Payment, error) {
	return f.GetByMemberID(ctx, id)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func f64(v float64) *float64 { return &v }

// fixedClock pins "today" to 2025-03-10 at midday.
func fixedClock() time.Time {
	return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func newTestAggregator(s *store, opts ...AggregatorOption) *Aggregator {
	opts = append([]AggregatorOption{WithClock(fixedClock)}, opts...)
	return NewAggregator(s.sources(), logger.Nop(), opts...)
}

type fixture struct {
	store      *store
	member     domain.Member
	enrollment domain.Enrollment
	plan       domain.SubscriptionPlan
	instructor domain.User
	assessment domain.Assessment
	payment    domain.Payment
}

// scenarioA: born 2000-01-01, one enrollment over 2024, one assessment on
// 2024-06-01, 20 June attendance records (15 present) and one payment.
func scenarioA() *fixture {
	s := newStore()
	member := domain.Member{
		ID:         primitive.NewObjectID(),
		Name:       "Ana Souza",
		NationalID: "123.456.789-00",
		JoinDate:   date(2024, time.January, 1),
		BirthDate:  datePtr(2000, time.January, 1),
	}
	s.members[member.ID] = member

	plan := domain.SubscriptionPlan{ID: primitive.NewObjectID(), Name: "Annual", Price: 1200, DurationMonths: 12, Status: domain.PlanStatusActive}
	s.plans = append(s.plans, plan)

	instructor := domain.User{ID: primitive.NewObjectID(), Name: "Carlos Lima", Role: domain.RoleInstructor}
	s.instructors = append(s.instructors, instructor)

	enrollment := domain.Enrollment{
		ID:        primitive.NewObjectID(),
		MemberID:  member.ID,
		PlanID:    plan.ID,
		StartDate: date(2024, time.January, 1),
		EndDate:   datePtr(2024, time.December, 31),
		Status:    domain.EnrollmentActive,
	}
	s.enrollments = append(s.enrollments, enrollment)

	assessment := domain.Assessment{
		ID:           primitive.NewObjectID(),
		MemberID:     member.ID,
		InstructorID: instructor.ID,
		AssessedOn:   date(2024, time.June, 1),
		Weight:       f64(70),
		Height:       f64(1.75),
	}
	s.assessments = append(s.assessments, assessment)

	for day := 1; day <= 20; day++ {
		s.attendance = append(s.attendance, domain.AttendanceRecord{
			ID:       primitive.NewObjectID(),
			MemberID: member.ID,
			Date:     date(2024, time.June, day),
			Present:  day <= 15,
		})
	}

	payment := domain.Payment{
		ID:           primitive.NewObjectID(),
		EnrollmentID: enrollment.ID,
		MemberID:     member.ID,
		PaidOn:       date(2024, time.June, 5),
		Amount:       100.00,
		Method:       domain.PaymentPix,
	}
	s.payments = append(s.payments, payment)

	return &fixture{
		store:      s,
		member:     member,
		enrollment: enrollment,
		plan:       plan,
		instructor: instructor,
		assessment: assessment,
		payment:    payment,
	}
}

func june2024() *Period {
	return &Period{Start: date(2024, time.June, 1), End: date(2024, time.June, 30)}
}

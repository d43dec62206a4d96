package main

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/logger"
	"alcyxob/gym-app/internal/repository"
	"alcyxob/gym-app/internal/service"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type seeder struct {
	users       repository.UserRepository
	auth        service.AuthService
	exercises   service.ExerciseService
	members     repository.MemberRepository
	plans       repository.SubscriptionPlanRepository
	enrollments repository.EnrollmentRepository
	workouts    repository.WorkoutPlanRepository
	assessments repository.AssessmentRepository
	attendance  repository.AttendanceRepository
	payments    repository.PaymentRepository
	log         *logger.Logger
	today       time.Time
}

var demoExercises = []service.ExerciseInput{
	{Name: "Back Squat", MuscleGroup: "Legs", Equipment: "Barbell", Difficulty: "Medium"},
	{Name: "Bench Press", MuscleGroup: "Chest", Equipment: "Barbell", Difficulty: "Medium"},
	{Name: "Plank", MuscleGroup: "Core", Equipment: "Bodyweight", Difficulty: "Novice"},
}

func (s *seeder) run(ctx context.Context, instructorEmail, instructorPassword string) (primitive.ObjectID, error) {
	instructor, err := s.instructor(ctx, instructorEmail, instructorPassword)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("instructor: %w", err)
	}

	exerciseIDs, err := s.catalogue(ctx, instructor.ID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("exercises: %w", err)
	}

	planID, err := s.plans.Create(ctx, &domain.SubscriptionPlan{
		Name:           "Monthly",
		Price:          99.90,
		DurationMonths: 1,
		Status:         domain.PlanStatusActive,
	})
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("plan: %w", err)
	}

	birth := s.today.AddDate(-29, -2, 0)
	memberID, err := s.members.Create(ctx, &domain.Member{
		Name:       "Demo Member",
		NationalID: fmt.Sprintf("DEMO-%d", time.Now().UnixNano()),
		Email:      "demo.member@gym.local",
		JoinDate:   s.today.AddDate(-1, 0, 0),
		BirthDate:  &birth,
	})
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("member: %w", err)
	}
	log := s.log.With("member_id", memberID.Hex())

	// Two consecutive semesters: the first closed, the second running.
	firstStart := s.today.AddDate(-1, 0, 0)
	firstEnd := firstStart.AddDate(0, 6, -1)
	enrollments := []domain.Enrollment{
		{MemberID: memberID, PlanID: planID, StartDate: firstStart, EndDate: &firstEnd, Status: domain.EnrollmentInactive},
		{MemberID: memberID, PlanID: planID, StartDate: firstEnd.AddDate(0, 0, 1), Status: domain.EnrollmentActive},
	}
	for i := range enrollments {
		id, err := s.enrollments.Create(ctx, &enrollments[i])
		if err != nil {
			return primitive.NilObjectID, fmt.Errorf("enrollment: %w", err)
		}
		enrollments[i].ID = id
	}

	for _, start := range []time.Time{firstStart, s.today.AddDate(0, -3, 0)} {
		load := 40.0
		plan := &domain.WorkoutPlan{
			MemberID:      memberID,
			InstructorID:  instructor.ID,
			StartDate:     start,
			Objective:     "Hypertrophy",
			DurationWeeks: 12,
		}
		for _, exID := range exerciseIDs {
			plan.Exercises = append(plan.Exercises, domain.ExerciseAssignment{ExerciseID: exID, Sets: 4, Reps: 10, Load: &load})
		}
		if _, err := s.workouts.Create(ctx, plan); err != nil {
			return primitive.NilObjectID, fmt.Errorf("workout plan: %w", err)
		}
	}

	height := 1.78
	for i, weight := range []float64{84.0, 81.5, 79.2, 77.8} {
		w := weight
		if _, err := s.assessments.Create(ctx, &domain.Assessment{
			MemberID:     memberID,
			InstructorID: instructor.ID,
			AssessedOn:   firstStart.AddDate(0, 3*i, 0),
			Weight:       &w,
			Height:       &height,
		}); err != nil {
			return primitive.NilObjectID, fmt.Errorf("assessment: %w", err)
		}
	}

	days := trainingDays(firstStart, s.today)
	for i, day := range days {
		// Roughly one missed session in five.
		record := &domain.AttendanceRecord{MemberID: memberID, Date: day, Present: i%5 != 4}
		if _, err := s.attendance.Create(ctx, record); err != nil {
			return primitive.NilObjectID, fmt.Errorf("attendance: %w", err)
		}
	}

	paid := 0
	for _, due := range monthlyDueDates(firstStart, s.today) {
		enrollment := enrollments[0]
		if !due.Before(enrollments[1].StartDate) {
			enrollment = enrollments[1]
		}
		if _, err := s.payments.Create(ctx, &domain.Payment{
			EnrollmentID: enrollment.ID,
			MemberID:     memberID,
			PaidOn:       due,
			Amount:       99.90,
			Method:       domain.PaymentPix,
		}); err != nil {
			return primitive.NilObjectID, fmt.Errorf("payment: %w", err)
		}
		paid++
	}

	log.Info("demo history inserted", "attendance", len(days), "payments", paid, "exercises", len(exerciseIDs))
	return memberID, nil
}

// instructor registers the demo instructor, reusing it on later runs.
func (s *seeder) instructor(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.auth.Register(ctx, "Demo Coach", email, password, domain.RoleInstructor, "strength")
	if errors.Is(err, service.ErrUserAlreadyExists) {
		return s.users.GetByEmail(ctx, email)
	}
	return user, err
}

func (s *seeder) catalogue(ctx context.Context, createdBy primitive.ObjectID) ([]primitive.ObjectID, error) {
	existing, err := s.exercises.ListExercises(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]primitive.ObjectID, len(existing))
	for _, ex := range existing {
		byName[ex.Name] = ex.ID
	}

	ids := make([]primitive.ObjectID, 0, len(demoExercises))
	for _, in := range demoExercises {
		if id, ok := byName[in.Name]; ok {
			ids = append(ids, id)
			continue
		}
		ex, err := s.exercises.CreateExercise(ctx, createdBy, in)
		if err != nil {
			return nil, err
		}
		ids = append(ids, ex.ID)
	}
	return ids, nil
}

// trainingDays returns every Monday, Wednesday and Friday in [from, to].
func trainingDays(from, to time.Time) []time.Time {
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Monday, time.Wednesday, time.Friday:
			days = append(days, d)
		}
	}
	return days
}

// monthlyDueDates returns from, from+1 month, ... up to and including to.
func monthlyDueDates(from, to time.Time) []time.Time {
	var dates []time.Time
	for i := 0; ; i++ {
		d := from.AddDate(0, i, 0)
		if d.After(to) {
			return dates
		}
		dates = append(dates, d)
	}
}

package history

import (
	"alcyxob/gym-app/internal/domain"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The ports below are the subset of the repository interfaces the engine
// reads from. Lookups of a single record return repository.ErrNotFound when
// absent; list lookups return an empty slice.

type MemberSource interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Member, error)
}

type EnrollmentSource interface {
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Enrollment, error)
}

type SubscriptionPlanSource interface {
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.SubscriptionPlan, error)
}

type WorkoutPlanSource interface {
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	GetByMemberIDInRange(ctx context.Context, memberID primitive.ObjectID, start, end time.Time) ([]domain.WorkoutPlan, error)
}

type ExerciseSource interface {
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error)
}

type InstructorSource interface {
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
}

type AssessmentSource interface {
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Assessment, error)
	GetByMemberIDInRange(ctx context.Context, memberID primitive.ObjectID, start, end time.Time) ([]domain.Assessment, error)
}

type AttendanceSource interface {
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.AttendanceRecord, error)
	GetByMemberIDInRange(ctx context.Context, memberID primitive.ObjectID, start, end time.Time) ([]domain.AttendanceRecord, error)
}

type PaymentSource interface {
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Payment, error)
	GetByMemberIDInRange(ctx context.Context, memberID primitive.ObjectID, start, end time.Time) ([]domain.Payment, error)
}

// Sources bundles every collaborator the Aggregator reads from.
type Sources struct {
	Members           MemberSource
	Enrollments       EnrollmentSource
	SubscriptionPlans SubscriptionPlanSource
	WorkoutPlans      WorkoutPlanSource
	Exercises         ExerciseSource
	Instructors       InstructorSource
	Assessments       AssessmentSource
	Attendance        AttendanceSource
	Payments          PaymentSource
}

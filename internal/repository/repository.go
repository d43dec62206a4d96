package repository

import (
	"alcyxob/gym-app/internal/domain"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository stores staff accounts (admins and instructors).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// GetByIDs returns the users that exist among ids; missing ids are simply absent.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
}

// MemberRepository stores gym members.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Member, error)
}

// SubscriptionPlanRepository stores membership products.
type SubscriptionPlanRepository interface {
	Create(ctx context.Context, plan *domain.SubscriptionPlan) (primitive.ObjectID, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.SubscriptionPlan, error)
}

// EnrollmentRepository stores membership periods.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *domain.Enrollment) (primitive.ObjectID, error)
	// GetByMemberID returns the member's whole membership history. Period
	// narrowing happens in memory because tenure and payment checks need
	// every enrollment anyway.
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Enrollment, error)
}

// WorkoutPlanRepository stores training programs with their embedded exercise assignments.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	// GetByMemberIDInRange returns plans started on or before end; callers
	// narrow by the plan window.
	GetByMemberIDInRange(ctx context.Context, memberID primitive.ObjectID, start, end time.Time) ([]domain.WorkoutPlan, error)
}

// ExerciseRepository stores the exercise catalogue.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
	SetVideoKey(ctx context.Context, id primitive.ObjectID, videoKey string) error
}

// AssessmentRepository stores physical assessments.
type AssessmentRepository interface {
	Create(ctx context.Context, assessment *domain.Assessment) (primitive.ObjectID, error)
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Assessment, error)
	GetByMemberIDInRange(ctx context.Context, memberID primitive.ObjectID, start, end time.Time) ([]domain.Assessment, error)
}

// AttendanceRepository stores daily presence records.
type AttendanceRepository interface {
	Create(ctx context.Context, record *domain.AttendanceRecord) (primitive.ObjectID, error)
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.AttendanceRecord, error)
	GetByMemberIDInRange(ctx context.Context, memberID primitive.ObjectID, start, end time.Time) ([]domain.AttendanceRecord, error)
}

// PaymentRepository stores enrollment payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error)
	// GetByMemberID returns payments across all of the member's enrollments.
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Payment, error)
	GetByMemberIDInRange(ctx context.Context, memberID primitive.ObjectID, start, end time.Time) ([]domain.Payment, error)
}

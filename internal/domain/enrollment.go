package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EnrollmentStatus tracks the lifecycle of a membership subscription period.
type EnrollmentStatus string

const (
	EnrollmentActive   EnrollmentStatus = "ACTIVE"
	EnrollmentInactive EnrollmentStatus = "INACTIVE"
	EnrollmentPending  EnrollmentStatus = "PENDING"
	EnrollmentCanceled EnrollmentStatus = "CANCELED"
)

// Valid reports whether s is one of the known enrollment statuses.
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentActive, EnrollmentInactive, EnrollmentPending, EnrollmentCanceled:
		return true
	}
	return false
}

// Enrollment ties a Member to a SubscriptionPlan for a period of time.
// A nil EndDate means the enrollment is open-ended.
type Enrollment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID  primitive.ObjectID `bson:"memberId" json:"memberId"`
	PlanID    primitive.ObjectID `bson:"planId" json:"planId"`
	StartDate time.Time          `bson:"startDate" json:"startDate"`
	EndDate   *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Status    EnrollmentStatus   `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

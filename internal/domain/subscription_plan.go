package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanStatus tells whether a subscription plan can still be sold.
type PlanStatus string

const (
	PlanStatusActive   PlanStatus = "ACTIVE"
	PlanStatusInactive PlanStatus = "INACTIVE"
)

// Valid reports whether s is one of the known plan statuses.
func (s PlanStatus) Valid() bool {
	switch s {
	case PlanStatusActive, PlanStatusInactive:
		return true
	}
	return false
}

// SubscriptionPlan is a membership product (e.g. "Monthly", "Annual").
type SubscriptionPlan struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Price          float64            `bson:"price" json:"price"`
	DurationMonths int                `bson:"durationMonths" json:"durationMonths"`
	Status         PlanStatus         `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

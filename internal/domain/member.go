package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member represents a gym customer.
type Member struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	NationalID string             `bson:"nationalId" json:"nationalId"` // Unique national identifier (CPF)
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	JoinDate   time.Time          `bson:"joinDate" json:"joinDate"`
	BirthDate  *time.Time         `bson:"birthDate,omitempty" json:"birthDate,omitempty"` // Optional, pointer for nullability
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

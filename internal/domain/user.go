package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role distinguishes staff accounts.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleInstructor:
		return true
	}
	return false
}

// User is a staff account. Instructors are users with RoleInstructor and are
// referenced by workout plans and assessments.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	Specialty    string             `bson:"specialty,omitempty" json:"specialty,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsInstructor() bool {
	return u.Role == RoleInstructor
}

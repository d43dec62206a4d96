// internal/domain/workout_plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseAssignment is one exercise prescribed inside a WorkoutPlan.
type ExerciseAssignment struct {
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Sets       int                `bson:"sets" json:"sets"`
	Reps       int                `bson:"reps" json:"reps"`
	Load       *float64           `bson:"load,omitempty" json:"load,omitempty"` // kg, nil for bodyweight work
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// WorkoutPlan is a training program authored by an instructor for a member.
type WorkoutPlan struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	MemberID      primitive.ObjectID   `bson:"memberId" json:"memberId"`
	InstructorID  primitive.ObjectID   `bson:"instructorId" json:"instructorId"`
	StartDate     time.Time            `bson:"startDate" json:"startDate"` // Date the plan was handed to the member
	Objective     string               `bson:"objective,omitempty" json:"objective,omitempty"`
	DurationWeeks int                  `bson:"durationWeeks" json:"durationWeeks"` // 0 means no fixed duration
	Exercises     []ExerciseAssignment `bson:"exercises,omitempty" json:"exercises,omitempty"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// EndDate is the last day covered by the plan, or nil when it has no fixed duration.
func (p *WorkoutPlan) EndDate() *time.Time {
	if p.DurationWeeks <= 0 {
		return nil
	}
	end := p.StartDate.AddDate(0, 0, p.DurationWeeks*7-1)
	return &end
}

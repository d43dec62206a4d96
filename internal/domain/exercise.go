// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is an entry in the gym's exercise catalogue.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"` // Staff user who registered it
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	MuscleGroup string             `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"` // e.g., "Chest", "Legs", "Back"
	Equipment   string             `bson:"equipment,omitempty" json:"equipment,omitempty"`     // e.g., "Barbell", "Machine"
	Difficulty  string             `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	VideoKey    string             `bson:"videoKey,omitempty" json:"-"` // Object key of the demonstration video in S3
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

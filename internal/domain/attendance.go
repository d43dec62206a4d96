package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttendanceRecord is one day's presence entry for a member.
type AttendanceRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID  primitive.ObjectID `bson:"memberId" json:"memberId"`
	Date      time.Time          `bson:"date" json:"date"`
	Present   bool               `bson:"present" json:"present"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentMethod is how a payment was settled.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentPix      PaymentMethod = "PIX"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

// Payment settles (part of) an Enrollment. MemberID is denormalized from the
// enrollment so payments can be listed per member without a join.
type Payment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EnrollmentID primitive.ObjectID `bson:"enrollmentId" json:"enrollmentId"`
	MemberID     primitive.ObjectID `bson:"memberId" json:"memberId"`
	PaidOn       time.Time          `bson:"paidOn" json:"paidOn"`
	Amount       float64            `bson:"amount" json:"amount"`
	Method       PaymentMethod      `bson:"method" json:"method"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

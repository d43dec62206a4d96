package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assessment is a physical measurement session. BMI is never stored: it is
// always derived from Weight and Height through BMI().
type Assessment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID       primitive.ObjectID `bson:"memberId" json:"memberId"`
	InstructorID   primitive.ObjectID `bson:"instructorId" json:"instructorId"`
	AssessedOn     time.Time          `bson:"assessedOn" json:"assessedOn"`
	Weight         *float64           `bson:"weight,omitempty" json:"weight,omitempty"` // kg
	Height         *float64           `bson:"height,omitempty" json:"height,omitempty"` // m
	BodyFatPercent *float64           `bson:"bodyFatPercent,omitempty" json:"bodyFatPercent,omitempty"`
	Measurements   string             `bson:"measurements,omitempty" json:"measurements,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// BMI returns the body-mass index for this assessment.
func (a *Assessment) BMI() *float64 {
	return BodyMassIndex(a.Weight, a.Height)
}

// BodyMassIndex computes weight / height², rounded half-up to two decimals.
// It returns nil when either input is missing or height is not positive.
func BodyMassIndex(weight, height *float64) *float64 {
	if weight == nil || height == nil || *height <= 0 {
		return nil
	}
	w, h := decimal.NewFromFloat(*weight), decimal.NewFromFloat(*height)
	bmi := QuoHalfUp2(w, h.Mul(h))
	return &bmi
}

var (
	decimalTwo     = decimal.NewFromInt(2)
	decimalHundred = decimal.NewFromInt(100)
)

// QuoHalfUp2 returns num/den rounded half-up to two decimals. The quotient
// is computed exactly, so values ending in 5 at the third decimal always
// round up. den must be positive and num non-negative.
func QuoHalfUp2(num, den decimal.Decimal) float64 {
	// floor((200*num + den) / (2*den)) == round_half_up(100*num/den)
	cents, _ := num.Mul(decimalHundred).Mul(decimalTwo).Add(den).QuoRem(den.Mul(decimalTwo), 0)
	f, _ := cents.Shift(-2).Float64()
	return f
}

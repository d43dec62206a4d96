package mongo

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const paymentCollectionName = "payments"

// mongoPaymentRepository implements repository.PaymentRepository
type mongoPaymentRepository struct {
	collection *mongo.Collection
}

// NewMongoPaymentRepository creates a new Payment repository.
func NewMongoPaymentRepository(db *mongo.Database) repository.PaymentRepository {
	return &mongoPaymentRepository{
		collection: db.Collection(paymentCollectionName),
	}
}

// Create inserts a new payment.
func (r *mongoPaymentRepository) Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error) {
	if payment.EnrollmentID == primitive.NilObjectID || payment.MemberID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("payment requires enrollmentId and memberId")
	}
	payment.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if payment.PaidOn.IsZero() {
		payment.PaidOn = startOfDay(now)
	}
	payment.CreatedAt = now

	result, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted payment ID")
	}
	return insertedID, nil
}

// GetByMemberID retrieves payments across all enrollments of a member.
func (r *mongoPaymentRepository) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Payment, error) {
	return findAll[domain.Payment](ctx, r.collection, bson.M{"memberId": memberID}, ascending("paidOn"))
}

// GetByMemberIDInRange retrieves a member's payments made on days in [start, end].
func (r *mongoPaymentRepository) GetByMemberIDInRange(ctx context.Context, memberID primitive.ObjectID, start, end time.Time) ([]domain.Payment, error) {
	filter := bson.M{"memberId": memberID, "paidOn": dayRange(start, end)}
	return findAll[domain.Payment](ctx, r.collection, filter, ascending("paidOn"))
}

// EnsurePaymentIndexes creates necessary indexes. Call during startup.
func EnsurePaymentIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "memberId", Value: 1}, {Key: "paidOn", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "enrollmentId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

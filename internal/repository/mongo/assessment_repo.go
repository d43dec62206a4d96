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

const assessmentCollectionName = "assessments"

// mongoAssessmentRepository implements repository.AssessmentRepository
type mongoAssessmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAssessmentRepository creates a new Assessment repository.
func NewMongoAssessmentRepository(db *mongo.Database) repository.AssessmentRepository {
	return &mongoAssessmentRepository{
		collection: db.Collection(assessmentCollectionName),
	}
}

// Create inserts a new assessment. AssessedOn defaults to today.
func (r *mongoAssessmentRepository) Create(ctx context.Context, assessment *domain.Assessment) (primitive.ObjectID, error) {
	if assessment.MemberID == primitive.NilObjectID || assessment.InstructorID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("assessment requires memberId and instructorId")
	}
	assessment.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if assessment.AssessedOn.IsZero() {
		assessment.AssessedOn = startOfDay(now)
	}
	assessment.CreatedAt = now
	assessment.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, assessment)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted assessment ID")
	}
	return insertedID, nil
}

// GetByMemberID retrieves every assessment of a member, oldest first.
func (r *mongoAssessmentRepository) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Assessment, error) {
	return findAll[domain.Assessment](ctx, r.collection, bson.M{"memberId": memberID}, ascending("assessedOn"))
}

// GetByMemberIDInRange retrieves the assessments taken on days in [start, end].
func (r *mongoAssessmentRepository) GetByMemberIDInRange(ctx context.Context, memberID primitive.ObjectID, start, end time.Time) ([]domain.Assessment, error) {
	filter := bson.M{"memberId": memberID, "assessedOn": dayRange(start, end)}
	return findAll[domain.Assessment](ctx, r.collection, filter, ascending("assessedOn"))
}

// EnsureAssessmentIndexes creates necessary indexes. Call during startup.
func EnsureAssessmentIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "memberId", Value: 1}, {Key: "assessedOn", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "instructorId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

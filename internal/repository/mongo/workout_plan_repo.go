// internal/repository/mongo/workout_plan_repo.go
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

const workoutPlanCollectionName = "workout_plans"

// mongoWorkoutPlanRepository implements repository.WorkoutPlanRepository
type mongoWorkoutPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutPlanRepository creates a new WorkoutPlan repository.
func NewMongoWorkoutPlanRepository(db *mongo.Database) repository.WorkoutPlanRepository {
	return &mongoWorkoutPlanRepository{
		collection: db.Collection(workoutPlanCollectionName),
	}
}

// Create inserts a new workout plan. StartDate defaults to today.
func (r *mongoWorkoutPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	if plan.MemberID == primitive.NilObjectID || plan.InstructorID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("plan requires memberId and instructorId")
	}
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if plan.StartDate.IsZero() {
		plan.StartDate = startOfDay(now)
	}
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

// GetByMemberID retrieves every plan of a member, oldest first.
func (r *mongoWorkoutPlanRepository) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	return findAll[domain.WorkoutPlan](ctx, r.collection, bson.M{"memberId": memberID}, ascending("startDate"))
}

// GetByMemberIDInRange retrieves the plans started on or before end. The plan
// window depends on durationWeeks, so callers narrow the result to plans whose
// window actually reaches start.
func (r *mongoWorkoutPlanRepository) GetByMemberIDInRange(ctx context.Context, memberID primitive.ObjectID, start, end time.Time) ([]domain.WorkoutPlan, error) {
	filter := bson.M{
		"memberId":  memberID,
		"startDate": bson.M{"$lt": startOfDay(end).AddDate(0, 0, 1)},
	}
	return findAll[domain.WorkoutPlan](ctx, r.collection, filter, ascending("startDate"))
}

// EnsureWorkoutPlanIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutPlanIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Main query pattern: a member's plans by date
			Keys:    bson.D{{Key: "memberId", Value: 1}, {Key: "startDate", Value: 1}},
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

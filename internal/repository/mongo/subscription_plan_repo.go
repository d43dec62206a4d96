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
)

const subscriptionPlanCollectionName = "subscription_plans"

// mongoSubscriptionPlanRepository implements repository.SubscriptionPlanRepository
type mongoSubscriptionPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoSubscriptionPlanRepository creates a new SubscriptionPlan repository.
func NewMongoSubscriptionPlanRepository(db *mongo.Database) repository.SubscriptionPlanRepository {
	return &mongoSubscriptionPlanRepository{
		collection: db.Collection(subscriptionPlanCollectionName),
	}
}

// Create inserts a new subscription plan.
func (r *mongoSubscriptionPlanRepository) Create(ctx context.Context, plan *domain.SubscriptionPlan) (primitive.ObjectID, error) {
	if plan.Name == "" || !plan.Status.Valid() {
		return primitive.NilObjectID, errors.New("plan requires a name and a valid status")
	}
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
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

// GetByIDs retrieves the plans whose IDs are in ids.
func (r *mongoSubscriptionPlanRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.SubscriptionPlan, error) {
	if len(ids) == 0 {
		return []domain.SubscriptionPlan{}, nil
	}
	return findAll[domain.SubscriptionPlan](ctx, r.collection, bson.M{"_id": bson.M{"$in": ids}})
}

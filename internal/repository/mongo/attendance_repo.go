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

const attendanceCollectionName = "attendance"

// mongoAttendanceRepository implements repository.AttendanceRepository
type mongoAttendanceRepository struct {
	collection *mongo.Collection
}

// NewMongoAttendanceRepository creates a new Attendance repository.
func NewMongoAttendanceRepository(db *mongo.Database) repository.AttendanceRepository {
	return &mongoAttendanceRepository{
		collection: db.Collection(attendanceCollectionName),
	}
}

// Create inserts a new attendance record.
func (r *mongoAttendanceRepository) Create(ctx context.Context, record *domain.AttendanceRecord) (primitive.ObjectID, error) {
	if record.MemberID == primitive.NilObjectID || record.Date.IsZero() {
		return primitive.NilObjectID, errors.New("attendance requires memberId and date")
	}
	record.ID = primitive.NewObjectID()
	record.Date = startOfDay(record.Date)
	record.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted attendance ID")
	}
	return insertedID, nil
}

// GetByMemberID retrieves every attendance record of a member, oldest first.
func (r *mongoAttendanceRepository) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.AttendanceRecord, error) {
	return findAll[domain.AttendanceRecord](ctx, r.collection, bson.M{"memberId": memberID}, ascending("date"))
}

// GetByMemberIDInRange retrieves the records for days in [start, end].
func (r *mongoAttendanceRepository) GetByMemberIDInRange(ctx context.Context, memberID primitive.ObjectID, start, end time.Time) ([]domain.AttendanceRecord, error) {
	filter := bson.M{"memberId": memberID, "date": dayRange(start, end)}
	return findAll[domain.AttendanceRecord](ctx, r.collection, filter, ascending("date"))
}

// EnsureAttendanceIndexes creates necessary indexes. Call during startup.
func EnsureAttendanceIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// One record per member per day
			Keys:    bson.D{{Key: "memberId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

package service

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/logger"
	"alcyxob/gym-app/internal/repository"
	"alcyxob/gym-app/internal/storage"
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound    = errors.New("exercise not found")
	ErrExerciseExists      = errors.New("an exercise with this name already exists")
	ErrValidationFailed    = errors.New("exercise validation failed")
	ErrVideoNotUploaded    = errors.New("exercise has no demonstration video")
	ErrInvalidVideoKey     = errors.New("object key was not issued for this exercise")
	ErrUploadURLError      = errors.New("failed to generate upload URL")
	ErrDownloadURLError    = errors.New("failed to generate download URL")
	ErrStorageNotAvailable = errors.New("video storage is not configured")
)

// UploadURLResponse structure for returning URL and object key
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"` // The key the client reports back on confirm
}

// ExerciseInput carries the catalogue fields a staff member may set.
type ExerciseInput struct {
	Name        string
	Description string
	MuscleGroup string
	Equipment   string
	Difficulty  string
}

type ExerciseService interface {
	CreateExercise(ctx context.Context, createdBy primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	RequestVideoUploadURL(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
	ConfirmVideoUpload(ctx context.Context, exerciseID primitive.ObjectID, objectKey string) (*domain.Exercise, error)
	GetVideoURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	fileStorage  storage.FileStorage
	log          *logger.Logger
}

// NewExerciseService creates a new instance of exerciseService. fileStorage
// may be nil, in which case video operations fail with ErrStorageNotAvailable.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, fileStorage storage.FileStorage, log *logger.Logger) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		fileStorage:  fileStorage,
		log:          log,
	}
}

// CreateExercise adds an exercise to the catalogue.
func (s *exerciseService) CreateExercise(ctx context.Context, createdBy primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error) {
	if strings.TrimSpace(in.Name) == "" || createdBy == primitive.NilObjectID {
		return nil, ErrValidationFailed
	}

	exercise := &domain.Exercise{
		CreatedBy:   createdBy,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		MuscleGroup: in.MuscleGroup,
		Equipment:   in.Equipment,
		Difficulty:  in.Difficulty,
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrExerciseExists
		}
		return nil, err
	}
	exercise.ID = exerciseID
	return exercise, nil
}

// GetExerciseByID retrieves a single exercise.
func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx)
}

// RequestVideoUploadURL issues a presigned PUT URL for a new demonstration
// video. The exercise is only linked to it by ConfirmVideoUpload.
func (s *exerciseService) RequestVideoUploadURL(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	if s.fileStorage == nil {
		return nil, ErrStorageNotAvailable
	}
	if _, err := s.GetExerciseByID(ctx, exerciseID); err != nil {
		return nil, err
	}

	objectKey, err := storage.ExerciseVideoKey(exerciseID.Hex(), contentType)
	if err != nil {
		return nil, err
	}

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}
	return &UploadURLResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmVideoUpload links an uploaded video to the exercise. The previous
// video, if any, is removed from storage on a best-effort basis.
func (s *exerciseService) ConfirmVideoUpload(ctx context.Context, exerciseID primitive.ObjectID, objectKey string) (*domain.Exercise, error) {
	if s.fileStorage == nil {
		return nil, ErrStorageNotAvailable
	}
	if !storage.IsExerciseVideoKey(objectKey, exerciseID.Hex()) {
		return nil, ErrInvalidVideoKey
	}
	exercise, err := s.GetExerciseByID(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	if err := s.exerciseRepo.SetVideoKey(ctx, exerciseID, objectKey); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	if old := exercise.VideoKey; old != "" && old != objectKey {
		if err := s.fileStorage.DeleteObject(ctx, old); err != nil {
			s.log.Warn("failed to delete replaced exercise video", "exercise_id", exerciseID.Hex(), "key", old, "error", err)
		}
	}
	exercise.VideoKey = objectKey
	return exercise, nil
}

// GetVideoURL returns a temporary download URL for the exercise video.
func (s *exerciseService) GetVideoURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error) {
	if s.fileStorage == nil {
		return "", ErrStorageNotAvailable
	}
	exercise, err := s.GetExerciseByID(ctx, exerciseID)
	if err != nil {
		return "", err
	}
	if exercise.VideoKey == "" {
		return "", ErrVideoNotUploaded
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.VideoKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrDownloadURLError
	}
	return url, nil
}

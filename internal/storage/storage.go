package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

const exerciseVideoPrefix = "exercises"

var ErrInvalidContentType = errors.New("content type must be a video/* type")

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows PUT requests
	// for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading/viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	DeleteObject(ctx context.Context, objectKey string) error
}

// ExerciseVideoKey builds a fresh object key for a demonstration video of
// the exercise, e.g. exercises/<id>/<uuid>.mp4.
func ExerciseVideoKey(exerciseID, contentType string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(ct, "video/") || len(ct) == len("video/") {
		return "", ErrInvalidContentType
	}
	ext := strings.TrimPrefix(ct, "video/")
	if i := strings.IndexAny(ext, "; "); i >= 0 {
		ext = ext[:i]
	}
	if ext == "quicktime" {
		ext = "mov"
	}
	return path.Join(exerciseVideoPrefix, exerciseID, fmt.Sprintf("%s.%s", uuid.NewString(), ext)), nil
}

// IsExerciseVideoKey reports whether key was issued for exerciseID.
func IsExerciseVideoKey(key, exerciseID string) bool {
	prefix := exerciseVideoPrefix + "/" + exerciseID + "/"
	return strings.HasPrefix(key, prefix) && len(key) > len(prefix) && !strings.Contains(key, "..")
}

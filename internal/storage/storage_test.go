package storage

import (
	"alcyxob/gym-app/internal/config"
	"alcyxob/gym-app/internal/logger"
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
)

func TestExerciseVideoKey(t *testing.T) {
	key, err := ExerciseVideoKey("abc123", "video/mp4")
	if err != nil {
		t.Fatalf("ExerciseVideoKey: %v", err)
	}
	if !strings.HasPrefix(key, "exercises/abc123/") || !strings.HasSuffix(key, ".mp4") {
		t.Fatalf("unexpected key %q", key)
	}
	if !IsExerciseVideoKey(key, "abc123") {
		t.Fatalf("key %q should belong to abc123", key)
	}
	if IsExerciseVideoKey(key, "other") {
		t.Fatal("key must not match another exercise")
	}

	other, _ := ExerciseVideoKey("abc123", "video/mp4")
	if other == key {
		t.Fatal("keys should be unique per request")
	}

	if key, _ := ExerciseVideoKey("abc123", "video/quicktime"); !strings.HasSuffix(key, ".mov") {
		t.Fatalf("quicktime key = %q", key)
	}
	if key, _ := ExerciseVideoKey("abc123", "Video/WebM; codecs=vp9"); !strings.HasSuffix(key, ".webm") {
		t.Fatalf("webm key = %q", key)
	}
}

func TestExerciseVideoKeyRejectsNonVideo(t *testing.T) {
	for _, ct := range []string{"", "image/png", "video/", "application/octet-stream"} {
		if _, err := ExerciseVideoKey("abc123", ct); !errors.Is(err, ErrInvalidContentType) {
			t.Fatalf("content type %q: err = %v", ct, err)
		}
	}
	if IsExerciseVideoKey("exercises/abc123/../secret", "abc123") {
		t.Fatal("path traversal must be rejected")
	}
}

func TestPresignedURLsAgainstCustomEndpoint(t *testing.T) {
	cfg := config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		BucketName:      "videos",
	}
	fs, err := NewS3Storage(context.Background(), cfg, logger.Nop())
	if err != nil {
		t.Fatalf("NewS3Storage: %v", err)
	}

	raw, err := fs.GeneratePresignedUploadURL(context.Background(), "exercises/abc/1.mp4", "video/mp4", 0)
	if err != nil {
		t.Fatalf("presign put: %v", err)
	}
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	if u.Host != "localhost:9000" || u.Path != "/videos/exercises/abc/1.mp4" {
		t.Fatalf("expected path-style url on the custom endpoint, got %s", raw)
	}
	if u.Query().Get("X-Amz-Expires") != "900" {
		t.Fatalf("expected default 15m expiry, got %q", u.Query().Get("X-Amz-Expires"))
	}

	if _, err := fs.GeneratePresignedDownloadURL(context.Background(), "exercises/abc/1.mp4", 0); err != nil {
		t.Fatalf("presign get: %v", err)
	}
}

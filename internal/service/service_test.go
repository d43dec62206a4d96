package service

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/logger"
	"alcyxob/gym-app/internal/repository"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemUsers() *memUsers { return &memUsers{users: map[string]domain.User{}} }

func (m *memUsers) Create(_ context.Context, u *domain.User) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	u.ID = primitive.NewObjectID()
	m.users[u.Email] = *u
	return u.ID, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	out := []domain.User{}
	for _, id := range ids {
		if u, err := m.GetByID(ctx, id); err == nil {
			out = append(out, *u)
		}
	}
	return out, nil
}

func TestAuthRegisterAndLogin(t *testing.T) {
	users := newMemUsers()
	svc := NewAuthService(users, "test-secret", time.Hour)
	ctx := context.Background()

	u, err := svc.Register(ctx, "Carlos Lima", " Carlos@Gym.com ", "s3cret!", domain.RoleInstructor, "strength")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.PasswordHash != "" || u.Email != "carlos@gym.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if stored := users.users["carlos@gym.com"]; stored.PasswordHash == "" || stored.PasswordHash == "s3cret!" {
		t.Fatal("password must be stored hashed")
	}

	token, logged, err := svc.Login(ctx, "carlos@gym.com", "s3cret!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.ID != u.ID {
		t.Fatalf("logged in as %s, want %s", logged.ID.Hex(), u.ID.Hex())
	}

	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) { return []byte("test-secret"), nil })
	if err != nil || !parsed.Valid {
		t.Fatalf("token did not verify: %v", err)
	}
	if claims.UserID != u.ID.Hex() || claims.Role != domain.RoleInstructor || claims.Issuer != tokenIssuer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthRegisterRejects(t *testing.T) {
	svc := NewAuthService(newMemUsers(), "test-secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ana", "ana@gym.com", "pw", "member", ""); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("err = %v, want ErrInvalidRole", err)
	}
	if _, err := svc.Register(ctx, "", "ana@gym.com", "pw", domain.RoleAdmin, ""); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("err = %v, want ErrMissingCredentials", err)
	}
	if _, err := svc.Register(ctx, "Ana", "ana@gym.com", "pw", domain.RoleAdmin, ""); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, "Ana 2", "ANA@gym.com", "pw", domain.RoleAdmin, ""); !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("err = %v, want ErrUserAlreadyExists", err)
	}
}

func TestAuthLoginFailures(t *testing.T) {
	svc := NewAuthService(newMemUsers(), "test-secret", time.Hour)
	ctx := context.Background()
	if _, err := svc.Register(ctx, "Ana", "ana@gym.com", "right", domain.RoleAdmin, ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := svc.Login(ctx, "ana@gym.com", "wrong"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("wrong password: err = %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@gym.com", "right"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("unknown email: err = %v", err)
	}
}

type memExercises struct {
	mu        sync.Mutex
	exercises map[primitive.ObjectID]domain.Exercise
}

func newMemExercises() *memExercises {
	return &memExercises{exercises: map[primitive.ObjectID]domain.Exercise{}}
}

func (m *memExercises) Create(_ context.Context, e *domain.Exercise) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.exercises {
		if existing.Name == e.Name {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	e.ID = primitive.NewObjectID()
	m.exercises[e.ID] = *e
	return e.ID, nil
}

func (m *memExercises) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (m *memExercises) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	out := []domain.Exercise{}
	for _, id := range ids {
		if e, err := m.GetByID(ctx, id); err == nil {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *memExercises) List(_ context.Context) ([]domain.Exercise, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Exercise{}
	for _, e := range m.exercises {
		out = append(out, e)
	}
	return out, nil
}

func (m *memExercises) SetVideoKey(_ context.Context, id primitive.ObjectID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.exercises[id]
	if !ok {
		return repository.ErrNotFound
	}
	e.VideoKey = key
	m.exercises[id] = e
	return nil
}

type fakeStorage struct {
	deleted []string
	fail    bool
}

func (f *fakeStorage) GeneratePresignedUploadURL(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	if f.fail {
		return "", errors.New("s3 down")
	}
	return "https://s3.test/put/" + key, nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if f.fail {
		return "", errors.New("s3 down")
	}
	return "https://s3.test/get/" + key, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func TestExerciseCatalogue(t *testing.T) {
	svc := NewExerciseService(newMemExercises(), &fakeStorage{}, logger.Nop())
	ctx := context.Background()
	staff := primitive.NewObjectID()

	if _, err := svc.CreateExercise(ctx, staff, ExerciseInput{}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("empty name: err = %v", err)
	}
	ex, err := svc.CreateExercise(ctx, staff, ExerciseInput{Name: " Deadlift ", MuscleGroup: "back"})
	if err != nil {
		t.Fatalf("CreateExercise: %v", err)
	}
	if ex.Name != "Deadlift" || ex.CreatedBy != staff {
		t.Fatalf("unexpected exercise: %+v", ex)
	}
	if _, err := svc.CreateExercise(ctx, staff, ExerciseInput{Name: "Deadlift"}); !errors.Is(err, ErrExerciseExists) {
		t.Fatalf("duplicate: err = %v", err)
	}
	if _, err := svc.GetExerciseByID(ctx, primitive.NewObjectID()); !errors.Is(err, ErrExerciseNotFound) {
		t.Fatalf("unknown: err = %v", err)
	}
	list, err := svc.ListExercises(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %v, %v", list, err)
	}
}

func TestExerciseVideoFlow(t *testing.T) {
	fs := &fakeStorage{}
	svc := NewExerciseService(newMemExercises(), fs, logger.Nop())
	ctx := context.Background()
	ex, _ := svc.CreateExercise(ctx, primitive.NewObjectID(), ExerciseInput{Name: "Plank"})

	if _, err := svc.GetVideoURL(ctx, ex.ID); !errors.Is(err, ErrVideoNotUploaded) {
		t.Fatalf("no video yet: err = %v", err)
	}
	if _, err := svc.RequestVideoUploadURL(ctx, ex.ID, "image/png"); err == nil {
		t.Fatal("non-video content type must be rejected")
	}

	first, err := svc.RequestVideoUploadURL(ctx, ex.ID, "video/mp4")
	if err != nil {
		t.Fatalf("RequestVideoUploadURL: %v", err)
	}
	if !strings.HasPrefix(first.ObjectKey, "exercises/"+ex.ID.Hex()+"/") || !strings.HasSuffix(first.UploadURL, first.ObjectKey) {
		t.Fatalf("unexpected upload response: %+v", first)
	}
	if _, err := svc.ConfirmVideoUpload(ctx, ex.ID, "exercises/other/x.mp4"); !errors.Is(err, ErrInvalidVideoKey) {
		t.Fatalf("foreign key: err = %v", err)
	}
	if _, err := svc.ConfirmVideoUpload(ctx, ex.ID, first.ObjectKey); err != nil {
		t.Fatalf("ConfirmVideoUpload: %v", err)
	}

	second, _ := svc.RequestVideoUploadURL(ctx, ex.ID, "video/webm")
	if _, err := svc.ConfirmVideoUpload(ctx, ex.ID, second.ObjectKey); err != nil {
		t.Fatalf("second confirm: %v", err)
	}
	if len(fs.deleted) != 1 || fs.deleted[0] != first.ObjectKey {
		t.Fatalf("replaced video should be deleted, got %v", fs.deleted)
	}

	url, err := svc.GetVideoURL(ctx, ex.ID)
	if err != nil || url != "https://s3.test/get/"+second.ObjectKey {
		t.Fatalf("GetVideoURL = %q, %v", url, err)
	}
}

func TestExerciseVideoWithoutStorage(t *testing.T) {
	svc := NewExerciseService(newMemExercises(), nil, logger.Nop())
	if _, err := svc.GetVideoURL(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrStorageNotAvailable) {
		t.Fatalf("err = %v", err)
	}
}

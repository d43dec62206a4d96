package main

import (
	"alcyxob/gym-app/internal/api"
	"alcyxob/gym-app/internal/config"
	"alcyxob/gym-app/internal/history"
	"alcyxob/gym-app/internal/logger"
	"alcyxob/gym-app/internal/ratelimit"
	"alcyxob/gym-app/internal/repository/mongo"
	"alcyxob/gym-app/internal/service"
	"alcyxob/gym-app/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Gym Member History API
// @version 1.0
// @description Consolidated member history (enrollments, workout plans, assessments, attendance, payments) for gym staff.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	appLog, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("FATAL: Could not build logger: %v", err)
	}
	defer appLog.Sync()
	appLog.Info("starting gym app server", "address", cfg.Server.Address)

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		appLog.Fatal("could not connect to MongoDB", "error", err)
	}
	defer func() {
		appLog.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			appLog.Error("failed to disconnect MongoDB", "error", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	appLog.Info("database connection established", "database", cfg.Database.Name)

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			appLog.Error("index creation failed", "error", err)
			return
		}
		appLog.Info("index creation process completed")
	}()

	// --- Initialize Storage ---
	// Video storage is optional; without a bucket the video endpoints answer 503.
	var fileStorage storage.FileStorage
	if cfg.S3.BucketName != "" {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3, appLog)
		if err != nil {
			appLog.Fatal("failed to initialize S3 storage", "error", err)
		}
	} else {
		appLog.Warn("s3 bucket not configured, exercise videos disabled")
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	memberRepo := mongo.NewMongoMemberRepository(appDB)
	planRepo := mongo.NewMongoSubscriptionPlanRepository(appDB)
	enrollmentRepo := mongo.NewMongoEnrollmentRepository(appDB)
	workoutPlanRepo := mongo.NewMongoWorkoutPlanRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	assessmentRepo := mongo.NewMongoAssessmentRepository(appDB)
	attendanceRepo := mongo.NewMongoAttendanceRepository(appDB)
	paymentRepo := mongo.NewMongoPaymentRepository(appDB)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	exerciseService := service.NewExerciseService(exerciseRepo, fileStorage, appLog.With("component", "exercises"))

	aggregator := history.NewAggregator(history.Sources{
		Members:           memberRepo,
		Enrollments:       enrollmentRepo,
		SubscriptionPlans: planRepo,
		WorkoutPlans:      workoutPlanRepo,
		Exercises:         exerciseRepo,
		Instructors:       userRepo,
		Assessments:       assessmentRepo,
		Attendance:        attendanceRepo,
		Payments:          paymentRepo,
	}, appLog.With("component", "history"), history.WithFetchTimeout(cfg.History.FetchTimeout))
	historyService := history.NewService(aggregator, cfg.History.Strict)

	// --- Rate Limiter ---
	var limiter *ratelimit.Limiter
	redisClient, err := ratelimit.NewClient(cfg.Redis)
	if err != nil {
		appLog.Fatal("invalid redis configuration", "error", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		limiter = ratelimit.New(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window, appLog.With("component", "ratelimit"))
		appLog.Info("history rate limiting enabled", "requests", cfg.RateLimit.Requests, "window", cfg.RateLimit.Window.String())
	} else {
		appLog.Warn("redis not configured, history rate limiting disabled")
	}

	// --- Initialize Gin Engine ---
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(appLog.With("component", "http")))

	api.SetupRoutes(router, cfg.JWT.Secret, authService, exerciseService, historyService, limiter)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		appLog.Info("server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("ListenAndServe error", "error", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		appLog.Error("server forced to shutdown", "error", err)
	}

	appLog.Info("server exiting")
}

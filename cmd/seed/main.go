// Command seed fills the database with one demo member and a year of history
// so the history endpoints have something to show.
package main

import (
	"alcyxob/gym-app/internal/config"
	"alcyxob/gym-app/internal/logger"
	"alcyxob/gym-app/internal/repository/mongo"
	"alcyxob/gym-app/internal/service"
	"context"
	"flag"
	"fmt"
	"log"
	"time"
)

func main() {
	instructorEmail := flag.String("instructor-email", "coach@gym.local", "email of the demo instructor")
	instructorPassword := flag.String("instructor-password", "changeme123", "password of the demo instructor")
	flag.Parse()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	appLog, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("FATAL: Could not build logger: %v", err)
	}
	defer appLog.Sync()

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		appLog.Fatal("could not connect to MongoDB", "error", err)
	}
	defer func() { _ = mongo.DisconnectDB(dbClient) }()
	appDB := dbClient.Database(cfg.Database.Name)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
		appLog.Fatal("index creation failed", "error", err)
	}

	userRepo := mongo.NewMongoUserRepository(appDB)
	s := seeder{
		users:       userRepo,
		auth:        service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration),
		exercises:   service.NewExerciseService(mongo.NewMongoExerciseRepository(appDB), nil, appLog),
		members:     mongo.NewMongoMemberRepository(appDB),
		plans:       mongo.NewMongoSubscriptionPlanRepository(appDB),
		enrollments: mongo.NewMongoEnrollmentRepository(appDB),
		workouts:    mongo.NewMongoWorkoutPlanRepository(appDB),
		assessments: mongo.NewMongoAssessmentRepository(appDB),
		attendance:  mongo.NewMongoAttendanceRepository(appDB),
		payments:    mongo.NewMongoPaymentRepository(appDB),
		log:         appLog,
		today:       time.Now().UTC().Truncate(24 * time.Hour),
	}

	memberID, err := s.run(ctx, *instructorEmail, *instructorPassword)
	if err != nil {
		appLog.Fatal("seed failed", "error", err)
	}
	appLog.Info("seed completed", "member_id", memberID.Hex())
	fmt.Println(memberID.Hex())
}

package services

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/marktudor11/fitlytics/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Meal{},
		&models.TrainingSession{},
		&models.Exercise{},
		&models.Set{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func validSignup() SignupInput {
	return SignupInput{
		Username:      "alice",
		Email:         "alice@example.com",
		Password:      "s3cret-pw",
		Age:           30,
		Gender:        "Female",
		HeightCm:      170,
		WeightKg:      65,
		Goal:          "Gain Muscle",
		ActivityLevel: "Active (3-5 days/week)",
	}
}

func mustSignup(t *testing.T, svc *AccountService) *models.User {
	t.Helper()
	user, err := svc.Signup(validSignup())
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	return user
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/learnloop/learnloop-backend/internal/database"
	"github.com/learnloop/learnloop-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// setupTestDB initializes a fresh in-memory SQLite DB for one test and
// points the global database.DB at it, mirroring how the handlers use the
// global in production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying sql.DB: %v", err)
	}
	// A single connection keeps the shared in-memory DB stable under the
	// concurrency tests.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.ActivityRecord{},
		&models.CourseStats{},
		&models.UserStats{},
		&models.Badge{},
		&models.BadgeAward{},
		&models.Post{},
		&models.PostLike{},
		&models.Feedback{},
	); err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}

	database.DB = db
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, id string) models.User {
	t.Helper()
	user := models.User{
		ID:       id,
		Username: id,
		Email:    id + "@example.com",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func createTestCourse(t *testing.T, db *gorm.DB, id string, totalQuestions int) models.Course {
	t.Helper()
	course := models.Course{
		ID:             id,
		Title:          "Course " + id,
		Slug:           "course-" + id,
		TotalQuestions: totalQuestions,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("Failed to create test course: %v", err)
	}
	return course
}

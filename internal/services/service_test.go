package services_test

import (
	"testing"

	"github.com/careerpilot/careerpilot-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Resume{},
		&models.JobApplication{},
		&models.GeneratedContent{},
		&models.GuestUsage{},
		&models.AIRequestLog{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// createTestUser inserts a user row and returns its id.
func createTestUser(t *testing.T, db *gorm.DB, email string) string {
	t.Helper()

	user := models.User{
		Email:        email,
		PasswordHash: "x",
		Name:         "Test User",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user.ID
}

package handlers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/careerpilot/careerpilot-api/internal/middleware"
	"github.com/careerpilot/careerpilot-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/tmc/langchaingo/llms"
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

// asOwner simulates a resolved session by injecting the owner id the way
// the auth middleware does. An empty id leaves the request anonymous.
func asOwner(id string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id != "" {
			c.Locals(middleware.OwnerKey, id)
		}
		return c.Next()
	}
}

var errFake = errors.New("fake provider down")

// fakeModel is a canned llms.Model for handler tests.
type fakeModel struct {
	output string
	chunks []string
	err    error
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}

	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}
	if opts.StreamingFunc != nil {
		for _, chunk := range f.chunks {
			if err := opts.StreamingFunc(ctx, []byte(chunk)); err != nil {
				return nil, err
			}
		}
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.output}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

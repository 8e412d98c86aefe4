package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/careerpilot/careerpilot-api/internal/handlers"
	"github.com/careerpilot/careerpilot-api/internal/models"
	"github.com/careerpilot/careerpilot-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newResumeApp(db *gorm.DB, ownerID string) *fiber.App {
	app := fiber.New()
	handler := &handlers.ResumeHandler{DB: db}
	app.Post("/api/resumes", asOwner(ownerID), handler.Upload)
	app.Get("/api/resumes", asOwner(ownerID), handler.List)
	app.Delete("/api/resumes", asOwner(ownerID), handler.Delete)
	return app
}

// multipartFile builds a multipart body with a single "file" part.
func multipartFile(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="file"; filename="` + filename + `"`}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("Failed to create multipart part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("Failed to write multipart data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	return &buf, writer.FormDataContentType()
}

func TestUploadRejectsNonPDF(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	app := newResumeApp(db, owner)

	body, contentType := multipartFile(t, "resume.txt", "application/pdf", []byte("plain text, not a pdf"))
	req := httptest.NewRequest("POST", "/api/resumes", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["message"] != "Only PDF files are supported." {
		t.Errorf("Unexpected message: %v", result["message"])
	}

	// Nothing was stored.
	var count int64
	db.Model(&models.Resume{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no stored resumes, got %d", count)
	}
}

func TestUploadRejectsWrongContentType(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	app := newResumeApp(db, owner)

	body, contentType := multipartFile(t, "resume.png", "image/png", []byte{0x89, 0x50, 0x4E, 0x47})
	req := httptest.NewRequest("POST", "/api/resumes", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

func TestUploadRejectsMissingFile(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	app := newResumeApp(db, owner)

	req := httptest.NewRequest("POST", "/api/resumes", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=empty")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

func TestListResumes(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	app := newResumeApp(db, owner)

	if _, err := services.CreateResume(db, owner, "Mine", "text"); err != nil {
		t.Fatalf("CreateResume failed: %v", err)
	}
	if _, err := services.CreateResume(db, other, "Theirs", "text"); err != nil {
		t.Fatalf("CreateResume failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/resumes", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result struct {
		Resumes []models.Resume `json:"resumes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(result.Resumes) != 1 {
		t.Fatalf("Expected 1 resume, got %d", len(result.Resumes))
	}
	if result.Resumes[0].Label != "Mine" {
		t.Errorf("Expected own resume only, got %q", result.Resumes[0].Label)
	}
}

func TestDeleteResume(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	app := newResumeApp(db, owner)

	resume, err := services.CreateResume(db, owner, "Mine", "text")
	if err != nil {
		t.Fatalf("CreateResume failed: %v", err)
	}

	req := httptest.NewRequest("DELETE", "/api/resumes?id="+resume.ID, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["success"] != true {
		t.Errorf("Expected success=true, got %v", result["success"])
	}

	// Deleting again reports not found.
	req = httptest.NewRequest("DELETE", "/api/resumes?id="+resume.ID, nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404 on second delete, got %d", resp.StatusCode)
	}
}

func TestDeleteResumeMissingID(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	app := newResumeApp(db, owner)

	req := httptest.NewRequest("DELETE", "/api/resumes", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

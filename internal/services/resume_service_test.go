package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/careerpilot/careerpilot-api/internal/services"
)

func TestResumeSourceFromRequest(t *testing.T) {
	cases := []struct {
		text     string
		resumeID string
		want     services.ResumeSourceKind
	}{
		{"actual resume text", "", services.ResumeLiteral},
		{"actual resume text", "some-id", services.ResumeLiteral},
		{"", "", services.ResumeLatest},
		{"FETCH_FROM_DB", "", services.ResumeLatest},
		{"FETCH_IN_PANEL", "", services.ResumeLatest},
		{"REPLACE_WITH_ACTUAL_RESUME_TEXT", "", services.ResumeLatest},
		{"FETCH_FROM_DB", "some-id", services.ResumeByID},
		{"", "some-id", services.ResumeByID},
	}

	for _, c := range cases {
		src := services.ResumeSourceFromRequest(c.text, c.resumeID)
		if src.Kind != c.want {
			t.Errorf("ResumeSourceFromRequest(%q, %q): expected kind %d, got %d", c.text, c.resumeID, c.want, src.Kind)
		}
	}
}

func TestResolveResumeTextLiteral(t *testing.T) {
	db := setupTestDB(t)

	// Literal text passes through even without an owner.
	text, err := services.ResolveResumeText(db, services.ResumeSource{Kind: services.ResumeLiteral, Text: "my resume"}, "")
	if err != nil {
		t.Fatalf("ResolveResumeText failed: %v", err)
	}
	if text != "my resume" {
		t.Errorf("Expected literal passthrough, got %q", text)
	}
}

func TestResolveResumeTextRequiresOwner(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.ResolveResumeText(db, services.ResumeSource{Kind: services.ResumeLatest}, "")
	if !errors.Is(err, services.ErrUnauthenticated) {
		t.Errorf("Expected ErrUnauthenticated, got %v", err)
	}
}

func TestResolveResumeTextLatest(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")

	if _, err := services.CreateResume(db, owner, "Old", "old text"); err != nil {
		t.Fatalf("CreateResume failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := services.CreateResume(db, owner, "New", "new text"); err != nil {
		t.Fatalf("CreateResume failed: %v", err)
	}

	text, err := services.ResolveResumeText(db, services.ResumeSource{Kind: services.ResumeLatest}, owner)
	if err != nil {
		t.Fatalf("ResolveResumeText failed: %v", err)
	}
	if text != "new text" {
		t.Errorf("Expected most recent resume, got %q", text)
	}
}

func TestResolveResumeTextByID(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	resume, err := services.CreateResume(db, owner, "Main", "owned text")
	if err != nil {
		t.Fatalf("CreateResume failed: %v", err)
	}

	text, err := services.ResolveResumeText(db, services.ResumeSource{Kind: services.ResumeByID, ResumeID: resume.ID}, owner)
	if err != nil {
		t.Fatalf("ResolveResumeText failed: %v", err)
	}
	if text != "owned text" {
		t.Errorf("Expected stored text, got %q", text)
	}

	// Lookups never cross an owner boundary.
	if _, err := services.ResolveResumeText(db, services.ResumeSource{Kind: services.ResumeByID, ResumeID: resume.ID}, other); !errors.Is(err, services.ErrNoResume) {
		t.Errorf("Expected ErrNoResume for non-owner lookup, got %v", err)
	}
}

func TestResolveResumeTextNoResumes(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")

	_, err := services.ResolveResumeText(db, services.ResumeSource{Kind: services.ResumeLatest}, owner)
	if !errors.Is(err, services.ErrNoResume) {
		t.Errorf("Expected ErrNoResume, got %v", err)
	}
}

func TestCreateResumeDefaultLabel(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")

	resume, err := services.CreateResume(db, owner, "", "some text")
	if err != nil {
		t.Fatalf("CreateResume failed: %v", err)
	}
	if resume.Label != "My Resume" {
		t.Errorf("Expected default label, got %q", resume.Label)
	}
}

func TestDeleteResumeOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	resume, err := services.CreateResume(db, owner, "Main", "text")
	if err != nil {
		t.Fatalf("CreateResume failed: %v", err)
	}

	if err := services.DeleteResume(db, other, resume.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for non-owner delete, got %v", err)
	}

	if err := services.DeleteResume(db, owner, resume.ID); err != nil {
		t.Fatalf("DeleteResume failed: %v", err)
	}

	resumes, err := services.ListResumes(db, owner)
	if err != nil {
		t.Fatalf("ListResumes failed: %v", err)
	}
	if len(resumes) != 0 {
		t.Errorf("Expected no resumes after delete, got %d", len(resumes))
	}
}

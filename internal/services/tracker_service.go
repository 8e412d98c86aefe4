package services

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/careerpilot/careerpilot-api/internal/ai"
	"github.com/careerpilot/careerpilot-api/internal/models"
	"gorm.io/gorm"
)

// ApplicationInput carries the caller-supplied fields for a new pipeline
// entry. JDText is optional and defaults to empty.
type ApplicationInput struct {
	CompanyName string `json:"companyName"`
	RoleTitle   string `json:"roleTitle"`
	JDText      string `json:"jdText"`
}

// CreateApplication inserts a new tracked application for the owner. New
// rows always start at BOOKMARKED.
func CreateApplication(db *gorm.DB, ownerID string, in ApplicationInput) (*models.JobApplication, error) {
	if in.CompanyName == "" || in.RoleTitle == "" {
		return nil, &ValidationError{Msg: "Missing required fields"}
	}

	app := &models.JobApplication{
		UserID:      ownerID,
		CompanyName: in.CompanyName,
		RoleTitle:   in.RoleTitle,
		JDText:      in.JDText,
		Status:      models.StatusBookmarked,
	}
	if err := db.Create(app).Error; err != nil {
		return nil, fmt.Errorf("createApplication: %w", err)
	}
	return app, nil
}

// ListApplications returns all applications for the owner, most recently
// updated first.
func ListApplications(db *gorm.DB, ownerID string) ([]models.JobApplication, error) {
	apps := make([]models.JobApplication, 0)
	err := db.Where("user_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("listApplications: %w", err)
	}
	return apps, nil
}

// UpdateApplicationStatus moves an application to a new status. The write is
// filtered by id and owner in a single statement; a non-owner's attempt
// returns ErrNotFound exactly like a missing id.
func UpdateApplicationStatus(db *gorm.DB, id, ownerID string, status models.ApplicationStatus) (*models.JobApplication, error) {
	res := db.Model(&models.JobApplication{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("updateApplicationStatus: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var app models.JobApplication
	if err := db.Where("id = ? AND user_id = ?", id, ownerID).First(&app).Error; err != nil {
		return nil, ErrNotFound
	}
	return &app, nil
}

// CacheAnalysis stores the latest match analysis on an owned application.
// Best-effort: failures are logged and swallowed, never surfaced.
func CacheAnalysis(db *gorm.DB, id, ownerID string, analysis *ai.Analysis) {
	raw, err := json.Marshal(analysis)
	if err != nil {
		slog.Warn("cacheAnalysis marshal failed", "applicationId", id, "err", err)
		return
	}

	var doc models.JSON
	_ = doc.Scan(raw)

	res := db.Model(&models.JobApplication{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(map[string]interface{}{
			"match_score": analysis.MatchScore,
			"analysis":    doc,
		})
	if res.Error != nil {
		slog.Warn("cacheAnalysis update failed", "applicationId", id, "err", res.Error)
	}
}

// SaveGeneratedContent persists the final text of a completed generation for
// an application. Called only after a clean stream finish.
func SaveGeneratedContent(db *gorm.DB, applicationID string, contentType models.ContentType, content string) error {
	row := &models.GeneratedContent{
		ApplicationID: applicationID,
		Type:          contentType,
		Content:       content,
	}
	if err := db.Create(row).Error; err != nil {
		return fmt.Errorf("saveGeneratedContent: %w", err)
	}
	return nil
}

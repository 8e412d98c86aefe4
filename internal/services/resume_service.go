package services

import (
	"errors"
	"fmt"

	"github.com/careerpilot/careerpilot-api/internal/models"
	"gorm.io/gorm"
)

// ResumeSourceKind selects how resume text for an AI call is obtained.
type ResumeSourceKind int

const (
	// ResumeLiteral uses caller-supplied text verbatim.
	ResumeLiteral ResumeSourceKind = iota
	// ResumeLatest falls back to the owner's most recently created resume.
	ResumeLatest
	// ResumeByID looks up a specific resume, filtered by owner.
	ResumeByID
)

// ResumeSource is the explicit variant replacing the legacy placeholder
// sentinels ("FETCH_FROM_DB" and friends) the web client used to send.
type ResumeSource struct {
	Kind     ResumeSourceKind
	Text     string
	ResumeID string
}

// legacy placeholder strings still sent by older clients. They mean "resolve
// server-side", never literal resume content.
var resumeSentinels = map[string]struct{}{
	"":                                {},
	"FETCH_FROM_DB":                   {},
	"FETCH_IN_PANEL":                  {},
	"REPLACE_WITH_ACTUAL_RESUME_TEXT": {},
}

// ResumeSourceFromRequest maps a raw request's resumeText/resumeId pair onto
// an explicit ResumeSource. This is the only place sentinel strings are
// interpreted.
func ResumeSourceFromRequest(text, resumeID string) ResumeSource {
	if _, isSentinel := resumeSentinels[text]; !isSentinel {
		return ResumeSource{Kind: ResumeLiteral, Text: text}
	}
	if resumeID != "" {
		return ResumeSource{Kind: ResumeByID, ResumeID: resumeID}
	}
	return ResumeSource{Kind: ResumeLatest}
}

// ResolveResumeText returns the effective resume text for an AI call.
// Literal text passes through unchanged. Lookups require an owner and are
// always filtered by it; the stored extracted text is returned verbatim.
// Pure read, no side effects.
func ResolveResumeText(db *gorm.DB, src ResumeSource, ownerID string) (string, error) {
	if src.Kind == ResumeLiteral {
		return src.Text, nil
	}
	if ownerID == "" {
		return "", ErrUnauthenticated
	}

	var resume models.Resume
	switch src.Kind {
	case ResumeByID:
		err := db.Where("id = ? AND user_id = ?", src.ResumeID, ownerID).First(&resume).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNoResume
		} else if err != nil {
			return "", fmt.Errorf("resolveResumeText: %w", err)
		}
	default:
		err := db.Where("user_id = ?", ownerID).Order("created_at DESC").First(&resume).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNoResume
		} else if err != nil {
			return "", fmt.Errorf("resolveResumeText: %w", err)
		}
	}
	return resume.ExtractedText, nil
}

// CreateResume stores a parsed resume for the owner.
func CreateResume(db *gorm.DB, ownerID, label, extractedText string) (*models.Resume, error) {
	resume := &models.Resume{
		UserID:        ownerID,
		Label:         label,
		ExtractedText: extractedText,
	}
	if err := db.Create(resume).Error; err != nil {
		return nil, fmt.Errorf("createResume: %w", err)
	}
	return resume, nil
}

// ListResumes returns the owner's resumes, newest first.
func ListResumes(db *gorm.DB, ownerID string) ([]models.Resume, error) {
	resumes := make([]models.Resume, 0)
	err := db.Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&resumes).Error
	if err != nil {
		return nil, fmt.Errorf("listResumes: %w", err)
	}
	return resumes, nil
}

// DeleteResume removes a resume, filtered by id and owner together. A
// non-owned id returns ErrNotFound.
func DeleteResume(db *gorm.DB, ownerID, id string) error {
	res := db.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Resume{})
	if res.Error != nil {
		return fmt.Errorf("deleteResume: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultResumeLabel is used when an upload carries no label field.
const DefaultResumeLabel = "My Resume"

// Resume stores the normalized text extracted from an uploaded PDF. Rows are
// immutable after creation; the owner may only delete them.
type Resume struct {
	ID            string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID        string    `gorm:"type:char(36);not null;index" json:"-"`
	Label         string    `gorm:"size:255;not null;default:'My Resume'" json:"label"`
	ExtractedText string    `gorm:"type:text;not null" json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BeforeCreate assigns a uuid primary key when none was supplied.
func (r *Resume) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Label == "" {
		r.Label = DefaultResumeLabel
	}
	return nil
}

// TableName overrides the table name for Resume
func (Resume) TableName() string {
	return "resumes"
}

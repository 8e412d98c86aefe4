package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationStatus values mirror the pipeline columns in the tracker UI.
// Transitions are caller-driven; there is no enforced order.
type ApplicationStatus string

const (
	StatusBookmarked   ApplicationStatus = "BOOKMARKED"
	StatusApplied      ApplicationStatus = "APPLIED"
	StatusInterviewing ApplicationStatus = "INTERVIEWING"
	StatusOffered      ApplicationStatus = "OFFERED"
	StatusRejected     ApplicationStatus = "REJECTED"
)

// ParseApplicationStatus converts a raw string to an ApplicationStatus,
// returning an error for unknown values.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	switch st {
	case StatusBookmarked, StatusApplied, StatusInterviewing, StatusOffered, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// JobApplication is a tracked entry in a user's pipeline. Every read and
// write path is filtered by UserID as well as ID.
type JobApplication struct {
	ID          string            `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      string            `gorm:"type:char(36);not null;index" json:"-"`
	CompanyName string            `gorm:"size:255;not null" json:"companyName"`
	RoleTitle   string            `gorm:"size:255;not null" json:"roleTitle"`
	JDText      string            `gorm:"type:text" json:"jdText,omitempty"`
	Status      ApplicationStatus `gorm:"size:32;not null;default:'BOOKMARKED'" json:"status"`
	MatchScore  *int              `json:"matchScore"`
	Analysis    JSON              `json:"analysis,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`

	GeneratedContents []GeneratedContent `gorm:"foreignKey:ApplicationID" json:"-"`
}

// BeforeCreate assigns a uuid primary key when none was supplied.
func (a *JobApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = StatusBookmarked
	}
	return nil
}

// TableName overrides the table name for JobApplication
func (JobApplication) TableName() string {
	return "job_applications"
}

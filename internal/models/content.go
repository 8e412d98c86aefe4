package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentType identifies the flavor of generated writing.
type ContentType string

const (
	ContentCoverLetter     ContentType = "COVER_LETTER"
	ContentLinkedInMessage ContentType = "LINKEDIN_MESSAGE"
	ContentColdEmail       ContentType = "COLD_EMAIL"
)

// ParseContentType converts a raw string to a ContentType, returning an
// error for unknown values.
func ParseContentType(s string) (ContentType, error) {
	ct := ContentType(s)
	switch ct {
	case ContentCoverLetter, ContentLinkedInMessage, ContentColdEmail:
		return ct, nil
	}
	return "", fmt.Errorf("unknown content type %q", s)
}

// GeneratedContent is written only as a side effect of a completed AI
// generation tied to an application.
type GeneratedContent struct {
	ID            string      `gorm:"type:char(36);primaryKey" json:"id"`
	ApplicationID string      `gorm:"type:char(36);not null;index" json:"applicationId"`
	Type          ContentType `gorm:"size:32;not null" json:"type"`
	Content       string      `gorm:"type:text;not null" json:"content"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// BeforeCreate assigns a uuid primary key when none was supplied.
func (g *GeneratedContent) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for GeneratedContent
func (GeneratedContent) TableName() string {
	return "generated_contents"
}

// GuestUsage counts unauthenticated AI requests per client IP. The count is
// monotonic; there is no reset or expiry.
type GuestUsage struct {
	IPAddress    string    `gorm:"size:64;primaryKey" json:"ipAddress"`
	RequestCount int       `gorm:"not null;default:0" json:"requestCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName overrides the table name for GuestUsage
func (GuestUsage) TableName() string {
	return "guest_usages"
}

// AIRequestLog is an append-only record of provider calls. Writes are
// best-effort; a failure never aborts the triggering request.
type AIRequestLog struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID     *string   `gorm:"type:char(36);index" json:"userId,omitempty"`
	Provider   string    `gorm:"size:64;not null" json:"provider"`
	Feature    string    `gorm:"size:64;not null" json:"feature"`
	TokensUsed int       `gorm:"not null;default:0" json:"tokensUsed"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BeforeCreate assigns a uuid primary key when none was supplied.
func (l *AIRequestLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for AIRequestLog
func (AIRequestLog) TableName() string {
	return "ai_request_logs"
}

package services

import (
	"log/slog"

	"github.com/careerpilot/careerpilot-api/internal/models"
	"gorm.io/gorm"
)

// LogAIRequest appends a provider-call record. Fire-and-forget: a failed
// write is logged server-side and swallowed so it can never abort the
// triggering request.
func LogAIRequest(db *gorm.DB, userID *string, provider, feature string, tokensUsed int) {
	entry := &models.AIRequestLog{
		UserID:     userID,
		Provider:   provider,
		Feature:    feature,
		TokensUsed: tokensUsed,
	}
	if err := db.Create(entry).Error; err != nil {
		slog.Warn("ai request log write failed", "feature", feature, "err", err)
	}
}

package services

import (
	"errors"
	"fmt"

	"github.com/careerpilot/careerpilot-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GuestRequestLimit is the lifetime ceiling of AI requests per anonymous IP.
// Authenticated callers bypass the quota entirely.
const GuestRequestLimit = 3

// AdmitGuestRequest admits or rejects an unauthenticated AI request from the
// given IP. Rejection performs no write; admission increments the counter in
// a single upsert. Concurrent bursts from the same IP can over-admit by the
// in-flight count — tolerated, this is not a hard security boundary.
func AdmitGuestRequest(db *gorm.DB, ipAddress string) error {
	var usage models.GuestUsage
	err := db.Where("ip_address = ?", ipAddress).First(&usage).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("admitGuestRequest read: %w", err)
	}

	if usage.RequestCount >= GuestRequestLimit {
		return ErrQuotaExceeded
	}

	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ip_address"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count": gorm.Expr("request_count + 1"),
		}),
	}).Create(&models.GuestUsage{IPAddress: ipAddress, RequestCount: 1}).Error
	if err != nil {
		return fmt.Errorf("admitGuestRequest increment: %w", err)
	}
	return nil
}

// GuestRequestCount reports the stored count for an IP, 0 when absent.
func GuestRequestCount(db *gorm.DB, ipAddress string) (int, error) {
	var usage models.GuestUsage
	err := db.Where("ip_address = ?", ipAddress).First(&usage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	} else if err != nil {
		return 0, fmt.Errorf("guestRequestCount: %w", err)
	}
	return usage.RequestCount, nil
}

package services

import (
	"fmt"
	"log"

	"github.com/careerpilot/careerpilot-api/internal/config"
	"github.com/careerpilot/careerpilot-api/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Authorizer   string            `json:"authorizer"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck probes database and Authorizer connectivity.
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else if err := sqlDB.Ping(); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
		log.Printf("Health check failed - database ping: %v", err)
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase
	}

	if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
		result.Status = "unhealthy"
		result.Authorizer = "unreachable"
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("Authorizer ping failed: %v", err)
		} else {
			result.ErrorMessage += fmt.Sprintf("; Authorizer ping failed: %v", err)
		}
		log.Printf("Health check failed - authorizer ping: %v", err)
	} else {
		result.Authorizer = "ok"
		result.Details["authorizer_url"] = cfg.AuthzURL
	}

	return result
}

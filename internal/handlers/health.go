package handlers

import (
	"github.com/careerpilot/careerpilot-api/internal/config"
	"github.com/careerpilot/careerpilot-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HealthHandler reports process, database and Authorizer health.
type HealthHandler struct {
	Config *config.Config
	DB     *gorm.DB
}

// Check handles GET /api/health
// @Summary Health check
// @Description Probes database and Authorizer connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Config, h.DB)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}

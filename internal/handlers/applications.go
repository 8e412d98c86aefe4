package handlers

import (
	"errors"

	"github.com/careerpilot/careerpilot-api/internal/models"
	"github.com/careerpilot/careerpilot-api/internal/services"
	"github.com/careerpilot/careerpilot-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ApplicationHandler handles the job application pipeline. All routes
// require an authenticated owner.
type ApplicationHandler struct {
	DB *gorm.DB
}

// List handles GET /api/applications
// @Summary List applications
// @Description List the owner's tracked applications, most recently updated first
// @Tags Applications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	jobs, err := services.ListApplications(h.DB, ownerID(c))
	if err != nil {
		return utils.ErrorResponse(c, "Internal Server Error", fiber.StatusInternalServerError, "listApplications")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"jobs": jobs})
}

// Create handles POST /api/applications
// @Summary Create an application
// @Description Track a new job application; status starts at BOOKMARKED
// @Tags Applications
// @Accept json
// @Produce json
// @Param body body services.ApplicationInput true "Application fields"
// @Success 200 {object} models.JobApplication
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /applications [post]
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var in services.ApplicationInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "careerpilot.validation.input")
	}

	app, err := services.CreateApplication(h.DB, ownerID(c), in)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return utils.ErrorResponse(c, verr.Msg, fiber.StatusBadRequest, "careerpilot.validation.application")
		}
		return utils.ErrorResponse(c, "Internal Server Error", fiber.StatusInternalServerError, "createApplication")
	}

	return c.Status(fiber.StatusOK).JSON(app)
}

// UpdateStatus handles PUT /api/applications
// @Summary Update application status
// @Description Move an owned application to a new pipeline status
// @Tags Applications
// @Accept json
// @Produce json
// @Param body body object true "id and status"
// @Success 200 {object} models.JobApplication
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /applications [put]
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	var body struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "careerpilot.validation.input")
	}
	if body.ID == "" {
		return utils.ErrorResponse(c, "Missing application ID", fiber.StatusBadRequest, "careerpilot.validation.input")
	}

	status, err := models.ParseApplicationStatus(body.Status)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "careerpilot.validation.status")
	}

	app, err := services.UpdateApplicationStatus(h.DB, body.ID, ownerID(c), status)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			// Not-owned and non-existent are deliberately indistinguishable.
			return utils.ErrorResponse(c, "Failed to update", fiber.StatusForbidden, "careerpilot.authorization.owner")
		}
		return utils.ErrorResponse(c, "Internal Server Error", fiber.StatusInternalServerError, "updateApplicationStatus")
	}

	return c.Status(fiber.StatusOK).JSON(app)
}

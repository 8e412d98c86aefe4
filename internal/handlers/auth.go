package handlers

import (
	"errors"

	"github.com/careerpilot/careerpilot-api/internal/services"
	"github.com/careerpilot/careerpilot-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthHandler handles account registration. Login and session issuance stay
// with the external Authorizer service.
type AuthHandler struct {
	DB *gorm.DB
}

// Register handles POST /api/auth/register
// @Summary Register a new user
// @Description Create a user account with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "careerpilot.validation.input")
	}

	user, err := services.RegisterUser(h.DB, in)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			return utils.ErrorResponse(c, verr.Msg, fiber.StatusBadRequest, "careerpilot.validation.register")
		case errors.Is(err, services.ErrEmailTaken):
			return utils.ErrorResponse(c, "User already exists", fiber.StatusBadRequest, "careerpilot.validation.register")
		default:
			return utils.ErrorResponse(c, "Registration failed", fiber.StatusInternalServerError, "register")
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

package middleware

import (
	"github.com/careerpilot/careerpilot-api/internal/services"
	"github.com/careerpilot/careerpilot-api/internal/types"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// OwnerKey is the Locals key holding the resolved owner id.
const OwnerKey = "ownerID"

// sessionCookie is issued by the external Authorizer service.
const sessionCookie = "cookie_session"

// AuthUser requires a valid session. The resolved owner id is stored under
// OwnerKey; requests without one fail with 401.
func AuthUser(db *gorm.DB, resolver services.SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := services.ResolveOwner(db, resolver, c.Cookies(sessionCookie))
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Unauthorized",
				Type:    "careerpilot.authorization.user",
			}
		}
		c.Locals(OwnerKey, ownerID)
		return c.Next()
	}
}

// AuthOptional resolves the owner id when a valid session is present and
// treats the caller as anonymous otherwise. Used by the AI endpoints, which
// serve guests under the IP quota.
func AuthOptional(db *gorm.DB, resolver services.SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ownerID, err := services.ResolveOwner(db, resolver, c.Cookies(sessionCookie)); err == nil {
			c.Locals(OwnerKey, ownerID)
		}
		return c.Next()
	}
}

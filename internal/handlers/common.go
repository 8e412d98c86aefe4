package handlers

import (
	"strings"

	"github.com/careerpilot/careerpilot-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// ownerID returns the resolved owner id from the auth middleware, or "" for
// an anonymous caller.
func ownerID(c *fiber.Ctx) string {
	if id, ok := c.Locals(middleware.OwnerKey).(string); ok {
		return id
	}
	return ""
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// connection's remote address. Keys the guest quota.
func clientIP(c *fiber.Ctx) string {
	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i > 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	if ip := c.IP(); ip != "" {
		return ip
	}
	return "127.0.0.1"
}

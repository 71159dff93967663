package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const accountIDKey = "accountId"

// requireAuth checks for a valid session token and stores the authenticated
// account id in the request locals.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return jsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid Authorization header", nil)
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return jsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Authorization header format", nil)
	}
	tokenString := authHeader[len("Bearer "):]

	accountID, err := s.auth.ParseToken(tokenString)
	if err != nil {
		return jsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
	}

	c.Locals(accountIDKey, accountID)
	return c.Next()
}

// accountID returns the authenticated account id stored by requireAuth.
func accountID(c *fiber.Ctx) uint {
	id, _ := c.Locals(accountIDKey).(uint)
	return id
}

package server

import (
	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Confirmation string `json:"confirmation"`
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body", nil)
	}

	account, err := s.auth.Register(c.Context(), req.Username, req.Password, req.Confirmation)
	if err != nil {
		return s.respondError(c, err)
	}

	return jsonResponse(c, fiber.StatusCreated, true, "Account registered", fiber.Map{
		"id":       account.ID,
		"username": account.Username,
		"cash":     account.Cash,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body", nil)
	}

	account, err := s.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return s.respondError(c, err)
	}

	token, err := s.auth.GenerateToken(account)
	if err != nil {
		return s.respondError(c, err)
	}

	return jsonResponse(c, fiber.StatusOK, true, "Login successful", fiber.Map{
		"token":    token,
		"id":       account.ID,
		"username": account.Username,
	})
}

// handleLogout exists for parity with the browser surface. Session state
// lives in the token, so logging out is discarding it client-side.
func (s *Server) handleLogout(c *fiber.Ctx) error {
	return jsonResponse(c, fiber.StatusOK, true, "Logged out", nil)
}

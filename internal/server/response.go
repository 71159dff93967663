package server

import (
	"errors"

	"github.com/Spence115/MockStocks/internal/auth"
	"github.com/Spence115/MockStocks/internal/engine"
	"github.com/Spence115/MockStocks/internal/quote"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// jsonResponse writes the standard response envelope.
func jsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// respondError maps domain errors onto HTTP statuses. Validation and
// business-rule failures surface as 400-class responses with their message;
// anything unrecognized is an internal fault.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	var engineValidation *engine.ValidationError
	var authValidation *auth.ValidationError

	switch {
	case errors.As(err, &engineValidation),
		errors.As(err, &authValidation),
		errors.Is(err, quote.ErrUnknownTicker),
		errors.Is(err, engine.ErrInsufficientFunds),
		errors.Is(err, engine.ErrInsufficientShares),
		errors.Is(err, engine.ErrNoHolding),
		errors.Is(err, engine.ErrNoTransactions):
		return jsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)

	case errors.Is(err, auth.ErrUsernameTaken):
		return jsonResponse(c, fiber.StatusConflict, false, err.Error(), nil)

	case errors.Is(err, auth.ErrInvalidCredentials):
		return jsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)

	default:
		// Includes engine.ErrAccountNotFound: a missing authenticated account
		// row is an unexpected-state fault, not a user input error.
		s.logger.Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
		return jsonResponse(c, fiber.StatusInternalServerError, false, "internal server error", nil)
	}
}

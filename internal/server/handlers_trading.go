package server

import (
	"github.com/gofiber/fiber/v2"
)

type tradeRequest struct {
	Symbol string `json:"symbol"`
	Shares string `json:"shares"`
}

func (s *Server) handleBuy(c *fiber.Ctx) error {
	var req tradeRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body", nil)
	}

	txn, err := s.engine.Buy(c.Context(), accountID(c), req.Symbol, req.Shares)
	if err != nil {
		return s.respondError(c, err)
	}

	return jsonResponse(c, fiber.StatusOK, true, "Purchase complete", txn)
}

func (s *Server) handleSell(c *fiber.Ctx) error {
	var req tradeRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body", nil)
	}

	txn, err := s.engine.Sell(c.Context(), accountID(c), req.Symbol, req.Shares)
	if err != nil {
		return s.respondError(c, err)
	}

	return jsonResponse(c, fiber.StatusOK, true, "Sale complete", txn)
}

func (s *Server) handlePortfolio(c *fiber.Ctx) error {
	view, err := s.engine.Portfolio(c.Context(), accountID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return jsonResponse(c, fiber.StatusOK, true, "Portfolio fetched", view)
}

func (s *Server) handleHistory(c *fiber.Ctx) error {
	view, err := s.engine.History(c.Context(), accountID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return jsonResponse(c, fiber.StatusOK, true, "History fetched", view)
}

func (s *Server) handleQuote(c *fiber.Ctx) error {
	q, err := s.engine.Quote(c.Context(), c.Params("symbol"))
	if err != nil {
		return s.respondError(c, err)
	}
	return jsonResponse(c, fiber.StatusOK, true, "Quote fetched", fiber.Map{
		"name":   q.Name,
		"symbol": q.Symbol,
		"price":  q.Price,
	})
}

func (s *Server) handleSellableSymbols(c *fiber.Ctx) error {
	symbols, err := s.engine.SellableSymbols(c.Context(), accountID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return jsonResponse(c, fiber.StatusOK, true, "Symbols fetched", fiber.Map{
		"symbols": symbols,
	})
}

package server

import (
	"context"
	"fmt"

	"github.com/Spence115/MockStocks/internal/auth"
	"github.com/Spence115/MockStocks/internal/engine"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

// Server is the HTTP surface over the trading engine and auth service.
type Server struct {
	app    *fiber.App
	logger *zap.Logger
	engine *engine.Engine
	auth   *auth.Service
}

// New creates the HTTP server and registers all routes.
func New(logger *zap.Logger, eng *engine.Engine, authSvc *auth.Service) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST",
		AllowHeaders: "Content-Type,Authorization",
	}))

	s := &Server{
		app:    app,
		logger: logger.Named("http"),
		engine: eng,
		auth:   authSvc,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", s.handleRegister)
	authGroup.Post("/login", s.handleLogin)
	authGroup.Post("/logout", s.requireAuth, s.handleLogout)

	api.Get("/portfolio", s.requireAuth, s.handlePortfolio)
	api.Get("/history", s.requireAuth, s.handleHistory)
	api.Get("/quote/:symbol", s.requireAuth, s.handleQuote)
	api.Get("/sell/symbols", s.requireAuth, s.handleSellableSymbols)

	tradeGroup := api.Group("/trade")
	tradeGroup.Post("/buy", s.requireAuth, s.handleBuy)
	tradeGroup.Post("/sell", s.requireAuth, s.handleSell)
}

// Listen starts serving on the given port and blocks until shutdown.
func (s *Server) Listen(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server...")
	return s.app.ShutdownWithContext(ctx)
}

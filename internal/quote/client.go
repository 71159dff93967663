package quote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Spence115/MockStocks/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrUnknownTicker is returned when the market-data source does not know the
// requested symbol, or the lookup could not be completed at all.
var ErrUnknownTicker = errors.New("unknown ticker symbol")

// Quote is the market data for one symbol at the time of the lookup.
// Prices carry no staleness guarantee and may differ between calls.
type Quote struct {
	Name   string
	Symbol string
	Price  decimal.Decimal
}

// Provider defines the interface for a market-data source.
type Provider interface {
	Lookup(ctx context.Context, symbol string) (*Quote, error)
}

// Client is a client for an IEX-style market-data HTTP API.
// It implements the Provider interface.
type Client struct {
	client  *resty.Client
	apiKey  string
	logger  *zap.Logger
	limiter *rate.Limiter
}

// ensure Client implements the interface
var _ Provider = (*Client)(nil)

// NewClient creates a new market-data API client.
func NewClient(cfg *config.Quote, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)

	// rate.Limit is requests per second.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &Client{
		client:  client,
		apiKey:  cfg.ApiKey,
		logger:  logger,
		limiter: limiter,
	}
}

// quoteResponse mirrors the upstream quote payload.
type quoteResponse struct {
	CompanyName string          `json:"companyName"`
	Symbol      string          `json:"symbol"`
	LatestPrice decimal.Decimal `json:"latestPrice"`
}

// Lookup fetches the current quote for a symbol. Unknown symbols, upstream
// failures and timeouts all surface as ErrUnknownTicker: the trading engine
// never retries a price lookup.
func (c *Client) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	var result quoteResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParam("token", c.apiKey).
		SetResult(&result).
		Get("/stock/{symbol}/quote")

	if err != nil {
		c.logger.Warn("Quote lookup failed", zap.String("symbol", symbol), zap.Error(err))
		return nil, fmt.Errorf("%w: %s", ErrUnknownTicker, symbol)
	}

	if resp.IsError() {
		if resp.StatusCode() != http.StatusNotFound {
			c.logger.Warn("Quote lookup returned error status",
				zap.String("symbol", symbol),
				zap.Int("status", resp.StatusCode()),
			)
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownTicker, symbol)
	}

	if result.Symbol == "" || !result.LatestPrice.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTicker, symbol)
	}

	return &Quote{
		Name:   result.CompanyName,
		Symbol: result.Symbol,
		Price:  result.LatestPrice,
	}, nil
}

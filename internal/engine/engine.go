package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Spence115/MockStocks/internal/models"
	"github.com/Spence115/MockStocks/internal/quote"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Engine applies buy and sell requests to the ledger atomically and serves
// the portfolio and history read paths. Prices are fetched fresh from the
// quote provider on every operation; nothing is cached across requests.
type Engine struct {
	logger *zap.Logger
	db     *gorm.DB
	quotes quote.Provider
}

// NewEngine creates a new trading engine.
func NewEngine(logger *zap.Logger, db *gorm.DB, quotes quote.Provider) *Engine {
	return &Engine{
		logger: logger,
		db:     db,
		quotes: quotes,
	}
}

// Buy purchases shares of a symbol for an account. Shares must parse to a
// positive whole number; fractional purchases are rejected. The funds check,
// ledger append, holding upsert and cash decrement all commit as one
// transaction or not at all.
func (e *Engine) Buy(ctx context.Context, accountID uint, symbol, shares string) (*models.Transaction, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, validationError("must provide ticker symbol")
	}
	if strings.TrimSpace(shares) == "" {
		return nil, validationError("must provide number of shares to purchase")
	}

	qty, err := decimal.NewFromString(strings.TrimSpace(shares))
	if err != nil {
		return nil, validationError("shares must be numeric")
	}
	if qty.LessThan(decimal.New(1, 0)) {
		return nil, validationError("purchased shares must be greater than zero")
	}
	if !qty.IsInteger() {
		return nil, validationError("cannot buy fractional shares")
	}

	q, err := e.quotes.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}
	cost := q.Price.Mul(qty)

	txn := models.Transaction{
		AccountID: accountID,
		Reference: uuid.NewString(),
		OrderType: models.OrderTypeBuy,
		Symbol:    q.Symbol,
		Shares:    qty,
		Price:     q.Price,
		Timestamp: time.Now(),
	}

	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.First(&account, accountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return err
		}

		if account.Cash.LessThan(cost) {
			return ErrInsufficientFunds
		}

		if err := tx.Create(&txn).Error; err != nil {
			return err
		}

		var holding models.Holding
		err := tx.Where("account_id = ? AND symbol = ?", accountID, q.Symbol).First(&holding).Error
		switch {
		case err == nil:
			holding.TotalShares = holding.TotalShares.Add(qty)
			if err := tx.Save(&holding).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			holding = models.Holding{
				AccountID:   accountID,
				Symbol:      q.Symbol,
				CompanyName: q.Name,
				TotalShares: qty,
			}
			if err := tx.Create(&holding).Error; err != nil {
				return err
			}
		default:
			return err
		}

		account.Cash = account.Cash.Sub(cost)
		return tx.Save(&account).Error
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("Buy order executed",
		zap.Uint("account_id", accountID),
		zap.String("symbol", q.Symbol),
		zap.String("shares", qty.String()),
		zap.String("price", q.Price.String()),
		zap.String("reference", txn.Reference),
	)
	return &txn, nil
}

// Sell disposes of shares of a symbol for an account. Fractional share counts
// are accepted on this path. The holding whose shares reach zero is kept as a
// zero row rather than deleted. The holding decrement, cash increment and
// ledger append commit as one transaction or not at all.
func (e *Engine) Sell(ctx context.Context, accountID uint, symbol, shares string) (*models.Transaction, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, validationError("must provide ticker symbol")
	}
	if strings.TrimSpace(shares) == "" {
		return nil, validationError("must provide number of shares to sell")
	}

	qty, err := decimal.NewFromString(strings.TrimSpace(shares))
	if err != nil {
		return nil, validationError("shares must be numeric")
	}
	if qty.LessThan(decimal.New(1, 0)) {
		return nil, validationError("sold shares must be greater than zero")
	}

	q, err := e.quotes.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}
	proceeds := q.Price.Mul(qty)

	txn := models.Transaction{
		AccountID: accountID,
		Reference: uuid.NewString(),
		OrderType: models.OrderTypeSell,
		Symbol:    q.Symbol,
		Shares:    qty,
		Price:     q.Price,
		Timestamp: time.Now(),
	}

	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var holding models.Holding
		if err := tx.Where("account_id = ? AND symbol = ?", accountID, q.Symbol).First(&holding).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoHolding
			}
			return err
		}

		if qty.GreaterThan(holding.TotalShares) {
			return ErrInsufficientShares
		}

		holding.TotalShares = holding.TotalShares.Sub(qty)
		if err := tx.Save(&holding).Error; err != nil {
			return err
		}

		var account models.Account
		if err := tx.First(&account, accountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return err
		}
		account.Cash = account.Cash.Add(proceeds)
		if err := tx.Save(&account).Error; err != nil {
			return err
		}

		return tx.Create(&txn).Error
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("Sell order executed",
		zap.Uint("account_id", accountID),
		zap.String("symbol", q.Symbol),
		zap.String("shares", qty.String()),
		zap.String("price", q.Price.String()),
		zap.String("reference", txn.Reference),
	)
	return &txn, nil
}

// HoldingView is one portfolio line priced at the current quote.
type HoldingView struct {
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"company_name"`
	Shares      decimal.Decimal `json:"shares"`
	Price       decimal.Decimal `json:"price"`
	Value       decimal.Decimal `json:"value"`
}

// PortfolioView summarizes an account: every holding priced at the current
// quote plus the cash balance and derived totals.
type PortfolioView struct {
	Username     string          `json:"username"`
	Cash         decimal.Decimal `json:"cash"`
	Holdings     []HoldingView   `json:"holdings"`
	StockValue   decimal.Decimal `json:"stock_value"`
	AccountValue decimal.Decimal `json:"account_value"`
}

// Portfolio lists the account's holdings ordered by symbol, each valued at a
// freshly fetched price, and computes total account value = cash + stock value.
func (e *Engine) Portfolio(ctx context.Context, accountID uint) (*PortfolioView, error) {
	var account models.Account
	if err := e.db.WithContext(ctx).First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	var holdings []models.Holding
	if err := e.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("symbol ASC").
		Find(&holdings).Error; err != nil {
		return nil, err
	}

	view := &PortfolioView{
		Username:   account.Username,
		Cash:       account.Cash,
		Holdings:   make([]HoldingView, 0, len(holdings)),
		StockValue: decimal.Zero,
	}

	for _, h := range holdings {
		q, err := e.quotes.Lookup(ctx, h.Symbol)
		if err != nil {
			return nil, err
		}
		value := h.TotalShares.Mul(q.Price)
		view.Holdings = append(view.Holdings, HoldingView{
			Symbol:      h.Symbol,
			CompanyName: h.CompanyName,
			Shares:      h.TotalShares,
			Price:       q.Price,
			Value:       value,
		})
		view.StockValue = view.StockValue.Add(value)
	}

	view.AccountValue = view.Cash.Add(view.StockValue)
	return view, nil
}

// TransactionView is one history line with its notional value.
type TransactionView struct {
	Reference string          `json:"reference"`
	OrderType string          `json:"order_type"`
	Symbol    string          `json:"symbol"`
	Shares    decimal.Decimal `json:"shares"`
	Price     decimal.Decimal `json:"price"`
	Notional  decimal.Decimal `json:"notional"`
	Timestamp time.Time       `json:"timestamp"`
}

// HistoryView is the full transaction history of an account, newest first.
type HistoryView struct {
	Username     string            `json:"username"`
	Transactions []TransactionView `json:"transactions"`
}

// History lists the account's transactions ordered by timestamp descending.
// An empty history is a user-facing error, not a silent empty list.
func (e *Engine) History(ctx context.Context, accountID uint) (*HistoryView, error) {
	var account models.Account
	if err := e.db.WithContext(ctx).First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	var records []models.Transaction
	if err := e.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("timestamp DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrNoTransactions
	}

	view := &HistoryView{
		Username:     account.Username,
		Transactions: make([]TransactionView, 0, len(records)),
	}
	for _, r := range records {
		view.Transactions = append(view.Transactions, TransactionView{
			Reference: r.Reference,
			OrderType: r.OrderType,
			Symbol:    r.Symbol,
			Shares:    r.Shares,
			Price:     r.Price,
			Notional:  r.Shares.Mul(r.Price),
			Timestamp: r.Timestamp,
		})
	}
	return view, nil
}

// Quote looks up the current quote for a symbol. The result is request-scoped;
// nothing is stashed between requests.
func (e *Engine) Quote(ctx context.Context, symbol string) (*quote.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, validationError("must provide ticker symbol for quote")
	}
	return e.quotes.Lookup(ctx, symbol)
}

// SellableSymbols lists the symbols the account holds, for the sell form.
// An account with no holdings at all is a user-facing error.
func (e *Engine) SellableSymbols(ctx context.Context, accountID uint) ([]string, error) {
	var symbols []string
	if err := e.db.WithContext(ctx).
		Model(&models.Holding{}).
		Where("account_id = ?", accountID).
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return nil, ErrNoHolding
	}
	return symbols, nil
}

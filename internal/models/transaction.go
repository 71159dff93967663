package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order types recorded in the transaction ledger.
const (
	OrderTypeBuy  = "buy"
	OrderTypeSell = "sell"
)

// Transaction is one append-only ledger entry for a buy or sell.
// Rows are immutable once written.
type Transaction struct {
	gorm.Model
	AccountID uint            `gorm:"index;not null" json:"account_id"`
	Reference string          `gorm:"uniqueIndex;not null" json:"reference"`
	OrderType string          `gorm:"not null" json:"order_type"` // "buy" or "sell"
	Symbol    string          `gorm:"not null" json:"symbol"`
	Shares    decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"shares"`
	Price     decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"price"`
	Timestamp time.Time       `gorm:"index;not null" json:"timestamp"`
}

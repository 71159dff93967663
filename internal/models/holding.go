package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Holding represents an account's current position in one symbol.
// A row is created on the first buy of a symbol and kept afterwards,
// even when total shares reach zero.
type Holding struct {
	gorm.Model
	AccountID   uint            `gorm:"uniqueIndex:idx_account_symbol;not null" json:"account_id"`
	Symbol      string          `gorm:"uniqueIndex:idx_account_symbol;not null" json:"symbol"`
	CompanyName string          `gorm:"not null" json:"company_name"`
	TotalShares decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"total_shares"`
}

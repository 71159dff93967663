package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account represents a registered user and their simulated cash balance.
// Cash is only ever mutated by buy and sell operations.
type Account struct {
	gorm.Model
	Username     string          `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string          `gorm:"not null" json:"-"`
	Cash         decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"cash"`
}

package models

import (
	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetOverride is a month-specific budget for a user. When present it
// takes precedence over User.MonthlyBudget, including an explicit zero,
// which means "this month's budget is zero" rather than "unset".
type BudgetOverride struct {
	Timestamps
	User   User        `json:"-"`
	UserID uuid.UUID   `gorm:"primaryKey"`
	Month  types.Month `gorm:"primaryKey"`
	Amount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (o *BudgetOverride) BeforeCreate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(*BudgetOverride)
	return tx.First(&User{}, toSave.UserID).Error
}

func (o *BudgetOverride) AfterSave(_ *gorm.DB) error {
	if o.Amount.IsNegative() {
		return ErrAmountNegative
	}

	return nil
}

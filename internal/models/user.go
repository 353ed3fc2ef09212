package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User represents a person tracking expenses.
//
// MonthlyBudget is the standing budget default. A zero value means "no
// budget set"; month-specific values live in BudgetOverride and take
// precedence.
type User struct {
	DefaultModel
	Name          string
	Note          string
	MonthlyBudget decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

// BeforeSave trims whitespace from all strings
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Note = strings.TrimSpace(u.Note)

	return nil
}

func (u *User) AfterSave(_ *gorm.DB) error {
	if u.MonthlyBudget.IsNegative() {
		return ErrAmountNegative
	}

	return nil
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is a row in the transaction ledger, the source of truth for all
// spending totals.
//
// GroupID tags an expense as belonging to a group; nil means personal.
// RuleID is set when the expense was materialized from a recurrence rule;
// the unique index over (RuleID, Date) guarantees at most one expense per
// rule and cycle date.
type Expense struct {
	DefaultModel
	User        User      `json:"-"`
	UserID      uuid.UUID `json:"userId"`
	Group       *Group     `json:"-"`
	GroupID     *uuid.UUID `json:"groupId"`
	Category    *Category  `json:"-"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	Description string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date        time.Time       `gorm:"uniqueIndex:expense_rule_cycle,priority:2"`
	Rule        *RecurrenceRule `json:"-"`
	RuleID      *uuid.UUID      `json:"ruleId" gorm:"uniqueIndex:expense_rule_cycle,priority:1"`
}

// BeforeSave normalizes the expense date to date-only granularity.
func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Description = strings.TrimSpace(e.Description)

	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	}
	e.Date = toDate(e.Date)

	return nil
}

func (e *Expense) AfterSave(_ *gorm.DB) error {
	if e.Amount.IsNegative() {
		return ErrAmountNegative
	}

	return nil
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Expense)
	return e.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies references to other resources
func (e *Expense) checkIntegrity(tx *gorm.DB, toSave Expense) error {
	err := tx.First(&User{}, toSave.UserID).Error
	if err != nil {
		return err
	}

	if toSave.GroupID != nil {
		err = tx.First(&Group{}, *toSave.GroupID).Error
		if err != nil {
			return err
		}
	}

	if toSave.CategoryID != nil {
		return tx.First(&Category{}, *toSave.CategoryID).Error
	}

	return nil
}

// AfterFind updates the date to use UTC as timezone, not +0000.
func (e *Expense) AfterFind(_ *gorm.DB) (err error) {
	e.Date = e.Date.In(time.UTC)
	return nil
}

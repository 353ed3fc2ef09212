package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Frequency is the cadence of a recurrence rule.
type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Valid reports whether the frequency is one the engine understands.
func (f Frequency) Valid() bool {
	return f == FrequencyMonthly || f == FrequencyYearly
}

// RecurrenceRule is a standing instruction to generate a periodic expense.
//
// NextDue is the date of the next cycle to materialize. It is only moved
// forward, either by a user edit or by the materialization engine advancing
// it one period per created expense.
//
// AnchorDay is the day of month the rule targets. Advancing a monthly rule
// clamps to the last valid day of the target month but snaps back up to the
// anchor when the month allows it, so a rule due on the 31st does not drift
// to the 29th forever after passing February.
type RecurrenceRule struct {
	DefaultModel
	User        User      `json:"-"`
	UserID      uuid.UUID `json:"userId"`
	Description string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Category    *Category       `json:"-"`
	CategoryID  *uuid.UUID      `json:"categoryId"`
	Frequency   Frequency
	NextDue     time.Time `json:"nextDue"`
	AnchorDay   int       `json:"anchorDay"`
}

// BeforeSave validates and normalizes the rule.
func (r *RecurrenceRule) BeforeSave(_ *gorm.DB) error {
	r.Description = strings.TrimSpace(r.Description)

	if !r.Frequency.Valid() {
		return ErrFrequencyInvalid
	}

	r.NextDue = toDate(r.NextDue)

	if r.AnchorDay == 0 {
		r.AnchorDay = r.NextDue.Day()
	}

	return nil
}

func (r *RecurrenceRule) AfterSave(_ *gorm.DB) error {
	if r.Amount.IsNegative() {
		return ErrAmountNegative
	}

	return nil
}

func (r *RecurrenceRule) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*RecurrenceRule)
	return r.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies references to other resources
func (r *RecurrenceRule) checkIntegrity(tx *gorm.DB, toSave RecurrenceRule) error {
	err := tx.First(&User{}, toSave.UserID).Error
	if err != nil {
		return err
	}

	if toSave.CategoryID != nil {
		return tx.First(&Category{}, *toSave.CategoryID).Error
	}

	return nil
}

// AfterFind updates the due date to use UTC as timezone, not +0000.
func (r *RecurrenceRule) AfterFind(_ *gorm.DB) (err error) {
	r.NextDue = r.NextDue.In(time.UTC)
	return nil
}

// Package budget resolves effective budget amounts for users and groups.
//
// The precedence chains the original data model implies are encoded here in
// one place: month override before user default, explicit group budget
// before the sum of member budgets.
package budget

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/models"
	"github.com/hearthledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrMonthOutOfRange = errors.New("the month must be between 0001-01 and 9999-12")

// Resolver answers budget queries against the data store.
type Resolver struct {
	db *gorm.DB
}

// NewResolver returns a Resolver using the given database handle.
func NewResolver(db *gorm.DB) Resolver {
	return Resolver{db: db}
}

// ForUser returns the effective budget for a user in the given month.
//
// A BudgetOverride for the exact month wins, including an explicit zero.
// Otherwise the user's standing monthly default applies; a user without a
// default has a budget of zero, which means "no budget set".
func (r Resolver) ForUser(userID uuid.UUID, month types.Month) (decimal.Decimal, error) {
	if err := validMonth(month); err != nil {
		return decimal.Zero, err
	}

	var override models.BudgetOverride
	err := r.db.Where("user_id = ? AND month = ?", userID, month).First(&override).Error
	if err == nil {
		return override.Amount, nil
	}
	if !errors.Is(err, models.ErrResourceNotFound) {
		return decimal.Zero, fmt.Errorf("reading budget override failed: %w", err)
	}

	var user models.User
	err = r.db.First(&user, userID).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("reading user failed: %w", err)
	}

	return user.MonthlyBudget, nil
}

// ForGroup returns the effective budget for a group in the given month.
//
// An explicit group budget greater than zero wins. Otherwise the member
// budgets (override-or-default, per ForUser) are summed over the current
// roster; members joining or leaving change future queries only.
func (r Resolver) ForGroup(groupID uuid.UUID, month types.Month) (decimal.Decimal, error) {
	if err := validMonth(month); err != nil {
		return decimal.Zero, err
	}

	var group models.Group
	err := r.db.First(&group, groupID).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("reading group failed: %w", err)
	}

	if group.Budget.IsPositive() {
		return group.Budget, nil
	}

	members, err := group.Members(r.db)
	if err != nil {
		return decimal.Zero, fmt.Errorf("reading group members failed: %w", err)
	}

	sum := decimal.Zero
	for _, member := range members {
		amount, err := r.ForUser(member.ID, month)
		if err != nil {
			return decimal.Zero, err
		}

		sum = sum.Add(amount)
	}

	return sum, nil
}

// PercentSpent returns total/budget expressed 0-100.
//
// A budget of zero or less means unbounded tracking: the percentage is zero,
// never a division error.
func PercentSpent(total, budget decimal.Decimal) decimal.Decimal {
	if !budget.IsPositive() {
		return decimal.Zero
	}

	return total.Div(budget).Mul(decimal.NewFromInt(100))
}

func validMonth(month types.Month) error {
	if month.IsZero() || month.Year() < 1 || month.Year() > 9999 {
		return ErrMonthOutOfRange
	}

	return nil
}

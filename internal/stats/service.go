package stats

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/budget"
	"github.com/hearthledger/backend/internal/models"
	"github.com/hearthledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidWindow = errors.New("trailing windows must cover at least one period")
	ErrNotAMember    = errors.New("the user is not a member of this group")
)

// Service answers aggregation queries over the expense ledger.
type Service struct {
	db       *gorm.DB
	resolver budget.Resolver
	policy   GroupScopePolicy
}

// New returns a Service. The group scope policy is an explicit choice made
// once, at construction.
func New(db *gorm.DB, resolver budget.Resolver, policy GroupScopePolicy) *Service {
	return &Service{
		db:       db,
		resolver: resolver,
		policy:   policy,
	}
}

// Summary is the budget status of a scope for one month.
//
// Remaining may be negative, overspend is representable. PercentSpent is
// expressed 0-100 and is zero whenever the budget is zero or less.
type Summary struct {
	Total        decimal.Decimal `json:"total"`
	Budget       decimal.Decimal `json:"budget"`
	Remaining    decimal.Decimal `json:"remaining"`
	PercentSpent decimal.Decimal `json:"percentSpent"`
}

func newSummary(total, budgetAmount decimal.Decimal) Summary {
	return Summary{
		Total:        total,
		Budget:       budgetAmount,
		Remaining:    budgetAmount.Sub(total),
		PercentSpent: budget.PercentSpent(total, budgetAmount),
	}
}

// MonthTotal returns the sum of all expenses in the scope for the month.
func (s *Service) MonthTotal(scope Scope, month types.Month) (decimal.Decimal, error) {
	if err := validMonth(month); err != nil {
		return decimal.Zero, err
	}

	var sum decimal.NullDecimal

	q := scope.apply(s.db.Model(&models.Expense{}), s.policy)
	err := q.
		Where("expenses.date >= ? AND expenses.date < ?", month.First(), month.Next()).
		Select("SUM(expenses.amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing expenses failed: %w", err)
	}

	return sum.Decimal, nil
}

// UserSummary returns the budget status for a user's own spending.
func (s *Service) UserSummary(userID uuid.UUID, month types.Month) (Summary, error) {
	total, err := s.MonthTotal(UserScope(userID), month)
	if err != nil {
		return Summary{}, err
	}

	amount, err := s.resolver.ForUser(userID, month)
	if err != nil {
		return Summary{}, err
	}

	return newSummary(total, amount), nil
}

// GroupSummary returns the budget status for a group.
func (s *Service) GroupSummary(groupID uuid.UUID, month types.Month) (Summary, error) {
	total, err := s.MonthTotal(GroupScope(groupID), month)
	if err != nil {
		return Summary{}, err
	}

	amount, err := s.resolver.ForGroup(groupID, month)
	if err != nil {
		return Summary{}, err
	}

	return newSummary(total, amount), nil
}

// RequireMember rejects group queries for users outside the group. The
// session layer is expected to have checked this already, but group data
// must never be returned for an unchecked scope.
func (s *Service) RequireMember(groupID, userID uuid.UUID) error {
	var group models.Group
	err := s.db.First(&group, groupID).Error
	if err != nil {
		return fmt.Errorf("reading group failed: %w", err)
	}

	isMember, err := group.IsMember(s.db, userID)
	if err != nil {
		return fmt.Errorf("reading membership failed: %w", err)
	}

	if !isMember {
		return ErrNotAMember
	}

	return nil
}

// RequireGroup verifies that the group exists.
func (s *Service) RequireGroup(groupID uuid.UUID) error {
	var group models.Group
	err := s.db.First(&group, groupID).Error
	if err != nil {
		return fmt.Errorf("reading group failed: %w", err)
	}

	return nil
}

func validMonth(month types.Month) error {
	if month.IsZero() {
		return budget.ErrMonthOutOfRange
	}

	return nil
}

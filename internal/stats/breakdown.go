package stats

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/models"
	"github.com/hearthledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// CategoryAmount is one category's total in a breakdown.
type CategoryAmount struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// MemberSummary is one group member's budget status for a month.
type MemberSummary struct {
	UserID  uuid.UUID `json:"userId"`
	Name    string    `json:"name"`
	Summary
}

// CategoryBreakdown returns the scope's expenses for a month summed per
// category, largest first, ties broken by label. Expenses without a
// category are reported under the Uncategorized label.
//
// A non-nil memberID restricts a group scope to a single member's entries,
// like the per-member chart of the statistics page.
func (s *Service) CategoryBreakdown(scope Scope, month types.Month, memberID *uuid.UUID) ([]CategoryAmount, error) {
	if err := validMonth(month); err != nil {
		return nil, err
	}

	var rows []CategoryAmount

	q := scope.apply(s.db.Model(&models.Expense{}), s.policy)
	if memberID != nil {
		q = q.Where("expenses.user_id = ?", *memberID)
	}

	err := q.
		Select("COALESCE(categories.name, ?) AS label, SUM(expenses.amount) AS amount", models.UncategorizedLabel).
		Joins("LEFT JOIN categories ON categories.id = expenses.category_id").
		Where("expenses.date >= ? AND expenses.date < ?", month.First(), month.Next()).
		Group("label").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("summing expenses per category failed: %w", err)
	}

	slices.SortFunc(rows, func(a, b CategoryAmount) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		if a.Label < b.Label {
			return -1
		}
		if a.Label > b.Label {
			return 1
		}
		return 0
	})

	return rows, nil
}

// PerMemberBreakdown returns each current member's budget status for the
// month. A member's total covers their entries tagged with the group and
// their untagged personal entries, mirroring the member table of the
// statistics page.
func (s *Service) PerMemberBreakdown(groupID uuid.UUID, month types.Month) ([]MemberSummary, error) {
	if err := validMonth(month); err != nil {
		return nil, err
	}

	var group models.Group
	err := s.db.First(&group, groupID).Error
	if err != nil {
		return nil, fmt.Errorf("reading group failed: %w", err)
	}

	members, err := group.Members(s.db)
	if err != nil {
		return nil, fmt.Errorf("reading group members failed: %w", err)
	}

	type userAmount struct {
		UserID uuid.UUID
		Amount decimal.Decimal
	}

	var rows []userAmount
	err = s.db.Model(&models.Expense{}).
		Select("expenses.user_id AS user_id, SUM(expenses.amount) AS amount").
		Where("expenses.group_id = ? OR expenses.group_id IS NULL", groupID).
		Where("expenses.date >= ? AND expenses.date < ?", month.First(), month.Next()).
		Group("expenses.user_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("summing expenses per member failed: %w", err)
	}

	totals := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.UserID] = row.Amount
	}

	breakdown := make([]MemberSummary, 0, len(members))
	for _, member := range members {
		amount, err := s.resolver.ForUser(member.ID, month)
		if err != nil {
			return nil, err
		}

		breakdown = append(breakdown, MemberSummary{
			UserID:  member.ID,
			Name:    member.Name,
			Summary: newSummary(totals[member.ID], amount),
		})
	}

	return breakdown, nil
}

package stats

import (
	"fmt"
	"time"

	"github.com/hearthledger/backend/internal/models"
	"github.com/hearthledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Defaults for the trailing windows, matching the statistics pages this
// system replaces.
const (
	DefaultTrailingMonths = 12
	DefaultTrailingDays   = 7
)

// MonthAmount is one month of a trailing window. Months without expenses
// are present with a zero amount, never absent.
type MonthAmount struct {
	Month  types.Month     `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// DayAmount is one day of a trailing window.
type DayAmount struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type periodAmount struct {
	Period string
	Amount decimal.Decimal
}

// TrailingMonths returns the totals for the n consecutive calendar months
// ending with the month of asOf, oldest first.
func (s *Service) TrailingMonths(scope Scope, n int, asOf time.Time) ([]MonthAmount, error) {
	if n < 1 {
		return nil, ErrInvalidWindow
	}

	last := types.MonthOf(asOf)
	first := last.AddDate(0, -(n - 1))

	var rows []periodAmount
	q := scope.apply(s.db.Model(&models.Expense{}), s.policy)
	err := q.
		Select("strftime('%Y-%m', expenses.date) AS period, SUM(expenses.amount) AS amount").
		Where("expenses.date >= ? AND expenses.date < ?", first.First(), last.Next()).
		Group("period").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("summing expenses per month failed: %w", err)
	}

	totals := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.Period] = row.Amount
	}

	window := make([]MonthAmount, 0, n)
	for month := first; !month.After(last); month = month.AddDate(0, 1) {
		window = append(window, MonthAmount{
			Month:  month,
			Amount: totals[month.String()],
		})
	}

	return window, nil
}

// TrailingDays returns the totals for the n consecutive days ending with
// the date of asOf, oldest first.
func (s *Service) TrailingDays(scope Scope, n int, asOf time.Time) ([]DayAmount, error) {
	if n < 1 {
		return nil, ErrInvalidWindow
	}

	year, month, day := asOf.In(time.UTC).Date()
	last := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	first := last.AddDate(0, 0, -(n - 1))

	var rows []periodAmount
	q := scope.apply(s.db.Model(&models.Expense{}), s.policy)
	err := q.
		Select("strftime('%Y-%m-%d', expenses.date) AS period, SUM(expenses.amount) AS amount").
		Where("expenses.date >= ? AND expenses.date < ?", first, last.AddDate(0, 0, 1)).
		Group("period").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("summing expenses per day failed: %w", err)
	}

	totals := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.Period] = row.Amount
	}

	window := make([]DayAmount, 0, n)
	for date := first; !date.After(last); date = date.AddDate(0, 0, 1) {
		window = append(window, DayAmount{
			Date:   date,
			Amount: totals[date.Format("2006-01-02")],
		})
	}

	return window, nil
}

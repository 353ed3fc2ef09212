// Package recurrence implements the materialization engine that turns
// recurrence rules into ledger expenses, once per elapsed cycle.
package recurrence

import (
	"time"

	"github.com/hearthledger/backend/internal/models"
	"github.com/hearthledger/backend/internal/types"
)

// NextDate returns the cycle date following current for the given frequency.
//
// Monthly rules advance one calendar month, yearly rules one calendar year.
// The day of month is the rule's anchor day, clamped to the last valid day
// of the target month: a rule anchored on the 31st is due Feb 29 in a leap
// year and back on Mar 31 the month after. The clamp never sticks.
func NextDate(current time.Time, frequency models.Frequency, anchorDay int) time.Time {
	if anchorDay <= 0 {
		anchorDay = current.Day()
	}

	var month types.Month
	if frequency == models.FrequencyYearly {
		month = types.NewMonth(current.Year()+1, current.Month())
	} else {
		month = types.MonthOf(current).AddDate(0, 1)
	}

	return dateIn(month, anchorDay)
}

// dateIn returns the given day in the month, clamped to the month's last day.
func dateIn(month types.Month, day int) time.Time {
	if last := month.Days(); day > last {
		day = last
	}

	return month.First().AddDate(0, 0, day-1)
}

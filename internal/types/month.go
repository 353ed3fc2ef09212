// Package types implements special types for Hearthledger.
package types

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"
)

// Month is a month in a specific year.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a time occurs.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return NewMonth(year, month)
}

// ParseMonth parses a "YYYY-MM" string and returns the Month value it represents.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, err
	}

	return MonthOf(t), nil
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// MarshalJSON implements the json.Marshaler interface.
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", m.String())), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The month is expected as a "YYYY-MM" string.
func (m *Month) UnmarshalJSON(data []byte) error {
	value := string(data)
	if value == `""` || value == "null" {
		return nil
	}

	t, err := time.Parse(`"2006-01"`, value)
	if err != nil {
		return err
	}

	*m = MonthOf(t)
	return nil
}

// Scan reads the value from the database.
func (m *Month) Scan(value interface{}) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*m = MonthOf(nullTime.Time)
	return err
}

// Value returns the value for the SQL driver to write to the database.
func (m Month) Value() (driver.Value, error) {
	return m.First(), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Month) GormDataType() string {
	return "date"
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// Year returns the year of the month.
func (m Month) Year() int {
	return time.Time(m).Year()
}

// Month returns the calendar month.
func (m Month) Month() time.Month {
	return time.Time(m).Month()
}

// First returns the first instant of the month in UTC.
func (m Month) First() time.Time {
	return time.Date(m.Year(), m.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Next returns the instant the following month begins. Together with First
// it bounds the half-open interval [First, Next) that queries filter on.
func (m Month) Next() time.Time {
	return m.First().AddDate(0, 1, 0)
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return MonthOf(m.First().AddDate(years, months, 0))
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return m.Next().AddDate(0, 0, -1).Day()
}

// Before reports whether the month instant m is before n.
func (m Month) Before(n Month) bool {
	return m.First().Before(n.First())
}

// After reports whether the month instant m is after n.
func (m Month) After(n Month) bool {
	return m.First().After(n.First())
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return m.First().Equal(n.First())
}

// Contains reports whether the time instant is in the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year() && t.Month() == m.Month()
}

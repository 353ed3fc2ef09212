package recurrence

import "time"

// Clock supplies "today" with date-only granularity. It is injected into the
// engine so tests can pin the date.
type Clock interface {
	Today() time.Time
}

// SystemClock returns the current date in UTC.
type SystemClock struct{}

func (SystemClock) Today() time.Time {
	year, month, day := time.Now().In(time.UTC).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

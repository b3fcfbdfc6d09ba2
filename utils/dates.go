// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// Tomorrow returns midnight of the calendar day following now, evaluated
// in the salon's timezone. The timezone decides which appointments belong
// to "tomorrow" around day boundaries, so it must be the business one,
// never the server's.
func Tomorrow(now time.Time, loc *time.Location) time.Time {
	return BeginningOfDay(now.In(loc)).AddDate(0, 0, 1)
}

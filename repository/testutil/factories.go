package testutil

import (
	"time"
)

// DayThisWeek returns midnight UTC of the day at the given Monday-based
// offset within the current week: 0 is Monday, 4 is Friday, 6 is Sunday.
// Offsets outside 0..6 land in neighboring weeks.
func DayThisWeek(offset int) time.Time {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekdayIndex := (int(today.Weekday()) + 6) % 7
	monday := today.AddDate(0, 0, -weekdayIndex)
	return monday.AddDate(0, 0, offset)
}

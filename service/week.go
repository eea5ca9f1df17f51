package service

import (
	"time"

	"paymaster/models"
)

// DayFormat is the wire format for calendar days in the settings store.
const DayFormat = "2006-01-02"

// WeekRange returns the Monday and Friday of the week containing today,
// normalized to midnight UTC. The range is inclusive on both ends and is
// used for both weekly queries and the post-payout clear. Saturday and
// Sunday fall outside every window; contributions recorded then stay in
// storage and never enter a payout.
func WeekRange(today time.Time) (monday, friday time.Time) {
	day := models.DateOnly(today)

	// Go counts Sunday as 0; payroll weeks start on Monday.
	weekdayIndex := (int(day.Weekday()) + 6) % 7

	monday = day.AddDate(0, 0, -weekdayIndex)
	friday = monday.AddDate(0, 0, 4)
	return monday, friday
}

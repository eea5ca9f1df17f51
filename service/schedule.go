package service

import (
	"time"
)

// ShouldRunPayout decides whether an automatic payout is due. It is true
// exactly when today is the configured payout weekday and no payout has
// been stamped for today yet, which makes the hourly scheduler tick
// idempotent: at most one automatic payout per calendar day, and a manual
// payout earlier the same day suppresses the automatic one.
func ShouldRunPayout(now time.Time, lastPayoutDate *string, payoutDay time.Weekday) bool {
	now = now.UTC()
	if now.Weekday() != payoutDay {
		return false
	}

	today := now.Format(DayFormat)
	if lastPayoutDate != nil && *lastPayoutDate == today {
		return false
	}

	return true
}

package models

import (
	"time"
)

// PayoutTrigger distinguishes scheduled payouts from admin-invoked ones.
type PayoutTrigger string

const (
	PayoutTriggerAutomatic PayoutTrigger = "automatic"
	PayoutTriggerManual    PayoutTrigger = "manual"
)

// PayoutEntry is one user's line in a weekly payout: their receipt total,
// the role they were paid at, and the resulting salary.
type PayoutEntry struct {
	UserID int64
	Total  float64
	Role   Role
	Salary float64
}

// PayoutReport is the result of a weekly payout run. Entries are sorted by
// weekly total descending; tie order is not specified.
type PayoutReport struct {
	Trigger   PayoutTrigger
	RunDate   time.Time
	WeekStart time.Time
	WeekEnd   time.Time
	Entries   []PayoutEntry
}

// Empty reports a week without any recorded contributions. An empty payout
// publishes a notice but clears nothing.
func (r *PayoutReport) Empty() bool {
	return len(r.Entries) == 0
}

// TotalPaid returns the sum of all salaries in the report.
func (r *PayoutReport) TotalPaid() float64 {
	var total float64
	for _, e := range r.Entries {
		total += e.Salary
	}
	return total
}

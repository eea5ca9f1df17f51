package service

import (
	"context"
	"time"

	"paymaster/events"
	"paymaster/models"
)

// SettingLastPayoutDate is the settings key holding the date (YYYY-MM-DD)
// of the most recent payout. The scheduler reads it to guarantee at most
// one automatic payout per calendar day.
const SettingLastPayoutDate = "last_payout_date"

// ContributionRepository defines the interface for the receipt ledger
type ContributionRepository interface {
	// Create appends a contribution for the given user and day. The ledger
	// is append-only; rows for the same user and day accumulate.
	Create(ctx context.Context, userID int64, day time.Time, value float64) (*models.Contribution, error)

	// TotalsByUser returns the summed value per user for all contributions
	// whose day falls within [from, to] inclusive. Users without
	// contributions in the range are absent from the map.
	TotalsByUser(ctx context.Context, from, to time.Time) (map[int64]float64, error)

	// TotalForUser returns one user's summed value within [from, to]
	TotalForUser(ctx context.Context, userID int64, from, to time.Time) (float64, error)

	// DeleteRange removes all contributions whose day falls within
	// [from, to] inclusive and returns the number of rows removed.
	// Deleting an already-empty range is a no-op.
	DeleteRange(ctx context.Context, from, to time.Time) (int64, error)
}

// SettingsRepository defines the interface for scheduler bookkeeping
type SettingsRepository interface {
	// Get returns the value for a key, or nil if the key has never been set
	Get(ctx context.Context, key string) (*string, error)

	// Set writes a value for a key, replacing any previous value
	Set(ctx context.Context, key, value string) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork represents a transactional boundary for operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction; no-op if already committed
	Rollback() error

	// ContributionRepository returns the contribution repository bound to this transaction
	ContributionRepository() ContributionRepository

	// SettingsRepository returns the settings repository bound to this transaction
	SettingsRepository() SettingsRepository

	// EventBus returns the transactional event bus for this unit of work
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates new UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// RoleSource provides the role names a user currently holds in the guild.
// An unknown or departed user yields an empty set, not an error.
type RoleSource interface {
	RoleLabels(ctx context.Context, userID int64) ([]string, error)
}

// ReportSink delivers a payout report to the payments destination. A
// delivery failure aborts the payout before any data is cleared.
type ReportSink interface {
	Deliver(ctx context.Context, report *models.PayoutReport) error
}

// PayrollService defines operations on the weekly receipt ledger
type PayrollService interface {
	// RecordReceipt sums the extracted numbers of one receipt and appends
	// the total to the ledger dated today. Returns the receipt total.
	// Calling it with no numbers returns ErrNoReceiptNumbers; callers
	// screen empty extractions first.
	RecordReceipt(ctx context.Context, userID int64, channelID string, numbers []float64) (float64, error)

	// UserWeeklyTotal returns the user's contribution total for the current week
	UserWeeklyTotal(ctx context.Context, userID int64) (float64, error)

	// WeeklyTotals returns every user's contribution total for the current week
	WeeklyTotals(ctx context.Context) (map[int64]float64, error)

	// ResetWeek clears the current week's ledger without paying out
	ResetWeek(ctx context.Context, requestedBy int64) error
}

// PayoutService computes and publishes the weekly payout
type PayoutService interface {
	// Run executes a payout: computes salaries from the current week's
	// totals, delivers the report, then clears the week and stamps
	// last_payout_date. An empty week only publishes a notice.
	Run(ctx context.Context, trigger models.PayoutTrigger) (*models.PayoutReport, error)

	// LastPayoutDate returns the stamped date of the most recent payout,
	// or nil if no payout has ever run
	LastPayoutDate(ctx context.Context) (*string, error)
}

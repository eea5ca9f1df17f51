package models

import (
	"time"
)

// Contribution represents a single OCR-extracted receipt total attributed
// to one user on one calendar day. Contributions are append-only: multiple
// entries per user per day are allowed and additive.
type Contribution struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Day       time.Time `db:"day"`
	Value     float64   `db:"value"`
	CreatedAt time.Time `db:"created_at"`
}

// DateOnly normalizes a timestamp to midnight UTC of its calendar day.
// The contributions table stores days, not instants.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

package repository

import (
	"context"
	"fmt"
	"time"

	"paymaster/database"
	"paymaster/models"
)

// ContributionRepository implements the service.ContributionRepository interface
type ContributionRepository struct {
	q queryable
}

// NewContributionRepository creates a new contribution repository
func NewContributionRepository(db *database.DB) *ContributionRepository {
	return &ContributionRepository{q: db.Pool}
}

// newContributionRepositoryWithTx creates a new contribution repository with a transaction
func newContributionRepositoryWithTx(tx queryable) *ContributionRepository {
	return &ContributionRepository{q: tx}
}

// Create appends a contribution for the given user and day
func (r *ContributionRepository) Create(ctx context.Context, userID int64, day time.Time, value float64) (*models.Contribution, error) {
	query := `
		INSERT INTO contributions (user_id, day, value)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, day, value, created_at
	`

	var contribution models.Contribution
	err := r.q.QueryRow(ctx, query, userID, models.DateOnly(day), value).Scan(
		&contribution.ID,
		&contribution.UserID,
		&contribution.Day,
		&contribution.Value,
		&contribution.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create contribution for user %d: %w", userID, err)
	}

	return &contribution, nil
}

// TotalsByUser returns the summed contribution value per user within [from, to]
func (r *ContributionRepository) TotalsByUser(ctx context.Context, from, to time.Time) (map[int64]float64, error) {
	query := `
		SELECT user_id, SUM(value) AS total
		FROM contributions
		WHERE day BETWEEN $1 AND $2
		GROUP BY user_id
	`

	rows, err := r.q.Query(ctx, query, models.DateOnly(from), models.DateOnly(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[int64]float64)
	for rows.Next() {
		var userID int64
		var total float64
		if err := rows.Scan(&userID, &total); err != nil {
			return nil, fmt.Errorf("failed to scan weekly total row: %w", err)
		}
		totals[userID] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read weekly totals: %w", err)
	}

	return totals, nil
}

// TotalForUser returns one user's summed contribution value within [from, to]
func (r *ContributionRepository) TotalForUser(ctx context.Context, userID int64, from, to time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(value), 0)
		FROM contributions
		WHERE user_id = $1 AND day BETWEEN $2 AND $3
	`

	var total float64
	err := r.q.QueryRow(ctx, query, userID, models.DateOnly(from), models.DateOnly(to)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to get total for user %d: %w", userID, err)
	}

	return total, nil
}

// DeleteRange removes all contributions within [from, to] inclusive
func (r *ContributionRepository) DeleteRange(ctx context.Context, from, to time.Time) (int64, error) {
	query := `
		DELETE FROM contributions
		WHERE day BETWEEN $1 AND $2
	`

	result, err := r.q.Exec(ctx, query, models.DateOnly(from), models.DateOnly(to))
	if err != nil {
		return 0, fmt.Errorf("failed to delete contributions: %w", err)
	}

	return result.RowsAffected(), nil
}

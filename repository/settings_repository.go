package repository

import (
	"context"
	"fmt"

	"paymaster/database"

	"github.com/jackc/pgx/v5"
)

// SettingsRepository implements the service.SettingsRepository interface
type SettingsRepository struct {
	q queryable
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{q: db.Pool}
}

// newSettingsRepositoryWithTx creates a new settings repository with a transaction
func newSettingsRepositoryWithTx(tx queryable) *SettingsRepository {
	return &SettingsRepository{q: tx}
}

// Get returns the value for a key, or nil if the key has never been set
func (r *SettingsRepository) Get(ctx context.Context, key string) (*string, error) {
	query := `
		SELECT value FROM settings WHERE key = $1
	`

	var value string
	err := r.q.QueryRow(ctx, query, key).Scan(&value)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get setting %q: %w", key, err)
	}

	return &value, nil
}

// Set writes a value for a key, replacing any previous value
func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`

	if _, err := r.q.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}

	return nil
}

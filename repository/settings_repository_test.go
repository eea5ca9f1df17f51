package repository

import (
	"context"
	"testing"

	"paymaster/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewSettingsRepository(testDB.DB)
	ctx := context.Background()

	t.Run("missing key returns nil", func(t *testing.T) {
		value, err := repo.Get(ctx, "last_payout_date")
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("set and get", func(t *testing.T) {
		err := repo.Set(ctx, "last_payout_date", "2024-01-19")
		require.NoError(t, err)

		value, err := repo.Get(ctx, "last_payout_date")
		require.NoError(t, err)
		require.NotNil(t, value)
		assert.Equal(t, "2024-01-19", *value)
	})

	t.Run("set is last-write-wins", func(t *testing.T) {
		err := repo.Set(ctx, "last_payout_date", "2024-01-26")
		require.NoError(t, err)

		value, err := repo.Get(ctx, "last_payout_date")
		require.NoError(t, err)
		require.NotNil(t, value)
		assert.Equal(t, "2024-01-26", *value)
	})
}

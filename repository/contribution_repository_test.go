package repository

import (
	"context"
	"testing"
	"time"

	"paymaster/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContributionRepository_Create(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewContributionRepository(testDB.DB)
	ctx := context.Background()

	t.Run("appends and normalizes day", func(t *testing.T) {
		day := time.Date(2024, 1, 15, 14, 25, 30, 0, time.UTC)
		contribution, err := repo.Create(ctx, 123456, day, 99.90)
		require.NoError(t, err)
		require.NotNil(t, contribution)

		assert.Equal(t, int64(123456), contribution.UserID)
		assert.Equal(t, 99.90, contribution.Value)
		assert.NotZero(t, contribution.ID)

		expectedDay := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, expectedDay, contribution.Day.UTC())
	})

	t.Run("multiple contributions per user per day are additive", func(t *testing.T) {
		day := testutil.DayThisWeek(1) // Tuesday

		_, err := repo.Create(ctx, 777, day, 100.0)
		require.NoError(t, err)
		_, err = repo.Create(ctx, 777, day, 50.0)
		require.NoError(t, err)

		total, err := repo.TotalForUser(ctx, 777, testutil.DayThisWeek(0), testutil.DayThisWeek(4))
		require.NoError(t, err)
		assert.Equal(t, 150.0, total)
	})

	t.Run("negative values are accepted", func(t *testing.T) {
		_, err := repo.Create(ctx, 888, testutil.DayThisWeek(2), -3.5)
		require.NoError(t, err)

		total, err := repo.TotalForUser(ctx, 888, testutil.DayThisWeek(0), testutil.DayThisWeek(4))
		require.NoError(t, err)
		assert.Equal(t, -3.5, total)
	})
}

func TestContributionRepository_TotalsByUser(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewContributionRepository(testDB.DB)
	ctx := context.Background()

	monday := testutil.DayThisWeek(0)
	friday := testutil.DayThisWeek(4)

	t.Run("empty range yields empty map", func(t *testing.T) {
		totals, err := repo.TotalsByUser(ctx, monday, friday)
		require.NoError(t, err)
		assert.Empty(t, totals)
	})

	t.Run("groups by user within inclusive range", func(t *testing.T) {
		_, err := repo.Create(ctx, 1, monday, 100.0)
		require.NoError(t, err)
		_, err = repo.Create(ctx, 1, friday, 50.0)
		require.NoError(t, err)
		_, err = repo.Create(ctx, 2, testutil.DayThisWeek(2), 200.0)
		require.NoError(t, err)

		// Outside the window: previous Friday and next Monday
		_, err = repo.Create(ctx, 1, testutil.DayThisWeek(-3), 999.0)
		require.NoError(t, err)
		_, err = repo.Create(ctx, 2, testutil.DayThisWeek(7), 999.0)
		require.NoError(t, err)

		totals, err := repo.TotalsByUser(ctx, monday, friday)
		require.NoError(t, err)

		assert.Len(t, totals, 2)
		assert.Equal(t, 150.0, totals[1])
		assert.Equal(t, 200.0, totals[2])
	})

	t.Run("weekend contributions fall outside the window", func(t *testing.T) {
		_, err := repo.Create(ctx, 3, testutil.DayThisWeek(5), 42.0) // Saturday
		require.NoError(t, err)

		totals, err := repo.TotalsByUser(ctx, monday, friday)
		require.NoError(t, err)
		_, present := totals[3]
		assert.False(t, present)
	})
}

func TestContributionRepository_DeleteRange(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewContributionRepository(testDB.DB)
	ctx := context.Background()

	monday := testutil.DayThisWeek(0)
	friday := testutil.DayThisWeek(4)

	_, err := repo.Create(ctx, 1, monday, 100.0)
	require.NoError(t, err)
	_, err = repo.Create(ctx, 2, friday, 200.0)
	require.NoError(t, err)
	_, err = repo.Create(ctx, 3, testutil.DayThisWeek(5), 42.0) // Saturday, survives
	require.NoError(t, err)

	deleted, err := repo.DeleteRange(ctx, monday, friday)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	totals, err := repo.TotalsByUser(ctx, monday, friday)
	require.NoError(t, err)
	assert.Empty(t, totals)

	// Saturday row is still in storage
	saturdayTotal, err := repo.TotalForUser(ctx, 3, testutil.DayThisWeek(5), testutil.DayThisWeek(5))
	require.NoError(t, err)
	assert.Equal(t, 42.0, saturdayTotal)

	t.Run("second delete is a no-op", func(t *testing.T) {
		deleted, err := repo.DeleteRange(ctx, monday, friday)
		require.NoError(t, err)
		assert.Equal(t, int64(0), deleted)
	})
}

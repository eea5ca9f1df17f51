package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"paymaster/events"
	"paymaster/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupPayoutMocks() (*MockUnitOfWorkFactory, *MockUnitOfWork, *MockContributionRepository, *MockSettingsRepository, *MockRoleSource, *MockReportSink) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockContributionRepo := new(MockContributionRepository)
	mockSettingsRepo := new(MockSettingsRepository)
	mockRoleSource := new(MockRoleSource)
	mockSink := new(MockReportSink)

	mockUoW.SetRepositories(mockContributionRepo, mockSettingsRepo)
	mockFactory.On("Create").Return(mockUoW)

	return mockFactory, mockUoW, mockContributionRepo, mockSettingsRepo, mockRoleSource, mockSink
}

func TestPayoutService_Run(t *testing.T) {
	ctx := context.Background()
	monday, friday := WeekRange(time.Now().UTC())
	today := time.Now().UTC().Format(DayFormat)

	mockFactory, mockUoW, mockContributionRepo, mockSettingsRepo, mockRoleSource, mockSink := setupPayoutMocks()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockContributionRepo.On("TotalsByUser", ctx, monday, friday).Return(map[int64]float64{
		1001: 150.0, // userA: two receipts, 100 + 50
		1002: 200.0, // userB
	}, nil)

	mockRoleSource.On("RoleLabels", ctx, int64(1001)).Return([]string{"Worker"}, nil)
	mockRoleSource.On("RoleLabels", ctx, int64(1002)).Return([]string{}, nil)

	mockSink.On("Deliver", ctx, mock.AnythingOfType("*models.PayoutReport")).Return(nil)

	mockContributionRepo.On("DeleteRange", ctx, monday, friday).Return(int64(3), nil)
	mockSettingsRepo.On("Set", ctx, SettingLastPayoutDate, today).Return(nil)

	service := NewPayoutService(mockFactory, mockRoleSource, mockSink)
	report, err := service.Run(ctx, models.PayoutTriggerAutomatic)

	require.NoError(t, err)
	require.NotNil(t, report)
	require.Len(t, report.Entries, 2)

	// Sorted by total descending: userB (200) before userA (150)
	assert.Equal(t, int64(1002), report.Entries[0].UserID)
	assert.Equal(t, 200.0, report.Entries[0].Total)
	assert.Equal(t, models.RoleNone, report.Entries[0].Role)
	assert.Equal(t, 0.0, report.Entries[0].Salary)

	assert.Equal(t, int64(1001), report.Entries[1].UserID)
	assert.Equal(t, 150.0, report.Entries[1].Total)
	assert.Equal(t, models.RoleWorker, report.Entries[1].Role)
	assert.InDelta(t, 22.50, report.Entries[1].Salary, 1e-9)

	assert.InDelta(t, 22.50, report.TotalPaid(), 1e-9)

	// The delivered report is the returned one
	require.Len(t, mockSink.Delivered, 1)
	assert.Same(t, report, mockSink.Delivered[0])

	// Completion event was published through the unit of work
	require.Len(t, mockUoW.PublishedEvents(), 1)
	completed, ok := mockUoW.PublishedEvents()[0].(events.PayoutCompletedEvent)
	require.True(t, ok)
	assert.Equal(t, models.PayoutTriggerAutomatic, completed.Trigger)
	assert.Equal(t, 2, completed.UsersPaid)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockContributionRepo.AssertExpectations(t)
	mockSettingsRepo.AssertExpectations(t)
	mockSink.AssertExpectations(t)
}

func TestPayoutService_Run_EmptyWeek(t *testing.T) {
	ctx := context.Background()
	monday, friday := WeekRange(time.Now().UTC())
	today := time.Now().UTC().Format(DayFormat)

	mockFactory, mockUoW, mockContributionRepo, mockSettingsRepo, mockRoleSource, mockSink := setupPayoutMocks()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockContributionRepo.On("TotalsByUser", ctx, monday, friday).Return(map[int64]float64{}, nil)
	mockSink.On("Deliver", ctx, mock.AnythingOfType("*models.PayoutReport")).Return(nil)
	mockSettingsRepo.On("Set", ctx, SettingLastPayoutDate, today).Return(nil)

	service := NewPayoutService(mockFactory, mockRoleSource, mockSink)
	report, err := service.Run(ctx, models.PayoutTriggerAutomatic)

	require.NoError(t, err)
	require.NotNil(t, report)
	assert.True(t, report.Empty())

	// The "no contributions" notice is still delivered
	require.Len(t, mockSink.Delivered, 1)

	// The ledger is untouched, but the day is stamped and committed so the
	// scheduler does not repeat the notice on the next tick
	mockContributionRepo.AssertNotCalled(t, "DeleteRange", mock.Anything, mock.Anything, mock.Anything)
	mockSettingsRepo.AssertCalled(t, "Set", ctx, SettingLastPayoutDate, today)
	mockUoW.AssertCalled(t, "Commit")
}

func TestPayoutService_Run_EmptyWeekRunsOncePerDay(t *testing.T) {
	ctx := context.Background()
	monday, friday := WeekRange(time.Now().UTC())
	now := time.Now().UTC()
	today := now.Format(DayFormat)

	mockFactory, mockUoW, mockContributionRepo, mockSettingsRepo, mockRoleSource, mockSink := setupPayoutMocks()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockContributionRepo.On("TotalsByUser", ctx, monday, friday).Return(map[int64]float64{}, nil)
	mockSink.On("Deliver", ctx, mock.AnythingOfType("*models.PayoutReport")).Return(nil)

	// The stamp the scheduler would re-read comes from what Run actually
	// wrote, not from the test.
	var stamped *string
	mockSettingsRepo.On("Set", ctx, SettingLastPayoutDate, today).Run(func(args mock.Arguments) {
		value := args.String(2)
		stamped = &value
	}).Return(nil)

	service := NewPayoutService(mockFactory, mockRoleSource, mockSink)

	// Walk two hourly ticks on the payout day the way the scheduler does:
	// decide from the stored stamp, run, re-read the stamp.
	runs := 0
	for tick := 0; tick < 2; tick++ {
		if !ShouldRunPayout(now, stamped, now.Weekday()) {
			continue
		}
		_, err := service.Run(ctx, models.PayoutTriggerAutomatic)
		require.NoError(t, err)
		runs++
	}

	assert.Equal(t, 1, runs)
	assert.Len(t, mockSink.Delivered, 1)
}

func TestPayoutService_Run_SinkFailureAbortsBeforeClear(t *testing.T) {
	ctx := context.Background()
	monday, friday := WeekRange(time.Now().UTC())

	mockFactory, mockUoW, mockContributionRepo, mockSettingsRepo, mockRoleSource, mockSink := setupPayoutMocks()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockContributionRepo.On("TotalsByUser", ctx, monday, friday).Return(map[int64]float64{
		1001: 150.0,
	}, nil)
	mockRoleSource.On("RoleLabels", ctx, int64(1001)).Return([]string{"Worker"}, nil)
	mockSink.On("Deliver", ctx, mock.AnythingOfType("*models.PayoutReport")).Return(errors.New("payments channel unreachable"))

	service := NewPayoutService(mockFactory, mockRoleSource, mockSink)
	report, err := service.Run(ctx, models.PayoutTriggerManual)

	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "payments channel unreachable")

	// The destructive steps never ran
	mockContributionRepo.AssertNotCalled(t, "DeleteRange", mock.Anything, mock.Anything, mock.Anything)
	mockSettingsRepo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestPayoutService_Run_RoleLookupFailureMeansRoleless(t *testing.T) {
	ctx := context.Background()
	monday, friday := WeekRange(time.Now().UTC())
	today := time.Now().UTC().Format(DayFormat)

	mockFactory, mockUoW, mockContributionRepo, mockSettingsRepo, mockRoleSource, mockSink := setupPayoutMocks()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockContributionRepo.On("TotalsByUser", ctx, monday, friday).Return(map[int64]float64{
		1001: 100.0,
	}, nil)
	mockRoleSource.On("RoleLabels", ctx, int64(1001)).Return(nil, errors.New("member left"))
	mockSink.On("Deliver", ctx, mock.AnythingOfType("*models.PayoutReport")).Return(nil)
	mockContributionRepo.On("DeleteRange", ctx, monday, friday).Return(int64(1), nil)
	mockSettingsRepo.On("Set", ctx, SettingLastPayoutDate, today).Return(nil)

	service := NewPayoutService(mockFactory, mockRoleSource, mockSink)
	report, err := service.Run(ctx, models.PayoutTriggerAutomatic)

	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, models.RoleNone, report.Entries[0].Role)
	assert.Equal(t, 0.0, report.Entries[0].Salary)

	// The roleless user's week is cleared with everyone else's
	mockContributionRepo.AssertExpectations(t)
}

func TestPayoutService_Run_ManualAlsoStampsDate(t *testing.T) {
	ctx := context.Background()
	monday, friday := WeekRange(time.Now().UTC())
	today := time.Now().UTC().Format(DayFormat)

	mockFactory, mockUoW, mockContributionRepo, mockSettingsRepo, mockRoleSource, mockSink := setupPayoutMocks()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockContributionRepo.On("TotalsByUser", ctx, monday, friday).Return(map[int64]float64{
		1001: 50.0,
	}, nil)
	mockRoleSource.On("RoleLabels", ctx, int64(1001)).Return([]string{"Delivery"}, nil)
	mockSink.On("Deliver", ctx, mock.AnythingOfType("*models.PayoutReport")).Return(nil)
	mockContributionRepo.On("DeleteRange", ctx, monday, friday).Return(int64(1), nil)
	mockSettingsRepo.On("Set", ctx, SettingLastPayoutDate, today).Return(nil)

	service := NewPayoutService(mockFactory, mockRoleSource, mockSink)
	_, err := service.Run(ctx, models.PayoutTriggerManual)

	require.NoError(t, err)

	// A manual run stamps the date, so the same day's automatic check
	// becomes a no-op.
	mockSettingsRepo.AssertCalled(t, "Set", ctx, SettingLastPayoutDate, today)
	assert.False(t, ShouldRunPayout(time.Now().UTC(), &today, time.Now().UTC().Weekday()))
}

func TestPayoutService_LastPayoutDate(t *testing.T) {
	ctx := context.Background()

	mockFactory, mockUoW, _, mockSettingsRepo, mockRoleSource, mockSink := setupPayoutMocks()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	stamp := "2024-01-19"
	mockSettingsRepo.On("Get", ctx, SettingLastPayoutDate).Return(&stamp, nil)

	service := NewPayoutService(mockFactory, mockRoleSource, mockSink)
	value, err := service.LastPayoutDate(ctx)

	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, "2024-01-19", *value)
}

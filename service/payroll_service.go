package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"paymaster/events"
	"paymaster/ocr"
)

// ErrNoReceiptNumbers is returned by RecordReceipt when called with an empty
// extraction. The ingest handler screens empty extractions and replies to
// the user before recording, so hitting this is a programmer error.
var ErrNoReceiptNumbers = errors.New("receipt contains no numbers")

type payrollService struct {
	uowFactory UnitOfWorkFactory
}

// NewPayrollService creates a new payroll service
func NewPayrollService(uowFactory UnitOfWorkFactory) PayrollService {
	return &payrollService{
		uowFactory: uowFactory,
	}
}

func (s *payrollService) RecordReceipt(ctx context.Context, userID int64, channelID string, numbers []float64) (float64, error) {
	if len(numbers) == 0 {
		return 0, ErrNoReceiptNumbers
	}

	total := ocr.SumNumbers(numbers)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	today := time.Now().UTC()
	if _, err := uow.ContributionRepository().Create(ctx, userID, today, total); err != nil {
		return 0, fmt.Errorf("failed to record contribution: %w", err)
	}

	uow.EventBus().Publish(events.ReceiptRecordedEvent{
		UserID:    userID,
		ChannelID: channelID,
		Numbers:   numbers,
		Total:     total,
	})

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return total, nil
}

func (s *payrollService) UserWeeklyTotal(ctx context.Context, userID int64) (float64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	monday, friday := WeekRange(time.Now().UTC())

	total, err := uow.ContributionRepository().TotalForUser(ctx, userID, monday, friday)
	if err != nil {
		return 0, fmt.Errorf("failed to get weekly total for user %d: %w", userID, err)
	}

	return total, nil
}

func (s *payrollService) WeeklyTotals(ctx context.Context) (map[int64]float64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	monday, friday := WeekRange(time.Now().UTC())

	totals, err := uow.ContributionRepository().TotalsByUser(ctx, monday, friday)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly totals: %w", err)
	}

	return totals, nil
}

func (s *payrollService) ResetWeek(ctx context.Context, requestedBy int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	monday, friday := WeekRange(time.Now().UTC())

	if _, err := uow.ContributionRepository().DeleteRange(ctx, monday, friday); err != nil {
		return fmt.Errorf("failed to clear current week: %w", err)
	}

	uow.EventBus().Publish(events.WeekResetEvent{RequestedBy: requestedBy})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"paymaster/events"
	"paymaster/models"

	log "github.com/sirupsen/logrus"
)

type payoutService struct {
	uowFactory UnitOfWorkFactory
	roleSource RoleSource
	sink       ReportSink
}

// NewPayoutService creates a new payout service
func NewPayoutService(uowFactory UnitOfWorkFactory, roleSource RoleSource, sink ReportSink) PayoutService {
	return &payoutService{
		uowFactory: uowFactory,
		roleSource: roleSource,
		sink:       sink,
	}
}

// Run computes the weekly payout. The report is delivered before anything
// is cleared: a failing payments destination aborts the run with the ledger
// intact. The week-clear and the last_payout_date stamp share one
// transaction, for both automatic and manual triggers, so a manual payout
// also suppresses that day's automatic run. An empty week delivers a notice
// and still stamps the date, so the notice goes out at most once per day.
func (s *payoutService) Run(ctx context.Context, trigger models.PayoutTrigger) (*models.PayoutReport, error) {
	now := time.Now().UTC()
	monday, friday := WeekRange(now)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	totals, err := uow.ContributionRepository().TotalsByUser(ctx, monday, friday)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly totals: %w", err)
	}

	report := &models.PayoutReport{
		Trigger:   trigger,
		RunDate:   now,
		WeekStart: monday,
		WeekEnd:   friday,
	}

	if len(totals) == 0 {
		// Nothing this week: publish the notice and stamp the day anyway,
		// otherwise every later scheduler tick would repeat it. The ledger
		// itself is left untouched.
		if err := s.sink.Deliver(ctx, report); err != nil {
			return nil, fmt.Errorf("failed to deliver payout report: %w", err)
		}
		if err := uow.SettingsRepository().Set(ctx, SettingLastPayoutDate, now.Format(DayFormat)); err != nil {
			return nil, fmt.Errorf("failed to stamp last payout date: %w", err)
		}
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return report, nil
	}

	for userID, total := range totals {
		labels, err := s.roleSource.RoleLabels(ctx, userID)
		if err != nil {
			// A departed or unknown member is paid as roleless, their
			// contributions still clear with everyone else's.
			log.WithFields(log.Fields{
				"userID": userID,
				"error":  err,
			}).Warn("Failed to resolve roles, treating user as roleless")
			labels = nil
		}

		role := models.HighestRole(labels)
		report.Entries = append(report.Entries, models.PayoutEntry{
			UserID: userID,
			Total:  total,
			Role:   role,
			Salary: total * role.Percentage(),
		})
	}

	sort.SliceStable(report.Entries, func(i, j int) bool {
		return report.Entries[i].Total > report.Entries[j].Total
	})

	if err := s.sink.Deliver(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to deliver payout report: %w", err)
	}

	if _, err := uow.ContributionRepository().DeleteRange(ctx, monday, friday); err != nil {
		return nil, fmt.Errorf("failed to clear current week: %w", err)
	}

	if err := uow.SettingsRepository().Set(ctx, SettingLastPayoutDate, now.Format(DayFormat)); err != nil {
		return nil, fmt.Errorf("failed to stamp last payout date: %w", err)
	}

	uow.EventBus().Publish(events.PayoutCompletedEvent{
		Trigger:   trigger,
		UsersPaid: len(report.Entries),
		TotalPaid: report.TotalPaid(),
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"trigger":   trigger,
		"users":     len(report.Entries),
		"totalPaid": report.TotalPaid(),
	}).Info("Weekly payout completed")

	return report, nil
}

func (s *payoutService) LastPayoutDate(ctx context.Context) (*string, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	value, err := uow.SettingsRepository().Get(ctx, SettingLastPayoutDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get last payout date: %w", err)
	}

	return value, nil
}

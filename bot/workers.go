package bot

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"paymaster/models"
	"paymaster/service"
)

// StartPayoutScheduler starts a background worker that checks hourly
// whether the automatic weekly payout is due. The check is idempotent:
// the payout service stamps last_payout_date, so repeated ticks on the
// payout day run at most one payout, and a manual payout earlier that day
// suppresses the automatic one.
// Returns a cleanup function to stop the worker gracefully.
func (b *Bot) StartPayoutScheduler(ctx context.Context, payoutDay time.Weekday) func() {
	ticker := time.NewTicker(1 * time.Hour)
	stopChan := make(chan struct{})

	checkPayout := func() {
		now := time.Now().UTC()

		lastPayout, err := b.payoutService.LastPayoutDate(ctx)
		if err != nil {
			log.Errorf("Error reading last payout date: %v", err)
			return
		}

		if !service.ShouldRunPayout(now, lastPayout, payoutDay) {
			return
		}

		log.WithFields(log.Fields{
			"weekday": now.Weekday().String(),
		}).Info("Automatic payout is due, running")

		if _, err := b.payoutService.Run(ctx, models.PayoutTriggerAutomatic); err != nil {
			log.Errorf("Automatic payout failed: %v", err)
		}
	}

	go func() {
		log.Info("Payout scheduler started")

		// Run immediately on startup
		checkPayout()

		for {
			select {
			case <-ctx.Done():
				log.Info("Payout scheduler shutting down (context cancelled)...")
				ticker.Stop()
				return
			case <-stopChan:
				log.Info("Payout scheduler shutting down (stop requested)...")
				ticker.Stop()
				return
			case <-ticker.C:
				checkPayout()
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}

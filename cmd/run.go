package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"paymaster/bot"
	"paymaster/config"
	"paymaster/database"
	"paymaster/events"
	"paymaster/ocr"
	"paymaster/repository"
	"paymaster/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting paymaster bot...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize event bus
	eventBus := events.NewBus()
	eventBus.Subscribe(events.EventTypePayoutCompleted, func(ctx context.Context, event events.Event) {
		if payout, ok := event.(events.PayoutCompletedEvent); ok {
			log.WithFields(log.Fields{
				"trigger":   payout.Trigger,
				"usersPaid": payout.UsersPaid,
				"totalPaid": payout.TotalPaid,
			}).Info("Payout completed")
		}
	})
	eventBus.Subscribe(events.EventTypeWeekReset, func(ctx context.Context, event events.Event) {
		if reset, ok := event.(events.WeekResetEvent); ok {
			log.WithFields(log.Fields{
				"requestedBy": reset.RequestedBy,
			}).Info("Week reset without payout")
		}
	})

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	payrollService := service.NewPayrollService(uowFactory)
	ocrEngine := ocr.NewTesseractEngine(cfg.TesseractPath, cfg.OCRLanguage)

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:             cfg.DiscordToken,
		GuildID:           cfg.DiscordGuildID,
		ProofChannelID:    cfg.ProofChannelID,
		PaymentsChannelID: cfg.PaymentsChannelID,
		CurrencySymbol:    cfg.CurrencySymbol,
	}
	discordBot, err := bot.New(botConfig, payrollService, ocrEngine, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	// The payout service resolves roles and delivers reports through the bot
	payoutService := service.NewPayoutService(uowFactory, discordBot, discordBot)
	discordBot.SetPayoutService(payoutService)

	if err := discordBot.Start(); err != nil {
		return fmt.Errorf("failed to start Discord bot: %w", err)
	}
	log.Info("Discord bot started successfully")

	// Start the weekly payout scheduler
	stopScheduler := discordBot.StartPayoutScheduler(ctx, cfg.PayoutWeekday)

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode, payout day is %s", cfg.Environment, cfg.PayoutWeekday)
	<-ctx.Done()

	// Cleanup resources
	log.Info("Shutting down bot...")
	stopScheduler()

	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}

package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string

	// Channel routing
	ProofChannelID    string // channel receipt screenshots are posted to
	PaymentsChannelID string // channel payout reports are published to

	// Database configuration
	DatabaseURL string

	// Payroll configuration
	PayoutWeekday  time.Weekday // day the automatic payout runs (default Friday)
	CurrencySymbol string       // display only

	// OCR configuration
	TesseractPath string // optional explicit binary path
	OCRLanguage   string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		// Channels
		ProofChannelID:    os.Getenv("PROOF_CHANNEL_ID"),
		PaymentsChannelID: os.Getenv("PAYMENTS_CHANNEL_ID"),

		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Payroll settings with defaults
		PayoutWeekday:  time.Friday,
		CurrencySymbol: "€",

		// OCR
		TesseractPath: os.Getenv("TESSERACT_PATH"),
		OCRLanguage:   os.Getenv("OCR_LANGUAGE"),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if symbol := os.Getenv("CURRENCY_SYMBOL"); symbol != "" {
		config.CurrencySymbol = symbol
	}
	if config.OCRLanguage == "" {
		config.OCRLanguage = "eng"
	}
	if weekday := os.Getenv("PAYOUT_WEEKDAY"); weekday != "" {
		parsed, err := parseWeekday(weekday)
		if err != nil {
			return nil, err
		}
		config.PayoutWeekday = parsed
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.ProofChannelID == "" {
			return nil, fmt.Errorf("PROOF_CHANNEL_ID is required")
		}
		if config.PaymentsChannelID == "" {
			return nil, fmt.Errorf("PAYMENTS_CHANNEL_ID is required")
		}
	}

	return config, nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekday(value string) (time.Weekday, error) {
	day, ok := weekdays[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return 0, fmt.Errorf("invalid PAYOUT_WEEKDAY: %q", value)
	}
	return day, nil
}

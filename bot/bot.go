package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"paymaster/bot/common"
	"paymaster/events"
	"paymaster/ocr"
	"paymaster/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token             string
	GuildID           string
	ProofChannelID    string
	PaymentsChannelID string
	CurrencySymbol    string
}

// imageExtensions are the attachment types treated as receipt screenshots
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".bmp":  true,
}

type Bot struct {
	config         Config
	session        *discordgo.Session
	payrollService service.PayrollService
	payoutService  service.PayoutService
	ocrEngine      ocr.Engine
	eventBus       *events.Bus
	httpClient     *http.Client
}

// New creates the bot and wires its handlers without opening the gateway
// connection. The payout service depends on the bot (for role lookups and
// report delivery), so it is injected afterwards via SetPayoutService and
// the connection is opened in Start.
func New(config Config, payrollService service.PayrollService, ocrEngine ocr.Engine, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentGuilds | discordgo.IntentGuildMessages | discordgo.IntentGuildMembers | discordgo.IntentMessageContent

	bot := &Bot{
		config:         config,
		session:        dg,
		payrollService: payrollService,
		ocrEngine:      ocrEngine,
		eventBus:       eventBus,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
	}

	// Register handlers
	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleMessageCreate)

	// Acknowledgments are sent once the contribution is actually committed
	eventBus.Subscribe(events.EventTypeReceiptRecorded, bot.handleReceiptRecorded)

	return bot, nil
}

// SetPayoutService injects the payout service after construction
func (b *Bot) SetPayoutService(payoutService service.PayoutService) {
	b.payoutService = payoutService
}

// Start opens the gateway connection and registers slash commands
func (b *Bot) Start() error {
	if b.payoutService == nil {
		return fmt.Errorf("payout service not set")
	}

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	if err := b.registerCommands(); err != nil {
		b.session.Close()
		return fmt.Errorf("error registering commands: %w", err)
	}

	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// handleMessageCreate ingests receipt screenshots from the proof channel.
// Each attachment is processed independently: a decode or OCR failure on
// one never aborts its siblings.
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if m.ChannelID != b.config.ProofChannelID {
		return
	}
	if len(m.Attachments) == 0 {
		return
	}

	ctx := context.Background()

	userID, err := strconv.ParseInt(m.Author.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", m.Author.ID, err)
		return
	}

	for _, attachment := range m.Attachments {
		ext := strings.ToLower(filepath.Ext(attachment.Filename))
		if !imageExtensions[ext] {
			continue
		}

		image, err := b.downloadAttachment(ctx, attachment.URL)
		if err != nil {
			log.Errorf("Error downloading attachment %s: %v", attachment.Filename, err)
			b.sendToChannel(m.ChannelID, fmt.Sprintf("%s ❌ Could not read the image, please try again.", m.Author.Mention()))
			continue
		}

		text, err := b.ocrEngine.Text(ctx, image)
		if err != nil {
			log.Errorf("OCR failed for attachment %s: %v", attachment.Filename, err)
			b.sendToChannel(m.ChannelID, fmt.Sprintf("%s ❌ Could not extract text from the receipt.", m.Author.Mention()))
			continue
		}

		numbers := ocr.ExtractNumbers(text)
		if len(numbers) == 0 {
			b.sendToChannel(m.ChannelID, fmt.Sprintf("%s ❕ No numbers found on the receipt.", m.Author.Mention()))
			continue
		}

		if _, err := b.payrollService.RecordReceipt(ctx, userID, m.ChannelID, numbers); err != nil {
			log.Errorf("Error recording receipt for user %d: %v", userID, err)
			b.sendToChannel(m.ChannelID, fmt.Sprintf("%s ❌ Could not save the receipt, please try again.", m.Author.Mention()))
		}
	}
}

// handleReceiptRecorded acknowledges a committed receipt in the channel it
// was posted to.
func (b *Bot) handleReceiptRecorded(ctx context.Context, event events.Event) {
	receipt, ok := event.(events.ReceiptRecordedEvent)
	if !ok {
		return
	}

	message := fmt.Sprintf(
		"🧾 <@%d> numbers found: `%s`\n➕ Receipt total: **%s** (added to your weekly total).",
		receipt.UserID,
		common.FormatNumberList(receipt.Numbers),
		common.FormatAmount(receipt.Total, b.config.CurrencySymbol),
	)
	b.sendToChannel(receipt.ChannelID, message)
}

func (b *Bot) downloadAttachment(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build attachment request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("attachment download returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (b *Bot) sendToChannel(channelID, message string) {
	if _, err := b.session.ChannelMessageSend(channelID, message); err != nil {
		log.Errorf("Error sending message to channel %s: %v", channelID, err)
	}
}

package bot

import (
	"context"
	"fmt"
	"strings"

	"paymaster/bot/common"
	"paymaster/models"
)

// Deliver implements service.ReportSink: it publishes the payout report to
// the payments channel. A send failure is returned to the payout service,
// which then aborts before clearing the week.
func (b *Bot) Deliver(ctx context.Context, report *models.PayoutReport) error {
	message := b.formatReport(report)

	if _, err := b.session.ChannelMessageSend(b.config.PaymentsChannelID, message); err != nil {
		return fmt.Errorf("failed to send payout report to payments channel: %w", err)
	}

	return nil
}

func (b *Bot) formatReport(report *models.PayoutReport) string {
	title := "📢 **Weekly Payout (Automatic)**"
	if report.Trigger == models.PayoutTriggerManual {
		title = "📢 **Weekly Payout (Manual)**"
	}

	if report.Empty() {
		return title + "\n\nNo receipts recorded this week."
	}

	lines := []string{title, ""}
	for _, entry := range report.Entries {
		lines = append(lines, fmt.Sprintf(
			"👤 <@%d>\n   🧾 Receipts total: **%s**\n   🏅 Role: **%s**\n   💰 Final salary: **%s**\n",
			entry.UserID,
			common.FormatAmount(entry.Total, b.config.CurrencySymbol),
			common.FormatRole(entry.Role.String(), entry.Role.Percentage()),
			common.FormatAmount(entry.Salary, b.config.CurrencySymbol),
		))
	}

	return strings.Join(lines, "\n")
}

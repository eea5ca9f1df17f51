package bot

import (
	"context"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"paymaster/bot/common"
	"paymaster/models"

	"github.com/bwmarrin/discordgo"
)

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "status",
			Description: "Show your current weekly total, role and salary estimate",
		},
		{
			Name:        "payout-now",
			Description: "Run the weekly payout immediately (requires Manage Server)",
		},
		{
			Name:        "reset-week",
			Description: "Clear the current week's receipts without payout (requires Manage Server)",
		},
	}

	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd); err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
	}

	return nil
}

// handleCommands routes slash command interactions
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "status":
		b.handleStatus(s, i)
	case "payout-now":
		b.handlePayoutNow(s, i)
	case "reset-week":
		b.handleResetWeek(s, i)
	}
}

func (b *Bot) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	total, err := b.payrollService.UserWeeklyTotal(ctx, userID)
	if err != nil {
		log.Errorf("Error getting weekly total for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to retrieve your weekly total. Please try again.")
		return
	}

	labels, err := b.memberRoleNames(i.Member)
	if err != nil {
		log.Errorf("Error resolving roles for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to resolve your role. Please try again.")
		return
	}

	role := models.HighestRole(labels)
	estimate := total * role.Percentage()

	message := fmt.Sprintf(
		"%s\n🧾 Current weekly total: **%s**\n🏅 Role: **%s**\n💰 Salary estimate: **%s**",
		i.Member.User.Mention(),
		common.FormatAmount(total, b.config.CurrencySymbol),
		common.FormatRole(role.String(), role.Percentage()),
		common.FormatAmount(estimate, b.config.CurrencySymbol),
	)

	if err := common.RespondWithContent(s, i, message, true); err != nil {
		log.Errorf("Error responding to status command: %v", err)
	}
}

func (b *Bot) handlePayoutNow(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !isAdmin(i) {
		common.RespondWithError(s, i, "Only members with **Manage Server** can run this command.")
		return
	}

	// Payout can take a moment: OCR-free but role lookups and delivery hit the API
	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Error deferring payout-now response: %v", err)
		return
	}

	ctx := context.Background()
	report, err := b.payoutService.Run(ctx, models.PayoutTriggerManual)
	if err != nil {
		log.Errorf("Manual payout failed: %v", err)
		common.FollowUpWithContent(s, i, "❌ Payout failed, the week's data was NOT cleared. Check the logs.", true)
		return
	}

	if report.Empty() {
		common.FollowUpWithContent(s, i, "✅ No receipts this week, nothing was paid out or cleared.", true)
		return
	}

	common.FollowUpWithContent(s, i, "✅ Manual payout completed and the week's data was cleared.", true)
}

func (b *Bot) handleResetWeek(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !isAdmin(i) {
		common.RespondWithError(s, i, "Only members with **Manage Server** can run this command.")
		return
	}

	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if err := b.payrollService.ResetWeek(context.Background(), userID); err != nil {
		log.Errorf("Week reset failed: %v", err)
		common.RespondWithError(s, i, "Unable to reset the week. Please try again.")
		return
	}

	if err := common.RespondWithContent(s, i, "♻️ The current week's data was cleared.", false); err != nil {
		log.Errorf("Error responding to reset-week command: %v", err)
	}
}

// isAdmin reports whether the invoking member may run privileged commands
func isAdmin(i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		return false
	}
	perms := i.Member.Permissions
	return perms&discordgo.PermissionManageServer != 0 || perms&discordgo.PermissionAdministrator != 0
}

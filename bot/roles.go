package bot

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// RoleLabels implements service.RoleSource: it returns the names of the
// guild roles the user currently holds. A user who left the guild yields
// an empty set rather than an error.
func (b *Bot) RoleLabels(ctx context.Context, userID int64) ([]string, error) {
	member, err := b.guildMember(strconv.FormatInt(userID, 10))
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, nil
	}

	namesByID, err := b.guildRoleNames()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, roleID := range member.Roles {
		if name, ok := namesByID[roleID]; ok {
			names = append(names, name)
		}
	}

	return names, nil
}

// guildMember looks up a member from the state cache, falling back to the
// API. A 404 means the user left the guild and is reported as nil, nil.
func (b *Bot) guildMember(userID string) (*discordgo.Member, error) {
	if member, err := b.session.State.Member(b.config.GuildID, userID); err == nil {
		return member, nil
	}

	member, err := b.session.GuildMember(b.config.GuildID, userID)
	if err != nil {
		if restErr, ok := err.(*discordgo.RESTError); ok && restErr.Response != nil && restErr.Response.StatusCode == 404 {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch guild member %s: %w", userID, err)
	}

	return member, nil
}

// guildRoleNames maps role IDs to role names for the configured guild
func (b *Bot) guildRoleNames() (map[string]string, error) {
	roles, err := b.session.GuildRoles(b.config.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guild roles: %w", err)
	}

	names := make(map[string]string, len(roles))
	for _, role := range roles {
		names[role.ID] = role.Name
	}

	return names, nil
}

// memberRoleNames resolves an interaction member's role IDs to names
func (b *Bot) memberRoleNames(member *discordgo.Member) ([]string, error) {
	namesByID, err := b.guildRoleNames()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, roleID := range member.Roles {
		if name, ok := namesByID[roleID]; ok {
			names = append(names, name)
		}
	}

	return names, nil
}

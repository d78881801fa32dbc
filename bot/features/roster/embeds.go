package roster

import (
	"fmt"
	"strings"
	"time"

	"sblbot/bot/common"
	"sblbot/sblapi"

	"github.com/bwmarrin/discordgo"
)

func roleLabel(role string) string {
	if role == sblapi.RoleCaptain {
		return "Captain"
	}
	return "Member"
}

func roleIcon(role string) string {
	if role == sblapi.RoleCaptain {
		return "👑"
	}
	return "👤"
}

func timestamp() string {
	return time.Now().Format(time.RFC3339)
}

func buildCreatedEmbed(team sblapi.TeamRef, captainID string) *discordgo.MessageEmbed {
	embed := common.SuccessEmbed("Team created", "Your team is ready. Add players with `/add-member`.")
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "🏷️ Name", Value: common.TruncateField(common.NonEmpty(team.Name)), Inline: true},
		{Name: "🆔 ID", Value: fmt.Sprintf("%d", team.ID), Inline: true},
		{Name: "👑 Captain", Value: common.UserMention(captainID), Inline: true},
	}
	embed.Timestamp = timestamp()
	return embed
}

func buildMemberAddedEmbed(teamID int, userID string) *discordgo.MessageEmbed {
	embed := common.SuccessEmbed("Member added", "")
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "👤 Player", Value: common.UserMention(userID), Inline: true},
		{Name: "🏷️ Team", Value: fmt.Sprintf("ID: %d", teamID), Inline: true},
		{Name: "🎭 Role", Value: roleLabel(sblapi.RoleMember), Inline: true},
	}
	embed.Timestamp = timestamp()
	return embed
}

func buildMemberRemovedEmbed(teamID int, userID string) *discordgo.MessageEmbed {
	embed := common.SuccessEmbed("Member removed", "")
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "👤 Player", Value: common.UserMention(userID), Inline: true},
		{Name: "🏷️ Team", Value: fmt.Sprintf("ID: %d", teamID), Inline: true},
	}
	embed.Timestamp = timestamp()
	return embed
}

func buildLeftEmbed(teamID int) *discordgo.MessageEmbed {
	embed := common.SuccessEmbed("Team left", fmt.Sprintf("You left team ID: %d.", teamID))
	embed.Timestamp = timestamp()
	return embed
}

func buildRoleChangedEmbed(teamID int, userID, role string) *discordgo.MessageEmbed {
	embed := common.SuccessEmbed("Role changed", "")
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "👤 Player", Value: common.UserMention(userID), Inline: true},
		{Name: "🏷️ Team", Value: fmt.Sprintf("ID: %d", teamID), Inline: true},
		{Name: "🎭 New role", Value: roleLabel(role), Inline: true},
	}
	embed.Timestamp = timestamp()
	return embed
}

func buildMembersEmbed(data sblapi.TeamMembers) *discordgo.MessageEmbed {
	title := "👥 " + common.NonEmpty(data.Team.Name)
	if len(data.Members) == 0 {
		return &discordgo.MessageEmbed{
			Title:       title,
			Description: "This team has no members.",
			Color:       common.ColorEmpty,
			Timestamp:   timestamp(),
		}
	}

	lines := make([]string, 0, len(data.Members))
	for _, m := range data.Members {
		who := common.OrPlaceholder(m.DiscordUsername)
		if m.DiscordID != "" {
			who = common.UserMention(m.DiscordID)
		}
		line := roleIcon(m.Role) + " " + who
		if m.JoinedAt != nil {
			line += " · Since " + common.FormatDate(m.JoinedAt)
		}
		lines = append(lines, line)
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: common.Truncate(strings.Join(lines, "\n"), common.MaxDescriptionLength),
		Color:       common.ColorInfo,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%d member(s) · ID: %d", len(data.Members), data.Team.ID)},
		Timestamp:   timestamp(),
	}
}

func buildMyTeamsEmbed(teams []sblapi.TeamMembership) *discordgo.MessageEmbed {
	if len(teams) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "📋 My teams",
			Description: "You do not belong to any team.\nUse `/create-team` to create one.",
			Color:       common.ColorEmpty,
			Timestamp:   timestamp(),
		}
	}

	blocks := make([]string, 0, len(teams))
	for _, t := range teams {
		blocks = append(blocks, fmt.Sprintf("%s **%s** (ID: %d)\n   %s · %s member(s)",
			roleIcon(t.Role), common.NonEmpty(t.Team.Name), t.Team.ID, roleLabel(t.Role), common.IntOrPlaceholder(t.MembersCount)))
	}

	return &discordgo.MessageEmbed{
		Title:       "📋 My teams",
		Description: common.Truncate(strings.Join(blocks, "\n\n"), common.MaxDescriptionLength),
		Color:       common.ColorInfo,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%d team(s)", len(teams))},
		Timestamp:   timestamp(),
	}
}

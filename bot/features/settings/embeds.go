package settings

import (
	"fmt"
	"time"

	"sblbot/application"
	"sblbot/bot/common"
	"sblbot/domain/entities"
	"sblbot/sblapi"

	"github.com/bwmarrin/discordgo"
)

const notSet = "*Not set*"

func userCopy(err error) string {
	if f, ok := sblapi.AsFailure(err); ok {
		return f.UserMessage()
	}
	return common.GenericFailureMessage
}

func buildSettingsEmbed(s *entities.GuildSettings) *discordgo.MessageEmbed {
	matches, standings, role := notSet, notSet, "*Everyone*"
	if s.HasMatchesChannel() {
		matches = common.ChannelMention(*s.MatchesChannelID)
	}
	if s.HasStandingsChannel() {
		standings = common.ChannelMention(*s.StandingsChannelID)
	}
	if s.HasMatchManagerRole() {
		role = common.RoleMention(*s.MatchManagerRoleID)
	}

	return &discordgo.MessageEmbed{
		Title: "⚙️ Current configuration",
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📅 Matches channel", Value: matches, Inline: true},
			{Name: "📊 Standings channel", Value: standings, Inline: true},
			{Name: "⏰ Deadline", Value: fmt.Sprintf("%s (checked %s 00:00)", s.DeadlineDay, s.DeadlineCheckDay()), Inline: false},
			{Name: "🕘 Default slot", Value: fmt.Sprintf("%s at %s", s.DefaultMatchDay, s.DefaultMatchTime), Inline: true},
			{Name: "🛡️ Match manager role", Value: role, Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func buildWeeklyReportEmbed(r *application.WeeklyReport) *discordgo.MessageEmbed {
	embed := common.SuccessEmbed("Messages sent", fmt.Sprintf(
		"Week **%d** posted to **%d** channel(s) in **%d** server(s), %d division(s).",
		r.Week, r.Channels, r.Guilds, r.Divisions,
	))
	if r.Failures > 0 {
		embed.Color = common.ColorWarning
		embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%d channel(s) could not be posted to", r.Failures)}
	}
	return embed
}

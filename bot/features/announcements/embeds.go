// Package announcements renders the scheduled job output and posts it to
// guild channels.
package announcements

import (
	"fmt"
	"strings"
	"time"

	"sblbot/application"
	"sblbot/bot/common"
	"sblbot/bot/features/standings"
	"sblbot/sblapi"

	"github.com/bwmarrin/discordgo"
)

// NotScheduled is shown for a game without a date
const NotScheduled = "Not scheduled"

const kickoffLayout = "Monday 02/01/2006 15:04"

func teamOr(name *string) string {
	if name == nil || strings.TrimSpace(*name) == "" {
		return "TBD"
	}
	return *name
}

func gameSlot(g sblapi.Game, loc *time.Location) string {
	if g.Date == nil {
		return NotScheduled
	}
	t, ok := common.ParseDate(*g.Date)
	if !ok {
		return NotScheduled
	}
	local := t.In(loc)
	return fmt.Sprintf("%s %dh%02d", local.Weekday(), local.Hour(), local.Minute())
}

// BuildMatchesEmbed lists the games of the week, one field per division
func BuildMatchesEmbed(d *application.WeeklyDigest, loc *time.Location) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("⚽ Matches of week %d", d.Week),
		Description: fmt.Sprintf("Season %d", d.SeasonID),
		Color:       common.ColorPrimary,
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	for _, div := range d.Divisions {
		if len(div.Games) == 0 || len(embed.Fields) == common.MaxEmbedFields {
			continue
		}
		lines := make([]string, 0, len(div.Games))
		for _, g := range div.Games {
			lines = append(lines, fmt.Sprintf("• %s vs %s - %s", teamOr(g.Team1), teamOr(g.Team2), gameSlot(g, loc)))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  common.Truncate(div.Division.DisplayName(), common.MaxTitleLength),
			Value: common.TruncateField(strings.Join(lines, "\n")),
		})
	}

	if len(embed.Fields) == 0 {
		embed.Color = common.ColorEmpty
		embed.Fields = []*discordgo.MessageEmbedField{{Name: "No matches", Value: "No matches planned this week."}}
	}
	return embed
}

// BuildStandingsEmbed shows the top of every division table
func BuildStandingsEmbed(d *application.WeeklyDigest) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📊 Standings - Week %d", d.Week),
		Description: fmt.Sprintf("Season %d", d.SeasonID),
		Color:       common.ColorGold,
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	for _, div := range d.Divisions {
		rows := standings.Pick(div.Division, div.Stats)
		if len(rows) == 0 || len(embed.Fields) == common.MaxEmbedFields {
			continue
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  common.Truncate(div.Division.DisplayName(), common.MaxTitleLength),
			Value: standings.Table(rows, common.StandingsTopN),
		})
	}

	if len(embed.Fields) == 0 {
		embed.Color = common.ColorEmpty
		embed.Fields = []*discordgo.MessageEmbedField{{Name: "Standings", Value: "No standings available."}}
	}
	return embed
}

func gameList(games []sblapi.Game) string {
	lines := make([]string, 0, len(games))
	for _, g := range games {
		lines = append(lines, fmt.Sprintf("`#%d` %s vs %s", g.ID, teamOr(g.Team1), teamOr(g.Team2)))
	}
	return common.TruncateField(strings.Join(lines, "\n"))
}

// BuildDeadlineSummaryEmbed reports which games the deadline check dated
func BuildDeadlineSummaryEmbed(s *application.DeadlineSummary, loc *time.Location) *discordgo.MessageEmbed {
	if s.Total() == 0 {
		return &discordgo.MessageEmbed{
			Title:       "✅ Deadline check",
			Description: fmt.Sprintf("Every game of week **%d** is already scheduled.", s.Week),
			Color:       common.ColorSuccess,
		}
	}

	embed := &discordgo.MessageEmbed{
		Title: "⏰ Deadline check",
		Description: fmt.Sprintf("Week **%d**: **%d** of %d game(s) moved to the default slot, %s.",
			s.Week, len(s.Scheduled), s.Total(), s.Kickoff.In(loc).Format(kickoffLayout)),
		Color:     common.ColorSuccess,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if len(s.Scheduled) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "✅ Scheduled", Value: gameList(s.Scheduled)})
	}
	if len(s.Failed) > 0 {
		embed.Color = common.ColorWarning
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "❌ Failed", Value: gameList(s.Failed)})
	}
	return embed
}

package divisions

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"sblbot/bot/common"
	"sblbot/bot/features/standings"
	"sblbot/bot/interactions"
	"sblbot/sblapi"

	"github.com/bwmarrin/discordgo"
)

// maxDivisionButtons leaves one action row for navigation
const maxDivisionButtons = (common.MaxActionRows - 1) * common.MaxButtonsPerRow

func footer(d time.Duration) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{Text: common.FormatResponseTime(d)}
}

func buildDivisionsEmbed(seasonID int, season *sblapi.Season, divisions []sblapi.Division, d time.Duration) *discordgo.MessageEmbed {
	title := fmt.Sprintf("🏟️ Divisions of season %d", seasonID)
	if season != nil && season.Name != nil && *season.Name != "" {
		title = "🏟️ Divisions of " + *season.Name
	}

	if len(divisions) == 0 {
		return &discordgo.MessageEmbed{
			Title:       title,
			Description: "No divisions found for this season.",
			Color:       common.ColorEmpty,
			Footer:      footer(d),
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: fmt.Sprintf("**%d** division(s)", len(divisions)),
		Color:       common.ColorPrimary,
		Footer:      footer(d),
	}

	for i, div := range divisions {
		if i == common.MaxEmbedFields {
			break
		}
		var b strings.Builder
		fmt.Fprintf(&b, "🆔 **ID:** %d\n", div.ID)
		fmt.Fprintf(&b, "👥 **Teams:** %d", len(div.Teams))
		if div.Description != nil && *div.Description != "" {
			fmt.Fprintf(&b, "\n📝 %s", *div.Description)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   div.DisplayName(),
			Value:  common.TruncateField(b.String()),
			Inline: true,
		})
	}

	return embed
}

func buildDivisionsComponents(seasonID int, divisions []sblapi.Division) []discordgo.MessageComponent {
	var buttons []discordgo.MessageComponent
	for i, div := range divisions {
		if i == maxDivisionButtons {
			break
		}
		buttons = append(buttons, common.LinkButton("🏆 "+div.DisplayName(), interactions.DivisionDetailsID(div.ID), discordgo.SecondaryButton))
	}

	components := common.ButtonRows(buttons)
	return append(components, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		common.LinkButton("📅 Season", interactions.SeasonDetailsID(seasonID), discordgo.SecondaryButton),
		common.LinkButton("📅 All seasons", interactions.BackToSeasonsID, discordgo.SecondaryButton),
	}})
}

func buildDivisionEmbed(div sblapi.Division, games []sblapi.Game, stats []sblapi.TeamStanding, d time.Duration) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "🏆 " + div.DisplayName(),
		Description: fmt.Sprintf("Division ID: **%d**", div.ID),
		Color:       common.ColorPrimary,
		Footer:      footer(d),
	}

	var info strings.Builder
	if div.Season.Valid() {
		fmt.Fprintf(&info, "📅 **Season:** %d\n", *div.Season)
	}
	if div.Description != nil && *div.Description != "" {
		fmt.Fprintf(&info, "📝 **Description:** %s\n", *div.Description)
	}
	fmt.Fprintf(&info, "👥 **Teams:** %d", len(div.Teams))
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "ℹ️ General",
		Value: common.TruncateField(info.String()),
	})

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "📊 Standings",
		Value: standings.Table(standings.Pick(div, stats), common.StandingsTopN),
	})

	if len(games) == 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "🎮 Games",
			Value: "No games found for this division",
		})
		return embed
	}

	var finished []sblapi.Game
	for _, g := range games {
		if g.Finished() {
			finished = append(finished, g)
		}
	}
	pct := float64(len(finished)) / float64(len(games)) * 100
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "🎯 Games",
		Value: fmt.Sprintf("🎮 **Total:** %d\n✅ **Finished:** %d\n⏳ **Pending:** %d\n📊 **Progress:** %s %s",
			len(games), len(finished), len(games)-len(finished), common.ProgressBar(pct, 0), common.Percent(len(finished), len(games))),
	})

	if recent := recentResults(finished, common.RecentResults); recent != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "🕒 Latest results",
			Value: recent,
		})
	}

	return embed
}

// recentResults lists the n most recent finished games, newest first.
// Games without a parseable date sort last.
func recentResults(finished []sblapi.Game, n int) string {
	sorted := append([]sblapi.Game(nil), finished...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return gameTime(sorted[i]).After(gameTime(sorted[j]))
	})

	var b strings.Builder
	for i, g := range sorted {
		if i == n {
			break
		}
		fmt.Fprintf(&b, "⚽ **%s** %d - %d **%s**\n",
			common.OrPlaceholder(g.Team1), common.IntOr(g.Score1, 0),
			common.IntOr(g.Score2, 0), common.OrPlaceholder(g.Team2))
	}
	return common.TruncateField(strings.TrimRight(b.String(), "\n"))
}

func gameTime(g sblapi.Game) time.Time {
	if g.Date == nil {
		return time.Time{}
	}
	t, _ := common.ParseDate(*g.Date)
	return t
}

func buildDivisionComponents(div sblapi.Division, gameCount int) []discordgo.MessageComponent {
	buttons := []discordgo.MessageComponent{
		common.LinkButton(fmt.Sprintf("📋 See matches (%d)", gameCount), interactions.DivisionMatchesID(div.ID, 1), discordgo.PrimaryButton),
	}
	if div.Season.Valid() {
		buttons = append(buttons, common.LinkButton("🏟️ Season divisions", interactions.SeasonDivisionsID(int(*div.Season)), discordgo.SecondaryButton))
	}
	buttons = append(buttons, common.LinkButton("📅 All seasons", interactions.BackToSeasonsID, discordgo.SecondaryButton))

	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}}
}

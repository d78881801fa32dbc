package seasons

import (
	"fmt"
	"math"
	"strings"
	"time"

	"sblbot/bot/common"
	"sblbot/bot/interactions"
	"sblbot/sblapi"

	"github.com/bwmarrin/discordgo"
)

func seasonName(s sblapi.Season) string {
	if s.Name != nil && strings.TrimSpace(*s.Name) != "" {
		return *s.Name
	}
	return fmt.Sprintf("Season %d", s.ID)
}

func footer(d time.Duration) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{Text: common.FormatResponseTime(d)}
}

func buildEmptyEmbed(d time.Duration) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "📅 SBL Seasons",
		Description: "No seasons found.",
		Color:       common.ColorEmpty,
		Footer:      footer(d),
	}
}

// completion picks the best available completion figure
func completion(percentage *sblapi.FlexFloat, finished, total *int) (float64, bool) {
	if percentage != nil {
		return float64(*percentage), true
	}
	if finished != nil && total != nil && *total > 0 {
		return float64(*finished) / float64(*total) * 100, true
	}
	return 0, false
}

func buildSeasonsEmbed(seasons []sblapi.Season, state common.PageState, d time.Duration) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "📅 SBL Seasons",
		Description: fmt.Sprintf("**%d** season(s) found | Page **%d**/**%d**", state.TotalItems, state.CurrentPage, state.TotalPages),
		Color:       common.ColorPrimary,
		Footer:      footer(d),
	}

	for _, s := range seasons {
		var b strings.Builder
		if s.StartDate != nil && s.EndDate != nil {
			fmt.Fprintf(&b, "📅 **Period:** %s → %s\n", common.FormatDate(s.StartDate), common.FormatDate(s.EndDate))
		}
		if s.TotalGames != nil {
			fmt.Fprintf(&b, "🎮 **Games:** %d/%d finished\n", common.IntOr(s.FinishedGames, 0), *s.TotalGames)
		}
		if pct, ok := completion(s.Percentage, nil, nil); ok {
			fmt.Fprintf(&b, "📊 **Progress:** %s %.1f%%\n", common.ProgressBar(pct, 0), pct)
		}
		fmt.Fprintf(&b, "💡 Use `/season id:%d` for details", s.ID)

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%d. %s", s.ID, seasonName(s)),
			Value: common.TruncateField(b.String()),
		})
	}

	return embed
}

func buildSeasonsComponents(seasons []sblapi.Season, state common.PageState) []discordgo.MessageComponent {
	components := common.PaginationRow(state, common.PaginationOptions{
		PageID: interactions.SeasonsPageID,
		InfoID: interactions.SeasonsPageInfoID,
	})

	var details []discordgo.MessageComponent
	for _, s := range seasons {
		details = append(details, common.LinkButton("🔍 "+seasonName(s), interactions.SeasonDetailsID(s.ID), discordgo.SecondaryButton))
	}
	return append(components, common.ButtonRows(details)...)
}

// seasonStatus classifies a season against now; an unknown bound is treated as open
func seasonStatus(start, end time.Time, hasStart, hasEnd bool, now time.Time) string {
	switch {
	case hasStart && now.Before(start):
		return "🔜 Upcoming"
	case hasEnd && now.After(end):
		return "✅ Finished"
	default:
		return "🟢 In progress"
	}
}

func buildSeasonEmbed(s sblapi.Season, progress *sblapi.SeasonProgress, now time.Time, d time.Duration) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  "🏆 " + seasonName(s),
		Color:  common.ColorPrimary,
		Footer: footer(d),
	}

	start, hasStart := time.Time{}, false
	if s.StartDate != nil {
		start, hasStart = common.ParseDate(*s.StartDate)
	}
	end, hasEnd := time.Time{}, false
	if s.EndDate != nil {
		end, hasEnd = common.ParseDate(*s.EndDate)
	}

	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{Name: "🆔 ID", Value: fmt.Sprintf("%d", s.ID), Inline: true},
		&discordgo.MessageEmbedField{Name: "📅 Start", Value: common.FormatDate(s.StartDate), Inline: true},
		&discordgo.MessageEmbedField{Name: "🏁 End", Value: common.FormatDate(s.EndDate), Inline: true},
	)

	if hasStart && hasEnd {
		days := int(math.Ceil(end.Sub(start).Hours() / 24))
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "⏱️ Duration",
			Value:  fmt.Sprintf("%d days", days),
			Inline: true,
		})
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "📌 Status",
		Value:  seasonStatus(start, end, hasStart, hasEnd, now),
		Inline: true,
	})

	finished, total, percentage := s.FinishedGames, s.TotalGames, s.Percentage
	if progress != nil {
		if progress.TotalGames != nil {
			finished, total = progress.FinishedGames, progress.TotalGames
		}
		if progress.Percentage != nil {
			percentage = progress.Percentage
		}
	}

	if pct, ok := completion(percentage, finished, total); ok {
		value := fmt.Sprintf("%s %.1f%%", common.ProgressBar(pct, 0), pct)
		if total != nil {
			value += fmt.Sprintf("\n%d/%d games finished", common.IntOr(finished, 0), *total)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "📊 Progress", Value: value})
	} else {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "📊 Progress", Value: common.Placeholder})
	}

	return embed
}

func buildSeasonComponents(s sblapi.Season) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			common.LinkButton("🏟️ Divisions", interactions.SeasonDivisionsID(s.ID), discordgo.PrimaryButton),
			common.LinkButton("📅 All seasons", interactions.BackToSeasonsID, discordgo.SecondaryButton),
		}},
	}
}

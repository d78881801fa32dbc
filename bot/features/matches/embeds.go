package matches

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"sblbot/bot/common"
	"sblbot/bot/interactions"
	"sblbot/sblapi"

	"github.com/bwmarrin/discordgo"
)

// week is the games of one week, sorted by date. Number 0 holds games without a week.
type week struct {
	Number int
	Games  []sblapi.Game
}

func (w week) label() string {
	if w.Number == 0 {
		return "📅 Unassigned"
	}
	return fmt.Sprintf("📅 Week %d", w.Number)
}

// groupByWeek buckets games by week ascending; games inside a week are
// ordered by date with undated games last
func groupByWeek(games []sblapi.Game) []week {
	buckets := make(map[int][]sblapi.Game)
	for _, g := range games {
		n := common.IntOr(g.Week, 0)
		buckets[n] = append(buckets[n], g)
	}

	weeks := make([]week, 0, len(buckets))
	for n, gs := range buckets {
		sort.SliceStable(gs, func(i, j int) bool {
			ti, okI := gameTime(gs[i])
			tj, okJ := gameTime(gs[j])
			if okI != okJ {
				return okI
			}
			return ti.Before(tj)
		})
		weeks = append(weeks, week{Number: n, Games: gs})
	}
	sort.Slice(weeks, func(i, j int) bool {
		// Unassigned goes last
		if (weeks[i].Number == 0) != (weeks[j].Number == 0) {
			return weeks[j].Number == 0
		}
		return weeks[i].Number < weeks[j].Number
	})
	return weeks
}

func gameTime(g sblapi.Game) (time.Time, bool) {
	if g.Date == nil {
		return time.Time{}, false
	}
	return common.ParseDate(*g.Date)
}

func divisionTitle(divisionID int, division *sblapi.Division, games []sblapi.Game) string {
	switch {
	case division != nil && division.Name != nil && *division.Name != "":
		return "⚽ Matches - " + *division.Name
	case len(games) > 0 && games[0].Division != nil && *games[0].Division != "":
		return "⚽ Matches - " + *games[0].Division
	default:
		return fmt.Sprintf("⚽ Matches - Division %d", divisionID)
	}
}

func footer(d time.Duration) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{Text: common.FormatResponseTime(d)}
}

func buildEmptyEmbed(title string, d time.Duration) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: "No matches found for this division.",
		Color:       common.ColorEmpty,
		Footer:      footer(d),
	}
}

// winnerIcon marks the side of a finished game that won
func winnerIcon(g sblapi.Game, side int) string {
	if g.Winner == nil {
		return "⚪"
	}
	switch *g.Winner {
	case side:
		return "🏆"
	case sblapi.WinnerDraw:
		return "🤝"
	default:
		return "❌"
	}
}

func renderWeek(w week) string {
	var b strings.Builder
	finished := 0
	for _, g := range w.Games {
		team1, team2 := common.OrPlaceholder(g.Team1), common.OrPlaceholder(g.Team2)
		date := "Not scheduled"
		if g.Date != nil {
			date = common.FormatDateTime(g.Date)
		}

		if g.Finished() {
			finished++
			fmt.Fprintf(&b, "%s **%s** %s - %s **%s** %s\n", winnerIcon(g, sblapi.WinnerTeam1), team1,
				common.IntOrPlaceholder(g.Score1), common.IntOrPlaceholder(g.Score2), team2, winnerIcon(g, sblapi.WinnerTeam2))
			fmt.Fprintf(&b, "📅 %s | match id %d\n\n", date, g.ID)
			continue
		}

		status := "Not set"
		if g.Status != nil && *g.Status != "" {
			status = *g.Status
		}
		fmt.Fprintf(&b, "⚽ **%s** vs **%s**\n", team1, team2)
		fmt.Fprintf(&b, "📅 %s | match id %d | 📊 %s\n\n", date, g.ID, status)
	}

	block := common.Truncate(b.String(), common.WeekBlockLength)
	if !strings.HasSuffix(block, "\n") {
		block += "\n"
	}
	return common.TruncateField(block + fmt.Sprintf("📊 **%d/%d** matches finished", finished, len(w.Games)))
}

func buildMatchesEmbed(title string, games []sblapi.Game, weeks, shown []week, state common.PageState, d time.Duration) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: title,
		Description: fmt.Sprintf("**%d** match(es) over **%d** week(s) | Page **%d**/**%d**",
			len(games), len(weeks), state.CurrentPage, state.TotalPages),
		Color:  common.ColorPrimary,
		Footer: footer(d),
	}

	finished := 0
	for _, g := range games {
		if g.Finished() {
			finished++
		}
	}
	numbers := make([]string, 0, len(weeks))
	for _, w := range weeks {
		if w.Number != 0 {
			numbers = append(numbers, strconv.Itoa(w.Number))
		}
	}

	stats := fmt.Sprintf("📊 **Finished:** %d/%d\n", finished, len(games))
	if pending := len(games) - finished; pending > 0 {
		stats += fmt.Sprintf("⏳ **Upcoming:** %d\n", pending)
	}
	stats += fmt.Sprintf("📅 **Weeks:** %d (%s)", len(numbers), common.NonEmpty(strings.Join(numbers, ", ")))

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "📈 Statistics",
		Value: common.TruncateField(stats),
	})

	for _, w := range shown {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  w.label(),
			Value: renderWeek(w),
		})
	}

	return embed
}

func buildNavigation(divisionID int) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			common.LinkButton("🏆 Back to division", interactions.DivisionDetailsID(divisionID), discordgo.SecondaryButton),
			common.LinkButton("📅 All seasons", interactions.BackToSeasonsID, discordgo.SecondaryButton),
		}},
	}
}

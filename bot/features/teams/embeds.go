package teams

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"sblbot/bot/common"
	"sblbot/bot/interactions"
	"sblbot/sblapi"

	"github.com/bwmarrin/discordgo"
)

func footer(d time.Duration) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{Text: common.FormatResponseTime(d)}
}

func buildEmptyEmbed(d time.Duration) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "👥 SBL Teams",
		Description: "No teams found.",
		Color:       common.ColorEmpty,
		Footer:      footer(d),
	}
}

func record(t sblapi.Team) string {
	return fmt.Sprintf("%dW - %dL - %dD | %d pts",
		common.IntOr(t.Wins, 0), common.IntOr(t.Losses, 0), common.IntOr(t.Draws, 0), common.IntOr(t.Points, 0))
}

func buildTeamsEmbed(teams []sblapi.Team, state common.PageState, d time.Duration) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "👥 SBL Teams",
		Description: fmt.Sprintf("**%d** team(s) found | Page **%d**/**%d**", state.TotalItems, state.CurrentPage, state.TotalPages),
		Color:       common.ColorPrimary,
		Footer:      footer(d),
	}

	for _, t := range teams {
		var b strings.Builder
		if t.Captain != nil && *t.Captain != "" {
			fmt.Fprintf(&b, "👑 **Captain:** %s\n", *t.Captain)
		}
		fmt.Fprintf(&b, "📊 %s", record(t))

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   common.Truncate(fmt.Sprintf("%d. %s", t.ID, t.DisplayName()), common.MaxTitleLength),
			Value:  common.TruncateField(b.String()),
			Inline: true,
		})
	}

	return embed
}

// buildTeamsComponents lays out pagination, one detail button per team,
// navigation and a select menu of the page's teams
func buildTeamsComponents(teams []sblapi.Team, state common.PageState) []discordgo.MessageComponent {
	components := common.PaginationRow(state, common.PaginationOptions{
		PageID:        interactions.TeamsPageID,
		InfoID:        interactions.TeamsPageInfoID,
		WithFirstLast: true,
	})

	var details []discordgo.MessageComponent
	for _, t := range teams {
		details = append(details, common.LinkButton("👥 "+t.DisplayName(), interactions.TeamDetailsID(t.ID), discordgo.SecondaryButton))
	}
	components = append(components, common.ButtonRows(details)...)

	components = append(components, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		common.LinkButton("📅 All seasons", interactions.BackToSeasonsID, discordgo.SecondaryButton),
		common.LinkButton("🔄 Refresh", interactions.TeamsPageID(state.CurrentPage), discordgo.PrimaryButton),
	}})

	if len(teams) == 0 || len(components) >= common.MaxActionRows {
		return components
	}

	options := make([]discordgo.SelectMenuOption, 0, len(teams))
	for _, t := range teams {
		if len(options) == common.MaxSelectOptions {
			break
		}
		options = append(options, discordgo.SelectMenuOption{
			Label:       common.Truncate(t.DisplayName(), common.MaxOptionLabelLength),
			Value:       interactions.TeamDetailsID(t.ID),
			Description: common.Truncate(record(t), common.MaxOptionLabelLength),
		})
	}

	return append(components, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    interactions.TeamSelectMenuID,
			Placeholder: "Select a team",
			Options:     options,
		},
	}})
}

// sortedPlayers orders players by name, unnamed last
func sortedPlayers(players []sblapi.Player) []sblapi.Player {
	out := make([]sblapi.Player, len(players))
	copy(out, players)
	sort.SliceStable(out, func(i, j int) bool {
		ni, nj := common.OrPlaceholder(out[i].Name), common.OrPlaceholder(out[j].Name)
		if (out[i].Name == nil) != (out[j].Name == nil) {
			return out[j].Name == nil
		}
		return strings.ToLower(ni) < strings.ToLower(nj)
	})
	return out
}

func renderPlayers(players []sblapi.Player) string {
	if len(players) == 0 {
		return "No players registered"
	}

	sorted := sortedPlayers(players)
	var b strings.Builder
	for i, p := range sorted {
		if i == common.PlayersShown {
			fmt.Fprintf(&b, "... and %d more", len(sorted)-common.PlayersShown)
			break
		}
		marker := "•"
		if p.Captain {
			marker = "👑"
		}
		fmt.Fprintf(&b, "%s %s", marker, common.OrPlaceholder(p.Name))
		if p.Position != nil && *p.Position != "" {
			fmt.Fprintf(&b, " (%s)", *p.Position)
		}
		if p.Goals != nil || p.Assists != nil {
			fmt.Fprintf(&b, " | ⚽ %d 🎯 %d", common.IntOr(p.Goals, 0), common.IntOr(p.Assists, 0))
		}
		b.WriteString("\n")
	}
	return common.TruncateField(strings.TrimSuffix(b.String(), "\n"))
}

func buildTeamEmbed(t sblapi.Team, players []sblapi.Player, d time.Duration) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  common.Truncate("👥 "+t.DisplayName(), common.MaxTitleLength),
		Color:  common.ColorPrimary,
		Footer: footer(d),
	}
	if t.Description != nil && *t.Description != "" {
		embed.Description = common.Truncate(*t.Description, common.MaxDescriptionLength)
	}

	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{Name: "🆔 ID", Value: fmt.Sprintf("%d", t.ID), Inline: true},
		&discordgo.MessageEmbedField{Name: "👑 Captain", Value: common.TruncateField(common.OrPlaceholder(t.Captain)), Inline: true},
		&discordgo.MessageEmbedField{Name: "📅 Founded", Value: common.TruncateField(common.FormatDate(t.Founded)), Inline: true},
		&discordgo.MessageEmbedField{Name: "📊 Record", Value: record(t), Inline: true},
	)
	if t.Rank != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "🏅 Rank",
			Value:  fmt.Sprintf("#%d", *t.Rank),
			Inline: true,
		})
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  fmt.Sprintf("🧑‍🤝‍🧑 Players (%d)", len(players)),
		Value: renderPlayers(players),
	})

	return embed
}

func buildTeamComponents(t sblapi.Team) []discordgo.MessageComponent {
	var buttons []discordgo.MessageComponent
	if t.Division.Valid() {
		buttons = append(buttons, common.LinkButton("🏟️ Division", interactions.DivisionDetailsID(int(*t.Division)), discordgo.PrimaryButton))
	}
	if t.Season.Valid() {
		buttons = append(buttons, common.LinkButton("🏆 Season", interactions.SeasonDetailsID(int(*t.Season)), discordgo.SecondaryButton))
	}
	buttons = append(buttons,
		common.LinkButton("👥 All teams", interactions.TeamsPageID(1), discordgo.SecondaryButton),
		common.LinkButton("📅 All seasons", interactions.BackToSeasonsID, discordgo.SecondaryButton),
	)
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}}
}

package proposals

import (
	"fmt"
	"strings"
	"time"

	"sblbot/bot/common"
	"sblbot/bot/interactions"
	"sblbot/sblapi"

	"github.com/bwmarrin/discordgo"
)

// ButtonsShown caps the received proposals that get action buttons
const ButtonsShown = 4

func formatKickoff(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("Monday 02/01/2006 at 15h04")
}

func formatProposedDate(s *string, loc *time.Location) string {
	if s == nil {
		return common.Placeholder
	}
	t, ok := common.ParseDate(*s)
	if !ok {
		return common.TruncateField(*s)
	}
	return formatKickoff(t, loc)
}

func fixture(g sblapi.ProposalGame) string {
	return fmt.Sprintf("%s vs %s", orUnknown(g.Team1), orUnknown(g.Team2))
}

func orUnknown(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "?"
	}
	return *s
}

func partyName(p *sblapi.ProposalParty) string {
	if p == nil || p.DiscordUsername == nil || *p.DiscordUsername == "" {
		return "Unknown"
	}
	return *p.DiscordUsername
}

func buildProposalSentEmbed(p sblapi.Proposal, date time.Time, loc *time.Location) *discordgo.MessageEmbed {
	embed := common.SuccessEmbed("Proposal sent", fmt.Sprintf("Your proposal for **%s** has been sent.", fixture(p.Game)))
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "📅 Proposed date", Value: formatKickoff(date, loc), Inline: true},
		{Name: "🆔 Proposal", Value: fmt.Sprintf("%d", p.ID), Inline: true},
	}
	embed.Timestamp = time.Now().Format(time.RFC3339)
	return embed
}

func buildProposalReceivedDM(p sblapi.Proposal, proposer string, date time.Time, loc *time.Location) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "📨 New match proposal",
		Description: fmt.Sprintf("**%s** proposes a date for **%s**", proposer, fixture(p.Game)),
		Color:       common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📅 Proposed date", Value: formatKickoff(date, loc), Inline: true},
			{Name: "📆 Week", Value: common.IntOrPlaceholder(p.Game.Week), Inline: true},
			{Name: "🆔 Proposal", Value: fmt.Sprintf("%d", p.ID), Inline: true},
			{Name: "⏰ Kickoff", Value: common.FormatDiscordTimestamp(date, "R"), Inline: true},
			{Name: "Actions", Value: "Use `/accept` or `/reject` with the proposal ID, or `/propose` to counter-propose."},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func buildAnsweredEmbed(p sblapi.Proposal, status sblapi.ProposalStatus, loc *time.Location) *discordgo.MessageEmbed {
	if status == sblapi.ProposalAccepted {
		embed := common.SuccessEmbed("Proposal accepted", fmt.Sprintf("**%s** is now scheduled.", fixture(p.Game)))
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "📅 Date", Value: formatProposedDate(p.ProposedDate, loc), Inline: true},
		}
		return embed
	}
	return &discordgo.MessageEmbed{
		Title:       "🚫 Proposal rejected",
		Description: fmt.Sprintf("You rejected the proposal for **%s**.", fixture(p.Game)),
		Color:       common.ColorWarning,
	}
}

func buildAnswerDM(p sblapi.Proposal, status sblapi.ProposalStatus, responder string, loc *time.Location) *discordgo.MessageEmbed {
	if status == sblapi.ProposalAccepted {
		return &discordgo.MessageEmbed{
			Title:       "✅ Proposal accepted!",
			Description: fmt.Sprintf("**%s** accepted your proposal for **%s**", responder, fixture(p.Game)),
			Color:       common.ColorSuccess,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "📅 Confirmed date", Value: formatProposedDate(p.ProposedDate, loc), Inline: true},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}
	}
	return &discordgo.MessageEmbed{
		Title:       "❌ Proposal rejected",
		Description: fmt.Sprintf("**%s** rejected your proposal for **%s**. Use `/propose` to suggest another date.", responder, fixture(p.Game)),
		Color:       common.ColorDanger,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

func listProposals(proposals []sblapi.Proposal, loc *time.Location, counterpart func(sblapi.Proposal) string) string {
	lines := make([]string, 0, len(proposals))
	for _, p := range proposals {
		lines = append(lines, fmt.Sprintf("**#%d** - %s\n   %s - %s", p.ID, fixture(p.Game), formatProposedDate(p.ProposedDate, loc), counterpart(p)))
	}
	return common.TruncateField(strings.Join(lines, "\n\n"))
}

func buildPendingEmbed(pending sblapi.PendingProposals, loc *time.Location, d time.Duration) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  "📋 Match proposals",
		Color:  common.ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{Text: common.FormatResponseTime(d)},
	}

	if len(pending.Received) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("📥 Received (%d)", len(pending.Received)),
			Value: listProposals(pending.Received, loc, func(p sblapi.Proposal) string {
				return "from " + partyName(p.Proposer)
			}),
		})
	} else {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "📥 Received", Value: "*No pending proposals*"})
	}

	if len(pending.Sent) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("📤 Sent (%d)", len(pending.Sent)),
			Value: listProposals(pending.Sent, loc, func(p sblapi.Proposal) string {
				return "to " + partyName(p.Receiver)
			}),
		})
	} else {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "📤 Sent", Value: "*No proposals sent*"})
	}

	if len(pending.Received) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Actions",
			Value: "`/accept <id>` accept a proposal\n`/reject <id>` reject a proposal\n`/propose <match> <day> <time>` counter-propose",
		})
	}
	return embed
}

// buildPendingComponents gives each of the first received proposals an accept/reject row
func buildPendingComponents(received []sblapi.Proposal) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	for i, p := range received {
		if i == ButtonsShown {
			break
		}
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			common.LinkButton(fmt.Sprintf("✅ Accept #%d", p.ID), interactions.ProposalAcceptID(p.ID), discordgo.SuccessButton),
			common.LinkButton(fmt.Sprintf("❌ Reject #%d", p.ID), interactions.ProposalRejectID(p.ID), discordgo.DangerButton),
		}})
	}
	return rows
}

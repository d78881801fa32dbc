package status

import (
	"fmt"
	"strconv"
	"strings"

	"sblbot/bot/common"
	"sblbot/sblapi"

	"github.com/bwmarrin/discordgo"
)

func buildAPIStatusEmbed(h sblapi.Health) *discordgo.MessageEmbed {
	if !h.Online {
		message := "Could not reach the SBL API."
		if h.Failure != nil {
			message = h.Failure.UserMessage()
		}
		fields := []*discordgo.MessageEmbedField{
			{Name: "Status", Value: "❌ Offline", Inline: true},
		}
		if h.HTTPStatus > 0 {
			fields = append(fields, &discordgo.MessageEmbedField{Name: "Response code", Value: strconv.Itoa(h.HTTPStatus), Inline: true})
		}
		fields = append(fields,
			&discordgo.MessageEmbedField{Name: "Error", Value: common.TruncateField(message)},
			&discordgo.MessageEmbedField{Name: "URL", Value: common.TruncateField(common.NonEmpty(h.URL))},
		)
		return &discordgo.MessageEmbed{
			Title:  "🔌 SBL API status",
			Color:  common.ColorError,
			Fields: fields,
		}
	}

	embed := &discordgo.MessageEmbed{
		Title: "🔌 SBL API status",
		Color: common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Status", Value: "✅ Online", Inline: true},
			{Name: "Response code", Value: strconv.Itoa(h.HTTPStatus), Inline: true},
			{Name: "Response time", Value: fmt.Sprintf("%dms", h.ResponseTime.Milliseconds()), Inline: true},
			{Name: "URL", Value: common.TruncateField(common.NonEmpty(h.URL))},
		},
	}
	if info := apiInfo(h.Info); info != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "API information", Value: common.TruncateField(info)})
	}
	return embed
}

func apiInfo(info *sblapi.APIInfo) string {
	if info == nil {
		return ""
	}
	var lines []string
	if info.Name != nil {
		lines = append(lines, "**Name:** "+*info.Name)
	}
	if info.Version != nil {
		lines = append(lines, "**Version:** "+*info.Version)
	}
	if info.Status != nil {
		lines = append(lines, "**Status:** "+*info.Status)
	}
	return strings.Join(lines, "\n")
}

var verificationLevels = map[discordgo.VerificationLevel]string{
	discordgo.VerificationLevelNone:     "None",
	discordgo.VerificationLevelLow:      "Low",
	discordgo.VerificationLevelMedium:   "Medium",
	discordgo.VerificationLevelHigh:     "High",
	discordgo.VerificationLevelVeryHigh: "Very high",
}

func memberCount(g *discordgo.Guild) string {
	switch {
	case g.MemberCount > 0:
		return strconv.Itoa(g.MemberCount)
	case g.ApproximateMemberCount > 0:
		return strconv.Itoa(g.ApproximateMemberCount)
	default:
		return common.Placeholder
	}
}

func buildServerInfoEmbed(g *discordgo.Guild) *discordgo.MessageEmbed {
	created := common.Placeholder
	if t, ok := common.SnowflakeTime(g.ID); ok {
		created = t.In(common.DisplayLocation()).Format("Mon 02 Jan 2006")
	}
	owner := common.Placeholder
	if g.OwnerID != "" {
		owner = common.UserMention(g.OwnerID)
	}
	level, ok := verificationLevels[g.VerificationLevel]
	if !ok {
		level = strconv.Itoa(int(g.VerificationLevel))
	}

	embed := &discordgo.MessageEmbed{
		Title: common.Truncate("🏟️ Server information: "+common.NonEmpty(g.Name), common.MaxTitleLength),
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Server ID", Value: g.ID, Inline: true},
			{Name: "Owner", Value: owner, Inline: true},
			{Name: "Members", Value: memberCount(g), Inline: true},
			{Name: "Created", Value: created, Inline: true},
			{Name: "Locale", Value: common.NonEmpty(string(g.PreferredLocale)), Inline: true},
			{Name: "Verification level", Value: level, Inline: true},
		},
	}
	if g.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: g.IconURL("256")}
	}
	return embed
}

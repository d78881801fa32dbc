package interactions

import "github.com/bwmarrin/discordgo"

// View is what a handler renders. The router turns it into a message edit.
type View struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	Files      []*discordgo.File
}

// EmbedView is a single embed with optional component rows
func EmbedView(embed *discordgo.MessageEmbed, components ...discordgo.MessageComponent) *View {
	return &View{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	}
}

func (v *View) webhookEdit() *discordgo.WebhookEdit {
	content := v.Content
	embeds := v.Embeds
	if embeds == nil {
		embeds = []*discordgo.MessageEmbed{}
	}
	components := v.Components
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	return &discordgo.WebhookEdit{
		Content:    &content,
		Embeds:     &embeds,
		Components: &components,
		Files:      v.Files,
	}
}

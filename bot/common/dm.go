package common

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// DirectMessenger is the part of a discordgo session needed to DM a user
type DirectMessenger interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// SendDirectEmbed opens a DM channel with userID and posts embed in it
func SendDirectEmbed(dm DirectMessenger, userID string, embed *discordgo.MessageEmbed) error {
	channel, err := dm.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}
	if _, err := dm.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
		return fmt.Errorf("failed to send DM: %w", err)
	}
	return nil
}

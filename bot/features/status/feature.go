package status

import (
	"sblbot/bot/interactions"
	"sblbot/sblapi"

	"github.com/bwmarrin/discordgo"
)

// GuildSource resolves a guild. *discordgo.Session satisfies it.
type GuildSource interface {
	Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
}

// Feature reports on the upstream API and the current server
type Feature struct {
	api    *sblapi.Client
	guilds GuildSource
}

// NewFeature creates a new status feature instance
func NewFeature(api *sblapi.Client, guilds GuildSource) *Feature {
	return &Feature{api: api, guilds: guilds}
}

// Commands returns apistatus and serverinfo
func (f *Feature) Commands() []interactions.Descriptor {
	return []interactions.Descriptor{
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        interactions.CommandAPIStatus,
				Description: "Check whether the SBL API is reachable",
			},
			Handler: f.handleAPIStatus,
		},
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        interactions.CommandServerInfo,
				Description: "Show information about this server",
			},
			Handler: f.handleServerInfo,
		},
	}
}

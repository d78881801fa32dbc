package teams

import (
	"sblbot/bot/interactions"
	"sblbot/sblapi"

	"github.com/bwmarrin/discordgo"
)

var minOne = 1.0

// Feature browses the teams of the league
type Feature struct {
	api *sblapi.Client
}

// NewFeature creates a new teams feature instance
func NewFeature(api *sblapi.Client) *Feature {
	return &Feature{api: api}
}

// Commands returns the teams and team commands
func (f *Feature) Commands() []interactions.Descriptor {
	return []interactions.Descriptor{
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        interactions.CommandTeams,
				Description: "List the teams",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        interactions.ArgPage,
						Description: "Page to display",
						MinValue:    &minOne,
					},
				},
			},
			Handler:   f.handleTeams,
			Ephemeral: true,
		},
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        interactions.CommandTeam,
				Description: "Show the details of a team",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        interactions.ArgID,
						Description: "Team ID",
						Required:    true,
						MinValue:    &minOne,
					},
				},
			},
			Handler:   f.handleTeam,
			Ephemeral: true,
		},
	}
}

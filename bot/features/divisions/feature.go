package divisions

import (
	"sblbot/bot/interactions"
	"sblbot/sblapi"

	"github.com/bwmarrin/discordgo"
)

var minOne = 1.0

// Feature browses divisions and their standings
type Feature struct {
	api *sblapi.Client
}

// NewFeature creates a new divisions feature instance
func NewFeature(api *sblapi.Client) *Feature {
	return &Feature{api: api}
}

// Commands returns the divisions and division commands
func (f *Feature) Commands() []interactions.Descriptor {
	return []interactions.Descriptor{
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        interactions.CommandDivisions,
				Description: "List the divisions of a season",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        interactions.ArgSeason,
						Description: "Season ID",
						Required:    true,
						MinValue:    &minOne,
					},
				},
			},
			Handler:   f.handleDivisions,
			Ephemeral: true,
		},
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        interactions.CommandDivision,
				Description: "Show a division with its standings and results",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        interactions.ArgID,
						Description: "Division ID",
						Required:    true,
						MinValue:    &minOne,
					},
				},
			},
			Handler:   f.handleDivision,
			Ephemeral: true,
		},
	}
}

package matches

import (
	"sblbot/bot/interactions"
	"sblbot/sblapi"

	"github.com/bwmarrin/discordgo"
)

var minOne = 1.0

// Feature lists the fixtures of a division week by week
type Feature struct {
	api *sblapi.Client
}

// NewFeature creates a new matches feature instance
func NewFeature(api *sblapi.Client) *Feature {
	return &Feature{api: api}
}

// Commands returns the matches command
func (f *Feature) Commands() []interactions.Descriptor {
	return []interactions.Descriptor{
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        interactions.CommandMatches,
				Description: "Show the matches of a division",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        interactions.ArgDivision,
						Description: "Division ID",
						Required:    true,
						MinValue:    &minOne,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        interactions.ArgPage,
						Description: "Page to display",
						MinValue:    &minOne,
					},
				},
			},
			Handler:   f.handleMatches,
			Ephemeral: true,
		},
	}
}

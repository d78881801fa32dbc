package seasons

import (
	"time"

	"sblbot/bot/interactions"
	"sblbot/sblapi"

	"github.com/bwmarrin/discordgo"
)

var minOne = 1.0

// Feature browses league seasons
type Feature struct {
	api *sblapi.Client
	now func() time.Time
}

// NewFeature creates a new seasons feature instance
func NewFeature(api *sblapi.Client) *Feature {
	return &Feature{
		api: api,
		now: time.Now,
	}
}

// Commands returns the seasons and season commands
func (f *Feature) Commands() []interactions.Descriptor {
	return []interactions.Descriptor{
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        interactions.CommandSeasons,
				Description: "List SBL seasons",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        interactions.ArgPage,
						Description: "Page to display",
						MinValue:    &minOne,
					},
				},
			},
			Handler:   f.handleSeasons,
			Ephemeral: true,
		},
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        interactions.CommandSeason,
				Description: "Show the details of a season",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        interactions.ArgID,
						Description: "Season ID",
						Required:    true,
						MinValue:    &minOne,
					},
				},
			},
			Handler:   f.handleSeason,
			Ephemeral: true,
		},
	}
}

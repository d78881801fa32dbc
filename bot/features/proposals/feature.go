package proposals

import (
	"time"

	"sblbot/bot/common"
	"sblbot/bot/interactions"
	"sblbot/domain/interfaces"
	"sblbot/events"
	"sblbot/sblapi"

	"github.com/bwmarrin/discordgo"
)

var minOne = 1.0

// Feature lets team captains agree on a date for their games
type Feature struct {
	api       *sblapi.Client
	settings  interfaces.GuildSettingsService
	dm        common.DirectMessenger
	publisher events.Publisher
	now       func() time.Time
	loc       *time.Location
}

// NewFeature creates a new proposals feature instance. dm and publisher may be nil.
func NewFeature(api *sblapi.Client, settings interfaces.GuildSettingsService, dm common.DirectMessenger, publisher events.Publisher) *Feature {
	return &Feature{
		api:       api,
		settings:  settings,
		dm:        dm,
		publisher: publisher,
		now:       time.Now,
		loc:       common.DisplayLocation(),
	}
}

func dayChoices() []*discordgo.ApplicationCommandOptionChoice {
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, d := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday} {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: d.String(), Value: d.String()})
	}
	return choices
}

func proposalIDOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        interactions.ArgID,
		Description: "Proposal ID",
		Required:    true,
		MinValue:    &minOne,
	}
}

// Commands returns propose, proposals, accept and reject
func (f *Feature) Commands() []interactions.Descriptor {
	return []interactions.Descriptor{
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        interactions.CommandPropose,
				Description: "Propose a date for a match",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        interactions.ArgMatch,
						Description: "Match ID",
						Required:    true,
						MinValue:    &minOne,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        interactions.ArgDay,
						Description: "Day of the match",
						Required:    true,
						Choices:     dayChoices(),
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        interactions.ArgTime,
						Description: "Kickoff time (e.g. 21h, 20h30, 21:00)",
						Required:    true,
					},
				},
			},
			Handler:   f.handlePropose,
			Ephemeral: true,
		},
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        interactions.CommandProposals,
				Description: "Show your pending match proposals",
			},
			Handler:   f.handleProposals,
			Ephemeral: true,
		},
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        interactions.CommandAccept,
				Description: "Accept a match proposal",
				Options:     []*discordgo.ApplicationCommandOption{proposalIDOption()},
			},
			Handler:   f.handleAccept,
			Ephemeral: true,
		},
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        interactions.CommandReject,
				Description: "Reject a match proposal",
				Options:     []*discordgo.ApplicationCommandOption{proposalIDOption()},
			},
			Handler:   f.handleReject,
			Ephemeral: true,
		},
	}
}

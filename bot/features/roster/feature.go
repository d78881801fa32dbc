package roster

import (
	"sblbot/bot/interactions"
	"sblbot/sblapi"

	"github.com/bwmarrin/discordgo"
)

var minOne = 1.0

// Feature manages team rosters on behalf of the calling user
type Feature struct {
	api *sblapi.Client
}

// NewFeature creates a new roster feature instance
func NewFeature(api *sblapi.Client) *Feature {
	return &Feature{api: api}
}

func teamOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        interactions.ArgTeam,
		Description: description,
		Required:    true,
		MinValue:    &minOne,
	}
}

func userOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        interactions.ArgUser,
		Description: description,
		Required:    true,
	}
}

// Commands returns the roster management commands
func (f *Feature) Commands() []interactions.Descriptor {
	return []interactions.Descriptor{
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        interactions.CommandCreateTeam,
				Description: "Create a new team with you as captain",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        interactions.ArgName,
						Description: "Team name",
						Required:    true,
						MaxLength:   50,
					},
				},
			},
			Handler:   f.handleCreateTeam,
			Ephemeral: true,
		},
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        interactions.CommandAddMember,
				Description: "Add a member to your team (captain only)",
				Options:     []*discordgo.ApplicationCommandOption{teamOption("Team ID"), userOption("Player to add")},
			},
			Handler:   f.handleAddMember,
			Ephemeral: true,
		},
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        interactions.CommandRemove,
				Description: "Remove a member from your team (captain only)",
				Options:     []*discordgo.ApplicationCommandOption{teamOption("Team ID"), userOption("Player to remove")},
			},
			Handler:   f.handleRemoveMember,
			Ephemeral: true,
		},
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        interactions.CommandLeaveTeam,
				Description: "Leave a team",
				Options:     []*discordgo.ApplicationCommandOption{teamOption("ID of the team to leave")},
			},
			Handler:   f.handleLeaveTeam,
			Ephemeral: true,
		},
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        interactions.CommandChangeRole,
				Description: "Change the role of a team member (captain only)",
				Options: []*discordgo.ApplicationCommandOption{
					teamOption("Team ID"),
					userOption("Member whose role changes"),
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        interactions.ArgRole,
						Description: "New role",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Captain", Value: sblapi.RoleCaptain},
							{Name: "Member", Value: sblapi.RoleMember},
						},
					},
				},
			},
			Handler:   f.handleChangeRole,
			Ephemeral: true,
		},
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        interactions.CommandMembers,
				Description: "Show the members of a team",
				Options:     []*discordgo.ApplicationCommandOption{teamOption("Team ID")},
			},
			Handler:   f.handleMembers,
			Ephemeral: true,
		},
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        interactions.CommandMyTeams,
				Description: "List the teams you belong to",
			},
			Handler:   f.handleMyTeams,
			Ephemeral: true,
		},
	}
}

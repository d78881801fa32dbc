package settings

import (
	"context"
	"time"

	"sblbot/application"
	"sblbot/bot/common"
	"sblbot/bot/interactions"
	"sblbot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

// Subcommands of /config
const (
	SubMatchesChannel   = "matches-channel"
	SubStandingsChannel = "standings-channel"
	SubDeadlineDay      = "deadline-day"
	SubDefaultSchedule  = "default-schedule"
	SubMatchManagerRole = "match-manager-role"
	SubList             = "list"
	SubTestMessages     = "test-messages"
	SubRunDeadlineCheck = "run-deadline-check"
)

// WeeklyRunner triggers the weekly announcement on demand
type WeeklyRunner interface {
	RunOnce(ctx context.Context) (*application.WeeklyReport, error)
}

// DeadlineRunner triggers the deadline check of one guild on demand
type DeadlineRunner interface {
	RunNow(ctx context.Context, guildID int64) (*application.DeadlineSummary, error)
}

// Feature handles guild settings management
type Feature struct {
	settings interfaces.GuildSettingsService
	weekly   WeeklyRunner
	deadline DeadlineRunner
	loc      *time.Location
}

// NewFeature creates a new settings feature instance
func NewFeature(settings interfaces.GuildSettingsService, weekly WeeklyRunner, deadline DeadlineRunner) *Feature {
	return &Feature{
		settings: settings,
		weekly:   weekly,
		deadline: deadline,
		loc:      common.DisplayLocation(),
	}
}

var adminOnly int64 = discordgo.PermissionAdministrator

func weekdayChoices(days ...time.Weekday) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(days))
	for _, d := range days {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: d.String(), Value: d.String()})
	}
	return choices
}

func channelOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionChannel,
		Name:         interactions.ArgChannel,
		Description:  description,
		Required:     true,
		ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews},
	}
}

// Commands returns the admin config command
func (f *Feature) Commands() []interactions.Descriptor {
	workdays := weekdayChoices(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
	everyDay := weekdayChoices(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday)

	return []interactions.Descriptor{
		{
			Definition: &discordgo.ApplicationCommand{
				Name:                     interactions.CommandConfig,
				Description:              "Configure the bot for this server (admin)",
				DefaultMemberPermissions: &adminOnly,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        SubMatchesChannel,
						Description: "Channel for the weekly fixtures",
						Options:     []*discordgo.ApplicationCommandOption{channelOption("Fixtures channel")},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        SubStandingsChannel,
						Description: "Channel for the weekly standings",
						Options:     []*discordgo.ApplicationCommandOption{channelOption("Standings channel")},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        SubDeadlineDay,
						Description: "Last day to schedule the games of the week",
						Options: []*discordgo.ApplicationCommandOption{
							{
								Type:        discordgo.ApplicationCommandOptionString,
								Name:        interactions.ArgDay,
								Description: "Day of the week",
								Required:    true,
								Choices:     workdays,
							},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        SubDefaultSchedule,
						Description: "Slot given to games still unscheduled after the deadline",
						Options: []*discordgo.ApplicationCommandOption{
							{
								Type:        discordgo.ApplicationCommandOptionString,
								Name:        interactions.ArgDay,
								Description: "Day of the week",
								Required:    true,
								Choices:     everyDay,
							},
							{
								Type:        discordgo.ApplicationCommandOptionString,
								Name:        interactions.ArgTime,
								Description: "Time (HH:MM)",
								Required:    true,
							},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        SubMatchManagerRole,
						Description: "Role required to propose, accept or reject matches",
						Options: []*discordgo.ApplicationCommandOption{
							{
								Type:        discordgo.ApplicationCommandOptionRole,
								Name:        interactions.ArgRole,
								Description: "Required role (leave empty to allow everyone)",
							},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        SubList,
						Description: "Show the current configuration",
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        SubTestMessages,
						Description: "Send the weekly messages now",
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        SubRunDeadlineCheck,
						Description: "Schedule this week's unscheduled games now",
					},
				},
			},
			Handler:   f.handleConfig,
			Ephemeral: true,
		},
	}
}

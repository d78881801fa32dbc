package settings

import (
	"context"
	"errors"
	"fmt"

	"sblbot/bot/common"
	"sblbot/bot/features/announcements"
	"sblbot/bot/interactions"
	"sblbot/domain/entities"

	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleConfig(ctx context.Context, req *interactions.Request) (*interactions.View, error) {
	guildID, ok := req.GuildSnowflake()
	if !ok {
		return nil, common.NewUserError("This command can only be used in a server.", "config outside a guild")
	}
	if !req.IsAdmin {
		return nil, common.NewUserError("You need administrator permissions to use this command.", "config by non-admin")
	}

	switch sub := req.Intent.Subcommand(); sub {
	case SubMatchesChannel:
		return f.handleChannel(ctx, req, guildID, f.settings.UpdateMatchesChannel, "Weekly fixtures will be posted in %s")
	case SubStandingsChannel:
		return f.handleChannel(ctx, req, guildID, f.settings.UpdateStandingsChannel, "Weekly standings will be posted in %s")
	case SubDeadlineDay:
		return f.handleDeadlineDay(ctx, req, guildID)
	case SubDefaultSchedule:
		return f.handleDefaultSchedule(ctx, req, guildID)
	case SubMatchManagerRole:
		return f.handleMatchManagerRole(ctx, req, guildID)
	case SubList:
		return f.handleList(ctx, guildID)
	case SubTestMessages:
		return f.handleTestMessages(ctx, guildID)
	case SubRunDeadlineCheck:
		return f.handleRunDeadlineCheck(ctx, guildID)
	default:
		return nil, common.NewUserError("Unknown config option.", fmt.Sprintf("unknown config subcommand %q", sub))
	}
}

func snowflakeArg(req *interactions.Request, name string) (*int64, error) {
	raw, ok := req.Intent.Snowflake(name)
	if !ok || raw == "" {
		return nil, nil
	}
	id, err := common.ParseSnowflake(raw)
	if err != nil {
		return nil, common.WrapUserError(err, "Invalid "+name+" selected.", "failed to parse "+name+" ID")
	}
	return &id, nil
}

func (f *Feature) handleChannel(
	ctx context.Context,
	req *interactions.Request,
	guildID int64,
	update func(ctx context.Context, guildID int64, channelID *int64) error,
	message string,
) (*interactions.View, error) {
	channelID, err := snowflakeArg(req, interactions.ArgChannel)
	if err != nil {
		return nil, err
	}
	if channelID == nil {
		return nil, common.NewUserError("Pick a channel.", "config channel without a channel")
	}

	if err := update(ctx, guildID, channelID); err != nil {
		return nil, common.NewSystemError(err, "failed to update announcement channel")
	}

	log.WithFields(log.Fields{
		"guildID":    guildID,
		"subcommand": req.Intent.Subcommand(),
		"channelID":  *channelID,
	}).Info("Updated announcement channel")
	return interactions.EmbedView(common.SuccessEmbed("Configuration updated", fmt.Sprintf(message, common.ChannelMention(*channelID)))), nil
}

func (f *Feature) handleDeadlineDay(ctx context.Context, req *interactions.Request, guildID int64) (*interactions.View, error) {
	name, _ := req.Intent.String(interactions.ArgDay)
	day, err := entities.ParseWeekday(name)
	if err == nil {
		err = entities.ValidateDeadlineDay(day)
	}
	if err != nil {
		return nil, common.WrapUserError(err, "The deadline must be a day between Monday and Friday.", "invalid deadline day")
	}

	if err := f.settings.UpdateDeadlineDay(ctx, guildID, day); err != nil {
		if errors.Is(err, entities.ErrInvalidDeadlineDay) {
			return nil, common.WrapUserError(err, "The deadline must be a day between Monday and Friday.", "invalid deadline day")
		}
		return nil, common.NewSystemError(err, "failed to update deadline day")
	}

	check := (day + 1) % 7
	return interactions.EmbedView(common.SuccessEmbed("Configuration updated",
		fmt.Sprintf("The scheduling deadline is now **%s**. Games still unscheduled get the default slot on %s at 00:00.", day, check))), nil
}

func (f *Feature) handleDefaultSchedule(ctx context.Context, req *interactions.Request, guildID int64) (*interactions.View, error) {
	name, _ := req.Intent.String(interactions.ArgDay)
	day, err := entities.ParseWeekday(name)
	if err != nil {
		return nil, common.WrapUserError(err, "Unknown day. Pick a day from the list.", "invalid default match day")
	}
	raw, _ := req.Intent.String(interactions.ArgTime)
	clock, err := entities.ParseClock(raw)
	if err != nil {
		return nil, common.WrapUserError(err, "Invalid time format. Use HH:MM (e.g. 21:00).", "invalid default match time")
	}

	if err := f.settings.UpdateDefaultSchedule(ctx, guildID, day, clock.String()); err != nil {
		return nil, common.NewSystemError(err, "failed to update default schedule")
	}

	return interactions.EmbedView(common.SuccessEmbed("Configuration updated",
		fmt.Sprintf("The default match slot is now **%s at %s**.", day, clock))), nil
}

func (f *Feature) handleMatchManagerRole(ctx context.Context, req *interactions.Request, guildID int64) (*interactions.View, error) {
	roleID, err := snowflakeArg(req, interactions.ArgRole)
	if err != nil {
		return nil, err
	}

	if err := f.settings.UpdateMatchManagerRole(ctx, guildID, roleID); err != nil {
		return nil, common.NewSystemError(err, "failed to update match manager role")
	}

	message := "Match commands are now open to everyone."
	if roleID != nil {
		message = fmt.Sprintf("Match commands now require the %s role.", common.RoleMention(*roleID))
	}
	return interactions.EmbedView(common.SuccessEmbed("Configuration updated", message)), nil
}

func (f *Feature) handleList(ctx context.Context, guildID int64) (*interactions.View, error) {
	settings, err := f.settings.GetOrCreateSettings(ctx, guildID)
	if err != nil {
		return nil, common.NewSystemError(err, "failed to get guild settings")
	}
	return interactions.EmbedView(buildSettingsEmbed(settings)), nil
}

func (f *Feature) handleTestMessages(ctx context.Context, guildID int64) (*interactions.View, error) {
	settings, err := f.settings.GetOrCreateSettings(ctx, guildID)
	if err != nil {
		return nil, common.NewSystemError(err, "failed to get guild settings")
	}
	if !settings.HasAnnouncementChannel() {
		return nil, common.NewUserError(
			"No channel is configured. Use `/config matches-channel` and `/config standings-channel` first.",
			"test-messages without announcement channels",
		)
	}
	if f.weekly == nil {
		return nil, common.NewUserError("The weekly announcement is disabled.", "weekly announcement worker not wired")
	}

	report, err := f.weekly.RunOnce(ctx)
	if err != nil {
		return nil, common.WrapUserError(err, "Failed to send the weekly messages: "+userCopy(err), "weekly announcement on demand failed")
	}
	return interactions.EmbedView(buildWeeklyReportEmbed(report)), nil
}

func (f *Feature) handleRunDeadlineCheck(ctx context.Context, guildID int64) (*interactions.View, error) {
	if f.deadline == nil {
		return nil, common.NewUserError("The deadline check is disabled.", "deadline check worker not wired")
	}

	summary, err := f.deadline.RunNow(ctx, guildID)
	if err != nil {
		return nil, common.WrapUserError(err, "The deadline check failed: "+userCopy(err), "deadline check on demand failed")
	}
	return interactions.EmbedView(announcements.BuildDeadlineSummaryEmbed(summary, f.loc)), nil
}

package status

import (
	"context"

	"sblbot/bot/common"
	"sblbot/bot/interactions"

	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleAPIStatus(ctx context.Context, _ *interactions.Request) (*interactions.View, error) {
	health := f.api.HealthCheck(ctx)

	entry := log.WithFields(log.Fields{
		"url":        health.URL,
		"online":     health.Online,
		"httpStatus": health.HTTPStatus,
		"latencyMs":  health.ResponseTime.Milliseconds(),
	})
	if health.Failure != nil {
		entry.WithField("reason", health.Failure.Reason).Warn("SBL API health check failed")
	} else {
		entry.Debug("SBL API health check")
	}

	return interactions.EmbedView(buildAPIStatusEmbed(health)), nil
}

func (f *Feature) handleServerInfo(_ context.Context, req *interactions.Request) (*interactions.View, error) {
	if req.GuildID == "" {
		return nil, common.NewUserError("This command can only be used in a server.", "serverinfo outside a guild")
	}
	if f.guilds == nil {
		return nil, common.NewSystemError(nil, "no guild source configured")
	}

	guild, err := f.guilds.Guild(req.GuildID)
	if err != nil {
		return nil, common.NewSystemError(err, "failed to fetch guild")
	}
	return interactions.EmbedView(buildServerInfoEmbed(guild)), nil
}

package seasons

import (
	"context"

	"sblbot/bot/common"
	"sblbot/bot/interactions"
	"sblbot/sblapi"
)

// handleSeasons handles /seasons and the seasons_page_N / back_to_seasons buttons
func (f *Feature) handleSeasons(ctx context.Context, req *interactions.Request) (*interactions.View, error) {
	page := interactions.IntOr(req.Intent, interactions.ArgPage, 1)

	res, err := f.api.Seasons(ctx)
	if err != nil {
		return nil, err
	}

	if len(res.Data) == 0 {
		return interactions.EmbedView(buildEmptyEmbed(res.ResponseTime)), nil
	}

	shown, state := common.PageSlice(res.Data, page, common.SeasonsPageSize)
	return interactions.EmbedView(
		buildSeasonsEmbed(shown, state, res.ResponseTime),
		buildSeasonsComponents(shown, state)...,
	), nil
}

// handleSeason handles /season and season_details_N
func (f *Feature) handleSeason(ctx context.Context, req *interactions.Request) (*interactions.View, error) {
	id, err := interactions.RequireInt(req.Intent, interactions.ArgID)
	if err != nil {
		return nil, err
	}

	var (
		season   *sblapi.Response[sblapi.Season]
		progress *sblapi.Response[sblapi.SeasonProgress]
	)
	err = sblapi.FanOut(ctx,
		sblapi.Required("season", func(ctx context.Context) error {
			var err error
			season, err = f.api.Season(ctx, id)
			return err
		}),
		sblapi.Optional("season progress", func(ctx context.Context) error {
			var err error
			progress, err = f.api.SeasonProgress(ctx, id)
			return err
		}),
	)
	if err != nil {
		if failure, ok := sblapi.AsFailure(err); ok && failure.IsNotFound() {
			return nil, common.WrapUserError(err, "No season found with that ID.", "season not found")
		}
		return nil, err
	}

	var summary *sblapi.SeasonProgress
	if progress != nil {
		summary = &progress.Data
	}

	return interactions.EmbedView(
		buildSeasonEmbed(season.Data, summary, f.now(), season.ResponseTime),
		buildSeasonComponents(season.Data)...,
	), nil
}

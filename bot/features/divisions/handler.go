package divisions

import (
	"context"
	"fmt"

	"sblbot/bot/common"
	"sblbot/bot/interactions"
	"sblbot/sblapi"
)

// handleDivisions handles /divisions and divisions_season_N
func (f *Feature) handleDivisions(ctx context.Context, req *interactions.Request) (*interactions.View, error) {
	seasonID, err := interactions.RequireInt(req.Intent, interactions.ArgSeason)
	if err != nil {
		return nil, err
	}

	var (
		divisions *sblapi.Response[[]sblapi.Division]
		season    *sblapi.Season
	)
	err = sblapi.FanOut(ctx,
		sblapi.Required("season divisions", func(ctx context.Context) error {
			var err error
			divisions, err = f.api.SeasonDivisions(ctx, seasonID)
			return err
		}),
		sblapi.Optional("season", func(ctx context.Context) error {
			res, err := f.api.Season(ctx, seasonID)
			if err != nil {
				return err
			}
			season = &res.Data
			return nil
		}),
	)
	if err != nil {
		if failure, ok := sblapi.AsFailure(err); ok && failure.IsNotFound() {
			return nil, common.WrapUserError(err, fmt.Sprintf("No divisions found for season %d.", seasonID), "season divisions not found")
		}
		return nil, err
	}

	return interactions.EmbedView(
		buildDivisionsEmbed(seasonID, season, divisions.Data, divisions.ResponseTime),
		buildDivisionsComponents(seasonID, divisions.Data)...,
	), nil
}

// handleDivision handles /division and division_details_N
func (f *Feature) handleDivision(ctx context.Context, req *interactions.Request) (*interactions.View, error) {
	id, err := interactions.RequireInt(req.Intent, interactions.ArgID)
	if err != nil {
		return nil, err
	}

	var (
		division *sblapi.Response[sblapi.Division]
		games    []sblapi.Game
		stats    []sblapi.TeamStanding
	)
	err = sblapi.FanOut(ctx,
		sblapi.Required("division", func(ctx context.Context) error {
			var err error
			division, err = f.api.Division(ctx, id)
			return err
		}),
		sblapi.Optional("division games", sblapi.Into(&games, func(ctx context.Context) (*sblapi.Response[[]sblapi.Game], error) {
			return f.api.DivisionGames(ctx, id)
		})),
		sblapi.Optional("division standings", sblapi.Into(&stats, func(ctx context.Context) (*sblapi.Response[[]sblapi.TeamStanding], error) {
			return f.api.DivisionStandings(ctx, id)
		})),
	)
	if err != nil {
		if failure, ok := sblapi.AsFailure(err); ok && failure.IsNotFound() {
			return nil, common.WrapUserError(err, fmt.Sprintf("Division %d was not found.", id), "division not found")
		}
		return nil, err
	}

	return interactions.EmbedView(
		buildDivisionEmbed(division.Data, games, stats, division.ResponseTime),
		buildDivisionComponents(division.Data, len(games))...,
	), nil
}

package teams

import (
	"context"
	"fmt"

	"sblbot/bot/common"
	"sblbot/bot/interactions"
	"sblbot/sblapi"
)

// handleTeams handles /teams, teams_page_N and the refresh button
func (f *Feature) handleTeams(ctx context.Context, req *interactions.Request) (*interactions.View, error) {
	page := interactions.IntOr(req.Intent, interactions.ArgPage, 1)

	res, err := f.api.Teams(ctx)
	if err != nil {
		return nil, err
	}

	if len(res.Data) == 0 {
		return interactions.EmbedView(buildEmptyEmbed(res.ResponseTime)), nil
	}

	shown, state := common.PageSlice(res.Data, page, common.TeamsPageSize)
	return interactions.EmbedView(
		buildTeamsEmbed(shown, state, res.ResponseTime),
		buildTeamsComponents(shown, state)...,
	), nil
}

// handleTeam handles /team, team_details_N and the team select menu
func (f *Feature) handleTeam(ctx context.Context, req *interactions.Request) (*interactions.View, error) {
	teamID, err := interactions.RequireInt(req.Intent, interactions.ArgID)
	if err != nil {
		return nil, err
	}

	var (
		team    *sblapi.Response[sblapi.Team]
		players []sblapi.Player
	)
	err = sblapi.FanOut(ctx,
		sblapi.Required("team", func(ctx context.Context) error {
			var err error
			team, err = f.api.Team(ctx, teamID)
			return err
		}),
		sblapi.Optional("players", sblapi.Into(&players, func(ctx context.Context) (*sblapi.Response[[]sblapi.Player], error) {
			return f.api.Players(ctx, teamID)
		})),
	)
	if err != nil {
		if failure, ok := sblapi.AsFailure(err); ok && failure.IsNotFound() {
			return nil, common.WrapUserError(err, fmt.Sprintf("No team found with ID %d.", teamID), "team not found")
		}
		return nil, err
	}

	return interactions.EmbedView(
		buildTeamEmbed(team.Data, players, team.ResponseTime),
		buildTeamComponents(team.Data)...,
	), nil
}

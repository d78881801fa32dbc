package matches

import (
	"context"
	"fmt"

	"sblbot/bot/common"
	"sblbot/bot/interactions"
	"sblbot/sblapi"
)

// handleMatches handles /matches, matchs_division_D_page_P and matchs_page_D_P
func (f *Feature) handleMatches(ctx context.Context, req *interactions.Request) (*interactions.View, error) {
	divisionID, err := interactions.RequireInt(req.Intent, interactions.ArgDivision)
	if err != nil {
		return nil, err
	}
	page := interactions.IntOr(req.Intent, interactions.ArgPage, 1)

	var (
		games    *sblapi.Response[[]sblapi.Game]
		division *sblapi.Division
	)
	err = sblapi.FanOut(ctx,
		sblapi.Required("division games", func(ctx context.Context) error {
			var err error
			games, err = f.api.DivisionGames(ctx, divisionID)
			return err
		}),
		sblapi.Optional("division", func(ctx context.Context) error {
			res, err := f.api.Division(ctx, divisionID)
			if err != nil {
				return err
			}
			division = &res.Data
			return nil
		}),
	)
	if err != nil {
		if failure, ok := sblapi.AsFailure(err); ok && failure.IsNotFound() {
			return nil, common.WrapUserError(err, fmt.Sprintf("No matches found for division %d.", divisionID), "division games not found")
		}
		return nil, err
	}

	title := divisionTitle(divisionID, division, games.Data)
	if len(games.Data) == 0 {
		return interactions.EmbedView(buildEmptyEmbed(title, games.ResponseTime), buildNavigation(divisionID)...), nil
	}

	weeks := groupByWeek(games.Data)
	shown, state := common.PageSlice(weeks, page, common.WeeksPerPage)

	components := common.PaginationRow(state, common.PaginationOptions{
		PageID: func(p int) string { return interactions.MatchesPageID(divisionID, p) },
		InfoID: interactions.MatchesPageInfoID,
	})
	components = append(components, buildNavigation(divisionID)...)

	return interactions.EmbedView(
		buildMatchesEmbed(title, games.Data, weeks, shown, state, games.ResponseTime),
		components...,
	), nil
}

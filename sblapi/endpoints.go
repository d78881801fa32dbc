package sblapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Response is a decoded successful call
type Response[T any] struct {
	Data         T
	ResponseTime time.Duration
	HTTPStatus   int
}

func fetch[T any](ctx context.Context, c *Client, req Request) (*Response[T], error) {
	res, err := c.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	data, err := Decode[T](res, c.BuildURL(req.Endpoint, req.Query))
	if err != nil {
		return nil, err
	}
	return &Response[T]{Data: data, ResponseTime: res.ResponseTime, HTTPStatus: res.HTTPStatus}, nil
}

// fetchOne accepts either an object or an array holding it. An empty array is a 404.
func fetchOne[T any](ctx context.Context, c *Client, req Request) (*Response[T], error) {
	res, err := c.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	target := c.BuildURL(req.Endpoint, req.Query)

	if trimmed := bytes.TrimSpace(res.Data); len(trimmed) > 0 && trimmed[0] == '[' {
		items, err := Decode[[]T](res, target)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, &Failure{HTTPStatus: http.StatusNotFound, Reason: ReasonHTTPError, Message: "not found", URL: target}
		}
		return &Response[T]{Data: items[0], ResponseTime: res.ResponseTime, HTTPStatus: res.HTTPStatus}, nil
	}
	if bytes.Equal(bytes.TrimSpace(res.Data), []byte("null")) {
		return nil, &Failure{HTTPStatus: http.StatusNotFound, Reason: ReasonHTTPError, Message: "not found", URL: target}
	}

	data, err := Decode[T](res, target)
	if err != nil {
		return nil, err
	}
	return &Response[T]{Data: data, ResponseTime: res.ResponseTime, HTTPStatus: res.HTTPStatus}, nil
}

func asUser(discordID string) map[string]string {
	return map[string]string{DiscordUserHeader: discordID}
}

// Seasons lists every season
func (c *Client) Seasons(ctx context.Context) (*Response[[]Season], error) {
	return fetch[[]Season](ctx, c, Request{Endpoint: "season"})
}

// Season fetches one season
func (c *Client) Season(ctx context.Context, id int) (*Response[Season], error) {
	return fetchOne[Season](ctx, c, Request{Endpoint: "season", Query: Params{"id": id}})
}

// SeasonProgress fetches the completion of a season
func (c *Client) SeasonProgress(ctx context.Context, id int) (*Response[SeasonProgress], error) {
	return fetchOne[SeasonProgress](ctx, c, Request{Endpoint: "season/pourcent", Query: Params{"id": id, "decimal": 1}})
}

// SeasonDivisions lists the divisions of a season
func (c *Client) SeasonDivisions(ctx context.Context, seasonID int) (*Response[[]Division], error) {
	return fetch[[]Division](ctx, c, Request{Endpoint: "division/season", Query: Params{"id": seasonID}})
}

// Division fetches a division with its teams
func (c *Client) Division(ctx context.Context, id int) (*Response[Division], error) {
	return fetchOne[Division](ctx, c, Request{Endpoint: "division", Query: Params{"id": id}})
}

// DivisionGames lists the games of a division
func (c *Client) DivisionGames(ctx context.Context, divisionID int) (*Response[[]Game], error) {
	return fetch[[]Game](ctx, c, Request{Endpoint: "games", Query: Params{"division_id": divisionID}})
}

// DivisionStandings lists team statistics for a division
func (c *Client) DivisionStandings(ctx context.Context, divisionID int) (*Response[[]TeamStanding], error) {
	return fetch[[]TeamStanding](ctx, c, Request{Endpoint: "teamStats", Query: Params{"division_id": divisionID}})
}

// Teams lists every team
func (c *Client) Teams(ctx context.Context) (*Response[[]Team], error) {
	return fetch[[]Team](ctx, c, Request{Endpoint: "teams"})
}

// Team fetches one team
func (c *Client) Team(ctx context.Context, id int) (*Response[Team], error) {
	return fetchOne[Team](ctx, c, Request{Endpoint: "teams", Query: Params{"id": id}})
}

// Players lists a team's players
func (c *Client) Players(ctx context.Context, teamID int) (*Response[[]Player], error) {
	return fetch[[]Player](ctx, c, Request{Endpoint: "players", Query: Params{"team": teamID}})
}

// CurrentWeek locates the ongoing week
func (c *Client) CurrentWeek(ctx context.Context) (*Response[CurrentWeek], error) {
	return fetchOne[CurrentWeek](ctx, c, Request{Endpoint: "season/current/week"})
}

// WeekGames lists the games of a week
func (c *Client) WeekGames(ctx context.Context, week, seasonID int) (*Response[[]Game], error) {
	return fetch[[]Game](ctx, c, Request{Endpoint: "games/week", Query: Params{"week": week, "season_id": seasonID}})
}

// UnscheduledGames lists games of a week that have no date yet
func (c *Client) UnscheduledGames(ctx context.Context, week, seasonID int) (*Response[[]Game], error) {
	return fetch[[]Game](ctx, c, Request{Endpoint: "games/unscheduled", Query: Params{"week": week, "season_id": seasonID}})
}

// ScheduleGame sets the date of a game
func (c *Client) ScheduleGame(ctx context.Context, gameID int, date time.Time) error {
	_, err := c.Call(ctx, Request{
		Method:   http.MethodPatch,
		Endpoint: fmt.Sprintf("games/%d/schedule", gameID),
		Body:     map[string]string{"date": date.UTC().Format(time.RFC3339)},
	})
	return err
}

// ProposalInput is a new match proposal
type ProposalInput struct {
	GameID            int
	ProposerDiscordID string
	ProposedDate      time.Time
}

// CreateProposal proposes a date for a game to the opposing captain
func (c *Client) CreateProposal(ctx context.Context, in ProposalInput) (*Response[CreatedProposal], error) {
	return fetch[CreatedProposal](ctx, c, Request{
		Method:   http.MethodPost,
		Endpoint: "match-proposals",
		Body: map[string]any{
			"game_id":             in.GameID,
			"proposer_discord_id": in.ProposerDiscordID,
			"proposed_date":       in.ProposedDate.UTC().Format(time.RFC3339),
		},
		Headers: asUser(in.ProposerDiscordID),
	})
}

// PendingProposals lists the proposals a user sent and received
func (c *Client) PendingProposals(ctx context.Context, discordID string) (*Response[PendingProposals], error) {
	return fetch[PendingProposals](ctx, c, Request{
		Endpoint: "match-proposals/pending",
		Query:    Params{"discord_id": discordID},
		Headers:  asUser(discordID),
	})
}

// RespondToProposal accepts or rejects a proposal as its receiver
func (c *Client) RespondToProposal(ctx context.Context, proposalID int, discordID string, status ProposalStatus) (*Response[Proposal], error) {
	res, err := fetch[struct {
		Proposal Proposal `json:"proposal"`
	}](ctx, c, Request{
		Method:   http.MethodPatch,
		Endpoint: fmt.Sprintf("match-proposals/%d", proposalID),
		Body:     map[string]string{"discord_id": discordID, "status": string(status)},
		Headers:  asUser(discordID),
	})
	if err != nil {
		return nil, err
	}
	return &Response[Proposal]{Data: res.Data.Proposal, ResponseTime: res.ResponseTime, HTTPStatus: res.HTTPStatus}, nil
}

// CreateTeam creates a team captained by the caller
func (c *Client) CreateTeam(ctx context.Context, discordID, name string) (*Response[CreatedTeam], error) {
	return fetch[CreatedTeam](ctx, c, Request{
		Method:   http.MethodPost,
		Endpoint: "teams/create-with-captain",
		Body:     map[string]string{"name": name},
		Headers:  asUser(discordID),
	})
}

// AddMember adds a user to a team the caller captains
func (c *Client) AddMember(ctx context.Context, actorID string, teamID int, memberID string) error {
	_, err := c.Call(ctx, Request{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("teams/%d/members", teamID),
		Body:     map[string]string{"discord_id": memberID},
		Headers:  asUser(actorID),
	})
	return err
}

// RemoveMember removes a user from a team. Removing yourself leaves the team.
func (c *Client) RemoveMember(ctx context.Context, actorID string, teamID int, memberID string) error {
	_, err := c.Call(ctx, Request{
		Method:   http.MethodDelete,
		Endpoint: fmt.Sprintf("teams/%d/members", teamID),
		Body:     map[string]string{"discord_id": memberID},
		Headers:  asUser(actorID),
	})
	return err
}

// ChangeRole promotes or demotes a team member
func (c *Client) ChangeRole(ctx context.Context, actorID string, teamID int, memberID, role string) error {
	_, err := c.Call(ctx, Request{
		Method:   http.MethodPatch,
		Endpoint: fmt.Sprintf("teams/%d/members/role", teamID),
		Body:     map[string]string{"discord_id": memberID, "role": role},
		Headers:  asUser(actorID),
	})
	return err
}

// TeamMembers lists a team roster
func (c *Client) TeamMembers(ctx context.Context, actorID string, teamID int) (*Response[TeamMembers], error) {
	return fetch[TeamMembers](ctx, c, Request{
		Endpoint: fmt.Sprintf("teams/%d/members", teamID),
		Headers:  asUser(actorID),
	})
}

// MyTeams lists the caller's teams
func (c *Client) MyTeams(ctx context.Context, discordID string) (*Response[[]TeamMembership], error) {
	return fetch[[]TeamMembership](ctx, c, Request{
		Endpoint: "teams/my-teams",
		Headers:  asUser(discordID),
	})
}

// HealthCheck calls the API root with the shorter health timeout. It never
// returns an error; the failure is carried in Health.
func (c *Client) HealthCheck(ctx context.Context) Health {
	health := Health{URL: c.BuildURL("", nil)}

	start := time.Now()
	res, err := c.Call(ctx, Request{Timeout: c.healthTimeout})
	health.ResponseTime = time.Since(start)
	if err != nil {
		f, ok := AsFailure(err)
		if !ok {
			f = &Failure{Reason: ReasonUnknown, Message: err.Error(), URL: health.URL, Err: err}
		}
		health.HTTPStatus = f.HTTPStatus
		// A non-JSON 2xx still means the API is up
		if f.HTTPStatus >= 200 && f.HTTPStatus < 300 {
			health.Online = true
			return health
		}
		health.Failure = f
		return health
	}

	health.Online = true
	health.HTTPStatus = res.HTTPStatus
	health.ResponseTime = res.ResponseTime

	var info APIInfo
	if json.Unmarshal(res.Data, &info) == nil && (info.Name != nil || info.Version != nil || info.Status != nil) {
		health.Info = &info
	}
	return health
}

package sblapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// FlexInt accepts a JSON number or numeric string. Anything else decodes to 0.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(unquote(data), 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = FlexInt(int(v))
	return nil
}

// Valid reports a present, positive reference
func (n *FlexInt) Valid() bool {
	return n != nil && *n > 0
}

// FlexFloat accepts a JSON number or numeric string
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(unquote(data), 64)
	if err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

func unquote(data []byte) string {
	return strings.TrimSpace(strings.Trim(string(bytes.TrimSpace(data)), `"`))
}

// Season is a league season
type Season struct {
	ID            int        `json:"id"`
	Name          *string    `json:"name"`
	StartDate     *string    `json:"start_date"`
	EndDate       *string    `json:"end_date"`
	TotalGames    *int       `json:"total_games"`
	FinishedGames *int       `json:"finished_games"`
	Percentage    *FlexFloat `json:"percentage"`
}

// SeasonProgress is the completion summary of a season
type SeasonProgress struct {
	Percentage    *FlexFloat `json:"percentage"`
	TotalGames    *int       `json:"total_games"`
	FinishedGames *int       `json:"finished_games"`
}

// TeamStanding is one row of a division table. Division payloads use id/name,
// the teamStats endpoint uses team_id/team_name.
type TeamStanding struct {
	ID           int     `json:"id"`
	TeamID       int     `json:"team_id"`
	Name         *string `json:"name"`
	TeamName     *string `json:"team_name"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Draws        int     `json:"draws"`
	Points       int     `json:"points"`
	GoalsFor     *int    `json:"goals_for"`
	GoalsAgainst *int    `json:"goals_against"`
}

// Identifier returns whichever ID the payload carried
func (t TeamStanding) Identifier() int {
	if t.ID != 0 {
		return t.ID
	}
	return t.TeamID
}

// DisplayName falls back from name to team_name to "Team <id>"
func (t TeamStanding) DisplayName() string {
	if t.Name != nil && strings.TrimSpace(*t.Name) != "" {
		return *t.Name
	}
	if t.TeamName != nil && strings.TrimSpace(*t.TeamName) != "" {
		return *t.TeamName
	}
	return "Team " + strconv.Itoa(t.Identifier())
}

// GoalDifference is present only when both goal counts are
func (t TeamStanding) GoalDifference() (int, bool) {
	if t.GoalsFor == nil || t.GoalsAgainst == nil {
		return 0, false
	}
	return *t.GoalsFor - *t.GoalsAgainst, true
}

// Division belongs to a season and lists its teams
type Division struct {
	ID          int            `json:"id"`
	Name        *string        `json:"name"`
	Season      *FlexInt       `json:"season"`
	Description *string        `json:"description"`
	Teams       []TeamStanding `json:"teams"`
}

// DisplayName falls back to "Division <id>"
func (d Division) DisplayName() string {
	if d.Name != nil && strings.TrimSpace(*d.Name) != "" {
		return *d.Name
	}
	return "Division " + strconv.Itoa(d.ID)
}

// Team is a registered team
type Team struct {
	ID          int      `json:"id"`
	Name        *string  `json:"name"`
	Captain     *string  `json:"captain"`
	Founded     *string  `json:"founded"`
	Description *string  `json:"description"`
	Wins        *int     `json:"wins"`
	Losses      *int     `json:"losses"`
	Draws       *int     `json:"draws"`
	Points      *int     `json:"points"`
	Rank        *int     `json:"rank"`
	Division    *FlexInt `json:"division"`
	Season      *FlexInt `json:"season"`
}

// DisplayName falls back to "Team <id>"
func (t Team) DisplayName() string {
	if t.Name != nil && strings.TrimSpace(*t.Name) != "" {
		return *t.Name
	}
	return "Team " + strconv.Itoa(t.ID)
}

// Player is a team roster entry
type Player struct {
	ID       int     `json:"id"`
	Name     *string `json:"name"`
	Position *string `json:"position"`
	Goals    *int    `json:"goals"`
	Assists  *int    `json:"assists"`
	Captain  bool    `json:"captain"`
	JoinDate *string `json:"joinDate"`
}

// Winner values reported for a game
const (
	WinnerDraw  = 0
	WinnerTeam1 = 1
	WinnerTeam2 = 2
)

// StatusPlayed is the upstream status of a finished game
const StatusPlayed = "joué"

// Game is a fixture. Payloads that use home_*/away_* names are normalized onto
// Team1/Team2 and Score1/Score2.
type Game struct {
	ID         int     `json:"id"`
	Week       *int    `json:"week"`
	Date       *string `json:"date"`
	Team1      *string `json:"team1"`
	Team2      *string `json:"team2"`
	Score1     *int    `json:"score1"`
	Score2     *int    `json:"score2"`
	Status     *string `json:"status"`
	Winner     *int    `json:"winner"`
	Division   *string `json:"division"`
	DivisionID *int    `json:"division_id"`
}

func (g *Game) UnmarshalJSON(data []byte) error {
	type plain Game
	var aux struct {
		plain
		HomeTeam     *string `json:"home_team"`
		HomeTeamName *string `json:"home_team_name"`
		AwayTeam     *string `json:"away_team"`
		AwayTeamName *string `json:"away_team_name"`
		HomeScore    *int    `json:"home_score"`
		AwayScore    *int    `json:"away_score"`
		PlayedAt     *string `json:"played_at"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*g = Game(aux.plain)
	g.Team1 = firstNonNil(g.Team1, aux.HomeTeam, aux.HomeTeamName)
	g.Team2 = firstNonNil(g.Team2, aux.AwayTeam, aux.AwayTeamName)
	if g.Score1 == nil {
		g.Score1 = aux.HomeScore
	}
	if g.Score2 == nil {
		g.Score2 = aux.AwayScore
	}
	g.Date = firstNonNil(g.Date, aux.PlayedAt)
	return nil
}

func firstNonNil(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// Finished reports a played game, by status or by both scores being present
func (g Game) Finished() bool {
	if g.Status != nil {
		switch strings.ToLower(*g.Status) {
		case StatusPlayed, "finished", "played":
			return true
		}
	}
	return g.Score1 != nil && g.Score2 != nil
}

// CurrentWeek locates the ongoing week of the active season
type CurrentWeek struct {
	CurrentWeek int `json:"current_week"`
	SeasonID    int `json:"season_id"`
}

// ProposalStatus is the answer to a match proposal
type ProposalStatus string

const (
	ProposalAccepted ProposalStatus = "accepted"
	ProposalRejected ProposalStatus = "rejected"
)

// ProposalGame is the game a proposal refers to
type ProposalGame struct {
	ID    int     `json:"id"`
	Team1 *string `json:"team1"`
	Team2 *string `json:"team2"`
	Week  *int    `json:"week"`
}

// ProposalParty is the proposer or receiver of a proposal
type ProposalParty struct {
	DiscordID       string  `json:"discord_id"`
	DiscordUsername *string `json:"discord_username"`
}

// Proposal is a proposed date for a game
type Proposal struct {
	ID           int            `json:"id"`
	Game         ProposalGame   `json:"game"`
	ProposedDate *string        `json:"proposed_date"`
	Status       *string        `json:"status"`
	Proposer     *ProposalParty `json:"proposer"`
	Receiver     *ProposalParty `json:"receiver"`
}

// CreatedProposal is returned when a proposal is created
type CreatedProposal struct {
	Proposal          Proposal `json:"proposal"`
	ReceiverDiscordID *string  `json:"receiver_discord_id"`
}

// PendingProposals lists a user's open proposals
type PendingProposals struct {
	Received []Proposal `json:"received"`
	Sent     []Proposal `json:"sent"`
}

// TeamRef is a short team reference
type TeamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Member roles inside a team
const (
	RoleCaptain = "captain"
	RoleMember  = "member"
)

// CreatedTeam is returned by team creation
type CreatedTeam struct {
	Team TeamRef `json:"team"`
}

// TeamMember is one roster member
type TeamMember struct {
	Role            string  `json:"role"`
	DiscordID       string  `json:"discord_id"`
	DiscordUsername *string `json:"discord_username"`
	JoinedAt        *string `json:"joined_at"`
}

// TeamMembers is a team roster
type TeamMembers struct {
	Team    TeamRef      `json:"team"`
	Members []TeamMember `json:"members"`
}

// TeamMembership is one of the caller's teams
type TeamMembership struct {
	Role         string  `json:"role"`
	Team         TeamRef `json:"team"`
	MembersCount *int    `json:"members_count"`
}

// APIInfo is exposed by the API root when available
type APIInfo struct {
	Name    *string `json:"name"`
	Version *string `json:"version"`
	Status  *string `json:"status"`
}

// Health is the outcome of a health check
type Health struct {
	Online       bool
	URL          string
	HTTPStatus   int
	ResponseTime time.Duration
	Info         *APIInfo
	Failure      *Failure
}

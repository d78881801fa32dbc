package interactions

import "fmt"

// Command names that component IDs can route to
const (
	CommandSeasons   = "seasons"
	CommandSeason    = "season"
	CommandDivisions = "divisions"
	CommandDivision  = "division"
	CommandMatches   = "matches"
	CommandTeams     = "teams"
	CommandTeam      = "team"
	CommandAccept    = "accept"
	CommandReject    = "reject"
)

// Commands that are only reachable as slash commands
const (
	CommandPropose    = "propose"
	CommandProposals  = "proposals"
	CommandConfig     = "config"
	CommandAPIStatus  = "apistatus"
	CommandServerInfo = "serverinfo"
	CommandCreateTeam = "create-team"
	CommandAddMember  = "add-member"
	CommandRemove     = "remove-member"
	CommandLeaveTeam  = "leave-team"
	CommandChangeRole = "change-role"
	CommandMembers    = "team-members"
	CommandMyTeams    = "my-teams"
)

// Argument names shared by slash options and decoded IDs
const (
	ArgID       = "id"
	ArgPage     = "page"
	ArgSeason   = "season"
	ArgDivision = "division"
	ArgMatch    = "match"
	ArgDay      = "day"
	ArgTime     = "time"
	ArgTeam     = "team"
	ArgName     = "name"
	ArgUser     = "user"
	ArgRole     = "role"
	ArgChannel  = "channel"
)

// Fixed component IDs
const (
	BackToSeasonsID   = "back_to_seasons"
	TeamSelectMenuID  = "team_select_menu"
	SeasonsPageInfoID = "seasons_page_info"
	TeamsPageInfoID   = "teams_page_info"
	MatchesPageInfoID = "matchs_page_info"
)

func SeasonsPageID(page int) string {
	return fmt.Sprintf("seasons_page_%d", page)
}

func SeasonDetailsID(seasonID int) string {
	return fmt.Sprintf("season_details_%d", seasonID)
}

func SeasonDivisionsID(seasonID int) string {
	return fmt.Sprintf("divisions_season_%d", seasonID)
}

func DivisionDetailsID(divisionID int) string {
	return fmt.Sprintf("division_details_%d", divisionID)
}

// DivisionMatchesID opens the match list of a division from its detail view
func DivisionMatchesID(divisionID, page int) string {
	return fmt.Sprintf("matchs_division_%d_page_%d", divisionID, page)
}

// MatchesPageID navigates between pages of a division's match list
func MatchesPageID(divisionID, page int) string {
	return fmt.Sprintf("matchs_page_%d_%d", divisionID, page)
}

func TeamsPageID(page int) string {
	return fmt.Sprintf("teams_page_%d", page)
}

func TeamDetailsID(teamID int) string {
	return fmt.Sprintf("team_details_%d", teamID)
}

func ProposalAcceptID(proposalID int) string {
	return fmt.Sprintf("proposal_accept_%d", proposalID)
}

func ProposalRejectID(proposalID int) string {
	return fmt.Sprintf("proposal_reject_%d", proposalID)
}

package interactions

import (
	"regexp"
	"strconv"
)

// Decoded is the invocation a component ID stands for
type Decoded struct {
	Command    string
	Args       map[string]any
	Recognized bool
}

type rule struct {
	pattern *regexp.Regexp
	command string
	args    []string // argument name per capture group
}

// Rules are tried in order and every pattern is anchored, so a more specific
// rule must come before any rule sharing its prefix.
var rules = []rule{
	{regexp.MustCompile(`^matchs_division_(\d+)_page_(\d+)$`), CommandMatches, []string{ArgDivision, ArgPage}},
	{regexp.MustCompile(`^matchs_page_(\d+)_(\d+)$`), CommandMatches, []string{ArgDivision, ArgPage}},
	{regexp.MustCompile(`^divisions_season_(\d+)$`), CommandDivisions, []string{ArgSeason}},
	{regexp.MustCompile(`^division_details_(\d+)$`), CommandDivision, []string{ArgID}},
	{regexp.MustCompile(`^season_details_(\d+)$`), CommandSeason, []string{ArgID}},
	{regexp.MustCompile(`^seasons_page_(\d+)$`), CommandSeasons, []string{ArgPage}},
	{regexp.MustCompile(`^teams_page_(\d+)$`), CommandTeams, []string{ArgPage}},
	{regexp.MustCompile(`^team_details_(\d+)$`), CommandTeam, []string{ArgID}},
	{regexp.MustCompile(`^proposal_accept_(\d+)$`), CommandAccept, []string{ArgID}},
	{regexp.MustCompile(`^proposal_reject_(\d+)$`), CommandReject, []string{ArgID}},
	{regexp.MustCompile(`^back_to_seasons$`), CommandSeasons, nil},
}

// Decode maps a component ID, and the selected values of a select menu, to a
// command invocation. It never fails; unknown shapes are reported as not recognized.
func Decode(customID string, values []string) Decoded {
	if customID == TeamSelectMenuID {
		if len(values) == 0 {
			return Decoded{}
		}
		d := Decode(values[0], nil)
		if d.Command != CommandTeam {
			return Decoded{}
		}
		return d
	}

	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(customID)
		if m == nil {
			continue
		}
		args := make(map[string]any, len(r.args))
		for i, name := range r.args {
			n, err := strconv.ParseInt(m[i+1], 10, 64)
			if err != nil {
				return Decoded{}
			}
			args[name] = n
		}
		return Decoded{Command: r.command, Args: args, Recognized: true}
	}
	return Decoded{}
}

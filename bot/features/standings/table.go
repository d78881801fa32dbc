// Package standings ranks division tables and renders them as text or PNG.
package standings

import (
	"fmt"
	"strings"

	"sblbot/bot/common"
	"sblbot/sblapi"
)

// Rank returns a ranked copy of rows: points desc, wins desc, losses asc
func Rank(rows []sblapi.TeamStanding) []sblapi.TeamStanding {
	ranked := append([]sblapi.TeamStanding(nil), rows...)
	common.SortRanking(ranked, func(t sblapi.TeamStanding) common.RankKey {
		return common.RankKey{Points: t.Points, Wins: t.Wins, Losses: t.Losses}
	})
	return ranked
}

// Pick chooses the team statistics when present and falls back to the
// teams embedded in the division payload
func Pick(division sblapi.Division, stats []sblapi.TeamStanding) []sblapi.TeamStanding {
	if len(stats) > 0 {
		return stats
	}
	return division.Teams
}

// Table renders the top n ranked rows with medals. Rows beyond n are summarized.
func Table(rows []sblapi.TeamStanding, n int) string {
	if len(rows) == 0 {
		return "No standings available"
	}
	ranked := Rank(rows)

	var b strings.Builder
	for i, team := range ranked {
		if i == n {
			break
		}
		fmt.Fprintf(&b, "%s **%s**\n", common.RankLabel(i), team.DisplayName())
		fmt.Fprintf(&b, "   ├ %dW - %dL - %d pts\n", team.Wins, team.Losses, team.Points)
		if gd, ok := team.GoalDifference(); ok {
			fmt.Fprintf(&b, "   └ Goals: %d-%d (%s)\n", *team.GoalsFor, *team.GoalsAgainst, signed(gd))
		}
	}
	if len(ranked) > n {
		fmt.Fprintf(&b, "\n... and %d others", len(ranked)-n)
	}
	return common.TruncateField(strings.TrimRight(b.String(), "\n"))
}

func signed(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

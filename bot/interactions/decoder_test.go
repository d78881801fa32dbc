package interactions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode_KnownShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		customID string
		values   []string
		command  string
		args     map[string]any
	}{
		{"season_details_42", nil, CommandSeason, map[string]any{ArgID: int64(42)}},
		{"matchs_division_7_page_2", nil, CommandMatches, map[string]any{ArgDivision: int64(7), ArgPage: int64(2)}},
		{"matchs_page_7_3", nil, CommandMatches, map[string]any{ArgDivision: int64(7), ArgPage: int64(3)}},
		{"divisions_season_5", nil, CommandDivisions, map[string]any{ArgSeason: int64(5)}},
		{"division_details_9", nil, CommandDivision, map[string]any{ArgID: int64(9)}},
		{"seasons_page_2", nil, CommandSeasons, map[string]any{ArgPage: int64(2)}},
		{"teams_page_4", nil, CommandTeams, map[string]any{ArgPage: int64(4)}},
		{"team_details_13", nil, CommandTeam, map[string]any{ArgID: int64(13)}},
		{"proposal_accept_8", nil, CommandAccept, map[string]any{ArgID: int64(8)}},
		{"proposal_reject_8", nil, CommandReject, map[string]any{ArgID: int64(8)}},
		{"back_to_seasons", nil, CommandSeasons, map[string]any{}},
		{"team_select_menu", []string{"team_details_21"}, CommandTeam, map[string]any{ArgID: int64(21)}},
	}

	for _, tt := range tests {
		t.Run(tt.customID, func(t *testing.T) {
			t.Parallel()
			got := Decode(tt.customID, tt.values)
			assert.True(t, got.Recognized)
			assert.Equal(t, tt.command, got.Command)
			assert.Equal(t, tt.args, got.Args)
		})
	}
}

func TestDecode_BuildersRoundTrip(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CommandDivision, Decode(DivisionDetailsID(3), nil).Command)
	assert.Equal(t, CommandDivisions, Decode(SeasonDivisionsID(3), nil).Command)
	assert.Equal(t, CommandMatches, Decode(DivisionMatchesID(3, 1), nil).Command)
	assert.Equal(t, CommandMatches, Decode(MatchesPageID(3, 2), nil).Command)
	assert.Equal(t, CommandSeason, Decode(SeasonDetailsID(3), nil).Command)
	assert.Equal(t, CommandSeasons, Decode(SeasonsPageID(3), nil).Command)
	assert.Equal(t, CommandTeams, Decode(TeamsPageID(3), nil).Command)
	assert.Equal(t, CommandTeam, Decode(TeamDetailsID(3), nil).Command)
	assert.Equal(t, CommandAccept, Decode(ProposalAcceptID(3), nil).Command)
	assert.Equal(t, CommandReject, Decode(ProposalRejectID(3), nil).Command)
}

func TestDecode_Unrecognized(t *testing.T) {
	t.Parallel()

	inputs := []struct {
		customID string
		values   []string
	}{
		{"", nil},
		{"hello", nil},
		{SeasonsPageInfoID, nil},
		{TeamsPageInfoID, nil},
		{MatchesPageInfoID, nil},
		{"division_details_", nil},
		{"division_details_abc", nil},
		{"division_details_9_extra", nil},
		{"xdivision_details_9", nil},
		{"matchs_division_7", nil},
		{"proposal_actions_3", nil},
		{"season_details_99999999999999999999999", nil},
		{TeamSelectMenuID, nil},
		{TeamSelectMenuID, []string{"division_details_2"}},
		{TeamSelectMenuID, []string{"garbage"}},
	}

	for _, in := range inputs {
		got := Decode(in.customID, in.values)
		assert.False(t, got.Recognized, "custom id %q values %v", in.customID, in.values)
		assert.Empty(t, got.Command)
	}
}

func TestDecode_SpecificRulesWin(t *testing.T) {
	t.Parallel()

	// divisions_season_ and division_details_ share a prefix with each other
	got := Decode("divisions_season_12", nil)
	assert.Equal(t, CommandDivisions, got.Command)
	assert.Equal(t, map[string]any{ArgSeason: int64(12)}, got.Args)
}

package sblapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGame_NormalizesHomeAwayShape(t *testing.T) {
	t.Parallel()

	var g Game
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"home_team":"Lions","away_team_name":"Tigers","home_score":2,"away_score":1,"played_at":"2024-03-01"}`), &g))
	assert.Equal(t, "Lions", *g.Team1)
	assert.Equal(t, "Tigers", *g.Team2)
	assert.Equal(t, 2, *g.Score1)
	assert.Equal(t, 1, *g.Score2)
	assert.Equal(t, "2024-03-01", *g.Date)
	assert.True(t, g.Finished())
}

func TestGame_Finished(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		want    bool
	}{
		{"played status", `{"id":1,"status":"joué"}`, true},
		{"finished status", `{"id":1,"status":"finished"}`, true},
		{"both scores", `{"id":1,"score1":0,"score2":0}`, true},
		{"one score", `{"id":1,"score1":3}`, false},
		{"pending", `{"id":1,"status":"pending"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var g Game
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &g))
			assert.Equal(t, tt.want, g.Finished())
		})
	}
}

func TestFlexibleNumbers(t *testing.T) {
	t.Parallel()

	var team Team
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"division":"4","season":2}`), &team))
	assert.True(t, team.Division.Valid())
	assert.Equal(t, FlexInt(4), *team.Division)
	assert.Equal(t, FlexInt(2), *team.Season)

	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"division":"Gold","season":null}`), &team))
	assert.False(t, team.Division.Valid())

	var s Season
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"percentage":"42.5"}`), &s))
	assert.InDelta(t, 42.5, float64(*s.Percentage), 0.001)
}

func TestTeamStanding_Fallbacks(t *testing.T) {
	t.Parallel()

	var s TeamStanding
	require.NoError(t, json.Unmarshal([]byte(`{"team_id":8,"goals_for":10,"goals_against":4}`), &s))
	assert.Equal(t, 8, s.Identifier())
	assert.Equal(t, "Team 8", s.DisplayName())
	diff, ok := s.GoalDifference()
	assert.True(t, ok)
	assert.Equal(t, 6, diff)
}

package matches

import (
	"context"
	"testing"

	"sblbot/bot/common"
	"sblbot/bot/interactions"
	"sblbot/bot/interactions/interactionstest"
	"sblbot/sblapi"
	"sblbot/sblapi/sblapitest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func fiveWeeks() []map[string]any {
	var games []map[string]any
	for w := 1; w <= 5; w++ {
		games = append(games, map[string]any{
			"id": w * 10, "week": w, "team1": "Lions", "team2": "Bears", "division": "Gold",
		})
	}
	games[0]["status"] = "joué"
	games[0]["score1"] = 2
	games[0]["score2"] = 1
	games[0]["winner"] = 1
	games[0]["date"] = "2024-03-01T20:00:00Z"
	return games
}

func TestHandleMatches_Pages(t *testing.T) {
	t.Parallel()

	server := sblapitest.New(t).
		Get("games?division_id=9", fiveWeeks()).
		Get("division?id=9", map[string]any{"id": 9, "name": "Gold Division"})
	feature := NewFeature(server.Client())

	tests := []struct {
		name      string
		page      int64
		wantWeeks []string
		wantIDs   []string
	}{
		{
			name:      "first page",
			page:      1,
			wantWeeks: []string{"📅 Week 1", "📅 Week 2"},
			wantIDs:   []string{"matchs_page_info", "matchs_page_9_2", "division_details_9", "back_to_seasons"},
		},
		{
			name:      "middle page",
			page:      2,
			wantWeeks: []string{"📅 Week 3", "📅 Week 4"},
			wantIDs:   []string{"matchs_page_9_1", "matchs_page_info", "matchs_page_9_3", "division_details_9", "back_to_seasons"},
		},
		{
			name:      "clamped last page",
			page:      7,
			wantWeeks: []string{"📅 Week 5"},
			wantIDs:   []string{"matchs_page_9_2", "matchs_page_info", "division_details_9", "back_to_seasons"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			view, err := feature.handleMatches(context.Background(), interactionstest.Request(map[string]any{
				"division": int64(9),
				"page":     tt.page,
			}))
			require.NoError(t, err)

			embed := view.Embeds[0]
			assert.Equal(t, "⚽ Matches - Gold Division", embed.Title)
			require.Len(t, embed.Fields, 1+len(tt.wantWeeks))
			assert.Equal(t, "📈 Statistics", embed.Fields[0].Name)
			for i, want := range tt.wantWeeks {
				assert.Equal(t, want, embed.Fields[i+1].Name)
			}
			assert.Equal(t, tt.wantIDs, interactionstest.CustomIDs(view.Components))
		})
	}
}

func TestHandleMatches_WeekRendering(t *testing.T) {
	t.Parallel()

	server := sblapitest.New(t).Get("games?division_id=9", fiveWeeks())
	view, err := NewFeature(server.Client()).handleMatches(context.Background(), interactionstest.Request(map[string]any{"division": int64(9)}))
	require.NoError(t, err)

	embed := view.Embeds[0]
	assert.Equal(t, "⚽ Matches - Gold", embed.Title, "falls back to the division name carried by games")
	assert.Contains(t, embed.Fields[0].Value, "**Finished:** 1/5")
	assert.Contains(t, embed.Fields[0].Value, "**Upcoming:** 4")
	assert.Contains(t, embed.Fields[0].Value, "(1, 2, 3, 4, 5)")

	weekOne := embed.Fields[1].Value
	assert.Contains(t, weekOne, "🏆 **Lions** 2 - 1 **Bears** ❌")
	assert.Contains(t, weekOne, "01-03-2024 21:00")
	assert.Contains(t, weekOne, "**1/1** matches finished")

	weekTwo := embed.Fields[2].Value
	assert.Contains(t, weekTwo, "⚽ **Lions** vs **Bears**")
	assert.Contains(t, weekTwo, "Not scheduled")
	assert.Contains(t, weekTwo, "📊 Not set")
}

func TestHandleMatches_Empty(t *testing.T) {
	t.Parallel()

	server := sblapitest.New(t).Get("games?division_id=4", []any{})
	view, err := NewFeature(server.Client()).handleMatches(context.Background(), interactionstest.Request(map[string]any{"division": int64(4)}))
	require.NoError(t, err)

	assert.Equal(t, common.ColorEmpty, view.Embeds[0].Color)
	assert.Equal(t, "⚽ Matches - Division 4", view.Embeds[0].Title)
	assert.Equal(t, []string{"division_details_4", "back_to_seasons"}, interactionstest.CustomIDs(view.Components))
}

func TestMatchesRoutes(t *testing.T) {
	t.Parallel()

	server := sblapitest.New(t).Get("games?division_id=9", fiveWeeks())
	registry := interactions.NewRegistry()
	require.NoError(t, registry.Load(NewFeature(server.Client())))
	router := interactions.NewRouter(registry, nil)

	for _, id := range []string{"matchs_page_9_3", "matchs_division_9_page_3"} {
		responder := &interactionstest.Responder{}
		router.Dispatch(context.Background(), responder, interactionstest.Button(id))

		edit := responder.LastEdit()
		require.NotNil(t, edit, id)
		fields := (*edit.Embeds)[0].Fields
		assert.Equal(t, "📅 Week 5", fields[len(fields)-1].Name, id)
	}
}

func TestGroupByWeek(t *testing.T) {
	t.Parallel()

	games := []sblapi.Game{
		{ID: 1, Week: ptr(2), Date: ptr("2024-03-10")},
		{ID: 2},
		{ID: 3, Week: ptr(2), Date: ptr("2024-03-03")},
		{ID: 4, Week: ptr(1)},
		{ID: 5, Week: ptr(2)},
	}

	weeks := groupByWeek(games)
	require.Len(t, weeks, 3)
	assert.Equal(t, 1, weeks[0].Number)
	assert.Equal(t, 2, weeks[1].Number)
	assert.Equal(t, 0, weeks[2].Number)

	ids := []int{weeks[1].Games[0].ID, weeks[1].Games[1].ID, weeks[1].Games[2].ID}
	assert.Equal(t, []int{3, 1, 5}, ids)
}

func TestRenderWeek_Truncates(t *testing.T) {
	t.Parallel()

	var games []sblapi.Game
	for i := 0; i < 40; i++ {
		games = append(games, sblapi.Game{ID: i, Team1: ptr("A very long team name"), Team2: ptr("Another long team")})
	}

	text := renderWeek(week{Number: 1, Games: games})
	assert.LessOrEqual(t, len([]rune(text)), common.MaxFieldLength)
	assert.Contains(t, text, "**0/40** matches finished")
}

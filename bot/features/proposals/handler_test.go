package proposals

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"sblbot/bot/common"
	"sblbot/bot/interactions/interactionstest"
	"sblbot/domain/entities"
	"sblbot/domain/testhelpers"
	"sblbot/events"
	"sblbot/sblapi/sblapitest"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sentDM struct {
	userID string
	embed  *discordgo.MessageEmbed
}

type fakeMessenger struct {
	mu   sync.Mutex
	sent []sentDM
}

func (m *fakeMessenger) UserChannelCreate(recipientID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return &discordgo.Channel{ID: "dm-" + recipientID}, nil
}

func (m *fakeMessenger) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentDM{userID: channelID[len("dm-"):], embed: embed})
	return &discordgo.Message{}, nil
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) error {
	p.events = append(p.events, e)
	return nil
}

func openSettings() *testhelpers.MockGuildSettingsService {
	settings := new(testhelpers.MockGuildSettingsService)
	settings.On("GetOrCreateSettings", mock.Anything, int64(100)).Return(entities.NewGuildSettings(100), nil)
	return settings
}

// Wednesday noon in Paris
var fixedNow = time.Date(2026, time.October, 14, 12, 0, 0, 0, common.DisplayLocation())

func newTestFeature(server *sblapitest.Server, settings *testhelpers.MockGuildSettingsService) (*Feature, *fakeMessenger, *recordingPublisher) {
	dm := &fakeMessenger{}
	pub := &recordingPublisher{}
	f := NewFeature(server.Client(), settings, dm, pub)
	f.now = func() time.Time { return fixedNow }
	return f, dm, pub
}

func TestHandlePropose(t *testing.T) {
	t.Parallel()

	server := sblapitest.New(t).On(http.MethodPost, "match-proposals", http.StatusCreated, map[string]any{
		"proposal": map[string]any{
			"id":   12,
			"game": map[string]any{"id": 40, "team1": "Lions", "team2": "Bears", "week": 3},
		},
		"receiver_discord_id": "77",
	})
	f, dm, _ := newTestFeature(server, openSettings())

	view, err := f.handlePropose(context.Background(), interactionstest.Request(map[string]any{
		"match": int64(40),
		"day":   "Sunday",
		"time":  "21h",
	}))
	require.NoError(t, err)

	assert.Equal(t, "✅ Proposal sent", view.Embeds[0].Title)
	assert.Equal(t, "Sunday 18/10/2026 at 21h00", view.Embeds[0].Fields[0].Value)

	requests := server.Requests()
	require.Len(t, requests, 1)
	var body map[string]any
	require.NoError(t, json.Unmarshal(requests[0].Body, &body))
	assert.Equal(t, "2026-10-18T19:00:00Z", body["proposed_date"])
	assert.Equal(t, float64(40), body["game_id"])
	assert.Equal(t, "42", body["proposer_discord_id"])

	require.Len(t, dm.sent, 1)
	assert.Equal(t, "77", dm.sent[0].userID)
	assert.Contains(t, dm.sent[0].embed.Description, "Lions vs Bears")
	kickoff := dm.sent[0].embed.Fields[3]
	assert.Equal(t, "⏰ Kickoff", kickoff.Name)
	assert.Equal(t, "<t:1792350000:R>", kickoff.Value)
}

func TestHandlePropose_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     map[string]any
		upstream string
		wantMsg  string
	}{
		{
			name:    "bad time",
			args:    map[string]any{"match": int64(40), "day": "Sunday", "time": "25h"},
			wantMsg: "Invalid time format. Use 21h, 20h30 or 21:00.",
		},
		{
			name:    "bad day",
			args:    map[string]any{"match": int64(40), "day": "Someday", "time": "21h"},
			wantMsg: "Unknown day. Pick a day from the list.",
		},
		{
			name:     "not a captain",
			args:     map[string]any{"match": int64(40), "day": "Sunday", "time": "21:00"},
			upstream: "User must be a team captain",
			wantMsg:  "You must captain one of the teams of this match.",
		},
		{
			name:     "account not linked",
			args:     map[string]any{"match": int64(40), "day": "Sunday", "time": "21:00"},
			upstream: "User has not linked their Discord account",
			wantMsg:  "Your Discord account is not linked. Sign in on the website with Discord.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := sblapitest.New(t)
			if tt.upstream != "" {
				server.On(http.MethodPost, "match-proposals", http.StatusBadRequest, map[string]any{"error": tt.upstream})
			}
			f, dm, _ := newTestFeature(server, openSettings())

			_, err := f.handlePropose(context.Background(), interactionstest.Request(tt.args))
			botErr, ok := common.AsBotError(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, tt.wantMsg, botErr.UserMessage)
			assert.Empty(t, dm.sent)
			if tt.upstream == "" {
				assert.Empty(t, server.Requests(), "input is validated before calling the API")
			}
		})
	}
}

func TestMatchManagerRoleGate(t *testing.T) {
	t.Parallel()

	role := int64(555)
	gated := entities.NewGuildSettings(100)
	gated.MatchManagerRoleID = &role

	settings := new(testhelpers.MockGuildSettingsService)
	settings.On("GetOrCreateSettings", mock.Anything, int64(100)).Return(gated, nil)

	server := sblapitest.New(t)
	f, _, _ := newTestFeature(server, settings)

	req := interactionstest.Request(map[string]any{"id": int64(12)})
	_, err := f.handleAccept(context.Background(), req)
	botErr, ok := common.AsBotError(err)
	require.True(t, ok)
	assert.Equal(t, "You need the <@&555> role to use this command.", botErr.UserMessage)
	assert.Empty(t, server.Requests())

	server.On(http.MethodPatch, "match-proposals/12", http.StatusOK, map[string]any{
		"proposal": map[string]any{"id": 12, "game": map[string]any{"id": 40}},
	})
	req.MemberRoles = []string{"555"}
	_, err = f.handleAccept(context.Background(), req)
	require.NoError(t, err)
	settings.AssertExpectations(t)
}

func TestAnswerProposal(t *testing.T) {
	t.Parallel()

	for _, status := range []string{"accepted", "rejected"} {
		t.Run(status, func(t *testing.T) {
			t.Parallel()

			server := sblapitest.New(t).On(http.MethodPatch, "match-proposals/12", http.StatusOK, map[string]any{
				"proposal": map[string]any{
					"id":            12,
					"game":          map[string]any{"id": 40, "team1": "Lions", "team2": "Bears"},
					"proposed_date": "2026-10-18T19:00:00Z",
					"proposer":      map[string]any{"discord_id": "77", "discord_username": "leo"},
				},
			})
			f, dm, pub := newTestFeature(server, openSettings())

			handler := f.handleAccept
			wantTitle, wantDM := "✅ Proposal accepted", "✅ Proposal accepted!"
			if status == "rejected" {
				handler = f.handleReject
				wantTitle, wantDM = "🚫 Proposal rejected", "❌ Proposal rejected"
			}

			view, err := handler(context.Background(), interactionstest.Request(map[string]any{"id": int64(12)}))
			require.NoError(t, err)
			assert.Equal(t, wantTitle, view.Embeds[0].Title)

			var body map[string]string
			require.NoError(t, json.Unmarshal(server.Requests()[0].Body, &body))
			assert.Equal(t, map[string]string{"discord_id": "42", "status": status}, body)

			require.Len(t, dm.sent, 1)
			assert.Equal(t, "77", dm.sent[0].userID)
			assert.Equal(t, wantDM, dm.sent[0].embed.Title)

			require.Len(t, pub.events, 1)
			event, ok := pub.events[0].(events.ProposalStatusChangedEvent)
			require.True(t, ok)
			assert.Equal(t, events.ProposalStatusChangedEvent{
				GuildID: 100, ProposalID: 12, GameID: 40, Status: status, ResponderID: "42", ProposerID: "77",
			}, event)
		})
	}
}

func TestAnswerProposal_UpstreamCopy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		message string
		want    string
	}{
		{name: "not the receiver", status: http.StatusForbidden, message: "Only the receiver can respond", want: "Only the receiver can reject this proposal."},
		{name: "missing", status: http.StatusNotFound, message: "Proposal not found", want: "Proposal not found."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := sblapitest.New(t).On(http.MethodPatch, "match-proposals/3", tt.status, map[string]any{"error": tt.message})
			f, dm, pub := newTestFeature(server, openSettings())

			_, err := f.handleReject(context.Background(), interactionstest.Request(map[string]any{"id": int64(3)}))
			botErr, ok := common.AsBotError(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, botErr.UserMessage)
			assert.Empty(t, dm.sent)
			assert.Empty(t, pub.events)
		})
	}
}

func TestHandleProposals(t *testing.T) {
	t.Parallel()

	received := make([]map[string]any, 0, 5)
	for id := 1; id <= 5; id++ {
		received = append(received, map[string]any{
			"id":       id,
			"game":     map[string]any{"id": 40 + id, "team1": "Lions"},
			"proposer": map[string]any{"discord_id": "77", "discord_username": "leo"},
		})
	}
	server := sblapitest.New(t).Get("match-proposals/pending?discord_id=42", map[string]any{
		"received": received,
		"sent":     []any{},
	})
	f, _, _ := newTestFeature(server, openSettings())

	view, err := f.handleProposals(context.Background(), interactionstest.Request(nil))
	require.NoError(t, err)

	fields := view.Embeds[0].Fields
	require.Len(t, fields, 3)
	assert.Equal(t, "📥 Received (5)", fields[0].Name)
	assert.Contains(t, fields[0].Value, "**#1** - Lions vs ?")
	assert.Contains(t, fields[0].Value, "from leo")
	assert.Equal(t, "📤 Sent", fields[1].Name)
	assert.Equal(t, "Actions", fields[2].Name)

	assert.Len(t, view.Components, ButtonsShown)
	assert.Equal(t, []string{"proposal_accept_1", "proposal_reject_1"}, interactionstest.CustomIDs(view.Components[:1]))
	assert.Equal(t, "42", server.Requests()[0].Header.Get("X-Discord-User-Id"))
}

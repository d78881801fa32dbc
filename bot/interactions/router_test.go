package interactions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sblbot/bot/common"
	"sblbot/sblapi"
)

type fakeResponder struct {
	mu        sync.Mutex
	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit
	ackErr    error
}

func (f *fakeResponder) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	return f.ackErr
}

func (f *fakeResponder) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, edit)
	return &discordgo.Message{}, nil
}

func slashEvent(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:    discordgo.InteractionApplicationCommand,
		GuildID: "100",
		Member:  &discordgo.Member{User: &discordgo.User{ID: "7", Username: "alice"}},
		Data:    discordgo.ApplicationCommandInteractionData{Name: name, Options: options},
	}}
}

func buttonEvent(customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:   discordgo.InteractionMessageComponent,
		Member: &discordgo.Member{User: &discordgo.User{ID: "7", Username: "alice"}},
		Data:   discordgo.MessageComponentInteractionData{CustomID: customID, ComponentType: discordgo.ButtonComponent},
	}}
}

func selectEvent(customID string, values ...string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionMessageComponent,
		User: &discordgo.User{ID: "8", Username: "bob"},
		Data: discordgo.MessageComponentInteractionData{CustomID: customID, ComponentType: discordgo.SelectMenuComponent, Values: values},
	}}
}

// divisionHandler renders a view purely from its intent
func divisionHandler(ctx context.Context, req *Request) (*View, error) {
	id, ok := req.Intent.Integer(ArgID)
	if !ok {
		return nil, common.NewUserError("Missing division id", "division id missing")
	}
	return EmbedView(&discordgo.MessageEmbed{Title: fmt.Sprintf("Division %d", id)},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Matches", CustomID: DivisionMatchesID(int(id), 1)},
		}}), nil
}

func newTestRouter(t *testing.T, extra ...Descriptor) *Router {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, r.Register(Descriptor{
		Definition: &discordgo.ApplicationCommand{Name: CommandDivision},
		Handler:    divisionHandler,
	}))
	for _, d := range extra {
		require.NoError(t, r.Register(d))
	}
	return NewRouter(r, nil)
}

func TestRouter_ButtonMatchesDirectInvocation(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	direct := &fakeResponder{}
	router.Dispatch(context.Background(), direct, slashEvent(CommandDivision,
		&discordgo.ApplicationCommandInteractionDataOption{Name: ArgID, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(9)}))

	viaButton := &fakeResponder{}
	router.Dispatch(context.Background(), viaButton, buttonEvent("division_details_9"))

	require.Len(t, direct.edits, 1)
	require.Len(t, viaButton.edits, 1)
	assert.Equal(t, direct.edits[0], viaButton.edits[0])
	assert.Equal(t, "Division 9", (*viaButton.edits[0].Embeds)[0].Title)
}

func TestRouter_AcknowledgesBeforeWork(t *testing.T) {
	t.Parallel()

	var ackedFirst bool
	responder := &fakeResponder{}
	router := newTestRouter(t, Descriptor{
		Definition: &discordgo.ApplicationCommand{Name: "ping"},
		Ephemeral:  true,
		Handler: func(ctx context.Context, req *Request) (*View, error) {
			responder.mu.Lock()
			ackedFirst = len(responder.responses) == 1
			responder.mu.Unlock()
			return &View{Content: "ok"}, nil
		},
	})

	router.Dispatch(context.Background(), responder, slashEvent("ping"))
	assert.True(t, ackedFirst)
	require.Len(t, responder.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, responder.responses[0].Type)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, responder.responses[0].Data.Flags)

	button := &fakeResponder{}
	router.Dispatch(context.Background(), button, buttonEvent("division_details_1"))
	require.Len(t, button.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseDeferredMessageUpdate, button.responses[0].Type)
}

func TestRouter_UnknownSlashCommandIsNotAnswered(t *testing.T) {
	t.Parallel()

	responder := &fakeResponder{}
	newTestRouter(t).Dispatch(context.Background(), responder, slashEvent("ghost"))
	assert.Empty(t, responder.responses)
	assert.Empty(t, responder.edits)
}

func TestRouter_UnrecognizedComponent(t *testing.T) {
	t.Parallel()

	for _, event := range []*discordgo.InteractionCreate{
		buttonEvent("proposal_actions_3"),
		buttonEvent(TeamsPageInfoID),
		buttonEvent("teams_page_2"), // decodes, but no teams command is registered
		selectEvent(TeamSelectMenuID, "nonsense"),
	} {
		responder := &fakeResponder{}
		newTestRouter(t).Dispatch(context.Background(), responder, event)
		require.Len(t, responder.edits, 1)
		assert.Contains(t, (*responder.edits[0].Embeds)[0].Title, "Unrecognized interaction")
	}
}

func TestRouter_SelectMenuRoutesToTeam(t *testing.T) {
	t.Parallel()

	var gotID int64
	var gotUser string
	router := newTestRouter(t, Descriptor{
		Definition: &discordgo.ApplicationCommand{Name: CommandTeam},
		Handler: func(ctx context.Context, req *Request) (*View, error) {
			gotID, _ = req.Intent.Integer(ArgID)
			gotUser = req.UserID
			return &View{Content: "team"}, nil
		},
	})

	responder := &fakeResponder{}
	router.Dispatch(context.Background(), responder, selectEvent(TeamSelectMenuID, "team_details_21"))
	assert.Equal(t, int64(21), gotID)
	assert.Equal(t, "8", gotUser)
	require.Len(t, responder.edits, 1)
	assert.Equal(t, "team", *responder.edits[0].Content)
}

func TestRouter_HandlerFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		handler   HandlerFunc
		wantTitle string
		wantText  string
	}{
		{
			name: "panic",
			handler: func(ctx context.Context, req *Request) (*View, error) {
				var m map[string]int
				m["boom"] = 1
				return nil, nil
			},
			wantTitle: "Error",
			wantText:  common.GenericFailureMessage,
		},
		{
			name: "unexpected error",
			handler: func(ctx context.Context, req *Request) (*View, error) {
				return nil, errors.New("database exploded")
			},
			wantTitle: "Error",
			wantText:  common.GenericFailureMessage,
		},
		{
			name: "user error",
			handler: func(ctx context.Context, req *Request) (*View, error) {
				return nil, common.NewUserError("You must be a team captain.", "not captain")
			},
			wantTitle: "Error",
			wantText:  "You must be a team captain.",
		},
		{
			name: "api failure",
			handler: func(ctx context.Context, req *Request) (*View, error) {
				return nil, fmt.Errorf("load seasons: %w", &sblapi.Failure{Reason: sblapi.ReasonTimeout, URL: "http://api/season"})
			},
			wantTitle: "SBL API error",
			wantText:  "did not respond in time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			router := newTestRouter(t, Descriptor{
				Definition: &discordgo.ApplicationCommand{Name: "faulty"},
				Handler:    tt.handler,
			})
			responder := &fakeResponder{}
			assert.NotPanics(t, func() {
				router.Dispatch(context.Background(), responder, slashEvent("faulty"))
			})
			require.Len(t, responder.edits, 1)
			embed := (*responder.edits[0].Embeds)[0]
			assert.Equal(t, "❌ "+tt.wantTitle, embed.Title)
			assert.Contains(t, embed.Description, tt.wantText)
			assert.NotContains(t, embed.Description, "database exploded")
		})
	}
}

func TestErrorView_APIFailureFooter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		failure    *sblapi.Failure
		wantFooter string
	}{
		{
			name:       "timeout",
			failure:    &sblapi.Failure{Reason: sblapi.ReasonTimeout, URL: "http://api/season"},
			wantFooter: "Request timed out",
		},
		{
			name:       "http status",
			failure:    &sblapi.Failure{Reason: sblapi.ReasonHTTPError, HTTPStatus: 503, URL: "http://api/season"},
			wantFooter: "Request failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			view := ErrorView(fmt.Errorf("load seasons: %w", tt.failure))
			require.Len(t, view.Embeds, 1)
			require.NotNil(t, view.Embeds[0].Footer)
			assert.Equal(t, tt.wantFooter, view.Embeds[0].Footer.Text)
		})
	}
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *recordingObserver) RecordInteraction(_ context.Context, command, source, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, command+"/"+source+"/"+outcome)
}

func TestRouter_RecordsOutcomes(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	require.NoError(t, reg.Register(Descriptor{Definition: &discordgo.ApplicationCommand{Name: CommandDivision}, Handler: divisionHandler}))
	obs := &recordingObserver{}
	router := NewRouter(reg, obs)

	router.Dispatch(context.Background(), &fakeResponder{}, buttonEvent("division_details_2"))
	router.Dispatch(context.Background(), &fakeResponder{}, slashEvent(CommandDivision))
	router.Dispatch(context.Background(), &fakeResponder{}, buttonEvent("bogus"))

	assert.Equal(t, []string{
		"division/button/replied",
		"division/slash/failed",
		"bogus/button/unrecognized",
	}, obs.outcomes)
}

func TestRouter_FailedAcknowledgeStops(t *testing.T) {
	t.Parallel()

	responder := &fakeResponder{ackErr: errors.New("unknown interaction")}
	newTestRouter(t).Dispatch(context.Background(), responder, buttonEvent("division_details_2"))
	assert.Empty(t, responder.edits)
}

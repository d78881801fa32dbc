package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"sblbot/domain/entities"
	"sblbot/domain/testhelpers"
	"sblbot/events"
	"sblbot/sblapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type deadlineFixture struct {
	api       *MockLeagueAPI
	settings  *testhelpers.MockGuildSettingsService
	poster    *MockAnnouncementPoster
	publisher *recordingPublisher
	observer  *recordingObserver
	worker    *DeadlineCheckWorker
	loc       *time.Location
}

// newDeadlineFixture pins the clock to Friday 2026-10-16 00:00 in Paris, the
// check day of the default Thursday deadline
func newDeadlineFixture(t *testing.T) *deadlineFixture {
	t.Helper()
	loc := paris(t)

	f := &deadlineFixture{
		api:       new(MockLeagueAPI),
		settings:  new(testhelpers.MockGuildSettingsService),
		poster:    new(MockAnnouncementPoster),
		publisher: &recordingPublisher{},
		observer:  &recordingObserver{},
		loc:       loc,
	}
	f.worker = NewDeadlineCheckWorker(f.api, f.settings, f.poster, f.publisher, f.observer, loc)
	f.worker.now = func() time.Time { return time.Date(2026, 10, 16, 0, 0, 0, 0, loc) }
	return f
}

func guildWithMatches(guildID, channelID int64) *entities.GuildSettings {
	g := entities.NewGuildSettings(guildID)
	g.MatchesChannelID = ptr(channelID)
	return g
}

func kickoffAt(want time.Time) any {
	return mock.MatchedBy(func(got time.Time) bool { return got.Equal(want) })
}

func TestDeadlineCheck_RunForGuild(t *testing.T) {
	t.Parallel()
	f := newDeadlineFixture(t)
	ctx := context.Background()
	kickoff := time.Date(2026, 10, 18, 21, 0, 0, 0, f.loc)

	games := []sblapi.Game{{ID: 1}, {ID: 2}, {ID: 3}}
	f.api.On("CurrentWeek", ctx).Return(respond(sblapi.CurrentWeek{CurrentWeek: 4, SeasonID: 9}), nil)
	f.api.On("UnscheduledGames", ctx, 4, 9).Return(respond(games), nil)
	f.api.On("ScheduleGame", ctx, 1, kickoffAt(kickoff)).Return(nil)
	f.api.On("ScheduleGame", ctx, 2, kickoffAt(kickoff)).Return(&sblapi.Failure{Reason: sblapi.ReasonHTTPError, HTTPStatus: 500})
	f.api.On("ScheduleGame", ctx, 3, kickoffAt(kickoff)).Return(nil)
	f.poster.On("PostDeadlineSummary", ctx, int64(700), mock.AnythingOfType("*application.DeadlineSummary")).Return(nil)

	summary, err := f.worker.RunForGuild(ctx, guildWithMatches(100, 700))
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Week)
	assert.Equal(t, 9, summary.SeasonID)
	assert.True(t, kickoff.Equal(summary.Kickoff))
	assert.Equal(t, []sblapi.Game{{ID: 1}, {ID: 3}}, summary.Scheduled)
	assert.Equal(t, []sblapi.Game{{ID: 2}}, summary.Failed)
	assert.Equal(t, 3, summary.Total())

	f.api.AssertNumberOfCalls(t, "ScheduleGame", 3)
	f.poster.AssertExpectations(t)
	assert.Equal(t, []string{"deadline_check:partial"}, f.observer.runs)

	require.Len(t, f.publisher.events, 3)
	assert.Equal(t, events.MatchAutoScheduledEvent{
		GuildID: 100, GameID: 1, Week: 4, SeasonID: 9, ScheduledAt: kickoff.UTC(),
	}, f.publisher.events[0])
	assert.Equal(t, events.EventTypeMatchAutoScheduled, f.publisher.events[1].Type())
	assert.Equal(t, events.DeadlineCheckCompletedEvent{
		GuildID: 100, Week: 4, SeasonID: 9, Scheduled: 2, Failed: 1, Total: 3,
	}, f.publisher.events[2])
}

func TestDeadlineCheck_NothingToSchedule(t *testing.T) {
	t.Parallel()
	f := newDeadlineFixture(t)
	ctx := context.Background()

	f.api.On("CurrentWeek", ctx).Return(respond(sblapi.CurrentWeek{CurrentWeek: 4, SeasonID: 9}), nil)
	f.api.On("UnscheduledGames", ctx, 4, 9).Return(respond([]sblapi.Game{}), nil)

	summary, err := f.worker.RunForGuild(ctx, guildWithMatches(100, 700))
	require.NoError(t, err)

	assert.Zero(t, summary.Total())
	f.api.AssertNotCalled(t, "ScheduleGame", mock.Anything, mock.Anything, mock.Anything)
	f.poster.AssertNotCalled(t, "PostDeadlineSummary", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, []string{"deadline_check:skipped"}, f.observer.runs)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.EventTypeDeadlineCheckCompleted, f.publisher.events[0].Type())
}

func TestDeadlineCheck_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(f *deadlineFixture, ctx context.Context)
		guild func() *entities.GuildSettings
		want  string
	}{
		{
			name: "current week unavailable",
			setup: func(f *deadlineFixture, ctx context.Context) {
				f.api.On("CurrentWeek", ctx).Return(nil, &sblapi.Failure{Reason: sblapi.ReasonTimeout})
			},
			guild: func() *entities.GuildSettings { return entities.NewGuildSettings(1) },
			want:  "failed to get current week",
		},
		{
			name: "unscheduled games unavailable",
			setup: func(f *deadlineFixture, ctx context.Context) {
				f.api.On("CurrentWeek", ctx).Return(respond(sblapi.CurrentWeek{CurrentWeek: 4, SeasonID: 9}), nil)
				f.api.On("UnscheduledGames", ctx, 4, 9).Return(nil, errors.New("boom"))
			},
			guild: func() *entities.GuildSettings { return entities.NewGuildSettings(1) },
			want:  "failed to get unscheduled games",
		},
		{
			name: "broken default schedule",
			setup: func(f *deadlineFixture, ctx context.Context) {
				f.api.On("CurrentWeek", ctx).Return(respond(sblapi.CurrentWeek{CurrentWeek: 4, SeasonID: 9}), nil)
				f.api.On("UnscheduledGames", ctx, 4, 9).Return(respond([]sblapi.Game{{ID: 1}}), nil)
			},
			guild: func() *entities.GuildSettings {
				g := entities.NewGuildSettings(1)
				g.DefaultMatchTime = "late"
				return g
			},
			want: "invalid default schedule",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newDeadlineFixture(t)
			ctx := context.Background()
			tt.setup(f, ctx)

			_, err := f.worker.RunForGuild(ctx, tt.guild())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, []string{"deadline_check:failure"}, f.observer.runs)
			assert.Empty(t, f.publisher.events)
		})
	}
}

func TestDeadlineCheck_RunDueOnlyOnCheckDay(t *testing.T) {
	t.Parallel()
	f := newDeadlineFixture(t)
	ctx := context.Background()

	due := entities.NewGuildSettings(1) // Thursday deadline, checked on Friday
	notDue := entities.NewGuildSettings(2)
	notDue.DeadlineDay = time.Monday

	f.settings.On("ListGuilds", ctx).Return([]*entities.GuildSettings{due, notDue}, nil)
	f.api.On("CurrentWeek", ctx).Return(respond(sblapi.CurrentWeek{CurrentWeek: 4, SeasonID: 9}), nil)
	f.api.On("UnscheduledGames", ctx, 4, 9).Return(respond([]sblapi.Game{}), nil)

	require.NoError(t, f.worker.RunDue(ctx))

	f.api.AssertNumberOfCalls(t, "CurrentWeek", 1)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, int64(1), f.publisher.events[0].(events.DeadlineCheckCompletedEvent).GuildID)
}

func TestDeadlineCheck_RunDueListFailure(t *testing.T) {
	t.Parallel()
	f := newDeadlineFixture(t)
	ctx := context.Background()

	f.settings.On("ListGuilds", ctx).Return(nil, errors.New("db down"))

	err := f.worker.RunDue(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list guilds")
}

func TestDeadlineCheck_RunNowIgnoresWeekday(t *testing.T) {
	t.Parallel()
	f := newDeadlineFixture(t)
	ctx := context.Background()

	guild := entities.NewGuildSettings(2)
	guild.DeadlineDay = time.Monday
	guild.DefaultMatchDay = time.Saturday
	guild.DefaultMatchTime = "18:30"
	kickoff := time.Date(2026, 10, 17, 18, 30, 0, 0, f.loc)

	f.settings.On("GetOrCreateSettings", ctx, int64(2)).Return(guild, nil)
	f.api.On("CurrentWeek", ctx).Return(respond(sblapi.CurrentWeek{CurrentWeek: 4, SeasonID: 9}), nil)
	f.api.On("UnscheduledGames", ctx, 4, 9).Return(respond([]sblapi.Game{{ID: 8}}), nil)
	f.api.On("ScheduleGame", ctx, 8, kickoffAt(kickoff)).Return(nil)

	summary, err := f.worker.RunNow(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, summary.Scheduled, 1)
	assert.True(t, kickoff.Equal(summary.Kickoff))
	f.poster.AssertNotCalled(t, "PostDeadlineSummary", mock.Anything, mock.Anything, mock.Anything)
	f.api.AssertExpectations(t)
}

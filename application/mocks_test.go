package application

import (
	"context"
	"sync"
	"time"

	"sblbot/events"
	"sblbot/sblapi"

	"github.com/stretchr/testify/mock"
)

type MockLeagueAPI struct {
	mock.Mock
}

func (m *MockLeagueAPI) CurrentWeek(ctx context.Context) (*sblapi.Response[sblapi.CurrentWeek], error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sblapi.Response[sblapi.CurrentWeek]), args.Error(1)
}

func (m *MockLeagueAPI) SeasonDivisions(ctx context.Context, seasonID int) (*sblapi.Response[[]sblapi.Division], error) {
	args := m.Called(ctx, seasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sblapi.Response[[]sblapi.Division]), args.Error(1)
}

func (m *MockLeagueAPI) Division(ctx context.Context, id int) (*sblapi.Response[sblapi.Division], error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sblapi.Response[sblapi.Division]), args.Error(1)
}

func (m *MockLeagueAPI) DivisionStandings(ctx context.Context, divisionID int) (*sblapi.Response[[]sblapi.TeamStanding], error) {
	args := m.Called(ctx, divisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sblapi.Response[[]sblapi.TeamStanding]), args.Error(1)
}

func (m *MockLeagueAPI) WeekGames(ctx context.Context, week, seasonID int) (*sblapi.Response[[]sblapi.Game], error) {
	args := m.Called(ctx, week, seasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sblapi.Response[[]sblapi.Game]), args.Error(1)
}

func (m *MockLeagueAPI) UnscheduledGames(ctx context.Context, week, seasonID int) (*sblapi.Response[[]sblapi.Game], error) {
	args := m.Called(ctx, week, seasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sblapi.Response[[]sblapi.Game]), args.Error(1)
}

func (m *MockLeagueAPI) ScheduleGame(ctx context.Context, gameID int, date time.Time) error {
	return m.Called(ctx, gameID, date).Error(0)
}

type MockAnnouncementPoster struct {
	mock.Mock
}

func (m *MockAnnouncementPoster) PostMatches(ctx context.Context, channelID int64, digest *WeeklyDigest) error {
	return m.Called(ctx, channelID, digest).Error(0)
}

func (m *MockAnnouncementPoster) PostStandings(ctx context.Context, channelID int64, digest *WeeklyDigest) error {
	return m.Called(ctx, channelID, digest).Error(0)
}

func (m *MockAnnouncementPoster) PostDeadlineSummary(ctx context.Context, channelID int64, summary *DeadlineSummary) error {
	return m.Called(ctx, channelID, summary).Error(0)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

type recordingObserver struct {
	runs []string
}

func (o *recordingObserver) RecordJobRun(_ context.Context, job, outcome string, _ time.Duration) {
	o.runs = append(o.runs, job+":"+outcome)
}

func respond[T any](data T) *sblapi.Response[T] {
	return &sblapi.Response[T]{Data: data, HTTPStatus: 200}
}

func ptr[T any](v T) *T { return &v }

package application

import (
	"context"
	"time"

	"sblbot/sblapi"
)

// LeagueAPI is the part of the SBL API client the scheduled jobs use
type LeagueAPI interface {
	CurrentWeek(ctx context.Context) (*sblapi.Response[sblapi.CurrentWeek], error)
	SeasonDivisions(ctx context.Context, seasonID int) (*sblapi.Response[[]sblapi.Division], error)
	Division(ctx context.Context, id int) (*sblapi.Response[sblapi.Division], error)
	DivisionStandings(ctx context.Context, divisionID int) (*sblapi.Response[[]sblapi.TeamStanding], error)
	WeekGames(ctx context.Context, week, seasonID int) (*sblapi.Response[[]sblapi.Game], error)
	UnscheduledGames(ctx context.Context, week, seasonID int) (*sblapi.Response[[]sblapi.Game], error)
	ScheduleGame(ctx context.Context, gameID int, date time.Time) error
}

// AnnouncementPoster defines the interface for posting job output to Discord.
// This abstraction allows the application layer to communicate with Discord
// without direct dependency on the Discord API.
type AnnouncementPoster interface {
	// PostMatches posts the fixtures of the week to a channel
	PostMatches(ctx context.Context, channelID int64, digest *WeeklyDigest) error
	// PostStandings posts the division tables to a channel
	PostStandings(ctx context.Context, channelID int64, digest *WeeklyDigest) error
	// PostDeadlineSummary reports the games the deadline check dated
	PostDeadlineSummary(ctx context.Context, channelID int64, summary *DeadlineSummary) error
}

// JobObserver receives one notification per job run
type JobObserver interface {
	RecordJobRun(ctx context.Context, job string, outcome string, elapsed time.Duration)
}

// Job names reported to the JobObserver
const (
	JobWeeklyAnnouncement = "weekly_announcement"
	JobDeadlineCheck      = "deadline_check"
)

// Job outcomes reported to the JobObserver
const (
	OutcomeSuccess = "success"
	OutcomePartial = "partial"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// DivisionDigest is one division of the weekly digest
type DivisionDigest struct {
	Division sblapi.Division
	Stats    []sblapi.TeamStanding // empty when the statistics endpoint failed
	Games    []sblapi.Game
}

// WeeklyDigest is everything the weekly announcement renders
type WeeklyDigest struct {
	Week      int
	SeasonID  int
	Divisions []DivisionDigest
}

// WeeklyReport summarizes one weekly announcement run
type WeeklyReport struct {
	Week      int
	SeasonID  int
	Divisions int
	Guilds    int
	Channels  int
	Failures  int
}

// DeadlineSummary is the outcome of a deadline check for one guild
type DeadlineSummary struct {
	GuildID   int64
	Week      int
	SeasonID  int
	Kickoff   time.Time
	Scheduled []sblapi.Game
	Failed    []sblapi.Game
}

// Total is the number of unscheduled games the run found
func (s *DeadlineSummary) Total() int {
	return len(s.Scheduled) + len(s.Failed)
}

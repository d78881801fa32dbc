package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sblbot/domain/entities"
	"sblbot/domain/interfaces"
	"sblbot/events"
	"sblbot/sblapi"

	log "github.com/sirupsen/logrus"
)

// WeeklyAnnouncementWorker posts the fixtures and standings of the current
// week to every guild with an announcement channel
type WeeklyAnnouncementWorker struct {
	api       LeagueAPI
	settings  interfaces.GuildSettingsService
	poster    AnnouncementPoster
	publisher events.Publisher
	observer  JobObserver
	loc       *time.Location
	now       func() time.Time
}

// NewWeeklyAnnouncementWorker creates a new weekly announcement worker
func NewWeeklyAnnouncementWorker(
	api LeagueAPI,
	settings interfaces.GuildSettingsService,
	poster AnnouncementPoster,
	publisher events.Publisher,
	observer JobObserver,
	loc *time.Location,
) *WeeklyAnnouncementWorker {
	return &WeeklyAnnouncementWorker{
		api:       api,
		settings:  settings,
		poster:    poster,
		publisher: orDiscard(publisher),
		observer:  observer,
		loc:       loc,
		now:       time.Now,
	}
}

// Start begins the weekly announcement worker
func (w *WeeklyAnnouncementWorker) Start(ctx context.Context) func() {
	stopChan := make(chan struct{})

	go func() {
		log.Infof("Weekly announcement worker started, runs Mondays at %02d:00 %s", WeeklyAnnouncementHour, w.loc)

		for {
			next := nextWeeklyRun(w.now(), w.loc)
			waitDuration := time.Until(next)
			log.Infof("Weekly announcement worker waiting %v until %s", waitDuration.Round(time.Second), next.Format(time.RFC3339))

			select {
			case <-ctx.Done():
				log.Info("Weekly announcement worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Weekly announcement worker shutting down (stop requested)...")
				return
			case <-time.After(waitDuration):
				if _, err := w.RunOnce(ctx); err != nil {
					log.WithError(err).Error("Weekly announcement failed")
				}
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}

// RunOnce builds the digest of the current week and delivers it. Failures of a
// single division or guild are logged and skipped.
func (w *WeeklyAnnouncementWorker) RunOnce(ctx context.Context) (*WeeklyReport, error) {
	start := time.Now()
	report, err := w.run(ctx)

	outcome := OutcomeSuccess
	switch {
	case err != nil:
		outcome = OutcomeFailure
	case report.Channels == 0:
		outcome = OutcomeSkipped
	case report.Failures > 0:
		outcome = OutcomePartial
	}
	if w.observer != nil {
		w.observer.RecordJobRun(ctx, JobWeeklyAnnouncement, outcome, time.Since(start))
	}
	return report, err
}

func (w *WeeklyAnnouncementWorker) run(ctx context.Context) (*WeeklyReport, error) {
	digest, err := w.BuildDigest(ctx)
	if err != nil {
		return nil, err
	}

	report := &WeeklyReport{Week: digest.Week, SeasonID: digest.SeasonID, Divisions: len(digest.Divisions)}

	guilds, err := w.settings.ListAnnouncementGuilds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcement guilds: %w", err)
	}

	for _, guild := range guilds {
		posted := w.deliver(ctx, guild, digest, report)
		if posted > 0 {
			report.Guilds++
			report.Channels += posted
		}
	}

	log.WithFields(log.Fields{
		"week":      report.Week,
		"seasonID":  report.SeasonID,
		"divisions": report.Divisions,
		"guilds":    report.Guilds,
		"channels":  report.Channels,
		"failures":  report.Failures,
	}).Info("Completed weekly announcement")

	if report.Channels > 0 {
		if err := w.publisher.Publish(events.WeeklyAnnouncementPostedEvent{
			Week:      report.Week,
			SeasonID:  report.SeasonID,
			Guilds:    report.Guilds,
			Channels:  report.Channels,
			Divisions: report.Divisions,
		}); err != nil {
			log.WithError(err).Warn("Failed to publish weekly announcement event")
		}
	}

	return report, nil
}

// deliver posts the digest to the configured channels of one guild and returns
// how many channels received it
func (w *WeeklyAnnouncementWorker) deliver(ctx context.Context, guild *entities.GuildSettings, digest *WeeklyDigest, report *WeeklyReport) int {
	posted := 0
	if guild.HasMatchesChannel() {
		if err := w.poster.PostMatches(ctx, *guild.MatchesChannelID, digest); err != nil {
			report.Failures++
			log.WithError(err).WithFields(log.Fields{
				"guildID":   guild.GuildID,
				"channelID": *guild.MatchesChannelID,
			}).Error("Failed to post weekly matches")
		} else {
			posted++
		}
	}
	if guild.HasStandingsChannel() {
		if err := w.poster.PostStandings(ctx, *guild.StandingsChannelID, digest); err != nil {
			report.Failures++
			log.WithError(err).WithFields(log.Fields{
				"guildID":   guild.GuildID,
				"channelID": *guild.StandingsChannelID,
			}).Error("Failed to post weekly standings")
		} else {
			posted++
		}
	}
	return posted
}

// BuildDigest gathers the divisions, standings and games of the current week
func (w *WeeklyAnnouncementWorker) BuildDigest(ctx context.Context) (*WeeklyDigest, error) {
	current, err := w.api.CurrentWeek(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current week: %w", err)
	}
	week, seasonID := current.Data.CurrentWeek, current.Data.SeasonID

	divisions, err := w.api.SeasonDivisions(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get divisions of season %d: %w", seasonID, err)
	}

	var games []sblapi.Game
	if res, err := w.api.WeekGames(ctx, week, seasonID); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"week":     week,
			"seasonID": seasonID,
		}).Error("Failed to get week games, announcing without fixtures")
	} else {
		games = res.Data
	}

	digest := &WeeklyDigest{Week: week, SeasonID: seasonID}
	for _, listed := range divisions.Data {
		digest.Divisions = append(digest.Divisions, w.divisionDigest(ctx, listed, games))
	}
	return digest, nil
}

// divisionDigest completes a listed division with its detail and statistics.
// The listed payload is kept when the detail call fails.
func (w *WeeklyAnnouncementWorker) divisionDigest(ctx context.Context, listed sblapi.Division, games []sblapi.Game) DivisionDigest {
	d := DivisionDigest{Division: listed}

	err := sblapi.FanOut(ctx,
		sblapi.Required("division", func(ctx context.Context) error {
			res, err := w.api.Division(ctx, listed.ID)
			if err != nil {
				return err
			}
			d.Division = res.Data
			return nil
		}),
		sblapi.Optional("division standings", sblapi.Into(&d.Stats, func(ctx context.Context) (*sblapi.Response[[]sblapi.TeamStanding], error) {
			return w.api.DivisionStandings(ctx, listed.ID)
		})),
	)
	if err != nil {
		log.WithError(err).WithField("divisionID", listed.ID).Warn("Failed to get division detail, using listed data")
		return DivisionDigest{Division: listed, Games: gamesOf(listed, games)}
	}

	d.Games = gamesOf(d.Division, games)
	return d
}

// gamesOf keeps the games belonging to division, by ID when the game carries
// one and by name otherwise
func gamesOf(division sblapi.Division, games []sblapi.Game) []sblapi.Game {
	var out []sblapi.Game
	for _, g := range games {
		switch {
		case g.DivisionID != nil:
			if *g.DivisionID == division.ID {
				out = append(out, g)
			}
		case g.Division != nil:
			if strings.EqualFold(strings.TrimSpace(*g.Division), strings.TrimSpace(division.DisplayName())) {
				out = append(out, g)
			}
		}
	}
	return out
}

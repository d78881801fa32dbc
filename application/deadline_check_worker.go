package application

import (
	"context"
	"fmt"
	"time"

	"sblbot/domain/entities"
	"sblbot/domain/interfaces"
	"sblbot/events"

	log "github.com/sirupsen/logrus"
)

// DeadlineCheckWorker dates the games still unscheduled once a guild's
// proposal deadline has passed
type DeadlineCheckWorker struct {
	api       LeagueAPI
	settings  interfaces.GuildSettingsService
	poster    AnnouncementPoster
	publisher events.Publisher
	observer  JobObserver
	loc       *time.Location
	now       func() time.Time
}

// NewDeadlineCheckWorker creates a new deadline check worker
func NewDeadlineCheckWorker(
	api LeagueAPI,
	settings interfaces.GuildSettingsService,
	poster AnnouncementPoster,
	publisher events.Publisher,
	observer JobObserver,
	loc *time.Location,
) *DeadlineCheckWorker {
	return &DeadlineCheckWorker{
		api:       api,
		settings:  settings,
		poster:    poster,
		publisher: orDiscard(publisher),
		observer:  observer,
		loc:       loc,
		now:       time.Now,
	}
}

// Start begins the deadline check worker. It wakes up every day at midnight.
func (w *DeadlineCheckWorker) Start(ctx context.Context) func() {
	stopChan := make(chan struct{})

	go func() {
		log.Infof("Deadline check worker started, runs daily at 00:00 %s", w.loc)

		for {
			next := nextMidnight(w.now(), w.loc)
			waitDuration := time.Until(next)
			log.Infof("Deadline check worker waiting %v until next run", waitDuration.Round(time.Second))

			select {
			case <-ctx.Done():
				log.Info("Deadline check worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Deadline check worker shutting down (stop requested)...")
				return
			case <-time.After(waitDuration):
				if err := w.RunDue(ctx); err != nil {
					log.WithError(err).Error("Deadline check failed")
				}
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}

// RunDue runs the check for every guild whose check day is today
func (w *DeadlineCheckWorker) RunDue(ctx context.Context) error {
	guilds, err := w.settings.ListGuilds(ctx)
	if err != nil {
		return fmt.Errorf("failed to list guilds: %w", err)
	}

	now := w.now()
	var ran, failed int
	for _, guild := range guilds {
		if !guild.IsDeadlineCheckDay(now, w.loc) {
			continue
		}
		ran++
		if _, err := w.RunForGuild(ctx, guild); err != nil {
			failed++
			log.WithError(err).WithField("guildID", guild.GuildID).Error("Deadline check failed for guild")
		}
	}

	log.WithFields(log.Fields{
		"guilds": len(guilds),
		"ran":    ran,
		"failed": failed,
	}).Info("Completed deadline checks")
	return nil
}

// RunNow runs the check for one guild regardless of the weekday
func (w *DeadlineCheckWorker) RunNow(ctx context.Context, guildID int64) (*DeadlineSummary, error) {
	guild, err := w.settings.GetOrCreateSettings(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild settings: %w", err)
	}
	return w.RunForGuild(ctx, guild)
}

// RunForGuild schedules every unscheduled game of the current week at the
// guild's default kickoff. Games are patched one at a time and a failed game
// does not stop the others. Running it twice is harmless: dated games are no
// longer listed as unscheduled.
func (w *DeadlineCheckWorker) RunForGuild(ctx context.Context, guild *entities.GuildSettings) (*DeadlineSummary, error) {
	start := time.Now()
	summary, err := w.runForGuild(ctx, guild)

	outcome := OutcomeSuccess
	switch {
	case err != nil:
		outcome = OutcomeFailure
	case summary.Total() == 0:
		outcome = OutcomeSkipped
	case len(summary.Failed) > 0:
		outcome = OutcomePartial
	}
	if w.observer != nil {
		w.observer.RecordJobRun(ctx, JobDeadlineCheck, outcome, time.Since(start))
	}
	return summary, err
}

func (w *DeadlineCheckWorker) runForGuild(ctx context.Context, guild *entities.GuildSettings) (*DeadlineSummary, error) {
	current, err := w.api.CurrentWeek(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current week: %w", err)
	}
	week, seasonID := current.Data.CurrentWeek, current.Data.SeasonID

	unscheduled, err := w.api.UnscheduledGames(ctx, week, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unscheduled games: %w", err)
	}

	kickoff, err := guild.DefaultKickoff(w.now(), w.loc)
	if err != nil {
		return nil, fmt.Errorf("invalid default schedule for guild %d: %w", guild.GuildID, err)
	}

	summary := &DeadlineSummary{
		GuildID:  guild.GuildID,
		Week:     week,
		SeasonID: seasonID,
		Kickoff:  kickoff,
	}
	batch := events.NewBatch(w.publisher)

	for _, game := range unscheduled.Data {
		fields := log.Fields{
			"guildID": guild.GuildID,
			"gameID":  game.ID,
			"kickoff": kickoff.Format(time.RFC3339),
		}
		if err := w.api.ScheduleGame(ctx, game.ID, kickoff); err != nil {
			summary.Failed = append(summary.Failed, game)
			log.WithError(err).WithFields(fields).Error("Failed to auto-schedule game")
			continue
		}
		summary.Scheduled = append(summary.Scheduled, game)
		log.WithFields(fields).Info("Auto-scheduled game")

		_ = batch.Publish(events.MatchAutoScheduledEvent{
			GuildID:     guild.GuildID,
			GameID:      game.ID,
			Week:        week,
			SeasonID:    seasonID,
			ScheduledAt: kickoff.UTC(),
		})
	}

	_ = batch.Publish(events.DeadlineCheckCompletedEvent{
		GuildID:   guild.GuildID,
		Week:      week,
		SeasonID:  seasonID,
		Scheduled: len(summary.Scheduled),
		Failed:    len(summary.Failed),
		Total:     summary.Total(),
	})
	batch.Flush()

	log.WithFields(log.Fields{
		"guildID":   guild.GuildID,
		"week":      week,
		"seasonID":  seasonID,
		"scheduled": len(summary.Scheduled),
		"failed":    len(summary.Failed),
	}).Info("Completed deadline check")

	if summary.Total() > 0 && guild.HasMatchesChannel() {
		if err := w.poster.PostDeadlineSummary(ctx, *guild.MatchesChannelID, summary); err != nil {
			log.WithError(err).WithField("guildID", guild.GuildID).Error("Failed to post deadline summary")
		}
	}

	return summary, nil
}
